package controllers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/angelmondragon/threadz-backend/api/responses"
	"github.com/angelmondragon/threadz-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/threadz-backend/pkg/errors"
	"github.com/angelmondragon/threadz-backend/pkg/logger"
)

const readinessTimeout = 5 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Threadz-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness by pinging every wired dependency. Nil
// dependencies are skipped so worker-less deployments stay green.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Threadz-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		var errs error
		checks := map[string]string{}
		for name, dep := range deps {
			if dep == nil {
				checks[name] = "skipped"
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				checks[name] = "down"
				errs = multierr.Append(errs, err)
				continue
			}
			checks[name] = "ok"
		}

		if errs != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "readiness check failed").WithDetails(checks))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}

// ReadinessDeps assembles the dependency map for HealthReady without making
// callers care about the pinger type.
func ReadinessDeps(dbP, redisP, pubsubP pinger) map[string]pinger {
	return map[string]pinger{
		"db":     dbP,
		"redis":  redisP,
		"pubsub": pubsubP,
	}
}
