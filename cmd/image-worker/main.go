package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/threadz-backend/internal/images"
	"github.com/angelmondragon/threadz-backend/internal/images/consumer"
	"github.com/angelmondragon/threadz-backend/pkg/config"
	"github.com/angelmondragon/threadz-backend/pkg/db"
	"github.com/angelmondragon/threadz-backend/pkg/logger"
	"github.com/angelmondragon/threadz-backend/pkg/metrics"
	"github.com/angelmondragon/threadz-backend/pkg/pubsub"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "image-worker"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	cfg.Service.Kind = "image-worker"

	logg = logger.New(logger.Options{
		ServiceName: "image-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	pubsubClient, err := pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
	requireResource(ctx, logg, "pubsub", err)
	defer pubsubClient.Close()

	catalogMetrics := metrics.NewCatalogMetrics(prometheus.DefaultRegisterer)
	rule := images.NewRule(images.NewRepository(dbClient.DB()))

	imageConsumer, err := consumer.NewConsumer(
		rule,
		pubsubClient.CatalogSubscription(),
		logg,
		catalogMetrics,
	)
	requireResource(ctx, logg, "image consumer", err)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	runCtx = logg.WithFields(runCtx, map[string]any{
		"serviceKind": cfg.Service.Kind,
		"env":         cfg.App.Env,
	})
	logg.Info(runCtx, "image worker ready")

	if err := imageConsumer.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(runCtx, "image worker not working", err)
		os.Exit(1)
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
