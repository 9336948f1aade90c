package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/threadz-backend/api/routes"
	"github.com/angelmondragon/threadz-backend/internal/catalog"
	"github.com/angelmondragon/threadz-backend/internal/images"
	"github.com/angelmondragon/threadz-backend/internal/pricing"
	"github.com/angelmondragon/threadz-backend/pkg/config"
	"github.com/angelmondragon/threadz-backend/pkg/db"
	"github.com/angelmondragon/threadz-backend/pkg/enums"
	"github.com/angelmondragon/threadz-backend/pkg/logger"
	"github.com/angelmondragon/threadz-backend/pkg/metrics"
	"github.com/angelmondragon/threadz-backend/pkg/migrate"
	"github.com/angelmondragon/threadz-backend/pkg/pubsub"
	"github.com/angelmondragon/threadz-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	var pubsubClient *pubsub.Client
	if cfg.GCP.ProjectID != "" {
		pubsubClient, err = pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap pubsub", err)
			os.Exit(1)
		}
		defer pubsubClient.Close()
	} else {
		logg.Warn(context.Background(), "pubsub disabled, image events will not be published")
	}

	catalogMetrics := metrics.NewCatalogMetrics(prometheus.DefaultRegisterer)

	catalogRepo := catalog.NewRepository(dbClient.DB())
	catalogService, err := catalog.NewService(catalogRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	currency, err := enums.ParseCurrency(cfg.Pricing.DefaultCurrency)
	if err != nil {
		logg.Error(context.Background(), "invalid default currency", err)
		os.Exit(1)
	}
	resolver, err := pricing.NewResolver(catalogRepo, currency, catalogMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create price resolver", err)
		os.Exit(1)
	}

	imageRepo := images.NewRepository(dbClient.DB())
	var imagePublisher images.Publisher
	if pubsubClient != nil {
		publisher, err := images.NewPubSubPublisher(pubsubClient.CatalogPublisher())
		if err != nil {
			logg.Error(context.Background(), "failed to create image event publisher", err)
			os.Exit(1)
		}
		imagePublisher = publisher
	}
	imageService, err := images.NewService(imageRepo, dbClient, imagePublisher, logg, catalogMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create image service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	deps := routes.Deps{
		Config:         cfg,
		Logger:         logg,
		CatalogService: catalogService,
		ImageService:   imageService,
		PriceResolver:  resolver,
		Kinds:          catalogRepo,
		Redis:          redisClient,
		DBPinger:       dbClient,
		RedisPinger:    redisClient,
	}
	if pubsubClient != nil {
		deps.PubSubPinger = pubsubClient
	}

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(deps),
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		<-shutdownCtx.Done()
		graceCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(graceCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(ctx, "api server stopped")
}
