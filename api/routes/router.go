package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/threadz-backend/api/controllers"
	"github.com/angelmondragon/threadz-backend/api/middleware"
	"github.com/angelmondragon/threadz-backend/internal/catalog"
	"github.com/angelmondragon/threadz-backend/internal/images"
	"github.com/angelmondragon/threadz-backend/pkg/config"
	"github.com/angelmondragon/threadz-backend/pkg/logger"
	"github.com/angelmondragon/threadz-backend/pkg/redis"
)

// Deps bundles everything the HTTP surface needs. Optional dependencies may
// be nil; the affected endpoints degrade instead of panicking.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	CatalogService catalog.Service
	ImageService   images.Service
	PriceResolver  controllers.PriceResolver
	Kinds          controllers.KindLister
	Redis          *redis.Client
	DBPinger       pinger
	RedisPinger    pinger
	PubSubPinger   pinger
}

type pinger interface {
	Ping(ctx context.Context) error
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, controllers.ReadinessDeps(deps.DBPinger, deps.RedisPinger, deps.PubSubPinger)))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/api/public/ping", controllers.PublicPing())

	r.Route("/api/v1/catalog", func(r chi.Router) {
		var idempotencyStore redis.IdempotencyStore
		if deps.Redis != nil {
			idempotencyStore = deps.Redis
			writePolicy := middleware.NewWriteRateLimitPolicy("catalog_write", time.Minute, 60)
			r.Use(middleware.WriteRateLimit(writePolicy, deps.Redis, logg))
		}
		r.Use(middleware.Idempotency(idempotencyStore, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.CatalogListProducts(deps.CatalogService, logg))
			r.Post("/", controllers.CatalogCreateProduct(deps.CatalogService, logg))
			r.Route("/{productId}", func(r chi.Router) {
				r.Get("/", controllers.CatalogGetProduct(deps.CatalogService, logg))
				r.Patch("/", controllers.CatalogUpdateProduct(deps.CatalogService, logg))
				r.Delete("/", controllers.CatalogDeleteProduct(deps.CatalogService, logg))
				r.Get("/price", controllers.CatalogProductPrice(deps.PriceResolver, logg))
				r.Put("/overrides", controllers.CatalogReplaceOverrides(deps.CatalogService, logg))
				r.Post("/variants", controllers.CatalogCreateVariant(deps.CatalogService, logg))
				r.Post("/images", controllers.CatalogAddImage(deps.ImageService, logg))
				r.Put("/translations/{language}", controllers.CatalogUpsertTranslation(deps.CatalogService, logg))
			})
		})

		r.Route("/variants/{variantId}", func(r chi.Router) {
			r.Delete("/", controllers.CatalogDeleteVariant(deps.CatalogService, logg))
			r.Get("/price", controllers.CatalogVariantPrice(deps.PriceResolver, logg))
		})

		r.Delete("/images/{imageId}", controllers.CatalogDeleteImage(deps.ImageService, logg))

		r.Route("/discount-groups", func(r chi.Router) {
			r.Get("/", controllers.CatalogListDiscountGroups(deps.CatalogService, logg))
			r.Post("/", controllers.CatalogCreateDiscountGroup(deps.CatalogService, logg))
			r.Patch("/{groupId}", controllers.CatalogUpdateDiscountGroup(deps.CatalogService, logg))
			r.Delete("/{groupId}", controllers.CatalogDeleteDiscountGroup(deps.CatalogService, logg))
		})

		r.Route("/manufacturers", func(r chi.Router) {
			r.Get("/", controllers.CatalogListManufacturers(deps.CatalogService, logg))
			r.Post("/", controllers.CatalogCreateManufacturer(deps.CatalogService, logg))
		})

		r.Get("/kinds", controllers.CatalogListKinds(deps.Kinds, logg))
	})

	return r
}
