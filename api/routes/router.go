package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yarotec/storefront/api/controllers"
	"github.com/yarotec/storefront/api/middleware"
	"github.com/yarotec/storefront/internal/browse"
	"github.com/yarotec/storefront/internal/catalog"
	"github.com/yarotec/storefront/pkg/config"
	"github.com/yarotec/storefront/pkg/logger"
)

// Dependencies are the collaborators the router hands to controllers.
type Dependencies struct {
	Config    *config.Config
	Logger    *logger.Logger
	Storage   controllers.Pinger
	Catalog   *catalog.Store
	Projector *browse.Projector
	Carts     controllers.CartRegistry
	Checkout  controllers.CheckoutService
	// Gatherer backs /metrics; nil uses the default registry.
	Gatherer prometheus.Gatherer
}

func NewRouter(deps Dependencies) http.Handler {
	cfg, logg := deps.Config, deps.Logger
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	promotionLimit := cfg.Catalog.PromotionLimit
	if promotionLimit <= 0 {
		promotionLimit = catalog.DefaultPromotionLimit
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Storage, deps.Catalog))
	})
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", controllers.ProductList(deps.Catalog, deps.Projector, logg))
		r.Get("/products/promotions", controllers.ProductPromotions(deps.Catalog, deps.Projector, promotionLimit, logg))
		r.Get("/products/{productId}", controllers.ProductDetail(deps.Catalog, deps.Projector, logg))
		r.Get("/categories", controllers.CategoryList(deps.Catalog))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(deps.Carts, logg))
				r.Delete("/", controllers.CartClear(deps.Carts, logg))
				r.Post("/items", controllers.CartAddItem(deps.Carts, deps.Catalog, logg))
				r.Patch("/items/{productId}", controllers.CartUpdateItem(deps.Carts, logg))
				r.Delete("/items/{productId}", controllers.CartRemoveItem(deps.Carts, logg))
			})

			r.Post("/checkout", controllers.CheckoutSubmit(deps.Carts, deps.Checkout, logg))
			r.Post("/contact", controllers.ContactSubmit(deps.Checkout, logg))
			r.Post("/service-requests", controllers.ServiceRequestSubmit(deps.Checkout, logg))
		})
	})

	return r
}
