package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/storefront-backend/api/controllers"
	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/internal/auth"
	"github.com/angelmondragon/storefront-backend/internal/cart"
	"github.com/angelmondragon/storefront-backend/internal/checkout"
	"github.com/angelmondragon/storefront-backend/internal/products"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
)

// Deps carries everything the router hands to controllers.
type Deps struct {
	Config       *config.Config
	Logger       *logger.Logger
	SessionStore sessions.Store
	Ready        map[string]controllers.Pinger
	Gatherer     prometheus.Gatherer
	HTTPMetrics  *metrics.HTTPMetrics

	Catalog  *products.Service
	Register auth.RegisterService
	Cart     *cart.Service
	Checkout *checkout.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID(logg),
		middleware.Recoverer(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Ready))
	})
	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(deps.SessionStore, cfg.Session.CookieName, logg))

		r.Get("/", controllers.Home(deps.Catalog, logg))
		r.Get("/product", controllers.ProductListing(deps.Catalog, logg))

		r.Get("/signin", controllers.SigninForm())
		r.Post("/signin", controllers.Signin(deps.Register, logg))
		r.Get("/welcome", controllers.Welcome())

		r.Post("/add_to_cart", controllers.AddToCart(deps.Cart, logg))
		r.Post("/remove_from_cart/{index:[0-9]+}", controllers.RemoveFromCart(deps.Cart, logg))
		r.Get("/cart", controllers.CartView(deps.Cart, logg))

		r.Get("/checkout", controllers.CheckoutForm(deps.Checkout, logg))
		r.Post("/checkout", controllers.CheckoutSubmit(deps.Checkout, logg))
		r.Get("/order_confirmation/{orderId}", controllers.OrderConfirmation(deps.Checkout, logg))
	})

	return r
}
