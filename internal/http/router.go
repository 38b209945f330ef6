package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// RouterDeps bundles the handlers the router mounts.
type RouterDeps struct {
	Cart       *CartHandler
	Catalog    *CatalogHandler
	Orders     *OrdersHandler
	Checkout   *CheckoutHandler
	Newsletter *NewsletterHandler
	Admin      *AdminHandler
	Log        logrus.FieldLogger
	Timeout    time.Duration
}

// NewRouter assembles the storefront's HTTP surface.
func NewRouter(deps RouterDeps) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware(deps.Log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(deps.Timeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", deps.Cart.GetCart)
			r.Delete("/", deps.Cart.ClearCart)
			r.Post("/items", deps.Cart.AddItem)
			r.Put("/items/{product_id}", deps.Cart.UpdateQuantity)
			r.Delete("/items/{product_id}", deps.Cart.RemoveItem)
		})

		r.Get("/categories", deps.Catalog.GetCategories)
		r.Get("/categories/{slug}/products", deps.Catalog.GetCategoryProducts)
		r.Get("/products", deps.Catalog.GetProducts)
		r.Get("/products/featured", deps.Catalog.GetFeaturedProducts)
		r.Get("/products/{id}", deps.Catalog.GetProduct)
		r.Get("/banners", deps.Catalog.GetBanners)
		r.Get("/gallery", deps.Catalog.GetGallery)

		r.Post("/checkout", deps.Checkout.SubmitOrder)
		r.Get("/orders/{number}", deps.Orders.GetOrder)

		r.Post("/newsletter/subscribe", deps.Newsletter.Subscribe)
		r.Post("/newsletter/unsubscribe", deps.Newsletter.Unsubscribe)

		if deps.Admin != nil {
			r.Mount("/admin", deps.Admin.Routes())
		}
	})

	return r
}
