package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type RouterConfig struct {
	RequestTimeout     time.Duration
	MaxRequestBodySize int64
}

type Handlers struct {
	Auth     *AuthHandler
	Products *ProductHandler
	Cart     *CartHandler
	Wishlist *WishlistHandler
	Orders   *OrdersHandler
	Checkout *CheckoutHandler
	Contact  *ContactHandler
}

// NewRouter assembles the full API surface behind the shared middleware
// stack and wraps it for tracing.
func NewRouter(cfg RouterConfig, h Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(middleware.RequestSize(cfg.MaxRequestBodySize))
	r.Use(SessionMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/signup", h.Auth.Signup)
		r.Post("/auth/login", h.Auth.Login)
		r.Patch("/update-profile", h.Auth.UpdateProfile)

		r.Get("/sales", h.Products.List)
		r.Post("/product", h.Products.GetProduct)
		r.Get("/products/category/{slug}", h.Products.ListByCategory)
		r.Get("/search", h.Products.Search)

		r.Post("/contact", h.Contact.CreateContact)
		r.Post("/details", h.Contact.SaveDetails)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.Cart.GetCart)
			r.Delete("/", h.Cart.ClearCart)
			r.Post("/items", h.Cart.AddItem)
			r.Put("/items/{item_id}", h.Cart.UpdateQuantity)
			r.Delete("/items/{item_id}", h.Cart.RemoveItem)
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", h.Wishlist.GetWishlist)
			r.Post("/items", h.Wishlist.AddItem)
			r.Delete("/items/{item_id}", h.Wishlist.RemoveItem)
			r.Post("/items/{item_id}/cart", h.Wishlist.MoveToCart)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.Orders.ListOrders)
			r.Delete("/{order_id}", h.Orders.CancelOrder)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", h.Checkout.PlaceOrder)
			r.Get("/total", h.Checkout.Total)
		})
	})

	return otelhttp.NewHandler(r, "storefront")
}
