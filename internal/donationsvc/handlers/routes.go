package handlers

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/satsangkankpul/donation-services/web"
)

const loginPath = "/login"

// SetRoutes mounts the pages and form endpoints. feed and metrics are
// optional.
func (h *Handler) SetRoutes(r *chi.Mux, feed http.HandlerFunc, metrics http.Handler) {
	r.Get("/health", h.HealthHandler)
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", web.Static()))

	// donor pages
	r.Get("/", h.page("online"))
	r.Get("/offline", h.page("offline"))
	r.Post("/offline", h.CreateOfflineDonation)
	r.Post("/pay", h.CreateOrder)
	r.Post("/payment-success", h.PaymentSuccess)
	r.Get("/receipt/{id}", h.Receipt)
	r.Get("/success", h.Success)

	// auth
	r.Get("/signup", h.page("signup"))
	r.Post("/signup", h.Signup)
	r.Get(loginPath, h.page("login"))
	r.Post(loginPath, h.Login)
	r.Get("/logout", h.Logout)

	// Secure routes
	r.Group(func(r chi.Router) {
		r.Use(h.sessions.Require(loginPath))

		r.Get("/admin", h.Admin)
		if feed != nil {
			r.Get("/admin/feed", feed)
		}
	})
}
