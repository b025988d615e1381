// Package httpadapter is the inbound HTTP adapter. It binds the public
// API surface onto the usecase ports and maps sentinel errors onto
// status codes.
package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"bookpress/internal/auth"
	"bookpress/internal/core/port"
)

// Handler contains dependencies and routes. It holds one usecase port
// per resource plus the token manager used by the auth middleware.
type Handler struct {
	authSvc     port.AuthUseCase
	blogs       port.BlogUseCase
	books       port.BookUseCase
	orders      port.OrderUseCase
	contacts    port.ContactUseCase
	subscribers port.SubscriberUseCase
	newsletters port.NewsletterUseCase
	dashboard   port.DashboardUseCase
	uploads     port.ObjectStore
	tokens      *auth.TokenManager
	logger      *slog.Logger
	router      chi.Router
}

// Deps bundles the handler's collaborators.
type Deps struct {
	Auth        port.AuthUseCase
	Blogs       port.BlogUseCase
	Books       port.BookUseCase
	Orders      port.OrderUseCase
	Contacts    port.ContactUseCase
	Subscribers port.SubscriberUseCase
	Newsletters port.NewsletterUseCase
	Dashboard   port.DashboardUseCase
	Uploads     port.ObjectStore
	Tokens      *auth.TokenManager
	Logger      *slog.Logger
}

// NewHandler creates a handler with all routes configured.
func NewHandler(d Deps) *Handler {
	h := &Handler{
		authSvc:     d.Auth,
		blogs:       d.Blogs,
		books:       d.Books,
		orders:      d.Orders,
		contacts:    d.Contacts,
		subscribers: d.Subscribers,
		newsletters: d.Newsletters,
		dashboard:   d.Dashboard,
		uploads:     d.Uploads,
		tokens:      d.Tokens,
		logger:      d.Logger,
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", h.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.handleRegister)
			r.Post("/login", h.handleLogin)
		})

		r.Route("/blog", func(r chi.Router) {
			r.Get("/", h.handleListBlogs)
			r.Get("/{id}", h.handleGetBlog)
			r.Group(func(r chi.Router) {
				r.Use(h.requireAuth, h.requireAdmin)
				r.Post("/", h.handleCreateBlog)
				r.Put("/{id}", h.handleUpdateBlog)
				r.Delete("/{id}", h.handleDeleteBlog)
			})
		})

		r.Route("/book", func(r chi.Router) {
			r.Get("/", h.handleListBooks)
			r.Get("/{id}", h.handleGetBook)
			r.Group(func(r chi.Router) {
				r.Use(h.requireAuth, h.requireAdmin)
				r.Post("/", h.handleCreateBook)
				r.Put("/{id}", h.handleUpdateBook)
				r.Delete("/{id}", h.handleDeleteBook)
			})
		})

		r.Route("/order", func(r chi.Router) {
			r.Use(h.requireAuth)
			r.Post("/", h.handleCreateOrder)
			r.Get("/my", h.handleListMyOrders)
			r.With(h.requireAdmin).Get("/", h.handleListOrders)
		})

		r.Post("/contact", h.handleSubmitContact)
		r.With(h.requireAuth, h.requireAdmin).Get("/contact", h.handleListContacts)

		r.Route("/subscribers", func(r chi.Router) {
			r.Post("/", h.handleSubscribe)
			r.Get("/verify/{token}", h.handleVerifySubscriber)
			r.Post("/unsubscribe", h.handleUnsubscribe)
		})

		r.Route("/newsletter", func(r chi.Router) {
			r.Use(h.requireAuth, h.requireAdmin)
			r.Post("/", h.handleCreateNewsletter)
			r.Get("/", h.handleListNewsletters)
			r.Get("/{id}", h.handleGetNewsletter)
			r.Post("/{id}/send", h.handleSendNewsletter)
		})

		r.With(h.requireAuth, h.requireAdmin).Post("/uploads", h.handleUpload)
		r.With(h.requireAuth, h.requireAdmin).Get("/admin/dashboard", h.handleDashboard)
	})

	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK, map[string]string{"status": "ok"})
}
