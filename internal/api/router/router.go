// Package router wires the HTTP surface: public site endpoints, the chat
// widget and the JWT-protected admin back office.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/serenaspa/massoterapia-platform/internal/chat"
	"github.com/serenaspa/massoterapia-platform/internal/http/handlers"
	httpmiddleware "github.com/serenaspa/massoterapia-platform/internal/http/middleware"
	"github.com/serenaspa/massoterapia-platform/internal/reports"
	"github.com/serenaspa/massoterapia-platform/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	LeadsHandler       *handlers.LeadsHandler
	ContactHandler     *handlers.ContactHandler
	BookingsHandler    *handlers.BookingsHandler
	ClientsHandler     *handlers.ClientsHandler
	CatalogHandler     *handlers.CatalogHandler
	ChatHandler        *chat.Handler
	ReportsHandler     *reports.Handler
	AdminAuthSecret    string
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public site endpoints
	r.Group(func(public chi.Router) {
		public.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
		// The write endpoints of the public site are rate limited per IP.
		forms := public.With(httpmiddleware.RateLimit(1, 5))
		if cfg.LeadsHandler != nil {
			forms.Post("/leads/whatsapp", cfg.LeadsHandler.CaptureLead)
		}
		if cfg.ContactHandler != nil {
			forms.Post("/contact", cfg.ContactHandler.SubmitContact)
		}
		if cfg.BookingsHandler != nil {
			forms.Post("/bookings", cfg.BookingsHandler.CreateBooking)
		}
		if cfg.CatalogHandler != nil {
			public.Get("/catalog", cfg.CatalogHandler.GetCatalog)
		}
		if cfg.ChatHandler != nil {
			public.Route("/chat", func(r chi.Router) {
				// Chat is conversational, so it gets a roomier bucket than
				// the forms, but it is still per-IP limited.
				r.With(httpmiddleware.RateLimit(2, 10)).Post("/message", cfg.ChatHandler.HandleMessage)
				r.Get("/history", cfg.ChatHandler.HandleHistory)
				r.Get("/ws", cfg.ChatHandler.HandleWebSocket)
			})
		}
	})

	// Admin routes (protected by HMAC JWT)
	if cfg.AdminAuthSecret != "" {
		r.Route("/admin", func(admin chi.Router) {
			admin.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))
			if cfg.LeadsHandler != nil {
				admin.Get("/leads", cfg.LeadsHandler.ListLeads)
				admin.Post("/leads/{id}/convert", cfg.LeadsHandler.ConvertLead)
			}
			if cfg.ContactHandler != nil {
				admin.Get("/contacts", cfg.ContactHandler.ListContacts)
			}
			if cfg.BookingsHandler != nil {
				admin.Get("/bookings", cfg.BookingsHandler.ListBookings)
				admin.Patch("/bookings/{id}", cfg.BookingsHandler.UpdateBooking)
			}
			if cfg.ClientsHandler != nil {
				admin.Get("/clients", cfg.ClientsHandler.ListClients)
				admin.Post("/clients", cfg.ClientsHandler.CreateClient)
			}
			if cfg.ReportsHandler != nil {
				admin.Get("/reports/{reportType}", cfg.ReportsHandler.GetReport)
			}
		})
	}

	return r
}
