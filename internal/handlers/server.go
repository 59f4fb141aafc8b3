package handlers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/showroom/internal/auth"
	"github.com/ukydev/showroom/internal/catalog"
	"github.com/ukydev/showroom/internal/config"
	"github.com/ukydev/showroom/internal/db"
	"github.com/ukydev/showroom/internal/mailer"
	"github.com/ukydev/showroom/internal/media"
	"github.com/ukydev/showroom/internal/middleware"
)

// Deps are the collaborators the router wires into its handlers.
type Deps struct {
	Config   config.Config
	Vehicles db.VehicleCollection
	Content  db.ContentCollection
	Media    media.Uploader
	Mailer   mailer.Sender
	Auth     *auth.Service
	// Health reports whether the backing store is reachable. Optional.
	Health func(ctx context.Context) error
}

// NewRouter builds the site, admin console and JSON API routes.
func NewRouter(deps Deps) (http.Handler, error) {
	cfg := deps.Config
	hashKey, blockKey := cfg.SessionKeys()
	views, err := NewViews(deps.Content, hashKey, blockKey, cfg.SecureCookies)
	if err != nil {
		return nil, err
	}

	manager := catalog.NewManager(deps.Vehicles, deps.Media)
	public := NewPublicHandler(manager, deps.Content, views)
	authHandler := NewAuthHandler(deps.Auth, views)
	admin := NewAdminHandler(manager, deps.Content, deps.Media, views)
	mediaHandler := NewMediaHandler(deps.Media)
	contact := NewContactHandler(deps.Mailer, cfg.SMTP.From, cfg.SMTP.To)
	modelsHandler := NewModelsHandler(manager)
	limiter := middleware.NewRateLimitMiddleware()
	gate := middleware.NewRouteGate(deps.Auth)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	if cfg.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.SecurityHeaders)
	r.Use(gate.Gate)

	r.Get("/healthz", healthz(deps.Health))
	r.NotFound(public.NotFound)

	r.Route("/api", func(r chi.Router) {
		r.Post("/cloudinary/upload", mediaHandler.Upload)
		r.Post("/cloudinary/delete", mediaHandler.Delete)
		r.Get("/models", modelsHandler.List)
		r.Group(func(r chi.Router) {
			r.Use(limiter.RateLimit(cfg.ContactRateLimit, cfg.ContactRateWindow))
			r.Post("/models/contact", contact.Send)
			r.Post("/contact/send", contact.Send)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(formProtection(cfg))

		r.Get("/", public.Home)
		r.Get("/models", public.Models)
		r.Get("/models/{id}", public.Model)
		r.Get("/about", public.About)
		r.Get("/contact", public.Contact)
		r.Get("/terms", public.Terms)
		r.Get("/privacy", public.Privacy)

		r.Get("/login", authHandler.LoginPage)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)

		r.Route("/admin", func(r chi.Router) {
			r.Get("/", admin.Dashboard)
			r.Get("/content", admin.ContentPage)
			r.Post("/content", admin.SaveContent)
			r.Get("/about", admin.AboutPage)
			r.Post("/about", admin.SaveAbout)
			r.Get("/contact", admin.ContactPage)
			r.Post("/contact", admin.SaveContact)
			r.Get("/footer", admin.FooterPage)
			r.Post("/footer", admin.SaveFooter)

			r.Get("/cars", admin.Cars)
			r.Get("/cars/new", admin.NewCar)
			r.Post("/cars", admin.CreateCar)
			r.Get("/cars/{id}/edit", admin.EditCar)
			r.Post("/cars/{id}", admin.UpdateCar)
			r.Post("/cars/{id}/images/remove", admin.RemoveCarImage)
			r.Post("/cars/{id}/delete", admin.DeleteCar)
		})
	})

	return r, nil
}

// formProtection guards HTML form posts against cross-site submission.
// Without TLS every request is marked plaintext so the origin check does
// not demand an https Referer.
func formProtection(cfg config.Config) func(http.Handler) http.Handler {
	opts := []csrf.Option{
		csrf.Secure(cfg.SecureCookies),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(csrfFailure)),
	}
	if u, err := url.Parse(cfg.SiteURL); err == nil && u.Host != "" {
		opts = append(opts, csrf.TrustedOrigins([]string{u.Host}))
	}
	protect := csrf.Protect(cfg.CSRFAuthKey(), opts...)

	return func(next http.Handler) http.Handler {
		protected := protect(next)
		if cfg.SecureCookies {
			return protected
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			protected.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}
}

func csrfFailure(w http.ResponseWriter, r *http.Request) {
	log.WithError(csrf.FailureReason(r)).WithField("path", r.URL.Path).Warn("Rejected form submission")
	http.Error(w, "Forbidden - the form has expired, reload the page and try again", http.StatusForbidden)
}

func healthz(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r.Context()); err != nil {
				log.WithError(err).Warn("Health check failed")
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
