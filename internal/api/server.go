package api

import (
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/rs/cors"
	"github.com/unrolled/secure"

	"turismocombita/internal/auth"
	"turismocombita/internal/config"
	"turismocombita/internal/content"
	"turismocombita/internal/httpx"
	"turismocombita/internal/media"
	"turismocombita/internal/store"
)

type Server struct {
	cfg     config.Config
	store   store.Store
	users   *auth.Users
	tokens  *auth.Issuer
	uploads *media.Uploader
	hub     *liveHub
	now     func() time.Time
}

func NewServer(cfg config.Config, st store.Store, users *auth.Users, tokens *auth.Issuer, uploads *media.Uploader) *Server {
	s := &Server{
		cfg:     cfg,
		store:   st,
		users:   users,
		tokens:  tokens,
		uploads: uploads,
		hub:     newLiveHub(),
		now:     time.Now,
	}
	go s.hub.run()
	return s
}

// Close disconnects live feed clients.
func (s *Server) Close() {
	s.hub.stop()
}

// NotifyDocumentChanged tells admin clients the data file was edited
// outside the API.
func (s *Server) NotifyDocumentChanged() {
	s.hub.publish("documento.modificado", map[string]string{"documento": store.DocumentName})
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(s.securityHeaders())
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler)
	r.Use(s.rateLimit(s.cfg.RateLimits.Global, s.cfg.RateLimits.GlobalEvery, "Demasiadas solicitudes, intenta de nuevo más tarde"))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Route("/auth", func(r chi.Router) {
			r.With(s.rateLimit(s.cfg.RateLimits.Login, s.cfg.RateLimits.LoginEvery, "Demasiados intentos de login, intenta de nuevo en 15 minutos")).
				Post("/login", s.handleLogin)
			r.With(s.requireToken).Get("/me", s.handleMe)
			r.With(s.requireToken).Post("/cambiar-password", s.handleChangePassword)
			r.With(s.requireToken, s.requireRole(auth.RoleAdmin)).Post("/crear-usuario", s.handleCreateUser)
		})

		mountResource(s, r, restaurantes)
		mountResource(s, r, hoteles)
		mountResource(s, r, eventos)
		mountResource(s, r, blog)
		mountResource(s, r, artesanos)
		mountResource(s, r, guias)
		mountResource(s, r, videos)
		mountResource(s, r, galeria, s.galleryImageRoutes)

		r.Route("/contacto", func(r chi.Router) {
			r.With(s.rateLimit(s.cfg.RateLimits.Contact, s.cfg.RateLimits.ContactEvery, "Demasiados mensajes enviados, intenta de nuevo más tarde")).
				Post("/", s.handleContactCreate)
			r.Group(func(r chi.Router) {
				r.Use(s.requireToken, s.requireRole(auth.RoleAdmin))
				r.Get("/", s.handleContactList)
				r.Get("/{id}", s.handleContactGet)
				r.Put("/{id}/leido", s.handleContactMarkRead)
				r.Delete("/{id}", s.handleContactDelete)
			})
		})

		r.Get("/estadisticas", s.handleStats)
		r.Get("/estadisticas/dashboard", s.handleDashboard)

		r.With(tokenFromQuery, s.requireToken).Get("/admin/ws", s.handleLiveFeed)

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			httpx.WriteError(w, http.StatusNotFound, "Ruta no encontrada")
		})
	})

	mountStatic(r, "/uploads", s.cfg.UploadsDir)
	mountStatic(r, "/assets", s.cfg.AssetsDir)
	if s.cfg.AssetsDir != "" {
		mountStatic(r, "/imagenes", filepath.Join(s.cfg.AssetsDir, "images"))
	}
	if s.cfg.AdminDir != "" {
		r.Handle("/admin", http.RedirectHandler("/admin/", http.StatusMovedPermanently))
		r.Handle("/admin/*", http.StripPrefix("/admin", SiteHandler(s.cfg.AdminDir)))
	}
	if s.cfg.SiteDir != "" {
		r.Handle("/*", SiteHandler(s.cfg.SiteDir))
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": content.Timestamp(s.now()),
	})
}

func (s *Server) securityHeaders() func(http.Handler) http.Handler {
	csp := strings.Join([]string{
		"default-src 'self'",
		"script-src 'self' 'unsafe-inline' 'unsafe-eval' https://cdnjs.cloudflare.com https://maps.googleapis.com https://maps.gstatic.com https://unpkg.com",
		"style-src 'self' 'unsafe-inline' https://cdnjs.cloudflare.com https://fonts.googleapis.com https://unpkg.com",
		"img-src 'self' data: blob: https: http:",
		"font-src 'self' https://fonts.gstatic.com https://cdnjs.cloudflare.com",
		"frame-src 'self' https://www.google.com https://www.youtube.com https://youtube.com",
		"connect-src 'self' https://maps.googleapis.com",
		"script-src-attr 'unsafe-inline'",
	}, "; ")

	sm := secure.New(secure.Options{
		ContentSecurityPolicy:   csp,
		ContentTypeNosniff:      true,
		CustomFrameOptionsValue: "SAMEORIGIN",
		ReferrerPolicy:          "no-referrer",
		STSSeconds:              15552000,
		STSIncludeSubdomains:    true,
		IsDevelopment:           s.cfg.Env != "production",
	})
	return sm.Handler
}

// rateLimit answers 429 with the JSON error shape the site scripts show.
func (s *Server) rateLimit(limit int, window time.Duration, message string) func(http.Handler) http.Handler {
	return httprate.Limit(limit, window,
		httprate.WithKeyFuncs(httprate.KeyByRealIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			httpx.WriteError(w, http.StatusTooManyRequests, message)
		}),
	)
}
