// Package api maps the HTTP surface onto the cms service: post and about
// CRUD, the shared-admin session guard, media upload serving, and the
// YouTube embeddability probe.
package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth"
	"github.com/go-chi/render"
	"github.com/jackrabbitrecords/backend/pkg/cms"
	"github.com/jackrabbitrecords/backend/pkg/cms/config"
	"github.com/jackrabbitrecords/backend/pkg/cms/youtube"
)

// HTTPServer wraps the cms service for HTTP access.
type HTTPServer struct {
	service   cms.Service
	checker   *youtube.Client
	tokenAuth *jwtauth.JWTAuth
	cfg       *config.ServerConfig
}

// NewHTTPServer creates a new HTTP server wrapper. checker may be nil
// when no YouTube API key is configured.
func NewHTTPServer(service cms.Service, checker *youtube.Client, cfg *config.ServerConfig) *HTTPServer {
	return &HTTPServer{
		service:   service,
		checker:   checker,
		tokenAuth: jwtauth.New("HS256", []byte(cfg.SessionSecret), nil),
		cfg:       cfg,
	}
}

// Routes sets up the HTTP routes.
func (s *HTTPServer) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsMiddleware(s.cfg.AllowedOrigins, s.cfg.Environment == "development"))
	r.Use(maxBodyBytes(s.cfg.MaxUploadBytes))
	r.Use(jwtauth.Verifier(s.tokenAuth))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.PlainText(w, r, http.StatusText(http.StatusOK))
	})
	r.Get("/healthz/ready", func(w http.ResponseWriter, r *http.Request) {
		render.PlainText(w, r, http.StatusText(http.StatusOK))
	})

	r.Get("/uploads/{filename}", s.ServeUpload)

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", s.Login)
		r.Get("/check-auth", s.CheckAuth)
		r.Get("/posts", s.ListPosts)
		r.Get("/post/{id}", s.GetPost)
		r.Get("/about", s.GetAbout)
		r.Get("/check-youtube-embed", s.CheckYouTubeEmbed)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAdmin)
			r.Post("/logout", s.Logout)
			r.Get("/admin", s.Admin)
			r.Post("/posts", s.CreatePost)
			r.Put("/posts/{id}", s.UpdatePost)
			r.Delete("/posts/{id}", s.DeletePost)
			r.Post("/about", s.UpdateAbout)
			r.Put("/about", s.UpdateAbout)
			r.Post("/uploads/presign", s.PresignUpload)
		})
	})

	return r
}

// writeError renders a JSON error payload with the given status.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, map[string]string{"error": message})
}

// writeBodyError maps request-body decode failures: oversize bodies to
// 413, anything else to 400.
func writeBodyError(w http.ResponseWriter, r *http.Request, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		writeError(w, r, http.StatusRequestEntityTooLarge, "File too large")
		return
	}
	writeError(w, r, http.StatusBadRequest, "Invalid request body")
}

// writeServiceError maps service errors onto the HTTP error taxonomy.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.Is(err, cms.ErrPostNotFound):
		writeError(w, r, http.StatusNotFound, "Post not found")
	case errors.Is(err, cms.ErrMissingFields):
		writeError(w, r, http.StatusBadRequest, "Missing fields")
	case errors.Is(err, cms.ErrInvalidExtension):
		writeError(w, r, http.StatusBadRequest, "File type not allowed")
	case errors.As(err, &maxBytesErr):
		writeError(w, r, http.StatusRequestEntityTooLarge, "File too large")
	default:
		slog.Error("request failed", "err", err)
		writeError(w, r, http.StatusInternalServerError, "Internal server error")
	}
}
