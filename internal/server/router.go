// Package server assembles the HTTP router.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/fileport/service/internal/applog"
	appMiddleware "github.com/fileport/service/internal/middleware"
	"github.com/fileport/service/internal/upload"
)

// Deps are the handlers and settings the router is built from.
type Deps struct {
	Uploads   *upload.Handler
	ListFiles bool // mount GET /files; requires upload records

	Logs      *applog.Handler
	JWTSecret string

	// UploadDir is served at /uploads/*; empty when objects live elsewhere.
	UploadDir string
	// WebDir is the frontend served behind the auth gate.
	WebDir       string
	GateVerifier appMiddleware.Verifier
}

// NewRouter returns the service's HTTP handler.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// API
	r.Group(func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			MaxAge:         300,
		}))

		r.Route("/files", func(r chi.Router) {
			r.Post("/upload", d.Uploads.Upload)
			if d.ListFiles {
				r.Get("/", d.Uploads.List)
			}
		})

		r.Route("/logs", func(r chi.Router) {
			r.Use(appMiddleware.RequireAuth(d.JWTSecret))
			r.Post("/", d.Logs.Append)
			r.Post("/{filename}", d.Logs.AppendTo)
		})
	})

	if d.UploadDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(d.UploadDir))))
	}

	// Frontend pages
	r.Group(func(r chi.Router) {
		r.Use(appMiddleware.Gate(d.GateVerifier))
		r.Handle("/*", http.FileServer(http.Dir(d.WebDir)))
	})

	return r
}
