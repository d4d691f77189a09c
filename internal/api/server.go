// Package api exposes the pixieshare service over HTTP: the upload API,
// the share-link surfaces (view page, raw bytes, download) and the
// embedded upload UI.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/pixieshare/pixieshare/pkg/pixieshare"
)

// Server handles the HTTP surface for a pixieshare service
type Server struct {
	svc pixieshare.Service
}

// NewServer creates a new HTTP server wrapper around the service
func NewServer(svc pixieshare.Service) *Server {
	return &Server{svc: svc}
}

// Routes sets up the HTTP routes
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	// Large uploads can take a while.
	r.Use(middleware.Timeout(15 * time.Minute))

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealthz)

	r.Post("/api/upload", s.handleUpload)
	r.Get("/api/files", s.handleListFiles)
	r.Get("/api/files/{id}", s.handleFileInfo)

	r.Get("/f/{id}", s.handleView)
	r.Get("/raw/{id}", s.handleRaw)
	r.Get("/d/{id}", s.handleDownload)

	return r
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]bool{"ok": true})
}

// FileLinks is the set of share links issued for one stored file.
type FileLinks struct {
	View     string `json:"view"`
	Raw      string `json:"raw"`
	Download string `json:"download"`
}

func linksFor(id string) FileLinks {
	return FileLinks{
		View:     "/f/" + id,
		Raw:      "/raw/" + id,
		Download: "/d/" + id,
	}
}
