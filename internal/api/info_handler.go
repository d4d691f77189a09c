package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/pixieshare/pixieshare/pkg/pixieshare"
)

// FileInfoResponse represents file information including share links
type FileInfoResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	MimeType   string    `json:"mimeType"`
	SizeBytes  int64     `json:"sizeBytes"`
	UploadedAt time.Time `json:"uploadedAt"`
	View       string    `json:"view"`
	Raw        string    `json:"raw"`
	Download   string    `json:"download"`
}

func fileInfoFor(d *pixieshare.FileDescriptor) FileInfoResponse {
	links := linksFor(d.ID)
	return FileInfoResponse{
		ID:         d.ID,
		Name:       d.OriginalName,
		MimeType:   d.MimeType,
		SizeBytes:  d.SizeBytes,
		UploadedAt: d.UploadedAt,
		View:       links.View,
		Raw:        links.Raw,
		Download:   links.Download,
	}
}

// handleFileInfo returns the descriptor for one file as JSON
func (s *Server) handleFileInfo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	d, err := s.svc.GetFile(r.Context(), id)
	if errors.Is(err, pixieshare.ErrFileNotFound) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, map[string]string{"error": "file not found"})
		return
	} else if err != nil {
		slog.Error("Failed to resolve file", "id", id, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	render.JSON(w, r, fileInfoFor(d))
}

// handleListFiles returns all stored files, newest first
func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	files, err := s.svc.ListFiles(r.Context())
	if err != nil {
		slog.Error("Failed to list files", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	out := make([]FileInfoResponse, 0, len(files))
	for _, d := range files {
		out = append(out, fileInfoFor(d))
	}

	render.JSON(w, r, out)
}
