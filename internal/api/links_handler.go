package api

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pixieshare/pixieshare/pkg/pixieshare"
)

// Stored blobs are immutable, so raw bytes can be cached forever.
const rawCacheControl = "public, max-age=31536000, immutable"

// handleView renders the human-facing view page for a file. The page only
// checks metadata: it renders even when the blob was deleted out-of-band,
// and the embedded raw link surfaces the 410 on its own.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	d, err := s.svc.GetFile(r.Context(), id)
	if errors.Is(err, pixieshare.ErrFileNotFound) {
		s.renderNotFound(w)
		return
	} else if err != nil {
		slog.Error("Failed to resolve file", "id", id, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	links := linksFor(d.ID)
	s.renderPage(w, http.StatusOK, "view.html", viewPageData{
		Name:        d.OriginalName,
		Kind:        pixieshare.KindForMime(d.MimeType),
		MimeType:    d.MimeType,
		SizeBytes:   d.SizeBytes,
		UploadedAt:  d.UploadedAt,
		RawURL:      links.Raw,
		DownloadURL: links.Download,
	})
}

// handleRaw streams the stored bytes inline with the stored mime type.
func (s *Server) handleRaw(w http.ResponseWriter, r *http.Request) {
	s.serveBlob(w, r, false)
}

// handleDownload streams the stored bytes as an attachment saved under the
// original upload filename.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	s.serveBlob(w, r, true)
}

func (s *Server) serveBlob(w http.ResponseWriter, r *http.Request, asAttachment bool) {
	id := chi.URLParam(r, "id")

	d, rc, err := s.svc.OpenFile(r.Context(), id)
	switch {
	case errors.Is(err, pixieshare.ErrFileNotFound):
		http.Error(w, "file not found", http.StatusNotFound)
		return
	case errors.Is(err, pixieshare.ErrBlobMissing):
		// The id was issued but the blob is gone from disk: distinct from
		// an id that never existed.
		http.Error(w, "file content no longer available", http.StatusGone)
		return
	case err != nil:
		slog.Error("Failed to open file", "id", id, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", d.MimeType)
	w.Header().Set("Content-Length", strconv.FormatInt(d.SizeBytes, 10))
	w.Header().Set("Cache-Control", rawCacheControl)
	if asAttachment {
		w.Header().Set("Content-Disposition", attachmentDisposition(d.OriginalName))
	}

	if _, err := io.Copy(w, rc); err != nil {
		// Headers are already out; nothing to report to the client.
		slog.Warn("Failed to stream blob", "id", d.ID, "error", err)
	}
}

// attachmentDisposition builds a Content-Disposition header suggesting the
// original upload filename. FormatMediaType handles quoting and RFC 2231
// encoding of non-ASCII names.
func attachmentDisposition(name string) string {
	if name == "" {
		name = "download"
	}
	if cd := mime.FormatMediaType("attachment", map[string]string{"filename": name}); cd != "" {
		return cd
	}
	return `attachment; filename="download"`
}
