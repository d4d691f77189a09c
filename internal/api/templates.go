package api

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/pixieshare/pixieshare/pkg/pixieshare"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.New("").Funcs(template.FuncMap{
	"humanSize": humanSize,
}).ParseFS(templateFS, "templates/*.html"))

// viewPageData feeds the view page template. OriginalName is untrusted
// client input; html/template escapes it on render.
type viewPageData struct {
	Name        string
	Kind        pixieshare.ViewerKind
	MimeType    string
	SizeBytes   int64
	UploadedAt  time.Time
	RawURL      string
	DownloadURL string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, "index.html", nil)
}

func (s *Server) renderNotFound(w http.ResponseWriter) {
	s.renderPage(w, http.StatusNotFound, "notfound.html", nil)
}

func (s *Server) renderPage(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		slog.Error("Failed to render template", "template", name, "error", err)
	}
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %s", float64(n)/float64(div), []string{"KB", "MB", "GB", "TB"}[exp])
}
