package pixieshare

import (
	"mime"
	"path/filepath"
	"strings"
)

// MimeTypeBinary is the generic fallback content type.
const MimeTypeBinary = "application/octet-stream"

// InferMimeType resolves the content type for an upload. Precedence:
// the client-declared type wins unless it is empty or generic, then the
// filename extension is looked up, then the generic binary type.
func InferMimeType(declared, filename string) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != MimeTypeBinary {
		return declared
	}
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if ext != "" {
		if byExt := mime.TypeByExtension(ext); byExt != "" {
			return byExt
		}
	}
	return MimeTypeBinary
}

// ViewerKind classifies a content type for the view page.
type ViewerKind string

const (
	ViewerImage ViewerKind = "image"
	ViewerVideo ViewerKind = "video"
	ViewerAudio ViewerKind = "audio"
	ViewerPDF   ViewerKind = "pdf"
	ViewerOther ViewerKind = "other"
)

// KindForMime maps a mime type to the viewer used on the view page.
// Unclassified types fall back to ViewerOther, which renders a plain
// download-only notice.
func KindForMime(mimeType string) ViewerKind {
	// Parameters like "; charset=utf-8" do not affect classification.
	if mt, _, err := mime.ParseMediaType(mimeType); err == nil {
		mimeType = mt
	}
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return ViewerImage
	case strings.HasPrefix(mimeType, "video/"):
		return ViewerVideo
	case strings.HasPrefix(mimeType, "audio/"):
		return ViewerAudio
	case mimeType == "application/pdf":
		return ViewerPDF
	default:
		return ViewerOther
	}
}
