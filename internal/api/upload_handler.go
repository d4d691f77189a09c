package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/pixieshare/pixieshare/pkg/pixieshare"
)

// Memory threshold for multipart parsing; parts beyond this spool to a
// temp file owned by net/http and are removed after the request.
const multipartMemoryLimit = 32 << 20

// UploadedFileResponse is one successfully stored file in the upload response
type UploadedFileResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	View     string `json:"view"`
	Raw      string `json:"raw"`
	Download string `json:"download"`
}

// UploadErrorResponse reports one file part that could not be stored
type UploadErrorResponse struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

// UploadResponse is the response body for POST /api/upload
type UploadResponse struct {
	Files  []UploadedFileResponse `json:"files"`
	Errors []UploadErrorResponse  `json:"errors,omitempty"`
}

// handleUpload accepts one or more file parts under the repeatable form
// field "files". Each part is stored independently: a part exceeding the
// size limit is reported in errors without failing its siblings.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		slog.Warn("Failed to parse multipart form", "error", err)
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"error": "malformed multipart request"})
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"error": pixieshare.ErrNoFiles.Error()})
		return
	}

	resp := UploadResponse{Files: []UploadedFileResponse{}}

	inputs := make([]pixieshare.UploadInput, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			slog.Warn("Failed to open uploaded part", "name", fh.Filename, "error", err)
			resp.Errors = append(resp.Errors, UploadErrorResponse{
				Name:  fh.Filename,
				Error: "failed to read uploaded file",
			})
			continue
		}
		defer f.Close()

		inputs = append(inputs, pixieshare.UploadInput{
			Reader:       f,
			Filename:     fh.Filename,
			DeclaredMime: fh.Header.Get("Content-Type"),
		})
	}

	if len(inputs) > 0 {
		result, err := s.svc.UploadBatch(r.Context(), inputs)
		if err != nil {
			// Metadata persistence failed; blobs already written stay on
			// disk but none of the links in this batch are usable.
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, map[string]string{"error": pixieshare.ErrPersistFailed.Error()})
			return
		}

		for _, d := range result.Files {
			links := linksFor(d.ID)
			resp.Files = append(resp.Files, UploadedFileResponse{
				ID:       d.ID,
				Name:     d.OriginalName,
				View:     links.View,
				Raw:      links.Raw,
				Download: links.Download,
			})
		}
		for _, f := range result.Failures {
			resp.Errors = append(resp.Errors, UploadErrorResponse{
				Name:  f.Filename,
				Error: uploadErrorMessage(f.Err),
			})
		}
	}

	render.JSON(w, r, resp)
}

func uploadErrorMessage(err error) string {
	if errors.Is(err, pixieshare.ErrFileTooLarge) {
		return pixieshare.ErrFileTooLarge.Error()
	}
	return "failed to store file"
}
