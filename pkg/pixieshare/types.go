package pixieshare

import (
	"io"
	"time"
)

// FileDescriptor is the metadata record for one uploaded file. Descriptors
// are immutable once created; the system only ever creates or reads them.
//
// The JSON field names are the on-disk contract for the metadata document
// (<upload-root>/_files.json).
type FileDescriptor struct {
	ID             string    `json:"id"`
	StoredFilename string    `json:"storedFilename"`
	OriginalName   string    `json:"originalName"`
	MimeType       string    `json:"mimeType"`
	SizeBytes      int64     `json:"sizeBytes"`
	UploadedAt     time.Time `json:"uploadedAt"`
}

// StoredBlob describes a blob freshly written by a BlobStore.
type StoredBlob struct {
	ID             string
	StoredFilename string
	SizeBytes      int64
}

// UploadInput is one file part of an upload request. Reader must deliver
// the raw bytes; Filename and DeclaredMime come from the client and are
// untrusted.
type UploadInput struct {
	Reader       io.Reader
	Filename     string
	DeclaredMime string
}

// UploadFailure reports a single file part that could not be stored.
type UploadFailure struct {
	Filename string
	Err      error
}

// BatchResult is the outcome of one upload request. Files holds descriptors
// for every part that was stored and registered; Failures holds the parts
// that were rejected. A batch can succeed partially.
type BatchResult struct {
	Files    []*FileDescriptor
	Failures []UploadFailure
}
