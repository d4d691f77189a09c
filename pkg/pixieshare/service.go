package pixieshare

import (
	"context"
	"io"
)

// Service defines the main interface for the pixieshare library
type Service interface {
	// UploadBatch stores every input independently and registers the
	// resulting descriptors with one persist. A failure storing one part
	// does not abort its siblings; per-part failures are reported in the
	// result. A non-nil error means the metadata document could not be
	// persisted (already-written blobs are not rolled back).
	UploadBatch(ctx context.Context, inputs []UploadInput) (*BatchResult, error)

	// GetFile resolves a descriptor by id.
	GetFile(ctx context.Context, id string) (*FileDescriptor, error)

	// OpenFile resolves a descriptor and opens its blob for reading.
	// Returns ErrFileNotFound for unknown ids and ErrBlobMissing when the
	// descriptor exists but the blob is gone from storage.
	OpenFile(ctx context.Context, id string) (*FileDescriptor, io.ReadCloser, error)

	// ListFiles returns all descriptors, newest first.
	ListFiles(ctx context.Context) ([]*FileDescriptor, error)
}
