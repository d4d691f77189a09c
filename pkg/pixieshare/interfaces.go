package pixieshare

import (
	"context"
	"io"
)

// BlobStore defines the interface for blob storage backends
type BlobStore interface {
	// Store writes the bytes from reader under a freshly generated id.
	// The stored filename is the id plus the extension of declaredName.
	// Returns ErrFileTooLarge when the backend's size limit is exceeded;
	// a failed store never leaves a visible partial blob behind.
	Store(ctx context.Context, reader io.Reader, declaredName string) (*StoredBlob, error)

	// Open returns a stream of the exact stored bytes, or ErrBlobMissing
	// when the blob does not exist.
	Open(ctx context.Context, storedFilename string) (io.ReadCloser, error)

	// Delete removes a stored blob. Not exposed over HTTP; intended for
	// operator cleanup and tests.
	Delete(ctx context.Context, storedFilename string) error
}

// Repository defines the interface for file descriptor persistence
type Repository interface {
	// Get returns the descriptor for id, or ErrFileNotFound.
	Get(ctx context.Context, id string) (*FileDescriptor, error)

	// Put registers a single descriptor and persists the store.
	Put(ctx context.Context, d *FileDescriptor) error

	// PutAll registers a batch of descriptors with a single persist,
	// so concurrent upload batches cannot interleave partial writes.
	PutAll(ctx context.Context, ds []*FileDescriptor) error

	// List returns all descriptors, newest first.
	List(ctx context.Context) ([]*FileDescriptor, error)
}
