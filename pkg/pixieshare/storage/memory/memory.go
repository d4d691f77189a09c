package memory

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/pixieshare/pixieshare/pkg/pixieshare"
)

// Backend is an in-memory implementation of the pixieshare.BlobStore
// interface, used in tests and for throwaway development servers.
type Backend struct {
	mu       sync.RWMutex
	objects  map[string][]byte
	maxBytes int64
}

// New creates a new in-memory storage backend
func New() *Backend {
	return &Backend{
		objects: make(map[string][]byte),
	}
}

// NewWithLimit creates an in-memory backend enforcing a per-file size limit
func NewWithLimit(maxBytes int64) *Backend {
	b := New()
	b.maxBytes = maxBytes
	return b
}

// Store buffers the incoming bytes in memory under a fresh id.
func (b *Backend) Store(ctx context.Context, reader io.Reader, declaredName string) (*pixieshare.StoredBlob, error) {
	id := uuid.NewString()
	ext := filepath.Ext(filepath.Base(declaredName))
	if ext == "." {
		ext = ""
	}
	storedFilename := id + ext

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, &pixieshare.StorageError{Op: "store", Key: storedFilename, Err: err}
	}
	if b.maxBytes > 0 && int64(len(data)) > b.maxBytes {
		return nil, pixieshare.ErrFileTooLarge
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[storedFilename] = data

	return &pixieshare.StoredBlob{
		ID:             id,
		StoredFilename: storedFilename,
		SizeBytes:      int64(len(data)),
	}, nil
}

// Open returns a reader over the stored bytes.
func (b *Backend) Open(ctx context.Context, storedFilename string) (io.ReadCloser, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.objects[storedFilename]
	if !exists {
		return nil, pixieshare.ErrBlobMissing
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

// Delete removes a stored blob.
func (b *Backend) Delete(ctx context.Context, storedFilename string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.objects[storedFilename]; !exists {
		return pixieshare.ErrBlobMissing
	}
	delete(b.objects, storedFilename)

	return nil
}
