package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/pixieshare/pixieshare/pkg/pixieshare"
)

// Backend is a filesystem implementation of the pixieshare.BlobStore
// interface. Blobs live directly in the base directory, named id plus the
// original extension.
type Backend struct {
	baseDir  string
	maxBytes int64
}

// Config options for the filesystem backend
type Config struct {
	BaseDir  string // Base directory for storing blobs
	MaxBytes int64  // Per-file size limit; 0 means unlimited
}

// New creates a new filesystem storage backend
func New(config Config) (*Backend, error) {
	if config.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}

	if err := os.MkdirAll(config.BaseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &Backend{
		baseDir:  config.BaseDir,
		maxBytes: config.MaxBytes,
	}, nil
}

// Store writes the incoming bytes to a temp file and renames it into place
// once the copy completes, so a reader can never observe a partial blob and
// an interrupted upload leaves nothing visible behind. The size limit is
// enforced mid-stream: the copy stops as soon as the limit is crossed.
func (b *Backend) Store(ctx context.Context, reader io.Reader, declaredName string) (*pixieshare.StoredBlob, error) {
	id := uuid.NewString()
	storedFilename := id + extensionOf(declaredName)

	tmp, err := os.CreateTemp(b.baseDir, ".upload-*")
	if err != nil {
		return nil, &pixieshare.StorageError{Op: "store", Key: storedFilename, Err: err}
	}
	tmpPath := tmp.Name()
	discard := func() {
		tmp.Close()
		os.Remove(tmpPath)
	}

	written, err := b.copyCapped(tmp, reader)
	if err != nil {
		discard()
		if errors.Is(err, pixieshare.ErrFileTooLarge) {
			return nil, err
		}
		return nil, &pixieshare.StorageError{Op: "store", Key: storedFilename, Err: err}
	}

	// Flush to disk before publishing the blob under its final name.
	if err := tmp.Sync(); err != nil {
		discard()
		return nil, &pixieshare.StorageError{Op: "store", Key: storedFilename, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return nil, &pixieshare.StorageError{Op: "store", Key: storedFilename, Err: err}
	}
	if err := os.Rename(tmpPath, filepath.Join(b.baseDir, storedFilename)); err != nil {
		os.Remove(tmpPath)
		return nil, &pixieshare.StorageError{Op: "store", Key: storedFilename, Err: err}
	}

	return &pixieshare.StoredBlob{
		ID:             id,
		StoredFilename: storedFilename,
		SizeBytes:      written,
	}, nil
}

// copyCapped copies reader into dst, failing with ErrFileTooLarge as soon
// as more than maxBytes have been read.
func (b *Backend) copyCapped(dst io.Writer, reader io.Reader) (int64, error) {
	if b.maxBytes <= 0 {
		return io.Copy(dst, reader)
	}

	written, err := io.CopyN(dst, reader, b.maxBytes+1)
	if err == io.EOF {
		return written, nil
	}
	if err != nil {
		return written, err
	}
	return written, pixieshare.ErrFileTooLarge
}

// Open returns the exact stored bytes for a blob. The name is resolved
// strictly within the base directory; a missing file maps to ErrBlobMissing
// without a separate existence check (no stat-then-open race).
func (b *Backend) Open(ctx context.Context, storedFilename string) (io.ReadCloser, error) {
	path, err := b.resolve(storedFilename)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, pixieshare.ErrBlobMissing
	} else if err != nil {
		return nil, &pixieshare.StorageError{Op: "open", Key: storedFilename, Err: err}
	}

	return f, nil
}

// Delete removes a stored blob from disk.
func (b *Backend) Delete(ctx context.Context, storedFilename string) error {
	path, err := b.resolve(storedFilename)
	if err != nil {
		return err
	}

	if err := os.Remove(path); errors.Is(err, iofs.ErrNotExist) {
		return pixieshare.ErrBlobMissing
	} else if err != nil {
		return &pixieshare.StorageError{Op: "delete", Key: storedFilename, Err: err}
	}

	return nil
}

// resolve validates that a stored filename names a regular entry directly
// inside the base directory. Ids are generated, never user-supplied, but
// the check keeps a corrupted metadata document from reaching outside the
// blob root.
func (b *Backend) resolve(storedFilename string) (string, error) {
	if storedFilename == "" ||
		storedFilename != filepath.Base(storedFilename) ||
		strings.HasPrefix(storedFilename, ".") {
		return "", &pixieshare.StorageError{
			Op:  "resolve",
			Key: storedFilename,
			Err: errors.New("invalid stored filename"),
		}
	}
	return filepath.Join(b.baseDir, storedFilename), nil
}

// extensionOf extracts a usable extension from the client-declared
// filename. The base name is taken first so a path-like name cannot smuggle
// separators into the stored filename.
func extensionOf(declaredName string) string {
	ext := filepath.Ext(filepath.Base(declaredName))
	if ext == "." {
		return ""
	}
	return ext
}
