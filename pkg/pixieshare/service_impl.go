package pixieshare

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// service implements the Service interface
type service struct {
	repository Repository
	blobs      BlobStore
	now        func() time.Time
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the descriptor repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithBlobStore sets the blob storage backend for the service
func WithBlobStore(store BlobStore) Option {
	return func(s *service) {
		s.blobs = store
	}
}

// WithClock overrides the timestamp source, used by tests
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{
		now: time.Now,
	}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if s.blobs == nil {
		return nil, fmt.Errorf("blob store is required")
	}

	return s, nil
}

func (s *service) UploadBatch(ctx context.Context, inputs []UploadInput) (*BatchResult, error) {
	if len(inputs) == 0 {
		return nil, ErrNoFiles
	}

	result := &BatchResult{}
	for _, in := range inputs {
		blob, err := s.blobs.Store(ctx, in.Reader, in.Filename)
		if err != nil {
			slog.Warn("Failed to store file", "name", in.Filename, "error", err)
			result.Failures = append(result.Failures, UploadFailure{
				Filename: in.Filename,
				Err:      err,
			})
			continue
		}

		result.Files = append(result.Files, &FileDescriptor{
			ID:             blob.ID,
			StoredFilename: blob.StoredFilename,
			OriginalName:   in.Filename,
			MimeType:       InferMimeType(in.DeclaredMime, in.Filename),
			SizeBytes:      blob.SizeBytes,
			UploadedAt:     s.now().UTC(),
		})
	}

	// One persist for the whole batch. On failure the blobs written above
	// stay on disk; the caller is told the upload did not fully succeed.
	if len(result.Files) > 0 {
		if err := s.repository.PutAll(ctx, result.Files); err != nil {
			slog.Error("Failed to persist metadata", "files", len(result.Files), "error", err)
			return result, fmt.Errorf("%w: %v", ErrPersistFailed, err)
		}
	}

	return result, nil
}

func (s *service) GetFile(ctx context.Context, id string) (*FileDescriptor, error) {
	return s.repository.Get(ctx, id)
}

func (s *service) OpenFile(ctx context.Context, id string) (*FileDescriptor, io.ReadCloser, error) {
	d, err := s.repository.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.blobs.Open(ctx, d.StoredFilename)
	if err != nil {
		return nil, nil, err
	}

	return d, rc, nil
}

func (s *service) ListFiles(ctx context.Context) ([]*FileDescriptor, error) {
	return s.repository.List(ctx)
}
