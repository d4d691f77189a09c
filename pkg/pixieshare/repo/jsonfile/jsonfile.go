// Package jsonfile persists file descriptors as a single JSON document,
// rewritten in full on every change via an atomic temp-write-and-rename.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pixieshare/pixieshare/pkg/pixieshare"
)

// Store implements pixieshare.Repository backed by one JSON file mapping
// id to descriptor. The whole mapping lives in memory; the document is
// loaded once at construction and rewritten on every mutation.
//
// The write lock serializes mutation and persistence together, so two
// concurrent upload batches can never interleave their rewrites or lose
// each other's entries.
type Store struct {
	mu    sync.RWMutex
	path  string
	files map[string]*pixieshare.FileDescriptor
}

// New creates a store persisting to path, loading the existing document if
// present. A missing document is an empty store. A corrupt document is
// logged and treated as empty rather than failing startup: this system
// trades historical metadata for availability.
func New(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("metadata file path is required")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create metadata directory: %w", err)
	}

	s := &Store{
		path:  path,
		files: make(map[string]*pixieshare.FileDescriptor),
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	} else if err != nil {
		slog.Warn("Failed to read metadata document, starting empty", "path", path, "error", err)
		return s, nil
	}

	if err := json.Unmarshal(data, &s.files); err != nil {
		slog.Warn("Metadata document is corrupt, starting empty", "path", path, "error", err)
		s.files = make(map[string]*pixieshare.FileDescriptor)
	}

	return s, nil
}

func (s *Store) Get(ctx context.Context, id string) (*pixieshare.FileDescriptor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, exists := s.files[id]
	if !exists {
		return nil, pixieshare.ErrFileNotFound
	}

	// Return a copy to prevent external modifications
	descCopy := *d
	return &descCopy, nil
}

func (s *Store) Put(ctx context.Context, d *pixieshare.FileDescriptor) error {
	return s.PutAll(ctx, []*pixieshare.FileDescriptor{d})
}

func (s *Store) PutAll(ctx context.Context, ds []*pixieshare.FileDescriptor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range ds {
		descCopy := *d
		s.files[d.ID] = &descCopy
	}

	return s.persistLocked()
}

func (s *Store) List(ctx context.Context) ([]*pixieshare.FileDescriptor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*pixieshare.FileDescriptor, 0, len(s.files))
	for _, d := range s.files {
		descCopy := *d
		out = append(out, &descCopy)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UploadedAt.After(out[j].UploadedAt)
	})

	return out, nil
}

// Len returns the number of descriptors currently registered.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}

// persistLocked serializes the full mapping and replaces the document
// atomically. The temp file lives in the same directory as the target so
// the rename never crosses filesystems; a crash mid-write leaves the
// previous valid document untouched. Callers must hold the write lock.
func (s *Store) persistLocked() error {
	data, err := json.MarshalIndent(s.files, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode metadata document: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp metadata file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write metadata document: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to sync metadata document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close metadata document: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace metadata document: %w", err)
	}

	return nil
}
