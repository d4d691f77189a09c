package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pixieshare/pixieshare/pkg/pixieshare"
)

// Repository implements pixieshare.Repository using in-memory storage
type Repository struct {
	mu    sync.RWMutex
	files map[string]*pixieshare.FileDescriptor
}

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{
		files: make(map[string]*pixieshare.FileDescriptor),
	}
}

func (r *Repository) Get(ctx context.Context, id string) (*pixieshare.FileDescriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, exists := r.files[id]
	if !exists {
		return nil, pixieshare.ErrFileNotFound
	}

	// Return a copy to prevent external modifications
	descCopy := *d
	return &descCopy, nil
}

func (r *Repository) Put(ctx context.Context, d *pixieshare.FileDescriptor) error {
	return r.PutAll(ctx, []*pixieshare.FileDescriptor{d})
}

func (r *Repository) PutAll(ctx context.Context, ds []*pixieshare.FileDescriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, d := range ds {
		descCopy := *d
		r.files[d.ID] = &descCopy
	}

	return nil
}

func (r *Repository) List(ctx context.Context) ([]*pixieshare.FileDescriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*pixieshare.FileDescriptor, 0, len(r.files))
	for _, d := range r.files {
		descCopy := *d
		out = append(out, &descCopy)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UploadedAt.After(out[j].UploadedAt)
	})

	return out, nil
}

// Len returns the number of descriptors currently registered.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.files)
}
