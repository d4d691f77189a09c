package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixieshare/pixieshare/pkg/pixieshare"
)

func testDescriptor(id string) *pixieshare.FileDescriptor {
	return &pixieshare.FileDescriptor{
		ID:             id,
		StoredFilename: id + ".txt",
		OriginalName:   "original-" + id + ".txt",
		MimeType:       "text/plain",
		SizeBytes:      42,
		UploadedAt:     time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestNew_MissingDocumentIsEmptyStore(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "_files.json"))
	require.NoError(t, err)
	assert.Equal(t, 0, store.Len())
}

func TestPutAndGet(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "_files.json"))
	require.NoError(t, err)
	ctx := context.Background()

	d := testDescriptor("abc")
	require.NoError(t, store.Put(ctx, d))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, d, got)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, pixieshare.ErrFileNotFound)
}

func TestPersistenceSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "_files.json")
	ctx := context.Background()

	store, err := New(path)
	require.NoError(t, err)
	require.NoError(t, store.PutAll(ctx, []*pixieshare.FileDescriptor{
		testDescriptor("one"),
		testDescriptor("two"),
	}))

	reloaded, err := New(path)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Len())

	got, err := reloaded.Get(ctx, "one")
	require.NoError(t, err)
	assert.Equal(t, testDescriptor("one"), got)
}

func TestDocumentFieldNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "_files.json")

	store, err := New(path)
	require.NoError(t, err)
	require.NoError(t, store.Put(context.Background(), testDescriptor("abc")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Contains(t, doc, "abc")

	entry := doc["abc"]
	for _, field := range []string{"id", "storedFilename", "originalName", "mimeType", "sizeBytes", "uploadedAt"} {
		assert.Contains(t, entry, field)
	}
}

func TestCorruptDocumentStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "_files.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json at all"), 0644))

	store, err := New(path)
	require.NoError(t, err)
	assert.Equal(t, 0, store.Len())

	// The store is usable and overwrites the corrupt document on first put.
	require.NoError(t, store.Put(context.Background(), testDescriptor("fresh")))

	reloaded, err := New(path)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Len())
}

func TestGetReturnsCopy(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "_files.json"))
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, testDescriptor("abc")))

	first, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	first.OriginalName = "mutated"

	second, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "original-abc.txt", second.OriginalName)
}

func TestConcurrentPutsLoseNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "_files.json")
	store, err := New(path)
	require.NoError(t, err)
	ctx := context.Background()

	const writers = 16
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			d := testDescriptor(fmt.Sprintf("file-%02d", n))
			assert.NoError(t, store.Put(ctx, d))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, writers, store.Len())

	// The document on disk is valid JSON holding every entry.
	reloaded, err := New(path)
	require.NoError(t, err)
	assert.Equal(t, writers, reloaded.Len())
	for i := 0; i < writers; i++ {
		_, err := reloaded.Get(ctx, fmt.Sprintf("file-%02d", i))
		assert.NoError(t, err)
	}
}

func TestList_NewestFirst(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "_files.json"))
	require.NoError(t, err)
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"oldest", "middle", "newest"} {
		d := testDescriptor(id)
		d.UploadedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, store.Put(ctx, d))
	}

	files, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, "newest", files[0].ID)
	assert.Equal(t, "oldest", files[2].ID)
}
