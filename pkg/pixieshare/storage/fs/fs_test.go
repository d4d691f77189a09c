package fs

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixieshare/pixieshare/pkg/pixieshare"
)

func newTestBackend(t *testing.T, maxBytes int64) *Backend {
	t.Helper()

	backend, err := New(Config{BaseDir: t.TempDir(), MaxBytes: maxBytes})
	require.NoError(t, err)
	return backend
}

func TestNew_RequiresBaseDir(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestNew_CreatesBaseDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")

	_, err := New(Config{BaseDir: dir})
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestStoreAndOpen_RoundTrip(t *testing.T) {
	backend := newTestBackend(t, 0)
	ctx := context.Background()

	content := "byte-for-byte passthrough"
	blob, err := backend.Store(ctx, strings.NewReader(content), "notes.txt")
	require.NoError(t, err)

	assert.NotEmpty(t, blob.ID)
	assert.Equal(t, blob.ID+".txt", blob.StoredFilename)
	assert.Equal(t, int64(len(content)), blob.SizeBytes)

	rc, err := backend.Open(ctx, blob.StoredFilename)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestStore_GeneratesUniqueIDs(t *testing.T) {
	backend := newTestBackend(t, 0)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		blob, err := backend.Store(ctx, strings.NewReader("same content"), "dup.bin")
		require.NoError(t, err)
		assert.False(t, seen[blob.ID], "duplicate id %s", blob.ID)
		seen[blob.ID] = true
	}
}

func TestStore_NoExtension(t *testing.T) {
	backend := newTestBackend(t, 0)

	blob, err := backend.Store(context.Background(), strings.NewReader("x"), "Makefile")
	require.NoError(t, err)
	assert.Equal(t, blob.ID, blob.StoredFilename)
}

func TestStore_PathLikeNameOnlyContributesExtension(t *testing.T) {
	backend := newTestBackend(t, 0)

	blob, err := backend.Store(context.Background(), strings.NewReader("x"), "../../etc/passwd.png")
	require.NoError(t, err)
	assert.Equal(t, blob.ID+".png", blob.StoredFilename)
	assert.NotContains(t, blob.StoredFilename, "/")
}

func TestStore_EnforcesSizeLimitMidStream(t *testing.T) {
	backend := newTestBackend(t, 8)
	ctx := context.Background()

	_, err := backend.Store(ctx, strings.NewReader("well over eight bytes"), "big.bin")
	assert.ErrorIs(t, err, pixieshare.ErrFileTooLarge)

	// No partial blob and no leftover temp file.
	entries, err := os.ReadDir(backend.baseDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_ExactlyAtLimitSucceeds(t *testing.T) {
	backend := newTestBackend(t, 8)

	blob, err := backend.Store(context.Background(), strings.NewReader("12345678"), "ok.bin")
	require.NoError(t, err)
	assert.Equal(t, int64(8), blob.SizeBytes)
}

func TestOpen_MissingBlob(t *testing.T) {
	backend := newTestBackend(t, 0)

	_, err := backend.Open(context.Background(), "0000-never-existed.bin")
	assert.ErrorIs(t, err, pixieshare.ErrBlobMissing)
}

func TestOpen_RejectsTraversal(t *testing.T) {
	backend := newTestBackend(t, 0)
	ctx := context.Background()

	for _, name := range []string{"", "../secret", "a/b.txt", "..", ".hidden"} {
		_, err := backend.Open(ctx, name)
		assert.Error(t, err, "name %q should be rejected", name)
		assert.NotErrorIs(t, err, pixieshare.ErrBlobMissing, "name %q must not look like a missing blob", name)
	}
}

func TestDelete(t *testing.T) {
	backend := newTestBackend(t, 0)
	ctx := context.Background()

	blob, err := backend.Store(ctx, strings.NewReader("to be removed"), "temp.txt")
	require.NoError(t, err)

	require.NoError(t, backend.Delete(ctx, blob.StoredFilename))

	_, err = backend.Open(ctx, blob.StoredFilename)
	assert.ErrorIs(t, err, pixieshare.ErrBlobMissing)

	assert.ErrorIs(t, backend.Delete(ctx, blob.StoredFilename), pixieshare.ErrBlobMissing)
}
