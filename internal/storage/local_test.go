package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipeapi/internal/config"
)

func TestLocalStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewLocal(dir)
	require.NoError(t, err)

	info, err := store.Put(ctx, "uploads/a.csv", strings.NewReader("name\nAlice\n"), PutObjectOptions{
		Size:        -1,
		ContentType: "text/csv",
	})
	require.NoError(t, err)
	assert.Equal(t, "uploads/a.csv", info.Key)
	assert.Equal(t, int64(11), info.Size)
	assert.Equal(t, "text/csv", info.ContentType)
	assert.FileExists(t, filepath.Join(dir, "uploads", "a.csv"))

	rc, got, err := store.Get(ctx, "uploads/a.csv")
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "name\nAlice\n", string(body))
	assert.Equal(t, int64(11), got.Size)

	require.NoError(t, store.Delete(ctx, "uploads/a.csv"))
	assert.NoFileExists(t, filepath.Join(dir, "uploads", "a.csv"))

	// Deleting twice is fine.
	assert.NoError(t, store.Delete(ctx, "uploads/a.csv"))
}

func TestLocalStorage_PutDoesNotOverwrite(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	_, err = store.Put(ctx, "k.csv", strings.NewReader("first"), PutObjectOptions{})
	require.NoError(t, err)
	_, err = store.Put(ctx, "k.csv", strings.NewReader("second"), PutObjectOptions{})
	assert.ErrorIs(t, err, os.ErrExist)
}

func TestLocalStorage_GetMissing(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	_, _, err = store.Get(context.Background(), "uploads/missing.csv")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStorage_RejectsEscapingKeys(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../outside.csv", "uploads/../../x"} {
		_, err := store.Put(context.Background(), key, strings.NewReader("x"), PutObjectOptions{})
		assert.Error(t, err, key)
	}
}

func TestLocalStorage_CancelledPutLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocal(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Put(ctx, "c.csv", strings.NewReader("data"), PutObjectOptions{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, filepath.Join(dir, "c.csv"))
}

func TestLocalStorage_Ping(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocal(dir)
	require.NoError(t, err)

	require.NoError(t, store.Ping(context.Background()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNew(t *testing.T) {
	store, err := New(config.ScratchConfig{Backend: "local", Dir: t.TempDir()}, config.MinIOConfig{})
	require.NoError(t, err)
	assert.NotNil(t, store)

	_, err = New(config.ScratchConfig{Backend: "minio"}, config.MinIOConfig{})
	assert.EqualError(t, err, "minio endpoint is required")

	_, err = New(config.ScratchConfig{Backend: "ftp"}, config.MinIOConfig{})
	assert.Error(t, err)
}
