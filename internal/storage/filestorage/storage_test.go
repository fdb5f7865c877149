package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	apperrors "galeria/internal/storage"
	storage "galeria/internal/storage/filestorage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *storage.LocalFileStorage {
	t.Helper()

	fs, err := storage.NewLocalFileStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)
	return fs
}

func TestLocalFileStorage_SaveAndDelete(t *testing.T) {
	ctx := context.Background()
	fs := newTestStorage(t)

	relPath, err := fs.Save(ctx, filepath.Join("covers", "user1", "cover.jpg"), []byte("jpeg-bytes"))
	require.NoError(t, err)

	data, err := os.ReadFile(fs.GetFullPath(relPath))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), data)

	require.NoError(t, fs.Delete(ctx, relPath))

	_, err = os.Stat(fs.GetFullPath(relPath))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalFileStorage_DeleteMissing(t *testing.T) {
	fs := newTestStorage(t)

	err := fs.Delete(context.Background(), "covers/nope.jpg")
	assert.ErrorIs(t, err, apperrors.ErrFileNotFound)
}

func TestLocalFileStorage_SaveCancelledContext(t *testing.T) {
	fs := newTestStorage(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fs.Save(ctx, "covers/late.jpg", []byte("x"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocalFileStorage_PublicURL(t *testing.T) {
	fs := newTestStorage(t)

	url := fs.PublicURL("covers/user1/cover.jpg")
	assert.Equal(t, "http://localhost:8080/uploads/covers/user1/cover.jpg", url)
}

func TestLocalFileStorage_RelativePath(t *testing.T) {
	fs := newTestStorage(t)

	tests := []struct {
		name      string
		publicURL string
		want      string
		ok        bool
	}{
		{
			name:      "own url",
			publicURL: "http://localhost:8080/uploads/covers/user1/cover.jpg",
			want:      "covers/user1/cover.jpg",
			ok:        true,
		},
		{
			name:      "foreign host",
			publicURL: "http://cdn.example.com/uploads/covers/cover.jpg",
			ok:        false,
		},
		{
			name:      "path outside uploads",
			publicURL: "http://localhost:8080/static/cover.jpg",
			ok:        false,
		},
		{
			name:      "garbage",
			publicURL: "://not-a-url",
			ok:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := fs.RelativePath(tt.publicURL)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocalFileStorage_RoundTrip(t *testing.T) {
	fs := newTestStorage(t)

	relPath := "covers/user1/cover.jpg"
	url := fs.PublicURL(relPath)

	got, ok := fs.RelativePath(url)
	require.True(t, ok)
	assert.Equal(t, relPath, got)
}
