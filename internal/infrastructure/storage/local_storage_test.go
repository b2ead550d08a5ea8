package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moodcanvas-server/internal/config"
	"moodcanvas-server/internal/utils/imageid"
)

func newLocal(t *testing.T) *LocalStorage {
	t.Helper()
	cfg := &config.Config{}
	cfg.Storage.LocalRoot = t.TempDir()
	cfg.Storage.PublicBaseURL = "http://localhost:8080/"
	s, err := NewLocalStorage(cfg, zerolog.Nop())
	require.NoError(t, err)
	return s
}

func TestLocalStorage_SaveListDelete(t *testing.T) {
	s := newLocal(t)
	ctx := context.Background()
	name := imageid.Filename(time.Now(), "png")

	url, err := s.Save(ctx, name, []byte("png-bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/storage/generated_images/"+name, url)

	data, err := os.ReadFile(filepath.Join(s.Dir(), name))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)

	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "notes.txt"), []byte("x"), 0o644))
	names, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{name}, names)

	require.NoError(t, s.Delete(ctx, name))
	require.NoError(t, s.Delete(ctx, name))
	names, err = s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLocalStorage_RejectsForeignNames(t *testing.T) {
	s := newLocal(t)
	_, err := s.Save(context.Background(), "../escape.png", []byte("x"), "")
	assert.ErrorIs(t, err, errInvalidFilename)
	assert.ErrorIs(t, s.Delete(context.Background(), "passwd"), errInvalidFilename)
}

func TestLocalStorage_Health(t *testing.T) {
	assert.NoError(t, newLocal(t).Health(context.Background()))
}
