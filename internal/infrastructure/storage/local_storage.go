package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"moodcanvas-server/internal/config"
	"moodcanvas-server/internal/domain/generation"
	"moodcanvas-server/internal/utils/imageid"
)

// PublicPrefix is the URL path generated images are served under.
const PublicPrefix = "/" + generation.GeneratedImagesDir

var errInvalidFilename = errors.New("invalid generated image filename")

// LocalStorage writes generated images below <root>/storage/generated_images.
type LocalStorage struct {
	dir     string
	baseURL string
	log     zerolog.Logger
}

// NewLocalStorage creates the image directory when it is missing.
func NewLocalStorage(cfg *config.Config, log zerolog.Logger) (*LocalStorage, error) {
	logger := log.With().Str("component", "local-storage").Logger()

	dir := filepath.Join(cfg.Storage.LocalRoot, filepath.FromSlash(generation.GeneratedImagesDir))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create local storage directory: %w", err)
	}

	storage := &LocalStorage{
		dir:     dir,
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.Storage.PublicBaseURL), "/"),
		log:     logger,
	}
	logger.Info().Str("path", dir).Str("base_url", storage.baseURL).Msg("local storage initialized")
	return storage, nil
}

// Dir is the directory served under PublicPrefix.
func (l *LocalStorage) Dir() string {
	return l.dir
}

func (l *LocalStorage) Save(_ context.Context, filename string, data []byte, contentType string) (string, error) {
	path, err := l.path(filename)
	if err != nil {
		return "", err
	}
	if contentType == "" {
		contentType = mimetype.Detect(data).String()
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	l.log.Debug().Str("filename", filename).Str("content_type", contentType).Int("bytes", len(data)).Msg("image written to local storage")
	return l.URL(filename), nil
}

// Delete removes the file; a file that is already gone is not an error.
func (l *LocalStorage) Delete(_ context.Context, filename string) error {
	path, err := l.path(filename)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// List returns the generated image filenames currently stored, sorted.
func (l *LocalStorage) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && imageid.IsGenerated(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// URL returns the public URL of a stored image.
func (l *LocalStorage) URL(filename string) string {
	return l.baseURL + PublicPrefix + "/" + filename
}

// Health checks that the image directory is writable.
func (l *LocalStorage) Health(_ context.Context) error {
	testFile := filepath.Join(l.dir, ".health_check")
	if err := os.WriteFile(testFile, []byte("ok"), 0o644); err != nil {
		return fmt.Errorf("storage directory not writable: %w", err)
	}
	_ = os.Remove(testFile)
	return nil
}

// path only accepts names produced by imageid, so callers cannot escape the directory.
func (l *LocalStorage) path(filename string) (string, error) {
	if !imageid.IsGenerated(filename) {
		return "", errInvalidFilename
	}
	return filepath.Join(l.dir, filename), nil
}
