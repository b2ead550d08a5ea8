package storage

import (
	"context"

	"github.com/rs/zerolog"

	"moodcanvas-server/internal/config"
)

// ImageStorage is what the rest of the service needs from an image backend.
type ImageStorage interface {
	Save(ctx context.Context, filename string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, filename string) error
	List(ctx context.Context) ([]string, error)
	URL(filename string) string
	Health(ctx context.Context) error
}

// New selects the backend named by STORAGE_BACKEND.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ImageStorage, error) {
	if cfg.IsLocalStorage() {
		return NewLocalStorage(cfg, log)
	}
	return NewS3Storage(ctx, cfg, log)
}

var (
	_ ImageStorage = (*LocalStorage)(nil)
	_ ImageStorage = (*S3Storage)(nil)
)
