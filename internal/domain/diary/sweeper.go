package diary

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"moodcanvas-server/internal/domain/generation"
	"moodcanvas-server/internal/utils/imageid"
)

// ImageCatalog lists and removes stored generated images by filename.
type ImageCatalog interface {
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, filename string) error
}

// SweepRecorder counts removed orphan images.
type SweepRecorder interface {
	OrphanSwept()
}

// OrphanSweeper deletes generated images that no diary references once they
// are older than minAge. Younger images may still be saved by a pending form.
type OrphanSweeper struct {
	repo     Repository
	catalog  ImageCatalog
	minAge   time.Duration
	recorder SweepRecorder
	log      zerolog.Logger
	now      func() time.Time
}

func NewOrphanSweeper(repo Repository, catalog ImageCatalog, minAge time.Duration, recorder SweepRecorder, log zerolog.Logger) *OrphanSweeper {
	return &OrphanSweeper{
		repo:     repo,
		catalog:  catalog,
		minAge:   minAge,
		recorder: recorder,
		log:      log.With().Str("component", "orphan-sweeper").Logger(),
		now:      time.Now,
	}
}

// Sweep runs one pass and returns how many images were removed.
func (s *OrphanSweeper) Sweep(ctx context.Context) (int, error) {
	files, err := s.catalog.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list generated images: %w", err)
	}
	paths, err := s.repo.ImagePaths(ctx)
	if err != nil {
		return 0, fmt.Errorf("list referenced images: %w", err)
	}

	referenced := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		if name, ok := generation.FilenameFromPath(p); ok {
			referenced[name] = struct{}{}
		}
	}

	cutoff := s.now().Add(-s.minAge)
	removed := 0
	for _, name := range files {
		if ctx.Err() != nil {
			return removed, ctx.Err()
		}
		if _, ok := referenced[name]; ok {
			continue
		}
		created, ok := imageid.CreatedAt(name)
		if !ok || created.After(cutoff) {
			continue
		}
		if err := s.catalog.Delete(ctx, name); err != nil {
			s.log.Warn().Err(err).Str("filename", name).Msg("failed to delete orphaned image")
			continue
		}
		removed++
		if s.recorder != nil {
			s.recorder.OrphanSwept()
		}
	}

	s.log.Info().Int("scanned", len(files)).Int("removed", removed).Msg("orphan sweep finished")
	return removed, nil
}
