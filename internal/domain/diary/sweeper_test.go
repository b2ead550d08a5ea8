package diary

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moodcanvas-server/internal/utils/imageid"
)

func TestOrphanSweep(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	old := now.Add(-48 * time.Hour)

	referenced := imageid.Filename(old, "jpg")
	orphan := imageid.Filename(old, "jpg")
	failing := imageid.Filename(old, "png")
	fresh := imageid.Filename(now.Add(-time.Hour), "jpg")

	repo := &memoryRepo{items: []*Diary{{ID: 1, UserID: 1, ImagePath: "storage/generated_images/" + referenced}}}
	catalog := &fakeCatalog{files: []string{referenced, orphan, failing, fresh, "notes.txt"}, failOn: failing}

	swept := &sweepCounter{}
	sweeper := NewOrphanSweeper(repo, catalog, 24*time.Hour, swept, nopLogger())
	sweeper.now = func() time.Time { return now }

	removed, err := sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, []string{orphan}, catalog.deleted)
	assert.Equal(t, 1, swept.n)
}

type sweepCounter struct{ n int }

func (c *sweepCounter) OrphanSwept() { c.n++ }
