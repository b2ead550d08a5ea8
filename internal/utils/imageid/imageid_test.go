package imageid

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFilenameShape(t *testing.T) {
	now := time.Unix(1735689600, 0)
	name := Filename(now, "png")

	assert.True(t, strings.HasPrefix(name, "ai_1735689600_"))
	assert.True(t, strings.HasSuffix(name, ".png"))
	assert.True(t, IsGenerated(name))
}

func TestFilenamesAreUnique(t *testing.T) {
	now := time.Now()
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		name := Filename(now, "jpg")
		_, dup := seen[name]
		assert.False(t, dup)
		seen[name] = struct{}{}
	}
}

func TestIsGeneratedRejectsForeignNames(t *testing.T) {
	assert.False(t, IsGenerated("../etc/passwd"))
	assert.False(t, IsGenerated("ai_123_short.png"))
	assert.False(t, IsGenerated("photo.png"))
}

func TestCreatedAt(t *testing.T) {
	now := time.UnixMilli(1735689600123)
	got, ok := CreatedAt(Filename(now, "webp"))
	assert.True(t, ok)
	assert.Equal(t, now.UnixMilli(), got.UnixMilli())

	_, ok = CreatedAt("nope.png")
	assert.False(t, ok)
}
