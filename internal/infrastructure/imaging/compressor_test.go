package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moodcanvas-server/internal/config"
)

func encodePNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCompressor_DownscalesToBoundingBox(t *testing.T) {
	c := NewCompressor(config.ImagingConfig{MaxDimension: 64, JPEGQuality: 75})

	out, mime, err := c.Compress(encodePNG(t, 256, 128, color.NRGBA{R: 200, A: 255}))
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mime)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 32, cfg.Height)
}

func TestCompressor_TransparentBecomesWhite(t *testing.T) {
	c := NewCompressor(config.ImagingConfig{})

	out, _, err := c.Compress(encodePNG(t, 8, 8, color.NRGBA{}))
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	r, g, b, _ := img.At(4, 4).RGBA()
	assert.Greater(t, r>>8, uint32(240))
	assert.Greater(t, g>>8, uint32(240))
	assert.Greater(t, b>>8, uint32(240))
}

func TestCompressor_RejectsGarbage(t *testing.T) {
	_, _, err := NewCompressor(config.ImagingConfig{}).Compress([]byte("not an image"))
	assert.Error(t, err)
}

func TestFitWithin(t *testing.T) {
	tests := []struct{ w, h, max, wantW, wantH int }{
		{100, 100, 768, 100, 100},
		{1024, 1024, 768, 768, 768},
		{2048, 1024, 768, 768, 384},
		{1000, 3000, 768, 256, 768},
	}
	for _, tt := range tests {
		w, h := fitWithin(tt.w, tt.h, tt.max)
		assert.Equal(t, tt.wantW, w)
		assert.Equal(t, tt.wantH, h)
	}
}
