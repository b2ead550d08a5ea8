package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"moodcanvas-server/internal/config"
)

const (
	defaultMaxDimension = 768
	defaultQuality      = 75
)

// Compressor downsizes generated images to fit a square bounding box and
// re-encodes them as JPEG on a white background.
type Compressor struct {
	maxDimension int
	quality      int
}

func NewCompressor(cfg config.ImagingConfig) *Compressor {
	c := &Compressor{maxDimension: cfg.MaxDimension, quality: cfg.JPEGQuality}
	if c.maxDimension <= 0 {
		c.maxDimension = defaultMaxDimension
	}
	if c.quality <= 0 || c.quality > 100 {
		c.quality = defaultQuality
	}
	return c
}

// Compress returns the JPEG bytes and their MIME type.
func (c *Compressor) Compress(data []byte) ([]byte, string, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}

	bounds := src.Bounds()
	w, h := fitWithin(bounds.Dx(), bounds.Dy(), c.maxDimension)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))

	// JPEG has no alpha channel, so transparent pixels become white.
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: c.quality}); err != nil {
		return nil, "", fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), "image/jpeg", nil
}

// fitWithin scales w x h down to fit a limit x limit box, keeping the aspect ratio.
// Images already inside the box are left at their size.
func fitWithin(w, h, limit int) (int, int) {
	if w <= limit && h <= limit {
		return w, h
	}
	if w >= h {
		return limit, maxInt(1, h*limit/w)
	}
	return maxInt(1, w*limit/h), limit
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
