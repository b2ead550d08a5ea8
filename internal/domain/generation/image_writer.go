package generation

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"moodcanvas-server/internal/utils/imageid"
)

// GeneratedImagesDir is the relative directory every generated image lives under.
const GeneratedImagesDir = "storage/generated_images"

// ErrEmptyImage is returned when a provider answered without image bytes.
var ErrEmptyImage = errors.New("empty image payload")

// DecodeBase64Image turns a provider's base64 payload into image bytes.
// A data-URL prefix is accepted.
func DecodeBase64Image(payload, mimeType string) (*GeneratedImage, error) {
	payload = strings.TrimSpace(payload)
	if strings.HasPrefix(payload, "data:") {
		if idx := strings.Index(payload, ","); idx > 0 {
			header := payload[len("data:"):idx]
			if mimeType == "" {
				mimeType = strings.TrimSuffix(header, ";base64")
			}
			payload = payload[idx+1:]
		}
	}
	if payload == "" {
		return nil, ErrEmptyImage
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return nil, fmt.Errorf("decode base64 image: %w", err)
		}
	}
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	return &GeneratedImage{Data: data, MIMEType: mimeType}, nil
}

// ExtensionForMIME maps an image MIME type to a file extension, defaulting to png.
func ExtensionForMIME(mimeType string) string {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if idx := strings.Index(mimeType, ";"); idx >= 0 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}
	switch mimeType {
	case "image/jpeg", "image/jpg":
		return "jpg"
	case "image/webp":
		return "webp"
	case "image/gif":
		return "gif"
	default:
		return "png"
	}
}

// ImageWriter persists generated images under collision-resistant filenames.
type ImageWriter struct {
	store      ImageStore
	compressor Compressor
	recorder   Recorder
	log        zerolog.Logger
	now        func() time.Time
}

// NewImageWriter builds a writer. compressor may be nil.
func NewImageWriter(store ImageStore, compressor Compressor, recorder Recorder, log zerolog.Logger) *ImageWriter {
	return &ImageWriter{
		store:      store,
		compressor: compressor,
		recorder:   recorderOrNop(recorder),
		log:        log.With().Str("component", "image-writer").Logger(),
		now:        time.Now,
	}
}

// Write optionally compresses img and stores it, returning where it lives.
func (w *ImageWriter) Write(ctx context.Context, img *GeneratedImage) (StoredImage, error) {
	if img == nil || len(img.Data) == 0 {
		return StoredImage{}, ErrEmptyImage
	}

	data, mimeType := img.Data, img.MIMEType
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = mimetype.Detect(data).String()
	}

	if w.compressor != nil {
		compressed, compressedType, err := w.compressor.Compress(data)
		if err != nil {
			w.log.Warn().Err(err).Str("mime_type", mimeType).Msg("image compression failed, storing original bytes")
		} else {
			data, mimeType = compressed, compressedType
		}
	}

	filename := imageid.Filename(w.now(), ExtensionForMIME(mimeType))
	url, err := w.store.Save(ctx, filename, data, mimeType)
	if err != nil {
		return StoredImage{}, fmt.Errorf("store generated image: %w", err)
	}
	w.recorder.ImageStored(mimeType, len(data))

	return StoredImage{
		Filename:     filename,
		RelativePath: GeneratedImagesDir + "/" + filename,
		URL:          url,
		MIMEType:     mimeType,
		Size:         len(data),
	}, nil
}

// Delete removes a stored image given its relative path. Paths that were not
// produced by Write are ignored.
func (w *ImageWriter) Delete(ctx context.Context, relativePath string) error {
	filename, ok := FilenameFromPath(relativePath)
	if !ok {
		return nil
	}
	return w.store.Delete(ctx, filename)
}

// FilenameFromPath extracts a generated image filename from a stored path or URL.
func FilenameFromPath(path string) (string, bool) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", false
	}
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		path = path[idx+1:]
	}
	if !imageid.IsGenerated(path) {
		return "", false
	}
	return path, true
}
