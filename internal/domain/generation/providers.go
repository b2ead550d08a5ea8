package generation

import (
	"context"

	"moodcanvas-server/internal/domain/session"
)

// TextProvider is a vendor able to complete a text instruction.
type TextProvider interface {
	Name() ProviderName
	GenerateText(ctx context.Context, prompt TextPrompt) (string, error)
}

// ImageRequest is the input of a single image provider call.
// State is the caller's session-scoped key/value store; providers that cache
// credentials keep them there.
type ImageRequest struct {
	Prompt         string
	Style          string
	NegativePrompt string
	State          session.Store
}

// ImageProvider is a vendor able to render an image from a prompt.
type ImageProvider interface {
	Name() ProviderName
	GenerateImage(ctx context.Context, req ImageRequest) (*GeneratedImage, error)
}

// ImageStore persists generated image bytes under a filename.
type ImageStore interface {
	Save(ctx context.Context, filename string, data []byte, contentType string) (url string, err error)
	Delete(ctx context.Context, filename string) error
}

// Compressor re-encodes an image into a smaller footprint.
type Compressor interface {
	Compress(data []byte) ([]byte, string, error)
}
