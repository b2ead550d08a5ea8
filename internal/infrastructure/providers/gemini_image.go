package providers

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"resty.dev/v3"

	"moodcanvas-server/internal/config"
	"moodcanvas-server/internal/domain/generation"
)

var geminiImageSafety = []geminiSafetySetting{
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
}

// GeminiImage renders images through the public Gemini API. The key travels
// in the query string.
type GeminiImage struct {
	client *resty.Client
	cfg    config.GeminiConfig
	log    zerolog.Logger
}

func NewGeminiImage(cfg config.GeminiConfig, log zerolog.Logger) *GeminiImage {
	log = log.With().Str("provider", string(generation.ProviderGeminiImage)).Logger()
	return &GeminiImage{
		client: newClient("gemini-image", timeoutOr(cfg.ImageTimeout, 120*time.Second), log),
		cfg:    cfg,
		log:    log,
	}
}

func (g *GeminiImage) Name() generation.ProviderName {
	return generation.ProviderGeminiImage
}

func (g *GeminiImage) GenerateImage(ctx context.Context, req generation.ImageRequest) (*generation.GeneratedImage, error) {
	if config.Credential(g.cfg.APIKey) == "" {
		return nil, missingCredential(g.Name())
	}

	body := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: "Generate an image based on this prompt: " + req.Prompt}}}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     0.8,
			MaxOutputTokens: 2048,
			CandidateCount:  1,
		},
		SafetySettings: geminiImageSafety,
	}

	var out geminiResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParam("key", g.cfg.APIKey).
		SetBody(body).
		SetResult(&out).
		Post(geminiEndpoint(g.cfg.BaseURL, g.cfg.ImageModel))
	if failure := checkResponse(g.Name(), resp, err, g.log); failure != nil {
		return nil, failure
	}

	if len(out.Candidates) > 0 {
		for _, part := range out.Candidates[0].Content.Parts {
			if part.InlineData == nil || part.InlineData.Data == "" {
				continue
			}
			img, err := generation.DecodeBase64Image(part.InlineData.Data, part.InlineData.MIMEType)
			if err != nil {
				return nil, &Error{Provider: g.Name(), StatusCode: resp.StatusCode(), Cause: err}
			}
			return img, nil
		}
	}

	g.log.Warn().Str("body", errorBody(resp.String())).Msg("gemini image response has no inline image")
	return nil, structureError(g.Name(), resp.StatusCode(), resp.String())
}
