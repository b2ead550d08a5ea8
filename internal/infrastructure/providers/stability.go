package providers

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"resty.dev/v3"

	"moodcanvas-server/internal/config"
	"moodcanvas-server/internal/domain/generation"
)

type stabilityTextPrompt struct {
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
}

type stabilityRequest struct {
	TextPrompts []stabilityTextPrompt `json:"text_prompts"`
	CfgScale    int                   `json:"cfg_scale"`
	Height      int                   `json:"height"`
	Width       int                   `json:"width"`
	Samples     int                   `json:"samples"`
	Steps       int                   `json:"steps"`
	StylePreset string                `json:"style_preset,omitempty"`
}

type stabilityResponse struct {
	Artifacts []struct {
		Base64       string `json:"base64"`
		FinishReason string `json:"finishReason"`
	} `json:"artifacts"`
}

// Stability renders images with the Stability AI text-to-image endpoint.
type Stability struct {
	client *resty.Client
	cfg    config.StabilityConfig
	log    zerolog.Logger
}

func NewStability(cfg config.StabilityConfig, log zerolog.Logger) *Stability {
	log = log.With().Str("provider", string(generation.ProviderStability)).Logger()
	return &Stability{
		client: newClient("stability", timeoutOr(cfg.Timeout, 90*time.Second), log),
		cfg:    cfg,
		log:    log,
	}
}

func (s *Stability) Name() generation.ProviderName {
	return generation.ProviderStability
}

func (s *Stability) GenerateImage(ctx context.Context, req generation.ImageRequest) (*generation.GeneratedImage, error) {
	if config.Credential(s.cfg.APIKey) == "" {
		return nil, missingCredential(s.Name())
	}

	prompt := req.Prompt
	preset, extra := generation.StabilityPreset(req.Style)
	if extra != "" {
		prompt += ", " + extra
	}
	body := stabilityRequest{
		TextPrompts: []stabilityTextPrompt{{Text: prompt, Weight: 1}},
		CfgScale:    7,
		Height:      1024,
		Width:       1024,
		Samples:     1,
		Steps:       30,
		StylePreset: preset,
	}

	var out stabilityResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(s.cfg.APIKey).
		SetBody(body).
		SetResult(&out).
		Post(s.cfg.BaseURL + "/v1/generation/" + s.cfg.Engine + "/text-to-image")
	if failure := checkResponse(s.Name(), resp, err, s.log); failure != nil {
		return nil, failure
	}

	if len(out.Artifacts) == 0 || out.Artifacts[0].Base64 == "" {
		s.log.Warn().Str("body", errorBody(resp.String())).Msg("stability response has no artifact")
		return nil, structureError(s.Name(), resp.StatusCode(), resp.String())
	}
	img, err := generation.DecodeBase64Image(out.Artifacts[0].Base64, "image/png")
	if err != nil {
		return nil, &Error{Provider: s.Name(), StatusCode: resp.StatusCode(), Cause: err}
	}
	return img, nil
}
