package providers

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"resty.dev/v3"

	"moodcanvas-server/internal/config"
	"moodcanvas-server/internal/domain/generation"
)

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiThinkingConfig struct {
	ThinkingBudget int `json:"thinkingBudget"`
}

type geminiGenerationConfig struct {
	Temperature     float32               `json:"temperature"`
	TopP            float32               `json:"topP,omitempty"`
	MaxOutputTokens int                   `json:"maxOutputTokens"`
	CandidateCount  int                   `json:"candidateCount,omitempty"`
	ThinkingConfig  *geminiThinkingConfig `json:"thinkingConfig,omitempty"`
}

type geminiSafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type geminiRequest struct {
	Contents          []geminiContent        `json:"contents"`
	SystemInstruction *geminiContent         `json:"systemInstruction,omitempty"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
	SafetySettings    []geminiSafetySetting  `json:"safetySettings,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
}

// GeminiText completes text instructions through the public Gemini API.
type GeminiText struct {
	client *resty.Client
	cfg    config.GeminiConfig
	log    zerolog.Logger
}

func NewGeminiText(cfg config.GeminiConfig, log zerolog.Logger) *GeminiText {
	log = log.With().Str("provider", string(generation.ProviderGemini)).Logger()
	return &GeminiText{
		client: newClient("gemini-text", timeoutOr(cfg.TextTimeout, 30*time.Second), log),
		cfg:    cfg,
		log:    log,
	}
}

func (g *GeminiText) Name() generation.ProviderName {
	return generation.ProviderGemini
}

func (g *GeminiText) GenerateText(ctx context.Context, prompt generation.TextPrompt) (string, error) {
	if config.Credential(g.cfg.APIKey) == "" {
		return "", missingCredential(g.Name())
	}

	body := geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt.User}}}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     prompt.Temperature,
			TopP:            prompt.TopP,
			MaxOutputTokens: prompt.MaxTokens,
			ThinkingConfig:  &geminiThinkingConfig{ThinkingBudget: 0},
		},
	}
	if prompt.System != "" {
		body.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: prompt.System}}}
	}

	var out geminiResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("x-goog-api-key", g.cfg.APIKey).
		SetBody(body).
		SetResult(&out).
		Post(geminiEndpoint(g.cfg.BaseURL, g.cfg.TextModel))
	if failure := checkResponse(g.Name(), resp, err, g.log); failure != nil {
		return "", failure
	}

	if len(out.Candidates) == 0 {
		g.log.Warn().Str("body", errorBody(resp.String())).Msg("gemini text response has no candidates")
		return "", structureError(g.Name(), resp.StatusCode(), resp.String())
	}
	var text strings.Builder
	for _, part := range out.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", structureError(g.Name(), resp.StatusCode(), resp.String())
	}
	return text.String(), nil
}

func geminiEndpoint(baseURL, model string) string {
	return fmt.Sprintf("%s/models/%s:generateContent", strings.TrimRight(baseURL, "/"), url.PathEscape(model))
}
