package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"moodcanvas-server/internal/config"
	"moodcanvas-server/internal/domain/generation"
)

// Perplexity completes text instructions through Perplexity's
// OpenAI-compatible chat completions API.
type Perplexity struct {
	client *openai.Client
	cfg    config.PerplexityConfig
	log    zerolog.Logger
}

func NewPerplexity(cfg config.PerplexityConfig, log zerolog.Logger) *Perplexity {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	clientConfig.HTTPClient = &http.Client{Timeout: timeoutOr(cfg.Timeout, 30*time.Second)}

	return &Perplexity{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
		log:    log.With().Str("provider", string(generation.ProviderPerplexity)).Logger(),
	}
}

func (p *Perplexity) Name() generation.ProviderName {
	return generation.ProviderPerplexity
}

// GenerateText uses the configured model and, when the vendor rejects that
// model outright, retries once with the fallback model.
func (p *Perplexity) GenerateText(ctx context.Context, prompt generation.TextPrompt) (string, error) {
	if config.Credential(p.cfg.APIKey) == "" {
		return "", missingCredential(p.Name())
	}

	text, err := p.complete(ctx, p.cfg.Model, prompt)
	if err == nil {
		return text, nil
	}

	var perr *Error
	if p.cfg.FallbackModel != "" && p.cfg.FallbackModel != p.cfg.Model &&
		errors.As(err, &perr) && (perr.StatusCode == http.StatusBadRequest || perr.StatusCode == http.StatusNotFound) {
		p.log.Warn().Err(err).Str("model", p.cfg.Model).Str("fallback_model", p.cfg.FallbackModel).Msg("perplexity model rejected, retrying with fallback model")
		return p.complete(ctx, p.cfg.FallbackModel, prompt)
	}
	return "", err
}

func (p *Perplexity) complete(ctx context.Context, model string, prompt generation.TextPrompt) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if prompt.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: prompt.System})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: prompt.User})

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:            model,
		Messages:         messages,
		MaxTokens:        prompt.MaxTokens,
		Temperature:      prompt.Temperature,
		TopP:             prompt.TopP,
		FrequencyPenalty: prompt.FrequencyPenalty,
		PresencePenalty:  prompt.PresencePenalty,
	})
	if err != nil {
		return "", p.classify(err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		p.log.Warn().Str("model", model).Msg("perplexity response has no content")
		return "", &Error{Provider: p.Name(), StatusCode: http.StatusOK, Cause: ErrUnexpectedStructure}
	}
	return resp.Choices[0].Message.Content, nil
}

func (p *Perplexity) classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		p.log.Warn().Int("status", apiErr.HTTPStatusCode).Str("body", errorBody(apiErr.Message)).Msg("perplexity request failed")
		return statusError(p.Name(), apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		p.log.Warn().Int("status", reqErr.HTTPStatusCode).Err(reqErr.Err).Msg("perplexity request failed")
		return &Error{Provider: p.Name(), StatusCode: reqErr.HTTPStatusCode, Cause: reqErr.Err}
	}
	if isDecodeError(err) {
		p.log.Warn().Err(err).Msg("perplexity response has unexpected structure")
		return &Error{Provider: p.Name(), StatusCode: http.StatusOK, Cause: fmt.Errorf("%w: %v", ErrUnexpectedStructure, err)}
	}
	return transportError(p.Name(), err)
}
