package generation

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"moodcanvas-server/internal/domain/session"
	"moodcanvas-server/internal/utils/platformerrors"
)

// ErrMissingContent is returned before any provider is contacted when the diary text is empty.
var ErrMissingContent = errors.New("missing content")

// PreviewFallbackAnnotation is used when no quote could be produced for a preview.
const PreviewFallbackAnnotation = "今天是美好的一天。"

// PreviewResult is the combined prompt, image and quote for an unsaved diary.
type PreviewResult struct {
	Prompt        string
	Image         *StoredImage
	ImageProvider ProviderName
	Annotation    string
	QuoteProvider ProviderName
	Fallback      bool
	SelectedStyle string
}

// Service exposes the generation capabilities to the HTTP layer.
type Service struct {
	orchestrator *Orchestrator
	suppressor   *Suppressor
	images       *ImageWriter
	fallback     *LocalQuoteGenerator
	availability Availability
	recorder     Recorder
	log          zerolog.Logger
}

func NewService(
	orchestrator *Orchestrator,
	suppressor *Suppressor,
	images *ImageWriter,
	fallback *LocalQuoteGenerator,
	availability Availability,
	recorder Recorder,
	log zerolog.Logger,
) *Service {
	return &Service{
		orchestrator: orchestrator,
		suppressor:   suppressor,
		images:       images,
		fallback:     fallback,
		availability: availability,
		recorder:     recorderOrNop(recorder),
		log:          log.With().Str("component", "generation-service").Logger(),
	}
}

// Availability returns the provider availability the service was built with.
func (s *Service) Availability() Availability {
	return s.availability
}

// Chains returns the configured provider order per capability family.
func (s *Service) Chains() (text, image []ProviderName) {
	return s.orchestrator.TextChain(), s.orchestrator.ImageChain()
}

// GenerateImagePrompt turns diary content into a single-line image prompt.
func (s *Service) GenerateImagePrompt(ctx context.Context, req GenerationRequest) (TextResult, error) {
	if req.Content == "" {
		return TextResult{}, s.validation(ctx, ErrMissingContent)
	}

	result, err := s.orchestrator.GenerateText(ctx, CapabilityPrompt, BuildImagePromptInstruction(req), CleanImagePrompt)
	if err != nil {
		return TextResult{}, s.exhausted(ctx, err, "AI prompt optimization failed")
	}
	result.Text = EnsureStyleSuffix(result.Text, req.Style)
	return result, nil
}

// GenerateImage produces and stores an illustration for diary content.
// Identical requests within the cooldown window are rejected before any provider call.
func (s *Service) GenerateImage(ctx context.Context, state session.Store, req GenerationRequest) (*ImageResult, error) {
	if req.Content == "" {
		return nil, s.validation(ctx, ErrMissingContent)
	}

	if err := s.suppressor.Check(ctx, state, req); err != nil {
		if errors.Is(err, ErrCooldown) {
			s.recorder.CooldownRejected()
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeTooManyRequests,
				ErrCooldown.Error(), err, "generation-cooldown")
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "cooldown check failed")
	}

	prompt, err := s.GenerateImagePrompt(ctx, req)
	if err != nil {
		return nil, err
	}

	stored, provider, err := s.renderImage(ctx, state, prompt.Text, req.Style)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("provider", string(provider)).
		Str("prompt_provider", string(prompt.Provider)).
		Str("filename", stored.Filename).
		Int("bytes", stored.Size).
		Msg("image generated")

	return &ImageResult{Prompt: prompt.Text, Image: stored, Provider: provider}, nil
}

func (s *Service) renderImage(ctx context.Context, state session.Store, prompt, style string) (StoredImage, ProviderName, error) {
	img, provider, err := s.orchestrator.GenerateImage(ctx, ImageRequest{Prompt: prompt, Style: style, State: state})
	if err != nil {
		return StoredImage{}, "", s.exhausted(ctx, err, "Image generation failed from all providers.")
	}

	stored, err := s.images.Write(ctx, img)
	if err != nil {
		return StoredImage{}, "", platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to save generated image")
	}
	return stored, provider, nil
}

// GenerateQuote always yields a non-empty quote: when every provider fails a
// deterministic local quote is produced instead.
func (s *Service) GenerateQuote(ctx context.Context, req GenerationRequest) (TextResult, error) {
	if req.Content == "" {
		return TextResult{}, s.validation(ctx, ErrMissingContent)
	}

	result, err := s.orchestrator.GenerateText(ctx, CapabilityQuote, BuildQuoteInstruction(req), func(raw string) string {
		return CleanQuote(raw, req.Content)
	})
	if err == nil {
		return result, nil
	}

	s.log.Warn().Err(err).Msg("quote providers failed, using local fallback quote")
	return TextResult{Text: s.fallback.Quote(req), Provider: ProviderLocal}, nil
}

// GenerateInsight writes a short counselling-style analysis of recent diaries.
func (s *Service) GenerateInsight(ctx context.Context, entries []InsightEntry) (TextResult, error) {
	if len(entries) == 0 {
		return TextResult{}, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"missing diary data", nil, "insight-empty")
	}

	result, err := s.orchestrator.GenerateText(ctx, CapabilityInsight, BuildInsightInstruction(entries), strings.TrimSpace)
	if err != nil {
		return TextResult{}, s.exhausted(ctx, err, "AI insight generation failed, please try again later")
	}
	return result, nil
}

// Preview chains prompt, image and quote for a diary that is not saved yet.
// A failed image does not fail the preview; it is reported through Fallback.
func (s *Service) Preview(ctx context.Context, state session.Store, req GenerationRequest) (*PreviewResult, error) {
	if req.Content == "" {
		return nil, s.validation(ctx, ErrMissingContent)
	}

	prompt, err := s.GenerateImagePrompt(ctx, req)
	if err != nil {
		return nil, err
	}

	result := &PreviewResult{Prompt: prompt.Text, SelectedStyle: req.Style}

	stored, provider, err := s.renderImage(ctx, state, prompt.Text, req.Style)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.log.Warn().Err(err).Msg("preview image failed, continuing without image")
		result.Fallback = true
	} else {
		result.Image = &stored
		result.ImageProvider = provider
	}

	quote, err := s.GenerateQuote(ctx, req)
	if err != nil || quote.Text == "" {
		result.Annotation = PreviewFallbackAnnotation
		result.QuoteProvider = ProviderLocal
	} else {
		result.Annotation = quote.Text
		result.QuoteProvider = quote.Provider
	}
	return result, nil
}

// DeleteImage removes a previously generated image by its stored path.
func (s *Service) DeleteImage(ctx context.Context, relativePath string) error {
	return s.images.Delete(ctx, relativePath)
}

func (s *Service) validation(ctx context.Context, err error) error {
	return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, err.Error(), err, "generation-validation")
}

// exhausted keeps provider detail in the wrapped error for logs while the
// message stays short and generic for clients.
func (s *Service) exhausted(ctx context.Context, err error, message string) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnavailable, "request cancelled", ctxErr, "generation-cancelled")
	}
	return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal, message, err, "generation-exhausted")
}
