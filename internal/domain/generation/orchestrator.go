package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

)

// ErrEmptyResult is recorded when a provider succeeded but produced nothing usable.
var ErrEmptyResult = errors.New("empty result")

// AttemptFailure is why one provider did not satisfy a capability.
type AttemptFailure struct {
	Provider ProviderName
	Cause    string
}

// ExhaustedError is returned when every provider in a chain failed.
type ExhaustedError struct {
	Capability Capability
	Attempts   []AttemptFailure
}

func (e *ExhaustedError) Error() string {
	if len(e.Attempts) == 0 {
		return fmt.Sprintf("%s failed: no provider is configured", e.Capability)
	}
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s: %s", a.Provider, a.Cause))
	}
	return fmt.Sprintf("%s failed from all providers: [%s]", e.Capability, strings.Join(parts, " | "))
}

// Orchestrator tries providers for a capability in declared priority order
// and returns the first usable result. Attempts are strictly sequential.
type Orchestrator struct {
	text       []TextProvider
	image      []ImageProvider
	imageRetry RetryPolicy
	recorder   Recorder
	log        zerolog.Logger
	tracer     trace.Tracer
}

// NewOrchestrator takes chains that already contain only available providers, in priority order.
func NewOrchestrator(text []TextProvider, image []ImageProvider, imageRetry RetryPolicy, recorder Recorder, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		text:       text,
		image:      image,
		imageRetry: imageRetry,
		recorder:   recorderOrNop(recorder),
		log:        log.With().Str("component", "orchestrator").Logger(),
		tracer:     otel.Tracer("moodcanvas-server/generation"),
	}
}

// TextChain returns the names of the text providers, in order.
func (o *Orchestrator) TextChain() []ProviderName {
	names := make([]ProviderName, 0, len(o.text))
	for _, p := range o.text {
		names = append(names, p.Name())
	}
	return names
}

// ImageChain returns the names of the image providers, in order.
func (o *Orchestrator) ImageChain() []ProviderName {
	names := make([]ProviderName, 0, len(o.image))
	for _, p := range o.image {
		names = append(names, p.Name())
	}
	return names
}

// GenerateText runs prompt through the text chain. clean post-processes each
// provider's raw output; a provider whose cleaned output is empty counts as failed.
func (o *Orchestrator) GenerateText(ctx context.Context, capability Capability, prompt TextPrompt, clean func(string) string) (TextResult, error) {
	failures := make([]AttemptFailure, 0, len(o.text))

	for _, provider := range o.text {
		if err := ctx.Err(); err != nil {
			return TextResult{}, err
		}

		result := o.attemptText(ctx, capability, provider, prompt, clean)
		if result.Success {
			return TextResult{Text: result.Payload, Provider: result.Provider}, nil
		}
		failures = append(failures, AttemptFailure{Provider: provider.Name(), Cause: result.ErrorDetail})
	}

	return TextResult{}, &ExhaustedError{Capability: capability, Attempts: failures}
}

func (o *Orchestrator) attemptText(ctx context.Context, capability Capability, provider TextProvider, prompt TextPrompt, clean func(string) string) ProviderResult {
	ctx, span := o.startSpan(ctx, capability, provider.Name())
	defer span.End()

	start := time.Now()
	raw, err := provider.GenerateText(ctx, prompt)
	if err == nil && clean != nil {
		raw = clean(raw)
	}
	if err == nil && strings.TrimSpace(raw) == "" {
		err = ErrEmptyResult
	}
	o.record(span, capability, provider.Name(), start, err)

	if err != nil {
		o.log.Warn().Err(err).
			Str("provider", string(provider.Name())).
			Str("capability", string(capability)).
			Msg("provider attempt failed, trying next")
		return ProviderResult{Provider: provider.Name(), ErrorDetail: err.Error()}
	}
	return ProviderResult{Success: true, Payload: raw, Provider: provider.Name()}
}

// GenerateImage runs req through the image chain. Each provider is retried
// according to the image retry policy before the next one is tried.
func (o *Orchestrator) GenerateImage(ctx context.Context, req ImageRequest) (*GeneratedImage, ProviderName, error) {
	failures := make([]AttemptFailure, 0, len(o.image))

	for _, provider := range o.image {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}

		img, err := Do(ctx, o.imageRetry, o.log.With().Str("provider", string(provider.Name())).Logger(),
			func(ctx context.Context, attempt int) (*GeneratedImage, error) {
				return o.attemptImage(ctx, provider, req, attempt)
			})
		if err == nil {
			return img, provider.Name(), nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, "", ctxErr
		}

		o.log.Warn().Err(err).
			Str("provider", string(provider.Name())).
			Str("capability", string(CapabilityImage)).
			Msg("image provider exhausted its retries, trying next")
		failures = append(failures, AttemptFailure{Provider: provider.Name(), Cause: err.Error()})
	}

	return nil, "", &ExhaustedError{Capability: CapabilityImage, Attempts: failures}
}

func (o *Orchestrator) attemptImage(ctx context.Context, provider ImageProvider, req ImageRequest, attempt int) (*GeneratedImage, error) {
	ctx, span := o.startSpan(ctx, CapabilityImage, provider.Name())
	span.SetAttributes(attribute.Int("generation.attempt", attempt))
	defer span.End()

	start := time.Now()
	img, err := provider.GenerateImage(ctx, req)
	if err == nil && (img == nil || len(img.Data) == 0) {
		err = ErrEmptyImage
	}
	o.record(span, CapabilityImage, provider.Name(), start, err)
	if err != nil {
		return nil, err
	}
	return img, nil
}

func (o *Orchestrator) startSpan(ctx context.Context, capability Capability, provider ProviderName) (context.Context, trace.Span) {
	return o.tracer.Start(ctx, "generation."+string(capability),
		trace.WithAttributes(
			attribute.String("generation.capability", string(capability)),
			attribute.String("generation.provider", string(provider)),
		))
}

func (o *Orchestrator) record(span trace.Span, capability Capability, provider ProviderName, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	o.recorder.ProviderCall(provider, capability, outcome, time.Since(start))
}
