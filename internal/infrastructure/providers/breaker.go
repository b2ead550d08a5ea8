package providers

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"moodcanvas-server/internal/domain/generation"
)

// BreakerSettings configures the per-provider circuit breaker.
type BreakerSettings struct {
	MaxFailures  uint32
	OpenInterval time.Duration
}

func newBreaker(name generation.ProviderName, capability string, settings BreakerSettings, log zerolog.Logger) *gobreaker.CircuitBreaker {
	maxFailures := settings.MaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        string(name) + "/" + capability,
		MaxRequests: 1,
		Timeout:     timeoutOr(settings.OpenInterval, 60*time.Second),
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		// A caller giving up says nothing about the vendor.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(breaker string, from, to gobreaker.State) {
			log.Warn().Str("breaker", breaker).Str("from", from.String()).Str("to", to.String()).Msg("provider circuit breaker changed state")
		},
	})
}

type breakerText struct {
	inner generation.TextProvider
	cb    *gobreaker.CircuitBreaker
}

// WithTextBreaker short-circuits a text provider after repeated failures.
func WithTextBreaker(p generation.TextProvider, settings BreakerSettings, log zerolog.Logger) generation.TextProvider {
	return &breakerText{inner: p, cb: newBreaker(p.Name(), "text", settings, log)}
}

func (b *breakerText) Name() generation.ProviderName {
	return b.inner.Name()
}

func (b *breakerText) GenerateText(ctx context.Context, prompt generation.TextPrompt) (string, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.inner.GenerateText(ctx, prompt)
	})
	if err != nil {
		return "", breakerError(b.Name(), err)
	}
	return out.(string), nil
}

type breakerImage struct {
	inner generation.ImageProvider
	cb    *gobreaker.CircuitBreaker
}

// WithImageBreaker short-circuits an image provider after repeated failures.
func WithImageBreaker(p generation.ImageProvider, settings BreakerSettings, log zerolog.Logger) generation.ImageProvider {
	return &breakerImage{inner: p, cb: newBreaker(p.Name(), "image", settings, log)}
}

func (b *breakerImage) Name() generation.ProviderName {
	return b.inner.Name()
}

func (b *breakerImage) GenerateImage(ctx context.Context, req generation.ImageRequest) (*generation.GeneratedImage, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.inner.GenerateImage(ctx, req)
	})
	if err != nil {
		return nil, breakerError(b.Name(), err)
	}
	return out.(*generation.GeneratedImage), nil
}

func breakerError(name generation.ProviderName, err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return &Error{Provider: name, Cause: err}
	}
	return err
}
