package providers

import (
	"github.com/rs/zerolog"

	"moodcanvas-server/internal/config"
	"moodcanvas-server/internal/domain/generation"
)

// Chains holds the provider chains built from configuration.
type Chains struct {
	Availability generation.Availability
	Text         []generation.TextProvider
	Image        []generation.ImageProvider
}

// BuildChains instantiates every available provider in priority order, each
// behind its own circuit breaker. Unavailable providers are logged once here
// and never constructed.
func BuildChains(cfg *config.Config, log zerolog.Logger) Chains {
	avail := generation.ProviderAvailability(cfg.Providers)
	settings := BreakerSettings{
		MaxFailures:  cfg.Generation.BreakerMaxFailures,
		OpenInterval: cfg.Generation.BreakerOpenInterval,
	}

	chains := Chains{Availability: avail}
	for _, name := range avail.ImageChain() {
		var p generation.ImageProvider
		switch name {
		case generation.ProviderVertex:
			p = NewVertexImage(cfg.Providers.Vertex, log)
		case generation.ProviderGeminiImage:
			p = NewGeminiImage(cfg.Providers.Gemini, log)
		case generation.ProviderStability:
			p = NewStability(cfg.Providers.Stability, log)
		default:
			continue
		}
		chains.Image = append(chains.Image, WithImageBreaker(p, settings, log))
	}
	for _, name := range avail.TextChain() {
		var p generation.TextProvider
		switch name {
		case generation.ProviderGemini:
			p = NewGeminiText(cfg.Providers.Gemini, log)
		case generation.ProviderPerplexity:
			p = NewPerplexity(cfg.Providers.Perplexity, log)
		default:
			continue
		}
		chains.Text = append(chains.Text, WithTextBreaker(p, settings, log))
	}

	for _, name := range []generation.ProviderName{
		generation.ProviderVertex, generation.ProviderGeminiImage, generation.ProviderStability,
		generation.ProviderGemini, generation.ProviderPerplexity,
	} {
		if !avail.Has(name) {
			log.Info().Str("provider", string(name)).Msg("provider not configured, skipping")
		}
	}
	log.Info().
		Strs("image_chain", names(avail.ImageChain())).
		Strs("text_chain", names(avail.TextChain())).
		Msg("provider chains ready")

	return chains
}

func names(in []generation.ProviderName) []string {
	out := make([]string, 0, len(in))
	for _, n := range in {
		out = append(out, string(n))
	}
	return out
}
