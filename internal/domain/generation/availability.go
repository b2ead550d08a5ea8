package generation

import "moodcanvas-server/internal/config"

// Availability reports which providers have the configuration they need.
type Availability struct {
	Vertex      bool `json:"vertex"`
	GeminiImage bool `json:"gemini_image"`
	Stability   bool `json:"stability"`
	Gemini      bool `json:"gemini"`
	Perplexity  bool `json:"perplexity"`
}

// ProviderAvailability derives availability from configuration alone.
// An explicit *_ENABLED=false always wins; otherwise a provider is available
// when its required settings are present.
func ProviderAvailability(cfg config.ProvidersConfig) Availability {
	vertex := cfg.Vertex.Enabled && cfg.Vertex.ProjectID != "" && cfg.Vertex.CredentialsFile != ""
	gemini := cfg.Gemini.Enabled && cfg.Gemini.APIKey != ""
	return Availability{
		Vertex:      vertex,
		GeminiImage: gemini && !vertex && cfg.Gemini.ImageModel != "",
		Stability:   cfg.Stability.Enabled && cfg.Stability.APIKey != "",
		Gemini:      gemini && cfg.Gemini.TextModel != "",
		Perplexity:  cfg.Perplexity.Enabled && cfg.Perplexity.APIKey != "",
	}
}

// ImageChain lists available image providers in priority order.
func (a Availability) ImageChain() []ProviderName {
	var chain []ProviderName
	if a.Vertex {
		chain = append(chain, ProviderVertex)
	}
	if a.GeminiImage {
		chain = append(chain, ProviderGeminiImage)
	}
	if a.Stability {
		chain = append(chain, ProviderStability)
	}
	return chain
}

// TextChain lists available text providers in priority order.
func (a Availability) TextChain() []ProviderName {
	var chain []ProviderName
	if a.Gemini {
		chain = append(chain, ProviderGemini)
	}
	if a.Perplexity {
		chain = append(chain, ProviderPerplexity)
	}
	return chain
}

// Has reports whether the named provider is available.
func (a Availability) Has(name ProviderName) bool {
	switch name {
	case ProviderVertex:
		return a.Vertex
	case ProviderGeminiImage:
		return a.GeminiImage
	case ProviderStability:
		return a.Stability
	case ProviderGemini:
		return a.Gemini
	case ProviderPerplexity:
		return a.Perplexity
	case ProviderLocal:
		return true
	}
	return false
}
