package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"moodcanvas-server/internal/config"
)

func TestProviderAvailability(t *testing.T) {
	full := func() config.ProvidersConfig {
		var cfg config.ProvidersConfig
		cfg.Gemini.Enabled, cfg.Gemini.APIKey = true, "g-key"
		cfg.Gemini.TextModel, cfg.Gemini.ImageModel = "gemini-2.5-flash", "gemini-2.5-flash-image"
		cfg.Vertex.Enabled, cfg.Vertex.ProjectID, cfg.Vertex.CredentialsFile = true, "proj", "/tmp/sa.json"
		cfg.Perplexity.Enabled, cfg.Perplexity.APIKey = true, "p-key"
		cfg.Stability.Enabled, cfg.Stability.APIKey = true, "s-key"
		return cfg
	}

	tests := []struct {
		name      string
		mutate    func(*config.ProvidersConfig)
		wantImage []ProviderName
		wantText  []ProviderName
	}{
		{
			name:      "everything configured prefers vertex",
			mutate:    func(*config.ProvidersConfig) {},
			wantImage: []ProviderName{ProviderVertex, ProviderStability},
			wantText:  []ProviderName{ProviderGemini, ProviderPerplexity},
		},
		{
			name:      "public gemini image replaces missing vertex",
			mutate:    func(c *config.ProvidersConfig) { c.Vertex.ProjectID = "" },
			wantImage: []ProviderName{ProviderGeminiImage, ProviderStability},
			wantText:  []ProviderName{ProviderGemini, ProviderPerplexity},
		},
		{
			name:      "explicit disable wins over a key",
			mutate:    func(c *config.ProvidersConfig) { c.Gemini.Enabled = false; c.Vertex.Enabled = false },
			wantImage: []ProviderName{ProviderStability},
			wantText:  []ProviderName{ProviderPerplexity},
		},
		{
			name: "nothing configured",
			mutate: func(c *config.ProvidersConfig) {
				*c = config.ProvidersConfig{}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := full()
			tt.mutate(&cfg)
			avail := ProviderAvailability(cfg)
			assert.Equal(t, tt.wantImage, avail.ImageChain())
			assert.Equal(t, tt.wantText, avail.TextChain())
			assert.True(t, avail.Has(ProviderLocal))
		})
	}
}
