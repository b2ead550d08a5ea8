package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "moodcanvas-api", cfg.ServiceName)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 30*time.Second, cfg.Generation.Cooldown)
	assert.Equal(t, 2, cfg.Generation.ImageRetryAttempts)
	assert.Equal(t, "gemini-2.5-flash", cfg.Providers.Gemini.TextModel)
	assert.Equal(t, "llama-3.1-sonar-large-128k-online", cfg.Providers.Perplexity.Model)
	assert.Equal(t, 90*time.Second, cfg.Providers.Stability.Timeout)
	assert.Equal(t, 100, cfg.RateLimitPerHour)
	assert.True(t, cfg.IsLocalStorage())
}

func TestLoadTreatsPlaceholdersAsUnset(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "your_gemini_api_key_here")
	t.Setenv("PERPLEXITY_API_KEY", "  pplx-real  ")
	t.Setenv("STABILITY_API_KEY", "YOUR_STABILITY_API_KEY_HERE")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.Providers.Gemini.APIKey)
	assert.Equal(t, "pplx-real", cfg.Providers.Perplexity.APIKey)
	assert.Empty(t, cfg.Providers.Stability.APIKey)
}

func TestLoadNestedPrefixes(t *testing.T) {
	t.Setenv("VERTEX_PROJECT_ID", "diary-project")
	t.Setenv("VERTEX_REGION", "asia-east1")
	t.Setenv("GENERATION_COOLDOWN", "45s")
	t.Setenv("IMAGE_JPEG_QUALITY", "60")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "diary-project", cfg.Providers.Vertex.ProjectID)
	assert.Equal(t, "asia-east1", cfg.Providers.Vertex.Region)
	assert.Equal(t, 45*time.Second, cfg.Generation.Cooldown)
	assert.Equal(t, 60, cfg.Imaging.JPEGQuality)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown session store", env: map[string]string{"SESSION_STORE": "memcached"}},
		{name: "redis without url", env: map[string]string{"SESSION_STORE": "redis"}},
		{name: "s3 without bucket", env: map[string]string{"STORAGE_BACKEND": "s3"}},
		{name: "production default secret", env: map[string]string{"ENVIRONMENT": "production"}},
		{name: "jwks without issuer", env: map[string]string{"AUTH_JWKS_URL": "https://idp.example/jwks"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestCredential(t *testing.T) {
	assert.Equal(t, "", Credential(""))
	assert.Equal(t, "", Credential("   "))
	assert.Equal(t, "", Credential("your_perplexity_api_key_here"))
	assert.Equal(t, "", Credential("changeme"))
	assert.Equal(t, "abc", Credential(" abc "))
}
