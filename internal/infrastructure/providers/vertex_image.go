package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"resty.dev/v3"

	"moodcanvas-server/internal/config"
	"moodcanvas-server/internal/domain/generation"
	"moodcanvas-server/internal/domain/session"
)

const (
	vertexScope       = "https://www.googleapis.com/auth/cloud-platform"
	vertexTokenKey    = "vertex:access_token"
	vertexTokenBuffer = 100 * time.Second
	vertexLockTTL     = 30 * time.Second
)

// TokenSourceFunc builds an OAuth2 token source for the service account.
type TokenSourceFunc func(ctx context.Context) (oauth2.TokenSource, error)

type vertexInstance struct {
	Prompt string `json:"prompt"`
}

type vertexParameters struct {
	SampleCount    int    `json:"sampleCount"`
	AspectRatio    string `json:"aspectRatio,omitempty"`
	Resolution     string `json:"resolution,omitempty"`
	NegativePrompt string `json:"negativePrompt,omitempty"`
}

type vertexRequest struct {
	Instances  []vertexInstance `json:"instances"`
	Parameters vertexParameters `json:"parameters"`
}

type vertexResponse struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
		MIMEType           string `json:"mimeType"`
	} `json:"predictions"`
}

type cachedToken struct {
	AccessToken string    `json:"access_token"`
	Expiry      time.Time `json:"expiry"`
}

// VertexImage renders images with an Imagen model on Vertex AI using a
// service-account token. Tokens are cached in the caller's session state.
type VertexImage struct {
	client      *resty.Client
	cfg         config.VertexConfig
	tokenSource TokenSourceFunc
	log         zerolog.Logger
	now         func() time.Time
}

func NewVertexImage(cfg config.VertexConfig, log zerolog.Logger) *VertexImage {
	log = log.With().Str("provider", string(generation.ProviderVertex)).Logger()
	return &VertexImage{
		client:      newClient("vertex-image", timeoutOr(cfg.Timeout, 120*time.Second), log),
		cfg:         cfg,
		tokenSource: serviceAccountTokenSource(cfg.CredentialsFile),
		log:         log,
		now:         time.Now,
	}
}

// WithTokenSource replaces how access tokens are minted.
func (v *VertexImage) WithTokenSource(fn TokenSourceFunc) *VertexImage {
	v.tokenSource = fn
	return v
}

func (v *VertexImage) Name() generation.ProviderName {
	return generation.ProviderVertex
}

func (v *VertexImage) GenerateImage(ctx context.Context, req generation.ImageRequest) (*generation.GeneratedImage, error) {
	if config.Credential(v.cfg.ProjectID) == "" || config.Credential(v.cfg.CredentialsFile) == "" {
		return nil, missingCredential(v.Name())
	}

	token, err := v.accessToken(ctx, req.State)
	if err != nil {
		return nil, &Error{Provider: v.Name(), Cause: fmt.Errorf("obtain access token: %w", err)}
	}

	negative := req.NegativePrompt
	if negative == "" {
		negative = v.cfg.NegativePrompt
	}
	body := vertexRequest{
		Instances: []vertexInstance{{Prompt: req.Prompt}},
		Parameters: vertexParameters{
			SampleCount:    1,
			AspectRatio:    v.cfg.AspectRatio,
			Resolution:     v.cfg.Resolution,
			NegativePrompt: negative,
		},
	}

	var out vertexResponse
	resp, err := v.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(body).
		SetResult(&out).
		Post(v.endpoint())
	if failure := checkResponse(v.Name(), resp, err, v.log); failure != nil {
		if failure.StatusCode == http.StatusUnauthorized && req.State != nil {
			_ = req.State.Delete(ctx, vertexTokenKey)
		}
		return nil, failure
	}

	if len(out.Predictions) == 0 || out.Predictions[0].BytesBase64Encoded == "" {
		v.log.Warn().Str("body", errorBody(resp.String())).Msg("vertex response has no prediction")
		return nil, structureError(v.Name(), resp.StatusCode(), resp.String())
	}
	img, err := generation.DecodeBase64Image(out.Predictions[0].BytesBase64Encoded, out.Predictions[0].MIMEType)
	if err != nil {
		return nil, &Error{Provider: v.Name(), StatusCode: resp.StatusCode(), Cause: err}
	}
	return img, nil
}

func (v *VertexImage) endpoint() string {
	base := strings.TrimRight(v.cfg.BaseURL, "/")
	if base == "" {
		base = fmt.Sprintf("https://%s-aiplatform.googleapis.com/v1", v.cfg.Region)
	}
	return fmt.Sprintf("%s/projects/%s/locations/%s/publishers/google/models/%s:predict",
		base, v.cfg.ProjectID, v.cfg.Region, v.cfg.Model)
}

// accessToken returns a cached token while it is more than the buffer away
// from expiry, otherwise mints and caches a new one under the state lock.
func (v *VertexImage) accessToken(ctx context.Context, state session.Store) (string, error) {
	if state == nil {
		tok, err := v.mint(ctx)
		if err != nil {
			return "", err
		}
		return tok.AccessToken, nil
	}

	if tok, ok := v.cached(ctx, state); ok {
		return tok, nil
	}

	var token string
	refresh := func() error {
		if tok, ok := v.cached(ctx, state); ok {
			token = tok
			return nil
		}
		fresh, err := v.mint(ctx)
		if err != nil {
			return err
		}
		raw, err := json.Marshal(cachedToken{AccessToken: fresh.AccessToken, Expiry: fresh.Expiry})
		if err != nil {
			return err
		}
		ttl := fresh.Expiry.Sub(v.now()) - vertexTokenBuffer
		if ttl > 0 {
			if err := state.Set(ctx, vertexTokenKey, string(raw), ttl); err != nil {
				v.log.Warn().Err(err).Msg("failed to cache vertex access token")
			}
		}
		token = fresh.AccessToken
		return nil
	}

	if locker, ok := state.(session.Locker); ok {
		if err := locker.WithLock(ctx, vertexTokenKey, vertexLockTTL, refresh); err != nil {
			return "", err
		}
		return token, nil
	}
	if err := refresh(); err != nil {
		return "", err
	}
	return token, nil
}

func (v *VertexImage) cached(ctx context.Context, state session.Store) (string, bool) {
	raw, ok, err := state.Get(ctx, vertexTokenKey)
	if err != nil || !ok {
		return "", false
	}
	var tok cachedToken
	if err := json.Unmarshal([]byte(raw), &tok); err != nil || tok.AccessToken == "" {
		return "", false
	}
	if v.now().Add(vertexTokenBuffer).After(tok.Expiry) {
		return "", false
	}
	return tok.AccessToken, true
}

func (v *VertexImage) mint(ctx context.Context) (*oauth2.Token, error) {
	source, err := v.tokenSource(ctx)
	if err != nil {
		return nil, err
	}
	tok, err := source.Token()
	if err != nil {
		return nil, err
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("empty access token")
	}
	if tok.Expiry.IsZero() {
		tok.Expiry = v.now().Add(time.Hour)
	}
	return tok, nil
}

func serviceAccountTokenSource(path string) TokenSourceFunc {
	return func(ctx context.Context) (oauth2.TokenSource, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read service account key: %w", err)
		}
		creds, err := google.CredentialsFromJSON(ctx, data, vertexScope)
		if err != nil {
			return nil, fmt.Errorf("parse service account key: %w", err)
		}
		return creds.TokenSource, nil
	}
}
