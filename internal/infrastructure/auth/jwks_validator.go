package auth

import (
	"context"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"moodcanvas-server/internal/config"
)

// ExternalIdentity is what an externally issued token says about its bearer.
type ExternalIdentity struct {
	Issuer   string
	Subject  string
	Username string
}

// Validator validates JWTs from an external issuer using its JWKS.
type Validator struct {
	issuer   string
	audience string
	log      zerolog.Logger
	jwks     *keyfunc.JWKS
}

// NewValidator fetches the key set when AUTH_JWKS_URL is set. Without it the
// validator is disabled and rejects every token.
func NewValidator(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Validator, error) {
	v := &Validator{
		issuer:   strings.TrimSpace(cfg.AuthIssuer),
		audience: strings.TrimSpace(cfg.AuthAudience),
		log:      log.With().Str("component", "jwks-validator").Logger(),
	}
	if strings.TrimSpace(cfg.AuthJWKSURL) == "" {
		return v, nil
	}

	jwks, err := keyfunc.Get(cfg.AuthJWKSURL, keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   time.Hour,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			v.log.Error().Err(err).Msg("jwks refresh error")
		},
	})
	if err != nil {
		return nil, err
	}
	v.jwks = jwks
	return v, nil
}

// Enabled reports whether external tokens are accepted.
func (v *Validator) Enabled() bool {
	return v != nil && v.jwks != nil
}

// Validate verifies an externally issued RS256 token.
func (v *Validator) Validate(raw string) (*ExternalIdentity, error) {
	if !v.Enabled() {
		return nil, ErrInvalidToken
	}

	opts := []jwt.ParserOption{
		jwt.WithIssuer(v.issuer),
		jwt.WithValidMethods([]string{"RS256", "RS384", "RS512"}),
		jwt.WithExpirationRequired(),
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, v.jwks.Keyfunc, opts...)
	if err != nil || !token.Valid {
		v.log.Debug().Err(err).Msg("external token rejected")
		return nil, ErrInvalidToken
	}

	subject, _ := claims.GetSubject()
	if subject == "" {
		return nil, ErrInvalidToken
	}
	username, _ := claims["preferred_username"].(string)
	if username == "" {
		username, _ = claims["email"].(string)
	}
	if username == "" {
		username = subject
	}
	issuer, _ := claims.GetIssuer()
	return &ExternalIdentity{Issuer: issuer, Subject: subject, Username: username}, nil
}

// Close stops background key refreshes.
func (v *Validator) Close() {
	if v.Enabled() {
		v.jwks.EndBackground()
	}
}
