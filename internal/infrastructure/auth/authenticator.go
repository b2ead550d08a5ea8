package auth

import (
	"context"
	"errors"
	"strconv"

	"github.com/rs/zerolog"

	"moodcanvas-server/internal/domain/session"
	"moodcanvas-server/internal/domain/user"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID   uint
	Username string
	// StateID scopes per-caller state such as the generation cooldown. It is
	// the login session id, or a stable id derived from an external subject.
	StateID  string
	External bool
}

// SessionResolver looks up live sessions.
type SessionResolver interface {
	Get(ctx context.Context, id string) (*session.Session, error)
}

// ExternalUsers maps an external identity onto a local account.
type ExternalUsers interface {
	EnsureExternal(ctx context.Context, username string) (*user.User, error)
}

// Authenticator resolves bearer tokens into principals. Session tokens are
// checked against the live session store so logout revokes them.
type Authenticator struct {
	issuer    *TokenIssuer
	sessions  SessionResolver
	validator *Validator
	users     ExternalUsers
	log       zerolog.Logger
}

func NewAuthenticator(issuer *TokenIssuer, sessions SessionResolver, validator *Validator, users ExternalUsers, log zerolog.Logger) *Authenticator {
	return &Authenticator{
		issuer:    issuer,
		sessions:  sessions,
		validator: validator,
		users:     users,
		log:       log.With().Str("component", "authenticator").Logger(),
	}
}

// Authenticate validates raw and returns the caller it identifies.
func (a *Authenticator) Authenticate(ctx context.Context, raw string) (*Principal, error) {
	if raw == "" {
		return nil, ErrInvalidToken
	}
	if IsSessionToken(raw) {
		return a.fromSession(ctx, raw)
	}
	return a.fromExternal(ctx, raw)
}

func (a *Authenticator) fromSession(ctx context.Context, raw string) (*Principal, error) {
	claims, err := a.issuer.Parse(raw)
	if err != nil {
		return nil, err
	}
	sess, err := a.sessions.Get(ctx, claims.SessionID)
	if errors.Is(err, session.ErrSessionNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	if strconv.FormatUint(uint64(sess.UserID), 10) != claims.Subject {
		return nil, ErrInvalidToken
	}
	return &Principal{UserID: sess.UserID, Username: sess.Username, StateID: sess.ID}, nil
}

func (a *Authenticator) fromExternal(ctx context.Context, raw string) (*Principal, error) {
	identity, err := a.validator.Validate(raw)
	if err != nil {
		return nil, err
	}
	u, err := a.users.EnsureExternal(ctx, identity.Username)
	if err != nil {
		a.log.Warn().Err(err).Str("subject", identity.Subject).Msg("failed to map external identity")
		return nil, ErrInvalidToken
	}
	return &Principal{
		UserID:   u.ID,
		Username: u.Username,
		StateID:  "ext:" + identity.Issuer + ":" + identity.Subject,
		External: true,
	}, nil
}
