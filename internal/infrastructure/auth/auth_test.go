package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moodcanvas-server/internal/domain/session"
	"moodcanvas-server/internal/domain/user"
	"moodcanvas-server/internal/infrastructure/kvstore"
)

type noExternalUsers struct{}

func (noExternalUsers) EnsureExternal(context.Context, string) (*user.User, error) {
	return nil, ErrInvalidToken
}

func newManager(t *testing.T) *session.Manager {
	t.Helper()
	store, err := kvstore.NewMemoryStore(100)
	require.NoError(t, err)
	return session.NewManager(store, time.Hour)
}

func TestSessionTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	manager := newManager(t)
	issuer := NewTokenIssuer("secret", "moodcanvas-api")
	authn := NewAuthenticator(issuer, manager, &Validator{}, noExternalUsers{}, zerolog.Nop())

	sess, err := manager.Create(ctx, 7, "alice")
	require.NoError(t, err)
	token, err := issuer.Issue(sess)
	require.NoError(t, err)
	assert.True(t, IsSessionToken(token))

	p, err := authn.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), p.UserID)
	assert.Equal(t, "alice", p.Username)
	assert.Equal(t, sess.ID, p.StateID)

	require.NoError(t, manager.Destroy(ctx, sess.ID))
	_, err = authn.Authenticate(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionTokenRejections(t *testing.T) {
	ctx := context.Background()
	manager := newManager(t)
	issuer := NewTokenIssuer("secret", "moodcanvas-api")
	sess, err := manager.Create(ctx, 1, "bob")
	require.NoError(t, err)

	other := NewTokenIssuer("other-secret", "moodcanvas-api")
	forged, err := other.Issue(sess)
	require.NoError(t, err)
	_, err = issuer.Parse(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := *sess
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	stale, err := issuer.Issue(&expired)
	require.NoError(t, err)
	_, err = issuer.Parse(stale)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sid": sess.ID})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = issuer.Parse(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExternalTokensRejectedWhenDisabled(t *testing.T) {
	authn := NewAuthenticator(NewTokenIssuer("s", "i"), newManager(t), &Validator{}, noExternalUsers{}, zerolog.Nop())

	rs := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "x"})
	raw, err := rs.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = authn.Authenticate(context.Background(), raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = authn.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
