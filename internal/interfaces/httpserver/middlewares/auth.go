package middlewares

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"moodcanvas-server/internal/infrastructure/auth"
	"moodcanvas-server/internal/utils/platformerrors"
)

const principalKey = "auth_principal"

// Authenticator resolves a raw token into the calling principal.
type Authenticator interface {
	Authenticate(ctx context.Context, raw string) (*auth.Principal, error)
}

// RequireAuth accepts a bearer token or the session cookie and rejects the
// request with 401 when neither resolves to a principal.
func RequireAuth(authn Authenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := TokenFromRequest(c, cookieName)
		if raw == "" {
			platformerrors.WriteUnauthorized(c, "authentication required")
			return
		}
		principal, err := authn.Authenticate(c.Request.Context(), raw)
		if err != nil {
			platformerrors.WriteUnauthorized(c, "invalid or expired session")
			return
		}
		c.Set(principalKey, principal)
		c.Next()
	}
}

// TokenFromRequest returns the bearer token, falling back to the session cookie.
func TokenFromRequest(c *gin.Context, cookieName string) string {
	if token := bearerToken(c.GetHeader("Authorization")); token != "" {
		return token
	}
	if cookie, err := c.Cookie(cookieName); err == nil {
		return strings.TrimSpace(cookie)
	}
	return ""
}

// PrincipalFromContext returns the principal stored by RequireAuth.
func PrincipalFromContext(c *gin.Context) (*auth.Principal, bool) {
	val, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	principal, ok := val.(*auth.Principal)
	return principal, ok && principal != nil
}

// SetPrincipal stores a principal on the context.
func SetPrincipal(c *gin.Context, principal *auth.Principal) {
	c.Set(principalKey, principal)
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
