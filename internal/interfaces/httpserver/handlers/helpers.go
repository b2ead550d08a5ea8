package handlers

import (
	"github.com/gin-gonic/gin"

	"moodcanvas-server/internal/infrastructure/auth"
	"moodcanvas-server/internal/interfaces/httpserver/middlewares"
	"moodcanvas-server/internal/utils/platformerrors"
)

// principal returns the authenticated caller, writing 401 when absent.
func principal(c *gin.Context) (*auth.Principal, bool) {
	p, ok := middlewares.PrincipalFromContext(c)
	if !ok {
		platformerrors.WriteUnauthorized(c, "authentication required")
		return nil, false
	}
	return p, true
}

// bindJSON decodes the body, writing 400 on malformed input.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		platformerrors.WriteValidationError(c, "invalid request body")
		return false
	}
	return true
}
