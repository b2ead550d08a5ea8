package middlewares

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"moodcanvas-server/internal/utils/platformerrors"
)

const (
	requestIDHeader    = platformerrors.RequestIDKey
	maxRequestIDLength = 128
)

// RequestID echoes a caller supplied X-Request-Id or mints one. The id is
// stored on both the gin context and the request context so domain errors
// can carry it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if !validRequestID(id) {
			id = uuid.NewString()
			c.Request.Header.Set(requestIDHeader, id)
		}

		c.Set(requestIDHeader, id)
		c.Header(requestIDHeader, id)
		ctx := context.WithValue(c.Request.Context(), platformerrors.RequestIDKey, id)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// Header values end up in log lines; only printable ASCII is accepted.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}

func RequestIDFromContext(c *gin.Context) string {
	return c.GetString(requestIDHeader)
}
