package middlewares

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// LoggingMiddleware writes one access line per request. Health probes and
// metric scrapes log at debug so they do not drown diary traffic.
func LoggingMiddleware(logger zerolog.Logger) gin.HandlerFunc {
	quiet := map[string]bool{"/healthz": true, "/readyz": true, "/metrics": true}

	return func(c *gin.Context) {
		began := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := accessLevel(logger, status, quiet[c.Request.URL.Path])
		if event == nil {
			return
		}

		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.IsValid() {
			event = event.Str("trace_id", sc.TraceID().String())
		}
		if principal, ok := PrincipalFromContext(c); ok {
			event = event.Uint("user_id", principal.UserID)
		}
		if len(c.Errors) > 0 {
			event = event.Strs("errors", c.Errors.Errors())
		}

		// Route templates only; query strings may hold diary text.
		event.
			Str("request_id", RequestIDFromContext(c)).
			Str("method", c.Request.Method).
			Str("route", routeLabel(c)).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(began)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}

func accessLevel(logger zerolog.Logger, status int, quiet bool) *zerolog.Event {
	switch {
	case status >= http.StatusInternalServerError:
		return logger.Error()
	case status >= http.StatusBadRequest:
		return logger.Warn()
	case quiet:
		return logger.Debug()
	default:
		return logger.Info()
	}
}
