package middlewares

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moodcanvas-server/internal/infrastructure/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAuthenticator struct {
	token string
}

func (s stubAuthenticator) Authenticate(_ context.Context, raw string) (*auth.Principal, error) {
	if raw != s.token {
		return nil, errors.New("nope")
	}
	return &auth.Principal{UserID: 3, Username: "alice", StateID: "sess"}, nil
}

func TestRequireAuth(t *testing.T) {
	engine := gin.New()
	engine.Use(RequireAuth(stubAuthenticator{token: "good"}, "moodcanvas_session"))
	engine.GET("/me", func(c *gin.Context) {
		p, _ := PrincipalFromContext(c)
		c.String(http.StatusOK, p.Username)
	})

	tests := []struct {
		name   string
		header string
		cookie string
		want   int
	}{
		{"bearer", "Bearer good", "", http.StatusOK},
		{"cookie", "", "good", http.StatusOK},
		{"bad token", "Bearer bad", "", http.StatusUnauthorized},
		{"missing", "", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "moodcanvas_session", Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRateLimiter(t *testing.T) {
	engine := gin.New()
	engine.Use(NewRateLimiter(2).Middleware())
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestSecurityHeadersAndRequestID(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestID(), SecurityHeaders())
	engine.GET("/", func(c *gin.Context) { c.String(http.StatusOK, RequestIDFromContext(c)) })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "1; mode=block", w.Header().Get("X-XSS-Protection"))
	assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
	assert.NotEmpty(t, w.Body.String())
	assert.Equal(t, w.Body.String(), w.Header().Get("X-Request-Id"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "abc")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Body.String())
}

func TestRequestIDRejectsUnprintable(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/", func(c *gin.Context) { c.String(http.StatusOK, RequestIDFromContext(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "bad id")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.NotEqual(t, "bad id", w.Body.String())
	assert.Len(t, w.Body.String(), 36)
}

func TestLoggingMiddlewareUsesRouteTemplate(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	engine := gin.New()
	engine.Use(RequestID(), LoggingMiddleware(logger))
	engine.GET("/v1/diaries/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/diaries/42?q=secret", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "/v1/diaries/:id", line["route"])
	assert.Equal(t, float64(http.StatusNotFound), line["status"])
	assert.NotEmpty(t, line["request_id"])
	assert.NotContains(t, buf.String(), "secret")
}

func TestLoggingMiddlewareQuietsProbes(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.InfoLevel)

	engine := gin.New()
	engine.Use(LoggingMiddleware(logger))
	engine.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Empty(t, buf.String())
}

func TestRouteLabelUnmatched(t *testing.T) {
	var got string
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Next()
		got = routeLabel(c)
	})

	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/images/abc.png", nil))
	assert.Equal(t, unmatchedRoute, got)
}
