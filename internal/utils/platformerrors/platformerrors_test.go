package platformerrors

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
)

func TestAsErrorKeepsTypeAndCode(t *testing.T) {
	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	inner := NewError(ctx, LayerRepository, ErrorTypeNotFound, "diary not found", nil, "diary-missing")

	outer := AsError(ctx, LayerDomain, inner, "load diary")
	require.NotNil(t, outer)
	assert.Equal(t, ErrorTypeNotFound, outer.Type)
	assert.Equal(t, "diary-missing", outer.Code)
	assert.Equal(t, "req-1", outer.RequestID)
	assert.Equal(t, "load diary: diary not found", outer.Message)
	assert.True(t, IsErrorType(outer, ErrorTypeNotFound))

	plain := AsError(ctx, LayerDomain, errors.New("boom"), "load diary")
	assert.Equal(t, ErrorTypeInternal, plain.Type)
	assert.Equal(t, "unclassified", plain.Code)
	assert.Nil(t, AsError(ctx, LayerDomain, nil, "noop"))
}

func TestWriteErrorEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var logs bytes.Buffer

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set(RequestIDKey, "req-2")

	cause := errors.New("upstream said no")
	err := NewError(context.Background(), LayerDomain, ErrorTypeTooManyRequests, "please wait", cause, "cooldown").
		With("state_id", "abc")
	WriteError(c, err, zerolog.New(&logs))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	var body HTTPErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "please wait", body.Message)
	assert.Equal(t, "rate_limited_error", body.Error.Type)
	assert.Equal(t, "cooldown", body.Error.Code)
	assert.Equal(t, "req-2", body.Error.RequestID)
	assert.NotContains(t, w.Body.String(), "upstream said no")

	assert.Contains(t, logs.String(), `"level":"warn"`)
	assert.Contains(t, logs.String(), `"state_id":"abc"`)
}

func TestWriteErrorUnknown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	WriteError(c, errors.New("secret detail"), zerolog.Nop())
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "secret detail")
}
