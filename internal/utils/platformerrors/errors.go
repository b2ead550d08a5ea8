package platformerrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// RequestIDKey names the request id on both gin and request contexts.
const RequestIDKey = "X-Request-Id"

type ErrorType string

const (
	ErrorTypeNotFound        ErrorType = "NOT_FOUND"
	ErrorTypeValidation      ErrorType = "VALIDATION"
	ErrorTypeConflict        ErrorType = "CONFLICT"
	ErrorTypeUnauthorized    ErrorType = "UNAUTHORIZED"
	ErrorTypeTooManyRequests ErrorType = "TOO_MANY_REQUESTS"
	ErrorTypeInternal        ErrorType = "INTERNAL"
	ErrorTypeExternal        ErrorType = "EXTERNAL"
	ErrorTypeUnavailable     ErrorType = "UNAVAILABLE"
	ErrorTypeDatabaseError   ErrorType = "DATABASE_ERROR"
)

// typeInfo is how an error type surfaces: status, wire name, and whether it
// is the caller's fault (logged at warn) or ours (logged at error).
type typeInfo struct {
	status   int
	wireName string
	client   bool
}

var types = map[ErrorType]typeInfo{
	ErrorTypeNotFound:        {http.StatusNotFound, "not_found_error", true},
	ErrorTypeValidation:      {http.StatusBadRequest, "validation_error", true},
	ErrorTypeConflict:        {http.StatusConflict, "conflict_error", true},
	ErrorTypeUnauthorized:    {http.StatusUnauthorized, "unauthorized_error", true},
	ErrorTypeTooManyRequests: {http.StatusTooManyRequests, "rate_limited_error", true},
	ErrorTypeExternal:        {http.StatusBadGateway, "external_error", false},
	ErrorTypeUnavailable:     {http.StatusServiceUnavailable, "unavailable_error", false},
	ErrorTypeDatabaseError:   {http.StatusInternalServerError, "database_error", false},
	ErrorTypeInternal:        {http.StatusInternalServerError, "internal_error", false},
}

func infoFor(t ErrorType) typeInfo {
	if info, ok := types[t]; ok {
		return info
	}
	return types[ErrorTypeInternal]
}

// Layer records where an error was raised.
type Layer string

const (
	LayerRepository     Layer = "repository"
	LayerDomain         Layer = "domain"
	LayerHandler        Layer = "handler"
	LayerInfrastructure Layer = "infrastructure"
)

// PlatformError is the error type shared by every layer. Message is safe to
// show to the caller; Err is only ever logged.
type PlatformError struct {
	Code      string
	Type      ErrorType
	Message   string
	Err       error
	Fields    map[string]any
	RequestID string
	Layer     Layer
	At        time.Time
}

func (e *PlatformError) Error() string {
	head := fmt.Sprintf("%s/%s %s: %s", e.Layer, e.Type, e.Code, e.Message)
	if e.Err == nil {
		return head
	}
	return head + ": " + e.Err.Error()
}

func (e *PlatformError) Unwrap() error { return e.Err }

// With attaches a structured log field.
func (e *PlatformError) With(key string, value any) *PlatformError {
	if e.Fields == nil {
		e.Fields = map[string]any{}
	}
	e.Fields[key] = value
	return e
}

// Status is the HTTP status the error maps to.
func (e *PlatformError) Status() int { return infoFor(e.Type).status }

// NewError builds a PlatformError. code is a stable identifier for the
// failure site; empty means unclassified.
func NewError(ctx context.Context, layer Layer, errorType ErrorType, message string, err error, code string) *PlatformError {
	if code == "" {
		code = "unclassified"
	}
	var requestID string
	if ctx != nil {
		requestID, _ = ctx.Value(RequestIDKey).(string)
	}
	return &PlatformError{
		Code:      code,
		Type:      errorType,
		Message:   message,
		Err:       err,
		RequestID: requestID,
		Layer:     layer,
		At:        time.Now().UTC(),
	}
}

// AsError re-raises err at layer. A wrapped PlatformError keeps its type and
// code; anything else becomes internal.
func AsError(ctx context.Context, layer Layer, err error, message string) *PlatformError {
	if err == nil {
		return nil
	}
	if inner := GetPlatformError(err); inner != nil {
		return NewError(ctx, layer, inner.Type, message+": "+inner.Message, inner, inner.Code)
	}
	return NewError(ctx, layer, ErrorTypeInternal, message, err, "")
}

func GetPlatformError(err error) *PlatformError {
	var pe *PlatformError
	if errors.As(err, &pe) {
		return pe
	}
	return nil
}

func IsErrorType(err error, errorType ErrorType) bool {
	pe := GetPlatformError(err)
	return pe != nil && pe.Type == errorType
}

// LogError writes err once with its fields; caller faults log at warn.
func LogError(logger zerolog.Logger, err *PlatformError) {
	if err == nil {
		return
	}
	event := logger.Error()
	if infoFor(err.Type).client {
		event = logger.Warn()
	}
	event = event.
		Str("error_code", err.Code).
		Str("error_type", string(err.Type)).
		Str("layer", string(err.Layer))
	if err.RequestID != "" {
		event = event.Str("request_id", err.RequestID)
	}
	if len(err.Fields) > 0 {
		event = event.Fields(err.Fields)
	}
	if err.Err != nil {
		event = event.Err(err.Err)
	}
	event.Msg(err.Message)
}
