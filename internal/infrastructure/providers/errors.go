package providers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"resty.dev/v3"

	"moodcanvas-server/internal/domain/generation"
	"moodcanvas-server/internal/utils/telemetry"
)

const maxErrorBody = 500

var bodySanitizer = telemetry.NewSanitizer("moodcanvas-providers", maxErrorBody)

// ErrMissingCredential is returned without any network call when a provider
// has no usable key.
var ErrMissingCredential = errors.New("missing or placeholder credential")

// ErrUnexpectedStructure is returned when a vendor answered 2xx with a body
// that does not have the expected shape.
var ErrUnexpectedStructure = errors.New("unexpected structure")

// Error is a failed vendor call.
type Error struct {
	Provider   generation.ProviderName
	StatusCode int
	Body       string
	Cause      error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Provider))
	if e.StatusCode > 0 {
		fmt.Fprintf(&b, " status %d", e.StatusCode)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	if e.Body != "" {
		b.WriteString(": ")
		b.WriteString(e.Body)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// errorBody is the form of a vendor response body that may be logged or
// carried on an Error.
func errorBody(raw string) string {
	return bodySanitizer.SanitizeBody(strings.TrimSpace(raw))
}

func statusError(provider generation.ProviderName, status int, body string) *Error {
	return &Error{Provider: provider, StatusCode: status, Body: errorBody(body)}
}

func transportError(provider generation.ProviderName, err error) *Error {
	return &Error{Provider: provider, Cause: err}
}

func structureError(provider generation.ProviderName, status int, body string) *Error {
	return &Error{
		Provider:   provider,
		StatusCode: status,
		Body:       errorBody(body),
		Cause:      ErrUnexpectedStructure,
	}
}

func missingCredential(provider generation.ProviderName) *Error {
	return &Error{Provider: provider, Cause: ErrMissingCredential}
}

// checkResponse classifies a resty round trip and returns nil on success.
// resty reports a result that failed to decode through err, so a 2xx with err
// set is a body of the wrong shape rather than a transport failure.
func checkResponse(provider generation.ProviderName, resp *resty.Response, err error, log zerolog.Logger) *Error {
	status := 0
	if resp != nil {
		status = resp.StatusCode()
	}
	switch {
	case status >= 400:
		log.Warn().Int("status", status).Str("body", errorBody(resp.String())).Msg("vendor request failed")
		return statusError(provider, status, resp.String())
	case err != nil && status > 0:
		log.Warn().Int("status", status).Err(err).Str("body", errorBody(resp.String())).Msg("vendor response has unexpected structure")
		return structureError(provider, status, resp.String())
	case err != nil:
		return transportError(provider, err)
	}
	return nil
}

// isDecodeError reports whether err came from decoding a response body.
func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF)
}
