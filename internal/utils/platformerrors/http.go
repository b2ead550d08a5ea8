package platformerrors

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// HTTPErrorResponse is the error envelope. Message repeats Error.Message for
// clients that only read the top level.
type HTTPErrorResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Error   *HTTPErrorDetail `json:"error"`
}

type HTTPErrorDetail struct {
	Message   string `json:"message"`
	Type      string `json:"type"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// WriteError renders err and aborts the chain. PlatformErrors are logged and
// mapped by type; anything else is a 500 with a generic message.
func WriteError(c *gin.Context, err error, log zerolog.Logger) {
	pe := GetPlatformError(err)
	if pe == nil {
		if err != nil {
			log.Error().Err(err).Str("request_id", c.GetString(RequestIDKey)).Msg("unhandled error")
		}
		WriteInternalError(c, "internal server error")
		return
	}

	LogError(log, pe)
	requestID := pe.RequestID
	if requestID == "" {
		requestID = c.GetString(RequestIDKey)
	}
	c.AbortWithStatusJSON(pe.Status(), HTTPErrorResponse{
		Message: pe.Message,
		Error: &HTTPErrorDetail{
			Message:   pe.Message,
			Type:      infoFor(pe.Type).wireName,
			Code:      pe.Code,
			RequestID: requestID,
		},
	})
}

func WriteValidationError(c *gin.Context, message string) {
	abort(c, ErrorTypeValidation, message)
}

func WriteUnauthorized(c *gin.Context, message string) {
	abort(c, ErrorTypeUnauthorized, message)
}

func WriteNotFound(c *gin.Context, message string) {
	abort(c, ErrorTypeNotFound, message)
}

func WriteTooManyRequests(c *gin.Context, message string) {
	abort(c, ErrorTypeTooManyRequests, message)
}

func WriteInternalError(c *gin.Context, message string) {
	abort(c, ErrorTypeInternal, message)
}

func abort(c *gin.Context, t ErrorType, message string) {
	info := infoFor(t)
	c.AbortWithStatusJSON(info.status, HTTPErrorResponse{
		Message: message,
		Error: &HTTPErrorDetail{
			Message:   message,
			Type:      info.wireName,
			RequestID: c.GetString(RequestIDKey),
		},
	})
}
