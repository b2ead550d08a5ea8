package providers

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"resty.dev/v3"

	"moodcanvas-server/internal/utils/platformerrors"
)

type startsAtKey struct{}

// newClient returns a resty client that logs every vendor round trip at debug
// level. Bodies stay readable after result decoding so failures can be logged.
func newClient(name string, timeout time.Duration, log zerolog.Logger) *resty.Client {
	client := resty.New().
		SetTimeout(timeout).
		SetResponseBodyUnlimitedReads(true).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	client.AddRequestMiddleware(func(_ *resty.Client, r *resty.Request) error {
		r.SetContext(context.WithValue(r.Context(), startsAtKey{}, time.Now()))
		return nil
	})
	client.AddResponseMiddleware(func(_ *resty.Client, r *resty.Response) error {
		startTime, _ := r.Request.Context().Value(startsAtKey{}).(time.Time)
		requestID, _ := r.Request.Context().Value(platformerrors.RequestIDKey).(string)

		event := log.Debug().
			Str("client", name).
			Str("request_id", requestID).
			Int("status", r.StatusCode()).
			Dur("latency", time.Since(startTime))
		if raw := r.Request.RawRequest; raw != nil {
			event = event.Str("method", raw.Method).Str("path", raw.URL.Path)
		}
		event.Msg("vendor request")
		return nil
	})
	return client
}

func timeoutOr(d, fallback time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return fallback
}
