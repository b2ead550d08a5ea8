package generation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"moodcanvas-server/internal/domain/session"
)

// DefaultCooldown is the window during which an identical image request is rejected.
const DefaultCooldown = 30 * time.Second

// ErrCooldown is returned when an identical request was made within the cooldown window.
var ErrCooldown = errors.New("please wait a moment before generating again")

// Suppressor rejects repeated image requests with the same fingerprint.
// It is a best-effort guard over session-scoped state, not a distributed lock.
type Suppressor struct {
	window time.Duration
	now    func() time.Time
}

func NewSuppressor(window time.Duration) *Suppressor {
	if window <= 0 {
		window = DefaultCooldown
	}
	return &Suppressor{window: window, now: time.Now}
}

// Check records the attempt for req's fingerprint, or returns ErrCooldown when
// the previous attempt for the same fingerprint is younger than the window.
func (s *Suppressor) Check(ctx context.Context, state session.Store, req GenerationRequest) error {
	if state == nil {
		return nil
	}
	key := "cooldown:" + req.Fingerprint()
	now := s.now()

	raw, ok, err := state.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("read cooldown state: %w", err)
	}
	if ok {
		if last, parseErr := strconv.ParseInt(raw, 10, 64); parseErr == nil {
			if now.Sub(time.UnixMilli(last)) < s.window {
				return ErrCooldown
			}
		}
	}

	// Kept a little longer than the window so a slow clock does not reopen it early.
	if err := state.Set(ctx, key, strconv.FormatInt(now.UnixMilli(), 10), 2*s.window); err != nil {
		return fmt.Errorf("write cooldown state: %w", err)
	}
	return nil
}
