package generation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuppressor_RejectsWithinWindowAcceptsAfter(t *testing.T) {
	ctx := context.Background()
	store := newMapStore()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := NewSuppressor(30 * time.Second)
	s.now = func() time.Time { return now }

	req := NewGenerationRequest("a walk in the park", "ghibli", "😊")
	require.NoError(t, s.Check(ctx, store, req))

	now = now.Add(5 * time.Second)
	assert.ErrorIs(t, s.Check(ctx, store, req), ErrCooldown)

	other := NewGenerationRequest("a walk in the park", "sketch", "😊")
	assert.NoError(t, s.Check(ctx, store, other))

	now = now.Add(26 * time.Second)
	assert.NoError(t, s.Check(ctx, store, req))
}

func TestSuppressor_NilStateAlwaysPasses(t *testing.T) {
	s := NewSuppressor(0)
	req := NewGenerationRequest("x", "", "")
	assert.NoError(t, s.Check(context.Background(), nil, req))
	assert.NoError(t, s.Check(context.Background(), nil, req))
}

func TestSuppressor_UnparseableTimestampIsIgnored(t *testing.T) {
	store := newMapStore()
	req := NewGenerationRequest("x", "", "")
	store.data["cooldown:"+req.Fingerprint()] = "garbage"

	assert.NoError(t, NewSuppressor(time.Minute).Check(context.Background(), store, req))
}
