package metrics

import (
	"time"

	"moodcanvas-server/internal/domain/generation"
)

// Recorder feeds domain events into the Prometheus collectors.
type Recorder struct{}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (*Recorder) ProviderCall(provider generation.ProviderName, capability generation.Capability, outcome string, elapsed time.Duration) {
	RecordProviderCall(string(provider), string(capability), outcome, elapsed.Seconds())
}

func (*Recorder) CooldownRejected() {
	CooldownRejectionsTotal.Inc()
}

func (*Recorder) ImageStored(mimeType string, size int) {
	RecordImageStored(mimeType, size)
}

func (*Recorder) OrphanSwept() {
	OrphanImagesSweptTotal.Inc()
}
