package generation

import "time"

// Recorder receives generation metrics. A nil Recorder discards them.
type Recorder interface {
	ProviderCall(provider ProviderName, capability Capability, outcome string, elapsed time.Duration)
	CooldownRejected()
	ImageStored(mimeType string, size int)
}

type nopRecorder struct{}

func (nopRecorder) ProviderCall(ProviderName, Capability, string, time.Duration) {}
func (nopRecorder) CooldownRejected()                                             {}
func (nopRecorder) ImageStored(string, int)                                       {}

func recorderOrNop(r Recorder) Recorder {
	if r == nil {
		return nopRecorder{}
	}
	return r
}
