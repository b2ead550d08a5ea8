package generation

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type mapStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMapStore() *mapStore {
	return &mapStore{data: map[string]string{}}
}

func (m *mapStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mapStore) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *mapStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

type fakeText struct {
	name  ProviderName
	out   string
	err   error
	calls int
}

func (f *fakeText) Name() ProviderName { return f.name }

func (f *fakeText) GenerateText(_ context.Context, _ TextPrompt) (string, error) {
	f.calls++
	return f.out, f.err
}

type fakeImage struct {
	name  ProviderName
	img   *GeneratedImage
	err   error
	calls int
}

func (f *fakeImage) Name() ProviderName { return f.name }

func (f *fakeImage) GenerateImage(_ context.Context, _ ImageRequest) (*GeneratedImage, error) {
	f.calls++
	return f.img, f.err
}

type fakeImageStore struct {
	saved   map[string][]byte
	deleted []string
	err     error
}

func newFakeImageStore() *fakeImageStore {
	return &fakeImageStore{saved: map[string][]byte{}}
}

func (s *fakeImageStore) Save(_ context.Context, filename string, data []byte, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.saved[filename] = data
	return "/storage/generated_images/" + filename, nil
}

func (s *fakeImageStore) Delete(_ context.Context, filename string) error {
	s.deleted = append(s.deleted, filename)
	return nil
}

var errVendor = errors.New("status 500")

// pngBytes is a 1x1 transparent PNG.
var pngBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

func nopLogger() zerolog.Logger {
	return zerolog.Nop()
}

func noRetry() RetryPolicy {
	return RetryPolicy{MaxAttempts: 1}
}

type countingRecorder struct {
	calls     map[string]int
	cooldowns int
	stored    int
}

func (r *countingRecorder) ProviderCall(provider ProviderName, capability Capability, outcome string, _ time.Duration) {
	if r.calls == nil {
		r.calls = map[string]int{}
	}
	r.calls[string(capability)+"/"+string(provider)+"/"+outcome]++
}

func (r *countingRecorder) CooldownRejected() { r.cooldowns++ }

func (r *countingRecorder) ImageStored(string, int) { r.stored++ }
