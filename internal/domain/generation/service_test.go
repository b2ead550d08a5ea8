package generation

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moodcanvas-server/internal/utils/platformerrors"
)

type serviceFixture struct {
	text     *fakeText
	fallback *fakeText
	image    *fakeImage
	store    *fakeImageStore
	recorder *countingRecorder
	svc      *Service
	clock    *time.Time
}

func newServiceFixture() *serviceFixture {
	f := &serviceFixture{
		text:     &fakeText{name: ProviderGemini, out: "a person writing at a desk, warm light"},
		fallback: &fakeText{name: ProviderPerplexity, err: errVendor},
		image:    &fakeImage{name: ProviderVertex, img: &GeneratedImage{Data: pngBytes, MIMEType: "image/png"}},
		store:    newFakeImageStore(),
		recorder: &countingRecorder{},
	}
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	f.clock = &now

	suppressor := NewSuppressor(DefaultCooldown)
	suppressor.now = func() time.Time { return *f.clock }

	orch := NewOrchestrator([]TextProvider{f.text, f.fallback}, []ImageProvider{f.image}, noRetry(), f.recorder, nopLogger())
	f.svc = NewService(orch, suppressor, NewImageWriter(f.store, nil, f.recorder, nopLogger()), NewLocalQuoteGenerator(nil),
		Availability{Vertex: true, Gemini: true, Perplexity: true}, f.recorder, nopLogger())
	return f
}

func TestService_EmptyContentRejectedWithoutProviderCalls(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	req := NewGenerationRequest("   ", "ghibli", "😊")

	_, err := f.svc.GenerateImage(ctx, newMapStore(), req)
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
	assert.Equal(t, "missing content", platformerrors.GetPlatformError(err).Message)

	_, err = f.svc.GenerateQuote(ctx, req)
	assert.Error(t, err)
	_, err = f.svc.GenerateImagePrompt(ctx, req)
	assert.Error(t, err)
	_, err = f.svc.Preview(ctx, newMapStore(), req)
	assert.Error(t, err)

	assert.Zero(t, f.text.calls)
	assert.Zero(t, f.image.calls)
}

func TestService_IdenticalImageRequestsWithinCooldownCallProviderOnce(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	state := newMapStore()
	req := NewGenerationRequest("today I finished the calendar feature", "sketch", "😊")

	res, err := f.svc.GenerateImage(ctx, state, req)
	require.NoError(t, err)
	assert.Equal(t, ProviderVertex, res.Provider)
	assert.True(t, strings.HasPrefix(res.Image.RelativePath, GeneratedImagesDir+"/ai_"))
	assert.True(t, strings.HasSuffix(res.Prompt, StylePhrase("sketch")))

	*f.clock = f.clock.Add(5 * time.Second)
	_, err = f.svc.GenerateImage(ctx, state, req)
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeTooManyRequests))
	assert.Equal(t, 1, f.image.calls)

	*f.clock = f.clock.Add(30 * time.Second)
	_, err = f.svc.GenerateImage(ctx, state, req)
	require.NoError(t, err)
	assert.Equal(t, 2, f.image.calls)

	assert.Equal(t, 1, f.recorder.cooldowns)
	assert.Equal(t, 2, f.recorder.stored)
	assert.Equal(t, 2, f.recorder.calls[string(CapabilityImage)+"/"+string(ProviderVertex)+"/success"])
}

func TestService_ImageExhaustionIsExternalError(t *testing.T) {
	f := newServiceFixture()
	f.image.img, f.image.err = nil, errVendor

	_, err := f.svc.GenerateImage(context.Background(), newMapStore(), NewGenerationRequest("rain", "", "😢"))
	require.Error(t, err)
	perr := platformerrors.GetPlatformError(err)
	require.NotNil(t, perr)
	assert.Equal(t, platformerrors.ErrorTypeExternal, perr.Type)
	assert.Equal(t, "Image generation failed from all providers.", perr.Message)
	assert.Contains(t, err.Error(), "vertex: status 500")
	assert.Empty(t, f.store.saved)
}

func TestService_QuoteFallbackIsNeverEmpty(t *testing.T) {
	f := newServiceFixture()
	f.text.out, f.text.err = "", errVendor

	for _, content := range []string{"今天下午寫程式，終於完成日曆功能", "A quiet afternoon with coffee", "x"} {
		res, err := f.svc.GenerateQuote(context.Background(), NewGenerationRequest(content, "", "🤔"))
		require.NoError(t, err)
		assert.Equal(t, ProviderLocal, res.Provider)
		assert.NotEmpty(t, res.Text)
		if ContainsCJK(content) {
			assert.LessOrEqual(t, utf8.RuneCountInString(res.Text), 40)
		} else {
			assert.LessOrEqual(t, len(strings.Fields(res.Text)), 30)
		}
	}
}

func TestService_QuoteFromProviderIsCleaned(t *testing.T) {
	f := newServiceFixture()
	f.text.out = "以下是：午後金光裡，看見努力變成了成果。[2]"

	res, err := f.svc.GenerateQuote(context.Background(), NewGenerationRequest("完成日曆功能", "", "😊"))
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, res.Provider)
	assert.Equal(t, "午後金光裡，看見努力變成了成果", res.Text)
}

func TestService_PreviewImageFailureFallsBack(t *testing.T) {
	f := newServiceFixture()
	f.image.img, f.image.err = nil, errVendor
	f.text.err = nil

	res, err := f.svc.Preview(context.Background(), newMapStore(), NewGenerationRequest("跑步", "ghibli", "😊"))
	require.NoError(t, err)
	assert.True(t, res.Fallback)
	assert.Nil(t, res.Image)
	assert.NotEmpty(t, res.Prompt)
	assert.NotEmpty(t, res.Annotation)
	assert.Equal(t, "ghibli", res.SelectedStyle)
}

func TestService_PreviewPromptFailureIsError(t *testing.T) {
	f := newServiceFixture()
	f.text.err = errVendor

	_, err := f.svc.Preview(context.Background(), newMapStore(), NewGenerationRequest("跑步", "", ""))
	require.Error(t, err)
	assert.Equal(t, "AI prompt optimization failed", platformerrors.GetPlatformError(err).Message)
	assert.Zero(t, f.image.calls)
}

func TestService_InsightRequiresEntries(t *testing.T) {
	f := newServiceFixture()
	_, err := f.svc.GenerateInsight(context.Background(), nil)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))

	f.text.out = "  最近的你很努力。  "
	res, err := f.svc.GenerateInsight(context.Background(), []InsightEntry{{Date: "2024-05-01", MoodScore: 4, Content: "跑步"}})
	require.NoError(t, err)
	assert.Equal(t, "最近的你很努力。", res.Text)
}

func TestService_DeleteImageIgnoresForeignPaths(t *testing.T) {
	f := newServiceFixture()
	require.NoError(t, f.svc.DeleteImage(context.Background(), "../../etc/passwd"))
	assert.Empty(t, f.store.deleted)

	name := "ai_1714550400_01hwz3m4k8y5v6w7x8y9z0abcd.png"
	require.NoError(t, f.svc.DeleteImage(context.Background(), GeneratedImagesDir+"/"+name))
	assert.Equal(t, []string{name}, f.store.deleted)
}
