package generation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStylePhrase_UnknownStyleUsesDefault(t *testing.T) {
	for _, style := range []string{"", "nonexistent", "  VAPORWAVE  "} {
		assert.Equal(t, defaultStylePhrase, StylePhrase(style), style)
	}
	assert.Contains(t, StylePhrase("Ghibli"), "Studio Ghibli style")
	assert.True(t, KnownStyle("ink-wash"))
	assert.True(t, KnownStyle("monet"))
	assert.False(t, KnownStyle("nonexistent"))
}

func TestStyles_Sorted(t *testing.T) {
	styles := Styles()
	assert.Contains(t, styles, DefaultStyle)
	assert.Contains(t, styles, "hokusai")
	for i := 1; i < len(styles); i++ {
		assert.Less(t, styles[i-1], styles[i])
	}
}

func TestBuildImagePromptInstruction_NonexistentStyleUsesDefaultPhrase(t *testing.T) {
	req := NewGenerationRequest("今天完成了專案", "nonexistent", "😊")
	prompt := BuildImagePromptInstruction(req)

	assert.Contains(t, prompt.User, "Art Style Required: "+defaultStylePhrase)
	assert.Contains(t, prompt.User, "Content Type: "+string(TopicWork))
	assert.Contains(t, prompt.User, "Mood Lighting: golden hour lighting")
	assert.Contains(t, prompt.User, "**TASK:**")
	assert.Contains(t, prompt.System, "Joy/Achievement")
	assert.Equal(t, 250, prompt.MaxTokens)
}

func TestBuildQuoteInstruction_LanguageHint(t *testing.T) {
	zh := BuildQuoteInstruction(NewGenerationRequest("和媽媽一起散步", "", ""))
	assert.Contains(t, zh.User, "Language: zh")
	assert.Contains(t, zh.User, "family")

	en := BuildQuoteInstruction(NewGenerationRequest("I fixed a difficult bug", "", ""))
	assert.Contains(t, en.User, "Language: en")
	assert.Contains(t, en.User, "overcoming difficulty")
	assert.InDelta(t, 0.8, en.FrequencyPenalty, 0.001)
}

func TestBuildInsightInstruction(t *testing.T) {
	prompt := BuildInsightInstruction([]InsightEntry{
		{Date: "2024-05-01", MoodScore: 4, Content: "跑步"},
		{Content: ""},
	})
	assert.Contains(t, prompt.User, "日期: 2024-05-01, 心情分數: 4, 內容: 跑步")
	assert.Contains(t, prompt.User, "日期: N/A, 心情分數: N/A, 內容: N/A")
	assert.Equal(t, insightSystemPrompt, prompt.System)
}

func TestClassifyTopic(t *testing.T) {
	tests := []struct {
		content string
		want    Topic
	}{
		{"Fixed a nasty bug today", TopicWork},
		{"準備考試到很晚", TopicStudy},
		{"morning yoga class", TopicHealth},
		{"Coffee in the park", TopicDailyLife},
		{"I miss her", TopicEmotional},
		{"nothing special", TopicGeneral},
		{"I did a long workout at the gym", TopicHealth},
		{"Finished my homework early", TopicWork},
		{"Still working on the homework", TopicWork},
		{"two meetings back to back", TopicWork},
		{"walked along the river", TopicDailyLife},
		{"a network outage", TopicGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyTopic(tt.content))
		})
	}
}

func TestEnsureStyleSuffix(t *testing.T) {
	phrase := StylePhrase("sketch")
	assert.Equal(t, "a cat, "+phrase, EnsureStyleSuffix("a cat,", "sketch"))
	assert.Equal(t, "a cat, "+phrase, EnsureStyleSuffix("a cat, "+phrase, "sketch"))
	assert.Equal(t, defaultStylePhrase, EnsureStyleSuffix("", "unknown"))
}

func TestStabilityPreset(t *testing.T) {
	preset, extra := StabilityPreset("photographic")
	assert.Equal(t, "photographic", preset)
	assert.Empty(t, extra)

	preset, extra = StabilityPreset("van-gogh")
	assert.Equal(t, "enhance", preset)
	assert.True(t, strings.HasPrefix(extra, "in the style of Vincent van Gogh"))

	preset, _ = StabilityPreset("ghibli")
	assert.Empty(t, preset)
}

func TestGenerationRequest_DefaultsAndFingerprint(t *testing.T) {
	req := NewGenerationRequest("  hello  ", "", "")
	assert.Equal(t, "hello", req.Content)
	assert.Equal(t, DefaultStyle, req.Style)
	assert.Equal(t, DefaultMood, req.Mood)

	// md5("hellodefault😊")
	assert.Len(t, req.Fingerprint(), 32)
	assert.Equal(t, req.Fingerprint(), NewGenerationRequest("hello", "default", "😊").Fingerprint())
	assert.NotEqual(t, req.Fingerprint(), NewGenerationRequest("hello", "sketch", "😊").Fingerprint())
}
