package generation

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// PhraseBank holds the tables the local fallback quote generator draws from.
// The built-in bank can be replaced per language with a YAML file.
type PhraseBank struct {
	Languages map[string]LanguagePhrases `yaml:"languages"`
}

// LanguagePhrases is the phrase table for one output language.
// Patterns and TimeFormat take two %s verbs: subject then mood phrase, and
// time phrase then subject respectively. Explicit argument indexes are allowed.
type LanguagePhrases struct {
	Topics       []KeywordPhrase     `yaml:"topics"`
	Times        []KeywordPhrase     `yaml:"times"`
	TimeFormat   string              `yaml:"time_format"`
	Moods        map[string][]string `yaml:"moods"`
	Neutral      []string            `yaml:"neutral"`
	Patterns     []string            `yaml:"patterns"`
	SummaryRunes int                 `yaml:"summary_runes"`
	Default      string              `yaml:"default"`
}

// KeywordPhrase maps a keyword found in the diary to a phrase.
type KeywordPhrase struct {
	Keyword string `yaml:"keyword"`
	Phrase  string `yaml:"phrase"`
}

const (
	langZH = "zh"
	langEN = "en"
)

// DefaultPhraseBank returns the built-in tables.
func DefaultPhraseBank() *PhraseBank {
	return &PhraseBank{Languages: map[string]LanguagePhrases{
		langZH: {
			Topics: []KeywordPhrase{
				{"媽媽", "為人母"}, {"母親", "為人母"}, {"爸爸", "為人父"},
				{"程式", "程式開發"}, {"開發", "程式開發"}, {"日曆", "日曆功能"},
				{"專案", "專案"}, {"挑戰", "挑戰"}, {"學習", "學習"},
				{"運動", "運動時光"}, {"咖啡", "咖啡時光"}, {"旅行", "旅途"},
			},
			Times:      []KeywordPhrase{{"午後", "午後金光中"}, {"下午", "午後金光中"}, {"清晨", "清晨微光裡"}, {"晚上", "夜色裡"}},
			TimeFormat: "%s，%s",
			Moods: map[string][]string{
				"😊": {"成就感溢於言表", "心裡暖暖的"},
				"😢": {"溫柔地療癒自己", "靜靜感受情緒"},
				"😡": {"把能量化為前進的力量", "激昂且堅定"},
				"😍": {"被小確幸包圍", "心頭暖暖的愛意"},
				"😴": {"給自己一個喘息", "放慢腳步休息一下"},
				"🤔": {"思索與成長的片刻", "沉澱中前進"},
				"😂": {"笑著翻過一頁", "輕快的喜悅"},
				"😰": {"仍然在面對，但沒有放棄", "帶著不安繼續前行"},
				"🥰": {"溫柔地被疼愛包圍", "愛與溫暖同行"},
				"🙄": {"帶點無奈但仍然前行", "冷眼看世界，自己繼續做事"},
			},
			Neutral:      []string{"平凡的日子也值得記下", "一步一步慢慢來"},
			Patterns:     []string{"%s，%s", "%s之後，%s"},
			SummaryRunes: 12,
			Default:      "今天是美好的一天",
		},
		langEN: {
			Topics: []KeywordPhrase{
				{"mother", "motherhood"}, {"father", "fatherhood"}, {"code", "coding"},
				{"develop", "development"}, {"calendar", "calendar feature"},
				{"project", "project"}, {"challenge", "challenge"}, {"learning", "learning"},
				{"exercise", "a workout"}, {"coffee", "coffee moment"}, {"travel", "the journey"},
			},
			Times:      []KeywordPhrase{{"afternoon", "this afternoon"}, {"morning", "this morning"}, {"tonight", "tonight"}},
			TimeFormat: "%[2]s %[1]s",
			Moods: map[string][]string{
				"😊": {"a warm sense of accomplishment", "a quiet satisfaction"},
				"😢": {"a gentle healing moment", "soft reflection"},
				"😡": {"channeling energy into progress", "fired up and determined"},
				"😍": {"surrounded by small joys", "heartfelt warmth"},
				"😴": {"giving oneself a rest", "slowing down to breathe"},
				"🤔": {"a moment of thought and growth", "quiet contemplation"},
				"😂": {"smiling through it", "lighthearted joy"},
				"😰": {"still facing it, not giving up", "uneasy but moving forward"},
				"🥰": {"gently embraced by warmth", "love and warmth alongside"},
				"🙄": {"slightly exasperated but moving on", "wry acceptance and onward"},
			},
			Neutral:      []string{"an ordinary day worth remembering", "one small step at a time"},
			Patterns:     []string{"%s, %s", "After %s, %s", "%s with %s"},
			SummaryRunes: 60,
			Default:      "Today was a good day",
		},
	}}
}

// LoadPhraseBank reads a YAML phrase bank. Languages missing from the file,
// and empty fields within a language, keep their built-in values.
func LoadPhraseBank(path string) (*PhraseBank, error) {
	bank := DefaultPhraseBank()
	if strings.TrimSpace(path) == "" {
		return bank, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read phrase bank: %w", err)
	}
	var custom PhraseBank
	if err := yaml.Unmarshal(raw, &custom); err != nil {
		return nil, fmt.Errorf("parse phrase bank: %w", err)
	}

	for lang, phrases := range custom.Languages {
		merged := bank.Languages[lang].merge(phrases)
		if err := merged.validate(); err != nil {
			return nil, fmt.Errorf("phrase bank language %q: %w", lang, err)
		}
		bank.Languages[lang] = merged
	}
	return bank, nil
}

func (base LanguagePhrases) merge(override LanguagePhrases) LanguagePhrases {
	out := base
	if len(override.Topics) > 0 {
		out.Topics = override.Topics
	}
	if len(override.Times) > 0 {
		out.Times = override.Times
	}
	if override.TimeFormat != "" {
		out.TimeFormat = override.TimeFormat
	}
	if len(override.Moods) > 0 {
		out.Moods = override.Moods
	}
	if len(override.Neutral) > 0 {
		out.Neutral = override.Neutral
	}
	if len(override.Patterns) > 0 {
		out.Patterns = override.Patterns
	}
	if override.SummaryRunes > 0 {
		out.SummaryRunes = override.SummaryRunes
	}
	if override.Default != "" {
		out.Default = override.Default
	}
	return out
}

func (p LanguagePhrases) validate() error {
	if len(p.Patterns) == 0 {
		return fmt.Errorf("at least one pattern is required")
	}
	if len(p.Neutral) == 0 {
		return fmt.Errorf("at least one neutral phrase is required")
	}
	if strings.TrimSpace(p.Default) == "" {
		return fmt.Errorf("default phrase is required")
	}
	for _, pattern := range append([]string{p.TimeFormat}, p.Patterns...) {
		if pattern == "" {
			continue
		}
		if out := fmt.Sprintf(pattern, "a", "b"); strings.Contains(out, "%!") {
			return fmt.Errorf("pattern %q must take exactly two string arguments", pattern)
		}
	}
	return nil
}
