package generation

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// LocalQuoteGenerator builds a short quote without any network call.
// The same content and mood always produce the same quote.
type LocalQuoteGenerator struct {
	bank *PhraseBank
}

func NewLocalQuoteGenerator(bank *PhraseBank) *LocalQuoteGenerator {
	if bank == nil {
		bank = DefaultPhraseBank()
	}
	return &LocalQuoteGenerator{bank: bank}
}

// Quote returns a non-empty line in the language of the diary content.
func (g *LocalQuoteGenerator) Quote(req GenerationRequest) string {
	lang := langEN
	if ContainsCJK(req.Content) {
		lang = langZH
	}
	phrases, ok := g.bank.Languages[lang]
	if !ok || len(phrases.Patterns) == 0 {
		phrases = DefaultPhraseBank().Languages[lang]
	}

	seed := seedOf(req.Content + "|" + req.Mood)

	subject := matchKeyword(req.Content, phrases.Topics)
	if subject == "" {
		subject = summarize(req.Content, phrases.SummaryRunes, lang == langZH)
	}
	if timePhrase := matchKeyword(req.Content, phrases.Times); timePhrase != "" && phrases.TimeFormat != "" {
		if subject == "" {
			subject = timePhrase
		} else {
			subject = fmt.Sprintf(phrases.TimeFormat, timePhrase, subject)
		}
	}

	moods := phrases.Moods[req.Mood]
	if len(moods) == 0 {
		moods = phrases.Neutral
	}
	moodPhrase := pick(moods, seed)

	var quote string
	if subject == "" {
		quote = moodPhrase
	} else {
		quote = fmt.Sprintf(pick(phrases.Patterns, seed/7), subject, moodPhrase)
	}
	quote = strings.TrimSpace(whitespaceRe.ReplaceAllString(quote, " "))

	if lang == langZH {
		quote = truncateRunes(quote, maxCJKQuoteRunes)
	} else {
		quote = truncateWords(quote, maxLatinQuoteWords)
	}
	if quote == "" {
		return phrases.Default
	}
	return quote
}

func matchKeyword(content string, table []KeywordPhrase) string {
	lower := strings.ToLower(content)
	for _, kp := range table {
		if kp.Keyword != "" && strings.Contains(lower, strings.ToLower(kp.Keyword)) {
			return kp.Phrase
		}
	}
	return ""
}

// summarize keeps the first clause of content, bounded to maxRunes.
func summarize(content string, maxRunes int, cjk bool) string {
	text := strings.TrimSpace(content)
	if idx := strings.IndexAny(text, "\n。！？.!?"); idx > 0 {
		text = text[:idx]
	}
	text = strings.Trim(text, quoteTrimCutset)
	if maxRunes <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	text = string(runes[:maxRunes])
	if !cjk {
		if idx := strings.LastIndex(text, " "); idx > 0 {
			text = text[:idx]
		}
	}
	return strings.Trim(text, quoteTrimCutset)
}

func pick(options []string, seed uint32) string {
	if len(options) == 0 {
		return ""
	}
	return options[int(seed%uint32(len(options)))]
}

func seedOf(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}
