package generation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	maxCJKQuoteRunes   = 40
	maxLatinQuoteWords = 30
)

var (
	leadingFillerRe = regexp.MustCompile(`(?i)^\s*(?:(?:here is|here's|here are|based on the above|based on your diary|sure)\b|以下是|這是|根據)[,:：\s]*`)
	listMarkerRe    = regexp.MustCompile(`^[\d\-\*\.\s]+`)
	citationRe      = regexp.MustCompile(`\[\d+\]`)
	urlRe           = regexp.MustCompile(`https?://\S+`)
	markdownRe      = regexp.MustCompile("[*_#`~]+")
	whitespaceRe    = regexp.MustCompile(`\s+`)
	commaSpacingRe  = regexp.MustCompile(`\s*,\s*`)
)

const quoteTrimCutset = " \t\n\r\x00\x0B\"'.,;:!?。！？、「」“”‘’"

// ContainsCJK reports whether s has a code point in U+4E00..U+9FFF.
func ContainsCJK(s string) bool {
	for _, r := range s {
		if r >= 0x4e00 && r <= 0x9fff {
			return true
		}
	}
	return false
}

// CleanQuote reduces raw provider output to one bounded, presentation-safe line.
// The length ceiling is chosen from the language of the diary content or of
// the output itself. Over-long output is truncated, not re-requested.
func CleanQuote(raw, originalContent string) string {
	text := strings.TrimSpace(raw)
	text = strings.Trim(text, quoteTrimCutset)
	text = leadingFillerRe.ReplaceAllString(text, "")
	text = listMarkerRe.ReplaceAllString(text, "")

	if idx := strings.IndexAny(text, "\r\n"); idx >= 0 {
		text = text[:idx]
	}

	text = citationRe.ReplaceAllString(text, "")
	text = urlRe.ReplaceAllString(text, "")
	text = markdownRe.ReplaceAllString(text, "")
	text = stripEmoji(text)
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = strings.Trim(text, quoteTrimCutset)

	if ContainsCJK(originalContent) || ContainsCJK(text) {
		return truncateRunes(text, maxCJKQuoteRunes)
	}
	return truncateWords(text, maxLatinQuoteWords)
}

// CleanImagePrompt trims, unquotes and collapses whitespace in a generated image prompt.
func CleanImagePrompt(raw string) string {
	text := strings.TrimSpace(raw)
	if idx := strings.IndexAny(text, "\r\n"); idx >= 0 && strings.TrimSpace(text[:idx]) != "" {
		text = text[:idx]
	}
	text = strings.Trim(text, "\"'`“” ")
	text = markdownRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = commaSpacingRe.ReplaceAllString(text, ", ")
	return strings.TrimSpace(text)
}

// Truncate shortens s to at most n bytes on a rune boundary for log fields.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n]))
}

func truncateWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) <= n {
		return s
	}
	return strings.Join(words[:n], " ")
}

func stripEmoji(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == 0xFE0F || r == 0x200D:
			return -1
		case r >= 0x1F000 && r <= 0x1FAFF:
			return -1
		case r >= 0x2600 && r <= 0x27BF:
			return -1
		case unicode.Is(unicode.So, r) && r > 0x2000:
			return -1
		}
		return r
	}, s)
}
