package telemetry

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"unicode/utf8"
)

// Sanitizer scrubs vendor response bodies before they are logged. Vendors
// echo request fragments in error bodies, so credentials and contact details
// from a diary can otherwise end up in the logs.
type Sanitizer struct {
	salt     string
	maxBytes int

	apiKeyPattern      *regexp.Regexp
	bearerPattern      *regexp.Regexp
	keyParamPattern    *regexp.Regexp
	emailPattern       *regexp.Regexp
	phonePattern       *regexp.Regexp
	creditCardPattern  *regexp.Regexp
	privateKeyPEMBlock *regexp.Regexp
}

// NewSanitizer creates a sanitizer. Bodies longer than maxBytes are cut on a
// rune boundary; a non-positive maxBytes disables truncation.
func NewSanitizer(salt string, maxBytes int) *Sanitizer {
	return &Sanitizer{
		salt:               salt,
		maxBytes:           maxBytes,
		apiKeyPattern:      regexp.MustCompile(`\b(?:AIza[0-9A-Za-z_\-]{35}|sk-[0-9A-Za-z_\-]{20,}|pplx-[0-9A-Za-z]{20,})\b`),
		bearerPattern:      regexp.MustCompile(`(?i)bearer\s+[0-9A-Za-z._\-]+`),
		keyParamPattern:    regexp.MustCompile(`(?i)([?&](?:key|api_key|access_token)=)[^&\s"]+`),
		emailPattern:       regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`),
		phonePattern:       regexp.MustCompile(`\b\d{3,4}[-.\s]?\d{3}[-.\s]?\d{3,4}\b`),
		creditCardPattern:  regexp.MustCompile(`\b\d{4}[- ]?\d{4}[- ]?\d{4}[- ]?\d{4}\b`),
		privateKeyPEMBlock: regexp.MustCompile(`-----BEGIN [A-Z ]*PRIVATE KEY-----[\s\S]*?-----END [A-Z ]*PRIVATE KEY-----`),
	}
}

// SanitizeBody redacts secrets, hashes contact details and truncates.
func (s *Sanitizer) SanitizeBody(body string) string {
	result := s.privateKeyPEMBlock.ReplaceAllString(body, "[PRIVATE_KEY:REDACTED]")
	result = s.apiKeyPattern.ReplaceAllString(result, "[API_KEY:REDACTED]")
	result = s.bearerPattern.ReplaceAllString(result, "Bearer [REDACTED]")
	result = s.keyParamPattern.ReplaceAllString(result, "${1}[REDACTED]")

	// Cards before phones: a card number contains phone-shaped runs.
	result = s.creditCardPattern.ReplaceAllString(result, "[CC:REDACTED]")
	result = s.emailPattern.ReplaceAllStringFunc(result, func(match string) string {
		return fmt.Sprintf("[EMAIL:%s]", s.hash(match))
	})
	result = s.phonePattern.ReplaceAllStringFunc(result, func(match string) string {
		return fmt.Sprintf("[PHONE:%s]", s.hash(match))
	})

	return s.truncate(result)
}

func (s *Sanitizer) truncate(text string) string {
	if s.maxBytes <= 0 || len(text) <= s.maxBytes {
		return text
	}
	cut := s.maxBytes
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "…"
}

// hash returns the first 8 hex chars of a salted SHA-256.
func (s *Sanitizer) hash(data string) string {
	h := sha256.New()
	h.Write([]byte(data + s.salt))
	return hex.EncodeToString(h.Sum(nil))[:8]
}
