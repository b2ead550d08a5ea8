package generation

import (
	"crypto/md5"
	"encoding/hex"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Capability is one of the generation operations the orchestrator serves.
type Capability string

const (
	CapabilityImage   Capability = "generate-image"
	CapabilityQuote   Capability = "generate-quote"
	CapabilityPrompt  Capability = "generate-image-prompt"
	CapabilityInsight Capability = "generate-insight"
)

// ProviderName identifies one vendor variant.
type ProviderName string

const (
	ProviderVertex      ProviderName = "vertex"
	ProviderGeminiImage ProviderName = "gemini-image"
	ProviderStability   ProviderName = "stability"
	ProviderGemini      ProviderName = "gemini"
	ProviderPerplexity  ProviderName = "perplexity"
	ProviderLocal       ProviderName = "local"
)

// DisplayName is the label reported to clients as "generatedBy".
func (p ProviderName) DisplayName() string {
	switch p {
	case ProviderVertex:
		return "Vertex AI"
	case ProviderGeminiImage, ProviderGemini:
		return "Gemini"
	case ProviderStability:
		return "StabilityAI"
	case ProviderPerplexity:
		return "Perplexity"
	case ProviderLocal:
		return "Local"
	default:
		return string(p)
	}
}

const (
	DefaultStyle   = "default"
	DefaultMood    = "😊"
	DefaultContent = "A peaceful day"
)

// GenerationRequest is the immutable input of one orchestration call.
type GenerationRequest struct {
	Content string
	Style   string
	Mood    string
}

// NewGenerationRequest normalises user input. Content is trimmed and NFC
// normalised but never defaulted: empty content is a validation error the
// caller must reject.
func NewGenerationRequest(content, style, mood string) GenerationRequest {
	style = strings.TrimSpace(style)
	if style == "" {
		style = DefaultStyle
	}
	mood = strings.TrimSpace(mood)
	if mood == "" {
		mood = DefaultMood
	}
	return GenerationRequest{
		Content: norm.NFC.String(strings.TrimSpace(content)),
		Style:   style,
		Mood:    mood,
	}
}

// Fingerprint is the hex MD5 of content, style and mood.
func (r GenerationRequest) Fingerprint() string {
	sum := md5.Sum([]byte(r.Content + r.Style + r.Mood))
	return hex.EncodeToString(sum[:])
}

// ProviderResult is what one provider attempt produced.
type ProviderResult struct {
	Success     bool
	Payload     string
	Provider    ProviderName
	ErrorDetail string
}

// TextPrompt is a fully built instruction for a text provider.
type TextPrompt struct {
	System           string
	User             string
	Temperature      float32
	TopP             float32
	MaxTokens        int
	FrequencyPenalty float32
	PresencePenalty  float32
}

// GeneratedImage is raw image output from a provider, before it is stored.
type GeneratedImage struct {
	Data     []byte
	MIMEType string
}

// StoredImage describes a generated image after it was persisted.
type StoredImage struct {
	Filename     string
	RelativePath string
	URL          string
	MIMEType     string
	Size         int
}

// ImageResult is the outcome of the image capability.
type ImageResult struct {
	Prompt   string
	Image    StoredImage
	Provider ProviderName
}

// TextResult is the outcome of a text capability.
type TextResult struct {
	Text     string
	Provider ProviderName
}
