package generation

import (
	"sort"
	"strings"
)

// defaultStylePhrase is used whenever a style identifier is unknown.
const defaultStylePhrase = "high quality, detailed, visually stunning, poetic, evocative, masterpiece"

var styleKeywords = map[string]string{
	"photographic":      "photorealistic, realistic, masterpiece, evocative, poetic, 8K, sharp focus, detailed, professional photography",
	"ghibli":            "Studio Ghibli style, hand-drawn animation, whimsical, fantastical, vibrant colors, lush landscapes, dreamy, poetic, masterpiece, evocative",
	"pixel-art":         "pixel art style, 8-bit, retro gaming, pixelated, crisp edges, limited color palette, nostalgic, detailed pixel work, masterpiece",
	"3d-render":         "Pixar style, 3D rendered, CGI animation, soft lighting, vibrant colors, smooth textures, family-friendly, whimsical, high quality, masterpiece",
	"flat-illustration": "flat design, minimal illustration, clean lines, bold colors, geometric shapes, modern design, simple, elegant, vector art style",
	"sketch":            "hand-drawn sketch, pencil drawing, artistic lines, rough sketches, expressive strokes, monochrome or light colors, artistic, detailed",
	"ink-wash":          "Chinese ink wash painting, traditional watercolor, flowing brushstrokes, monochromatic, artistic gradients, serene, poetic, masterpiece",
	DefaultStyle:        defaultStylePhrase,
}

// Artist styles are understood by the stable-diffusion provider only; they
// add keywords to the prompt and select the "enhance" preset.
var artistKeywords = map[string]string{
	"van-gogh":  "in the style of Vincent van Gogh, expressive brushstrokes, swirling skies, vivid colors",
	"monet":     "in the style of Claude Monet, impressionist, soft light",
	"picasso":   "in the style of Pablo Picasso, abstract, cubism",
	"hokusai":   "in the style of Katsushika Hokusai, ukiyo-e, Japanese art",
	"dali":      "in the style of Salvador Dali, surreal, dreamlike",
	"kandinsky": "in the style of Wassily Kandinsky, abstract, vibrant colors",
	"pollock":   "in the style of Jackson Pollock, abstract expressionism, energetic",
}

// moodLighting maps mood emoji groups to lighting and atmosphere cues.
var moodLighting = []struct {
	Emoji    []string
	Label    string
	Lighting string
}{
	{[]string{"😊", "😄", "😆", "😂"}, "Joy/Achievement", "golden hour lighting, warm glowing screens, triumphant gestures, bright environments"},
	{[]string{"😢", "😔", "😞"}, "Sadness/Melancholy", "soft blue-grey tones, rain textures, contemplative poses, muted environments"},
	{[]string{"😤", "😠", "😡"}, "Frustration/Anger", "dramatic shadows, red accents, tense body language, chaotic elements"},
	{[]string{"🤔", "😐", "😑", "🙄", "📝"}, "Neutral/Thoughtful", "balanced lighting, focused expressions, clean compositions"},
	{[]string{"😴", "😪", "🥱"}, "Tired/Exhausted", "dim warm lighting, relaxed postures, cozy environments"},
	{[]string{"🥰", "😍", "☺️"}, "Love/Affection", "soft romantic lighting, warm colors, intimate settings"},
	{[]string{"😰", "😨", "😟"}, "Anxiety/Unease", "cool desaturated light, narrow framing, quiet tension"},
}

// StylePhrase returns the keyword phrase for a style, or the default phrase
// when the style is unknown. It never returns an empty string.
func StylePhrase(style string) string {
	key := strings.ToLower(strings.TrimSpace(style))
	if phrase, ok := styleKeywords[key]; ok {
		return phrase
	}
	if phrase, ok := artistKeywords[key]; ok {
		return phrase
	}
	return defaultStylePhrase
}

// KnownStyle reports whether the style has its own keyword entry.
func KnownStyle(style string) bool {
	key := strings.ToLower(strings.TrimSpace(style))
	_, general := styleKeywords[key]
	_, artist := artistKeywords[key]
	return general || artist
}

// Styles lists every style identifier, sorted.
func Styles() []string {
	out := make([]string, 0, len(styleKeywords)+len(artistKeywords))
	for k := range styleKeywords {
		out = append(out, k)
	}
	for k := range artistKeywords {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// MoodLighting returns the lighting cue for a mood emoji, or "" when unmapped.
func MoodLighting(mood string) string {
	for _, group := range moodLighting {
		for _, e := range group.Emoji {
			if e == mood {
				return group.Lighting
			}
		}
	}
	return ""
}

// StabilityPreset returns the style_preset value and any extra prompt
// keywords for the stable-diffusion provider.
func StabilityPreset(style string) (preset, extra string) {
	key := strings.ToLower(strings.TrimSpace(style))
	if key == "photographic" {
		return "photographic", ""
	}
	if kw, ok := artistKeywords[key]; ok {
		return "enhance", kw
	}
	return "", ""
}

func moodLightingGuide() string {
	var b strings.Builder
	for _, group := range moodLighting {
		b.WriteString("   - ")
		b.WriteString(strings.Join(group.Emoji, ""))
		b.WriteString(" (")
		b.WriteString(group.Label)
		b.WriteString("): ")
		b.WriteString(group.Lighting)
		b.WriteString("\n")
	}
	return b.String()
}
