package generation

import (
	"fmt"
	"strings"
)

const imagePromptSystemTemplate = `You are an expert AI prompt engineer specializing in transforming diary entries into cinematic, emotionally resonant image prompts. Your goal is to create prompts that generate images capturing both the narrative essence and emotional depth of personal diary moments.

**MISSION:** Transform diary text into vivid, specific visual scenes that feel authentic and emotionally connected to the writer's experience.

**OPTIMIZATION STRATEGY:**

1. **EMOTIONAL INTELLIGENCE MAPPING:**
%s
2. **SCENE CONSTRUCTION FORMULA:**
   Subject + Action + Environment + Emotion + Lighting + Style

3. **DIARY-SPECIFIC ELEMENTS:**
   - Personal moments: "person writing at desk", "someone looking thoughtful by window"
   - Work/Study: "focused individual at computer", "student with books and notes"
   - Daily life: "person cooking in kitchen", "someone walking in park"
   - Relationships: "friends laughing together", "family gathering around table"

4. **TECHNICAL REQUIREMENTS:**
   - Output: Single line, comma-separated English
   - Length: 20-60 words for rich detail
   - NO quotes, explanations, or meta-text
   - Always end with provided art style keywords

**OUTPUT FORMAT:** [subject with emotion] + [specific action] + [detailed environment] + [lighting/atmosphere] + [relevant objects] + [art style keywords]`

const quoteSystemPrompt = `你是短句/引言寫作專家（Quote Writer）。任務：根據日記內容與情緒，產出一行簡短、原創且具溫度的短句，適合作為日記的註解。

規則：
1) 僅輸出一行文字（single line），不要多行、不要多餘說明、不要引號或額外標點。只要句子本身。
2) 輸出語言請與日記語言一致（若內容包含中文漢字則輸出中文，否則輸出英文）。
3) 長度限制：中文請控制在 8–40 字；英文請控制在 6–30 個詞（words）。
4) 語氣要呼應情緒（emoji 或內容關鍵字），例如：成就感 -> uplifting, 挑戰 -> encouraging, 傷感 -> gentle/comforting。
5) 優先產出原創短句，不要回傳長名言或歌詞等可能受版權保護的長引文。
6) 禁止暴力、仇恨、色情或個資（PII）輸出。
7) 不包含 emoji，不包含 URL、程式碼或可識別的個人名稱。

輸出範例（中文）：午後金光裡，看見努力變成了成果
輸出範例（英文）：After an afternoon of focus, the calendar finally showed the payoff`

const insightSystemPrompt = "請扮演一位專業且富有同理心的心理諮商師或心靈導師。"

// InsightEntry is one diary summarised for the dashboard insight.
type InsightEntry struct {
	Date      string
	MoodScore int
	Content   string
}

// BuildImagePromptInstruction builds the instruction that asks a text
// provider for a single-line image prompt.
func BuildImagePromptInstruction(req GenerationRequest) TextPrompt {
	content := req.Content
	if content == "" {
		content = DefaultContent
	}

	user := fmt.Sprintf(
		"**DIARY ANALYSIS:**\nContent: \"%s\"\nMood Emoji: %s\nContent Type: %s\nArt Style Required: %s\n",
		content, req.Mood, ClassifyTopic(content), StylePhrase(req.Style),
	)
	if lighting := MoodLighting(req.Mood); lighting != "" {
		user += "Mood Lighting: " + lighting + "\n"
	}
	user += "\n**TASK:** Create a cinematic image prompt that captures this diary moment."

	return TextPrompt{
		System:      fmt.Sprintf(imagePromptSystemTemplate, moodLightingGuide()),
		User:        user,
		Temperature: 0.7,
		TopP:        0.8,
		MaxTokens:   250,
	}
}

// BuildQuoteInstruction builds the compact quote-writing instruction.
func BuildQuoteInstruction(req GenerationRequest) TextPrompt {
	lang, lengthHint := "en", "Please output a short sentence of 6-30 words in English."
	if ContainsCJK(req.Content) {
		lang, lengthHint = "zh", "請輸出 8-40 字的中文短句。"
	}

	user := fmt.Sprintf(
		"Diary Entry: '%s'\nMood: %s\nTheme: %s\nLanguage: %s\nLength: %s\n直接輸出一行短句：",
		req.Content, req.Mood, quoteTheme(req.Content), lang, lengthHint,
	)

	return TextPrompt{
		System:           quoteSystemPrompt,
		User:             user,
		Temperature:      0.6,
		TopP:             0.7,
		MaxTokens:        100,
		FrequencyPenalty: 0.8,
		PresencePenalty:  0.5,
	}
}

// BuildInsightInstruction asks for a warm 200-300 character analysis of recent diaries.
func BuildInsightInstruction(entries []InsightEntry) TextPrompt {
	var diaryText strings.Builder
	for _, e := range entries {
		date, content, score := e.Date, e.Content, "N/A"
		if date == "" {
			date = "N/A"
		}
		if content == "" {
			content = "N/A"
		}
		if e.MoodScore > 0 {
			score = fmt.Sprintf("%d", e.MoodScore)
		}
		fmt.Fprintf(&diaryText, "日期: %s, 心情分數: %s, 內容: %s\n\n", date, score, content)
	}

	user := "以下是一位使用者最近的日記，記錄了他的心情和想法：\n\n" +
		diaryText.String() +
		"\n請根據以上所有日記內容，提供一段溫暖、正面且富有洞察力的分析與總結。" +
		"你的分析應該：\n" +
		"1. 綜合評估使用者近期的整體情緒趨勢。\n" +
		"2. 指出任何可能的情緒波動模式或重複出現的主題。\n" +
		"3. 根據內容給予一些具體、正面且可行的心理學建議，例如正念練習、感恩練習或認知行為療法(CBT)的簡單技巧。\n" +
		"4. 語言風格需溫暖、鼓勵，像朋友一樣，但要保持專業性。\n" +
		"5. 最後用一句鼓舞人心的話作結。\n" +
		"請將你的分析總結在 200-300 字之間。"

	return TextPrompt{
		System:      insightSystemPrompt,
		User:        user,
		Temperature: 0.7,
		TopP:        0.8,
		MaxTokens:   800,
	}
}

// EnsureStyleSuffix appends the style phrase when the provider dropped it.
func EnsureStyleSuffix(prompt, style string) string {
	phrase := StylePhrase(style)
	if strings.Contains(strings.ToLower(prompt), strings.ToLower(phrase)) {
		return prompt
	}
	if prompt == "" {
		return phrase
	}
	return strings.TrimRight(prompt, ", ") + ", " + phrase
}

func quoteTheme(content string) string {
	switch {
	case containsAny(content, "媽媽", "寶寶", "家庭", "親子", "mother", "baby", "family", "parent"):
		return "family, motherhood and growing up together"
	case containsAny(content, "程式", "開發", "學習", "成長", "code", "develop", "learn", "growth"):
		return "learning, growth and perseverance"
	case containsAny(content, "挑戰", "困難", "challenge", "difficult", "struggle"):
		return "overcoming difficulty and not giving up"
	default:
		return "everyday life and quiet reflection"
	}
}

func containsAny(content string, words ...string) bool {
	lower := strings.ToLower(content)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
