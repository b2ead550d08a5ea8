package generation

import (
	"strings"
	"unicode"
)

// Topic is a coarse classification of diary content.
type Topic string

const (
	TopicWork      Topic = "Work/Professional Achievement"
	TopicStudy     Topic = "Learning/Study Session"
	TopicHealth    Topic = "Health/Wellness"
	TopicDailyLife Topic = "Daily Life/Leisure Activity"
	TopicEmotional Topic = "Personal Reflection/Emotional Moment"
	TopicGeneral   Topic = "General Life Experience"
)

// Buckets are checked in order; the first keyword hit wins.
var topicKeywords = []struct {
	topic    Topic
	keywords []string
}{
	{TopicWork, []string{"bug", "程式", "代碼", "code", "debug", "開發", "project", "專案", "完成", "finished", "工作", "work", "meeting", "會議"}},
	{TopicStudy, []string{"學習", "study", "learn", "讀書", "read", "book", "課程", "course", "考試", "exam", "筆記", "notes", "homework"}},
	{TopicHealth, []string{"運動", "exercise", "健身", "gym", "workout", "workouts", "跑步", "jogging", "瑜伽", "yoga", "睡眠", "sleep", "醫生", "doctor", "生病", "sick", "健康", "health"}},
	{TopicDailyLife, []string{"咖啡", "coffee", "散步", "walk", "公園", "park", "家", "home", "朋友", "friend", "家人", "family", "吃", "eat", "做飯", "cook"}},
	{TopicEmotional, []string{"想念", "miss", "愛", "love", "難過", "sad", "開心", "happy", "擁抱", "hug", "想", "think", "感受", "feel"}},
}

// ClassifyTopic buckets content by case-insensitive keyword matching in
// Chinese and English. CJK keywords match anywhere; Latin keywords match whole
// words, allowing a plain inflection, so "workout" is not read as "work".
func ClassifyTopic(content string) Topic {
	lower := strings.ToLower(content)
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) || r > unicode.MaxASCII
	})
	for _, bucket := range topicKeywords {
		for _, kw := range bucket.keywords {
			if isLatin(kw) {
				if hasWord(words, kw) {
					return bucket.topic
				}
				continue
			}
			if strings.Contains(lower, kw) {
				return bucket.topic
			}
		}
	}
	return TopicGeneral
}

var inflections = []string{"", "s", "es", "d", "ed", "ing"}

func hasWord(words []string, kw string) bool {
	for _, w := range words {
		rest, ok := strings.CutPrefix(w, kw)
		if !ok {
			continue
		}
		for _, suffix := range inflections {
			if rest == suffix {
				return true
			}
		}
	}
	return false
}

func isLatin(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}
