package diary

import (
	"context"
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	DefaultMoodScore = 3

	wordCloudLimit    = 80
	wordCloudMinWords = 5
)

var moodScores = map[string]int{
	"😍": 5, "🥰": 5, "😂": 5,
	"😊": 4,
	"🤔": 3, "😴": 3,
	"😢": 2, "😰": 2, "🙄": 2,
	"😡": 1,
}

var (
	wordSeparators = regexp.MustCompile(`[\s,.;!?()，。；！？（）「」【】]+`)
	asciiWord      = regexp.MustCompile(`^[0-9a-zA-Z]+$`)
)

// MoodScore maps a mood emoji onto 1..5. Unknown moods score 3.
func MoodScore(mood string) int {
	if score, ok := moodScores[strings.TrimSpace(mood)]; ok {
		return score
	}
	return DefaultMoodScore
}

// TrendPoint is one diary on the mood trend line.
type TrendPoint struct {
	Date  string
	Score int
}

// Word is one word cloud entry.
type Word struct {
	Text  string
	Count int
	Size  float64
}

// Stats summarises a user's diaries.
type Stats struct {
	TotalEntries int
	AverageScore decimal.Decimal
	TopMood      string
}

// Dashboard is the mood overview of one user.
type Dashboard struct {
	Year      int
	Heatmap   map[string]int
	Trend     []TrendPoint
	WordCloud []Word
	Stats     Stats
}

// Dashboard builds the overview for a user. year selects the heatmap; zero
// means the current year.
func (s *Service) Dashboard(ctx context.Context, userID uint, year int) (*Dashboard, error) {
	items, err := s.repo.ListByUser(ctx, userID, Filter{})
	if err != nil {
		return nil, err
	}
	if year == 0 {
		year = s.now().Year()
	}
	reverse(items)
	return BuildDashboard(items, year), nil
}

// BuildDashboard computes the overview from diaries ordered oldest first.
func BuildDashboard(items []*Diary, year int) *Dashboard {
	out := &Dashboard{
		Year:      year,
		Heatmap:   make(map[string]int),
		Trend:     make([]TrendPoint, 0, len(items)),
		WordCloud: []Word{},
	}

	contents := make([]string, 0, len(items))
	moodCounts := make(map[string]int)
	var topMood string
	sum := 0

	for _, d := range items {
		score := MoodScore(d.Mood)
		date := d.Date()

		if d.DiaryDate.Year() == year {
			if _, seen := out.Heatmap[date]; !seen {
				out.Heatmap[date] = score
			}
		}
		out.Trend = append(out.Trend, TrendPoint{Date: date, Score: score})
		contents = append(contents, d.Content)
		sum += score

		if d.Mood != "" {
			moodCounts[d.Mood]++
			if moodCounts[d.Mood] > moodCounts[topMood] {
				topMood = d.Mood
			}
		}
	}

	out.WordCloud = WordCloud(contents)
	out.Stats = Stats{TotalEntries: len(items), AverageScore: decimal.Zero, TopMood: topMood}
	if len(items) > 0 {
		out.Stats.AverageScore = decimal.NewFromInt(int64(sum)).
			DivRound(decimal.NewFromInt(int64(len(items))), 2)
	}
	return out
}

// WordCloud counts words across contents. Single-rune and pure ASCII
// alphanumeric words are ignored. It returns the 80 most frequent words, or
// nothing when fewer than 5 distinct words remain.
func WordCloud(contents []string) []Word {
	counts := make(map[string]int)
	for _, content := range contents {
		for _, w := range wordSeparators.Split(content, -1) {
			if utf8.RuneCountInString(w) <= 1 || asciiWord.MatchString(w) {
				continue
			}
			counts[strings.ToLower(w)]++
		}
	}
	if len(counts) < wordCloudMinWords {
		return []Word{}
	}

	words := make([]Word, 0, len(counts))
	for text, count := range counts {
		words = append(words, Word{Text: text, Count: count})
	}
	sort.Slice(words, func(i, j int) bool {
		if words[i].Count != words[j].Count {
			return words[i].Count > words[j].Count
		}
		return words[i].Text < words[j].Text
	})
	if len(words) > wordCloudLimit {
		words = words[:wordCloudLimit]
	}
	for i := range words {
		words[i].Size = 10 + math.Sqrt(float64(words[i].Count))*8
	}
	return words
}
