package responses

import (
	"time"

	"moodcanvas-server/internal/domain/diary"
	"moodcanvas-server/internal/domain/generation"
	"moodcanvas-server/internal/domain/user"
)

// UserPayload is the public view of a user.
type UserPayload struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

func FromUser(u *user.User) UserPayload {
	return UserPayload{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt}
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	User      UserPayload `json:"user"`
	Token     string      `json:"token,omitempty"`
	ExpiresAt *time.Time  `json:"expires_at,omitempty"`
}

// StatsResponse reports user counts.
type StatsResponse struct {
	Success    bool  `json:"success"`
	TotalUsers int64 `json:"total_users"`
}

// SuccessResponse carries no payload.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ImageResponse is returned by the image capability.
type ImageResponse struct {
	Success     bool   `json:"success"`
	ImageURL    string `json:"imageUrl"`
	ImagePath   string `json:"imagePath"`
	ImageID     string `json:"imageId"`
	Prompt      string `json:"prompt"`
	GeneratedBy string `json:"generatedBy"`
}

func FromImageResult(r *generation.ImageResult) ImageResponse {
	return ImageResponse{
		Success:     true,
		ImageURL:    r.Image.URL,
		ImagePath:   r.Image.RelativePath,
		ImageID:     r.Image.Filename,
		Prompt:      r.Prompt,
		GeneratedBy: r.Provider.DisplayName(),
	}
}

// QuoteResponse is returned by the quote capability.
type QuoteResponse struct {
	Success     bool   `json:"success"`
	Quote       string `json:"quote"`
	GeneratedBy string `json:"generatedBy"`
}

// PromptResponse is returned by the prompt capability.
type PromptResponse struct {
	Success     bool   `json:"success"`
	Prompt      string `json:"prompt"`
	GeneratedBy string `json:"generatedBy"`
}

// InsightResponse is returned by the insight capability.
type InsightResponse struct {
	Success     bool   `json:"success"`
	Insight     string `json:"insight"`
	GeneratedBy string `json:"generatedBy"`
}

// ProvidersResponse describes which providers serve each chain.
type ProvidersResponse struct {
	Success      bool                    `json:"success"`
	Availability generation.Availability `json:"availability"`
	TextChain    []string                `json:"text_chain"`
	ImageChain   []string                `json:"image_chain"`
	Styles       []string                `json:"styles"`
}

func FromChains(availability generation.Availability, text, image []generation.ProviderName) ProvidersResponse {
	return ProvidersResponse{
		Success:      true,
		Availability: availability,
		TextChain:    providerNames(text),
		ImageChain:   providerNames(image),
		Styles:       generation.Styles(),
	}
}

func providerNames(chain []generation.ProviderName) []string {
	out := make([]string, 0, len(chain))
	for _, p := range chain {
		out = append(out, string(p))
	}
	return out
}

// PreviewGeneratedBy names the provider behind each part of a preview.
type PreviewGeneratedBy struct {
	Image string `json:"image,omitempty"`
	Quote string `json:"quote"`
}

// PreviewResponse is the combined preview of an unsaved diary.
type PreviewResponse struct {
	Success       bool               `json:"success"`
	Prompt        string             `json:"prompt"`
	ImageURL      string             `json:"imageUrl"`
	ImagePath     string             `json:"imagePath"`
	ImageID       string             `json:"imageId"`
	Annotation    string             `json:"annotation"`
	Fallback      bool               `json:"fallback"`
	SelectedStyle string             `json:"selectedStyle"`
	GeneratedBy   PreviewGeneratedBy `json:"generatedBy"`
}

func FromPreview(p *generation.PreviewResult) PreviewResponse {
	out := PreviewResponse{
		Success:       true,
		Prompt:        p.Prompt,
		Annotation:    p.Annotation,
		Fallback:      p.Fallback,
		SelectedStyle: p.SelectedStyle,
		GeneratedBy:   PreviewGeneratedBy{Quote: p.QuoteProvider.DisplayName()},
	}
	if p.Image != nil {
		out.ImageURL = p.Image.URL
		out.ImagePath = p.Image.RelativePath
		out.ImageID = p.Image.Filename
		out.GeneratedBy.Image = p.ImageProvider.DisplayName()
	}
	return out
}

// DiaryPayload is the public view of a diary.
type DiaryPayload struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	Mood            string    `json:"mood"`
	MoodScore       int       `json:"mood_score"`
	DiaryDate       string    `json:"diary_date"`
	AIGeneratedText string    `json:"ai_generated_text,omitempty"`
	ImagePath       string    `json:"image_path,omitempty"`
	ImageURL        string    `json:"image_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// FromDiary maps a diary. imageURL turns a stored path into a public URL.
func FromDiary(d *diary.Diary, imageURL func(string) string) DiaryPayload {
	out := DiaryPayload{
		ID:              d.ID,
		Title:           d.Title,
		Content:         d.Content,
		Mood:            d.Mood,
		MoodScore:       diary.MoodScore(d.Mood),
		DiaryDate:       d.Date(),
		AIGeneratedText: d.AIGeneratedText,
		ImagePath:       d.ImagePath,
		CreatedAt:       d.CreatedAt,
	}
	if d.ImagePath != "" && imageURL != nil {
		out.ImageURL = imageURL(d.ImagePath)
	}
	return out
}

// DiaryResponse wraps a single diary.
type DiaryResponse struct {
	Success bool         `json:"success"`
	Diary   DiaryPayload `json:"diary"`
}

// DiaryListResponse wraps a diary listing.
type DiaryListResponse struct {
	Success bool           `json:"success"`
	Data    []DiaryPayload `json:"data"`
	Total   int            `json:"total"`
}

func FromDiaries(items []*diary.Diary, imageURL func(string) string) DiaryListResponse {
	data := make([]DiaryPayload, 0, len(items))
	for _, d := range items {
		data = append(data, FromDiary(d, imageURL))
	}
	return DiaryListResponse{Success: true, Data: data, Total: len(data)}
}

// TrendPoint is one point on the mood trend.
type TrendPoint struct {
	Date  string `json:"date"`
	Score int    `json:"mood_score"`
}

// WordCloudEntry is one word of the word cloud.
type WordCloudEntry struct {
	Text  string  `json:"text"`
	Count int     `json:"count"`
	Size  float64 `json:"size"`
}

// DashboardStats summarises a user's diaries.
type DashboardStats struct {
	TotalEntries int    `json:"total_entries"`
	AverageScore string `json:"average_score"`
	TopMood      string `json:"top_mood"`
}

// DashboardResponse is the mood overview.
type DashboardResponse struct {
	Success   bool             `json:"success"`
	Year      int              `json:"year"`
	Heatmap   map[string]int   `json:"heatmap"`
	Trend     []TrendPoint     `json:"trend"`
	WordCloud []WordCloudEntry `json:"word_cloud"`
	Stats     DashboardStats   `json:"stats"`
}

func FromDashboard(d *diary.Dashboard) DashboardResponse {
	trend := make([]TrendPoint, 0, len(d.Trend))
	for _, p := range d.Trend {
		trend = append(trend, TrendPoint{Date: p.Date, Score: p.Score})
	}
	words := make([]WordCloudEntry, 0, len(d.WordCloud))
	for _, w := range d.WordCloud {
		words = append(words, WordCloudEntry{Text: w.Text, Count: w.Count, Size: w.Size})
	}
	return DashboardResponse{
		Success:   true,
		Year:      d.Year,
		Heatmap:   d.Heatmap,
		Trend:     trend,
		WordCloud: words,
		Stats: DashboardStats{
			TotalEntries: d.Stats.TotalEntries,
			AverageScore: d.Stats.AverageScore.StringFixed(2),
			TopMood:      d.Stats.TopMood,
		},
	}
}
