package requests

// RegisterRequest creates an account.
type RegisterRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// LoginRequest opens a session.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// GenerationRequest is the input of every generation capability.
type GenerationRequest struct {
	Content string `json:"content"`
	Style   string `json:"style"`
	Mood    string `json:"mood"`
}

// InsightDiary is one diary summarised for the insight.
type InsightDiary struct {
	Date      string `json:"date"`
	MoodScore int    `json:"mood_score"`
	Content   string `json:"content"`
}

// InsightRequest asks for a reflection over recent diaries. An empty list
// means the caller's latest diaries are used.
type InsightRequest struct {
	Diaries []InsightDiary `json:"diaries"`
}

// CreateDiaryRequest stores a diary. GeneratedImageID is accepted as an
// alias of ImagePath.
type CreateDiaryRequest struct {
	Title            string `json:"title"`
	Content          string `json:"content"`
	Mood             string `json:"mood"`
	DiaryDate        string `json:"diary_date"`
	AIGeneratedText  string `json:"ai_generated_text"`
	ImagePath        string `json:"image_path"`
	GeneratedImageID string `json:"generated_image_id"`
}

// QuickDiaryRequest stores a calendar quick entry.
type QuickDiaryRequest struct {
	DiaryDate string `json:"diary_date"`
	Mood      string `json:"mood"`
	Title     string `json:"title"`
	Content   string `json:"content"`
}
