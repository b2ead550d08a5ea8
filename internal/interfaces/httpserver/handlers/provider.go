package handlers

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"moodcanvas-server/internal/domain/diary"
	"moodcanvas-server/internal/domain/generation"
	"moodcanvas-server/internal/domain/session"
	"moodcanvas-server/internal/domain/user"
)

// UserService is the account surface the handlers use.
type UserService interface {
	Register(ctx context.Context, username, password, confirm string) (*user.User, error)
	Authenticate(ctx context.Context, username, password string) (*user.User, error)
	GetByID(ctx context.Context, id uint) (*user.User, error)
	Stats(ctx context.Context) (user.Stats, error)
}

// SessionManager opens and closes login sessions.
type SessionManager interface {
	Create(ctx context.Context, userID uint, username string) (*session.Session, error)
	Destroy(ctx context.Context, id string) error
	State(id string) *session.Scoped
}

// TokenIssuer signs the bearer token handed out at login.
type TokenIssuer interface {
	Issue(sess *session.Session) (string, error)
}

// GenerationService is the AI surface the handlers use.
type GenerationService interface {
	Availability() generation.Availability
	Chains() (text, image []generation.ProviderName)
	GenerateImagePrompt(ctx context.Context, req generation.GenerationRequest) (generation.TextResult, error)
	GenerateImage(ctx context.Context, state session.Store, req generation.GenerationRequest) (*generation.ImageResult, error)
	GenerateQuote(ctx context.Context, req generation.GenerationRequest) (generation.TextResult, error)
	GenerateInsight(ctx context.Context, entries []generation.InsightEntry) (generation.TextResult, error)
	Preview(ctx context.Context, state session.Store, req generation.GenerationRequest) (*generation.PreviewResult, error)
}

// DiaryService is the diary surface the handlers use.
type DiaryService interface {
	Create(ctx context.Context, userID uint, in diary.CreateInput) (*diary.Diary, error)
	QuickCreate(ctx context.Context, userID uint, in diary.CreateInput) (*diary.Diary, error)
	Get(ctx context.Context, userID, id uint) (*diary.Diary, error)
	List(ctx context.Context, userID uint) ([]*diary.Diary, error)
	ListByDate(ctx context.Context, userID uint, date string) ([]*diary.Diary, error)
	ListByMonth(ctx context.Context, userID uint, year, month int) ([]*diary.Diary, error)
	Delete(ctx context.Context, userID, id uint) error
	Dashboard(ctx context.Context, userID uint, year int) (*diary.Dashboard, error)
	RecentInsightEntries(ctx context.Context, userID uint, limit int) ([]generation.InsightEntry, error)
}

// ImageURLFunc turns a stored diary image path into a public URL.
type ImageURLFunc func(path string) string

// CookieSettings controls the session cookie written at login.
type CookieSettings struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Auth      *AuthHandler
	AI        *AIHandler
	Diary     *DiaryHandler
	Dashboard *DashboardHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(
	users UserService,
	sessions SessionManager,
	tokens TokenIssuer,
	cookie CookieSettings,
	gen GenerationService,
	diaries DiaryService,
	imageURL ImageURLFunc,
	log zerolog.Logger,
) *Provider {
	return &Provider{
		Auth:      NewAuthHandler(users, sessions, tokens, cookie, log),
		AI:        NewAIHandler(gen, diaries, sessions, log),
		Diary:     NewDiaryHandler(diaries, gen, sessions, imageURL, log),
		Dashboard: NewDashboardHandler(diaries, log),
	}
}
