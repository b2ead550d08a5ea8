// Package diary manages diary entries, the calendar views over them and the
// mood dashboard.
package diary

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"

	"moodcanvas-server/internal/domain/generation"
	"moodcanvas-server/internal/utils/platformerrors"
)

const (
	DateLayout = "2006-01-02"

	QuickMood  = "📝"
	QuickTitle = "快速記錄"

	untitledPrefix = "無標題日記 - "
	maxTitleRunes  = 255
	maxMoodRunes   = 16
)

// Diary is one entry written by a user for a calendar day.
type Diary struct {
	ID              uint
	UserID          uint
	Title           string
	Content         string
	Mood            string
	DiaryDate       time.Time
	AIGeneratedText string
	ImagePath       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Date returns the diary day formatted as YYYY-MM-DD.
func (d *Diary) Date() string {
	return d.DiaryDate.Format(DateLayout)
}

// Filter narrows a listing. Zero bounds are open; both bounds are inclusive.
type Filter struct {
	From  time.Time
	To    time.Time
	Limit int
}

// Repository defines storage operations for diaries. FindByID returns nil, nil
// when the id does not exist for that owner.
type Repository interface {
	Create(ctx context.Context, d *Diary) error
	FindByID(ctx context.Context, userID, id uint) (*Diary, error)
	// ListByUser orders by diary_date then created_at, newest first.
	ListByUser(ctx context.Context, userID uint, filter Filter) ([]*Diary, error)
	Delete(ctx context.Context, userID, id uint) (bool, error)
	ImagePaths(ctx context.Context) ([]string, error)
	// CountImageReferences counts diaries of any owner that hold path.
	CountImageReferences(ctx context.Context, path string) (int64, error)
}

// ImageRemover deletes a stored generated image given the path a diary holds.
type ImageRemover interface {
	DeleteImage(ctx context.Context, relativePath string) error
}

// CreateInput carries the fields of a new diary.
type CreateInput struct {
	Title           string
	Content         string
	Mood            string
	DiaryDate       string
	AIGeneratedText string
	// ImagePath accepts a generated image filename, its stored path or its URL.
	ImagePath string
}

// Service implements diary use cases.
type Service struct {
	repo   Repository
	images ImageRemover
	log    zerolog.Logger
	now    func() time.Time
}

// NewService constructs a Service with required dependencies.
func NewService(repo Repository, images ImageRemover, log zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		images: images,
		log:    log.With().Str("component", "diary-service").Logger(),
		now:    time.Now,
	}
}

// Create stores a full diary. Content is required; a blank title becomes
// "無標題日記 - <date>" and a blank date becomes today.
func (s *Service) Create(ctx context.Context, userID uint, in CreateInput) (*Diary, error) {
	content := norm.NFC.String(strings.TrimSpace(in.Content))
	if content == "" {
		return nil, invalid(ctx, "diary content is required", "diary-content-required")
	}

	date, err := s.parseDateOrToday(ctx, in.DiaryDate)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = untitledPrefix + date.Format(DateLayout)
	}

	imagePath, err := resolveImagePath(ctx, in.ImagePath)
	if err != nil {
		return nil, err
	}

	d := &Diary{
		UserID:          userID,
		Title:           title,
		Content:         content,
		Mood:            strings.TrimSpace(in.Mood),
		DiaryDate:       date,
		AIGeneratedText: strings.TrimSpace(in.AIGeneratedText),
		ImagePath:       imagePath,
	}
	if err := s.insert(ctx, d); err != nil {
		return nil, err
	}
	s.log.Info().Uint("user_id", userID).Uint("diary_id", d.ID).Str("diary_date", d.Date()).Msg("diary created")
	return d, nil
}

// QuickCreate stores a calendar quick entry. The date is required; mood and
// title fall back to 📝 and 快速記錄, and content may be empty.
func (s *Service) QuickCreate(ctx context.Context, userID uint, in CreateInput) (*Diary, error) {
	if strings.TrimSpace(in.DiaryDate) == "" {
		return nil, invalid(ctx, "diary_date is required", "diary-date-required")
	}
	date, err := ParseDate(in.DiaryDate)
	if err != nil {
		return nil, invalid(ctx, "diary_date must be YYYY-MM-DD", "diary-date-format")
	}

	mood := strings.TrimSpace(in.Mood)
	if mood == "" {
		mood = QuickMood
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = QuickTitle
	}

	d := &Diary{
		UserID:    userID,
		Title:     title,
		Content:   norm.NFC.String(strings.TrimSpace(in.Content)),
		Mood:      mood,
		DiaryDate: date,
	}
	if err := s.insert(ctx, d); err != nil {
		return nil, err
	}
	s.log.Info().Uint("user_id", userID).Uint("diary_id", d.ID).Str("diary_date", d.Date()).Msg("quick diary created")
	return d, nil
}

func (s *Service) insert(ctx context.Context, d *Diary) error {
	if utf8.RuneCountInString(d.Title) > maxTitleRunes {
		return invalid(ctx, "title must be at most 255 characters", "diary-title-length")
	}
	if utf8.RuneCountInString(d.Mood) > maxMoodRunes {
		return invalid(ctx, "mood must be a single emoji", "diary-mood-length")
	}
	return s.repo.Create(ctx, d)
}

// Get returns a diary owned by userID, or a not-found error.
func (s *Service) Get(ctx context.Context, userID, id uint) (*Diary, error) {
	d, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"diary not found", nil, "diary-not-found")
	}
	return d, nil
}

// List returns every diary of the user, newest first.
func (s *Service) List(ctx context.Context, userID uint) ([]*Diary, error) {
	return s.repo.ListByUser(ctx, userID, Filter{})
}

// ListByDate returns the diaries of one day in creation order.
func (s *Service) ListByDate(ctx context.Context, userID uint, date string) ([]*Diary, error) {
	day, err := ParseDate(date)
	if err != nil {
		return nil, invalid(ctx, "date must be YYYY-MM-DD", "diary-date-format")
	}
	items, err := s.repo.ListByUser(ctx, userID, Filter{From: day, To: day})
	if err != nil {
		return nil, err
	}
	reverse(items)
	return items, nil
}

// ListByMonth returns the diaries of a calendar month in date order.
func (s *Service) ListByMonth(ctx context.Context, userID uint, year, month int) ([]*Diary, error) {
	if year < 1 || year > 9999 || month < 1 || month > 12 {
		return nil, invalid(ctx, "year or month is out of range", "diary-month-range")
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	items, err := s.repo.ListByUser(ctx, userID, Filter{From: first, To: last})
	if err != nil {
		return nil, err
	}
	reverse(items)
	return items, nil
}

// Delete removes the diary's image, then the diary. The image is kept while
// another diary still points at it. A failed image removal is logged and does
// not block the delete.
func (s *Service) Delete(ctx context.Context, userID, id uint) error {
	d, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}

	if d.ImagePath != "" && s.images != nil {
		s.releaseImage(ctx, d)
	}

	deleted, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"diary not found", nil, "diary-not-found")
	}
	s.log.Info().Uint("user_id", userID).Uint("diary_id", id).Msg("diary deleted")
	return nil
}

func (s *Service) releaseImage(ctx context.Context, d *Diary) {
	log := s.log.With().Uint("diary_id", d.ID).Str("image_path", d.ImagePath).Logger()

	refs, err := s.repo.CountImageReferences(ctx, d.ImagePath)
	if err != nil {
		log.Error().Err(err).Msg("could not count image references, keeping image")
		return
	}
	if refs > 1 {
		log.Debug().Int64("references", refs).Msg("image shared with another diary, keeping it")
		return
	}
	if err := s.images.DeleteImage(ctx, d.ImagePath); err != nil {
		log.Error().Err(err).Msg("failed to delete diary image")
	}
}

// RecentInsightEntries returns up to limit of the user's latest diaries in
// the shape the insight prompt expects, oldest first.
func (s *Service) RecentInsightEntries(ctx context.Context, userID uint, limit int) ([]generation.InsightEntry, error) {
	items, err := s.repo.ListByUser(ctx, userID, Filter{Limit: limit})
	if err != nil {
		return nil, err
	}
	entries := make([]generation.InsightEntry, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		d := items[i]
		entries = append(entries, generation.InsightEntry{
			Date:      d.Date(),
			MoodScore: MoodScore(d.Mood),
			Content:   d.Content,
		})
	}
	return entries, nil
}

// ParseDate parses YYYY-MM-DD as a UTC calendar day.
func ParseDate(raw string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(raw), time.UTC)
}

func (s *Service) parseDateOrToday(ctx context.Context, raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		now := s.now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	date, err := ParseDate(raw)
	if err != nil {
		return time.Time{}, invalid(ctx, "diary_date must be YYYY-MM-DD", "diary-date-format")
	}
	return date, nil
}

func resolveImagePath(ctx context.Context, raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	filename, ok := generation.FilenameFromPath(raw)
	if !ok {
		return "", invalid(ctx, "image path does not reference a generated image", "diary-image-path")
	}
	return generation.GeneratedImagesDir + "/" + filename, nil
}

func reverse(items []*Diary) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
}

func invalid(ctx context.Context, message, code string) error {
	return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, message, nil, code)
}
