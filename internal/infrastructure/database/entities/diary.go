package entities

import (
	"time"

	"gorm.io/datatypes"

	"moodcanvas-server/internal/domain/diary"
)

// Diary is the persisted form of diary.Diary.
type Diary struct {
	ID              uint           `gorm:"primaryKey"`
	UserID          uint           `gorm:"not null;index:idx_diary_user_date,priority:1"`
	Title           string         `gorm:"size:255;not null"`
	Content         string         `gorm:"type:text;not null"`
	Mood            string         `gorm:"size:16;not null"`
	DiaryDate       datatypes.Date `gorm:"not null;index:idx_diary_user_date,priority:2"`
	AIGeneratedText *string        `gorm:"column:ai_generated_text;type:text"`
	ImagePath       *string        `gorm:"size:512"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func NewSchemaDiary(d *diary.Diary) *Diary {
	return &Diary{
		ID:              d.ID,
		UserID:          d.UserID,
		Title:           d.Title,
		Content:         d.Content,
		Mood:            d.Mood,
		DiaryDate:       datatypes.Date(d.DiaryDate),
		AIGeneratedText: nullable(d.AIGeneratedText),
		ImagePath:       nullable(d.ImagePath),
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func (d *Diary) EtoD() *diary.Diary {
	date := time.Time(d.DiaryDate)
	return &diary.Diary{
		ID:              d.ID,
		UserID:          d.UserID,
		Title:           d.Title,
		Content:         d.Content,
		Mood:            d.Mood,
		DiaryDate:       time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		AIGeneratedText: deref(d.AIGeneratedText),
		ImagePath:       deref(d.ImagePath),
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
