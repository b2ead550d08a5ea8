package entities

import (
	"time"

	"moodcanvas-server/internal/domain/user"
)

// User is the persisted form of user.User.
type User struct {
	ID           uint    `gorm:"primaryKey"`
	Username     string  `gorm:"size:50;not null;uniqueIndex:idx_user_username"`
	PasswordHash string  `gorm:"size:255;not null"`
	Email        *string `gorm:"size:255"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewSchemaUser(u *user.User) *User {
	return &User{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Email:        u.Email,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (u *User) EtoD() *user.User {
	return &user.User{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Email:        u.Email,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
