// Package user provides account registration and password login.
package user

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"moodcanvas-server/internal/utils/platformerrors"
)

const (
	maxUsernameRunes = 50
	// bcrypt ignores input past 72 bytes.
	maxPasswordBytes = 72
)

// User is a registered diary owner.
type User struct {
	ID           uint
	Username     string
	PasswordHash string
	Email        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Stats summarises the user base.
type Stats struct {
	TotalUsers int64 `json:"total_users"`
}

// Repository defines storage operations for users. Finders return nil, nil
// when nothing matches.
type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	Count(ctx context.Context) (int64, error)
}

var (
	ErrCredentialsRequired = errors.New("username and password are required")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrUsernameTaken       = errors.New("username is already registered")
	ErrInvalidCredentials  = errors.New("invalid username or password")
)

// Service registers and authenticates users.
type Service struct {
	repo Repository
	cost int
}

// NewService constructs a Service with required dependencies.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, cost: bcrypt.DefaultCost}
}

// Register creates an account after checking the confirmation and uniqueness.
func (s *Service) Register(ctx context.Context, username, password, confirm string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, validation(ctx, ErrCredentialsRequired, "user-register-empty")
	}
	if utf8.RuneCountInString(username) > maxUsernameRunes {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"username must be at most 50 characters", nil, "user-register-username-length")
	}
	if len(password) > maxPasswordBytes {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"password must be at most 72 bytes", nil, "user-register-password-length")
	}
	if password != confirm {
		return nil, validation(ctx, ErrPasswordMismatch, "user-register-mismatch")
	}

	existing, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict,
			ErrUsernameTaken.Error(), ErrUsernameTaken, "user-register-taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"failed to hash password", err, "user-register-hash")
	}

	u := &User{Username: username, PasswordHash: string(hash)}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate checks a username and password. Unknown users and wrong
// passwords produce the same error.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, validation(ctx, ErrCredentialsRequired, "user-login-empty")
	}

	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnauthorized,
			ErrInvalidCredentials.Error(), ErrInvalidCredentials, "user-login-invalid")
	}
	return u, nil
}

// GetByID returns the user or a not-found error.
func (s *Service) GetByID(ctx context.Context, id uint) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"user not found", nil, "user-not-found")
	}
	return u, nil
}

// Stats returns the number of registered users.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{TotalUsers: total}, nil
}

func validation(ctx context.Context, err error, code string) error {
	return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, err.Error(), err, code)
}

// externalPasswordHash never matches a bcrypt comparison, so accounts created
// for external identities cannot log in with a password.
const externalPasswordHash = "!external"

// EnsureExternal returns the local account for an identity verified by an
// external issuer, creating it on first sight.
func (s *Service) EnsureExternal(ctx context.Context, username string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" || utf8.RuneCountInString(username) > maxUsernameRunes {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnauthorized,
			"token carries no usable username", nil, "user-external-username")
	}
	existing, err := s.repo.FindByUsername(ctx, username)
	if err != nil || existing != nil {
		return existing, err
	}
	u := &User{Username: username, PasswordHash: externalPasswordHash}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
