package ports

import (
	"context"
	"time"

	"github.com/dilahazalbilgin/VerifID/internal/core/domain"
)

// RegisterInput carries all data needed to create a new user account.
type RegisterInput struct {
	FirstName    string
	LastName     string
	Email        string
	Password     string
	IDCardNumber string
	SerialNumber string
	BirthDate    time.Time
	Gender       string
}

// UpdateProfileInput applies partial-field semantics: nil fields retain the
// stored value, non-nil fields overwrite it. IsVerified is applied explicitly
// when present, including an explicit false.
type UpdateProfileInput struct {
	FirstName    *string
	LastName     *string
	Email        *string
	Password     *string
	IDCardNumber *string
	SerialNumber *string
	BirthDate    *time.Time
	Gender       *string
	IsVerified   *bool
	IDCardFace   *string
}

// AuthResult is returned by operations that (re)issue a bearer token.
type AuthResult struct {
	Token string
	User  *domain.User
}

// UserService owns the user record lifecycle: creation with its side effects
// (validation, password hashing, eager request-ID assignment), login, and
// partial profile updates.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*AuthResult, error)
}
