package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/dilahazalbilgin/VerifID/internal/core/domain"
	"github.com/dilahazalbilgin/VerifID/internal/core/ports"
)

const minPasswordLen = 6

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// UserService implements registration, login and profile updates. It shares
// the lookup cache with the verification service: public lookups project
// profile fields, so profile writes must drop the cached entry for the
// user's current request ID.
type UserService struct {
	repo      ports.UserRepository
	cache     LookupCache
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewUserService(repo ports.UserRepository, cache LookupCache, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *UserService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &UserService{repo: repo, cache: cache, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

// Register creates a user record. All required-field failures are collected
// into a single ValidationError; email and ID card uniqueness are checked
// explicitly before the write so the offending field is deterministic. The
// request ID is assigned before the first persisted write; the store's
// sparse unique index is the sole uniqueness enforcement point.
func (s *UserService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	input.Email = NormalizeEmail(input.Email)

	if err := validateRegister(input); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, &domain.DuplicateKeyError{Field: "email"}
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if _, err := s.repo.FindByIDCardNumber(ctx, input.IDCardNumber); err == nil {
		return nil, &domain.DuplicateKeyError{Field: "idCardNumber"}
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: string(hash),
		IDCardNumber: input.IDCardNumber,
		SerialNumber: input.SerialNumber,
		BirthDate:    input.BirthDate,
		Gender:       input.Gender,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if user.RequestID == "" {
		user.RequestID = domain.GenerateRequestID()
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.signToken(created.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Msg("user registered")

	return &ports.AuthResult{Token: token, User: created}, nil
}

// Login authenticates by normalized email and password.
func (s *UserService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.signToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &ports.AuthResult{Token: token, User: user}, nil
}

// UpdateProfile applies partial-field semantics: every non-nil input field
// overwrites the stored value, nil fields are retained. The password is
// re-hashed only when provided. The request ID is never touched here;
// rotation and revocation are owned by the verification service.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, input ports.UpdateProfileInput) (*ports.AuthResult, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Email != nil {
		email := NormalizeEmail(*input.Email)
		if !emailPattern.MatchString(email) {
			return nil, &domain.ValidationError{Fields: []string{"email must be a valid email"}}
		}
		if email != user.Email {
			if _, err := s.repo.FindByEmail(ctx, email); err == nil {
				return nil, &domain.DuplicateKeyError{Field: "email"}
			} else if !errors.Is(err, domain.ErrUserNotFound) {
				return nil, err
			}
		}
		user.Email = email
	}
	if input.IDCardNumber != nil {
		if *input.IDCardNumber != user.IDCardNumber {
			if _, err := s.repo.FindByIDCardNumber(ctx, *input.IDCardNumber); err == nil {
				return nil, &domain.DuplicateKeyError{Field: "idCardNumber"}
			} else if !errors.Is(err, domain.ErrUserNotFound) {
				return nil, err
			}
		}
		user.IDCardNumber = *input.IDCardNumber
	}
	if input.SerialNumber != nil {
		user.SerialNumber = *input.SerialNumber
	}
	if input.BirthDate != nil {
		user.BirthDate = *input.BirthDate
	}
	if input.Gender != nil {
		if !domain.ValidGender(*input.Gender) {
			return nil, &domain.ValidationError{Fields: []string{"gender must be one of: male female"}}
		}
		user.Gender = *input.Gender
	}
	if input.IDCardFace != nil {
		user.IDCardFace = *input.IDCardFace
	}
	if input.IsVerified != nil {
		// Letting profile edits toggle the verified flag mirrors the external
		// verification callback path, but it is reachable by the user's own
		// bearer token. Logged so the transition is auditable.
		if *input.IsVerified != user.IsVerified {
			s.log.Warn().
				Str("user_id", user.ID).
				Bool("is_verified", *input.IsVerified).
				Msg("verified flag changed via profile update")
		}
		user.IsVerified = *input.IsVerified
	}
	if input.Password != nil {
		if len(*input.Password) < minPasswordLen {
			return nil, &domain.ValidationError{Fields: []string{"password must be at least 6 characters"}}
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	user.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	// Public lookups project name, email, ID card and the verified flag, and
	// derive verifiedAt from UpdatedAt. Any successful profile write therefore
	// invalidates the cached entry for the user's token.
	if s.cache != nil && updated.RequestID != "" {
		if err := s.cache.Invalidate(ctx, updated.RequestID); err != nil {
			s.log.Warn().Err(err).Msg("lookup cache invalidation failed")
		}
	}

	token, err := s.signToken(updated.ID)
	if err != nil {
		return nil, err
	}

	return &ports.AuthResult{Token: token, User: updated}, nil
}

func (s *UserService) signToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(s.tokenTTL).Unix(),
		"iat": time.Now().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// NormalizeEmail lowercases and trims an address; uniqueness and lookups are
// case-insensitive by normalizing at every entry point.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateRegister(input ports.RegisterInput) error {
	var fields []string

	if input.FirstName == "" {
		fields = append(fields, "first name is required")
	}
	if input.LastName == "" {
		fields = append(fields, "last name is required")
	}
	switch {
	case input.Email == "":
		fields = append(fields, "email is required")
	case !emailPattern.MatchString(input.Email):
		fields = append(fields, "email must be a valid email")
	}
	switch {
	case input.Password == "":
		fields = append(fields, "password is required")
	case len(input.Password) < minPasswordLen:
		fields = append(fields, "password must be at least 6 characters")
	}
	if input.IDCardNumber == "" {
		fields = append(fields, "ID card number is required")
	}
	if input.SerialNumber == "" {
		fields = append(fields, "serial number is required")
	}
	if input.BirthDate.IsZero() {
		fields = append(fields, "birth date is required")
	}
	if !domain.ValidGender(input.Gender) {
		fields = append(fields, "gender must be one of: male female")
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
