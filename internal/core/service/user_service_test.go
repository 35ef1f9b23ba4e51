package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/dilahazalbilgin/VerifID/internal/core/domain"
	"github.com/dilahazalbilgin/VerifID/internal/core/ports"
)

// stubUserRepo is an in-memory UserRepository that mimics the store's
// unique-index behaviour, including sparse uniqueness on the request ID.
type stubUserRepo struct {
	seq   int
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, &domain.DuplicateKeyError{Field: "email"}
		}
		if existing.IDCardNumber == user.IDCardNumber {
			return nil, &domain.DuplicateKeyError{Field: "idCardNumber"}
		}
		if user.RequestID != "" && existing.RequestID == user.RequestID {
			return nil, &domain.DuplicateKeyError{Field: "requestId"}
		}
	}
	r.seq++
	created := cloneUser(user)
	created.ID = "user_" + strconv.Itoa(r.seq)
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIDCardNumber(_ context.Context, idCardNumber string) (*domain.User, error) {
	for _, u := range r.users {
		if u.IDCardNumber == idCardNumber {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByRequestID(_ context.Context, requestID string) (*domain.User, error) {
	for _, u := range r.users {
		if u.RequestID != "" && u.RequestID == requestID {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	for id, existing := range r.users {
		if id == user.ID {
			continue
		}
		if user.RequestID != "" && existing.RequestID == user.RequestID {
			return nil, &domain.DuplicateKeyError{Field: "requestId"}
		}
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func validRegisterInput() ports.RegisterInput {
	return ports.RegisterInput{
		FirstName:    "Ada",
		LastName:     "Yilmaz",
		Email:        "Ada@Example.com",
		Password:     "s3cret99",
		IDCardNumber: "11122233344",
		SerialNumber: "A01B02",
		BirthDate:    time.Date(1994, 5, 17, 0, 0, 0, 0, time.UTC),
		Gender:       domain.GenderFemale,
	}
}

func newUserService(repo ports.UserRepository) *UserService {
	return NewUserService(repo, nil, "secret", time.Hour, zerolog.Nop())
}

func TestUserService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)

	result, err := svc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected bearer token, got empty")
	}

	user := result.User
	if user.Email != "ada@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.PasswordHash == "s3cret99" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret99")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.IsVerified {
		t.Fatalf("new user must start unverified")
	}
	if user.RequestID == "" {
		t.Fatalf("expected request ID to be assigned on creation")
	}
	if !domain.IsRequestID(user.RequestID) {
		t.Fatalf("request ID %q does not match token format", user.RequestID)
	}
}

func TestUserService_Register_CollectsAllValidationFailures(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "not-an-email",
		Password: "shrt",
		Gender:   "other",
	})

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	// first name, last name, email format, password length, ID card,
	// serial number, birth date, gender
	if len(ve.Fields) != 8 {
		t.Fatalf("expected 8 field messages, got %d: %v", len(ve.Fields), ve.Fields)
	}
}

func TestUserService_Register_DuplicateEmailCaseInsensitive(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)

	if _, err := svc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	second := validRegisterInput()
	second.Email = "ADA@EXAMPLE.COM"
	second.IDCardNumber = "99988877766"

	_, err := svc.Register(context.Background(), second)
	var de *domain.DuplicateKeyError
	if !errors.As(err, &de) || de.Field != "email" {
		t.Fatalf("expected duplicate email error, got %v", err)
	}
}

func TestUserService_Register_DuplicateIDCardNumber(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)

	if _, err := svc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	second := validRegisterInput()
	second.Email = "other@example.com"

	_, err := svc.Register(context.Background(), second)
	var de *domain.DuplicateKeyError
	if !errors.As(err, &de) || de.Field != "idCardNumber" {
		t.Fatalf("expected duplicate ID card error, got %v", err)
	}
}

func TestUserService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)

	if _, err := svc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	result, err := svc.Login(context.Background(), "ada@example.com", "s3cret99")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected token, got empty")
	}
	if result.User.FirstName != "Ada" {
		t.Fatalf("unexpected user: %+v", result.User)
	}
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)

	_, _ = svc.Register(context.Background(), validRegisterInput())
	if _, err := svc.Login(context.Background(), "ada@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)

	if _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUserService_UpdateProfile_PartialRetainsOtherFields(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)

	registered, err := svc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	before := registered.User

	lastName := "Demir"
	updated, err := svc.UpdateProfile(context.Background(), before.ID, ports.UpdateProfileInput{
		LastName: &lastName,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	after := updated.User
	if after.LastName != "Demir" {
		t.Fatalf("last name not updated: %q", after.LastName)
	}
	if after.FirstName != before.FirstName ||
		after.Email != before.Email ||
		after.IDCardNumber != before.IDCardNumber ||
		after.SerialNumber != before.SerialNumber ||
		!after.BirthDate.Equal(before.BirthDate) ||
		after.Gender != before.Gender ||
		after.IsVerified != before.IsVerified ||
		after.RequestID != before.RequestID ||
		after.PasswordHash != before.PasswordHash {
		t.Fatalf("partial update touched unrelated fields:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestUserService_UpdateProfile_ExplicitVerifiedFalse(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)

	registered, _ := svc.Register(context.Background(), validRegisterInput())

	verified := true
	if _, err := svc.UpdateProfile(context.Background(), registered.User.ID, ports.UpdateProfileInput{IsVerified: &verified}); err != nil {
		t.Fatalf("set verified failed: %v", err)
	}

	unverified := false
	result, err := svc.UpdateProfile(context.Background(), registered.User.ID, ports.UpdateProfileInput{IsVerified: &unverified})
	if err != nil {
		t.Fatalf("clear verified failed: %v", err)
	}
	if result.User.IsVerified {
		t.Fatalf("explicit false must clear the verified flag")
	}
}

func TestUserService_UpdateProfile_RehashesOnlyWhenPasswordProvided(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)

	registered, _ := svc.Register(context.Background(), validRegisterInput())
	originalHash := registered.User.PasswordHash

	firstName := "Aylin"
	noPw, err := svc.UpdateProfile(context.Background(), registered.User.ID, ports.UpdateProfileInput{FirstName: &firstName})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if noPw.User.PasswordHash != originalHash {
		t.Fatalf("hash changed without a password update")
	}

	newPassword := "brandNew1"
	withPw, err := svc.UpdateProfile(context.Background(), registered.User.ID, ports.UpdateProfileInput{Password: &newPassword})
	if err != nil {
		t.Fatalf("password update failed: %v", err)
	}
	if withPw.User.PasswordHash == originalHash {
		t.Fatalf("hash not regenerated for new password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(withPw.User.PasswordHash), []byte(newPassword)); err != nil {
		t.Fatalf("new hash does not match new password: %v", err)
	}
}

func TestUserService_UpdateProfile_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)

	_, _ = svc.Register(context.Background(), validRegisterInput())

	second := validRegisterInput()
	second.Email = "other@example.com"
	second.IDCardNumber = "55566677788"
	registered, err := svc.Register(context.Background(), second)
	if err != nil {
		t.Fatalf("second register failed: %v", err)
	}

	taken := "ada@example.com"
	_, err = svc.UpdateProfile(context.Background(), registered.User.ID, ports.UpdateProfileInput{Email: &taken})
	var de *domain.DuplicateKeyError
	if !errors.As(err, &de) || de.Field != "email" {
		t.Fatalf("expected duplicate email error, got %v", err)
	}
}

func TestUserService_UpdateProfile_UnknownUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)

	name := "X"
	if _, err := svc.UpdateProfile(context.Background(), "user_404", ports.UpdateProfileInput{FirstName: &name}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
