package ports

import (
	"context"

	"github.com/dilahazalbilgin/VerifID/internal/core/domain"
)

// UserRepository defines persistence operations for user documents. Lookup
// methods return domain.ErrUserNotFound when no document matches; Create and
// Update map unique-index violations to *domain.DuplicateKeyError.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByIDCardNumber(ctx context.Context, idCardNumber string) (*domain.User, error)
	FindByRequestID(ctx context.Context, requestID string) (*domain.User, error)
	// Update persists the full user document. An empty RequestID clears the
	// stored field so the sparse unique index treats it as absent.
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
}
