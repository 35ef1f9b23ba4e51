package ports

import (
	"context"
	"time"
)

// UserSummary is the redacted projection returned alongside a freshly
// generated request ID.
type UserSummary struct {
	ID         string
	FirstName  string
	LastName   string
	Email      string
	IsVerified bool
}

// GenerateResult is returned by GenerateRequestID.
type GenerateResult struct {
	RequestID string
	User      UserSummary
}

// LookupUser is the projection exposed to unauthenticated third parties.
// VerifiedAt is set only when the user is verified.
type LookupUser struct {
	ID           string     `json:"id"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Email        string     `json:"email"`
	IDCardNumber string     `json:"idCardNumber"`
	IsVerified   bool       `json:"isVerified"`
	VerifiedAt   *time.Time `json:"verifiedAt"`
}

// LookupResult is returned by LookupByRequestID. JSON tags allow the result
// to round-trip through the lookup cache unchanged.
type LookupResult struct {
	Verified  bool       `json:"verified"`
	RequestID string     `json:"requestId"`
	User      LookupUser `json:"user"`
}

// OwnRequestIDResult is returned by GetMyRequestID. RequestID is empty when
// the user holds no token.
type OwnRequestIDResult struct {
	RequestID    string
	IsVerified   bool
	HasRequestID bool
	FirstName    string
	LastName     string
	Email        string
}

// VerificationService manages the request-ID token lifecycle:
// absent → Generate → present → Revoke → absent, with Generate on a present
// token rotating it in place.
type VerificationService interface {
	// GenerateRequestID issues a new token for a verified user, replacing any
	// prior value. Fails with domain.ErrNotVerified for unverified users.
	GenerateRequestID(ctx context.Context, userID string) (*GenerateResult, error)
	// LookupByRequestID resolves a token to a verification status without
	// authentication. Revoked tokens are indistinguishable from never issued.
	LookupByRequestID(ctx context.Context, requestID string) (*LookupResult, error)
	GetMyRequestID(ctx context.Context, userID string) (*OwnRequestIDResult, error)
	// RevokeRequestID clears the stored token and returns the revoked value.
	RevokeRequestID(ctx context.Context, userID string) (string, error)
}
