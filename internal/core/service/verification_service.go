package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/dilahazalbilgin/VerifID/internal/core/domain"
	"github.com/dilahazalbilgin/VerifID/internal/core/ports"
)

// LookupCache abstracts the Redis-backed cache for public lookups. A nil
// cache disables caching; cache failures never fail a request.
type LookupCache interface {
	Get(ctx context.Context, requestID string) (*ports.LookupResult, error)
	Set(ctx context.Context, requestID string, result *ports.LookupResult) error
	Invalidate(ctx context.Context, requestID string) error
}

// VerificationService implements the request-ID token lifecycle on top of the
// user repository. Every operation is a read-modify-write on a single user
// document; single-document atomicity plus the sparse unique index on
// request_id are the only concurrency coordination required.
type VerificationService struct {
	repo  ports.UserRepository
	cache LookupCache
	log   zerolog.Logger
}

func NewVerificationService(repo ports.UserRepository, cache LookupCache, log zerolog.Logger) *VerificationService {
	return &VerificationService{repo: repo, cache: cache, log: log}
}

// GenerateRequestID issues a fresh token for a verified user. A prior token
// is simply overwritten (rotation); its cache entry is invalidated so public
// lookups of the old value miss immediately. Token collisions surface as a
// DuplicateKeyError from the store; the caller regenerates by calling again.
func (s *VerificationService) GenerateRequestID(ctx context.Context, userID string) (*ports.GenerateResult, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !user.IsVerified {
		return nil, domain.ErrNotVerified
	}

	oldRequestID := user.RequestID
	user.RequestID = domain.GenerateRequestID()
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	if oldRequestID != "" {
		s.invalidate(ctx, oldRequestID)
	}

	s.log.Info().Str("user_id", user.ID).Bool("rotated", oldRequestID != "").Msg("request ID generated")

	return &ports.GenerateResult{
		RequestID: updated.RequestID,
		User: ports.UserSummary{
			ID:         updated.ID,
			FirstName:  updated.FirstName,
			LastName:   updated.LastName,
			Email:      updated.Email,
			IsVerified: updated.IsVerified,
		},
	}, nil
}

// LookupByRequestID is the public, unauthenticated dereference used by third
// parties. Reads go through the cache; a revoked or rotated token behaves
// exactly like one that was never issued.
func (s *VerificationService) LookupByRequestID(ctx context.Context, requestID string) (*ports.LookupResult, error) {
	if requestID == "" {
		return nil, domain.ErrRequestIDRequired
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, requestID)
		if err != nil {
			s.log.Warn().Err(err).Msg("lookup cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	user, err := s.repo.FindByRequestID(ctx, requestID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrRequestIDNotFound
		}
		return nil, err
	}

	result := &ports.LookupResult{
		Verified:  user.IsVerified,
		RequestID: user.RequestID,
		User: ports.LookupUser{
			ID:           user.ID,
			FirstName:    user.FirstName,
			LastName:     user.LastName,
			Email:        user.Email,
			IDCardNumber: user.IDCardNumber,
			IsVerified:   user.IsVerified,
		},
	}
	if user.IsVerified {
		verifiedAt := user.UpdatedAt
		result.User.VerifiedAt = &verifiedAt
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, requestID, result); err != nil {
			s.log.Warn().Err(err).Msg("lookup cache write failed")
		}
	}

	return result, nil
}

// GetMyRequestID returns the caller's own token state.
func (s *VerificationService) GetMyRequestID(ctx context.Context, userID string) (*ports.OwnRequestIDResult, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ports.OwnRequestIDResult{
		RequestID:    user.RequestID,
		IsVerified:   user.IsVerified,
		HasRequestID: user.RequestID != "",
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        user.Email,
	}, nil
}

// RevokeRequestID clears the stored token and returns the revoked value for
// audit display. After revocation the token dereferences to not-found.
func (s *VerificationService) RevokeRequestID(ctx context.Context, userID string) (string, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}

	if user.RequestID == "" {
		return "", domain.ErrNoRequestID
	}

	revoked := user.RequestID
	user.RequestID = ""
	user.UpdatedAt = time.Now().UTC()

	if _, err := s.repo.Update(ctx, user); err != nil {
		return "", err
	}

	s.invalidate(ctx, revoked)

	s.log.Info().Str("user_id", user.ID).Msg("request ID revoked")

	return revoked, nil
}

func (s *VerificationService) invalidate(ctx context.Context, requestID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, requestID); err != nil {
		s.log.Warn().Err(err).Msg("lookup cache invalidation failed")
	}
}
