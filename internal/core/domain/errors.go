package domain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrNotVerified = errors.New("user must be verified before generating a request ID")
var ErrRequestIDRequired = errors.New("request ID is required")
var ErrRequestIDNotFound = errors.New("invalid request ID or user not found")
var ErrNoRequestID = errors.New("no request ID found to revoke")

// ValidationError carries one message per failing field so callers see the
// complete list in a single round trip.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Fields, "; ")
}

// DuplicateKeyError reports a uniqueness violation on a named field.
// Uniqueness is checked explicitly before writes where possible so the field
// name is deterministic; the store's unique indexes remain the backstop.
type DuplicateKeyError struct {
	Field string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s already in use", e.Field)
}
