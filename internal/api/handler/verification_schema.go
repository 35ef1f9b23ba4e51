package handler

import "time"

// errorResponse documents the error envelope rendered by the central HTTP
// error handler; it exists here for the Swagger annotations only.
type errorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

type generateRequestIDResponse struct {
	Success   bool                `json:"success"`
	Message   string              `json:"message"`
	RequestID string              `json:"requestId"`
	User      verifiedUserSummary `json:"user"`
}

type verifiedUserSummary struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	IsVerified bool   `json:"isVerified"`
}

type lookupUserResponse struct {
	ID           string     `json:"id"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Email        string     `json:"email"`
	IDCardNumber string     `json:"idCardNumber"`
	IsVerified   bool       `json:"isVerified"`
	VerifiedAt   *time.Time `json:"verifiedAt"`
}

type lookupResponse struct {
	Success   bool               `json:"success"`
	Found     bool               `json:"found"`
	Message   string             `json:"message"`
	Verified  bool               `json:"verified"`
	RequestID string             `json:"requestId"`
	User      lookupUserResponse `json:"user"`
	Timestamp time.Time          `json:"timestamp"`
}

// lookupNotFoundResponse is the stable shape third parties branch on when a
// token does not resolve. Revoked and never-issued tokens are
// indistinguishable here.
type lookupNotFoundResponse struct {
	Success  bool   `json:"success"`
	Found    bool   `json:"found"`
	Verified bool   `json:"verified"`
	Message  string `json:"message"`
}

type ownRequestIDResponse struct {
	Success      bool            `json:"success"`
	RequestID    *string         `json:"requestId"`
	IsVerified   bool            `json:"isVerified"`
	HasRequestID bool            `json:"hasRequestId"`
	User         ownUserResponse `json:"user"`
}

type ownUserResponse struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type revokeResponse struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	RevokedRequestID string `json:"revokedRequestId"`
}
