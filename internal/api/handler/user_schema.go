package handler

import "time"

// Request bodies use the original API's camelCase field names so existing
// clients keep working. Required-field validation is owned by the service
// layer, which reports every failing field at once; the handler only parses.

type registerRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	IDCardNumber string `json:"idCardNumber"`
	SerialNumber string `json:"serialNumber"`
	BirthDate    string `json:"birthDate"`
	Gender       string `json:"gender"`
}

// loginRequest deliberately skips email format validation: a malformed email
// can never match a stored account, and credential failures must be uniformly
// 401 rather than leaking which part of the input was wrong.
type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// updateProfileRequest uses pointers throughout: a field absent from the JSON
// body stays nil and the stored value is retained, while a present field
// (including an explicit false for isVerified) overwrites it.
type updateProfileRequest struct {
	FirstName    *string `json:"firstName"`
	LastName     *string `json:"lastName"`
	Email        *string `json:"email"`
	Password     *string `json:"password"`
	IDCardNumber *string `json:"idCardNumber"`
	SerialNumber *string `json:"serialNumber"`
	BirthDate    *string `json:"birthDate"`
	Gender       *string `json:"gender"`
	IsVerified   *bool   `json:"isVerified"`
	IDCardFace   *string `json:"idCardFace"`
}

// userResponse is the projection returned by register, login and profile
// update: everything except the password hash and internal metadata, plus a
// fresh bearer token.
type userResponse struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	IDCardNumber string    `json:"idCardNumber"`
	SerialNumber string    `json:"serialNumber"`
	BirthDate    time.Time `json:"birthDate"`
	Gender       string    `json:"gender,omitempty"`
	IsVerified   bool      `json:"isVerified"`
	Token        string    `json:"token"`
}
