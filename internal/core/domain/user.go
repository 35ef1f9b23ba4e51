package domain

import "time"

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// User is the sole persisted entity. The password hash never leaves the
// server; RequestID is empty until issued and may be cleared by revocation.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	FirstName    string    `json:"firstName" bson:"first_name"`
	LastName     string    `json:"lastName" bson:"last_name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	IDCardNumber string    `json:"idCardNumber" bson:"id_card_number"`
	SerialNumber string    `json:"serialNumber" bson:"serial_number"`
	BirthDate    time.Time `json:"birthDate" bson:"birth_date"`
	Gender       string    `json:"gender,omitempty" bson:"gender,omitempty"`
	IsVerified   bool      `json:"isVerified" bson:"is_verified"`
	RequestID    string    `json:"requestId,omitempty" bson:"request_id,omitempty"`
	IDCardFace   string    `json:"-" bson:"id_card_face,omitempty"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updated_at"`
}

// ValidGender reports whether g is an accepted gender value. Empty is
// allowed: the field is optional.
func ValidGender(g string) bool {
	return g == "" || g == GenderMale || g == GenderFemale
}
