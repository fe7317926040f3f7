package domain

import (
	"errors"
	"time"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already registered")
var ErrInvalidConfirmation = errors.New("invalid or expired confirmation code")

// User models a registered member account. The email address doubles as the
// username; name fields are personal data subject to export/erasure handling
// by the store.
type User struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	FatherFirstName string    `json:"father_first_name"`
	FatherLastName  string    `json:"father_last_name"`
	DateOfBirth     time.Time `json:"date_of_birth"`
	MobileNumber    string    `json:"mobile_number"`
	// ProfilePicture holds the raw uploaded image. It is attached to the
	// record by a dedicated save step after the account is created.
	ProfilePicture     []byte    `json:"-"`
	ProfilePictureType string    `json:"-"`
	EmailConfirmed     bool      `json:"email_confirmed"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
