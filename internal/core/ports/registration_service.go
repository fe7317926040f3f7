package ports

import (
	"context"

	"github.com/memberhub/registration-system/internal/core/domain"
)

// RegisterInput is the registration submission bundle. DateOfBirth arrives as
// the raw form value so the service can report a malformed date as a field
// error rather than a bind failure.
type RegisterInput struct {
	FirstName       string
	LastName        string
	FatherFirstName string
	FatherLastName  string
	Email           string
	Password        string
	ConfirmPassword string
	DateOfBirth     string
	MobileNumber    string

	ProfilePicture     []byte
	ProfilePictureType string

	ReturnURL string
}

// RegisterResult tells the caller where to send the newly registered user.
type RegisterResult struct {
	User *domain.User
	// PendingConfirmation is set when the account must confirm its email
	// before signing in; SessionToken is empty in that case.
	PendingConfirmation bool
	SessionToken        string
	ReturnURL           string
}

type RegistrationService interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterResult, error)
	ConfirmEmail(ctx context.Context, userID, code string) error
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
