package ports

import (
	"context"

	"github.com/memberhub/registration-system/internal/core/domain"
)

// UserRepository defines the persistence contract for member accounts.
// Email uniqueness is enforced by the store and surfaced as domain.ErrEmailTaken.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// SaveProfilePicture durably attaches the uploaded image to an existing
	// account. Kept as a separate step so the picture write is explicit
	// rather than folded into Create.
	SaveProfilePicture(ctx context.Context, id string, picture []byte, contentType string) error
	ConfirmEmail(ctx context.Context, id string) error
}
