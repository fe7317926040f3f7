package ports

import (
	"context"
	"time"
)

// ConfirmationStore records issued email-confirmation codes so each code can
// be redeemed at most once within its lifetime.
type ConfirmationStore interface {
	Put(ctx context.Context, userID, code string, ttl time.Duration) error
	// Consume atomically checks and deletes the code for userID. It returns
	// true only when the presented code matches the stored one.
	Consume(ctx context.Context, userID, code string) (bool, error)
}
