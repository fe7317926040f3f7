package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConfirmationStore records issued email-confirmation codes in Redis so each
// code can be redeemed at most once within its lifetime.
// Key format: confirm:<user_id>
type ConfirmationStore struct {
	client *redis.Client
}

// NewConfirmationStore creates a ConfirmationStore wrapping the given Redis client.
func NewConfirmationStore(client *redis.Client) *ConfirmationStore {
	return &ConfirmationStore{client: client}
}

// Put records the code issued for userID; it expires after ttl. Issuing a new
// code replaces any outstanding one.
func (s *ConfirmationStore) Put(ctx context.Context, userID, code string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(userID), code, ttl).Err(); err != nil {
		return fmt.Errorf("store confirmation code: %w", err)
	}
	return nil
}

// Consume atomically fetches and deletes the stored code for userID, then
// compares it to the presented one. Expired, missing, or mismatched codes
// return false.
func (s *ConfirmationStore) Consume(ctx context.Context, userID, code string) (bool, error) {
	stored, err := s.client.GetDel(ctx, s.key(userID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("consume confirmation code: %w", err)
	}
	return stored == code, nil
}

func (s *ConfirmationStore) key(userID string) string {
	return fmt.Sprintf("confirm:%s", userID)
}
