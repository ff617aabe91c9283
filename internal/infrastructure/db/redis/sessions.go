package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore records issued session credentials in Redis, keyed by the
// token's jti, so a session can be revoked before its JWT expires.
// Key format: session:<jti>
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Save records the session; the entry expires with the token itself.
func (s *SessionStore) Save(ctx context.Context, tokenID, userID string, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(tokenID), userID, ttl).Err()
}

// Revoke deletes the session. Revoking an unknown or already-revoked
// session is not an error.
func (s *SessionStore) Revoke(ctx context.Context, tokenID string) error {
	return s.client.Del(ctx, s.key(tokenID)).Err()
}

// Active reports whether the session is still live.
func (s *SessionStore) Active(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("session check: %w", err)
	}
	return n > 0, nil
}

func (s *SessionStore) key(tokenID string) string {
	return "session:" + tokenID
}
