package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const sessionPrefix = "session:"

// SessionTTL is how long an issued session token stays valid server-side.
const SessionTTL = 12 * time.Hour

// SaveSessionToken records the hash of an issued token so it can be checked
// and revoked independently of its JWT expiry.
func SaveSessionToken(ctx context.Context, client *redis.Client, uid, token string) error {
	key := sessionPrefix + uid
	if err := client.Set(ctx, key, HashToken(token), SessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save session token: %w", err)
	}
	return nil
}

// SessionTokenValid checks a presented token against the stored hash.
func SessionTokenValid(ctx context.Context, client *redis.Client, uid, token string) (bool, error) {
	stored, err := client.Get(ctx, sessionPrefix+uid).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read session token: %w", err)
	}
	return stored == HashToken(token), nil
}

// RevokeSession drops the stored token hash for a uid.
func RevokeSession(ctx context.Context, client *redis.Client, uid string) error {
	return client.Del(ctx, sessionPrefix+uid).Err()
}
