package access

import (
	"context"
	"time"

	"viacampo/models"

	"github.com/go-redis/redis/v8"
)

const profileCachePrefix = "accessProfile:"

// profileCacheTTL keeps cached profiles short-lived so admin edits take
// effect within a minute even when the explicit invalidation is missed.
const profileCacheTTL = time.Minute

// CacheClient is the subset of the Redis API the profile cache uses.
type CacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// CacheProfile stores a resolved profile for a uid.
func CacheProfile(ctx context.Context, client CacheClient, uid string, profile Profile) error {
	return client.Set(ctx, profileCachePrefix+uid, string(profile), profileCacheTTL).Err()
}

// CachedProfile returns the cached profile for a uid, or "" on a miss.
func CachedProfile(ctx context.Context, client CacheClient, uid string) (Profile, error) {
	val, err := client.Get(ctx, profileCachePrefix+uid).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return Profile(val), nil
}

// DropProfile removes a cached profile, used when an admin edits a user.
func DropProfile(ctx context.Context, client CacheClient, uid string) error {
	return client.Del(ctx, profileCachePrefix+uid).Err()
}

// UserSource is the directory lookup consulted on a cache miss.
type UserSource interface {
	GetByUID(ctx context.Context, uid string) (*models.AppUser, error)
}

// ResolveUser returns the caller's directory row for request gating,
// consulting the profile cache before the store. Only active users are
// cached, and admin edits drop the entry, so a hit stands for an active
// user holding the cached profile's permission set.
func ResolveUser(ctx context.Context, cache CacheClient, dir UserSource, uid, email string) (*models.AppUser, error) {
	if profile, err := CachedProfile(ctx, cache, uid); err == nil && profile != "" {
		return &models.AppUser{
			UID:         uid,
			Email:       email,
			Active:      true,
			Permissions: FromProfile(profile),
		}, nil
	}

	user, err := dir.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if user.Active {
		// Best effort: a failed cache write only costs the next lookup.
		_ = CacheProfile(ctx, cache, uid, ToProfile(user.Permissions))
	}
	return user, nil
}
