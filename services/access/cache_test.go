package access

import (
	"context"
	"errors"
	"testing"
	"time"

	"viacampo/models"

	"github.com/go-redis/redis/v8"
)

// fakeCache is an in-memory CacheClient.
type fakeCache struct {
	values map[string]string
	getErr error
	sets   int
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]string{}}
}

func (f *fakeCache) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	val, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(val, nil)
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.sets++
	f.values[key] = value.(string)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(f.values, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

// fakeUserSource counts lookups so tests can tell a cache hit from a miss.
type fakeUserSource struct {
	user    *models.AppUser
	err     error
	lookups int
}

func (f *fakeUserSource) GetByUID(ctx context.Context, uid string) (*models.AppUser, error) {
	f.lookups++
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func TestCachedProfileMissReturnsEmpty(t *testing.T) {
	cache := newFakeCache()

	profile, err := CachedProfile(context.Background(), cache, "u1")
	if err != nil {
		t.Fatalf("CachedProfile: %v", err)
	}
	if profile != "" {
		t.Fatalf("expected empty profile on miss, got %q", profile)
	}
}

func TestResolveUserHitSkipsDirectory(t *testing.T) {
	cache := newFakeCache()
	dir := &fakeUserSource{}
	ctx := context.Background()

	if err := CacheProfile(ctx, cache, "u1", ProfileTrayHistory); err != nil {
		t.Fatalf("CacheProfile: %v", err)
	}

	user, err := ResolveUser(ctx, cache, dir, "u1", "u1@viacampo.dev")
	if err != nil {
		t.Fatalf("ResolveUser: %v", err)
	}
	if dir.lookups != 0 {
		t.Fatalf("expected no directory lookup on cache hit, got %d", dir.lookups)
	}
	if !user.Active {
		t.Fatal("cache hit must stand for an active user")
	}
	if got := ToProfile(user.Permissions); got != ProfileTrayHistory {
		t.Fatalf("resolved profile = %q, want %q", got, ProfileTrayHistory)
	}
	if user.Email != "u1@viacampo.dev" {
		t.Fatalf("resolved email = %q", user.Email)
	}
}

func TestResolveUserMissFallsBackAndCaches(t *testing.T) {
	cache := newFakeCache()
	dir := &fakeUserSource{user: &models.AppUser{
		UID:         "u2",
		Email:       "u2@viacampo.dev",
		Active:      true,
		Permissions: []string{models.PermAdmin, models.PermAll},
	}}
	ctx := context.Background()

	user, err := ResolveUser(ctx, cache, dir, "u2", "u2@viacampo.dev")
	if err != nil {
		t.Fatalf("ResolveUser: %v", err)
	}
	if dir.lookups != 1 {
		t.Fatalf("expected one directory lookup, got %d", dir.lookups)
	}
	if !user.Has(models.PermAdmin) {
		t.Fatal("directory row lost its permissions")
	}

	cached, err := CachedProfile(ctx, cache, "u2")
	if err != nil {
		t.Fatalf("CachedProfile: %v", err)
	}
	if cached != ProfileAdmin {
		t.Fatalf("cached profile = %q, want %q", cached, ProfileAdmin)
	}

	// The populated cache now answers without the directory.
	if _, err := ResolveUser(ctx, cache, dir, "u2", "u2@viacampo.dev"); err != nil {
		t.Fatalf("ResolveUser second call: %v", err)
	}
	if dir.lookups != 1 {
		t.Fatalf("expected cached second resolve, lookups = %d", dir.lookups)
	}
}

func TestResolveUserDoesNotCacheInactive(t *testing.T) {
	cache := newFakeCache()
	dir := &fakeUserSource{user: &models.AppUser{
		UID:         "u3",
		Active:      false,
		Permissions: []string{models.PermTray},
	}}
	ctx := context.Background()

	user, err := ResolveUser(ctx, cache, dir, "u3", "u3@viacampo.dev")
	if err != nil {
		t.Fatalf("ResolveUser: %v", err)
	}
	if user.Active {
		t.Fatal("inactive row reported active")
	}
	if cache.sets != 0 {
		t.Fatalf("inactive user must not be cached, sets = %d", cache.sets)
	}
}

func TestResolveUserPropagatesLookupError(t *testing.T) {
	cache := newFakeCache()
	storeErr := errors.New("firestore unavailable")
	dir := &fakeUserSource{err: storeErr}

	_, err := ResolveUser(context.Background(), cache, dir, "u4", "")
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected the store error back, got %v", err)
	}
}

func TestResolveUserCacheErrorFallsThrough(t *testing.T) {
	cache := newFakeCache()
	cache.getErr = errors.New("redis down")
	dir := &fakeUserSource{user: &models.AppUser{UID: "u5", Active: true, Permissions: []string{models.PermTray}}}

	user, err := ResolveUser(context.Background(), cache, dir, "u5", "")
	if err != nil {
		t.Fatalf("ResolveUser: %v", err)
	}
	if dir.lookups != 1 {
		t.Fatalf("expected directory fallback on cache error, lookups = %d", dir.lookups)
	}
	if user.UID != "u5" {
		t.Fatalf("resolved uid = %q", user.UID)
	}
}

func TestDropProfileForgetsEntry(t *testing.T) {
	cache := newFakeCache()
	ctx := context.Background()

	if err := CacheProfile(ctx, cache, "u6", ProfileAll); err != nil {
		t.Fatalf("CacheProfile: %v", err)
	}
	if err := DropProfile(ctx, cache, "u6"); err != nil {
		t.Fatalf("DropProfile: %v", err)
	}
	profile, err := CachedProfile(ctx, cache, "u6")
	if err != nil {
		t.Fatalf("CachedProfile: %v", err)
	}
	if profile != "" {
		t.Fatalf("dropped entry still cached as %q", profile)
	}
}
