package cache_test

import (
	"context"
	"testing"
	"time"

	"kontak/internal/cache"
	"kontak/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newCache(t *testing.T, ttl time.Duration) (*miniredis.Miniredis, *cache.UserCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, cache.NewUserCache(rdb, ttl)
}

func TestUserCache_SetAndGet(t *testing.T) {
	_, c := newCache(t, 0)

	user := &models.User{
		ID:        "user-123",
		Username:  "testuser",
		Email:     "test@example.com",
		Password:  "$2a$10$somethinghashed",
		Confirmed: true,
		Role:      models.RoleModerator,
	}

	_, found := c.Get(context.Background(), "testuser")
	assert.False(t, found)

	c.Set(context.Background(), user)

	cached, found := c.Get(context.Background(), "testuser")
	assert.True(t, found)
	assert.Equal(t, user.ID, cached.ID)
	assert.Equal(t, user.Email, cached.Email)
	assert.Equal(t, user.Role, cached.Role)
	assert.True(t, cached.Confirmed)
}

func TestUserCache_EntryExpires(t *testing.T) {
	mr, c := newCache(t, 0)

	c.Set(context.Background(), &models.User{ID: "user-123", Username: "testuser"})

	// Still cached just before the TTL.
	mr.FastForward(cache.DefaultUserTTL - time.Second)
	_, found := c.Get(context.Background(), "testuser")
	assert.True(t, found)

	// Gone after it.
	mr.FastForward(2 * time.Second)
	_, found = c.Get(context.Background(), "testuser")
	assert.False(t, found)
}

func TestUserCache_BackendErrorIsAMiss(t *testing.T) {
	mr, c := newCache(t, 0)
	mr.Close()

	// An unreachable backend must look exactly like a miss, not an error.
	_, found := c.Get(context.Background(), "testuser")
	assert.False(t, found)

	// And writes must not panic or propagate failures.
	c.Set(context.Background(), &models.User{ID: "user-123", Username: "testuser"})
}

func TestUserCache_CorruptEntryIsAMiss(t *testing.T) {
	mr, c := newCache(t, 0)
	mr.Set("username:testuser", "not json")

	_, found := c.Get(context.Background(), "testuser")
	assert.False(t, found)
}
