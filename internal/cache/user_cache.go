package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"kontak/internal/models"

	"github.com/redis/go-redis/v9"
)

// DefaultUserTTL is how long a cached user record lives. Entries are never
// invalidated on user mutation; callers accept staleness up to this TTL.
const DefaultUserTTL = 600 * time.Second

// UserCache is a Redis-backed, read-through cache of user records keyed by
// username. The database stays the source of truth; the cache only avoids
// repeated lookups on authenticated requests.
type UserCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewUserCache creates a new UserCache. A ttl of 0 selects DefaultUserTTL.
func NewUserCache(rdb *redis.Client, ttl time.Duration) *UserCache {
	if ttl <= 0 {
		ttl = DefaultUserTTL
	}
	return &UserCache{
		rdb: rdb,
		ttl: ttl,
	}
}

func userKey(username string) string {
	return "username:" + username
}

// Get returns the cached user for the username, if present and unexpired.
// Backend errors are logged and reported as a miss so that callers fall
// through to the database.
func (c *UserCache) Get(ctx context.Context, username string) (*models.User, bool) {
	data, err := c.rdb.Get(ctx, userKey(username)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("User cache get failed for %s, falling through to store: %v", username, err)
		return nil, false
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		log.Printf("Failed to decode cached user %s: %v", username, err)
		return nil, false
	}
	return &user, true
}

// Set stores a serialized copy of the user with the configured TTL.
// Failures are logged and ignored; caching is best effort.
func (c *UserCache) Set(ctx context.Context, user *models.User) {
	data, err := json.Marshal(user)
	if err != nil {
		log.Printf("Failed to encode user %s for cache: %v", user.Username, err)
		return
	}
	if err := c.rdb.Set(ctx, userKey(user.Username), data, c.ttl).Err(); err != nil {
		log.Printf("User cache set failed for %s: %v", user.Username, err)
	}
}
