package cache

import (
	"context"
	"encoding/json"
	"time"

	dom "github.com/zayndotdev/real-estate/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyUser = "user:"

// UserCache caches the public view of users in Redis, keyed by id. It backs
// the auth middleware's per-request account lookup. Only the public view is
// stored, never the password hash.
type UserCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewUserCache returns a new UserCache.
func NewUserCache(rdb *redis.Client, ttl time.Duration) *UserCache {
	return &UserCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached user or nil on miss.
func (c *UserCache) Get(ctx context.Context, id string) (*dom.PublicUser, error) {
	b, err := c.rdb.Get(ctx, keyUser+id).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var u dom.PublicUser
	if err := json.Unmarshal(b, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Set stores the user's public view.
func (c *UserCache) Set(ctx context.Context, u dom.PublicUser) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyUser+u.ID, b, c.ttl).Err()
}

// Invalidate removes the cached user (cache invalidation on write).
func (c *UserCache) Invalidate(ctx context.Context, id string) error {
	return c.rdb.Del(ctx, keyUser+id).Err()
}
