package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/rbsgo/taskhub/repository"
)

type picklistCache struct {
	client *redislib.Client
	prefix string
	ttl    time.Duration
}

// NewPicklistCache creates a Redis-backed picklist cache. The TTL keeps
// reconciled lists fresh between explicit invalidations.
func NewPicklistCache(client *redislib.Client, ttl time.Duration) repository.PicklistCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &picklistCache{
		client: client,
		prefix: "picklist:",
		ttl:    ttl,
	}
}

func (c *picklistCache) Get(ctx context.Context, kind string) ([]string, bool, error) {
	result, err := c.client.Get(ctx, c.key(kind)).Result()
	if err != nil {
		if err == redislib.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}

	var values []string
	if err := json.Unmarshal([]byte(result), &values); err != nil {
		return nil, false, err
	}
	return values, true, nil
}

func (c *picklistCache) Set(ctx context.Context, kind string, values []string) error {
	payload, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(kind), payload, c.ttl).Err()
}

func (c *picklistCache) Invalidate(ctx context.Context, kinds ...string) error {
	if len(kinds) == 0 {
		return nil
	}
	keys := make([]string, len(kinds))
	for i, kind := range kinds {
		keys[i] = c.key(kind)
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *picklistCache) key(kind string) string {
	return fmt.Sprintf("%s%s", c.prefix, kind)
}
