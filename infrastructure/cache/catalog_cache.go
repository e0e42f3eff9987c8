package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"reporting-service/domain/repository"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "reporting:catalog:"

// CatalogCache is a Redis-backed repository.ICatalogCache. With a nil client
// every operation is a no-op miss.
type CatalogCache struct {
	rdb *redis.Client
}

func NewCatalogCache(rdb *redis.Client) repository.ICatalogCache {
	return &CatalogCache{rdb: rdb}
}

func (c *CatalogCache) Enabled() bool {
	return c.rdb != nil
}

func (c *CatalogCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if c.rdb == nil {
		return false, nil
	}
	data, err := c.rdb.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *CatalogCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyPrefix+key, b, ttl).Err()
}
