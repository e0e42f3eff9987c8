package repository

import (
	"context"
	"time"
)

// ICatalogCache stores JSON-encodable catalog snapshots under string keys.
type ICatalogCache interface {
	// Get decodes the cached value into dest. found is false on a miss.
	Get(ctx context.Context, key string, dest interface{}) (found bool, err error)
	// Set stores value with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	// Enabled reports whether a backing store is connected.
	Enabled() bool
}
