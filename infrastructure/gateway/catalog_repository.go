package gateway

import (
	"context"
	"fmt"
	"time"

	"reporting-service/domain/dto"
	"reporting-service/domain/model"
	"reporting-service/domain/repository"
	"reporting-service/infrastructure/logger"
	"reporting-service/infrastructure/metrics"

	"github.com/google/go-querystring/query"
)

// CatalogRepository implements repository.ICatalog by forwarding to the API
// client and keeping successful results in CacheRepo for TTL.
type CatalogRepository struct {
	CacheRepo        repository.ICatalogCache
	CatalogAPIClient repository.ICatalog
	TTL              time.Duration
}

func NewCatalogRepository(client repository.ICatalog, cache repository.ICatalogCache, ttl time.Duration) repository.ICatalog {
	return &CatalogRepository{CacheRepo: cache, CatalogAPIClient: client, TTL: ttl}
}

func (r *CatalogRepository) FetchAllUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if r.lookup(ctx, "users", "users", &users) {
		return users, nil
	}
	users, err := r.CatalogAPIClient.FetchAllUsers(ctx)
	if err != nil {
		return nil, err
	}
	r.store(ctx, "users", users)
	return users, nil
}

func (r *CatalogRepository) FetchAllVideos(ctx context.Context, filter dto.VideoFilter) ([]model.Video, error) {
	key := "videos"
	if params, err := query.Values(filter); err == nil && len(params) > 0 {
		key += "?" + params.Encode()
	}

	var videos []model.Video
	if r.lookup(ctx, "videos", key, &videos) {
		return videos, nil
	}
	videos, err := r.CatalogAPIClient.FetchAllVideos(ctx, filter)
	if err != nil {
		return nil, err
	}
	r.store(ctx, key, videos)
	return videos, nil
}

func (r *CatalogRepository) FetchUser(ctx context.Context, userID int) (*model.User, error) {
	key := fmt.Sprintf("user:%d", userID)

	var user model.User
	if r.lookup(ctx, "user", key, &user) {
		return &user, nil
	}
	found, err := r.CatalogAPIClient.FetchUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, fmt.Errorf("fetch user %d: %w", userID, repository.ErrNotFound)
	}
	r.store(ctx, key, found)
	return found, nil
}

func (r *CatalogRepository) cacheable() bool {
	return r.CacheRepo != nil && r.CacheRepo.Enabled() && r.TTL > 0
}

// lookup reports a cache hit. Cache errors count as misses.
func (r *CatalogRepository) lookup(ctx context.Context, endpoint, key string, dest interface{}) bool {
	if !r.cacheable() {
		return false
	}
	found, err := r.CacheRepo.Get(ctx, key, dest)
	if err != nil {
		logger.GetLogger().WithField("key", key).WithField("error", err).Warn("Catalog cache read failed")
	}
	if err != nil || !found {
		metrics.CacheMisses.WithLabelValues(endpoint).Inc()
		return false
	}
	metrics.CacheHits.WithLabelValues(endpoint).Inc()
	return true
}

func (r *CatalogRepository) store(ctx context.Context, key string, value interface{}) {
	if !r.cacheable() {
		return
	}
	if err := r.CacheRepo.Set(ctx, key, value, r.TTL); err != nil {
		logger.GetLogger().WithField("key", key).WithField("error", err).Warn("Catalog cache write failed")
	}
}
