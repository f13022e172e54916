package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/trailhuf/experiences-api/internal/domain"
	pkgredis "github.com/trailhuf/experiences-api/pkg/redis"
	"go.uber.org/zap"
)

const (
	experienceCachePrefix  = "experience:"
	experienceListCacheKey = "experiences:all"
)

// CachedExperienceRepository is a read-through cache in front of another
// ExperienceRepository. Writes go straight to the inner repository and
// invalidate the affected keys.
type CachedExperienceRepository struct {
	inner ExperienceRepository
	cache *pkgredis.Client
	ttl   time.Duration
	log   *zap.Logger
}

// NewCachedExperienceRepository wraps an ExperienceRepository with Redis caching
func NewCachedExperienceRepository(inner ExperienceRepository, cache *pkgredis.Client, ttl time.Duration, log *zap.Logger) *CachedExperienceRepository {
	if ttl == 0 {
		ttl = 5 * time.Minute
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &CachedExperienceRepository{inner: inner, cache: cache, ttl: ttl, log: log}
}

// List retrieves experiences. Unfiltered lists are cached; search queries
// always hit the inner repository.
func (r *CachedExperienceRepository) List(ctx context.Context, search string) ([]*domain.Experience, error) {
	if search != "" {
		return r.inner.List(ctx, search)
	}

	cached, err := r.cache.Get(ctx, experienceListCacheKey).Result()
	if err == nil {
		var experiences []*domain.Experience
		if err := json.Unmarshal([]byte(cached), &experiences); err == nil {
			return experiences, nil
		}
		// Corrupt entry, drop it
		r.cache.Del(ctx, experienceListCacheKey)
	} else if !errors.Is(err, redis.Nil) {
		r.log.Warn("experience list cache read failed", zap.Error(err))
	}

	experiences, err := r.inner.List(ctx, search)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(experiences); err == nil {
		if err := r.cache.Set(ctx, experienceListCacheKey, data, r.ttl).Err(); err != nil {
			r.log.Warn("experience list cache write failed", zap.Error(err))
		}
	}
	return experiences, nil
}

// GetByID retrieves an experience by ID through the cache
func (r *CachedExperienceRepository) GetByID(ctx context.Context, id string) (*domain.Experience, error) {
	key := experienceCachePrefix + id

	cached, err := r.cache.Get(ctx, key).Result()
	if err == nil {
		exp := &domain.Experience{}
		if err := json.Unmarshal([]byte(cached), exp); err == nil {
			return exp, nil
		}
		r.cache.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		r.log.Warn("experience cache read failed", zap.String("id", id), zap.Error(err))
	}

	exp, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(exp); err == nil {
		if err := r.cache.Set(ctx, key, data, r.ttl).Err(); err != nil {
			r.log.Warn("experience cache write failed", zap.String("id", id), zap.Error(err))
		}
	}
	return exp, nil
}

// ReplaceAll replaces the catalog and flushes all cached entries
func (r *CachedExperienceRepository) ReplaceAll(ctx context.Context, experiences []*domain.Experience) error {
	if err := r.inner.ReplaceAll(ctx, experiences); err != nil {
		return err
	}
	keys := make([]string, 0, len(experiences)+1)
	keys = append(keys, experienceListCacheKey)
	for _, exp := range experiences {
		keys = append(keys, experienceCachePrefix+exp.ID)
	}
	if err := r.cache.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate experience cache: %w", err)
	}
	return nil
}

// ReserveSlot reserves capacity and invalidates the stale cache entries
func (r *CachedExperienceRepository) ReserveSlot(ctx context.Context, experienceID, timeLabel string, quantity int) error {
	if err := r.inner.ReserveSlot(ctx, experienceID, timeLabel, quantity); err != nil {
		return err
	}
	r.invalidate(ctx, experienceID)
	return nil
}

// ReleaseSlot releases capacity and invalidates the stale cache entries
func (r *CachedExperienceRepository) ReleaseSlot(ctx context.Context, experienceID, timeLabel string, quantity int) error {
	if err := r.inner.ReleaseSlot(ctx, experienceID, timeLabel, quantity); err != nil {
		return err
	}
	r.invalidate(ctx, experienceID)
	return nil
}

func (r *CachedExperienceRepository) invalidate(ctx context.Context, experienceID string) {
	if err := r.cache.Del(ctx, experienceCachePrefix+experienceID, experienceListCacheKey).Err(); err != nil {
		r.log.Warn("experience cache invalidation failed",
			zap.String("id", experienceID), zap.Error(err))
	}
}
