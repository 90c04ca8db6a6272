package service

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/faculdade-api/pkg/errors"
)

// cacheNamespace prefixes every key this API writes to Redis.
const cacheNamespace = "faculdade"

// CacheRepository abstracts persistence for cached read models.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// CacheService caches aggregate read models. A nil or disabled service is a no-op,
// so callers never need to check whether caching is configured.
//
// generation advances on every Invalidate. A value loaded under an older
// generation is never left in the cache. The counter is per process, so
// with several replicas a read on one can still race a write on another.
type CacheService struct {
	repo       CacheRepository
	metrics    *MetricsService
	ttl        time.Duration
	logger     *zap.Logger
	enabled    bool
	generation atomic.Uint64
}

// NewCacheService constructs a cache service.
func NewCacheService(repo CacheRepository, metrics *MetricsService, ttl time.Duration, logger *zap.Logger, enabled bool) *CacheService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{repo: repo, metrics: metrics, ttl: ttl, logger: logger, enabled: enabled}
}

// Enabled indicates whether caching is active.
func (s *CacheService) Enabled() bool {
	return s != nil && s.enabled && s.repo != nil
}

// Invalidate drops every cached read model. Failures are logged, never returned,
// because a write has already been committed when this runs.
func (s *CacheService) Invalidate(ctx context.Context) {
	if !s.Enabled() {
		return
	}
	s.generation.Add(1)
	pattern := cacheNamespace + ":*"
	if err := s.repo.DeleteByPattern(ctx, pattern); err != nil {
		s.logger.Warn("cache invalidate failed", zap.String("pattern", pattern), zap.Error(err))
	}
}

func (s *CacheService) get(ctx context.Context, key string, dest interface{}) bool {
	if !s.Enabled() {
		return false
	}
	start := time.Now()
	err := s.repo.Get(ctx, key, dest)
	s.metrics.RecordCacheOperation(err == nil, time.Since(start))
	if err != nil && !errors.Is(err, appErrors.ErrCacheMiss) {
		s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
	}
	return err == nil
}

func (s *CacheService) snapshot() uint64 {
	if !s.Enabled() {
		return 0
	}
	return s.generation.Load()
}

// set stores value only while generation still equals gen. If an Invalidate
// lands while the write is in flight the key is dropped again.
func (s *CacheService) set(ctx context.Context, key string, value interface{}, gen uint64) {
	if !s.Enabled() || s.generation.Load() != gen {
		return
	}
	start := time.Now()
	err := s.repo.Set(ctx, key, value, s.ttl)
	s.metrics.ObserveCacheWrite(time.Since(start))
	if err != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
		return
	}
	if s.generation.Load() != gen {
		if err := s.repo.DeleteByPattern(ctx, key); err != nil {
			s.logger.Warn("cache drop stale failed", zap.String("key", key), zap.Error(err))
		}
	}
}

// cacheKey joins parts under the API namespace, e.g. faculdade:curso:1:materias.
func cacheKey(parts ...string) string {
	return cacheNamespace + ":" + strings.Join(parts, ":")
}

// remember returns the cached value at key or computes it with load and stores it.
// Cache errors never fail the read.
func remember[T any](ctx context.Context, cache *CacheService, key string, load func(context.Context) (T, error)) (T, error) {
	var cached T
	if cache.get(ctx, key, &cached) {
		return cached, nil
	}
	gen := cache.snapshot()
	value, err := load(ctx)
	if err != nil {
		return value, err
	}
	cache.set(ctx, key, value, gen)
	return value, nil
}
