package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kudoshq/recognition-bff/services"
)

// DefaultCacheTTL bounds staleness for entries whose tag never gets bumped.
const DefaultCacheTTL = 5 * time.Minute

// CacheManager is a versioned-tag cache on Redis: every entry key embeds
// its tag's current version, so bumping the version orphans the whole tag
// at once and the stale entries age out via TTL. Cache failures are never
// fatal: reads fall through to upstream, writes are fire-and-forget.
type CacheManager struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger

	// Repeat version bumps are coalesced per tag: the first bump of a burst
	// lands immediately so a post-mutation refetch never sees stale data,
	// and the rest of the burst (rapid admin edits) collapses into one
	// trailing bump.
	debouncers map[string]*services.Debouncer
}

// NewCacheManager creates a CacheManager over an established Redis client.
func NewCacheManager(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *CacheManager {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	tags := []string{services.TagCatalog, services.TagRedemptions, services.TagBalance, services.TagCompliments}
	debouncers := make(map[string]*services.Debouncer, len(tags))
	for _, tag := range tags {
		debouncers[tag] = services.NewDebouncer(services.DefaultDebounceInterval)
	}
	return &CacheManager{redis: rdb, ttl: ttl, logger: logger, debouncers: debouncers}
}

// GetJSON reads a cached entry under the tag's current version. Returns
// false on miss or any Redis/decode failure.
func (cm *CacheManager) GetJSON(ctx context.Context, tag, key string, out interface{}) bool {
	version, err := cm.tagVersion(ctx, tag)
	if err != nil {
		return false
	}
	data, err := cm.redis.Get(ctx, cm.entryKey(tag, version, key)).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		cm.logger.Warn("Failed to unmarshal cached entry", zap.String("tag", tag), zap.Error(err))
		return false
	}
	return true
}

// SetJSON caches an entry asynchronously. The tag version is captured
// before the write is handed off: a bump landing while the write is in
// flight must orphan this entry, not let it surface under the new version.
func (cm *CacheManager) SetJSON(ctx context.Context, tag, key string, value interface{}) {
	version, err := cm.tagVersion(ctx, tag)
	if err != nil {
		return
	}
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		data, err := json.Marshal(value)
		if err != nil {
			cm.logger.Warn("Failed to marshal entry for cache", zap.String("tag", tag), zap.Error(err))
			return
		}
		if err := cm.redis.Set(bgCtx, cm.entryKey(tag, version, key), data, cm.ttl).Err(); err != nil {
			cm.logger.Warn("Failed to cache entry", zap.String("tag", tag), zap.Error(err))
		}
	}()
}

// InvalidateTags bumps each tag's version. The first bump of a burst runs
// before this returns, so a read issued after a mutation always misses the
// pre-mutation entries; only repeat bumps inside the window coalesce.
func (cm *CacheManager) InvalidateTags(ctx context.Context, tags ...string) {
	for _, tag := range tags {
		deb, ok := cm.debouncers[tag]
		if !ok {
			cm.bump(tag)
			continue
		}
		tag := tag
		deb.Trigger(func() { cm.bump(tag) })
	}
}

func (cm *CacheManager) bump(tag string) {
	bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	newVersion, err := cm.redis.Incr(bgCtx, cm.versionKey(tag)).Result()
	if err != nil {
		cm.logger.Error("Failed to bump cache tag version", zap.String("tag", tag), zap.Error(err))
		return
	}
	cm.logger.Info("Cache tag invalidated", zap.String("tag", tag), zap.Int64("version", newVersion))
}

func (cm *CacheManager) tagVersion(ctx context.Context, tag string) (int64, error) {
	ver, err := cm.redis.Get(ctx, cm.versionKey(tag)).Int64()
	if err == redis.Nil {
		if err := cm.redis.Set(ctx, cm.versionKey(tag), 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return ver, nil
}

func (cm *CacheManager) versionKey(tag string) string {
	return "bff:cache:version:" + tag
}

func (cm *CacheManager) entryKey(tag string, version int64, key string) string {
	return fmt.Sprintf("bff:cache:%s:v%d:%s", tag, version, key)
}
