package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"moviechain/internal/common/logger"
	"moviechain/internal/models"
)

// RedisCache shares lookup results between service instances. Backend errors
// degrade to cache misses.
type RedisCache struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
	logger logger.Logger
}

// NewRedisCache builds a cache over client. A zero ttl keeps entries until evicted by Redis.
func NewRedisCache(client redis.Cmdable, prefix string, ttl time.Duration, log logger.Logger) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "redis-lookup-cache"}),
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) (models.Movie, bool) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("lookup cache read failed", map[string]interface{}{"error": err, "key": key})
		}
		return models.Movie{}, false
	}

	var m models.Movie
	if err := json.Unmarshal(data, &m); err != nil {
		c.logger.Warn("lookup cache entry is corrupt", map[string]interface{}{"error": err, "key": key})
		return models.Movie{}, false
	}
	return m, true
}

func (c *RedisCache) Set(ctx context.Context, key string, movie models.Movie) {
	data, err := json.Marshal(movie)
	if err != nil {
		c.logger.Warn("lookup cache encode failed", map[string]interface{}{"error": err, "key": key})
		return
	}
	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("lookup cache write failed", map[string]interface{}{"error": err, "key": key})
	}
}

// Ping reports whether the backend is reachable.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
