package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviechain/internal/common/logger"
	"moviechain/internal/models"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

var sampleMovie = models.Movie{
	Title:     "Placeholder",
	Year:      "????",
	ID:        4321,
	GenreIDs:  []int{},
	PosterURL: models.DefaultPosterURL,
}

// ==========================
// MemoryCache
// ==========================

func TestMemoryCache_Unbounded(t *testing.T) {
	c := NewMemoryCache(0)
	ctx := context.Background()

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)

	c.Set(ctx, "k", sampleMovie)
	m, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, sampleMovie, m)
	assert.Equal(t, 1, c.Len())
}

func TestMemoryCache_BoundedEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewMemoryCache(2)
	ctx := context.Background()

	c.Set(ctx, "a", models.Movie{ID: 1})
	c.Set(ctx, "b", models.Movie{ID: 2})
	_, _ = c.Get(ctx, "a")
	c.Set(ctx, "c", models.Movie{ID: 3})

	_, okA := c.Get(ctx, "a")
	_, okB := c.Get(ctx, "b")
	_, okC := c.Get(ctx, "c")
	assert.True(t, okA)
	assert.False(t, okB)
	assert.True(t, okC)
	assert.Equal(t, 2, c.Len())
}

// ==========================
// RedisCache
// ==========================

func TestRedisCache_RoundTrip(t *testing.T) {
	mr, client := setupRedis(t)
	c := NewRedisCache(client, "test:", time.Minute, logger.NewNoOpLogger())
	ctx := context.Background()

	_, ok := c.Get(ctx, "the matrix\x1f")
	assert.False(t, ok)

	c.Set(ctx, "the matrix\x1f", sampleMovie)
	assert.True(t, mr.Exists("test:the matrix\x1f"))
	assert.Equal(t, time.Minute, mr.TTL("test:the matrix\x1f"))

	m, ok := c.Get(ctx, "the matrix\x1f")
	require.True(t, ok)
	assert.Equal(t, sampleMovie, m)
	assert.NoError(t, c.Ping(ctx))
}

func TestRedisCache_CorruptEntryIsMiss(t *testing.T) {
	mr, client := setupRedis(t)
	c := NewRedisCache(client, "test:", 0, logger.NewNoOpLogger())

	require.NoError(t, mr.Set("test:broken", "{not json"))
	_, ok := c.Get(context.Background(), "broken")
	assert.False(t, ok)
}

func TestRedisCache_ReadErrorIsMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewRedisCache(client, "test:", time.Minute, logger.NewNoOpLogger())

	mock.ExpectGet("test:k").SetErr(errors.New("connection refused"))
	_, ok := c.Get(context.Background(), "k")
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_WriteErrorIsIgnored(t *testing.T) {
	mr, client := setupRedis(t)
	c := NewRedisCache(client, "test:", time.Minute, logger.NewNoOpLogger())
	mr.Close()

	ctx := context.Background()
	assert.NotPanics(t, func() { c.Set(ctx, "k", sampleMovie) })
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
	assert.Error(t, c.Ping(ctx))
}

func TestResolver_SharesPlaceholdersThroughRedis(t *testing.T) {
	_, client := setupRedis(t)
	cache := NewRedisCache(client, "shared:", 0, logger.NewNoOpLogger())

	first := NewResolver(Default(), cache, sequenceIDs(2000))
	second := NewResolver(Default(), cache, sequenceIDs(3000))
	ctx := context.Background()

	a, err := first.Lookup(ctx, "Solaris", "1972")
	require.NoError(t, err)
	b, err := second.Lookup(ctx, "Solaris", "1972")
	require.NoError(t, err)

	assert.Equal(t, 2000, a.ID)
	assert.Equal(t, a, b)
}
