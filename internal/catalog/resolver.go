package catalog

import (
	"context"
	"math/rand/v2"
	"strings"

	"moviechain/internal/common/errors"
	"moviechain/internal/common/metrics"
	"moviechain/internal/models"
)

// Placeholder identifiers are drawn from this inclusive range.
const (
	PlaceholderIDMin = 1000
	PlaceholderIDMax = 9999
)

// Lookup resolves a free-text title to a catalog movie or a placeholder.
type Lookup interface {
	Lookup(ctx context.Context, title, year string) (models.Movie, error)
}

// IDGenerator hands out identifiers for placeholder movies.
type IDGenerator interface {
	NextID() int
}

// IDGeneratorFunc adapts a function to IDGenerator.
type IDGeneratorFunc func() int

func (f IDGeneratorFunc) NextID() int { return f() }

// RandomIDGenerator draws uniformly from [PlaceholderIDMin, PlaceholderIDMax].
type RandomIDGenerator struct{}

func (RandomIDGenerator) NextID() int {
	return PlaceholderIDMin + rand.IntN(PlaceholderIDMax-PlaceholderIDMin+1)
}

// Resolver is the memoized Lookup over a Catalog. Results, placeholders
// included, are cached per lower-cased title and year, so an unresolved title
// keeps its identifier for the lifetime of the cache entry.
type Resolver struct {
	catalog *Catalog
	cache   Cache
	ids     IDGenerator
}

// NewResolver wires a resolver. Nil cache and ids default to an unbounded
// MemoryCache and RandomIDGenerator.
func NewResolver(c *Catalog, cache Cache, ids IDGenerator) *Resolver {
	if cache == nil {
		cache = NewMemoryCache(0)
	}
	if ids == nil {
		ids = RandomIDGenerator{}
	}
	return &Resolver{catalog: c, cache: cache, ids: ids}
}

func cacheKey(title, year string) string {
	return strings.ToLower(title) + "\x1f" + year
}

func (r *Resolver) Lookup(ctx context.Context, title, year string) (models.Movie, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Movie{}, errors.NewEmptyTitleError()
	}
	if err := ctx.Err(); err != nil {
		return models.Movie{}, errors.NewRequestCancelledError("catalog lookup", err)
	}

	key := cacheKey(title, year)
	if m, ok := r.cache.Get(ctx, key); ok {
		metrics.CatalogLookups.WithLabelValues(metrics.LookupCacheHit).Inc()
		return m, nil
	}

	m, found := r.catalog.Match(Normalize(title))
	if found {
		metrics.CatalogLookups.WithLabelValues(metrics.LookupCatalog).Inc()
	} else {
		m = r.placeholder(title, year)
		metrics.CatalogLookups.WithLabelValues(metrics.LookupPlaceholder).Inc()
	}

	r.cache.Set(ctx, key, m)
	return m, nil
}

func (r *Resolver) placeholder(title, year string) models.Movie {
	if year == "" {
		year = models.UnknownYear
	}
	return models.Movie{
		Title:     titleCase(title),
		Year:      year,
		ID:        r.ids.NextID(),
		GenreIDs:  []int{},
		PosterURL: models.DefaultPosterURL,
	}
}
