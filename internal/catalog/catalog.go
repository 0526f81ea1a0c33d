// Package catalog holds the ordered movie table and resolves free-text titles against it.
package catalog

import (
	"fmt"
	"strings"

	"moviechain/internal/common/errors"
	"moviechain/internal/models"
)

// Catalog is an immutable, ordered list of movies. Scan order is the order the
// movies were supplied in.
type Catalog struct {
	movies []models.Movie
	// lowered and normalized titles, index-aligned with movies
	titles     []string
	normTitles []string
}

// New validates movies and builds a catalog. Missing keys are derived from
// titles, missing years become "????" and missing posters the default poster.
func New(movies []models.Movie) (*Catalog, error) {
	if len(movies) == 0 {
		return nil, errors.NewCatalogInvalidError("catalog is empty")
	}

	c := &Catalog{
		movies: make([]models.Movie, 0, len(movies)),
		titles:     make([]string, 0, len(movies)),
		normTitles: make([]string, 0, len(movies)),
	}
	seenIDs := make(map[int]string, len(movies))
	seenKeys := make(map[string]struct{}, len(movies))

	for i, m := range movies {
		m.Title = strings.TrimSpace(m.Title)
		if m.Title == "" {
			return nil, errors.NewCatalogInvalidError(fmt.Sprintf("entry %d: title is empty", i))
		}
		if m.Key == "" {
			m.Key = deriveKey(m.Title)
		}
		if m.Key == "" {
			return nil, errors.NewCatalogInvalidError(fmt.Sprintf("entry %d (%s): key is empty", i, m.Title))
		}
		if _, dup := seenKeys[m.Key]; dup {
			return nil, errors.NewCatalogInvalidError(fmt.Sprintf("entry %d: duplicate key %q", i, m.Key))
		}
		if other, dup := seenIDs[m.ID]; dup {
			return nil, errors.NewCatalogInvalidError(
				fmt.Sprintf("entry %d (%s): id %d already used by %s", i, m.Title, m.ID, other))
		}
		if m.Year == "" {
			m.Year = models.UnknownYear
		}
		if m.PosterURL == "" {
			m.PosterURL = models.DefaultPosterURL
		}
		m.GenreIDs = append([]int{}, m.GenreIDs...)

		seenKeys[m.Key] = struct{}{}
		seenIDs[m.ID] = m.Title
		c.movies = append(c.movies, m)
		c.titles = append(c.titles, strings.ToLower(m.Title))
		c.normTitles = append(c.normTitles, Normalize(m.Title))
	}
	return c, nil
}

// Default returns the built-in demo catalog.
func Default() *Catalog {
	c, err := New(defaultMovies())
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return c
}

// Movies returns the catalog entries in scan order. The slice is a copy; the
// genre slices are shared and must not be modified.
func (c *Catalog) Movies() []models.Movie {
	out := make([]models.Movie, len(c.movies))
	copy(out, c.movies)
	return out
}

func (c *Catalog) Len() int {
	return len(c.movies)
}

// Match returns the first entry whose key, lower-cased title or normalized
// title is a substring of the already normalized input. The normalized form
// lets titles with punctuation ("Spider-Man: Homecoming") match themselves.
func (c *Catalog) Match(normalized string) (models.Movie, bool) {
	if normalized == "" {
		return models.Movie{}, false
	}
	for i, m := range c.movies {
		if strings.Contains(normalized, m.Key) || strings.Contains(normalized, c.titles[i]) {
			return m, true
		}
		if nt := c.normTitles[i]; nt != "" && strings.Contains(normalized, nt) {
			return m, true
		}
	}
	return models.Movie{}, false
}
