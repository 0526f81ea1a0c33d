// internal/models/movie.go
package models

// DefaultPosterURL is used for movies without a poster of their own.
const DefaultPosterURL = "https://via.placeholder.com/300x450/95a5a6/ffffff?text=Movie+Poster"

// UnknownYear marks a movie whose release year is not known.
const UnknownYear = "????"

// Movie is a single catalog record.
type Movie struct {
	Key         string  `json:"key"`
	Title       string  `json:"title"`
	Year        string  `json:"year"`
	ID          int     `json:"id"`
	GenreIDs    []int   `json:"genre_ids"`
	Overview    string  `json:"overview"`
	VoteAverage float64 `json:"vote_average"`
	PosterURL   string  `json:"poster_url"`
}

// HasAnyGenre reports whether the movie carries at least one of ids.
func (m Movie) HasAnyGenre(ids []int) bool {
	for _, want := range ids {
		for _, g := range m.GenreIDs {
			if g == want {
				return true
			}
		}
	}
	return false
}

// HasAllGenres reports whether every id in ids is one of the movie's genres.
func (m Movie) HasAllGenres(ids []int) bool {
	for _, want := range ids {
		found := false
		for _, g := range m.GenreIDs {
			if g == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
