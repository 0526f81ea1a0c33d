// internal/models/recommendation.go
package models

// Candidate is an unresolved suggestion produced by candidate generation.
type Candidate struct {
	Title  string `json:"title"`
	Year   string `json:"year"`
	Reason string `json:"reason"`
}

// Recommendation is a validated, catalog-resolved suggestion returned to clients.
type Recommendation struct {
	Title     string   `json:"title"`
	Year      string   `json:"year"`
	Reason    string   `json:"reason"`
	TMDBID    int      `json:"tmdb_id"`
	PosterURL string   `json:"poster_url"`
	Genres    []string `json:"genres"`
}

// LikedMovie is an entry of the caller's liked list.
type LikedMovie struct {
	Title string `json:"Title"`
}

// Bounds and default for the number of recommendations a caller may request.
const (
	MinRequestedCount     = 3
	MaxRequestedCount     = 15
	DefaultRequestedCount = 5
)

// ClampCount limits n to [MinRequestedCount, MaxRequestedCount].
func ClampCount(n int) int {
	if n < MinRequestedCount {
		return MinRequestedCount
	}
	if n > MaxRequestedCount {
		return MaxRequestedCount
	}
	return n
}
