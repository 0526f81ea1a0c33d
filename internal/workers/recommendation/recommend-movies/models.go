// internal/workers/recommendation/recommend-movies/models.go
package recommendmovies

import "moviechain/internal/models"

// Input is the job payload: the raw request body as sent by the client.
type Input struct {
	Request map[string]interface{} `json:"request"`
}

// Request is a coerced request body with every default applied.
type Request struct {
	Mood           string
	Genres         []int
	MinRating      float64
	MaxRating      float64
	Count          int
	YearFrom       string
	YearTo         string
	Director       string
	Actors         string
	LikedTitles    []string
	RequireRomance bool
}

type Output struct {
	Recommendations []models.Recommendation `json:"recommendations"`
	Analysis        models.QueryIntent      `json:"analysis"`
	ProcessingTime  float64                 `json:"processing_time"`
	RequestedCount  int                     `json:"requested_count"`
	ActualCount     int                     `json:"actual_count"`
	GenreConflict   bool                    `json:"genre_conflict"`
	Note            string                  `json:"note"`
}
