// internal/workers/recommendation/validate-recommendations/models.go
package validaterecommendations

import "moviechain/internal/models"

type Input struct {
	Candidates  []models.Candidate `json:"candidates"`
	LikedTitles []string           `json:"likedTitles"`
	Genres      []int              `json:"genres"`
	// StrictGenres requires every requested genre instead of any of them.
	StrictGenres bool `json:"strictGenres"`
}

type Output struct {
	Recommendations []models.Recommendation `json:"recommendations"`
}
