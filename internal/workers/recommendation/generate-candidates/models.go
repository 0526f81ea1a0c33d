// internal/workers/recommendation/generate-candidates/models.go
package generatecandidates

import "moviechain/internal/models"

type Input struct {
	Query       string   `json:"query"`
	Count       int      `json:"count"`
	Genres      []int    `json:"genres"`
	LikedTitles []string `json:"likedTitles"`
}

type Output struct {
	Candidates []models.Candidate `json:"candidates"`
}
