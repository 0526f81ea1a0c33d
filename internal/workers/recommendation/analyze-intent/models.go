// internal/workers/recommendation/analyze-intent/models.go
package analyzeintent

import "moviechain/internal/models"

type Input struct {
	Query string `json:"query"`
}

type Output struct {
	Intent models.QueryIntent `json:"intent"`
}
