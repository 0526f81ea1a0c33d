// internal/models/intent.go
package models

type IntentType string

const (
	IntentAbstract     IntentType = "abstract"
	IntentTitle        IntentType = "title"
	IntentDescription  IntentType = "description"
	IntentCriteriaOnly IntentType = "criteria_only"
)

// QueryIntent is the heuristic reading of a free-text mood query.
type QueryIntent struct {
	IntentType           IntentType `json:"intent_type"`
	HistoricalPeriod     *string    `json:"historical_period"`
	HistoricalConfidence float64    `json:"historical_confidence"`
	HistoricalFigure     *string    `json:"historical_figure"`
	FigureConfidence     float64    `json:"figure_confidence"`
	DetectedGenres       []int      `json:"detected_genres"`
	MoodKeywords         []string   `json:"mood_keywords"`
	RequestedCount       *int       `json:"requested_count"`
	BlockedTitles        []string   `json:"blocked_titles"`
	YearFrom             *string    `json:"year_from"`
	YearTo               *string    `json:"year_to"`
	HasYearMention       bool       `json:"has_year_mention"`
	IsHistoricalQuery    bool       `json:"is_historical_query"`
}

// NewQueryIntent returns an intent of the given type with empty, non-nil lists.
func NewQueryIntent(t IntentType) QueryIntent {
	return QueryIntent{
		IntentType:     t,
		DetectedGenres: []int{},
		MoodKeywords:   []string{},
		BlockedTitles:  []string{},
	}
}
