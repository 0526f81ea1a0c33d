// internal/workers/recommendation/analyze-intent/handler_test.go
package analyzeintent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "moviechain/internal/common/errors"
	"moviechain/internal/common/logger"
	"moviechain/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{Timeout: 2 * time.Second}
}

type testLogger struct {
	t *testing.T
}

func (tl *testLogger) Debug(msg string, fields map[string]interface{}) {
	tl.t.Logf("DEBUG: %s %v", msg, fields)
}

func (tl *testLogger) Info(msg string, fields map[string]interface{}) {
	tl.t.Logf("INFO: %s %v", msg, fields)
}

func (tl *testLogger) Warn(msg string, fields map[string]interface{}) {
	tl.t.Logf("WARN: %s %v", msg, fields)
}

func (tl *testLogger) Error(msg string, fields map[string]interface{}) {
	tl.t.Logf("ERROR: %s %v", msg, fields)
}

func (tl *testLogger) WithFields(map[string]interface{}) logger.Logger { return tl }
func (tl *testLogger) WithError(error) logger.Logger                   { return tl }
func (tl *testLogger) With(map[string]interface{}) logger.Logger       { return tl }

func newTestHandler(t *testing.T) *Handler {
	return NewHandler(createTestConfig(), &testLogger{t: t})
}

func intPtr(n int) *int { return &n }

// ==========================
// Analyze
// ==========================

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		wantType       models.IntentType
		wantGenres     []int
		wantMoods      []string
		wantCount      *int
		wantHistorical bool
	}{
		{
			name:       "genre words without a request marker read as a title",
			query:      "комедия про космос",
			wantType:   models.IntentTitle,
			wantGenres: []int{35, 878},
			wantMoods:  []string{},
		},
		{
			name:       "request with count and genre",
			query:      "Посоветуй 7 фильмов про космос",
			wantType:   models.IntentDescription,
			wantGenres: []int{878},
			wantMoods:  []string{},
			wantCount:  intPtr(7),
		},
		{
			name:       "sad mood",
			query:      "грустный фильм на вечер",
			wantType:   models.IntentDescription,
			wantGenres: []int{},
			wantMoods:  []string{"грустный"},
		},
		{
			name:       "both fantasy markers add the genre once",
			query:      "фантастика про космос, посмотреть",
			wantType:   models.IntentDescription,
			wantGenres: []int{878},
			wantMoods:  []string{},
		},
		{
			name:           "historical query keeps abstract type",
			query:          "средневековый фильм",
			wantType:       models.IntentAbstract,
			wantGenres:     []int{},
			wantMoods:      []string{},
			wantHistorical: true,
		},
		{
			name:       "spelled-out five",
			query:      "пять фильмов",
			wantType:   models.IntentAbstract,
			wantGenres: []int{},
			wantMoods:  []string{},
			wantCount:  intPtr(5),
		},
		{
			name:       "uppercase input",
			query:      "ФАНТАСТИКА",
			wantType:   models.IntentTitle,
			wantGenres: []int{878},
			wantMoods:  []string{},
		},
		{
			name:       "plain title",
			query:      "Inception",
			wantType:   models.IntentTitle,
			wantGenres: []int{},
			wantMoods:  []string{},
		},
		{
			name:       "empty query",
			query:      "",
			wantType:   models.IntentAbstract,
			wantGenres: []int{},
			wantMoods:  []string{},
		},
		{
			name:       "request marker without signals",
			query:      "рекомендуй что-нибудь",
			wantType:   models.IntentAbstract,
			wantGenres: []int{},
			wantMoods:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := Analyze(tt.query)

			assert.Equal(t, tt.wantType, intent.IntentType)
			assert.Equal(t, tt.wantGenres, intent.DetectedGenres)
			assert.Equal(t, tt.wantMoods, intent.MoodKeywords)
			assert.Equal(t, tt.wantCount, intent.RequestedCount)
			assert.Equal(t, tt.wantHistorical, intent.IsHistoricalQuery)
			assert.Equal(t, []string{}, intent.BlockedTitles)
			assert.Nil(t, intent.HistoricalFigure)
			assert.Zero(t, intent.FigureConfidence)
			assert.False(t, intent.HasYearMention)

			if tt.wantHistorical {
				require.NotNil(t, intent.HistoricalPeriod)
				assert.Equal(t, "средневековье", *intent.HistoricalPeriod)
				assert.Equal(t, 0.6, intent.HistoricalConfidence)
			} else {
				assert.Nil(t, intent.HistoricalPeriod)
				assert.Zero(t, intent.HistoricalConfidence)
			}
		})
	}
}

func TestExtractRequestedCount(t *testing.T) {
	tests := []struct {
		query string
		want  *int
	}{
		{"хочу 1 фильм", intPtr(3)},
		{"хочу 3 фильма", intPtr(3)},
		{"10 фильмов", intPtr(10)},
		{"100 фильмов", intPtr(15)},
		{"99999999999999999999999 фильмов", intPtr(15)},
		{"7фильмов", nil},
		{"7 сериалов", nil},
		{"пять", intPtr(5)},
		{"12 фильмов, не пять", intPtr(12)},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := extractRequestedCount(tt.query)
			assert.Equal(t, tt.want, got)
			if got != nil {
				assert.GreaterOrEqual(t, *got, models.MinRequestedCount)
				assert.LessOrEqual(t, *got, models.MaxRequestedCount)
			}
		})
	}
}

// ==========================
// Execute
// ==========================

func TestExecute(t *testing.T) {
	h := newTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{Query: "хочу 4 фильма, комедия"})
	require.NoError(t, err)
	assert.Equal(t, models.IntentDescription, out.Intent.IntentType)
	assert.Equal(t, []int{35}, out.Intent.DetectedGenres)
	assert.Equal(t, intPtr(4), out.Intent.RequestedCount)
}

func TestExecute_NilInput(t *testing.T) {
	_, err := newTestHandler(t).Execute(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNilInput))
	assert.True(t, errors.Is(err, &apperrors.StandardError{Code: apperrors.ErrCodeIntentAnalysisFailed}))
}

func TestExecute_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestHandler(t).Execute(ctx, &Input{Query: "фильм"})
	assert.ErrorIs(t, err, context.Canceled)
}

func BenchmarkAnalyze(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Analyze("Посоветуй 7 грустных фильмов про космос и средневековье")
	}
}
