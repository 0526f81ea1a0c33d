// internal/workers/recommendation/validate-recommendations/handler_test.go
package validaterecommendations

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviechain/internal/catalog"
	apperrors "moviechain/internal/common/errors"
	"moviechain/internal/common/logger"
	"moviechain/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{Timeout: 2 * time.Second, DefaultReason: "Демонстрационная рекомендация"}
}

// fakeLookup resolves titles from a fixed table and records every call.
type fakeLookup struct {
	mu     sync.Mutex
	movies map[string]models.Movie
	calls  []string
	err    error
}

func (f *fakeLookup) Lookup(_ context.Context, title, _ string) (models.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, title)
	if f.err != nil {
		return models.Movie{}, f.err
	}
	if m, ok := f.movies[strings.ToLower(title)]; ok {
		return m, nil
	}
	return models.Movie{Title: title, Year: models.UnknownYear, ID: 9000 + len(f.calls), GenreIDs: []int{}}, nil
}

func newFakeLookup() *fakeLookup {
	return &fakeLookup{movies: map[string]models.Movie{
		"inception":    {Title: "Inception", Year: "2010", ID: 1, GenreIDs: []int{878, 28}, PosterURL: "p1"},
		"interstellar": {Title: "Interstellar", Year: "2014", ID: 2, GenreIDs: []int{878, 18}, PosterURL: "p2"},
		"her":          {Title: "Her", Year: "2013", ID: 5, GenreIDs: []int{18, 10749}},
		// alias resolving to an already known movie
		"inception 2": {Title: "Inception", Year: "2010", ID: 1, GenreIDs: []int{878, 28}, PosterURL: "p1"},
		// different title, same id
		"origin": {Title: "Origin", Year: "2010", ID: 1, GenreIDs: []int{878}},
		"odd":    {Title: "Odd", Year: "2001", ID: 77, GenreIDs: []int{99999}},
	}}
}

func candidates(titles ...string) []models.Candidate {
	out := make([]models.Candidate, 0, len(titles))
	for _, t := range titles {
		out = append(out, models.Candidate{Title: t, Reason: "r"})
	}
	return out
}

func recTitles(recs []models.Recommendation) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Title)
	}
	return out
}

// ==========================
// Validation rules
// ==========================

func TestExecute_Filtering(t *testing.T) {
	tests := []struct {
		name       string
		input      Input
		wantTitles []string
		wantCalls  []string
	}{
		{
			name:       "passes everything without filters",
			input:      Input{Candidates: candidates("Inception", "Interstellar", "Her")},
			wantTitles: []string{"Inception", "Interstellar", "Her"},
			wantCalls:  []string{"Inception", "Interstellar", "Her"},
		},
		{
			name:       "empty and blank titles are skipped before lookup",
			input:      Input{Candidates: candidates("", "   ", "Her")},
			wantTitles: []string{"Her"},
			wantCalls:  []string{"Her"},
		},
		{
			name:       "liked titles are skipped before lookup",
			input:      Input{Candidates: candidates("Inception", "Her"), LikedTitles: []string{"INCEPTION"}},
			wantTitles: []string{"Her"},
			wantCalls:  []string{"Her"},
		},
		{
			name:       "resolved title equal to a liked title is dropped",
			input:      Input{Candidates: candidates("Inception 2", "Her"), LikedTitles: []string{"inception"}},
			wantTitles: []string{"Her"},
			wantCalls:  []string{"Inception 2", "Her"},
		},
		{
			name:       "duplicate resolved title is dropped",
			input:      Input{Candidates: candidates("Inception", "Inception 2")},
			wantTitles: []string{"Inception"},
			wantCalls:  []string{"Inception", "Inception 2"},
		},
		{
			name:       "duplicate id is dropped",
			input:      Input{Candidates: candidates("Inception", "Origin")},
			wantTitles: []string{"Inception"},
			wantCalls:  []string{"Inception", "Origin"},
		},
		{
			name:       "repeated candidate title is not looked up twice",
			input:      Input{Candidates: candidates("Her", "her")},
			wantTitles: []string{"Her"},
			wantCalls:  []string{"Her"},
		},
		{
			name:       "non-strict genre filter keeps any intersection",
			input:      Input{Candidates: candidates("Inception", "Interstellar", "Her"), Genres: []int{28, 10749}},
			wantTitles: []string{"Inception", "Her"},
			wantCalls:  []string{"Inception", "Interstellar", "Her"},
		},
		{
			name:       "strict genre filter needs every genre",
			input:      Input{Candidates: candidates("Inception", "Interstellar"), Genres: []int{878, 18}, StrictGenres: true},
			wantTitles: []string{"Interstellar"},
			wantCalls:  []string{"Inception", "Interstellar"},
		},
		{
			name:       "placeholder fails a genre filter",
			input:      Input{Candidates: candidates("Unknown Film", "Her"), Genres: []int{18}},
			wantTitles: []string{"Her"},
			wantCalls:  []string{"Unknown Film", "Her"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup := newFakeLookup()
			h := NewHandler(createTestConfig(), lookup, logger.NewNoOpLogger())

			out, err := h.Execute(context.Background(), &tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitles, recTitles(out.Recommendations))
			assert.Equal(t, tt.wantCalls, lookup.calls)
		})
	}
}

func TestExecute_Shape(t *testing.T) {
	h := NewHandler(createTestConfig(), newFakeLookup(), logger.NewNoOpLogger())

	out, err := h.Execute(context.Background(), &Input{Candidates: []models.Candidate{
		{Title: "inception", Year: "2010", Reason: "Подходит по ключевым словам/описанию."},
		{Title: "Her"},
		{Title: "Odd"},
	}})
	require.NoError(t, err)
	require.Len(t, out.Recommendations, 3)

	assert.Equal(t, models.Recommendation{
		Title:     "Inception",
		Year:      "2010",
		Reason:    "Подходит по ключевым словам/описанию.",
		TMDBID:    1,
		PosterURL: "p1",
		Genres:    []string{"Фантастика", "Боевик"},
	}, out.Recommendations[0])

	her := out.Recommendations[1]
	assert.Equal(t, "Демонстрационная рекомендация", her.Reason)
	assert.Equal(t, models.DefaultPosterURL, her.PosterURL)
	assert.Equal(t, []string{"Драма", "Мелодрама"}, her.Genres)

	assert.Equal(t, []string{catalog.UnknownGenre}, out.Recommendations[2].Genres)
}

func TestExecute_EmptyCandidates(t *testing.T) {
	h := NewHandler(createTestConfig(), newFakeLookup(), logger.NewNoOpLogger())

	out, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)
	assert.NotNil(t, out.Recommendations)
	assert.Empty(t, out.Recommendations)
}

func TestExecute_WithResolver(t *testing.T) {
	next := 5000
	ids := catalog.IDGeneratorFunc(func() int {
		next++
		return next
	})
	resolver := catalog.NewResolver(catalog.Default(), catalog.NewMemoryCache(0), ids)
	h := NewHandler(createTestConfig(), resolver, logger.NewNoOpLogger())

	out, err := h.Execute(context.Background(), &Input{
		Candidates: candidates("the lion king", "mystery film", "Mystery Film", "Moon"),
		Genres:     []int{},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"The Lion King", "Mystery Film", "Moon"}, recTitles(out.Recommendations))
	assert.Equal(t, 5001, out.Recommendations[1].TMDBID)
	assert.Equal(t, []string{}, out.Recommendations[1].Genres)
	assert.Equal(t, models.UnknownYear, out.Recommendations[1].Year)
}

func TestExecute_FileCatalogPunctuatedTitle(t *testing.T) {
	cat, err := catalog.New([]models.Movie{
		{Title: "Spider-Man: Homecoming", Year: "2017", ID: 10, GenreIDs: []int{28}},
		{Title: "Her", Year: "2013", ID: 5, GenreIDs: []int{18, 10749}},
	})
	require.NoError(t, err)
	resolver := catalog.NewResolver(cat, catalog.NewMemoryCache(0), catalog.IDGeneratorFunc(func() int { return 4242 }))
	h := NewHandler(createTestConfig(), resolver, logger.NewNoOpLogger())

	out, err := h.Execute(context.Background(), &Input{
		Candidates: []models.Candidate{
			{Title: "Spider-Man: Homecoming", Year: "2017"},
			{Title: "Her", Year: "2013"},
		},
		Genres: []int{28},
	})
	require.NoError(t, err)
	require.Len(t, out.Recommendations, 1)
	assert.Equal(t, "Spider-Man: Homecoming", out.Recommendations[0].Title)
	assert.Equal(t, 10, out.Recommendations[0].TMDBID)
}

// ==========================
// GenreMatch
// ==========================

func TestGenreMatch(t *testing.T) {
	movie := models.Movie{GenreIDs: []int{878, 18}}

	tests := []struct {
		name     string
		required []int
		strict   bool
		want     bool
	}{
		{"no requirement", nil, false, true},
		{"no requirement strict", []int{}, true, true},
		{"any of", []int{35, 18}, false, true},
		{"none of", []int{35, 36}, false, false},
		{"strict subset", []int{878, 18}, true, true},
		{"strict missing one", []int{878, 35}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenreMatch(movie, tt.required, tt.strict))
		})
	}
}

// ==========================
// Error paths
// ==========================

func TestExecute_NilInput(t *testing.T) {
	h := NewHandler(createTestConfig(), newFakeLookup(), logger.NewNoOpLogger())
	_, err := h.Execute(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNilInput)
}

func TestExecute_NilLookup(t *testing.T) {
	h := NewHandler(createTestConfig(), nil, logger.NewNoOpLogger())
	_, err := h.Execute(context.Background(), &Input{})
	assert.ErrorIs(t, err, ErrNilLookup)
}

func TestExecute_LookupErrors(t *testing.T) {
	t.Run("plain error is wrapped", func(t *testing.T) {
		lookup := newFakeLookup()
		lookup.err = errors.New("backend down")
		h := NewHandler(createTestConfig(), lookup, logger.NewNoOpLogger())

		_, err := h.Execute(context.Background(), &Input{Candidates: candidates("Her")})
		require.Error(t, err)
		stdErr := apperrors.Normalize(err)
		assert.Equal(t, apperrors.ErrCodeRecommendationValidationFailed, stdErr.Code)
		assert.True(t, stdErr.Retryable)
	})

	t.Run("typed error keeps its code", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		resolver := catalog.NewResolver(catalog.Default(), nil, nil)
		h := NewHandler(createTestConfig(), resolver, logger.NewNoOpLogger())

		_, err := h.Execute(ctx, &Input{Candidates: candidates("Her")})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeRequestCancelled, apperrors.Normalize(err).Code)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
