// internal/workers/recommendation/validate-recommendations/handler.go
package validaterecommendations

import (
	"context"
	"errors"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"

	"moviechain/internal/catalog"
	"moviechain/internal/common/camunda"
	apperrors "moviechain/internal/common/errors"
	"moviechain/internal/common/logger"
	"moviechain/internal/common/observability"
	"moviechain/internal/models"
)

const (
	TaskType = "validate-recommendations"
)

var (
	ErrNilInput  = errors.New("input cannot be nil")
	ErrNilLookup = errors.New("lookup cannot be nil")
)

type Handler struct {
	config *Config
	lookup catalog.Lookup
	logger logger.Logger
	runner camunda.JobRunner
}

func NewHandler(config *Config, lookup catalog.Lookup, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		lookup: lookup,
		logger: log,
		runner: camunda.NewJobRunner(TaskType, config.Timeout, log),
	}
}

func (h *Handler) WithObservability(obs *observability.Observability) *Handler {
	h.runner.Obs = obs
	return h
}

// WithMaxRetries caps the job retries granted on retryable failures.
func (h *Handler) WithMaxRetries(n int) *Handler {
	h.runner.Errors.WithMaxRetries(n)
	return h
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	camunda.Run(h.runner, client, job, h.execute)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, apperrors.NewRecommendationValidationFailedError(ErrNilInput)
	}
	if h.lookup == nil {
		return nil, apperrors.NewRecommendationValidationFailedError(ErrNilLookup)
	}

	ctx, span := observability.StartSpan(ctx, TaskType,
		attribute.Int("candidates", len(input.Candidates)),
		attribute.Bool("strict_genres", input.StrictGenres),
	)
	recs, err := h.validate(ctx, input)
	observability.EndSpan(span, err)
	if err != nil {
		return nil, err
	}

	h.logger.Debug("recommendations validated", map[string]interface{}{
		"candidates": len(input.Candidates),
		"validated":  len(recs),
	})
	return &Output{Recommendations: recs}, nil
}

// validate resolves candidates in order and keeps those that pass the genre
// filter and do not repeat a title or id already emitted or liked.
func (h *Handler) validate(ctx context.Context, input *Input) ([]models.Recommendation, error) {
	seenTitles := make(map[string]struct{}, len(input.LikedTitles)+len(input.Candidates))
	for _, t := range input.LikedTitles {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			seenTitles[t] = struct{}{}
		}
	}
	seenIDs := make(map[int]struct{}, len(input.Candidates))
	out := make([]models.Recommendation, 0, len(input.Candidates))

	for _, c := range input.Candidates {
		title := strings.TrimSpace(c.Title)
		if title == "" {
			continue
		}
		if _, ok := seenTitles[strings.ToLower(title)]; ok {
			continue
		}

		movie, err := h.lookup.Lookup(ctx, title, c.Year)
		if err != nil {
			return nil, wrapLookupError(err)
		}

		if !GenreMatch(movie, input.Genres, input.StrictGenres) {
			continue
		}
		if _, ok := seenIDs[movie.ID]; ok {
			continue
		}
		resolved := strings.ToLower(movie.Title)
		if _, ok := seenTitles[resolved]; ok {
			continue
		}

		reason := c.Reason
		if reason == "" {
			reason = h.config.DefaultReason
		}
		poster := movie.PosterURL
		if poster == "" {
			poster = models.DefaultPosterURL
		}

		out = append(out, models.Recommendation{
			Title:     movie.Title,
			Year:      movie.Year,
			Reason:    reason,
			TMDBID:    movie.ID,
			PosterURL: poster,
			Genres:    catalog.GenreNames(movie.GenreIDs),
		})
		seenTitles[resolved] = struct{}{}
		seenIDs[movie.ID] = struct{}{}
	}

	return out, nil
}

// GenreMatch reports whether movie satisfies the required genres. An empty
// requirement always matches; strict mode needs all of them, otherwise one is enough.
func GenreMatch(movie models.Movie, required []int, strict bool) bool {
	if len(required) == 0 {
		return true
	}
	if strict {
		return movie.HasAllGenres(required)
	}
	return movie.HasAnyGenre(required)
}

func wrapLookupError(err error) error {
	var stdErr *apperrors.StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return apperrors.NewRecommendationValidationFailedError(err)
}
