// internal/workers/recommendation/recommend-movies/handler.go
package recommendmovies

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"

	"moviechain/internal/common/camunda"
	apperrors "moviechain/internal/common/errors"
	"moviechain/internal/common/logger"
	"moviechain/internal/common/metrics"
	"moviechain/internal/common/observability"
	"moviechain/internal/common/validation"
	"moviechain/internal/models"
	analyzeintent "moviechain/internal/workers/recommendation/analyze-intent"
	generatecandidates "moviechain/internal/workers/recommendation/generate-candidates"
	validaterecommendations "moviechain/internal/workers/recommendation/validate-recommendations"
)

const (
	TaskType = "recommend-movies"
)

var (
	ErrNilInput = errors.New("input cannot be nil")
)

// Handler runs the whole pipeline for one request: intent analysis, candidate
// generation and validation, in that order.
type Handler struct {
	config    *Config
	analyzer  *analyzeintent.Handler
	generator *generatecandidates.Handler
	validator *validaterecommendations.Handler
	logger    logger.Logger
	runner    camunda.JobRunner
}

func NewHandler(
	config *Config,
	analyzer *analyzeintent.Handler,
	generator *generatecandidates.Handler,
	validator *validaterecommendations.Handler,
	log logger.Logger,
) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		analyzer:  analyzer,
		generator: generator,
		validator: validator,
		logger:    log,
		runner:    camunda.NewJobRunner(TaskType, config.Timeout, log),
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

// Execute validates and coerces a raw request body, then recommends.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, apperrors.NewInvalidRequestError(ErrNilInput.Error())
	}
	raw := input.Request
	if raw == nil {
		raw = map[string]interface{}{}
	}

	if result := validation.ValidateRecommendRequest(raw); !result.Valid {
		return nil, apperrors.NewInvalidRequestError(result.Error())
	}
	req, err := ParseRequest(raw)
	if err != nil {
		return nil, err
	}
	return h.Recommend(ctx, req)
}

// Recommend runs the pipeline for an already coerced request.
func (h *Handler) Recommend(ctx context.Context, req *Request) (*Output, error) {
	start := time.Now()

	ctx, span := observability.StartSpan(ctx, TaskType,
		attribute.Bool("has_mood", req.Mood != ""),
		attribute.Int("liked", len(req.LikedTitles)),
	)
	out, err := h.recommend(ctx, req, start)
	observability.EndSpan(span, err)
	if err != nil {
		h.logger.Warn("recommendation failed", map[string]interface{}{"error": err})
		return nil, err
	}

	metrics.RecommendationsReturned.Observe(float64(out.ActualCount))
	h.logger.Info("recommendations ready", map[string]interface{}{
		"intentType":     out.Analysis.IntentType,
		"requestedCount": out.RequestedCount,
		"actualCount":    out.ActualCount,
		"durationMs":     time.Since(start).Milliseconds(),
	})
	return out, nil
}

func (h *Handler) recommend(ctx context.Context, req *Request, start time.Time) (*Output, error) {
	intent := models.NewQueryIntent(models.IntentCriteriaOnly)
	if req.Mood != "" {
		var analyzed *analyzeintent.Output
		err := timeStage(analyzeintent.TaskType, func() (err error) {
			analyzed, err = h.analyzer.Execute(ctx, &analyzeintent.Input{Query: req.Mood})
			return err
		})
		if err != nil {
			return nil, err
		}
		intent = analyzed.Intent
	}

	count := req.Count
	if intent.RequestedCount != nil {
		count = *intent.RequestedCount
	}
	genres := req.Genres
	if len(intent.DetectedGenres) > 0 {
		genres = intent.DetectedGenres
	}

	var generated *generatecandidates.Output
	err := timeStage(generatecandidates.TaskType, func() (err error) {
		generated, err = h.generator.Execute(ctx, &generatecandidates.Input{
			Query:       req.Mood,
			Count:       count,
			Genres:      genres,
			LikedTitles: req.LikedTitles,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	var validated *validaterecommendations.Output
	err = timeStage(validaterecommendations.TaskType, func() (err error) {
		validated, err = h.validator.Execute(ctx, &validaterecommendations.Input{
			Candidates:  generated.Candidates,
			LikedTitles: req.LikedTitles,
			Genres:      genres,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return &Output{
		Recommendations: validated.Recommendations,
		Analysis:        intent,
		ProcessingTime:  math.Round(time.Since(start).Seconds()*100) / 100,
		RequestedCount:  count,
		ActualCount:     len(validated.Recommendations),
		GenreConflict:   false,
		Note:            h.config.Note,
	}, nil
}

func timeStage(stage string, fn func() error) error {
	start := time.Now()
	err := fn()
	metrics.PipelineStageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
	return err
}
