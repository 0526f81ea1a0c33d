// internal/workers/recommendation/analyze-intent/handler.go
package analyzeintent

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"

	"moviechain/internal/common/camunda"
	apperrors "moviechain/internal/common/errors"
	"moviechain/internal/common/logger"
	"moviechain/internal/common/observability"
	"moviechain/internal/models"
)

const (
	TaskType = "analyze-intent"
)

var (
	ErrNilInput = errors.New("input cannot be nil")
)

const (
	historicalPeriod     = "средневековье"
	historicalConfidence = 0.6
	sadMood              = "грустный"
	// spelled-out count recognized when no "<n> фильм..." phrase is present
	spelledFive = "пять"
)

var (
	countPattern = regexp.MustCompile(`(\d+)\s+фильм`)

	historicalMarkers = []string{"средневек", "античн", "ренессанс"}
	sadMarkers        = []string{"грустн", "печал", "трагич"}
	// any of these marks a query as a request for suggestions rather than a title
	requestMarkers = []string{"фильм", "посмотреть", "рекоменд"}

	genreRules = []struct {
		genreID int
		markers []string
	}{
		{35, []string{"комедия"}},
		{878, []string{"фантаст", "космос"}},
	}
)

type Handler struct {
	config *Config
	logger logger.Logger
	runner camunda.JobRunner
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
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
		return nil, apperrors.NewIntentAnalysisFailedError(ErrNilInput)
	}
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewRequestCancelledError("intent analysis", err)
	}

	_, span := observability.StartSpan(ctx, TaskType)
	defer span.End()

	intent := Analyze(input.Query)

	span.SetAttributes(
		attribute.String("intent.type", string(intent.IntentType)),
		attribute.IntSlice("intent.genres", intent.DetectedGenres),
	)
	h.logger.Debug("intent analyzed", map[string]interface{}{
		"intentType":     intent.IntentType,
		"detectedGenres": intent.DetectedGenres,
		"moodKeywords":   intent.MoodKeywords,
		"requestedCount": intent.RequestedCount,
		"historical":     intent.IsHistoricalQuery,
	})

	return &Output{Intent: intent}, nil
}

// Analyze classifies a free-text query with keyword heuristics. All checks are
// case-insensitive substring tests.
func Analyze(query string) models.QueryIntent {
	q := strings.ToLower(query)
	intent := models.NewQueryIntent(models.IntentAbstract)

	intent.RequestedCount = extractRequestedCount(q)

	if containsAny(q, historicalMarkers) {
		period := historicalPeriod
		intent.HistoricalPeriod = &period
		intent.HistoricalConfidence = historicalConfidence
		intent.IsHistoricalQuery = true
	}

	for _, rule := range genreRules {
		if containsAny(q, rule.markers) {
			intent.DetectedGenres = append(intent.DetectedGenres, rule.genreID)
		}
	}

	if containsAny(q, sadMarkers) {
		intent.MoodKeywords = append(intent.MoodKeywords, sadMood)
	}

	switch {
	case strings.TrimSpace(q) != "" && !containsAny(q, requestMarkers):
		intent.IntentType = models.IntentTitle
	case len(intent.DetectedGenres) > 0 || len(intent.MoodKeywords) > 0:
		intent.IntentType = models.IntentDescription
	}

	return intent
}

// extractRequestedCount expects an already lower-cased query.
func extractRequestedCount(q string) *int {
	if m := countPattern.FindStringSubmatch(q); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			// too many digits for an int: clamp as a huge number
			n = models.MaxRequestedCount
		}
		n = models.ClampCount(n)
		return &n
	}
	if strings.Contains(q, spelledFive) {
		n := 5
		return &n
	}
	return nil
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
