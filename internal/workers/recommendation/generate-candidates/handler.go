// internal/workers/recommendation/generate-candidates/handler.go
package generatecandidates

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
	TaskType = "generate-candidates"
)

var (
	ErrNilInput   = errors.New("input cannot be nil")
	ErrNilCatalog = errors.New("catalog cannot be nil")
)

const (
	reasonKeyword  = "Подходит по ключевым словам/описанию."
	reasonGenre    = "Соответствует выбранному жанру."
	reasonFallback = "Популярная демонстрационная рекомендация."
)

type Handler struct {
	config  *Config
	catalog *catalog.Catalog
	logger  logger.Logger
	runner  camunda.JobRunner
}

func NewHandler(config *Config, cat *catalog.Catalog, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:  config,
		catalog: cat,
		logger:  log,
		runner:  camunda.NewJobRunner(TaskType, config.Timeout, log),
	}
}

// WithObservability attaches OpenTelemetry job metrics to the job runner.
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
		return nil, apperrors.NewCandidateGenerationFailedError(ErrNilInput)
	}
	if h.catalog == nil {
		return nil, apperrors.NewCandidateGenerationFailedError(ErrNilCatalog)
	}

	ctx, span := observability.StartSpan(ctx, TaskType,
		attribute.Int("count", input.Count),
		attribute.IntSlice("genres", input.Genres),
	)
	candidates, err := h.generate(ctx, input)
	observability.EndSpan(span, err)
	if err != nil {
		return nil, err
	}

	h.logger.Debug("candidates generated", map[string]interface{}{
		"requested": input.Count,
		"generated": len(candidates),
	})
	return &Output{Candidates: candidates}, nil
}

// picker accumulates candidates up to a quota, unique by display title.
type picker struct {
	count  int
	liked  map[string]struct{}
	picked map[string]struct{}
	out    []models.Candidate
}

func newPicker(count int, likedTitles []string) *picker {
	liked := make(map[string]struct{}, len(likedTitles))
	for _, t := range likedTitles {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			liked[t] = struct{}{}
		}
	}
	return &picker{
		count:  count,
		liked:  liked,
		picked: make(map[string]struct{}),
		out:    make([]models.Candidate, 0, max(count, 0)),
	}
}

func (p *picker) full() bool {
	return len(p.out) >= p.count
}

// add skips liked and already picked titles.
func (p *picker) add(m models.Movie, reason string) {
	if _, ok := p.liked[strings.ToLower(m.Title)]; ok {
		return
	}
	if _, ok := p.picked[m.Title]; ok {
		return
	}
	p.picked[m.Title] = struct{}{}
	p.out = append(p.out, models.Candidate{Title: m.Title, Year: m.Year, Reason: reason})
}

// generate scans the catalog in order: keyword matches first, then genre
// matches, then everything else, stopping once the quota is filled.
func (h *Handler) generate(ctx context.Context, input *Input) ([]models.Candidate, error) {
	p := newPicker(input.Count, input.LikedTitles)
	if input.Count <= 0 {
		return p.out, nil
	}

	movies := h.catalog.Movies()
	q := strings.ToLower(input.Query)
	tokens := strings.Fields(q)

	for _, m := range movies {
		if p.full() {
			break
		}
		if matchesKeywords(m, q, tokens) {
			p.add(m, reasonKeyword)
		}
	}

	if len(input.Genres) > 0 && !p.full() {
		if err := ctx.Err(); err != nil {
			return nil, apperrors.NewRequestCancelledError("candidate generation", err)
		}
		for _, m := range movies {
			if p.full() {
				break
			}
			if m.HasAnyGenre(input.Genres) {
				p.add(m, reasonGenre)
			}
		}
	}

	if !p.full() {
		if err := ctx.Err(); err != nil {
			return nil, apperrors.NewRequestCancelledError("candidate generation", err)
		}
		for _, m := range movies {
			if p.full() {
				break
			}
			p.add(m, reasonFallback)
		}
	}

	if len(p.out) > input.Count {
		p.out = p.out[:input.Count]
	}
	return p.out, nil
}

func matchesKeywords(m models.Movie, q string, tokens []string) bool {
	if strings.Contains(q, m.Key) {
		return true
	}
	overview := strings.ToLower(m.Overview)
	for _, t := range tokens {
		if strings.Contains(overview, t) {
			return true
		}
	}
	return false
}
