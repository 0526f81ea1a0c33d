// internal/api/handlers.go
package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	apperrors "moviechain/internal/common/errors"
	recommendmovies "moviechain/internal/workers/recommendation/recommend-movies"
)

// errorTitle is the user-facing summary of every failed request.
const errorTitle = "Критическая ошибка сервера"

// Recommend handles POST /recommend. Every failure, bad input included, is
// reported as a 500 with the fault message and code.
func (s *Server) Recommend(w http.ResponseWriter, r *http.Request) {
	raw, err := s.decodeBody(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	ctx := r.Context()
	if s.opts.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.RequestTimeout)
		defer cancel()
	}

	out, err := s.recommender.Execute(ctx, &recommendmovies.Input{Request: raw})
	if err != nil {
		s.logger.Warn("recommend failed", map[string]interface{}{
			"requestId": GetRequestID(r.Context()),
			"error":     err,
		})
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// decodeBody reads a JSON object. An empty body or a literal null is an empty
// object; any other non-object document is rejected.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request) (map[string]interface{}, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperrors.NewInvalidRequestError("request body too large")
		}
		return nil, apperrors.NewInvalidRequestError(err.Error())
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return map[string]interface{}{}, nil
	}

	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, apperrors.NewInvalidRequestError("malformed JSON: " + err.Error())
	}
	switch v := doc.(type) {
	case nil:
		return map[string]interface{}{}, nil
	case map[string]interface{}:
		return v, nil
	default:
		return nil, apperrors.NewInvalidRequestError("request body must be a JSON object")
	}
}

func (s *Server) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// Ready runs every readiness check and answers 503 if any fails.
func (s *Server) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := make(map[string]string, len(s.opts.Checks))
	for name, check := range s.opts.Checks {
		if err := check(ctx); err != nil {
			status = http.StatusServiceUnavailable
			checks[name] = err.Error()
			continue
		}
		checks[name] = "ok"
	}

	state := "ready"
	if status != http.StatusOK {
		state = "not_ready"
	}
	writeJSON(w, status, map[string]interface{}{
		"status": state,
		"checks": checks,
		"time":   time.Now().Format(time.RFC3339),
	})
}

func writeError(w http.ResponseWriter, err error) {
	stdErr := apperrors.Normalize(err)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   errorTitle,
		Details: stdErr.Error(),
		Code:    string(stdErr.Code),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
