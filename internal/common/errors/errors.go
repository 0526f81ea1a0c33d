// Package errors defines the typed faults raised by the recommendation pipeline
// and their mapping onto job-worker BPMN errors.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode identifies the kind of a fault.
type ErrorCode string

const (
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	ErrCodeEmptyTitle     ErrorCode = "EMPTY_TITLE"

	ErrCodeCatalogInvalid    ErrorCode = "CATALOG_INVALID"
	ErrCodeCatalogLoadFailed ErrorCode = "CATALOG_LOAD_FAILED"

	ErrCodeIntentAnalysisFailed           ErrorCode = "INTENT_ANALYSIS_FAILED"
	ErrCodeCandidateGenerationFailed      ErrorCode = "CANDIDATE_GENERATION_FAILED"
	ErrCodeRecommendationValidationFailed ErrorCode = "RECOMMENDATION_VALIDATION_FAILED"

	ErrCodeRequestCancelled ErrorCode = "REQUEST_CANCELLED"
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
)

// StandardError is the single fault type surfaced at service boundaries.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// Is matches any *StandardError carrying the same code, so sentinel values can
// be used with errors.Is.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithMetadata returns e after attaching a metadata key.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

func newError(code ErrorCode, message, details string, retryable bool, cause error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError is what a job worker throws back to the workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns the job variables attached to a failed or thrown job.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewInvalidRequestError reports a request body or job payload that cannot be coerced.
func NewInvalidRequestError(details string) *StandardError {
	return newError(ErrCodeInvalidRequest, "Invalid request payload", details, false, nil)
}

// NewEmptyTitleError reports a catalog lookup with a blank title.
func NewEmptyTitleError() *StandardError {
	return newError(ErrCodeEmptyTitle, "Movie title is empty", "", false, nil)
}

func NewCatalogInvalidError(details string) *StandardError {
	return newError(ErrCodeCatalogInvalid, "Catalog data is invalid", details, false, nil)
}

func NewCatalogLoadFailedError(path string, err error) *StandardError {
	return newError(ErrCodeCatalogLoadFailed, "Failed to load catalog",
		fmt.Sprintf("path: %s, error: %v", path, err), false, err)
}

func NewIntentAnalysisFailedError(err error) *StandardError {
	return newError(ErrCodeIntentAnalysisFailed, "Intent analysis failed", errString(err), false, err)
}

func NewCandidateGenerationFailedError(err error) *StandardError {
	return newError(ErrCodeCandidateGenerationFailed, "Candidate generation failed", errString(err), false, err)
}

func NewRecommendationValidationFailedError(err error) *StandardError {
	return newError(ErrCodeRecommendationValidationFailed, "Recommendation validation failed", errString(err), true, err)
}

// NewRequestCancelledError wraps a context error.
func NewRequestCancelledError(stage string, err error) *StandardError {
	return newError(ErrCodeRequestCancelled, fmt.Sprintf("Request cancelled during %s", stage), errString(err), true, err)
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", errString(err), false, err)
}

// NewExternalServiceError wraps a failure reported by the workflow gateway or cache backend.
func NewExternalServiceError(service string, err error) *StandardError {
	return newError("EXTERNAL_SERVICE_ERROR", fmt.Sprintf("External service '%s' error", service), errString(err), true, err)
}

func NewTimeoutError(service string, err error) *StandardError {
	return newError("TIMEOUT_ERROR", fmt.Sprintf("Service '%s' timeout", service), errString(err), true, err)
}

func NewResourceNotFoundError(service, details string) *StandardError {
	return newError("RESOURCE_NOT_FOUND", fmt.Sprintf("Resource not found in %s", service), details, false, nil)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// Normalize returns err as a *StandardError, wrapping anything else as INTERNAL_ERROR.
func Normalize(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// GetRetryCount returns how many job retries a code deserves.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeRecommendationValidationFailed,
		"EXTERNAL_SERVICE_ERROR":
		return 3
	case ErrCodeRequestCancelled,
		"TIMEOUT_ERROR":
		return 2
	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError. The BPMN code
// equals the internal code.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      string(stdErr.Code),
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory groups codes for logging and metrics labels.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "CATALOG") || strings.Contains(codeStr, "TITLE"):
		return "CATALOG"
	case strings.Contains(codeStr, "INTENT") ||
		strings.Contains(codeStr, "CANDIDATE") ||
		strings.Contains(codeStr, "RECOMMENDATION"):
		return "PIPELINE"
	case strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	case strings.Contains(codeStr, "EXTERNAL") || strings.Contains(codeStr, "TIMEOUT") || strings.Contains(codeStr, "CANCELLED"):
		return "TRANSPORT"
	default:
		return "OTHER"
	}
}
