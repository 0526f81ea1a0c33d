// Package validation checks decoded request documents against JSON schemas.
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Error joins the field errors into one line.
func (r *ValidationResult) Error() string {
	parts := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return strings.Join(parts, "; ")
}

// Schema is a compiled JSON schema.
type Schema struct {
	schema *gojsonschema.Schema
}

// MustCompile compiles a schema literal and panics if it is malformed.
func MustCompile(source string) *Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(source))
	if err != nil {
		panic(fmt.Sprintf("invalid JSON schema: %v", err))
	}
	return &Schema{schema: s}
}

// Validate checks a decoded JSON document (maps, slices, float64 numbers).
func (s *Schema) Validate(doc interface{}) *ValidationResult {
	result, err := s.schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return &ValidationResult{Errors: []ValidationError{{
			Field:   "(root)",
			Message: err.Error(),
			Code:    "UNREADABLE_DOCUMENT",
		}}}
	}
	if result.Valid() {
		return &ValidationResult{Valid: true}
	}

	errs := make([]ValidationError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		errs = append(errs, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    desc.Type(),
		})
	}
	return &ValidationResult{Errors: errs}
}

// RecommendRequestSchema describes the accepted shape of a recommendation
// request. Every field is optional and may be null; value coercion happens after validation.
var RecommendRequestSchema = MustCompile(`{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"properties": {
		"mood":           {"type": ["string", "null"]},
		"genres":         {"type": ["array", "null"], "items": {"type": ["integer", "string"]}},
		"minRating":      {"type": ["number", "string", "boolean", "null"]},
		"maxRating":      {"type": ["number", "string", "boolean", "null"]},
		"count":          {"type": ["number", "string", "null"]},
		"yearFrom":       {"type": ["string", "number", "null"]},
		"yearTo":         {"type": ["string", "number", "null"]},
		"director":       {"type": ["string", "null"]},
		"actors":         {"type": ["string", "null"]},
		"likedMovies": {
			"type": ["array", "null"],
			"items": {
				"type": "object",
				"properties": {"Title": {"type": ["string", "null"]}}
			}
		},
		"requireRomance": {}
	},
	"additionalProperties": true
}`)

// ValidateRecommendRequest validates a decoded /recommend body.
func ValidateRecommendRequest(doc interface{}) *ValidationResult {
	return RecommendRequestSchema.Validate(doc)
}
