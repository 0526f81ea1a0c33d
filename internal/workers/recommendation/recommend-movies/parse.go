// internal/workers/recommendation/recommend-movies/parse.go
package recommendmovies

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	apperrors "moviechain/internal/common/errors"
	"moviechain/internal/models"
)

const (
	defaultMinRating = 0.0
	defaultMaxRating = 10.0
)

// ParseRequest coerces a decoded JSON body. Missing and null fields take their
// defaults; a field of a type that cannot be coerced is an INVALID_REQUEST.
func ParseRequest(raw map[string]interface{}) (*Request, error) {
	req := &Request{
		Genres:      []int{},
		MinRating:   defaultMinRating,
		MaxRating:   defaultMaxRating,
		Count:       models.DefaultRequestedCount,
		LikedTitles: []string{},
	}
	if raw == nil {
		return req, nil
	}

	var err error
	if req.Mood, err = parseString(raw, "mood"); err != nil {
		return nil, err
	}
	if req.Genres, err = parseGenres(raw["genres"]); err != nil {
		return nil, err
	}
	if req.MinRating, err = parseRating(raw, "minRating", defaultMinRating); err != nil {
		return nil, err
	}
	if req.MaxRating, err = parseRating(raw, "maxRating", defaultMaxRating); err != nil {
		return nil, err
	}
	if req.Count, err = parseCount(raw["count"]); err != nil {
		return nil, err
	}
	if req.YearFrom, err = parseYear(raw, "yearFrom"); err != nil {
		return nil, err
	}
	if req.YearTo, err = parseYear(raw, "yearTo"); err != nil {
		return nil, err
	}
	if req.Director, err = parseString(raw, "director"); err != nil {
		return nil, err
	}
	if req.Actors, err = parseString(raw, "actors"); err != nil {
		return nil, err
	}
	if req.LikedTitles, err = parseLikedTitles(raw["likedMovies"]); err != nil {
		return nil, err
	}
	// anything but a JSON boolean is ignored
	if b, ok := raw["requireRomance"].(bool); ok {
		req.RequireRomance = b
	}

	return req, nil
}

func invalidField(field string, raw interface{}) error {
	return apperrors.NewInvalidRequestError(fmt.Sprintf("field '%s' has unsupported value %v (%T)", field, raw, raw)).
		WithMetadata("field", field)
}

func parseString(raw map[string]interface{}, field string) (string, error) {
	switch v := raw[field].(type) {
	case nil:
		return "", nil
	case string:
		return strings.TrimSpace(v), nil
	default:
		return "", invalidField(field, v)
	}
}

// parseYear also accepts a number, e.g. 1999.
func parseYear(raw map[string]interface{}, field string) (string, error) {
	switch v := raw[field].(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(v), nil
	default:
		return parseString(raw, field)
	}
}

func parseGenres(raw interface{}) ([]int, error) {
	result := []int{}
	if raw == nil {
		return result, nil
	}

	switch v := raw.(type) {
	case []int:
		return append(result, v...), nil
	case []interface{}:
		for _, item := range v {
			id, err := parseGenreID(item)
			if err != nil {
				return nil, err
			}
			result = append(result, id)
		}
		return result, nil
	default:
		return nil, invalidField("genres", raw)
	}
}

func parseGenreID(raw interface{}) (int, error) {
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, invalidField("genres", raw)
		}
		return int(v), nil
	case int:
		return v, nil
	case string:
		id, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, invalidField("genres", raw)
		}
		return id, nil
	default:
		return 0, invalidField("genres", raw)
	}
}

// parseRating treats every falsy value (null, 0, "", false) as absent.
func parseRating(raw map[string]interface{}, field string, def float64) (float64, error) {
	switch v := raw[field].(type) {
	case nil:
		return def, nil
	case bool:
		if !v {
			return def, nil
		}
		return 1, nil
	case float64:
		if v == 0 {
			return def, nil
		}
		return v, nil
	case int:
		if v == 0 {
			return def, nil
		}
		return float64(v), nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return def, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, invalidField(field, v)
		}
		if f == 0 {
			return def, nil
		}
		return f, nil
	default:
		return 0, invalidField(field, v)
	}
}

// parseCount truncates fractional counts and clamps the result.
func parseCount(raw interface{}) (int, error) {
	switch v := raw.(type) {
	case nil:
		return models.DefaultRequestedCount, nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, invalidField("count", v)
		}
		// clamp before converting so huge values cannot overflow
		return models.ClampCount(int(math.Max(math.Min(v, 1e6), -1e6))), nil
	case int:
		return models.ClampCount(v), nil
	case bool:
		if v {
			return models.ClampCount(1), nil
		}
		return models.ClampCount(0), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, invalidField("count", v)
		}
		return models.ClampCount(n), nil
	default:
		return 0, invalidField("count", v)
	}
}

// parseLikedTitles lower-cases Title of each liked movie, skipping blank ones.
func parseLikedTitles(raw interface{}) ([]string, error) {
	result := []string{}
	if raw == nil {
		return result, nil
	}

	items, ok := raw.([]interface{})
	if !ok {
		return nil, invalidField("likedMovies", raw)
	}

	seen := make(map[string]bool)
	for _, item := range items {
		film, ok := item.(map[string]interface{})
		if !ok {
			return nil, invalidField("likedMovies", item)
		}
		var title string
		switch t := film["Title"].(type) {
		case nil:
			continue
		case string:
			title = strings.ToLower(strings.TrimSpace(t))
		default:
			return nil, invalidField("likedMovies.Title", t)
		}
		if title != "" && !seen[title] {
			result = append(result, title)
			seen[title] = true
		}
	}
	return result, nil
}
