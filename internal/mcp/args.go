package mcp

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/phrazzld/todolist-api/internal/domain"
)

// Tool arguments arrive as decoded JSON, so numbers are float64. The
// helpers also accept integers and numeric strings from lenient clients.

func optionalInt(args map[string]any, key string) (*int64, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil, nil
	}

	var n int64
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) {
			return nil, domain.NewValidationError(key, "must be an integer", nil)
		}
		n = int64(v)
	case int:
		n = int64(v)
	case int64:
		n = v
	case json.Number:
		parsed, err := v.Int64()
		if err != nil {
			return nil, domain.NewValidationError(key, "must be an integer", nil)
		}
		n = parsed
	case string:
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, domain.NewValidationError(key, "must be an integer", nil)
		}
		n = parsed
	default:
		return nil, domain.NewValidationError(key, "must be an integer", nil)
	}
	return &n, nil
}

func requiredInt(args map[string]any, key string) (int64, error) {
	n, err := optionalInt(args, key)
	if err != nil {
		return 0, err
	}
	if n == nil {
		return 0, domain.NewValidationError(key, "is required", nil)
	}
	return *n, nil
}

// requiredID is requiredInt restricted to positive values.
func requiredID(args map[string]any, key string) (int64, error) {
	id, err := requiredInt(args, key)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, domain.NewValidationError(key, "must be a positive integer", nil)
	}
	return id, nil
}

func optionalString(args map[string]any, key string) (*string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil, nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, domain.NewValidationError(key, "must be a string", nil)
	}
	return &s, nil
}

func optionalDate(args map[string]any, key string) (*domain.Date, error) {
	s, err := optionalString(args, key)
	if err != nil || s == nil {
		return nil, err
	}
	d, err := domain.ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func optionalStatus(args map[string]any, key string) (*domain.TaskStatus, error) {
	s, err := optionalString(args, key)
	if err != nil || s == nil {
		return nil, err
	}
	status, err := domain.ParseTaskStatus(*s)
	if err != nil {
		return nil, err
	}
	return &status, nil
}
