package tools

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/workdesk/integration-assist/pkg/domain/errors"
)

// ExtractStringParam safely extracts a required string parameter from arguments
func ExtractStringParam(args map[string]any, key string) (string, error) {
	value, exists := args[key]
	if !exists {
		return "", errors.New(errors.CodeMissingParameter, "tools", fmt.Sprintf("missing parameter: %s", key), nil)
	}

	str, ok := value.(string)
	if !ok {
		return "", errors.New(errors.CodeInvalidParameter, "tools", fmt.Sprintf("parameter %s must be a string", key), nil)
	}
	if str == "" {
		return "", errors.New(errors.CodeInvalidParameter, "tools", fmt.Sprintf("parameter %s cannot be empty", key), nil)
	}
	return str, nil
}

// ExtractOptionalStringParam safely extracts an optional string parameter
func ExtractOptionalStringParam(args map[string]any, key string, defaultValue string) string {
	value, exists := args[key]
	if !exists {
		return defaultValue
	}

	str, ok := value.(string)
	if !ok || str == "" {
		return defaultValue
	}
	return str
}

// ExtractInt64Param extracts a required integral parameter. JSON numbers
// arrive as float64; values with a fractional part are rejected.
func ExtractInt64Param(args map[string]any, key string) (int64, error) {
	value, exists := args[key]
	if !exists {
		return 0, errors.New(errors.CodeMissingParameter, "tools", fmt.Sprintf("missing parameter: %s", key), nil)
	}
	return toInt64(value, key)
}

// ExtractOptionalIntParam extracts an optional integral parameter
func ExtractOptionalIntParam(args map[string]any, key string, defaultValue int) (int, error) {
	value, exists := args[key]
	if !exists {
		return defaultValue, nil
	}
	n, err := toInt64(value, key)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func toInt64(value any, key string) (int64, error) {
	switch v := value.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, errors.New(errors.CodeInvalidParameter, "tools", fmt.Sprintf("parameter %s must be an integer", key), nil)
		}
		return int64(v), nil
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, errors.New(errors.CodeInvalidParameter, "tools", fmt.Sprintf("parameter %s must be an integer", key), err)
		}
		return n, nil
	default:
		return 0, errors.New(errors.CodeInvalidParameter, "tools", fmt.Sprintf("parameter %s must be a number", key), nil)
	}
}

// ExtractOptionalBoolParam extracts an optional boolean parameter
func ExtractOptionalBoolParam(args map[string]any, key string, defaultValue bool) bool {
	if value, ok := args[key].(bool); ok {
		return value
	}
	return defaultValue
}

// ExtractStringArrayParam safely extracts an optional string array parameter
func ExtractStringArrayParam(args map[string]any, key string) ([]string, error) {
	value, exists := args[key]
	if !exists {
		return nil, nil
	}

	switch v := value.(type) {
	case []string:
		return v, nil
	case []any:
		result := make([]string, len(v))
		for i, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil, errors.New(errors.CodeInvalidParameter, "tools", fmt.Sprintf("parameter %s must be an array of strings", key), nil)
			}
			result[i] = str
		}
		return result, nil
	default:
		return nil, errors.New(errors.CodeInvalidParameter, "tools", fmt.Sprintf("parameter %s must be an array", key), nil)
	}
}

// ExtractAnyArrayParam extracts an optional array parameter without
// constraining element types, for positional query parameters.
func ExtractAnyArrayParam(args map[string]any, key string) ([]any, error) {
	value, exists := args[key]
	if !exists {
		return nil, nil
	}
	list, ok := value.([]any)
	if !ok {
		return nil, errors.New(errors.CodeInvalidParameter, "tools", fmt.Sprintf("parameter %s must be an array", key), nil)
	}
	return list, nil
}

// MarshalJSON renders a value for a text content block
func MarshalJSON(data any) string {
	bytes, err := json.Marshal(data)
	if err != nil {
		return fmt.Sprintf("error marshaling data: %v", err)
	}
	return string(bytes)
}
