package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Problem is one rejected configuration value, addressed by its YAML key.
type Problem struct {
	Key     string
	Value   any
	Message string
}

func (p Problem) String() string {
	if text, ok := p.Value.(string); ok {
		return fmt.Sprintf("%s: %q %s", p.Key, text, p.Message)
	}
	return fmt.Sprintf("%s: %v %s", p.Key, p.Value, p.Message)
}

// ValidationError lists every key that failed validation.
type ValidationError struct {
	Problems []Problem
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Problems))
	for i, problem := range e.Problems {
		parts[i] = problem.String()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Keys returns the failing keys in report order.
func (e *ValidationError) Keys() []string {
	keys := make([]string, len(e.Problems))
	for i, problem := range e.Problems {
		keys[i] = problem.Key
	}
	return keys
}

// newValidator reports field errors by their mapstructure names so the
// namespace reads like the YAML key, e.g. "Config.resolver.question_fallback".
func newValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("mapstructure"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

func problemFromFieldError(fieldError validator.FieldError) Problem {
	key := fieldError.Namespace()
	if _, rest, ok := strings.Cut(key, "."); ok {
		key = rest
	}

	problem := Problem{Key: key, Value: fieldError.Value()}
	switch fieldError.Tag() {
	case "required":
		problem.Message = "is required"
	case "oneof":
		problem.Message = "must be one of: " + strings.ReplaceAll(fieldError.Param(), " ", ", ")
	case "min":
		problem.Message = "must be at least " + fieldError.Param()
	case "max":
		problem.Message = "must be at most " + fieldError.Param()
	default:
		problem.Message = "fails " + fieldError.Tag()
	}
	return problem
}
