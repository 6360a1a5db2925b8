package quiz

import (
	"fmt"
	"slices"
	"strings"
)

// FallbackMode controls how the question fallback matches record keys.
type FallbackMode string

const (
	// FallbackSuffix accepts any cleaned key ending in the question header,
	// so "前回の問題文" also matches.
	FallbackSuffix FallbackMode = "suffix"
	// FallbackExact accepts only keys that equal the question header after cleaning.
	FallbackExact FallbackMode = "exact"
)

// ParseFallbackMode maps a config value onto a FallbackMode. Empty means suffix.
func ParseFallbackMode(value string) (FallbackMode, error) {
	switch FallbackMode(strings.ToLower(strings.TrimSpace(value))) {
	case "", FallbackSuffix:
		return FallbackSuffix, nil
	case FallbackExact:
		return FallbackExact, nil
	default:
		return "", fmt.Errorf("unsupported question fallback %q (supported: suffix, exact)", value)
	}
}

// Resolver reads canonical fields out of records. The zero value uses the
// suffix fallback.
type Resolver struct {
	Fallback FallbackMode
}

// DefaultResolver is used by the package-level helpers.
var DefaultResolver = Resolver{Fallback: FallbackSuffix}

// Resolve returns the trimmed value of the first candidate with a non-blank
// value. Earlier candidates win. When none match and the candidates target the
// question field, record keys are scanned for a cleaned key naming the
// question header. Otherwise def is returned. rec is never modified.
func (r Resolver) Resolve(rec Record, candidates []string, def string) string {
	if rec == nil {
		return def
	}
	for _, key := range candidates {
		value, ok := rec.Lookup(key)
		if !ok {
			continue
		}
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}

	if !slices.Contains(candidates, FieldQuestion.Header) {
		return def
	}
	for _, key := range rec.Keys() {
		if !r.matchesQuestionKey(cleanKey(key)) {
			continue
		}
		value, _ := rec.Lookup(key)
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return def
}

// ResolveField resolves field through its candidate list with an empty default.
func (r Resolver) ResolveField(rec Record, field Field) string {
	return r.Resolve(rec, field.Candidates, "")
}

func (r Resolver) matchesQuestionKey(cleaned string) bool {
	if r.Fallback == FallbackExact {
		return cleaned == FieldQuestion.Header
	}
	return strings.HasSuffix(cleaned, FieldQuestion.Header)
}

// Resolve is DefaultResolver.Resolve.
func Resolve(rec Record, candidates []string, def string) string {
	return DefaultResolver.Resolve(rec, candidates, def)
}

// ResolveField is DefaultResolver.ResolveField.
func ResolveField(rec Record, field Field) string {
	return DefaultResolver.ResolveField(rec, field)
}
