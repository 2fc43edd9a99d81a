// Package normalization maps free-form configuration strings onto typed enums.
package normalization

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Normalizer resolves case-insensitive, whitespace-tolerant spellings
// (including aliases) to enum values.
type Normalizer[T comparable] struct {
	byKey    map[string]T
	fallback T
}

func NewNormalizer[T comparable](values map[string]T, fallback T) *Normalizer[T] {
	byKey := make(map[string]T, len(values))
	for k, v := range values {
		byKey[key(k)] = v
	}
	return &Normalizer[T]{byKey: byKey, fallback: fallback}
}

// Normalize returns the value for raw, or the fallback when unrecognized.
func (n *Normalizer[T]) Normalize(raw string) T {
	if v, ok := n.byKey[key(raw)]; ok {
		return v
	}
	return n.fallback
}

// NormalizeWithError returns the value for raw, or an error listing the
// accepted spellings.
func (n *Normalizer[T]) NormalizeWithError(raw string) (T, error) {
	if v, ok := n.byKey[key(raw)]; ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("invalid value %q, valid options: %v", raw, slices.Sorted(maps.Keys(n.byKey)))
}

func key(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
