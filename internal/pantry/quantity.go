package pantry

import (
	"strconv"
	"strings"
)

// DefaultQuantity is shown when neither an override nor an average exists.
const DefaultQuantity = "1"

// DefaultUnit is shown when no unit is known.
const DefaultUnit = "unit"

// ResolveQuantity returns the first non-empty value of the chain, or
// DefaultQuantity.
func ResolveQuantity(chain ...*string) string {
	for _, q := range chain {
		if q != nil && strings.TrimSpace(*q) != "" {
			return *q
		}
	}
	return DefaultQuantity
}

// ParseQuantity reads a numeric-as-text quantity. Anything unparsable or
// non-positive counts as a single unit.
func ParseQuantity(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return 1
	}
	return v
}

// FormatQuantity renders q with the shortest exact decimal form.
func FormatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

// AverageQuantity folds q into a running average. A missing previous
// average yields q itself.
func AverageQuantity(prev *string, q float64) string {
	if prev == nil || strings.TrimSpace(*prev) == "" {
		return FormatQuantity(q)
	}
	return FormatQuantity((ParseQuantity(*prev) + q) / 2)
}
