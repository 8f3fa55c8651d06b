package pantry

import "strings"

// DefaultShelfLifeDays is used when a category is missing or unrecognised.
const DefaultShelfLifeDays = 14

var categoryShelfLife = map[string]int{
	"produce":   7,
	"dairy":     10,
	"meat":      5,
	"seafood":   3,
	"pantry":    90,
	"frozen":    60,
	"canned":    365,
	"bakery":    4,
	"beverages": 180,
	"snacks":    60,
	"household": 730,
	"other":     14,
}

// keyword fallbacks, checked in order
var keywordShelfLife = []struct {
	keywords []string
	days     int
}{
	{[]string{"vegetable", "fruit"}, 7},
	{[]string{"milk", "yogurt", "cheese"}, 10},
	{[]string{"meat", "chicken", "fish"}, 5},
	{[]string{"bread"}, 4},
}

// ShelfLifeDays returns the typical number of days an item of the given
// category stays usable. Matching is case-insensitive; an exact category
// name wins over a keyword match.
func ShelfLifeDays(category string) int {
	c := strings.ToLower(strings.TrimSpace(category))
	if c == "" {
		return DefaultShelfLifeDays
	}

	if days, ok := categoryShelfLife[c]; ok {
		return days
	}

	for _, rule := range keywordShelfLife {
		for _, kw := range rule.keywords {
			if strings.Contains(c, kw) {
				return rule.days
			}
		}
	}

	return DefaultShelfLifeDays
}

// ShelfLifeDaysFor is ShelfLifeDays for a nullable category.
func ShelfLifeDaysFor(category *string) int {
	if category == nil {
		return DefaultShelfLifeDays
	}
	return ShelfLifeDays(*category)
}
