package pantry

// LifespanSource records which rule produced an effective lifespan.
type LifespanSource string

const (
	LifespanUserOverride LifespanSource = "user_override"
	LifespanFrequency    LifespanSource = "frequency"
	LifespanCategory     LifespanSource = "category"
)

// Lifespan is a resolved decay horizon.
type Lifespan struct {
	Days   int
	Source LifespanSource
}

// LifespanRule is one step of a fallback chain. A nil Days means the rule
// has nothing to offer and the next one is tried.
type LifespanRule struct {
	Source LifespanSource
	Days   *int
}

// ResolveLifespan walks rules in order and returns the first one with a
// value. When every rule is empty the category default applies.
func ResolveLifespan(category *string, rules ...LifespanRule) Lifespan {
	for _, r := range rules {
		if r.Days != nil {
			return Lifespan{Days: *r.Days, Source: r.Source}
		}
	}
	return Lifespan{Days: ShelfLifeDaysFor(category), Source: LifespanCategory}
}

// PurchaseHistoryLifespan resolves user override, then observed cadence,
// then category.
func PurchaseHistoryLifespan(userShelfLifeDays, avgFrequencyDays *int, category *string) Lifespan {
	return ResolveLifespan(category,
		LifespanRule{Source: LifespanUserOverride, Days: userShelfLifeDays},
		LifespanRule{Source: LifespanFrequency, Days: avgFrequencyDays},
	)
}

// CupboardLifespan resolves the item's own shelf life, then category.
func CupboardLifespan(shelfLifeDays *int, category *string) Lifespan {
	return ResolveLifespan(category,
		LifespanRule{Source: LifespanUserOverride, Days: shelfLifeDays},
	)
}
