package pantry

import (
	"math"
	"time"
)

const quantityBoostFactor = 0.1

// BaseConfidence is the linear decay term of Confidence, clamped to [0,1].
func BaseConfidence(daysSincePurchase, lifespanDays int) float64 {
	if daysSincePurchase <= 0 {
		return 1
	}
	if lifespanDays <= 0 || daysSincePurchase >= lifespanDays {
		return 0
	}
	return 1 - float64(daysSincePurchase)/float64(lifespanDays)
}

// Confidence estimates how likely an item is still on hand. Items bought in
// bulk decay a little slower through a logarithmic quantity boost. Once the
// lifespan has fully elapsed the result is 0 regardless of quantity.
func Confidence(daysSincePurchase, lifespanDays int, quantity float64) float64 {
	if daysSincePurchase <= 0 {
		return 1
	}
	if lifespanDays <= 0 || daysSincePurchase >= lifespanDays {
		return 0
	}

	c := BaseConfidence(daysSincePurchase, lifespanDays)
	if quantity > 1 {
		c += math.Log(quantity) * quantityBoostFactor
	}
	return clamp(c, 0, 1)
}

// DepletionDate is the calendar date lifespanDays after lastPurchased.
func DepletionDate(lastPurchased time.Time, lifespanDays int) time.Time {
	return lastPurchased.AddDate(0, 0, lifespanDays)
}

// DaysBetween returns the whole number of days from start to end, rounding
// toward negative infinity.
func DaysBetween(start, end time.Time) int {
	return int(math.Floor(end.Sub(start).Hours() / 24))
}

// StartOfDay truncates t to midnight UTC.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
