package pantry

import (
	"errors"
	"fmt"
)

// StockLevel buckets a confidence score for the cupboard summary.
type StockLevel string

const (
	StockInStock      StockLevel = "in_stock"
	StockRunningLow   StockLevel = "running_low"
	StockNeedsRestock StockLevel = "needs_restock"
)

// Thresholds tune which items are shown and how they are bucketed.
type Thresholds struct {
	// PantryCutoff: items at or below it are hidden from the pantry view.
	PantryCutoff float64
	// InStock is the lower bound of the in-stock bucket.
	InStock float64
	// ExpiryWindowDays bounds how far back an expired item may date.
	ExpiryWindowDays int
}

var ErrInvalidThresholds = errors.New("invalid pantry thresholds")

// DefaultThresholds returns the stock 0.2 / 0.5 / 60-day tuning.
func DefaultThresholds() Thresholds {
	return Thresholds{
		PantryCutoff:     0.2,
		InStock:          0.5,
		ExpiryWindowDays: 60,
	}
}

// Validate checks that the buckets are ordered and the window is positive.
func (t Thresholds) Validate() error {
	if t.PantryCutoff < 0 || t.PantryCutoff >= t.InStock || t.InStock > 1 {
		return fmt.Errorf("%w: need 0 <= cutoff (%v) < in_stock (%v) <= 1", ErrInvalidThresholds, t.PantryCutoff, t.InStock)
	}
	if t.ExpiryWindowDays <= 0 {
		return fmt.Errorf("%w: expiry window must be positive, got %d", ErrInvalidThresholds, t.ExpiryWindowDays)
	}
	return nil
}

// Visible reports whether an item with confidence c belongs in the pantry view.
func (t Thresholds) Visible(c float64) bool {
	return c > t.PantryCutoff
}

// Classify places c into a stock bucket.
func (t Thresholds) Classify(c float64) StockLevel {
	switch {
	case c >= t.InStock:
		return StockInStock
	case c >= t.PantryCutoff:
		return StockRunningLow
	default:
		return StockNeedsRestock
	}
}
