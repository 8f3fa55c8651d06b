package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/pageza/pantry-tracker/backend/internal/pantry"
)

// ItemSource tells callers which store a pantry entry came from so that
// mutations can be routed back to it.
type ItemSource string

const (
	SourceReceipt ItemSource = "receipt"
	SourceManual  ItemSource = "manual"
)

// ParseItemSource validates a source coming from a request path.
func ParseItemSource(s string) (ItemSource, bool) {
	switch ItemSource(s) {
	case SourceReceipt, SourceManual:
		return ItemSource(s), true
	}
	return "", false
}

// ConfidenceFactors explains how a stock confidence was derived.
type ConfidenceFactors struct {
	EffectiveLifespanDays int                   `json:"effectiveLifespanDays"`
	LifespanSource        pantry.LifespanSource `json:"lifespanSource"`
	BaseConfidence        float64               `json:"baseConfidence"`
	PurchaseCount         *int                  `json:"purchaseCount,omitempty"`
	EffectiveDate         *time.Time            `json:"effectiveDate,omitempty"`
}

// PantryItem is the ranked, derived view of something probably on hand.
type PantryItem struct {
	ID                   uuid.UUID         `json:"id"`
	ItemName             string            `json:"itemName"`
	LastPurchased        time.Time         `json:"lastPurchased"`
	Quantity             string            `json:"quantity"`
	Unit                 string            `json:"unit"`
	Category             *string           `json:"category"`
	StockConfidence      float64           `json:"stockConfidence"`
	EstimatedDepleteDate *time.Time        `json:"estimatedDepleteDate"`
	DaysSincePurchase    int               `json:"daysSincePurchase"`
	Source               ItemSource        `json:"source"`
	IsDepleted           bool              `json:"isDepleted"`
	UserOverrideDate     *time.Time        `json:"userOverrideDate,omitempty"`
	ConfidenceFactors    ConfidenceFactors `json:"confidenceFactors"`
}

// CupboardStats summarises every non-depleted item, including ones too
// stale to show in the pantry view.
type CupboardStats struct {
	TotalItems   int        `json:"totalItems"`
	InStock      int        `json:"inStock"`
	RunningLow   int        `json:"runningLow"`
	NeedsRestock int        `json:"needsRestock"`
	LastStocked  *time.Time `json:"lastStocked"`
}

// ReceiptItemDetail is display metadata for a receipt-sourced pantry row.
type ReceiptItemDetail struct {
	Unit      *string   `json:"unit"`
	Category  *string   `json:"category"`
	ReceiptID uuid.UUID `json:"receiptId"`
}

// PantryExport is the document written by a pantry snapshot export.
type PantryExport struct {
	UserID      uuid.UUID     `json:"userId"`
	GeneratedAt time.Time     `json:"generatedAt"`
	Items       []PantryItem  `json:"items"`
	Stats       CupboardStats `json:"stats"`
}

// ExportResult points at an uploaded snapshot.
type ExportResult struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
	ItemCount int       `json:"itemCount"`
}

// DashboardSummary is the cupboard section of the user dashboard.
type DashboardSummary struct {
	CupboardCount   int           `json:"cupboardCount"`
	ManualItemCount int64         `json:"manualItemCount"`
	ExpiredCount    int           `json:"expiredCount"`
	Stats           CupboardStats `json:"stats"`
}
