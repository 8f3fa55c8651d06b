package types

import "time"

// AddManualItemRequest is the body for adding an item by hand.
type AddManualItemRequest struct {
	ItemName      string  `json:"itemName" validate:"required,max=255"`
	Quantity      *string `json:"quantity" validate:"omitempty,numeric"`
	Unit          *string `json:"unit" validate:"omitempty,max=32"`
	Category      *string `json:"category" validate:"omitempty,max=64"`
	ShelfLifeDays *int    `json:"shelfLifeDays" validate:"omitempty,gte=0,lte=3650"`
	Notes         *string `json:"notes" validate:"omitempty,max=2000"`
}

// UpdateItemRequest carries the editable fields of a pantry entry. Every
// field is optional; receipt-sourced items only honour Quantity and
// ShelfLifeDays.
type UpdateItemRequest struct {
	Quantity      *string `json:"quantity" validate:"omitempty,numeric"`
	Category      *string `json:"category" validate:"omitempty,max=64"`
	ShelfLifeDays *int    `json:"shelfLifeDays" validate:"omitempty,gte=0,lte=3650"`
	Notes         *string `json:"notes" validate:"omitempty,max=2000"`
}

// AddToShoppingListRequest is the body for sending a pantry item to the
// active shopping list.
type AddToShoppingListRequest struct {
	ItemName string  `json:"itemName" validate:"required,max=255"`
	Quantity *string `json:"quantity" validate:"omitempty,max=32"`
	Unit     *string `json:"unit" validate:"omitempty,max=32"`
}

// PurchaseSource names the flow that produced a batch of purchases.
type PurchaseSource string

const (
	PurchaseFromReceipt      PurchaseSource = "receipt"
	PurchaseFromShoppingTrip PurchaseSource = "shopping_trip"
)

// PurchaseEvent is a single line of a purchase batch.
type PurchaseEvent struct {
	ItemName string  `json:"itemName" validate:"required,max=255"`
	Quantity float64 `json:"quantity"`
	Category *string `json:"category" validate:"omitempty,max=64"`
}

// RecordPurchasesRequest is the body for recording a receipt or a
// completed shopping trip.
type RecordPurchasesRequest struct {
	Source       PurchaseSource  `json:"source" validate:"required,oneof=receipt shopping_trip"`
	PurchaseDate *time.Time      `json:"purchaseDate"`
	Items        []PurchaseEvent `json:"items" validate:"required,min=1,dive"`
}
