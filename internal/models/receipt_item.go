package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReceiptItem is one normalised line of a scanned receipt. Rows are written
// by receipt ingestion; the pantry only reads them for display metadata.
type ReceiptItem struct {
	ID             uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	ReceiptID      uuid.UUID `gorm:"type:varchar(36);not null;index" json:"receipt_id"`
	UserID         uuid.UUID `gorm:"type:varchar(36);not null;index:idx_receipt_items_user_name" json:"user_id"`
	Name           string    `gorm:"size:255;not null" json:"name"`
	NormalizedName string    `gorm:"size:255;not null;index:idx_receipt_items_user_name" json:"normalized_name"`
	Quantity       *string   `gorm:"size:32" json:"quantity"`
	Unit           *string   `gorm:"size:32" json:"unit"`
	Category       *string   `gorm:"size:64" json:"category"`
	CreatedAt      time.Time `json:"created_at"`
}

func (ReceiptItem) TableName() string {
	return "receipt_items"
}

func (r *ReceiptItem) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
