package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PurchaseHistory aggregates every recorded purchase of one item by one user.
// Rows are never deleted so that future purchases keep averaging against them.
type PurchaseHistory struct {
	ID                   uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID               uuid.UUID  `gorm:"type:varchar(36);not null;uniqueIndex:idx_purchase_history_user_item" json:"user_id"`
	ItemName             string     `gorm:"size:255;not null;uniqueIndex:idx_purchase_history_user_item" json:"item_name"`
	LastPurchased        time.Time  `gorm:"not null" json:"last_purchased"`
	PurchaseCount        int        `gorm:"not null;default:1" json:"purchase_count"`
	AvgQuantity          *string    `gorm:"size:32" json:"avg_quantity"`
	AvgFrequencyDays     *int       `json:"avg_frequency_days"`
	EstimatedDepleteDate *time.Time `json:"estimated_deplete_date"`
	UserOverrideDate     *time.Time `json:"user_override_date"`
	UserShelfLifeDays    *int       `json:"user_shelf_life_days"`
	UserQuantityOverride *string    `gorm:"size:32" json:"user_quantity_override"`
	IsDepleted           bool       `gorm:"not null;default:false" json:"is_depleted"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// TableName returns the table name for the PurchaseHistory model
func (PurchaseHistory) TableName() string {
	return "purchase_history"
}

func (p *PurchaseHistory) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ReferenceDate is the date decay is measured from: a user confirmation
// overrides the last purchase.
func (p *PurchaseHistory) ReferenceDate() time.Time {
	if p.UserOverrideDate != nil {
		return *p.UserOverrideDate
	}
	return p.LastPurchased
}
