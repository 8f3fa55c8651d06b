package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CupboardItem is an item the user added by hand rather than from a receipt.
type CupboardItem struct {
	ID            uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID        uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	ItemName      string    `gorm:"size:255;not null" json:"item_name"`
	Quantity      *string   `gorm:"size:32" json:"quantity"`
	Unit          *string   `gorm:"size:32" json:"unit"`
	Category      *string   `gorm:"size:64" json:"category"`
	AddedDate     time.Time `gorm:"not null" json:"added_date"`
	ShelfLifeDays *int      `json:"shelf_life_days"`
	Notes         *string   `gorm:"type:text" json:"notes"`
	IsDepleted    bool      `gorm:"not null;default:false" json:"is_depleted"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (CupboardItem) TableName() string {
	return "cupboard_items"
}

func (c *CupboardItem) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
