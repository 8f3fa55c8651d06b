package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShoppingList struct {
	ID        uuid.UUID          `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID          `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Name      string             `gorm:"size:255;not null" json:"name"`
	IsActive  bool               `gorm:"not null;default:true" json:"is_active"`
	Items     []ShoppingListItem `gorm:"foreignKey:ListID" json:"items,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func (l *ShoppingList) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

type ShoppingListItem struct {
	ID         uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	ListID     uuid.UUID `gorm:"type:varchar(36);not null;index" json:"list_id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Quantity   *string   `gorm:"size:32" json:"quantity"`
	Unit       *string   `gorm:"size:32" json:"unit"`
	Notes      *string   `gorm:"type:text" json:"notes"`
	OrderIndex int       `gorm:"not null;default:0" json:"order_index"`
	IsChecked  bool      `gorm:"not null;default:false" json:"is_checked"`
	CreatedAt  time.Time `json:"created_at"`
}

func (i *ShoppingListItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
