package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pageza/pantry-tracker/backend/internal/models"
	"github.com/pageza/pantry-tracker/backend/internal/pantry"
	"github.com/pageza/pantry-tracker/backend/internal/types"
	"gorm.io/gorm"
)

// ReceiptItemRepository reads receipt lines for display metadata.
type ReceiptItemRepository struct {
	db *gorm.DB
}

func NewReceiptItemRepository(db *gorm.DB) *ReceiptItemRepository {
	return &ReceiptItemRepository{db: db}
}

// FindLatestByNormalizedName returns unit and category from the newest
// receipt line matching the name, or nil, nil. The name is normalised
// before matching, so case and spacing do not matter.
func (r *ReceiptItemRepository) FindLatestByNormalizedName(ctx context.Context, userID uuid.UUID, normalizedName string) (*types.ReceiptItemDetail, error) {
	var item models.ReceiptItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND normalized_name = ?", userID, pantry.NormalizeItemName(normalizedName)).
		Order("created_at desc").
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &types.ReceiptItemDetail{
		Unit:      item.Unit,
		Category:  item.Category,
		ReceiptID: item.ReceiptID,
	}, nil
}
