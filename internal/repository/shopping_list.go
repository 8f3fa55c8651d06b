package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pageza/pantry-tracker/backend/internal/models"
	"gorm.io/gorm"
)

// DefaultShoppingListName names lists created on demand.
const DefaultShoppingListName = "Shopping List"

// ShoppingListRepository manages the user's active shopping list.
type ShoppingListRepository struct {
	db *gorm.DB
}

func NewShoppingListRepository(db *gorm.DB) *ShoppingListRepository {
	return &ShoppingListRepository{db: db}
}

// GetOrCreateActiveList returns the user's active list, creating an empty
// one when none exists.
func (r *ShoppingListRepository) GetOrCreateActiveList(ctx context.Context, userID uuid.UUID) (*models.ShoppingList, error) {
	var list models.ShoppingList
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at desc").
		First(&list).Error
	if err == nil {
		return &list, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	list = models.ShoppingList{
		UserID:   userID,
		Name:     DefaultShoppingListName,
		IsActive: true,
	}
	if err := r.db.WithContext(ctx).Create(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to create shopping list: %w", err)
	}
	return &list, nil
}

// AppendItem adds item at the end of the list. OrderIndex is assigned here.
func (r *ShoppingListRepository) AppendItem(ctx context.Context, listID uuid.UUID, item *models.ShoppingListItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxIndex int
		if err := tx.Model(&models.ShoppingListItem{}).
			Where("list_id = ?", listID).
			Select("COALESCE(MAX(order_index), -1)").
			Scan(&maxIndex).Error; err != nil {
			return err
		}

		item.ListID = listID
		item.OrderIndex = maxIndex + 1
		return tx.Create(item).Error
	})
}
