package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pageza/pantry-tracker/backend/internal/models"
	"gorm.io/gorm"
)

// CupboardItemRepository persists manually entered items.
type CupboardItemRepository struct {
	db *gorm.DB
}

func NewCupboardItemRepository(db *gorm.DB) *CupboardItemRepository {
	return &CupboardItemRepository{db: db}
}

func (r *CupboardItemRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.CupboardItem, error) {
	var items []models.CupboardItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_date asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByUserAndItem returns the most recently added item with the given
// name, compared case-insensitively, or nil, nil.
func (r *CupboardItemRepository) FindByUserAndItem(ctx context.Context, userID uuid.UUID, itemName string) (*models.CupboardItem, error) {
	var item models.CupboardItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND LOWER(item_name) = LOWER(?)", userID, itemName).
		Order("added_date desc").
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *CupboardItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.CupboardItem, error) {
	var item models.CupboardItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *CupboardItemRepository) Create(ctx context.Context, item *models.CupboardItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *CupboardItemRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&models.CupboardItem{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CupboardItemRepository) MarkDepleted(ctx context.Context, id uuid.UUID) error {
	return r.Update(ctx, id, map[string]interface{}{"is_depleted": true})
}

func (r *CupboardItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.CupboardItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByUserID counts the user's non-depleted manual items.
func (r *CupboardItemRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CupboardItem{}).
		Where("user_id = ? AND is_depleted = ?", userID, false).
		Count(&count).Error
	return count, err
}
