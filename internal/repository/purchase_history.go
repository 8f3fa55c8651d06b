package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pageza/pantry-tracker/backend/internal/models"
	"gorm.io/gorm"
)

// PurchaseHistoryRepository persists aggregated purchase statistics.
type PurchaseHistoryRepository struct {
	db *gorm.DB
}

func NewPurchaseHistoryRepository(db *gorm.DB) *PurchaseHistoryRepository {
	return &PurchaseHistoryRepository{db: db}
}

// FindByUserID returns every history row of the user, depleted or not.
func (r *PurchaseHistoryRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.PurchaseHistory, error) {
	var records []models.PurchaseHistory
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindByUserAndItem returns nil, nil when the user never bought the item.
func (r *PurchaseHistoryRepository) FindByUserAndItem(ctx context.Context, userID uuid.UUID, itemName string) (*models.PurchaseHistory, error) {
	var record models.PurchaseHistory
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND item_name = ?", userID, itemName).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *PurchaseHistoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.PurchaseHistory, error) {
	var record models.PurchaseHistory
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *PurchaseHistoryRepository) Create(ctx context.Context, record *models.PurchaseHistory) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// Update writes only the given columns. Nil values clear the column.
func (r *PurchaseHistoryRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&models.PurchaseHistory{}).
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

func (r *PurchaseHistoryRepository) MarkDepleted(ctx context.Context, id uuid.UUID) error {
	return r.Update(ctx, id, map[string]interface{}{"is_depleted": true})
}
