package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/pantry-tracker/backend/internal/models"
	"github.com/pageza/pantry-tracker/backend/internal/pantry"
	"github.com/pageza/pantry-tracker/backend/internal/types"
)

// PurchaseService folds purchase events into the per-item history. Receipt
// ingestion and shopping-trip checkout both go through RecordPurchase.
type PurchaseService struct {
	history PurchaseHistoryStore
	locker  KeyLocker
	now     func() time.Time
}

func NewPurchaseService(history PurchaseHistoryStore, locker KeyLocker) *PurchaseService {
	return &PurchaseService{
		history: history,
		locker:  locker,
		now:     time.Now,
	}
}

func purchaseLockKey(userID uuid.UUID, itemName string) string {
	return fmt.Sprintf("purchase:%s:%s", userID, itemName)
}

// RecordPurchase applies one purchase event. Concurrent calls for the same
// user and item are serialised; a quantity of zero or less counts as one.
func (s *PurchaseService) RecordPurchase(ctx context.Context, userID uuid.UUID, itemName string, purchaseDate time.Time, quantity float64, category *string) (*models.PurchaseHistory, error) {
	name := pantry.NormalizeItemName(itemName)
	if name == "" {
		return nil, fmt.Errorf("%w: item name is required", ErrInvalidInput)
	}
	if quantity <= 0 || math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		quantity = 1
	}
	purchaseDate = pantry.StartOfDay(purchaseDate)

	unlock, err := s.locker.Lock(ctx, purchaseLockKey(userID, name))
	if err != nil {
		return nil, fmt.Errorf("failed to lock purchase history: %w", err)
	}
	defer unlock()

	existing, err := s.history.FindByUserAndItem(ctx, userID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load purchase history: %w", err)
	}

	if existing == nil {
		record := newPurchaseRecord(userID, name, purchaseDate, quantity, category)
		if err := s.history.Create(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to create purchase history: %w", err)
		}
		return record, nil
	}

	next := applyPurchase(*existing, purchaseDate, quantity, category)
	if err := s.history.Update(ctx, existing.ID, map[string]interface{}{
		"last_purchased":         next.LastPurchased,
		"purchase_count":         next.PurchaseCount,
		"avg_quantity":           next.AvgQuantity,
		"avg_frequency_days":     next.AvgFrequencyDays,
		"estimated_deplete_date": next.EstimatedDepleteDate,
		"is_depleted":            next.IsDepleted,
	}); err != nil {
		return nil, fmt.Errorf("failed to update purchase history: %w", err)
	}
	return &next, nil
}

// RecordPurchases records a receipt or shopping trip. Every line is
// validated before anything is written.
func (s *PurchaseService) RecordPurchases(ctx context.Context, userID uuid.UUID, req *types.RecordPurchasesRequest) ([]*models.PurchaseHistory, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	for i, item := range req.Items {
		if pantry.NormalizeItemName(item.ItemName) == "" {
			return nil, fmt.Errorf("%w: item %d has no name", ErrInvalidInput, i)
		}
	}

	purchaseDate := s.now()
	if req.PurchaseDate != nil {
		purchaseDate = *req.PurchaseDate
	}

	records := make([]*models.PurchaseHistory, 0, len(req.Items))
	for _, item := range req.Items {
		record, err := s.RecordPurchase(ctx, userID, item.ItemName, purchaseDate, item.Quantity, item.Category)
		if err != nil {
			return records, err
		}
		records = append(records, record)
	}

	log.Printf("[PurchaseService] Recorded %d purchases from %s for user %s", len(records), req.Source, userID)
	return records, nil
}

func newPurchaseRecord(userID uuid.UUID, name string, purchaseDate time.Time, quantity float64, category *string) *models.PurchaseHistory {
	avg := pantry.FormatQuantity(quantity)
	deplete := pantry.DepletionDate(purchaseDate, pantry.ShelfLifeDaysFor(category))
	return &models.PurchaseHistory{
		UserID:               userID,
		ItemName:             name,
		LastPurchased:        purchaseDate,
		PurchaseCount:        1,
		AvgQuantity:          &avg,
		EstimatedDepleteDate: &deplete,
	}
}

// applyPurchase returns the history after one more purchase. A purchase
// dated before the last known one still counts toward quantity and count
// but never moves the cadence, the last purchase or the depletion estimate,
// and never restocks an item marked used up.
func applyPurchase(existing models.PurchaseHistory, purchaseDate time.Time, quantity float64, category *string) models.PurchaseHistory {
	next := existing

	gap := pantry.DaysBetween(existing.LastPurchased, purchaseDate)
	if gap > 0 {
		freq := gap
		if existing.AvgFrequencyDays != nil {
			freq = int(math.Round(float64(*existing.AvgFrequencyDays+gap) / 2))
		}
		next.AvgFrequencyDays = &freq
	}

	avg := pantry.AverageQuantity(existing.AvgQuantity, quantity)
	next.AvgQuantity = &avg

	if purchaseDate.After(existing.LastPurchased) {
		next.LastPurchased = purchaseDate
		lifespan := pantry.ShelfLifeDaysFor(category)
		if next.AvgFrequencyDays != nil {
			lifespan = *next.AvgFrequencyDays
		}
		deplete := pantry.DepletionDate(purchaseDate, lifespan)
		next.EstimatedDepleteDate = &deplete
		next.IsDepleted = false
	}

	next.PurchaseCount = existing.PurchaseCount + 1
	return next
}
