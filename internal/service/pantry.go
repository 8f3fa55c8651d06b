package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/pantry-tracker/backend/internal/models"
	"github.com/pageza/pantry-tracker/backend/internal/pantry"
	"github.com/pageza/pantry-tracker/backend/internal/repository"
	"github.com/pageza/pantry-tracker/backend/internal/types"
)

// ShoppingListNote marks list items that were sent from the pantry view.
const ShoppingListNote = "Added from Cupboard"

// PantryService merges purchase history and manual cupboard items into one
// ranked estimate of what the user has on hand.
type PantryService struct {
	history    PurchaseHistoryStore
	cupboard   CupboardItemStore
	receipts   ReceiptItemLookup
	lists      ShoppingListStore
	thresholds pantry.Thresholds
	now        func() time.Time
}

func NewPantryService(
	history PurchaseHistoryStore,
	cupboard CupboardItemStore,
	receipts ReceiptItemLookup,
	lists ShoppingListStore,
	thresholds pantry.Thresholds,
) *PantryService {
	return &PantryService{
		history:    history,
		cupboard:   cupboard,
		receipts:   receipts,
		lists:      lists,
		thresholds: thresholds,
		now:        time.Now,
	}
}

// scoredItem keeps the date decay was measured from next to the projection.
type scoredItem struct {
	item      types.PantryItem
	reference time.Time
}

// GetUserPantry returns visible items, most confident first.
func (s *PantryService) GetUserPantry(ctx context.Context, userID uuid.UUID) ([]types.PantryItem, error) {
	all, err := s.collect(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.visible(all), nil
}

func (s *PantryService) AddManualItem(ctx context.Context, userID uuid.UUID, req *types.AddManualItemRequest) (*types.PantryItem, error) {
	if req == nil || strings.TrimSpace(req.ItemName) == "" {
		return nil, fmt.Errorf("%w: item name is required", ErrInvalidInput)
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	item := &models.CupboardItem{
		UserID:        userID,
		ItemName:      strings.TrimSpace(req.ItemName),
		Quantity:      nonBlank(req.Quantity),
		Unit:          nonBlank(req.Unit),
		Category:      nonBlank(req.Category),
		AddedDate:     s.now(),
		ShelfLifeDays: req.ShelfLifeDays,
		Notes:         nonBlank(req.Notes),
	}
	if err := s.cupboard.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create cupboard item: %w", err)
	}

	scored := s.scoreCupboardItem(item, item.AddedDate)
	return &scored.item, nil
}

func (s *PantryService) MarkItemUsedUp(ctx context.Context, userID, id uuid.UUID, source types.ItemSource) error {
	switch source {
	case types.SourceReceipt:
		if _, err := s.findHistory(ctx, userID, id); err != nil {
			return err
		}
		if err := s.history.MarkDepleted(ctx, id); err != nil {
			return storeError("mark purchase history depleted", err)
		}
	case types.SourceManual:
		if _, err := s.findCupboardItem(ctx, userID, id); err != nil {
			return err
		}
		if err := s.cupboard.MarkDepleted(ctx, id); err != nil {
			return storeError("mark cupboard item depleted", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSource, source)
	}
	return nil
}

// ConfirmItemInStock restarts decay for a receipt item from today and
// brings back a depleted item. Purchase statistics are left untouched.
func (s *PantryService) ConfirmItemInStock(ctx context.Context, userID, id uuid.UUID, source types.ItemSource) error {
	switch source {
	case types.SourceReceipt:
		if _, err := s.findHistory(ctx, userID, id); err != nil {
			return err
		}
		if err := s.history.Update(ctx, id, map[string]interface{}{
			"user_override_date": s.now(),
			"is_depleted":        false,
		}); err != nil {
			return storeError("confirm purchase history", err)
		}
	case types.SourceManual:
		if _, err := s.findCupboardItem(ctx, userID, id); err != nil {
			return err
		}
		if err := s.cupboard.Update(ctx, id, map[string]interface{}{"is_depleted": false}); err != nil {
			return storeError("confirm cupboard item", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSource, source)
	}
	return nil
}

// UpdateItem edits a pantry entry. Receipt items only take quantity and
// shelf life overrides; their category always comes from receipt data.
func (s *PantryService) UpdateItem(ctx context.Context, userID, id uuid.UUID, source types.ItemSource, req *types.UpdateItemRequest) error {
	if req == nil {
		return fmt.Errorf("%w: empty update", ErrInvalidInput)
	}
	if err := validateRequest(req); err != nil {
		return err
	}

	switch source {
	case types.SourceReceipt:
		if _, err := s.findHistory(ctx, userID, id); err != nil {
			return err
		}
		fields := map[string]interface{}{}
		if req.Quantity != nil {
			fields["user_quantity_override"] = nonBlank(req.Quantity)
		}
		if req.ShelfLifeDays != nil {
			fields["user_shelf_life_days"] = *req.ShelfLifeDays
		}
		if req.Category != nil || req.Notes != nil {
			log.Printf("[PantryService] Ignoring category/notes update on receipt item %s", id)
		}
		if len(fields) == 0 {
			return nil
		}
		if err := s.history.Update(ctx, id, fields); err != nil {
			return storeError("update purchase history", err)
		}
	case types.SourceManual:
		if _, err := s.findCupboardItem(ctx, userID, id); err != nil {
			return err
		}
		fields := map[string]interface{}{}
		if req.Quantity != nil {
			fields["quantity"] = nonBlank(req.Quantity)
		}
		if req.Category != nil {
			fields["category"] = nonBlank(req.Category)
		}
		if req.ShelfLifeDays != nil {
			fields["shelf_life_days"] = *req.ShelfLifeDays
		}
		if req.Notes != nil {
			fields["notes"] = nonBlank(req.Notes)
		}
		if len(fields) == 0 {
			return nil
		}
		if err := s.cupboard.Update(ctx, id, fields); err != nil {
			return storeError("update cupboard item", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSource, source)
	}
	return nil
}

// DeleteManualItem removes a cupboard item for good. Purchase history has
// no delete path.
func (s *PantryService) DeleteManualItem(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.findCupboardItem(ctx, userID, id); err != nil {
		return err
	}
	if err := s.cupboard.Delete(ctx, id); err != nil {
		return storeError("delete cupboard item", err)
	}
	return nil
}

// GetCupboardCount is the size of the pantry view.
func (s *PantryService) GetCupboardCount(ctx context.Context, userID uuid.UUID) (int, error) {
	items, err := s.GetUserPantry(ctx, userID)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// GetCupboardStats buckets every non-depleted item, including those hidden
// from the pantry view.
func (s *PantryService) GetCupboardStats(ctx context.Context, userID uuid.UUID) (*types.CupboardStats, error) {
	all, err := s.collect(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats := s.stats(all)
	return &stats, nil
}

// GetExpiredItems lists items that have decayed out of the pantry view
// recently enough to still be worth restocking, newest first.
func (s *PantryService) GetExpiredItems(ctx context.Context, userID uuid.UUID) ([]types.PantryItem, error) {
	all, err := s.collect(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.expired(all), nil
}

func (s *PantryService) AddToShoppingList(ctx context.Context, userID uuid.UUID, req *types.AddToShoppingListRequest) (*models.ShoppingListItem, error) {
	if req == nil || strings.TrimSpace(req.ItemName) == "" {
		return nil, fmt.Errorf("%w: item name is required", ErrInvalidInput)
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	list, err := s.lists.GetOrCreateActiveList(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get active shopping list: %w", err)
	}

	note := ShoppingListNote
	item := &models.ShoppingListItem{
		Name:     strings.TrimSpace(req.ItemName),
		Quantity: nonBlank(req.Quantity),
		Unit:     nonBlank(req.Unit),
		Notes:    &note,
	}
	if err := s.lists.AppendItem(ctx, list.ID, item); err != nil {
		return nil, fmt.Errorf("failed to append shopping list item: %w", err)
	}
	return item, nil
}

// GetDashboardSummary computes the cupboard figures shown on the dashboard
// from a single read of both stores.
func (s *PantryService) GetDashboardSummary(ctx context.Context, userID uuid.UUID) (*types.DashboardSummary, error) {
	all, err := s.collect(ctx, userID)
	if err != nil {
		return nil, err
	}
	manual, err := s.cupboard.CountByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count cupboard items: %w", err)
	}
	return &types.DashboardSummary{
		CupboardCount:   len(s.visible(all)),
		ManualItemCount: manual,
		ExpiredCount:    len(s.expired(all)),
		Stats:           s.stats(all),
	}, nil
}

// collect scores every non-depleted item of the user, receipt items first,
// each group in store order.
func (s *PantryService) collect(ctx context.Context, userID uuid.UUID) ([]scoredItem, error) {
	now := s.now()

	records, err := s.history.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load purchase history: %w", err)
	}
	cupboard, err := s.cupboard.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cupboard items: %w", err)
	}

	out := make([]scoredItem, 0, len(records)+len(cupboard))
	for i := range records {
		if records[i].IsDepleted {
			continue
		}
		detail, err := s.receipts.FindLatestByNormalizedName(ctx, userID, records[i].ItemName)
		if err != nil {
			return nil, fmt.Errorf("failed to look up receipt item: %w", err)
		}
		out = append(out, s.scorePurchaseHistory(&records[i], detail, now))
	}
	for i := range cupboard {
		if cupboard[i].IsDepleted {
			continue
		}
		out = append(out, s.scoreCupboardItem(&cupboard[i], now))
	}
	return out, nil
}

func (s *PantryService) scorePurchaseHistory(rec *models.PurchaseHistory, detail *types.ReceiptItemDetail, now time.Time) scoredItem {
	unit := pantry.DefaultUnit
	var category *string
	if detail != nil {
		if detail.Unit != nil && *detail.Unit != "" {
			unit = *detail.Unit
		}
		category = detail.Category
	}

	lifespan := pantry.PurchaseHistoryLifespan(rec.UserShelfLifeDays, rec.AvgFrequencyDays, category)
	reference := rec.ReferenceDate()
	quantity := pantry.ResolveQuantity(rec.UserQuantityOverride, rec.AvgQuantity)
	days := pantry.DaysBetween(reference, now)
	deplete := pantry.DepletionDate(reference, lifespan.Days)
	count := rec.PurchaseCount

	return scoredItem{
		reference: reference,
		item: types.PantryItem{
			ID:                   rec.ID,
			ItemName:             rec.ItemName,
			LastPurchased:        rec.LastPurchased,
			Quantity:             quantity,
			Unit:                 unit,
			Category:             category,
			StockConfidence:      pantry.Confidence(days, lifespan.Days, pantry.ParseQuantity(quantity)),
			EstimatedDepleteDate: &deplete,
			DaysSincePurchase:    nonNegative(days),
			Source:               types.SourceReceipt,
			IsDepleted:           rec.IsDepleted,
			UserOverrideDate:     rec.UserOverrideDate,
			ConfidenceFactors: types.ConfidenceFactors{
				EffectiveLifespanDays: lifespan.Days,
				LifespanSource:        lifespan.Source,
				BaseConfidence:        pantry.BaseConfidence(days, lifespan.Days),
				PurchaseCount:         &count,
			},
		},
	}
}

func (s *PantryService) scoreCupboardItem(item *models.CupboardItem, now time.Time) scoredItem {
	unit := pantry.DefaultUnit
	if item.Unit != nil && *item.Unit != "" {
		unit = *item.Unit
	}

	lifespan := pantry.CupboardLifespan(item.ShelfLifeDays, item.Category)
	reference := item.AddedDate
	quantity := pantry.ResolveQuantity(item.Quantity)
	days := pantry.DaysBetween(reference, now)
	deplete := pantry.DepletionDate(reference, lifespan.Days)

	return scoredItem{
		reference: reference,
		item: types.PantryItem{
			ID:                   item.ID,
			ItemName:             item.ItemName,
			LastPurchased:        item.AddedDate,
			Quantity:             quantity,
			Unit:                 unit,
			Category:             item.Category,
			StockConfidence:      pantry.Confidence(days, lifespan.Days, pantry.ParseQuantity(quantity)),
			EstimatedDepleteDate: &deplete,
			DaysSincePurchase:    nonNegative(days),
			Source:               types.SourceManual,
			IsDepleted:           item.IsDepleted,
			ConfidenceFactors: types.ConfidenceFactors{
				EffectiveLifespanDays: lifespan.Days,
				LifespanSource:        lifespan.Source,
				BaseConfidence:        pantry.BaseConfidence(days, lifespan.Days),
				EffectiveDate:         &reference,
			},
		},
	}
}

func (s *PantryService) visible(all []scoredItem) []types.PantryItem {
	items := make([]types.PantryItem, 0, len(all))
	for _, si := range all {
		if s.thresholds.Visible(si.item.StockConfidence) {
			items = append(items, si.item)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].StockConfidence > items[j].StockConfidence
	})
	return items
}

func (s *PantryService) stats(all []scoredItem) types.CupboardStats {
	var stats types.CupboardStats
	for _, si := range all {
		stats.TotalItems++
		switch s.thresholds.Classify(si.item.StockConfidence) {
		case pantry.StockInStock:
			stats.InStock++
		case pantry.StockRunningLow:
			stats.RunningLow++
		default:
			stats.NeedsRestock++
		}
		if stats.LastStocked == nil || si.reference.After(*stats.LastStocked) {
			ref := si.reference
			stats.LastStocked = &ref
		}
	}
	return stats
}

func (s *PantryService) expired(all []scoredItem) []types.PantryItem {
	cutoff := s.now().AddDate(0, 0, -s.thresholds.ExpiryWindowDays)
	items := make([]types.PantryItem, 0)
	for _, si := range all {
		if s.thresholds.Visible(si.item.StockConfidence) || si.reference.Before(cutoff) {
			continue
		}
		items = append(items, si.item)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].LastPurchased.After(items[j].LastPurchased)
	})
	return items
}

func (s *PantryService) findHistory(ctx context.Context, userID, id uuid.UUID) (*models.PurchaseHistory, error) {
	rec, err := s.history.FindByID(ctx, id)
	if err != nil {
		return nil, storeError("find purchase history", err)
	}
	if rec.UserID != userID {
		return nil, ErrItemNotFound
	}
	return rec, nil
}

func (s *PantryService) findCupboardItem(ctx context.Context, userID, id uuid.UUID) (*models.CupboardItem, error) {
	item, err := s.cupboard.FindByID(ctx, id)
	if err != nil {
		return nil, storeError("find cupboard item", err)
	}
	if item.UserID != userID {
		return nil, ErrItemNotFound
	}
	return item, nil
}

// storeError maps a store miss to ErrItemNotFound and wraps anything else.
func storeError(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrItemNotFound
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func nonBlank(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
