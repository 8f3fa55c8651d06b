package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/pantry-tracker/backend/internal/models"
	"github.com/pageza/pantry-tracker/backend/internal/pantry"
	"github.com/pageza/pantry-tracker/backend/internal/repository"
	"github.com/pageza/pantry-tracker/backend/internal/testhelpers"
	"github.com/pageza/pantry-tracker/backend/internal/types"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func daysAgo(n int) time.Time {
	return pantry.StartOfDay(testNow).AddDate(0, 0, -n)
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

type pantryFixture struct {
	db       *gorm.DB
	svc      *PantryService
	history  *repository.PurchaseHistoryRepository
	cupboard *repository.CupboardItemRepository
	userID   uuid.UUID
}

func newPantryFixture(t *testing.T) *pantryFixture {
	t.Helper()
	db := testhelpers.SetupTestDB(t)
	history := repository.NewPurchaseHistoryRepository(db)
	cupboard := repository.NewCupboardItemRepository(db)
	svc := NewPantryService(
		history,
		cupboard,
		repository.NewReceiptItemRepository(db),
		repository.NewShoppingListRepository(db),
		pantry.DefaultThresholds(),
	)
	svc.now = fixedClock
	return &pantryFixture{
		db:       db,
		svc:      svc,
		history:  history,
		cupboard: cupboard,
		userID:   uuid.New(),
	}
}

// addHistory seeds a purchase history row bought n days ago.
func (f *pantryFixture) addHistory(t *testing.T, name string, n int, freq *int) *models.PurchaseHistory {
	t.Helper()
	rec := &models.PurchaseHistory{
		UserID:           f.userID,
		ItemName:         name,
		LastPurchased:    daysAgo(n),
		PurchaseCount:    2,
		AvgQuantity:      strPtr("1"),
		AvgFrequencyDays: freq,
	}
	require.NoError(t, f.history.Create(context.Background(), rec))
	return rec
}

// addCupboard seeds a manual item added n days ago.
func (f *pantryFixture) addCupboard(t *testing.T, name string, n int, shelfLife *int) *models.CupboardItem {
	t.Helper()
	item := &models.CupboardItem{
		UserID:        f.userID,
		ItemName:      name,
		AddedDate:     daysAgo(n),
		ShelfLifeDays: shelfLife,
	}
	require.NoError(t, f.cupboard.Create(context.Background(), item))
	return item
}

func (f *pantryFixture) addReceiptLine(t *testing.T, name, unit, category string) {
	t.Helper()
	require.NoError(t, f.db.Create(&models.ReceiptItem{
		ReceiptID:      uuid.New(),
		UserID:         f.userID,
		Name:           name,
		NormalizedName: pantry.NormalizeItemName(name),
		Unit:           strPtr(unit),
		Category:       strPtr(category),
	}).Error)
}

func findItem(items []types.PantryItem, name string) *types.PantryItem {
	for i := range items {
		if items[i].ItemName == name {
			return &items[i]
		}
	}
	return nil
}

// MockPurchaseHistoryStore is a testify mock of PurchaseHistoryStore
type MockPurchaseHistoryStore struct {
	mock.Mock
}

func (m *MockPurchaseHistoryStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.PurchaseHistory, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PurchaseHistory), args.Error(1)
}

func (m *MockPurchaseHistoryStore) FindByUserAndItem(ctx context.Context, userID uuid.UUID, itemName string) (*models.PurchaseHistory, error) {
	args := m.Called(ctx, userID, itemName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PurchaseHistory), args.Error(1)
}

func (m *MockPurchaseHistoryStore) FindByID(ctx context.Context, id uuid.UUID) (*models.PurchaseHistory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PurchaseHistory), args.Error(1)
}

func (m *MockPurchaseHistoryStore) Create(ctx context.Context, record *models.PurchaseHistory) error {
	return m.Called(ctx, record).Error(0)
}

func (m *MockPurchaseHistoryStore) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return m.Called(ctx, id, fields).Error(0)
}

func (m *MockPurchaseHistoryStore) MarkDepleted(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
