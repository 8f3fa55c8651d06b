package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/pantry-tracker/backend/internal/models"
	"github.com/pageza/pantry-tracker/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPurchaseHistoryRepository(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	runPurchaseHistoryTests(t, db)
}

func runPurchaseHistoryTests(t *testing.T, db *gorm.DB) {
	repo := NewPurchaseHistoryRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	record := &models.PurchaseHistory{
		UserID:        userID,
		ItemName:      "milk",
		LastPurchased: day(2025, 1, 1),
		PurchaseCount: 1,
		AvgQuantity:   strPtr("1"),
	}
	require.NoError(t, repo.Create(ctx, record))
	require.NotEqual(t, uuid.Nil, record.ID)

	t.Run("find by user and item", func(t *testing.T) {
		found, err := repo.FindByUserAndItem(ctx, userID, "milk")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, record.ID, found.ID)
		assert.Nil(t, found.AvgFrequencyDays)

		missing, err := repo.FindByUserAndItem(ctx, userID, "eggs")
		assert.NoError(t, err)
		assert.Nil(t, missing)

		other, err := repo.FindByUserAndItem(ctx, uuid.New(), "milk")
		assert.NoError(t, err)
		assert.Nil(t, other)
	})

	t.Run("partial update", func(t *testing.T) {
		err := repo.Update(ctx, record.ID, map[string]interface{}{
			"avg_frequency_days": 7,
			"purchase_count":     2,
		})
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, record.ID)
		require.NoError(t, err)
		require.NotNil(t, found.AvgFrequencyDays)
		assert.Equal(t, 7, *found.AvgFrequencyDays)
		assert.Equal(t, 2, found.PurchaseCount)
		assert.Equal(t, "1", *found.AvgQuantity)

		var cleared *int
		require.NoError(t, repo.Update(ctx, record.ID, map[string]interface{}{"avg_frequency_days": cleared}))
		found, err = repo.FindByID(ctx, record.ID)
		require.NoError(t, err)
		assert.Nil(t, found.AvgFrequencyDays)
	})

	t.Run("mark depleted", func(t *testing.T) {
		require.NoError(t, repo.MarkDepleted(ctx, record.ID))
		records, err := repo.FindByUserID(ctx, userID)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.True(t, records[0].IsDepleted)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, repo.MarkDepleted(ctx, uuid.New()), ErrNotFound)
	})

	t.Run("unique per user and item", func(t *testing.T) {
		dup := &models.PurchaseHistory{
			UserID:        userID,
			ItemName:      "milk",
			LastPurchased: day(2025, 2, 1),
			PurchaseCount: 1,
		}
		assert.Error(t, repo.Create(ctx, dup))
	})
}

func TestCupboardItemRepository(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := NewCupboardItemRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	older := &models.CupboardItem{UserID: userID, ItemName: "Rice", AddedDate: day(2025, 1, 1)}
	newer := &models.CupboardItem{UserID: userID, ItemName: "rice", AddedDate: day(2025, 3, 1), Category: strPtr("pantry")}
	foreign := &models.CupboardItem{UserID: uuid.New(), ItemName: "rice", AddedDate: day(2025, 3, 1)}
	for _, item := range []*models.CupboardItem{older, newer, foreign} {
		require.NoError(t, repo.Create(ctx, item))
	}

	t.Run("find by user", func(t *testing.T) {
		items, err := repo.FindByUserID(ctx, userID)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, older.ID, items[0].ID)
	})

	t.Run("find by user and item is case-insensitive and newest first", func(t *testing.T) {
		found, err := repo.FindByUserAndItem(ctx, userID, "RICE")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, newer.ID, found.ID)

		missing, err := repo.FindByUserAndItem(ctx, userID, "pasta")
		assert.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("update and count", func(t *testing.T) {
		require.NoError(t, repo.Update(ctx, older.ID, map[string]interface{}{
			"quantity":        "3",
			"shelf_life_days": 30,
		}))
		found, err := repo.FindByID(ctx, older.ID)
		require.NoError(t, err)
		assert.Equal(t, "3", *found.Quantity)
		assert.Equal(t, 30, *found.ShelfLifeDays)

		count, err := repo.CountByUserID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		require.NoError(t, repo.MarkDepleted(ctx, older.ID))
		count, err = repo.CountByUserID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, newer.ID))
		_, err := repo.FindByID(ctx, newer.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, newer.ID), ErrNotFound)
	})

	t.Run("update unknown id", func(t *testing.T) {
		err := repo.Update(ctx, uuid.New(), map[string]interface{}{"notes": "x"})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestReceiptItemRepository(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := NewReceiptItemRepository(db)
	ctx := context.Background()
	userID := uuid.New()
	firstReceipt, secondReceipt := uuid.New(), uuid.New()

	rows := []models.ReceiptItem{
		{ReceiptID: firstReceipt, UserID: userID, Name: "MILK 2%", NormalizedName: "milk", Unit: strPtr("l"), Category: strPtr("dairy"), CreatedAt: day(2025, 1, 1)},
		{ReceiptID: secondReceipt, UserID: userID, Name: "Milk", NormalizedName: "milk", Unit: strPtr("gal"), Category: strPtr("dairy"), CreatedAt: day(2025, 2, 1)},
		{ReceiptID: uuid.New(), UserID: uuid.New(), Name: "Milk", NormalizedName: "milk", Unit: strPtr("ml"), CreatedAt: day(2025, 3, 1)},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}

	detail, err := repo.FindLatestByNormalizedName(ctx, userID, "milk")
	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Equal(t, "gal", *detail.Unit)
	assert.Equal(t, "dairy", *detail.Category)
	assert.Equal(t, secondReceipt, detail.ReceiptID)

	spaced, err := repo.FindLatestByNormalizedName(ctx, userID, "  MILK ")
	require.NoError(t, err)
	require.NotNil(t, spaced)
	assert.Equal(t, secondReceipt, spaced.ReceiptID)

	missing, err := repo.FindLatestByNormalizedName(ctx, userID, "bread")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestShoppingListRepository(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := NewShoppingListRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	list, err := repo.GetOrCreateActiveList(ctx, userID)
	require.NoError(t, err)
	assert.True(t, list.IsActive)
	assert.Equal(t, DefaultShoppingListName, list.Name)

	again, err := repo.GetOrCreateActiveList(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, list.ID, again.ID)

	first := &models.ShoppingListItem{Name: "eggs"}
	second := &models.ShoppingListItem{Name: "milk", Quantity: strPtr("2")}
	require.NoError(t, repo.AppendItem(ctx, list.ID, first))
	require.NoError(t, repo.AppendItem(ctx, list.ID, second))
	assert.Equal(t, 0, first.OrderIndex)
	assert.Equal(t, 1, second.OrderIndex)

	var items []models.ShoppingListItem
	require.NoError(t, db.Where("list_id = ?", list.ID).Order("order_index").Find(&items).Error)
	require.Len(t, items, 2)
	assert.Equal(t, "milk", items[1].Name)
}

func TestPurchaseHistoryRepositoryPostgres(t *testing.T) {
	db := testhelpers.SetupPostgresContainer(t)
	runPurchaseHistoryTests(t, db)
}
