package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/pantry-tracker/backend/internal/models"
	"github.com/pageza/pantry-tracker/backend/internal/service"
	"github.com/pageza/pantry-tracker/backend/internal/types"
	"github.com/stretchr/testify/mock"
)

// MockAuthService is a mock implementation of IAuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}

func (m *MockAuthService) GenerateToken(claims *types.TokenClaims) (string, error) {
	args := m.Called(claims)
	return args.String(0), args.Error(1)
}

// MockPurchaseService is a mock implementation of IPurchaseService
type MockPurchaseService struct {
	mock.Mock
}

func (m *MockPurchaseService) RecordPurchase(ctx context.Context, userID uuid.UUID, itemName string, purchaseDate time.Time, quantity float64, category *string) (*models.PurchaseHistory, error) {
	args := m.Called(ctx, userID, itemName, purchaseDate, quantity, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PurchaseHistory), args.Error(1)
}

func (m *MockPurchaseService) RecordPurchases(ctx context.Context, userID uuid.UUID, req *types.RecordPurchasesRequest) ([]*models.PurchaseHistory, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PurchaseHistory), args.Error(1)
}

// MockPantryService is a mock implementation of IPantryService
type MockPantryService struct {
	mock.Mock
}

func (m *MockPantryService) GetUserPantry(ctx context.Context, userID uuid.UUID) ([]types.PantryItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.PantryItem), args.Error(1)
}

func (m *MockPantryService) AddManualItem(ctx context.Context, userID uuid.UUID, req *types.AddManualItemRequest) (*types.PantryItem, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.PantryItem), args.Error(1)
}

func (m *MockPantryService) MarkItemUsedUp(ctx context.Context, userID, id uuid.UUID, source types.ItemSource) error {
	return m.Called(ctx, userID, id, source).Error(0)
}

func (m *MockPantryService) ConfirmItemInStock(ctx context.Context, userID, id uuid.UUID, source types.ItemSource) error {
	return m.Called(ctx, userID, id, source).Error(0)
}

func (m *MockPantryService) UpdateItem(ctx context.Context, userID, id uuid.UUID, source types.ItemSource, req *types.UpdateItemRequest) error {
	return m.Called(ctx, userID, id, source, req).Error(0)
}

func (m *MockPantryService) DeleteManualItem(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockPantryService) GetCupboardCount(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockPantryService) GetCupboardStats(ctx context.Context, userID uuid.UUID) (*types.CupboardStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.CupboardStats), args.Error(1)
}

func (m *MockPantryService) GetExpiredItems(ctx context.Context, userID uuid.UUID) ([]types.PantryItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.PantryItem), args.Error(1)
}

func (m *MockPantryService) AddToShoppingList(ctx context.Context, userID uuid.UUID, req *types.AddToShoppingListRequest) (*models.ShoppingListItem, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShoppingListItem), args.Error(1)
}

func (m *MockPantryService) GetDashboardSummary(ctx context.Context, userID uuid.UUID) (*types.DashboardSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.DashboardSummary), args.Error(1)
}

// MockExportService is a mock implementation of IExportService
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) ExportPantry(ctx context.Context, userID uuid.UUID) (*types.ExportResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ExportResult), args.Error(1)
}

var (
	_ service.IAuthService     = (*MockAuthService)(nil)
	_ service.IPurchaseService = (*MockPurchaseService)(nil)
	_ service.IPantryService   = (*MockPantryService)(nil)
	_ service.IExportService   = (*MockExportService)(nil)
)
