package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/pantry-tracker/backend/internal/models"
	"github.com/pageza/pantry-tracker/backend/internal/types"
)

// PurchaseHistoryStore persists aggregated purchase statistics. Lookups by
// user and item return nil, nil on a miss; id-based calls return
// repository.ErrNotFound.
type PurchaseHistoryStore interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.PurchaseHistory, error)
	FindByUserAndItem(ctx context.Context, userID uuid.UUID, itemName string) (*models.PurchaseHistory, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.PurchaseHistory, error)
	Create(ctx context.Context, record *models.PurchaseHistory) error
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	MarkDepleted(ctx context.Context, id uuid.UUID) error
}

// CupboardItemStore persists manually entered items.
type CupboardItemStore interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.CupboardItem, error)
	FindByUserAndItem(ctx context.Context, userID uuid.UUID, itemName string) (*models.CupboardItem, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.CupboardItem, error)
	Create(ctx context.Context, item *models.CupboardItem) error
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	MarkDepleted(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}

// ReceiptItemLookup supplies display metadata for receipt-sourced items.
type ReceiptItemLookup interface {
	FindLatestByNormalizedName(ctx context.Context, userID uuid.UUID, normalizedName string) (*types.ReceiptItemDetail, error)
}

// ShoppingListStore owns the user's active shopping list.
type ShoppingListStore interface {
	GetOrCreateActiveList(ctx context.Context, userID uuid.UUID) (*models.ShoppingList, error)
	AppendItem(ctx context.Context, listID uuid.UUID, item *models.ShoppingListItem) error
}

// KeyLocker serialises work on a single key. The returned func releases
// the lock and is safe to call more than once.
type KeyLocker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

// ObjectStorage stores exported documents and hands out temporary links.
type ObjectStorage interface {
	PutObject(ctx context.Context, key string, body []byte, contentType string) error
	GeneratePresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error)
}

// IAuthService validates and issues access tokens
type IAuthService interface {
	ValidateToken(token string) (*types.TokenClaims, error)
	GenerateToken(claims *types.TokenClaims) (string, error)
}

// IPurchaseService records purchase events into the history aggregate
type IPurchaseService interface {
	RecordPurchase(ctx context.Context, userID uuid.UUID, itemName string, purchaseDate time.Time, quantity float64, category *string) (*models.PurchaseHistory, error)
	RecordPurchases(ctx context.Context, userID uuid.UUID, req *types.RecordPurchasesRequest) ([]*models.PurchaseHistory, error)
}

// IPantryService defines the pantry view and its mutations
type IPantryService interface {
	GetUserPantry(ctx context.Context, userID uuid.UUID) ([]types.PantryItem, error)
	AddManualItem(ctx context.Context, userID uuid.UUID, req *types.AddManualItemRequest) (*types.PantryItem, error)
	MarkItemUsedUp(ctx context.Context, userID, id uuid.UUID, source types.ItemSource) error
	ConfirmItemInStock(ctx context.Context, userID, id uuid.UUID, source types.ItemSource) error
	UpdateItem(ctx context.Context, userID, id uuid.UUID, source types.ItemSource, req *types.UpdateItemRequest) error
	DeleteManualItem(ctx context.Context, userID, id uuid.UUID) error
	GetCupboardCount(ctx context.Context, userID uuid.UUID) (int, error)
	GetCupboardStats(ctx context.Context, userID uuid.UUID) (*types.CupboardStats, error)
	GetExpiredItems(ctx context.Context, userID uuid.UUID) ([]types.PantryItem, error)
	AddToShoppingList(ctx context.Context, userID uuid.UUID, req *types.AddToShoppingListRequest) (*models.ShoppingListItem, error)
	GetDashboardSummary(ctx context.Context, userID uuid.UUID) (*types.DashboardSummary, error)
}

// IExportService writes pantry snapshots to object storage
type IExportService interface {
	ExportPantry(ctx context.Context, userID uuid.UUID) (*types.ExportResult, error)
}

var (
	_ IAuthService     = (*AuthService)(nil)
	_ IPurchaseService = (*PurchaseService)(nil)
	_ IPantryService   = (*PantryService)(nil)
	_ IExportService   = (*ExportService)(nil)
	_ KeyLocker        = (*LocalKeyLocker)(nil)
	_ KeyLocker        = (*RedisKeyLocker)(nil)
)
