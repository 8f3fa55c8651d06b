package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pageza/pantry-tracker/backend/internal/models"
	"github.com/pageza/pantry-tracker/backend/internal/service"
	"github.com/pageza/pantry-tracker/backend/internal/testhelpers/mocks"
	"github.com/pageza/pantry-tracker/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testToken = "valid-token"

type apiFixture struct {
	router   *gin.Engine
	userID   uuid.UUID
	auth     *mocks.MockAuthService
	pantry   *mocks.MockPantryService
	purchase *mocks.MockPurchaseService
	export   *mocks.MockExportService
	writes   int
	pingErr  error
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &apiFixture{
		userID:   uuid.New(),
		auth:     new(mocks.MockAuthService),
		pantry:   new(mocks.MockPantryService),
		purchase: new(mocks.MockPurchaseService),
		export:   new(mocks.MockExportService),
	}
	f.auth.On("ValidateToken", testToken).Return(&types.TokenClaims{UserID: f.userID, Username: "sam"}, nil)
	f.auth.On("ValidateToken", mock.Anything).Return(nil, service.ErrInvalidToken)

	f.router = gin.New()
	SetupAPI(f.router, Services{
		Auth:     f.auth,
		Pantry:   f.pantry,
		Purchase: f.purchase,
		Export:   f.export,
		PingDB:   func(ctx context.Context) error { return f.pingErr },
		WriteLimit: func(c *gin.Context) {
			f.writes++
			c.Next()
		},
	})

	t.Cleanup(func() {
		f.pantry.AssertExpectations(t)
		f.purchase.AssertExpectations(t)
		f.export.AssertExpectations(t)
	})
	return f
}

func (f *apiFixture) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			json.NewEncoder(&buf).Encode(b)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testToken)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestAuthRequired(t *testing.T) {
	f := newAPIFixture(t)

	for _, path := range []string{"/api/v1/pantry", "/api/v1/dashboard/stats"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)

		req = httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer forged")
		w = httptest.NewRecorder()
		f.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestGetPantry(t *testing.T) {
	f := newAPIFixture(t)
	items := []types.PantryItem{
		{ID: uuid.New(), ItemName: "milk", Quantity: "2", Unit: "gallon", StockConfidence: 0.8, Source: types.SourceReceipt},
		{ID: uuid.New(), ItemName: "rice", Quantity: "1", Unit: "unit", StockConfidence: 0.6, Source: types.SourceManual},
	}
	f.pantry.On("GetUserPantry", mock.Anything, f.userID).Return(items, nil)

	w := f.do(http.MethodGet, "/api/v1/pantry", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items []types.PantryItem `json:"items"`
		Count int                `json:"count"`
	}
	decode(t, w, &resp)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "milk", resp.Items[0].ItemName)
	assert.Equal(t, types.SourceManual, resp.Items[1].Source)
	assert.Zero(t, f.writes)
}

func TestPantryReads(t *testing.T) {
	f := newAPIFixture(t)
	stocked := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	f.pantry.On("GetCupboardCount", mock.Anything, f.userID).Return(7, nil)
	f.pantry.On("GetCupboardStats", mock.Anything, f.userID).Return(&types.CupboardStats{TotalItems: 7, InStock: 4, RunningLow: 3, LastStocked: &stocked}, nil)
	f.pantry.On("GetExpiredItems", mock.Anything, f.userID).Return([]types.PantryItem{}, nil)

	w := f.do(http.MethodGet, "/api/v1/pantry/count", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":7}`, w.Body.String())

	w = f.do(http.MethodGet, "/api/v1/pantry/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats types.CupboardStats
	decode(t, w, &stats)
	assert.Equal(t, 4, stats.InStock)
	assert.True(t, stocked.Equal(*stats.LastStocked))

	w = f.do(http.MethodGet, "/api/v1/pantry/expired", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[],"count":0}`, w.Body.String())
}

func TestAddManualItem(t *testing.T) {
	f := newAPIFixture(t)
	created := &types.PantryItem{ID: uuid.New(), ItemName: "flour", Quantity: "1", Unit: "bag", StockConfidence: 1, Source: types.SourceManual}
	f.pantry.On("AddManualItem", mock.Anything, f.userID, mock.MatchedBy(func(req *types.AddManualItemRequest) bool {
		return req.ItemName == "flour" && req.Unit != nil && *req.Unit == "bag"
	})).Return(created, nil)

	w := f.do(http.MethodPost, "/api/v1/pantry/items", map[string]interface{}{"itemName": "flour", "unit": "bag"})
	require.Equal(t, http.StatusCreated, w.Code)

	var got types.PantryItem
	decode(t, w, &got)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, 1, f.writes)

	w = f.do(http.MethodPost, "/api/v1/pantry/items", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestItemMutations(t *testing.T) {
	f := newAPIFixture(t)
	id := uuid.New()
	missing := uuid.New()

	f.pantry.On("MarkItemUsedUp", mock.Anything, f.userID, id, types.SourceReceipt).Return(nil)
	f.pantry.On("ConfirmItemInStock", mock.Anything, f.userID, id, types.SourceManual).Return(nil)
	f.pantry.On("UpdateItem", mock.Anything, f.userID, id, types.SourceReceipt, mock.MatchedBy(func(req *types.UpdateItemRequest) bool {
		return req.ShelfLifeDays != nil && *req.ShelfLifeDays == 21
	})).Return(nil)
	f.pantry.On("DeleteManualItem", mock.Anything, f.userID, id).Return(nil)
	f.pantry.On("DeleteManualItem", mock.Anything, f.userID, missing).Return(service.ErrItemNotFound)

	w := f.do(http.MethodPost, fmt.Sprintf("/api/v1/pantry/items/receipt/%s/used-up", id), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodPost, fmt.Sprintf("/api/v1/pantry/items/manual/%s/confirm", id), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodPatch, fmt.Sprintf("/api/v1/pantry/items/receipt/%s", id), map[string]interface{}{"shelfLifeDays": 21})
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodDelete, fmt.Sprintf("/api/v1/pantry/items/manual/%s", id), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = f.do(http.MethodDelete, fmt.Sprintf("/api/v1/pantry/items/manual/%s", missing), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, 5, f.writes)
}

func TestItemPathValidation(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(http.MethodPost, fmt.Sprintf("/api/v1/pantry/items/fridge/%s/used-up", uuid.New()), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "source must be receipt or manual")

	w = f.do(http.MethodPost, "/api/v1/pantry/items/manual/not-a-uuid/confirm", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid item id")
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", service.ErrItemNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", service.ErrItemNotFound), http.StatusNotFound},
		{"invalid input", fmt.Errorf("%w: Quantity failed on numeric", service.ErrInvalidInput), http.StatusBadRequest},
		{"invalid source", service.ErrInvalidSource, http.StatusBadRequest},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"store failure", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAPIFixture(t)
			id := uuid.New()
			f.pantry.On("MarkItemUsedUp", mock.Anything, f.userID, id, types.SourceManual).Return(tt.err)

			w := f.do(http.MethodPost, fmt.Sprintf("/api/v1/pantry/items/manual/%s/used-up", id), nil)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusInternalServerError {
				assert.NotContains(t, w.Body.String(), "connection reset")
			}
		})
	}
}

func TestAddToShoppingList(t *testing.T) {
	f := newAPIFixture(t)
	note := service.ShoppingListNote
	listItem := &models.ShoppingListItem{ID: uuid.New(), ListID: uuid.New(), Name: "eggs", Notes: &note, OrderIndex: 3}
	f.pantry.On("AddToShoppingList", mock.Anything, f.userID, mock.MatchedBy(func(req *types.AddToShoppingListRequest) bool {
		return req.ItemName == "eggs"
	})).Return(listItem, nil)

	w := f.do(http.MethodPost, "/api/v1/pantry/shopping-list", map[string]interface{}{"itemName": "eggs"})
	require.Equal(t, http.StatusCreated, w.Code)

	var got models.ShoppingListItem
	decode(t, w, &got)
	assert.Equal(t, 3, got.OrderIndex)
	assert.Equal(t, service.ShoppingListNote, *got.Notes)
}

func TestExport(t *testing.T) {
	f := newAPIFixture(t)
	result := &types.ExportResult{Key: "pantry-exports/x/1.json", URL: "https://example.test/signed", ItemCount: 4}
	f.export.On("ExportPantry", mock.Anything, f.userID).Return(result, nil)

	w := f.do(http.MethodPost, "/api/v1/pantry/export", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var got types.ExportResult
	decode(t, w, &got)
	assert.Equal(t, result.URL, got.URL)
	assert.Equal(t, 4, got.ItemCount)
}

func TestExportNotConfigured(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	NewPantryHandler(new(mocks.MockPantryService), nil).RegisterRoutes(&router.RouterGroup)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/pantry/export", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRecordPurchases(t *testing.T) {
	f := newAPIFixture(t)
	records := []*models.PurchaseHistory{{ID: uuid.New(), UserID: f.userID, ItemName: "bananas", PurchaseCount: 2}}
	f.purchase.On("RecordPurchases", mock.Anything, f.userID, mock.MatchedBy(func(req *types.RecordPurchasesRequest) bool {
		return req.Source == types.PurchaseFromReceipt && len(req.Items) == 1 && req.Items[0].Quantity == 6
	})).Return(records, nil)

	w := f.do(http.MethodPost, "/api/v1/purchases", map[string]interface{}{
		"source": "receipt",
		"items":  []map[string]interface{}{{"itemName": "Bananas", "quantity": 6}},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Count int `json:"count"`
	}
	decode(t, w, &resp)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, 1, f.writes)
}

func TestRecordPurchasesInvalid(t *testing.T) {
	f := newAPIFixture(t)
	f.purchase.On("RecordPurchases", mock.Anything, f.userID, mock.Anything).
		Return(nil, fmt.Errorf("%w: Items failed on min", service.ErrInvalidInput))

	w := f.do(http.MethodPost, "/api/v1/purchases", map[string]interface{}{"source": "receipt", "items": []interface{}{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid input")
}

func TestDashboardStats(t *testing.T) {
	f := newAPIFixture(t)
	summary := &types.DashboardSummary{
		CupboardCount:   5,
		ManualItemCount: 2,
		ExpiredCount:    1,
		Stats:           types.CupboardStats{TotalItems: 5, InStock: 5},
	}
	f.pantry.On("GetDashboardSummary", mock.Anything, f.userID).Return(summary, nil)

	w := f.do(http.MethodGet, "/api/v1/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got types.DashboardSummary
	decode(t, w, &got)
	assert.Equal(t, *summary, got)
}

func TestHealth(t *testing.T) {
	f := newAPIFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","database":"ok"}`, w.Body.String())

	f.pingErr = errors.New("db down")
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGetUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	id := uuid.New()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := getUserID(c)
	assert.False(t, ok)

	c.Set("user_id", id.String())
	got, ok := getUserID(c)
	assert.True(t, ok)
	assert.Equal(t, id, got)

	c.Set("user_id", uuid.Nil)
	_, ok = getUserID(c)
	assert.False(t, ok)

	c.Set("user_id", 42)
	_, ok = getUserID(c)
	assert.False(t, ok)
}
