package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pageza/pantry-tracker/backend/config"
	"github.com/pageza/pantry-tracker/backend/internal/service"
	"github.com/pageza/pantry-tracker/backend/internal/testhelpers"
	"github.com/pageza/pantry-tracker/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	t.Setenv("CI", "")
	t.Setenv("ENV", "test")

	cfg := &config.Config{
		ServerHost: "localhost",
		ServerPort: "8080",
		JWTSecret:  testSecret,
		Pantry:     config.DefaultPantryTuning(),
	}
	srv := New(cfg, Dependencies{DB: testhelpers.SetupTestDB(t)})

	token, err := service.NewAuthService(testSecret).GenerateToken(&types.TokenClaims{
		UserID:   uuid.New(),
		Username: "sam",
	})
	require.NoError(t, err)
	return srv, token
}

func call(t *testing.T, srv *Server, token, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestNewSetsGinModeFromEnvironment(t *testing.T) {
	newTestServer(t)
	assert.Equal(t, gin.TestMode, gin.Mode())
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	w := call(t, srv, "", http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedRoutes(t *testing.T) {
	srv, _ := newTestServer(t)

	w := call(t, srv, "", http.MethodGet, "/api/v1/pantry", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPurchaseFlowsIntoPantry(t *testing.T) {
	srv, token := newTestServer(t)

	w := call(t, srv, token, http.MethodPost, "/api/v1/purchases", map[string]interface{}{
		"source": "receipt",
		"items": []map[string]interface{}{
			{"itemName": "Whole Milk", "quantity": 2, "category": "dairy"},
			{"itemName": "bananas", "quantity": 6, "category": "produce"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-RateLimit-Limit"))

	w = call(t, srv, token, http.MethodPost, "/api/v1/pantry/items", map[string]interface{}{
		"itemName": "Rice",
		"quantity": "2",
		"unit":     "bag",
		"category": "pantry",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = call(t, srv, token, http.MethodGet, "/api/v1/pantry", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var pantry struct {
		Items []types.PantryItem `json:"items"`
		Count int                `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pantry))
	require.Equal(t, 3, pantry.Count)

	bySource := map[types.ItemSource]int{}
	for _, item := range pantry.Items {
		bySource[item.Source]++
		assert.Equal(t, 1.0, item.StockConfidence, item.ItemName)
	}
	assert.Equal(t, 2, bySource[types.SourceReceipt])
	assert.Equal(t, 1, bySource[types.SourceManual])

	var milk types.PantryItem
	for _, item := range pantry.Items {
		if item.ItemName == "whole milk" {
			milk = item
		}
	}
	require.NotEqual(t, uuid.Nil, milk.ID)

	w = call(t, srv, token, http.MethodPost, "/api/v1/pantry/items/receipt/"+milk.ID.String()+"/used-up", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = call(t, srv, token, http.MethodGet, "/api/v1/pantry/count", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":2}`, w.Body.String())

	w = call(t, srv, token, http.MethodGet, "/api/v1/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary types.DashboardSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 2, summary.CupboardCount)
	assert.Equal(t, int64(1), summary.ManualItemCount)
	require.NotNil(t, summary.Stats.LastStocked)
	assert.WithinDuration(t, time.Now(), *summary.Stats.LastStocked, 48*time.Hour)
}

func TestExportWithoutStorage(t *testing.T) {
	srv, token := newTestServer(t)

	w := call(t, srv, token, http.MethodPost, "/api/v1/pantry/export", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestOtherUsersItemsAreHidden(t *testing.T) {
	srv, token := newTestServer(t)

	w := call(t, srv, token, http.MethodPost, "/api/v1/pantry/items", map[string]interface{}{"itemName": "Flour"})
	require.Equal(t, http.StatusCreated, w.Code)
	var item types.PantryItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))

	other, err := service.NewAuthService(testSecret).GenerateToken(&types.TokenClaims{UserID: uuid.New(), Username: "alex"})
	require.NoError(t, err)

	w = call(t, srv, other, http.MethodDelete, "/api/v1/pantry/items/manual/"+item.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = call(t, srv, other, http.MethodGet, "/api/v1/pantry", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":0`)
}
