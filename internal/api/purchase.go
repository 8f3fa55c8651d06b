package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/pantry-tracker/backend/internal/service"
	"github.com/pageza/pantry-tracker/backend/internal/types"
)

// PurchaseHandler accepts purchase batches from receipts and shopping trips
type PurchaseHandler struct {
	purchaseService service.IPurchaseService
	writeLimit      []gin.HandlerFunc
}

func NewPurchaseHandler(purchaseService service.IPurchaseService, writeLimit ...gin.HandlerFunc) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchaseService,
		writeLimit:      writeLimit,
	}
}

// RegisterRoutes registers the purchase routes
func (h *PurchaseHandler) RegisterRoutes(router *gin.RouterGroup) {
	chain := append(append([]gin.HandlerFunc{}, h.writeLimit...), h.RecordPurchases)
	router.POST("/purchases", chain...)
}

func (h *PurchaseHandler) RecordPurchases(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req types.RecordPurchasesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	records, err := h.purchaseService.RecordPurchases(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, "record purchases")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"records": records, "count": len(records)})
}
