package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/pantry-tracker/backend/internal/service"
	"github.com/pageza/pantry-tracker/backend/internal/types"
)

// PantryHandler serves the pantry view and its mutations
type PantryHandler struct {
	pantryService service.IPantryService
	exportService service.IExportService
	writeLimit    []gin.HandlerFunc
}

// NewPantryHandler creates a new PantryHandler. writeLimit runs in front of
// every mutating route.
func NewPantryHandler(pantryService service.IPantryService, exportService service.IExportService, writeLimit ...gin.HandlerFunc) *PantryHandler {
	return &PantryHandler{
		pantryService: pantryService,
		exportService: exportService,
		writeLimit:    writeLimit,
	}
}

func (h *PantryHandler) writes(handler gin.HandlerFunc) []gin.HandlerFunc {
	chain := make([]gin.HandlerFunc, 0, len(h.writeLimit)+1)
	chain = append(chain, h.writeLimit...)
	return append(chain, handler)
}

// RegisterRoutes registers the pantry routes
func (h *PantryHandler) RegisterRoutes(router *gin.RouterGroup) {
	pantry := router.Group("/pantry")
	{
		pantry.GET("", h.GetPantry)
		pantry.GET("/count", h.GetCount)
		pantry.GET("/stats", h.GetStats)
		pantry.GET("/expired", h.GetExpired)
		pantry.POST("/items", h.writes(h.AddManualItem)...)
		pantry.PATCH("/items/:source/:id", h.writes(h.UpdateItem)...)
		pantry.POST("/items/:source/:id/used-up", h.writes(h.MarkUsedUp)...)
		pantry.POST("/items/:source/:id/confirm", h.writes(h.ConfirmInStock)...)
		pantry.DELETE("/items/manual/:id", h.writes(h.DeleteManualItem)...)
		pantry.POST("/shopping-list", h.writes(h.AddToShoppingList)...)
		pantry.POST("/export", h.writes(h.Export)...)
	}
}

// GetPantry returns every item the user most likely still has
func (h *PantryHandler) GetPantry(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	items, err := h.pantryService.GetUserPantry(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "load pantry")
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

func (h *PantryHandler) GetCount(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	count, err := h.pantryService.GetCupboardCount(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "count pantry items")
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *PantryHandler) GetStats(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	stats, err := h.pantryService.GetCupboardStats(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "load pantry stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetExpired returns recently bought items that have decayed out of the pantry
func (h *PantryHandler) GetExpired(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	items, err := h.pantryService.GetExpiredItems(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "load expired items")
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

func (h *PantryHandler) AddManualItem(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req types.AddManualItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.pantryService.AddManualItem(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, "add item")
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *PantryHandler) UpdateItem(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	source, id, ok := itemTarget(c)
	if !ok {
		return
	}

	var req types.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.pantryService.UpdateItem(c.Request.Context(), userID, id, source, &req); err != nil {
		respondError(c, err, "update item")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "item updated"})
}

func (h *PantryHandler) MarkUsedUp(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	source, id, ok := itemTarget(c)
	if !ok {
		return
	}

	if err := h.pantryService.MarkItemUsedUp(c.Request.Context(), userID, id, source); err != nil {
		respondError(c, err, "mark item used up")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "item marked as used up"})
}

func (h *PantryHandler) ConfirmInStock(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	source, id, ok := itemTarget(c)
	if !ok {
		return
	}

	if err := h.pantryService.ConfirmItemInStock(c.Request.Context(), userID, id, source); err != nil {
		respondError(c, err, "confirm item")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "item confirmed in stock"})
}

func (h *PantryHandler) DeleteManualItem(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := itemID(c)
	if !ok {
		return
	}

	if err := h.pantryService.DeleteManualItem(c.Request.Context(), userID, id); err != nil {
		respondError(c, err, "delete item")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *PantryHandler) AddToShoppingList(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req types.AddToShoppingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.pantryService.AddToShoppingList(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, "add to shopping list")
		return
	}

	c.JSON(http.StatusCreated, item)
}

// Export uploads a pantry snapshot and returns a temporary download link
func (h *PantryHandler) Export(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	if h.exportService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "export storage is not configured"})
		return
	}

	result, err := h.exportService.ExportPantry(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "export pantry")
		return
	}

	c.JSON(http.StatusCreated, result)
}
