package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/pantry-tracker/backend/internal/service"
)

// DashboardHandler handles dashboard-related requests
type DashboardHandler struct {
	pantryService service.IPantryService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(pantryService service.IPantryService) *DashboardHandler {
	return &DashboardHandler{pantryService: pantryService}
}

// RegisterRoutes registers the dashboard routes
func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	dashboard := router.Group("/dashboard")
	{
		dashboard.GET("/stats", h.GetStats)
	}
}

// GetStats returns the cupboard summary tile for the current user
func (h *DashboardHandler) GetStats(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	summary, err := h.pantryService.GetDashboardSummary(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "load dashboard stats")
		return
	}

	c.JSON(http.StatusOK, summary)
}
