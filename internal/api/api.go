package api

import (
	"github.com/gin-gonic/gin"
	"github.com/pageza/pantry-tracker/backend/internal/middleware"
	"github.com/pageza/pantry-tracker/backend/internal/service"
)

// Services bundles what the HTTP layer needs. Export and WriteLimit are
// optional.
type Services struct {
	Auth       service.IAuthService
	Pantry     service.IPantryService
	Purchase   service.IPurchaseService
	Export     service.IExportService
	PingDB     Pinger
	WriteLimit gin.HandlerFunc
}

// SetupAPI mounts every route under /api/v1. Everything except /health
// requires a bearer token.
func SetupAPI(router *gin.Engine, svc Services) {
	v1 := router.Group("/api/v1")

	NewHealthHandler(svc.PingDB).RegisterRoutes(v1)

	var writeLimit []gin.HandlerFunc
	if svc.WriteLimit != nil {
		writeLimit = append(writeLimit, svc.WriteLimit)
	}

	protected := v1.Group("", middleware.AuthMiddleware(svc.Auth))
	{
		NewPantryHandler(svc.Pantry, svc.Export, writeLimit...).RegisterRoutes(protected)
		NewPurchaseHandler(svc.Purchase, writeLimit...).RegisterRoutes(protected)
		NewDashboardHandler(svc.Pantry).RegisterRoutes(protected)
	}
}
