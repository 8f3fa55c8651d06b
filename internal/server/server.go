package server

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/pantry-tracker/backend/config"
	"github.com/pageza/pantry-tracker/backend/internal/api"
	"github.com/pageza/pantry-tracker/backend/internal/database"
	"github.com/pageza/pantry-tracker/backend/internal/middleware"
	"github.com/pageza/pantry-tracker/backend/internal/repository"
	"github.com/pageza/pantry-tracker/backend/internal/service"
)

const purchaseLockPrefix = "lock:purchase"

// Dependencies are the external resources the server runs on. Redis and
// Storage are optional.
type Dependencies struct {
	DB      *gorm.DB
	Redis   *redis.Client
	Storage service.ObjectStorage
}

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	cfg    *config.Config
}

// New wires repositories, services and handlers into a router.
func New(cfg *config.Config, deps Dependencies) *Server {
	gin.SetMode(config.GetEnvironment().GinMode())

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	history := repository.NewPurchaseHistoryRepository(deps.DB)
	cupboard := repository.NewCupboardItemRepository(deps.DB)
	receipts := repository.NewReceiptItemRepository(deps.DB)
	lists := repository.NewShoppingListRepository(deps.DB)

	var locker service.KeyLocker
	if deps.Redis != nil {
		log.Printf("[Server] Using Redis purchase locks")
		locker = service.NewRedisKeyLocker(deps.Redis, purchaseLockPrefix, cfg.Pantry.LockTTL())
	} else {
		log.Printf("[Server] Redis unavailable, using in-process purchase locks")
		locker = service.NewLocalKeyLocker()
	}

	pantryService := service.NewPantryService(history, cupboard, receipts, lists, cfg.Pantry.Thresholds())

	svc := api.Services{
		Auth:     service.NewAuthService(cfg.JWTSecret),
		Pantry:   pantryService,
		Purchase: service.NewPurchaseService(history, locker),
		PingDB: func(ctx context.Context) error {
			return database.Ping(ctx, deps.DB)
		},
		WriteLimit: middleware.NewPantryWriteRateLimiter(deps.Redis, cfg.Pantry.RateLimitPerHour).RateLimitMiddleware(),
	}
	if deps.Storage != nil {
		svc.Export = service.NewExportService(pantryService, deps.Storage)
	}

	api.SetupAPI(router, svc)

	return &Server{
		router: router,
		cfg:    cfg,
		http: &http.Server{
			Addr:              net.JoinHostPort(cfg.ServerHost, cfg.ServerPort),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	log.Printf("[Server] Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

var _ service.ObjectStorage = (*config.S3Config)(nil)
