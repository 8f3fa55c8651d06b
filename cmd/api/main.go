package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pageza/pantry-tracker/backend/config"
	"github.com/pageza/pantry-tracker/backend/internal/database"
	"github.com/pageza/pantry-tracker/backend/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Starting pantry API in %s mode", config.GetEnvironment())

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db, envOr("MIGRATIONS_DIR", "migrations")); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	deps := server.Dependencies{DB: db}

	// Redis only backs locks and rate limits, so the API can run without it
	if redisClient, err := database.NewRedisClient(cfg); err != nil {
		log.Printf("Redis not available, falling back to in-process locks: %v", err)
	} else {
		deps.Redis = redisClient
		defer redisClient.Close()
	}

	if cfg.S3BucketName != "" {
		storage, err := config.NewS3Config(context.Background(), cfg.S3BucketName, cfg.AWSRegion)
		if err != nil {
			log.Printf("S3 not available, pantry export disabled: %v", err)
		} else {
			deps.Storage = storage
		}
	}

	srv := server.New(cfg, deps)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	go func() {
		log.Println("Starting server...")
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
