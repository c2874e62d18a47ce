package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"storemap/internal/config"
	"storemap/internal/handlers"
	"storemap/internal/jobs"
	"storemap/internal/jobs/background"
	"storemap/internal/repositories"
	"storemap/internal/services"
	"storemap/pkg/database"
)

const version = "1.0.0"

func main() {
	cfg := config.Load()

	pool, err := database.NewPool(context.Background(), cfg.DB.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Create repositories
	locationRepo := repositories.NewLocationRepository(pool)

	// Create services
	locationSvc := services.NewLocationService(locationRepo)

	// Create handlers
	locationHandlers := handlers.NewLocationHandlers(locationSvc)
	healthHandlers := handlers.NewHealthHandlers(pool)

	// Background jobs
	alertSvc := jobs.NewCapacityAlertService(locationRepo, cfg.Alerts.Threshold)
	scheduler, err := background.NewJobScheduler(alertSvc, cfg.Alerts.Interval)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// API routes
	api := e.Group("/api")

	api.GET("/health", healthHandlers.HealthCheck)
	api.GET("/health/ready", healthHandlers.ReadinessCheck)

	api.GET("/locations", locationHandlers.ListLocations)
	api.POST("/locations", locationHandlers.CreateLocation)
	api.GET("/locations/:id", locationHandlers.GetLocation)
	api.PUT("/locations/:id", locationHandlers.UpdateLocation)
	api.DELETE("/locations/:id", locationHandlers.DeleteLocation)

	// Start server
	go func() {
		log.Printf("Storemap server v%s starting on port %s", version, cfg.Server.Port)
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	if err := scheduler.Stop(); err != nil {
		log.Printf("Failed to stop job scheduler: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown failed: %v", err)
	}
}
