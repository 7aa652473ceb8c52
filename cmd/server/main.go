package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pawstore/pawstore-backend/config"
	"github.com/pawstore/pawstore-backend/internal/app/controller"
	"github.com/pawstore/pawstore-backend/internal/app/repository"
	"github.com/pawstore/pawstore-backend/internal/app/service"
	"github.com/pawstore/pawstore-backend/internal/db"
	"github.com/pawstore/pawstore-backend/internal/middleware"
	"github.com/pawstore/pawstore-backend/internal/router"
	"github.com/pawstore/pawstore-backend/internal/scheduler"
	"github.com/pawstore/pawstore-backend/internal/storage"
	"github.com/pawstore/pawstore-backend/internal/websocket"
	"github.com/pawstore/pawstore-backend/pkg/logger"
	"github.com/pawstore/pawstore-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting PawStore Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize Redis (used for the admin overview cache)
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, overview caching disabled", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()

	// Initialize S3 storage for presigned image uploads
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	adminRepo := repository.NewAdminProfileRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	accessoryRepo := repository.NewAccessoryRepository(db.GetDB())
	petRepo := repository.NewPetRepository(db.GetDB())
	addressRepo := repository.NewAddressRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	paymentRepo := repository.NewPaymentRepository(db.GetDB())
	contactRepo := repository.NewContactRepository(db.GetDB())

	// Start the websocket hub for order status pushes
	hub := websocket.NewHub()
	go hub.Run()

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	adminService := service.NewAdminService(adminRepo, userRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	accessoryService := service.NewAccessoryService(accessoryRepo, categoryRepo)
	petService := service.NewPetService(petRepo, categoryRepo)
	addressService := service.NewAddressService(addressRepo)
	cartService := service.NewCartService(cartRepo, accessoryRepo)
	orderService := service.NewOrderService(db.GetDB(), orderRepo, cartRepo, addressRepo, hub)
	paymentService := service.NewPaymentService(paymentRepo, orderRepo, hub)
	contactService := service.NewContactService(contactRepo)
	overviewService := service.NewOverviewService(
		accessoryRepo,
		petRepo,
		cartRepo,
		orderRepo,
		paymentRepo,
		contactRepo,
	)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	adminController := controller.NewAdminController(adminService, overviewService)
	categoryController := controller.NewCategoryController(categoryService, accessoryService)
	accessoryController := controller.NewAccessoryController(accessoryService)
	petController := controller.NewPetController(petService)
	addressController := controller.NewAddressController(addressService)
	cartController := controller.NewCartController(cartService)
	orderController := controller.NewOrderController(orderService)
	paymentController := controller.NewPaymentController(paymentService)
	contactController := controller.NewContactController(contactService)
	uploadController := controller.NewUploadController(s3Storage)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Start the overview refresh scheduler
	overviewScheduler := scheduler.NewOverviewScheduler(overviewService)
	if err := overviewScheduler.Start(); err != nil {
		logger.Warn("Overview scheduler failed to start", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Setup router
	r := router.NewRouter(
		authController,
		adminController,
		categoryController,
		accessoryController,
		petController,
		addressController,
		cartController,
		orderController,
		paymentController,
		contactController,
		uploadController,
		authMiddleware,
		hub,
		cfg,
	)
	engine := r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: engine,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")

	overviewScheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced server shutdown", err)
	}

	logger.Info("Server stopped successfully")
}
