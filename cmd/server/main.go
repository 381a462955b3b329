package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmalhotra/stitchmart-backend/config"
	"github.com/jmalhotra/stitchmart-backend/internal/app/controller"
	"github.com/jmalhotra/stitchmart-backend/internal/app/repository"
	"github.com/jmalhotra/stitchmart-backend/internal/app/service"
	"github.com/jmalhotra/stitchmart-backend/internal/db"
	"github.com/jmalhotra/stitchmart-backend/internal/middleware"
	"github.com/jmalhotra/stitchmart-backend/internal/router"
	"github.com/jmalhotra/stitchmart-backend/internal/storage"
	"github.com/jmalhotra/stitchmart-backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting StitchMart Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	database, err := db.Initialize(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(database); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(database); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(database)
	productRepo := repository.NewProductRepository(database)
	cartRepo := repository.NewCartRepository(database)
	checkoutRepo := repository.NewCheckoutRepository(database)
	orderRepo := repository.NewOrderRepository(database)
	subscriberRepo := repository.NewSubscriberRepository(database)

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.TokenExpiry)
	productService := service.NewProductService(productRepo)
	cartService := service.NewCartService(cartRepo, productRepo)
	checkoutService := service.NewCheckoutService(checkoutRepo, orderRepo, cartRepo)
	orderService := service.NewOrderService(orderRepo)
	subscriberService := service.NewSubscriberService(subscriberRepo)

	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Controllers
	authController := controller.NewAuthController(authService)
	productController := controller.NewProductController(productService)
	cartController := controller.NewCartController(cartService)
	checkoutController := controller.NewCheckoutController(checkoutService)
	orderController := controller.NewOrderController(orderService)
	orderAdminController := controller.NewOrderAdminController(orderService)
	userAdminController := controller.NewUserAdminController(authService)
	subscriberController := controller.NewSubscriberController(subscriberService)
	uploadController := controller.NewUploadController(s3Storage)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	r := router.NewRouter(
		authController,
		productController,
		cartController,
		checkoutController,
		orderController,
		orderAdminController,
		userAdminController,
		subscriberController,
		uploadController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
