package main

import (
	"os"

	"storefront/config"
	"storefront/internal/delivery"
	"storefront/internal/repository"
	"storefront/internal/usecase"
	"storefront/pkg/db"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.LoadConfig(logger)

	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
		logger.Warnf("Invalid LOG_LEVEL '%s', using default: %s", cfg.LogLevel, logLevel.String())
	}
	logger.SetLevel(logLevel)
	logger.Info("Starting Storefront Server...")

	database, err := db.Connect(cfg.DatabaseURL, db.Pool{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connection established.")

	// --- Dependency Injection ---
	categoryRepo := repository.NewPostgresCategoryRepository(database, logger)
	productRepo := repository.NewPostgresProductRepository(database, logger)
	orderRepo := repository.NewPostgresOrderRepository(database, logger)
	userRepo := repository.NewPostgresUserRepository(database, logger)
	logger.Info("Repositories initialized.")

	categoryUseCase := usecase.NewCategoryUseCase(categoryRepo, logger)
	productUseCase := usecase.NewProductUseCase(productRepo, categoryRepo, logger)
	orderUseCase := usecase.NewOrderUseCase(orderRepo, productRepo, cfg.VerifyPrices, logger)
	userUseCase := usecase.NewUserUseCase(userRepo, logger)
	logger.Info("Use cases initialized.")

	categoryHandler := delivery.NewCategoryHandler(categoryUseCase, logger)
	productHandler := delivery.NewProductHandler(productUseCase, logger)
	orderHandler := delivery.NewOrderHandler(orderUseCase, logger)
	authHandler := delivery.NewAuthHandler(userUseCase, logger)
	logger.Info("Handlers initialized.")

	router := gin.New()
	router.RedirectTrailingSlash = false
	router.Use(gin.Recovery())
	router.Use(delivery.RequestLogger(logger))
	router.Use(delivery.Authenticate(userUseCase, logger))

	requireAuth := delivery.RequireAuth(logger)
	requireOwner := delivery.RequireOwner(logger)

	api := router.Group("/api")
	{
		authHandler.RegisterRoutes(api, requireAuth)
		categoryHandler.RegisterRoutes(api, requireOwner)
		productHandler.RegisterRoutes(api, requireOwner)
		orderHandler.RegisterRoutes(api, requireOwner)
	}
	logger.Info("Routes registered.")

	logger.Infof("Starting server on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		logger.Errorf("Failed to start server on port %s: %v", cfg.Port, err)
		os.Exit(1)
	}
}
