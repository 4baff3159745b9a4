package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/yourusername/aynamoda/insight-service/internal/aggregator"
	"github.com/yourusername/aynamoda/insight-service/internal/analytics"
	"github.com/yourusername/aynamoda/insight-service/internal/api/handlers"
	"github.com/yourusername/aynamoda/insight-service/internal/config"
	"github.com/yourusername/aynamoda/insight-service/internal/models"
	"github.com/yourusername/aynamoda/insight-service/internal/repository"
	"github.com/yourusername/aynamoda/insight-service/internal/scoring"
	"github.com/yourusername/aynamoda/insight-service/internal/service"
	"github.com/yourusername/aynamoda/insight-service/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Setup(router *gin.Engine, cfg *config.Config) {
	// Initialize database
	db, err := initDatabase(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}

	// Initialize components
	repo := repository.NewWardrobeRepository(db)
	engine := scoring.NewEngine()
	usage := aggregator.NewUsageAggregator()
	emitter := analytics.NewStoreEmitter(repo)

	wardrobeService := service.NewWardrobeService(repo)
	insightService := service.NewInsightService(repo, engine, usage, emitter)
	challengeService := service.NewChallengeService(repo, service.ChallengePolicy{
		NeglectThresholdDays:  cfg.NeglectThresholdDays,
		ChallengeDurationDays: cfg.ChallengeDurationDays,
		ItemCap:               cfg.ChallengeItemCap,
	})
	metricsService := service.NewMetricsService(repo, engine, cfg.SavingsRate)

	wardrobeHandler := handlers.NewWardrobeHandler(wardrobeService)
	insightHandler := handlers.NewInsightHandler(insightService, metricsService)
	challengeHandler := handlers.NewChallengeHandler(challengeService)

	// Health check
	router.GET("/health", insightHandler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Wardrobe routes
		v1.POST("/wardrobe/items", wardrobeHandler.CreateItem)
		v1.GET("/wardrobe/:userID/items", wardrobeHandler.GetItems)
		v1.PUT("/wardrobe/items/:id", wardrobeHandler.UpdateItem)
		v1.DELETE("/wardrobe/items/:id", wardrobeHandler.DeleteItem)
		v1.POST("/wardrobe/items/:id/worn", wardrobeHandler.MarkWorn)

		// Logging routes
		v1.POST("/feedback", wardrobeHandler.LogFeedback)
		v1.POST("/purchases", wardrobeHandler.RecordPurchase)

		// Recommendation and insight routes
		v1.POST("/recommendations/shop-your-closet", insightHandler.ShopYourCloset)
		v1.GET("/insights/cost-per-wear/:itemID", insightHandler.CostPerWear)
		v1.GET("/insights/:userID/confidence", insightHandler.MonthlyConfidence)
		v1.GET("/insights/:userID/shopping-behavior", insightHandler.ShoppingBehavior)

		// Challenge routes
		v1.POST("/challenges/rediscovery", challengeHandler.Create)
		v1.GET("/challenges/:userID/active", challengeHandler.GetActive)
		v1.POST("/challenges/:id/confirm-worn", challengeHandler.ConfirmWorn)

		// Admin routes
		admin := v1.Group("/admin")
		{
			admin.GET("/stats", insightHandler.GetStats)
		}
	}
}

func initDatabase(cfg *config.Config) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	if cfg.DatabaseURL == "" {
		logger.Info("No database URL configured, using in-memory SQLite")
		// Use pure Go SQLite (no CGO required)
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize in-memory database: %w", err)
		}
	} else {
		logger.Info("Connecting to PostgreSQL database")
		db, err = gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
		if err != nil {
			return nil, err
		}
	}

	// Auto-migrate models
	err = db.AutoMigrate(
		&models.WardrobeItem{},
		&models.OutfitFeedback{},
		&models.RediscoveryChallenge{},
		&models.PurchaseRecord{},
		&models.RecommendationLog{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Database initialized successfully")
	return db, nil
}
