package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/aynamoda/insight-service/internal/aggregator"
	"github.com/yourusername/aynamoda/insight-service/internal/analytics"
	"github.com/yourusername/aynamoda/insight-service/internal/models"
	"github.com/yourusername/aynamoda/insight-service/internal/repository"
	"github.com/yourusername/aynamoda/insight-service/internal/scoring"
	"github.com/yourusername/aynamoda/insight-service/pkg/logger"
	"go.uber.org/zap"
)

// InsightService produces shop-your-closet recommendations and per-item
// cost insights
type InsightService struct {
	repo    *repository.WardrobeRepository
	engine  *scoring.Engine
	usage   *aggregator.UsageAggregator
	emitter analytics.Emitter
}

// NewInsightService creates a new insight service
func NewInsightService(
	repo *repository.WardrobeRepository,
	engine *scoring.Engine,
	usage *aggregator.UsageAggregator,
	emitter analytics.Emitter,
) *InsightService {
	return &InsightService{
		repo:    repo,
		engine:  engine,
		usage:   usage,
		emitter: emitter,
	}
}

// ShopYourCloset scores a prospective purchase against what the user
// already owns. Store errors propagate; the analytics write is best-effort
// and never fails the call.
func (s *InsightService) ShopYourCloset(ctx context.Context, userID string, target models.TargetItem) (*models.ClosetRecommendation, error) {
	if target.Category == "" {
		return nil, fmt.Errorf("target category is required")
	}

	wardrobe, err := s.repo.GetItemsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	recommendation := s.engine.Recommend(wardrobe, target, time.Now())

	logger.Info("Generated closet recommendation",
		zap.String("userID", userID),
		zap.String("category", target.Category),
		zap.Int("similarItems", len(recommendation.SimilarOwnedItems)),
		zap.Float64("confidence", recommendation.ConfidenceScore),
	)

	similarIDs := make([]string, len(recommendation.SimilarOwnedItems))
	for i, item := range recommendation.SimilarOwnedItems {
		similarIDs[i] = item.ID.String()
	}

	log := &models.RecommendationLog{
		UserID:            userID,
		TargetDescription: target.Description,
		TargetCategory:    target.Category,
		TargetColors:      target.Colors,
		TargetStyle:       target.Style,
		SimilarItemIDs:    similarIDs,
		ConfidenceScore:   recommendation.ConfidenceScore,
		Reasoning:         recommendation.Reasoning,
	}
	if err := s.emitter.RecordRecommendation(ctx, log); err != nil {
		logger.Error("Failed to record recommendation analytics", zap.Error(err))
	}

	return recommendation, nil
}

// CostPerWear computes the amortized cost view for one item. Returns
// (nil, nil) when no such item exists; errors are store failures.
func (s *InsightService) CostPerWear(ctx context.Context, itemID uuid.UUID) (*models.CostPerWearRecord, error) {
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	feedback, err := s.repo.GetFeedbackByUser(ctx, item.UserID)
	if err != nil {
		return nil, err
	}

	totalWears := s.usage.WearCount(feedback, item.ID.String())

	price := 0.0
	if item.PurchasePrice != nil {
		price = *item.PurchasePrice
	}

	record := s.engine.CostPerWear(item.ID.String(), price, item.PurchaseDate, totalWears, time.Now())
	return &record, nil
}

// GetStats retrieves service statistics
func (s *InsightService) GetStats(ctx context.Context) (map[string]interface{}, error) {
	return s.repo.GetStats(ctx)
}

// HealthCheck reports component health
func (s *InsightService) HealthCheck(ctx context.Context) map[string]bool {
	health := make(map[string]bool)

	if err := s.repo.Ping(ctx); err != nil {
		logger.Error("Database health check failed", zap.Error(err))
		health["database"] = false
	} else {
		health["database"] = true
	}

	return health
}
