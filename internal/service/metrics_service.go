package service

import (
	"context"
	"fmt"
	"time"

	"github.com/yourusername/aynamoda/insight-service/internal/models"
	"github.com/yourusername/aynamoda/insight-service/internal/repository"
	"github.com/yourusername/aynamoda/insight-service/internal/scoring"
)

// MetricsService computes the derived monthly aggregates: confidence
// metrics and shopping behavior
type MetricsService struct {
	repo        *repository.WardrobeRepository
	engine      *scoring.Engine
	savingsRate float64
}

// NewMetricsService creates a new metrics service
func NewMetricsService(repo *repository.WardrobeRepository, engine *scoring.Engine, savingsRate float64) *MetricsService {
	return &MetricsService{
		repo:        repo,
		engine:      engine,
		savingsRate: savingsRate,
	}
}

// MonthlyConfidence recomputes the confidence aggregate for one calendar
// month. A month with no rated outfits yields a zero-valued object.
func (s *MetricsService) MonthlyConfidence(ctx context.Context, userID string, month, year int) (*models.MonthlyConfidenceMetrics, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month must be between 1 and 12, got %d", month)
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	rows, err := s.repo.GetFeedbackInRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	metrics := s.engine.MonthlyConfidence(month, year, rows)
	return &metrics, nil
}

// ShoppingBehavior compares this month's purchases with last month's and
// derives the reduction, streak, and savings figures
func (s *MetricsService) ShoppingBehavior(ctx context.Context, userID string) (*models.ShoppingBehaviorData, error) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	prevMonthStart := monthStart.AddDate(0, -1, 0)
	nextMonthStart := monthStart.AddDate(0, 1, 0)

	currentPurchases, err := s.repo.GetPurchasesInRange(ctx, userID, monthStart, nextMonthStart)
	if err != nil {
		return nil, err
	}

	previousPurchases, err := s.repo.GetPurchasesInRange(ctx, userID, prevMonthStart, monthStart)
	if err != nil {
		return nil, err
	}

	latest, err := s.repo.GetLatestPurchase(ctx, userID)
	if err != nil {
		return nil, err
	}

	var lastPurchase *time.Time
	if latest != nil {
		lastPurchase = &latest.PurchasedAt
	}

	data := s.engine.ShoppingBehavior(
		sumSpend(currentPurchases),
		sumSpend(previousPurchases),
		lastPurchase,
		s.savingsRate,
		now,
	)
	return &data, nil
}

func sumSpend(purchases []models.PurchaseRecord) models.MonthlySpend {
	spend := models.MonthlySpend{Count: len(purchases)}
	for _, p := range purchases {
		spend.Spend += p.Amount
	}
	return spend
}
