package service

import (
	"context"
	"testing"
	"time"

	"github.com/yourusername/aynamoda/insight-service/internal/models"
	"github.com/yourusername/aynamoda/insight-service/internal/scoring"
)

func TestMonthlyConfidenceEmptyMonth(t *testing.T) {
	repo := setupTestRepo(t)
	svc := NewMetricsService(repo, scoring.NewEngine(), 0.5)

	metrics, err := svc.MonthlyConfidence(context.Background(), "user-1", 3, 2026)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if metrics.Month != 3 || metrics.Year != 2026 {
		t.Errorf("Expected 3/2026, got %d/%d", metrics.Month, metrics.Year)
	}
	if metrics.TotalOutfitsRated != 0 {
		t.Errorf("Expected 0 rated outfits, got %d", metrics.TotalOutfitsRated)
	}
	if metrics.AverageConfidenceRating != 0 {
		t.Errorf("Expected zero average, got %f", metrics.AverageConfidenceRating)
	}
	if len(metrics.MostConfidentItems) != 0 || len(metrics.LeastConfidentItems) != 0 {
		t.Error("Expected empty rankings for an empty month")
	}
}

func TestMonthlyConfidenceRejectsBadMonth(t *testing.T) {
	svc := NewMetricsService(setupTestRepo(t), scoring.NewEngine(), 0.5)

	if _, err := svc.MonthlyConfidence(context.Background(), "user-1", 13, 2026); err == nil {
		t.Error("Expected error for month 13")
	}
	if _, err := svc.MonthlyConfidence(context.Background(), "user-1", 0, 2026); err == nil {
		t.Error("Expected error for month 0")
	}
}

func TestMonthlyConfidenceWindowing(t *testing.T) {
	repo := setupTestRepo(t)
	svc := NewMetricsService(repo, scoring.NewEngine(), 0.5)
	ctx := context.Background()

	seed := func(rating int, when time.Time) {
		fb := &models.OutfitFeedback{
			UserID:           "user-1",
			ItemIDs:          []string{"item-a"},
			ConfidenceRating: rating,
			CreatedAt:        when,
		}
		if err := repo.CreateFeedback(ctx, fb); err != nil {
			t.Fatalf("Failed to seed feedback: %v", err)
		}
	}

	seed(4, time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC))
	seed(3, time.Date(2026, time.March, 20, 12, 0, 0, 0, time.UTC))
	// Outside the window
	seed(1, time.Date(2026, time.February, 27, 12, 0, 0, 0, time.UTC))
	seed(1, time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC))

	metrics, err := svc.MonthlyConfidence(ctx, "user-1", 3, 2026)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if metrics.TotalOutfitsRated != 2 {
		t.Fatalf("Expected 2 outfits in March, got %d", metrics.TotalOutfitsRated)
	}
	if metrics.AverageConfidenceRating != 3.5 {
		t.Errorf("Expected average 3.5, got %f", metrics.AverageConfidenceRating)
	}
	if len(metrics.MostConfidentItems) != 1 {
		t.Fatalf("Expected 1 ranked item, got %d", len(metrics.MostConfidentItems))
	}
	if metrics.MostConfidentItems[0].OutfitCount != 2 {
		t.Errorf("Expected item-a in 2 outfits, got %d", metrics.MostConfidentItems[0].OutfitCount)
	}
}

func TestShoppingBehavior(t *testing.T) {
	repo := setupTestRepo(t)
	svc := NewMetricsService(repo, scoring.NewEngine(), 0.5)
	ctx := context.Background()

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	prevMonth := monthStart.AddDate(0, -1, 0)

	purchases := []struct {
		amount float64
		at     time.Time
	}{
		{120, prevMonth.Add(24 * time.Hour)},
		{80, prevMonth.Add(48 * time.Hour)},
		{60, monthStart.Add(12 * time.Hour)},
	}
	for _, p := range purchases {
		err := repo.CreatePurchase(ctx, &models.PurchaseRecord{
			UserID:      "user-1",
			Amount:      p.amount,
			PurchasedAt: p.at,
		})
		if err != nil {
			t.Fatalf("Failed to seed purchase: %v", err)
		}
	}

	data, err := svc.ShoppingBehavior(ctx, "user-1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if data.PreviousMonthPurchases.Count != 2 || data.PreviousMonthPurchases.Spend != 200 {
		t.Errorf("Expected previous month 2/$200, got %d/$%.2f",
			data.PreviousMonthPurchases.Count, data.PreviousMonthPurchases.Spend)
	}
	if data.MonthlyPurchases.Count != 1 || data.MonthlyPurchases.Spend != 60 {
		t.Errorf("Expected current month 1/$60, got %d/$%.2f",
			data.MonthlyPurchases.Count, data.MonthlyPurchases.Spend)
	}
	if data.ReductionPercentage != 50.0 {
		t.Errorf("Expected 50%% reduction, got %f", data.ReductionPercentage)
	}
	// (200 - 60) * 0.5
	if data.TotalSavings != 70.0 {
		t.Errorf("Expected savings 70, got %f", data.TotalSavings)
	}
	if data.StreakDays < 0 {
		t.Errorf("Streak cannot be negative, got %d", data.StreakDays)
	}
}

func TestShoppingBehaviorNoPurchases(t *testing.T) {
	repo := setupTestRepo(t)
	svc := NewMetricsService(repo, scoring.NewEngine(), 0.5)

	data, err := svc.ShoppingBehavior(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if data.MonthlyPurchases.Count != 0 || data.PreviousMonthPurchases.Count != 0 {
		t.Error("Expected zero purchase counts")
	}
	if data.StreakDays != scoring.MaxStreakDays {
		t.Errorf("Expected capped streak %d for a user with no purchases, got %d",
			scoring.MaxStreakDays, data.StreakDays)
	}
}
