package scoring

import (
	"testing"
	"time"

	"github.com/yourusername/aynamoda/insight-service/internal/models"
)

func TestReductionPercentage(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name     string
		previous models.MonthlySpend
		current  models.MonthlySpend
		expected float64
	}{
		{
			name:     "Half as many purchases",
			previous: models.MonthlySpend{Count: 4, Spend: 200},
			current:  models.MonthlySpend{Count: 2, Spend: 90},
			expected: 50,
		},
		{
			name:     "No previous activity",
			previous: models.MonthlySpend{},
			current:  models.MonthlySpend{Count: 3, Spend: 120},
			expected: 0,
		},
		{
			name:     "More purchases than last month clamps to zero",
			previous: models.MonthlySpend{Count: 2, Spend: 80},
			current:  models.MonthlySpend{Count: 5, Spend: 240},
			expected: 0,
		},
		{
			name:     "Full stop",
			previous: models.MonthlySpend{Count: 3, Spend: 150},
			current:  models.MonthlySpend{},
			expected: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := engine.ReductionPercentage(tt.previous, tt.current)
			if result != tt.expected {
				t.Errorf("ReductionPercentage = %f, expected %f", result, tt.expected)
			}
		})
	}
}

func TestStreakDays(t *testing.T) {
	engine := NewEngine()
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		lastPurchase *time.Time
		expected     int
	}{
		{
			name:         "Ten days without buying",
			lastPurchase: timePtr(now.Add(-10 * 24 * time.Hour)),
			expected:     10,
		},
		{
			name:         "Purchase today means no streak",
			lastPurchase: timePtr(now.Add(-2 * time.Hour)),
			expected:     0,
		},
		{
			name:         "No purchases ever caps at the maximum",
			lastPurchase: nil,
			expected:     MaxStreakDays,
		},
		{
			name:         "Very old purchase caps at the maximum",
			lastPurchase: timePtr(now.AddDate(-3, 0, 0)),
			expected:     MaxStreakDays,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := engine.StreakDays(tt.lastPurchase, now)
			if result != tt.expected {
				t.Errorf("StreakDays = %d, expected %d", result, tt.expected)
			}
		})
	}
}

func TestTotalSavings(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name     string
		previous models.MonthlySpend
		current  models.MonthlySpend
		rate     float64
		expected float64
	}{
		{
			name:     "Spend dropped by 100 at half rate",
			previous: models.MonthlySpend{Count: 4, Spend: 250},
			current:  models.MonthlySpend{Count: 2, Spend: 150},
			rate:     0.5,
			expected: 50,
		},
		{
			name:     "Spend increased yields zero",
			previous: models.MonthlySpend{Count: 1, Spend: 50},
			current:  models.MonthlySpend{Count: 3, Spend: 200},
			rate:     0.5,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := engine.TotalSavings(tt.previous, tt.current, tt.rate)
			if result != tt.expected {
				t.Errorf("TotalSavings = %f, expected %f", result, tt.expected)
			}
		})
	}
}

func TestShoppingBehavior(t *testing.T) {
	engine := NewEngine()
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	lastPurchase := now.Add(-5 * 24 * time.Hour)

	current := models.MonthlySpend{Count: 1, Spend: 40}
	previous := models.MonthlySpend{Count: 4, Spend: 240}

	data := engine.ShoppingBehavior(current, previous, &lastPurchase, 0.5, now)

	if data.ReductionPercentage != 75 {
		t.Errorf("ReductionPercentage = %f, expected 75", data.ReductionPercentage)
	}
	if data.StreakDays != 5 {
		t.Errorf("StreakDays = %d, expected 5", data.StreakDays)
	}
	if data.TotalSavings != 100 {
		t.Errorf("TotalSavings = %f, expected 100", data.TotalSavings)
	}
	if data.MonthlyPurchases != current || data.PreviousMonthPurchases != previous {
		t.Error("Monthly spend summaries should pass through unchanged")
	}
}
