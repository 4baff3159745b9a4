package scoring

import (
	"time"

	"github.com/yourusername/aynamoda/insight-service/internal/models"
)

// MaxStreakDays caps the no-purchase streak for users with no recorded
// purchases at all.
const MaxStreakDays = 365

// ReductionPercentage measures how much purchasing dropped compared to the
// previous month, as a percentage of the previous month's purchase count.
// Never negative; zero when there is no previous-month activity to compare.
func (e *Engine) ReductionPercentage(previous, current models.MonthlySpend) float64 {
	if previous.Count == 0 {
		return 0
	}

	reduction := float64(previous.Count-current.Count) / float64(previous.Count) * 100
	if reduction < 0 {
		return 0
	}
	return roundTo(reduction, 1)
}

// StreakDays counts consecutive whole days with zero purchases, scanning
// backward from now. A purchase today means no streak.
func (e *Engine) StreakDays(lastPurchase *time.Time, now time.Time) int {
	if lastPurchase == nil {
		return MaxStreakDays
	}

	days := int(now.Sub(*lastPurchase).Hours() / 24)
	if days < 0 {
		return 0
	}
	if days > MaxStreakDays {
		return MaxStreakDays
	}
	return days
}

// TotalSavings estimates money kept by the month-over-month spend reduction.
// This is a policy-weighted trend figure, not a ledger balance.
func (e *Engine) TotalSavings(previous, current models.MonthlySpend, savingsRate float64) float64 {
	reduction := previous.Spend - current.Spend
	if reduction <= 0 {
		return 0
	}
	return roundTo(reduction*savingsRate, 2)
}

// ShoppingBehavior assembles the derived anti-consumption view
func (e *Engine) ShoppingBehavior(current, previous models.MonthlySpend, lastPurchase *time.Time, savingsRate float64, now time.Time) models.ShoppingBehaviorData {
	return models.ShoppingBehaviorData{
		MonthlyPurchases:       current,
		PreviousMonthPurchases: previous,
		ReductionPercentage:    e.ReductionPercentage(previous, current),
		StreakDays:             e.StreakDays(lastPurchase, now),
		TotalSavings:           e.TotalSavings(previous, current, savingsRate),
	}
}
