package scoring

import (
	"math"
	"time"

	"github.com/yourusername/aynamoda/insight-service/internal/models"
)

// ProjectionHorizonDays is how far ahead cost-per-wear projections assume
// the observed wear rate continues.
const ProjectionHorizonDays = 365

// CostPerWear amortizes an item's purchase price over its recorded wears.
//
// An unworn item carries its full price as cost-per-wear (nothing amortized
// yet) and projects the same, since there is no wear rate to extend. A worn
// item projects the observed wears-per-day rate over the next year, so the
// projected figure never exceeds the current one.
func (e *Engine) CostPerWear(itemID string, price float64, purchaseDate *time.Time, totalWears int, now time.Time) models.CostPerWearRecord {
	record := models.CostPerWearRecord{
		ItemID:        itemID,
		PurchasePrice: price,
		TotalWears:    totalWears,
	}

	if purchaseDate != nil {
		days := int(now.Sub(*purchaseDate).Hours() / 24)
		if days < 0 {
			days = 0
		}
		record.DaysSincePurchase = days
	}

	if totalWears <= 0 {
		record.CostPerWear = roundTo(price, 2)
		record.ProjectedCostPerWear = record.CostPerWear
		return record
	}

	record.CostPerWear = roundTo(price/float64(totalWears), 2)

	// Wears per day since purchase; same-day purchases count as one day
	// so the rate stays finite.
	effectiveDays := record.DaysSincePurchase
	if effectiveDays < 1 {
		effectiveDays = 1
	}
	rate := float64(totalWears) / float64(effectiveDays)

	projectedWears := float64(totalWears) + rate*ProjectionHorizonDays
	record.ProjectedCostPerWear = roundTo(price/projectedWears, 2)

	return record
}

func roundTo(value float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(value*factor) / factor
}
