package scoring

import (
	"sort"

	"github.com/yourusername/aynamoda/insight-service/internal/models"
)

// MetricsRankSize is how many items the most/least confident lists carry
const MetricsRankSize = 3

// MonthlyConfidence aggregates one calendar month of outfit feedback.
// An empty month yields a zero-valued metrics object, never an error.
func (e *Engine) MonthlyConfidence(month, year int, rows []models.OutfitFeedback) models.MonthlyConfidenceMetrics {
	metrics := models.MonthlyConfidenceMetrics{
		Month: month,
		Year:  year,
	}

	if len(rows) == 0 {
		return metrics
	}

	metrics.TotalOutfitsRated = len(rows)

	ratingSum := 0
	perItem := make(map[string]*models.ItemConfidence)
	for _, row := range rows {
		ratingSum += row.ConfidenceRating
		for _, itemID := range row.ItemIDs {
			entry, ok := perItem[itemID]
			if !ok {
				entry = &models.ItemConfidence{ItemID: itemID}
				perItem[itemID] = entry
			}
			entry.OutfitCount++
			entry.AverageConfidence += float64(row.ConfidenceRating)
		}
	}

	metrics.AverageConfidenceRating = roundTo(float64(ratingSum)/float64(len(rows)), 1)

	ranked := make([]models.ItemConfidence, 0, len(perItem))
	for _, entry := range perItem {
		entry.AverageConfidence = roundTo(entry.AverageConfidence/float64(entry.OutfitCount), 2)
		ranked = append(ranked, *entry)
	}

	metrics.MostConfidentItems = rankItems(ranked, true)
	metrics.LeastConfidentItems = rankItems(ranked, false)

	return metrics
}

// rankItems orders by average confidence, ties broken by appearance
// frequency descending, then item id for a stable result.
func rankItems(items []models.ItemConfidence, highestFirst bool) []models.ItemConfidence {
	ranked := make([]models.ItemConfidence, len(items))
	copy(ranked, items)

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].AverageConfidence != ranked[j].AverageConfidence {
			if highestFirst {
				return ranked[i].AverageConfidence > ranked[j].AverageConfidence
			}
			return ranked[i].AverageConfidence < ranked[j].AverageConfidence
		}
		if ranked[i].OutfitCount != ranked[j].OutfitCount {
			return ranked[i].OutfitCount > ranked[j].OutfitCount
		}
		return ranked[i].ItemID < ranked[j].ItemID
	})

	if len(ranked) > MetricsRankSize {
		ranked = ranked[:MetricsRankSize]
	}
	return ranked
}
