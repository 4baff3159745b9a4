package aggregator

import (
	"github.com/yourusername/aynamoda/insight-service/internal/models"
)

// UsageAggregator rolls outfit feedback rows up into per-item wear
// statistics. A feedback row counts one wear for every item it lists.
type UsageAggregator struct{}

// NewUsageAggregator creates a new usage aggregator
func NewUsageAggregator() *UsageAggregator {
	return &UsageAggregator{}
}

// WearCounts builds a wear-event count per item id across all feedback rows
func (a *UsageAggregator) WearCounts(feedback []models.OutfitFeedback) map[string]int {
	counts := make(map[string]int)
	for _, row := range feedback {
		seen := make(map[string]bool, len(row.ItemIDs))
		for _, itemID := range row.ItemIDs {
			if seen[itemID] {
				continue
			}
			seen[itemID] = true
			counts[itemID]++
		}
	}
	return counts
}

// WearCount counts the wear events recorded for a single item
func (a *UsageAggregator) WearCount(feedback []models.OutfitFeedback, itemID string) int {
	count := 0
	for _, row := range feedback {
		for _, id := range row.ItemIDs {
			if id == itemID {
				count++
				break
			}
		}
	}
	return count
}
