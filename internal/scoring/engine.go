package scoring

import (
	"fmt"
	"strings"
	"time"

	"github.com/yourusername/aynamoda/insight-service/internal/models"
)

// Scoring policy constants
const (
	// SimilarityBaseline is the similar-item count treated as a fully
	// stocked category. Confidence saturates at this count.
	SimilarityBaseline = 3

	// RecentWearWindowDays bounds how far back a wear still counts as
	// "recent" for reasoning purposes.
	RecentWearWindowDays = 30
)

// Engine scores prospective purchases against an existing wardrobe
type Engine struct{}

// NewEngine creates a new scoring engine
func NewEngine() *Engine {
	return &Engine{}
}

// FindSimilar returns the wardrobe items similar to the target.
//
// An item qualifies when its category matches the target category
// (case-insensitive) and it shares at least one color or carries the target
// style as a tag. When the target has no colors and no style, a category
// match alone qualifies. The wardrobe's relative order is preserved: no
// re-sorting, so repository recency ordering survives.
func (e *Engine) FindSimilar(wardrobe []models.WardrobeItem, target models.TargetItem) []models.WardrobeItem {
	category := strings.ToLower(strings.TrimSpace(target.Category))
	style := strings.ToLower(strings.TrimSpace(target.Style))

	targetColors := make(map[string]bool, len(target.Colors))
	for _, c := range target.Colors {
		c = strings.ToLower(strings.TrimSpace(c))
		if c != "" {
			targetColors[c] = true
		}
	}

	broadMatch := len(targetColors) == 0 && style == ""

	var similar []models.WardrobeItem
	for _, item := range wardrobe {
		if strings.ToLower(item.Category) != category {
			continue
		}

		if broadMatch {
			similar = append(similar, item)
			continue
		}

		if e.sharesColor(item.Colors, targetColors) || e.hasStyleTag(item.Tags, style) {
			similar = append(similar, item)
		}
	}

	return similar
}

// ConfidenceScore maps a similar-item count to [0,1]. Zero iff the count is
// zero, monotonically non-decreasing, saturating at SimilarityBaseline.
func (e *Engine) ConfidenceScore(similarCount int) float64 {
	if similarCount <= 0 {
		return 0
	}

	score := float64(similarCount) / float64(SimilarityBaseline)
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// BuildReasoning produces the user-facing explanation for a recommendation.
// Exactly two entries when similar items exist, empty otherwise.
func (e *Engine) BuildReasoning(similar []models.WardrobeItem, category string, now time.Time) []string {
	if len(similar) == 0 {
		return nil
	}

	reasoning := []string{
		fmt.Sprintf("You already own %d similar %s items", len(similar), strings.ToLower(category)),
	}

	recentCutoff := now.Add(-RecentWearWindowDays * 24 * time.Hour)
	recentlyWorn := 0
	for _, item := range similar {
		if item.LastWorn != nil && item.LastWorn.After(recentCutoff) {
			recentlyWorn++
		}
	}

	if recentlyWorn > 0 {
		reasoning = append(reasoning, fmt.Sprintf(
			"%d of these items were worn recently, showing they fit your current style", recentlyWorn))
	} else {
		reasoning = append(reasoning,
			"None of these have been worn lately, so rediscovering them could refresh your wardrobe before buying new")
	}

	return reasoning
}

// Recommend runs the full shop-your-closet scoring pass over a wardrobe
func (e *Engine) Recommend(wardrobe []models.WardrobeItem, target models.TargetItem, now time.Time) *models.ClosetRecommendation {
	similar := e.FindSimilar(wardrobe, target)

	return &models.ClosetRecommendation{
		TargetItem:        target,
		SimilarOwnedItems: similar,
		ConfidenceScore:   e.ConfidenceScore(len(similar)),
		Reasoning:         e.BuildReasoning(similar, target.Category, now),
		GeneratedAt:       now,
	}
}

func (e *Engine) sharesColor(colors []string, targetColors map[string]bool) bool {
	for _, c := range colors {
		if targetColors[strings.ToLower(strings.TrimSpace(c))] {
			return true
		}
	}
	return false
}

func (e *Engine) hasStyleTag(tags []string, style string) bool {
	if style == "" {
		return false
	}
	for _, t := range tags {
		if strings.ToLower(strings.TrimSpace(t)) == style {
			return true
		}
	}
	return false
}
