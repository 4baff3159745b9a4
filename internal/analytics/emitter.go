package analytics

import (
	"context"

	"github.com/yourusername/aynamoda/insight-service/internal/models"
	"github.com/yourusername/aynamoda/insight-service/internal/repository"
)

// Emitter records analytics events. Callers treat it as best-effort: a
// failed emit must never fail the operation that produced the event.
type Emitter interface {
	RecordRecommendation(ctx context.Context, log *models.RecommendationLog) error
}

// StoreEmitter persists analytics events to the primary store
type StoreEmitter struct {
	repo *repository.WardrobeRepository
}

// NewStoreEmitter creates an emitter backed by the wardrobe repository
func NewStoreEmitter(repo *repository.WardrobeRepository) *StoreEmitter {
	return &StoreEmitter{repo: repo}
}

// RecordRecommendation writes a shop-your-closet recommendation row
func (e *StoreEmitter) RecordRecommendation(ctx context.Context, log *models.RecommendationLog) error {
	return e.repo.CreateRecommendationLog(ctx, log)
}
