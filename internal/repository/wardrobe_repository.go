package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/aynamoda/insight-service/internal/models"
	"gorm.io/gorm"
)

// WardrobeRepository handles database operations for wardrobe items and the
// records derived from them (feedback, challenges, purchases, analytics)
type WardrobeRepository struct {
	db *gorm.DB
}

// NewWardrobeRepository creates a new wardrobe repository
func NewWardrobeRepository(db *gorm.DB) *WardrobeRepository {
	return &WardrobeRepository{db: db}
}

// CreateItem creates a new wardrobe item
func (r *WardrobeRepository) CreateItem(ctx context.Context, item *models.WardrobeItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// UpdateItem updates an existing wardrobe item
func (r *WardrobeRepository) UpdateItem(ctx context.Context, item *models.WardrobeItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// GetItemByID retrieves a single active wardrobe item
func (r *WardrobeRepository) GetItemByID(ctx context.Context, id uuid.UUID) (*models.WardrobeItem, error) {
	var item models.WardrobeItem
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&item).Error

	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wardrobe item: %w", err)
	}

	return &item, nil
}

// GetItemsByUser retrieves a user's active wardrobe, most recently added
// first. Scorers depend on this ordering staying recency-based.
func (r *WardrobeRepository) GetItemsByUser(ctx context.Context, userID string) ([]models.WardrobeItem, error) {
	var items []models.WardrobeItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		Find(&items).Error

	if err != nil {
		return nil, fmt.Errorf("failed to get wardrobe items: %w", err)
	}

	return items, nil
}

// GetNeglectedItems retrieves active items never worn or not worn since the
// cutoff, least recently worn first
func (r *WardrobeRepository) GetNeglectedItems(ctx context.Context, userID string, cutoff time.Time) ([]models.WardrobeItem, error) {
	var items []models.WardrobeItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ? AND (last_worn IS NULL OR last_worn < ?)", userID, true, cutoff).
		// Never-worn items are the most neglected; Postgres sorts NULLs
		// last under a bare ASC, so spell the ordering out.
		Order("last_worn ASC NULLS FIRST").
		Find(&items).Error

	if err != nil {
		return nil, fmt.Errorf("failed to get neglected items: %w", err)
	}

	return items, nil
}

// RecordWear increments an item's usage count and stamps last worn
func (r *WardrobeRepository) RecordWear(ctx context.Context, id uuid.UUID, wornAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.WardrobeItem{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]interface{}{
			"usage_count": gorm.Expr("usage_count + 1"),
			"last_worn":   wornAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to record wear: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no active item with id %s", id)
	}

	return nil
}

// DeactivateItem removes an item from the active wardrobe
func (r *WardrobeRepository) DeactivateItem(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.WardrobeItem{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)

	if result.Error != nil {
		return fmt.Errorf("failed to deactivate item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no active item with id %s", id)
	}

	return nil
}

// CreateFeedback records an outfit feedback row
func (r *WardrobeRepository) CreateFeedback(ctx context.Context, feedback *models.OutfitFeedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

// GetFeedbackByUser retrieves all feedback rows for a user
func (r *WardrobeRepository) GetFeedbackByUser(ctx context.Context, userID string) ([]models.OutfitFeedback, error) {
	var rows []models.OutfitFeedback
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error

	if err != nil {
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}

	return rows, nil
}

// GetFeedbackInRange retrieves feedback rows created within [start, end)
func (r *WardrobeRepository) GetFeedbackInRange(ctx context.Context, userID string, start, end time.Time) ([]models.OutfitFeedback, error) {
	var rows []models.OutfitFeedback
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, start, end).
		Order("created_at ASC").
		Find(&rows).Error

	if err != nil {
		return nil, fmt.Errorf("failed to get feedback in range: %w", err)
	}

	return rows, nil
}

// CreateChallenge persists a new rediscovery challenge
func (r *WardrobeRepository) CreateChallenge(ctx context.Context, challenge *models.RediscoveryChallenge) error {
	return r.db.WithContext(ctx).Create(challenge).Error
}

// UpdateChallenge updates an existing challenge
func (r *WardrobeRepository) UpdateChallenge(ctx context.Context, challenge *models.RediscoveryChallenge) error {
	return r.db.WithContext(ctx).Save(challenge).Error
}

// GetChallengeByID retrieves a challenge by id
func (r *WardrobeRepository) GetChallengeByID(ctx context.Context, id uuid.UUID) (*models.RediscoveryChallenge, error) {
	var challenge models.RediscoveryChallenge
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&challenge).Error

	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}

	return &challenge, nil
}

// GetActiveChallenge retrieves a user's current active challenge, if any
func (r *WardrobeRepository) GetActiveChallenge(ctx context.Context, userID string) (*models.RediscoveryChallenge, error) {
	var challenge models.RediscoveryChallenge
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		First(&challenge).Error

	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active challenge: %w", err)
	}

	return &challenge, nil
}

// CreatePurchase records a purchase
func (r *WardrobeRepository) CreatePurchase(ctx context.Context, purchase *models.PurchaseRecord) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}

// GetPurchasesInRange retrieves purchases made within [start, end)
func (r *WardrobeRepository) GetPurchasesInRange(ctx context.Context, userID string, start, end time.Time) ([]models.PurchaseRecord, error) {
	var purchases []models.PurchaseRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND purchased_at >= ? AND purchased_at < ?", userID, start, end).
		Order("purchased_at ASC").
		Find(&purchases).Error

	if err != nil {
		return nil, fmt.Errorf("failed to get purchases in range: %w", err)
	}

	return purchases, nil
}

// GetLatestPurchase retrieves a user's most recent purchase, if any
func (r *WardrobeRepository) GetLatestPurchase(ctx context.Context, userID string) (*models.PurchaseRecord, error) {
	var purchase models.PurchaseRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("purchased_at DESC").
		First(&purchase).Error

	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest purchase: %w", err)
	}

	return &purchase, nil
}

// CreateRecommendationLog persists an analytics row for a generated
// recommendation
func (r *WardrobeRepository) CreateRecommendationLog(ctx context.Context, log *models.RecommendationLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// Ping verifies the database connection
func (r *WardrobeRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// GetStats retrieves database statistics
func (r *WardrobeRepository) GetStats(ctx context.Context) (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var totalItems int64
	if err := r.db.WithContext(ctx).Model(&models.WardrobeItem{}).Where("is_active = ?", true).Count(&totalItems).Error; err != nil {
		return nil, err
	}
	stats["total_active_items"] = totalItems

	var totalFeedback int64
	if err := r.db.WithContext(ctx).Model(&models.OutfitFeedback{}).Count(&totalFeedback).Error; err != nil {
		return nil, err
	}
	stats["total_outfits_rated"] = totalFeedback

	// Average rating (COALESCE handles the empty table)
	var avgRating sql.NullFloat64
	if err := r.db.WithContext(ctx).Model(&models.OutfitFeedback{}).Select("COALESCE(AVG(confidence_rating), 0)").Scan(&avgRating).Error; err != nil {
		return nil, err
	}
	if avgRating.Valid {
		stats["average_confidence_rating"] = avgRating.Float64
	} else {
		stats["average_confidence_rating"] = 0.0
	}

	var activeChallenges int64
	if err := r.db.WithContext(ctx).Model(&models.RediscoveryChallenge{}).Where("is_active = ?", true).Count(&activeChallenges).Error; err != nil {
		return nil, err
	}
	stats["active_challenges"] = activeChallenges

	var loggedRecommendations int64
	if err := r.db.WithContext(ctx).Model(&models.RecommendationLog{}).Count(&loggedRecommendations).Error; err != nil {
		return nil, err
	}
	stats["recommendations_logged"] = loggedRecommendations

	return stats, nil
}
