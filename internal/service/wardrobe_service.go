package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/aynamoda/insight-service/internal/models"
	"github.com/yourusername/aynamoda/insight-service/internal/repository"
	"github.com/yourusername/aynamoda/insight-service/pkg/logger"
	"go.uber.org/zap"
)

var validCategories = map[string]bool{
	models.CategoryTops:        true,
	models.CategoryBottoms:     true,
	models.CategoryDresses:     true,
	models.CategoryShoes:       true,
	models.CategoryAccessories: true,
	models.CategoryOuterwear:   true,
}

// WardrobeService handles wardrobe item lifecycle and wear/purchase logging
type WardrobeService struct {
	repo *repository.WardrobeRepository
}

// NewWardrobeService creates a new wardrobe service
func NewWardrobeService(repo *repository.WardrobeRepository) *WardrobeService {
	return &WardrobeService{repo: repo}
}

// CreateItem validates and persists a new wardrobe item
func (s *WardrobeService) CreateItem(ctx context.Context, item *models.WardrobeItem) error {
	if item.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("item name is required")
	}

	item.Category = strings.ToLower(strings.TrimSpace(item.Category))
	if !validCategories[item.Category] {
		return fmt.Errorf("unknown category %q", item.Category)
	}
	if item.PurchasePrice != nil && *item.PurchasePrice < 0 {
		return fmt.Errorf("purchase price cannot be negative")
	}

	item.IsActive = true
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}

	logger.Info("Wardrobe item created",
		zap.String("userID", item.UserID),
		zap.String("itemID", item.ID.String()),
		zap.String("category", item.Category),
	)

	return nil
}

// UpdateItem updates an existing item's attributes
func (s *WardrobeService) UpdateItem(ctx context.Context, item *models.WardrobeItem) error {
	existing, err := s.repo.GetItemByID(ctx, item.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("wardrobe item %s not found", item.ID)
	}

	item.Category = strings.ToLower(strings.TrimSpace(item.Category))
	if !validCategories[item.Category] {
		return fmt.Errorf("unknown category %q", item.Category)
	}

	// Wear history is owned by wear logging, not item edits
	item.UserID = existing.UserID
	item.UsageCount = existing.UsageCount
	item.LastWorn = existing.LastWorn
	item.CreatedAt = existing.CreatedAt
	item.IsActive = true

	return s.repo.UpdateItem(ctx, item)
}

// GetItems retrieves a user's active wardrobe, most recently added first
func (s *WardrobeService) GetItems(ctx context.Context, userID string) ([]models.WardrobeItem, error) {
	return s.repo.GetItemsByUser(ctx, userID)
}

// RemoveItem takes an item out of the active wardrobe
func (s *WardrobeService) RemoveItem(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeactivateItem(ctx, id)
}

// MarkItemWorn logs a single wear event on an item
func (s *WardrobeService) MarkItemWorn(ctx context.Context, id uuid.UUID) (*models.WardrobeItem, error) {
	if err := s.repo.RecordWear(ctx, id, time.Now()); err != nil {
		return nil, err
	}
	return s.repo.GetItemByID(ctx, id)
}

// LogOutfitFeedback records a rated outfit and bumps wear history on every
// item the outfit listed
func (s *WardrobeService) LogOutfitFeedback(ctx context.Context, feedback *models.OutfitFeedback) error {
	if feedback.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if len(feedback.ItemIDs) == 0 {
		return fmt.Errorf("outfit feedback needs at least one item")
	}
	if feedback.ConfidenceRating < 1 || feedback.ConfidenceRating > 5 {
		return fmt.Errorf("confidence rating must be between 1 and 5")
	}

	if err := s.repo.CreateFeedback(ctx, feedback); err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}

	wornAt := feedback.CreatedAt
	if wornAt.IsZero() {
		wornAt = time.Now()
	}

	// Best-effort: the feedback row is the source of truth for wear counts,
	// the denormalized item fields just track it
	for _, itemID := range feedback.ItemIDs {
		id, err := uuid.Parse(itemID)
		if err != nil {
			logger.Warn("Skipping wear update for malformed item id",
				zap.String("itemID", itemID))
			continue
		}
		if err := s.repo.RecordWear(ctx, id, wornAt); err != nil {
			logger.Error("Failed to update item wear history",
				zap.String("itemID", itemID),
				zap.Error(err),
			)
		}
	}

	return nil
}

// RecordPurchase logs a clothing purchase for behavior tracking
func (s *WardrobeService) RecordPurchase(ctx context.Context, purchase *models.PurchaseRecord) error {
	if purchase.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if purchase.Amount < 0 {
		return fmt.Errorf("purchase amount cannot be negative")
	}
	if purchase.PurchasedAt.IsZero() {
		purchase.PurchasedAt = time.Now()
	}

	return s.repo.CreatePurchase(ctx, purchase)
}
