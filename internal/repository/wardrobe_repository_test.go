package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/aynamoda/insight-service/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	// Auto-migrate models
	err = db.AutoMigrate(
		&models.WardrobeItem{},
		&models.OutfitFeedback{},
		&models.RediscoveryChallenge{},
		&models.PurchaseRecord{},
		&models.RecommendationLog{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func seedItem(t *testing.T, repo *WardrobeRepository, userID, name, category string, lastWorn *time.Time) *models.WardrobeItem {
	t.Helper()
	item := &models.WardrobeItem{
		UserID:   userID,
		Name:     name,
		Category: category,
		Colors:   []string{"blue"},
		LastWorn: lastWorn,
		IsActive: true,
	}
	if err := repo.CreateItem(context.Background(), item); err != nil {
		t.Fatalf("Failed to seed item: %v", err)
	}
	return item
}

func TestCreateItem(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWardrobeRepository(db)
	ctx := context.Background()

	price := 49.99
	item := &models.WardrobeItem{
		UserID:        "user-1",
		Name:          "Blue Oxford",
		Category:      "tops",
		Colors:        []string{"blue", "white"},
		Tags:          []string{"casual"},
		PurchasePrice: &price,
		IsActive:      true,
	}

	if err := repo.CreateItem(ctx, item); err != nil {
		t.Fatalf("Failed to create item: %v", err)
	}

	if item.ID == uuid.Nil {
		t.Error("Expected ID to be set after creation")
	}

	retrieved, err := repo.GetItemByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("Failed to get item: %v", err)
	}
	if retrieved == nil {
		t.Fatal("Expected to retrieve item but got nil")
	}
	if retrieved.Name != "Blue Oxford" {
		t.Errorf("Expected name Blue Oxford, got %s", retrieved.Name)
	}
	if len(retrieved.Colors) != 2 || retrieved.Colors[0] != "blue" {
		t.Errorf("Colors did not round-trip: %v", retrieved.Colors)
	}
}

func TestGetItemByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWardrobeRepository(db)

	item, err := repo.GetItemByID(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if item != nil {
		t.Error("Expected nil item for unknown id")
	}
}

func TestGetItemsByUserOrdering(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWardrobeRepository(db)
	ctx := context.Background()

	older := seedItem(t, repo, "user-1", "Older", "tops", nil)
	db.Model(older).Update("created_at", time.Now().Add(-48*time.Hour))
	seedItem(t, repo, "user-1", "Newer", "tops", nil)
	seedItem(t, repo, "user-2", "Other User", "tops", nil)

	items, err := repo.GetItemsByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("Failed to get items: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
	if items[0].Name != "Newer" {
		t.Errorf("Expected newest item first, got %s", items[0].Name)
	}
}

func TestGetNeglectedItems(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWardrobeRepository(db)
	ctx := context.Background()

	neverWorn := seedItem(t, repo, "user-1", "Never Worn", "tops", nil)
	old := time.Now().Add(-120 * 24 * time.Hour)
	longAgo := seedItem(t, repo, "user-1", "Long Ago", "bottoms", &old)
	recent := time.Now().Add(-5 * 24 * time.Hour)
	seedItem(t, repo, "user-1", "Recent", "shoes", &recent)

	cutoff := time.Now().Add(-90 * 24 * time.Hour)
	neglected, err := repo.GetNeglectedItems(ctx, "user-1", cutoff)
	if err != nil {
		t.Fatalf("Failed to get neglected items: %v", err)
	}

	if len(neglected) != 2 {
		t.Fatalf("Expected 2 neglected items, got %d", len(neglected))
	}

	found := map[uuid.UUID]bool{}
	for _, item := range neglected {
		found[item.ID] = true
	}
	if !found[neverWorn.ID] || !found[longAgo.ID] {
		t.Error("Expected the never-worn and long-ago items to be neglected")
	}
}

func TestGetNeglectedItemsNeverWornFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWardrobeRepository(db)
	ctx := context.Background()

	// Seed in worn-first order so the query ordering, not insertion order,
	// puts the never-worn items at the front
	oldest := time.Now().Add(-200 * 24 * time.Hour)
	worn := seedItem(t, repo, "user-1", "Worn Long Ago", "bottoms", &oldest)
	older := time.Now().Add(-150 * 24 * time.Hour)
	wornLater := seedItem(t, repo, "user-1", "Worn Less Long Ago", "shoes", &older)
	neverWorn := seedItem(t, repo, "user-1", "Never Worn", "tops", nil)

	cutoff := time.Now().Add(-90 * 24 * time.Hour)
	neglected, err := repo.GetNeglectedItems(ctx, "user-1", cutoff)
	if err != nil {
		t.Fatalf("Failed to get neglected items: %v", err)
	}

	if len(neglected) != 3 {
		t.Fatalf("Expected 3 neglected items, got %d", len(neglected))
	}
	if neglected[0].ID != neverWorn.ID {
		t.Errorf("Expected the never-worn item first, got %s", neglected[0].Name)
	}
	if neglected[1].ID != worn.ID || neglected[2].ID != wornLater.ID {
		t.Error("Expected worn items ordered least recently worn first")
	}
}

func TestRecordWear(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWardrobeRepository(db)
	ctx := context.Background()

	item := seedItem(t, repo, "user-1", "Blue Oxford", "tops", nil)

	if err := repo.RecordWear(ctx, item.ID, time.Now()); err != nil {
		t.Fatalf("Failed to record wear: %v", err)
	}
	if err := repo.RecordWear(ctx, item.ID, time.Now()); err != nil {
		t.Fatalf("Failed to record second wear: %v", err)
	}

	updated, err := repo.GetItemByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("Failed to get item: %v", err)
	}
	if updated.UsageCount != 2 {
		t.Errorf("Expected usage count 2, got %d", updated.UsageCount)
	}
	if updated.LastWorn == nil {
		t.Error("Expected last worn to be set")
	}
}

func TestRecordWearUnknownItem(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWardrobeRepository(db)

	if err := repo.RecordWear(context.Background(), uuid.New(), time.Now()); err == nil {
		t.Error("Expected error for unknown item")
	}
}

func TestDeactivateItem(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWardrobeRepository(db)
	ctx := context.Background()

	item := seedItem(t, repo, "user-1", "Blue Oxford", "tops", nil)

	if err := repo.DeactivateItem(ctx, item.ID); err != nil {
		t.Fatalf("Failed to deactivate item: %v", err)
	}

	retrieved, err := repo.GetItemByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if retrieved != nil {
		t.Error("Expected deactivated item to be invisible")
	}

	items, err := repo.GetItemsByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("Failed to get items: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Expected empty wardrobe, got %d items", len(items))
	}
}

func TestFeedbackInRange(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWardrobeRepository(db)
	ctx := context.Background()

	inRange := &models.OutfitFeedback{
		UserID:           "user-1",
		ItemIDs:          []string{"a"},
		ConfidenceRating: 4,
	}
	if err := repo.CreateFeedback(ctx, inRange); err != nil {
		t.Fatalf("Failed to create feedback: %v", err)
	}
	db.Model(inRange).Update("created_at", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))

	outOfRange := &models.OutfitFeedback{
		UserID:           "user-1",
		ItemIDs:          []string{"b"},
		ConfidenceRating: 2,
	}
	if err := repo.CreateFeedback(ctx, outOfRange); err != nil {
		t.Fatalf("Failed to create feedback: %v", err)
	}
	db.Model(outOfRange).Update("created_at", time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC))

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	rows, err := repo.GetFeedbackInRange(ctx, "user-1", start, end)
	if err != nil {
		t.Fatalf("Failed to get feedback in range: %v", err)
	}

	if len(rows) != 1 {
		t.Fatalf("Expected 1 row in range, got %d", len(rows))
	}
	if rows[0].ConfidenceRating != 4 {
		t.Errorf("Expected the March row, got rating %d", rows[0].ConfidenceRating)
	}
}

func TestChallengeActiveLookup(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWardrobeRepository(db)
	ctx := context.Background()

	none, err := repo.GetActiveChallenge(ctx, "user-1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if none != nil {
		t.Error("Expected no active challenge")
	}

	challenge := &models.RediscoveryChallenge{
		UserID:        "user-1",
		ChallengeType: models.ChallengeNeglectedItems,
		TargetItemIDs: []string{"a", "b"},
		TotalItems:    2,
		ExpiresAt:     time.Now().Add(14 * 24 * time.Hour),
		IsActive:      true,
	}
	if err := repo.CreateChallenge(ctx, challenge); err != nil {
		t.Fatalf("Failed to create challenge: %v", err)
	}

	active, err := repo.GetActiveChallenge(ctx, "user-1")
	if err != nil {
		t.Fatalf("Failed to get active challenge: %v", err)
	}
	if active == nil {
		t.Fatal("Expected an active challenge")
	}
	if active.TotalItems != 2 {
		t.Errorf("Expected 2 target items, got %d", active.TotalItems)
	}

	active.IsActive = false
	if err := repo.UpdateChallenge(ctx, active); err != nil {
		t.Fatalf("Failed to update challenge: %v", err)
	}

	gone, err := repo.GetActiveChallenge(ctx, "user-1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if gone != nil {
		t.Error("Expected no active challenge after deactivation")
	}
}

func TestPurchaseQueries(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWardrobeRepository(db)
	ctx := context.Background()

	march := &models.PurchaseRecord{
		UserID:      "user-1",
		Amount:      60,
		PurchasedAt: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
	}
	april := &models.PurchaseRecord{
		UserID:      "user-1",
		Amount:      40,
		PurchasedAt: time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC),
	}
	for _, p := range []*models.PurchaseRecord{march, april} {
		if err := repo.CreatePurchase(ctx, p); err != nil {
			t.Fatalf("Failed to create purchase: %v", err)
		}
	}

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	inMarch, err := repo.GetPurchasesInRange(ctx, "user-1", start, start.AddDate(0, 1, 0))
	if err != nil {
		t.Fatalf("Failed to get purchases: %v", err)
	}
	if len(inMarch) != 1 || inMarch[0].Amount != 60 {
		t.Errorf("Expected the March purchase, got %v", inMarch)
	}

	latest, err := repo.GetLatestPurchase(ctx, "user-1")
	if err != nil {
		t.Fatalf("Failed to get latest purchase: %v", err)
	}
	if latest == nil || latest.Amount != 40 {
		t.Errorf("Expected the April purchase as latest, got %v", latest)
	}

	missing, err := repo.GetLatestPurchase(ctx, "user-2")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if missing != nil {
		t.Error("Expected nil latest purchase for user with no purchases")
	}
}

func TestGetStats(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWardrobeRepository(db)
	ctx := context.Background()

	// Empty database still returns zero-valued stats
	stats, err := repo.GetStats(ctx)
	if err != nil {
		t.Fatalf("Failed to get stats: %v", err)
	}
	if stats["total_active_items"].(int64) != 0 {
		t.Errorf("Expected 0 items, got %v", stats["total_active_items"])
	}
	if stats["average_confidence_rating"].(float64) != 0 {
		t.Errorf("Expected 0 average, got %v", stats["average_confidence_rating"])
	}

	seedItem(t, repo, "user-1", "Blue Oxford", "tops", nil)
	if err := repo.CreateFeedback(ctx, &models.OutfitFeedback{
		UserID:           "user-1",
		ItemIDs:          []string{"a"},
		ConfidenceRating: 4,
	}); err != nil {
		t.Fatalf("Failed to create feedback: %v", err)
	}

	stats, err = repo.GetStats(ctx)
	if err != nil {
		t.Fatalf("Failed to get stats: %v", err)
	}
	if stats["total_active_items"].(int64) != 1 {
		t.Errorf("Expected 1 item, got %v", stats["total_active_items"])
	}
	if stats["average_confidence_rating"].(float64) != 4 {
		t.Errorf("Expected average 4, got %v", stats["average_confidence_rating"])
	}
}
