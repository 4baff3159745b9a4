package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/aynamoda/insight-service/internal/models"
	"github.com/yourusername/aynamoda/insight-service/internal/repository"
	"github.com/yourusername/aynamoda/insight-service/pkg/logger"
	"go.uber.org/zap"
)

// ChallengePolicy carries the tunable challenge parameters
type ChallengePolicy struct {
	NeglectThresholdDays  int
	ChallengeDurationDays int
	ItemCap               int
}

// DefaultChallengePolicy matches the product defaults
func DefaultChallengePolicy() ChallengePolicy {
	return ChallengePolicy{
		NeglectThresholdDays:  90,
		ChallengeDurationDays: 14,
		ItemCap:               6,
	}
}

// ChallengeService manages the rediscovery challenge lifecycle
type ChallengeService struct {
	repo   *repository.WardrobeRepository
	policy ChallengePolicy
}

// NewChallengeService creates a new challenge service
func NewChallengeService(repo *repository.WardrobeRepository, policy ChallengePolicy) *ChallengeService {
	return &ChallengeService{repo: repo, policy: policy}
}

// CreateRediscoveryChallenge builds a challenge from the user's neglected
// items. Returns (nil, nil) when nothing is neglected: the caller renders
// an all-caught-up state, not an error. An unexpired active challenge is
// returned as-is instead of stacking a second one.
func (s *ChallengeService) CreateRediscoveryChallenge(ctx context.Context, userID string) (*models.RediscoveryChallenge, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	now := time.Now()

	existing, err := s.repo.GetActiveChallenge(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if now.Before(existing.ExpiresAt) {
			return existing, nil
		}
		// Expired and never finished; retire it so a fresh one can start
		existing.IsActive = false
		if err := s.repo.UpdateChallenge(ctx, existing); err != nil {
			logger.Error("Failed to retire expired challenge",
				zap.String("challengeID", existing.ID.String()),
				zap.Error(err),
			)
		}
	}

	cutoff := now.AddDate(0, 0, -s.policy.NeglectThresholdDays)
	neglected, err := s.repo.GetNeglectedItems(ctx, userID, cutoff)
	if err != nil {
		return nil, err
	}
	if len(neglected) == 0 {
		return nil, nil
	}

	if len(neglected) > s.policy.ItemCap {
		neglected = neglected[:s.policy.ItemCap]
	}

	targetIDs := make([]string, len(neglected))
	for i, item := range neglected {
		targetIDs[i] = item.ID.String()
	}

	challenge := &models.RediscoveryChallenge{
		UserID:        userID,
		ChallengeType: models.ChallengeNeglectedItems,
		Title:         "Rediscover Your Closet",
		Description: fmt.Sprintf(
			"%d pieces in your wardrobe haven't seen daylight in a while. Wear each of them once before the challenge ends.",
			len(targetIDs)),
		Reward:        "A fresh perspective on what you already own",
		TargetItemIDs: targetIDs,
		Progress:      0,
		TotalItems:    len(targetIDs),
		ExpiresAt:     now.AddDate(0, 0, s.policy.ChallengeDurationDays),
		IsActive:      true,
	}

	if err := s.repo.CreateChallenge(ctx, challenge); err != nil {
		return nil, fmt.Errorf("failed to create challenge: %w", err)
	}

	logger.Info("Rediscovery challenge created",
		zap.String("userID", userID),
		zap.String("challengeID", challenge.ID.String()),
		zap.Int("targetItems", challenge.TotalItems),
	)

	return challenge, nil
}

// ConfirmItemWorn marks one target item as worn today. Confirming an item
// twice, or confirming after completion, is a no-op. Progress is derived
// from the confirmed set, so it can never exceed TotalItems.
func (s *ChallengeService) ConfirmItemWorn(ctx context.Context, challengeID uuid.UUID, itemID string) (*models.RediscoveryChallenge, error) {
	challenge, err := s.repo.GetChallengeByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if challenge == nil {
		return nil, fmt.Errorf("challenge %s not found", challengeID)
	}

	if challenge.IsCompleted() {
		return challenge, nil
	}

	isTarget := false
	for _, id := range challenge.TargetItemIDs {
		if id == itemID {
			isTarget = true
			break
		}
	}
	if !isTarget {
		return nil, fmt.Errorf("item %s is not part of this challenge", itemID)
	}

	for _, id := range challenge.ConfirmedItemIDs {
		if id == itemID {
			return challenge, nil
		}
	}

	challenge.ConfirmedItemIDs = append(challenge.ConfirmedItemIDs, itemID)
	challenge.Progress = len(challenge.ConfirmedItemIDs)

	if challenge.IsCompleted() && challenge.CompletedAt == nil {
		completedAt := time.Now()
		challenge.CompletedAt = &completedAt
		challenge.IsActive = false

		logger.Info("Rediscovery challenge completed",
			zap.String("challengeID", challenge.ID.String()),
			zap.String("userID", challenge.UserID),
		)
	}

	if err := s.repo.UpdateChallenge(ctx, challenge); err != nil {
		return nil, fmt.Errorf("failed to update challenge: %w", err)
	}

	// Best-effort: also log the wear on the item itself
	if id, err := uuid.Parse(itemID); err == nil {
		if err := s.repo.RecordWear(ctx, id, time.Now()); err != nil {
			logger.Error("Failed to update item wear history",
				zap.String("itemID", itemID),
				zap.Error(err),
			)
		}
	}

	return challenge, nil
}

// GetActiveChallenge retrieves a user's current challenge, if any
func (s *ChallengeService) GetActiveChallenge(ctx context.Context, userID string) (*models.RediscoveryChallenge, error) {
	return s.repo.GetActiveChallenge(ctx, userID)
}

// DaysRemaining reports whole days until expiry; zero once expired.
// Expiry is informational only, the challenge is never force-closed.
func (s *ChallengeService) DaysRemaining(challenge *models.RediscoveryChallenge, now time.Time) int {
	if challenge == nil || !now.Before(challenge.ExpiresAt) {
		return 0
	}
	return int(challenge.ExpiresAt.Sub(now).Hours() / 24)
}
