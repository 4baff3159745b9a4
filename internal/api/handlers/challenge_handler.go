package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yourusername/aynamoda/insight-service/internal/models"
	"github.com/yourusername/aynamoda/insight-service/internal/service"
	"github.com/yourusername/aynamoda/insight-service/pkg/logger"
	"go.uber.org/zap"
)

// ChallengeHandler handles rediscovery challenge API requests
type ChallengeHandler struct {
	service *service.ChallengeService
}

// NewChallengeHandler creates a new challenge handler
func NewChallengeHandler(service *service.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{service: service}
}

// CreateChallengeRequest represents the request to start a challenge
type CreateChallengeRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// ConfirmWornRequest represents a worn-today confirmation
type ConfirmWornRequest struct {
	ItemID string `json:"item_id" binding:"required"`
}

// ChallengeResponse wraps a challenge with its informational expiry
type ChallengeResponse struct {
	*models.RediscoveryChallenge
	DaysRemaining int `json:"days_remaining"`
}

// Create starts a rediscovery challenge from the user's neglected items
func (h *ChallengeHandler) Create(c *gin.Context) {
	var req CreateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request",
			Message: err.Error(),
		})
		return
	}

	challenge, err := h.service.CreateRediscoveryChallenge(c.Request.Context(), req.UserID)
	if err != nil {
		logger.Error("Failed to create challenge", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to create challenge",
			Message: err.Error(),
		})
		return
	}

	// No neglected items: an all-caught-up state, not an error
	if challenge == nil {
		c.JSON(http.StatusOK, gin.H{
			"challenge": nil,
			"message":   "Everything in your wardrobe has been worn recently",
		})
		return
	}

	c.JSON(http.StatusCreated, ChallengeResponse{
		RediscoveryChallenge: challenge,
		DaysRemaining:        h.service.DaysRemaining(challenge, time.Now()),
	})
}

// GetActive returns a user's current challenge
func (h *ChallengeHandler) GetActive(c *gin.Context) {
	userID := c.Param("userID")

	challenge, err := h.service.GetActiveChallenge(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to get active challenge", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to retrieve challenge",
			Message: err.Error(),
		})
		return
	}

	if challenge == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "No active challenge",
			Message: "No active challenge exists for this user",
		})
		return
	}

	c.JSON(http.StatusOK, ChallengeResponse{
		RediscoveryChallenge: challenge,
		DaysRemaining:        h.service.DaysRemaining(challenge, time.Now()),
	})
}

// ConfirmWorn marks one challenge target as worn today
func (h *ChallengeHandler) ConfirmWorn(c *gin.Context) {
	challengeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid challenge id",
			Message: err.Error(),
		})
		return
	}

	var req ConfirmWornRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request",
			Message: err.Error(),
		})
		return
	}

	challenge, err := h.service.ConfirmItemWorn(c.Request.Context(), challengeID, req.ItemID)
	if err != nil {
		logger.Error("Failed to confirm worn item", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Failed to confirm worn item",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ChallengeResponse{
		RediscoveryChallenge: challenge,
		DaysRemaining:        h.service.DaysRemaining(challenge, time.Now()),
	})
}
