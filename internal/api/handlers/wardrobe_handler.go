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

// WardrobeHandler handles wardrobe CRUD and logging API requests
type WardrobeHandler struct {
	service *service.WardrobeService
}

// NewWardrobeHandler creates a new wardrobe handler
func NewWardrobeHandler(service *service.WardrobeService) *WardrobeHandler {
	return &WardrobeHandler{service: service}
}

// CreateItemRequest represents the request to add a wardrobe item
type CreateItemRequest struct {
	UserID        string     `json:"user_id" binding:"required"`
	Name          string     `json:"name" binding:"required"`
	Category      string     `json:"category" binding:"required"`
	Colors        []string   `json:"colors"`
	Tags          []string   `json:"tags"`
	PurchasePrice *float64   `json:"purchase_price"`
	PurchaseDate  *time.Time `json:"purchase_date"`
}

// UpdateItemRequest represents the request to edit an item's attributes
type UpdateItemRequest struct {
	Name          string     `json:"name" binding:"required"`
	Category      string     `json:"category" binding:"required"`
	Colors        []string   `json:"colors"`
	Tags          []string   `json:"tags"`
	PurchasePrice *float64   `json:"purchase_price"`
	PurchaseDate  *time.Time `json:"purchase_date"`
}

// LogFeedbackRequest represents a rated outfit
type LogFeedbackRequest struct {
	UserID           string   `json:"user_id" binding:"required"`
	ItemIDs          []string `json:"item_ids" binding:"required"`
	ConfidenceRating int      `json:"confidence_rating" binding:"required"`
	Notes            string   `json:"notes"`
}

// RecordPurchaseRequest represents a logged purchase
type RecordPurchaseRequest struct {
	UserID      string     `json:"user_id" binding:"required"`
	ItemID      *string    `json:"item_id"`
	Amount      float64    `json:"amount" binding:"required"`
	PurchasedAt *time.Time `json:"purchased_at"`
}

// CreateItem adds a garment to the wardrobe
func (h *WardrobeHandler) CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request",
			Message: err.Error(),
		})
		return
	}

	item := &models.WardrobeItem{
		UserID:        req.UserID,
		Name:          req.Name,
		Category:      req.Category,
		Colors:        req.Colors,
		Tags:          req.Tags,
		PurchasePrice: req.PurchasePrice,
		PurchaseDate:  req.PurchaseDate,
	}

	if err := h.service.CreateItem(c.Request.Context(), item); err != nil {
		logger.Error("Failed to create wardrobe item", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Failed to create item",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// GetItems lists a user's active wardrobe
func (h *WardrobeHandler) GetItems(c *gin.Context) {
	userID := c.Param("userID")

	items, err := h.service.GetItems(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to get wardrobe items", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to retrieve wardrobe",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, items)
}

// UpdateItem edits an existing item
func (h *WardrobeHandler) UpdateItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid item id",
			Message: err.Error(),
		})
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request",
			Message: err.Error(),
		})
		return
	}

	item := &models.WardrobeItem{
		ID:            id,
		Name:          req.Name,
		Category:      req.Category,
		Colors:        req.Colors,
		Tags:          req.Tags,
		PurchasePrice: req.PurchasePrice,
		PurchaseDate:  req.PurchaseDate,
	}

	if err := h.service.UpdateItem(c.Request.Context(), item); err != nil {
		logger.Error("Failed to update wardrobe item", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Failed to update item",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteItem removes an item from the active wardrobe
func (h *WardrobeHandler) DeleteItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid item id",
			Message: err.Error(),
		})
		return
	}

	if err := h.service.RemoveItem(c.Request.Context(), id); err != nil {
		logger.Error("Failed to remove wardrobe item", zap.Error(err))
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Failed to remove item",
			Message: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// MarkWorn logs a wear event on an item
func (h *WardrobeHandler) MarkWorn(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid item id",
			Message: err.Error(),
		})
		return
	}

	item, err := h.service.MarkItemWorn(c.Request.Context(), id)
	if err != nil {
		logger.Error("Failed to mark item worn", zap.Error(err))
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Failed to mark item worn",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, item)
}

// LogFeedback records a rated outfit
func (h *WardrobeHandler) LogFeedback(c *gin.Context) {
	var req LogFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request",
			Message: err.Error(),
		})
		return
	}

	feedback := &models.OutfitFeedback{
		UserID:           req.UserID,
		ItemIDs:          req.ItemIDs,
		ConfidenceRating: req.ConfidenceRating,
		Notes:            req.Notes,
	}

	if err := h.service.LogOutfitFeedback(c.Request.Context(), feedback); err != nil {
		logger.Error("Failed to log outfit feedback", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Failed to log feedback",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, feedback)
}

// RecordPurchase logs a clothing purchase
func (h *WardrobeHandler) RecordPurchase(c *gin.Context) {
	var req RecordPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request",
			Message: err.Error(),
		})
		return
	}

	purchase := &models.PurchaseRecord{
		UserID: req.UserID,
		ItemID: req.ItemID,
		Amount: req.Amount,
	}
	if req.PurchasedAt != nil {
		purchase.PurchasedAt = *req.PurchasedAt
	}

	if err := h.service.RecordPurchase(c.Request.Context(), purchase); err != nil {
		logger.Error("Failed to record purchase", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Failed to record purchase",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, purchase)
}
