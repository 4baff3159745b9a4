package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yourusername/aynamoda/insight-service/internal/models"
	"github.com/yourusername/aynamoda/insight-service/internal/service"
	"github.com/yourusername/aynamoda/insight-service/pkg/logger"
	"go.uber.org/zap"
)

// InsightHandler handles recommendation and metrics API requests
type InsightHandler struct {
	insights *service.InsightService
	metrics  *service.MetricsService
}

// NewInsightHandler creates a new insight handler
func NewInsightHandler(insights *service.InsightService, metrics *service.MetricsService) *InsightHandler {
	return &InsightHandler{
		insights: insights,
		metrics:  metrics,
	}
}

// ShopYourClosetRequest describes the prospective purchase to score
type ShopYourClosetRequest struct {
	UserID      string   `json:"user_id" binding:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category" binding:"required"`
	Colors      []string `json:"colors"`
	Style       string   `json:"style"`
}

// ShopYourCloset scores a prospective purchase against the user's wardrobe
func (h *InsightHandler) ShopYourCloset(c *gin.Context) {
	var req ShopYourClosetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request",
			Message: err.Error(),
		})
		return
	}

	target := models.TargetItem{
		Description: req.Description,
		Category:    req.Category,
		Colors:      req.Colors,
		Style:       req.Style,
	}

	recommendation, err := h.insights.ShopYourCloset(c.Request.Context(), req.UserID, target)
	if err != nil {
		logger.Error("Failed to generate recommendation", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to generate recommendation",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, recommendation)
}

// CostPerWear returns the amortized cost view for one item
func (h *InsightHandler) CostPerWear(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("itemID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid item id",
			Message: err.Error(),
		})
		return
	}

	record, err := h.insights.CostPerWear(c.Request.Context(), itemID)
	if err != nil {
		logger.Error("Failed to compute cost per wear", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to compute cost per wear",
			Message: err.Error(),
		})
		return
	}

	if record == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Wardrobe item not found",
			Message: "No wardrobe item exists with this id",
		})
		return
	}

	c.JSON(http.StatusOK, record)
}

// MonthlyConfidence returns the confidence aggregate for one month
func (h *InsightHandler) MonthlyConfidence(c *gin.Context) {
	userID := c.Param("userID")

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid month",
			Message: "month query parameter must be an integer between 1 and 12",
		})
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid year",
			Message: "year query parameter must be an integer",
		})
		return
	}

	metrics, err := h.metrics.MonthlyConfidence(c.Request.Context(), userID, month, year)
	if err != nil {
		logger.Error("Failed to compute monthly confidence", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to compute monthly confidence",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, metrics)
}

// ShoppingBehavior returns the anti-consumption view of recent purchases
func (h *InsightHandler) ShoppingBehavior(c *gin.Context) {
	userID := c.Param("userID")

	data, err := h.metrics.ShoppingBehavior(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to compute shopping behavior", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to compute shopping behavior",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, data)
}

// GetStats retrieves service statistics
func (h *InsightHandler) GetStats(c *gin.Context) {
	stats, err := h.insights.GetStats(c.Request.Context())
	if err != nil {
		logger.Error("Failed to get stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to retrieve statistics",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// HealthCheck reports component health
func (h *InsightHandler) HealthCheck(c *gin.Context) {
	health := h.insights.HealthCheck(c.Request.Context())

	allHealthy := true
	for _, v := range health {
		if !v {
			allHealthy = false
			break
		}
	}

	status := http.StatusOK
	if !allHealthy {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, HealthResponse{
		Status:     map[bool]string{true: "healthy", false: "unhealthy"}[allHealthy],
		Components: health,
	})
}

// Response types

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status     string          `json:"status"`
	Components map[string]bool `json:"components"`
}
