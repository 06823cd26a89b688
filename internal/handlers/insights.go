package handlers

import (
	"errors"
	"net/http"

	"attrition-go/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type InsightsHandler struct {
	log      *zap.Logger
	insights *services.InsightsService
}

func NewInsightsHandler(log *zap.Logger, insights *services.InsightsService) *InsightsHandler {
	return &InsightsHandler{log: log, insights: insights}
}

func (h *InsightsHandler) Show(c *gin.Context) {
	employees, err := h.insights.Employees(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.log.Error("Failed to load employees", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load employees"})
		return
	}
	overall, err := h.insights.Overview(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to load overall recommendation", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load recommendation"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"overallRecommendation": overall,
		"employees":             employees,
	})
}

func (h *InsightsHandler) Refresh(c *gin.Context) {
	rec, err := h.insights.Refresh(c.Request.Context())
	switch {
	case errors.Is(err, services.ErrNarrativeUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to generate a recommendation. Please try again."})
	case err != nil:
		h.log.Error("Failed to refresh recommendation", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh recommendation"})
	default:
		c.JSON(http.StatusOK, gin.H{"recommendation": rec})
	}
}
