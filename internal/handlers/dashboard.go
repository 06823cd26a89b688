package handlers

import (
	"net/http"

	"attrition-go/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	log       *zap.Logger
	dashboard *services.DashboardService
}

func NewDashboardHandler(log *zap.Logger, dashboard *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{log: log, dashboard: dashboard}
}

func (h *DashboardHandler) Show(c *gin.Context) {
	d, err := h.dashboard.Build(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to build dashboard", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}
	c.JSON(http.StatusOK, d)
}
