package handlers

import (
	"errors"
	"net/http"

	"attrition-go/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DataHandler lists and removes raw survey responses.
type DataHandler struct {
	log *zap.Logger
}

func NewDataHandler(log *zap.Logger) *DataHandler {
	return &DataHandler{log: log}
}

func (h *DataHandler) List(c *gin.Context) {
	responses, err := repository.ListSurveyResponses(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.log.Error("Failed to list survey responses", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"responses": responses})
}

func (h *DataHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	err := repository.DeleteSurveyResponse(c.Request.Context(), id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Survey response not found"})
	case err != nil:
		h.log.Error("Failed to delete survey response", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete record"})
	default:
		h.log.Info("Survey response deleted", zap.String("id", id))
		c.Status(http.StatusNoContent)
	}
}
