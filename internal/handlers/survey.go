package handlers

import (
	"errors"
	"net/http"

	"attrition-go/internal/scoring"
	"attrition-go/internal/services"
	"attrition-go/internal/survey"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SurveyHandler struct {
	log           *zap.Logger
	surveys       *services.SurveyService
	organizations *services.OrganizationSuggester
}

func NewSurveyHandler(log *zap.Logger, surveys *services.SurveyService, organizations *services.OrganizationSuggester) *SurveyHandler {
	return &SurveyHandler{log: log, surveys: surveys, organizations: organizations}
}

func (h *SurveyHandler) Form(c *gin.Context) {
	c.JSON(http.StatusOK, h.surveys.Form())
}

func (h *SurveyHandler) Organizations(c *gin.Context) {
	names := h.organizations.Suggest(c.Request.Context(), c.Query("q"))
	c.JSON(http.StatusOK, gin.H{"organizations": names})
}

func (h *SurveyHandler) Submit(c *gin.Context) {
	answers, ok := bindAnswers(c)
	if !ok {
		return
	}

	sub, err := h.surveys.Submit(c.Request.Context(), answers)
	var fieldErrs survey.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Please complete every question.", "fields": fieldErrs})
	case errors.Is(err, services.ErrNarrativeUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to generate the attrition prediction. Please try again."})
	case err != nil:
		h.log.Error("Failed to submit survey", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit survey"})
	default:
		c.JSON(http.StatusCreated, sub)
	}
}

// Score evaluates answers with the engine only. The optional mode query
// parameter selects corrected or legacy scoring.
func (h *SurveyHandler) Score(c *gin.Context) {
	answers, ok := bindAnswers(c)
	if !ok {
		return
	}
	if raw := c.Query("mode"); raw != "" {
		mode, err := scoring.ParseMode(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, scoring.NewScorer(mode).Evaluate(answers))
		return
	}
	c.JSON(http.StatusOK, h.surveys.Score(answers))
}

func bindAnswers(c *gin.Context) (scoring.Answers, bool) {
	var raw map[string]string
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Survey answers must be a JSON object of strings."})
		return scoring.Answers{}, false
	}
	answers, err := scoring.ParseAnswers(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return scoring.Answers{}, false
	}
	return answers, true
}
