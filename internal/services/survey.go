package services

import (
	"context"
	"fmt"

	"attrition-go/internal/config"
	"attrition-go/internal/metrics"
	"attrition-go/internal/models"
	"attrition-go/internal/narrative"
	"attrition-go/internal/repository"
	"attrition-go/internal/scoring"
	"attrition-go/internal/survey"

	"go.uber.org/zap"
)

// SurveyService turns a completed survey into a stored response.
type SurveyService struct {
	log       *zap.Logger
	form      *models.SurveyForm
	scorer    scoring.Scorer
	narrator  narrator
	maxTokens int
	metrics   *metrics.Recorder
	alerts    *AlertService
}

func NewSurveyService(log *zap.Logger, form *models.SurveyForm, scorer scoring.Scorer, provider narrative.Provider, ai config.AIConfig, rec *metrics.Recorder, alerts *AlertService) *SurveyService {
	return &SurveyService{
		log:       log,
		form:      form,
		scorer:    scorer,
		narrator:  narrator{provider: provider, model: ai.Model, metrics: rec},
		maxTokens: ai.SurveyMaxTokens,
		metrics:   rec,
		alerts:    alerts,
	}
}

// Submission is a stored response and the engine result computed for it.
type Submission struct {
	Response *models.SurveyResponse `json:"response"`
	Result   scoring.Result         `json:"result"`
}

// Submit validates the answers, asks for a narrative prediction, scores the
// response and stores it. Validation failures are returned as
// survey.FieldErrors. A narrative failure returns ErrNarrativeUnavailable
// and stores nothing.
func (s *SurveyService) Submit(ctx context.Context, a scoring.Answers) (*Submission, error) {
	if errs := survey.Validate(s.form, a); errs != nil {
		return nil, errs
	}

	prompt, err := narrative.SurveyPrompt(a)
	if err != nil {
		return nil, err
	}
	text, err := s.narrator.generate(ctx, "survey", prompt, s.maxTokens)
	if err != nil {
		s.log.Error("Failed to generate survey narrative", zap.String("name", a.Name), zap.Error(err))
		return nil, err
	}
	text = narrative.OrFallback(text, narrative.FallbackText)

	result := s.scorer.Evaluate(a)
	response := &models.SurveyResponse{
		Answers:          a,
		Attrition:        narrative.AttritionFlag(text),
		AIRecommendation: text,
		RiskTier:         result.Risk,
		ScoringMode:      s.scorer.Mode(),
	}
	if err := repository.CreateSurveyResponse(ctx, response); err != nil {
		return nil, fmt.Errorf("store survey response: %w", err)
	}

	s.log.Info("Survey response stored",
		zap.String("responseID", response.ID),
		zap.String("riskTier", string(result.Risk)),
		zap.String("attrition", response.Attrition),
	)
	s.metrics.RecordSubmission(string(result.Risk), response.Attrition)
	s.alerts.Notify(response)

	return &Submission{Response: response, Result: result}, nil
}

// Score evaluates answers without storing anything. Unknown labels score
// zero; nothing is rejected.
func (s *SurveyService) Score(a scoring.Answers) scoring.Result {
	return s.scorer.Evaluate(a)
}

// Form returns the survey definition served to clients.
func (s *SurveyService) Form() *models.SurveyForm {
	return s.form
}
