package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"attrition-go/internal/config"
	"attrition-go/internal/metrics"
	"attrition-go/internal/models"
	"attrition-go/internal/narrative"
	"attrition-go/internal/repository"
	"attrition-go/internal/scoring"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// EmployeeCard is one row of the insights view. Attrition comes from the
// narrative; RiskTier and Scores come from the engine. They are reported
// side by side and may disagree.
type EmployeeCard struct {
	ID               string              `json:"id"`
	Name             string              `json:"name"`
	Designation      string              `json:"designation"`
	Organization     string              `json:"organization"`
	Experience       string              `json:"experience"`
	Attrition        string              `json:"attrition"`
	AIRecommendation string              `json:"aiRecommendation"`
	RiskTier         scoring.RiskTier    `json:"riskTier"`
	Scores           scoring.ScoreVector `json:"scores"`
	CreatedAt        time.Time           `json:"createdAt"`
}

// InsightsService serves per-employee cards and the overall recommendation.
type InsightsService struct {
	log       *zap.Logger
	scorer    scoring.Scorer
	narrator  narrator
	maxTokens int
	cache     *lru.Cache[string, scoring.Result]
}

func NewInsightsService(log *zap.Logger, scorer scoring.Scorer, provider narrative.Provider, ai config.AIConfig, cacheSize int, rec *metrics.Recorder) (*InsightsService, error) {
	if cacheSize <= 0 {
		cacheSize = 1024
	}
	cache, err := lru.New[string, scoring.Result](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create result cache: %w", err)
	}
	return &InsightsService{
		log:       log,
		scorer:    scorer,
		narrator:  narrator{provider: provider, model: ai.Model, metrics: rec},
		maxTokens: ai.SummaryMaxTokens,
		cache:     cache,
	}, nil
}

// Employees returns a card for every stored response whose name contains
// query, newest first.
func (s *InsightsService) Employees(ctx context.Context, query string) ([]EmployeeCard, error) {
	responses, err := repository.ListSurveyResponses(ctx, query)
	if err != nil {
		return nil, err
	}
	results, err := s.evaluate(ctx, responses)
	if err != nil {
		return nil, err
	}

	cards := make([]EmployeeCard, len(responses))
	for i, r := range responses {
		cards[i] = EmployeeCard{
			ID:               r.ID,
			Name:             r.Name,
			Designation:      r.Designation,
			Organization:     r.Organization,
			Experience:       r.Experience,
			Attrition:        r.Attrition,
			AIRecommendation: narrative.OrFallback(r.AIRecommendation, narrative.FallbackText),
			RiskTier:         results[i].Risk,
			Scores:           results[i].Scores,
			CreatedAt:        r.CreatedAt,
		}
	}
	return cards, nil
}

// evaluate scores the responses, reusing cached results. Stored answers
// never change, so a result keyed by id and mode stays valid.
func (s *InsightsService) evaluate(ctx context.Context, responses []models.SurveyResponse) ([]scoring.Result, error) {
	results := make([]scoring.Result, len(responses))
	var missIdx []int
	var missing []scoring.Answers
	for i, r := range responses {
		if res, ok := s.cache.Get(s.cacheKey(r.ID)); ok {
			results[i] = res
			continue
		}
		missIdx = append(missIdx, i)
		missing = append(missing, r.Answers)
	}
	if len(missing) == 0 {
		return results, nil
	}

	computed, err := s.scorer.EvaluateAll(ctx, missing)
	if err != nil {
		return nil, err
	}
	for j, i := range missIdx {
		results[i] = computed[j]
		s.cache.Add(s.cacheKey(responses[i].ID), computed[j])
	}
	return results, nil
}

func (s *InsightsService) cacheKey(id string) string {
	return string(s.scorer.Mode()) + ":" + id
}

// Overview returns the most recent overall recommendation.
func (s *InsightsService) Overview(ctx context.Context) (string, error) {
	rec, err := repository.LatestRecommendation(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return narrative.NoRecommendationText, nil
	}
	if err != nil {
		return "", err
	}
	return rec.Text, nil
}

// Refresh asks for a new overall recommendation across every stored
// response and appends it to the history.
func (s *InsightsService) Refresh(ctx context.Context) (*models.Recommendation, error) {
	cards, err := s.Employees(ctx, "")
	if err != nil {
		return nil, err
	}
	summaries := make([]narrative.EmployeeSummary, len(cards))
	for i, c := range cards {
		summaries[i] = narrative.EmployeeSummary{
			Name:          c.Name,
			Designation:   c.Designation,
			Organization:  c.Organization,
			Experience:    c.Experience,
			AttritionRisk: c.RiskTier,
			ScoreVector:   c.Scores,
		}
	}

	prompt, err := narrative.SummaryPrompt(summaries)
	if err != nil {
		return nil, err
	}
	text, err := s.narrator.generate(ctx, "summary", prompt, s.maxTokens)
	if err != nil {
		s.log.Error("Failed to generate overall recommendation", zap.Error(err))
		return nil, err
	}

	rec, err := repository.SaveRecommendation(ctx, narrative.OrFallback(text, narrative.NoRecommendationText))
	if err != nil {
		return nil, fmt.Errorf("store recommendation: %w", err)
	}
	s.log.Info("Overall recommendation refreshed", zap.Int("employees", len(cards)))
	return rec, nil
}
