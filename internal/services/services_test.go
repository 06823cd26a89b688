package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"attrition-go/internal/config"
	"attrition-go/internal/models"
	"attrition-go/internal/narrative"
	"attrition-go/internal/repository"
	"attrition-go/internal/scoring"
	"attrition-go/internal/survey"
	"attrition-go/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var testAI = config.AIConfig{Model: "gpt-4o", SurveyMaxTokens: 512, SummaryMaxTokens: 256}

func completeAnswers(name string) scoring.Answers {
	return scoring.Answers{
		Name:                    name,
		Age:                     "29",
		Organization:            "Acme",
		Designation:             "Data Analyst",
		Experience:              "3-5 years",
		Education:               "Master's Degree",
		Gender:                  "Female",
		WorkValue:               "Sometimes",
		Communication:           "Good",
		WorkLifeBalance:         "Fair",
		Stress:                  "Often",
		WorkHours:               "50–60 hours",
		SalarySatisfaction:      "Neutral",
		CompetitiveCompensation: "Dissatisfied",
		CareerGrowth:            "Disagree",
		ProfessionalDevelopment: "Satisfied",
		CompanyMission:          "Agree",
		WorkCulture:             "Positive",
		ManagerSupport:          "Neutral",
		Leadership:              "Fair",
		RoleAlignment:           "Agree",
		RoleSatisfaction:        "Neutral",
	}
}

func loadForm(t *testing.T) *models.SurveyForm {
	t.Helper()
	form, err := models.LoadSurveyForm("../../config/survey.yaml")
	require.NoError(t, err)
	return form
}

func newSurveyService(t *testing.T, provider narrative.Provider) *SurveyService {
	return NewSurveyService(zap.NewNop(), loadForm(t), scoring.Default, provider, testAI, nil, NewAlertService(zap.NewNop()))
}

func TestSubmitStoresResponse(t *testing.T) {
	testutil.UseSQLiteDB(t)
	mock := &narrative.MockProvider{Response: "No. The employee seems settled."}
	svc := newSurveyService(t, mock)

	sub, err := svc.Submit(context.Background(), completeAnswers("Priya"))
	require.NoError(t, err)

	assert.Equal(t, scoring.MediumRisk, sub.Result.Risk)
	assert.Equal(t, 8, sub.Result.Scores.WorkLifeBalance)
	assert.Equal(t, 15, sub.Result.Scores.AttritionRisk)
	assert.Equal(t, "No", sub.Response.Attrition)
	assert.Equal(t, scoring.ModeCorrected, sub.Response.ScoringMode)

	stored, err := repository.GetSurveyResponse(context.Background(), sub.Response.ID)
	require.NoError(t, err)
	assert.Equal(t, "Priya", stored.Name)
	assert.Equal(t, "No. The employee seems settled.", stored.AIRecommendation)
	assert.Equal(t, scoring.MediumRisk, stored.RiskTier)

	prompts := mock.Prompts()
	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], `"name": "Priya"`)
}

func TestSubmitKeepsSignalsIndependent(t *testing.T) {
	testutil.UseSQLiteDB(t)
	svc := newSurveyService(t, &narrative.MockProvider{Response: "Yes, likely to leave."})

	a := completeAnswers("Sam")
	a.WorkHours = "More than 60 hours"
	sub, err := svc.Submit(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, "Yes", sub.Response.Attrition)
	assert.Equal(t, scoring.HighRisk, sub.Result.Risk)

	svc = newSurveyService(t, &narrative.MockProvider{Response: "Yes"})
	sub, err = svc.Submit(context.Background(), completeAnswers("Kim"))
	require.NoError(t, err)
	assert.Equal(t, "Yes", sub.Response.Attrition)
	assert.Equal(t, scoring.MediumRisk, sub.Result.Risk)
}

func TestSubmitEmptyNarrativeUsesFallback(t *testing.T) {
	testutil.UseSQLiteDB(t)
	svc := newSurveyService(t, &narrative.MockProvider{Response: ""})

	sub, err := svc.Submit(context.Background(), completeAnswers("Lee"))
	require.NoError(t, err)
	assert.Equal(t, narrative.FallbackText, sub.Response.AIRecommendation)
	assert.Equal(t, "No", sub.Response.Attrition)
}

func TestSubmitValidationFailure(t *testing.T) {
	testutil.UseSQLiteDB(t)
	mock := &narrative.MockProvider{Response: "No"}
	svc := newSurveyService(t, mock)

	a := completeAnswers("Lee")
	a.Stress = ""
	_, err := svc.Submit(context.Background(), a)

	var fieldErrs survey.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "Stress is required", fieldErrs[scoring.Stress])
	assert.Empty(t, mock.Prompts())
}

func TestSubmitNarrativeFailureStoresNothing(t *testing.T) {
	testutil.UseSQLiteDB(t)
	svc := newSurveyService(t, &narrative.MockProvider{Err: errors.New("connection refused")})

	_, err := svc.Submit(context.Background(), completeAnswers("Lee"))
	assert.ErrorIs(t, err, ErrNarrativeUnavailable)

	all, err := repository.ListSurveyResponses(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = newSurveyService(t, nil).Submit(context.Background(), completeAnswers("Lee"))
	assert.ErrorIs(t, err, ErrNarrativeUnavailable)
}

func TestScoreDoesNotStore(t *testing.T) {
	testutil.UseSQLiteDB(t)
	svc := newSurveyService(t, nil)

	res := svc.Score(scoring.Answers{})
	assert.Equal(t, scoring.HighRisk, res.Risk)
	assert.Equal(t, scoring.ScoreVector{}, res.Scores)

	all, err := repository.ListSurveyResponses(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func newInsights(t *testing.T, provider narrative.Provider) *InsightsService {
	t.Helper()
	svc, err := NewInsightsService(zap.NewNop(), scoring.Default, provider, testAI, 16, nil)
	require.NoError(t, err)
	return svc
}

func seed(t *testing.T, names ...string) {
	t.Helper()
	svc := newSurveyService(t, &narrative.MockProvider{Response: "No"})
	for _, n := range names {
		_, err := svc.Submit(context.Background(), completeAnswers(n))
		require.NoError(t, err)
	}
}

func TestInsightsEmployees(t *testing.T) {
	testutil.UseSQLiteDB(t)
	seed(t, "Priya", "Sam", "Priyanka")
	insights := newInsights(t, nil)

	cards, err := insights.Employees(context.Background(), "PRIYA")
	require.NoError(t, err)
	require.Len(t, cards, 2)
	for _, c := range cards {
		assert.Equal(t, scoring.MediumRisk, c.RiskTier)
		assert.Equal(t, 42, c.Scores.Satisfaction)
		assert.Equal(t, "No", c.Attrition)
	}
	assert.Equal(t, 2, insights.cache.Len())

	all, err := insights.Employees(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, 3, insights.cache.Len())
}

func TestInsightsOverviewAndRefresh(t *testing.T) {
	testutil.UseSQLiteDB(t)
	seed(t, "Priya")
	mock := &narrative.MockProvider{Response: "Offer flexible hours."}
	insights := newInsights(t, mock)

	text, err := insights.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, narrative.NoRecommendationText, text)

	rec, err := insights.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Offer flexible hours.", rec.Text)

	text, err = insights.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Offer flexible hours.", text)

	prompts := mock.Prompts()
	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], `"attritionRisk":"Medium Risk"`)
	assert.Contains(t, prompts[0], `"satisfactionScore":42`)
}

func TestInsightsRefreshFailureKeepsHistory(t *testing.T) {
	testutil.UseSQLiteDB(t)
	_, err := repository.SaveRecommendation(context.Background(), "Earlier advice.")
	require.NoError(t, err)

	insights := newInsights(t, &narrative.MockProvider{Err: errors.New("503")})
	_, err = insights.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrNarrativeUnavailable)

	text, err := insights.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Earlier advice.", text)
}

func TestDashboardBuild(t *testing.T) {
	testutil.UseSQLiteDB(t)
	ctx := context.Background()
	seed(t, "A", "B")

	yes := newSurveyService(t, &narrative.MockProvider{Response: "Yes"})
	a := completeAnswers("C")
	a.WorkHours = "More than 60 hours"
	_, err := yes.Submit(ctx, a)
	require.NoError(t, err)

	dash := NewDashboardService(zap.NewNop(), newInsights(t, nil))
	d, err := dash.Build(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(3), d.TotalResponses)
	assert.Equal(t, 66.7, d.RetentionRate)
	assert.Equal(t, int64(1), d.AtRisk)
	assert.Equal(t, int64(1), d.RiskTiers[scoring.HighRisk])
	assert.Equal(t, int64(2), d.RiskTiers[scoring.MediumRisk])
	assert.Equal(t, int64(0), d.RiskTiers[scoring.LowRisk])

	for _, key := range []string{"attrition", "riskTier", "workLifeBalance", "salarySatisfaction", "stress", "careerGrowth", "companyMission"} {
		raw, ok := d.Charts[key]
		require.True(t, ok, key)
		var option map[string]any
		require.NoError(t, json.Unmarshal(raw, &option), key)
		assert.Contains(t, option, "series", key)
	}
	assert.Contains(t, string(d.Charts["attrition"]), "Not at Risk")
	assert.Contains(t, string(d.Charts["workLifeBalance"]), "Fair")
}

func TestDashboardEmpty(t *testing.T) {
	testutil.UseSQLiteDB(t)
	d, err := NewDashboardService(zap.NewNop(), newInsights(t, nil)).Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), d.TotalResponses)
	assert.Equal(t, 0.0, d.RetentionRate)
}

func TestRetentionRate(t *testing.T) {
	assert.Equal(t, 0.0, RetentionRate(0, 0))
	assert.Equal(t, 100.0, RetentionRate(4, 4))
	assert.Equal(t, 33.3, RetentionRate(1, 3))
}

func TestAlertService(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	alerts := NewAlertService(zap.New(core))

	assert.True(t, alerts.Notify(&models.SurveyResponse{RiskTier: scoring.HighRisk, Attrition: "No"}))
	assert.True(t, alerts.Notify(&models.SurveyResponse{RiskTier: scoring.LowRisk, Attrition: "Yes"}))
	assert.False(t, alerts.Notify(&models.SurveyResponse{RiskTier: scoring.MediumRisk, Attrition: "No"}))
	assert.Equal(t, 2, logs.FilterMessage("Attrition alert").Len())

	var none *AlertService
	assert.False(t, none.Notify(&models.SurveyResponse{RiskTier: scoring.HighRisk}))
}

func TestOrganizationSuggester(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "acme co", r.URL.Query().Get("query"))
		w.Write([]byte(`[{"name":"Acme Corp","domain":"acme.com"},{"name":"Acme Labs","domain":"acmelabs.io"}]`))
	}))
	defer srv.Close()

	s := NewOrganizationSuggester(zap.NewNop(), srv.URL)
	assert.Equal(t, []string{"Acme Corp", "Acme Labs"}, s.Suggest(context.Background(), "acme co"))
	assert.Equal(t, []string{}, s.Suggest(context.Background(), "a"))
	assert.Equal(t, int32(1), calls.Load())
}

func TestOrganizationSuggesterFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	core, logs := observer.New(zapcore.WarnLevel)
	s := NewOrganizationSuggester(zap.New(core), srv.URL)
	assert.Equal(t, []string{}, s.Suggest(context.Background(), "acme"))
	assert.Equal(t, 1, logs.Len())
}

func TestSchedulerRunsRefresh(t *testing.T) {
	var runs atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewScheduler(zap.NewNop(), RefreshFunc(func(context.Context) error {
		runs.Add(1)
		return errors.New("narrative down")
	}), 5*time.Millisecond)
	s.Start(ctx)

	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, time.Second, 5*time.Millisecond)
}

func TestSchedulerDisabled(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler(zap.NewNop(), RefreshFunc(func(context.Context) error {
		runs.Add(1)
		return nil
	}), 0)
	s.Start(context.Background())
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), runs.Load())
}

func TestSchedulerStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx, cancel := context.WithCancel(context.Background())
	s := NewScheduler(zap.NewNop(), RefreshFunc(func(context.Context) error { return nil }), time.Millisecond)
	s.Start(ctx)
	time.Sleep(5 * time.Millisecond)
	cancel()
}
