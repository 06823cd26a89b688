package repository

import (
	"context"
	"testing"
	"time"

	"attrition-go/internal/models"
	"attrition-go/internal/scoring"
	"attrition-go/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResponse(name, attrition, stress string, created time.Time) *models.SurveyResponse {
	return &models.SurveyResponse{
		Answers:   scoring.Answers{Name: name, Stress: stress},
		Attrition: attrition,
		RiskTier:  scoring.MediumRisk,
		CreatedAt: created,
	}
}

func TestSurveyResponseLifecycle(t *testing.T) {
	testutil.UseSQLiteDB(t)
	ctx := context.Background()

	r := newResponse("Ada Lovelace", "No", "Rarely", time.Now())
	require.NoError(t, CreateSurveyResponse(ctx, r))
	assert.Len(t, r.ID, 36)

	got, err := GetSurveyResponse(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", got.Name)
	assert.Equal(t, "Rarely", got.Stress)

	require.NoError(t, DeleteSurveyResponse(ctx, r.ID))
	_, err = GetSurveyResponse(ctx, r.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, DeleteSurveyResponse(ctx, r.ID), ErrNotFound)
}

func TestListSurveyResponses(t *testing.T) {
	testutil.UseSQLiteDB(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, CreateSurveyResponse(ctx, newResponse("Grace Hopper", "No", "Often", now.Add(-2*time.Hour))))
	require.NoError(t, CreateSurveyResponse(ctx, newResponse("Alan Turing", "Yes", "Always", now.Add(-time.Hour))))
	require.NoError(t, CreateSurveyResponse(ctx, newResponse("Grace Kelly", "No", "Often", now)))

	all, err := ListSurveyResponses(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Grace Kelly", all[0].Name)
	assert.Equal(t, "Grace Hopper", all[2].Name)

	graces, err := ListSurveyResponses(ctx, "  gRaCe ")
	require.NoError(t, err)
	require.Len(t, graces, 2)
	assert.Equal(t, "Grace Kelly", graces[0].Name)

	none, err := ListSurveyResponses(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCountByAttrition(t *testing.T) {
	testutil.UseSQLiteDB(t)
	ctx := context.Background()

	counts, err := CountByAttrition(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"Yes": 0, "No": 0}, counts)

	now := time.Now()
	require.NoError(t, CreateSurveyResponse(ctx, newResponse("a", "Yes", "Often", now)))
	require.NoError(t, CreateSurveyResponse(ctx, newResponse("b", "No", "Often", now)))
	require.NoError(t, CreateSurveyResponse(ctx, newResponse("c", "No", "Never", now)))

	counts, err = CountByAttrition(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts["Yes"])
	assert.Equal(t, int64(2), counts["No"])
}

func TestLabelDistribution(t *testing.T) {
	testutil.UseSQLiteDB(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, CreateSurveyResponse(ctx, newResponse("a", "No", "Often", now)))
	require.NoError(t, CreateSurveyResponse(ctx, newResponse("b", "No", "Often", now)))
	require.NoError(t, CreateSurveyResponse(ctx, newResponse("c", "No", "Never", now)))

	dist, err := LabelDistribution(ctx, scoring.Stress)
	require.NoError(t, err)
	assert.Equal(t, []LabelCount{{Label: "Never", Count: 1}, {Label: "Often", Count: 2}}, dist)

	_, err = LabelDistribution(ctx, scoring.Field("stress; DROP TABLE users"))
	assert.Error(t, err)
}

func TestRecommendations(t *testing.T) {
	testutil.UseSQLiteDB(t)
	ctx := context.Background()

	_, err := LatestRecommendation(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = SaveRecommendation(ctx, "Offer flexible hours.")
	require.NoError(t, err)
	_, err = SaveRecommendation(ctx, "Review salary bands.")
	require.NoError(t, err)

	latest, err := LatestRecommendation(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Review salary bands.", latest.Text)
}

func TestUsers(t *testing.T) {
	testutil.UseSQLiteDB(t)
	ctx := context.Background()

	created, err := CreateUser(ctx, "hr@example.com", "S3cure!pass")
	require.NoError(t, err)
	assert.NotEqual(t, "S3cure!pass", created.Password)

	byEmail, err := GetUserByEmail(ctx, "hr@example.com")
	require.NoError(t, err)
	assert.True(t, byEmail.CheckPassword("S3cure!pass"))

	byID, err := GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "hr@example.com", byID.Email)

	_, err = GetUserByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = CreateUser(ctx, "hr@example.com", "other")
	assert.Error(t, err)
}
