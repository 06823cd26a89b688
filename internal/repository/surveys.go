package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"attrition-go/internal/database"
	"attrition-go/internal/models"
	"attrition-go/internal/scoring"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// CreateSurveyResponse stores a new submission.
func CreateSurveyResponse(ctx context.Context, response *models.SurveyResponse) error {
	return database.DB.WithContext(ctx).Create(response).Error
}

// ListSurveyResponses returns every stored response, newest first. A
// non-empty nameQuery keeps only names containing it, ignoring case.
func ListSurveyResponses(ctx context.Context, nameQuery string) ([]models.SurveyResponse, error) {
	var responses []models.SurveyResponse
	q := database.DB.WithContext(ctx).Order("created_at DESC")
	if nameQuery = strings.TrimSpace(nameQuery); nameQuery != "" {
		q = q.Where("lower(name) LIKE ?", "%"+strings.ToLower(nameQuery)+"%")
	}
	err := q.Find(&responses).Error
	return responses, err
}

// GetSurveyResponse loads one response by id.
func GetSurveyResponse(ctx context.Context, id string) (*models.SurveyResponse, error) {
	var response models.SurveyResponse
	err := database.DB.WithContext(ctx).First(&response, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// DeleteSurveyResponse removes one response.
func DeleteSurveyResponse(ctx context.Context, id string) error {
	result := database.DB.WithContext(ctx).Delete(&models.SurveyResponse{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByAttrition counts responses per attrition flag. "Yes" and "No" are
// always present.
func CountByAttrition(ctx context.Context) (map[string]int64, error) {
	var rows []LabelCount
	err := database.DB.WithContext(ctx).Model(&models.SurveyResponse{}).
		Select("attrition AS label, count(*) AS count").
		Group("attrition").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := map[string]int64{"Yes": 0, "No": 0}
	for _, r := range rows {
		counts[r.Label] += r.Count
	}
	return counts, nil
}

// LabelCount is one bucket of a distribution.
type LabelCount struct {
	Label string `json:"name"`
	Count int64  `json:"count"`
}

// LabelDistribution counts how often each answer was given to a survey
// question, ordered by label.
func LabelDistribution(ctx context.Context, field scoring.Field) ([]LabelCount, error) {
	column, ok := surveyColumn(field)
	if !ok {
		return nil, fmt.Errorf("no column for survey field %q", field)
	}
	var rows []LabelCount
	err := database.DB.WithContext(ctx).Model(&models.SurveyResponse{}).
		Select(column + " AS label, count(*) AS count").
		Group(column).
		Order(column).
		Scan(&rows).Error
	return rows, err
}

// surveyColumn resolves a survey field to its column. Only known fields
// resolve, so the result is safe to splice into SQL.
func surveyColumn(field scoring.Field) (string, bool) {
	for _, f := range scoring.AllFields {
		if f == field {
			return database.DB.NamingStrategy.ColumnName("", string(f)), true
		}
	}
	return "", false
}
