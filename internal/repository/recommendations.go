package repository

import (
	"context"
	"errors"

	"attrition-go/internal/database"
	"attrition-go/internal/models"

	"gorm.io/gorm"
)

// SaveRecommendation appends an overall recommendation to the history.
func SaveRecommendation(ctx context.Context, text string) (*models.Recommendation, error) {
	rec := &models.Recommendation{Text: text}
	if err := database.DB.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

// LatestRecommendation returns the most recent overall recommendation.
func LatestRecommendation(ctx context.Context) (*models.Recommendation, error) {
	var rec models.Recommendation
	err := database.DB.WithContext(ctx).Order("created_at DESC").Order("id DESC").First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
