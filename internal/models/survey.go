package models

import (
	"time"

	"attrition-go/internal/scoring"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SurveyResponse is one submitted survey together with the signals derived
// at submission time.
type SurveyResponse struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	scoring.Answers `gorm:"embedded"`

	// Attrition is "Yes" or "No", taken from the narrative text.
	Attrition        string `json:"attrition"`
	AIRecommendation string `gorm:"type:text" json:"aiRecommendation"`

	// RiskTier caches the engine classification; ScoringMode records how
	// it was computed.
	RiskTier    scoring.RiskTier `gorm:"size:16" json:"riskTier"`
	ScoringMode scoring.Mode     `gorm:"size:16" json:"scoringMode"`

	CreatedAt time.Time `json:"createdAt"`
}

// BeforeCreate assigns a generated identifier.
func (r *SurveyResponse) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
