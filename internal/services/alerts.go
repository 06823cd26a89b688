package services

import (
	"attrition-go/internal/models"
	"attrition-go/internal/scoring"

	"go.uber.org/zap"
)

// AlertService flags submissions that need HR attention. Alerts are written
// to the log; delivery to a mailbox or chat channel hooks in here.
type AlertService struct {
	log *zap.Logger
}

func NewAlertService(log *zap.Logger) *AlertService {
	return &AlertService{log: log}
}

// NeedsAttention reports whether either signal marks the response as a
// likely leaver.
func NeedsAttention(r *models.SurveyResponse) bool {
	return r.RiskTier == scoring.HighRisk || r.Attrition == "Yes"
}

// Notify raises an alert for a stored response when it needs attention.
// It returns whether an alert was raised.
func (s *AlertService) Notify(r *models.SurveyResponse) bool {
	if s == nil || !NeedsAttention(r) {
		return false
	}
	s.log.Warn("Attrition alert",
		zap.String("responseID", r.ID),
		zap.String("name", r.Name),
		zap.String("organization", r.Organization),
		zap.String("riskTier", string(r.RiskTier)),
		zap.String("attrition", r.Attrition),
	)
	return true
}
