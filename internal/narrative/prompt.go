package narrative

import (
	"encoding/json"
	"fmt"
	"strings"

	"attrition-go/internal/scoring"
)

// FallbackText stands in for an empty completion.
const FallbackText = "No response received."

// NoRecommendationText is shown when no overall recommendation exists.
const NoRecommendationText = "No recommendation available."

// SurveyPrompt asks for a Yes/No attrition prediction on one response.
func SurveyPrompt(a scoring.Answers) (string, error) {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode survey: %w", err)
	}
	return "Say Yes or No and predict employee attrition risk based on the following survey data:\n\n" + string(data), nil
}

// EmployeeSummary is the per-employee digest sent for the overall
// recommendation.
type EmployeeSummary struct {
	Name          string           `json:"name"`
	Designation   string           `json:"designation"`
	Organization  string           `json:"organization"`
	Experience    string           `json:"experience"`
	AttritionRisk scoring.RiskTier `json:"attritionRisk"`
	scoring.ScoreVector
}

// SummaryPrompt asks for one concise retention recommendation across all
// employees.
func SummaryPrompt(summaries []EmployeeSummary) (string, error) {
	if summaries == nil {
		summaries = []EmployeeSummary{}
	}
	data, err := json.Marshal(summaries)
	if err != nil {
		return "", fmt.Errorf("encode summaries: %w", err)
	}
	return fmt.Sprintf("Based on the summarized employee data below, provide a general recommendation to improve retention:\n%s\nKeep it concise.", data), nil
}

// AttritionFlag derives the "Yes"/"No" flag from a narrative. It is a plain
// substring test and is independent of the engine's RiskTier.
func AttritionFlag(text string) string {
	if strings.Contains(text, "Yes") {
		return "Yes"
	}
	return "No"
}

// OrFallback returns text, or fallback when text is blank.
func OrFallback(text, fallback string) string {
	if strings.TrimSpace(text) == "" {
		return fallback
	}
	return text
}
