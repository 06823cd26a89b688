package models

import (
	"fmt"
	"os"

	"attrition-go/internal/scoring"

	"gopkg.in/yaml.v3"
)

// Question struct to match the YAML structure
type Question struct {
	ID          scoring.Field `yaml:"id" json:"id"`
	Title       string        `yaml:"title" json:"title"`
	Type        string        `yaml:"type" json:"type"`
	Options     []string      `yaml:"options,omitempty" json:"options,omitempty"`
	Placeholder string        `yaml:"placeholder,omitempty" json:"placeholder,omitempty"`
}

// Enumerated reports whether the answer must be one of Options.
func (q Question) Enumerated() bool {
	return q.Type == "select" && len(q.Options) > 0
}

// Step is one page of the survey wizard.
type Step struct {
	Title     string     `yaml:"title" json:"title"`
	Questions []Question `yaml:"questions" json:"questions"`
}

// SurveyForm holds the whole survey definition.
type SurveyForm struct {
	Steps []Step `yaml:"steps" json:"steps"`

	byField map[scoring.Field]Question
}

// LoadSurveyForm reads and parses the survey YAML file.
func LoadSurveyForm(path string) (*SurveyForm, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read survey file: %w", err)
	}
	return ParseSurveyForm(data)
}

// ParseSurveyForm parses a survey definition and checks that it asks every
// survey field exactly once.
func ParseSurveyForm(data []byte) (*SurveyForm, error) {
	var form SurveyForm
	if err := yaml.Unmarshal(data, &form); err != nil {
		return nil, fmt.Errorf("failed to unmarshal survey YAML: %w", err)
	}

	known := make(map[scoring.Field]bool, len(scoring.AllFields))
	for _, f := range scoring.AllFields {
		known[f] = true
	}

	form.byField = make(map[scoring.Field]Question)
	for _, step := range form.Steps {
		for _, q := range step.Questions {
			if !known[q.ID] {
				return nil, fmt.Errorf("survey question %q is not a survey field", q.ID)
			}
			if _, dup := form.byField[q.ID]; dup {
				return nil, fmt.Errorf("survey question %q is defined twice", q.ID)
			}
			form.byField[q.ID] = q
		}
	}
	for _, f := range scoring.AllFields {
		if _, ok := form.byField[f]; !ok {
			return nil, fmt.Errorf("survey field %q has no question", f)
		}
	}
	return &form, nil
}

// Question returns the question asking for f.
func (s *SurveyForm) Question(f scoring.Field) (Question, bool) {
	q, ok := s.byField[f]
	return q, ok
}
