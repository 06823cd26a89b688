// Package survey checks a submission against the survey definition before
// it is scored and stored.
package survey

import (
	"slices"
	"strconv"
	"strings"

	"attrition-go/internal/models"
	"attrition-go/internal/scoring"
)

// FieldErrors maps a field key to a human readable message.
type FieldErrors map[scoring.Field]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for f := range e {
		keys = append(keys, string(f))
	}
	slices.Sort(keys)
	msgs := make([]string, len(keys))
	for i, k := range keys {
		msgs[i] = e[scoring.Field(k)]
	}
	return strings.Join(msgs, "; ")
}

// Validate requires every field to be filled in, the age to be a positive
// whole number and enumerated answers to be one of the offered options.
// It returns nil when the submission is acceptable.
func Validate(form *models.SurveyForm, a scoring.Answers) FieldErrors {
	errs := FieldErrors{}
	for _, f := range scoring.AllFields {
		value := strings.TrimSpace(a.Get(f))
		if value == "" {
			errs[f] = f.Title() + " is required"
			continue
		}
		if f == scoring.Age {
			if n, err := strconv.Atoi(value); err != nil || n <= 0 {
				errs[f] = "Age must be a positive whole number"
			}
			continue
		}
		if form == nil {
			continue
		}
		if q, ok := form.Question(f); ok && q.Enumerated() && !slices.Contains(q.Options, value) {
			errs[f] = f.Title() + " must be one of: " + strings.Join(q.Options, ", ")
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
