package scoring

import (
	"fmt"
	"strings"
)

// Vocabulary identifies one of the fixed Likert label sets.
type Vocabulary int

const (
	Agreement5 Vocabulary = iota + 1
	Satisfaction5
	Quality5
	FrequencyPositive5
	FrequencyNegative5
	HoursWorked4
)

var vocabularyNames = map[Vocabulary]string{
	Agreement5:         "agreement5",
	Satisfaction5:      "satisfaction5",
	Quality5:           "quality5",
	FrequencyPositive5: "frequencyPositive5",
	FrequencyNegative5: "frequencyNegative5",
	HoursWorked4:       "hoursWorked4",
}

func (v Vocabulary) String() string {
	if n, ok := vocabularyNames[v]; ok {
		return n
	}
	return fmt.Sprintf("Vocabulary(%d)", int(v))
}

// scales holds label -> score for each vocabulary. FrequencyPositive5 and
// FrequencyNegative5 share label text with opposite polarity, so lookups
// must always go through the vocabulary.
var scales = map[Vocabulary]map[string]int{
	Agreement5: {
		"Strongly agree": 5, "Agree": 4, "Neutral": 3, "Disagree": 2, "Strongly disagree": 1,
	},
	Satisfaction5: {
		"Very satisfied": 5, "Satisfied": 4, "Neutral": 3, "Dissatisfied": 2, "Very dissatisfied": 1,
	},
	Quality5: {
		"Excellent": 5, "Good": 4, "Fair": 3, "Poor": 2, "Very poor": 1,
	},
	FrequencyPositive5: {
		"Always": 5, "Most of the time": 4, "Sometimes": 3, "Rarely": 2, "Never": 1,
	},
	FrequencyNegative5: {
		"Always": 1, "Often": 2, "Sometimes": 3, "Rarely": 4, "Never": 5,
	},
	HoursWorked4: {
		"Less than 40 hours": 5, "40–50 hours": 4, "50–60 hours": 3, "More than 60 hours": 1,
	},
}

// Score returns the scale value of label, or 0 when the label is not part
// of the vocabulary.
func (v Vocabulary) Score(label string) int {
	return scales[v][label]
}

// Labels returns the vocabulary's labels from highest to lowest score.
func (v Vocabulary) Labels() []string {
	table := scales[v]
	labels := make([]string, 0, len(table))
	for score := 5; score >= 1; score-- {
		for label, s := range table {
			if s == score {
				labels = append(labels, label)
			}
		}
	}
	return labels
}

// fieldScale tags a scored field with its vocabulary. aliases translate
// the field's own option text onto the vocabulary's labels.
type fieldScale struct {
	vocab   Vocabulary
	aliases map[string]string
}

var fieldScales = map[Field]fieldScale{
	WorkValue:       {vocab: FrequencyPositive5},
	Communication:   {vocab: Quality5},
	WorkLifeBalance: {vocab: Quality5, aliases: map[string]string{"Very good": "Excellent"}},
	Stress:          {vocab: FrequencyNegative5},
	WorkHours:       {vocab: HoursWorked4},

	SalarySatisfaction:      {vocab: Satisfaction5},
	CompetitiveCompensation: {vocab: Satisfaction5},
	ProfessionalDevelopment: {vocab: Satisfaction5},
	RoleSatisfaction:        {vocab: Satisfaction5},

	CareerGrowth:   {vocab: Agreement5},
	CompanyMission: {vocab: Agreement5},
	ManagerSupport: {vocab: Agreement5},
	RoleAlignment:  {vocab: Agreement5},
	WorkCulture: {vocab: Agreement5, aliases: map[string]string{
		"Very positive": "Strongly agree",
		"Positive":      "Agree",
		"Negative":      "Disagree",
		"Very negative": "Strongly disagree",
	}},

	Leadership: {vocab: Quality5},
}

// VocabularyOf reports the vocabulary a scored field is rated on.
func VocabularyOf(f Field) (Vocabulary, bool) {
	fs, ok := fieldScales[f]
	return fs.vocab, ok
}

// legacyScale reproduces the single label map the survey was first scored
// with. Duplicate labels resolved to whichever table came last, so the
// shared frequency labels carry stress polarity and the culture labels
// are missing entirely.
var legacyScale = map[string]int{
	"Always": 1, "Most of the time": 4, "Often": 2, "Sometimes": 3, "Rarely": 4, "Never": 5,
	"Excellent": 5, "Very good": 5, "Good": 4, "Fair": 3, "Poor": 2, "Very poor": 1,
	"Less than 40 hours": 5, "40–50 hours": 4, "50–60 hours": 3, "More than 60 hours": 1,
	"Very satisfied": 5, "Satisfied": 4, "Neutral": 3, "Dissatisfied": 2, "Very dissatisfied": 1,
	"Strongly agree": 5, "Agree": 4, "Disagree": 2, "Strongly disagree": 1,
}

// Mode selects how labels are resolved to scores.
type Mode string

const (
	// ModeCorrected scores each field on its own vocabulary.
	ModeCorrected Mode = "corrected"
	// ModeLegacy reproduces the flat label map so stored classifications
	// can be recomputed exactly.
	ModeLegacy Mode = "legacy"
)

// ParseMode accepts "corrected" (or empty) and "legacy".
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeCorrected:
		return ModeCorrected, nil
	case ModeLegacy:
		return ModeLegacy, nil
	}
	return "", fmt.Errorf("unknown scoring mode %q", s)
}
