// Package scoring turns a survey response into six dimension scores and an
// attrition risk tier. Everything here is pure: no I/O and no shared
// mutable state, so a Scorer may be used from any number of goroutines.
package scoring

import (
	"context"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Dimension names one of the six score groups.
type Dimension string

const (
	DimensionSatisfaction      Dimension = "satisfaction"
	DimensionWorkLifeBalance   Dimension = "workLifeBalance"
	DimensionAttritionRisk     Dimension = "attritionRisk"
	DimensionCompanyEngagement Dimension = "companyEngagement"
	DimensionCareerGrowth      Dimension = "careerGrowth"
	DimensionManagementSupport Dimension = "managementSupport"
)

// Group is a fixed set of fields summed into one dimension score. Groups
// overlap.
type Group struct {
	Dimension Dimension
	Fields    []Field
}

// MaxScore is the highest score the group can reach.
func (g Group) MaxScore() int {
	return 5 * len(g.Fields)
}

var groups = []Group{
	{DimensionSatisfaction, []Field{
		WorkValue, Communication, WorkLifeBalance, SalarySatisfaction,
		CompetitiveCompensation, CareerGrowth, ProfessionalDevelopment,
		CompanyMission, WorkCulture, ManagerSupport, Leadership,
		RoleAlignment, RoleSatisfaction,
	}},
	{DimensionWorkLifeBalance, []Field{WorkLifeBalance, WorkHours, Stress}},
	{DimensionAttritionRisk, []Field{CareerGrowth, SalarySatisfaction, WorkCulture, ManagerSupport, WorkLifeBalance}},
	{DimensionCompanyEngagement, []Field{CompanyMission, WorkCulture, ManagerSupport}},
	{DimensionCareerGrowth, []Field{CareerGrowth, ProfessionalDevelopment, RoleAlignment}},
	{DimensionManagementSupport, []Field{ManagerSupport, Leadership, Communication}},
}

// Groups returns a copy of the dimension groups.
func Groups() []Group {
	out := make([]Group, len(groups))
	for i, g := range groups {
		out[i] = Group{Dimension: g.Dimension, Fields: append([]Field(nil), g.Fields...)}
	}
	return out
}

// ScoreVector holds one summed score per dimension.
type ScoreVector struct {
	Satisfaction      int `json:"satisfactionScore"`
	WorkLifeBalance   int `json:"workLifeBalanceScore"`
	AttritionRisk     int `json:"attritionRiskScore"`
	CompanyEngagement int `json:"companyEngagementScore"`
	CareerGrowth      int `json:"careerGrowthScore"`
	ManagementSupport int `json:"managementSupportScore"`
}

// Get returns the score for d.
func (v ScoreVector) Get(d Dimension) int {
	switch d {
	case DimensionSatisfaction:
		return v.Satisfaction
	case DimensionWorkLifeBalance:
		return v.WorkLifeBalance
	case DimensionAttritionRisk:
		return v.AttritionRisk
	case DimensionCompanyEngagement:
		return v.CompanyEngagement
	case DimensionCareerGrowth:
		return v.CareerGrowth
	case DimensionManagementSupport:
		return v.ManagementSupport
	}
	return 0
}

func (v *ScoreVector) set(d Dimension, score int) {
	switch d {
	case DimensionSatisfaction:
		v.Satisfaction = score
	case DimensionWorkLifeBalance:
		v.WorkLifeBalance = score
	case DimensionAttritionRisk:
		v.AttritionRisk = score
	case DimensionCompanyEngagement:
		v.CompanyEngagement = score
	case DimensionCareerGrowth:
		v.CareerGrowth = score
	case DimensionManagementSupport:
		v.ManagementSupport = score
	}
}

// RiskTier is the attrition classification derived from a ScoreVector.
type RiskTier string

const (
	HighRisk   RiskTier = "High Risk"
	MediumRisk RiskTier = "Medium Risk"
	LowRisk    RiskTier = "Low Risk"
)

// RiskTiers lists the tiers from most to least severe.
var RiskTiers = []RiskTier{HighRisk, MediumRisk, LowRisk}

// Classify maps a score vector to a risk tier. Rules are checked in order
// and the comparisons are strict.
func Classify(v ScoreVector) RiskTier {
	if v.AttritionRisk < 10 || v.WorkLifeBalance < 8 {
		return HighRisk
	}
	if v.Satisfaction > 50 && v.AttritionRisk > 15 {
		return LowRisk
	}
	return MediumRisk
}

// Result pairs the scores of one response with its tier.
type Result struct {
	Scores ScoreVector `json:"scores"`
	Risk   RiskTier    `json:"risk"`
}

// Scorer resolves labels according to its Mode.
type Scorer struct {
	mode    Mode
	workers int
}

// NewScorer returns a Scorer for mode; an unknown mode scores as corrected.
func NewScorer(mode Mode) Scorer {
	if mode != ModeLegacy {
		mode = ModeCorrected
	}
	return Scorer{mode: mode}
}

// WithWorkers bounds the concurrency of EvaluateAll. n <= 0 means
// GOMAXPROCS.
func (s Scorer) WithWorkers(n int) Scorer {
	s.workers = n
	return s
}

// Mode reports how the scorer resolves labels.
func (s Scorer) Mode() Mode {
	if s.mode == "" {
		return ModeCorrected
	}
	return s.mode
}

// FieldScore returns the 1..5 score of label for field f, or 0 when the
// field is not scored or the label is not recognised.
func (s Scorer) FieldScore(f Field, label string) int {
	if s.mode == ModeLegacy {
		if _, scored := fieldScales[f]; !scored {
			return 0
		}
		return legacyScale[label]
	}

	fs, ok := fieldScales[f]
	if !ok {
		return 0
	}
	label = strings.TrimSpace(label)
	if alias, ok := fs.aliases[label]; ok {
		label = alias
	}
	return fs.vocab.Score(label)
}

// Compute sums the field scores of every dimension group. Missing and
// unrecognised answers contribute zero.
func (s Scorer) Compute(a Answers) ScoreVector {
	var v ScoreVector
	for _, g := range groups {
		sum := 0
		for _, f := range g.Fields {
			sum += s.FieldScore(f, a.Get(f))
		}
		v.set(g.Dimension, sum)
	}
	return v
}

// Evaluate computes and classifies a single response.
func (s Scorer) Evaluate(a Answers) Result {
	v := s.Compute(a)
	return Result{Scores: v, Risk: Classify(v)}
}

// EvaluateAll evaluates a batch concurrently. Results keep the input
// order. The only possible error is ctx being cancelled.
func (s Scorer) EvaluateAll(ctx context.Context, batch []Answers) ([]Result, error) {
	results := make([]Result, len(batch))
	g, gctx := errgroup.WithContext(ctx)
	limit := s.workers
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(limit)
	for i := range batch {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.Evaluate(batch[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Default scores in corrected mode.
var Default = NewScorer(ModeCorrected)

// ComputeScoreVector scores a with the corrected vocabularies.
func ComputeScoreVector(a Answers) ScoreVector {
	return Default.Compute(a)
}

// Evaluate scores and classifies a with the corrected vocabularies.
func Evaluate(a Answers) Result {
	return Default.Evaluate(a)
}
