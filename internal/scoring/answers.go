package scoring

import (
	"fmt"
	"sort"
	"strings"
)

// Field is the key of a single survey question.
type Field string

const (
	Name         Field = "name"
	Age          Field = "age"
	Organization Field = "organization"
	Designation  Field = "designation"
	Experience   Field = "experience"
	Education    Field = "education"
	Gender       Field = "gender"

	WorkValue               Field = "workValue"
	Communication           Field = "communication"
	WorkLifeBalance         Field = "workLifeBalance"
	Stress                  Field = "stress"
	WorkHours               Field = "workHours"
	SalarySatisfaction      Field = "salarySatisfaction"
	CompetitiveCompensation Field = "competitiveCompensation"
	CareerGrowth            Field = "careerGrowth"
	ProfessionalDevelopment Field = "professionalDevelopment"
	CompanyMission          Field = "companyMission"
	WorkCulture             Field = "workCulture"
	ManagerSupport          Field = "managerSupport"
	Leadership              Field = "leadership"
	RoleAlignment           Field = "roleAlignment"
	RoleSatisfaction        Field = "roleSatisfaction"
)

// DemographicFields are collected but never scored.
var DemographicFields = []Field{Name, Age, Organization, Designation, Experience, Education, Gender}

// ScoredFields are the Likert-rated questions, in form order.
var ScoredFields = []Field{
	WorkValue, Communication, WorkLifeBalance, Stress, WorkHours,
	SalarySatisfaction, CompetitiveCompensation, CareerGrowth, ProfessionalDevelopment,
	CompanyMission, WorkCulture, ManagerSupport, Leadership, RoleAlignment, RoleSatisfaction,
}

// AllFields lists every survey key in form order.
var AllFields = append(append([]Field{}, DemographicFields...), ScoredFields...)

// Title turns a camelCase key into a label, e.g. "workLifeBalance" -> "Work Life Balance".
func (f Field) Title() string {
	var b strings.Builder
	for i, r := range string(f) {
		if i == 0 {
			b.WriteString(strings.ToUpper(string(r)))
			continue
		}
		if r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Answers is one immutable survey response.
type Answers struct {
	Name         string `json:"name" yaml:"name"`
	Age          string `json:"age" yaml:"age"`
	Organization string `json:"organization" yaml:"organization"`
	Designation  string `json:"designation" yaml:"designation"`
	Experience   string `json:"experience" yaml:"experience"`
	Education    string `json:"education" yaml:"education"`
	Gender       string `json:"gender" yaml:"gender"`

	WorkValue               string `json:"workValue" yaml:"workValue"`
	Communication           string `json:"communication" yaml:"communication"`
	WorkLifeBalance         string `json:"workLifeBalance" yaml:"workLifeBalance"`
	Stress                  string `json:"stress" yaml:"stress"`
	WorkHours               string `json:"workHours" yaml:"workHours"`
	SalarySatisfaction      string `json:"salarySatisfaction" yaml:"salarySatisfaction"`
	CompetitiveCompensation string `json:"competitiveCompensation" yaml:"competitiveCompensation"`
	CareerGrowth            string `json:"careerGrowth" yaml:"careerGrowth"`
	ProfessionalDevelopment string `json:"professionalDevelopment" yaml:"professionalDevelopment"`
	CompanyMission          string `json:"companyMission" yaml:"companyMission"`
	WorkCulture             string `json:"workCulture" yaml:"workCulture"`
	ManagerSupport          string `json:"managerSupport" yaml:"managerSupport"`
	Leadership              string `json:"leadership" yaml:"leadership"`
	RoleAlignment           string `json:"roleAlignment" yaml:"roleAlignment"`
	RoleSatisfaction        string `json:"roleSatisfaction" yaml:"roleSatisfaction"`
}

func (a *Answers) ref(f Field) *string {
	switch f {
	case Name:
		return &a.Name
	case Age:
		return &a.Age
	case Organization:
		return &a.Organization
	case Designation:
		return &a.Designation
	case Experience:
		return &a.Experience
	case Education:
		return &a.Education
	case Gender:
		return &a.Gender
	case WorkValue:
		return &a.WorkValue
	case Communication:
		return &a.Communication
	case WorkLifeBalance:
		return &a.WorkLifeBalance
	case Stress:
		return &a.Stress
	case WorkHours:
		return &a.WorkHours
	case SalarySatisfaction:
		return &a.SalarySatisfaction
	case CompetitiveCompensation:
		return &a.CompetitiveCompensation
	case CareerGrowth:
		return &a.CareerGrowth
	case ProfessionalDevelopment:
		return &a.ProfessionalDevelopment
	case CompanyMission:
		return &a.CompanyMission
	case WorkCulture:
		return &a.WorkCulture
	case ManagerSupport:
		return &a.ManagerSupport
	case Leadership:
		return &a.Leadership
	case RoleAlignment:
		return &a.RoleAlignment
	case RoleSatisfaction:
		return &a.RoleSatisfaction
	}
	return nil
}

// Get returns the value for f, or "" for an unknown key.
func (a Answers) Get(f Field) string {
	if p := a.ref(f); p != nil {
		return *p
	}
	return ""
}

// Map returns the answers keyed by field.
func (a Answers) Map() map[Field]string {
	m := make(map[Field]string, len(AllFields))
	for _, f := range AllFields {
		m[f] = a.Get(f)
	}
	return m
}

// ParseAnswers builds Answers from raw key/value pairs. Unknown keys are an
// error; values are taken as-is and judged only when scored.
func ParseAnswers(raw map[string]string) (Answers, error) {
	var a Answers
	var unknown []string
	for k, v := range raw {
		p := a.ref(Field(k))
		if p == nil {
			unknown = append(unknown, k)
			continue
		}
		*p = v
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return Answers{}, fmt.Errorf("unknown survey fields: %s", strings.Join(unknown, ", "))
	}
	return a, nil
}
