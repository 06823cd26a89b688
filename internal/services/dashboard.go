package services

import (
	"context"
	"encoding/json"
	"math"

	"attrition-go/internal/repository"
	"attrition-go/internal/scoring"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"go.uber.org/zap"
)

// Dashboard is the aggregate view over every stored response. Each chart
// is an ECharts option object.
type Dashboard struct {
	TotalResponses int64                      `json:"totalResponses"`
	RetentionRate  float64                    `json:"retentionRate"`
	AtRisk         int64                      `json:"atRisk"`
	RiskTiers      map[scoring.RiskTier]int64 `json:"riskTiers"`
	Charts         map[string]json.RawMessage `json:"charts"`
}

// barFields are charted as bars, in this order.
var barFields = []scoring.Field{scoring.WorkLifeBalance, scoring.SalarySatisfaction, scoring.Stress, scoring.CareerGrowth}

type DashboardService struct {
	log      *zap.Logger
	insights *InsightsService
}

func NewDashboardService(log *zap.Logger, insights *InsightsService) *DashboardService {
	return &DashboardService{log: log, insights: insights}
}

// Build aggregates all stored responses.
func (s *DashboardService) Build(ctx context.Context) (*Dashboard, error) {
	attrition, err := repository.CountByAttrition(ctx)
	if err != nil {
		return nil, err
	}
	var total int64
	for _, n := range attrition {
		total += n
	}

	d := &Dashboard{
		TotalResponses: total,
		RetentionRate:  RetentionRate(attrition["No"], total),
		AtRisk:         attrition["Yes"],
		RiskTiers:      make(map[scoring.RiskTier]int64, len(scoring.RiskTiers)),
		Charts:         make(map[string]json.RawMessage),
	}

	cards, err := s.insights.Employees(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, tier := range scoring.RiskTiers {
		d.RiskTiers[tier] = 0
	}
	for _, c := range cards {
		d.RiskTiers[c.RiskTier]++
	}

	if err := d.addChart("attrition", pieChart("Attrition Risk Analysis", []repository.LabelCount{
		{Label: "At Risk", Count: attrition["Yes"]},
		{Label: "Not at Risk", Count: attrition["No"]},
	})); err != nil {
		return nil, err
	}

	tiers := make([]repository.LabelCount, len(scoring.RiskTiers))
	for i, tier := range scoring.RiskTiers {
		tiers[i] = repository.LabelCount{Label: string(tier), Count: d.RiskTiers[tier]}
	}
	if err := d.addChart("riskTier", pieChart("Risk Tier", tiers)); err != nil {
		return nil, err
	}

	for _, f := range barFields {
		dist, err := repository.LabelDistribution(ctx, f)
		if err != nil {
			return nil, err
		}
		if err := d.addChart(string(f), barChart(f.Title(), dist)); err != nil {
			return nil, err
		}
	}

	mission, err := repository.LabelDistribution(ctx, scoring.CompanyMission)
	if err != nil {
		return nil, err
	}
	if err := d.addChart(string(scoring.CompanyMission), pieChart("Company Mission Alignment", mission)); err != nil {
		return nil, err
	}

	return d, nil
}

// RetentionRate is the share of "No" responses as a percentage rounded to
// one decimal. It is 0 when there are no responses.
func RetentionRate(no, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(no)/float64(total)*1000) / 10
}

func (d *Dashboard) addChart(key string, chart interface{ JSON() map[string]interface{} }) error {
	data, err := json.Marshal(chart.JSON())
	if err != nil {
		return err
	}
	d.Charts[key] = data
	return nil
}

func pieChart(title string, data []repository.LabelCount) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	items := make([]opts.PieData, 0, len(data))
	for _, d := range data {
		items = append(items, opts.PieData{Name: d.Label, Value: d.Count})
	}
	pie.AddSeries(title, items)
	return pie
}

func barChart(title string, data []repository.LabelCount) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value"}),
	)

	labels := make([]string, 0, len(data))
	items := make([]opts.BarData, 0, len(data))
	for _, d := range data {
		labels = append(labels, d.Label)
		items = append(items, opts.BarData{Value: d.Count})
	}
	bar.SetXAxis(labels).AddSeries("count", items)
	return bar
}
