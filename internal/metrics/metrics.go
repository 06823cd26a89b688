package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "attrition"

// Recorder exports service metrics to Prometheus. A nil Recorder records
// nothing.
type Recorder struct {
	submissions      *prometheus.CounterVec
	narrativeLatency *prometheus.HistogramVec
	narrativeErrors  *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
}

// NewRecorder registers the collectors with reg, or with the default
// registerer when reg is nil. Collectors that are already registered are
// reused.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	r := &Recorder{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "survey_submissions_total",
			Help:      "Stored survey submissions by engine risk tier and narrative attrition flag.",
		}, []string{"risk_tier", "attrition"}),
		narrativeLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "narrative_duration_seconds",
			Help:      "Latency of narrative completion calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"purpose"}),
		narrativeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "narrative_errors_total",
			Help:      "Failed narrative completion calls.",
		}, []string{"purpose"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"method", "route", "status"}),
	}

	var err error
	if r.submissions, err = register(reg, r.submissions); err != nil {
		return nil, fmt.Errorf("register submissions counter: %w", err)
	}
	if r.narrativeLatency, err = register(reg, r.narrativeLatency); err != nil {
		return nil, fmt.Errorf("register narrative histogram: %w", err)
	}
	if r.narrativeErrors, err = register(reg, r.narrativeErrors); err != nil {
		return nil, fmt.Errorf("register narrative errors counter: %w", err)
	}
	if r.httpRequests, err = register(reg, r.httpRequests); err != nil {
		return nil, fmt.Errorf("register http counter: %w", err)
	}
	return r, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordSubmission counts one stored survey response.
func (r *Recorder) RecordSubmission(riskTier, attrition string) {
	if r == nil {
		return
	}
	r.submissions.WithLabelValues(riskTier, attrition).Inc()
}

// RecordNarrative tracks the duration and outcome of a completion call.
// purpose is "survey" or "summary".
func (r *Recorder) RecordNarrative(purpose string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.narrativeLatency.WithLabelValues(purpose).Observe(duration.Seconds())
	if err != nil {
		r.narrativeErrors.WithLabelValues(purpose).Inc()
	}
}

// RecordRequest counts one served HTTP request.
func (r *Recorder) RecordRequest(method, route string, status int) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(method, route, fmt.Sprint(status)).Inc()
}
