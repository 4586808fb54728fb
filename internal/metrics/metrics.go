package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels.
const (
	OutcomeSuccess    = "success"
	OutcomeInvalidURL = "invalid_url"
	OutcomeNoData     = "no_data"
	OutcomeMismatch   = "content_mismatch"
	OutcomeCycle      = "cycle"
)

// Metrics is nil-safe: a nil *Metrics records nothing.
type Metrics struct {
	checks       *prometheus.CounterVec
	fetchLatency prometheus.Histogram
	runs         prometheus.Counter
	lastFailures prometheus.Gauge
	lastSuccess  prometheus.Gauge
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		checks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "endpointwatch_checks_total",
				Help: "Endpoint checks by outcome",
			},
			[]string{"outcome"},
		),
		fetchLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "endpointwatch_fetch_duration_seconds",
				Help:    "Duration of endpoint fetches",
				Buckets: prometheus.DefBuckets,
			},
		),
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "endpointwatch_runs_total",
			Help: "Completed check runs",
		}),
		lastFailures: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "endpointwatch_last_run_failures",
			Help: "Failure records in the last run",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "endpointwatch_last_run_successes",
			Help: "Success records in the last run",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.checks, m.fetchLatency, m.runs, m.lastFailures, m.lastSuccess)
	}
	return m
}

func (m *Metrics) Check(outcome string) {
	if m == nil {
		return
	}
	m.checks.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Fetch(latencyMS float64) {
	if m == nil {
		return
	}
	m.fetchLatency.Observe(latencyMS / 1000)
}

func (m *Metrics) Run(successes, failures int) {
	if m == nil {
		return
	}
	m.runs.Inc()
	m.lastSuccess.Set(float64(successes))
	m.lastFailures.Set(float64(failures))
}
