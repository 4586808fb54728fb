package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_CountsOutcomesAndRuns(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Check(OutcomeSuccess)
	m.Check(OutcomeSuccess)
	m.Check(OutcomeNoData)
	m.Fetch(120)
	m.Run(2, 1)

	if got := testutil.ToFloat64(m.checks.WithLabelValues(OutcomeSuccess)); got != 2 {
		t.Fatalf("success count = %v", got)
	}
	if got := testutil.ToFloat64(m.checks.WithLabelValues(OutcomeNoData)); got != 1 {
		t.Fatalf("no_data count = %v", got)
	}
	if got := testutil.ToFloat64(m.lastFailures); got != 1 {
		t.Fatalf("last failures = %v", got)
	}
	if got := testutil.ToFloat64(m.runs); got != 1 {
		t.Fatalf("runs = %v", got)
	}
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics
	m.Check(OutcomeSuccess)
	m.Fetch(1)
	m.Run(0, 0)
}
