package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rgehrsitz/evtco/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_ObserveComparison(t *testing.T) {
	r, err := NewRecorder(prometheus.NewRegistry())
	require.NoError(t, err)

	r.ObserveComparison(&domain.ComparisonResult{
		Recommendation: domain.RecommendVibeAbo,
		SavingsTotal:   decimal.NewFromFloat(4941.78),
	})
	r.ObserveComparison(&domain.ComparisonResult{
		Recommendation: domain.RecommendIceLeasing,
		SavingsTotal:   decimal.NewFromInt(-250),
	})
	r.ObserveComparison(nil)

	expected := `
# HELP evtco_comparisons_total Comparisons computed, by recommendation
# TYPE evtco_comparisons_total counter
evtco_comparisons_total{recommendation="iceLeasing"} 1
evtco_comparisons_total{recommendation="vibeAbo"} 1
`
	if err := testutil.CollectAndCompare(r.comparisons, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
	assert.Equal(t, -250.0, testutil.ToFloat64(r.savings))
}

func TestRecorder_SweepAndBreakEven(t *testing.T) {
	r, err := NewRecorder(nil)
	require.NoError(t, err)

	r.ObserveSweep(&domain.ParameterSensitivityAnalysis{
		Parameter: domain.SensitivityParameter{Name: "fuel_price"},
		Points:    make([]domain.SensitivityPoint, 10),
	})
	r.ObserveBreakEven("annual_mileage", 17, true)
	r.ObserveCommand("calculate", 20*time.Millisecond, nil)

	assert.Equal(t, 10.0, testutil.ToFloat64(r.sweepPoints.WithLabelValues("fuel_price")))
	assert.Equal(t, 17.0, testutil.ToFloat64(r.breakEven.WithLabelValues("annual_mileage", "true")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.commands))
}

func TestRecorder_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewRecorder(reg)
	require.NoError(t, err)
	second, err := NewRecorder(reg)
	require.NoError(t, err)

	first.ObserveComparison(&domain.ComparisonResult{Recommendation: domain.RecommendVibeAbo})
	second.ObserveComparison(&domain.ComparisonResult{Recommendation: domain.RecommendVibeAbo})
	assert.Equal(t, 2.0, testutil.ToFloat64(first.comparisons.WithLabelValues("vibeAbo")))
}

func TestRecorder_WriteTextfile(t *testing.T) {
	r, err := NewRecorder(nil)
	require.NoError(t, err)
	r.ObserveComparison(&domain.ComparisonResult{Recommendation: domain.RecommendVibeAbo})

	path := filepath.Join(t.TempDir(), "evtco.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `evtco_comparisons_total{recommendation="vibeAbo"} 1`)
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder
	r.ObserveComparison(&domain.ComparisonResult{})
	r.ObserveCommand("x", time.Second, nil)
	r.ObserveSweep(nil)
	r.ObserveBreakEven("x", 1, false)
	assert.NoError(t, r.WriteTextfile("/nonexistent/evtco.prom"))
	assert.Nil(t, r.Registry())
}
