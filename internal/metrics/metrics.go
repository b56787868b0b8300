// Package metrics records calculation counters for a CLI run and writes
// them in the Prometheus textfile format.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rgehrsitz/evtco/internal/domain"
)

// Recorder holds the collectors of one run. A nil *Recorder is valid and
// records nothing.
type Recorder struct {
	reg         *prometheus.Registry
	comparisons *prometheus.CounterVec
	savings     prometheus.Gauge
	commands    *prometheus.HistogramVec
	sweepPoints *prometheus.CounterVec
	breakEven   *prometheus.CounterVec
}

// NewRecorder registers the collectors on reg. If reg is nil a fresh
// registry is used. Collectors already registered are reused.
func NewRecorder(reg *prometheus.Registry) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	r := &Recorder{reg: reg}

	comparisons := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "evtco_comparisons_total",
		Help: "Comparisons computed, by recommendation",
	}, []string{"recommendation"})
	savings := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "evtco_last_savings_euros",
		Help: "Savings of the subscription over the lease in the last comparison",
	})
	commands := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "evtco_command_duration_seconds",
		Help:    "Wall time of CLI commands",
		Buckets: prometheus.DefBuckets,
	}, []string{"command", "success"})
	sweepPoints := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "evtco_sensitivity_points_total",
		Help: "Grid points evaluated by sensitivity sweeps",
	}, []string{"parameter"})
	breakEven := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "evtco_breakeven_iterations_total",
		Help: "Bisection iterations spent by break-even searches",
	}, []string{"target", "success"})

	var err error
	if r.comparisons, err = register(reg, comparisons); err != nil {
		return nil, err
	}
	if r.savings, err = register(reg, savings); err != nil {
		return nil, err
	}
	if r.commands, err = register(reg, commands); err != nil {
		return nil, err
	}
	if r.sweepPoints, err = register(reg, sweepPoints); err != nil {
		return nil, err
	}
	if r.breakEven, err = register(reg, breakEven); err != nil {
		return nil, err
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

// Registry is the gatherer the collectors live on
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.reg
}

// ObserveComparison counts a comparison and remembers its savings
func (r *Recorder) ObserveComparison(result *domain.ComparisonResult) {
	if r == nil || result == nil {
		return
	}
	r.comparisons.WithLabelValues(string(result.Recommendation)).Inc()
	r.savings.Set(result.SavingsTotal.InexactFloat64())
}

// ObserveCommand records how long a command took
func (r *Recorder) ObserveCommand(command string, elapsed time.Duration, err error) {
	if r == nil {
		return
	}
	r.commands.WithLabelValues(command, strconv.FormatBool(err == nil)).Observe(elapsed.Seconds())
}

// ObserveSweep counts the grid points of a sensitivity sweep
func (r *Recorder) ObserveSweep(analysis *domain.ParameterSensitivityAnalysis) {
	if r == nil || analysis == nil {
		return
	}
	r.sweepPoints.WithLabelValues(analysis.Parameter.Name).Add(float64(len(analysis.Points)))
}

// ObserveBreakEven counts bisection iterations of a break-even search
func (r *Recorder) ObserveBreakEven(target string, iterations int, success bool) {
	if r == nil {
		return
	}
	r.breakEven.WithLabelValues(target, strconv.FormatBool(success)).Add(float64(iterations))
}

// WriteTextfile writes all metrics for node_exporter's textfile collector
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.reg)
}
