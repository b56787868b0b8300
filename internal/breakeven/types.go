package breakeven

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/evtco/internal/domain"
	"github.com/shopspring/decimal"
)

// Target is the input the solver varies to find the break-even point
type Target string

const (
	TargetAnnualMileage    Target = "annual_mileage"
	TargetFuelPrice        Target = "fuel_price"
	TargetElectricityPrice Target = "electricity_price"
	TargetSubscriptionRate Target = "subscription_rate"
)

// AllTargets lists every supported target in display order
var AllTargets = []Target{
	TargetAnnualMileage,
	TargetFuelPrice,
	TargetElectricityPrice,
	TargetSubscriptionRate,
}

// Unit returns the display unit of the target value
func (t Target) Unit() string {
	switch t {
	case TargetAnnualMileage:
		return "km/year"
	case TargetFuelPrice:
		return "€/l"
	case TargetElectricityPrice:
		return "€/kWh"
	case TargetSubscriptionRate:
		return "€/month"
	default:
		return ""
	}
}

// DefaultBounds returns the search interval used when a request sets none
func (t Target) DefaultBounds() (decimal.Decimal, decimal.Decimal) {
	switch t {
	case TargetAnnualMileage:
		return decimal.Zero, decimal.NewFromInt(100000)
	case TargetFuelPrice:
		return decimal.NewFromFloat(0.5), decimal.NewFromInt(5)
	case TargetElectricityPrice:
		return decimal.NewFromFloat(0.05), decimal.NewFromFloat(1.5)
	case TargetSubscriptionRate:
		return decimal.Zero, decimal.NewFromInt(3000)
	default:
		return decimal.Zero, decimal.Zero
	}
}

// Request describes one break-even search
type Request struct {
	Target  Target             `json:"target"`
	EV      domain.Vehicle     `json:"-"`
	ICE     domain.Vehicle     `json:"-"`
	Profile domain.UserProfile `json:"-"`

	Min *decimal.Decimal `json:"min,omitempty"`
	Max *decimal.Decimal `json:"max,omitempty"`

	MaxIterations int             `json:"maxIterations"`
	Tolerance     decimal.Decimal `json:"tolerance"` // euros of total savings
}

// Validate checks that the request is internally consistent
func (r *Request) Validate() error {
	switch r.Target {
	case TargetAnnualMileage, TargetFuelPrice, TargetElectricityPrice, TargetSubscriptionRate:
	default:
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   fmt.Sprintf("unsupported target: %s", r.Target),
		}
	}

	if r.Min != nil && r.Max != nil && r.Min.GreaterThan(*r.Max) {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "min cannot be greater than max",
		}
	}
	if r.Min != nil && r.Min.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "min cannot be negative",
		}
	}
	return nil
}

// Result is the outcome of a break-even search. Value is the input at which
// the subscription and the lease cost the same.
type Result struct {
	Target          Target          `json:"target"`
	Value           decimal.Decimal `json:"value"`
	Unit            string          `json:"unit"`
	SavingsAtValue  decimal.Decimal `json:"savingsAtValue"`
	Min             decimal.Decimal `json:"min"`
	Max             decimal.Decimal `json:"max"`
	Iterations      int             `json:"iterations"`
	Success         bool            `json:"success"`
	ConvergenceInfo string          `json:"convergenceInfo,omitempty"`

	// Current is the profile's own value for comparison
	Current decimal.Decimal `json:"current"`
}

// MultiResult collects the break-even point of every target
type MultiResult struct {
	Results         []Result `json:"results"`
	Recommendations []string `json:"recommendations"`
}

// SolverOptions configures the bisection
type SolverOptions struct {
	Tolerance     decimal.Decimal // Convergence tolerance on total savings
	MaxIterations int             // Maximum iterations
	Parallelism   int             // Concurrent targets in SolveAll
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromInt(1), // 1 € tolerance
		MaxIterations: 100,
		Parallelism:   4,
	}
}

var (
	// ErrNoCrossing means the savings keep their sign over the whole interval
	ErrNoCrossing = errors.New("savings do not change sign in range")
	// ErrNotComparable means a vehicle lacks the capability its pipeline needs
	ErrNotComparable = errors.New("vehicles cannot be compared")
)

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
