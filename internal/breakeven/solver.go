package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/evtco/internal/compare"
	"github.com/shopspring/decimal"
)

// Solver finds the input value at which subscription and lease break even
type Solver struct {
	Comparator *compare.Comparator
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(comparator *compare.Comparator, options SolverOptions) *Solver {
	return &Solver{
		Comparator: comparator,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(comparator *compare.Comparator) *Solver {
	return NewSolver(comparator, DefaultSolverOptions())
}

var two = decimal.NewFromInt(2)

// Solve bisects the target's interval for the point where total savings
// cross zero. Savings must have opposite signs at both ends.
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Apply defaults
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}
	lo, hi := req.Target.DefaultBounds()
	if req.Min != nil {
		lo = *req.Min
	}
	if req.Max != nil {
		hi = *req.Max
	}

	op := "solve_" + string(req.Target)
	result := &Result{
		Target:  req.Target,
		Unit:    req.Target.Unit(),
		Min:     lo,
		Max:     hi,
		Current: current(req),
	}

	fLo, err := s.savingsAt(req, lo)
	if err != nil {
		return nil, &BreakEvenError{Operation: op, Message: "failed to evaluate lower bound", Cause: err}
	}
	if fLo.Abs().LessThanOrEqual(req.Tolerance) {
		return s.converged(result, lo, fLo, 0, "lower bound is the break-even point"), nil
	}
	fHi, err := s.savingsAt(req, hi)
	if err != nil {
		return nil, &BreakEvenError{Operation: op, Message: "failed to evaluate upper bound", Cause: err}
	}
	if fHi.Abs().LessThanOrEqual(req.Tolerance) {
		return s.converged(result, hi, fHi, 0, "upper bound is the break-even point"), nil
	}
	if fLo.Sign() == fHi.Sign() {
		return nil, &BreakEvenError{
			Operation: op,
			Message:   fmt.Sprintf("between %s and %s %s", lo.String(), hi.String(), req.Target.Unit()),
			Cause:     ErrNoCrossing,
		}
	}

	iterations := 0
	for iterations < req.MaxIterations {
		iterations++

		// Check context cancellation
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		mid := lo.Add(hi).Div(two)
		f, err := s.savingsAt(req, mid)
		if err != nil {
			return nil, &BreakEvenError{Operation: op, Message: "failed to evaluate midpoint", Cause: err}
		}

		if f.Abs().LessThanOrEqual(req.Tolerance) {
			return s.converged(result, mid, f, iterations,
				fmt.Sprintf("Converged within %s € of savings", req.Tolerance.String())), nil
		}

		if f.Sign() == fLo.Sign() {
			lo, fLo = mid, f
		} else {
			hi = mid
		}
		result.Value = mid
		result.SavingsAtValue = f
	}

	result.Iterations = iterations
	result.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
	return result, nil
}

func (s *Solver) converged(result *Result, value, savings decimal.Decimal, iterations int, info string) *Result {
	result.Value = value
	result.SavingsAtValue = savings
	result.Iterations = iterations
	result.Success = true
	result.ConvergenceInfo = info
	return result
}

// savingsAt runs a full comparison with the target set to value
func (s *Solver) savingsAt(req Request, value decimal.Decimal) (decimal.Decimal, error) {
	ev, ice, p := Apply(req, value)
	result := s.Comparator.Compare(ev, ice, p)
	if result == nil {
		return decimal.Zero, ErrNotComparable
	}
	return result.SavingsTotal, nil
}
