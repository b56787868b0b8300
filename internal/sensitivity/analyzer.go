// Package sensitivity sweeps profile inputs over a grid and reports how the
// savings of the subscription over the lease respond.
package sensitivity

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/evtco/internal/breakeven"
	"github.com/rgehrsitz/evtco/internal/compare"
	"github.com/rgehrsitz/evtco/internal/domain"
	"github.com/rgehrsitz/evtco/internal/refdata"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Sweepable parameters
const (
	ParamAnnualMileage    = "annual_mileage"
	ParamHoldingPeriod    = "holding_period"
	ParamFuelPrice        = "fuel_price"
	ParamElectricityPrice = "electricity_price"
)

// Parameters lists the sweepable parameters in display order
var Parameters = []string{ParamAnnualMileage, ParamHoldingPeriod, ParamFuelPrice, ParamElectricityPrice}

// DefaultSteps is the grid size used when a caller passes zero
const DefaultSteps = 10

// ErrNotComparable means the pair cannot be compared at some grid point
var ErrNotComparable = breakeven.ErrNotComparable

// Analyzer performs parameter sweep analysis
type Analyzer struct {
	Comparator  *compare.Comparator
	Parallelism int
}

// NewAnalyzer creates a new sensitivity analyzer
func NewAnalyzer(comparator *compare.Comparator) *Analyzer {
	if comparator == nil {
		comparator = compare.NewComparator(nil)
	}
	return &Analyzer{Comparator: comparator, Parallelism: 8}
}

// DefaultParameter builds a sweep over the interactive slider range of a
// parameter, with the profile's current value as base
func DefaultParameter(name string, steps int, p domain.UserProfile) (domain.SensitivityParameter, error) {
	if steps <= 0 {
		steps = DefaultSteps
	}
	param := domain.SensitivityParameter{Name: name, Steps: steps}

	var slider string
	switch name {
	case ParamAnnualMileage:
		slider = refdata.SliderAnnualMileage
		param.Unit = "km/year"
		param.Description = "Annual mileage"
		param.BaseValue = p.AnnualMileage
	case ParamHoldingPeriod:
		slider = refdata.SliderHoldingPeriod
		param.Unit = "years"
		param.Description = "Holding period"
		param.BaseValue = decimal.NewFromInt(int64(p.HoldingPeriodYears))
	case ParamFuelPrice:
		slider = refdata.SliderFuelPrice
		param.Unit = "€/l"
		param.Description = "Fuel price"
		param.BaseValue = p.FuelPrice
	case ParamElectricityPrice:
		slider = refdata.SliderElectricityPrice
		param.Unit = "€/kWh"
		param.Description = "Electricity price"
		param.BaseValue = p.HomeChargingPrice
	default:
		return param, fmt.Errorf("unknown sensitivity parameter %q", name)
	}

	r, _ := refdata.Slider(slider)
	param.MinValue = r.Min
	param.MaxValue = r.Max
	return param, nil
}

// SweepMileage sweeps the annual mileage over its slider range
func (a *Analyzer) SweepMileage(ctx context.Context, ev, ice domain.Vehicle, p domain.UserProfile, steps int) (*domain.ParameterSensitivityAnalysis, error) {
	return a.sweepDefault(ctx, ParamAnnualMileage, ev, ice, p, steps)
}

// SweepHoldingPeriod sweeps the holding period in whole years
func (a *Analyzer) SweepHoldingPeriod(ctx context.Context, ev, ice domain.Vehicle, p domain.UserProfile, steps int) (*domain.ParameterSensitivityAnalysis, error) {
	return a.sweepDefault(ctx, ParamHoldingPeriod, ev, ice, p, steps)
}

// SweepFuelPrice sweeps the fuel price
func (a *Analyzer) SweepFuelPrice(ctx context.Context, ev, ice domain.Vehicle, p domain.UserProfile, steps int) (*domain.ParameterSensitivityAnalysis, error) {
	return a.sweepDefault(ctx, ParamFuelPrice, ev, ice, p, steps)
}

// SweepElectricityPrice sweeps the household electricity price
func (a *Analyzer) SweepElectricityPrice(ctx context.Context, ev, ice domain.Vehicle, p domain.UserProfile, steps int) (*domain.ParameterSensitivityAnalysis, error) {
	return a.sweepDefault(ctx, ParamElectricityPrice, ev, ice, p, steps)
}

func (a *Analyzer) sweepDefault(ctx context.Context, name string, ev, ice domain.Vehicle, p domain.UserProfile, steps int) (*domain.ParameterSensitivityAnalysis, error) {
	param, err := DefaultParameter(name, steps, p)
	if err != nil {
		return nil, err
	}
	return a.Sweep(ctx, param, ev, ice, p)
}

// Sweep evaluates the comparison at every grid value of param. Grid points
// run concurrently; the result keeps grid order.
func (a *Analyzer) Sweep(ctx context.Context, param domain.SensitivityParameter, ev, ice domain.Vehicle, p domain.UserProfile) (*domain.ParameterSensitivityAnalysis, error) {
	if param.MinValue.GreaterThan(param.MaxValue) {
		return nil, fmt.Errorf("parameter %s: min %s is greater than max %s", param.Name, param.MinValue, param.MaxValue)
	}
	if _, err := apply(param.Name, p, decimal.Zero); err != nil {
		return nil, err
	}

	values := GenerateParameterValues(param)
	points := make([]domain.SensitivityPoint, len(values))

	g, ctx := errgroup.WithContext(ctx)
	if a.Parallelism > 0 {
		g.SetLimit(a.Parallelism)
	}
	for i, value := range values {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			modified, _ := apply(param.Name, p, value)
			result := a.Comparator.Compare(ev, ice, modified)
			if result == nil {
				return fmt.Errorf("parameter %s=%s: %w", param.Name, value.String(), ErrNotComparable)
			}
			points[i] = domain.SensitivityPoint{
				Value:           value,
				VibeAboTCO:      result.VibeAbo.TotalCostOfOwnership,
				IceLeasingTCO:   result.IceLeasing.TotalCostOfOwnership,
				SavingsTotal:    result.SavingsTotal,
				SavingsPerMonth: result.SavingsPerMonth,
				Recommendation:  result.Recommendation,
				BreakEvenMonth:  result.BreakEvenMonth,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("sensitivity sweep failed: %w", err)
	}

	return &domain.ParameterSensitivityAnalysis{
		Parameter: param,
		Points:    points,
		Summary:   Summarize(points),
	}, nil
}

// SweepAll sweeps every parameter and ranks them by savings spread
func (a *Analyzer) SweepAll(ctx context.Context, ev, ice domain.Vehicle, p domain.UserProfile, steps int) (*domain.MultiSensitivityAnalysis, error) {
	multi := &domain.MultiSensitivityAnalysis{
		SensitivityScores: make(map[string]decimal.Decimal, len(Parameters)),
	}

	for _, name := range Parameters {
		analysis, err := a.sweepDefault(ctx, name, ev, ice, p, steps)
		if err != nil {
			return nil, fmt.Errorf("failed to analyze parameter %s: %w", name, err)
		}
		multi.Analyses = append(multi.Analyses, *analysis)

		spread := analysis.Summary.MaxSavings.Sub(analysis.Summary.MinSavings)
		multi.SensitivityScores[name] = spread
		if best, ok := multi.SensitivityScores[multi.MostSensitiveParameter]; !ok || spread.GreaterThan(best) {
			multi.MostSensitiveParameter = name
		}
	}

	multi.Recommendations = generateRecommendations(multi)
	return multi, nil
}

// BreakEvenMileage bisects the annual mileage between lo and hi for the
// point at which both offers cost the same
func (a *Analyzer) BreakEvenMileage(ctx context.Context, ev, ice domain.Vehicle, p domain.UserProfile, lo, hi decimal.Decimal) (*breakeven.Result, error) {
	solver := breakeven.NewDefaultSolver(a.Comparator)
	return solver.Solve(ctx, breakeven.Request{
		Target:  breakeven.TargetAnnualMileage,
		EV:      ev,
		ICE:     ice,
		Profile: p,
		Min:     &lo,
		Max:     &hi,
	})
}

// GenerateParameterValues spreads Steps values evenly from min to max
func GenerateParameterValues(param domain.SensitivityParameter) []decimal.Decimal {
	if param.Steps <= 1 {
		return []decimal.Decimal{param.BaseValue}
	}

	values := make([]decimal.Decimal, 0, param.Steps)
	stepSize := param.MaxValue.Sub(param.MinValue).Div(decimal.NewFromInt(int64(param.Steps - 1)))
	for i := 0; i < param.Steps; i++ {
		values = append(values, param.MinValue.Add(stepSize.Mul(decimal.NewFromInt(int64(i)))))
	}
	if param.Name == ParamHoldingPeriod {
		values = uniqueYears(values)
	}
	return values
}

// uniqueYears rounds to whole years and drops duplicates
func uniqueYears(values []decimal.Decimal) []decimal.Decimal {
	seen := make(map[int64]bool, len(values))
	out := values[:0]
	for _, v := range values {
		y := v.Round(0).IntPart()
		if y < 1 || seen[y] {
			continue
		}
		seen[y] = true
		out = append(out, decimal.NewFromInt(y))
	}
	return out
}

// apply returns a copy of the profile with the parameter set to value
func apply(name string, p domain.UserProfile, value decimal.Decimal) (domain.UserProfile, error) {
	switch name {
	case ParamAnnualMileage:
		p.AnnualMileage = value
	case ParamHoldingPeriod:
		p.HoldingPeriodYears = int(value.Round(0).IntPart())
	case ParamFuelPrice:
		p.FuelPrice = value
	case ParamElectricityPrice:
		p = p.WithElectricityPrice(value)
	default:
		return p, fmt.Errorf("unknown sensitivity parameter %q", name)
	}
	return p, nil
}
