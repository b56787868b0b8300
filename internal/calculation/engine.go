package calculation

import (
	"time"

	"github.com/rgehrsitz/evtco/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculationEngine runs the TCO pipelines against one immutable set of
// assumptions. It holds no mutable state and is safe for concurrent use.
type CalculationEngine struct {
	Assumptions *domain.Assumptions
	StartYear   int // calendar year of the first holding year
	Logger      Logger
}

// NewCalculationEngine creates an engine with the default German assumptions
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithAssumptions(domain.DefaultAssumptions())
}

// NewCalculationEngineWithAssumptions creates an engine with custom assumptions
func NewCalculationEngineWithAssumptions(a *domain.Assumptions) *CalculationEngine {
	if a == nil {
		a = domain.DefaultAssumptions()
	}
	return &CalculationEngine{
		Assumptions: a,
		StartYear:   time.Now().Year(),
		Logger:      NopLogger{},
	}
}

// SetLogger sets the logger, falling back to a no-op logger on nil
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

func (ce *CalculationEngine) logger() Logger {
	if ce.Logger == nil {
		return NopLogger{}
	}
	return ce.Logger
}

// yearlyEnergyPrices compounds the year-one price once per elapsed year.
// A negative horizon yields no prices.
func yearlyEnergyPrices(base, growth decimal.Decimal, years int) []decimal.Decimal {
	years = max(years, 0)
	prices := make([]decimal.Decimal, years)
	price := base
	factor := decimalOne.Add(growth)
	for i := 0; i < years; i++ {
		if i > 0 {
			price = price.Mul(factor)
		}
		prices[i] = price
	}
	return prices
}

// excessDistanceCost charges every km above the allowance over the full horizon
func excessDistanceCost(totalKm, includedKm, rate decimal.Decimal) decimal.Decimal {
	excess := decimal.Max(decimalZero, totalKm.Sub(includedKm))
	return excess.Mul(rate)
}

// monthlySeries spreads the yearly records over months. Each month adds the
// monthly rate, a twelfth of that year's other running costs and an even
// share of the excess distance cost. Because every year record carries its
// own energy price, the price steps exactly at months 13, 25 and so on.
func monthlySeries(start, monthlyRate, excess decimal.Decimal, yearly []domain.YearlyCosts) []domain.MonthlyPoint {
	months := len(yearly) * 12
	series := make([]domain.MonthlyPoint, 0, months)
	if months == 0 {
		return series
	}

	monthlyExcess := excess.Div(decimal.NewFromInt(int64(months)))
	cumulative := start
	for m := 1; m <= months; m++ {
		y := yearly[(m-1)/12]
		other := y.NetRunningCost.Sub(y.Rates).Sub(y.ExcessDistanceCost)
		cumulative = cumulative.Add(monthlyRate).Add(other.Div(twelve)).Add(monthlyExcess)
		series = append(series, domain.MonthlyPoint{Month: m, Cumulative: cumulative.Round(0)})
	}
	return series
}
