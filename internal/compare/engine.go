package compare

import (
	"github.com/rgehrsitz/evtco/internal/calculation"
	"github.com/rgehrsitz/evtco/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Comparator runs both pipelines for a vehicle pair and derives savings,
// CO2 delta and a recommendation
type Comparator struct {
	CalcEngine *calculation.CalculationEngine
	printer    *message.Printer
}

// NewComparator creates a comparator on top of a calculation engine.
// Numbers in the recommendation text are grouped for the assumptions' locale.
func NewComparator(calcEngine *calculation.CalculationEngine) *Comparator {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &Comparator{
		CalcEngine: calcEngine,
		printer:    newPrinter(calcEngine.Assumptions.Locale),
	}
}

func newPrinter(locale string) *message.Printer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.German
	}
	return message.NewPrinter(tag)
}

// Compare evaluates the subscription of ev against the lease of ice. It
// returns nil when either vehicle lacks the capability its pipeline needs.
func (c *Comparator) Compare(ev, ice domain.Vehicle, p domain.UserProfile) *domain.ComparisonResult {
	vibeAbo := c.CalcEngine.VibeAboTCO(ev, p)
	if vibeAbo == nil {
		return nil
	}
	iceLeasing := c.CalcEngine.IceLeasingTCO(ice, p)
	if iceLeasing == nil {
		return nil
	}

	years := decimal.NewFromInt(int64(p.HoldingPeriodYears))
	months := decimal.NewFromInt(int64(p.Months()))

	savings := iceLeasing.TotalCostOfOwnership.Sub(vibeAbo.TotalCostOfOwnership)
	co2Savings := iceLeasing.TotalCO2Emissions.Sub(vibeAbo.TotalCO2Emissions)

	recommendation, text := c.recommend(savings, p.HoldingPeriodYears)

	result := &domain.ComparisonResult{
		VibeAbo:              vibeAbo,
		IceLeasing:           iceLeasing,
		SavingsTotal:         savings,
		SavingsPerYear:       calculation.SafeDiv(savings, years),
		SavingsPerMonth:      calculation.SafeDiv(savings, months),
		SavingsPerKm:         calculation.SafeDiv(savings, p.TotalKm()),
		CO2Savings:           co2Savings,
		CO2SavingsEquivalent: calculation.CO2Equivalent(co2Savings, c.CalcEngine.Assumptions),
		Recommendation:       recommendation,
		RecommendationText:   text,
		BreakEvenMonth:       BreakEvenMonth(vibeAbo.MonthlyData, iceLeasing.MonthlyData),
	}

	if l := c.CalcEngine.Logger; l != nil {
		l.Debugf("compare %s vs %s: savings=%s recommendation=%s",
			ev.ID, ice.ID, savings.StringFixed(2), recommendation)
	}

	return result
}

// recommend picks the cheaper option. A tie goes to the lease.
func (c *Comparator) recommend(savings decimal.Decimal, years int) (domain.Recommendation, string) {
	amount := savings.Abs().Round(0).IntPart()
	if savings.IsPositive() {
		return domain.RecommendVibeAbo, c.printer.Sprintf(
			"With the VIBE subscription you save %d € over %d years compared to leasing the combustion car, "+
				"with maintenance, insurance and tax included and zero tailpipe emissions.",
			amount, years)
	}
	return domain.RecommendIceLeasing, c.printer.Sprintf(
		"Leasing the combustion car is %d € cheaper over %d years. The VIBE subscription still includes insurance, "+
			"maintenance and tax and drives emission free.",
		amount, years)
}

// BreakEvenMonth returns the first month in which the subscription's
// cumulative cost is at or below the lease's, or 0 if that never happens
func BreakEvenMonth(vibeAbo, iceLeasing []domain.MonthlyPoint) int {
	n := min(len(vibeAbo), len(iceLeasing))
	for i := 0; i < n; i++ {
		if vibeAbo[i].Cumulative.LessThanOrEqual(iceLeasing[i].Cumulative) {
			return vibeAbo[i].Month
		}
	}
	return 0
}
