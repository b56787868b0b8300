package compare

import (
	"fmt"

	"github.com/rgehrsitz/evtco/internal/domain"
	"github.com/shopspring/decimal"
)

// Report bundles a comparison with everything the formatters render
type Report struct {
	Profile         domain.UserProfile       `json:"profile"`
	Result          *domain.ComparisonResult `json:"result"`
	Breakdown       []domain.CostBreakdown   `json:"breakdown"`
	Chart           []domain.ChartDataPoint  `json:"chart,omitempty"`
	Recommendations []string                 `json:"recommendations"`
	Locale          string                   `json:"locale"`
}

// NewReport derives breakdown and recommendations from a comparison. The
// chart series is only attached when withChart is set since it is long.
func NewReport(result *domain.ComparisonResult, p domain.UserProfile, locale string, withChart bool) *Report {
	r := &Report{
		Profile:         p,
		Result:          result,
		Breakdown:       GenerateCostBreakdown(result),
		Recommendations: GenerateRecommendations(result, p),
		Locale:          locale,
	}
	if withChart {
		r.Chart = GenerateChartData(result)
	}
	return r
}

// GenerateRecommendations creates short hints beyond the headline text
func GenerateRecommendations(result *domain.ComparisonResult, p domain.UserProfile) []string {
	recommendations := []string{}
	if result == nil || result.VibeAbo == nil || result.IceLeasing == nil {
		return recommendations
	}

	switch {
	case result.BreakEvenMonth == 1:
		recommendations = append(recommendations,
			"Break-even: the subscription is cheaper from the first month")
	case result.BreakEvenMonth > 1:
		recommendations = append(recommendations,
			fmt.Sprintf("Break-even: the subscription becomes cheaper in month %d", result.BreakEvenMonth))
	default:
		recommendations = append(recommendations,
			fmt.Sprintf("Break-even: the subscription does not catch up within %d years", p.HoldingPeriodYears))
	}

	if result.VibeAbo.ExcessKmCost.IsPositive() {
		recommendations = append(recommendations,
			"Excess km: your mileage exceeds the subscription allowance, costing "+
				result.VibeAbo.ExcessKmCost.StringFixed(0)+" € in total")
	}
	if result.IceLeasing.ExcessKmCost.IsPositive() {
		recommendations = append(recommendations,
			"Excess km: your mileage exceeds the lease allowance, costing "+
				result.IceLeasing.ExcessKmCost.StringFixed(0)+" € in total")
	}

	if result.VibeAbo.WallboxCost.IsPositive() && result.SavingsTotal.IsNegative() &&
		result.SavingsTotal.Abs().LessThanOrEqual(result.VibeAbo.WallboxCost) {
		recommendations = append(recommendations,
			"Wallbox: without the wallbox purchase the subscription would be the cheaper option")
	}

	if result.CO2Savings.IsPositive() {
		tonnes := result.CO2Savings.Div(decimal.NewFromInt(1000))
		recommendations = append(recommendations,
			fmt.Sprintf("CO2: the EV avoids %s t CO2, as much as %s trees absorb in a year",
				tonnes.StringFixed(1), result.CO2SavingsEquivalent.Trees.StringFixed(0)))
	}

	return recommendations
}
