package compare

import (
	"fmt"
	"strings"
)

// MarkdownFormatter renders a report as GitHub flavoured Markdown
type MarkdownFormatter struct{}

// Format generates the Markdown report
func (mf *MarkdownFormatter) Format(r *Report) (string, error) {
	if r == nil || r.Result == nil {
		return "", ErrNoResult
	}
	res := r.Result
	pr := newPrinter(r.Locale)
	var sb strings.Builder

	sb.WriteString("# VIBE subscription vs. combustion lease\n\n")
	sb.WriteString(fmt.Sprintf("- **Subscription:** %s\n", res.VibeAbo.VehicleName))
	sb.WriteString(fmt.Sprintf("- **Lease:** %s\n", res.IceLeasing.VehicleName))
	sb.WriteString(pr.Sprintf("- **Horizon:** %d years, %d km/year\n\n",
		r.Profile.HoldingPeriodYears, r.Profile.AnnualMileage.Round(0).IntPart()))

	sb.WriteString(fmt.Sprintf("> **%s.** %s\n\n", recommendationLabel(res.Recommendation), res.RecommendationText))

	sb.WriteString("## Cost breakdown\n\n")
	sb.WriteString("| Category | Subscription | Lease | Savings |\n")
	sb.WriteString("|---|---:|---:|---:|\n")
	for _, b := range r.Breakdown {
		sb.WriteString(mdRow(b.Category, euro(pr, b.VibeAbo), euro(pr, b.IceLeasing), signedEuro(pr, b.Savings)))
	}
	sb.WriteString(mdRow("**Total**",
		"**"+euro(pr, res.VibeAbo.TotalCostOfOwnership)+"**",
		"**"+euro(pr, res.IceLeasing.TotalCostOfOwnership)+"**",
		"**"+signedEuro(pr, res.SavingsTotal)+"**"))
	sb.WriteString(mdRow("Per month", euro(pr, res.VibeAbo.CostPerMonth), euro(pr, res.IceLeasing.CostPerMonth), signedEuro(pr, res.SavingsPerMonth)))
	sb.WriteString(mdRow("Per km", res.VibeAbo.CostPerKm.StringFixed(2)+" €", res.IceLeasing.CostPerKm.StringFixed(2)+" €", res.SavingsPerKm.StringFixed(2)+" €"))
	sb.WriteString("\n")

	sb.WriteString("## CO2\n\n")
	sb.WriteString(pr.Sprintf("The EV emits %d kg and the combustion car %d kg over the holding period. ",
		res.VibeAbo.TotalCO2Emissions.Round(0).IntPart(), res.IceLeasing.TotalCO2Emissions.Round(0).IntPart()))
	sb.WriteString(fmt.Sprintf("The difference of %s kg equals %s flights, %s trees per year, %s smartphones or %s km by car.\n\n",
		res.CO2Savings.StringFixed(0),
		res.CO2SavingsEquivalent.Flights.StringFixed(1),
		res.CO2SavingsEquivalent.Trees.StringFixed(0),
		res.CO2SavingsEquivalent.Smartphones.StringFixed(1),
		res.CO2SavingsEquivalent.CarKm.StringFixed(0)))

	if len(r.Recommendations) > 0 {
		sb.WriteString("## Notes\n\n")
		for _, rec := range r.Recommendations {
			sb.WriteString("- " + rec + "\n")
		}
		sb.WriteString("\n")
	}

	if len(res.VibeAbo.YearlyCosts) > 0 && len(res.IceLeasing.YearlyCosts) > 0 {
		sb.WriteString("## Cumulative cost by year\n\n")
		sb.WriteString("| Year | Subscription | Lease | Difference |\n")
		sb.WriteString("|---|---:|---:|---:|\n")
		n := min(len(res.VibeAbo.YearlyCosts), len(res.IceLeasing.YearlyCosts))
		for i := 0; i < n; i++ {
			v := res.VibeAbo.YearlyCosts[i]
			l := res.IceLeasing.YearlyCosts[i]
			sb.WriteString(mdRow(fmt.Sprintf("%d (%d)", v.Year, v.CalendarYear),
				euro(pr, v.CumulativeCost), euro(pr, l.CumulativeCost), signedEuro(pr, l.CumulativeCost.Sub(v.CumulativeCost))))
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

func mdRow(cells ...string) string {
	return "| " + strings.Join(cells, " | ") + " |\n"
}
