package sensitivity

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/evtco/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleFormatter formats sensitivity analyses for the terminal
type ConsoleFormatter struct{}

// Format renders a single sweep or a multi-parameter analysis
func (cf ConsoleFormatter) Format(analysis any) (string, error) {
	var buf bytes.Buffer

	switch a := analysis.(type) {
	case *domain.ParameterSensitivityAnalysis:
		if err := cf.formatSingle(&buf, a); err != nil {
			return "", err
		}
	case *domain.MultiSensitivityAnalysis:
		for i := range a.Analyses {
			if err := cf.formatSingle(&buf, &a.Analyses[i]); err != nil {
				return "", err
			}
			fmt.Fprintln(&buf)
		}
		if len(a.Recommendations) > 0 {
			fmt.Fprintln(&buf, "INSIGHTS")
			fmt.Fprintln(&buf, strings.Repeat("-", 80))
			for _, rec := range a.Recommendations {
				fmt.Fprintf(&buf, "• %s\n", rec)
			}
		}
	default:
		return "", fmt.Errorf("unsupported analysis type: %T", analysis)
	}

	return buf.String(), nil
}

func (cf ConsoleFormatter) formatSingle(buf *bytes.Buffer, analysis *domain.ParameterSensitivityAnalysis) error {
	if len(analysis.Points) == 0 {
		return fmt.Errorf("no results in analysis of %s", analysis.Parameter.Name)
	}
	param := analysis.Parameter

	fmt.Fprintf(buf, "SENSITIVITY ANALYSIS: %s\n", strings.ToUpper(strings.ReplaceAll(param.Name, "_", " ")))
	fmt.Fprintln(buf, strings.Repeat("=", 80))
	fmt.Fprintf(buf, "Base Case: %s %s\n", formatValue(param.BaseValue), param.Unit)
	fmt.Fprintf(buf, "Range: %s to %s %s (%d steps)\n",
		formatValue(param.MinValue), formatValue(param.MaxValue), param.Unit, len(analysis.Points))
	fmt.Fprintln(buf)

	// the grid point closest to the profile's own value
	base := 0
	minDiff := analysis.Points[0].Value.Sub(param.BaseValue).Abs()
	for i, pt := range analysis.Points {
		if diff := pt.Value.Sub(param.BaseValue).Abs(); diff.LessThan(minDiff) {
			minDiff, base = diff, i
		}
	}

	fmt.Fprintf(buf, "%-16s %14s %14s %14s %12s %-12s\n",
		"Value", "Subscription", "Lease", "Savings", "Per month", "Winner")
	fmt.Fprintln(buf, strings.Repeat("-", 80))
	for i, pt := range analysis.Points {
		value := formatValue(pt.Value)
		if i == base {
			value += " ← BASE"
		}
		winner := "lease"
		if pt.Recommendation == domain.RecommendVibeAbo {
			winner = "subscription"
		}
		fmt.Fprintf(buf, "%-16s %14s %14s %14s %12s %-12s\n",
			value,
			pt.VibeAboTCO.StringFixed(0),
			pt.IceLeasingTCO.StringFixed(0),
			pt.SavingsTotal.StringFixed(0),
			pt.SavingsPerMonth.StringFixed(0),
			winner)
	}
	fmt.Fprintln(buf, strings.Repeat("-", 80))

	s := analysis.Summary
	fmt.Fprintf(buf, "Savings: min %s, max %s, mean %s, std dev %s\n",
		s.MinSavings.StringFixed(0), s.MaxSavings.StringFixed(0),
		s.MeanSavings.StringFixed(0), s.StdDevSavings.StringFixed(0))
	fmt.Fprintf(buf, "Subscription wins at %s%% of grid points, %d recommendation change(s)\n",
		s.VibeAboShare.Mul(decimal.NewFromInt(100)).StringFixed(0), s.RecommendationChanges)
	return nil
}

func formatValue(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(100)) || d.Equal(d.Truncate(0)) {
		return d.StringFixed(0)
	}
	return d.StringFixed(2)
}
