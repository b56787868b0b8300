package compare

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/rgehrsitz/evtco/internal/domain"
)

// CSVFormatter formats the cost breakdown and totals as CSV
type CSVFormatter struct{}

// Format generates CSV output, one row per cost category followed by totals
func (cf *CSVFormatter) Format(r *Report) (string, error) {
	if r == nil || r.Result == nil {
		return "", ErrNoResult
	}
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{"Category", "VibeAbo", "IceLeasing", "Savings"}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for _, b := range r.Breakdown {
		if err := writer.Write(cf.formatRow(b)); err != nil {
			return "", err
		}
	}

	res := r.Result
	totals := [][]string{
		{"Total", res.VibeAbo.TotalCostOfOwnership.StringFixed(2), res.IceLeasing.TotalCostOfOwnership.StringFixed(2), res.SavingsTotal.StringFixed(2)},
		{"Per month", res.VibeAbo.CostPerMonth.StringFixed(2), res.IceLeasing.CostPerMonth.StringFixed(2), res.SavingsPerMonth.StringFixed(2)},
		{"Per km", res.VibeAbo.CostPerKm.StringFixed(4), res.IceLeasing.CostPerKm.StringFixed(4), res.SavingsPerKm.StringFixed(4)},
		{"CO2 kg", res.VibeAbo.TotalCO2Emissions.StringFixed(0), res.IceLeasing.TotalCO2Emissions.StringFixed(0), res.CO2Savings.StringFixed(0)},
		{"Break-even month", formatInt(res.BreakEvenMonth), "", ""},
		{"Recommendation", string(res.Recommendation), "", ""},
	}
	for _, row := range totals {
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// FormatChart writes the monthly chart series as CSV
func (cf *CSVFormatter) FormatChart(points []domain.ChartDataPoint) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{"Month", "Year", "Label", "VibeAboCumulative", "IceLeasingCumulative", "VibeAboMonthly", "IceLeasingMonthly", "Difference"}
	if err := writer.Write(header); err != nil {
		return "", err
	}
	for _, p := range points {
		row := []string{
			formatInt(p.Month),
			formatInt(p.Year),
			p.Label,
			p.VibeAboCumulative.StringFixed(0),
			p.IceLeasingCumulative.StringFixed(0),
			p.VibeAboMonthly.StringFixed(0),
			p.IceLeasingMonthly.StringFixed(0),
			p.Difference.StringFixed(0),
		}
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// formatRow formats a breakdown row
func (cf *CSVFormatter) formatRow(b domain.CostBreakdown) []string {
	return []string{
		b.Category,
		b.VibeAbo.StringFixed(2),
		b.IceLeasing.StringFixed(2),
		b.Savings.StringFixed(2),
	}
}

func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
