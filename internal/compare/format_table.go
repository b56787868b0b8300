package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/evtco/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/message"
)

// TableFormatter formats a comparison report as a console table
type TableFormatter struct{}

// Format generates the console report
func (tf *TableFormatter) Format(r *Report) (string, error) {
	if r == nil || r.Result == nil {
		return "", ErrNoResult
	}
	res := r.Result
	pr := newPrinter(r.Locale)
	var sb strings.Builder

	// Header
	sb.WriteString("VIBE SUBSCRIPTION VS. COMBUSTION LEASE\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Subscription: %s\n", res.VibeAbo.VehicleName))
	sb.WriteString(fmt.Sprintf("Lease:        %s\n", res.IceLeasing.VehicleName))
	sb.WriteString(pr.Sprintf("Horizon:      %d years, %d km/year\n",
		r.Profile.HoldingPeriodYears, r.Profile.AnnualMileage.Round(0).IntPart()))
	sb.WriteString("\n")

	// Column widths
	nameWidth := 28
	numWidth := 16

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s\n",
		nameWidth, "Category",
		numWidth, "Subscription",
		numWidth, "Lease",
		numWidth, "Savings"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for _, b := range r.Breakdown {
		sb.WriteString(tf.formatRow(pr, b.Category, b.VibeAbo, b.IceLeasing, b.Savings, nameWidth, numWidth))
	}
	if res.VibeAbo.CompanyCarTax.IsPositive() || res.IceLeasing.CompanyCarTax.IsPositive() {
		sb.WriteString(tf.formatRow(pr, "Company car tax",
			res.VibeAbo.CompanyCarTax, res.IceLeasing.CompanyCarTax,
			res.IceLeasing.CompanyCarTax.Sub(res.VibeAbo.CompanyCarTax), nameWidth, numWidth))
	}
	if res.VibeAbo.ParkingSavings.IsPositive() || res.IceLeasing.ParkingCost.IsPositive() {
		sub := res.VibeAbo.ParkingSavings.Neg()
		sb.WriteString(tf.formatRow(pr, "Parking",
			sub, res.IceLeasing.ParkingCost, res.IceLeasing.ParkingCost.Sub(sub), nameWidth, numWidth))
	}

	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(tf.formatRow(pr, "Total cost of ownership",
		res.VibeAbo.TotalCostOfOwnership, res.IceLeasing.TotalCostOfOwnership, res.SavingsTotal,
		nameWidth, numWidth))
	sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n",
		nameWidth, "Per month",
		numWidth, euro(pr, res.VibeAbo.CostPerMonth),
		numWidth, euro(pr, res.IceLeasing.CostPerMonth)))
	sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n",
		nameWidth, "Per km",
		numWidth, res.VibeAbo.CostPerKm.StringFixed(2)+" €",
		numWidth, res.IceLeasing.CostPerKm.StringFixed(2)+" €"))
	sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n",
		nameWidth, "CO2 (kg)",
		numWidth, pr.Sprintf("%d", res.VibeAbo.TotalCO2Emissions.Round(0).IntPart()),
		numWidth, pr.Sprintf("%d", res.IceLeasing.TotalCO2Emissions.Round(0).IntPart())))
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	// Savings
	sb.WriteString("\nSAVINGS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("  Total:      %s%s\n", tf.deltaSymbol(res.SavingsTotal), euro(pr, res.SavingsTotal.Abs())))
	sb.WriteString(fmt.Sprintf("  Per year:   %s%s\n", tf.deltaSymbol(res.SavingsPerYear), euro(pr, res.SavingsPerYear.Abs())))
	sb.WriteString(fmt.Sprintf("  Per month:  %s%s\n", tf.deltaSymbol(res.SavingsPerMonth), euro(pr, res.SavingsPerMonth.Abs())))
	sb.WriteString(fmt.Sprintf("  CO2:        %s kg\n", res.CO2Savings.StringFixed(0)))
	sb.WriteString(fmt.Sprintf("              = %s flights, %s trees, %s smartphones, %s km by car\n",
		res.CO2SavingsEquivalent.Flights.StringFixed(1),
		res.CO2SavingsEquivalent.Trees.StringFixed(0),
		res.CO2SavingsEquivalent.Smartphones.StringFixed(1),
		res.CO2SavingsEquivalent.CarKm.StringFixed(0)))

	sb.WriteString(fmt.Sprintf("\nRECOMMENDATION: %s\n", recommendationLabel(res.Recommendation)))
	sb.WriteString(res.RecommendationText + "\n")

	if len(r.Recommendations) > 0 {
		sb.WriteString("\nNOTES\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range r.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// formatRow formats a single breakdown row
func (tf *TableFormatter) formatRow(pr *message.Printer, name string, sub, lease, savings decimal.Decimal, nameWidth, numWidth int) string {
	return fmt.Sprintf("%-*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, euro(pr, sub),
		numWidth, euro(pr, lease),
		numWidth, tf.deltaSymbol(savings)+euro(pr, savings.Abs()))
}

// formatDecimal formats a decimal compactly (in thousands)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol returns a + or - for savings (positive favours the subscription)
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a single-line summary
func (tf *TableFormatter) FormatCompact(r *Report) string {
	if r == nil || r.Result == nil {
		return ""
	}
	res := r.Result
	change := "="
	if res.SavingsTotal.IsPositive() {
		change = fmt.Sprintf("+%s€", tf.formatDecimal(res.SavingsTotal))
	} else if res.SavingsTotal.IsNegative() {
		change = fmt.Sprintf("-%s€", tf.formatDecimal(res.SavingsTotal.Abs()))
	}
	return fmt.Sprintf("%s vs %s: %s | %s",
		res.VibeAbo.VehicleName, res.IceLeasing.VehicleName, change, recommendationLabel(res.Recommendation))
}

// euro renders a whole-euro amount with locale grouping
func euro(pr *message.Printer, d decimal.Decimal) string {
	return pr.Sprintf("%d €", d.Round(0).IntPart())
}

// signedEuro is euro with a leading + for positive amounts
func signedEuro(pr *message.Printer, d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + euro(pr, d)
	}
	return euro(pr, d)
}

func recommendationLabel(r domain.Recommendation) string {
	if r == domain.RecommendVibeAbo {
		return "VIBE subscription"
	}
	return "Combustion lease"
}
