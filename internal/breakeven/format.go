package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats break-even results as a console table
type TableFormatter struct{}

// Format generates a formatted table for a single result
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN ANALYSIS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Target:          %s\n", result.Target))
	sb.WriteString(fmt.Sprintf("Search range:    %s - %s %s\n", tf.formatValue(result.Min), tf.formatValue(result.Max), result.Unit))
	sb.WriteString(fmt.Sprintf("Status:          %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:      %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:     %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Break-even:      %s %s\n", tf.formatValue(result.Value), result.Unit))
	sb.WriteString(fmt.Sprintf("Current:         %s %s\n", tf.formatValue(result.Current), result.Unit))
	delta := result.Value.Sub(result.Current)
	sb.WriteString(fmt.Sprintf("Distance:        %s%s %s\n", tf.deltaSymbol(delta), tf.formatValue(delta), result.Unit))
	sb.WriteString(fmt.Sprintf("Savings there:   %s €\n", result.SavingsAtValue.StringFixed(2)))
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	return sb.String()
}

// FormatMulti formats all targets as one table
func (tf *TableFormatter) FormatMulti(result *MultiResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN POINTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	nameWidth := 20
	numWidth := 14
	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %-10s %s\n",
		nameWidth, "Target",
		numWidth, "Break-even",
		numWidth, "Current",
		"Unit", "Status"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for _, r := range result.Results {
		value := "-"
		if r.Success {
			value = tf.formatValue(r.Value)
		}
		sb.WriteString(fmt.Sprintf("%-*s %*s %*s %-10s %s\n",
			nameWidth, tf.truncate(string(r.Target), nameWidth),
			numWidth, value,
			numWidth, tf.formatValue(r.Current),
			r.Unit, tf.formatStatus(r.Success)))
	}
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("\nINSIGHTS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ No break-even"
}

// formatValue uses whole numbers for large values and cents for prices
func (tf *TableFormatter) formatValue(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(100)) {
		return d.StringFixed(0)
	}
	return d.StringFixed(2)
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
