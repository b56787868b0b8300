package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/evtco/internal/compare"
	"github.com/rgehrsitz/evtco/internal/domain"
	"github.com/spf13/cobra"
)

func calculateCmd(opts *rootOptions) *cobra.Command {
	var output string
	var withChart bool
	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Compare the EV subscription with the combustion lease",
		Long: `Compare the EV subscription with the combustion lease.

Examples:
  evtco calculate --ev vw-id3-pro --ice vw-golf-15-tsi
  EVTCO_ANNUAL_MILEAGE=25000 evtco calculate -p profile.yaml -f markdown
  evtco calculate -f html -o report.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			return s.finish(runCalculate(cmd, s, output, withChart))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&withChart, "chart", false, "Include the monthly cumulative series (json only)")
	return cmd
}

func runCalculate(cmd *cobra.Command, s *session, output string, withChart bool) error {
	formatter, err := compare.NewFormatter(s.opts.format)
	if err != nil {
		return err
	}
	result, err := s.compare()
	if err != nil {
		return err
	}

	report := compare.NewReport(result, s.profile, s.assumptions.Locale, withChart)
	text, err := formatter.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}
	s.log.Infof("%s vs %s: %s", result.VibeAbo.VehicleName, result.IceLeasing.VehicleName, result.Recommendation)
	return write(cmd, output, text)
}

func chartCmd(opts *rootOptions) *cobra.Command {
	var yearly bool
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Print the month-by-month cumulative cost of both options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			return s.finish(runChart(cmd, s, yearly))
		},
	}
	cmd.Flags().BoolVar(&yearly, "yearly", false, "Only print the start and the end of each year")
	return cmd
}

func runChart(cmd *cobra.Command, s *session, yearly bool) error {
	result, err := s.compare()
	if err != nil {
		return err
	}
	points := compare.GenerateChartData(result)
	if yearly {
		points = yearEnds(points)
	}

	var text string
	switch s.opts.format {
	case "json":
		text, err = (&compare.JSONFormatter{Pretty: true}).FormatValue(points)
	case "csv":
		text, err = (&compare.CSVFormatter{}).FormatChart(points)
	case "table", "console", "":
		text = chartTable(points)
	default:
		return fmt.Errorf("format %q is not supported by chart (use table, json or csv)", s.opts.format)
	}
	if err != nil {
		return err
	}
	return write(cmd, "", text)
}

func yearEnds(points []domain.ChartDataPoint) []domain.ChartDataPoint {
	var out []domain.ChartDataPoint
	for _, p := range points {
		if p.Month == 0 || p.Month%12 == 0 {
			out = append(out, p)
		}
	}
	return out
}

func chartTable(points []domain.ChartDataPoint) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-22s %14s %14s %14s\n", "Period", "Subscription", "Lease", "Difference"))
	sb.WriteString(strings.Repeat("-", 67) + "\n")
	for _, p := range points {
		sb.WriteString(fmt.Sprintf("%-22s %14s %14s %14s\n",
			p.Label,
			p.VibeAboCumulative.StringFixed(0),
			p.IceLeasingCumulative.StringFixed(0),
			p.Difference.StringFixed(0)))
	}
	return sb.String()
}

func breakdownCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "breakdown",
		Short: "Print the cost breakdown by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			return s.finish(runBreakdown(cmd, s))
		},
	}
}

func runBreakdown(cmd *cobra.Command, s *session) error {
	result, err := s.compare()
	if err != nil {
		return err
	}
	rows := compare.GenerateCostBreakdown(result)

	var text string
	switch s.opts.format {
	case "json":
		text, err = (&compare.JSONFormatter{Pretty: true}).FormatValue(rows)
	case "table", "console", "":
		text = breakdownTable(rows)
	default:
		// the remaining formats render the breakdown as part of the full report
		var formatter compare.Formatter
		if formatter, err = compare.NewFormatter(s.opts.format); err != nil {
			return err
		}
		text, err = formatter.Format(compare.NewReport(result, s.profile, s.assumptions.Locale, false))
	}
	if err != nil {
		return err
	}
	return write(cmd, "", text)
}

func breakdownTable(rows []domain.CostBreakdown) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-28s %14s %14s %14s\n", "Category", "Subscription", "Lease", "Savings"))
	sb.WriteString(strings.Repeat("-", 73) + "\n")
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%-28s %14s %14s %14s\n",
			r.Category, r.VibeAbo.StringFixed(2), r.IceLeasing.StringFixed(2), r.Savings.StringFixed(2)))
	}
	return sb.String()
}
