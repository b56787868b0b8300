package main

import (
	"fmt"

	"github.com/rgehrsitz/evtco/internal/compare"
	"github.com/rgehrsitz/evtco/internal/domain"
	"github.com/rgehrsitz/evtco/internal/sensitivity"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func sensitivityCmd(opts *rootOptions) *cobra.Command {
	var (
		parameter string
		steps     int
		rangeMin  string
		rangeMax  string
	)
	cmd := &cobra.Command{
		Use:   "sensitivity",
		Short: "Sweep an input and show how the savings respond",
		Long: `Sweep an input over a grid and show how the savings of the subscription
over the lease respond.

Parameters: annual_mileage, holding_period, fuel_price, electricity_price, all

Examples:
  evtco sensitivity --parameter annual_mileage --steps 10
  evtco sensitivity --parameter fuel_price --min 1.4 --max 2.2
  evtco sensitivity --parameter all -f json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			return s.finish(runSensitivity(cmd, s, parameter, steps, rangeMin, rangeMax))
		},
	}
	cmd.Flags().StringVar(&parameter, "parameter", "all", "Parameter to sweep")
	cmd.Flags().IntVar(&steps, "steps", sensitivity.DefaultSteps, "Number of grid points")
	cmd.Flags().StringVar(&rangeMin, "min", "", "Lower end of the grid (default: slider range)")
	cmd.Flags().StringVar(&rangeMax, "max", "", "Upper end of the grid (default: slider range)")
	return cmd
}

func runSensitivity(cmd *cobra.Command, s *session, parameter string, steps int, rangeMin, rangeMax string) error {
	ev, ice, err := s.vehicles()
	if err != nil {
		return err
	}
	analyzer := sensitivity.NewAnalyzer(s.comparator)

	var analysis any
	if parameter == "all" {
		if rangeMin != "" || rangeMax != "" {
			return fmt.Errorf("--min and --max need a single --parameter")
		}
		multi, err := analyzer.SweepAll(cmd.Context(), ev, ice, s.profile, steps)
		if err != nil {
			return err
		}
		for i := range multi.Analyses {
			s.recorder.ObserveSweep(&multi.Analyses[i])
		}
		analysis = multi
	} else {
		param, err := sensitivity.DefaultParameter(parameter, steps, s.profile)
		if err != nil {
			return err
		}
		if err := overrideRange(&param, rangeMin, rangeMax); err != nil {
			return err
		}
		single, err := analyzer.Sweep(cmd.Context(), param, ev, ice, s.profile)
		if err != nil {
			return err
		}
		s.recorder.ObserveSweep(single)
		analysis = single
	}

	var text string
	switch s.opts.format {
	case "json":
		text, err = (&compare.JSONFormatter{Pretty: true}).FormatValue(analysis)
	case "table", "console", "":
		text, err = sensitivity.ConsoleFormatter{}.Format(analysis)
	default:
		return fmt.Errorf("format %q is not supported by sensitivity (use table or json)", s.opts.format)
	}
	if err != nil {
		return err
	}
	return write(cmd, "", text)
}

func overrideRange(param *domain.SensitivityParameter, rangeMin, rangeMax string) error {
	if rangeMin != "" {
		v, err := decimal.NewFromString(rangeMin)
		if err != nil {
			return fmt.Errorf("invalid --min %q: %w", rangeMin, err)
		}
		param.MinValue = v
	}
	if rangeMax != "" {
		v, err := decimal.NewFromString(rangeMax)
		if err != nil {
			return fmt.Errorf("invalid --max %q: %w", rangeMax, err)
		}
		param.MaxValue = v
	}
	return nil
}
