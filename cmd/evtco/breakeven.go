package main

import (
	"fmt"

	"github.com/rgehrsitz/evtco/internal/breakeven"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func breakEvenCmd(opts *rootOptions) *cobra.Command {
	var (
		target   string
		rangeMin string
		rangeMax string
	)
	cmd := &cobra.Command{
		Use:   "break-even",
		Short: "Find the input value at which both options cost the same",
		Long: `Find the input value at which the subscription and the lease cost the same.

Targets: annual_mileage, fuel_price, electricity_price, subscription_rate, all

Examples:
  evtco break-even --target annual_mileage
  evtco break-even --target fuel_price --min 1 --max 3
  evtco break-even -f json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			return s.finish(runBreakEven(cmd, s, target, rangeMin, rangeMax))
		},
	}
	cmd.Flags().StringVar(&target, "target", "all", "Input to solve for")
	cmd.Flags().StringVar(&rangeMin, "min", "", "Lower search bound")
	cmd.Flags().StringVar(&rangeMax, "max", "", "Upper search bound")
	return cmd
}

func runBreakEven(cmd *cobra.Command, s *session, target, rangeMin, rangeMax string) error {
	ev, ice, err := s.vehicles()
	if err != nil {
		return err
	}
	solver := breakeven.NewDefaultSolver(s.comparator)
	tf := &breakeven.TableFormatter{}

	var value any
	var text string
	if target == "all" {
		if rangeMin != "" || rangeMax != "" {
			return fmt.Errorf("--min and --max need a single --target")
		}
		multi, err := solver.SolveAll(cmd.Context(), ev, ice, s.profile, nil)
		if err != nil {
			return err
		}
		for _, r := range multi.Results {
			s.recorder.ObserveBreakEven(string(r.Target), r.Iterations, r.Success)
		}
		value, text = multi, tf.FormatMulti(multi)
	} else {
		req := breakeven.Request{Target: breakeven.Target(target), EV: ev, ICE: ice, Profile: s.profile}
		if req.Min, err = parseBound("min", rangeMin); err != nil {
			return err
		}
		if req.Max, err = parseBound("max", rangeMax); err != nil {
			return err
		}
		result, err := solver.Solve(cmd.Context(), req)
		if err != nil {
			return err
		}
		s.recorder.ObserveBreakEven(target, result.Iterations, result.Success)
		value, text = result, tf.Format(result)
	}

	switch s.opts.format {
	case "json":
		if text, err = (&breakeven.JSONFormatter{Pretty: true}).Format(value); err != nil {
			return err
		}
	case "table", "console", "":
	default:
		return fmt.Errorf("format %q is not supported by break-even (use table or json)", s.opts.format)
	}
	return write(cmd, "", text)
}

func parseBound(name, value string) (*decimal.Decimal, error) {
	if value == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q: %w", name, value, err)
	}
	return &d, nil
}
