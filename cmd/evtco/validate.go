package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rgehrsitz/evtco/internal/config"
	"github.com/rgehrsitz/evtco/internal/refdata"
	"github.com/spf13/cobra"
)

func validateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the profile, assumptions and catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// validation reports problems itself, so strict loading is off here
			relaxed := *opts
			relaxed.strict = false
			s, err := newSession(cmd, &relaxed)
			if err != nil {
				return err
			}
			return s.finish(runValidate(cmd, s))
		},
	}
}

func runValidate(cmd *cobra.Command, s *session) error {
	out := cmd.OutOrStdout()
	var problems []string

	if err := s.profile.Validate(); err != nil {
		problems = append(problems, flatten(err)...)
	}
	if _, _, err := s.vehicles(); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		fmt.Fprintln(out, "Profile is invalid:")
		for _, p := range problems {
			fmt.Fprintf(out, "  • %s\n", p)
		}
		return fmt.Errorf("validation failed with %d problem(s)", len(problems))
	}

	fmt.Fprintf(out, "Profile is valid (%d vehicles in catalog)\n", len(s.catalog.Vehicles))
	return nil
}

// flatten lists the messages of a joined error
func flatten(err error) []string {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, flatten(e)...)
		}
		return out
	}
	return strings.Split(err.Error(), "\n")
}

func profileCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage profile files",
	}
	cmd.AddCommand(profileInitCmd(opts))
	return cmd
}

func profileInitCmd(opts *rootOptions) *cobra.Command {
	var (
		output string
		force  bool
		preset string
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a profile with the default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if fileExists(output) && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", output)
			}

			p := refdata.DefaultProfile()
			p.EVVehicleID = opts.ev
			p.ICEVehicleID = opts.ice
			if preset != "" {
				cs, ok := refdata.ChargingPresetByKey(preset)
				if !ok {
					return fmt.Errorf("unknown charging preset %q (available: %s)", preset, strings.Join(refdata.ChargingPresetKeys, ", "))
				}
				p.ChargingScenario = cs.Scenario
			}

			if err := config.NewInputParser().SaveProfile(p, output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "profile.yaml", "Profile file to write")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	cmd.Flags().StringVar(&preset, "charging", "", "Charging preset ("+strings.Join(refdata.ChargingPresetKeys, ", ")+")")
	return cmd
}
