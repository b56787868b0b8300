package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/evtco/internal/compare"
	"github.com/rgehrsitz/evtco/internal/domain"
	"github.com/spf13/cobra"
)

func vehiclesCmd(opts *rootOptions) *cobra.Command {
	var class string
	cmd := &cobra.Command{
		Use:   "vehicles",
		Short: "List the vehicles of the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			return s.finish(runVehicles(cmd, s, domain.VehicleClass(class)))
		},
	}
	cmd.Flags().StringVar(&class, "class", "", "Only list one vehicle class (kleinwagen, kompakt, mittelklasse, suv, ...)")
	return cmd
}

func runVehicles(cmd *cobra.Command, s *session, class domain.VehicleClass) error {
	vehicles := s.catalog.Vehicles
	if class != "" {
		vehicles = s.catalog.ByClass(class)
	}

	switch s.opts.format {
	case "json":
		text, err := (&compare.JSONFormatter{Pretty: true}).FormatValue(vehicles)
		if err != nil {
			return err
		}
		return write(cmd, "", text)
	case "table", "console", "":
		return write(cmd, "", vehicleTable(vehicles))
	default:
		return fmt.Errorf("format %q is not supported by vehicles (use table or json)", s.opts.format)
	}
}

func vehicleTable(vehicles []domain.Vehicle) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-22s %-32s %-6s %-13s %10s %-20s\n", "ID", "Name", "Drive", "Class", "Price", "Offer"))
	sb.WriteString(strings.Repeat("-", 108) + "\n")
	for _, v := range vehicles {
		offer := "-"
		if sub, ok := v.Subscribable(); ok {
			offer = fmt.Sprintf("subscription %s €/m", sub.Terms.MonthlyRate.StringFixed(0))
		} else if lease, ok := v.Leasable(); ok {
			offer = fmt.Sprintf("lease %s €/m", lease.Terms.MonthlyRate.StringFixed(0))
		}
		sb.WriteString(fmt.Sprintf("%-22s %-32s %-6s %-13s %10s %-20s\n",
			v.ID, v.Name, v.DriveType, v.VehicleClass, v.BasePrice.StringFixed(0), offer))
	}
	return sb.String()
}
