package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/evtco/internal/compare"
	"github.com/rgehrsitz/evtco/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// purchaseView puts buying both cars next to the subscription and the lease
type purchaseView struct {
	EV         *domain.PurchaseTCOResult   `json:"evPurchase,omitempty"`
	ICE        *domain.PurchaseTCOResult   `json:"icePurchase,omitempty"`
	VibeAbo    *domain.VibeAboTCOResult    `json:"vibeAbo,omitempty"`
	IceLeasing *domain.IceLeasingTCOResult `json:"iceLeasing,omitempty"`
	Cheapest   string                      `json:"cheapest"`
	Totals     map[string]decimal.Decimal  `json:"totals"`
}

func purchaseCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "purchase",
		Short: "Compare buying either car with the subscription and the lease",
		Long: `Compare buying either car outright with the subscription and the lease.
Purchase costs include depreciation, subsidies and the THG quota for EVs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			return s.finish(runPurchase(cmd, s))
		},
	}
}

func runPurchase(cmd *cobra.Command, s *session) error {
	ev, ice, err := s.vehicles()
	if err != nil {
		return err
	}

	view := purchaseView{
		EV:         s.engine.PurchaseTCO(ev, s.profile),
		ICE:        s.engine.PurchaseTCO(ice, s.profile),
		VibeAbo:    s.engine.VibeAboTCO(ev, s.profile),
		IceLeasing: s.engine.IceLeasingTCO(ice, s.profile),
		Totals:     map[string]decimal.Decimal{},
	}
	if view.EV != nil {
		view.Totals["EV purchase"] = view.EV.TotalCostOfOwnership
	}
	if view.ICE != nil {
		view.Totals["Combustion purchase"] = view.ICE.TotalCostOfOwnership
	}
	if view.VibeAbo != nil {
		view.Totals["EV subscription"] = view.VibeAbo.TotalCostOfOwnership
	}
	if view.IceLeasing != nil {
		view.Totals["Combustion lease"] = view.IceLeasing.TotalCostOfOwnership
	}
	if len(view.Totals) == 0 {
		return fmt.Errorf("no cost model applies to %s and %s", ev.ID, ice.ID)
	}
	view.Cheapest = cheapest(view.Totals)

	var text string
	switch s.opts.format {
	case "json":
		text, err = (&compare.JSONFormatter{Pretty: true}).FormatValue(view)
		if err != nil {
			return err
		}
	case "table", "console", "":
		text = purchaseTable(view, s.profile)
	default:
		return fmt.Errorf("format %q is not supported by purchase (use table or json)", s.opts.format)
	}
	return write(cmd, "", text)
}

// cheapest returns the option with the lowest total; ties go to the name sorting first
func cheapest(totals map[string]decimal.Decimal) string {
	best := ""
	for name, total := range totals {
		if best == "" || total.LessThan(totals[best]) || (total.Equal(totals[best]) && name < best) {
			best = name
		}
	}
	return best
}

func purchaseTable(v purchaseView, p domain.UserProfile) string {
	var sb strings.Builder
	sb.WriteString("PURCHASE VS. SUBSCRIPTION AND LEASE\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Horizon: %d years, %s km/year\n\n", p.HoldingPeriodYears, p.AnnualMileage.StringFixed(0)))

	for _, r := range []*domain.PurchaseTCOResult{v.EV, v.ICE} {
		if r == nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("Buying the %s\n", r.VehicleName))
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		rows := []struct {
			name  string
			value decimal.Decimal
		}{
			{"Purchase price", r.PurchasePrice},
			{"Subsidies", r.TotalSubsidies.Neg()},
			{"Wallbox", r.WallboxCost},
			{"Energy/fuel", r.TotalEnergyCost},
			{"Maintenance", r.TotalMaintenanceCost},
			{"Insurance", r.TotalInsuranceCost},
			{"Vehicle tax", r.TotalTaxCost},
			{"THG quota", r.TotalTHGIncome.Neg()},
			{"Residual value", r.ResidualValue.Neg()},
		}
		for _, row := range rows {
			sb.WriteString(fmt.Sprintf("  %-26s %14s €\n", row.name, row.value.StringFixed(0)))
		}
		sb.WriteString(fmt.Sprintf("  %-26s %14s €\n", "Total cost of ownership", r.TotalCostOfOwnership.StringFixed(0)))
		sb.WriteString(fmt.Sprintf("  %-26s %14s €\n\n", "Per month", r.CostPerMonth.StringFixed(0)))
	}

	sb.WriteString("TOTALS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	for _, name := range []string{"EV subscription", "Combustion lease", "EV purchase", "Combustion purchase"} {
		total, ok := v.Totals[name]
		if !ok {
			continue
		}
		marker := ""
		if name == v.Cheapest {
			marker = "  ← cheapest"
		}
		sb.WriteString(fmt.Sprintf("  %-26s %14s €%s\n", name, total.StringFixed(0), marker))
	}
	return sb.String()
}
