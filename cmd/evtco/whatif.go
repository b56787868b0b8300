package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/evtco/internal/compare"
	"github.com/rgehrsitz/evtco/internal/domain"
	"github.com/rgehrsitz/evtco/internal/transform"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// whatIfRow is one compared variant of the profile
type whatIfRow struct {
	Scenario        string                `json:"scenario"`
	Changes         string                `json:"changes"`
	VibeAboTCO      decimal.Decimal       `json:"vibeAboTCO"`
	IceLeasingTCO   decimal.Decimal       `json:"iceLeasingTCO"`
	SavingsTotal    decimal.Decimal       `json:"savingsTotal"`
	SavingsPerMonth decimal.Decimal       `json:"savingsPerMonth"`
	DeltaVsBase     decimal.Decimal       `json:"deltaVsBase"`
	Recommendation  domain.Recommendation `json:"recommendation"`
	BreakEvenMonth  int                   `json:"breakEvenMonth"`
}

type whatIfVariant struct {
	name       string
	transforms []transform.ProfileTransform
}

func whatIfCmd(opts *rootOptions) *cobra.Command {
	var (
		with          string
		specs         []string
		listTemplates bool
	)
	cmd := &cobra.Command{
		Use:   "whatif",
		Short: "Compare the profile against what-if variants",
		Long: `Rerun the comparison for variants of the profile and show how the
savings move against the unchanged profile.

Templates are named bundles of changes; transforms are single edits in the
form name:key=value,key=value. All --transform flags together form one
"custom" variant.

Examples:
  evtco whatif --list-templates
  evtco whatif --with tenant,high_mileage,company_car
  evtco whatif --transform set_mileage:km=25000 --transform wallbox:enabled=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listTemplates {
				return write(cmd, "", whatIfHelp())
			}
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			return s.finish(runWhatIf(cmd, s, with, specs))
		},
	}
	cmd.Flags().StringVar(&with, "with", "", "Comma-separated list of templates to compare")
	cmd.Flags().StringArrayVarP(&specs, "transform", "t", nil, "Transform spec name:key=value (repeatable)")
	cmd.Flags().BoolVar(&listTemplates, "list-templates", false, "List all templates and transforms")
	return cmd
}

func whatIfHelp() string {
	var sb strings.Builder
	sb.WriteString(transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
	sb.WriteString("\nTransforms:\n")
	for _, name := range transform.NewTransformRegistry().List() {
		sb.WriteString("  " + name + "\n")
	}
	return sb.String()
}

func whatIfVariants(with string, specs []string) ([]whatIfVariant, error) {
	var variants []whatIfVariant

	templates := transform.CreateBuiltInTemplates()
	for _, name := range transform.ParseTemplateList(with) {
		t, ok := templates.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown template %q (see --list-templates)", name)
		}
		variants = append(variants, whatIfVariant{name: t.Name, transforms: t.Transforms})
	}

	if len(specs) > 0 {
		transforms, err := transform.NewTransformRegistry().ParseTransformSpecs(specs)
		if err != nil {
			return nil, err
		}
		variants = append(variants, whatIfVariant{name: "custom", transforms: transforms})
	}

	if len(variants) == 0 {
		return nil, fmt.Errorf("nothing to compare: pass --with or --transform (or --list-templates)")
	}
	return variants, nil
}

func runWhatIf(cmd *cobra.Command, s *session, with string, specs []string) error {
	variants, err := whatIfVariants(with, specs)
	if err != nil {
		return err
	}
	ev, ice, err := s.vehicles()
	if err != nil {
		return err
	}

	compareProfile := func(name, changes string, p domain.UserProfile) (whatIfRow, error) {
		result := s.comparator.Compare(ev, ice, p)
		if result == nil {
			return whatIfRow{}, fmt.Errorf("cannot compare %s with %s: the EV needs subscription terms and the combustion car lease terms", ev.ID, ice.ID)
		}
		s.recorder.ObserveComparison(result)
		return whatIfRow{
			Scenario:        name,
			Changes:         changes,
			VibeAboTCO:      result.VibeAbo.TotalCostOfOwnership,
			IceLeasingTCO:   result.IceLeasing.TotalCostOfOwnership,
			SavingsTotal:    result.SavingsTotal,
			SavingsPerMonth: result.SavingsPerMonth,
			Recommendation:  result.Recommendation,
			BreakEvenMonth:  result.BreakEvenMonth,
		}, nil
	}

	base, err := compareProfile("base", "unchanged", s.profile)
	if err != nil {
		return err
	}
	rows := []whatIfRow{base}
	for _, v := range variants {
		p, err := transform.ApplyTransforms(s.profile, v.transforms)
		if err != nil {
			return fmt.Errorf("variant %s: %w", v.name, err)
		}
		if err := p.Validate(); err != nil {
			s.log.Warnf("variant %s has invalid values: %v", v.name, err)
		}
		row, err := compareProfile(v.name, transform.Describe(v.transforms), p)
		if err != nil {
			return err
		}
		row.DeltaVsBase = row.SavingsTotal.Sub(base.SavingsTotal)
		rows = append(rows, row)
		s.log.Debugf("variant %s: savings %s (%+d vs base)", v.name, row.SavingsTotal.StringFixed(2), row.DeltaVsBase.Round(0).IntPart())
	}

	var text string
	switch s.opts.format {
	case "json":
		text, err = (&compare.JSONFormatter{Pretty: true}).FormatValue(rows)
	case "table", "console", "":
		text = whatIfTable(ev, ice, rows)
	default:
		return fmt.Errorf("format %q is not supported by whatif (use table or json)", s.opts.format)
	}
	if err != nil {
		return err
	}
	return write(cmd, "", text)
}

func whatIfTable(ev, ice domain.Vehicle, rows []whatIfRow) string {
	var sb strings.Builder
	sb.WriteString("WHAT-IF COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 92) + "\n")
	sb.WriteString(fmt.Sprintf("%s vs %s\n\n", ev.Name, ice.Name))
	sb.WriteString(fmt.Sprintf("%-16s %14s %14s %14s %12s %-18s\n",
		"Scenario", "Subscription", "Lease", "Savings", "vs. base", "Recommendation"))
	sb.WriteString(strings.Repeat("-", 92) + "\n")
	for i, r := range rows {
		delta := "-"
		if i > 0 {
			delta = signedAmount(r.DeltaVsBase)
		}
		label := "VIBE subscription"
		if r.Recommendation != domain.RecommendVibeAbo {
			label = "Combustion lease"
		}
		sb.WriteString(fmt.Sprintf("%-16s %14s %14s %14s %12s %-18s\n",
			r.Scenario,
			r.VibeAboTCO.StringFixed(0),
			r.IceLeasingTCO.StringFixed(0),
			r.SavingsTotal.StringFixed(0),
			delta,
			label))
	}
	sb.WriteString(strings.Repeat("=", 92) + "\n")
	for _, r := range rows[1:] {
		sb.WriteString(fmt.Sprintf("%-16s %s\n", r.Scenario, r.Changes))
	}
	return sb.String()
}

func signedAmount(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + d.StringFixed(0)
	}
	return d.StringFixed(0)
}
