package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/evtco/internal/domain"
	"github.com/rgehrsitz/evtco/internal/tui/tuistyles"
)

// VehicleCard displays a catalogue entry with its offer
type VehicleCard struct {
	Vehicle    domain.Vehicle
	Highlights []string
	IsSelected bool
	IsActive   bool // part of the pair being compared
	Width      int
}

// NewVehicleCard creates a card and derives the highlights from the
// vehicle's specs and offer
func NewVehicleCard(v domain.Vehicle) *VehicleCard {
	c := &VehicleCard{Vehicle: v, Width: 44}
	if sub, ok := v.Subscribable(); ok {
		c.Highlights = append(c.Highlights,
			fmt.Sprintf("Subscription %s/month", tuistyles.FormatCurrency(sub.Terms.MonthlyRate)),
			fmt.Sprintf("%s km/month included", sub.Terms.IncludedKmPerMonth.StringFixed(0)))
	}
	if lease, ok := v.Leasable(); ok {
		c.Highlights = append(c.Highlights,
			fmt.Sprintf("Lease %s/month", tuistyles.FormatCurrency(lease.Terms.MonthlyRate)),
			fmt.Sprintf("%s km/year included", lease.Terms.IncludedKmPerYear.StringFixed(0)))
	}
	if ev, ok := v.Electric(); ok && ev.Specs.RangeWLTP.IsPositive() {
		c.Highlights = append(c.Highlights, fmt.Sprintf("%s km WLTP range", ev.Specs.RangeWLTP.StringFixed(0)))
	}
	if ice, ok := v.Combustion(); ok && ice.Specs.CO2Emissions.IsPositive() {
		c.Highlights = append(c.Highlights, fmt.Sprintf("%s g CO2/km", ice.Specs.CO2Emissions.StringFixed(0)))
	}
	return c
}

// SetSelected marks the card as under the cursor
func (c *VehicleCard) SetSelected(selected bool) *VehicleCard {
	c.IsSelected = selected
	return c
}

// SetActive marks the card as part of the compared pair
func (c *VehicleCard) SetActive(active bool) *VehicleCard {
	c.IsActive = active
	return c
}

// WithWidth sets the card width
func (c *VehicleCard) WithWidth(width int) *VehicleCard {
	c.Width = width
	return c
}

// Render returns the detailed card
func (c *VehicleCard) Render() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary)
	content.WriteString(titleStyle.Render(c.Vehicle.Name))
	content.WriteString("\n")

	subStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorMuted).
		Italic(true)
	content.WriteString(subStyle.Render(fmt.Sprintf("%s · %s · %s",
		strings.ToUpper(string(c.Vehicle.DriveType)), c.Vehicle.VehicleClass, c.Vehicle.ID)))
	content.WriteString("\n")

	if len(c.Highlights) > 0 {
		content.WriteString("\n")
		highlightStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorForeground)
		for _, h := range c.Highlights {
			content.WriteString(highlightStyle.Render("• " + h))
			content.WriteString("\n")
		}
	}

	border := tuistyles.ColorBorder
	if c.IsSelected {
		border = tuistyles.ColorPrimary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 2).
		Width(c.Width).
		Render(strings.TrimRight(content.String(), "\n"))
}

// RenderCompact returns a single-line version
func (c *VehicleCard) RenderCompact() string {
	marker := " "
	if c.IsActive {
		marker = "✓"
	}
	name := c.Vehicle.Name
	if name == "" {
		name = c.Vehicle.ID
	}
	line := marker + " " + name
	if len(c.Highlights) > 0 {
		line += lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render("  " + c.Highlights[0])
	}
	return line
}

// VehicleListCompact renders a selection list with a cursor
func VehicleListCompact(cards []*VehicleCard, selectedIndex int) string {
	if len(cards) == 0 {
		return tuistyles.InfoStyle.Render("No vehicles available")
	}

	rendered := make([]string, len(cards))
	for i, card := range cards {
		prefix := "  "
		style := tuistyles.UnselectedItemStyle
		if i == selectedIndex {
			prefix = "▸ "
			style = tuistyles.SelectedItemStyle
		}
		rendered[i] = style.Render(prefix + card.RenderCompact())
	}
	return strings.Join(rendered, "\n")
}
