package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/evtco/internal/domain"
	"github.com/rgehrsitz/evtco/internal/refdata"
	"github.com/rgehrsitz/evtco/internal/tui/components"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderLoading()
	}
	if m.err != nil {
		return m.renderError()
	}

	var content string
	switch m.currentScene {
	case SceneDashboard:
		content = m.renderDashboard()
	case SceneParameters:
		content = m.parametersModel.View()
	case SceneBreakdown:
		content = m.breakdownModel.View()
	case SceneVehicles:
		content = m.vehiclesModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	contentHeight := max(m.height-4, 0) // title (2) + status (1) + padding (1)
	container := lipgloss.NewStyle().
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		container,
		m.renderStatusBar(),
	)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("evtco · VIBE subscription vs. combustion lease")

	crumb := m.currentScene.String()
	if m.ev.ID != "" && m.ice.ID != "" {
		crumb = fmt.Sprintf("%s / %s vs %s", crumb, vehicleName(m.ev), vehicleName(m.ice))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(crumb))
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("d", "dashboard"),
		formatShortcut("p", "parameters"),
		formatShortcut("b", "breakdown"),
		formatShortcut("v", "vehicles"),
		formatShortcut("?", "help"),
		formatShortcut("q", "quit"),
	}
	text := strings.Join(shortcuts, " • ")

	if m.status != "" {
		gap := max(m.width-lipgloss.Width(text)-lipgloss.Width(m.status)-4, 1)
		text += strings.Repeat(" ", gap) + SubtitleStyle.Render(m.status)
	}

	return StatusBarStyle.Width(m.width).Render(text)
}

func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

func (m Model) renderLoading() string {
	msg := m.loadingMessage
	if msg == "" {
		msg = "Loading..."
	}
	return m.renderApp(BorderStyle.Render("⠋ " + msg))
}

func (m Model) renderError() string {
	return m.renderApp(ErrorStyle.Render(
		fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err.Error())))
}

// renderDashboard shows the headline figures, the recommendation and the
// cumulative cost chart
func (m Model) renderDashboard() string {
	r := m.result
	if r == nil {
		return BorderStyle.Render("No comparison yet.\n\nPick a vehicle pair with v.")
	}

	subscriptionWins := r.Recommendation == domain.RecommendVibeAbo
	cards := []*components.MetricCard{
		components.NewMoneyCard("VIBE subscription", r.VibeAbo.TotalCostOfOwnership).
			WithDescription(FormatCurrency(r.VibeAbo.CostPerMonth) + " per month").
			WithHighlight(subscriptionWins),
		components.NewMoneyCard("Combustion lease", r.IceLeasing.TotalCostOfOwnership).
			WithDescription(FormatCurrency(r.IceLeasing.CostPerMonth) + " per month").
			WithHighlight(!subscriptionWins),
		components.NewMoneyCard("Savings", r.SavingsTotal).
			WithSavings(r.SavingsPerMonth, " per month"),
		components.NewMetricCard("Break-even", breakEvenLabel(r.BreakEvenMonth)).
			WithDescription(fmt.Sprintf("%s kg CO2 saved", r.CO2Savings.StringFixed(0))),
	}

	chartWidth := min(max(m.width-6, 40), 100)
	chart := components.NewCostChart(m.chart).WithSize(chartWidth, 12)

	return lipgloss.JoinVertical(lipgloss.Left,
		components.MetricGrid(cards, 4),
		"",
		m.renderRecommendation(r),
		"",
		m.renderInputs(),
		"",
		chart.Render(),
	)
}

func (m Model) renderRecommendation(r *domain.ComparisonResult) string {
	label := "Combustion lease"
	if r.Recommendation == domain.RecommendVibeAbo {
		label = "VIBE subscription"
	}
	return ActiveBorderStyle.Render(
		TableHighlightStyle.Render("Recommendation: "+label) + "\n" + r.RecommendationText)
}

// renderInputs lists the slider values the comparison was run with
func (m Model) renderInputs() string {
	var parts []string
	for _, key := range []string{
		refdata.SliderAnnualMileage,
		refdata.SliderHoldingPeriod,
		refdata.SliderElectricityPrice,
		refdata.SliderFuelPrice,
	} {
		if s, ok := m.parametersModel.Slider(key); ok {
			parts = append(parts, s.RenderCompact())
		}
	}
	if k := m.parametersModel.PresetKey(); k != "" {
		preset, _ := refdata.ChargingPresetByKey(k)
		parts = append(parts, "Charging: "+preset.Title)
	}
	return strings.Join(parts, "  │  ")
}

func (m Model) renderHelp() string {
	help := `
evtco - VIBE subscription vs. combustion lease

KEYBOARD SHORTCUTS:
  d        Dashboard with chart and recommendation
  p        Adjust mileage, holding period, prices and charging
  b        Cost breakdown by category and year
  v        Pick the subscription EV and the leased car
  ?        Show this help
  ESC      Go back
  q/Ctrl+C Quit

PARAMETERS:
  ↑/↓      Select a slider
  ←/→      Adjust the value, the comparison updates at once
  r        Reset to the loaded profile
  Ctrl+S   Save the profile as YAML

VEHICLES:
  Tab      Switch between the subscription and lease lists
  Enter    Compare the selected pair
`
	return BorderStyle.Render(help)
}

func breakEvenLabel(month int) string {
	if month <= 0 {
		return "never"
	}
	return fmt.Sprintf("month %d", month)
}

func vehicleName(v domain.Vehicle) string {
	if v.Name != "" {
		return v.Name
	}
	return v.ID
}
