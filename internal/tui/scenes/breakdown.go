package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/evtco/internal/compare"
	"github.com/rgehrsitz/evtco/internal/domain"
	"github.com/rgehrsitz/evtco/internal/tui/components"
	"github.com/rgehrsitz/evtco/internal/tui/tuistyles"
)

// BreakdownModel shows where the money goes for both offers
type BreakdownModel struct {
	result *domain.ComparisonResult
	width  int
	height int
}

// NewBreakdownModel creates a new breakdown scene model
func NewBreakdownModel() *BreakdownModel {
	return &BreakdownModel{}
}

// SetResult updates the comparison to display
func (m *BreakdownModel) SetResult(result *domain.ComparisonResult) {
	m.result = result
}

// SetSize updates the scene dimensions
func (m *BreakdownModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the breakdown scene. The scene is read-only.
func (m *BreakdownModel) Update(msg tea.Msg) (*BreakdownModel, tea.Cmd) {
	return m, nil
}

// View renders the breakdown scene
func (m *BreakdownModel) View() string {
	if m.result == nil {
		return tuistyles.BorderStyle.Render("No comparison to display.\n\nPick a subscription and a lease offer on the Vehicles screen.")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		renderKeyMetrics(m.result),
		"",
		renderCategoryTable(compare.GenerateCostBreakdown(m.result)),
		"",
		renderYearTable(m.result),
	)
}

func renderKeyMetrics(r *domain.ComparisonResult) string {
	cards := []*components.MetricCard{
		components.NewMetricCard("Cost per km",
			fmt.Sprintf("%s € / %s €", r.VibeAbo.CostPerKm.StringFixed(2), r.IceLeasing.CostPerKm.StringFixed(2))).
			WithDescription("subscription / lease"),
		components.NewMoneyCard("Savings per year", r.SavingsPerYear).
			WithSavings(r.SavingsPerMonth, " per month"),
		components.NewMetricCard("CO2 saved", r.CO2Savings.StringFixed(0)+" kg").
			WithDescription(fmt.Sprintf("= %s trees for a year", r.CO2SavingsEquivalent.Trees.StringFixed(0))),
	}
	return components.MetricGrid(cards, 3)
}

func renderCategoryTable(rows []domain.CostBreakdown) string {
	var content strings.Builder
	content.WriteString(tuistyles.TitleStyle.Render("Cost categories"))
	content.WriteString("\n\n")
	content.WriteString(tuistyles.TableHeaderStyle.Render(
		fmt.Sprintf("%-26s %14s %14s %14s", "Category", "Subscription", "Lease", "Savings")))
	content.WriteString("\n")
	content.WriteString(strings.Repeat("─", 71))
	content.WriteString("\n")

	for _, b := range rows {
		line := fmt.Sprintf("%-26s %14s %14s ", b.Category,
			tuistyles.FormatCurrency(b.VibeAbo), tuistyles.FormatCurrency(b.IceLeasing))
		savings := fmt.Sprintf("%14s", tuistyles.FormatCurrency(b.Savings))
		content.WriteString(tuistyles.TableCellStyle.Render(line))
		content.WriteString(tuistyles.MetricTrendStyle(!b.Savings.IsNegative()).Render(savings))
		content.WriteString("\n")
	}

	return tuistyles.BorderStyle.Render(strings.TrimRight(content.String(), "\n"))
}

func renderYearTable(r *domain.ComparisonResult) string {
	var content strings.Builder
	content.WriteString(tuistyles.TitleStyle.Render("Year by year"))
	content.WriteString("\n\n")
	content.WriteString(tuistyles.TableHeaderStyle.Render(
		fmt.Sprintf("%-6s %16s %16s %16s", "Year", "Subscription", "Lease", "Cumulative Δ")))
	content.WriteString("\n")
	content.WriteString(strings.Repeat("─", 57))
	content.WriteString("\n")

	years := min(len(r.VibeAbo.YearlyCosts), len(r.IceLeasing.YearlyCosts))
	for i := 0; i < years; i++ {
		v, l := r.VibeAbo.YearlyCosts[i], r.IceLeasing.YearlyCosts[i]
		delta := l.CumulativeCost.Sub(v.CumulativeCost)
		content.WriteString(fmt.Sprintf("%-6d %16s %16s ", v.CalendarYear,
			tuistyles.FormatCurrency(v.NetRunningCost), tuistyles.FormatCurrency(l.NetRunningCost)))
		content.WriteString(tuistyles.MetricTrendStyle(!delta.IsNegative()).Render(
			fmt.Sprintf("%16s", tuistyles.FormatCurrency(delta))))
		content.WriteString("\n")
	}

	return tuistyles.BorderStyle.Render(strings.TrimRight(content.String(), "\n"))
}
