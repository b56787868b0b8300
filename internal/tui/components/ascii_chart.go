package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/evtco/internal/domain"
	"github.com/rgehrsitz/evtco/internal/tui/tuistyles"
)

// DataSeries represents a single line in a chart
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// ASCIIChart displays a simple line chart
type ASCIIChart struct {
	Title      string
	Series     []*DataSeries
	Labels     []string // X-axis labels, one per point
	Width      int
	Height     int
	ShowLegend bool
	XAxisLabel string
}

// NewASCIIChart creates a new ASCII chart
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{
		Title:      title,
		Width:      60,
		Height:     15,
		ShowLegend: true,
	}
}

// NewCostChart plots the cumulative cost of both offers. Only the start
// point and the year-end months are used so that long horizons stay
// readable.
func NewCostChart(points []domain.ChartDataPoint) *ASCIIChart {
	var vibe, ice []float64
	var labels []string
	for _, p := range points {
		if p.Month != 0 && p.Month%12 != 0 {
			continue
		}
		vibe = append(vibe, p.VibeAboCumulative.InexactFloat64())
		ice = append(ice, p.IceLeasingCumulative.InexactFloat64())
		if p.Month == 0 {
			labels = append(labels, "0")
		} else {
			labels = append(labels, fmt.Sprintf("Y%d", p.Year))
		}
	}

	c := NewASCIIChart("Cumulative cost")
	c.XAxisLabel = "years"
	if len(vibe) == 0 {
		return c
	}
	return c.
		AddSeries("VIBE subscription", vibe, tuistyles.ColorVibeAbo).
		AddSeries("Combustion lease", ice, tuistyles.ColorIceLeasing).
		WithLabels(labels)
}

// AddSeries adds a data series to the chart
func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.Color) *ASCIIChart {
	c.Series = append(c.Series, &DataSeries{
		Name:   name,
		Points: points,
		Color:  color,
	})
	return c
}

// WithLabels sets the X-axis labels
func (c *ASCIIChart) WithLabels(labels []string) *ASCIIChart {
	c.Labels = labels
	return c
}

// WithSize sets the chart dimensions
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = width
	c.Height = height
	return c
}

// Render returns the styled chart
func (c *ASCIIChart) Render() string {
	if len(c.Series) == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var content strings.Builder

	if c.Title != "" {
		titleStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(tuistyles.ColorPrimary)
		content.WriteString(titleStyle.Render(c.Title))
		content.WriteString("\n\n")
	}

	lo, hi := c.bounds()
	content.WriteString(c.renderGrid(lo, hi))

	if c.XAxisLabel != "" {
		content.WriteString("\n")
		labelStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorMuted).
			Italic(true)
		content.WriteString(labelStyle.Render(c.XAxisLabel))
	}

	if c.ShowLegend && len(c.Series) > 1 {
		content.WriteString("\n\n")
		content.WriteString(c.renderLegend())
	}

	return content.String()
}

// bounds finds the min and max values across all series with 10% padding.
// Cost charts start at zero.
func (c *ASCIIChart) bounds() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range c.Series {
		for _, v := range s.Points {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 0) {
		return 0, 1
	}
	if lo > 0 {
		lo = 0
	}
	if hi == lo {
		hi = lo + 1
	}
	hi += (hi - lo) * 0.1
	return lo, hi
}

// cell maps a point to grid coordinates
func (c *ASCIIChart) cell(i, n int, v, lo, hi float64, chartWidth int) (int, int) {
	x := 0
	if n > 1 {
		x = int(float64(i) / float64(n-1) * float64(chartWidth-1))
	}
	y := c.Height - 1 - int((v-lo)/(hi-lo)*float64(c.Height-1))
	return x, y
}

// renderGrid renders the chart grid with data points
func (c *ASCIIChart) renderGrid(lo, hi float64) string {
	yAxisWidth := 10
	chartWidth := max(c.Width-yAxisWidth, 2)

	grid := make([][]rune, c.Height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", chartWidth))
	}

	for idx, s := range c.Series {
		char := seriesChar(idx)
		n := len(s.Points)
		for i, v := range s.Points {
			x, y := c.cell(i, n, v, lo, hi, chartWidth)
			if i > 0 {
				px, py := c.cell(i-1, n, s.Points[i-1], lo, hi, chartWidth)
				drawLine(grid, px, py, x, y, char)
			}
			if y >= 0 && y < c.Height && x >= 0 && x < chartWidth {
				grid[y][x] = char
			}
		}
	}

	var out strings.Builder
	axisStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorMuted).
		Width(yAxisWidth).
		Align(lipgloss.Right)

	for i, row := range grid {
		v := hi - float64(i)/float64(max(c.Height-1, 1))*(hi-lo)
		out.WriteString(axisStyle.Render(FormatChartValue(v)))
		out.WriteString(" │ ")
		out.WriteString(string(row))
		out.WriteString("\n")
	}

	out.WriteString(strings.Repeat(" ", yAxisWidth))
	out.WriteString(" └")
	out.WriteString(strings.Repeat("─", chartWidth+1))
	out.WriteString("\n")

	if len(c.Labels) > 0 {
		out.WriteString(c.renderXAxisLabels(yAxisWidth, chartWidth))
	}

	return out.String()
}

// seriesChar returns the character to use for a series
func seriesChar(index int) rune {
	chars := []rune{'●', '■', '▲', '♦'}
	return chars[index%len(chars)]
}

// drawLine connects two points using Bresenham's algorithm. Cells already
// holding a point are left alone.
func drawLine(grid [][]rune, x0, y0, x1, y1 int, char rune) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)

	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}

	err := dx - dy
	x, y := x0, y0
	for {
		if y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y]) && grid[y][x] == ' ' {
			grid[y][x] = '·'
		}
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// renderXAxisLabels places each label under its column, skipping labels
// that would overlap the previous one
func (c *ASCIIChart) renderXAxisLabels(yAxisWidth, chartWidth int) string {
	row := []rune(strings.Repeat(" ", chartWidth+8))
	next := 0
	n := len(c.Labels)
	for i, label := range c.Labels {
		x := 0
		if n > 1 {
			x = int(float64(i) / float64(n-1) * float64(chartWidth-1))
		}
		if x < next || x+len(label) > len(row) {
			continue
		}
		copy(row[x:], []rune(label))
		next = x + len(label) + 1
	}

	labelStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	return strings.Repeat(" ", yAxisWidth+3) + labelStyle.Render(strings.TrimRight(string(row), " "))
}

// renderLegend renders the chart legend
func (c *ASCIIChart) renderLegend() string {
	items := make([]string, 0, len(c.Series))
	for i, s := range c.Series {
		symbol := lipgloss.NewStyle().Foreground(s.Color).Render(string(seriesChar(i)))
		name := lipgloss.NewStyle().Foreground(tuistyles.ColorForeground).Render(s.Name)
		items = append(items, fmt.Sprintf("%s %s", symbol, name))
	}

	legendStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	return legendStyle.Render("Legend: " + strings.Join(items, " • "))
}

// FormatChartValue formats a Y-axis euro value
func FormatChartValue(value float64) string {
	switch {
	case math.Abs(value) >= 1000000:
		return fmt.Sprintf("%.1fM €", value/1000000)
	case math.Abs(value) >= 1000:
		return fmt.Sprintf("%.0fk €", value/1000)
	}
	return fmt.Sprintf("%.0f €", value)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
