package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/evtco/internal/refdata"
	"github.com/rgehrsitz/evtco/internal/tui/tuistyles"
)

// ParameterSlider displays an adjustable profile input with a visual bar.
// Values stay decimals so that stepping never drifts off the grid.
type ParameterSlider struct {
	Key         string
	Label       string
	Value       decimal.Decimal
	Range       refdata.SliderRange
	Unit        string // e.g. " km", " €/kWh"
	Places      int32  // decimal places shown
	Width       int
	IsFocused   bool
	Description string
}

// NewParameterSlider creates a slider for one of the refdata slider keys.
// The initial value is clamped into the range.
func NewParameterSlider(key, label string, value decimal.Decimal, r refdata.SliderRange) *ParameterSlider {
	return &ParameterSlider{
		Key:   key,
		Label: label,
		Value: r.Clamp(value),
		Range: r,
		Width: 30,
	}
}

// WithUnit sets the unit suffix
func (p *ParameterSlider) WithUnit(unit string) *ParameterSlider {
	p.Unit = unit
	return p
}

// WithPlaces sets the number of decimal places shown
func (p *ParameterSlider) WithPlaces(places int32) *ParameterSlider {
	p.Places = places
	return p
}

// WithWidth sets the slider width
func (p *ParameterSlider) WithWidth(width int) *ParameterSlider {
	p.Width = width
	return p
}

// SetFocused sets the focus state
func (p *ParameterSlider) SetFocused(focused bool) *ParameterSlider {
	p.IsFocused = focused
	return p
}

// WithDescription adds a help line
func (p *ParameterSlider) WithDescription(desc string) *ParameterSlider {
	p.Description = desc
	return p
}

// Increment moves one step up. It reports whether the value changed.
func (p *ParameterSlider) Increment() bool {
	next := p.Value.Add(p.Range.Step)
	if next.GreaterThan(p.Range.Max) {
		return false
	}
	p.Value = next
	return true
}

// Decrement moves one step down. It reports whether the value changed.
func (p *ParameterSlider) Decrement() bool {
	next := p.Value.Sub(p.Range.Step)
	if next.LessThan(p.Range.Min) {
		return false
	}
	p.Value = next
	return true
}

// SetValue sets the value directly, clamped to the range
func (p *ParameterSlider) SetValue(value decimal.Decimal) {
	p.Value = p.Range.Clamp(value)
}

// Percentage returns the position within the range, 0 to 1
func (p *ParameterSlider) Percentage() float64 {
	span := p.Range.Max.Sub(p.Range.Min)
	if !span.IsPositive() {
		return 0
	}
	return p.Value.Sub(p.Range.Min).Div(span).InexactFloat64()
}

// FormatValue renders a value with the slider's places and unit
func (p *ParameterSlider) FormatValue(d decimal.Decimal) string {
	return d.StringFixed(p.Places) + p.Unit
}

// Render returns the styled parameter slider
func (p *ParameterSlider) Render() string {
	var content strings.Builder

	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}
	content.WriteString(labelStyle.Render(p.Label))
	content.WriteString("  ")
	content.WriteString(valueStyle.Render(p.FormatValue(p.Value)))
	content.WriteString("\n")

	content.WriteString(p.renderSliderBar())

	rangeStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	content.WriteString("\n")
	content.WriteString(rangeStyle.Render(fmt.Sprintf("%s  ─  %s",
		p.FormatValue(p.Range.Min), p.FormatValue(p.Range.Max))))

	if p.Description != "" {
		content.WriteString("\n")
		descStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorMuted).
			Italic(true)
		content.WriteString(descStyle.Render(p.Description))
	}

	return content.String()
}

// renderSliderBar creates the visual slider bar
func (p *ParameterSlider) renderSliderBar() string {
	filled := int(math.Round(float64(p.Width) * p.Percentage()))
	filled = max(0, min(filled, p.Width))
	empty := p.Width - filled

	trackStyle := tuistyles.SliderTrackStyle
	thumbStyle := tuistyles.SliderThumbStyle
	if p.IsFocused {
		thumbStyle = thumbStyle.Foreground(tuistyles.ColorAccent)
	}

	var bar strings.Builder
	bar.WriteString("[")
	if filled > 1 {
		bar.WriteString(thumbStyle.Render(strings.Repeat("━", filled-1)))
	}
	bar.WriteString(thumbStyle.Render("●"))
	if empty > 1 {
		bar.WriteString(trackStyle.Render(strings.Repeat("─", empty-1)))
	}
	bar.WriteString("]")

	return bar.String()
}

// RenderCompact returns a single-line version for the dashboard
func (p *ParameterSlider) RenderCompact() string {
	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}
	return fmt.Sprintf("%s %s", labelStyle.Render(p.Label+":"), valueStyle.Render(p.FormatValue(p.Value)))
}
