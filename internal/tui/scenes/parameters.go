package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/evtco/internal/domain"
	"github.com/rgehrsitz/evtco/internal/refdata"
	"github.com/rgehrsitz/evtco/internal/tui/components"
	"github.com/rgehrsitz/evtco/internal/tui/tuimsg"
	"github.com/rgehrsitz/evtco/internal/tui/tuistyles"
)

var (
	keyUp    = key.NewBinding(key.WithKeys("up", "k"))
	keyDown  = key.NewBinding(key.WithKeys("down", "j"))
	keyLeft  = key.NewBinding(key.WithKeys("left", "h", "-"))
	keyRight = key.NewBinding(key.WithKeys("right", "l", "+"))
	keyReset = key.NewBinding(key.WithKeys("r"))
	keySave  = key.NewBinding(key.WithKeys("ctrl+s"))
)

// sliderSpec describes how a refdata slider is shown
type sliderSpec struct {
	key         string
	label       string
	unit        string
	places      int32
	description string
	value       func(domain.UserProfile) decimal.Decimal
}

var sliderSpecs = []sliderSpec{
	{refdata.SliderAnnualMileage, "Annual mileage", " km", 0, "Distance driven per year",
		func(p domain.UserProfile) decimal.Decimal { return p.AnnualMileage }},
	{refdata.SliderHoldingPeriod, "Holding period", " years", 0, "How long the car is kept",
		func(p domain.UserProfile) decimal.Decimal { return decimal.NewFromInt(int64(p.HoldingPeriodYears)) }},
	{refdata.SliderElectricityPrice, "Electricity price", " €/kWh", 2, "Household and wallbox price",
		func(p domain.UserProfile) decimal.Decimal { return p.ElectricityPrice }},
	{refdata.SliderFuelPrice, "Fuel price", " €/l", 2, "Pump price in the first year",
		func(p domain.UserProfile) decimal.Decimal { return p.FuelPrice }},
}

// ParametersModel is the scene for adjusting the profile with sliders
// and picking a charging preset
type ParametersModel struct {
	sliders     []*components.ParameterSlider
	presetIndex int // -1 when the profile's charging mix matches no preset
	focused     int // len(sliders) focuses the preset row
	width       int
	height      int
	modified    bool
}

// NewParametersModel creates a new parameters scene model
func NewParametersModel() *ParametersModel {
	return &ParametersModel{presetIndex: -1}
}

// SetProfile rebuilds the sliders from a profile, keeping the focus
func (m *ParametersModel) SetProfile(p domain.UserProfile) {
	m.sliders = m.sliders[:0]
	for _, spec := range sliderSpecs {
		r, ok := refdata.Slider(spec.key)
		if !ok {
			continue
		}
		s := components.NewParameterSlider(spec.key, spec.label, spec.value(p), r).
			WithUnit(spec.unit).
			WithPlaces(spec.places).
			WithWidth(40).
			WithDescription(spec.description)
		m.sliders = append(m.sliders, s)
	}

	m.presetIndex = -1
	for i, k := range refdata.ChargingPresetKeys {
		if preset, ok := refdata.ChargingPresetByKey(k); ok && sameMix(preset.Scenario, p.ChargingScenario) {
			m.presetIndex = i
			break
		}
	}
	m.focused = min(m.focused, len(m.sliders))
	m.syncFocus()
}

// MarkSaved clears the modified flag
func (m *ParametersModel) MarkSaved() {
	m.modified = false
}

// Modified reports whether any value was changed since the last load or save
func (m *ParametersModel) Modified() bool {
	return m.modified
}

// Slider returns the slider for a refdata key
func (m *ParametersModel) Slider(key string) (*components.ParameterSlider, bool) {
	for _, s := range m.sliders {
		if s.Key == key {
			return s, true
		}
	}
	return nil, false
}

// PresetKey returns the selected charging preset, or "" for a custom mix
func (m *ParametersModel) PresetKey() string {
	if m.presetIndex < 0 || m.presetIndex >= len(refdata.ChargingPresetKeys) {
		return ""
	}
	return refdata.ChargingPresetKeys[m.presetIndex]
}

// SetSize updates the scene dimensions
func (m *ParametersModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the parameters scene
func (m *ParametersModel) Update(msg tea.Msg) (*ParametersModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKeyPress(msg)
	}
	return m, nil
}

func (m *ParametersModel) handleKeyPress(msg tea.KeyMsg) (*ParametersModel, tea.Cmd) {
	if len(m.sliders) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, keyUp):
		if m.focused > 0 {
			m.focused--
			m.syncFocus()
		}
	case key.Matches(msg, keyDown):
		if m.focused < len(m.sliders) {
			m.focused++
			m.syncFocus()
		}
	case key.Matches(msg, keyLeft):
		return m, m.adjust(-1)
	case key.Matches(msg, keyRight):
		return m, m.adjust(1)
	case key.Matches(msg, keyReset):
		return m, func() tea.Msg { return tuimsg.ParametersResetMsg{} }
	case key.Matches(msg, keySave):
		return m, func() tea.Msg { return tuimsg.SaveProfileMsg{} }
	}
	return m, nil
}

// adjust moves the focused control one step and emits the change
func (m *ParametersModel) adjust(dir int) tea.Cmd {
	if m.focused == len(m.sliders) {
		n := len(refdata.ChargingPresetKeys)
		m.presetIndex = ((m.presetIndex+dir)%n + n) % n
		m.modified = true
		k := refdata.ChargingPresetKeys[m.presetIndex]
		return func() tea.Msg { return tuimsg.ChargingPresetChangedMsg{Key: k} }
	}

	s := m.sliders[m.focused]
	var changed bool
	if dir > 0 {
		changed = s.Increment()
	} else {
		changed = s.Decrement()
	}
	if !changed {
		return nil
	}
	m.modified = true
	k, v := s.Key, s.Value
	return func() tea.Msg { return tuimsg.ParameterChangedMsg{Key: k, Value: v} }
}

func (m *ParametersModel) syncFocus() {
	for i, s := range m.sliders {
		s.SetFocused(i == m.focused)
	}
}

// View renders the parameters scene
func (m *ParametersModel) View() string {
	if len(m.sliders) == 0 {
		return tuistyles.BorderStyle.Render("No profile loaded.\n\nPress ESC to return.")
	}

	parts := make([]string, 0, len(m.sliders)+3)
	for _, s := range m.sliders {
		parts = append(parts, s.Render())
	}
	parts = append(parts, m.renderPresets())
	parts = append(parts, renderParameterStatus(m.modified))
	parts = append(parts, renderParameterHelp())

	return tuistyles.BorderStyle.Render(strings.Join(parts, "\n\n"))
}

func (m *ParametersModel) renderPresets() string {
	labelStyle := tuistyles.ParameterLabelStyle
	if m.focused == len(m.sliders) {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
	}

	items := make([]string, 0, len(refdata.ChargingPresetKeys))
	desc := "Custom mix from the profile"
	for i, k := range refdata.ChargingPresetKeys {
		preset, _ := refdata.ChargingPresetByKey(k)
		style := tuistyles.UnselectedItemStyle
		if i == m.presetIndex {
			style = tuistyles.SelectedItemStyle
			desc = preset.Description
		}
		items = append(items, style.Render(preset.Title))
	}

	descStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Italic(true)
	return fmt.Sprintf("%s\n%s\n%s",
		labelStyle.Render("Charging"),
		strings.Join(items, "  │  "),
		descStyle.Render(desc))
}

func renderParameterStatus(modified bool) string {
	if modified {
		return lipgloss.NewStyle().Foreground(tuistyles.ColorAccent).Render("● Modified (ctrl+s to save profile)")
	}
	return lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render("○ Unchanged")
}

func renderParameterHelp() string {
	return tuistyles.HelpDescStyle.Render("↑/↓ select • ←/→ adjust • r reset • ctrl+s save • ESC back")
}

func sameMix(a, b domain.ChargingScenario) bool {
	return a.Home.Equal(b.Home) && a.Work.Equal(b.Work) &&
		a.PublicAC.Equal(b.PublicAC) && a.PublicDC.Equal(b.PublicDC)
}
