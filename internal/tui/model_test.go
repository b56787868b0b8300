package tui

import (
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/evtco/internal/config"
	"github.com/rgehrsitz/evtco/internal/domain"
	"github.com/rgehrsitz/evtco/internal/refdata"
	"github.com/rgehrsitz/evtco/internal/tui/tuimsg"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// step feeds msg to the model and then runs the returned command once,
// feeding its message back in as well
func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	if cmd != nil {
		if follow := cmd(); follow != nil {
			next, _ = m.Update(follow)
			m = next.(Model)
		}
	}
	return m
}

func loadedModel(t *testing.T) Model {
	t.Helper()
	m := NewModel(Options{EVID: "vw-id3-pro", ICEID: "vw-golf-15-tsi"})
	assert.True(t, m.loading)

	msg := m.Init()()
	data, ok := msg.(DataLoadedMsg)
	require.True(t, ok, "expected DataLoadedMsg, got %T", msg)

	m = step(t, m, data)
	require.NoError(t, m.err)
	require.NotNil(t, m.Result())
	return m
}

func TestModel_LoadAndCompare(t *testing.T) {
	m := loadedModel(t)

	assert.False(t, m.loading)
	assert.Equal(t, "vw-id3-pro", m.ev.ID)
	assert.Equal(t, "vw-golf-15-tsi", m.ice.ID)
	assert.Equal(t, domain.RecommendVibeAbo, m.Result().Recommendation)
	assert.Len(t, m.chart, m.Profile().Months()+1)

	out := m.View()
	assert.Contains(t, out, "Recommendation: VIBE subscription")
	assert.Contains(t, out, "Cumulative cost")
	assert.Contains(t, out, "VW ID.3 Pro vs VW Golf 1.5 TSI")
}

func TestModel_LoadError(t *testing.T) {
	m := NewModel(Options{EVID: "missing", ICEID: "vw-golf-15-tsi"})
	m = step(t, m, m.Init()())

	require.Error(t, m.err)
	assert.True(t, errors.Is(m.err, config.ErrVehicleNotFound))
	assert.Contains(t, m.View(), "Press any key to continue")

	m = step(t, m, runeKey('x'))
	assert.NoError(t, m.err, "Any key should dismiss the error")
}

func TestModel_ParameterChangeRecomputes(t *testing.T) {
	m := loadedModel(t)
	before := m.Result().SavingsTotal

	m = step(t, m, tuimsg.ParameterChangedMsg{Key: refdata.SliderAnnualMileage, Value: decimal.NewFromInt(30000)})
	assert.True(t, m.Profile().AnnualMileage.Equal(decimal.NewFromInt(30000)))
	assert.True(t, m.Result().SavingsTotal.GreaterThan(before), "More kilometres should favour the subscription")

	m = step(t, m, tuimsg.ParameterChangedMsg{Key: refdata.SliderHoldingPeriod, Value: decimal.NewFromInt(3)})
	assert.Equal(t, 3, m.Profile().HoldingPeriodYears)
	assert.Len(t, m.chart, 37)

	m = step(t, m, tuimsg.ChargingPresetChangedMsg{Key: "publicOnly"})
	preset, _ := refdata.ChargingPresetByKey("publicOnly")
	assert.Equal(t, preset.Scenario, m.Profile().ChargingScenario)

	m = step(t, m, tuimsg.ParametersResetMsg{})
	assert.True(t, m.Profile().AnnualMileage.Equal(decimal.NewFromInt(15000)))
	assert.True(t, m.Result().SavingsTotal.Equal(before))
	assert.Equal(t, "Parameters reset", m.status)
}

func TestModel_SliderKeysDriveComparison(t *testing.T) {
	m := loadedModel(t)
	m = step(t, m, runeKey('p'))
	require.Equal(t, SceneParameters, m.currentScene)

	m = step(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.True(t, m.Profile().AnnualMileage.Equal(decimal.NewFromInt(16000)))
	assert.Contains(t, m.View(), "Modified")
}

func TestApplyParameter(t *testing.T) {
	p := refdata.DefaultProfile()

	p, err := applyParameter(p, refdata.SliderElectricityPrice, decimal.RequireFromString("0.40"))
	require.NoError(t, err)
	assert.True(t, p.ElectricityPrice.Equal(decimal.RequireFromString("0.40")))
	assert.True(t, p.HomeChargingPrice.Equal(decimal.RequireFromString("0.40")))

	p, err = applyParameter(p, refdata.SliderFuelPrice, decimal.RequireFromString("1.95"))
	require.NoError(t, err)
	assert.True(t, p.FuelPrice.Equal(decimal.RequireFromString("1.95")))

	_, err = applyParameter(p, "tyrePressure", decimal.NewFromInt(2))
	assert.Error(t, err)
}

func TestModel_SelectVehicles(t *testing.T) {
	m := loadedModel(t)
	m.currentScene = SceneVehicles

	m = step(t, m, tuimsg.VehiclesSelectedMsg{EVID: "tesla-model-3-rwd", ICEID: "bmw-320d"})
	assert.Equal(t, SceneDashboard, m.currentScene)
	assert.Equal(t, "tesla-model-3-rwd", m.ev.ID)
	assert.Equal(t, "bmw-320d", m.Profile().ICEVehicleID)
	require.NotNil(t, m.Result())
	assert.Equal(t, "Tesla Model 3 RWD", m.Result().VibeAbo.VehicleName)

	m = step(t, m, tuimsg.VehiclesSelectedMsg{EVID: "nope", ICEID: "bmw-320d"})
	assert.Error(t, m.err)
}

func TestModel_UncomparablePair(t *testing.T) {
	m := loadedModel(t)
	m = step(t, m, tuimsg.VehiclesSelectedMsg{EVID: "renault-zoe-r135", ICEID: "vw-golf-15-tsi"})

	require.Error(t, m.err)
	assert.Contains(t, m.err.Error(), "cannot compare")
	assert.Nil(t, m.Result())
}

func TestModel_SaveProfile(t *testing.T) {
	m := loadedModel(t)
	path := filepath.Join(t.TempDir(), "saved.yaml")
	m.opts.ProfilePath = path

	m = step(t, m, tuimsg.ParameterChangedMsg{Key: refdata.SliderAnnualMileage, Value: decimal.NewFromInt(22000)})
	m = step(t, m, tuimsg.SaveProfileMsg{})
	require.NoError(t, m.err)
	assert.Equal(t, "Saved to "+path, m.status)

	saved, err := config.NewInputParser().LoadProfile(path)
	require.NoError(t, err)
	assert.True(t, saved.AnnualMileage.Equal(decimal.NewFromInt(22000)))
}

func TestModel_Navigation(t *testing.T) {
	m := loadedModel(t)

	for _, tc := range []struct {
		key   rune
		scene Scene
		text  string
	}{
		{'p', SceneParameters, "Annual mileage"},
		{'b', SceneBreakdown, "Cost categories"},
		{'v', SceneVehicles, "Subscription (EV)"},
		{'?', SceneHelp, "KEYBOARD SHORTCUTS"},
		{'d', SceneDashboard, "Recommendation"},
	} {
		m = step(t, m, runeKey(tc.key))
		assert.Equal(t, tc.scene, m.currentScene, "key %q", tc.key)
		assert.Contains(t, m.View(), tc.text)
	}

	m = step(t, m, runeKey('b'))
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, SceneDashboard, m.currentScene)

	_, cmd := m.Update(runeKey('q'))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_WindowSize(t *testing.T) {
	m := loadedModel(t)
	m = step(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
}

func TestSceneString(t *testing.T) {
	assert.Equal(t, "Dashboard", SceneDashboard.String())
	assert.Equal(t, "Vehicles", SceneVehicles.String())
	assert.Equal(t, "Unknown", Scene(99).String())
}
