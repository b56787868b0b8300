// Package tui is the interactive terminal front end: sliders for the main
// profile inputs, a cumulative cost chart and the cost breakdown.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/evtco/internal/calculation"
	"github.com/rgehrsitz/evtco/internal/compare"
	"github.com/rgehrsitz/evtco/internal/config"
	"github.com/rgehrsitz/evtco/internal/domain"
	"github.com/rgehrsitz/evtco/internal/refdata"
	"github.com/rgehrsitz/evtco/internal/tui/scenes"
)

// DefaultProfilePath is where the profile is saved when none was loaded
const DefaultProfilePath = "profile.yaml"

// Options selects the input files and the initial vehicle pair
type Options struct {
	ProfilePath     string
	AssumptionsPath string
	CatalogPath     string
	EVID            string
	ICEID           string
	// Logger receives engine diagnostics. Nil discards them.
	Logger calculation.Logger
}

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	opts Options

	// Loaded data; savedProfile is what reset returns to
	savedProfile domain.UserProfile
	profile      domain.UserProfile
	assumptions  *domain.Assumptions
	catalog      *refdata.Catalog
	comparator   *compare.Comparator
	ev           domain.Vehicle
	ice          domain.Vehicle

	// Current comparison
	result *domain.ComparisonResult
	chart  []domain.ChartDataPoint

	parametersModel *scenes.ParametersModel
	vehiclesModel   *scenes.VehiclesModel
	breakdownModel  *scenes.BreakdownModel

	status string
	err    error

	loading        bool
	loadingMessage string
}

// NewModel creates a new application model
func NewModel(opts Options) Model {
	return Model{
		currentScene:    SceneDashboard,
		opts:            opts,
		parametersModel: scenes.NewParametersModel(),
		vehiclesModel:   scenes.NewVehiclesModel(),
		breakdownModel:  scenes.NewBreakdownModel(),
		width:           80,
		height:          24,
		loading:         true,
		loadingMessage:  "Loading profile and catalogue...",
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return loadDataCmd(m.opts)
}

// Result returns the current comparison, nil before the first one
func (m Model) Result() *domain.ComparisonResult {
	return m.result
}

// Profile returns the profile as currently adjusted
func (m Model) Profile() domain.UserProfile {
	return m.profile
}

// loadDataCmd reads profile, assumptions and catalogue and resolves the
// vehicle pair
func loadDataCmd(opts Options) tea.Cmd {
	return func() tea.Msg {
		parser := config.NewInputParser()

		profile, err := parser.LoadProfile(opts.ProfilePath)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		assumptions, err := parser.LoadAssumptions(opts.AssumptionsPath)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		catalog, err := parser.LoadCatalog(opts.CatalogPath)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		ev, ice, err := config.ResolveVehicles(catalog, profile, opts.EVID, opts.ICEID)
		if err != nil {
			return ErrorMsg{Err: err}
		}

		return DataLoadedMsg{
			Profile:     profile,
			Assumptions: assumptions,
			Catalog:     catalog,
			EV:          ev,
			ICE:         ice,
		}
	}
}

// compareCmd runs the comparison for the current pair and profile
func compareCmd(c *compare.Comparator, ev, ice domain.Vehicle, p domain.UserProfile) tea.Cmd {
	return func() tea.Msg {
		result := c.Compare(ev, ice, p)
		if result == nil {
			return ComparisonCompleteMsg{
				Err: fmt.Errorf("cannot compare %s with %s: subscription or lease terms missing", ev.ID, ice.ID),
			}
		}
		return ComparisonCompleteMsg{Result: result}
	}
}

// saveProfileCmd writes the profile as YAML
func saveProfileCmd(p domain.UserProfile, path string) tea.Cmd {
	return func() tea.Msg {
		err := config.NewInputParser().SaveProfile(p, path)
		return ProfileSavedMsg{Path: path, Err: err}
	}
}

// applyParameter sets the profile field behind a slider key
func applyParameter(p domain.UserProfile, key string, v decimal.Decimal) (domain.UserProfile, error) {
	switch key {
	case refdata.SliderAnnualMileage:
		p.AnnualMileage = v
	case refdata.SliderHoldingPeriod:
		p.HoldingPeriodYears = int(v.IntPart())
	case refdata.SliderElectricityPrice:
		p = p.WithElectricityPrice(v)
	case refdata.SliderFuelPrice:
		p.FuelPrice = v
	default:
		return p, fmt.Errorf("unknown parameter %q", key)
	}
	return p, nil
}

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneDashboard:
		return "Dashboard"
	case SceneParameters:
		return "Parameters"
	case SceneBreakdown:
		return "Breakdown"
	case SceneVehicles:
		return "Vehicles"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}
