package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/evtco/internal/calculation"
	"github.com/rgehrsitz/evtco/internal/compare"
	"github.com/rgehrsitz/evtco/internal/refdata"
	"github.com/rgehrsitz/evtco/internal/tui/tuimsg"
	"github.com/rgehrsitz/evtco/internal/tui/tuistyles"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.parametersModel.SetSize(msg.Width, msg.Height)
		m.vehiclesModel.SetSize(msg.Width, msg.Height)
		m.breakdownModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		if msg.Scene != m.currentScene {
			m.previousScene = m.currentScene
			m.currentScene = msg.Scene
		}
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case DataLoadedMsg:
		m.loading = false
		m.savedProfile = msg.Profile
		m.profile = msg.Profile
		m.assumptions = msg.Assumptions
		m.catalog = msg.Catalog
		m.ev, m.ice = msg.EV, msg.ICE

		engine := calculation.NewCalculationEngineWithAssumptions(msg.Assumptions)
		engine.SetLogger(m.opts.Logger)
		m.comparator = compare.NewComparator(engine)
		tuistyles.SetLocale(msg.Assumptions.Locale)

		m.parametersModel.SetProfile(m.profile)
		m.vehiclesModel.SetCatalog(msg.Catalog)
		m.vehiclesModel.SetPair(m.ev.ID, m.ice.ID)
		return m, m.recompute()

	case ComparisonCompleteMsg:
		if msg.Err != nil {
			m.err = msg.Err
			m.result = nil
			m.chart = nil
		} else {
			m.result = msg.Result
			m.chart = compare.GenerateChartData(msg.Result)
		}
		m.breakdownModel.SetResult(m.result)
		return m, nil

	case tuimsg.ParameterChangedMsg:
		p, err := applyParameter(m.profile, msg.Key, msg.Value)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.profile = p
		return m, m.recompute()

	case tuimsg.ChargingPresetChangedMsg:
		preset, ok := refdata.ChargingPresetByKey(msg.Key)
		if !ok {
			m.err = fmt.Errorf("unknown charging preset %q", msg.Key)
			return m, nil
		}
		m.profile.ChargingScenario = preset.Scenario
		return m, m.recompute()

	case tuimsg.ParametersResetMsg:
		m.profile = m.savedProfile
		m.profile.EVVehicleID, m.profile.ICEVehicleID = m.ev.ID, m.ice.ID
		m.parametersModel.SetProfile(m.profile)
		m.parametersModel.MarkSaved()
		m.status = "Parameters reset"
		return m, m.recompute()

	case tuimsg.SaveProfileMsg:
		path := m.opts.ProfilePath
		if path == "" {
			path = DefaultProfilePath
		}
		return m, saveProfileCmd(m.profile, path)

	case ProfileSavedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.savedProfile = m.profile
		m.parametersModel.MarkSaved()
		m.status = "Saved to " + msg.Path
		return m, nil

	case tuimsg.VehiclesSelectedMsg:
		return m.selectVehicles(msg.EVID, msg.ICEID)
	}

	return m.updateCurrentScene(msg)
}

// recompute returns the command for a fresh comparison, nil before load
func (m Model) recompute() tea.Cmd {
	if m.comparator == nil {
		return nil
	}
	return compareCmd(m.comparator, m.ev, m.ice, m.profile)
}

func (m Model) selectVehicles(evID, iceID string) (tea.Model, tea.Cmd) {
	if m.catalog == nil {
		return m, nil
	}
	ev, ok := m.catalog.Find(evID)
	if !ok {
		m.err = fmt.Errorf("vehicle not found in catalog: %s", evID)
		return m, nil
	}
	ice, ok := m.catalog.Find(iceID)
	if !ok {
		m.err = fmt.Errorf("vehicle not found in catalog: %s", iceID)
		return m, nil
	}

	m.ev, m.ice = ev, ice
	m.profile.EVVehicleID, m.profile.ICEVehicleID = ev.ID, ice.ID
	m.vehiclesModel.SetPair(ev.ID, ice.ID)
	m.previousScene = m.currentScene
	m.currentScene = SceneDashboard
	return m, m.recompute()
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// any key dismisses an error
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		return m, navigate(SceneHelp)
	case "esc":
		if m.currentScene != SceneDashboard {
			target := m.previousScene
			if target == m.currentScene {
				target = SceneDashboard
			}
			return m, navigate(target)
		}
		return m, nil
	case "d":
		return m, navigate(SceneDashboard)
	case "p":
		return m, navigate(SceneParameters)
	case "b":
		return m, navigate(SceneBreakdown)
	case "v":
		return m, navigate(SceneVehicles)
	}

	return m.updateCurrentScene(msg)
}

func navigate(s Scene) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Scene: s} }
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneParameters:
		m.parametersModel, cmd = m.parametersModel.Update(msg)
	case SceneVehicles:
		m.vehiclesModel, cmd = m.vehiclesModel.Update(msg)
	case SceneBreakdown:
		m.breakdownModel, cmd = m.breakdownModel.Update(msg)
	}
	return m, cmd
}
