package tui

import (
	"github.com/rgehrsitz/evtco/internal/domain"
	"github.com/rgehrsitz/evtco/internal/refdata"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneDashboard Scene = iota
	SceneParameters
	SceneBreakdown
	SceneVehicles
	SceneHelp
)

// Message types for the Bubble Tea update cycle

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// DataLoadedMsg carries everything read from disk at startup
type DataLoadedMsg struct {
	Profile     domain.UserProfile
	Assumptions *domain.Assumptions
	Catalog     *refdata.Catalog
	EV          domain.Vehicle
	ICE         domain.Vehicle
}

// ComparisonCompleteMsg carries a fresh comparison. Result is nil when the
// pair cannot be compared.
type ComparisonCompleteMsg struct {
	Result *domain.ComparisonResult
	Err    error
}

// ProfileSavedMsg reports the outcome of writing the profile
type ProfileSavedMsg struct {
	Path string
	Err  error
}
