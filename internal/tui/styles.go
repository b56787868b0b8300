package tui

import "github.com/rgehrsitz/evtco/internal/tui/tuistyles"

// Re-export styles from tuistyles to avoid import cycles
var (
	TitleStyle          = tuistyles.TitleStyle
	SubtitleStyle       = tuistyles.SubtitleStyle
	StatusBarStyle      = tuistyles.StatusBarStyle
	StatusKeyStyle      = tuistyles.StatusKeyStyle
	BorderStyle         = tuistyles.BorderStyle
	ActiveBorderStyle   = tuistyles.ActiveBorderStyle
	ErrorStyle          = tuistyles.ErrorStyle
	TableHighlightStyle = tuistyles.TableHighlightStyle
)

// FormatCurrency renders a whole-euro amount with locale grouping
var FormatCurrency = tuistyles.FormatCurrency
