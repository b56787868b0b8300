package domain

import (
	"github.com/shopspring/decimal"
)

// SensitivityParameter represents a profile input to sweep
type SensitivityParameter struct {
	Name        string          `yaml:"name" json:"name"`
	MinValue    decimal.Decimal `yaml:"min_value" json:"minValue"`
	MaxValue    decimal.Decimal `yaml:"max_value" json:"maxValue"`
	Steps       int             `yaml:"steps" json:"steps"`
	BaseValue   decimal.Decimal `yaml:"base_value" json:"baseValue"`
	Unit        string          `yaml:"unit" json:"unit"` // "km/year", "years", "€/l", "€/kWh"
	Description string          `yaml:"description" json:"description"`
}

// SensitivityPoint is the comparison outcome at one grid value
type SensitivityPoint struct {
	Value           decimal.Decimal `json:"value"`
	VibeAboTCO      decimal.Decimal `json:"vibeAboTCO"`
	IceLeasingTCO   decimal.Decimal `json:"iceLeasingTCO"`
	SavingsTotal    decimal.Decimal `json:"savingsTotal"`
	SavingsPerMonth decimal.Decimal `json:"savingsPerMonth"`
	Recommendation  Recommendation  `json:"recommendation"`
	BreakEvenMonth  int             `json:"breakEvenMonth"`
}

// SensitivitySummary condenses the savings over a sweep
type SensitivitySummary struct {
	MinSavings    decimal.Decimal `json:"minSavings"`
	MaxSavings    decimal.Decimal `json:"maxSavings"`
	MeanSavings   decimal.Decimal `json:"meanSavings"`
	StdDevSavings decimal.Decimal `json:"stdDevSavings"`
	// Number of adjacent grid points where the recommendation flips
	RecommendationChanges int `json:"recommendationChanges"`
	// Share of grid points recommending the subscription, 0 to 1
	VibeAboShare decimal.Decimal `json:"vibeAboShare"`
}

// ParameterSensitivityAnalysis is a complete single-parameter sweep
type ParameterSensitivityAnalysis struct {
	Parameter SensitivityParameter `json:"parameter"`
	Points    []SensitivityPoint   `json:"points"`
	Summary   SensitivitySummary   `json:"summary"`
}

// MultiSensitivityAnalysis collects several sweeps of the same vehicle pair
type MultiSensitivityAnalysis struct {
	Analyses               []ParameterSensitivityAnalysis `json:"analyses"`
	MostSensitiveParameter string                         `json:"mostSensitiveParameter"`
	SensitivityScores      map[string]decimal.Decimal     `json:"sensitivityScores"` // savings spread per parameter
	Recommendations        []string                       `json:"recommendations"`
}
