// Package refdata holds the static reference tables: German average energy
// prices, charging presets, the default profile, UI slider ranges and a
// sample vehicle catalogue.
package refdata

import (
	"sort"

	"github.com/rgehrsitz/evtco/internal/domain"
	"github.com/shopspring/decimal"
)

// ElectricityPrices are per kWh
type ElectricityPrices struct {
	Household decimal.Decimal `json:"household"`
	PublicAC  decimal.Decimal `json:"publicAC"`
	PublicDC  decimal.Decimal `json:"publicDC"`
}

// FuelPrices are per litre
type FuelPrices struct {
	Benzin decimal.Decimal `json:"benzin"`
	Diesel decimal.Decimal `json:"diesel"`
	E10    decimal.Decimal `json:"e10"`
}

// EnergyPrices groups the default electricity and fuel prices (2024 averages)
type EnergyPrices struct {
	Electricity ElectricityPrices `json:"electricity"`
	Fuel        FuelPrices        `json:"fuel"`
}

// DefaultEnergyPrices returns the German average prices
func DefaultEnergyPrices() EnergyPrices {
	return EnergyPrices{
		Electricity: ElectricityPrices{
			Household: decimal.NewFromFloat(0.32),
			PublicAC:  decimal.NewFromFloat(0.45),
			PublicDC:  decimal.NewFromFloat(0.59),
		},
		Fuel: FuelPrices{
			Benzin: decimal.NewFromFloat(1.75),
			Diesel: decimal.NewFromFloat(1.65),
			E10:    decimal.NewFromFloat(1.72),
		},
	}
}

// FuelPrice returns the default price for a fuel type, falling back to benzin
func (e EnergyPrices) FuelPrice(f domain.FuelType) decimal.Decimal {
	switch f {
	case domain.FuelDiesel:
		return e.Fuel.Diesel
	default:
		return e.Fuel.Benzin
	}
}

// ChargingPreset is a named charging scenario
type ChargingPreset struct {
	Key         string
	Title       string
	Description string
	Scenario    domain.ChargingScenario
}

func shares(home, work, ac, dc float64) domain.ChargingScenario {
	return domain.ChargingScenario{
		Home:     decimal.NewFromFloat(home),
		Work:     decimal.NewFromFloat(work),
		PublicAC: decimal.NewFromFloat(ac),
		PublicDC: decimal.NewFromFloat(dc),
	}
}

var chargingPresets = map[string]ChargingPreset{
	"homeOnly": {
		Key:         "homeOnly",
		Title:       "Home only",
		Description: "100% wallbox, ideal for home owners",
		Scenario:    shares(1.0, 0, 0, 0),
	},
	"homePrimary": {
		Key:         "homePrimary",
		Title:       "Mostly at home",
		Description: "70% wallbox, occasional charging on the road",
		Scenario:    shares(0.7, 0.1, 0.15, 0.05),
	},
	"mixed": {
		Key:         "mixed",
		Title:       "Mixed",
		Description: "40% home, 60% public, for tenants or high-mileage drivers",
		Scenario:    shares(0.4, 0.2, 0.25, 0.15),
	},
	"publicOnly": {
		Key:         "publicOnly",
		Title:       "Public only",
		Description: "No wallbox, charging at public stations",
		Scenario:    shares(0, 0.2, 0.5, 0.3),
	},
}

// ChargingPresetKeys lists the presets in display order
var ChargingPresetKeys = []string{"homeOnly", "homePrimary", "mixed", "publicOnly"}

// ChargingPresetByKey looks up a preset
func ChargingPresetByKey(key string) (ChargingPreset, bool) {
	p, ok := chargingPresets[key]
	return p, ok
}

// ChargingPresets returns all presets in display order
func ChargingPresets() []ChargingPreset {
	out := make([]ChargingPreset, 0, len(ChargingPresetKeys))
	for _, k := range ChargingPresetKeys {
		out = append(out, chargingPresets[k])
	}
	return out
}

// DefaultProfile returns the profile a new user starts with
func DefaultProfile() domain.UserProfile {
	prices := DefaultEnergyPrices()
	return domain.UserProfile{
		AnnualMileage:      decimal.NewFromInt(15000),
		HoldingPeriodYears: 5,
		ChargingScenario:   chargingPresets["homePrimary"].Scenario,

		ElectricityPrice:    prices.Electricity.Household,
		HomeChargingPrice:   prices.Electricity.Household,
		PublicChargingPrice: prices.Electricity.PublicAC,
		FuelPrice:           prices.Fuel.Benzin,

		FinancingType: domain.FinancingCash,

		HasWallbox:               true,
		WallboxCost:              decimal.NewFromInt(1500),
		HasSolarPanels:           false,
		SolarSelfConsumptionRate: decimal.NewFromFloat(0.3),

		IsCompanyCar:        false,
		TaxBracket:          decimal.NewFromFloat(0.35),
		LivesInCity:         false,
		MonthlyParkingCost:  decimal.NewFromInt(100),
		HasEmployerCharging: false,
		PriceForecast:       domain.ForecastModerate,
	}
}

// DefaultSubscriptionTerms are the standard subscription conditions;
// the monthly rate is vehicle specific and left zero.
func DefaultSubscriptionTerms() domain.SubscriptionTerms {
	return domain.SubscriptionTerms{
		IncludedKmPerMonth: decimal.NewFromInt(1250),
		ExcessKmRate:       decimal.NewFromFloat(0.20),
		StartFee:           decimal.NewFromInt(199),
		MinDuration:        1,
	}
}

// SliderRange bounds an interactive input
type SliderRange struct {
	Min     decimal.Decimal
	Max     decimal.Decimal
	Step    decimal.Decimal
	Default decimal.Decimal
}

// Clamp limits v to the range
func (r SliderRange) Clamp(v decimal.Decimal) decimal.Decimal {
	if v.LessThan(r.Min) {
		return r.Min
	}
	if v.GreaterThan(r.Max) {
		return r.Max
	}
	return v
}

// Slider range keys
const (
	SliderAnnualMileage    = "annualMileage"
	SliderHoldingPeriod    = "holdingPeriod"
	SliderElectricityPrice = "electricityPrice"
	SliderFuelPrice        = "fuelPrice"
)

var sliderRanges = map[string]SliderRange{
	SliderAnnualMileage: {
		Min: decimal.NewFromInt(5000), Max: decimal.NewFromInt(50000),
		Step: decimal.NewFromInt(1000), Default: decimal.NewFromInt(15000),
	},
	SliderHoldingPeriod: {
		Min: decimal.NewFromInt(1), Max: decimal.NewFromInt(10),
		Step: decimal.NewFromInt(1), Default: decimal.NewFromInt(5),
	},
	SliderElectricityPrice: {
		Min: decimal.NewFromFloat(0.15), Max: decimal.NewFromFloat(0.60),
		Step: decimal.NewFromFloat(0.01), Default: decimal.NewFromFloat(0.32),
	},
	SliderFuelPrice: {
		Min: decimal.NewFromFloat(1.20), Max: decimal.NewFromFloat(2.50),
		Step: decimal.NewFromFloat(0.05), Default: decimal.NewFromFloat(1.75),
	},
}

// HoldingPeriodOptions are the suggested quick picks in years
var HoldingPeriodOptions = []int{3, 5, 8, 10}

// Slider returns the range for a key
func Slider(key string) (SliderRange, bool) {
	r, ok := sliderRanges[key]
	return r, ok
}

// SliderKeys returns all slider keys sorted
func SliderKeys() []string {
	keys := make([]string, 0, len(sliderRanges))
	for k := range sliderRanges {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
