package transform

import (
	"fmt"

	"github.com/rgehrsitz/evtco/internal/domain"
	"github.com/rgehrsitz/evtco/internal/refdata"
	"github.com/shopspring/decimal"
)

// SetMileage replaces the annual mileage
type SetMileage struct {
	Km decimal.Decimal
}

func (t *SetMileage) Name() string { return "set_mileage" }

func (t *SetMileage) Description() string {
	return fmt.Sprintf("drive %s km per year", t.Km.StringFixed(0))
}

func (t *SetMileage) Validate(base domain.UserProfile) error {
	if !t.Km.IsPositive() {
		return NewTransformError(t.Name(), "validate", "km must be positive", nil)
	}
	return nil
}

func (t *SetMileage) Apply(base domain.UserProfile) (domain.UserProfile, error) {
	base.AnnualMileage = t.Km
	return base, nil
}

// AdjustMileage adds a signed delta to the annual mileage
type AdjustMileage struct {
	DeltaKm decimal.Decimal
}

func (t *AdjustMileage) Name() string { return "adjust_mileage" }

func (t *AdjustMileage) Description() string {
	sign := ""
	if t.DeltaKm.IsPositive() {
		sign = "+"
	}
	return fmt.Sprintf("%s%s km per year", sign, t.DeltaKm.StringFixed(0))
}

func (t *AdjustMileage) Validate(base domain.UserProfile) error {
	if !base.AnnualMileage.Add(t.DeltaKm).IsPositive() {
		return NewTransformError(t.Name(), "validate",
			fmt.Sprintf("mileage %s %+d km would not be positive", base.AnnualMileage.StringFixed(0), t.DeltaKm.IntPart()), nil)
	}
	return nil
}

func (t *AdjustMileage) Apply(base domain.UserProfile) (domain.UserProfile, error) {
	base.AnnualMileage = base.AnnualMileage.Add(t.DeltaKm)
	return base, nil
}

// SetHoldingPeriod replaces the holding period
type SetHoldingPeriod struct {
	Years int
}

func (t *SetHoldingPeriod) Name() string { return "set_holding_period" }

func (t *SetHoldingPeriod) Description() string {
	return fmt.Sprintf("keep the car %d years", t.Years)
}

func (t *SetHoldingPeriod) Validate(base domain.UserProfile) error {
	if t.Years < 1 {
		return NewTransformError(t.Name(), "validate", "years must be at least 1", nil)
	}
	return nil
}

func (t *SetHoldingPeriod) Apply(base domain.UserProfile) (domain.UserProfile, error) {
	base.HoldingPeriodYears = t.Years
	return base, nil
}

// SetFuelPrice replaces the fuel price in €/l
type SetFuelPrice struct {
	Price decimal.Decimal
}

func (t *SetFuelPrice) Name() string { return "set_fuel_price" }

func (t *SetFuelPrice) Description() string {
	return fmt.Sprintf("fuel at %s €/l", t.Price.StringFixed(2))
}

func (t *SetFuelPrice) Validate(base domain.UserProfile) error {
	if !t.Price.IsPositive() {
		return NewTransformError(t.Name(), "validate", "price must be positive", nil)
	}
	return nil
}

func (t *SetFuelPrice) Apply(base domain.UserProfile) (domain.UserProfile, error) {
	base.FuelPrice = t.Price
	return base, nil
}

// SetElectricityPrice replaces the household and home charging price.
// Public charging prices are left alone.
type SetElectricityPrice struct {
	Price decimal.Decimal
}

func (t *SetElectricityPrice) Name() string { return "set_electricity_price" }

func (t *SetElectricityPrice) Description() string {
	return fmt.Sprintf("electricity at %s €/kWh", t.Price.StringFixed(2))
}

func (t *SetElectricityPrice) Validate(base domain.UserProfile) error {
	if !t.Price.IsPositive() {
		return NewTransformError(t.Name(), "validate", "price must be positive", nil)
	}
	return nil
}

func (t *SetElectricityPrice) Apply(base domain.UserProfile) (domain.UserProfile, error) {
	return base.WithElectricityPrice(t.Price), nil
}

// SetPriceForecast switches the energy price growth path
type SetPriceForecast struct {
	Forecast domain.PriceForecast
}

func (t *SetPriceForecast) Name() string { return "price_forecast" }

func (t *SetPriceForecast) Description() string {
	return fmt.Sprintf("%s price forecast", t.Forecast)
}

func (t *SetPriceForecast) Validate(base domain.UserProfile) error {
	switch t.Forecast {
	case domain.ForecastConservative, domain.ForecastModerate, domain.ForecastAggressive:
		return nil
	}
	return NewTransformError(t.Name(), "validate", fmt.Sprintf("unknown forecast %q", t.Forecast), nil)
}

func (t *SetPriceForecast) Apply(base domain.UserProfile) (domain.UserProfile, error) {
	base.PriceForecast = t.Forecast
	return base, nil
}

// SetChargingPreset replaces the charging mix with a named preset
type SetChargingPreset struct {
	Preset string
}

func (t *SetChargingPreset) Name() string { return "charging_preset" }

func (t *SetChargingPreset) Description() string {
	if p, ok := refdata.ChargingPresetByKey(t.Preset); ok {
		return "charging " + p.Title
	}
	return "charging " + t.Preset
}

func (t *SetChargingPreset) Validate(base domain.UserProfile) error {
	if _, ok := refdata.ChargingPresetByKey(t.Preset); !ok {
		return NewTransformError(t.Name(), "validate",
			fmt.Sprintf("unknown preset %q (known: %v)", t.Preset, refdata.ChargingPresetKeys), nil)
	}
	return nil
}

func (t *SetChargingPreset) Apply(base domain.UserProfile) (domain.UserProfile, error) {
	p, ok := refdata.ChargingPresetByKey(t.Preset)
	if !ok {
		return base, NewTransformError(t.Name(), "apply", "unknown preset "+t.Preset, nil)
	}
	base.ChargingScenario = p.Scenario
	return base, nil
}

// SetWallbox installs or removes the home wallbox. A zero Cost on install
// keeps the profile's wallbox cost.
type SetWallbox struct {
	Enabled bool
	Cost    decimal.Decimal
}

func (t *SetWallbox) Name() string { return "wallbox" }

func (t *SetWallbox) Description() string {
	if !t.Enabled {
		return "no wallbox"
	}
	if t.Cost.IsPositive() {
		return fmt.Sprintf("wallbox for %s €", t.Cost.StringFixed(0))
	}
	return "with wallbox"
}

func (t *SetWallbox) Validate(base domain.UserProfile) error {
	if t.Cost.IsNegative() {
		return NewTransformError(t.Name(), "validate", "cost cannot be negative", nil)
	}
	return nil
}

func (t *SetWallbox) Apply(base domain.UserProfile) (domain.UserProfile, error) {
	base.HasWallbox = t.Enabled
	if t.Enabled && t.Cost.IsPositive() {
		base.WallboxCost = t.Cost
	}
	return base, nil
}

// CompanyCar turns on company car taxation at the given marginal rate.
// A zero TaxBracket keeps the profile's bracket.
type CompanyCar struct {
	TaxBracket decimal.Decimal
}

func (t *CompanyCar) Name() string { return "company_car" }

func (t *CompanyCar) Description() string {
	if t.TaxBracket.IsPositive() {
		return fmt.Sprintf("company car at %s%% tax", t.TaxBracket.Shift(2).StringFixed(0))
	}
	return "company car"
}

func (t *CompanyCar) Validate(base domain.UserProfile) error {
	if t.TaxBracket.IsNegative() || t.TaxBracket.GreaterThan(decimal.NewFromInt(1)) {
		return NewTransformError(t.Name(), "validate", "tax bracket must be between 0 and 1", nil)
	}
	return nil
}

func (t *CompanyCar) Apply(base domain.UserProfile) (domain.UserProfile, error) {
	base.IsCompanyCar = true
	if t.TaxBracket.IsPositive() {
		base.TaxBracket = t.TaxBracket
	}
	return base, nil
}

// CityParking marks the user as a city resident paying for parking
type CityParking struct {
	MonthlyCost decimal.Decimal
}

func (t *CityParking) Name() string { return "city_parking" }

func (t *CityParking) Description() string {
	return fmt.Sprintf("city parking at %s € per month", t.MonthlyCost.StringFixed(0))
}

func (t *CityParking) Validate(base domain.UserProfile) error {
	if t.MonthlyCost.IsNegative() {
		return NewTransformError(t.Name(), "validate", "monthly cost cannot be negative", nil)
	}
	return nil
}

func (t *CityParking) Apply(base domain.UserProfile) (domain.UserProfile, error) {
	base.LivesInCity = true
	base.MonthlyParkingCost = t.MonthlyCost
	return base, nil
}

// EmployerCharging toggles free charging at work
type EmployerCharging struct {
	Enabled bool
}

func (t *EmployerCharging) Name() string { return "employer_charging" }

func (t *EmployerCharging) Description() string {
	if t.Enabled {
		return "free charging at work"
	}
	return "paid charging at work"
}

func (t *EmployerCharging) Validate(base domain.UserProfile) error { return nil }

func (t *EmployerCharging) Apply(base domain.UserProfile) (domain.UserProfile, error) {
	base.HasEmployerCharging = t.Enabled
	return base, nil
}
