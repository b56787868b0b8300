package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// PriceForecast selects a growth path for energy prices
type PriceForecast string

const (
	ForecastConservative PriceForecast = "conservative"
	ForecastModerate     PriceForecast = "moderate"
	ForecastAggressive   PriceForecast = "aggressive"
)

// FinancingType is how a purchase would be paid for
type FinancingType string

const (
	FinancingCash    FinancingType = "cash"
	FinancingLeasing FinancingType = "leasing"
	FinancingCredit  FinancingType = "credit"
)

// ChargingScenario weights the four charging channels. Shares are expected to sum to 1.
type ChargingScenario struct {
	Home     decimal.Decimal `yaml:"home" json:"homeCharging"`
	Work     decimal.Decimal `yaml:"work" json:"workCharging"`
	PublicAC decimal.Decimal `yaml:"public_ac" json:"publicACCharging"`
	PublicDC decimal.Decimal `yaml:"public_dc" json:"publicDCCharging"`
}

// Total returns the sum of all shares
func (c ChargingScenario) Total() decimal.Decimal {
	return c.Home.Add(c.Work).Add(c.PublicAC).Add(c.PublicDC)
}

// UserProfile is the snapshot of comparison parameters for one calculation
type UserProfile struct {
	// Vehicle selection
	VehicleClass VehicleClass `yaml:"vehicle_class,omitempty" json:"selectedVehicleClass,omitempty"`
	EVVehicleID  string       `yaml:"ev_vehicle,omitempty" json:"evVehicle,omitempty"`
	ICEVehicleID string       `yaml:"ice_vehicle,omitempty" json:"iceVehicle,omitempty"`

	// Usage
	AnnualMileage      decimal.Decimal  `yaml:"annual_mileage" json:"annualMileage"`
	HoldingPeriodYears int              `yaml:"holding_period_years" json:"holdingPeriodYears"`
	ChargingScenario   ChargingScenario `yaml:"charging_scenario" json:"chargingScenario"`

	// Energy prices
	ElectricityPrice    decimal.Decimal `yaml:"electricity_price" json:"electricityPrice"`
	HomeChargingPrice   decimal.Decimal `yaml:"home_charging_price" json:"homeChargingPrice"`
	PublicChargingPrice decimal.Decimal `yaml:"public_charging_price" json:"publicChargingPrice"`
	FuelPrice           decimal.Decimal `yaml:"fuel_price" json:"fuelPrice"`

	// Financing and location (informational)
	FinancingType FinancingType `yaml:"financing_type,omitempty" json:"financingType,omitempty"`
	PostalCode    string        `yaml:"postal_code,omitempty" json:"postalCode,omitempty"`
	Region        string        `yaml:"region,omitempty" json:"region,omitempty"`

	// Equipment
	HasWallbox               bool            `yaml:"has_wallbox" json:"hasWallbox"`
	WallboxCost              decimal.Decimal `yaml:"wallbox_cost" json:"wallboxCost"`
	HasSolarPanels           bool            `yaml:"has_solar_panels" json:"hasSolarPanels"`
	SolarSelfConsumptionRate decimal.Decimal `yaml:"solar_self_consumption_rate" json:"solarSelfConsumptionRate"`

	// Extended scenario inputs
	IsCompanyCar        bool            `yaml:"is_company_car" json:"isCompanyCar"`
	TaxBracket          decimal.Decimal `yaml:"tax_bracket" json:"taxBracket"`
	LivesInCity         bool            `yaml:"lives_in_city" json:"livesInCity"`
	MonthlyParkingCost  decimal.Decimal `yaml:"monthly_parking_cost" json:"monthlyParkingCost"`
	HasEmployerCharging bool            `yaml:"has_employer_charging" json:"hasEmployerCharging"`
	PriceForecast       PriceForecast   `yaml:"price_forecast" json:"priceForecast"`
}

// Months returns the holding period in months
func (p UserProfile) Months() int {
	return p.HoldingPeriodYears * 12
}

// TotalKm returns the distance driven over the holding period
func (p UserProfile) TotalKm() decimal.Decimal {
	return p.AnnualMileage.Mul(decimal.NewFromInt(int64(p.HoldingPeriodYears)))
}

// WithElectricityPrice returns a copy with the household and home charging
// price set together, as the price slider does
func (p UserProfile) WithElectricityPrice(price decimal.Decimal) UserProfile {
	p.ElectricityPrice = price
	p.HomeChargingPrice = price
	return p
}

var (
	zero = decimal.Zero
	one  = decimal.NewFromInt(1)
)

// Validate reports domain violations the engine itself tolerates.
// It is an opt-in boundary check; the calculation functions never call it.
func (p UserProfile) Validate() error {
	var errs []error
	add := func(field, msg string) {
		errs = append(errs, &ValidationError{Field: field, Message: msg})
	}

	if !p.AnnualMileage.IsPositive() {
		add("annual_mileage", "must be positive")
	}
	if p.HoldingPeriodYears < 1 {
		add("holding_period_years", "must be at least 1")
	}

	cs := p.ChargingScenario
	for _, f := range []namedValue{
		{"charging_scenario.home", cs.Home},
		{"charging_scenario.work", cs.Work},
		{"charging_scenario.public_ac", cs.PublicAC},
		{"charging_scenario.public_dc", cs.PublicDC},
	} {
		if f.value.LessThan(zero) || f.value.GreaterThan(one) {
			add(f.name, "must be between 0 and 1")
		}
	}
	if cs.Total().Sub(one).Abs().GreaterThan(decimal.NewFromFloat(0.001)) {
		add("charging_scenario", fmt.Sprintf("shares must sum to 1, got %s", cs.Total().String()))
	}

	for _, f := range []namedValue{
		{"home_charging_price", p.HomeChargingPrice},
		{"public_charging_price", p.PublicChargingPrice},
		{"fuel_price", p.FuelPrice},
	} {
		if !f.value.IsPositive() {
			add(f.name, "must be positive")
		}
	}

	if p.HasWallbox && p.WallboxCost.IsNegative() {
		add("wallbox_cost", "cannot be negative")
	}
	if p.SolarSelfConsumptionRate.LessThan(zero) || p.SolarSelfConsumptionRate.GreaterThan(one) {
		add("solar_self_consumption_rate", "must be between 0 and 1")
	}
	if p.TaxBracket.LessThan(zero) || p.TaxBracket.GreaterThan(one) {
		add("tax_bracket", "must be between 0 and 1")
	}
	if p.MonthlyParkingCost.IsNegative() {
		add("monthly_parking_cost", "cannot be negative")
	}
	switch p.PriceForecast {
	case ForecastConservative, ForecastModerate, ForecastAggressive, "":
	default:
		add("price_forecast", fmt.Sprintf("unknown forecast %q", p.PriceForecast))
	}

	return errors.Join(errs...)
}

type namedValue struct {
	name  string
	value decimal.Decimal
}

// ValidationError describes one invalid field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Message
}
