package domain

import (
	"github.com/shopspring/decimal"
)

// Assumptions is the full set of economic parameters the model runs on.
// A single immutable value is handed to every engine entry point so that
// scenarios (or another market) can swap it wholesale.
type Assumptions struct {
	Metadata AssumptionsMetadata `yaml:"metadata" json:"metadata"`

	// Vehicle tax
	EVTaxExemptionUntil int             `yaml:"ev_tax_exemption_until" json:"evTaxExemptionUntil"`
	TaxPerCcm           decimal.Decimal `yaml:"tax_per_ccm" json:"taxPerCcm"` // per started 100 ccm
	TaxCO2Allowance     decimal.Decimal `yaml:"tax_co2_allowance" json:"taxCO2Allowance"`
	TaxPerGramCO2       decimal.Decimal `yaml:"tax_per_gram_co2" json:"taxPerGramCO2"`

	// Insurance
	InsuranceBasePerClass decimal.Decimal `yaml:"insurance_base_per_class" json:"insuranceBasePerClass"`
	InsuranceMinimum      decimal.Decimal `yaml:"insurance_minimum" json:"insuranceMinimum"`

	THGQuoteAnnual      decimal.Decimal `yaml:"thg_quote_annual" json:"thgQuoteAnnual"`
	EVMaintenanceFactor decimal.Decimal `yaml:"ev_maintenance_factor" json:"evMaintenanceFactor"`

	Depreciation          DepreciationSchedule `yaml:"depreciation" json:"depreciation"`
	EVDepreciationPenalty decimal.Decimal      `yaml:"ev_depreciation_penalty" json:"evDepreciationPenalty"`

	// Charging
	PublicDCPrice       decimal.Decimal `yaml:"public_dc_price" json:"publicDCPrice"`
	WorkChargingFactor  decimal.Decimal `yaml:"work_charging_factor" json:"workChargingFactor"`
	SolarDiscountPerKWh decimal.Decimal `yaml:"solar_discount_per_kwh" json:"solarDiscountPerKWh"`
	GridIntensityPerKWh decimal.Decimal `yaml:"grid_intensity_kg_per_kwh" json:"gridIntensityKgPerKWh"`

	// Company car benefit (share of list price per month)
	CompanyCarRateEV    decimal.Decimal `yaml:"company_car_rate_ev" json:"companyCarRateEV"`
	CompanyCarRateOther decimal.Decimal `yaml:"company_car_rate_other" json:"companyCarRateOther"`

	EVParkingDiscount decimal.Decimal `yaml:"ev_parking_discount" json:"evParkingDiscount"`

	CO2Equivalents CO2EquivalentFactors             `yaml:"co2_equivalents" json:"co2Equivalents"`
	PriceForecasts map[PriceForecast]ForecastGrowth `yaml:"price_forecasts" json:"priceForecasts"`

	// Locale used for grouping numbers in generated text
	Locale string `yaml:"locale" json:"locale"`
}

// AssumptionsMetadata documents where a set of assumptions came from
type AssumptionsMetadata struct {
	DataYear    int    `yaml:"data_year" json:"dataYear"`
	Market      string `yaml:"market" json:"market"`
	Description string `yaml:"description" json:"description"`
}

// DepreciationSchedule holds the per-year value loss rates
type DepreciationSchedule struct {
	Year1    decimal.Decimal `yaml:"year1" json:"year1"`
	Year2    decimal.Decimal `yaml:"year2" json:"year2"`
	Year3    decimal.Decimal `yaml:"year3" json:"year3"`
	Year4    decimal.Decimal `yaml:"year4" json:"year4"`
	Year5    decimal.Decimal `yaml:"year5" json:"year5"`
	YearPlus decimal.Decimal `yaml:"year_plus" json:"yearPlus"`
}

// RateForYear returns the base depreciation rate for a 1-based year index
func (d DepreciationSchedule) RateForYear(year int) decimal.Decimal {
	switch year {
	case 1:
		return d.Year1
	case 2:
		return d.Year2
	case 3:
		return d.Year3
	case 4:
		return d.Year4
	case 5:
		return d.Year5
	default:
		return d.YearPlus
	}
}

// CO2EquivalentFactors are kg CO2 per relatable unit
type CO2EquivalentFactors struct {
	FlightKg       decimal.Decimal `yaml:"flight_kg" json:"flightKg"`
	TreeYearKg     decimal.Decimal `yaml:"tree_year_kg" json:"treeYearKg"`
	SmartphoneKg   decimal.Decimal `yaml:"smartphone_year_kg" json:"smartphoneYearKg"`
	AverageCarKmKg decimal.Decimal `yaml:"average_car_km_kg" json:"averageCarKmKg"`
}

// ForecastGrowth is the annual price growth for one forecast
type ForecastGrowth struct {
	ElectricityGrowth decimal.Decimal `yaml:"electricity_growth" json:"electricityGrowth"`
	FuelGrowth        decimal.Decimal `yaml:"fuel_growth" json:"fuelGrowth"`
}

// Growth returns the growth rates for a forecast; unknown forecasts do not grow
func (a *Assumptions) Growth(f PriceForecast) ForecastGrowth {
	if g, ok := a.PriceForecasts[f]; ok {
		return g
	}
	return ForecastGrowth{}
}

// DefaultAssumptions returns the German market parameters (2024 data)
func DefaultAssumptions() *Assumptions {
	return &Assumptions{
		Metadata: AssumptionsMetadata{
			DataYear:    2024,
			Market:      "DE",
			Description: "German market averages, simplified Kfz-Steuer",
		},
		EVTaxExemptionUntil: 2030,
		TaxPerCcm:           decimal.NewFromFloat(2.0),
		TaxCO2Allowance:     decimal.NewFromInt(95),
		TaxPerGramCO2:       decimal.NewFromFloat(2.0),

		InsuranceBasePerClass: decimal.NewFromInt(45),
		InsuranceMinimum:      decimal.NewFromInt(350),

		THGQuoteAnnual:      decimal.NewFromInt(300),
		EVMaintenanceFactor: decimal.NewFromFloat(0.6),

		Depreciation: DepreciationSchedule{
			Year1:    decimal.NewFromFloat(0.25),
			Year2:    decimal.NewFromFloat(0.15),
			Year3:    decimal.NewFromFloat(0.10),
			Year4:    decimal.NewFromFloat(0.08),
			Year5:    decimal.NewFromFloat(0.07),
			YearPlus: decimal.NewFromFloat(0.05),
		},
		EVDepreciationPenalty: decimal.NewFromFloat(0.02),

		PublicDCPrice:       decimal.NewFromFloat(0.59),
		WorkChargingFactor:  decimal.NewFromFloat(0.8),
		SolarDiscountPerKWh: decimal.NewFromFloat(0.20),
		GridIntensityPerKWh: decimal.NewFromFloat(0.4),

		CompanyCarRateEV:    decimal.NewFromFloat(0.0025),
		CompanyCarRateOther: decimal.NewFromFloat(0.01),

		EVParkingDiscount: decimal.NewFromFloat(0.5),

		CO2Equivalents: CO2EquivalentFactors{
			FlightKg:       decimal.NewFromInt(500),
			TreeYearKg:     decimal.NewFromInt(25),
			SmartphoneKg:   decimal.NewFromInt(70),
			AverageCarKmKg: decimal.NewFromFloat(0.15),
		},
		PriceForecasts: map[PriceForecast]ForecastGrowth{
			ForecastConservative: {ElectricityGrowth: decimal.NewFromFloat(0.02), FuelGrowth: decimal.NewFromFloat(0.03)},
			ForecastModerate:     {ElectricityGrowth: decimal.NewFromFloat(0.03), FuelGrowth: decimal.NewFromFloat(0.05)},
			ForecastAggressive:   {ElectricityGrowth: decimal.NewFromFloat(0.04), FuelGrowth: decimal.NewFromFloat(0.08)},
		},

		Locale: "de-DE",
	}
}
