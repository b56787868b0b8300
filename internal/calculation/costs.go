package calculation

import (
	"github.com/rgehrsitz/evtco/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	hundred     = decimal.NewFromInt(100)
	thousand    = decimal.NewFromInt(1000)
	twelve      = decimal.NewFromInt(12)
	decimalOne  = decimal.NewFromInt(1)
	decimalZero = decimal.Zero
)

// annualVolume returns kWh or litres per year for a consumption per 100 km
func annualVolume(v domain.Vehicle, p domain.UserProfile) decimal.Decimal {
	return v.Consumption.Combined.Div(hundred).Mul(p.AnnualMileage)
}

// EffectiveElectricityPrice blends the four charging channel prices by the
// profile's charging shares and subtracts the solar discount. The result is
// not clamped and can go negative for inconsistent inputs.
func EffectiveElectricityPrice(p domain.UserProfile, a *domain.Assumptions) decimal.Decimal {
	cs := p.ChargingScenario

	workPrice := p.HomeChargingPrice.Mul(a.WorkChargingFactor)
	if p.HasEmployerCharging {
		workPrice = decimalZero
	}

	price := cs.Home.Mul(p.HomeChargingPrice).
		Add(cs.Work.Mul(workPrice)).
		Add(cs.PublicAC.Mul(p.PublicChargingPrice)).
		Add(cs.PublicDC.Mul(a.PublicDCPrice))

	if p.HasSolarPanels && cs.Home.IsPositive() {
		price = price.Sub(cs.Home.Mul(p.SolarSelfConsumptionRate).Mul(a.SolarDiscountPerKWh))
	}
	return price
}

// ElectricityCost returns the annual charging cost of an EV. A non-nil
// priceOverride replaces the effective per-kWh price.
func ElectricityCost(ev domain.ElectricVehicle, p domain.UserProfile, a *domain.Assumptions, priceOverride *decimal.Decimal) decimal.Decimal {
	price := EffectiveElectricityPrice(p, a)
	if priceOverride != nil {
		price = *priceOverride
	}
	return annualVolume(ev.Vehicle, p).Mul(price)
}

// FuelCost returns the annual fuel cost of a combustion vehicle
func FuelCost(ice domain.CombustionVehicle, p domain.UserProfile, priceOverride *decimal.Decimal) decimal.Decimal {
	price := p.FuelPrice
	if priceOverride != nil {
		price = *priceOverride
	}
	return annualVolume(ice.Vehicle, p).Mul(price)
}

// EnergyCost dispatches on the drive type. Vehicles that are neither ev nor
// ice, or lack the matching spec block, cost nothing.
func EnergyCost(v domain.Vehicle, p domain.UserProfile, a *domain.Assumptions, priceOverride *decimal.Decimal) decimal.Decimal {
	switch v.DriveType {
	case domain.DriveTypeEV:
		if ev, ok := v.Electric(); ok {
			return ElectricityCost(ev, p, a, priceOverride)
		}
	case domain.DriveTypeICE:
		if ice, ok := v.Combustion(); ok {
			return FuelCost(ice, p, priceOverride)
		}
	}
	return decimalZero
}

// BaseEnergyPrice is the year-one per-unit price for the vehicle's energy source
func BaseEnergyPrice(v domain.Vehicle, p domain.UserProfile, a *domain.Assumptions) decimal.Decimal {
	if v.IsEV() {
		return EffectiveElectricityPrice(p, a)
	}
	return p.FuelPrice
}

// MaintenanceCost returns the annual maintenance cost
func MaintenanceCost(v domain.Vehicle, p domain.UserProfile, a *domain.Assumptions) decimal.Decimal {
	cost := v.MaintenanceCostPerKm.Mul(p.AnnualMileage)
	if v.IsEV() {
		return cost.Mul(a.EVMaintenanceFactor)
	}
	return cost
}

// InsuranceCost returns the annual premium, floored at the minimum
func InsuranceCost(v domain.Vehicle, a *domain.Assumptions) decimal.Decimal {
	cost := decimal.NewFromInt(int64(v.InsuranceClass)).Mul(a.InsuranceBasePerClass)
	return decimal.Max(cost, a.InsuranceMinimum)
}

// TaxCost returns the annual vehicle tax for the given calendar year
func TaxCost(v domain.Vehicle, a *domain.Assumptions, calendarYear int) decimal.Decimal {
	if v.IsEV() && calendarYear <= a.EVTaxExemptionUntil {
		return decimalZero
	}
	if v.ICESpecs == nil {
		return decimalZero
	}
	specs := v.ICESpecs

	ccmTax := decimal.NewFromInt(int64(specs.EngineSize)).Div(hundred).Ceil().Mul(a.TaxPerCcm)
	co2Excess := decimal.Max(decimalZero, specs.CO2Emissions.Sub(a.TaxCO2Allowance))
	return ccmTax.Add(co2Excess.Mul(a.TaxPerGramCO2))
}

// Depreciation shrinks the base price year by year and returns the residual
// value (rounded to whole euros) and the total loss of value.
func Depreciation(v domain.Vehicle, a *domain.Assumptions, years int) (residual, depreciation decimal.Decimal) {
	value := v.BasePrice
	for year := 1; year <= years; year++ {
		rate := a.Depreciation.RateForYear(year)
		if v.IsEV() {
			rate = rate.Add(a.EVDepreciationPenalty)
		}
		value = value.Mul(decimalOne.Sub(rate))
	}
	residual = value.Round(0)
	return residual, v.BasePrice.Sub(residual)
}

// THGIncome returns the annual greenhouse-gas quota credit
func THGIncome(v domain.Vehicle, a *domain.Assumptions) decimal.Decimal {
	if ev, ok := v.Electric(); ok && ev.Specs.THGQuoteEligible {
		return a.THGQuoteAnnual
	}
	return decimalZero
}

// Subsidies sums the vehicle's listed subsidies
func Subsidies(v domain.Vehicle) decimal.Decimal {
	total := decimalZero
	for _, s := range v.AvailableSubsidies {
		total = total.Add(s.Amount)
	}
	return total
}

// CompanyCarTax returns the annual income tax on the company car benefit
func CompanyCarTax(v domain.Vehicle, p domain.UserProfile, a *domain.Assumptions) decimal.Decimal {
	if !p.IsCompanyCar {
		return decimalZero
	}
	rate := a.CompanyCarRateOther
	if v.IsEV() {
		rate = a.CompanyCarRateEV
	}
	return v.BasePrice.Mul(rate).Mul(twelve).Mul(p.TaxBracket)
}

// ParkingSavings returns the annual discount on city parking for EVs
func ParkingSavings(v domain.Vehicle, p domain.UserProfile, a *domain.Assumptions) decimal.Decimal {
	if !p.LivesInCity || !v.IsEV() {
		return decimalZero
	}
	return p.MonthlyParkingCost.Mul(a.EVParkingDiscount).Mul(twelve)
}

// ParkingCost returns the annual city parking cost for non-EVs
func ParkingCost(v domain.Vehicle, p domain.UserProfile) decimal.Decimal {
	if !p.LivesInCity || v.IsEV() {
		return decimalZero
	}
	return p.MonthlyParkingCost.Mul(twelve)
}

// CO2Emissions returns kg CO2 over the whole holding period
func CO2Emissions(v domain.Vehicle, p domain.UserProfile, a *domain.Assumptions) decimal.Decimal {
	years := decimal.NewFromInt(int64(p.HoldingPeriodYears))

	if v.IsEV() {
		solarReduction := decimalZero
		if p.HasSolarPanels {
			solarReduction = p.ChargingScenario.Home.Mul(p.SolarSelfConsumptionRate)
		}
		return annualVolume(v, p).
			Mul(a.GridIntensityPerKWh).
			Mul(decimalOne.Sub(solarReduction)).
			Mul(years)
	}

	if v.ICESpecs != nil {
		return v.ICESpecs.CO2Emissions.Div(thousand).Mul(p.AnnualMileage).Mul(years)
	}
	return decimalZero
}

// CO2Equivalent converts kg CO2 into relatable units. Flights and
// smartphones keep one decimal, trees and car km are whole numbers.
func CO2Equivalent(co2 decimal.Decimal, a *domain.Assumptions) domain.CO2Equivalent {
	f := a.CO2Equivalents
	return domain.CO2Equivalent{
		Flights:     roundHalfUp(SafeDiv(co2, f.FlightKg), 1),
		Trees:       roundHalfUp(SafeDiv(co2, f.TreeYearKg), 0),
		Smartphones: roundHalfUp(SafeDiv(co2, f.SmartphoneKg), 1),
		CarKm:       roundHalfUp(SafeDiv(co2, f.AverageCarKmKg), 0),
	}
}

// roundHalfUp rounds halves toward positive infinity, so -1.5 becomes -1
func roundHalfUp(x decimal.Decimal, places int32) decimal.Decimal {
	return x.Shift(places).Add(decimal.New(5, -1)).Floor().Shift(-places)
}

// SafeDiv divides and yields zero for a zero denominator
func SafeDiv(n, d decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return decimalZero
	}
	return n.Div(d)
}
