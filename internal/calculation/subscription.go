package calculation

import (
	"github.com/rgehrsitz/evtco/internal/domain"
	"github.com/shopspring/decimal"
)

// VibeAboTCO computes the all-inclusive subscription cost of an EV. It
// returns nil when the vehicle is not an EV offered on subscription.
//
// Maintenance, insurance and tax are part of the rate and the THG credit
// stays with the provider, so those columns are zero in the yearly records.
func (ce *CalculationEngine) VibeAboTCO(v domain.Vehicle, p domain.UserProfile) *domain.VibeAboTCOResult {
	sub, ok := v.Subscribable()
	if !ok {
		ce.logger().Debugf("vehicle %s has no subscription terms, skipping", v.ID)
		return nil
	}
	a := ce.Assumptions
	terms := sub.Terms

	p.HoldingPeriodYears = max(p.HoldingPeriodYears, 0)
	years := p.HoldingPeriodYears
	months := p.Months()
	monthsDec := decimal.NewFromInt(int64(months))
	yearsDec := decimal.NewFromInt(int64(years))
	totalKm := p.TotalKm()

	totalRates := terms.MonthlyRate.Mul(monthsDec)
	excess := excessDistanceCost(totalKm, terms.IncludedKmPerMonth.Mul(monthsDec), terms.ExcessKmRate)

	wallbox := decimalZero
	if p.HasWallbox {
		wallbox = p.WallboxCost
	}

	annualRates := terms.MonthlyRate.Mul(twelve)
	annualExcess := SafeDiv(excess, yearsDec)
	annualCompanyCarTax := CompanyCarTax(v, p, a)
	annualParkingSavings := ParkingSavings(v, p, a)

	prices := yearlyEnergyPrices(EffectiveElectricityPrice(p, a), a.Growth(p.PriceForecast).ElectricityGrowth, years)

	start := terms.StartFee.Add(wallbox)
	cumulative := start
	totalEnergy := decimalZero
	yearly := make([]domain.YearlyCosts, 0, years)
	for i, price := range prices {
		price := price
		energy := ElectricityCost(sub.ElectricVehicle, p, a, &price)
		totalEnergy = totalEnergy.Add(energy)

		net := annualRates.Add(energy).Add(annualExcess).Add(annualCompanyCarTax).Sub(annualParkingSavings)
		cumulative = cumulative.Add(net)

		yearly = append(yearly, domain.YearlyCosts{
			Year:               i + 1,
			CalendarYear:       ce.StartYear + i,
			EnergyPrice:        price,
			Rates:              annualRates,
			EnergyCost:         energy,
			MaintenanceCost:    decimalZero,
			InsuranceCost:      decimalZero,
			TaxCost:            decimalZero,
			ExcessDistanceCost: annualExcess,
			CompanyCarTax:      annualCompanyCarTax,
			ParkingAdjustment:  annualParkingSavings.Neg(),
			THGIncome:          decimalZero,
			NetRunningCost:     net,
			CumulativeCost:     cumulative,
		})
	}

	companyCarTax := annualCompanyCarTax.Mul(yearsDec)
	parkingSavings := annualParkingSavings.Mul(yearsDec)

	tco := terms.StartFee.
		Add(totalRates).
		Add(totalEnergy).
		Add(excess).
		Add(wallbox).
		Add(companyCarTax).
		Sub(parkingSavings)

	ce.logger().Debugf("subscription %s: tco=%s over %d months", v.ID, tco.StringFixed(2), months)

	return &domain.VibeAboTCOResult{
		VehicleName:          v.Name,
		StartFee:             terms.StartFee,
		TotalMonthlyRates:    totalRates,
		TotalEnergyCost:      totalEnergy,
		ExcessKmCost:         excess,
		WallboxCost:          wallbox,
		CompanyCarTax:        companyCarTax,
		ParkingSavings:       parkingSavings,
		TotalCostOfOwnership: tco,
		CostPerKm:            SafeDiv(tco, totalKm),
		CostPerMonth:         SafeDiv(tco, monthsDec),
		TotalCO2Emissions:    CO2Emissions(v, p, a),
		YearlyCosts:          yearly,
		MonthlyData:          monthlySeries(start, terms.MonthlyRate, excess, yearly),
	}
}
