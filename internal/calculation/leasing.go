package calculation

import (
	"github.com/rgehrsitz/evtco/internal/domain"
	"github.com/shopspring/decimal"
)

// IceLeasingTCO computes the cost of leasing a combustion vehicle, where the
// lessee pays fuel, maintenance, insurance and tax on top of the rate. It
// returns nil when the vehicle is not a combustion car offered on a lease.
func (ce *CalculationEngine) IceLeasingTCO(v domain.Vehicle, p domain.UserProfile) *domain.IceLeasingTCOResult {
	lease, ok := v.Leasable()
	if !ok {
		ce.logger().Debugf("vehicle %s has no lease terms, skipping", v.ID)
		return nil
	}
	a := ce.Assumptions
	terms := lease.Terms

	p.HoldingPeriodYears = max(p.HoldingPeriodYears, 0)
	years := p.HoldingPeriodYears
	months := p.Months()
	monthsDec := decimal.NewFromInt(int64(months))
	yearsDec := decimal.NewFromInt(int64(years))
	totalKm := p.TotalKm()

	totalRates := terms.MonthlyRate.Mul(monthsDec)
	excess := excessDistanceCost(totalKm, terms.IncludedKmPerYear.Mul(yearsDec), terms.ExcessKmRate)

	annualRates := terms.MonthlyRate.Mul(twelve)
	annualExcess := SafeDiv(excess, yearsDec)
	annualMaintenance := MaintenanceCost(v, p, a)
	annualInsurance := InsuranceCost(v, a)
	annualCompanyCarTax := CompanyCarTax(v, p, a)
	annualParking := ParkingCost(v, p)

	prices := yearlyEnergyPrices(p.FuelPrice, a.Growth(p.PriceForecast).FuelGrowth, years)

	cumulative := terms.DownPayment
	var totalFuel, totalTax decimal.Decimal
	yearly := make([]domain.YearlyCosts, 0, years)
	for i, price := range prices {
		price := price
		calendarYear := ce.StartYear + i
		fuel := FuelCost(lease.CombustionVehicle, p, &price)
		tax := TaxCost(v, a, calendarYear)
		totalFuel = totalFuel.Add(fuel)
		totalTax = totalTax.Add(tax)

		net := annualRates.
			Add(fuel).
			Add(annualMaintenance).
			Add(annualInsurance).
			Add(tax).
			Add(annualExcess).
			Add(annualCompanyCarTax).
			Add(annualParking)
		cumulative = cumulative.Add(net)

		yearly = append(yearly, domain.YearlyCosts{
			Year:               i + 1,
			CalendarYear:       calendarYear,
			EnergyPrice:        price,
			Rates:              annualRates,
			EnergyCost:         fuel,
			MaintenanceCost:    annualMaintenance,
			InsuranceCost:      annualInsurance,
			TaxCost:            tax,
			ExcessDistanceCost: annualExcess,
			CompanyCarTax:      annualCompanyCarTax,
			ParkingAdjustment:  annualParking,
			THGIncome:          decimalZero,
			NetRunningCost:     net,
			CumulativeCost:     cumulative,
		})
	}

	totalMaintenance := annualMaintenance.Mul(yearsDec)
	totalInsurance := annualInsurance.Mul(yearsDec)
	companyCarTax := annualCompanyCarTax.Mul(yearsDec)
	parking := annualParking.Mul(yearsDec)

	tco := terms.DownPayment.
		Add(totalRates).
		Add(totalFuel).
		Add(totalMaintenance).
		Add(totalInsurance).
		Add(totalTax).
		Add(excess).
		Add(companyCarTax).
		Add(parking)

	ce.logger().Debugf("lease %s: tco=%s over %d months", v.ID, tco.StringFixed(2), months)

	return &domain.IceLeasingTCOResult{
		VehicleName:          v.Name,
		DownPayment:          terms.DownPayment,
		TotalMonthlyRates:    totalRates,
		TotalFuelCost:        totalFuel,
		TotalMaintenanceCost: totalMaintenance,
		TotalInsuranceCost:   totalInsurance,
		TotalTaxCost:         totalTax,
		ExcessKmCost:         excess,
		CompanyCarTax:        companyCarTax,
		ParkingCost:          parking,
		TotalCostOfOwnership: tco,
		CostPerKm:            SafeDiv(tco, totalKm),
		CostPerMonth:         SafeDiv(tco, monthsDec),
		TotalCO2Emissions:    CO2Emissions(v, p, a),
		YearlyCosts:          yearly,
		MonthlyData:          monthlySeries(terms.DownPayment, terms.MonthlyRate, excess, yearly),
	}
}
