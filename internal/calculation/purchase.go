package calculation

import (
	"github.com/rgehrsitz/evtco/internal/domain"
	"github.com/shopspring/decimal"
)

// PurchaseTCO computes the cost of buying the vehicle outright: the net
// purchase price plus running costs, less the residual value at the end of
// the holding period. Energy prices follow the same forecast as the lease
// and subscription pipelines.
func (ce *CalculationEngine) PurchaseTCO(v domain.Vehicle, p domain.UserProfile) *domain.PurchaseTCOResult {
	a := ce.Assumptions
	p.HoldingPeriodYears = max(p.HoldingPeriodYears, 0)
	years := p.HoldingPeriodYears
	totalKm := p.TotalKm()

	subsidies := Subsidies(v)
	netPrice := v.BasePrice.Sub(subsidies)

	wallbox := decimalZero
	if v.IsEV() && p.HasWallbox {
		wallbox = p.WallboxCost
	}

	growth := a.Growth(p.PriceForecast).FuelGrowth
	if v.IsEV() {
		growth = a.Growth(p.PriceForecast).ElectricityGrowth
	}
	prices := yearlyEnergyPrices(BaseEnergyPrice(v, p, a), growth, years)

	maintenance := MaintenanceCost(v, p, a)
	insurance := InsuranceCost(v, a)
	thg := THGIncome(v, a)

	cumulative := netPrice.Add(wallbox)
	var totalEnergy, totalMaintenance, totalInsurance, totalTax, totalTHG decimal.Decimal
	yearly := make([]domain.YearlyCosts, 0, years)
	for i, price := range prices {
		calendarYear := ce.StartYear + i
		energy := EnergyCost(v, p, a, &price)
		tax := TaxCost(v, a, calendarYear)

		net := energy.Add(maintenance).Add(insurance).Add(tax).Sub(thg)
		cumulative = cumulative.Add(net)

		totalEnergy = totalEnergy.Add(energy)
		totalMaintenance = totalMaintenance.Add(maintenance)
		totalInsurance = totalInsurance.Add(insurance)
		totalTax = totalTax.Add(tax)
		totalTHG = totalTHG.Add(thg)

		yearly = append(yearly, domain.YearlyCosts{
			Year:            i + 1,
			CalendarYear:    calendarYear,
			EnergyPrice:     price,
			EnergyCost:      energy,
			MaintenanceCost: maintenance,
			InsuranceCost:   insurance,
			TaxCost:         tax,
			THGIncome:       thg,
			NetRunningCost:  net,
			CumulativeCost:  cumulative,
		})
	}

	residual, depreciation := Depreciation(v, a, years)
	tco := cumulative.Sub(residual)
	months := decimal.NewFromInt(int64(p.Months()))

	ce.logger().Debugf("purchase %s: residual=%s tco=%s", v.ID, residual.String(), tco.StringFixed(2))

	return &domain.PurchaseTCOResult{
		VehicleName:          v.Name,
		PurchasePrice:        v.BasePrice,
		TotalSubsidies:       subsidies,
		NetPurchasePrice:     netPrice,
		WallboxCost:          wallbox,
		TotalEnergyCost:      totalEnergy,
		TotalMaintenanceCost: totalMaintenance,
		TotalInsuranceCost:   totalInsurance,
		TotalTaxCost:         totalTax,
		TotalTHGIncome:       totalTHG,
		ResidualValue:        residual,
		TotalDepreciation:    depreciation,
		TotalCostOfOwnership: tco,
		CostPerKm:            SafeDiv(tco, totalKm),
		CostPerMonth:         SafeDiv(tco, months),
		TotalCO2Emissions:    CO2Emissions(v, p, a),
		YearlyCosts:          yearly,
	}
}
