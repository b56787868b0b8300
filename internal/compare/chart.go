package compare

import (
	"fmt"

	"github.com/rgehrsitz/evtco/internal/domain"
	"github.com/shopspring/decimal"
)

// Breakdown category names in display order
const (
	CategoryRates       = "Lease/subscription rates"
	CategoryEnergy      = "Energy/fuel"
	CategoryMaintenance = "Maintenance"
	CategoryInsurance   = "Insurance"
	CategoryTax         = "Vehicle tax"
	CategoryExcessKm    = "Excess km"
	CategoryWallbox     = "Wallbox (optional)"
)

// GenerateChartData projects a comparison onto a month-by-month cumulative
// cost series. Entry 0 is the upfront cost, followed by one entry per month.
func GenerateChartData(result *domain.ComparisonResult) []domain.ChartDataPoint {
	if result == nil || result.VibeAbo == nil || result.IceLeasing == nil {
		return nil
	}
	vibeAbo, iceLeasing := result.VibeAbo, result.IceLeasing

	months := min(len(vibeAbo.MonthlyData), len(iceLeasing.MonthlyData))
	data := make([]domain.ChartDataPoint, 0, months+1)

	vibeStart := vibeAbo.StartFee.Add(vibeAbo.WallboxCost)
	data = append(data, domain.ChartDataPoint{
		Month:                0,
		Year:                 0,
		Label:                "Start",
		VibeAboCumulative:    vibeStart,
		IceLeasingCumulative: iceLeasing.DownPayment,
		VibeAboMonthly:       decimal.Zero,
		IceLeasingMonthly:    decimal.Zero,
		Difference:           vibeStart.Sub(iceLeasing.DownPayment),
	})

	vibeMonthly := vibeAbo.CostPerMonth.Round(0)
	iceMonthly := iceLeasing.CostPerMonth.Round(0)
	for m := 1; m <= months; m++ {
		v := vibeAbo.MonthlyData[m-1]
		i := iceLeasing.MonthlyData[m-1]
		year := (m + 11) / 12
		data = append(data, domain.ChartDataPoint{
			Month:                m,
			Year:                 year,
			Label:                fmt.Sprintf("Year %d, Month %d", year, (m-1)%12+1),
			VibeAboCumulative:    v.Cumulative,
			IceLeasingCumulative: i.Cumulative,
			VibeAboMonthly:       vibeMonthly,
			IceLeasingMonthly:    iceMonthly,
			Difference:           v.Cumulative.Sub(i.Cumulative),
		})
	}
	return data
}

// GenerateCostBreakdown splits both totals into seven categories. Savings
// are lease minus subscription. Company car tax and parking are not part of
// the breakdown.
func GenerateCostBreakdown(result *domain.ComparisonResult) []domain.CostBreakdown {
	if result == nil || result.VibeAbo == nil || result.IceLeasing == nil {
		return nil
	}
	vibeAbo, iceLeasing := result.VibeAbo, result.IceLeasing

	row := func(category string, sub, lease decimal.Decimal) domain.CostBreakdown {
		return domain.CostBreakdown{
			Category:   category,
			VibeAbo:    sub,
			IceLeasing: lease,
			Savings:    lease.Sub(sub),
		}
	}

	return []domain.CostBreakdown{
		row(CategoryRates,
			vibeAbo.StartFee.Add(vibeAbo.TotalMonthlyRates),
			iceLeasing.DownPayment.Add(iceLeasing.TotalMonthlyRates)),
		row(CategoryEnergy, vibeAbo.TotalEnergyCost, iceLeasing.TotalFuelCost),
		// maintenance, insurance and tax are included in the subscription rate
		row(CategoryMaintenance, decimal.Zero, iceLeasing.TotalMaintenanceCost),
		row(CategoryInsurance, decimal.Zero, iceLeasing.TotalInsuranceCost),
		row(CategoryTax, decimal.Zero, iceLeasing.TotalTaxCost),
		row(CategoryExcessKm, vibeAbo.ExcessKmCost, iceLeasing.ExcessKmCost),
		row(CategoryWallbox, vibeAbo.WallboxCost, decimal.Zero),
	}
}
