package calculation

import (
	"fmt"
	"testing"

	"github.com/rgehrsitz/evtco/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVibeAboTCO_NilWithoutCapability(t *testing.T) {
	engine := testEngine()

	assert.Nil(t, engine.VibeAboTCO(testICE(), testProfile()), "combustion car cannot be subscribed")

	ev := testEV()
	ev.Subscription = nil
	assert.Nil(t, engine.VibeAboTCO(ev, testProfile()), "EV without subscription terms")

	ev = testEV()
	ev.EVSpecs = nil
	assert.Nil(t, engine.VibeAboTCO(ev, testProfile()), "EV without specs")
}

func TestIceLeasingTCO_NilWithoutCapability(t *testing.T) {
	engine := testEngine()

	assert.Nil(t, engine.IceLeasingTCO(testEV(), testProfile()))

	ice := testICE()
	ice.Leasing = nil
	assert.Nil(t, engine.IceLeasingTCO(ice, testProfile()))

	ice = testICE()
	ice.ICESpecs = nil
	assert.Nil(t, engine.IceLeasingTCO(ice, testProfile()))
}

func extendedProfile() domain.UserProfile {
	p := testProfile()
	p.AnnualMileage = d(20000)
	p.HasWallbox = true
	p.IsCompanyCar = true
	p.LivesInCity = true
	p.ChargingScenario = domain.ChargingScenario{Home: d(0.7), Work: d(0.1), PublicAC: d(0.15), PublicDC: d(0.05)}
	return p
}

func TestVibeAboTCO_Additivity(t *testing.T) {
	engine := testEngine()
	p := extendedProfile()

	r := engine.VibeAboTCO(testEV(), p)
	require.NotNil(t, r)

	sum := r.StartFee.
		Add(r.TotalMonthlyRates).
		Add(r.TotalEnergyCost).
		Add(r.ExcessKmCost).
		Add(r.WallboxCost).
		Add(r.CompanyCarTax).
		Sub(r.ParkingSavings)
	assert.True(t, sum.Equal(r.TotalCostOfOwnership), "sum %s != tco %s", sum, r.TotalCostOfOwnership)

	assert.True(t, r.StartFee.Equal(d(199)))
	assert.True(t, r.TotalMonthlyRates.Equal(d(499*60)))
	// 100000 km driven, 75000 included
	assert.True(t, r.ExcessKmCost.Equal(d(5000)))
	assert.True(t, r.WallboxCost.Equal(d(1500)))
	assert.True(t, r.CompanyCarTax.Equal(d(2100)))
	assert.True(t, r.ParkingSavings.Equal(d(3000)))

	var energy decimal.Decimal
	for _, y := range r.YearlyCosts {
		energy = energy.Add(y.EnergyCost)
		assert.True(t, y.MaintenanceCost.IsZero())
		assert.True(t, y.InsuranceCost.IsZero())
		assert.True(t, y.TaxCost.IsZero())
		assert.True(t, y.THGIncome.IsZero())
		assert.True(t, y.ParkingAdjustment.Equal(d(-600)))
	}
	assert.True(t, energy.Equal(r.TotalEnergyCost))

	assert.True(t, r.CostPerMonth.Equal(r.TotalCostOfOwnership.Div(d(60))))
	assert.True(t, r.CostPerKm.Equal(r.TotalCostOfOwnership.Div(d(100000))))
	assert.Equal(t, "Test EV", r.VehicleName)
}

func TestIceLeasingTCO_Additivity(t *testing.T) {
	engine := testEngine()
	p := extendedProfile()

	r := engine.IceLeasingTCO(testICE(), p)
	require.NotNil(t, r)

	sum := r.DownPayment.
		Add(r.TotalMonthlyRates).
		Add(r.TotalFuelCost).
		Add(r.TotalMaintenanceCost).
		Add(r.TotalInsuranceCost).
		Add(r.TotalTaxCost).
		Add(r.ExcessKmCost).
		Add(r.CompanyCarTax).
		Add(r.ParkingCost)
	assert.True(t, sum.Equal(r.TotalCostOfOwnership), "sum %s != tco %s", sum, r.TotalCostOfOwnership)

	assert.True(t, r.DownPayment.Equal(d(2500)))
	// 100000 km driven, 75000 included at 0.12
	assert.True(t, r.ExcessKmCost.Equal(d(3000)))
	assert.True(t, r.TotalTaxCost.Equal(d(400)))
	assert.True(t, r.TotalInsuranceCost.Equal(d(765*5)))
	assert.True(t, r.TotalMaintenanceCost.Equal(d(6000)))
	assert.True(t, r.CompanyCarTax.Equal(d(6300)))
	assert.True(t, r.ParkingCost.Equal(d(6000)))

	for i, y := range r.YearlyCosts {
		assert.Equal(t, i+1, y.Year)
		assert.Equal(t, 2025+i, y.CalendarYear)
		assert.True(t, y.TaxCost.Equal(d(80)))
		assert.True(t, y.ParkingAdjustment.Equal(d(1200)))
	}
}

func TestPipelines_YearlyAndMonthlyEndAtTCO(t *testing.T) {
	engine := testEngine()

	profiles := map[string]domain.UserProfile{
		"basic":    testProfile(),
		"extended": extendedProfile(),
	}
	for _, years := range []int{1, 3, 7} {
		p := extendedProfile()
		p.HoldingPeriodYears = years
		p.PriceForecast = domain.ForecastAggressive
		profiles[fmt.Sprintf("aggressive-%dy", years)] = p
	}

	for name, p := range profiles {
		t.Run(name, func(t *testing.T) {
			sub := engine.VibeAboTCO(testEV(), p)
			lease := engine.IceLeasingTCO(testICE(), p)
			require.NotNil(t, sub)
			require.NotNil(t, lease)

			months := p.HoldingPeriodYears * 12
			require.Len(t, sub.MonthlyData, months)
			require.Len(t, lease.MonthlyData, months)
			require.Len(t, sub.YearlyCosts, p.HoldingPeriodYears)
			require.Len(t, lease.YearlyCosts, p.HoldingPeriodYears)

			assertClose(t, sub.TotalCostOfOwnership, sub.MonthlyData[months-1].Cumulative, 1)
			assertClose(t, lease.TotalCostOfOwnership, lease.MonthlyData[months-1].Cumulative, 1)

			assertClose(t, sub.TotalCostOfOwnership, sub.YearlyCosts[p.HoldingPeriodYears-1].CumulativeCost, 0.000001)
			assertClose(t, lease.TotalCostOfOwnership, lease.YearlyCosts[p.HoldingPeriodYears-1].CumulativeCost, 0.000001)

			for i, m := range sub.MonthlyData {
				assert.Equal(t, i+1, m.Month)
				assert.True(t, m.Cumulative.Equal(m.Cumulative.Round(0)), "monthly values are whole euros")
			}
		})
	}
}

func TestPipelines_PriceStepsAtMonth13(t *testing.T) {
	engine := testEngine()

	// Numbers chosen so every monthly increment is a whole euro
	ice := domain.Vehicle{
		ID:          "step-ice",
		Name:        "Step ICE",
		DriveType:   domain.DriveTypeICE,
		BasePrice:   d(20000),
		Consumption: domain.Consumption{Combined: d(10)},
		ICESpecs:    &domain.ICESpecs{EngineSize: 1200, CO2Emissions: d(95)},
		Leasing: &domain.LeaseTerms{
			MonthlyRate:       d(300),
			IncludedKmPerYear: d(20000),
			ExcessKmRate:      d(0.1),
		},
		MaintenanceCostPerKm: d(0.05),
		InsuranceClass:       8,
	}
	p := testProfile()
	p.AnnualMileage = d(12000)
	p.FuelPrice = d(1)
	p.HoldingPeriodYears = 2

	r := engine.IceLeasingTCO(ice, p)
	require.NotNil(t, r)

	// year 1: 300 + (1200 fuel + 600 maintenance + 360 insurance + 24 tax)/12
	assert.True(t, r.MonthlyData[0].Cumulative.Equal(d(482)))
	assert.True(t, r.MonthlyData[11].Cumulative.Equal(d(482*12)))
	// year 2 fuel is 5% dearer: 1260/12 = 105
	assert.True(t, r.MonthlyData[12].Cumulative.Sub(r.MonthlyData[11].Cumulative).Equal(d(487)))
	assert.True(t, r.MonthlyData[23].Cumulative.Equal(d(482*12+487*12)))

	assert.True(t, r.YearlyCosts[0].EnergyPrice.Equal(d(1)))
	assert.True(t, r.YearlyCosts[1].EnergyPrice.Equal(d(1.05)))
	assert.True(t, r.TotalFuelCost.Equal(d(2460)))
}

func TestVibeAboTCO_ElectricityCompounding(t *testing.T) {
	engine := testEngine()
	p := testProfile()
	p.HoldingPeriodYears = 3

	r := engine.VibeAboTCO(testEV(), p)
	require.NotNil(t, r)

	assert.True(t, r.YearlyCosts[0].EnergyCost.Equal(d(864)))
	assert.True(t, r.YearlyCosts[1].EnergyPrice.Equal(d(0.3296)))
	assert.True(t, r.YearlyCosts[2].EnergyPrice.Equal(d(0.339488)))

	p.PriceForecast = "unknown"
	flat := engine.VibeAboTCO(testEV(), p)
	require.NotNil(t, flat)
	for _, y := range flat.YearlyCosts {
		assert.True(t, y.EnergyCost.Equal(d(864)), "unknown forecast keeps prices flat")
	}
}

func TestPipelines_ZeroMileage(t *testing.T) {
	engine := testEngine()
	p := testProfile()
	p.AnnualMileage = decimal.Zero

	sub := engine.VibeAboTCO(testEV(), p)
	lease := engine.IceLeasingTCO(testICE(), p)
	require.NotNil(t, sub)
	require.NotNil(t, lease)

	assert.True(t, sub.TotalEnergyCost.IsZero())
	assert.True(t, sub.ExcessKmCost.IsZero())
	assert.True(t, lease.TotalFuelCost.IsZero())
	assert.True(t, lease.ExcessKmCost.IsZero())
	assert.True(t, sub.CostPerKm.IsZero(), "zero distance must not divide by zero")
	assert.True(t, lease.CostPerKm.IsZero())
}

func TestPipelines_MileageMonotonicity(t *testing.T) {
	engine := testEngine()
	p := extendedProfile()

	var prevEnergy, prevFuel decimal.Decimal
	for km := int64(0); km <= 50000; km += 2500 {
		p.AnnualMileage = decimal.NewFromInt(km)
		sub := engine.VibeAboTCO(testEV(), p)
		lease := engine.IceLeasingTCO(testICE(), p)
		require.NotNil(t, sub)
		require.NotNil(t, lease)

		assert.True(t, sub.TotalEnergyCost.GreaterThanOrEqual(prevEnergy), "energy at %d km", km)
		assert.True(t, lease.TotalFuelCost.GreaterThanOrEqual(prevFuel), "fuel at %d km", km)
		prevEnergy, prevFuel = sub.TotalEnergyCost, lease.TotalFuelCost
	}
}

func TestPipelines_Idempotent(t *testing.T) {
	engine := testEngine()
	p := extendedProfile()

	first := engine.VibeAboTCO(testEV(), p)
	second := engine.VibeAboTCO(testEV(), p)
	assert.Equal(t, first, second)

	firstLease := engine.IceLeasingTCO(testICE(), p)
	secondLease := engine.IceLeasingTCO(testICE(), p)
	assert.Equal(t, firstLease, secondLease)
}

func TestPipelines_DoNotMutateInputs(t *testing.T) {
	engine := testEngine()
	p := extendedProfile()
	before := p
	ev := testEV()
	evBefore := *ev.Subscription

	engine.VibeAboTCO(ev, p)
	engine.PurchaseTCO(ev, p)

	assert.Equal(t, before, p)
	assert.Equal(t, evBefore, *ev.Subscription)
}

func TestPurchaseTCO(t *testing.T) {
	engine := testEngine()
	p := testProfile()
	p.HasWallbox = true
	p.PriceForecast = ""

	ev := testEV()
	ev.AvailableSubsidies = []domain.Subsidy{{ID: "city", Amount: d(1000)}}

	r := engine.PurchaseTCO(ev, p)
	require.NotNil(t, r)

	assert.True(t, r.NetPurchasePrice.Equal(d(39000)))
	assert.True(t, r.WallboxCost.Equal(d(1500)))
	assert.True(t, r.TotalEnergyCost.Equal(d(864*5)))
	assert.True(t, r.TotalTaxCost.IsZero(), "EV exempt through 2030")
	assert.True(t, r.TotalTHGIncome.Equal(d(1500)))
	assert.True(t, r.ResidualValue.Add(r.TotalDepreciation).Equal(d(40000)))

	cumulative := r.YearlyCosts[len(r.YearlyCosts)-1].CumulativeCost
	assert.True(t, r.TotalCostOfOwnership.Equal(cumulative.Sub(r.ResidualValue)))

	expected := r.NetPurchasePrice.
		Add(r.WallboxCost).
		Add(r.TotalEnergyCost).
		Add(r.TotalMaintenanceCost).
		Add(r.TotalInsuranceCost).
		Add(r.TotalTaxCost).
		Sub(r.TotalTHGIncome).
		Sub(r.ResidualValue)
	assert.True(t, expected.Equal(r.TotalCostOfOwnership))

	ice := engine.PurchaseTCO(testICE(), p)
	require.NotNil(t, ice)
	assert.True(t, ice.WallboxCost.IsZero(), "wallbox only counts for EVs")
	assert.True(t, ice.TotalTaxCost.Equal(d(400)))
}

func TestPipelines_OutOfRangeInputsStillCompute(t *testing.T) {
	engine := testEngine()
	tests := []struct {
		name    string
		years   int
		mileage decimal.Decimal
	}{
		{"zero holding period", 0, d(15000)},
		{"negative holding period", -1, d(15000)},
		{"negative mileage", 3, d(-5000)},
		{"negative everything", -2, d(-5000)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testProfile()
			p.HoldingPeriodYears = tt.years
			p.AnnualMileage = tt.mileage

			var (
				sub      *domain.VibeAboTCOResult
				lease    *domain.IceLeasingTCOResult
				purchase *domain.PurchaseTCOResult
			)
			require.NotPanics(t, func() {
				sub = engine.VibeAboTCO(testEV(), p)
				lease = engine.IceLeasingTCO(testICE(), p)
				purchase = engine.PurchaseTCO(testEV(), p)
			})
			require.NotNil(t, sub)
			require.NotNil(t, lease)
			require.NotNil(t, purchase)

			if tt.years <= 0 {
				assert.Empty(t, sub.MonthlyData)
				assert.Empty(t, lease.MonthlyData)
				assert.Empty(t, sub.YearlyCosts)
				assert.Empty(t, purchase.YearlyCosts)
				assert.True(t, sub.TotalMonthlyRates.IsZero())
				assert.True(t, lease.TotalMonthlyRates.IsZero())
			} else {
				assert.Len(t, sub.MonthlyData, tt.years*12)
			}
		})
	}
}
