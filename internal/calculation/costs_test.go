package calculation

import (
	"testing"

	"github.com/rgehrsitz/evtco/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEnergyCost_HomeOnlyEV(t *testing.T) {
	a := domain.DefaultAssumptions()
	p := testProfile()

	// (18/100) * 15000 * 0.32
	cost := EnergyCost(testEV(), p, a, nil)
	assert.True(t, cost.Equal(d(864)), "got %s", cost)
}

func TestEnergyCost_PriceOverride(t *testing.T) {
	a := domain.DefaultAssumptions()
	p := testProfile()
	override := d(0.40)

	cost := EnergyCost(testEV(), p, a, &override)
	assert.True(t, cost.Equal(d(1080)), "got %s", cost)

	fuel := EnergyCost(testICE(), p, a, &override)
	assert.True(t, fuel.Equal(d(360)), "got %s", fuel)
}

func TestEnergyCost_Fuel(t *testing.T) {
	a := domain.DefaultAssumptions()

	// (6/100) * 15000 * 1.75
	cost := EnergyCost(testICE(), testProfile(), a, nil)
	assert.True(t, cost.Equal(d(1575)), "got %s", cost)
}

func TestEnergyCost_UnmodelledDriveTypes(t *testing.T) {
	a := domain.DefaultAssumptions()
	v := testICE()
	v.DriveType = domain.DriveTypeHybrid

	assert.True(t, EnergyCost(v, testProfile(), a, nil).IsZero())

	ev := testEV()
	ev.EVSpecs = nil
	assert.True(t, EnergyCost(ev, testProfile(), a, nil).IsZero(), "EV without specs costs nothing")
}

func TestEffectiveElectricityPrice(t *testing.T) {
	a := domain.DefaultAssumptions()
	mixed := domain.ChargingScenario{Home: d(0.7), Work: d(0.1), PublicAC: d(0.15), PublicDC: d(0.05)}

	tests := []struct {
		name     string
		mutate   func(p *domain.UserProfile)
		expected decimal.Decimal
	}{
		{
			name:     "home only",
			mutate:   func(p *domain.UserProfile) {},
			expected: d(0.32),
		},
		{
			name: "blended",
			mutate: func(p *domain.UserProfile) {
				p.ChargingScenario = mixed
			},
			// 0.7*0.32 + 0.1*0.256 + 0.15*0.45 + 0.05*0.59
			expected: d(0.3466),
		},
		{
			name: "free employer charging",
			mutate: func(p *domain.UserProfile) {
				p.ChargingScenario = mixed
				p.HasEmployerCharging = true
			},
			expected: d(0.321),
		},
		{
			name: "solar discount",
			mutate: func(p *domain.UserProfile) {
				p.HasSolarPanels = true
				p.SolarSelfConsumptionRate = d(0.3)
			},
			// 0.32 - 1.0*0.3*0.20
			expected: d(0.26),
		},
		{
			name: "solar without home share",
			mutate: func(p *domain.UserProfile) {
				p.ChargingScenario = domain.ChargingScenario{PublicAC: d(1)}
				p.HasSolarPanels = true
				p.SolarSelfConsumptionRate = d(0.5)
			},
			expected: d(0.45),
		},
		{
			name: "not clamped",
			mutate: func(p *domain.UserProfile) {
				p.HomeChargingPrice = d(0.05)
				p.HasSolarPanels = true
				p.SolarSelfConsumptionRate = d(1)
			},
			expected: d(-0.15),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testProfile()
			tt.mutate(&p)
			got := EffectiveElectricityPrice(p, a)
			assert.True(t, got.Equal(tt.expected), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestMaintenanceCost(t *testing.T) {
	a := domain.DefaultAssumptions()
	p := testProfile()

	// 0.06 * 15000
	assert.True(t, MaintenanceCost(testICE(), p, a).Equal(d(900)))
	// 0.04 * 15000 * 0.6
	assert.True(t, MaintenanceCost(testEV(), p, a).Equal(d(360)))
}

func TestInsuranceCost(t *testing.T) {
	a := domain.DefaultAssumptions()
	v := testICE()

	assert.True(t, InsuranceCost(v, a).Equal(d(765)))

	v.InsuranceClass = 5
	assert.True(t, InsuranceCost(v, a).Equal(d(350)), "Should floor at the minimum premium")
}

func TestTaxCost_ICE(t *testing.T) {
	a := domain.DefaultAssumptions()

	// ceil(1500/100)*2 + (120-95)*2
	assert.True(t, TaxCost(testICE(), a, 2025).Equal(d(80)))

	v := testICE()
	v.ICESpecs.EngineSize = 1498
	v.ICESpecs.CO2Emissions = d(90)
	assert.True(t, TaxCost(v, a, 2025).Equal(d(30)), "Should round capacity up and ignore CO2 below the allowance")
}

func TestTaxCost_EVExemption(t *testing.T) {
	a := domain.DefaultAssumptions()
	ev := testEV()

	for year := 2000; year <= a.EVTaxExemptionUntil; year++ {
		assert.True(t, TaxCost(ev, a, year).IsZero(), "year %d", year)
	}

	// No ICE specs means nothing to tax after the exemption either
	assert.True(t, TaxCost(ev, a, a.EVTaxExemptionUntil+1).IsZero())
}

func TestDepreciation(t *testing.T) {
	a := domain.DefaultAssumptions()

	residual, loss := Depreciation(testICE(), a, 1)
	assert.True(t, residual.Equal(d(22500)), "got %s", residual)
	assert.True(t, loss.Equal(d(7500)))

	residual, _ = Depreciation(testEV(), a, 1)
	assert.True(t, residual.Equal(d(29200)), "EV adds the battery penalty, got %s", residual)

	// 30000 * .75 * .85 * .90 * .92 * .93 * .95 * .95
	residual, loss = Depreciation(testICE(), a, 7)
	assert.True(t, residual.Equal(d(13291)), "got %s", residual)
	assert.True(t, loss.Add(residual).Equal(d(30000)))

	residual, loss = Depreciation(testICE(), a, 0)
	assert.True(t, residual.Equal(d(30000)))
	assert.True(t, loss.IsZero())
}

func TestTHGIncomeAndSubsidies(t *testing.T) {
	a := domain.DefaultAssumptions()

	assert.True(t, THGIncome(testEV(), a).Equal(d(300)))
	assert.True(t, THGIncome(testICE(), a).IsZero())

	ev := testEV()
	ev.EVSpecs.THGQuoteEligible = false
	assert.True(t, THGIncome(ev, a).IsZero())

	ev.AvailableSubsidies = []domain.Subsidy{
		{ID: "a", Amount: d(3000)},
		{ID: "b", Amount: d(500)},
	}
	assert.True(t, Subsidies(ev).Equal(d(3500)))
	assert.True(t, Subsidies(testICE()).IsZero())
}

func TestCompanyCarTax(t *testing.T) {
	a := domain.DefaultAssumptions()
	p := testProfile()

	assert.True(t, CompanyCarTax(testEV(), p, a).IsZero())

	p.IsCompanyCar = true
	// 40000 * 0.0025 * 12 * 0.35
	assert.True(t, CompanyCarTax(testEV(), p, a).Equal(d(420)))
	// 30000 * 0.01 * 12 * 0.35
	assert.True(t, CompanyCarTax(testICE(), p, a).Equal(d(1260)))
}

func TestParking(t *testing.T) {
	a := domain.DefaultAssumptions()
	p := testProfile()

	assert.True(t, ParkingSavings(testEV(), p, a).IsZero())
	assert.True(t, ParkingCost(testICE(), p).IsZero())

	p.LivesInCity = true
	assert.True(t, ParkingSavings(testEV(), p, a).Equal(d(600)))
	assert.True(t, ParkingSavings(testICE(), p, a).IsZero())
	assert.True(t, ParkingCost(testICE(), p).Equal(d(1200)))
	assert.True(t, ParkingCost(testEV(), p).IsZero())
}

func TestCO2Emissions(t *testing.T) {
	a := domain.DefaultAssumptions()
	p := testProfile()

	// 2700 kWh * 0.4 * 5 years
	assert.True(t, CO2Emissions(testEV(), p, a).Equal(d(5400)))
	// 0.12 * 15000 * 5
	assert.True(t, CO2Emissions(testICE(), p, a).Equal(d(9000)))

	p.HasSolarPanels = true
	p.SolarSelfConsumptionRate = d(0.5)
	assert.True(t, CO2Emissions(testEV(), p, a).Equal(d(2700)))

	hybrid := testEV()
	hybrid.DriveType = domain.DriveTypeHybrid
	assert.True(t, CO2Emissions(hybrid, p, a).IsZero())
}

func TestCO2Equivalent(t *testing.T) {
	a := domain.DefaultAssumptions()

	eq := CO2Equivalent(d(2500), a)
	assert.True(t, eq.Trees.Equal(d(100)))
	assert.True(t, eq.Flights.Equal(d(5)))
	assert.True(t, eq.Smartphones.Equal(d(35.7)))
	assert.True(t, eq.CarKm.Equal(d(16667)))

	zero := CO2Equivalent(decimal.Zero, a)
	assert.True(t, zero.Flights.IsZero())
	assert.True(t, zero.CarKm.IsZero())

	negative := CO2Equivalent(d(-37.5), a)
	assert.True(t, negative.Trees.Equal(d(-1)), "half a tree rounds up, got %s", negative.Trees)
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in     float64
		places int32
		want   float64
	}{
		{1.5, 0, 2},
		{-1.5, 0, -1},
		{-1.6, 0, -2},
		{2.25, 1, 2.3},
		{-2.25, 1, -2.2},
		{0.04, 1, 0},
	}
	for _, tt := range tests {
		got := roundHalfUp(d(tt.in), tt.places)
		assert.True(t, got.Equal(d(tt.want)), "roundHalfUp(%v, %d) = %s", tt.in, tt.places, got)
	}
}

func TestSafeDiv(t *testing.T) {
	assert.True(t, SafeDiv(d(10), decimal.Zero).IsZero())
	assert.True(t, SafeDiv(d(10), d(4)).Equal(d(2.5)))
}
