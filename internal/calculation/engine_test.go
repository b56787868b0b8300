package calculation

import (
	"testing"

	"github.com/rgehrsitz/evtco/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCalculationEngine(t *testing.T) {
	engine := NewCalculationEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.Assumptions, "Should initialize assumptions")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
	assert.Positive(t, engine.StartYear, "Should default the start year")

	custom := NewCalculationEngineWithAssumptions(nil)
	assert.Equal(t, 2030, custom.Assumptions.EVTaxExemptionUntil, "Should fall back to defaults")
}

func TestCalculationEngine_SetLogger(t *testing.T) {
	engine := NewCalculationEngine()

	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)
	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	engine.VibeAboTCO(testICE(), testProfile())
	assert.NotEmpty(t, customLogger.messages, "Should log skipped pipelines")

	engine.SetLogger(nil)
	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestYearlyEnergyPrices(t *testing.T) {
	prices := yearlyEnergyPrices(decimal.NewFromInt(100), decimal.NewFromFloat(0.1), 3)
	require.Len(t, prices, 3)

	assert.True(t, prices[0].Equal(decimal.NewFromInt(100)))
	assert.True(t, prices[1].Equal(decimal.NewFromInt(110)))
	assert.True(t, prices[2].Equal(decimal.NewFromInt(121)))

	assert.Empty(t, yearlyEnergyPrices(decimal.NewFromInt(1), decimal.Zero, 0))
}

func TestExcessDistanceCost(t *testing.T) {
	rate := decimal.NewFromFloat(0.2)

	cost := excessDistanceCost(decimal.NewFromInt(100000), decimal.NewFromInt(75000), rate)
	assert.True(t, cost.Equal(decimal.NewFromInt(5000)))

	cost = excessDistanceCost(decimal.NewFromInt(50000), decimal.NewFromInt(75000), rate)
	assert.True(t, cost.IsZero(), "Should never charge below the allowance")
}

func TestMonthlySeries_Empty(t *testing.T) {
	series := monthlySeries(decimal.NewFromInt(10), decimal.NewFromInt(5), decimal.Zero, nil)
	assert.Empty(t, series)
}

// TestLogger is a simple logger for testing
type TestLogger struct {
	messages []string
}

func (tl *TestLogger) Debugf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "DEBUG: "+format)
}

func (tl *TestLogger) Infof(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "INFO: "+format)
}

func (tl *TestLogger) Warnf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "WARN: "+format)
}

func (tl *TestLogger) Errorf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "ERROR: "+format)
}

// Fixtures

func d(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func testEV() domain.Vehicle {
	return domain.Vehicle{
		ID:           "test-ev",
		Name:         "Test EV",
		DriveType:    domain.DriveTypeEV,
		VehicleClass: domain.ClassKompakt,
		BasePrice:    d(40000),
		Consumption:  domain.Consumption{Combined: d(18)},
		EVSpecs: &domain.EVSpecs{
			BatteryCapacity:  d(58),
			THGQuoteEligible: true,
		},
		Subscription: &domain.SubscriptionTerms{
			MonthlyRate:        d(499),
			IncludedKmPerMonth: d(1250),
			ExcessKmRate:       d(0.20),
			StartFee:           d(199),
			MinDuration:        1,
		},
		MaintenanceCostPerKm: d(0.04),
		InsuranceClass:       17,
	}
}

func testICE() domain.Vehicle {
	return domain.Vehicle{
		ID:           "test-ice",
		Name:         "Test ICE",
		DriveType:    domain.DriveTypeICE,
		VehicleClass: domain.ClassKompakt,
		BasePrice:    d(30000),
		Consumption:  domain.Consumption{Combined: d(6)},
		ICESpecs: &domain.ICESpecs{
			EngineSize:   1500,
			CO2Emissions: d(120),
			FuelType:     domain.FuelBenzin,
		},
		Leasing: &domain.LeaseTerms{
			MonthlyRate:       d(329),
			IncludedKmPerYear: d(15000),
			ExcessKmRate:      d(0.12),
			DownPayment:       d(2500),
			Duration:          36,
		},
		MaintenanceCostPerKm: d(0.06),
		InsuranceClass:       17,
	}
}

func homeOnly() domain.ChargingScenario {
	return domain.ChargingScenario{Home: d(1), Work: decimal.Zero, PublicAC: decimal.Zero, PublicDC: decimal.Zero}
}

func testProfile() domain.UserProfile {
	return domain.UserProfile{
		AnnualMileage:       d(15000),
		HoldingPeriodYears:  5,
		ChargingScenario:    homeOnly(),
		ElectricityPrice:    d(0.32),
		HomeChargingPrice:   d(0.32),
		PublicChargingPrice: d(0.45),
		FuelPrice:           d(1.75),
		WallboxCost:         d(1500),
		TaxBracket:          d(0.35),
		MonthlyParkingCost:  d(100),
		PriceForecast:       domain.ForecastModerate,
	}
}

func testEngine() *CalculationEngine {
	e := NewCalculationEngine()
	e.StartYear = 2025
	return e
}

func assertClose(t *testing.T, expected, actual decimal.Decimal, tolerance float64) {
	t.Helper()
	diff := expected.Sub(actual).Abs()
	assert.Truef(t, diff.LessThanOrEqual(decimal.NewFromFloat(tolerance)),
		"expected %s, got %s", expected.String(), actual.String())
}
