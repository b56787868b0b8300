package transform

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/evtco/internal/domain"
	"github.com/rgehrsitz/evtco/internal/refdata"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyTransforms_LeavesBaseUntouched(t *testing.T) {
	base := refdata.DefaultProfile()
	out, err := ApplyTransforms(base, []ProfileTransform{
		&SetMileage{Km: decimal.NewFromInt(25000)},
		&SetHoldingPeriod{Years: 3},
	})
	require.NoError(t, err)

	assert.True(t, out.AnnualMileage.Equal(decimal.NewFromInt(25000)))
	assert.Equal(t, 3, out.HoldingPeriodYears)
	assert.True(t, base.AnnualMileage.Equal(decimal.NewFromInt(15000)), "Base profile must not change")
	assert.Equal(t, 5, base.HoldingPeriodYears)
}

func TestApplyTransforms_Empty(t *testing.T) {
	base := refdata.DefaultProfile()
	out, err := ApplyTransforms(base, nil)
	require.NoError(t, err)
	assert.Equal(t, base, out)
}

func TestApplyTransforms_Sequential(t *testing.T) {
	base := refdata.DefaultProfile()
	out, err := ApplyTransforms(base, []ProfileTransform{
		&SetMileage{Km: decimal.NewFromInt(10000)},
		&AdjustMileage{DeltaKm: decimal.NewFromInt(2500)},
		&AdjustMileage{DeltaKm: decimal.NewFromInt(-500)},
	})
	require.NoError(t, err)
	assert.True(t, out.AnnualMileage.Equal(decimal.NewFromInt(12000)))
}

func TestApplyTransforms_Errors(t *testing.T) {
	base := refdata.DefaultProfile()

	_, err := ApplyTransforms(base, []ProfileTransform{nil})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index 0 is nil")

	_, err = ApplyTransforms(base, []ProfileTransform{&AdjustMileage{DeltaKm: decimal.NewFromInt(-20000)}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "adjust_mileage validation failed")

	var te *TransformError
	assert.True(t, errors.As(err, &te))
	assert.Equal(t, "validate", te.Operation)
}

func TestTransforms_Validate(t *testing.T) {
	base := refdata.DefaultProfile()
	tests := []struct {
		name      string
		transform ProfileTransform
		wantErr   bool
	}{
		{"mileage ok", &SetMileage{Km: decimal.NewFromInt(1)}, false},
		{"mileage zero", &SetMileage{Km: decimal.Zero}, true},
		{"holding zero", &SetHoldingPeriod{Years: 0}, true},
		{"fuel negative", &SetFuelPrice{Price: decimal.NewFromInt(-1)}, true},
		{"electricity zero", &SetElectricityPrice{Price: decimal.Zero}, true},
		{"forecast unknown", &SetPriceForecast{Forecast: "wild"}, true},
		{"forecast ok", &SetPriceForecast{Forecast: domain.ForecastAggressive}, false},
		{"preset unknown", &SetChargingPreset{Preset: "solarOnly"}, true},
		{"preset ok", &SetChargingPreset{Preset: "mixed"}, false},
		{"wallbox negative cost", &SetWallbox{Enabled: true, Cost: decimal.NewFromInt(-1)}, true},
		{"company car bracket too high", &CompanyCar{TaxBracket: decimal.NewFromFloat(1.5)}, true},
		{"parking negative", &CityParking{MonthlyCost: decimal.NewFromInt(-10)}, true},
		{"employer charging", &EmployerCharging{Enabled: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.transform.Validate(base)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSetElectricityPrice_MovesHomePrice(t *testing.T) {
	base := refdata.DefaultProfile()
	out, err := (&SetElectricityPrice{Price: decimal.RequireFromString("0.30")}).Apply(base)
	require.NoError(t, err)
	assert.True(t, out.ElectricityPrice.Equal(decimal.RequireFromString("0.30")))
	assert.True(t, out.HomeChargingPrice.Equal(decimal.RequireFromString("0.30")))
	assert.True(t, out.PublicChargingPrice.Equal(base.PublicChargingPrice))
}

func TestSetChargingPreset_Apply(t *testing.T) {
	out, err := (&SetChargingPreset{Preset: "publicOnly"}).Apply(refdata.DefaultProfile())
	require.NoError(t, err)
	assert.True(t, out.ChargingScenario.Home.IsZero())
	assert.True(t, out.ChargingScenario.Total().Equal(decimal.NewFromInt(1)))
}

func TestSetWallbox_KeepsCostWhenUnset(t *testing.T) {
	base := refdata.DefaultProfile()
	base.HasWallbox = false

	out, err := (&SetWallbox{Enabled: true}).Apply(base)
	require.NoError(t, err)
	assert.True(t, out.HasWallbox)
	assert.True(t, out.WallboxCost.Equal(base.WallboxCost))

	out, err = (&SetWallbox{Enabled: true, Cost: decimal.NewFromInt(1500)}).Apply(base)
	require.NoError(t, err)
	assert.True(t, out.WallboxCost.Equal(decimal.NewFromInt(1500)))
}

func TestCompanyCarAndParking_Apply(t *testing.T) {
	out, err := ApplyTransforms(refdata.DefaultProfile(), []ProfileTransform{
		&CompanyCar{TaxBracket: decimal.RequireFromString("0.42")},
		&CityParking{MonthlyCost: decimal.NewFromInt(120)},
	})
	require.NoError(t, err)
	assert.True(t, out.IsCompanyCar)
	assert.True(t, out.TaxBracket.Equal(decimal.RequireFromString("0.42")))
	assert.True(t, out.LivesInCity)
	assert.True(t, out.MonthlyParkingCost.Equal(decimal.NewFromInt(120)))
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "unchanged", Describe(nil))
	assert.Equal(t, "drive 25000 km per year, no wallbox", Describe([]ProfileTransform{
		&SetMileage{Km: decimal.NewFromInt(25000)},
		&SetWallbox{Enabled: false},
	}))
	assert.Equal(t, "-3000 km per year", (&AdjustMileage{DeltaKm: decimal.NewFromInt(-3000)}).Description())
	assert.Equal(t, "company car at 42% tax", (&CompanyCar{TaxBracket: decimal.RequireFromString("0.42")}).Description())
}

func TestTransformError(t *testing.T) {
	inner := errors.New("boom")
	err := NewTransformError("set_mileage", "apply", "bad input", inner)
	assert.Equal(t, "transform set_mileage (apply): bad input: boom", err.Error())
	assert.ErrorIs(t, err, inner)

	assert.Equal(t, "transform wallbox (validate): nope", NewTransformError("wallbox", "validate", "nope", nil).Error())
}
