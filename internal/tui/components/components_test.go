package components

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/evtco/internal/domain"
	"github.com/rgehrsitz/evtco/internal/refdata"
)

func mileageSlider(t *testing.T, v int64) *ParameterSlider {
	t.Helper()
	r, ok := refdata.Slider(refdata.SliderAnnualMileage)
	require.True(t, ok)
	return NewParameterSlider(refdata.SliderAnnualMileage, "Annual mileage", decimal.NewFromInt(v), r).WithUnit(" km")
}

func TestParameterSlider_Steps(t *testing.T) {
	s := mileageSlider(t, 15000)

	assert.True(t, s.Increment())
	assert.True(t, s.Value.Equal(decimal.NewFromInt(16000)))
	assert.True(t, s.Decrement())
	assert.True(t, s.Decrement())
	assert.True(t, s.Value.Equal(decimal.NewFromInt(14000)))

	s.SetValue(decimal.NewFromInt(50000))
	assert.False(t, s.Increment(), "Should not step past the maximum")
	assert.True(t, s.Value.Equal(decimal.NewFromInt(50000)))

	s.SetValue(decimal.NewFromInt(1000))
	assert.True(t, s.Value.Equal(decimal.NewFromInt(5000)), "SetValue should clamp to the minimum")
	assert.False(t, s.Decrement())
}

func TestParameterSlider_PriceStepsStayExact(t *testing.T) {
	r, _ := refdata.Slider(refdata.SliderElectricityPrice)
	s := NewParameterSlider(refdata.SliderElectricityPrice, "Electricity", decimal.RequireFromString("0.32"), r).WithPlaces(2)
	for i := 0; i < 10; i++ {
		s.Increment()
	}
	assert.Equal(t, "0.42", s.Value.String())
	assert.Equal(t, "0.42", s.FormatValue(s.Value))
}

func TestParameterSlider_ClampsInitialValue(t *testing.T) {
	s := mileageSlider(t, 90000)
	assert.True(t, s.Value.Equal(decimal.NewFromInt(50000)))
	assert.InDelta(t, 1.0, s.Percentage(), 1e-9)
}

func TestParameterSlider_Render(t *testing.T) {
	s := mileageSlider(t, 27500).WithDescription("Distance driven per year")
	assert.InDelta(t, 0.5, s.Percentage(), 1e-9)

	out := s.Render()
	assert.Contains(t, out, "Annual mileage")
	assert.Contains(t, out, "27500 km")
	assert.Contains(t, out, "5000 km")
	assert.Contains(t, out, "50000 km")
	assert.Contains(t, out, "Distance driven per year")
	assert.Contains(t, s.RenderCompact(), "Annual mileage:")
}

func chartPoints(months int) []domain.ChartDataPoint {
	points := make([]domain.ChartDataPoint, 0, months+1)
	for m := 0; m <= months; m++ {
		points = append(points, domain.ChartDataPoint{
			Month:                m,
			Year:                 (m + 11) / 12,
			VibeAboCumulative:    decimal.NewFromInt(int64(500 * m)),
			IceLeasingCumulative: decimal.NewFromInt(int64(1000 + 550*m)),
		})
	}
	return points
}

func TestNewCostChart_UsesYearEnds(t *testing.T) {
	c := NewCostChart(chartPoints(36))

	require.Len(t, c.Series, 2)
	assert.Equal(t, []float64{0, 6000, 12000, 18000}, c.Series[0].Points)
	assert.Equal(t, []float64{1000, 7600, 14200, 20800}, c.Series[1].Points)
	assert.Equal(t, []string{"0", "Y1", "Y2", "Y3"}, c.Labels)

	out := c.WithSize(50, 8).Render()
	assert.Contains(t, out, "Cumulative cost")
	assert.Contains(t, out, "VIBE subscription")
	assert.Contains(t, out, "Combustion lease")
	assert.Contains(t, out, "Y3")
}

func TestNewCostChart_Empty(t *testing.T) {
	c := NewCostChart(nil)
	assert.Empty(t, c.Series)
	assert.Contains(t, c.Render(), "No data to display")
}

func TestASCIIChart_SinglePoint(t *testing.T) {
	c := NewASCIIChart("flat").AddSeries("a", []float64{42}, "").WithSize(30, 5)
	assert.NotPanics(t, func() { _ = c.Render() })
}

func TestFormatChartValue(t *testing.T) {
	assert.Equal(t, "500 €", FormatChartValue(500))
	assert.Equal(t, "25k €", FormatChartValue(25000))
	assert.Equal(t, "1.2M €", FormatChartValue(1200000))
}

func TestMetricCard(t *testing.T) {
	card := NewMoneyCard("Savings", decimal.NewFromInt(4500)).
		WithSavings(decimal.NewFromInt(75), " per month")
	require.NotNil(t, card.Trend)
	assert.True(t, card.Trend.Favourable)
	assert.Equal(t, "+75 € per month", card.Trend.Change)

	out := card.Render()
	assert.Contains(t, out, "Savings")
	assert.Contains(t, out, "4.500 €")

	loss := NewMetricCard("Savings", "x").WithSavings(decimal.NewFromInt(-20), "")
	assert.False(t, loss.Trend.Favourable)
	assert.Equal(t, "-20 €", loss.Trend.Change)

	grid := MetricGrid([]*MetricCard{card, loss}, 2)
	assert.Equal(t, 2, strings.Count(grid, "Savings"))
	assert.Empty(t, MetricGrid(nil, 2))
}

func TestVehicleCard(t *testing.T) {
	c, err := refdata.DefaultCatalog()
	require.NoError(t, err)

	ev, ok := c.Find("vw-id3-pro")
	require.True(t, ok)
	card := NewVehicleCard(ev)
	require.NotEmpty(t, card.Highlights)
	assert.Contains(t, card.Highlights[0], "Subscription 499 €/month")

	ice, ok := c.Find("vw-golf-15-tsi")
	require.True(t, ok)
	iceCard := NewVehicleCard(ice).SetActive(true)
	assert.Contains(t, iceCard.Highlights[0], "Lease 329 €/month")
	assert.Contains(t, iceCard.RenderCompact(), "✓")

	list := VehicleListCompact([]*VehicleCard{card, iceCard}, 1)
	lines := strings.Split(list, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "▸")
	assert.Contains(t, VehicleListCompact(nil, 0), "No vehicles available")
}
