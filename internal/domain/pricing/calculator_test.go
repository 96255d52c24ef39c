package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultCalculator(t *testing.T) *Calculator {
	t.Helper()
	calc, err := NewCalculator(DefaultSettings())
	require.NoError(t, err)
	return calc
}

func TestNewCalculator_RejectsBadSettings(t *testing.T) {
	s := DefaultSettings()
	s.CarrierOverride = "XX"

	_, err := NewCalculator(s)
	assert.ErrorIs(t, err, ErrUnknownCarrier)
}

// Regression fixture derived once by hand from the documented formula chain:
// defaults (rate 155, fees 18/10/2, target 20%, tariff 15%, processing 2.1%,
// safety 3%, fixed shipping 3000 JPY), $100 delivered-duty-paid.
//
// The adjusted duty factor is (0.15/0.72)*1.03*1.021 = 0.2190895833, so the
// pre-duty price converges to 100/1.2190895833 = 82.0284. Duty at that price
// is 82.0284*0.15315 = 12.5627 USD = 1947.21 JPY. Proceeds after fees:
// 15500 - 2790 - 1550 = 11160, minus 2% Payoneer = 10936.80 JPY. Cap:
// 10936.80 - 1947.21 - 3000 - 3100 = 2889.59 -> 2890 JPY.
func TestMaxPurchasePrice_DutyIncludedFixture(t *testing.T) {
	calc := defaultCalculator(t)

	res, err := calc.MaxPurchasePrice(100, true)
	require.NoError(t, err)

	assert.Equal(t, 100.0, res.DDPPriceUSD)
	assert.InDelta(t, 82.0284, res.DDUPriceUSD, 0.001)
	assert.Equal(t, 15500, res.DDPPriceJPY)
	assert.Equal(t, 12714, res.DDUPriceJPY)

	assert.Equal(t, 2790, res.EbayFeeJPY)
	assert.Equal(t, 1550, res.AdFeeJPY)
	assert.Equal(t, 223, res.PayoneerFeeJPY)
	assert.Equal(t, 4563, res.TotalFeesJPY)

	assert.InDelta(t, 12.5627, res.TariffUSD, 0.001)
	assert.Equal(t, 1947, res.TariffJPY)

	assert.Equal(t, CarrierCpassFedex, res.ShippingMethod)
	assert.Equal(t, "Cpass-FedEx", res.ShippingName)
	assert.Equal(t, 3000.0, res.ShippingCostJPY)

	assert.Equal(t, 2890, res.MaxCostJPY)
	assert.Equal(t, 5990, res.BreakEvenCostJPY)

	assert.Equal(t, 3100, res.TargetProfitJPY)
	assert.Equal(t, 3100, res.ActualProfitJPY)
	assert.Equal(t, 20.0, res.ActualProfitRate)
}

// Same settings, $100 pre-duty: duty is evaluated directly on the input,
// 15.315 USD = 2373.83 JPY, giving a cap of 10936.80 - 2373.83 - 3000 - 3100
// = 462.98 -> 463 JPY.
func TestMaxPurchasePrice_DutyExcludedFixture(t *testing.T) {
	calc := defaultCalculator(t)

	res, err := calc.MaxPurchasePrice(100, false)
	require.NoError(t, err)

	assert.Equal(t, 100.0, res.DDUPriceUSD)
	assert.InDelta(t, 15.315, res.TariffUSD, 1e-9)
	assert.Equal(t, 2374, res.TariffJPY)
	assert.Equal(t, 463, res.MaxCostJPY)
	assert.Equal(t, 3563, res.BreakEvenCostJPY)
	assert.Equal(t, 20.0, res.ActualProfitRate)
}

// Sourcing exactly at the cap must hit the target rate by construction,
// whatever the inputs.
func TestMaxPurchasePrice_HitsTargetRate(t *testing.T) {
	for _, price := range []float64{15, 49.99, 100, 350, 1200} {
		for _, dutyIncluded := range []bool{true, false} {
			calc := defaultCalculator(t)

			res, err := calc.MaxPurchasePrice(price, dutyIncluded)
			require.NoError(t, err)
			assert.InDelta(t, res.TargetProfitRate, res.ActualProfitRate, 0.05,
				"price %.2f dutyIncluded %v", price, dutyIncluded)
		}
	}
}

func TestMaxPurchasePrice_ClampsCapsAtZero(t *testing.T) {
	calc := defaultCalculator(t)

	// $10: proceeds cannot cover shipping, so both caps clamp to zero.
	res, err := calc.MaxPurchasePrice(10, false)
	require.NoError(t, err)

	assert.Equal(t, 0, res.MaxCostJPY)
	assert.Equal(t, 0, res.BreakEvenCostJPY)
}

func TestMaxPurchasePrice_DegenerateFeesDoNotBlowUp(t *testing.T) {
	s := DefaultSettings()
	s.FeeRate = 60
	s.AdRate = 50
	calc, err := NewCalculator(s)
	require.NoError(t, err)

	res, err := calc.MaxPurchasePrice(100, true)
	require.NoError(t, err)

	assert.False(t, math.IsNaN(res.DDUPriceUSD))
	assert.False(t, math.IsInf(res.DDUPriceUSD, 0))
	assert.GreaterOrEqual(t, res.MaxCostJPY, 0)
}

func TestMaxPurchasePrice_InvalidInput(t *testing.T) {
	calc := defaultCalculator(t)

	for _, price := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err := calc.MaxPurchasePrice(price, true)
		assert.ErrorIs(t, err, ErrInvalidPrice)
	}
}

// Inverse fixture: 5000 JPY sourcing cost under defaults selects ePacket
// (below the 5500 threshold) with fixed 3000 JPY shipping. Solving
// 0.7056*ddpJPY - actualDuty - 8000 = 0.2*ddpJPY gives a pre-duty price of
// about $111.42 and a delivered price of about $135.83.
func TestRequiredSellingPrice_Fixture(t *testing.T) {
	calc := defaultCalculator(t)

	res, err := calc.RequiredSellingPrice(5000)
	require.NoError(t, err)

	assert.True(t, res.Converged)
	assert.LessOrEqual(t, res.Iterations, priceSolverIterations)

	assert.Equal(t, CarrierEPacket, res.ShippingMethod)
	assert.Equal(t, 3000.0, res.ShippingCostJPY)

	assert.InDelta(t, 111.42, res.DDUPriceUSD, 0.2)
	assert.InDelta(t, 135.83, res.DDPPriceUSD, 0.2)
	assert.InDelta(t, 20.0, res.ProfitRate, 0.1)
}

// Round trip: the cap computed for a delivered price, fed back through the
// inverse solver, must reproduce that delivered price within solver
// tolerance (both legs resolve fixed shipping and a zero customs-fee
// carrier under defaults).
func TestRequiredSellingPrice_RoundTrip(t *testing.T) {
	calc := defaultCalculator(t)

	forward, err := calc.MaxPurchasePrice(100, true)
	require.NoError(t, err)

	inverse, err := calc.RequiredSellingPrice(float64(forward.MaxCostJPY))
	require.NoError(t, err)

	assert.True(t, inverse.Converged)
	assert.InDelta(t, 100.0, inverse.DDPPriceUSD, 0.1)
}

func TestRequiredSellingPrice_DegenerateRates(t *testing.T) {
	s := DefaultSettings()
	s.FeeRate = 60
	s.AdRate = 50
	calc, err := NewCalculator(s)
	require.NoError(t, err)

	_, err = calc.RequiredSellingPrice(5000)
	assert.ErrorIs(t, err, ErrDegenerateRates)
}

func TestRequiredSellingPrice_InvalidInput(t *testing.T) {
	calc := defaultCalculator(t)

	for _, cost := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err := calc.RequiredSellingPrice(cost)
		assert.ErrorIs(t, err, ErrInvalidPrice)
	}
}

func TestCalculatorSettings_ReturnsSnapshot(t *testing.T) {
	s := DefaultSettings()
	calc, err := NewCalculator(s)
	require.NoError(t, err)

	assert.Equal(t, s, calc.Settings())
}
