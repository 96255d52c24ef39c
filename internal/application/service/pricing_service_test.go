package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiraberu/pricing-go/internal/application/dto"
	"github.com/shiraberu/pricing-go/internal/application/port"
	"github.com/shiraberu/pricing-go/internal/domain/pricing"
	"github.com/shiraberu/pricing-go/internal/infrastructure/logging"
	"github.com/shiraberu/pricing-go/pkg/logger"
)

func nopLogger() port.Logger {
	return logging.NewAdapter(logger.NewNop())
}

func newPricingService(t *testing.T) *PricingService {
	t.Helper()
	svc, err := NewPricingService(pricing.DefaultSettings(), nopLogger())
	require.NoError(t, err)
	return svc
}

func TestNewPricingService_RejectsInvalidSettings(t *testing.T) {
	bad := pricing.DefaultSettings()
	bad.ExchangeRate = 0

	_, err := NewPricingService(bad, nopLogger())
	assert.ErrorIs(t, err, pricing.ErrInvalidExchangeRate)
}

func TestUpdateSettings_MergesAndPersists(t *testing.T) {
	svc := newPricingService(t)

	rate := 150.0
	updated, err := svc.UpdateSettings(pricing.Overrides{ExchangeRate: &rate})
	require.NoError(t, err)
	assert.Equal(t, 150.0, updated.ExchangeRate)

	// Other fields keep their defaults.
	assert.Equal(t, 18.0, updated.FeeRate)
	assert.Equal(t, 150.0, svc.Settings().ExchangeRate)
}

func TestUpdateSettings_InvalidKeepsState(t *testing.T) {
	svc := newPricingService(t)

	bad := 0.0
	_, err := svc.UpdateSettings(pricing.Overrides{ExchangeRate: &bad})
	assert.ErrorIs(t, err, pricing.ErrInvalidExchangeRate)

	assert.Equal(t, 155.0, svc.Settings().ExchangeRate)
}

func TestMaxPurchasePrice_UsesStoredSettings(t *testing.T) {
	svc := newPricingService(t)

	res, err := svc.MaxPurchasePrice(dto.MaxPurchaseRequest{
		EbayPriceUSD: 100,
		DutyIncluded: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 2890, res.MaxCostJPY)
}

func TestMaxPurchasePrice_PerRequestOverrideIsEphemeral(t *testing.T) {
	svc := newPricingService(t)

	rate := 100.0
	res, err := svc.MaxPurchasePrice(dto.MaxPurchaseRequest{
		EbayPriceUSD: 100,
		DutyIncluded: false,
		Settings:     &pricing.Overrides{ExchangeRate: &rate},
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, res.ExchangeRate)

	// The stored snapshot is untouched.
	assert.Equal(t, 155.0, svc.Settings().ExchangeRate)
}

func TestRequiredSellingPrice(t *testing.T) {
	svc := newPricingService(t)

	res, err := svc.RequiredSellingPrice(dto.SellingPriceRequest{MercariPriceJPY: 5000})
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.InDelta(t, 20.0, res.ProfitRate, 0.1)
}

func TestShippingRate(t *testing.T) {
	svc := newPricingService(t)

	// Explicit weight.
	res, err := svc.ShippingRate(pricing.CarrierEPacket, 500)
	require.NoError(t, err)
	assert.Equal(t, 2040.0, res.CostJPY)
	assert.Equal(t, 500, res.ChargeableWeightGrams)

	// Zero weight falls back to the configured weight.
	res, err = svc.ShippingRate(pricing.CarrierEMS, 0)
	require.NoError(t, err)
	assert.Equal(t, 500, res.ActualWeightGrams)
	assert.Equal(t, 3900.0, res.CostJPY)

	// The default 20x20x20 package bills volumetric weight on express
	// carriers: 1600 g on Cpass-FedEx.
	res, err = svc.ShippingRate(pricing.CarrierCpassFedex, 500)
	require.NoError(t, err)
	assert.Equal(t, 1600, res.ChargeableWeightGrams)

	_, err = svc.ShippingRate(pricing.Carrier("XX"), 500)
	assert.ErrorIs(t, err, pricing.ErrUnknownCarrier)

	_, err = svc.ShippingRate(pricing.CarrierEPacket, 2500)
	assert.ErrorIs(t, err, pricing.ErrRouteUnavailable)
}
