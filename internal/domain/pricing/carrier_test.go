package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiraberu/pricing-go/internal/domain/valueobject"
)

func TestEffectiveCarrier_OverrideWins(t *testing.T) {
	s := DefaultSettings()
	s.CarrierOverride = CarrierEMS
	s.ActualWeightGrams = 9000

	// Explicit override beats both the price threshold and the weight logic.
	carrier, err := EffectiveCarrier(s, 1000000)
	require.NoError(t, err)
	assert.Equal(t, CarrierEMS, carrier)
}

func TestEffectiveCarrier_ThresholdSelectsHighPrice(t *testing.T) {
	s := DefaultSettings()

	carrier, err := EffectiveCarrier(s, s.ShippingThresholdJPY)
	require.NoError(t, err)
	assert.Equal(t, CarrierCpassFedex, carrier)
}

func TestEffectiveCarrier_BelowThresholdSelectsLowPrice(t *testing.T) {
	s := DefaultSettings()

	carrier, err := EffectiveCarrier(s, s.ShippingThresholdJPY-1)
	require.NoError(t, err)
	assert.Equal(t, CarrierEPacket, carrier)
}

func TestEffectiveCarrier_DisabledLowPriceLeg(t *testing.T) {
	s := DefaultSettings()
	s.LowPriceCarrier = CarrierNone

	carrier, err := EffectiveCarrier(s, 100)
	require.NoError(t, err)
	assert.Equal(t, CarrierCpassFedex, carrier)
}

func TestEffectiveCarrier_EPacketOverweightFallsThrough(t *testing.T) {
	s := DefaultSettings()
	s.ActualWeightGrams = 2001

	carrier, err := EffectiveCarrier(s, 100)
	require.NoError(t, err)
	assert.Equal(t, CarrierCpassFedex, carrier)
}

func TestEffectiveCarrier_UnknownOverride(t *testing.T) {
	s := DefaultSettings()
	s.CarrierOverride = "XX"

	_, err := EffectiveCarrier(s, 100)
	assert.ErrorIs(t, err, ErrUnknownCarrier)
}

func TestVolumetricWeight(t *testing.T) {
	box := valueobject.NewDimensions(20, 20, 20) // 8000 cm³

	assert.Equal(t, 1600, VolumetricWeight(CarrierCpassFedex, box))
	// Cpass-Economy uses divisor 8 instead of 5.
	assert.Equal(t, 1000, VolumetricWeight(CarrierCpassEconomy, box))
}

func TestVolumetricWeight_FloorApplies(t *testing.T) {
	tiny := valueobject.NewDimensions(1, 1, 1)

	assert.Equal(t, 100, VolumetricWeight(CarrierCpassFedex, tiny))
	assert.Equal(t, 100, VolumetricWeight(CarrierCpassEconomy, tiny))
}

func TestVolumetricWeight_EmptyPackage(t *testing.T) {
	assert.Equal(t, 0, VolumetricWeight(CarrierCpassFedex, valueobject.Dimensions{}))
}

func TestChargeableWeight(t *testing.T) {
	box := valueobject.NewDimensions(20, 20, 20) // volumetric 1600 g at divisor 5

	// Table carriers bill the greater of actual and volumetric weight.
	assert.Equal(t, 1600, ChargeableWeight(CarrierCpassFedex, 500, box))
	assert.Equal(t, 2500, ChargeableWeight(CarrierCpassFedex, 2500, box))

	// ePacket and EMS bill strictly by actual weight.
	assert.Equal(t, 500, ChargeableWeight(CarrierEPacket, 500, box))
	assert.Equal(t, 500, ChargeableWeight(CarrierEMS, 500, box))
}

func TestCarrierName(t *testing.T) {
	assert.Equal(t, "ePacket", CarrierEPacket.Name())
	assert.Equal(t, "Cpass-FedEx", CarrierCpassFedex.Name())
	assert.Equal(t, "XX", Carrier("XX").Name())
}
