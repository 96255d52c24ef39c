package pricing

import (
	"errors"
	"fmt"
	"math"

	"github.com/shiraberu/pricing-go/internal/domain/valueobject"
)

// Carrier identifies a shipping method or consolidator service tier.
// The set is closed: the rate tables and customs treatment are negotiated
// per carrier, so an unknown code is a configuration error, never a default.
type Carrier string

// Supported carriers.
const (
	CarrierEPacket       Carrier = "EP"  // Japan Post ePacket (small packet, 2kg ceiling)
	CarrierCpassFedex    Carrier = "CF"  // Cpass-FedEx consolidator express
	CarrierCpassDHL      Carrier = "CD"  // Cpass-DHL consolidator express
	CarrierELogistics    Carrier = "EL"  // eLogistics regional service
	CarrierCpassEconomy  Carrier = "CE"  // Cpass-Economy consolidator
	CarrierEMS           Carrier = "EMS" // Japan Post EMS
)

// Selector sentinels. These are valid settings values but not carriers:
// CarrierAuto defers the choice to the price/weight thresholds, and
// CarrierNone disables the low-price leg entirely.
const (
	CarrierAuto Carrier = "auto"
	CarrierNone Carrier = "NONE"
)

// ePacket refuses parcels above this actual weight regardless of rate tables.
const ePacketMaxGrams = 2000

// volumetricFloorGrams is the minimum chargeable volumetric weight.
const volumetricFloorGrams = 100

// ErrUnknownCarrier is returned when a carrier code is not part of the
// supported set. Typos in configuration must fail fast rather than silently
// fall back to another carrier's rates.
var ErrUnknownCarrier = errors.New("unknown carrier code")

var carrierNames = map[Carrier]string{
	CarrierEPacket:      "ePacket",
	CarrierCpassFedex:   "Cpass-FedEx",
	CarrierCpassDHL:     "Cpass-DHL",
	CarrierELogistics:   "eLogistics",
	CarrierCpassEconomy: "Cpass-Economy",
	CarrierEMS:          "EMS",
}

// IsValid reports whether c is one of the supported carrier codes.
// The auto/none sentinels are not carriers.
func (c Carrier) IsValid() bool {
	_, ok := carrierNames[c]
	return ok
}

// Name returns the display name of the carrier.
//
// Returns:
//   - string: display name, or the raw code for unknown carriers
func (c Carrier) Name() string {
	if name, ok := carrierNames[c]; ok {
		return name
	}
	return string(c)
}

// billsActualWeight reports whether the carrier bills strictly by actual
// weight. ePacket and EMS ignore volumetric weight entirely.
func (c Carrier) billsActualWeight() bool {
	return c == CarrierEPacket || c == CarrierEMS
}

// volumetricDivisor returns the carrier's volumetric weight divisor.
// Cpass-Economy uses 8; every other table-rate carrier uses 5.
func (c Carrier) volumetricDivisor() float64 {
	if c == CarrierCpassEconomy {
		return 8
	}
	return 5
}

// VolumetricWeight converts package dimensions into a volumetric weight in
// grams using the carrier's divisor. A 100 g floor always applies; an empty
// package yields zero.
//
// Parameters:
//   - c: the carrier whose divisor applies
//   - dims: package dimensions in centimeters
//
// Returns:
//   - int: volumetric weight in grams
func VolumetricWeight(c Carrier, dims valueobject.Dimensions) int {
	volume := dims.Volume()
	if volume == 0 {
		return 0
	}

	grams := int(math.Round(volume / c.volumetricDivisor()))
	if grams < volumetricFloorGrams {
		return volumetricFloorGrams
	}
	return grams
}

// ChargeableWeight returns the weight the carrier bills against: the greater
// of actual and volumetric weight, except for carriers billed strictly by
// actual weight.
//
// Parameters:
//   - c: the carrier
//   - actualGrams: measured weight in grams
//   - dims: package dimensions in centimeters
//
// Returns:
//   - int: chargeable weight in grams
func ChargeableWeight(c Carrier, actualGrams int, dims valueobject.Dimensions) int {
	if c.billsActualWeight() {
		return actualGrams
	}
	if vol := VolumetricWeight(c, dims); vol > actualGrams {
		return vol
	}
	return actualGrams
}

// EffectiveCarrier decides which carrier actually services a shipment.
//
// Precedence:
//  1. An explicit non-auto override wins unconditionally.
//  2. If the low-price leg is disabled, or the reference price/cost reaches
//     the threshold, the high-price carrier is used.
//  3. ePacket physically cannot carry parcels over 2 kg; fall through to the
//     high-price carrier.
//  4. Otherwise the low-price carrier.
//
// Parameters:
//   - s: resolved settings
//   - referenceJPY: the price or cost compared against the threshold
//
// Returns:
//   - Carrier: the effective carrier
//   - error: ErrUnknownCarrier if the settings name an unsupported code
func EffectiveCarrier(s Settings, referenceJPY float64) (Carrier, error) {
	if s.CarrierOverride != "" && s.CarrierOverride != CarrierAuto {
		if !s.CarrierOverride.IsValid() {
			return "", fmt.Errorf("carrier override %q: %w", s.CarrierOverride, ErrUnknownCarrier)
		}
		return s.CarrierOverride, nil
	}

	if !s.HighPriceCarrier.IsValid() {
		return "", fmt.Errorf("high-price carrier %q: %w", s.HighPriceCarrier, ErrUnknownCarrier)
	}
	if s.LowPriceCarrier != CarrierNone && !s.LowPriceCarrier.IsValid() {
		return "", fmt.Errorf("low-price carrier %q: %w", s.LowPriceCarrier, ErrUnknownCarrier)
	}

	if s.LowPriceCarrier == CarrierNone || referenceJPY >= s.ShippingThresholdJPY {
		return s.HighPriceCarrier, nil
	}

	if s.LowPriceCarrier == CarrierEPacket && s.ActualWeightGrams > ePacketMaxGrams {
		return s.HighPriceCarrier, nil
	}

	return s.LowPriceCarrier, nil
}
