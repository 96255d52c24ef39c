package pricing

import (
	"errors"
	"fmt"
	"math"
)

// ErrRouteUnavailable is returned when a carrier cannot service the given
// weight: above ePacket's 2 kg ceiling, or beyond the carrier's table range.
// It is an explicit signal, never a fake cost.
var ErrRouteUnavailable = errors.New("carrier cannot service this weight")

// rateTier is one weight band of a carrier's rate table.
// MaxGrams == 0 marks an unbounded top tier.
type rateTier struct {
	MinGrams int
	MaxGrams int
	CostJPY  float64
}

// contains reports whether the tier's [min, max] range covers the weight.
func (t rateTier) contains(grams int) bool {
	if grams < t.MinGrams {
		return false
	}
	return t.MaxGrams == 0 || grams <= t.MaxGrams
}

// rateTables maps each carrier to its ordered, contiguous weight tiers.
// Costs are negotiated rates in yen. This is the single authoritative copy.
var rateTables = map[Carrier][]rateTier{
	CarrierEPacket: {
		{1, 100, 1200}, {101, 200, 1410}, {201, 300, 1620},
		{301, 400, 1830}, {401, 500, 2040}, {501, 600, 2250},
		{601, 700, 2460}, {701, 800, 2670}, {801, 900, 2880},
		{901, 1000, 3090}, {1001, 1100, 3300}, {1101, 1200, 3510},
		{1201, 1300, 3720}, {1301, 1400, 3930}, {1401, 1500, 4140},
		{1501, 1600, 4350}, {1601, 1700, 4560}, {1701, 1800, 4770},
		{1801, 1900, 4980}, {1901, 2000, 5190},
	},
	CarrierCpassFedex: {
		{1, 1000, 1984}, {1001, 1500, 2439}, {1501, 2000, 2666},
		{2001, 2500, 2918}, {2501, 3000, 3173}, {3001, 3500, 3329},
		{3501, 4000, 3382}, {4001, 4500, 3786}, {4501, 5000, 4188},
		{5001, 5500, 4495}, {5501, 6000, 4805}, {6001, 6500, 5114},
		{6501, 7000, 5465}, {7001, 7500, 5893}, {7501, 8000, 6267},
		{8001, 8500, 6444}, {8501, 9000, 6621}, {9001, 9500, 6797},
		{9501, 10000, 8327}, {10001, 30000, 31920},
	},
	CarrierCpassDHL: {
		{1, 1000, 2191}, {1001, 1500, 2482}, {1501, 2000, 2588},
		{2001, 2500, 2719}, {2501, 3000, 3040}, {3001, 3500, 3358},
		{3501, 4000, 3753}, {4001, 4500, 4079}, {4501, 5000, 4406},
		{5001, 5500, 4732}, {5501, 6000, 5058}, {6001, 6500, 5383},
		{6501, 7000, 5753}, {7001, 7500, 6203}, {7501, 8000, 6652},
		{8001, 8500, 7102}, {8501, 9000, 7550}, {9001, 9500, 7999},
		{9501, 10000, 8449}, {10001, 30000, 31343},
	},
	CarrierELogistics: {
		{1, 1000, 3700}, {1001, 1500, 3900}, {1501, 2000, 4100},
		{2001, 2500, 4300}, {2501, 3000, 5600}, {3001, 3500, 5900},
		{3501, 4000, 6300}, {4001, 4500, 6600}, {4501, 5000, 7200},
		{5001, 5500, 7900}, {5501, 6000, 8700}, {6001, 6500, 10300},
		{6501, 7000, 12200}, {7001, 7500, 14100}, {7501, 8000, 16000},
		{8001, 8500, 17900}, {8501, 9000, 19800}, {9001, 9500, 21800},
		{9501, 10000, 23700}, {10001, 30000, 47200},
	},
	CarrierCpassEconomy: {
		{1, 100, 1227}, {101, 200, 1367}, {201, 300, 1581},
		{301, 400, 1778}, {401, 500, 2060}, {501, 600, 2222},
		{601, 700, 2321}, {701, 800, 2703}, {801, 900, 2820},
		{901, 1000, 3020}, {1001, 1100, 3136}, {1101, 1200, 3250},
		{1201, 1300, 3366}, {1301, 1400, 3704}, {1401, 1500, 3816},
		{1501, 1600, 3935}, {1601, 1700, 4046}, {1701, 1800, 4165},
		{1801, 1900, 5056}, {1901, 2000, 5245}, {2001, 2500, 5582},
		{2501, 3000, 6333}, {3001, 3500, 6958}, {3501, 4000, 7704},
		{4001, 4500, 9135}, {4501, 5000, 11733}, {5001, 25000, 40955},
	},
	CarrierEMS: {
		{1, 500, 3900}, {501, 600, 4180}, {601, 700, 4460},
		{701, 800, 4740}, {801, 900, 5020}, {901, 1000, 5300},
		{1001, 1250, 5990}, {1251, 1500, 6600}, {1501, 1750, 7290},
		{1751, 2000, 7900}, {2001, 2500, 9100}, {2501, 3000, 10300},
		{3001, 3500, 11500}, {3501, 4000, 12700}, {4001, 4500, 13900},
		{4501, 5000, 15100}, {5001, 30000, 75100},
	},
}

// baseTierCost scans a carrier's tiers in ascending order and returns the
// cost of the first tier containing the weight.
func baseTierCost(c Carrier, grams int) (float64, error) {
	tiers, ok := rateTables[c]
	if !ok {
		return 0, fmt.Errorf("carrier %q: %w", c, ErrUnknownCarrier)
	}
	for _, tier := range tiers {
		if tier.contains(grams) {
			return tier.CostJPY, nil
		}
	}
	return 0, fmt.Errorf("carrier %s at %d g: %w", c, grams, ErrRouteUnavailable)
}

// expressRate computes the Cpass-FedEx / Cpass-DHL derived rate. The order is
// load-bearing: base tier, then per-500g increments, then fuel surcharge on
// the subtotal, then the consolidator discount on the fuel-inclusive amount.
func expressRate(c Carrier, chargeableGrams int, s Settings) (float64, error) {
	base, err := baseTierCost(c, chargeableGrams)
	if err != nil {
		return 0, err
	}

	var fuelPct, extraPer500 float64
	switch c {
	case CarrierCpassFedex:
		fuelPct = s.FedexFuelSurcharge
		extraPer500 = s.FedexExtraPer500g
	case CarrierCpassDHL:
		fuelPct = s.DHLFuelSurcharge
		extraPer500 = s.DHLExtraPer500g
	}

	rounded := math.Ceil(float64(chargeableGrams)/500) * 500
	overUnits := math.Max(0, (rounded-500)/500)
	subTotal := base + overUnits*extraPer500
	fuel := subTotal * (fuelPct / 100)
	discount := -(subTotal + fuel) * (s.CpassDiscount / 100)

	return math.Round(subTotal + fuel + discount), nil
}

// LookupRate returns the yen cost for shipping the given weights with the
// carrier. ePacket and EMS bill by actual weight; the consolidator express
// carriers apply the derived surcharge/discount formula on top of the base
// tier; everything else is a flat tier hit on the chargeable weight.
//
// Parameters:
//   - s: resolved settings (surcharge/discount parameters)
//   - c: the carrier
//   - actualGrams: measured weight
//   - chargeableGrams: billed weight (max of actual and volumetric)
//
// Returns:
//   - float64: cost in yen
//   - error: ErrRouteUnavailable if the carrier cannot service the weight,
//     ErrUnknownCarrier for an unsupported code
func LookupRate(s Settings, c Carrier, actualGrams, chargeableGrams int) (float64, error) {
	switch c {
	case CarrierEPacket:
		if actualGrams > ePacketMaxGrams {
			return 0, fmt.Errorf("ePacket above %d g: %w", ePacketMaxGrams, ErrRouteUnavailable)
		}
		return baseTierCost(c, actualGrams)
	case CarrierCpassFedex, CarrierCpassDHL:
		return expressRate(c, chargeableGrams, s)
	case CarrierELogistics, CarrierCpassEconomy:
		return baseTierCost(c, chargeableGrams)
	case CarrierEMS:
		return baseTierCost(c, actualGrams)
	default:
		return 0, fmt.Errorf("carrier %q: %w", c, ErrUnknownCarrier)
	}
}

// resolveShippingCost produces the shipping cost and effective carrier for a
// calculation. In fixed mode the flat cost applies. In table mode the rate is
// looked up for the package's chargeable weight; an unavailable route falls
// back to the flat cost so a calculation still completes.
func resolveShippingCost(s Settings, referenceJPY float64) (float64, Carrier, error) {
	carrier, err := EffectiveCarrier(s, referenceJPY)
	if err != nil {
		return 0, "", err
	}

	if s.ShippingMode == ShippingModeFixed {
		return s.ShippingCostJPY, carrier, nil
	}

	chargeable := ChargeableWeight(carrier, s.ActualWeightGrams, s.Package)
	cost, err := LookupRate(s, carrier, s.ActualWeightGrams, chargeable)
	if err != nil {
		if errors.Is(err, ErrRouteUnavailable) {
			return s.ShippingCostJPY, carrier, nil
		}
		return 0, "", err
	}
	return cost, carrier, nil
}
