package dto

import (
	"github.com/shiraberu/pricing-go/internal/domain/pricing"
)

// MaxPurchaseRequest asks for the maximum sourcing cost that still meets the
// target profit at a given eBay selling price.
type MaxPurchaseRequest struct {
	// EbayPriceUSD is the observed or planned eBay selling price.
	EbayPriceUSD float64 `json:"ebayPrice"`

	// DutyIncluded marks the price as delivered (DDP) rather than pre-duty.
	DutyIncluded bool `json:"dutyIncluded"`

	// Settings optionally overrides the stored settings for this one
	// calculation.
	Settings *pricing.Overrides `json:"settings,omitempty"`
}

// SellingPriceRequest asks for the eBay price required to meet the target
// profit on a given Mercari sourcing cost.
type SellingPriceRequest struct {
	// MercariPriceJPY is the sourcing cost on Mercari.
	MercariPriceJPY float64 `json:"mercariPrice"`

	// Settings optionally overrides the stored settings for this one
	// calculation.
	Settings *pricing.Overrides `json:"settings,omitempty"`
}

// ShippingRateResponse reports the cost of shipping a parcel with a specific
// carrier, along with the weight the carrier actually bills.
type ShippingRateResponse struct {
	// Carrier is the carrier code the rate was computed for.
	Carrier pricing.Carrier `json:"carrier"`

	// CarrierName is the human-readable carrier name.
	CarrierName string `json:"carrierName"`

	// ActualWeightGrams is the measured weight used in the lookup.
	ActualWeightGrams int `json:"actualWeight"`

	// ChargeableWeightGrams is the billed weight (actual or volumetric).
	ChargeableWeightGrams int `json:"chargeableWeight"`

	// CostJPY is the shipping cost in yen.
	CostJPY float64 `json:"cost"`
}
