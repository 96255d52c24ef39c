// Package pricing implements the cross-border price calculation engine:
// shipping-rate tables, the tariff/duty model, and the forward and inverse
// price solvers used to research eBay/Mercari resale margins on the
// Japan -> US corridor.
//
// The engine is pure computation. Settings are an immutable value merged from
// documented defaults plus caller overrides; every calculation is a function
// of (settings, input price) with no I/O and bounded iteration counts.
//
// All rate fields are stored as whole-number percentages (18 means 18%) and
// divided by 100 at the point of use. Monetary JPY outputs are rounded to
// whole yen only when a result is produced; internal computation always runs
// on unrounded floats.
package pricing

import (
	"errors"
	"fmt"

	"github.com/shiraberu/pricing-go/internal/domain/valueobject"
)

// ShippingMode selects how the shipping cost is resolved.
type ShippingMode string

const (
	// ShippingModeFixed uses the flat ShippingCostJPY setting.
	ShippingModeFixed ShippingMode = "fixed"

	// ShippingModeTable resolves the cost from the carrier rate tables using
	// the package's chargeable weight.
	ShippingModeTable ShippingMode = "table"
)

// Settings errors.
var (
	ErrInvalidExchangeRate = errors.New("exchange rate must be positive")
	ErrInvalidShippingMode = errors.New("invalid shipping mode")
)

// Settings holds every numeric assumption of the calculation: currency
// conversion, marketplace fees, the tariff model, and shipping selection.
// A Settings value is immutable per calculation call; derive changed
// settings with Merge.
type Settings struct {
	// ExchangeRate is JPY per 1 USD.
	ExchangeRate float64 `json:"exchangeRate" mapstructure:"exchange_rate"`

	// TargetProfitRate is the desired profit as a percentage of the
	// delivered (DDP) price.
	TargetProfitRate float64 `json:"targetProfitRate" mapstructure:"target_profit_rate"`

	// FeeRate is the eBay final value fee percentage.
	FeeRate float64 `json:"feeRate" mapstructure:"fee_rate"`

	// AdRate is the promoted-listings advertising fee percentage.
	AdRate float64 `json:"adRate" mapstructure:"ad_rate"`

	// PayoneerRate is the payment-processor fee percentage, charged on the
	// proceeds after the eBay and ad fees.
	PayoneerRate float64 `json:"payoneerRate" mapstructure:"payoneer_rate"`

	// SafetyMargin inflates the fee-adjusted tariff rate to protect margin
	// against estimation error, as a percentage.
	SafetyMargin float64 `json:"safetyMargin" mapstructure:"safety_margin"`

	// TariffRate is the nominal import duty percentage.
	TariffRate float64 `json:"tariffRate" mapstructure:"tariff_rate"`

	// VATRate is the destination VAT percentage.
	VATRate float64 `json:"vatRate" mapstructure:"vat_rate"`

	// ProcessingFeeRate is the customs-processing fee percentage applied on
	// top of duty.
	ProcessingFeeRate float64 `json:"processingFeeRate" mapstructure:"processing_fee_rate"`

	// CEMpfJPY is the flat per-shipment customs fee in yen, charged only on
	// the Cpass-Economy carrier.
	CEMpfJPY float64 `json:"ceMpf" mapstructure:"ce_mpf"`

	// MpfUSD is a flat per-shipment customs fee in USD.
	MpfUSD float64 `json:"mpfUsd" mapstructure:"mpf_usd"`

	// EUShippingDiffJPY is a flat shipping-cost differential in yen folded
	// into the duty total.
	EUShippingDiffJPY float64 `json:"euShippingDiff" mapstructure:"eu_shipping_diff"`

	// ShippingMode selects fixed-cost or rate-table shipping.
	ShippingMode ShippingMode `json:"shippingMode" mapstructure:"shipping_mode"`

	// ShippingCostJPY is the flat shipping cost used in fixed mode, and the
	// fallback when a rate-table route is unavailable.
	ShippingCostJPY float64 `json:"shippingCost" mapstructure:"shipping_cost"`

	// ShippingThresholdJPY switches from the low-price to the high-price
	// carrier once the reference price/cost reaches it.
	ShippingThresholdJPY float64 `json:"shippingThreshold" mapstructure:"shipping_threshold"`

	// LowPriceCarrier serves shipments below the threshold. CarrierNone
	// disables the low-price leg.
	LowPriceCarrier Carrier `json:"lowPriceMethod" mapstructure:"low_price_method"`

	// HighPriceCarrier serves shipments at or above the threshold.
	HighPriceCarrier Carrier `json:"highPriceMethod" mapstructure:"high_price_method"`

	// CarrierOverride forces a specific carrier. CarrierAuto (or empty)
	// enables threshold/weight auto-selection.
	CarrierOverride Carrier `json:"shippingMethod" mapstructure:"shipping_method"`

	// ActualWeightGrams is the measured package weight.
	ActualWeightGrams int `json:"actualWeight" mapstructure:"actual_weight"`

	// Package holds the package dimensions for volumetric weight.
	Package valueobject.Dimensions `json:"package" mapstructure:"package"`

	// FedexFuelSurcharge is the FedEx fuel surcharge percentage.
	FedexFuelSurcharge float64 `json:"fedexFuelSurcharge" mapstructure:"fedex_fuel_surcharge"`

	// DHLFuelSurcharge is the DHL fuel surcharge percentage.
	DHLFuelSurcharge float64 `json:"dhlFuelSurcharge" mapstructure:"dhl_fuel_surcharge"`

	// CpassDiscount is the consolidator discount percentage, applied to the
	// fuel-inclusive subtotal.
	CpassDiscount float64 `json:"cpassDiscount" mapstructure:"cpass_discount"`

	// FedexExtraPer500g is the flat fee in yen per 500 g increment above the
	// first on Cpass-FedEx.
	FedexExtraPer500g float64 `json:"fedexExtraPer500g" mapstructure:"fedex_extra_per_500g"`

	// DHLExtraPer500g is the flat fee in yen per 500 g increment above the
	// first on Cpass-DHL.
	DHLExtraPer500g float64 `json:"dhlExtraPer500g" mapstructure:"dhl_extra_per_500g"`
}

// DefaultSettings returns the documented default settings. This is the single
// authoritative default table; every consumer must resolve settings through
// it rather than duplicating values.
//
// Returns:
//   - Settings: complete default settings
func DefaultSettings() Settings {
	return Settings{
		ExchangeRate:         155,
		TargetProfitRate:     20,
		FeeRate:              18,
		AdRate:               10,
		PayoneerRate:         2,
		SafetyMargin:         3,
		TariffRate:           15,
		VATRate:              0,
		ProcessingFeeRate:    2.1,
		CEMpfJPY:             296,
		MpfUSD:               0,
		EUShippingDiffJPY:    0,
		ShippingMode:         ShippingModeFixed,
		ShippingCostJPY:      3000,
		ShippingThresholdJPY: 5500,
		LowPriceCarrier:      CarrierEPacket,
		HighPriceCarrier:     CarrierCpassFedex,
		CarrierOverride:      CarrierAuto,
		ActualWeightGrams:    500,
		Package:              valueobject.NewDimensions(20, 20, 20),
		FedexFuelSurcharge:   29.75,
		DHLFuelSurcharge:     30,
		CpassDiscount:        3,
		FedexExtraPer500g:    115,
		DHLExtraPer500g:      96,
	}
}

// Overrides carries a partial settings patch. Nil fields keep the current
// value; set fields replace it. A zero value is a deliberate override, not a
// missing field, which is why every field is a pointer.
type Overrides struct {
	ExchangeRate         *float64                `json:"exchangeRate,omitempty" mapstructure:"exchange_rate"`
	TargetProfitRate     *float64                `json:"targetProfitRate,omitempty" mapstructure:"target_profit_rate"`
	FeeRate              *float64                `json:"feeRate,omitempty" mapstructure:"fee_rate"`
	AdRate               *float64                `json:"adRate,omitempty" mapstructure:"ad_rate"`
	PayoneerRate         *float64                `json:"payoneerRate,omitempty" mapstructure:"payoneer_rate"`
	SafetyMargin         *float64                `json:"safetyMargin,omitempty" mapstructure:"safety_margin"`
	TariffRate           *float64                `json:"tariffRate,omitempty" mapstructure:"tariff_rate"`
	VATRate              *float64                `json:"vatRate,omitempty" mapstructure:"vat_rate"`
	ProcessingFeeRate    *float64                `json:"processingFeeRate,omitempty" mapstructure:"processing_fee_rate"`
	CEMpfJPY             *float64                `json:"ceMpf,omitempty" mapstructure:"ce_mpf"`
	MpfUSD               *float64                `json:"mpfUsd,omitempty" mapstructure:"mpf_usd"`
	EUShippingDiffJPY    *float64                `json:"euShippingDiff,omitempty" mapstructure:"eu_shipping_diff"`
	ShippingMode         *ShippingMode           `json:"shippingMode,omitempty" mapstructure:"shipping_mode"`
	ShippingCostJPY      *float64                `json:"shippingCost,omitempty" mapstructure:"shipping_cost"`
	ShippingThresholdJPY *float64                `json:"shippingThreshold,omitempty" mapstructure:"shipping_threshold"`
	LowPriceCarrier      *Carrier                `json:"lowPriceMethod,omitempty" mapstructure:"low_price_method"`
	HighPriceCarrier     *Carrier                `json:"highPriceMethod,omitempty" mapstructure:"high_price_method"`
	CarrierOverride      *Carrier                `json:"shippingMethod,omitempty" mapstructure:"shipping_method"`
	ActualWeightGrams    *int                    `json:"actualWeight,omitempty" mapstructure:"actual_weight"`
	Package              *valueobject.Dimensions `json:"package,omitempty" mapstructure:"package"`
	FedexFuelSurcharge   *float64                `json:"fedexFuelSurcharge,omitempty" mapstructure:"fedex_fuel_surcharge"`
	DHLFuelSurcharge     *float64                `json:"dhlFuelSurcharge,omitempty" mapstructure:"dhl_fuel_surcharge"`
	CpassDiscount        *float64                `json:"cpassDiscount,omitempty" mapstructure:"cpass_discount"`
	FedexExtraPer500g    *float64                `json:"fedexExtraPer500g,omitempty" mapstructure:"fedex_extra_per_500g"`
	DHLExtraPer500g      *float64                `json:"dhlExtraPer500g,omitempty" mapstructure:"dhl_extra_per_500g"`
}

// Merge returns a new Settings with every non-nil override applied on top of
// s. Merge never fails: fields the caller did not set keep their current
// value, so the result is always complete.
//
// Parameters:
//   - o: partial overrides
//
// Returns:
//   - Settings: the merged settings value
func (s Settings) Merge(o Overrides) Settings {
	if o.ExchangeRate != nil {
		s.ExchangeRate = *o.ExchangeRate
	}
	if o.TargetProfitRate != nil {
		s.TargetProfitRate = *o.TargetProfitRate
	}
	if o.FeeRate != nil {
		s.FeeRate = *o.FeeRate
	}
	if o.AdRate != nil {
		s.AdRate = *o.AdRate
	}
	if o.PayoneerRate != nil {
		s.PayoneerRate = *o.PayoneerRate
	}
	if o.SafetyMargin != nil {
		s.SafetyMargin = *o.SafetyMargin
	}
	if o.TariffRate != nil {
		s.TariffRate = *o.TariffRate
	}
	if o.VATRate != nil {
		s.VATRate = *o.VATRate
	}
	if o.ProcessingFeeRate != nil {
		s.ProcessingFeeRate = *o.ProcessingFeeRate
	}
	if o.CEMpfJPY != nil {
		s.CEMpfJPY = *o.CEMpfJPY
	}
	if o.MpfUSD != nil {
		s.MpfUSD = *o.MpfUSD
	}
	if o.EUShippingDiffJPY != nil {
		s.EUShippingDiffJPY = *o.EUShippingDiffJPY
	}
	if o.ShippingMode != nil {
		s.ShippingMode = *o.ShippingMode
	}
	if o.ShippingCostJPY != nil {
		s.ShippingCostJPY = *o.ShippingCostJPY
	}
	if o.ShippingThresholdJPY != nil {
		s.ShippingThresholdJPY = *o.ShippingThresholdJPY
	}
	if o.LowPriceCarrier != nil {
		s.LowPriceCarrier = *o.LowPriceCarrier
	}
	if o.HighPriceCarrier != nil {
		s.HighPriceCarrier = *o.HighPriceCarrier
	}
	if o.CarrierOverride != nil {
		s.CarrierOverride = *o.CarrierOverride
	}
	if o.ActualWeightGrams != nil {
		s.ActualWeightGrams = *o.ActualWeightGrams
	}
	if o.Package != nil {
		s.Package = *o.Package
	}
	if o.FedexFuelSurcharge != nil {
		s.FedexFuelSurcharge = *o.FedexFuelSurcharge
	}
	if o.DHLFuelSurcharge != nil {
		s.DHLFuelSurcharge = *o.DHLFuelSurcharge
	}
	if o.CpassDiscount != nil {
		s.CpassDiscount = *o.CpassDiscount
	}
	if o.FedexExtraPer500g != nil {
		s.FedexExtraPer500g = *o.FedexExtraPer500g
	}
	if o.DHLExtraPer500g != nil {
		s.DHLExtraPer500g = *o.DHLExtraPer500g
	}
	return s
}

// Resolve merges overrides onto the default settings. This is the entry point
// for hydrating settings from persisted configuration.
//
// Parameters:
//   - o: partial overrides
//
// Returns:
//   - Settings: complete settings (defaults plus overrides)
func Resolve(o Overrides) Settings {
	return DefaultSettings().Merge(o)
}

// Validate checks the settings for configuration errors: an unrecognized
// carrier code or shipping mode, or a non-positive exchange rate. Percentage
// fields are deliberately not range-checked here; degenerate fee
// combinations are guarded at the point where they would divide by zero.
//
// Returns:
//   - error: the first configuration error found, or nil
func (s Settings) Validate() error {
	if s.ExchangeRate <= 0 {
		return ErrInvalidExchangeRate
	}
	if s.ShippingMode != ShippingModeFixed && s.ShippingMode != ShippingModeTable {
		return fmt.Errorf("%w: %q", ErrInvalidShippingMode, s.ShippingMode)
	}
	if s.CarrierOverride != "" && s.CarrierOverride != CarrierAuto && !s.CarrierOverride.IsValid() {
		return fmt.Errorf("carrier override %q: %w", s.CarrierOverride, ErrUnknownCarrier)
	}
	if s.LowPriceCarrier != CarrierNone && !s.LowPriceCarrier.IsValid() {
		return fmt.Errorf("low-price carrier %q: %w", s.LowPriceCarrier, ErrUnknownCarrier)
	}
	if !s.HighPriceCarrier.IsValid() {
		return fmt.Errorf("high-price carrier %q: %w", s.HighPriceCarrier, ErrUnknownCarrier)
	}
	return nil
}
