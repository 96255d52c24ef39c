// Package service contains the application services (use cases) that sit
// between the HTTP interface and the domain layer.
package service

import (
	"sync"

	"github.com/shiraberu/pricing-go/internal/application/dto"
	"github.com/shiraberu/pricing-go/internal/application/port"
	"github.com/shiraberu/pricing-go/internal/domain/pricing"
)

// PricingService runs price calculations against the current settings.
// The stored settings are a snapshot guarded by a read-write mutex;
// individual requests may layer one-off overrides on top without
// affecting the stored state.
type PricingService struct {
	mu       sync.RWMutex
	settings pricing.Settings
	logger   port.Logger
}

// NewPricingService creates a pricing service with the given base settings.
//
// Parameters:
//   - base: complete settings, typically pricing.Resolve over configured
//     overrides
//   - logger: structured logger
//
// Returns:
//   - *PricingService: the service
//   - error: a configuration error if the settings are invalid
func NewPricingService(base pricing.Settings, logger port.Logger) (*PricingService, error) {
	if err := base.Validate(); err != nil {
		return nil, err
	}
	return &PricingService{
		settings: base,
		logger:   logger,
	}, nil
}

// Settings returns the current stored settings snapshot.
func (s *PricingService) Settings() pricing.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// UpdateSettings merges the overrides onto the stored settings and persists
// the result as the new snapshot. Invalid results are rejected without
// changing the stored state.
//
// Parameters:
//   - o: partial settings patch
//
// Returns:
//   - pricing.Settings: the new stored settings
//   - error: a configuration error if the merged settings are invalid
func (s *PricingService) UpdateSettings(o pricing.Overrides) (pricing.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := s.settings.Merge(o)
	if err := merged.Validate(); err != nil {
		return pricing.Settings{}, err
	}
	s.settings = merged

	s.logger.Info("pricing settings updated",
		"exchange_rate", merged.ExchangeRate,
		"shipping_mode", merged.ShippingMode,
	)
	return merged, nil
}

// MaxPurchasePrice computes the maximum sourcing cost for the requested
// eBay price.
//
// Parameters:
//   - req: the request, optionally carrying one-off settings overrides
//
// Returns:
//   - *pricing.PurchaseResult: the full breakdown
//   - error: validation or configuration errors from the engine
func (s *PricingService) MaxPurchasePrice(req dto.MaxPurchaseRequest) (*pricing.PurchaseResult, error) {
	calc, err := s.calculator(req.Settings)
	if err != nil {
		return nil, err
	}

	result, err := calc.MaxPurchasePrice(req.EbayPriceUSD, req.DutyIncluded)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("max purchase price computed",
		"ebay_price_usd", req.EbayPriceUSD,
		"duty_included", req.DutyIncluded,
		"max_cost_jpy", result.MaxCostJPY,
	)
	return result, nil
}

// RequiredSellingPrice computes the eBay price required to hit the target
// profit for the requested Mercari cost.
//
// Parameters:
//   - req: the request, optionally carrying one-off settings overrides
//
// Returns:
//   - *pricing.SellingResult: the full breakdown with convergence info
//   - error: validation or configuration errors from the engine
func (s *PricingService) RequiredSellingPrice(req dto.SellingPriceRequest) (*pricing.SellingResult, error) {
	calc, err := s.calculator(req.Settings)
	if err != nil {
		return nil, err
	}

	result, err := calc.RequiredSellingPrice(req.MercariPriceJPY)
	if err != nil {
		return nil, err
	}

	if !result.Converged {
		s.logger.Warn("selling price solver did not converge",
			"mercari_price_jpy", req.MercariPriceJPY,
			"iterations", result.Iterations,
		)
	}
	return result, nil
}

// ShippingRate looks up the cost of shipping the configured package with a
// specific carrier.
//
// Parameters:
//   - carrier: the carrier to price
//   - actualGrams: measured weight; 0 uses the configured weight
//
// Returns:
//   - *dto.ShippingRateResponse: cost and billed weight
//   - error: ErrUnknownCarrier or ErrRouteUnavailable
func (s *PricingService) ShippingRate(carrier pricing.Carrier, actualGrams int) (*dto.ShippingRateResponse, error) {
	settings := s.Settings()
	if actualGrams <= 0 {
		actualGrams = settings.ActualWeightGrams
	}

	chargeable := pricing.ChargeableWeight(carrier, actualGrams, settings.Package)
	cost, err := pricing.LookupRate(settings, carrier, actualGrams, chargeable)
	if err != nil {
		return nil, err
	}

	return &dto.ShippingRateResponse{
		Carrier:               carrier,
		CarrierName:           carrier.Name(),
		ActualWeightGrams:     actualGrams,
		ChargeableWeightGrams: chargeable,
		CostJPY:               cost,
	}, nil
}

// calculator builds a calculator from the stored snapshot plus optional
// per-request overrides.
func (s *PricingService) calculator(o *pricing.Overrides) (*pricing.Calculator, error) {
	settings := s.Settings()
	if o != nil {
		settings = settings.Merge(*o)
	}
	return pricing.NewCalculator(settings)
}
