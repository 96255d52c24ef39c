package pricing

import (
	"errors"
	"fmt"
	"math"
)

// Solver iteration caps. Both are fixed, not dynamic: every calculation
// terminates in bounded time, and the counts are part of the output contract.
const (
	// dutyRecoveryIterations recovers the pre-duty price from a
	// duty-inclusive one by fixed-point iteration.
	dutyRecoveryIterations = 10

	// priceSolverIterations caps the inverse selling-price relaxation.
	priceSolverIterations = 20

	// priceSolverTolerance is the profit-rate residual below which the
	// inverse solver is considered converged.
	priceSolverTolerance = 0.0001
)

// Calculator errors.
var (
	// ErrInvalidPrice is returned for negative, NaN or infinite inputs.
	ErrInvalidPrice = errors.New("price must be a non-negative finite number")

	// ErrDegenerateRates is returned when fee, ad and target profit rates
	// together consume the entire selling price, leaving the inverse solver
	// with no solution.
	ErrDegenerateRates = errors.New("fee, ad and target profit rates leave no revenue margin")
)

// Calculator evaluates sourcing caps and required selling prices against an
// immutable settings snapshot. A Calculator is safe for concurrent use; to
// change settings, build a new Calculator from a merged Settings value.
type Calculator struct {
	settings Settings
}

// NewCalculator creates a Calculator for the given settings.
//
// Parameters:
//   - s: complete settings (see Resolve)
//
// Returns:
//   - *Calculator: the calculator
//   - error: a configuration error if the settings fail Validate
func NewCalculator(s Settings) (*Calculator, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("calculator settings: %w", err)
	}
	return &Calculator{settings: s}, nil
}

// Settings returns the settings snapshot the calculator was built with.
func (c *Calculator) Settings() Settings {
	return c.settings
}

// MaxPurchasePrice derives the maximum yen sourcing cost that preserves the
// target profit rate when selling at the given eBay price.
//
// When dutyIncluded is true the input is a delivered-duty-paid price: the
// pre-duty price is recovered by a 10-step fixed-point iteration against the
// margin-protecting adjusted duty, and the reported duty is then evaluated at
// the recovered price. When false the input is already pre-duty and the duty
// is computed on it directly.
//
// Fees are deducted sequentially: eBay and ad fees on the delivered price,
// then the Payoneer fee on the remainder. Duty, shipping and the target
// profit follow; the cap and break-even cost are clamped at zero.
//
// Parameters:
//   - ebayPriceUSD: the eBay listing price in USD
//   - dutyIncluded: whether that price already includes import duty
//
// Returns:
//   - *PurchaseResult: the full breakdown
//   - error: ErrInvalidPrice or a carrier configuration error
func (c *Calculator) MaxPurchasePrice(ebayPriceUSD float64, dutyIncluded bool) (*PurchaseResult, error) {
	if err := checkPrice(ebayPriceUSD); err != nil {
		return nil, err
	}

	s := c.settings
	feeRate := s.FeeRate / 100
	adRate := s.AdRate / 100
	payoneerRate := s.PayoneerRate / 100
	targetProfitRate := s.TargetProfitRate / 100

	ddpPriceJPY := ebayPriceUSD * s.ExchangeRate

	shippingCostJPY, carrier, err := resolveShippingCost(s, ddpPriceJPY)
	if err != nil {
		return nil, err
	}

	sellingPriceUSD := ebayPriceUSD
	if dutyIncluded {
		// DDP = DDU + duty, and duty depends on DDU; recover DDU by
		// fixed-point iteration with a clamp against overshoot.
		for i := 0; i < dutyRecoveryIterations; i++ {
			duty := computeDuty(s, sellingPriceUSD, carrier)
			sellingPriceUSD = ebayPriceUSD - duty.Adjusted
			if sellingPriceUSD < 0 {
				sellingPriceUSD = ebayPriceUSD * 0.8
			}
		}
	}
	tariffUSD := computeDuty(s, sellingPriceUSD, carrier).Actual

	dduPriceJPY := sellingPriceUSD * s.ExchangeRate

	ebayFeeJPY := ddpPriceJPY * feeRate
	adFeeJPY := ddpPriceJPY * adRate
	afterEbayFees := ddpPriceJPY - ebayFeeJPY - adFeeJPY
	payoneerFeeJPY := afterEbayFees * payoneerRate
	afterPayoneer := afterEbayFees - payoneerFeeJPY

	tariffJPY := tariffUSD * s.ExchangeRate

	targetProfitJPY := ddpPriceJPY * targetProfitRate
	maxCostJPY := afterPayoneer - tariffJPY - shippingCostJPY - targetProfitJPY
	breakEvenCostJPY := afterPayoneer - tariffJPY - shippingCostJPY

	// Profit achieved when sourcing exactly at the (unclamped) cap.
	actualProfitJPY := afterPayoneer - tariffJPY - maxCostJPY - shippingCostJPY
	actualProfitRate := (actualProfitJPY / ddpPriceJPY) * 100

	return &PurchaseResult{
		EbayPriceUSD:     ebayPriceUSD,
		DutyIncluded:     dutyIncluded,
		DDPPriceUSD:      ebayPriceUSD,
		DDUPriceUSD:      sellingPriceUSD,
		DDPPriceJPY:      roundYen(ddpPriceJPY),
		DDUPriceJPY:      roundYen(dduPriceJPY),
		EbayFeeJPY:       roundYen(ebayFeeJPY),
		AdFeeJPY:         roundYen(adFeeJPY),
		PayoneerFeeJPY:   roundYen(payoneerFeeJPY),
		TotalFeesJPY:     roundYen(ebayFeeJPY + adFeeJPY + payoneerFeeJPY),
		TariffUSD:        tariffUSD,
		TariffJPY:        roundYen(tariffJPY),
		ShippingCostJPY:  shippingCostJPY,
		ShippingMethod:   carrier,
		ShippingName:     carrier.Name(),
		MaxCostJPY:       roundYen(math.Max(0, maxCostJPY)),
		BreakEvenCostJPY: roundYen(math.Max(0, breakEvenCostJPY)),
		TargetProfitRate: s.TargetProfitRate,
		TargetProfitJPY:  roundYen(targetProfitJPY),
		ActualProfitJPY:  roundYen(actualProfitJPY),
		ActualProfitRate: round1(actualProfitRate),
		ExchangeRate:     s.ExchangeRate,
	}, nil
}

// RequiredSellingPrice finds the eBay selling price that yields exactly the
// target profit rate for a fixed Mercari sourcing cost.
//
// There is no closed form: duty is nonlinear in the selling price through
// the adjusted-rate gross-up, so the solver relaxes the price by the
// profit-rate residual for up to 20 iterations. The reported result is
// recomputed in full at the final iterate, and carries convergence
// diagnostics so callers can judge a best-effort answer.
//
// Parameters:
//   - mercariPriceJPY: the yen sourcing cost
//
// Returns:
//   - *SellingResult: the full breakdown
//   - error: ErrInvalidPrice, ErrDegenerateRates, or a carrier
//     configuration error
func (c *Calculator) RequiredSellingPrice(mercariPriceJPY float64) (*SellingResult, error) {
	if err := checkPrice(mercariPriceJPY); err != nil {
		return nil, err
	}

	s := c.settings
	feeRate := s.FeeRate / 100
	adRate := s.AdRate / 100
	payoneerRate := s.PayoneerRate / 100
	targetProfitRate := s.TargetProfitRate / 100

	shippingCostJPY, carrier, err := resolveShippingCost(s, mercariPriceJPY)
	if err != nil {
		return nil, err
	}

	costJPY := mercariPriceJPY

	// First approximation ignoring duty and the processor fee.
	denominator := 1 - feeRate - adRate - targetProfitRate
	if denominator <= 0 {
		return nil, ErrDegenerateRates
	}
	sellingPriceUSD := (costJPY + shippingCostJPY) / s.ExchangeRate / denominator

	converged := false
	iterations := 0
	for i := 0; i < priceSolverIterations; i++ {
		iterations++

		duty := computeDuty(s, sellingPriceUSD, carrier)
		ddpPriceJPY := (sellingPriceUSD + duty.Adjusted) * s.ExchangeRate

		ebayFeeJPY := ddpPriceJPY * feeRate
		adFeeJPY := ddpPriceJPY * adRate
		afterEbayFees := ddpPriceJPY - ebayFeeJPY - adFeeJPY
		afterPayoneer := afterEbayFees - afterEbayFees*payoneerRate
		profit := afterPayoneer - duty.Actual*s.ExchangeRate - costJPY - shippingCostJPY

		rateDiff := targetProfitRate - profit/ddpPriceJPY
		if math.Abs(rateDiff) < priceSolverTolerance {
			converged = true
			break
		}
		sellingPriceUSD *= 1 + rateDiff
	}

	// Final full computation at the last iterate; the carrier and duty in
	// the result reflect the final price, not an earlier one.
	duty := computeDuty(s, sellingPriceUSD, carrier)
	ddpPriceUSD := sellingPriceUSD + duty.Adjusted
	ddpPriceJPY := ddpPriceUSD * s.ExchangeRate

	ebayFeeJPY := ddpPriceJPY * feeRate
	adFeeJPY := ddpPriceJPY * adRate
	afterEbayFees := ddpPriceJPY - ebayFeeJPY - adFeeJPY
	payoneerFeeJPY := afterEbayFees * payoneerRate
	afterPayoneer := afterEbayFees - payoneerFeeJPY
	tariffJPY := duty.Actual * s.ExchangeRate
	profitJPY := afterPayoneer - tariffJPY - costJPY - shippingCostJPY
	profitRate := (profitJPY / ddpPriceJPY) * 100

	return &SellingResult{
		MercariPriceJPY:  mercariPriceJPY,
		DDUPriceUSD:      round2(sellingPriceUSD),
		DDPPriceUSD:      round2(ddpPriceUSD),
		DDPPriceJPY:      roundYen(ddpPriceJPY),
		EbayFeeJPY:       roundYen(ebayFeeJPY),
		AdFeeJPY:         roundYen(adFeeJPY),
		PayoneerFeeJPY:   roundYen(payoneerFeeJPY),
		TotalFeesJPY:     roundYen(ebayFeeJPY + adFeeJPY + payoneerFeeJPY),
		TariffUSD:        duty.Actual,
		TariffJPY:        roundYen(tariffJPY),
		ShippingCostJPY:  shippingCostJPY,
		ShippingMethod:   carrier,
		ShippingName:     carrier.Name(),
		ProfitJPY:        roundYen(profitJPY),
		ProfitRate:       round1(profitRate),
		TargetProfitRate: s.TargetProfitRate,
		Converged:        converged,
		Iterations:       iterations,
		ExchangeRate:     s.ExchangeRate,
	}, nil
}

// checkPrice rejects negative, NaN and infinite inputs.
func checkPrice(v float64) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidPrice, v)
	}
	return nil
}

// roundYen rounds to the nearest whole yen for output.
func roundYen(v float64) int {
	return int(math.Round(v))
}

// round1 rounds to one decimal place (percent display precision).
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// round2 rounds to two decimal places (cent precision).
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
