package pricing

// PurchaseResult is the output of MaxPurchasePrice: the maximum yen sourcing
// cost that preserves the target profit rate for a given eBay price, with the
// full fee/duty/shipping breakdown. Yen amounts are rounded to whole yen;
// internal computation is unrounded.
type PurchaseResult struct {
	// Input echo.
	EbayPriceUSD float64 `json:"ebayPriceUSD"`
	DutyIncluded bool    `json:"dutyIncluded"`

	// Prices. DDP is the delivered-duty-paid price, DDU the pre-duty price.
	DDPPriceUSD float64 `json:"ddpPriceUSD"`
	DDUPriceUSD float64 `json:"dduPriceUSD"`
	DDPPriceJPY int     `json:"ddpPriceJPY"`
	DDUPriceJPY int     `json:"dduPriceJPY"`

	// Itemized fees.
	EbayFeeJPY     int `json:"ebayFeeJPY"`
	AdFeeJPY       int `json:"adFeeJPY"`
	PayoneerFeeJPY int `json:"payoneerFeeJPY"`
	TotalFeesJPY   int `json:"totalFeesJPY"`

	// Duty, computed at the recovered pre-duty price.
	TariffUSD float64 `json:"tariffUSD"`
	TariffJPY int     `json:"tariffJPY"`

	// Shipping.
	ShippingCostJPY float64 `json:"shippingCostJPY"`
	ShippingMethod  Carrier `json:"shippingMethod"`
	ShippingName    string  `json:"shippingMethodName"`

	// Sourcing caps, clamped at zero.
	MaxCostJPY       int `json:"maxCostJPY"`
	BreakEvenCostJPY int `json:"breakEvenCostJPY"`

	// Profit. ActualProfitRate is the rate achieved when sourcing exactly at
	// the cap; by construction it matches the target modulo rounding.
	TargetProfitRate float64 `json:"targetProfitRate"`
	TargetProfitJPY  int     `json:"targetProfitJPY"`
	ActualProfitJPY  int     `json:"actualProfitJPY"`
	ActualProfitRate float64 `json:"actualProfitRate"`

	ExchangeRate float64 `json:"exchangeRate"`
}

// SellingResult is the output of RequiredSellingPrice: the eBay selling price
// that yields the target profit rate for a given Mercari sourcing cost.
type SellingResult struct {
	// Input echo.
	MercariPriceJPY float64 `json:"mercariPriceJPY"`

	// Prices. DDU is the listed pre-duty price the solver found; DDP adds
	// the margin-protecting adjusted duty.
	DDUPriceUSD float64 `json:"dduPriceUSD"`
	DDPPriceUSD float64 `json:"ddpPriceUSD"`
	DDPPriceJPY int     `json:"ddpPriceJPY"`

	// Itemized fees.
	EbayFeeJPY     int `json:"ebayFeeJPY"`
	AdFeeJPY       int `json:"adFeeJPY"`
	PayoneerFeeJPY int `json:"payoneerFeeJPY"`
	TotalFeesJPY   int `json:"totalFeesJPY"`

	// Duty, computed at the final selling-price iterate.
	TariffUSD float64 `json:"tariffUSD"`
	TariffJPY int     `json:"tariffJPY"`

	// Shipping.
	ShippingCostJPY float64 `json:"shippingCostJPY"`
	ShippingMethod  Carrier `json:"shippingMethod"`
	ShippingName    string  `json:"shippingMethodName"`

	// Profit at the solved price.
	ProfitJPY        int     `json:"profitJPY"`
	ProfitRate       float64 `json:"profitRate"`
	TargetProfitRate float64 `json:"targetProfitRate"`

	// Solver diagnostics. Converged reports whether the profit-rate residual
	// met tolerance within the iteration cap; callers should treat a
	// non-converged result as best-effort.
	Converged  bool `json:"converged"`
	Iterations int  `json:"iterations"`

	ExchangeRate float64 `json:"exchangeRate"`
}
