package pricing

// dutyAmounts holds the two readings of import duty for a selling price,
// both in USD.
//
// Actual is the duty the seller will really pay at the nominal tariff rate.
// Adjusted inflates the tariff rate to recover duty cost from margin:
// marketplace and ad fees are charged on the delivered (duty-inclusive)
// price, so the rate is grossed up by the fee drag and then by the safety
// margin. The sourcing-cap calculation reserves margin with Adjusted while
// reporting Actual to the user.
type dutyAmounts struct {
	Actual   float64
	Adjusted float64
}

// computeDuty evaluates the duty model for a pre-duty selling price.
// The flat customs fee applies only on Cpass-Economy shipments.
//
// When fee and ad rates consume the whole price (denominator <= 0) the
// adjusted rate falls back to the nominal tariff rate instead of blowing up.
func computeDuty(s Settings, sellingPriceUSD float64, c Carrier) dutyAmounts {
	tariffRate := s.TariffRate / 100
	vatRate := s.VATRate / 100
	processingFeeRate := s.ProcessingFeeRate / 100
	safetyMargin := s.SafetyMargin / 100
	feeRate := s.FeeRate / 100
	adRate := s.AdRate / 100

	var customsFeeJPY float64
	if c == CarrierCpassEconomy {
		customsFeeJPY = s.CEMpfJPY
	}

	// Flat components shared by both readings.
	flat := customsFeeJPY/s.ExchangeRate + s.MpfUSD + s.EUShippingDiffJPY/s.ExchangeRate

	actual := sellingPriceUSD*tariffRate*(1+processingFeeRate) +
		sellingPriceUSD*vatRate*processingFeeRate +
		flat

	adjustedRate := tariffRate
	if denominator := 1 - feeRate - adRate; denominator > 0 {
		adjustedRate = (tariffRate / denominator) * (1 + safetyMargin)
	}

	adjusted := sellingPriceUSD*adjustedRate*(1+processingFeeRate) +
		sellingPriceUSD*vatRate*processingFeeRate +
		flat

	return dutyAmounts{Actual: actual, Adjusted: adjusted}
}
