package checkout

import "github.com/shopspring/decimal"

// EffectivePriceCents applies a percentage discount to a base price and
// rounds half-up to whole cents. Wallet math everywhere else stays in int64
// minor units; decimals appear only here, where fractions of a cent can.
func EffectivePriceCents(priceCents int64, discountPct int) int64 {
	if discountPct <= 0 {
		return priceCents
	}
	if discountPct >= 100 {
		return 0
	}

	price := decimal.New(priceCents, -2)
	factor := decimal.New(int64(100-discountPct), -2)

	// Round is half away from zero, which for non-negative prices is the
	// half-up rule: 14.9950 -> 15.00, 14.9925 -> 14.99.
	return price.Mul(factor).Round(2).Shift(2).IntPart()
}
