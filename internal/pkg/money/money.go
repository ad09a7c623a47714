// Package money implements the fixed-point financial arithmetic used across
// the loan ledger. All amounts are int64 base units, all rates are basis
// points, and every division floors. Payment splits and scores must be
// bit-for-bit reproducible, so floating point is never used here.
package money

const (
	// BpsDenominator is the basis-point scale: 10000 bps = 100%.
	BpsDenominator = 10000

	// PeriodsPerYear is the divisor of the annual rate for one period's
	// interest. It stays 12 regardless of the configured period length.
	PeriodsPerYear = 12

	// LateSurchargePercent is added to the interest due when a payment
	// arrives after the due date.
	LateSurchargePercent = 10
)

// PeriodInterest returns the interest due for one period on the remaining
// principal: remaining * annualRateBps / (12 * 10000), floored.
func PeriodInterest(remainingPrincipal, annualRateBps int64) int64 {
	return remainingPrincipal * annualRateBps / (PeriodsPerYear * BpsDenominator)
}

// WithLateSurcharge applies the 10% late surcharge to an interest figure,
// floored.
func WithLateSurcharge(interest int64) int64 {
	return interest * (100 + LateSurchargePercent) / 100
}

// Fee returns amount * feeBps / 10000, floored.
func Fee(amount, feeBps int64) int64 {
	return amount * feeBps / BpsDenominator
}

// EvenSplit divides the remaining principal by the remaining periods,
// floored. The final period absorbs the rounding remainder because it
// divides by one.
func EvenSplit(remainingPrincipal, remainingPeriods int64) int64 {
	if remainingPeriods < 1 {
		remainingPeriods = 1
	}
	return remainingPrincipal / remainingPeriods
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Min returns the smaller of a and b.
func Min(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
