package pricing

import "math"

// UnitPrice converts a source-currency base value into the target-currency
// unit price. BRL mode is the identity: BRL list prices are already final.
// EXW-USD runs the three-term markup chain over the risk-adjusted rate.
// The returned value is unrounded; round with Round2 at presentation only.
func UnitPrice(baseValue float64, mode CurrencyMode, riskRate float64, cfg Config) (float64, error) {
	if mode == ModeBRL {
		return baseValue, nil
	}
	if riskRate <= 0 {
		return 0, ErrInvalidRiskRate
	}

	base := baseValue / riskRate
	commission := base * cfg.CommissionPercent / 100

	marginBase := base
	if cfg.MarginBasis == MarginOnBasePlusCommission {
		marginBase = base + commission
	}
	margin := marginBase * cfg.MarginPercent / 100

	return base + commission + margin, nil
}

// Round2 rounds a monetary value to 2 decimal places, half up.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
