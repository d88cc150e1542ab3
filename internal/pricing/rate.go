package pricing

// RiskRate derives the risk-adjusted exchange rate from the spot quote and
// the resolved configuration. Fixed-rate trading partners quote their own
// rate and ignore the spot entirely.
func RiskRate(spotRate float64, cfg Config) (float64, error) {
	rate := spotRate - cfg.RateValue
	if cfg.FixedRate {
		rate = cfg.RateValue
	}
	if rate <= 0 {
		return 0, ErrInvalidRiskRate
	}
	return rate, nil
}
