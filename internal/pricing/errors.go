package pricing

import "errors"

var (
	// ErrNoConfiguration means the two-tier config lookup found neither a
	// supplier-specific nor a global record.
	ErrNoConfiguration = errors.New("no_pricing_configuration")
	// ErrInvalidRiskRate means the risk-adjusted rate came out <= 0, which
	// makes the EXW-USD conversion undefined. Surfaced instead of the old
	// silent zero price.
	ErrInvalidRiskRate = errors.New("invalid_risk_rate")
	// ErrMalformedInput means a quantity, volume, base value or spot rate
	// was non-finite or out of range. Nothing is partially computed.
	ErrMalformedInput = errors.New("malformed_pricing_input")
)
