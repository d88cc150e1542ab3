package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnitPrice_BRLIdentity(t *testing.T) {
	cfg := Config{CommissionPercent: 5, MarginPercent: 10}

	for _, v := range []float64{0, 0.01, 100, 1234.56, 98765.4321} {
		price, err := UnitPrice(v, ModeBRL, 0, cfg)
		assert.NoError(t, err)
		assert.Equal(t, v, price, "BRL list prices are final, no chain applies")
	}
}

func TestUnitPrice_MarginOnBase(t *testing.T) {
	// Scenario A: base 100, risk rate 5.20, commission 5%, margin 10% on base.
	cfg := Config{CommissionPercent: 5, MarginPercent: 10, MarginBasis: MarginOnBase}

	price, err := UnitPrice(100, ModeEXWUSD, 5.20, cfg)
	assert.NoError(t, err)
	// base 19.2308 + commission 0.9615 + margin 1.9231
	assert.InDelta(t, 22.1154, price, 1e-4)
	assert.Equal(t, 22.12, Round2(price))
}

func TestUnitPrice_MarginOnBasePlusCommission(t *testing.T) {
	cfg := Config{CommissionPercent: 5, MarginPercent: 10, MarginBasis: MarginOnBasePlusCommission}

	price, err := UnitPrice(100, ModeEXWUSD, 5.20, cfg)
	assert.NoError(t, err)
	// base 19.2308 + commission 0.9615 + margin on both 2.0192
	assert.InDelta(t, 22.2115, price, 1e-4)
}

func TestUnitPrice_InvalidRiskRate(t *testing.T) {
	cfg := Config{CommissionPercent: 5, MarginPercent: 10}

	_, err := UnitPrice(100, ModeEXWUSD, 0, cfg)
	assert.ErrorIs(t, err, ErrInvalidRiskRate)

	_, err = UnitPrice(100, ModeEXWUSD, -1.5, cfg)
	assert.ErrorIs(t, err, ErrInvalidRiskRate)
}

func TestRound2_HalfUp(t *testing.T) {
	assert.Equal(t, 22.12, Round2(22.1154))
	assert.Equal(t, 1.23, Round2(1.234))
	assert.Equal(t, 1.24, Round2(1.236))
	assert.Equal(t, 0.0, Round2(0))
}
