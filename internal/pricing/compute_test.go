package pricing

import (
	"math"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
)

func standardConfig(supplierID *snowflake.ID) Config {
	return Config{
		SupplierID:        supplierID,
		RateValue:         0.30,
		CommissionPercent: 5,
		MarginPercent:     10,
		MarginBasis:       MarginOnBase,
		EffectiveAt:       time.Now().UTC(),
	}
}

func TestCompute_StandardSupplierEXWUSD(t *testing.T) {
	node, _ := snowflake.NewNode(1)
	supplier := idPtr(node)

	in := Input{
		Mode:       ModeEXWUSD,
		Incoterm:   IncotermFOB,
		SupplierID: supplier,
		SpotRate:   5.50,
		Lines: []LineInput{
			{ItemID: node.Generate(), BaseFabricValue: 100, Quantity: 2, UnitVolume: 0.25},
			{ItemID: node.Generate(), BaseFabricValue: 100, Quantity: 1, UnitVolume: 1.5},
		},
	}
	items := []FreightItem{
		{Name: "road", Amount: 400, Incoterm: IncotermFOB},
	}

	res, err := Compute(in, []Config{standardConfig(supplier)}, items)
	assert.NoError(t, err)

	assert.InDelta(t, 5.20, res.RiskRate, 1e-9)
	assert.InDelta(t, 5.20, res.CrossRate, 1e-9)
	assert.InDelta(t, 22.1154, res.Lines[0].UnitPrice, 1e-4)
	assert.InDelta(t, 22.1154, res.Lines[1].UnitPrice, 1e-4)

	// Scenario B freight: weights 0.5 and 1.5 over a 400 BRL pool.
	assert.InDelta(t, 400, res.FreightTotalBRL, 1e-9)
	assert.InDelta(t, 400/5.20, res.FreightTotalUSD, 1e-9)
	assert.InDelta(t, 100, res.Lines[0].FreightUnitBRL*2, 1e-6)
	assert.InDelta(t, 300, res.Lines[1].FreightUnitBRL*1, 1e-6)

	// Line totals: (unit + freight per unit) * qty, in both currencies.
	wantUSD0 := (22.115384615384617 + 100/5.20/2) * 2
	assert.InDelta(t, wantUSD0, res.Lines[0].TotalUSD, 1e-6)
	wantBRL1 := (22.115384615384617*5.20 + 300) * 1
	assert.InDelta(t, wantBRL1, res.Lines[1].TotalBRL, 1e-6)

	assert.InDelta(t, res.Lines[0].TotalBRL+res.Lines[1].TotalBRL, res.TotalBRL, 1e-9)
	assert.InDelta(t, res.Lines[0].TotalUSD+res.Lines[1].TotalUSD, res.TotalUSD, 1e-9)
	// Totals must agree across currencies at the cross rate.
	assert.InDelta(t, res.TotalUSD*res.CrossRate, res.TotalBRL, 1e-6)
}

func TestCompute_FixedRateSupplier(t *testing.T) {
	node, _ := snowflake.NewNode(1)
	supplier := idPtr(node)

	cfg := standardConfig(supplier)
	cfg.FixedRate = true
	cfg.RateValue = 5.00

	in := Input{
		Mode:       ModeEXWUSD,
		Incoterm:   IncotermFOB,
		SupplierID: supplier,
		SpotRate:   5.50,
		Lines: []LineInput{
			{ItemID: node.Generate(), BaseFabricValue: 100, Quantity: 1, UnitVolume: 1},
		},
	}

	first, err := Compute(in, []Config{cfg}, nil)
	assert.NoError(t, err)

	in.SpotRate = 6.00
	second, err := Compute(in, []Config{cfg}, nil)
	assert.NoError(t, err)

	assert.Equal(t, 5.00, first.RiskRate)
	assert.Equal(t, first.RiskRate, second.RiskRate, "fixed-rate risk rate must not track the spot")
	assert.Equal(t, first.TotalUSD, second.TotalUSD)
}

func TestCompute_BRLMode(t *testing.T) {
	node, _ := snowflake.NewNode(1)

	in := Input{
		Mode:     ModeBRL,
		Incoterm: IncotermOther,
		SpotRate: 5.00,
		Lines: []LineInput{
			{ItemID: node.Generate(), BaseFabricValue: 250, Quantity: 4, UnitVolume: 0.5},
		},
	}

	res, err := Compute(in, []Config{standardConfig(nil)}, nil)
	assert.NoError(t, err)

	assert.Zero(t, res.RiskRate)
	assert.Equal(t, 5.00, res.CrossRate)
	assert.Equal(t, 250.0, res.Lines[0].UnitPrice, "BRL unit price is the list value, no markup")
	assert.InDelta(t, 1000, res.TotalBRL, 1e-9)
	assert.InDelta(t, 200, res.TotalUSD, 1e-9)
}

func TestCompute_ErrorPaths(t *testing.T) {
	node, _ := snowflake.NewNode(1)
	line := LineInput{ItemID: node.Generate(), BaseFabricValue: 100, Quantity: 1, UnitVolume: 1}

	in := Input{Mode: ModeEXWUSD, Incoterm: IncotermFOB, SpotRate: 5.50, Lines: []LineInput{line}}

	_, err := Compute(in, nil, nil)
	assert.ErrorIs(t, err, ErrNoConfiguration)

	cfg := standardConfig(nil)
	cfg.RateValue = 6.00 // reduction larger than the spot
	_, err = Compute(in, []Config{cfg}, nil)
	assert.ErrorIs(t, err, ErrInvalidRiskRate)

	bad := in
	bad.Lines = []LineInput{{ItemID: line.ItemID, BaseFabricValue: 100, Quantity: -1, UnitVolume: 1}}
	_, err = Compute(bad, []Config{standardConfig(nil)}, nil)
	assert.ErrorIs(t, err, ErrMalformedInput)

	bad.Lines = []LineInput{{ItemID: line.ItemID, BaseFabricValue: math.NaN(), Quantity: 1, UnitVolume: 1}}
	_, err = Compute(bad, []Config{standardConfig(nil)}, nil)
	assert.ErrorIs(t, err, ErrMalformedInput)

	bad = in
	bad.SpotRate = 0
	_, err = Compute(bad, []Config{standardConfig(nil)}, nil)
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestCompute_Deterministic(t *testing.T) {
	node, _ := snowflake.NewNode(1)
	supplier := idPtr(node)

	in := Input{
		Mode:       ModeEXWUSD,
		Incoterm:   IncotermCIF,
		SupplierID: supplier,
		SpotRate:   5.37,
		Lines: []LineInput{
			{ItemID: node.Generate(), BaseFabricValue: 310.40, Quantity: 3, UnitVolume: 0.72},
			{ItemID: node.Generate(), BaseFabricValue: 87.15, Quantity: 10, UnitVolume: 0.18},
		},
	}
	configs := []Config{standardConfig(supplier)}
	items := []FreightItem{{Name: "ocean", Amount: 2500, Incoterm: IncotermCIF}}

	first, err := Compute(in, configs, items)
	assert.NoError(t, err)
	second, err := Compute(in, configs, items)
	assert.NoError(t, err)

	assert.Equal(t, first, second, "recompute over the same snapshot must be byte-identical")
}
