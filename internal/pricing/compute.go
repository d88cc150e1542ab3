package pricing

import (
	"fmt"
	"math"
)

// Compute runs the full one-pass pipeline: resolve config, derive the risk
// rate, price every line, sum and allocate freight, total the invoice in
// both currencies. Any change to the inputs requires a fresh call; there is
// no incremental path because the pipeline is a cheap strict DAG.
func Compute(in Input, configs []Config, freightItems []FreightItem) (Result, error) {
	if err := validate(in); err != nil {
		return Result{}, err
	}

	cfg, err := ResolveConfig(in.SupplierID, configs)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Mode:       in.Mode,
		Incoterm:   in.Incoterm,
		TaxPercent: cfg.TaxPercent,
	}

	// The cross rate converts totals between currencies. BRL-priced
	// invoices convert at spot; EXW-USD invoices convert at the risk rate
	// the unit prices were built on.
	res.CrossRate = in.SpotRate
	if in.Mode == ModeEXWUSD {
		riskRate, err := RiskRate(in.SpotRate, cfg)
		if err != nil {
			return Result{}, err
		}
		res.RiskRate = riskRate
		res.CrossRate = riskRate
	}

	res.FreightTotalBRL = FreightPool(in.Incoterm, in.SupplierID, cfg, freightItems)
	res.FreightTotalUSD = res.FreightTotalBRL / res.CrossRate

	weights := make([]float64, len(in.Lines))
	for i, line := range in.Lines {
		weights[i] = line.Weight()
	}
	shares := AllocateFreight(weights, res.FreightTotalBRL, res.FreightTotalUSD)

	res.Lines = make([]ComputedLine, len(in.Lines))
	for i, line := range in.Lines {
		unit, err := UnitPrice(line.BaseFabricValue, in.Mode, res.RiskRate, cfg)
		if err != nil {
			return Result{}, err
		}

		var unitBRL, unitUSD float64
		if in.Mode == ModeBRL {
			unitBRL = unit
			unitUSD = unit / res.CrossRate
		} else {
			unitUSD = unit
			unitBRL = unit * res.CrossRate
		}

		freightUnitBRL := shares[i].BRL / line.Quantity
		freightUnitUSD := shares[i].USD / line.Quantity

		computed := ComputedLine{
			ItemID:         line.ItemID,
			UnitPrice:      unit,
			FreightUnitBRL: freightUnitBRL,
			FreightUnitUSD: freightUnitUSD,
			TotalBRL:       (unitBRL + freightUnitBRL) * line.Quantity,
			TotalUSD:       (unitUSD + freightUnitUSD) * line.Quantity,
		}
		res.Lines[i] = computed
		res.TotalBRL += computed.TotalBRL
		res.TotalUSD += computed.TotalUSD
	}

	return res, nil
}

func validate(in Input) error {
	if !finite(in.SpotRate) || in.SpotRate <= 0 {
		return fmt.Errorf("%w: spot rate %v", ErrMalformedInput, in.SpotRate)
	}
	for i, line := range in.Lines {
		switch {
		case !finite(line.Quantity) || line.Quantity <= 0:
			return fmt.Errorf("%w: line %d quantity %v", ErrMalformedInput, i, line.Quantity)
		case !finite(line.UnitVolume) || line.UnitVolume < 0:
			return fmt.Errorf("%w: line %d unit volume %v", ErrMalformedInput, i, line.UnitVolume)
		case !finite(line.BaseFabricValue) || line.BaseFabricValue < 0:
			return fmt.Errorf("%w: line %d base value %v", ErrMalformedInput, i, line.BaseFabricValue)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
