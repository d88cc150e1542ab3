// Package pricing implements the export pricing and freight allocation
// engine: configuration resolution, risk-adjusted rate derivation, the
// markup chain, proportional freight allocation and invoice aggregation.
//
// Every function in this package is PURE:
// - No side effects
// - No DB access
// - Fully deterministic for a given input snapshot
//
// Callers supply a consistent snapshot of configs, freight items and the
// spot quote; the engine never fetches, caches or mutates anything.
package pricing

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// CurrencyMode selects the pricing basis of a proforma invoice.
type CurrencyMode string

const (
	// ModeBRL prices lines at their BRL list value, no markup chain.
	ModeBRL CurrencyMode = "BRL"
	// ModeEXWUSD prices lines ex-works in USD through the markup chain.
	ModeEXWUSD CurrencyMode = "EXW_USD"
)

// Incoterm is the shipment-term bucket selecting the freight group.
type Incoterm string

const (
	IncotermFOB   Incoterm = "FOB"
	IncotermFCA   Incoterm = "FCA"
	IncotermCIF   Incoterm = "CIF"
	IncotermOther Incoterm = "OTHER"
)

// MarginBasis names which base the margin percentage applies to. The
// business has historically used both; the toggle is explicit so neither
// is picked silently.
type MarginBasis string

const (
	MarginOnBase               MarginBasis = "base"
	MarginOnBasePlusCommission MarginBasis = "base_with_commission"
)

// FreightBaseCosts holds the per-incoterm fixed freight sub-items carried
// on a pricing configuration, all in BRL. CIF builds on the FOB leg.
type FreightBaseCosts struct {
	FOBInland       float64
	FOBPortHandling float64
	FCAInland       float64
	FCATerminal     float64
	CIFOceanFreight float64
	CIFInsurance    float64
}

// Total returns the configured base freight for one incoterm bucket.
func (f FreightBaseCosts) Total(incoterm Incoterm) float64 {
	switch incoterm {
	case IncotermFOB:
		return f.FOBInland + f.FOBPortHandling
	case IncotermFCA:
		return f.FCAInland + f.FCATerminal
	case IncotermCIF:
		return f.FOBInland + f.FOBPortHandling + f.CIFOceanFreight + f.CIFInsurance
	default:
		return 0
	}
}

// Config is an immutable pricing configuration snapshot. SupplierID nil
// means the record is the shared global default.
type Config struct {
	SupplierID *snowflake.ID
	// RateValue is subtracted from the spot rate, or used verbatim as the
	// quoted rate when FixedRate is set.
	RateValue         float64
	FixedRate         bool
	TaxPercent        float64
	CommissionPercent float64
	MarginPercent     float64
	MarginBasis       MarginBasis
	FreightBase       FreightBaseCosts
	EffectiveAt       time.Time
}

// FreightItem is a named shared freight cost component in BRL belonging to
// an incoterm group. SupplierID nil means global; a supplier item with the
// same name replaces the global one for that supplier.
type FreightItem struct {
	Name       string
	Amount     float64
	Ignore     bool
	SupplierID *snowflake.ID
	Incoterm   Incoterm
}

// LineInput is one invoice line as the engine sees it.
type LineInput struct {
	ItemID          snowflake.ID
	BaseFabricValue float64
	Quantity        float64
	// UnitVolume is m3 per unit (width x depth x height).
	UnitVolume float64
}

// Weight is the volumetric allocation weight of the line.
func (l LineInput) Weight() float64 { return l.UnitVolume * l.Quantity }

// Input is one full engine evaluation request.
type Input struct {
	Mode       CurrencyMode
	Incoterm   Incoterm
	SupplierID *snowflake.ID
	// SpotRate is the USD/BRL quote at evaluation time.
	SpotRate float64
	Lines    []LineInput
}

// FreightShare is one line's allocated slice of the shared freight pool.
type FreightShare struct {
	BRL float64
	USD float64
}

// ComputedLine carries the derived fields of one line. Monetary values are
// unrounded; rounding happens only at presentation boundaries via Round2.
type ComputedLine struct {
	ItemID         snowflake.ID
	UnitPrice      float64
	FreightUnitBRL float64
	FreightUnitUSD float64
	TotalBRL       float64
	TotalUSD       float64
}

// Result is the computed invoice. It is a value; the engine never mutates
// its inputs.
type Result struct {
	Mode     CurrencyMode
	Incoterm Incoterm
	// RiskRate is the risk-adjusted rate used for EXW-USD pricing. Zero in
	// BRL mode, where no markup chain applies.
	RiskRate float64
	// CrossRate converted BRL<->USD totals: the risk rate in EXW-USD mode,
	// the spot rate in BRL mode.
	CrossRate       float64
	TaxPercent      float64
	Lines           []ComputedLine
	FreightTotalBRL float64
	FreightTotalUSD float64
	TotalBRL        float64
	TotalUSD        float64
}
