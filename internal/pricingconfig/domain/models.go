// Package domain contains persistence models for pricing configurations
// and shared freight items.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// PricingConfig is one effective-dated markup configuration. SupplierID
// nil means the shared global default; many records may exist per supplier
// over time and only the latest by EffectiveAt is current.
type PricingConfig struct {
	ID         snowflake.ID  `json:"id" gorm:"primaryKey"`
	SupplierID *snowflake.ID `json:"supplier_id,omitempty" gorm:"index"`
	// RateValue is the spot reduction, or the fixed quoted rate when
	// FixedRate is set.
	RateValue         float64 `json:"rate_value" gorm:"not null"`
	FixedRate         bool    `json:"fixed_rate" gorm:"not null;default:false"`
	TaxPercent        float64 `json:"tax_percent" gorm:"not null;default:0"`
	CommissionPercent float64 `json:"commission_percent" gorm:"not null;default:0"`
	MarginPercent     float64 `json:"margin_percent" gorm:"not null;default:0"`
	// MarginBasis is "base" or "base_with_commission"; empty falls back to
	// the hot-reloadable pricing defaults.
	MarginBasis string `json:"margin_basis" gorm:"type:text"`

	FOBInland       float64 `json:"fob_inland" gorm:"not null;default:0"`
	FOBPortHandling float64 `json:"fob_port_handling" gorm:"not null;default:0"`
	FCAInland       float64 `json:"fca_inland" gorm:"not null;default:0"`
	FCATerminal     float64 `json:"fca_terminal" gorm:"not null;default:0"`
	CIFOceanFreight float64 `json:"cif_ocean_freight" gorm:"not null;default:0"`
	CIFInsurance    float64 `json:"cif_insurance" gorm:"not null;default:0"`

	EffectiveAt time.Time `json:"effective_at" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (PricingConfig) TableName() string { return "pricing_configs" }

// FreightItem is a named shared freight cost component in BRL. SupplierID
// nil means global; a supplier item with the same name overrides the
// global one for that supplier's invoices.
type FreightItem struct {
	ID         snowflake.ID  `json:"id" gorm:"primaryKey"`
	SupplierID *snowflake.ID `json:"supplier_id,omitempty" gorm:"index"`
	Incoterm   string        `json:"incoterm" gorm:"type:text;not null;index"`
	Name       string        `json:"name" gorm:"type:text;not null"`
	Amount     float64       `json:"amount" gorm:"not null"`
	Ignore     bool          `json:"ignore" gorm:"not null;default:false"`
	CreatedAt  time.Time     `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt  time.Time     `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (FreightItem) TableName() string { return "freight_items" }
