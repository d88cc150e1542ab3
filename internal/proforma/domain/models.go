// Package domain contains persistence models for proforma invoices.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// ProformaStatus represents proforma lifecycle states.
type ProformaStatus string

const (
	ProformaStatusDraft  ProformaStatus = "DRAFT"
	ProformaStatusIssued ProformaStatus = "ISSUED"
	ProformaStatusVoid   ProformaStatus = "VOID"
)

// Proforma is one proforma invoice. Monetary aggregate columns are always
// engine output persisted for listing and export; the stored line inputs
// (base value, quantity, volume) are the only source of truth and every
// mutation recomputes the rest.
type Proforma struct {
	ID           snowflake.ID      `json:"id" gorm:"primaryKey"`
	Number       string            `json:"number" gorm:"type:text;not null;uniqueIndex"`
	ClientID     snowflake.ID      `json:"client_id" gorm:"not null;index"`
	SupplierID   *snowflake.ID     `json:"supplier_id,omitempty" gorm:"index"`
	CurrencyMode string            `json:"currency_mode" gorm:"type:text;not null"`
	Incoterm     string            `json:"incoterm" gorm:"type:text;not null"`
	Status       ProformaStatus    `json:"status" gorm:"type:text;not null;default:'DRAFT'"`
	SpotRate     float64           `json:"spot_rate" gorm:"not null"`
	RiskRate     float64           `json:"risk_rate" gorm:"not null;default:0"`
	TaxPercent   float64           `json:"tax_percent" gorm:"not null;default:0"`
	FreightBRL   float64           `json:"freight_brl" gorm:"not null;default:0"`
	FreightUSD   float64           `json:"freight_usd" gorm:"not null;default:0"`
	TotalBRL     float64           `json:"total_brl" gorm:"not null;default:0"`
	TotalUSD     float64           `json:"total_usd" gorm:"not null;default:0"`
	Metadata     datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`
	IssuedAt     *time.Time        `json:"issued_at,omitempty" gorm:""`
	CreatedAt    time.Time         `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time         `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Proforma) TableName() string { return "proformas" }

// ProformaItem is one line: a furniture module covered with a fabric. The
// derived price columns are recomputed by the engine on every change.
type ProformaItem struct {
	ID          snowflake.ID  `json:"id" gorm:"primaryKey"`
	ProformaID  snowflake.ID  `json:"proforma_id" gorm:"not null;index"`
	ModuleID    *snowflake.ID `json:"module_id,omitempty" gorm:"index"`
	FabricID    *snowflake.ID `json:"fabric_id,omitempty" gorm:"index"`
	Description string        `json:"description" gorm:"type:text"`

	BaseFabricValue float64 `json:"base_fabric_value" gorm:"not null"`
	Quantity        float64 `json:"quantity" gorm:"not null"`
	UnitVolume      float64 `json:"unit_volume" gorm:"not null"`

	UnitPrice      float64 `json:"unit_price" gorm:"not null;default:0"`
	FreightUnitBRL float64 `json:"freight_unit_brl" gorm:"not null;default:0"`
	FreightUnitUSD float64 `json:"freight_unit_usd" gorm:"not null;default:0"`
	TotalBRL       float64 `json:"total_brl" gorm:"not null;default:0"`
	TotalUSD       float64 `json:"total_usd" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (ProformaItem) TableName() string { return "proforma_items" }
