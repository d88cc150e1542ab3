package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/movelar/proforma/internal/pricing"
)

type CreateConfigRequest struct {
	SupplierID        *snowflake.ID `json:"supplier_id,omitempty"`
	RateValue         float64       `json:"rate_value"`
	FixedRate         bool          `json:"fixed_rate"`
	TaxPercent        float64       `json:"tax_percent"`
	CommissionPercent float64       `json:"commission_percent"`
	MarginPercent     float64       `json:"margin_percent"`
	MarginBasis       string        `json:"margin_basis"`

	FOBInland       float64 `json:"fob_inland"`
	FOBPortHandling float64 `json:"fob_port_handling"`
	FCAInland       float64 `json:"fca_inland"`
	FCATerminal     float64 `json:"fca_terminal"`
	CIFOceanFreight float64 `json:"cif_ocean_freight"`
	CIFInsurance    float64 `json:"cif_insurance"`

	EffectiveAt *time.Time `json:"effective_at"`
}

type CreateFreightItemRequest struct {
	SupplierID *snowflake.ID `json:"supplier_id,omitempty"`
	Incoterm   string        `json:"incoterm"`
	Name       string        `json:"name"`
	Amount     float64       `json:"amount"`
	Ignore     bool          `json:"ignore"`
}

// Snapshot is one consistent read of everything a single engine evaluation
// needs. The engine never queries; callers hand it this value.
type Snapshot struct {
	Configs      []pricing.Config
	FreightItems []pricing.FreightItem
}

type Service interface {
	CreateConfig(ctx context.Context, req CreateConfigRequest) (PricingConfig, error)
	ListConfigs(ctx context.Context, supplierID *snowflake.ID) ([]PricingConfig, error)
	CreateFreightItem(ctx context.Context, req CreateFreightItemRequest) (FreightItem, error)
	ListFreightItems(ctx context.Context, incoterm string) ([]FreightItem, error)
	DeleteFreightItem(ctx context.Context, id snowflake.ID) error
	Snapshot(ctx context.Context) (Snapshot, error)
}

var (
	ErrInvalidPercent     = errors.New("invalid_config_percent")
	ErrInvalidRateValue   = errors.New("invalid_config_rate_value")
	ErrInvalidMarginBasis = errors.New("invalid_margin_basis")
	ErrInvalidIncoterm    = errors.New("invalid_incoterm")
	ErrInvalidItemName    = errors.New("invalid_freight_item_name")
	ErrItemNotFound       = errors.New("freight_item_not_found")
)
