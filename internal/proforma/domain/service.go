package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/movelar/proforma/pkg/db/pagination"
)

// LineRequest describes one line. Catalog references fill the base value
// and volume; explicit values override or replace them for ad hoc lines.
type LineRequest struct {
	ModuleID    *snowflake.ID `json:"module_id,omitempty"`
	FabricID    *snowflake.ID `json:"fabric_id,omitempty"`
	Description string        `json:"description"`
	Quantity    float64       `json:"quantity"`

	BaseFabricValue *float64 `json:"base_fabric_value,omitempty"`
	UnitVolume      *float64 `json:"unit_volume,omitempty"`
}

type UpdateItemRequest struct {
	Description     *string  `json:"description"`
	Quantity        *float64 `json:"quantity"`
	BaseFabricValue *float64 `json:"base_fabric_value"`
	UnitVolume      *float64 `json:"unit_volume"`
}

type CreateProformaRequest struct {
	ClientID     snowflake.ID  `json:"client_id"`
	SupplierID   *snowflake.ID `json:"supplier_id,omitempty"`
	CurrencyMode string        `json:"currency_mode"`
	Incoterm     string        `json:"incoterm"`
	Lines        []LineRequest `json:"lines"`
}

// Detail is a proforma with its ordered lines.
type Detail struct {
	Proforma
	Items []ProformaItem `json:"items"`
}

type ListProformaResponse struct {
	pagination.PageInfo
	Proformas []Proforma `json:"proformas"`
}

// Document is the render-ready view of a computed proforma. Both the HTML
// and the PDF exporters consume it as-is and never re-derive any price.
type Document struct {
	ExportID     string
	Number       string
	Status       string
	CurrencyMode string
	Incoterm     string

	ClientName    string
	ClientCountry string
	Consignee     string
	Address       string
	SupplierName  string

	SpotRate    string
	RiskRate    string
	IssuedAt    string
	GeneratedAt string

	Lines []DocumentLine

	FreightTotalBRL string
	FreightTotalUSD string
	TotalBRL        string
	TotalUSD        string
}

type DocumentLine struct {
	Description string
	Quantity    string
	UnitVolume  string
	UnitPrice   string
	FreightBRL  string
	TotalBRL    string
	TotalUSD    string
}

type Service interface {
	Create(ctx context.Context, req CreateProformaRequest) (Detail, error)
	GetByID(ctx context.Context, id snowflake.ID) (Detail, error)
	List(ctx context.Context, page pagination.Pagination) (ListProformaResponse, error)
	AddItem(ctx context.Context, proformaID snowflake.ID, line LineRequest) (Detail, error)
	UpdateItem(ctx context.Context, proformaID, itemID snowflake.ID, req UpdateItemRequest) (Detail, error)
	RemoveItem(ctx context.Context, proformaID, itemID snowflake.ID) (Detail, error)
	SetSpotRate(ctx context.Context, proformaID snowflake.ID, rate float64) (Detail, error)
	Recompute(ctx context.Context, proformaID snowflake.ID) (Detail, error)
	Issue(ctx context.Context, proformaID snowflake.ID) (Detail, error)
	Document(ctx context.Context, proformaID snowflake.ID) (Document, error)
}

var (
	ErrProformaNotFound    = errors.New("proforma_not_found")
	ErrItemNotFound        = errors.New("proforma_item_not_found")
	ErrInvalidCurrencyMode = errors.New("invalid_currency_mode")
	ErrInvalidIncoterm     = errors.New("invalid_incoterm")
	ErrInvalidClient       = errors.New("invalid_client")
	ErrEmptyLines          = errors.New("proforma_requires_lines")
	ErrInvalidSpotRate     = errors.New("invalid_proforma_spot_rate")
	ErrNotDraft            = errors.New("proforma_not_draft")
)
