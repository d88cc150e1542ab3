package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/movelar/proforma/pkg/db/pagination"
)

type CreateFabricRequest struct {
	SupplierID snowflake.ID `json:"supplier_id"`
	Name       string       `json:"name"`
	Code       string       `json:"code"`
	BaseValue  float64      `json:"base_value"`
}

type CreateModuleRequest struct {
	Name    string  `json:"name"`
	Code    string  `json:"code"`
	WidthM  float64 `json:"width_m"`
	DepthM  float64 `json:"depth_m"`
	HeightM float64 `json:"height_m"`
}

type ListFabricFilter struct {
	SupplierID *snowflake.ID `form:"supplier_id"`
	Active     *bool         `form:"active"`
}

type ListFabricResponse struct {
	pagination.PageInfo
	Fabrics []Fabric `json:"fabrics"`
}

type ListModuleResponse struct {
	pagination.PageInfo
	Modules []FurnitureModule `json:"modules"`
}

type Service interface {
	CreateFabric(ctx context.Context, req CreateFabricRequest) (Fabric, error)
	GetFabric(ctx context.Context, id snowflake.ID) (Fabric, error)
	ListFabrics(ctx context.Context, filter ListFabricFilter, page pagination.Pagination) (ListFabricResponse, error)
	CreateModule(ctx context.Context, req CreateModuleRequest) (FurnitureModule, error)
	GetModule(ctx context.Context, id snowflake.ID) (FurnitureModule, error)
	ListModules(ctx context.Context, page pagination.Pagination) (ListModuleResponse, error)
}

var (
	ErrInvalidName       = errors.New("invalid_catalog_name")
	ErrInvalidValue      = errors.New("invalid_catalog_value")
	ErrInvalidDimensions = errors.New("invalid_module_dimensions")
	ErrDuplicateCode     = errors.New("duplicate_catalog_code")
	ErrFabricNotFound    = errors.New("fabric_not_found")
	ErrModuleNotFound    = errors.New("module_not_found")
)
