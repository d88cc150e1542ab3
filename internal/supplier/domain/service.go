package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/movelar/proforma/pkg/db/pagination"
)

type CreateSupplierRequest struct {
	Name     string         `json:"name"`
	Code     string         `json:"code"`
	Country  string         `json:"country"`
	Metadata map[string]any `json:"metadata"`
}

type UpdateSupplierRequest struct {
	Name    *string `json:"name"`
	Country *string `json:"country"`
	Active  *bool   `json:"active"`
}

type ListSupplierFilter struct {
	Code   string `form:"code"`
	Active *bool  `form:"active"`
}

type ListSupplierResponse struct {
	pagination.PageInfo
	Suppliers []Supplier `json:"suppliers"`
}

type Service interface {
	Create(ctx context.Context, req CreateSupplierRequest) (Supplier, error)
	GetByID(ctx context.Context, id snowflake.ID) (Supplier, error)
	List(ctx context.Context, filter ListSupplierFilter, page pagination.Pagination) (ListSupplierResponse, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateSupplierRequest) (Supplier, error)
}

var (
	ErrInvalidName      = errors.New("invalid_supplier_name")
	ErrDuplicateCode    = errors.New("duplicate_supplier_code")
	ErrSupplierNotFound = errors.New("supplier_not_found")
)
