package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/movelar/proforma/pkg/db/pagination"
)

type CreateClientRequest struct {
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Country   string         `json:"country"`
	TaxID     string         `json:"tax_id"`
	Consignee string         `json:"consignee"`
	Address   string         `json:"address"`
	Metadata  map[string]any `json:"metadata"`
}

type ListClientFilter struct {
	Name    string `form:"name"`
	Country string `form:"country"`
}

type ListClientResponse struct {
	pagination.PageInfo
	Clients []Client `json:"clients"`
}

type Service interface {
	Create(ctx context.Context, req CreateClientRequest) (Client, error)
	GetByID(ctx context.Context, id snowflake.ID) (Client, error)
	List(ctx context.Context, filter ListClientFilter, page pagination.Pagination) (ListClientResponse, error)
}

var (
	ErrInvalidName    = errors.New("invalid_client_name")
	ErrInvalidEmail   = errors.New("invalid_client_email")
	ErrClientNotFound = errors.New("client_not_found")
)
