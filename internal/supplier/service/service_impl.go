package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/movelar/proforma/internal/supplier/domain"
	"github.com/movelar/proforma/pkg/db"
	"github.com/movelar/proforma/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("supplier.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateSupplierRequest) (domain.Supplier, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Supplier{}, domain.ErrInvalidName
	}

	code := strings.TrimSpace(req.Code)
	if code == "" {
		code = slug.Make(name)
	}

	now := time.Now().UTC()
	supplier := domain.Supplier{
		ID:        s.genID.Generate(),
		Name:      name,
		Code:      code,
		Country:   strings.TrimSpace(req.Country),
		Active:    true,
		Metadata:  datatypes.JSONMap(req.Metadata),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &supplier); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Supplier{}, domain.ErrDuplicateCode
		}
		return domain.Supplier{}, err
	}

	s.log.Info("supplier created",
		zap.String("supplier_id", supplier.ID.String()),
		zap.String("code", supplier.Code),
	)
	return supplier, nil
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (domain.Supplier, error) {
	supplier, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Supplier{}, err
	}
	if supplier == nil {
		return domain.Supplier{}, domain.ErrSupplierNotFound
	}
	return *supplier, nil
}

func (s *Service) List(ctx context.Context, filter domain.ListSupplierFilter, page pagination.Pagination) (domain.ListSupplierResponse, error) {
	suppliers, err := s.repo.List(ctx, s.db, filter, page)
	if err != nil {
		return domain.ListSupplierResponse{}, err
	}
	trimmed, info := pagination.Trim(suppliers, page)
	return domain.ListSupplierResponse{PageInfo: info, Suppliers: trimmed}, nil
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req domain.UpdateSupplierRequest) (domain.Supplier, error) {
	supplier, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Supplier{}, err
	}
	if supplier == nil {
		return domain.Supplier{}, domain.ErrSupplierNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Supplier{}, domain.ErrInvalidName
		}
		supplier.Name = name
	}
	if req.Country != nil {
		supplier.Country = strings.TrimSpace(*req.Country)
	}
	if req.Active != nil {
		supplier.Active = *req.Active
	}
	supplier.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, supplier); err != nil {
		return domain.Supplier{}, err
	}
	return *supplier, nil
}
