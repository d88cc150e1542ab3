package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/movelar/proforma/internal/catalog/domain"
	"github.com/movelar/proforma/pkg/db"
	"github.com/movelar/proforma/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
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
		log:   p.Log.Named("catalog.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) CreateFabric(ctx context.Context, req domain.CreateFabricRequest) (domain.Fabric, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Fabric{}, domain.ErrInvalidName
	}
	if req.BaseValue < 0 {
		return domain.Fabric{}, domain.ErrInvalidValue
	}

	code := strings.TrimSpace(req.Code)
	if code == "" {
		code = slug.Make(name)
	}

	now := time.Now().UTC()
	fabric := domain.Fabric{
		ID:         s.genID.Generate(),
		SupplierID: req.SupplierID,
		Name:       name,
		Code:       code,
		BaseValue:  req.BaseValue,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.InsertFabric(ctx, s.db, &fabric); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Fabric{}, domain.ErrDuplicateCode
		}
		return domain.Fabric{}, err
	}
	return fabric, nil
}

func (s *Service) GetFabric(ctx context.Context, id snowflake.ID) (domain.Fabric, error) {
	fabric, err := s.repo.FindFabricByID(ctx, s.db, id)
	if err != nil {
		return domain.Fabric{}, err
	}
	if fabric == nil {
		return domain.Fabric{}, domain.ErrFabricNotFound
	}
	return *fabric, nil
}

func (s *Service) ListFabrics(ctx context.Context, filter domain.ListFabricFilter, page pagination.Pagination) (domain.ListFabricResponse, error) {
	fabrics, err := s.repo.ListFabrics(ctx, s.db, filter, page)
	if err != nil {
		return domain.ListFabricResponse{}, err
	}
	trimmed, info := pagination.Trim(fabrics, page)
	return domain.ListFabricResponse{PageInfo: info, Fabrics: trimmed}, nil
}

func (s *Service) CreateModule(ctx context.Context, req domain.CreateModuleRequest) (domain.FurnitureModule, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.FurnitureModule{}, domain.ErrInvalidName
	}
	if req.WidthM <= 0 || req.DepthM <= 0 || req.HeightM <= 0 {
		return domain.FurnitureModule{}, domain.ErrInvalidDimensions
	}

	code := strings.TrimSpace(req.Code)
	if code == "" {
		code = slug.Make(name)
	}

	now := time.Now().UTC()
	module := domain.FurnitureModule{
		ID:        s.genID.Generate(),
		Name:      name,
		Code:      code,
		WidthM:    req.WidthM,
		DepthM:    req.DepthM,
		HeightM:   req.HeightM,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.InsertModule(ctx, s.db, &module); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.FurnitureModule{}, domain.ErrDuplicateCode
		}
		return domain.FurnitureModule{}, err
	}
	return module, nil
}

func (s *Service) GetModule(ctx context.Context, id snowflake.ID) (domain.FurnitureModule, error) {
	module, err := s.repo.FindModuleByID(ctx, s.db, id)
	if err != nil {
		return domain.FurnitureModule{}, err
	}
	if module == nil {
		return domain.FurnitureModule{}, domain.ErrModuleNotFound
	}
	return *module, nil
}

func (s *Service) ListModules(ctx context.Context, page pagination.Pagination) (domain.ListModuleResponse, error) {
	modules, err := s.repo.ListModules(ctx, s.db, page)
	if err != nil {
		return domain.ListModuleResponse{}, err
	}
	trimmed, info := pagination.Trim(modules, page)
	return domain.ListModuleResponse{PageInfo: info, Modules: trimmed}, nil
}
