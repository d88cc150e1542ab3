package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/movelar/proforma/internal/catalog/domain"
	"github.com/movelar/proforma/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertFabric(ctx context.Context, db *gorm.DB, fabric *domain.Fabric) error {
	return db.WithContext(ctx).Create(fabric).Error
}

func (r *repo) FindFabricByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Fabric, error) {
	var fabric domain.Fabric
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&fabric).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &fabric, nil
}

func (r *repo) ListFabrics(ctx context.Context, db *gorm.DB, filter domain.ListFabricFilter, page pagination.Pagination) ([]domain.Fabric, error) {
	var fabrics []domain.Fabric
	stmt := db.WithContext(ctx).Model(&domain.Fabric{})
	if filter.SupplierID != nil {
		stmt = stmt.Where("supplier_id = ?", *filter.SupplierID)
	}
	if filter.Active != nil {
		stmt = stmt.Where("active = ?", *filter.Active)
	}
	err := page.Apply(stmt).
		Order("created_at desc, id desc").
		Find(&fabrics).Error
	if err != nil {
		return nil, err
	}
	return fabrics, nil
}

func (r *repo) InsertModule(ctx context.Context, db *gorm.DB, module *domain.FurnitureModule) error {
	return db.WithContext(ctx).Create(module).Error
}

func (r *repo) FindModuleByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.FurnitureModule, error) {
	var module domain.FurnitureModule
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&module).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &module, nil
}

func (r *repo) ListModules(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]domain.FurnitureModule, error) {
	var modules []domain.FurnitureModule
	stmt := db.WithContext(ctx).Model(&domain.FurnitureModule{})
	err := page.Apply(stmt).
		Order("created_at desc, id desc").
		Find(&modules).Error
	if err != nil {
		return nil, err
	}
	return modules, nil
}
