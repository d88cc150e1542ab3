package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/movelar/proforma/internal/pricingconfig/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertConfig(ctx context.Context, db *gorm.DB, cfg *domain.PricingConfig) error {
	return db.WithContext(ctx).Create(cfg).Error
}

func (r *repo) ListConfigs(ctx context.Context, db *gorm.DB, supplierID *snowflake.ID) ([]domain.PricingConfig, error) {
	var configs []domain.PricingConfig
	stmt := db.WithContext(ctx).Model(&domain.PricingConfig{})
	if supplierID == nil {
		stmt = stmt.Where("supplier_id IS NULL")
	} else {
		stmt = stmt.Where("supplier_id = ?", *supplierID)
	}
	err := stmt.Order("effective_at desc").Find(&configs).Error
	if err != nil {
		return nil, err
	}
	return configs, nil
}

func (r *repo) ListAllConfigs(ctx context.Context, db *gorm.DB) ([]domain.PricingConfig, error) {
	var configs []domain.PricingConfig
	err := db.WithContext(ctx).
		Order("effective_at desc").
		Find(&configs).Error
	if err != nil {
		return nil, err
	}
	return configs, nil
}

func (r *repo) InsertFreightItem(ctx context.Context, db *gorm.DB, item *domain.FreightItem) error {
	return db.WithContext(ctx).Create(item).Error
}

func (r *repo) ListFreightItems(ctx context.Context, db *gorm.DB, incoterm string) ([]domain.FreightItem, error) {
	var items []domain.FreightItem
	stmt := db.WithContext(ctx).Model(&domain.FreightItem{})
	if incoterm != "" {
		stmt = stmt.Where("incoterm = ?", incoterm)
	}
	err := stmt.Order("created_at asc").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) DeleteFreightItem(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error) {
	res := db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.FreightItem{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
