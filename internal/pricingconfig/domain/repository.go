package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	InsertConfig(ctx context.Context, db *gorm.DB, cfg *PricingConfig) error
	ListConfigs(ctx context.Context, db *gorm.DB, supplierID *snowflake.ID) ([]PricingConfig, error)
	ListAllConfigs(ctx context.Context, db *gorm.DB) ([]PricingConfig, error)
	InsertFreightItem(ctx context.Context, db *gorm.DB, item *FreightItem) error
	ListFreightItems(ctx context.Context, db *gorm.DB, incoterm string) ([]FreightItem, error)
	DeleteFreightItem(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error)
}
