package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/movelar/proforma/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	InsertFabric(ctx context.Context, db *gorm.DB, fabric *Fabric) error
	FindFabricByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Fabric, error)
	ListFabrics(ctx context.Context, db *gorm.DB, filter ListFabricFilter, page pagination.Pagination) ([]Fabric, error)
	InsertModule(ctx context.Context, db *gorm.DB, module *FurnitureModule) error
	FindModuleByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*FurnitureModule, error)
	ListModules(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]FurnitureModule, error)
}
