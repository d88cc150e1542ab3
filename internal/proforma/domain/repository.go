package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/movelar/proforma/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, proforma *Proforma, items []ProformaItem) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Proforma, []ProformaItem, error)
	List(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]Proforma, error)
	Update(ctx context.Context, db *gorm.DB, proforma *Proforma) error
	UpdateItems(ctx context.Context, db *gorm.DB, items []ProformaItem) error
	InsertItem(ctx context.Context, db *gorm.DB, item *ProformaItem) error
	DeleteItem(ctx context.Context, db *gorm.DB, proformaID, itemID snowflake.ID) (bool, error)
	CountForYear(ctx context.Context, db *gorm.DB, year int) (int64, error)
}
