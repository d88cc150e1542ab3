package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/movelar/proforma/internal/proforma/domain"
	"github.com/movelar/proforma/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, proforma *domain.Proforma, items []domain.ProformaItem) error {
	if err := db.WithContext(ctx).Create(proforma).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&items).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Proforma, []domain.ProformaItem, error) {
	var proforma domain.Proforma
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&proforma).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	var items []domain.ProformaItem
	err = db.WithContext(ctx).
		Where("proforma_id = ?", id).
		Order("created_at asc, id asc").
		Find(&items).Error
	if err != nil {
		return nil, nil, err
	}
	return &proforma, items, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]domain.Proforma, error) {
	var proformas []domain.Proforma
	err := page.Apply(db.WithContext(ctx).Model(&domain.Proforma{})).
		Order("created_at desc, id desc").
		Find(&proformas).Error
	if err != nil {
		return nil, err
	}
	return proformas, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, proforma *domain.Proforma) error {
	return db.WithContext(ctx).Save(proforma).Error
}

func (r *repo) UpdateItems(ctx context.Context, db *gorm.DB, items []domain.ProformaItem) error {
	for i := range items {
		if err := db.WithContext(ctx).Save(&items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *repo) InsertItem(ctx context.Context, db *gorm.DB, item *domain.ProformaItem) error {
	return db.WithContext(ctx).Create(item).Error
}

func (r *repo) DeleteItem(ctx context.Context, db *gorm.DB, proformaID, itemID snowflake.ID) (bool, error) {
	res := db.WithContext(ctx).
		Where("proforma_id = ? AND id = ?", proformaID, itemID).
		Delete(&domain.ProformaItem{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repo) CountForYear(ctx context.Context, db *gorm.DB, year int) (int64, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Proforma{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
