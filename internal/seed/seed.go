// Package seed loads demo data for local development so a fresh install can
// price a proforma without any manual setup.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/movelar/proforma/internal/catalog/domain"
	clientdomain "github.com/movelar/proforma/internal/client/domain"
	fxquotedomain "github.com/movelar/proforma/internal/fxquote/domain"
	pricingconfigdomain "github.com/movelar/proforma/internal/pricingconfig/domain"
	supplierdomain "github.com/movelar/proforma/internal/supplier/domain"
	"gorm.io/gorm"
)

// EnsureDevData seeds a supplier, a small catalog, a client, a global
// pricing configuration, FOB freight legs and a spot quote. Every record is
// looked up first, so repeated startups are no-ops.
func EnsureDevData(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		supplier, err := ensureSupplier(ctx, tx, node)
		if err != nil {
			return err
		}
		if err := ensureCatalog(ctx, tx, node, supplier.ID); err != nil {
			return err
		}
		if err := ensureClient(ctx, tx, node); err != nil {
			return err
		}
		if err := ensurePricingConfig(ctx, tx, node); err != nil {
			return err
		}
		if err := ensureFreightItems(ctx, tx, node); err != nil {
			return err
		}
		return ensureSpotQuote(ctx, tx, node)
	})
}

func ensureSupplier(ctx context.Context, tx *gorm.DB, node *snowflake.Node) (supplierdomain.Supplier, error) {
	var supplier supplierdomain.Supplier
	err := tx.WithContext(ctx).Where("code = ?", "estofados-sul").First(&supplier).Error
	if err == nil {
		return supplier, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return supplierdomain.Supplier{}, err
	}

	now := time.Now().UTC()
	supplier = supplierdomain.Supplier{
		ID:        node.Generate(),
		Name:      "Estofados Sul",
		Code:      "estofados-sul",
		Country:   "BR",
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return supplier, tx.WithContext(ctx).Create(&supplier).Error
}

func ensureCatalog(ctx context.Context, tx *gorm.DB, node *snowflake.Node, supplierID snowflake.ID) error {
	now := time.Now().UTC()

	var fabric catalogdomain.Fabric
	err := tx.WithContext(ctx).Where("code = ?", "linen-sand").First(&fabric).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fabric = catalogdomain.Fabric{
			ID:         node.Generate(),
			SupplierID: supplierID,
			Name:       "Linen Sand",
			Code:       "linen-sand",
			BaseValue:  100,
			Active:     true,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := tx.WithContext(ctx).Create(&fabric).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	var module catalogdomain.FurnitureModule
	err = tx.WithContext(ctx).Where("code = ?", "chaise-90").First(&module).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		module = catalogdomain.FurnitureModule{
			ID:        node.Generate(),
			Name:      "Chaise 90",
			Code:      "chaise-90",
			WidthM:    0.9,
			DepthM:    1.0,
			HeightM:   0.5,
			Active:    true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return tx.WithContext(ctx).Create(&module).Error
	}
	return err
}

func ensureClient(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	var count int64
	if err := tx.WithContext(ctx).Model(&clientdomain.Client{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	client := clientdomain.Client{
		ID:        node.Generate(),
		Name:      "Casa Verde Imports",
		Email:     "orders@casaverde.example",
		Country:   "MX",
		CreatedAt: now,
		UpdatedAt: now,
	}
	return tx.WithContext(ctx).Create(&client).Error
}

func ensurePricingConfig(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	var count int64
	if err := tx.WithContext(ctx).Model(&pricingconfigdomain.PricingConfig{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	cfg := pricingconfigdomain.PricingConfig{
		ID:                node.Generate(),
		RateValue:         0.30,
		CommissionPercent: 5,
		MarginPercent:     10,
		MarginBasis:       "base",
		EffectiveAt:       now,
		CreatedAt:         now,
	}
	return tx.WithContext(ctx).Create(&cfg).Error
}

func ensureFreightItems(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	var count int64
	if err := tx.WithContext(ctx).Model(&pricingconfigdomain.FreightItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	items := []pricingconfigdomain.FreightItem{
		{ID: node.Generate(), Incoterm: "FOB", Name: "road", Amount: 400, CreatedAt: now, UpdatedAt: now},
		{ID: node.Generate(), Incoterm: "FOB", Name: "port handling", Amount: 150, CreatedAt: now, UpdatedAt: now},
	}
	return tx.WithContext(ctx).Create(&items).Error
}

func ensureSpotQuote(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	var count int64
	if err := tx.WithContext(ctx).Model(&fxquotedomain.SpotQuote{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	quote := fxquotedomain.SpotQuote{
		ID:        node.Generate(),
		Rate:      5.50,
		Source:    "seed",
		QuotedAt:  now,
		CreatedAt: now,
	}
	return tx.WithContext(ctx).Create(&quote).Error
}
