package migration

import (
	catalogdomain "github.com/movelar/proforma/internal/catalog/domain"
	clientdomain "github.com/movelar/proforma/internal/client/domain"
	"github.com/movelar/proforma/internal/config"
	fxquotedomain "github.com/movelar/proforma/internal/fxquote/domain"
	pricingconfigdomain "github.com/movelar/proforma/internal/pricingconfig/domain"
	proformadomain "github.com/movelar/proforma/internal/proforma/domain"
	"github.com/movelar/proforma/internal/seed"
	supplierdomain "github.com/movelar/proforma/internal/supplier/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// sqlite has no embedded migration track; the models are the schema.
			if err := conn.AutoMigrate(
				&supplierdomain.Supplier{},
				&catalogdomain.Fabric{},
				&catalogdomain.FurnitureModule{},
				&clientdomain.Client{},
				&pricingconfigdomain.PricingConfig{},
				&pricingconfigdomain.FreightItem{},
				&fxquotedomain.SpotQuote{},
				&proformadomain.Proforma{},
				&proformadomain.ProformaItem{},
			); err != nil {
				return err
			}
		}

		if cfg.Environment == "development" {
			return seed.EnsureDevData(conn)
		}
		return nil
	}),
)
