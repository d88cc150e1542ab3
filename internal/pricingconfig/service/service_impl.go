package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/movelar/proforma/internal/config"
	"github.com/movelar/proforma/internal/pricing"
	"github.com/movelar/proforma/internal/pricingconfig/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	Defaults *config.PricingDefaultsHolder
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	defaults *config.PricingDefaultsHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("pricingconfig.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		defaults: p.Defaults,
	}
}

func (s *Service) CreateConfig(ctx context.Context, req domain.CreateConfigRequest) (domain.PricingConfig, error) {
	if req.RateValue < 0 {
		return domain.PricingConfig{}, domain.ErrInvalidRateValue
	}
	for _, pct := range []float64{req.TaxPercent, req.CommissionPercent, req.MarginPercent} {
		if pct < 0 || pct > 100 {
			return domain.PricingConfig{}, domain.ErrInvalidPercent
		}
	}
	basis := strings.TrimSpace(req.MarginBasis)
	switch basis {
	case "", string(pricing.MarginOnBase), string(pricing.MarginOnBasePlusCommission):
	default:
		return domain.PricingConfig{}, domain.ErrInvalidMarginBasis
	}

	effectiveAt := time.Now().UTC()
	if req.EffectiveAt != nil {
		effectiveAt = req.EffectiveAt.UTC()
	}

	cfg := domain.PricingConfig{
		ID:                s.genID.Generate(),
		SupplierID:        req.SupplierID,
		RateValue:         req.RateValue,
		FixedRate:         req.FixedRate,
		TaxPercent:        req.TaxPercent,
		CommissionPercent: req.CommissionPercent,
		MarginPercent:     req.MarginPercent,
		MarginBasis:       basis,
		FOBInland:         req.FOBInland,
		FOBPortHandling:   req.FOBPortHandling,
		FCAInland:         req.FCAInland,
		FCATerminal:       req.FCATerminal,
		CIFOceanFreight:   req.CIFOceanFreight,
		CIFInsurance:      req.CIFInsurance,
		EffectiveAt:       effectiveAt,
		CreatedAt:         time.Now().UTC(),
	}

	if err := s.repo.InsertConfig(ctx, s.db, &cfg); err != nil {
		return domain.PricingConfig{}, err
	}

	s.log.Info("pricing config created",
		zap.String("config_id", cfg.ID.String()),
		zap.Bool("fixed_rate", cfg.FixedRate),
		zap.Bool("global", cfg.SupplierID == nil),
	)
	return cfg, nil
}

func (s *Service) ListConfigs(ctx context.Context, supplierID *snowflake.ID) ([]domain.PricingConfig, error) {
	return s.repo.ListConfigs(ctx, s.db, supplierID)
}

func (s *Service) CreateFreightItem(ctx context.Context, req domain.CreateFreightItemRequest) (domain.FreightItem, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.FreightItem{}, domain.ErrInvalidItemName
	}
	incoterm := strings.ToUpper(strings.TrimSpace(req.Incoterm))
	if !validIncoterm(incoterm) {
		return domain.FreightItem{}, domain.ErrInvalidIncoterm
	}

	now := time.Now().UTC()
	item := domain.FreightItem{
		ID:         s.genID.Generate(),
		SupplierID: req.SupplierID,
		Incoterm:   incoterm,
		Name:       name,
		Amount:     req.Amount,
		Ignore:     req.Ignore,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.InsertFreightItem(ctx, s.db, &item); err != nil {
		return domain.FreightItem{}, err
	}
	return item, nil
}

func (s *Service) ListFreightItems(ctx context.Context, incoterm string) ([]domain.FreightItem, error) {
	return s.repo.ListFreightItems(ctx, s.db, strings.ToUpper(strings.TrimSpace(incoterm)))
}

func (s *Service) DeleteFreightItem(ctx context.Context, id snowflake.ID) error {
	deleted, err := s.repo.DeleteFreightItem(ctx, s.db, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrItemNotFound
	}
	return nil
}

// Snapshot loads every config and freight item in one read and converts
// them to engine values, applying the hot-reloadable defaults to records
// that leave the margin basis unset.
func (s *Service) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	configs, err := s.repo.ListAllConfigs(ctx, s.db)
	if err != nil {
		return domain.Snapshot{}, err
	}
	items, err := s.repo.ListFreightItems(ctx, s.db, "")
	if err != nil {
		return domain.Snapshot{}, err
	}

	defaults := s.defaults.Get()
	snap := domain.Snapshot{
		Configs:      make([]pricing.Config, 0, len(configs)),
		FreightItems: make([]pricing.FreightItem, 0, len(items)),
	}
	for _, cfg := range configs {
		snap.Configs = append(snap.Configs, toEngineConfig(cfg, defaults))
	}
	for _, item := range items {
		snap.FreightItems = append(snap.FreightItems, pricing.FreightItem{
			Name:       item.Name,
			Amount:     item.Amount,
			Ignore:     item.Ignore,
			SupplierID: item.SupplierID,
			Incoterm:   pricing.Incoterm(item.Incoterm),
		})
	}
	return snap, nil
}

func toEngineConfig(cfg domain.PricingConfig, defaults config.PricingDefaults) pricing.Config {
	basis := pricing.MarginBasis(cfg.MarginBasis)
	if cfg.MarginBasis == "" {
		basis = pricing.MarginBasis(defaults.MarginBasis)
	}
	return pricing.Config{
		SupplierID:        cfg.SupplierID,
		RateValue:         cfg.RateValue,
		FixedRate:         cfg.FixedRate,
		TaxPercent:        cfg.TaxPercent,
		CommissionPercent: cfg.CommissionPercent,
		MarginPercent:     cfg.MarginPercent,
		MarginBasis:       basis,
		FreightBase: pricing.FreightBaseCosts{
			FOBInland:       cfg.FOBInland,
			FOBPortHandling: cfg.FOBPortHandling,
			FCAInland:       cfg.FCAInland,
			FCATerminal:     cfg.FCATerminal,
			CIFOceanFreight: cfg.CIFOceanFreight,
			CIFInsurance:    cfg.CIFInsurance,
		},
		EffectiveAt: cfg.EffectiveAt,
	}
}

func validIncoterm(value string) bool {
	switch pricing.Incoterm(value) {
	case pricing.IncotermFOB, pricing.IncotermFCA, pricing.IncotermCIF, pricing.IncotermOther:
		return true
	default:
		return false
	}
}
