package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/movelar/proforma/internal/catalog/domain"
	clientdomain "github.com/movelar/proforma/internal/client/domain"
	"github.com/movelar/proforma/internal/config"
	fxquotedomain "github.com/movelar/proforma/internal/fxquote/domain"
	"github.com/movelar/proforma/internal/observability/metrics"
	"github.com/movelar/proforma/internal/pricing"
	pricingconfigdomain "github.com/movelar/proforma/internal/pricingconfig/domain"
	"github.com/movelar/proforma/internal/proforma/domain"
	"github.com/movelar/proforma/internal/proforma/format"
	supplierdomain "github.com/movelar/proforma/internal/supplier/domain"
	"github.com/movelar/proforma/pkg/db/pagination"
	"github.com/oklog/ulid/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        domain.Repository
	ConfigSvc   pricingconfigdomain.Service
	QuoteSvc    fxquotedomain.Service
	CatalogSvc  catalogdomain.Service
	ClientSvc   clientdomain.Service
	SupplierSvc supplierdomain.Service
	Defaults    *config.PricingDefaultsHolder
	Metrics     *metrics.HTTPMetrics `optional:"true"`
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        domain.Repository
	configSvc   pricingconfigdomain.Service
	quoteSvc    fxquotedomain.Service
	catalogSvc  catalogdomain.Service
	clientSvc   clientdomain.Service
	supplierSvc supplierdomain.Service
	defaults    *config.PricingDefaultsHolder
	metrics     *metrics.HTTPMetrics
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("proforma.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		configSvc:   p.ConfigSvc,
		quoteSvc:    p.QuoteSvc,
		catalogSvc:  p.CatalogSvc,
		clientSvc:   p.ClientSvc,
		supplierSvc: p.SupplierSvc,
		defaults:    p.Defaults,
		metrics:     p.Metrics,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateProformaRequest) (domain.Detail, error) {
	mode := strings.ToUpper(strings.TrimSpace(req.CurrencyMode))
	if mode != string(pricing.ModeBRL) && mode != string(pricing.ModeEXWUSD) {
		return domain.Detail{}, domain.ErrInvalidCurrencyMode
	}
	incoterm := strings.ToUpper(strings.TrimSpace(req.Incoterm))
	if !validIncoterm(incoterm) {
		return domain.Detail{}, domain.ErrInvalidIncoterm
	}
	if req.ClientID == 0 {
		return domain.Detail{}, domain.ErrInvalidClient
	}
	if len(req.Lines) == 0 {
		return domain.Detail{}, domain.ErrEmptyLines
	}

	if _, err := s.clientSvc.GetByID(ctx, req.ClientID); err != nil {
		return domain.Detail{}, err
	}

	quote, err := s.quoteSvc.Latest(ctx)
	if err != nil {
		return domain.Detail{}, err
	}

	now := time.Now().UTC()
	proforma := domain.Proforma{
		ID:           s.genID.Generate(),
		ClientID:     req.ClientID,
		SupplierID:   req.SupplierID,
		CurrencyMode: mode,
		Incoterm:     incoterm,
		Status:       domain.ProformaStatusDraft,
		SpotRate:     quote.Rate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	items := make([]domain.ProformaItem, 0, len(req.Lines))
	for _, line := range req.Lines {
		item, err := s.buildItem(ctx, proforma.ID, line)
		if err != nil {
			return domain.Detail{}, err
		}
		items = append(items, item)
	}

	if err := s.compute(ctx, &proforma, items); err != nil {
		return domain.Detail{}, err
	}

	var detail domain.Detail
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seq, err := s.repo.CountForYear(ctx, tx, now.Year())
		if err != nil {
			return err
		}
		number, err := format.FormatNumber(s.defaults.Get().NumberTemplate, now, seq+1)
		if err != nil {
			return err
		}
		proforma.Number = number

		if err := s.repo.Insert(ctx, tx, &proforma, items); err != nil {
			return err
		}
		detail = domain.Detail{Proforma: proforma, Items: items}
		return nil
	})
	if err != nil {
		return domain.Detail{}, err
	}

	s.log.Info("proforma created",
		zap.String("proforma_id", proforma.ID.String()),
		zap.String("number", proforma.Number),
		zap.String("currency_mode", mode),
		zap.Int("lines", len(items)),
	)
	return detail, nil
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (domain.Detail, error) {
	proforma, items, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Detail{}, err
	}
	if proforma == nil {
		return domain.Detail{}, domain.ErrProformaNotFound
	}
	return domain.Detail{Proforma: *proforma, Items: items}, nil
}

func (s *Service) List(ctx context.Context, page pagination.Pagination) (domain.ListProformaResponse, error) {
	proformas, err := s.repo.List(ctx, s.db, page)
	if err != nil {
		return domain.ListProformaResponse{}, err
	}
	trimmed, info := pagination.Trim(proformas, page)
	return domain.ListProformaResponse{PageInfo: info, Proformas: trimmed}, nil
}

func (s *Service) AddItem(ctx context.Context, proformaID snowflake.ID, line domain.LineRequest) (domain.Detail, error) {
	return s.mutate(ctx, proformaID, true, func(tx *gorm.DB, proforma *domain.Proforma, items *[]domain.ProformaItem) error {
		item, err := s.buildItem(ctx, proformaID, line)
		if err != nil {
			return err
		}
		if err := s.repo.InsertItem(ctx, tx, &item); err != nil {
			return err
		}
		*items = append(*items, item)
		return nil
	})
}

func (s *Service) UpdateItem(ctx context.Context, proformaID, itemID snowflake.ID, req domain.UpdateItemRequest) (domain.Detail, error) {
	return s.mutate(ctx, proformaID, true, func(tx *gorm.DB, proforma *domain.Proforma, items *[]domain.ProformaItem) error {
		for i := range *items {
			if (*items)[i].ID != itemID {
				continue
			}
			item := &(*items)[i]
			if req.Description != nil {
				item.Description = strings.TrimSpace(*req.Description)
			}
			if req.Quantity != nil {
				item.Quantity = *req.Quantity
			}
			if req.BaseFabricValue != nil {
				item.BaseFabricValue = *req.BaseFabricValue
			}
			if req.UnitVolume != nil {
				item.UnitVolume = *req.UnitVolume
			}
			item.UpdatedAt = time.Now().UTC()
			return nil
		}
		return domain.ErrItemNotFound
	})
}

func (s *Service) RemoveItem(ctx context.Context, proformaID, itemID snowflake.ID) (domain.Detail, error) {
	return s.mutate(ctx, proformaID, true, func(tx *gorm.DB, proforma *domain.Proforma, items *[]domain.ProformaItem) error {
		deleted, err := s.repo.DeleteItem(ctx, tx, proformaID, itemID)
		if err != nil {
			return err
		}
		if !deleted {
			return domain.ErrItemNotFound
		}
		kept := (*items)[:0]
		for _, item := range *items {
			if item.ID != itemID {
				kept = append(kept, item)
			}
		}
		*items = kept
		return nil
	})
}

// SetSpotRate pins an explicit contractual rate on a draft instead of the
// latest submitted quote, then recomputes against it.
func (s *Service) SetSpotRate(ctx context.Context, proformaID snowflake.ID, rate float64) (domain.Detail, error) {
	if rate <= 0 {
		return domain.Detail{}, domain.ErrInvalidSpotRate
	}
	return s.mutate(ctx, proformaID, false, func(tx *gorm.DB, proforma *domain.Proforma, items *[]domain.ProformaItem) error {
		proforma.SpotRate = rate
		return nil
	})
}

// Recompute re-runs the engine over a fresh snapshot and the latest spot
// quote. Any input change funnels through here; derived columns are never
// patched in place.
func (s *Service) Recompute(ctx context.Context, proformaID snowflake.ID) (domain.Detail, error) {
	return s.mutate(ctx, proformaID, true, func(tx *gorm.DB, proforma *domain.Proforma, items *[]domain.ProformaItem) error {
		return nil
	})
}

func (s *Service) Issue(ctx context.Context, proformaID snowflake.ID) (domain.Detail, error) {
	proforma, items, err := s.repo.FindByID(ctx, s.db, proformaID)
	if err != nil {
		return domain.Detail{}, err
	}
	if proforma == nil {
		return domain.Detail{}, domain.ErrProformaNotFound
	}
	if proforma.Status != domain.ProformaStatusDraft {
		return domain.Detail{}, domain.ErrNotDraft
	}

	now := time.Now().UTC()
	proforma.Status = domain.ProformaStatusIssued
	proforma.IssuedAt = &now
	proforma.UpdatedAt = now

	if err := s.repo.Update(ctx, s.db, proforma); err != nil {
		return domain.Detail{}, err
	}
	return domain.Detail{Proforma: *proforma, Items: items}, nil
}

// mutate loads a draft proforma, applies fn, then recomputes and persists
// everything inside one transaction. refreshSpot pulls the latest quote
// before computing; SetSpotRate passes false to keep its pinned rate.
func (s *Service) mutate(ctx context.Context, proformaID snowflake.ID, refreshSpot bool, fn func(tx *gorm.DB, proforma *domain.Proforma, items *[]domain.ProformaItem) error) (domain.Detail, error) {
	var detail domain.Detail
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		proforma, items, err := s.repo.FindByID(ctx, tx, proformaID)
		if err != nil {
			return err
		}
		if proforma == nil {
			return domain.ErrProformaNotFound
		}
		if proforma.Status != domain.ProformaStatusDraft {
			return domain.ErrNotDraft
		}

		if err := fn(tx, proforma, &items); err != nil {
			return err
		}

		if refreshSpot {
			quote, err := s.quoteSvc.Latest(ctx)
			if err != nil {
				return err
			}
			proforma.SpotRate = quote.Rate
		}

		if err := s.compute(ctx, proforma, items); err != nil {
			return err
		}
		proforma.UpdatedAt = time.Now().UTC()

		if err := s.repo.Update(ctx, tx, proforma); err != nil {
			return err
		}
		if err := s.repo.UpdateItems(ctx, tx, items); err != nil {
			return err
		}
		detail = domain.Detail{Proforma: *proforma, Items: items}
		return nil
	})
	if err != nil {
		return domain.Detail{}, err
	}
	return detail, nil
}

// compute runs the engine over a fresh configuration snapshot and writes
// the result back onto the proforma and its items.
func (s *Service) compute(ctx context.Context, proforma *domain.Proforma, items []domain.ProformaItem) error {
	snap, err := s.configSvc.Snapshot(ctx)
	if err != nil {
		return err
	}

	in := pricing.Input{
		Mode:       pricing.CurrencyMode(proforma.CurrencyMode),
		Incoterm:   pricing.Incoterm(proforma.Incoterm),
		SupplierID: proforma.SupplierID,
		SpotRate:   proforma.SpotRate,
	}
	for _, item := range items {
		in.Lines = append(in.Lines, pricing.LineInput{
			ItemID:          item.ID,
			BaseFabricValue: item.BaseFabricValue,
			Quantity:        item.Quantity,
			UnitVolume:      item.UnitVolume,
		})
	}

	res, err := pricing.Compute(in, snap.Configs, snap.FreightItems)
	if err != nil {
		s.metrics.ObserveCompute("error")
		return err
	}
	s.metrics.ObserveCompute("ok")

	byItem := make(map[snowflake.ID]pricing.ComputedLine, len(res.Lines))
	for _, line := range res.Lines {
		byItem[line.ItemID] = line
	}
	for i := range items {
		line := byItem[items[i].ID]
		items[i].UnitPrice = line.UnitPrice
		items[i].FreightUnitBRL = line.FreightUnitBRL
		items[i].FreightUnitUSD = line.FreightUnitUSD
		items[i].TotalBRL = line.TotalBRL
		items[i].TotalUSD = line.TotalUSD
	}

	proforma.RiskRate = res.RiskRate
	proforma.TaxPercent = res.TaxPercent
	proforma.FreightBRL = res.FreightTotalBRL
	proforma.FreightUSD = res.FreightTotalUSD
	proforma.TotalBRL = res.TotalBRL
	proforma.TotalUSD = res.TotalUSD
	return nil
}

func (s *Service) buildItem(ctx context.Context, proformaID snowflake.ID, line domain.LineRequest) (domain.ProformaItem, error) {
	now := time.Now().UTC()
	item := domain.ProformaItem{
		ID:          s.genID.Generate(),
		ProformaID:  proformaID,
		ModuleID:    line.ModuleID,
		FabricID:    line.FabricID,
		Description: strings.TrimSpace(line.Description),
		Quantity:    line.Quantity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var names []string
	if line.ModuleID != nil {
		module, err := s.catalogSvc.GetModule(ctx, *line.ModuleID)
		if err != nil {
			return domain.ProformaItem{}, err
		}
		item.UnitVolume = module.UnitVolume()
		names = append(names, module.Name)
	}
	if line.FabricID != nil {
		fabric, err := s.catalogSvc.GetFabric(ctx, *line.FabricID)
		if err != nil {
			return domain.ProformaItem{}, err
		}
		item.BaseFabricValue = fabric.BaseValue
		names = append(names, fabric.Name)
	}

	// Explicit values win over catalog lookups for ad hoc lines.
	if line.UnitVolume != nil {
		item.UnitVolume = *line.UnitVolume
	}
	if line.BaseFabricValue != nil {
		item.BaseFabricValue = *line.BaseFabricValue
	}
	if item.Description == "" {
		item.Description = strings.Join(names, " / ")
	}
	return item, nil
}

func (s *Service) Document(ctx context.Context, proformaID snowflake.ID) (domain.Document, error) {
	detail, err := s.GetByID(ctx, proformaID)
	if err != nil {
		return domain.Document{}, err
	}

	cli, err := s.clientSvc.GetByID(ctx, detail.ClientID)
	if err != nil {
		return domain.Document{}, err
	}

	doc := domain.Document{
		ExportID:        ulid.Make().String(),
		Number:          detail.Number,
		Status:          string(detail.Status),
		CurrencyMode:    detail.CurrencyMode,
		Incoterm:        detail.Incoterm,
		ClientName:      cli.Name,
		ClientCountry:   cli.Country,
		Consignee:       cli.Consignee,
		Address:         cli.Address,
		SpotRate:        formatRate(detail.SpotRate),
		RiskRate:        formatRate(detail.RiskRate),
		GeneratedAt:     time.Now().UTC().Format("2006-01-02"),
		FreightTotalBRL: formatMoney(detail.FreightBRL),
		FreightTotalUSD: formatMoney(detail.FreightUSD),
		TotalBRL:        formatMoney(detail.TotalBRL),
		TotalUSD:        formatMoney(detail.TotalUSD),
	}
	if detail.IssuedAt != nil {
		doc.IssuedAt = detail.IssuedAt.Format("2006-01-02")
	}
	if detail.SupplierID != nil {
		sup, err := s.supplierSvc.GetByID(ctx, *detail.SupplierID)
		if err != nil {
			return domain.Document{}, err
		}
		doc.SupplierName = sup.Name
	}

	for _, item := range detail.Items {
		doc.Lines = append(doc.Lines, domain.DocumentLine{
			Description: item.Description,
			Quantity:    strconv.FormatFloat(item.Quantity, 'f', -1, 64),
			UnitVolume:  strconv.FormatFloat(item.UnitVolume, 'f', 3, 64),
			UnitPrice:   formatMoney(item.UnitPrice),
			FreightBRL:  formatMoney(item.FreightUnitBRL * item.Quantity),
			TotalBRL:    formatMoney(item.TotalBRL),
			TotalUSD:    formatMoney(item.TotalUSD),
		})
	}
	return doc, nil
}

// formatMoney rounds at the presentation boundary only; stored values stay
// unrounded to avoid compounding drift in aggregates.
func formatMoney(v float64) string {
	return strconv.FormatFloat(pricing.Round2(v), 'f', 2, 64)
}

func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func validIncoterm(value string) bool {
	switch pricing.Incoterm(value) {
	case pricing.IncotermFOB, pricing.IncotermFCA, pricing.IncotermCIF, pricing.IncotermOther:
		return true
	default:
		return false
	}
}
