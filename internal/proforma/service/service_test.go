package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	catalogdomain "github.com/movelar/proforma/internal/catalog/domain"
	catalogrepo "github.com/movelar/proforma/internal/catalog/repository"
	catalogsvc "github.com/movelar/proforma/internal/catalog/service"
	clientdomain "github.com/movelar/proforma/internal/client/domain"
	clientrepo "github.com/movelar/proforma/internal/client/repository"
	clientsvc "github.com/movelar/proforma/internal/client/service"
	"github.com/movelar/proforma/internal/config"
	fxquotedomain "github.com/movelar/proforma/internal/fxquote/domain"
	fxquotesvc "github.com/movelar/proforma/internal/fxquote/service"
	"github.com/movelar/proforma/internal/pricing"
	pricingconfigdomain "github.com/movelar/proforma/internal/pricingconfig/domain"
	pricingconfigrepo "github.com/movelar/proforma/internal/pricingconfig/repository"
	pricingconfigsvc "github.com/movelar/proforma/internal/pricingconfig/service"
	"github.com/movelar/proforma/internal/proforma/domain"
	"github.com/movelar/proforma/internal/proforma/repository"
	supplierdomain "github.com/movelar/proforma/internal/supplier/domain"
	supplierrepo "github.com/movelar/proforma/internal/supplier/repository"
	suppliersvc "github.com/movelar/proforma/internal/supplier/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	svc       domain.Service
	configSvc pricingconfigdomain.Service
	quoteSvc  fxquotedomain.Service
	clientSvc clientdomain.Service
	catalog   catalogdomain.Service
	node      *snowflake.Node
}

func setup(t *testing.T) fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps the in-memory database alive across the pool.
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&supplierdomain.Supplier{},
		&catalogdomain.Fabric{},
		&catalogdomain.FurnitureModule{},
		&clientdomain.Client{},
		&pricingconfigdomain.PricingConfig{},
		&pricingconfigdomain.FreightItem{},
		&fxquotedomain.SpotQuote{},
		&domain.Proforma{},
		&domain.ProformaItem{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	holder, err := config.NewPricingDefaultsHolder()
	require.NoError(t, err)
	log := zap.NewNop()

	configSvc := pricingconfigsvc.New(pricingconfigsvc.Params{
		DB: db, Log: log, GenID: node,
		Repo:     pricingconfigrepo.Provide(),
		Defaults: holder,
	})
	quoteSvc := fxquotesvc.New(fxquotesvc.Params{
		Cfg: config.Config{}, DB: db, Log: log, GenID: node, Defaults: holder,
	})
	catalogSvc := catalogsvc.New(catalogsvc.Params{
		DB: db, Log: log, GenID: node, Repo: catalogrepo.Provide(),
	})
	clientSvc := clientsvc.New(clientsvc.Params{
		DB: db, Log: log, GenID: node, Repo: clientrepo.Provide(),
	})
	supplierSvc := suppliersvc.New(suppliersvc.Params{
		DB: db, Log: log, GenID: node, Repo: supplierrepo.Provide(),
	})

	svc := New(Params{
		DB:          db,
		Log:         log,
		GenID:       node,
		Repo:        repository.Provide(),
		ConfigSvc:   configSvc,
		QuoteSvc:    quoteSvc,
		CatalogSvc:  catalogSvc,
		ClientSvc:   clientSvc,
		SupplierSvc: supplierSvc,
		Defaults:    holder,
	})
	return fixture{
		svc:       svc,
		configSvc: configSvc,
		quoteSvc:  quoteSvc,
		clientSvc: clientSvc,
		catalog:   catalogSvc,
		node:      node,
	}
}

func (f fixture) seedClient(t *testing.T) clientdomain.Client {
	t.Helper()
	cli, err := f.clientSvc.Create(context.Background(), clientdomain.CreateClientRequest{
		Name:    "Casa Verde Imports",
		Email:   "orders@casaverde.example",
		Country: "MX",
	})
	require.NoError(t, err)
	return cli
}

func (f fixture) seedPricing(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	_, err := f.configSvc.CreateConfig(ctx, pricingconfigdomain.CreateConfigRequest{
		RateValue:         0.30,
		CommissionPercent: 5,
		MarginPercent:     10,
	})
	require.NoError(t, err)

	_, err = f.quoteSvc.Submit(ctx, fxquotedomain.SubmitQuoteRequest{Rate: 5.50})
	require.NoError(t, err)
}

func TestCreate_ComputesAndPersists(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	cli := f.seedClient(t)
	f.seedPricing(t)

	_, err := f.configSvc.CreateFreightItem(ctx, pricingconfigdomain.CreateFreightItemRequest{
		Incoterm: "FOB", Name: "road", Amount: 400,
	})
	require.NoError(t, err)

	detail, err := f.svc.Create(ctx, domain.CreateProformaRequest{
		ClientID:     cli.ID,
		CurrencyMode: "EXW_USD",
		Incoterm:     "FOB",
		Lines: []domain.LineRequest{
			{Description: "Sofa module A", Quantity: 1, BaseFabricValue: ptr(100.0), UnitVolume: ptr(0.5)},
			{Description: "Sofa module B", Quantity: 1, BaseFabricValue: ptr(100.0), UnitVolume: ptr(1.5)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ProformaStatusDraft, detail.Status)
	assert.NotEmpty(t, detail.Number)
	assert.Equal(t, 5.50, detail.SpotRate)
	// risk rate = spot - rate_value
	assert.InDelta(t, 5.20, detail.RiskRate, 1e-9)

	require.Len(t, detail.Items, 2)
	// 100/5.20 * (1 + 5% + 10%) with margin on base
	assert.InDelta(t, 22.1154, detail.Items[0].UnitPrice, 1e-4)
	// 400 BRL split by volume weight 0.5 : 1.5
	assert.InDelta(t, 100.0, detail.Items[0].FreightUnitBRL, 1e-9)
	assert.InDelta(t, 300.0, detail.Items[1].FreightUnitBRL, 1e-9)
	assert.InDelta(t, 400.0, detail.FreightBRL, 1e-9)

	// Reload to confirm the derived columns were persisted.
	got, err := f.svc.GetByID(ctx, detail.ID)
	require.NoError(t, err)
	assert.InDelta(t, detail.TotalUSD, got.TotalUSD, 1e-9)
	assert.Len(t, got.Items, 2)
}

func TestCreate_ResolvesCatalogReferences(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	cli := f.seedClient(t)
	f.seedPricing(t)

	fabric, err := f.catalog.CreateFabric(ctx, catalogdomain.CreateFabricRequest{
		Name: "Linen Sand", BaseValue: 100,
	})
	require.NoError(t, err)
	module, err := f.catalog.CreateModule(ctx, catalogdomain.CreateModuleRequest{
		Name: "Chaise 90", WidthM: 0.9, DepthM: 1.0, HeightM: 0.5,
	})
	require.NoError(t, err)

	detail, err := f.svc.Create(ctx, domain.CreateProformaRequest{
		ClientID:     cli.ID,
		CurrencyMode: "BRL",
		Incoterm:     "FOB",
		Lines: []domain.LineRequest{
			{ModuleID: &module.ID, FabricID: &fabric.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)

	require.Len(t, detail.Items, 1)
	item := detail.Items[0]
	assert.Equal(t, 100.0, item.BaseFabricValue)
	assert.InDelta(t, 0.45, item.UnitVolume, 1e-9)
	assert.Equal(t, "Chaise 90 / Linen Sand", item.Description)
	// BRL mode: unit price is the base value untouched.
	assert.Equal(t, 100.0, item.UnitPrice)
}

func TestCreate_Validation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	cli := f.seedClient(t)
	f.seedPricing(t)

	_, err := f.svc.Create(ctx, domain.CreateProformaRequest{
		ClientID: cli.ID, CurrencyMode: "EUR", Incoterm: "FOB",
		Lines: []domain.LineRequest{{Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCurrencyMode)

	_, err = f.svc.Create(ctx, domain.CreateProformaRequest{
		ClientID: cli.ID, CurrencyMode: "BRL", Incoterm: "DAP",
		Lines: []domain.LineRequest{{Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidIncoterm)

	_, err = f.svc.Create(ctx, domain.CreateProformaRequest{
		ClientID: cli.ID, CurrencyMode: "BRL", Incoterm: "FOB",
	})
	assert.ErrorIs(t, err, domain.ErrEmptyLines)
}

func TestCreate_NoQuoteFails(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	cli := f.seedClient(t)

	_, err := f.svc.Create(ctx, domain.CreateProformaRequest{
		ClientID: cli.ID, CurrencyMode: "BRL", Incoterm: "FOB",
		Lines: []domain.LineRequest{{Quantity: 1, BaseFabricValue: ptr(50.0)}},
	})
	assert.ErrorIs(t, err, fxquotedomain.ErrNoQuote)
}

func TestMutations_TriggerRecompute(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	cli := f.seedClient(t)
	f.seedPricing(t)

	detail, err := f.svc.Create(ctx, domain.CreateProformaRequest{
		ClientID: cli.ID, CurrencyMode: "EXW_USD", Incoterm: "FOB",
		Lines: []domain.LineRequest{
			{Description: "Module A", Quantity: 1, BaseFabricValue: ptr(100.0), UnitVolume: ptr(1.0)},
		},
	})
	require.NoError(t, err)
	firstTotal := detail.TotalUSD

	detail, err = f.svc.AddItem(ctx, detail.ID, domain.LineRequest{
		Description: "Module B", Quantity: 2, BaseFabricValue: ptr(100.0), UnitVolume: ptr(1.0),
	})
	require.NoError(t, err)
	require.Len(t, detail.Items, 2)
	assert.Greater(t, detail.TotalUSD, firstTotal)

	itemID := detail.Items[1].ID
	detail, err = f.svc.UpdateItem(ctx, detail.ID, itemID, domain.UpdateItemRequest{
		Quantity: ptr(1.0),
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, detail.Items[1].Quantity)

	detail, err = f.svc.RemoveItem(ctx, detail.ID, itemID)
	require.NoError(t, err)
	require.Len(t, detail.Items, 1)
	assert.InDelta(t, firstTotal, detail.TotalUSD, 1e-9)

	_, err = f.svc.RemoveItem(ctx, detail.ID, itemID)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestRecompute_PicksUpNewQuoteAndConfig(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	cli := f.seedClient(t)
	f.seedPricing(t)

	detail, err := f.svc.Create(ctx, domain.CreateProformaRequest{
		ClientID: cli.ID, CurrencyMode: "EXW_USD", Incoterm: "FOB",
		Lines: []domain.LineRequest{
			{Description: "Module A", Quantity: 1, BaseFabricValue: ptr(104.0), UnitVolume: ptr(1.0)},
		},
	})
	require.NoError(t, err)
	assert.InDelta(t, 5.20, detail.RiskRate, 1e-9)

	_, err = f.quoteSvc.Submit(ctx, fxquotedomain.SubmitQuoteRequest{Rate: 6.00})
	require.NoError(t, err)

	detail, err = f.svc.Recompute(ctx, detail.ID)
	require.NoError(t, err)
	assert.Equal(t, 6.00, detail.SpotRate)
	assert.InDelta(t, 5.70, detail.RiskRate, 1e-9)

	// A fixed-rate configuration pins the risk rate regardless of spot.
	_, err = f.configSvc.CreateConfig(ctx, pricingconfigdomain.CreateConfigRequest{
		RateValue: 5.00, FixedRate: true,
	})
	require.NoError(t, err)

	detail, err = f.svc.Recompute(ctx, detail.ID)
	require.NoError(t, err)
	assert.InDelta(t, 5.00, detail.RiskRate, 1e-9)
}

func TestSetSpotRate_PinsContractualRate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	cli := f.seedClient(t)
	f.seedPricing(t)

	detail, err := f.svc.Create(ctx, domain.CreateProformaRequest{
		ClientID: cli.ID, CurrencyMode: "EXW_USD", Incoterm: "FOB",
		Lines: []domain.LineRequest{
			{Description: "Module A", Quantity: 1, BaseFabricValue: ptr(104.0), UnitVolume: ptr(1.0)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 5.50, detail.SpotRate)

	detail, err = f.svc.SetSpotRate(ctx, detail.ID, 6.00)
	require.NoError(t, err)
	assert.Equal(t, 6.00, detail.SpotRate)
	assert.InDelta(t, 5.70, detail.RiskRate, 1e-9)

	_, err = f.svc.SetSpotRate(ctx, detail.ID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidSpotRate)

	// Recompute goes back to the latest submitted quote.
	detail, err = f.svc.Recompute(ctx, detail.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.50, detail.SpotRate)
}

func TestIssue_LocksProforma(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	cli := f.seedClient(t)
	f.seedPricing(t)

	detail, err := f.svc.Create(ctx, domain.CreateProformaRequest{
		ClientID: cli.ID, CurrencyMode: "BRL", Incoterm: "FCA",
		Lines: []domain.LineRequest{
			{Description: "Module A", Quantity: 1, BaseFabricValue: ptr(100.0), UnitVolume: ptr(1.0)},
		},
	})
	require.NoError(t, err)

	issued, err := f.svc.Issue(ctx, detail.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProformaStatusIssued, issued.Status)
	require.NotNil(t, issued.IssuedAt)

	_, err = f.svc.Issue(ctx, detail.ID)
	assert.ErrorIs(t, err, domain.ErrNotDraft)

	_, err = f.svc.AddItem(ctx, detail.ID, domain.LineRequest{Quantity: 1, BaseFabricValue: ptr(10.0)})
	assert.ErrorIs(t, err, domain.ErrNotDraft)
}

func TestDocument_FormatsComputedValues(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	cli := f.seedClient(t)
	f.seedPricing(t)

	detail, err := f.svc.Create(ctx, domain.CreateProformaRequest{
		ClientID: cli.ID, CurrencyMode: "EXW_USD", Incoterm: "FOB",
		Lines: []domain.LineRequest{
			{Description: "Module A", Quantity: 1, BaseFabricValue: ptr(100.0), UnitVolume: ptr(1.0)},
		},
	})
	require.NoError(t, err)

	doc, err := f.svc.Document(ctx, detail.ID)
	require.NoError(t, err)

	assert.Equal(t, detail.Number, doc.Number)
	assert.Equal(t, "Casa Verde Imports", doc.ClientName)
	assert.Equal(t, "5.5000", doc.SpotRate)
	assert.Equal(t, "5.2000", doc.RiskRate)
	assert.NotEmpty(t, doc.ExportID)
	require.Len(t, doc.Lines, 1)
	assert.Equal(t, "22.12", doc.Lines[0].UnitPrice)

	// Export identifiers are fresh per render.
	again, err := f.svc.Document(ctx, detail.ID)
	require.NoError(t, err)
	assert.NotEqual(t, doc.ExportID, again.ExportID)
}

func TestNumber_SequencePerYear(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	cli := f.seedClient(t)
	f.seedPricing(t)

	first, err := f.svc.Create(ctx, domain.CreateProformaRequest{
		ClientID: cli.ID, CurrencyMode: "BRL", Incoterm: "FOB",
		Lines: []domain.LineRequest{{Quantity: 1, BaseFabricValue: ptr(10.0)}},
	})
	require.NoError(t, err)

	second, err := f.svc.Create(ctx, domain.CreateProformaRequest{
		ClientID: cli.ID, CurrencyMode: "BRL", Incoterm: "FOB",
		Lines: []domain.LineRequest{{Quantity: 1, BaseFabricValue: ptr(10.0)}},
	})
	require.NoError(t, err)

	assert.NotEqual(t, first.Number, second.Number)
	now := time.Now().UTC()
	prefix := now.Format("2006") + now.Format("01")
	assert.Contains(t, first.Number, prefix)
}

func TestCreate_NoConfigurationSurfacesEngineError(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	cli := f.seedClient(t)

	_, err := f.quoteSvc.Submit(ctx, fxquotedomain.SubmitQuoteRequest{Rate: 5.50})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, domain.CreateProformaRequest{
		ClientID: cli.ID, CurrencyMode: "EXW_USD", Incoterm: "FOB",
		Lines: []domain.LineRequest{{Quantity: 1, BaseFabricValue: ptr(100.0)}},
	})
	assert.ErrorIs(t, err, pricing.ErrNoConfiguration)
}

func ptr[T any](v T) *T { return &v }
