package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
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
	pricingconfigdomain "github.com/movelar/proforma/internal/pricingconfig/domain"
	pricingconfigrepo "github.com/movelar/proforma/internal/pricingconfig/repository"
	pricingconfigsvc "github.com/movelar/proforma/internal/pricingconfig/service"
	proformadomain "github.com/movelar/proforma/internal/proforma/domain"
	"github.com/movelar/proforma/internal/proforma/render"
	proformarepo "github.com/movelar/proforma/internal/proforma/repository"
	proformasvc "github.com/movelar/proforma/internal/proforma/service"
	"github.com/movelar/proforma/internal/providers/pdf"
	supplierdomain "github.com/movelar/proforma/internal/supplier/domain"
	supplierrepo "github.com/movelar/proforma/internal/supplier/repository"
	suppliersvc "github.com/movelar/proforma/internal/supplier/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&supplierdomain.Supplier{},
		&catalogdomain.Fabric{},
		&catalogdomain.FurnitureModule{},
		&clientdomain.Client{},
		&pricingconfigdomain.PricingConfig{},
		&pricingconfigdomain.FreightItem{},
		&fxquotedomain.SpotQuote{},
		&proformadomain.Proforma{},
		&proformadomain.ProformaItem{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	holder, err := config.NewPricingDefaultsHolder()
	require.NoError(t, err)
	log := zap.NewNop()

	supplierSvc := suppliersvc.New(suppliersvc.Params{DB: db, Log: log, GenID: node, Repo: supplierrepo.Provide()})
	catalogSvc := catalogsvc.New(catalogsvc.Params{DB: db, Log: log, GenID: node, Repo: catalogrepo.Provide()})
	clientSvc := clientsvc.New(clientsvc.Params{DB: db, Log: log, GenID: node, Repo: clientrepo.Provide()})
	configSvc := pricingconfigsvc.New(pricingconfigsvc.Params{DB: db, Log: log, GenID: node, Repo: pricingconfigrepo.Provide(), Defaults: holder})
	quoteSvc := fxquotesvc.New(fxquotesvc.Params{Cfg: config.Config{}, DB: db, Log: log, GenID: node, Defaults: holder})
	proformaSvc := proformasvc.New(proformasvc.Params{
		DB: db, Log: log, GenID: node,
		Repo:        proformarepo.Provide(),
		ConfigSvc:   configSvc,
		QuoteSvc:    quoteSvc,
		CatalogSvc:  catalogSvc,
		ClientSvc:   clientSvc,
		SupplierSvc: supplierSvc,
		Defaults:    holder,
	})

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	return NewServer(ServerParams{
		Gin:              engine,
		Cfg:              config.Config{},
		GenID:            node,
		SupplierSvc:      supplierSvc,
		CatalogSvc:       catalogSvc,
		ClientSvc:        clientSvc,
		PricingConfigSvc: configSvc,
		QuoteSvc:         quoteSvc,
		ProformaSvc:      proformaSvc,
		HTMLRenderer:     render.NewHTMLRenderer(),
		PDFProvider:      pdf.New(),
	})
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

func dataField(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func TestProformaFlow(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/clients", gin.H{
		"name":  "Casa Verde Imports",
		"email": "orders@casaverde.example",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var cli clientdomain.Client
	dataField(t, w, &cli)

	w = doJSON(t, s, http.MethodPost, "/api/pricing-configs", gin.H{
		"rate_value":         0.30,
		"commission_percent": 5,
		"margin_percent":     10,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, s, http.MethodPost, "/api/quotes", gin.H{"rate": 5.50})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, s, http.MethodPost, "/api/proformas", gin.H{
		"client_id":     cli.ID.String(),
		"currency_mode": "EXW_USD",
		"incoterm":      "FOB",
		"lines": []gin.H{
			{"description": "Sofa module A", "quantity": 1, "base_fabric_value": 100.0, "unit_volume": 1.0},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var detail proformadomain.Detail
	dataField(t, w, &detail)
	assert.NotEmpty(t, detail.Number)
	assert.InDelta(t, 5.20, detail.RiskRate, 1e-9)

	w = doJSON(t, s, http.MethodPost, fmt.Sprintf("/api/proformas/%s/recompute", detail.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, s, http.MethodGet, fmt.Sprintf("/api/proformas/%s/document.html", detail.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), detail.Number)

	w = doJSON(t, s, http.MethodPost, fmt.Sprintf("/api/proformas/%s/issue", detail.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Issued proformas reject mutations.
	w = doJSON(t, s, http.MethodPost, fmt.Sprintf("/api/proformas/%s/recompute", detail.ID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateProforma_NoQuoteIsUnprocessable(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/clients", gin.H{
		"name":  "Casa Verde Imports",
		"email": "orders@casaverde.example",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var cli clientdomain.Client
	dataField(t, w, &cli)

	w = doJSON(t, s, http.MethodPost, "/api/proformas", gin.H{
		"client_id":     cli.ID.String(),
		"currency_mode": "BRL",
		"incoterm":      "FOB",
		"lines":         []gin.H{{"quantity": 1, "base_fabric_value": 50.0}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "spot quote")
}

func TestValidationErrorsAreBadRequests(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/suppliers", gin.H{"name": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, s, http.MethodPost, "/api/pricing-configs", gin.H{"margin_percent": 200})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, s, http.MethodGet, "/api/proformas/not-a-snowflake", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnknownProformaIs404(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodGet, "/api/proformas/123456789", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
