package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/movelar/proforma/internal/catalog"
	catalogdomain "github.com/movelar/proforma/internal/catalog/domain"
	"github.com/movelar/proforma/internal/client"
	clientdomain "github.com/movelar/proforma/internal/client/domain"
	"github.com/movelar/proforma/internal/config"
	"github.com/movelar/proforma/internal/fxquote"
	fxquotedomain "github.com/movelar/proforma/internal/fxquote/domain"
	"github.com/movelar/proforma/internal/observability"
	obslogger "github.com/movelar/proforma/internal/observability/logger"
	obsmetrics "github.com/movelar/proforma/internal/observability/metrics"
	"github.com/movelar/proforma/internal/pricingconfig"
	pricingconfigdomain "github.com/movelar/proforma/internal/pricingconfig/domain"
	"github.com/movelar/proforma/internal/proforma"
	proformadomain "github.com/movelar/proforma/internal/proforma/domain"
	"github.com/movelar/proforma/internal/proforma/render"
	"github.com/movelar/proforma/internal/providers"
	"github.com/movelar/proforma/internal/providers/pdf"
	"github.com/movelar/proforma/internal/supplier"
	supplierdomain "github.com/movelar/proforma/internal/supplier/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	observability.Module,
	supplier.Module,
	catalog.Module,
	client.Module,
	pricingconfig.Module,
	fxquote.Module,
	proforma.Module,
	providers.Module,
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Log:             log.Named("http"),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(log, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine           *gin.Engine
	cfg              config.Config
	genID            *snowflake.Node
	supplierSvc      supplierdomain.Service
	catalogSvc       catalogdomain.Service
	clientSvc        clientdomain.Service
	pricingConfigSvc pricingconfigdomain.Service
	quoteSvc         fxquotedomain.Service
	proformaSvc      proformadomain.Service
	htmlRenderer     *render.HTMLRenderer
	pdfProvider      pdf.Provider
}

type ServerParams struct {
	fx.In

	Gin              *gin.Engine
	Cfg              config.Config
	GenID            *snowflake.Node
	SupplierSvc      supplierdomain.Service
	CatalogSvc       catalogdomain.Service
	ClientSvc        clientdomain.Service
	PricingConfigSvc pricingconfigdomain.Service
	QuoteSvc         fxquotedomain.Service
	ProformaSvc      proformadomain.Service
	HTMLRenderer     *render.HTMLRenderer
	PDFProvider      pdf.Provider
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:           p.Gin,
		cfg:              p.Cfg,
		genID:            p.GenID,
		supplierSvc:      p.SupplierSvc,
		catalogSvc:       p.CatalogSvc,
		clientSvc:        p.ClientSvc,
		pricingConfigSvc: p.PricingConfigSvc,
		quoteSvc:         p.QuoteSvc,
		proformaSvc:      p.ProformaSvc,
		htmlRenderer:     p.HTMLRenderer,
		pdfProvider:      p.PDFProvider,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Suppliers --------
	api.GET("/suppliers", s.ListSuppliers)
	api.POST("/suppliers", s.CreateSupplier)
	api.GET("/suppliers/:id", s.GetSupplierByID)
	api.PATCH("/suppliers/:id", s.UpdateSupplier)

	// -------- Catalog --------
	api.GET("/fabrics", s.ListFabrics)
	api.POST("/fabrics", s.CreateFabric)
	api.GET("/fabrics/:id", s.GetFabricByID)
	api.GET("/modules", s.ListModules)
	api.POST("/modules", s.CreateModule)
	api.GET("/modules/:id", s.GetModuleByID)

	// -------- Clients --------
	api.GET("/clients", s.ListClients)
	api.POST("/clients", s.CreateClient)
	api.GET("/clients/:id", s.GetClientByID)

	// -------- Pricing Configuration --------
	api.GET("/pricing-configs", s.ListPricingConfigs)
	api.POST("/pricing-configs", s.CreatePricingConfig)
	api.GET("/freight-items", s.ListFreightItems)
	api.POST("/freight-items", s.CreateFreightItem)
	api.DELETE("/freight-items/:id", s.DeleteFreightItem)

	// -------- Spot Quotes --------
	api.GET("/quotes/latest", s.GetLatestQuote)
	api.POST("/quotes", s.SubmitQuote)

	// -------- Proformas --------
	api.GET("/proformas", s.ListProformas)
	api.POST("/proformas", s.CreateProforma)
	api.GET("/proformas/:id", s.GetProformaByID)
	api.POST("/proformas/:id/items", s.AddProformaItem)
	api.PATCH("/proformas/:id/items/:itemId", s.UpdateProformaItem)
	api.DELETE("/proformas/:id/items/:itemId", s.RemoveProformaItem)
	api.PUT("/proformas/:id/spot-rate", s.SetProformaSpotRate)
	api.POST("/proformas/:id/recompute", s.RecomputeProforma)
	api.POST("/proformas/:id/issue", s.IssueProforma)
	api.GET("/proformas/:id/document.html", s.RenderProformaHTML)
	api.GET("/proformas/:id/document.pdf", s.RenderProformaPDF)
}
