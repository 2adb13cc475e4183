// Package server is the HTTP boundary standing in for the UI shell: it
// collects form input, calls the domain services and returns their results
// with a user-facing notice per terminal outcome.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/smallbiznis/ivoice/internal/catalog"
	catalogdomain "github.com/smallbiznis/ivoice/internal/catalog/domain"
	"github.com/smallbiznis/ivoice/internal/config"
	"github.com/smallbiznis/ivoice/internal/invoice"
	invoicedomain "github.com/smallbiznis/ivoice/internal/invoice/domain"
	"github.com/smallbiznis/ivoice/internal/pdf"
	"github.com/smallbiznis/ivoice/internal/report"
	"github.com/smallbiznis/ivoice/internal/seed"
	"github.com/smallbiznis/ivoice/internal/state"
	"github.com/smallbiznis/ivoice/internal/store"
)

var Module = fx.Module("http.server",
	config.Module,
	store.Module,
	state.Module,
	seed.Module,
	catalog.Module,
	pdf.Module,
	invoice.Module,
	report.Module,
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(registerRoutes),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogMiddleware(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
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
	engine     *gin.Engine
	cfg        config.Config
	app        *state.App
	catalogSvc catalogdomain.Service
	invoiceSvc invoicedomain.Service
	reportSvc  *report.Service
	log        *zap.Logger
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	Cfg        config.Config
	App        *state.App
	CatalogSvc catalogdomain.Service
	InvoiceSvc invoicedomain.Service
	ReportSvc  *report.Service
	Log        *zap.Logger
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:     p.Gin,
		cfg:        p.Cfg,
		app:        p.App,
		catalogSvc: p.CatalogSvc,
		invoiceSvc: p.InvoiceSvc,
		reportSvc:  p.ReportSvc,
		log:        p.Log.Named("http"),
	}
}

func registerRoutes(s *Server) {
	s.RegisterAPIRoutes()
}

func (s *Server) RegisterAPIRoutes() {
	api := s.engine.Group("/api/v1")
	api.Use(IdentityMiddleware(s.app))

	api.GET("/me", s.CurrentUser)
	api.GET("/dashboard", s.HomeDashboard)

	api.GET("/parties", s.ListParties)
	api.POST("/parties", s.CreateParty)

	api.GET("/items", s.ListItems)
	api.POST("/items", s.CreateItem)

	api.GET("/invoices", s.ListInvoices)
	api.POST("/invoices", s.CreateInvoice)
	api.GET("/invoices/draft", s.NewInvoiceDraft)
	api.GET("/invoices/:id/pdf", s.DownloadInvoicePDF)
	api.DELETE("/invoices/:id", s.DeleteInvoice)

	api.GET("/reports/sales", s.SalesReport)
	api.GET("/reports/outstanding", s.OutstandingReport)
	api.GET("/reports/inventory", s.InventoryReport)
}

func (s *Server) CurrentUser(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data":    s.app.User(),
		"offline": s.app.Offline(),
	})
}

func (s *Server) HomeDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.reportSvc.HomeDashboard()})
}
