package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/chatgptnotes/esic-billing/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	billdomain "github.com/chatgptnotes/esic-billing/internal/bill/domain"
	catalogdomain "github.com/chatgptnotes/esic-billing/internal/catalog/domain"
	draftdomain "github.com/chatgptnotes/esic-billing/internal/draft/domain"
	lettersdomain "github.com/chatgptnotes/esic-billing/internal/letters/domain"
	"github.com/chatgptnotes/esic-billing/internal/providers/pdf"
	visitdomain "github.com/chatgptnotes/esic-billing/internal/visit/domain"
)

var Module = fx.Module("http.server",
	fx.Provide(newHTTPMetrics),
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, metrics *HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(MetricsMiddleware(metrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger, metrics *HTTPMetrics) *gin.Engine {
	return NewEngine(log, metrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
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
	log        *zap.Logger
	db         *gorm.DB
	genID      *snowflake.Node
	billSvc    billdomain.Service
	visitSvc   visitdomain.Service
	catalogSvc catalogdomain.Service
	draftSvc   draftdomain.Service
	lettersSvc lettersdomain.Service
	pdfSvc     pdf.Provider
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	Cfg        config.Config
	Log        *zap.Logger
	DB         *gorm.DB
	GenID      *snowflake.Node
	BillSvc    billdomain.Service
	VisitSvc   visitdomain.Service
	CatalogSvc catalogdomain.Service
	DraftSvc   draftdomain.Service
	LettersSvc lettersdomain.Service
	PDFSvc     pdf.Provider
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:     p.Gin,
		cfg:        p.Cfg,
		log:        p.Log.Named("http.server"),
		db:         p.DB,
		genID:      p.GenID,
		billSvc:    p.BillSvc,
		visitSvc:   p.VisitSvc,
		catalogSvc: p.CatalogSvc,
		draftSvc:   p.DraftSvc,
		lettersSvc: p.LettersSvc,
		pdfSvc:     p.PDFSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api/v1")

	// -------- Final bill --------
	api.GET("/visits/:visitId/bill", s.GetBill)
	api.PUT("/visits/:visitId/bill", s.SaveBill)
	api.GET("/visits/:visitId/bill/pdf", s.RenderBillPDF)

	// -------- Drafts --------
	api.GET("/visits/:visitId/draft", s.GetDraft)
	api.PUT("/visits/:visitId/draft", s.SaveDraft)

	// -------- Letters --------
	api.POST("/visits/:visitId/letters", s.GenerateLetter)

	// -------- Side collections --------
	api.GET("/visits/:visitId/collections/:kind", s.ListCollection)
	api.POST("/visits/:visitId/collections/:kind", s.UpsertCollection)

	// -------- Catalog search --------
	api.GET("/catalog/:kind", s.SearchCatalog)
}
