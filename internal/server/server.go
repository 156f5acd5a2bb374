// Package server owns the HTTP surface: routing, middleware and handlers.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/invoicegen/internal/config"
	invoicedomain "github.com/smallbiznis/invoicegen/internal/invoice/domain"
	"github.com/smallbiznis/invoicegen/internal/observability"
	obsmiddleware "github.com/smallbiznis/invoicegen/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/invoicegen/internal/observability/metrics"
	obstracing "github.com/smallbiznis/invoicegen/internal/observability/tracing"
	"github.com/smallbiznis/invoicegen/internal/upload"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, m *obsmetrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(m.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, m *obsmetrics.Metrics) *gin.Engine {
	return NewEngine(obsCfg, m)
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
	engine        *gin.Engine
	cfg           config.Config
	log           *zap.Logger
	invoiceSvc    invoicedomain.Service
	uploadSvc     upload.Service
	metrics       *obsmetrics.Metrics
	uploadLimiter *rateLimiter
}

type ServerParams struct {
	fx.In

	Engine     *gin.Engine
	Cfg        config.Config
	Log        *zap.Logger
	InvoiceSvc invoicedomain.Service
	UploadSvc  upload.Service
	Metrics    *obsmetrics.Metrics
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:        p.Engine,
		cfg:           p.Cfg,
		log:           p.Log.Named("http.server"),
		invoiceSvc:    p.InvoiceSvc,
		uploadSvc:     p.UploadSvc,
		metrics:       p.Metrics,
		uploadLimiter: newRateLimiter(30, time.Minute),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")
	{
		api.POST("/invoices", s.CreateInvoice)
		api.GET("/invoices", s.ListInvoices)
		api.GET("/invoices/:id", s.GetInvoiceByID)
		api.PATCH("/invoices/:id", s.UpdateInvoice)
		api.GET("/invoices/:id/pdf", s.RenderInvoicePDF)

		api.POST("/upload/logo", s.rateLimit(s.uploadLimiter), s.UploadLogo)
	}

	s.engine.Static("/uploads", s.cfg.UploadDir)
}
