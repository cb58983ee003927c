package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fatflowers/crm/docs"
	"github.com/fatflowers/crm/internal/app/api/handlers"
	"github.com/fatflowers/crm/internal/app/service/ledger"
	nh "github.com/fatflowers/crm/internal/app/service/notification_handler"
	notificationlog "github.com/fatflowers/crm/internal/app/service/notification_log"
	"github.com/fatflowers/crm/internal/app/service/statistics"
	"github.com/fatflowers/crm/internal/platform/stripe/stripe_api"
	cfgpkg "github.com/fatflowers/crm/pkg/config"
	"github.com/fatflowers/crm/pkg/response"

	mw "github.com/fatflowers/crm/internal/app/api/middleware"

	metrics "github.com/fatflowers/crm/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func newEngine(cfg *cfgpkg.Config) *gin.Engine {
	if cfg.Env == cfgpkg.EnvProd {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	// Add request tracing middleware only; request logger & access log are attached per group in registerRoutes
	r.Use(mw.TraceMiddleware())
	if len(cfg.Server.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.Server.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length", mw.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, response.Error(fmt.Sprintf("Endpoint %s not found", c.Request.URL.Path)))
	})
	return r
}

type routeDeps struct {
	fx.In

	Log          *zap.SugaredLogger
	Cfg          *cfgpkg.Config
	NotifHandler *nh.NotificationHandler
	Ledger       *ledger.Service
	Events       *notificationlog.Service
	Stats        *statistics.Service
	Stripe       *stripe_api.Client
}

func registerRoutes(lc fx.Lifecycle, r *gin.Engine, d routeDeps) {
	log := d.Log
	// Prometheus metrics
	if d.Cfg.MetricsAddr != "" {
		p := metrics.NewPrometheus(metrics.NewPrometheusOptions{
			Subsystem: "crm",
			ReqCntURLLabelMappingFn: func(c *gin.Context) string {
				if fp := c.FullPath(); fp != "" {
					return fp
				}
				return "unmatched"
			},
			Logger: log,
		})
		p.SetListenAddress(d.Cfg.MetricsAddr)
		p.Use(r)
		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				p.Start()
				log.Infow("metrics started", "addr", d.Cfg.MetricsAddr)
				return nil
			},
			OnStop: func(context.Context) error { return p.Stop() },
		})
	}

	// Swagger UI
	docs.SwaggerInfo.BasePath = "/"
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	api.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware())
	handlers.RegisterHealthRoutes(api, d.Cfg)
	handlers.RegisterAnalyticsRoutes(api, d.Stats)
	handlers.RegisterWebhookRoutes(api.Group("/webhooks"), d.NotifHandler)
	handlers.RegisterSubscriptionRoutes(api.Group("/subscriptions"), d.Ledger, d.Stats, d.Events)
	handlers.RegisterStripeRoutes(api.Group("/stripe"), d.Stripe, log)
}

func runServer(lc fx.Lifecycle, shutdowner fx.Shutdowner, log *zap.SugaredLogger, cfg *cfgpkg.Config, r *gin.Engine) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting HTTP server", "addr", addr)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Errorw("server error", "error", err)
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Options(
	fx.Provide(newEngine),
	fx.Invoke(registerRoutes),
	fx.Invoke(runServer),
)
