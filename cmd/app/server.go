package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"
	_ "schoolpay/docs"
	"schoolpay/internal/api/controllers"
	"schoolpay/internal/config"
	"schoolpay/pkg/middleware"
)

func StartServer(lc fx.Lifecycle, cfg config.Config, engine *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("starting HTTP server", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("HTTP server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

type Controllers struct {
	fx.In

	Transactions *controllers.TransactionController
	Webhook      *controllers.WebhookController
	Import       *controllers.ImportController
	Health       *controllers.HealthController
}

func ProvideRouter(cfg config.Config, log *zap.Logger, ctrls Controllers) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(log.Named("http")))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.CORSMiddleware())
	if !cfg.IsProduction() {
		r.Use(middleware.ExposeErrors())
	}

	RegisterRoutes(r, ctrls)
	return r
}

func RegisterRoutes(r *gin.Engine, ctrls Controllers) {
	r.GET("/health", ctrls.Health.Health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")

	txGroup := api.Group("/transactions")
	txGroup.GET("", ctrls.Transactions.ListTransactions)
	txGroup.GET("/school/:school_id", ctrls.Transactions.ListBySchool)
	txGroup.GET("/check-status/:custom_order_id", ctrls.Transactions.CheckStatus)
	txGroup.GET("/collect/:collect_id", ctrls.Transactions.GetByCollectID)
	txGroup.POST("/manual-update", ctrls.Transactions.ManualUpdate)

	api.POST("/webhook/transaction-status", ctrls.Webhook.TransactionStatus)

	importGroup := api.Group("/import")
	importGroup.POST("/students", ctrls.Import.ImportStudents)
	importGroup.POST("/transactions", ctrls.Import.ImportTransactions)
}
