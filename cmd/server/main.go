package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"tradelog/internal/config"
	cronrunner "tradelog/internal/cron"
	"tradelog/internal/db"
	"tradelog/internal/handler"
	"tradelog/internal/logger"
	"tradelog/internal/recon"
	gormrepository "tradelog/internal/repository/gorm"
	"tradelog/internal/service"

	_ "tradelog/docs"
)

func main() {
	cfgPath := os.Getenv("TL_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("TL_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	store := gormrepository.New(dbConn.Gorm)
	reconcileSvc := &service.ReconcileService{
		Repo:   store,
		Logger: logger,
		Cache:  recon.NewCache(cfg.Recon.CacheSize),
	}
	importSvc := &service.ImportService{
		Repo:     store,
		Logger:   logger,
		MaxBatch: cfg.Import.MaxBatch,
	}
	snapshotSvc := &service.SnapshotService{
		Repo:      store,
		Reconcile: reconcileSvc,
		Logger:    logger,
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)
	handler.RegisterDocs(engine)
	tradeHandler := &handler.TradeHandler{Repo: store, Reconcile: reconcileSvc}
	tradeHandler.Register(engine)
	executionHandler := &handler.ExecutionHandler{Repo: store, Import: importSvc}
	executionHandler.Register(engine)
	splitHandler := &handler.SplitHandler{Repo: store, Import: importSvc}
	splitHandler.Register(engine)
	analyticsHandler := &handler.AnalyticsHandler{Repo: store, Reconcile: reconcileSvc}
	analyticsHandler.Register(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cronRunner := cronrunner.New(logger, ctx)
	if cfg.Cron.Enabled && cfg.Snapshot.Enabled {
		_, err := cronRunner.Add("portfolio_snapshot", cfg.Cron.PortfolioSnapshot, func(ctx context.Context) {
			if err := snapshotSvc.RunOnce(ctx); err != nil {
				logger.Warn("portfolio snapshot failed", zap.Error(err))
			}
		})
		if err != nil {
			logger.Warn("cron register portfolio snapshot failed", zap.Error(err))
		}
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	errCh := make(chan error, 2)

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
