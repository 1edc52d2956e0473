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

	"aliquotas/internal/config"
	"aliquotas/internal/db"
	"aliquotas/internal/handler"
	"aliquotas/internal/logger"
	"aliquotas/internal/report"
	gormrepository "aliquotas/internal/repository/gorm"
	"aliquotas/internal/service"

	_ "aliquotas/docs"
)

func main() {
	cfgPath := os.Getenv("ALQ_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("ALQ_ENV_ONLY"); envOnlyRaw != "" {
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

	settingsSvc := &service.SettingsService{
		Repo:   store,
		Engine: cfg.Engine,
		Report: cfg.Report,
		Logger: logger,
	}
	if err := settingsSvc.EnsureDefaults(context.Background()); err != nil {
		logger.Fatal("seed default settings failed", zap.Error(err))
	}

	adjustmentSvc := &service.AdjustmentService{
		Repo:                  store,
		Logger:                logger,
		DefaultIntervalMonths: cfg.Engine.MinimumIntervalMonths,
		DefaultRoundingPlaces: int32(cfg.Engine.RoundingPlaces),
	}
	lifecycleSvc := &service.LifecycleService{Repo: store, Logger: logger}
	statsSvc := &service.StatsService{
		Repo:         store,
		RecentLimit:  cfg.Engine.RecentLimit,
		PendingLimit: cfg.Engine.PendingLimit,
	}
	reportSvc := &service.ReportService{
		Repo:       store,
		Generator:  &report.Generator{},
		Logger:     logger,
		MaxRecords: cfg.Report.MaxRecords,
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
	adjustmentHandler := &handler.AdjustmentHandler{
		Service:   adjustmentSvc,
		Lifecycle: lifecycleSvc,
		Repo:      store,
		Logger:    logger,
	}
	adjustmentHandler.Register(engine)
	statsHandler := &handler.StatsHandler{Service: statsSvc}
	statsHandler.Register(engine)
	reportHandler := &handler.ReportHandler{Service: reportSvc, Logger: logger}
	reportHandler.Register(engine)
	settingsHandler := &handler.SettingsHandler{Service: settingsSvc, Repo: store}
	settingsHandler.Register(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)

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
