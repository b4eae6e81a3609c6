package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/enroll-flow-api/api/swagger"
	"github.com/noah-isme/enroll-flow-api/internal/handler"
	"github.com/noah-isme/enroll-flow-api/internal/repository"
	"github.com/noah-isme/enroll-flow-api/internal/service"
	"github.com/noah-isme/enroll-flow-api/pkg/cache"
	"github.com/noah-isme/enroll-flow-api/pkg/config"
	"github.com/noah-isme/enroll-flow-api/pkg/database"
	"github.com/noah-isme/enroll-flow-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/enroll-flow-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/enroll-flow-api/pkg/middleware/requestid"
	"github.com/noah-isme/enroll-flow-api/pkg/storage"
)

// @title Enroll Flow API
// @version 0.1.0
// @description Course enrollment form service
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, session anchors stay in memory", "error", err)
		redisClient = nil
	}

	var catalogSource service.CatalogSource
	if cfg.Catalog.Source == config.CatalogSourceDatabase {
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Sugar().Fatalw("database unavailable", "error", err)
		}
		defer db.Close()
		catalogSource = repository.NewCatalogRepository(db)
	} else {
		catalogSource = repository.NewStaticCatalog()
	}

	catalogCache := repository.NewCacheRepository(redisClient, logr)

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	catalog := service.NewCatalogService(catalogSource, catalogCache, cfg.Catalog.CacheTTL, logr)
	contacts := service.NewContactValidator(catalog)
	payments := service.NewPaymentSelectionValidator(catalog)
	anchors := repository.NewSessionAnchorRepository(redisClient, cfg.Session.AnchorPrefix)

	sessions := service.NewSessionService(catalog, service.NewPricingService(), contacts, anchors, metrics, cfg.Session, cfg.Promo, logr)
	wizard := service.NewWizardService(sessions, contacts, payments, metrics, cfg.Wizard, logr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wizard.Start(ctx)
	defer wizard.Stop()
	stopReaper := sessions.StartReaper(ctx)
	defer stopReaper()

	var exports *service.ExportService
	if cfg.Exports.Enabled {
		store, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
		if err != nil {
			logr.Sugar().Fatalw("export storage unavailable", "error", err)
		}
		signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
		exports = service.NewExportService(sessions, store, signer, metrics, cfg.APIPrefix+"/exports/download", logr)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r, cfg.APIPrefix, handler.Services{
		Sessions:         sessions,
		Wizard:           wizard,
		Catalog:          catalog,
		Exports:          exports,
		Metrics:          metrics,
		DefaultPackageID: cfg.Catalog.PackageID,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "catalog_source", cfg.Catalog.Source)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
