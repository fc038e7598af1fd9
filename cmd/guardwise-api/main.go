package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/guardwise/guardwise-api/api/swagger"
	"github.com/guardwise/guardwise-api/internal/handler"
	"github.com/guardwise/guardwise-api/internal/middleware"
	"github.com/guardwise/guardwise-api/internal/repository"
	"github.com/guardwise/guardwise-api/internal/seed"
	"github.com/guardwise/guardwise-api/internal/service"
	"github.com/guardwise/guardwise-api/pkg/cache"
	"github.com/guardwise/guardwise-api/pkg/config"
	"github.com/guardwise/guardwise-api/pkg/database"
	"github.com/guardwise/guardwise-api/pkg/logger"
	corsmiddleware "github.com/guardwise/guardwise-api/pkg/middleware/cors"
	reqidmiddleware "github.com/guardwise/guardwise-api/pkg/middleware/requestid"
)

// @title GuardWise API
// @version 1.0.0
// @description Security guard patrol management admin console
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	// Redis is optional: the dashboard cache degrades to direct reads
	// when it is unreachable.
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, dashboard cache disabled", "error", err)
		redisClient = nil
	}

	guardRepo := repository.NewGuardRepository(db)
	zoneRepo := repository.NewZoneRepository(db)
	checkpointRepo := repository.NewCheckpointRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	rosterRepo := repository.NewRosterRepository(db)
	patrolRepo := repository.NewPatrolHistoryRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	userRepo := repository.NewUserRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, cfg.Dashboard.CacheEnabled && redisClient != nil)
	auditSvc := service.NewAuditService(auditRepo, logr)
	authSvc := service.NewAuthService(userRepo, auditSvc, nil, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	guardSvc := service.NewGuardService(guardRepo, auditSvc, nil, logr)
	zoneSvc := service.NewZoneService(zoneRepo, auditSvc, nil, logr)
	checkpointSvc := service.NewCheckpointService(checkpointRepo, auditSvc, cfg.QR, nil, logr)
	availabilitySvc := service.NewAvailabilityService(availabilityRepo, guardRepo, auditSvc, nil, logr)
	rosterSvc := service.NewRosterService(rosterRepo, availabilityRepo, guardRepo, auditSvc, nil, logr)
	scheduleSvc := service.NewScheduleService(scheduleRepo, availabilityRepo, checkpointRepo, guardRepo, auditSvc, nil, logr)
	patrolSvc := service.NewPatrolService(patrolRepo, availabilityRepo, nil, logr)
	reportSvc := service.NewReportService(patrolSvc, logr)
	dashboardSvc := service.NewDashboardService(guardRepo, zoneRepo, checkpointRepo, scheduleRepo, availabilityRepo, patrolRepo, auditSvc, cacheSvc, logr)

	if cfg.Seed.Enabled {
		seeder := seed.New(guardRepo, zoneRepo, checkpointRepo, scheduleRepo, availabilityRepo, rosterRepo, patrolRepo, userRepo, logr)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := seeder.Apply(ctx); err != nil {
			logr.Sugar().Warnw("demo data seeding failed", "error", err)
		}
		cancel()
	}

	authHandler := handler.NewAuthHandler(authSvc)
	guardHandler := handler.NewGuardHandler(guardSvc)
	zoneHandler := handler.NewZoneHandler(zoneSvc)
	checkpointHandler := handler.NewCheckpointHandler(checkpointSvc)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc)
	availabilityHandler := handler.NewAvailabilityHandler(availabilitySvc)
	rosterHandler := handler.NewRosterHandler(rosterSvc)
	patrolHandler := handler.NewPatrolHandler(patrolSvc)
	reportHandler := handler.NewReportHandler(reportSvc, availabilitySvc, rosterSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	auditHandler := handler.NewAuditHandler(auditSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Public display endpoints: wall-mounted screens poll these by
	// checkpoint id without a token.
	r.GET("/display/checkpoints/:id", checkpointHandler.Display)

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	admin := api.Group("")
	admin.Use(middleware.JWT(authSvc))
	admin.Use(middleware.DashboardInvalidation(dashboardSvc))
	{
		admin.GET("/auth/me", authHandler.Me)
		admin.GET("/dashboard", dashboardHandler.Stats)

		admin.GET("/guards", guardHandler.List)
		admin.GET("/guards/eligible", guardHandler.Eligible)
		admin.GET("/guards/:id", guardHandler.Get)
		admin.POST("/guards", guardHandler.Create)
		admin.PUT("/guards/:id", guardHandler.Update)
		admin.DELETE("/guards/:id", guardHandler.Delete)

		admin.GET("/zones", zoneHandler.List)
		admin.GET("/zones/:id", zoneHandler.Get)
		admin.POST("/zones", zoneHandler.Create)
		admin.PUT("/zones/:id", zoneHandler.Update)
		admin.DELETE("/zones/:id", zoneHandler.Delete)

		admin.GET("/checkpoints", checkpointHandler.List)
		admin.GET("/checkpoints/:id", checkpointHandler.Get)
		admin.POST("/checkpoints", checkpointHandler.Create)
		admin.PUT("/checkpoints/:id", checkpointHandler.Update)
		admin.PUT("/checkpoints/:id/qr-config", checkpointHandler.UpdateQRConfig)
		admin.PUT("/checkpoints/:id/nfc-config", checkpointHandler.UpdateNFCConfig)
		admin.GET("/checkpoints/:id/preview", checkpointHandler.Preview)
		admin.DELETE("/checkpoints/:id", checkpointHandler.Delete)

		admin.GET("/schedules", scheduleHandler.List)
		admin.GET("/schedules/by-guard", scheduleHandler.ByGuard)
		admin.GET("/schedules/by-range", scheduleHandler.ByDateRange)
		admin.GET("/schedules/zone-load", scheduleHandler.ZoneLoad)
		admin.GET("/schedules/stats", scheduleHandler.Stats)
		admin.POST("/schedules/bulk", scheduleHandler.BulkCreate)
		admin.PUT("/schedules/:id", scheduleHandler.Update)
		admin.PATCH("/schedules/:id/status", scheduleHandler.ToggleStatus)
		admin.DELETE("/schedules/:id", scheduleHandler.Delete)

		admin.GET("/availability", availabilityHandler.List)
		admin.GET("/availability/check", availabilityHandler.Check)
		admin.POST("/availability", availabilityHandler.CreateLeave)
		admin.DELETE("/availability/:id", availabilityHandler.Delete)

		admin.GET("/rosters", rosterHandler.List)
		admin.POST("/rosters", rosterHandler.Create)
		admin.PUT("/rosters/:id", rosterHandler.Update)
		admin.DELETE("/rosters/:id", rosterHandler.Delete)

		admin.GET("/patrols", patrolHandler.List)
		admin.POST("/patrols", patrolHandler.Record)
		admin.GET("/patrols/trend", patrolHandler.Trend)
		admin.GET("/patrols/locations", patrolHandler.Locations)

		admin.GET("/reports/patrols/export.csv", reportHandler.ExportPatrolCSV)
		admin.GET("/reports/patrols/export.pdf", reportHandler.ExportPatrolPDF)
		admin.GET("/reports/leaves", reportHandler.LeaveReport)
		admin.GET("/reports/rosters", reportHandler.RosterReport)

		admin.GET("/audit", auditHandler.List)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
