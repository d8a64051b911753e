package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/roster-admin-api/api/swagger"
	"github.com/noah-isme/roster-admin-api/internal/handler"
	"github.com/noah-isme/roster-admin-api/internal/middleware"
	"github.com/noah-isme/roster-admin-api/internal/repository"
	"github.com/noah-isme/roster-admin-api/internal/service"
	"github.com/noah-isme/roster-admin-api/pkg/config"
	"github.com/noah-isme/roster-admin-api/pkg/kvstore"
	"github.com/noah-isme/roster-admin-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/roster-admin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/roster-admin-api/pkg/middleware/requestid"
)

// @title Roster Admin API
// @version 1.0.0
// @description Student roster management with runtime-defined custom fields
// @BasePath /
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

	store, err := newStore(cfg)
	if err != nil {
		logr.Sugar().Fatalw("failed to init store", "driver", cfg.Store.Driver, "error", err)
	}

	metricsSvc := service.NewMetricsService()
	instrumented := kvstore.Instrument(store, metricsSvc)

	if cfg.Seed.Enabled {
		if err := repository.Bootstrap(context.Background(), instrumented, logr); err != nil {
			logr.Sugar().Fatalw("failed to seed store", "error", err)
		}
	}

	userRepo := repository.NewUserRepository(instrumented)
	sessionRepo := repository.NewSessionRepository(instrumented)
	studentRepo := repository.NewStudentRepository(instrumented)
	fieldRepo := repository.NewFieldRepository(instrumented)

	validate := validator.New()

	authSvc := service.NewAuthService(userRepo, sessionRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})
	fieldSvc := service.NewFieldService(fieldRepo, validate, logr)
	studentSvc := service.NewStudentService(studentRepo, fieldRepo, validate, logr)
	scopeSvc := service.NewScopeService(studentRepo, logr)
	dashboardSvc := service.NewDashboardService(scopeSvc, logr)
	exportSvc := service.NewExportService(scopeSvc, fieldRepo, cfg.Export.Filename, logr)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	metricsHandler := handler.NewMetricsHandler(metricsSvc)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r, cfg.APIPrefix, authSvc, handler.Handlers{
		Auth:      handler.NewAuthHandler(authSvc),
		Students:  handler.NewStudentHandler(studentSvc, scopeSvc),
		Fields:    handler.NewFieldHandler(fieldSvc),
		Dashboard: handler.NewDashboardHandler(dashboardSvc),
		Export:    handler.NewExportHandler(exportSvc),
	}, handler.RouterOptions{
		DashboardEnabled: cfg.Dashboard.Enabled,
		ExportEnabled:    cfg.Export.Enabled,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "store", cfg.Store.Driver)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func newStore(cfg *config.Config) (kvstore.Store, error) {
	switch cfg.Store.Driver {
	case kvstore.DriverMemory:
		return kvstore.NewMemory(), nil
	case kvstore.DriverFile:
		return kvstore.NewFile(cfg.Store.FileDir)
	case kvstore.DriverRedis:
		return kvstore.NewRedis(kvstore.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	case kvstore.DriverPostgres:
		return kvstore.NewPostgres(kvstore.PostgresConfig{
			Host:         cfg.Database.Host,
			Port:         cfg.Database.Port,
			User:         cfg.Database.User,
			Password:     cfg.Database.Password,
			Name:         cfg.Database.Name,
			SSLMode:      cfg.Database.SSLMode,
			MaxOpenConns: cfg.Database.MaxOpenConns,
			MaxIdleConns: cfg.Database.MaxIdleConns,
		})
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
