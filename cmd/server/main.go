// Package main runs the event registration HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/campus-events/backend/config"
	"github.com/campus-events/backend/internal/auth"
	"github.com/campus-events/backend/internal/events"
	"github.com/campus-events/backend/internal/listing"
	"github.com/campus-events/backend/internal/maillog"
	"github.com/campus-events/backend/internal/mailer"
	"github.com/campus-events/backend/internal/middleware"
	"github.com/campus-events/backend/internal/registrations"
	"github.com/campus-events/backend/internal/settings"
	"github.com/campus-events/backend/pkg/database"
	"github.com/campus-events/backend/pkg/redis"
	"github.com/campus-events/backend/pkg/response"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
		if err != nil {
			logger.Warn("rate limiting disabled", zap.Error(err))
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	// Auth (admin surface only; the public form needs no account)
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)
	authRepo := auth.NewRepository(pool)
	authHandler := auth.NewHandler(authRepo, jwtService, logger)
	if err := auth.EnsureAdmin(ctx, authRepo, cfg.Admin, logger); err != nil {
		logger.Fatal("bootstrap admin", zap.Error(err))
	}

	// Settings and notification mail
	settingsRepo := settings.NewRepository(pool)
	settingsHandler := settings.NewHandler(settingsRepo, logger)
	logRepo := maillog.NewRepository(pool)
	logHandler := maillog.NewHandler(logRepo, logger)
	sender := mailer.NewSMTPSender(mailer.SMTPConfig{
		Host:        cfg.Email.SMTPHost,
		Port:        cfg.Email.SMTPPort,
		User:        cfg.Email.SMTPUser,
		Pass:        cfg.Email.SMTPPass,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
	})
	notifier := mailer.NewService(settingsRepo, sender, logRepo, nil, logger)

	// Events and cascading selection
	eventRepo := events.NewRepository(pool)
	resolver := events.NewResolver(eventRepo, nil)
	eventHandler := events.NewHandler(eventRepo, resolver, logger)

	// Registration workflow
	registrationRepo := registrations.NewRepository(pool)
	workflow := registrations.NewWorkflow(eventRepo, registrationRepo, notifier, nil, logger)
	registrationHandler := registrations.NewHandler(workflow, logger)

	// Admin listing and CSV export
	listingRepo := listing.NewRepository(pool)
	listingHandler := listing.NewHandler(listingRepo, nil, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Public
	router.POST("/auth/login", authHandler.Login)
	router.GET("/events/categories", eventHandler.Categories)
	router.GET("/events/dates", eventHandler.Dates)
	router.GET("/events/names", eventHandler.Names)

	var limiterClient *goredis.Client
	if rdb != nil {
		limiterClient = rdb.Client
	}
	router.POST("/registrations", middleware.RateLimit(limiterClient, 30, logger), registrationHandler.Submit)

	// Admin (JWT, admin role)
	admin := router.Group("/admin")
	admin.Use(middleware.JWT(jwtService))
	admin.Use(middleware.RequireRole("admin"))
	{
		admin.POST("/events", eventHandler.Create)
		admin.GET("/events", eventHandler.List)
		admin.GET("/registrations", listingHandler.List)
		admin.GET("/registrations/export", listingHandler.Export)
		admin.GET("/registrations/filters", listingHandler.FilterOptions)
		admin.GET("/settings", settingsHandler.Get)
		admin.PUT("/settings", settingsHandler.Update)
		admin.GET("/notifications", logHandler.List)
		admin.GET("/users", authHandler.List)
		admin.POST("/users", authHandler.CreateUser)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
