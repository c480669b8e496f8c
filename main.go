package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/docfolio/backend/handlers"
	"github.com/docfolio/backend/internal/assignment"
	"github.com/docfolio/backend/internal/attachment"
	"github.com/docfolio/backend/internal/auth"
	"github.com/docfolio/backend/internal/catalog"
	"github.com/docfolio/backend/internal/config"
	"github.com/docfolio/backend/internal/database"
	"github.com/docfolio/backend/internal/document"
	"github.com/docfolio/backend/internal/expiration"
	"github.com/docfolio/backend/internal/mail"
	"github.com/docfolio/backend/internal/requisite"
	"github.com/docfolio/backend/internal/sessions"
	"github.com/docfolio/backend/internal/storage"
	"github.com/docfolio/backend/internal/users"
	"github.com/docfolio/backend/pkg/logger"
	"github.com/docfolio/backend/pkg/metrics"
	"github.com/docfolio/backend/pkg/middleware"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()
	client, err := database.ConnectMongoWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, 5)
	if err != nil {
		logger.Fatalf("could not connect to MongoDB: %v", err)
	}
	defer func() { _ = client.Disconnect(ctx) }()
	db := client.Database(cfg.MongoDB.Database)

	store, err := storage.NewMinIOStorage(&cfg.MinIO)
	if err != nil {
		logger.Fatalf("could not initialize blob storage: %v", err)
	}

	// Redis is optional: it upgrades sessions, blacklist and rate limiting.
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			sessions.SetBlacklistClient(redisClient)
			logger.Infof("connected to Redis %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	var sessionRepo sessions.Repository
	if redisClient != nil {
		sessionRepo = sessions.NewRedisRepository(redisClient, "")
	} else {
		mongoSessions := sessions.NewMongoRepository(db.Collection("sessions"))
		if err := mongoSessions.EnsureIndexes(ctx); err != nil {
			logger.Warnf("failed to ensure session indexes: %v", err)
		}
		sessionRepo = mongoSessions
	}

	mailer := mail.NewBrevoMailer(&cfg.Mail)

	userRepo := users.NewMongoRepository(db.Collection("users"))
	reqRepo := requisite.NewMongoRepository(db.Collection("requisites"))
	cat := catalog.NewMongoRepositories(db)
	logRepo := expiration.NewMongoLogRepository(db.Collection("expirationLogs"))

	resolver := assignment.NewResolver(cat, reqRepo)
	loginURL := "http://" + cfg.Server.Host + ":" + cfg.Server.Port + "/login"
	userSvc := users.NewService(userRepo, resolver, mailer, loginURL)
	reqSvc := requisite.NewService(reqRepo)
	docSvc := document.NewService(userRepo, reqRepo, mailer)
	attSvc := attachment.NewService(userRepo, docSvc, store, mailer)
	sweeper := expiration.NewSweeper(userRepo, logRepo, mailer)
	authSvc := auth.NewService(userRepo, sessions.NewService(sessionRepo), cfg.JWT.Secret,
		cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	handlers.RegisterHealthRoutes(r, func() error {
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return client.Ping(pingCtx, nil)
	})

	registry := prometheus.NewRegistry()
	metrics.RegisterCollectors(registry)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	handlers.NewAuthHandler(authSvc).Register(api)

	protected := api.Group("", middleware.AuthMiddleware(cfg.JWT.Secret))
	handlers.NewRequisiteHandler(reqSvc).Register(protected)
	handlers.NewCatalogHandler(cat).Register(protected)
	handlers.NewUserHandler(userSvc).Register(protected)
	handlers.NewDocumentHandler(docSvc).Register(protected)
	handlers.NewAttachmentHandler(attSvc).Register(protected)
	handlers.NewExpirationHandler(logRepo, sweeper).Register(protected)

	// weekly expiration sweep
	var scheduler *cron.Cron
	if cfg.Sweep.Enabled {
		scheduler = cron.New()
		_, err := scheduler.AddFunc(cfg.Sweep.Schedule, func() {
			sweepCtx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()
			if err := sweeper.Run(sweepCtx); err != nil {
				logger.Errorf("expiration sweep failed: %v", err)
			}
		})
		if err != nil {
			logger.Fatalf("invalid sweep schedule %q: %v", cfg.Sweep.Schedule, err)
		}
		scheduler.Start()
		logger.Infof("expiration sweep scheduled: %s", cfg.Sweep.Schedule)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infof("shutting down")

	if scheduler != nil {
		scheduler.Stop()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
}
