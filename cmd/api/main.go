package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"talenthub/internal/app"
	"talenthub/internal/config"
	"talenthub/internal/database"
	apphttp "talenthub/internal/http"
	"talenthub/internal/http/handlers"
	"talenthub/internal/http/metrics"
	httpmw "talenthub/internal/http/middleware"
	"talenthub/internal/http/response"
	"talenthub/internal/integration/attachments"
	"talenthub/internal/observability"
	"talenthub/internal/repository/postgres"
	"talenthub/internal/security"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger := observability.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	db := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	defer db.Close()

	var limiter httpmw.Limiter = httpmw.NewRateLimiter()
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("redis url parse failed", slog.String("error", err.Error()))
		} else {
			redisClient := redis.NewClient(opts)
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			if err := redisClient.Ping(pingCtx).Err(); err != nil {
				logger.Error("redis ping failed", slog.String("error", err.Error()))
				_ = redisClient.Close()
			} else {
				defer redisClient.Close()
				limiter = httpmw.NewRedisLimiter(redisClient)
			}
			cancel()
		}
	}

	jobRepo := postgres.NewJobRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	statsRepo := postgres.NewStatsRepository(db)

	statsService := app.NewStatsService(statsRepo, logger)
	jobService := app.NewJobService(jobRepo, statsService, logger)
	applicationService := app.NewApplicationService(applicationRepo, jobRepo, notificationRepo, statsService, logger)
	notificationService := app.NewNotificationService(notificationRepo, jobRepo, logger)
	pollers := app.NewPollerRegistry(notificationService, cfg.NotifyPollInterval, logger)
	defer pollers.Close()

	attachmentStore := attachments.NewClient(cfg.AttachmentsBaseURL, cfg.AttachmentsInternalKey, &http.Client{Timeout: cfg.AttachmentsTimeout})
	jwtProvider := security.NewJWTProvider(cfg.JWTSecret)

	jobHandler := handlers.NewJobHandler(jobService)
	applicationHandler := handlers.NewApplicationHandler(applicationService, jobService, limiter, cfg.ApplyRateLimitPerMin)
	notificationHandler := handlers.NewNotificationHandler(notificationService, pollers)
	statsHandler := handlers.NewStatsHandler(statsService)
	sessionHandler := handlers.NewSessionHandler(pollers)
	attachmentHandler := handlers.NewAttachmentHandler(attachmentStore)
	authMiddleware := httpmw.NewAuthMiddleware(jwtProvider)

	collector := metrics.NewCollector()
	response.SetErrorCollector(collector)

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		JobHandler:          jobHandler,
		ApplicationHandler:  applicationHandler,
		NotificationHandler: notificationHandler,
		StatsHandler:        statsHandler,
		SessionHandler:      sessionHandler,
		AttachmentHandler:   attachmentHandler,
		MetricsHandler:      handlers.NewMetricsHandler(collector),
		AuthMiddleware:      authMiddleware,
		Metrics:             collector,
		RequestTimeout:      cfg.RequestTimeout,
	})
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("API started", slog.String("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}
