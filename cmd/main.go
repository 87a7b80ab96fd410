package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	"github.com/shenikar/school_gunfire_dashboard/internal/config"
	v1 "github.com/shenikar/school_gunfire_dashboard/internal/handler/http/v1"
	"github.com/shenikar/school_gunfire_dashboard/internal/metrics"
	"github.com/shenikar/school_gunfire_dashboard/internal/models"
	"github.com/shenikar/school_gunfire_dashboard/internal/repository"
	"github.com/shenikar/school_gunfire_dashboard/internal/scheduler"
	"github.com/shenikar/school_gunfire_dashboard/internal/service"
	"github.com/shenikar/school_gunfire_dashboard/internal/webhook"
	"github.com/shenikar/school_gunfire_dashboard/pkg/logger"
	redisclient "github.com/shenikar/school_gunfire_dashboard/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/school_gunfire_dashboard/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title School Gunfire Dashboard API
// @version 1.0
// @description Filtered views, statistics and exports over the Everytown Research "Gunfire on School Grounds" dataset.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis нужен только для общего кэша и очереди вебхуков
	var redisClient *redis.Client
	if cfg.NeedsRedis() {
		redisClient, err = redisclient.NewRedisClient(ctx, redisclient.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		log.Info("Successfully connected to Redis")
	}

	// Кэш загрузок
	var cache service.DatasetCache
	switch cfg.CacheBackend {
	case config.CacheBackendRedis:
		cache = repository.NewRedisDatasetCache(redisClient, cfg.CacheTTL)
	default:
		cache = repository.NewMemoryDatasetCache(cfg.CacheTTL, time.Now)
	}
	log.WithField("backend", cfg.CacheBackend).Info("Dataset cache initialized")

	// Вебхуки о перезагрузке данных
	var publisher webhook.WebhookPublisher
	if cfg.WebhookURL != "" {
		publisher = webhook.NewRedisWebhookPublisher(redisClient)
		webhookWorker := webhook.NewWebhookWorker(redisClient, log, cfg)
		webhookWorker.Start(ctx)
	}

	pipelineMetrics := metrics.NewPipelineMetrics()

	// Инициализация репозиториев
	incidentRepo := repository.NewIncidentRepository(cfg.DataSourceURL, cfg.DataUserAgent, cfg.DataFetchTimeout)

	// Инициализация сервисов
	loader := service.NewLoader(incidentRepo, log, time.Now, cfg.DropInvalidCoords)
	enricher := service.NewEnricher(models.NewClassifier(cfg.MassCasualtyThreshold))
	datasets := service.NewDatasetService(loader, enricher, cache, publisher, pipelineMetrics, log, time.Now)
	incidentService := service.NewIncidentService(datasets, log, time.Now)

	// Плановая перезагрузка
	var refresher *scheduler.Refresher
	if cfg.RefreshSchedule != "" {
		refresher, err = scheduler.NewRefresher(cfg.RefreshSchedule, datasets, log, 2*cfg.DataFetchTimeout)
		if err != nil {
			log.Fatalf("Failed to create refresh scheduler: %v", err)
		}
		refresher.Start()
	}

	// Прогрев кэша, ошибка источника не мешает старту сервера
	go func() {
		if _, err := datasets.Dataset(ctx); err != nil {
			log.WithError(err).Warn("Initial dataset load failed")
		}
	}()

	// Инициализация хэндлеров
	handler := v1.NewHandler(incidentService, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	router.GET("/metrics", gin.WrapH(pipelineMetrics.Handler()))

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:              serverAddr,
		Handler:           newCORS(cfg).Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if refresher != nil {
		refresher.Stop(shutdownCtx)
	}
	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}

// newCORS разрешает браузерные запросы дашборда только с настроенных источников
func newCORS(cfg *config.Config) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", v1.APIKeyHeader},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         600,
	})
}
