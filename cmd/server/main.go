package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/qs3c/travelmart_server/config"
	"github.com/qs3c/travelmart_server/internal/api"
	"github.com/qs3c/travelmart_server/internal/api/handler"
	"github.com/qs3c/travelmart_server/internal/api/middleware"
	"github.com/qs3c/travelmart_server/internal/database"
	"github.com/qs3c/travelmart_server/internal/pkg/category"
	"github.com/qs3c/travelmart_server/internal/pkg/cron"
	"github.com/qs3c/travelmart_server/internal/pkg/email"
	"github.com/qs3c/travelmart_server/internal/pkg/imageprobe"
	"github.com/qs3c/travelmart_server/internal/pkg/inflight"
	"github.com/qs3c/travelmart_server/internal/pkg/metrics"
	"github.com/qs3c/travelmart_server/internal/pkg/oauth"
	"github.com/qs3c/travelmart_server/internal/pkg/oss"
	"github.com/qs3c/travelmart_server/internal/pkg/pubsub"
	"github.com/qs3c/travelmart_server/internal/pkg/queue"
	"github.com/qs3c/travelmart_server/internal/pkg/ws"
	"github.com/qs3c/travelmart_server/internal/repository"
	"github.com/qs3c/travelmart_server/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database connected")

	// 初始化 Redis
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	// 初始化 OSS（可选）
	var uploader service.ImageUploader
	if cfg.OSS.Endpoint != "" && cfg.OSS.AccessKeyID != "" {
		ossClient, err := oss.NewClient(&cfg.OSS)
		if err != nil {
			log.Printf("Warning: Failed to init OSS client: %v", err)
		} else {
			uploader = ossClient
			log.Println("OSS client initialized")
		}
	}

	metrics.Register()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 初始化 Queue 和 Pub/Sub
	notificationQueue := queue.NewQueue(rdb, cfg.Queue.NotificationQueue)
	publisher := pubsub.NewPublisher(rdb)
	subscriber := pubsub.NewSubscriber(rdb)

	// 初始化 WebSocket Hub，跨实例的变更经 Redis 转发
	wsHub := ws.NewHub()
	go wsHub.Listen(ctx, subscriber)
	log.Println("WebSocket hub started")

	routes := category.FromConfig(cfg.Categories)
	tracker := inflight.NewRedisTracker(rdb, time.Duration(cfg.Advertisement.ActionLockSeconds)*time.Second)
	mailer := email.NewService(&cfg.Email)

	// 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	adRepo := repository.NewAdvertisementRepository(db)
	promoRepo := repository.NewPromoCodeRepository(db)

	// 初始化 Service
	authService := service.NewAuthService(userRepo, cfg, mailer)
	uploadService := service.NewUploadService(uploader, cfg)
	userService := service.NewUserService(userRepo, uploadService, imageprobe.New(cfg.Upload.ImageLoadTimeoutDuration()), cfg)
	agentService := service.NewAgentService(promoRepo, cfg)
	adService := service.NewAdvertisementService(adRepo, agentService, routes, tracker, publisher, cfg)
	expiryService := service.NewExpiryService(adRepo, notificationQueue, publisher,
		time.Duration(cfg.Advertisement.ReminderWindowHours)*time.Hour)

	// 定时任务：过期扫描
	cronService := cron.NewService(expiryService, time.Duration(cfg.Advertisement.SweepIntervalMinutes)*time.Minute)
	cronService.Start()

	limiter := middleware.NewIPRateLimiter(cfg.RateLimit)
	limiterStop := make(chan struct{})
	go limiter.RunCleanup(limiterStop)

	// 初始化 Router
	router := api.NewRouter(
		handler.NewAuthHandler(authService, oauth.NewStateStore(rdb)),
		handler.NewUserHandler(userService),
		handler.NewUploadHandler(uploadService),
		handler.NewCategoryHandler(routes),
		handler.NewAdvertisementHandler(adService),
		handler.NewAgentHandler(agentService),
		handler.NewWebSocketHandler(wsHub, cfg.JWT.Secret, cfg.CORS.AllowedOrigins),
		limiter,
		cfg,
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router.Setup(),
	}

	go func() {
		log.Printf("Server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// 监听退出信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Println("Received shutdown signal")

	cronService.Stop()
	close(limiterStop)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
