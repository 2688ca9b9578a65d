package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kudoshq/recognition-bff/clients"
	"github.com/kudoshq/recognition-bff/controllers"
	"github.com/kudoshq/recognition-bff/kafka"
	"github.com/kudoshq/recognition-bff/middleware"
	"github.com/kudoshq/recognition-bff/repository"
	"github.com/kudoshq/recognition-bff/routes"
	"github.com/kudoshq/recognition-bff/services"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	cfg, err := LoadConfig()
	if err != nil {
		logger.Fatal("Config load failed", zap.Error(err))
	}

	// --- Redis ---
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatal("Invalid REDIS_URL", zap.Error(err))
	}
	rdb := redis.NewClient(redisOpts)
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelPing()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Fatal("Redis connection failed", zap.Error(err))
	}

	// --- Kafka ---
	producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, logger)

	// --- Dependency injection ---
	platform := clients.NewPlatformClient(cfg.PlatformAPIURL, cfg.UpstreamTimeout)
	cache := repository.NewCacheManager(rdb, cfg.CacheTTL, logger)
	sessions := repository.NewPraiseSessionStore(rdb, repository.DefaultSessionTTL)

	catalogService := services.NewCatalogService(platform, cache, producer, logger)
	redemptionService := services.NewRedemptionService(platform, cache, producer, logger)
	balanceService := services.NewBalanceService(platform, cache, logger)
	praiseService := services.NewPraiseService(platform, sessions, cache, producer, logger)

	// --- HTTP router ---
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.RateLimitMiddleware())
	r.Use(middleware.RequestTimeout(cfg.RequestTimeout))

	routes.RegisterRoutes(r, routes.Controllers{
		Catalog:    controllers.NewCatalogController(catalogService),
		Redemption: controllers.NewRedemptionController(redemptionService),
		Balance:    controllers.NewBalanceController(balanceService),
		Praise:     controllers.NewPraiseController(praiseService),
		Admin:      controllers.NewAdminController(platform, cache, logger),
	}, cfg.JWTSecret)

	// --- HTTP server ---
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Info("Recognition BFF started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Initiating graceful shutdown...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}
	if err := producer.Close(); err != nil {
		logger.Error("Kafka producer close error", zap.Error(err))
	}
	if err := rdb.Close(); err != nil {
		logger.Error("Redis close error", zap.Error(err))
	}

	log.Println("Recognition BFF stopped gracefully")
}
