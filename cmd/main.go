package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/clubevents/config"
	"github.com/oksasatya/clubevents/internal/container"
	"github.com/oksasatya/clubevents/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/clubevents/internal/infrastructure/postgres"
	"github.com/oksasatya/clubevents/internal/interface/middleware"
	"github.com/oksasatya/clubevents/internal/metrics"
	"github.com/oksasatya/clubevents/internal/router"
	"github.com/oksasatya/clubevents/pkg/helpers"
	"github.com/oksasatya/clubevents/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()
	middleware.ExposeInternalErrors = cfg.IsDevelopment()

	ctx := context.Background()

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetJWT(helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL, cfg.AppName))

	switch cfg.StorageDriver {
	case "memory":
		logger.Warn("using in-memory storage; data is lost on restart")
		store := memory.NewStore()
		container.SetRepositories(container.Repositories{
			Users:         store.Users(),
			Clubs:         store.Clubs(),
			Events:        store.Events(),
			Registrations: store.Registrations(),
		})
	case "postgres":
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		defer pool.Close()
		if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		container.SetPGPool(pool)
		container.SetRepositories(container.Repositories{
			Users:         pginfra.NewUserRepository(pool),
			Clubs:         pginfra.NewClubRepository(pool),
			Events:        pginfra.NewEventRepository(pool),
			Registrations: pginfra.NewRegistrationRepository(pool),
		})
	default:
		log.Fatalf("unknown STORAGE_DRIVER %q (want postgres or memory)", cfg.StorageDriver)
	}

	// Redis backs rate limits and logout revocation; both are skipped without it
	if rdb := connectRedis(ctx, cfg, logger); rdb != nil {
		defer func() { _ = rdb.Close() }()
		container.SetRedis(rdb)
	}

	if cfg.GCSBucket != "" {
		gcsClient, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			log.Fatalf("failed to init GCS client: %v", err)
		}
		defer func() { _ = gcsClient.Close() }()
		container.SetGCS(gcsClient)
	}

	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		log.Fatalf("failed to init elasticsearch client: %v", err)
	}
	container.SetES(es)

	if cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			helpers.LogError(logger, "rabbitmq unavailable, emails disabled", err, logrus.Fields{"queue": cfg.RabbitMQEmailQueue})
		} else {
			defer pub.Close()
			container.SetRabbitPub(pub)
		}
	}

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	r.Use(cors.New(corsCfg))
	if cfg.MetricsEnabled {
		metrics.Init()
		r.Use(metrics.GinMiddleware())
	}
	if cfg.HTTPLogEnabled || cfg.IsDevelopment() {
		r.Use(gin.Logger())
	}
	r.GET("/health", router.Health)

	// Registry: auto-register modules using container
	reg := router.NewRegistry(r)
	reg.Use(middleware.Timeout(cfg.RequestTimeout))
	router.InitModules(reg)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		helpers.LogInfo(logger, "server starting", logrus.Fields{"port": cfg.Port, "storage": cfg.StorageDriver})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}

// connectRedis returns nil when redis is not configured or does not answer.
func connectRedis(ctx context.Context, cfg *config.Config, logger *logrus.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		helpers.LogError(logger, "redis unavailable, rate limiting and token revocation disabled", err, logrus.Fields{"addr": cfg.RedisAddr})
		_ = rdb.Close()
		return nil
	}
	return rdb
}
