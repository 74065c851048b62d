package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/marcos-nsantos/imgpipe/internal/adapter/handler"
	port "github.com/marcos-nsantos/imgpipe/internal/adapter/messaging"
	"github.com/marcos-nsantos/imgpipe/internal/adapter/repository/postgres"
	"github.com/marcos-nsantos/imgpipe/internal/infrastructure/auth"
	"github.com/marcos-nsantos/imgpipe/internal/infrastructure/cache"
	"github.com/marcos-nsantos/imgpipe/internal/infrastructure/config"
	"github.com/marcos-nsantos/imgpipe/internal/infrastructure/database"
	"github.com/marcos-nsantos/imgpipe/internal/infrastructure/imageproc"
	"github.com/marcos-nsantos/imgpipe/internal/infrastructure/messaging"
	"github.com/marcos-nsantos/imgpipe/internal/infrastructure/middleware"
	"github.com/marcos-nsantos/imgpipe/internal/infrastructure/observability"
	"github.com/marcos-nsantos/imgpipe/internal/infrastructure/server"
	"github.com/marcos-nsantos/imgpipe/internal/infrastructure/storage"
	"github.com/marcos-nsantos/imgpipe/internal/usecase/upload"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Format, "api")
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	pool, err := database.NewPostgresPool(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		database.LogPoolStats(logger, pool)
		pool.Close()
	}()

	applied, err := database.RunMigrations(ctx, pool, cfg.Database.MigrationsPath)
	if err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}
	if len(applied) > 0 {
		logger.Info("applied migrations", zap.Strings("versions", applied))
	}

	imageRepo := postgres.NewImageRepo(pool)

	s3Storage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		logger.Fatal("failed to create s3 storage", zap.Error(err))
	}

	var publisher port.EventPublisher = messaging.NoopPublisher{}
	if cfg.RabbitMQ.Enabled() {
		rabbit, err := messaging.NewRabbitMQPublisher(cfg.RabbitMQ)
		if err != nil {
			logger.Fatal("failed to connect to rabbitmq", zap.Error(err))
		}
		defer func() {
			if err := rabbit.Close(); err != nil {
				logger.Warn("failed to close rabbitmq publisher", zap.Error(err))
			}
		}()
		publisher = rabbit
	}

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
		rateLimiter = middleware.NewRateLimiter(redisClient, cfg.RateLimit, logger)
	}

	jwtSvc := auth.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.Issuer, cfg.JWT.AccessTokenTTL)

	uploadSvc := upload.NewService(imageRepo, s3Storage, imageproc.NewTransformer(), publisher, upload.Options{
		TempDir:       cfg.Upload.TempDir,
		KeyPrefix:     cfg.Upload.KeyPrefix,
		DefaultWidth:  cfg.Upload.DefaultWidth,
		DefaultHeight: cfg.Upload.DefaultHeight,
		Quality:       cfg.Upload.JPEGQuality,
		SignedURLTTL:  cfg.Upload.SignedURLTTL,
	}, logger)

	imageHandler := handler.NewImageHandler(uploadSvc, cfg.Upload.TempDir, cfg.Upload.MaxFileSize)

	router := server.NewRouter(server.RouterConfig{
		ImageHandler:   imageHandler,
		AuthMiddleware: middleware.NewAuthMiddleware(jwtSvc),
		RateLimiter:    rateLimiter,
		Logger:         logger,
		Environment:    cfg.Server.Environment,
	})

	srv := server.NewServer(server.ServerConfig{
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Handler:         router.Engine(),
		Logger:          logger,
	})

	if err := srv.Listen(); err != nil {
		logger.Fatal("failed to bind server", zap.Error(err))
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("server stopped")
}
