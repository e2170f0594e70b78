package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/social-interaction/config"
	"github.com/d60-Lab/social-interaction/internal/api"
	"github.com/d60-Lab/social-interaction/internal/api/handler"
	"github.com/d60-Lab/social-interaction/internal/counter"
	"github.com/d60-Lab/social-interaction/internal/repository"
	"github.com/d60-Lab/social-interaction/internal/service"
	"github.com/d60-Lab/social-interaction/pkg/database"
	"github.com/d60-Lab/social-interaction/pkg/logger"
	"github.com/d60-Lab/social-interaction/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.Log.Level); err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	shutdownTracing, err := tracing.Init(ctx, "social-interaction", cfg.Trace.Endpoint)
	if err != nil {
		logger.Error("tracing init failed", zap.Error(err))
	} else {
		defer func() { _ = shutdownTracing(context.Background()) }()
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Error("open database failed", zap.Error(err))
		return
	}
	if err := database.Migrate(db); err != nil {
		logger.Error("migrate failed", zap.Error(err))
		return
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Error("redis ping failed", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		return
	}

	userRepo := repository.NewUserRepository(db)
	visitRepo := repository.NewVisitRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	likeLogRepo := repository.NewLikeLogRepository(db)

	riskSvc := service.NewRiskService(
		counter.NewRedisScripter(rdb),
		cfg.Risk.ExpireSeconds,
		cfg.Risk.LimitCount,
	)
	ingestSvc := service.NewLogIngestService(likeLogRepo, cfg.Batch.Size)

	var audit service.AuditSink
	var buffer *service.AuditBuffer
	if cfg.Batch.AsyncAudit {
		buffer = service.NewAuditBuffer(ingestSvc, cfg.Batch.QueueSize, cfg.Batch.Size, time.Second)
		buffer.Start(cfg.Batch.Workers)
		audit = buffer
	} else {
		audit = service.NewRepoAuditSink(likeLogRepo)
	}

	userSvc := service.NewUserService(userRepo, visitRepo, likeRepo, audit, riskSvc, cfg.Visitors.Max)

	router := api.NewRouter(cfg, handler.NewHandler(userSvc))
	srv := &http.Server{Addr: cfg.Server.Addr, Handler: router}

	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server exited", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	if buffer != nil {
		buffer.Stop()
	}
}
