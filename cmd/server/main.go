package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/videotube/backend/internal/api"
	"github.com/videotube/backend/internal/core/service"
	"github.com/videotube/backend/internal/infrastructure/config"
	mongodb "github.com/videotube/backend/internal/infrastructure/db/mongo"
	redisdb "github.com/videotube/backend/internal/infrastructure/db/redis"
	"github.com/videotube/backend/internal/infrastructure/queue"
	"github.com/videotube/backend/internal/infrastructure/storage"
	"github.com/videotube/backend/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{}).Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	media, err := storage.NewS3Storage(ctx, cfg.Media)
	if err != nil {
		log.Fatal().Err(err).Msg("media storage initialisation failed")
	}

	userRepo := mongodb.NewUserRepository(db)
	videoRepo := mongodb.NewVideoRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := videoRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("video index creation failed")
	}

	viewService := service.NewViewService(videoRepo, redisdb.NewViewDedup(rdb), log)
	dispatcher := queue.NewDispatcher(0, viewService, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(cfg, db, rdb, media, dispatcher, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server shut down")
}
