package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dilahazalbilgin/VerifID/internal/api"
	"github.com/dilahazalbilgin/VerifID/internal/core/service"
	"github.com/dilahazalbilgin/VerifID/internal/infrastructure/config"
	mongodb "github.com/dilahazalbilgin/VerifID/internal/infrastructure/db/mongo"
	redisdb "github.com/dilahazalbilgin/VerifID/internal/infrastructure/db/redis"
	"github.com/dilahazalbilgin/VerifID/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	lookupCache := redisdb.NewLookupCache(rdb)
	userService := service.NewUserService(userRepo, lookupCache, cfg.JWTSecret, cfg.TokenTTL, log)
	verificationService := service.NewVerificationService(userRepo, lookupCache, log)

	e := api.NewRouter(api.Deps{
		UserService:         userService,
		VerificationService: verificationService,
		Mongo:               db,
		Redis:               rdb,
		JWTSecret:           cfg.JWTSecret,
		Production:          cfg.IsProduction(),
		Log:                 log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("VerifID API listening")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}
