package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"

	_ "github.com/grad-konnect/showcase-api/api/swagger"
	"github.com/grad-konnect/showcase-api/internal/handler"
	"github.com/grad-konnect/showcase-api/internal/repository"
	"github.com/grad-konnect/showcase-api/internal/seed"
	"github.com/grad-konnect/showcase-api/internal/service"
	"github.com/grad-konnect/showcase-api/pkg/cache"
	"github.com/grad-konnect/showcase-api/pkg/config"
	"github.com/grad-konnect/showcase-api/pkg/database"
	"github.com/grad-konnect/showcase-api/pkg/logger"
	"go.uber.org/zap"
)

// @title GRAD KONNECT Showcase API
// @version 1.0.0
// @description Project showcase platform with a review workflow and leaderboards
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("database connection failed", "error", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := repository.Migrate(ctx, db); err != nil {
		logr.Sugar().Fatalw("migration failed", "error", err)
	}

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, leaderboard cache disabled", "error", err)
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	scoreRepo := repository.NewLeaderboardRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Leaderboard.CacheTTL, logr)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             cfg.JWT.Issuer,
	})
	postSvc := service.NewPostService(postRepo, userRepo, validate, logr)
	userSvc := service.NewUserService(userRepo, validate, logr)
	leaderboardSvc := service.NewLeaderboardService(scoreRepo, cacheSvc, logr, service.LeaderboardServiceConfig{
		CacheTTL: cfg.Leaderboard.CacheTTL,
		TopN:     cfg.Leaderboard.TopN,
	})

	if cfg.Seed.Enabled {
		seeder := seed.New(db, userRepo, scoreRepo, logr)
		if err := seeder.Run(ctx); err != nil {
			logr.Sugar().Fatalw("seed failed", "error", err)
		}
	}

	reg := handler.Registry{
		Auth:        handler.NewAuthHandler(authSvc),
		Posts:       handler.NewPostHandler(postSvc),
		Users:       handler.NewUserHandler(userSvc),
		Leaderboard: handler.NewLeaderboardHandler(leaderboardSvc),
		Feed:        handler.NewFeedHandler(userSvc, postSvc, leaderboardSvc),
		Metrics:     handler.NewMetricsHandler(metricsSvc, db),
		AuthService: authSvc,
	}

	r := handler.BuildRouter(cfg, logr, metricsSvc, reg)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
