// Copyright (c) 2026 Novaria. All rights reserved.
// Author: dev@novaria.app

// Command api runs the Novaria HTTP server.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/novaria/api/internal/api"
	"github.com/novaria/api/internal/catalog/author"
	"github.com/novaria/api/internal/catalog/chapter"
	"github.com/novaria/api/internal/catalog/character"
	"github.com/novaria/api/internal/catalog/genre"
	"github.com/novaria/api/internal/catalog/novel"
	"github.com/novaria/api/internal/catalog/publisher"
	"github.com/novaria/api/internal/content"
	"github.com/novaria/api/internal/platform/config"
	"github.com/novaria/api/internal/platform/constants"
	"github.com/novaria/api/internal/platform/migration"
	"github.com/novaria/api/internal/platform/postgres"
	"github.com/novaria/api/internal/platform/ratelimit"
	"github.com/novaria/api/internal/platform/redisclient"
	"github.com/novaria/api/internal/platform/sec"
	"github.com/novaria/api/internal/sitemap"
	"github.com/novaria/api/internal/social/library"
	"github.com/novaria/api/internal/social/review"
	"github.com/novaria/api/internal/users/auth"
)

func main() {
	// Local development convenience; production supplies real env vars.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config_load_failed", "error", err)
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server_exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Infrastructure

	db, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	cache, err := redisclient.New(ctx, cfg.RedisURL)
	if err != nil {
		return err
	}
	defer cache.Close()

	if err := migration.RunUp(logger, cfg.DatabaseURL, cfg.MigrationPath); err != nil {
		return err
	}

	tokenService, err := sec.NewTokenService(cfg.SessionSecret, constants.AuthIssuer)
	if err != nil {
		return err
	}

	// Rate limiters. The global budget stays in process memory; the strict
	// write budgets share state across replicas through Redis.
	globalLimiter := ratelimit.NewMemory(constants.GlobalRateLimitWindow, constants.GlobalRateLimitMax)
	defer globalLimiter.Close()

	novelLimits := novel.WriteLimits{
		Create: ratelimit.NewRedis(cache, "novel_create", constants.WriteRateLimitWindow, constants.NovelCreateLimit),
		Modify: ratelimit.NewRedis(cache, "novel_modify", constants.WriteRateLimitWindow, constants.NovelModifyLimit),
		Search: ratelimit.NewRedis(cache, "search", constants.WriteRateLimitWindow, constants.SearchLimit),
	}
	reviewLimits := review.WriteLimits{
		Create: ratelimit.NewRedis(cache, "review_create", constants.WriteRateLimitWindow, constants.ReviewCreateLimit),
		Modify: ratelimit.NewRedis(cache, "review_modify", constants.WriteRateLimitWindow, constants.ReviewModifyLimit),
	}

	// Editorial content is loaded once; a broken article fails startup.
	articles, err := content.NewFileRepository(cfg.ContentPath)
	if err != nil {
		return err
	}

	// Feature wiring

	authService := auth.NewService(
		auth.NewPostgresUserRepository(db),
		auth.NewPostgresSessionRepository(db),
		auth.NewResetTokenRepository(cache),
		auth.NewVerificationTokenRepository(cache),
		tokenService,
		logger,
	)

	handlers := api.Handlers{
		Auth:      auth.NewHandler(authService),
		Novel:     novel.NewHandler(novel.NewService(novel.NewPostgresRepository(db), logger), novelLimits),
		Author:    author.NewHandler(author.NewService(author.NewPostgresRepository(db), logger)),
		Publisher: publisher.NewHandler(publisher.NewService(publisher.NewPostgresRepository(db), logger)),
		Genre:     genre.NewHandler(genre.NewService(genre.NewPostgresRepository(db), logger)),
		Chapter:   chapter.NewHandler(chapter.NewService(chapter.NewPostgresRepository(db), logger)),
		Character: character.NewHandler(character.NewService(character.NewPostgresRepository(db), logger)),
		Review:    review.NewHandler(review.NewService(review.NewPostgresRepository(db), logger), reviewLimits),
		Library:   library.NewHandler(library.NewService(library.NewPostgresRepository(db), logger)),
		Content:   content.NewHandler(articles),
		Sitemap:   sitemap.NewHandler(sitemap.NewService(sitemap.NewPostgresRepository(db), cfg.PublicBaseURL)),
		Health:    api.NewHealthHandler(db, cache),
	}

	server := api.New(cfg, logger, tokenService, globalLimiter, handlers)
	return server.Run(ctx)
}
