// Copyright (c) 2026 Novaria. All rights reserved.
// Author: dev@novaria.app

/*
Package api assembles the HTTP surface of the Novaria server.

It owns the middleware chain, the route table, and the process lifecycle;
all domain behavior lives in the feature packages it mounts.
*/
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/novaria/api/internal/catalog/author"
	"github.com/novaria/api/internal/catalog/chapter"
	"github.com/novaria/api/internal/catalog/character"
	"github.com/novaria/api/internal/catalog/genre"
	"github.com/novaria/api/internal/catalog/novel"
	"github.com/novaria/api/internal/catalog/publisher"
	"github.com/novaria/api/internal/content"
	"github.com/novaria/api/internal/platform/apperr"
	"github.com/novaria/api/internal/platform/config"
	"github.com/novaria/api/internal/platform/constants"
	"github.com/novaria/api/internal/platform/middleware"
	"github.com/novaria/api/internal/platform/ratelimit"
	"github.com/novaria/api/internal/platform/respond"
	"github.com/novaria/api/internal/sitemap"
	"github.com/novaria/api/internal/social/library"
	"github.com/novaria/api/internal/social/review"
	"github.com/novaria/api/internal/users/auth"
)

// Handlers collects every feature handler the server mounts.
type Handlers struct {
	Auth      *auth.Handler
	Novel     *novel.Handler
	Author    *author.Handler
	Publisher *publisher.Handler
	Genre     *genre.Handler
	Chapter   *chapter.Handler
	Character *character.Handler
	Review    *review.Handler
	Library   *library.Handler
	Content   *content.Handler
	Sitemap   *sitemap.Handler
	Health    *HealthHandler
}

// Server is the assembled HTTP server.
type Server struct {
	config *config.Config
	logger *slog.Logger
	router chi.Router
}

// New builds the router with the full middleware chain and route table.
func New(
	cfg *config.Config,
	logger *slog.Logger,
	verifier middleware.TokenVerifier,
	globalLimiter ratelimit.Limiter,
	handlers Handlers,
) *Server {
	router := chi.NewRouter()

	// Order matters: request identity and logging first, then the global
	// budget, then auth context extraction for everything below.
	router.Use(middleware.RequestID)
	router.Use(middleware.StructuredLogger(logger))
	router.Use(chimiddleware.CleanPath)
	router.Use(chimiddleware.Timeout(constants.GlobalRequestTimeout))
	router.Use(middleware.PanicRecovery)
	router.Use(middleware.Throttle(globalLimiter))
	router.Use(middleware.Authenticate(verifier))
	router.Use(middleware.CORS(cfg.PublicDomain, splitOrigins(cfg.ExtraOrigins), cfg.IsDevelopment()))

	router.NotFound(func(writer http.ResponseWriter, request *http.Request) {
		respond.Error(writer, request, apperr.NotFound("Route"))
	})
	router.MethodNotAllowed(func(writer http.ResponseWriter, request *http.Request) {
		respond.Error(writer, request, apperr.ValidationError("Method not allowed for this route"))
	})

	// Crawler and operational endpoints live at the site root.
	handlers.Health.RegisterRoutes(router)
	handlers.Sitemap.RegisterRoutes(router)

	router.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", handlers.Auth.Routes())

		r.Route("/novels", func(r chi.Router) {
			handlers.Novel.RegisterRoutes(r)
			r.Route("/{id}/reviews", handlers.Review.RegisterNovelRoutes)
		})
		r.Route("/search", handlers.Novel.RegisterSearchRoutes)

		r.Route("/authors", handlers.Author.RegisterRoutes)
		r.Route("/publishers", handlers.Publisher.RegisterRoutes)
		r.Route("/genres", handlers.Genre.RegisterRoutes)
		r.Route("/volumes", handlers.Chapter.RegisterVolumeRoutes)
		r.Route("/chapters", handlers.Chapter.RegisterChapterRoutes)
		r.Route("/characters", handlers.Character.RegisterRoutes)

		r.Route("/reviews", handlers.Review.RegisterRoutes)
		r.Route("/favorites", handlers.Library.RegisterFavoriteRoutes)
		r.Route("/follows", handlers.Library.RegisterFollowRoutes)
		r.Route("/mylist", handlers.Library.RegisterMyListRoutes)

		r.Route("/blog", handlers.Content.RegisterBlogRoutes)
		r.Route("/news", handlers.Content.RegisterNewsRoutes)
	})

	return &Server{
		config: cfg,
		logger: logger,
		router: router,
	}
}

// Router exposes the assembled route table, mainly for tests.
func (server *Server) Router() chi.Router {
	return server.router
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (server *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              ":" + server.config.ServerPort,
		Handler:           server.router,
		ReadTimeout:       constants.DefaultReadTimeout,
		ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		WriteTimeout:      constants.DefaultWriteTimeout,
		IdleTimeout:       constants.DefaultIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		server.logger.Info("server_listening",
			slog.String("addr", httpServer.Addr),
			slog.String("environment", server.config.Environment),
		)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	server.logger.Info("server_shutting_down", slog.Duration("grace_period", constants.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	// Drain the serve goroutine; its ErrServerClosed is expected here.
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func splitOrigins(raw string) []string {
	if raw == "" {
		return nil
	}

	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
