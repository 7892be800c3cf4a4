package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/forgiv/bloggy-server/docs" // swagger docs
	"github.com/forgiv/bloggy-server/internal/auth"
	"github.com/forgiv/bloggy-server/internal/cache"
	"github.com/forgiv/bloggy-server/internal/config"
	"github.com/forgiv/bloggy-server/internal/db"
	"github.com/forgiv/bloggy-server/internal/handler"
	"github.com/forgiv/bloggy-server/internal/logger"
	"github.com/forgiv/bloggy-server/internal/metrics"
	"github.com/forgiv/bloggy-server/internal/repository"
	"github.com/forgiv/bloggy-server/internal/router"
	"github.com/forgiv/bloggy-server/internal/service"
)

// @title Bloggy API
// @version 1.0
// @description Blogging backend with users, JWT authentication, posts and comments.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, os.Stdout)

	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DSN(), log)
	if err != nil {
		log.WithError(err).Fatal("database init")
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Warn("RESET_DB=true detected, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			log.WithError(err).Warn("failed to drop tables")
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		log.WithError(err).Fatal("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := cacheClient.Ping(pingCtx); err != nil {
		log.WithError(err).Warn("redis unavailable, login throttling disabled until it recovers")
	}
	cancelPing()

	m := metrics.New()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(auth.Config{Secret: cfg.JWTSecret, Lifetime: cfg.JWTExpiry})
	hasher := auth.NewBcryptHasher()
	limiter := auth.NewLoginLimiter(cacheClient, cfg.LoginMaxAttempts, cfg.LoginWindow)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, hasher, limiter, m, log)
	userService := service.NewUserService(userRepo, postRepo, hasher, log)
	postService := service.NewPostService(postRepo, log)
	commentService := service.NewCommentService(userRepo, postRepo, commentRepo, log)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, log, m, jwtService, router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Users:    handler.NewUserHandler(userService),
		Posts:    handler.NewPostHandler(postService),
		Comments: handler.NewCommentHandler(commentService),
	})

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}
	log.Infof("Swagger documentation available at: http://%s/swagger/index.html", docs.SwaggerInfo.Host)

	go func() {
		addr := ":" + cfg.ServerPort
		log.WithField("addr", addr).Info("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.WithError(err).Error("server shutdown")
	}
}
