package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/farm_shop/internal/cache"
	"github.com/Skotchmaster/farm_shop/internal/catalog"
	"github.com/Skotchmaster/farm_shop/internal/config"
	"github.com/Skotchmaster/farm_shop/internal/httpserver"
	"github.com/Skotchmaster/farm_shop/internal/repo"
	"github.com/Skotchmaster/farm_shop/internal/service"
	pkgconfig "github.com/Skotchmaster/farm_shop/pkg/config"
	"github.com/Skotchmaster/farm_shop/pkg/db"
	"github.com/Skotchmaster/farm_shop/pkg/events"
	"github.com/Skotchmaster/farm_shop/pkg/logging"
	authmw "github.com/Skotchmaster/farm_shop/pkg/middleware/auth"
	"github.com/Skotchmaster/farm_shop/pkg/tokens"
)

func main() {
	pkgconfig.LoadDotEnv(".env")
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		logger.Error("db_init_error", "error", err)
		os.Exit(1)
	}
	if err := repo.Migrate(gdb); err != nil {
		logger.Error("db_migrate_error", "error", err)
		os.Exit(1)
	}

	prices, err := newCatalog(cfg)
	if err != nil {
		logger.Error("catalog_init_error", "error", err)
		os.Exit(1)
	}
	profiles := newProfileCache(logger, cfg)
	publisher := events.New(cfg.KafkaBrokers)

	r := repo.New(gdb)
	issuer := tokens.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second
	e.Server.IdleTimeout = 60 * time.Second

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(httpserver.Common(logger, cfg.CORSOrigins)...)

	httpserver.Register(e, &httpserver.Deps{
		DB:   gdb,
		Gate: authmw.NewGate(issuer, cfg.AdminEmails),
		Auth: &httpserver.AuthHTTP{Svc: &service.AuthService{
			Repo:        r,
			Tokens:      issuer,
			Events:      publisher,
			AdminEmails: service.NewAdminSet(cfg.AdminEmails...),
		}},
		Profile: &httpserver.ProfileHTTP{Svc: &service.ProfileService{Repo: r, Cache: profiles}},
		Orders: &httpserver.OrderHTTP{Svc: &service.OrderService{
			Repo:         r,
			Catalog:      prices,
			Events:       publisher,
			CancelWindow: cfg.CancelWindow,
		}},
		Admin:         &httpserver.AdminHTTP{Svc: &service.AdminService{Repo: r}},
		AuthRateLimit: cfg.AuthRateLimit,
		AuthRateBurst: cfg.AuthRateBurst,
	})

	go func() {
		logger.Info("server_start", "addr", cfg.Addr())
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server_error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting_down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("server_shutdown_error", "error", err)
	}
	if err := db.Close(gdb); err != nil {
		logger.Error("db_close_error", "error", err)
	}
	if err := publisher.Close(); err != nil {
		logger.Error("kafka_close_error", "error", err)
	}
	if err := profiles.Close(); err != nil {
		logger.Error("redis_close_error", "error", err)
	}

	logger.Info("shutdown_complete")
}

func newCatalog(cfg config.ServiceConfig) (catalog.Catalog, error) {
	if cfg.ESURL == "" {
		return catalog.FarmBoxes(), nil
	}
	return catalog.NewES(catalog.ESConfig{
		URL:      cfg.ESURL,
		User:     cfg.ESUser,
		Password: cfg.ESPassword,
		Index:    cfg.ESProductIndex,
	})
}

// newProfileCache falls back to no caching when Redis is not configured or
// not reachable at start-up.
func newProfileCache(l *slog.Logger, cfg config.ServiceConfig) cache.ProfileCache {
	if cfg.RedisURL == "" {
		return cache.Disabled{}
	}
	c, err := cache.NewRedisProfileCache(context.Background(), cfg.RedisURL, cfg.ProfileCacheTTL)
	if err != nil {
		l.Warn("redis_init_error", "reason", "profile cache disabled", "error", err)
		return cache.Disabled{}
	}
	return c
}
