package api

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/webdesk/identity/internal/api/handler"
	"github.com/webdesk/identity/internal/api/middleware"
	"github.com/webdesk/identity/internal/core/domain"
	"github.com/webdesk/identity/internal/core/ports"
	"github.com/webdesk/identity/internal/core/service"
	"github.com/webdesk/identity/internal/infrastructure/db/mongo"
	"github.com/webdesk/identity/internal/infrastructure/db/redis"
	"github.com/webdesk/identity/internal/infrastructure/fs"
	"github.com/webdesk/identity/internal/infrastructure/queue"
	"github.com/webdesk/identity/internal/pkg/config"
)

// NewRouter builds the Echo instance with every route registered and all
// components wired from cfg. Background workers (the audit dispatcher) stop
// when ctx is cancelled.
func NewRouter(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	// The browser client is served from arbitrary origins; preflight is
	// answered on every route.
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	// --- Storage ---
	userRepo, err := newUserRepository(ctx, cfg)
	if err != nil {
		return nil, err
	}
	homes, err := fs.NewTenantHomes(cfg.HomesDir)
	if err != nil {
		return nil, err
	}
	auditRepo, err := fs.NewAuditRepository(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	// --- Optional login throttle ---
	var throttle ports.LoginThrottle
	var rdb *goredis.Client
	if cfg.Throttle.Addr != "" {
		rdb, err = redis.Connect(ctx, redis.Config{Addr: cfg.Throttle.Addr, DB: cfg.Throttle.DB})
		if err != nil {
			return nil, err
		}
		throttle = redis.NewLoginThrottle(rdb, cfg.Throttle.MaxFailures, cfg.Throttle.Window)
	}

	// --- Core services ---
	dispatcher := queue.NewAuditDispatcher(0, auditRepo, log)
	dispatcher.Start(ctx)

	tokens := service.NewTokenService(cfg.TokenSecret, service.DefaultTokenTTL)
	authService := service.NewAuthService(userRepo, tokens, homes, throttle)
	policy := domain.NewCommandPolicy(cfg.AllowCommands, cfg.DenyCommands)
	sandbox := service.NewSandboxService(policy, homes, dispatcher, log)
	files := service.NewFilesService(homes)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, tokens)
	terminalHandler := handler.NewTerminalHandler(sandbox)
	filesHandler := handler.NewFilesHandler(files)
	requireAuth := middleware.Auth(tokens)
	authLimiter := middleware.NewRateLimiter(2, 20)

	// --- Auth routes ---
	auth := e.Group("/auth", authLimiter.Middleware())
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/verify", authHandler.VerifyToken)

	// --- Protected routes ---
	e.POST("/terminal/exec", terminalHandler.Exec, requireAuth)
	e.GET("/files/list", filesHandler.List, requireAuth)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(cfg.DataDir, cfg.HomesDir, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)  // readiness – are dependencies up?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e, nil
}

func newUserRepository(ctx context.Context, cfg *config.Config) (ports.UserRepository, error) {
	switch cfg.UserStore {
	case "", "file":
		return fs.NewUserRepository(cfg.DataDir)
	case "mongo":
		_, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		repo := mongo.NewUserRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown user store %q", cfg.UserStore)
	}
}
