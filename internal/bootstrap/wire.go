package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"authservice/internal/application/auth"
	"authservice/internal/config"
	"authservice/internal/infrastructure/db/postgres"
	"authservice/internal/infrastructure/memory"
	rabbitmq_pub "authservice/internal/infrastructure/messaging/rabbitmq"
	"authservice/internal/infrastructure/security"
	"authservice/internal/logger"
	http_handlers "authservice/internal/transport/http/handlers"
	"authservice/internal/transport/http/middleware"
	"authservice/internal/transport/http/response"
	"authservice/internal/transport/http/router"
)

// NewServer wires the production dependency graph and returns the HTTP server
// plus a cleanup function that releases everything the wiring acquired.
func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing.
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewDB func(addr string, debug bool) (DBCloser, error)

	Migrate func(ctx context.Context, db *sql.DB) error

	NewPublisher func(rabbitURL string) (Publisher, error)

	NewRouter func(router.Deps) (http.Handler, error)
}

type DBCloser interface {
	Close() error
}

type Publisher interface{}

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB: func(addr string, debug bool) (DBCloser, error) {
			return config.NewDB(addr, debug)
		},
		Migrate: postgres.Migrate,
		NewPublisher: func(rabbitURL string) (Publisher, error) {
			return rabbitmq_pub.NewPublisher(rabbitURL)
		},
		NewRouter: router.New,
	}
}

func newServer(deps Deps) (*http.Server, func(), error) {
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	db, err := deps.NewDB(cfg.DBAddr, cfg.DBDebug)
	if err != nil {
		return nil, nil, err
	}

	cleanupFns := []func(){
		func() { _ = db.Close() },
	}

	sqlDB, ok := db.(*sql.DB)
	if !ok {
		runCleanup(cleanupFns)
		return nil, nil, errors.New("bootstrap: NewDB did not return *sql.DB")
	}

	if deps.Migrate != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := deps.Migrate(ctx, sqlDB); err != nil {
			runCleanup(cleanupFns)
			return nil, nil, err
		}
	}

	userRepo := postgres.NewUserRepo(sqlDB)

	// Publisher is best-effort: a missing or unreachable broker downgrades to
	// a noop publisher in dev, and only fails startup in prod.
	var pub Publisher
	if cfg.RabbitURL == "" {
		logger.Logger.Info().Msg("no rabbitmq url configured; using noop publisher")
		pub = memory.NewNoopPublisher()
	} else {
		pub, err = deps.NewPublisher(cfg.RabbitURL)
		if err != nil {
			if cfg.Env == "dev" {
				logger.Logger.Warn().Err(err).Msg("rabbitmq unavailable; using noop publisher")
				pub = memory.NewNoopPublisher()
			} else {
				runCleanup(cleanupFns)
				return nil, nil, err
			}
		} else {
			if p, ok := pub.(interface{ SetExchange(string) }); ok {
				p.SetExchange(cfg.RabbitExchange)
			}
		}
	}

	if c, ok := pub.(interface{ Close() error }); ok {
		cleanupFns = append(cleanupFns, func() { _ = c.Close() })
	}

	eventPub, ok := pub.(auth.EventPublisher)
	if !ok {
		runCleanup(cleanupFns)
		return nil, nil, errors.New("bootstrap: publisher does not implement auth.EventPublisher")
	}

	logger.Logger.Info().Str("issuer", cfg.JWTIssuer).Msg("initializing jwt signer")
	hasher := security.NewBcryptHasher(12)
	signer := security.NewJWTSigner(cfg.JWTSecret, cfg.JWTIssuer)

	authSvc := auth.NewService(userRepo, hasher, signer, eventPub, auth.Config{
		TokenTTL: cfg.AccessTokenTTL,
	})

	authH := http_handlers.NewAuthHandler(authSvc)
	healthH := http_handlers.NewHealthHandler(sqlDB)

	authMW := middleware.Auth(signer, response.WriteError)

	handler, err := deps.NewRouter(router.Deps{
		Health: healthH,
		Auth:   authH,
		AuthMW: authMW,
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      handler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() { runCleanup(cleanupFns) }
	return srv, cleanup, nil
}

func runCleanup(fns []func()) {
	// reverse order, last acquired first released
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
