package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/chirpy/internal/chirpy/http"
	"github.com/aussiebroadwan/chirpy/internal/chirpy/service"
	"github.com/aussiebroadwan/chirpy/internal/chirpy/store"
	"github.com/aussiebroadwan/chirpy/internal/chirpy/store/drivers/postgres"
	chirpyredis "github.com/aussiebroadwan/chirpy/internal/chirpy/store/drivers/redis"
	"github.com/aussiebroadwan/chirpy/internal/chirpy/store/drivers/sqlite"
	"github.com/aussiebroadwan/chirpy/pkg/cryptox"
	"github.com/aussiebroadwan/chirpy/pkg/jwtx"
	"github.com/aussiebroadwan/chirpy/pkg/slogx"
	goredis "github.com/redis/go-redis/v9"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires the chirpy service together.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db          store.Store // the database itself, closed on shutdown
	store       store.Store // db, possibly with refresh tokens served from redis
	redis       goredis.UniversalClient
	redisTokens *chirpyredis.RefreshTokens
	codec       *jwtx.Codec

	// Services
	sessionService      *service.SessionService
	userService         *service.UserService
	chirpService        *service.ChirpService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialised.
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "chirpy",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	ctx := context.Background()
	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}
	if err := app.initTokenStore(ctx); err != nil {
		_ = app.Close()
		return nil, err
	}
	if err := app.initServices(); err != nil {
		_ = app.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Handler is the fully wired HTTP handler.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("chirpy starting", "port", app.cfg.Port, "version", BuildVersion, "env", app.cfg.Env)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		app.housekeepingService.Stop()
		_ = app.Close()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains the HTTP server, stops housekeeping and closes storage.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down chirpy...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.Close(); err != nil {
		return err
	}

	app.logger.Info("chirpy stopped")
	return nil
}

// Close releases the database and redis connections.
func (app *Application) Close() error {
	var errs []error
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis", "error", err)
			errs = append(errs, err)
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database", "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// initDatabase opens sqlite or postgres depending on DB_URL and applies
// migrations.
func (app *Application) initDatabase(ctx context.Context) error {
	var (
		db     store.Store
		err    error
		driver string
	)
	if app.cfg.UsePostgres() {
		driver = "postgres"
		db, err = postgres.NewStore(app.cfg.DatabaseURL)
	} else {
		driver = "sqlite"
		db, err = sqlite.NewStore(sqliteDSN(app.cfg.DatabaseURL))
	}
	if err != nil {
		return fmt.Errorf("failed to initialize %s database: %w", driver, err)
	}
	app.db = db
	app.store = db

	if err := db.ApplyMigrations(ctx); err != nil {
		_ = db.Close()
		app.db = nil
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", driver)
	return nil
}

func sqliteDSN(path string) string {
	if path == ":memory:" {
		return path
	}
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
}

// initTokenStore moves refresh tokens to redis when configured.
func (app *Application) initTokenStore(ctx context.Context) error {
	if app.cfg.RefreshTokenStore != TokenStoreRedis {
		return nil
	}

	opts, err := goredis.ParseURL(app.cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to parse redis URL: %w", err)
	}
	client := goredis.NewClient(opts)
	app.redis = client

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	app.redisTokens = chirpyredis.NewRefreshTokens(client, chirpyredis.DefaultPrefix)
	app.store = store.WithRefreshTokens(app.db, app.redisTokens)
	app.logger.Info("refresh tokens stored in redis", "addr", opts.Addr)
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() error {
	codec, err := jwtx.NewCodec(app.cfg.JWTSecret)
	if err != nil {
		return fmt.Errorf("failed to initialize token codec: %w", err)
	}
	app.codec = codec

	var pepper string
	if app.cfg.PepperFile != "" {
		pepper, err = cryptox.LoadOrCreatePepper(app.cfg.PepperFile)
		if err != nil {
			return fmt.Errorf("failed to load pepper: %w", err)
		}
	}
	hasher := cryptox.NewPasswordHasher(pepper)

	app.sessionService = &service.SessionService{
		Users:         app.store.Users(),
		RefreshTokens: app.store.RefreshTokens(),
		Codec:         codec,
		Hasher:        hasher,
		AccessTTL:     app.cfg.AccessTokenTTL,
		RefreshTTL:    app.cfg.RefreshTokenTTL,
	}
	app.userService = &service.UserService{Users: app.store.Users(), Hasher: hasher}
	app.chirpService = &service.ChirpService{Chirps: app.store.Chirps()}

	app.housekeepingService = service.NewHousekeepingService(
		app.store.RefreshTokens(),
		app.logger,
		app.cfg.HousekeepingInterval,
	)
	return nil
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.codec,
		BuildVersion,
		app.cfg.Env,
		app.store,
		app.logger,
	)

	router.SessionService = app.sessionService
	router.UserService = app.userService
	router.ChirpService = app.chirpService
	router.PolkaKey = app.cfg.PolkaKey
	router.FileServerRoot = app.cfg.FileServerRoot
	if app.redisTokens != nil {
		router.TokenStore = app.redisTokens
	}
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
