package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	shophttp "github.com/cheapdeals/shop/internal/shop/http"
	"github.com/cheapdeals/shop/internal/shop/mail"
	"github.com/cheapdeals/shop/internal/shop/service"
	"github.com/cheapdeals/shop/internal/shop/store"
	"github.com/cheapdeals/shop/internal/shop/store/drivers/sqlite"
	"github.com/cheapdeals/shop/pkg/jwtx"
	"github.com/cheapdeals/shop/pkg/slogx"
)

const BuildVersion = "v0.1.0"

// Application owns the process lifecycle: database, services, HTTP server
// and the background housekeeping loop.
type Application struct {
	cfg    Config
	logger *slog.Logger

	store store.Store

	tokenService   *service.TokenService
	authService    *service.AuthService
	userService    *service.UserService
	catalogService *service.CatalogService
	housekeeping   *service.HousekeepingService

	server *http.Server
}

func New(cfg Config) (*Application, error) {
	logger := slogx.New(slogx.Config{
		Service: "shop-service",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})

	app := &Application{
		cfg:    cfg,
		logger: logger,
	}

	if err := app.initDatabase(); err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	if err := app.initServices(); err != nil {
		return nil, fmt.Errorf("init services: %w", err)
	}

	if err := app.initHTTP(); err != nil {
		return nil, fmt.Errorf("init http: %w", err)
	}

	return app, nil
}

// Run starts the housekeeping loop and the HTTP server, then blocks until
// the process receives SIGINT or SIGTERM.
func (app *Application) Run() error {
	app.housekeeping.Start()

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info("http server listening", "addr", app.server.Addr)
		if err := app.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-stop:
		app.logger.Info("shutdown signal received", "signal", sig.String())
	}

	return app.Shutdown()
}

// Shutdown drains in-flight requests, stops housekeeping and closes the
// database. Safe to call once after Run returns a signal.
func (app *Application) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("http server shutdown", "error", err)
	}

	app.housekeeping.Stop()

	if err := app.store.Close(); err != nil {
		app.logger.Error("database close", "error", err)
	}

	app.logger.Info("shutdown complete")
	return nil
}

func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)

	st, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	if err := st.ApplyMigrations(); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	app.store = st
	app.logger.Info("database ready", "file", app.cfg.DatabaseFile)
	return nil
}

func (app *Application) initServices() error {
	app.tokenService = &service.TokenService{
		Access:  jwtx.NewSigner(app.cfg.AccessTokenSecret, app.cfg.Issuer, app.cfg.AccessTokenTTL),
		Refresh: jwtx.NewSigner(app.cfg.RefreshTokenSecret, app.cfg.Issuer, app.cfg.RefreshTokenTTL),
		Store:   app.store,
	}

	app.authService = &service.AuthService{
		Store:  app.store,
		Tokens: app.tokenService,
		Mailer: mail.NewResend(app.cfg.ResendAPIKey, app.cfg.MailFrom, app.cfg.AppBaseURL),
	}

	app.userService = &service.UserService{Store: app.store}
	app.catalogService = &service.CatalogService{Store: app.store}

	app.housekeeping = service.NewHousekeepingService(app.store, app.logger, app.cfg.HousekeepingInterval)

	return nil
}

func (app *Application) initHTTP() error {
	router := shophttp.NewRouter(
		app.tokenService.Access,
		BuildVersion,
		app.store,
		app.logger,
		app.cfg.Env == "prod",
	)

	router.AuthService = app.authService
	router.UserService = app.userService
	router.CatalogService = app.catalogService

	router.ApplyRoutes()

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return nil
}
