package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/okian/skillport/internal/adapters/http/api"
	"github.com/okian/skillport/internal/adapters/http/swagger"
	repository "github.com/okian/skillport/internal/adapters/repository"
	app "github.com/okian/skillport/internal/app"
	"github.com/okian/skillport/internal/config"
	"github.com/okian/skillport/pkg/logger"
	"github.com/okian/skillport/pkg/metrics"
)

// HTTP server timeout constants.
const (
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> .env -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	loggerInstance := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	stores, closeStores, err := openStores(cfg)
	if err != nil {
		loggerInstance.Error(ctx, "failed to open record store", logger.String("driver", cfg.StoreDriver), logger.Error(err))
		os.Exit(1)
	}
	defer closeStores()

	svc := app.New(
		app.WithLogger(loggerInstance),
		app.WithStores(stores),
		app.WithOwner(cfg.OwnerID, cfg.OwnerName),
		app.WithCertificateBaseURL(cfg.CertificateBaseURL),
		app.WithDefaultMetric(cfg.Metric()),
		app.WithDedupeSize(cfg.IdempotencySize),
	)
	if err := svc.Start(ctx); err != nil {
		loggerInstance.Error(ctx, "failed to start service", logger.Error(err))
		os.Exit(1)
	}
	defer svc.Stop()

	// Runtime gauges refresh until shutdown.
	metrics.StartSystemCollector(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newMux(ctx, svc, cfg.MaxLeaderboardLimit),
		ReadTimeout:       time.Duration(cfg.ReadTimeoutMS) * time.Millisecond,
		WriteTimeout:      time.Duration(cfg.WriteTimeoutMS) * time.Millisecond,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		loggerInstance.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.String("store", cfg.StoreDriver),
			logger.String("portfolio", "/api/portfolio/"+svc.PortfolioSlug()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			loggerInstance.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// openStores builds the record stores selected by cfg. The returned close
// function releases the database connection, if any.
func openStores(cfg *config.Config) (repository.Stores, func(), error) {
	if strings.EqualFold(cfg.StoreDriver, config.StoreMemory) {
		return repository.NewMemoryStores(), func() {}, nil
	}

	db, err := repository.Open(cfg.StoreDriver, cfg.StoreDSN)
	if err != nil {
		return repository.Stores{}, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return repository.Stores{}, nil, fmt.Errorf("database handle: %w", err)
	}
	stores, err := repository.NewGormStores(db)
	if err != nil {
		_ = sqlDB.Close()
		return repository.Stores{}, nil, err
	}
	return stores, func() { _ = sqlDB.Close() }, nil
}

// newMux registers the documentation and business routes.
func newMux(ctx context.Context, svc *app.Service, maxLimit int) *http.ServeMux {
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(svc, svc, maxLimit).Register(ctx, mux)
	return mux
}
