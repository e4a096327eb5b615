package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	postgres "github.com/heartmarshall/refbook-backend/internal/adapter/postgres"
	"github.com/heartmarshall/refbook-backend/internal/adapter/postgres/refbook"
	"github.com/heartmarshall/refbook-backend/internal/config"
	refbooksvc "github.com/heartmarshall/refbook-backend/internal/service/refbook"
	"github.com/heartmarshall/refbook-backend/internal/transport/middleware"
	"github.com/heartmarshall/refbook-backend/internal/transport/rest"
)

// Database is what the HTTP layer needs from the connection pool.
// *pgxpool.Pool satisfies it.
type Database interface {
	postgres.Querier
	Ping(ctx context.Context) error
}

// NewHandler wires repository, service and transport into the API handler.
// The returned stop function releases background resources.
func NewHandler(cfg *config.Config, db Database, logger *slog.Logger) (http.Handler, func()) {
	repo := refbook.New(db)
	svc := refbooksvc.NewService(logger, repo, cfg.Refbook.Location)

	mws := []middleware.Middleware{middleware.CORS(cfg.CORS)}

	stop := func() {}
	if cfg.Server.RateLimitPerMinute > 0 {
		limiter := middleware.NewRateLimiter(time.Minute)
		mws = append(mws, limiter.Limit(cfg.Server.RateLimitPerMinute))
		stop = limiter.Stop
	}

	handler := rest.NewRouter(rest.RouterDeps{
		Refbooks:   rest.NewRefbookHandler(svc, logger),
		Health:     rest.NewHealthHandler(db, BuildVersion()),
		Logger:     logger,
		Middleware: mws,
	})

	return handler, stop
}

// Serve connects to the database, optionally applies migrations, and serves
// the HTTP API until ctx is cancelled. In-flight requests get
// cfg.Server.ShutdownTimeout to finish.
func Serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.InfoContext(ctx, "starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("timezone", cfg.Refbook.Timezone),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.Database.MigrateOnStart {
		m, err := postgres.NewMigrator(pool)
		if err != nil {
			return err
		}
		applied, err := m.Up(ctx)
		closeMigrator(ctx, m, logger)
		if err != nil {
			return err
		}
		logger.InfoContext(ctx, "migrations applied", slog.Any("versions", applied))
	}

	handler, stop := NewHandler(cfg, pool, logger)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	return runServer(ctx, srv, cfg.Server.ShutdownTimeout, logger)
}

// runServer runs srv until ctx is done or the listener fails, then shuts it
// down gracefully.
func runServer(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.InfoContext(gctx, "http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		logger.Info("shutting down http server", slog.Duration("timeout", shutdownTimeout))
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("http server stopped")
	return nil
}

// closeMigrator releases the migrator's database/sql handle. A failure there
// does not affect the pool, so it is only logged.
func closeMigrator(ctx context.Context, m io.Closer, logger *slog.Logger) {
	if err := m.Close(); err != nil {
		logger.WarnContext(ctx, "close migrator", slog.String("error", err.Error()))
	}
}
