package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fastprodman/gamestore/internal/api"
	"github.com/fastprodman/gamestore/internal/config"
	"github.com/fastprodman/gamestore/internal/infra/logging"
	"github.com/fastprodman/gamestore/internal/infra/metrics"
	"github.com/fastprodman/gamestore/internal/infra/pgutils"
	"github.com/fastprodman/gamestore/internal/services/account"
	"github.com/fastprodman/gamestore/internal/services/checkout"
	"github.com/fastprodman/gamestore/pkg/shutdown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error running api: %v", err)
		//nolint:gocritic
		os.Exit(1)
	}
}

func run(ctx context.Context) (retErr error) {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	logging.SetupJSON(logging.ParseLevel(cfg.LogLevel))

	queue := shutdown.NewQueue()

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		serr := queue.Drain(shutdownCtx)
		if serr != nil {
			retErr = errors.Join(retErr, serr)
		}
	}()

	// --- Infra ---
	db, err := pgutils.OpenDB(ctx, cfg.Postgres.DSN)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}

	db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
	db.SetConnMaxIdleTime(cfg.Postgres.ConnMaxIdleTime)
	db.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)

	queue.Add(func(context.Context) error {
		slog.Info("closing database pool")
		return db.Close()
	})

	checkoutMetrics := metrics.NewCheckoutMetrics()

	// --- Services ---
	accounts := account.New(db)
	engine := checkout.New(db, checkoutMetrics)

	// --- HTTP server ---
	srv := api.NewServer(cfg.Addr, api.NewRouter(db, accounts, engine))

	queue.Add(func(c context.Context) error {
		slog.Info("shutting down server")

		err := srv.Shutdown(c)
		if err != nil {
			return fmt.Errorf("shutdown srv: %w", err)
		}

		return nil
	})

	errCh := make(chan error, 1)

	go func() {
		serr := srv.ListenAndServe()
		// http.ErrServerClosed is the normal path during Shutdown
		if serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			errCh <- serr
			return
		}

		errCh <- nil
	}()

	slog.Info("storefront API started", "addr", cfg.Addr)

	select {
	case <-ctx.Done():
		// graceful path; the deferred queue.Drain will run
		return nil
	case serr := <-errCh:
		if serr != nil {
			return fmt.Errorf("server error: %w", serr)
		}

		return nil
	}
}
