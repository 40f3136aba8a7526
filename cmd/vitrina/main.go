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
	"time"

	"github.com/erazemk/vitrina/internal/api"
	"github.com/erazemk/vitrina/internal/catalog"
	"github.com/erazemk/vitrina/internal/config"
	"github.com/erazemk/vitrina/internal/db"
	"github.com/erazemk/vitrina/internal/gateway"
	"github.com/erazemk/vitrina/internal/store"
)

func main() {
	cfg, err := config.Load(os.Args[1:], os.Stdout)
	if err != nil {
		if errors.Is(err, config.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	closeLog, err := setupLogger(cfg.LogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if err := run(cfg); err != nil {
		slog.Error("fatal", "error", err)
		closeLog()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	s, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			slog.Error("closing store", "error", err)
		}
	}()

	repo := catalog.New(s)
	items, err := repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading items: %w", err)
	}
	slog.Info("catalog ready", "items", len(items), "store", cfg.Store, "degraded", repo.Degraded() != nil)

	notifier := gateway.WithTimeout(gateway.NewSimulated(), cfg.GatewayTimeout)
	board := gateway.NewStatusBoard(gateway.DefaultClearAfter, nil)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.LoggingMiddleware(api.NewRouter(repo, notifier, board)),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", cfg.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	// Enquiries are bounded by the gateway timeout.
	board.Wait()
	slog.Info("server stopped, closing store")
	return nil
}

// openStore opens the configured durable store. The returned close function
// is never nil.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, func() error, error) {
	switch cfg.Store {
	case config.StoreMemory:
		slog.Warn("using in-memory store, items will not survive a restart")
		return store.NewMemory(), func() error { return nil }, nil

	case config.StoreRedis:
		r, err := store.NewRedis(ctx, store.RedisOptions{URL: cfg.RedisURL})
		if err != nil {
			return nil, nil, fmt.Errorf("opening redis store: %w", err)
		}
		slog.Info("redis store ready", "namespace", store.DefaultNamespace)
		return r, r.Close, nil

	default:
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening database: %w", err)
		}
		if err := db.EnsureSchema(database); err != nil {
			database.Close()
			return nil, nil, fmt.Errorf("ensuring database schema: %w", err)
		}
		slog.Info("database ready", "path", cfg.DBPath)
		return store.NewSQLite(database), database.Close, nil
	}
}
