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

	"github.com/AntonStoeckl/library-circulation-go/library/access"
	"github.com/AntonStoeckl/library-circulation-go/library/api"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell/config"
)

const (
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 2 * time.Minute
)

var version = "dev"

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if err := run(logger); err != nil {
		logger.Error("server stopped with error", "error", err.Error())
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.AppConfigFromEnv()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	obs, err := setupObservability(ctx, cfg)
	if err != nil {
		return err
	}
	defer obs.shutdown(logger)

	store, closeStore, err := openStore(ctx, cfg, logger, obs)
	if err != nil {
		return err
	}
	defer closeStore()

	if err = store.CreateSchema(ctx); err != nil {
		return err
	}

	dispatcher, closeQueue := startNotifier(cfg, logger, obs)
	defer closeQueue()

	handlers, err := buildHandlers(store, newCheckoutProvider(cfg, logger), dispatcher, cfg, logger, obs)
	if err != nil {
		return err
	}

	server, err := newHTTPServer(cfg, handlers, logger)
	if err != nil {
		return err
	}

	serveErr := make(chan error, 1)

	go func() {
		logger.Info("server listening", "addr", cfg.HTTPAddr, "version", version, "db_adapter", cfg.DBAdapter)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err = <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}

	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	return errors.Join(server.Shutdown(shutdownCtx), dispatcher.Shutdown(shutdownCtx))
}

func newHTTPServer(cfg config.AppConfig, handlers api.Handlers, logger *slog.Logger) (*http.Server, error) {
	verifier, err := access.NewVerifier(cfg.JWTSecret)
	if err != nil {
		return nil, err
	}

	return &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: api.NewServer(
			handlers,
			verifier,
			api.WithLogger(logger),
			api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
		).Router(),
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
	}, nil
}
