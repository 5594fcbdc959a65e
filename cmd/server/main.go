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

	"github.com/iudanet/activator/internal/config"
	"github.com/iudanet/activator/internal/credential"
	"github.com/iudanet/activator/internal/server"
	"github.com/iudanet/activator/internal/server/metrics"
	"github.com/iudanet/activator/internal/server/middleware"
	"github.com/iudanet/activator/internal/server/service"
	"github.com/iudanet/activator/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// Show version and exit if requested
	if cfg.ShowVersion {
		printVersion()
		os.Exit(0)
	}

	logger, err := config.NewLogger(cfg.Logging, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Activator server starting",
		slog.String("version", Version),
		slog.String("addr", cfg.Server.Addr),
		slog.String("db", cfg.Database.Path))

	store, err := sqlite.New(ctx, cfg.Database.Path,
		sqlite.WithRetry(cfg.Database.RetryAttempts, cfg.Database.RetryBaseDelay))
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close store", slog.Any("error", err))
		}
	}()

	issuer, err := credential.NewIssuer([]byte(cfg.Credential.Secret), cfg.Credential.TTL)
	if err != nil {
		return fmt.Errorf("failed to create credential issuer: %w", err)
	}

	m := metrics.New()

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		var opts []middleware.RateLimiterOption
		if cfg.RateLimit.TrustProxy {
			opts = append(opts, middleware.WithProxyHeaders())
		}
		limiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, logger, opts...)
		defer limiter.Stop()
	}

	router := server.NewRouter(server.Deps{
		Logger:       logger,
		Pinger:       store,
		Issuer:       issuer,
		Registration: service.NewRegistration(store, logger, m),
		Directory:    service.NewDirectory(store, logger, service.WithRetention(cfg.Archive.Retention)),
		Metrics:      m,
		RateLimiter:  limiter,
		Version:      Version,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", slog.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

func printVersion() {
	fmt.Printf("Activator Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
