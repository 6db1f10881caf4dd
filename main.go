package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bankist-api/bank"
	"bankist-api/config"
	"bankist-api/handler"
)

func main() {
	// Setup signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(logger)
	if err != nil {
		logger.Error("loading configuration", "error", err)
		os.Exit(1)
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)

	// The whole bank lives in memory: every boot starts from the two seed
	// accounts.
	dir, err := bank.NewDirectory(bank.SeedAccounts()...)
	if err != nil {
		logger.Error("seeding account directory", "error", err)
		os.Exit(1)
	}
	svc := bank.NewService(dir, bank.Config{
		SessionDuration:   cfg.SessionDuration,
		TickInterval:      cfg.TickInterval,
		LoanApprovalDelay: cfg.LoanApprovalDelay,
	}, logger, bank.WithTickFunc(func(remaining string) {
		logger.Debug("session countdown", "remaining", remaining)
	}))
	defer svc.Close()

	h := handler.New(svc, logger)
	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: handler.NewRouter(h),
	}

	go func() {
		logger.Info("starting server", "addr", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
		os.Exit(1)
	}

	logger.Info("server gracefully stopped")
}
