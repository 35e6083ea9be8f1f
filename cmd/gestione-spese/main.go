package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/IlRyze11/gestione-spese/internal/amqp"
	"github.com/IlRyze11/gestione-spese/internal/backend"
	"github.com/IlRyze11/gestione-spese/internal/cli"
	apphttp "github.com/IlRyze11/gestione-spese/internal/http"
	"github.com/IlRyze11/gestione-spese/internal/service"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	be, err := backend.New(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize store backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}

	// Save events are optional: without a broker the app runs fine, the
	// backup worker just falls back to its periodic tick.
	var events service.SaveEventPublisher
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, save events disabled", "error", err)
		} else {
			events = amqpClient
		}
	}

	svc := service.NewLedgerService(be.Store, cfg.DataBackend, events)
	srv := apphttp.NewServer(":"+cfg.Port, svc)

	ctx, done := cli.GracefulShutdown(logger, 10*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		if amqpClient != nil {
			_ = amqpClient.Close()
		}
		if be.Cleanup != nil {
			_ = be.Cleanup()
		}
	})

	logger.Info("Starting server", "addr", srv.Addr, "backend", cfg.DataBackend)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	cli.WaitForShutdown(ctx, done)
}
