package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/IlRyze11/gestione-spese/internal/amqp"
	"github.com/IlRyze11/gestione-spese/internal/backend"
	"github.com/IlRyze11/gestione-spese/internal/cli"
	"github.com/IlRyze11/gestione-spese/internal/store/sqlite"
	"github.com/IlRyze11/gestione-spese/internal/worker"
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

	mirror, err := sqlite.NewRepository(cfg.BackupDBPath)
	if err != nil {
		logger.Error("Failed to initialize backup mirror", "error", err, "path", cfg.BackupDBPath)
		os.Exit(1)
	}

	var events *amqp.Client
	if cfg.AMQPURL != "" {
		events, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, mirroring on the periodic tick only", "error", err)
			events = nil
		}
	}

	w := worker.NewBackupWorker(be.Store, mirror)

	ctx, done := cli.GracefulShutdown(logger, 10*time.Second, func() {
		if events != nil {
			_ = events.Close()
		}
		_ = mirror.Close()
		if be.Cleanup != nil {
			_ = be.Cleanup()
		}
	})

	logger.Info("Starting backup worker",
		"backend", cfg.DataBackend,
		"mirror", cfg.BackupDBPath,
		"interval", cfg.BackupInterval,
		"events", events != nil)

	if err := w.Run(ctx, events, cfg.BackupInterval); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Backup worker stopped", "error", err)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
}
