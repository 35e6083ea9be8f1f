// sheet-init writes the column header to a brand-new ledger resource so the
// app can start reading it. It refuses to touch a resource that already has
// data unless forced, because the write is an overwrite-all.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/IlRyze11/gestione-spese/internal/backend"
	"github.com/IlRyze11/gestione-spese/internal/cli"
	"github.com/IlRyze11/gestione-spese/internal/service"
)

func main() {
	force := flag.Bool("force", false, "overwrite even if the resource already holds data")
	flag.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	ctx := context.Background()
	be, err := backend.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize store backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer func() {
		if be.Cleanup != nil {
			_ = be.Cleanup()
		}
	}()

	rows, err := be.Store.ReadAll(ctx)
	if err != nil {
		logger.Warn("Could not read existing rows, assuming empty resource", "error", err)
	}
	if len(rows) > 0 && !*force {
		logger.Error("Resource already holds data, refusing to overwrite (use -force)", "rows", len(rows))
		os.Exit(1)
	}

	svc := service.NewLedgerService(be.Store, cfg.DataBackend, nil)
	if err := svc.InitHeader(ctx); err != nil {
		logger.Error("Failed to write header", "error", err)
		os.Exit(1)
	}
	logger.Info("Header initialized", "backend", cfg.DataBackend)
}
