package main

import (
	"context"

	"go-calculator/internal/calculator"
	"go-calculator/internal/config"
	"go-calculator/internal/observability"
)

// initMetrics initialises the meter provider and the calculator's metric
// instruments, including the history size gauge for ledger.
func initMetrics(ctx context.Context, cfg *config.Config, ledger *calculator.Ledger) (func(context.Context) error, error) {
	shutdown, err := observability.InitMetrics(ctx, cfg.Service.Name, cfg.Telemetry.Enabled)
	if err != nil {
		return nil, err
	}

	if err := calculator.InitMetrics(); err != nil {
		return nil, err
	}

	if err := calculator.ObserveLedger(ledger); err != nil {
		return nil, err
	}

	return shutdown, nil
}
