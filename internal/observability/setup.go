package observability

import (
	"context"
	"errors"

	"go-calculator/internal/config"
)

// Setup initialises the logger and, when telemetry is enabled, OTLP tracing
// and log export. The returned func shuts down whatever was started.
func Setup(ctx context.Context, cfg *config.Config) (func(context.Context) error, error) {
	if err := InitLogger(cfg.Logging); err != nil {
		return nil, err
	}

	var shutdowns []func(context.Context) error
	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		SyncLogger()
		return errors.Join(errs...)
	}

	if !cfg.Telemetry.Enabled {
		return shutdown, nil
	}

	traceShutdown, err := InitTracing(ctx, cfg.Service.Name)
	if err != nil {
		return nil, err
	}
	shutdowns = append(shutdowns, traceShutdown)

	logShutdown, err := InitLogging(ctx, cfg.Service.Name)
	if err != nil {
		_ = shutdown(ctx)
		return nil, err
	}
	shutdowns = append(shutdowns, logShutdown)

	return shutdown, nil
}
