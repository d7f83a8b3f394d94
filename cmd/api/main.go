package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-calculator/internal/calculator"
	"go-calculator/internal/config"
	"go-calculator/internal/observability"
	"go-calculator/internal/server"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {

	ctx := context.Background()

	// Config
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}
	decimal.DivisionPrecision = cfg.Calculator.DivisionPrecision

	// Logger, tracing and log export
	shutdown, err := observability.Setup(ctx, cfg)
	if err != nil {
		panic(err)
	}
	defer shutdown(ctx)

	ledger := calculator.NewLedger()

	// Metrics
	metricShutdown, err := initMetrics(ctx, cfg, ledger)
	if err != nil {
		panic(err)
	}
	defer metricShutdown(ctx)

	// Router
	router := server.NewRouter(calculator.NewEngine(ledger), cfg.HTTP)

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		observability.Logger.Info("server started", zap.String("addr", cfg.HTTP.Addr))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			observability.Logger.Fatal("server failed", zap.Error(err))
		}
	}()

	waitForShutdown(srv)
}

func waitForShutdown(srv *http.Server) {

	stop := make(chan os.Signal, 1)

	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		observability.Logger.Error("server shutdown", zap.Error(err))
	}
}
