// Command calc evaluates one arithmetic operation given on the command line,
// or starts an interactive session when run without arguments.
//
//	calc <number1> <number2> <operation>
//	calc
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-calculator/internal/calculator"
	"go-calculator/internal/cli"
	"go-calculator/internal/config"
	"go-calculator/internal/observability"

	"github.com/shopspring/decimal"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadWithDefaults("", config.DefaultCLIConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}
	decimal.DivisionPrecision = cfg.Calculator.DivisionPrecision

	shutdown, err := observability.Setup(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "observability: %v\n", err)
		return 1
	}
	defer shutdown(context.Background())

	engine := calculator.NewEngine(calculator.NewLedger())

	args := os.Args[1:]
	if len(args) == 0 {
		if err := cli.NewREPL(engine, os.Stdin, os.Stdout).Run(ctx); err != nil && ctx.Err() == nil {
			fmt.Fprintf(os.Stderr, "calc: %v\n", err)
			return 1
		}
		return 0
	}

	return cli.RunOnce(ctx, engine, args, os.Stdout)
}
