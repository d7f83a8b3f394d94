// Package cli implements the calculator's command-line surfaces: a one-shot
// invocation and an interactive read-eval-print loop. It is the only layer
// that turns calculator errors into user-facing text and exit codes.
package cli

import (
	"context"
	"errors"
	"fmt"

	"go-calculator/internal/calculator"
	"go-calculator/internal/observability"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("calculator.cli")

// evaluate parses the raw inputs and runs the operation through the engine.
// Operands are validated before the operation name. A panic below this point
// is returned as an error.
func evaluate(ctx context.Context, engine *calculator.Engine, opName, rawA, rawB string) (result decimal.Decimal, err error) {
	ctx, span := tracer.Start(ctx, "calculator.cli."+opName,
		trace.WithAttributes(
			attribute.String("calculator.operation", opName),
			attribute.String("calculator.operand.a", rawA),
			attribute.String("calculator.operand.b", rawB),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			observability.LoggerWithTrace(ctx).Debug("calculation failed",
				zap.String("operation", opName),
				zap.String("a", rawA),
				zap.String("b", rawB),
				zap.Error(err),
			)
		} else {
			span.SetAttributes(attribute.String("calculator.result", result.String()))
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}()
	defer recoverUnexpected(&err)

	a, errA := calculator.ParseOperand(rawA)
	b, errB := calculator.ParseOperand(rawB)
	if err := errors.Join(errA, errB); err != nil {
		return decimal.Decimal{}, err
	}

	op, err := calculator.ParseOperation(opName)
	if err != nil {
		return decimal.Decimal{}, err
	}

	return engine.Execute(op, a, b)
}

// errorMessage renders err as the line shown to the user.
func errorMessage(err error, opName, rawA, rawB string) string {
	switch {
	case errors.Is(err, calculator.ErrInvalidNumericInput):
		return fmt.Sprintf("Invalid number input: %s or %s is not a valid number.", rawA, rawB)
	case errors.Is(err, calculator.ErrDivisionByZero):
		return "Error: Division by zero."
	case errors.Is(err, calculator.ErrUnknownOperation):
		return fmt.Sprintf("Unknown operation: %s", opName)
	default:
		return fmt.Sprintf("An unexpected error occurred: %v", err)
	}
}

// recoverUnexpected converts a panic into an error so callers can report it
// like any other unexpected failure.
func recoverUnexpected(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%v", r)
	}
}
