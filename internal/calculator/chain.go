package calculator

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Step applies Operation with Value to a running total.
type Step struct {
	Operation Operation
	Value     decimal.Decimal
}

// StepResult is the running total after a completed step.
type StepResult struct {
	Step   Step
	Record Record
	Input  decimal.Decimal
	Result decimal.Decimal
}

// StepError reports which step of a chain failed.
type StepError struct {
	Index     int
	Operation Operation
	Err       error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index, e.Operation.Name(), e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Chain runs steps through the engine one after another, starting from
// initial. Each step is recorded like a direct call and gets its own child
// span under ctx. On failure the steps completed so far are returned
// together with a *StepError.
func (e *Engine) Chain(ctx context.Context, initial decimal.Decimal, steps []Step) ([]StepResult, error) {
	running := initial
	results := make([]StepResult, 0, len(steps))

	for i, step := range steps {
		_, span := tracer.Start(ctx, fmt.Sprintf("calculator.chain.step.%d.%s", i, step.Operation.Verb()),
			trace.WithAttributes(
				attribute.Int("chain.step.index", i),
				attribute.String("chain.step.operation", step.Operation.Name()),
				attribute.String("chain.step.input", running.String()),
				attribute.String("chain.step.value", step.Value.String()),
			),
		)

		record, next, err := e.Evaluate(step.Operation, running, step.Value)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			span.End()
			return results, &StepError{Index: i, Operation: step.Operation, Err: err}
		}

		span.SetAttributes(attribute.String("chain.step.result", next.String()))
		span.SetStatus(codes.Ok, "")
		span.End()

		results = append(results, StepResult{Step: step, Record: record, Input: running, Result: next})
		running = next
	}

	return results, nil
}
