package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Engine is the calculator entry point. Every call records the requested
// computation in the ledger before evaluating it.
type Engine struct {
	ledger *Ledger
}

func NewEngine(ledger *Ledger) *Engine {
	return &Engine{ledger: ledger}
}

// Ledger returns the ledger the engine records into.
func (e *Engine) Ledger() *Ledger {
	return e.ledger
}

func (e *Engine) Add(a, b decimal.Decimal) (decimal.Decimal, error) {
	return e.Execute(Addition, a, b)
}

func (e *Engine) Subtract(a, b decimal.Decimal) (decimal.Decimal, error) {
	return e.Execute(Subtraction, a, b)
}

func (e *Engine) Multiply(a, b decimal.Decimal) (decimal.Decimal, error) {
	return e.Execute(Multiplication, a, b)
}

func (e *Engine) Divide(a, b decimal.Decimal) (decimal.Decimal, error) {
	return e.Execute(Division, a, b)
}

// Execute evaluates op on a and b and returns only the result.
func (e *Engine) Execute(op Operation, a, b decimal.Decimal) (decimal.Decimal, error) {
	_, result, err := e.Evaluate(op, a, b)
	return result, err
}

// Evaluate records the computation and then computes it, returning the
// record that was appended. A failing computation still leaves its record in
// the ledger, with one exception: a zero divisor is rejected before anything
// is recorded, and the returned Record is the zero value.
func (e *Engine) Evaluate(op Operation, a, b decimal.Decimal) (Record, decimal.Decimal, error) {
	if !op.Valid() {
		return Record{}, decimal.Decimal{}, fmt.Errorf("%w: %s", ErrUnknownOperation, op.Name())
	}

	if op == Division && b.IsZero() {
		return Record{}, decimal.Decimal{}, ErrDivisionByZero
	}

	record := NewRecord(a, b, op)
	e.ledger.Record(record)

	result, err := record.Compute()
	return record, result, err
}
