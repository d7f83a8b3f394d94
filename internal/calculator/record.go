package calculator

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Record is a requested computation: two operands and the operation to apply.
// It stores no result; Compute derives it on demand.
type Record struct {
	id        string
	operand1  decimal.Decimal
	operand2  decimal.Decimal
	operation Operation
	createdAt time.Time
}

// NewRecord builds a record. It performs no validation.
func NewRecord(operand1, operand2 decimal.Decimal, op Operation) Record {
	return Record{
		id:        uuid.New().String(),
		operand1:  operand1,
		operand2:  operand2,
		operation: op,
		createdAt: time.Now().UTC(),
	}
}

func (r Record) ID() string                { return r.id }
func (r Record) Operand1() decimal.Decimal { return r.operand1 }
func (r Record) Operand2() decimal.Decimal { return r.operand2 }
func (r Record) Operation() Operation      { return r.operation }
func (r Record) CreatedAt() time.Time      { return r.createdAt }

// Compute applies the stored operation to the stored operands.
func (r Record) Compute() (decimal.Decimal, error) {
	return r.operation.Apply(r.operand1, r.operand2)
}

// String renders the record as Record(<operand1>, <operand2>, <operation>).
func (r Record) String() string {
	return fmt.Sprintf("Record(%s, %s, %s)", Format(r.operand1), Format(r.operand2), r.operation.Name())
}
