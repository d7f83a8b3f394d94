package calculator

import (
	"time"

	"github.com/shopspring/decimal"
)

// CalcRequest is the JSON body for binary operations (add, subtract, multiply, divide).
// Operands may be JSON numbers or strings; both decode exactly.
type CalcRequest struct {
	A decimal.NullDecimal `json:"a"`
	B decimal.NullDecimal `json:"b"`
}

// CalcResponse is the JSON response for binary operations.
type CalcResponse struct {
	Operation string          `json:"operation"`
	A         decimal.Decimal `json:"a"`
	B         decimal.Decimal `json:"b"`
	Result    decimal.Decimal `json:"result"`
	RecordID  string          `json:"record_id"`
}

// ChainStep describes a single step in a chained calculation.
type ChainStep struct {
	Op    string              `json:"op"`    // any name accepted by ParseOperation
	Value decimal.NullDecimal `json:"value"` // the operand applied with the running total
}

// ChainRequest is the JSON body for POST /calculator/chain.
type ChainRequest struct {
	Initial decimal.NullDecimal `json:"initial"`
	Steps   []ChainStep         `json:"steps"`
}

// ChainResponse is the JSON response for POST /calculator/chain.
type ChainResponse struct {
	Initial decimal.Decimal `json:"initial"`
	Steps   []ChainResult   `json:"steps"`
	Result  decimal.Decimal `json:"result"`
}

// ChainResult records one executed step.
type ChainResult struct {
	Op       string          `json:"op"`
	Value    decimal.Decimal `json:"value"`
	Result   decimal.Decimal `json:"result"`
	RecordID string          `json:"record_id"`
}

// RecordView is the JSON form of a ledger record.
type RecordView struct {
	ID          string           `json:"id"`
	Operand1    decimal.Decimal  `json:"operand1"`
	Operand2    decimal.Decimal  `json:"operand2"`
	Operation   string           `json:"operation"`
	Description string           `json:"description"`
	Result      *decimal.Decimal `json:"result,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

// HistoryResponse is the JSON response for GET /calculator/history.
type HistoryResponse struct {
	Count   int          `json:"count"`
	Records []RecordView `json:"records"`
}

// NewRecordView renders r. Result is omitted when the record cannot be
// computed.
func NewRecordView(r Record) RecordView {
	v := RecordView{
		ID:          r.ID(),
		Operand1:    r.Operand1(),
		Operand2:    r.Operand2(),
		Operation:   r.Operation().Name(),
		Description: r.String(),
		CreatedAt:   r.CreatedAt(),
	}
	if result, err := r.Compute(); err == nil {
		v.Result = &result
	}
	return v
}
