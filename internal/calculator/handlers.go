package calculator

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go-calculator/internal/handlers"
	"go-calculator/internal/observability"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// Handler serves the calculator HTTP API on top of an Engine.
type Handler struct {
	engine *Engine
}

func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

// ---------------------------------------------------------------------------
// Handlers — binary operations
// ---------------------------------------------------------------------------

// Add handles POST /calculator/add
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	h.handleBinaryOp(w, r, Addition)
}

// Subtract handles POST /calculator/subtract
func (h *Handler) Subtract(w http.ResponseWriter, r *http.Request) {
	h.handleBinaryOp(w, r, Subtraction)
}

// Multiply handles POST /calculator/multiply
func (h *Handler) Multiply(w http.ResponseWriter, r *http.Request) {
	h.handleBinaryOp(w, r, Multiplication)
}

// Divide handles POST /calculator/divide
func (h *Handler) Divide(w http.ResponseWriter, r *http.Request) {
	h.handleBinaryOp(w, r, Division)
}

// handleBinaryOp is the shared implementation for all binary calculator operations.
func (h *Handler) handleBinaryOp(w http.ResponseWriter, r *http.Request, op Operation) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)
	opName := op.Name()

	ctx, span := tracer.Start(ctx, fmt.Sprintf("calculator.%s", op.Verb()),
		trace.WithAttributes(
			attribute.String("calculator.operation", opName),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req CalcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	if !req.A.Valid || !req.B.Valid {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid numeric input", ErrInvalidNumericInput, http.StatusBadRequest, w)
		return
	}
	a, b := req.A.Decimal, req.B.Decimal
	if err := errors.Join(CheckOperand(a), CheckOperand(b)); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid numeric input", err, http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(
		attribute.String("calculator.operand.a", a.String()),
		attribute.String("calculator.operand.b", b.String()),
	)

	start := time.Now()
	record, result, err := h.engine.Evaluate(op, a, b)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if err != nil {
		status, msg := errorStatus(err)
		observability.RecordError(ctx, span, logger, errorCounter, opName, msg, err, status, w)
		return
	}

	attrs := metric.WithAttributes(attribute.String("operation", opName))
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)
	resultGauge.Record(ctx, result.InexactFloat64(), attrs)

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.String("result", result.String()),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(
		attribute.String("calculator.result", result.String()),
		attribute.String("calculator.record.id", record.ID()),
	)
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator operation completed",
		zap.String("operation", opName),
		zap.Stringer("a", a),
		zap.Stringer("b", b),
		zap.Stringer("result", result),
		zap.String("record_id", record.ID()),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, CalcResponse{
		Operation: opName,
		A:         a,
		B:         b,
		Result:    result,
		RecordID:  record.ID(),
	})
}

// errorStatus maps an engine error to an HTTP status and client message.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, ErrDivisionByZero):
		return http.StatusBadRequest, "division by zero"
	case errors.Is(err, ErrUnknownOperation):
		return http.StatusBadRequest, "unknown operation"
	case errors.Is(err, ErrInvalidNumericInput):
		return http.StatusBadRequest, "invalid numeric input"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// ---------------------------------------------------------------------------
// Handler — chained operations
// ---------------------------------------------------------------------------

// Chain handles POST /calculator/chain — runs a sequence of operations on a
// running total. Every step is recorded in the history and traced as a
// child span of the chain.
func (h *Handler) Chain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.chain",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req ChainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "chain", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	if len(req.Steps) == 0 {
		observability.RecordError(ctx, span, logger, errorCounter, "chain", "no steps provided", fmt.Errorf("steps array is empty"), http.StatusBadRequest, w)
		return
	}

	if err := checkNullOperand(req.Initial); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "chain", "invalid numeric input for initial", err, http.StatusBadRequest, w)
		return
	}
	initial := req.Initial.Decimal

	steps := make([]Step, 0, len(req.Steps))
	for i, s := range req.Steps {
		op, err := ParseOperation(s.Op)
		if err != nil {
			msg := fmt.Sprintf("unknown operation %q at step %d", s.Op, i)
			observability.RecordError(ctx, span, logger, errorCounter, "chain", msg, err, http.StatusBadRequest, w)
			return
		}
		if err := checkNullOperand(s.Value); err != nil {
			msg := fmt.Sprintf("invalid numeric input at step %d", i)
			observability.RecordError(ctx, span, logger, errorCounter, "chain", msg, err, http.StatusBadRequest, w)
			return
		}
		steps = append(steps, Step{Operation: op, Value: s.Value.Decimal})
	}

	span.SetAttributes(
		attribute.String("chain.initial", initial.String()),
		attribute.Int("chain.steps_count", len(steps)),
	)

	logger.Info("starting chained calculation",
		zap.Stringer("initial", initial),
		zap.Int("steps", len(steps)),
		zap.String("request_id", requestID),
	)

	start := time.Now()
	completed, err := h.engine.Chain(ctx, initial, steps)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	for _, c := range completed {
		attrs := metric.WithAttributes(attribute.String("operation", c.Step.Operation.Name()))
		opsCounter.Add(ctx, 1, attrs)
	}

	if err != nil {
		var stepErr *StepError
		opName := "chain"
		msg := err.Error()
		if errors.As(err, &stepErr) {
			opName = stepErr.Operation.Name()
			_, reason := errorStatus(stepErr.Err)
			msg = fmt.Sprintf("%s at step %d", reason, stepErr.Index)
		}
		observability.RecordError(ctx, span, logger, errorCounter, opName, msg, err, http.StatusBadRequest, w)
		return
	}

	running := initial
	results := make([]ChainResult, 0, len(completed))
	for _, c := range completed {
		running = c.Result
		results = append(results, ChainResult{
			Op:       c.Step.Operation.Name(),
			Value:    c.Step.Value,
			Result:   c.Result,
			RecordID: c.Record.ID(),
		})
	}

	attrs := metric.WithAttributes(attribute.String("operation", "chain"))
	opsHistogram.Record(ctx, elapsed, attrs)
	resultGauge.Record(ctx, running.InexactFloat64(), attrs)

	span.AddEvent("chain.complete", trace.WithAttributes(
		attribute.String("final_result", running.String()),
		attribute.Int("total_steps", len(steps)),
	))
	span.SetAttributes(attribute.String("chain.result", running.String()))
	span.SetStatus(codes.Ok, "")

	logger.Info("chained calculation completed",
		zap.Stringer("initial", initial),
		zap.Stringer("result", running),
		zap.Int("steps", len(steps)),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, ChainResponse{
		Initial: initial,
		Steps:   results,
		Result:  running,
	})
}

// checkNullOperand rejects a missing or null JSON number as well as values
// outside the operand limits.
func checkNullOperand(d decimal.NullDecimal) error {
	if !d.Valid {
		return ErrInvalidNumericInput
	}
	return CheckOperand(d.Decimal)
}

// ---------------------------------------------------------------------------
// Handlers — history
// ---------------------------------------------------------------------------

// History handles GET /calculator/history. The optional ?operation= filter
// accepts any name ParseOperation understands.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	ledger := h.engine.Ledger()

	records := ledger.All()
	if name := r.URL.Query().Get("operation"); name != "" {
		op, err := ParseOperation(name)
		if err != nil {
			handlers.WriteError(w, http.StatusBadRequest, fmt.Sprintf("unknown operation %q", name))
			return
		}
		records = ledger.FindByOperationName(op.Name())
	}

	views := make([]RecordView, 0, len(records))
	for _, rec := range records {
		views = append(views, NewRecordView(rec))
	}

	handlers.WriteJSON(w, http.StatusOK, HistoryResponse{Count: len(views), Records: views})
}

// Latest handles GET /calculator/history/latest
func (h *Handler) Latest(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.engine.Ledger().Latest()
	if !ok {
		handlers.WriteError(w, http.StatusNotFound, "no history available")
		return
	}

	handlers.WriteJSON(w, http.StatusOK, NewRecordView(rec))
}

// ClearHistory handles DELETE /calculator/history
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	logger := observability.LoggerWithTrace(r.Context())

	cleared := h.engine.Ledger().Len()
	h.engine.Ledger().Clear()

	logger.Info("calculator history cleared",
		zap.Int("records", cleared),
		zap.String("request_id", observability.RequestIDFromContext(r.Context())),
	)

	w.WriteHeader(http.StatusNoContent)
}
