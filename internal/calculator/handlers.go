package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"smart-calculator/internal/handlers"
	"smart-calculator/internal/history"
	"smart-calculator/internal/observability"
	"smart-calculator/internal/session"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// ErrInvalidInput rejects NaN and infinite operands.
var ErrInvalidInput = errors.New("invalid numeric input")

// ---------------------------------------------------------------------------
// Calculation, shared by the JSON API and the web page
// ---------------------------------------------------------------------------

// Calculate evaluates op on a and b and returns the record to store in the
// ledger. Failures are recorded on a child span, counted and logged before
// being returned; callers only render them.
func Calculate(ctx context.Context, a, b float64, op Operation) (history.Record, error) {
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)
	opName := metricName(op)

	// --- 1. Custom child span ---
	ctx, span := tracer.Start(ctx, fmt.Sprintf("calculator.%s", opName),
		trace.WithAttributes(
			attribute.String("calculator.operation", opName),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	// --- 2. Validate inputs ---
	if math.IsNaN(a) || math.IsInf(a, 0) || math.IsNaN(b) || math.IsInf(b, 0) {
		err := fmt.Errorf("%w: a=%g b=%g", ErrInvalidInput, a, b)
		observability.ObserveError(ctx, span, logger, errorCounter, opName, ErrInvalidInput.Error(), err)
		return history.Record{}, err
	}

	span.SetAttributes(
		attribute.Float64("calculator.operand.a", a),
		attribute.Float64("calculator.operand.b", b),
	)

	// --- 3. Evaluate (timed for histogram) ---
	start := time.Now()
	result, symbol, err := Evaluate(a, b, op)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if err != nil {
		observability.ObserveError(ctx, span, logger, errorCounter, opName, err.Error(), err)
		return history.Record{}, err
	}

	rec := history.Record{Expression: Expression(a, b, symbol), Result: result}

	// --- 4. Record metrics ---
	attrs := metric.WithAttributes(attribute.String("operation", opName))
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)
	if !math.IsNaN(result) && !math.IsInf(result, 0) {
		resultGauge.Record(ctx, result, attrs)
	}

	// --- 5. Span event with the result ---
	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.String("expression", rec.Expression),
		attribute.String("result", history.FormatNumber(result)),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetStatus(codes.Ok, "")

	// --- 6. Structured log with trace correlation ---
	logger.Info("calculator operation completed",
		zap.String("operation", opName),
		zap.String("expression", rec.Expression),
		zap.String("result", history.FormatNumber(result)),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	return rec, nil
}

// metricName keeps attribute cardinality bounded for unknown operations.
func metricName(op Operation) string {
	for _, info := range operations {
		if info.Op == op {
			return string(op)
		}
	}
	return "unknown"
}

// ---------------------------------------------------------------------------
// Handlers: single calculation and session history
// ---------------------------------------------------------------------------

// Calculation handles POST /calculator/{operation}. A successful result is
// appended to the session ledger and becomes the last calculation.
func Calculation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	op := Operation(chi.URLParam(r, "operation"))

	sess, ok := session.FromContext(ctx)
	if !ok {
		observability.RecordError(ctx, trace.SpanFromContext(ctx), logger, errorCounter, metricName(op), "session unavailable", handlers.ErrSessionMissing, http.StatusInternalServerError, w)
		return
	}

	var req CalcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, trace.SpanFromContext(ctx), logger, errorCounter, metricName(op), "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	rec, err := Calculate(ctx, req.A, req.B, op)
	if err != nil {
		writeCalcError(w, err)
		return
	}

	sess.RecordCalculation(rec)

	handlers.WriteJSON(w, http.StatusOK, CalcResponse{
		Operation:  op,
		A:          req.A,
		B:          req.B,
		Expression: rec.Expression,
		Result:     Number(rec.Result),
		ResultText: history.FormatNumber(rec.Result),
	})
}

// History handles GET /calculator/history.
func History(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		handlers.WriteError(w, http.StatusInternalServerError, "session unavailable")
		return
	}

	records := sess.History()
	resp := HistoryResponse{Entries: make([]HistoryEntry, 0, len(records))}
	for _, rec := range records {
		resp.Entries = append(resp.Entries, newHistoryEntry(rec))
	}
	if last, ok := sess.LastCalculation(); ok {
		entry := newHistoryEntry(last)
		resp.Last = &entry
	}

	handlers.WriteJSON(w, http.StatusOK, resp)
}

// ClearHistory handles DELETE /calculator/history.
func ClearHistory(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		handlers.WriteError(w, http.StatusInternalServerError, "session unavailable")
		return
	}

	sess.ClearHistory()

	observability.LoggerWithTrace(r.Context()).Info("calculator history cleared",
		zap.String("request_id", observability.RequestIDFromContext(r.Context())),
	)
	w.WriteHeader(http.StatusNoContent)
}

func writeCalcError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrInvalidInput) {
		handlers.WriteError(w, http.StatusBadRequest, ErrInvalidInput.Error())
		return
	}
	handlers.WriteAppError(w, err)
}

// ---------------------------------------------------------------------------
// Handler: chained operations with nested spans
// ---------------------------------------------------------------------------

// Chain handles POST /calculator/chain. It runs a sequence of operations on a
// running total, creating a child span for every step. Chains are stateless
// and do not touch the session ledger.
func Chain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	// Parent span for the entire chain
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

	span.SetAttributes(
		attribute.Float64("chain.initial", req.Initial),
		attribute.Int("chain.steps_count", len(req.Steps)),
	)

	logger.Info("starting chained calculation",
		zap.Float64("initial", req.Initial),
		zap.Int("steps", len(req.Steps)),
		zap.String("request_id", requestID),
	)

	running := req.Initial
	results := make([]ChainResult, 0, len(req.Steps))

	for i, step := range req.Steps {
		opName := metricName(step.Op)

		// --- Child span per step ---
		_, stepSpan := tracer.Start(ctx, fmt.Sprintf("calculator.chain.step.%d.%s", i, opName),
			trace.WithAttributes(
				attribute.Int("chain.step.index", i),
				attribute.String("chain.step.operation", opName),
				attribute.Float64("chain.step.value", step.Value),
			),
		)

		stepStart := time.Now()
		prev := running
		result, symbol, err := Evaluate(running, step.Value, step.Op)
		stepElapsed := float64(time.Since(stepStart).Microseconds()) / 1000.0

		if err != nil {
			stepSpan.RecordError(err)
			stepSpan.SetStatus(codes.Error, err.Error())
			stepSpan.End()

			msg := fmt.Sprintf("step %d: %s", i, err.Error())
			observability.ObserveError(ctx, span, logger, errorCounter, opName, "chain step failed", err)
			handlers.WriteJSON(w, handlers.StatusFor(err), handlers.NewErrorBody(msg, err))
			return
		}
		running = result

		attrs := metric.WithAttributes(attribute.String("operation", opName))
		opsCounter.Add(ctx, 1, attrs)
		opsHistogram.Record(ctx, stepElapsed, attrs)

		expression := Expression(prev, step.Value, symbol)
		stepSpan.AddEvent("step.complete", trace.WithAttributes(
			attribute.String("expression", expression),
			attribute.String("result", history.FormatNumber(running)),
		))
		stepSpan.SetStatus(codes.Ok, "")
		stepSpan.End()

		logger.Info("chain step completed",
			zap.Int("step", i),
			zap.String("operation", opName),
			zap.String("expression", expression),
			zap.String("result", history.FormatNumber(running)),
			zap.Float64("duration_ms", stepElapsed),
		)

		results = append(results, ChainResult{
			Op:         step.Op,
			Value:      step.Value,
			Expression: expression,
			Result:     Number(running),
		})
	}

	if !math.IsNaN(running) && !math.IsInf(running, 0) {
		resultGauge.Record(ctx, running, metric.WithAttributes(attribute.String("operation", "chain")))
	}

	span.AddEvent("chain.complete", trace.WithAttributes(
		attribute.String("final_result", history.FormatNumber(running)),
		attribute.Int("total_steps", len(req.Steps)),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("chained calculation completed",
		zap.Float64("initial", req.Initial),
		zap.String("result", history.FormatNumber(running)),
		zap.Int("steps", len(req.Steps)),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, ChainResponse{
		Initial: req.Initial,
		Steps:   results,
		Result:  Number(running),
	})
}
