package observability

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"smart-calculator/internal/apperr"
	"smart-calculator/internal/handlers"
)

// ObserveError records err on the span, increments counter and logs it with
// trace context. Errors of a known apperr kind carry a "kind" attribute;
// notices are logged at warn level.
func ObserveError(ctx context.Context, span trace.Span, logger *zap.Logger, counter metric.Int64Counter, opName, msg string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)

	attrs := []attribute.KeyValue{attribute.String("operation", opName)}
	fields := []zap.Field{
		zap.String("operation", opName),
		zap.Error(err),
		zap.String("request_id", RequestIDFromContext(ctx)),
	}

	kind, known := apperr.KindOf(err)
	if known {
		attrs = append(attrs, attribute.String("kind", kind.String()))
		fields = append(fields, zap.Stringer("kind", kind))
	}

	counter.Add(ctx, 1, metric.WithAttributes(attrs...))

	if known && kind.IsNotice() {
		logger.Warn(msg, fields...)
		return
	}
	logger.Error(msg, fields...)
}

// RecordError centralises error handling across all domains: it observes the
// error (span, counter, log) and writes a JSON error HTTP response.
func RecordError(ctx context.Context, span trace.Span, logger *zap.Logger, counter metric.Int64Counter, opName, msg string, err error, status int, w http.ResponseWriter) {
	ObserveError(ctx, span, logger, counter, opName, msg, err)

	handlers.WriteJSON(w, status, handlers.NewErrorBody(msg, err))
}
