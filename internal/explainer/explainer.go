// Package explainer turns calculations and free-form math questions into
// prompts for a chat-completion provider and returns the provider's text
// unchanged. The provider output is not checked for correctness.
package explainer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"smart-calculator/internal/apperr"
	"smart-calculator/internal/history"
	"smart-calculator/internal/metrics"
	"smart-calculator/internal/observability"
)

var tracer = otel.Tracer("explainer")

// tutorInstruction prefixes natural-language questions.
const tutorInstruction = "You are a careful math tutor. Solve the following math question, " +
	"give the numeric answer and explain step by step in simple language.\n\n"

// Provider sends one user prompt to a chat-completion service and returns the
// reply text.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Name() string
}

// Explainer forwards prompts to a Provider. A nil provider means no
// credential is configured; every request then fails with
// ProviderUnavailable.
type Explainer struct {
	provider Provider
}

func New(provider Provider) *Explainer {
	return &Explainer{provider: provider}
}

// Available reports whether a provider is configured.
func (e *Explainer) Available() bool { return e.provider != nil }

// ProviderName names the configured provider, or "" when there is none.
func (e *Explainer) ProviderName() string {
	if e.provider == nil {
		return ""
	}
	return e.provider.Name()
}

// DefaultPrompt is the editable explanation prompt seeded from rec.
func DefaultPrompt(rec history.Record) string {
	return fmt.Sprintf("Explain step by step how to compute %s to get %s for a beginner.",
		rec.Expression, history.FormatNumber(rec.Result))
}

// TutorPrompt wraps a user question in the fixed tutor instruction.
func TutorPrompt(question string) string {
	return tutorInstruction + "Question: " + question
}

// ExplainLast asks the provider to explain last. prompt is the caller's
// edited version of DefaultPrompt; a blank prompt selects the default. A nil
// last fails with NoPriorCalculation without contacting the provider.
func (e *Explainer) ExplainLast(ctx context.Context, last *history.Record, prompt string) (string, error) {
	if last == nil {
		e.observeRejected(ctx, opExplain, apperr.ErrNoPriorCalculation)
		return "", apperr.ErrNoPriorCalculation
	}

	if strings.TrimSpace(prompt) == "" {
		prompt = DefaultPrompt(*last)
	}
	return e.Explain(ctx, prompt)
}

// Ask answers a natural-language math question. Blank questions fail with
// EmptyQuestion without contacting the provider.
func (e *Explainer) Ask(ctx context.Context, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		e.observeRejected(ctx, opAsk, apperr.ErrEmptyQuestion)
		return "", apperr.ErrEmptyQuestion
	}
	return e.complete(ctx, opAsk, TutorPrompt(question))
}

// Explain sends prompt to the provider as-is. ExplainLast is the entry point
// for callers holding a calculation.
func (e *Explainer) Explain(ctx context.Context, prompt string) (string, error) {
	return e.complete(ctx, opExplain, prompt)
}

const (
	opExplain = "explain"
	opAsk     = "ask"
)

func (e *Explainer) observeRejected(ctx context.Context, opName string, err error) {
	span := trace.SpanFromContext(ctx)
	observability.ObserveError(ctx, span, observability.LoggerWithTrace(ctx), errorCounter, opName, err.Error(), err)
}

// complete is the provider-call boundary. Only errors returned by the
// provider become ProviderError.
func (e *Explainer) complete(ctx context.Context, opName, prompt string) (string, error) {
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "explainer."+opName,
		trace.WithAttributes(
			attribute.String("explainer.operation", opName),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	if e.provider == nil {
		err := apperr.ErrProviderUnavailable
		observability.ObserveError(ctx, span, logger, errorCounter, opName, err.Error(), err)
		return "", err
	}

	features := metrics.CountFeatures(prompt)
	span.SetAttributes(
		attribute.String("explainer.provider", e.provider.Name()),
		attribute.Int("explainer.prompt.bytes", features.Bytes),
		attribute.Int("explainer.prompt.words", features.Words),
	)

	start := time.Now()
	text, err := e.provider.Complete(ctx, prompt)
	elapsed := float64(time.Since(start).Milliseconds())

	attrs := metric.WithAttributes(
		attribute.String("operation", opName),
		attribute.String("provider", e.provider.Name()),
	)
	durationHistogram.Record(ctx, elapsed, attrs)

	if err != nil {
		wrapped := apperr.New(apperr.ProviderError, "AI provider request failed", err)
		observability.ObserveError(ctx, span, logger, errorCounter, opName, "AI provider request failed", wrapped)
		return "", wrapped
	}

	requestCounter.Add(ctx, 1, attrs)

	reply := metrics.CountFeatures(text)
	span.AddEvent("completion.received", trace.WithAttributes(
		attribute.Int("reply.bytes", reply.Bytes),
		attribute.Int("reply.lines", reply.Lines),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("explainer request completed",
		zap.String("operation", opName),
		zap.String("provider", e.provider.Name()),
		zap.Int("prompt_words", features.Words),
		zap.Int("reply_words", reply.Words),
		zap.Float64("duration_ms", elapsed),
		zap.String("request_id", requestID),
	)

	return text, nil
}
