package explainer

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.opentelemetry.io/otel/trace"

	"smart-calculator/internal/apperr"
	"smart-calculator/internal/handlers"
	"smart-calculator/internal/history"
	"smart-calculator/internal/observability"
	"smart-calculator/internal/session"
)

// ExplainRequest is the JSON body for POST /ai/explain. An empty prompt
// selects the default prompt for the last calculation.
type ExplainRequest struct {
	Prompt string `json:"prompt"`
}

// AskRequest is the JSON body for POST /ai/ask.
type AskRequest struct {
	Question string `json:"question"`
}

// TextResponse carries the provider reply verbatim.
type TextResponse struct {
	Text string `json:"text"`
}

// PromptResponse is the JSON response for GET /ai/explain/prompt.
type PromptResponse struct {
	Prompt     string `json:"prompt"`
	Expression string `json:"expression"`
}

// Handler serves the JSON AI endpoints.
type Handler struct {
	explainer *Explainer
}

func NewHandler(e *Explainer) *Handler {
	return &Handler{explainer: e}
}

// Prompt handles GET /ai/explain/prompt.
func (h *Handler) Prompt(w http.ResponseWriter, r *http.Request) {
	last, ok := lastCalculation(r)
	if !ok {
		handlers.WriteAppError(w, apperr.ErrNoPriorCalculation)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, PromptResponse{
		Prompt:     DefaultPrompt(*last),
		Expression: last.Expression,
	})
}

// Explain handles POST /ai/explain.
func (h *Handler) Explain(w http.ResponseWriter, r *http.Request) {
	var req ExplainRequest
	if !decode(w, r, opExplain, &req) {
		return
	}

	last, _ := lastCalculation(r)
	text, err := h.explainer.ExplainLast(r.Context(), last, req.Prompt)
	if err != nil {
		handlers.WriteAppError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, TextResponse{Text: text})
}

// Ask handles POST /ai/ask.
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if !decode(w, r, opAsk, &req) {
		return
	}

	text, err := h.explainer.Ask(r.Context(), req.Question)
	if err != nil {
		handlers.WriteAppError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, TextResponse{Text: text})
}

// decode reads the JSON body into dst. An empty body leaves dst zero-valued.
func decode(w http.ResponseWriter, r *http.Request, opName string, dst any) bool {
	ctx := r.Context()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		observability.RecordError(ctx, trace.SpanFromContext(ctx), observability.LoggerWithTrace(ctx), errorCounter, opName, "invalid request body", err, http.StatusBadRequest, w)
		return false
	}
	return true
}

func lastCalculation(r *http.Request) (*history.Record, bool) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		return nil, false
	}
	rec, ok := sess.LastCalculation()
	if !ok {
		return nil, false
	}
	return &rec, true
}
