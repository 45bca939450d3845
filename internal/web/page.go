// Package web serves the calculator page: a calculator panel, an explanation
// panel seeded from the last result, a free-form question panel, and a
// history sidebar. Every form posts back and re-renders the page with an
// inline message.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"smart-calculator/internal/apperr"
	"smart-calculator/internal/calculator"
	"smart-calculator/internal/explainer"
	"smart-calculator/internal/handlers"
	"smart-calculator/internal/history"
	"smart-calculator/internal/observability"
	"smart-calculator/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// DefaultQuestion pre-fills the natural-language panel.
const DefaultQuestion = "What is 12 divided by 3 plus 4?"

// Message levels map to CSS classes.
const (
	levelSuccess = "success"
	levelInfo    = "info"
	levelWarning = "warning"
	levelError   = "error"
)

type message struct {
	Level string
	Text  string
}

// view is the template data for one render of the page.
type view struct {
	Tab          string
	ProviderName string

	Operations []calculator.OperationInfo
	A, B       string
	Operation  calculator.Operation
	Calc       []message

	History []history.Record

	HasLast       bool
	ExplainPrompt string
	Explain       []message
	Explanation   string

	Question string
	Ask      []message
	Answer   string
}

// Page renders the calculator UI.
type Page struct {
	explainer *explainer.Explainer
	tmpl      *template.Template
}

// NewPage parses the embedded templates.
func NewPage(e *explainer.Explainer) (*Page, error) {
	tmpl, err := template.New("index.html").
		Funcs(template.FuncMap{"formatNumber": history.FormatNumber}).
		ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Page{explainer: e, tmpl: tmpl}, nil
}

// RegisterRoutes mounts the page and its form actions. The router must run
// session.Middleware.
func (p *Page) RegisterRoutes(r chi.Router) {
	r.Get("/", p.Index)
	r.Post("/calculate", p.Calculate)
	r.Post("/explain", p.Explain)
	r.Post("/ask", p.Ask)
	r.Post("/history/clear", p.ClearHistory)
}

// Index handles GET /.
func (p *Page) Index(w http.ResponseWriter, r *http.Request) {
	sess, ok := p.session(w, r)
	if !ok {
		return
	}
	p.render(w, r, p.newView(sess, "calculator"))
}

// Calculate handles POST /calculate.
func (p *Page) Calculate(w http.ResponseWriter, r *http.Request) {
	sess, ok := p.session(w, r)
	if !ok {
		return
	}

	a, b := r.PostFormValue("a"), r.PostFormValue("b")
	op := calculator.Operation(r.PostFormValue("operation"))

	var calc []message
	rec, err := p.calculate(r, a, b, op)
	if err != nil {
		calc = append(calc, message{levelError, "⚠️ " + err.Error()})
	} else {
		sess.RecordCalculation(rec)
		calc = append(calc,
			message{levelSuccess, "Result: " + rec.String()},
			message{levelInfo, "Stored in history ✅"},
		)
	}

	v := p.newView(sess, "calculator")
	v.A, v.B, v.Operation = a, b, op
	v.Calc = calc
	p.render(w, r, v)
}

func (p *Page) calculate(r *http.Request, a, b string, op calculator.Operation) (history.Record, error) {
	x, err := parseNumber(a)
	if err != nil {
		return history.Record{}, err
	}
	y, err := parseNumber(b)
	if err != nil {
		return history.Record{}, err
	}
	return calculator.Calculate(r.Context(), x, y, op)
}

// Explain handles POST /explain.
func (p *Page) Explain(w http.ResponseWriter, r *http.Request) {
	sess, ok := p.session(w, r)
	if !ok {
		return
	}

	prompt := r.PostFormValue("prompt")

	var last *history.Record
	if rec, ok := sess.LastCalculation(); ok {
		last = &rec
	}

	v := p.newView(sess, "explain")
	if last != nil && strings.TrimSpace(prompt) != "" {
		v.ExplainPrompt = prompt
	}

	text, err := p.explainer.ExplainLast(r.Context(), last, prompt)
	if err != nil {
		v.Explain = []message{errorMessage(err)}
	} else {
		v.Explanation = text
	}
	p.render(w, r, v)
}

// Ask handles POST /ask.
func (p *Page) Ask(w http.ResponseWriter, r *http.Request) {
	sess, ok := p.session(w, r)
	if !ok {
		return
	}

	question := r.PostFormValue("question")

	v := p.newView(sess, "ask")
	v.Question = question

	text, err := p.explainer.Ask(r.Context(), question)
	if err != nil {
		v.Ask = []message{errorMessage(err)}
	} else {
		v.Answer = text
	}
	p.render(w, r, v)
}

// ClearHistory handles POST /history/clear.
func (p *Page) ClearHistory(w http.ResponseWriter, r *http.Request) {
	sess, ok := p.session(w, r)
	if !ok {
		return
	}

	sess.ClearHistory()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (p *Page) newView(sess *session.Session, tab string) view {
	v := view{
		Tab:          tab,
		ProviderName: p.explainer.ProviderName(),
		Operations:   calculator.Operations(),
		A:            "0.0",
		B:            "0.0",
		Operation:    calculator.Add,
		History:      sess.History(),
		Question:     DefaultQuestion,
	}
	if v.ProviderName == "" {
		v.ProviderName = "an AI provider (not configured)"
	}

	if last, ok := sess.LastCalculation(); ok {
		v.HasLast = true
		v.ExplainPrompt = explainer.DefaultPrompt(last)
	}
	return v
}

func (p *Page) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		handlers.WriteError(w, http.StatusInternalServerError, "session unavailable")
	}
	return sess, ok
}

func (p *Page) render(w http.ResponseWriter, r *http.Request, v view) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := p.tmpl.Execute(w, v); err != nil {
		observability.LoggerWithTrace(r.Context()).Error("render page",
			zap.Error(err),
			zap.String("request_id", observability.RequestIDFromContext(r.Context())),
		)
	}
}

// errorMessage renders an apperr failure; notices are shown as warnings.
func errorMessage(err error) message {
	if kind, ok := apperr.KindOf(err); ok && kind.IsNotice() {
		return message{levelWarning, err.Error()}
	}
	return message{levelError, "❌ " + err.Error()}
}

// parseNumber reads a form number; a blank field is 0.
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", calculator.ErrInvalidInput, s)
	}
	return f, nil
}
