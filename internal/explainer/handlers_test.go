package explainer

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"smart-calculator/internal/history"
	"smart-calculator/internal/session"
	"smart-calculator/internal/testutil"
)

func newTestRouter(t *testing.T, p Provider) (http.Handler, *session.Session) {
	t.Helper()
	setup(t)

	store := session.NewStore(time.Hour, history.DefaultCapacity)
	sess := store.Create()

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), sess)))
		})
	})
	RegisterRoutes(r, NewHandler(New(p)))

	return r, sess
}

func post(h http.Handler, path, body string) *httptest.ResponseRecorder {
	req := testutil.NewJSONRequest(http.MethodPost, path, body)
	return testutil.ExecuteRequest(req, h)
}

func TestExplainEndpointRequiresCalculation(t *testing.T) {
	stub := &testutil.StubProvider{Reply: "unused"}
	h, _ := newTestRouter(t, stub)

	w := post(h, "/ai/explain", `{}`)
	testutil.CheckResponseCode(t, http.StatusConflict, w.Code)

	var body map[string]string
	testutil.DecodeJSONBody(t, w.Body, &body)
	if body["kind"] != "no_prior_calculation" {
		t.Fatalf("expected kind %q, got %q", "no_prior_calculation", body["kind"])
	}
	if len(stub.Prompts()) != 0 {
		t.Fatal("expected no provider call")
	}
}

func TestExplainEndpointEmptyBodyUsesDefaultPrompt(t *testing.T) {
	stub := &testutil.StubProvider{Reply: "Add one to two."}
	h, sess := newTestRouter(t, stub)
	sess.RecordCalculation(history.Record{Expression: "1.0 + 2.0", Result: 3})

	req := httptest.NewRequest(http.MethodPost, "/ai/explain", nil)
	w := testutil.ExecuteRequest(req, h)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var resp TextResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)
	if resp.Text != "Add one to two." {
		t.Fatalf("unexpected text %q", resp.Text)
	}

	want := "Explain step by step how to compute 1.0 + 2.0 to get 3.0 for a beginner."
	if got := stub.Prompts(); len(got) != 1 || got[0] != want {
		t.Fatalf("expected default prompt %q, got %#v", want, got)
	}
}

func TestExplainEndpointRejectsMalformedBody(t *testing.T) {
	stub := &testutil.StubProvider{Reply: "unused"}
	h, sess := newTestRouter(t, stub)
	sess.RecordCalculation(history.Record{Expression: "1.0 + 2.0", Result: 3})

	w := post(h, "/ai/explain", `{"prompt":`)
	testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)
	if len(stub.Prompts()) != 0 {
		t.Fatal("expected no provider call")
	}
}

func TestExplainEndpointUsesLastCalculation(t *testing.T) {
	stub := &testutil.StubProvider{Reply: "Twelve split three ways is four."}
	h, sess := newTestRouter(t, stub)
	sess.RecordCalculation(history.Record{Expression: "12.0 ÷ 3.0", Result: 4})

	req := httptest.NewRequest(http.MethodGet, "/ai/explain/prompt", nil)
	w := testutil.ExecuteRequest(req, h)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var prompt PromptResponse
	testutil.DecodeJSONBody(t, w.Body, &prompt)
	if prompt.Prompt != "Explain step by step how to compute 12.0 ÷ 3.0 to get 4.0 for a beginner." {
		t.Fatalf("unexpected default prompt %q", prompt.Prompt)
	}

	w = post(h, "/ai/explain", `{"prompt":""}`)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var resp TextResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)
	if resp.Text != "Twelve split three ways is four." {
		t.Fatalf("unexpected text %q", resp.Text)
	}
	if got := stub.Prompts(); len(got) != 1 || got[0] != prompt.Prompt {
		t.Fatalf("expected default prompt to be sent, got %#v", got)
	}
}

func TestPromptEndpointWithoutCalculation(t *testing.T) {
	h, _ := newTestRouter(t, &testutil.StubProvider{})

	req := httptest.NewRequest(http.MethodGet, "/ai/explain/prompt", nil)
	w := testutil.ExecuteRequest(req, h)
	testutil.CheckResponseCode(t, http.StatusConflict, w.Code)
}

func TestAskEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		provider Provider
		body     string
		status   int
		kind     string
	}{
		{"answer", &testutil.StubProvider{Reply: "8"}, `{"question":"What is 12 divided by 3 plus 4?"}`, http.StatusOK, ""},
		{"blank question", &testutil.StubProvider{Reply: "8"}, `{"question":"   "}`, http.StatusBadRequest, "empty_question"},
		{"no provider", nil, `{"question":"1+1?"}`, http.StatusServiceUnavailable, "provider_unavailable"},
		{"provider failure", &testutil.StubProvider{Err: errors.New("timeout")}, `{"question":"1+1?"}`, http.StatusBadGateway, "provider_error"},
		{"invalid body", &testutil.StubProvider{}, `{"question":`, http.StatusBadRequest, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, _ := newTestRouter(t, tc.provider)

			w := post(h, "/ai/ask", tc.body)
			testutil.CheckResponseCode(t, tc.status, w.Code)

			var body map[string]string
			testutil.DecodeJSONBody(t, w.Body, &body)
			if tc.status == http.StatusOK {
				if body["text"] != "8" {
					t.Fatalf("expected text %q, got %q", "8", body["text"])
				}
				return
			}
			if body["kind"] != tc.kind {
				t.Fatalf("expected kind %q, got %q", tc.kind, body["kind"])
			}
		})
	}
}
