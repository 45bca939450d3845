package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"smart-calculator/internal/apperr"
)

func TestWriteErrorWritesStandardizedJSON(t *testing.T) {
	w := httptest.NewRecorder()

	WriteError(w, http.StatusBadRequest, "something went wrong")

	resp := w.Result()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected Content-Type application/json, got %q", ct)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}

	if got := body["error"]; got != "something went wrong" {
		t.Fatalf("expected error %q, got %q", "something went wrong", got)
	}

	if _, ok := body["request_id"]; ok {
		t.Fatal("did not expect request_id field in JSON body")
	}
	if _, ok := body["kind"]; ok {
		t.Fatal("did not expect kind field for a plain error")
	}
}

func TestWriteAppErrorIncludesKind(t *testing.T) {
	w := httptest.NewRecorder()

	WriteAppError(w, fmt.Errorf("explain: %w", apperr.ErrNoPriorCalculation))

	resp := w.Result()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, resp.StatusCode)
	}

	var body ErrorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
	if body.Kind != "no_prior_calculation" {
		t.Fatalf("expected kind %q, got %q", "no_prior_calculation", body.Kind)
	}
	if body.Error != "explain: Perform a calculation first." {
		t.Fatalf("unexpected error message %q", body.Error)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperr.ErrDivisionByZero, http.StatusBadRequest},
		{apperr.ErrUnknownOperation, http.StatusBadRequest},
		{apperr.ErrEmptyQuestion, http.StatusBadRequest},
		{apperr.ErrNoPriorCalculation, http.StatusConflict},
		{apperr.ErrProviderUnavailable, http.StatusServiceUnavailable},
		{apperr.ErrProviderError, http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.err.Error(), func(t *testing.T) {
			if got := StatusFor(tc.err); got != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, got)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Fatalf("expected 200 ok, got %d %q", w.Code, w.Body.String())
	}
}
