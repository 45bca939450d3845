// Package testutil holds shared HTTP test helpers and a stub AI provider.
package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func ExecuteRequest(req *http.Request, handler http.Handler) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// NewJSONRequest builds a request with a JSON body and content type.
func NewJSONRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func CheckResponseCode(t testing.TB, expected, actual int) {
	t.Helper()
	if expected != actual {
		t.Fatalf("expected status %d, got %d", expected, actual)
	}
}

// DecodeJSONBody fails the test unless body holds exactly one JSON value
// that decodes into dst.
func DecodeJSONBody(t testing.TB, body io.Reader, dst any) {
	t.Helper()
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		t.Fatalf("decoding JSON response: %v", err)
	}
	if dec.More() {
		t.Fatal("unexpected data after JSON response")
	}
}
