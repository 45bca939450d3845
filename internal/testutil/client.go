package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

// Client sends requests to an in-process handler and replays the named
// cookie between them, like a single browser tab.
type Client struct {
	t          testing.TB
	handler    http.Handler
	cookieName string
	cookie     *http.Cookie
}

func NewClient(t testing.TB, handler http.Handler, cookieName string) *Client {
	return &Client{t: t, handler: handler, cookieName: cookieName}
}

// Fork returns a client for the same handler with no cookie.
func (c *Client) Fork() *Client {
	return NewClient(c.t, c.handler, c.cookieName)
}

func (c *Client) Get(path string) *httptest.ResponseRecorder {
	return c.Do(httptest.NewRequest(http.MethodGet, path, nil))
}

// JSON sends body as-is; an empty body sends no body at all.
func (c *Client) JSON(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = NewJSONRequest(method, path, body)
	}
	return c.Do(req)
}

func (c *Client) PostForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.Do(req)
}

func (c *Client) Do(req *http.Request) *httptest.ResponseRecorder {
	c.t.Helper()

	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}

	w := ExecuteRequest(req, c.handler)
	for _, ck := range w.Result().Cookies() {
		if ck.Name == c.cookieName {
			c.cookie = ck
		}
	}
	return w
}
