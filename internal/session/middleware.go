package session

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"smart-calculator/internal/observability"
)

// CookieName is the cookie carrying the session id.
const CookieName = "calc_session"

type contextKey struct{}

// NewContext returns a child context carrying sess.
func NewContext(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, sess)
}

// FromContext returns the session stored on ctx by Middleware.
func FromContext(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(contextKey{}).(*Session)
	return sess, ok && sess != nil
}

// Middleware resolves the visitor's session from the cookie, starting a new
// one when the cookie is missing or points at an ended session.
func Middleware(store *Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sess *Session
			if c, err := r.Cookie(CookieName); err == nil {
				sess, _ = store.Get(c.Value)
			}

			if sess == nil {
				sess = store.Create()
				http.SetCookie(w, &http.Cookie{
					Name:     CookieName,
					Value:    sess.ID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})

				observability.LoggerWithTrace(r.Context()).Debug("session started",
					zap.String("request_id", observability.RequestIDFromContext(r.Context())),
				)
			}

			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), sess)))
		})
	}
}

// EndHandler discards the caller's session and expires its cookie.
func EndHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sess, ok := FromContext(r.Context()); ok {
			store.Delete(sess.ID)
		}

		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		w.WriteHeader(http.StatusNoContent)
	}
}
