// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quillboard Contributors

package graphql

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/quillboard/quillboard/internal/account"
	"github.com/quillboard/quillboard/pkg/errutil"

	"log/slog"
)

type sessionCtxKey struct{}

// SessionManager loads the request's session from its cookie and exposes
// a per-request handle for resolvers to read and mutate it.
type SessionManager struct {
	store      account.SessionStore
	cookieName string
	ttl        time.Duration
}

// NewSessionManager creates a SessionManager.
func NewSessionManager(store account.SessionStore, cookieName string, ttl time.Duration) *SessionManager {
	return &SessionManager{store: store, cookieName: cookieName, ttl: ttl}
}

// RequestSession is the per-request session handle. It pairs the session
// record with the response writer so resolvers can issue or clear the
// session cookie.
type RequestSession struct {
	sess       *account.Session
	w          http.ResponseWriter
	cookieName string
	ttl        time.Duration
}

// Session returns the session record.
func (rs *RequestSession) Session() *account.Session {
	return rs.sess
}

// IssueCookie sends the session token to the client. Called after a
// successful login; until then the session is never persisted and no
// cookie is set.
func (rs *RequestSession) IssueCookie() {
	if rs.w == nil {
		return
	}
	http.SetCookie(rs.w, &http.Cookie{
		Name:     rs.cookieName,
		Value:    rs.sess.Token,
		Path:     "/",
		MaxAge:   int(rs.ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie on the client.
func (rs *RequestSession) ClearCookie() {
	if rs.w == nil {
		return
	}
	http.SetCookie(rs.w, &http.Cookie{
		Name:     rs.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// WithRequestSession returns a context carrying the given session handle.
// Exposed for tests that execute queries without the HTTP middleware.
func WithRequestSession(ctx context.Context, rs *RequestSession) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, rs)
}

// NewRequestSession builds a session handle directly from a session
// record. Exposed for tests.
func NewRequestSession(sess *account.Session) *RequestSession {
	return &RequestSession{sess: sess}
}

// SessionFromContext returns the request's session handle, or nil when
// the session middleware did not run.
func SessionFromContext(ctx context.Context) *RequestSession {
	rs, _ := ctx.Value(sessionCtxKey{}).(*RequestSession)
	return rs
}

// Middleware resolves the session for each request: a valid cookie loads
// the stored session, anything else gets a fresh anonymous one. The
// session is only persisted (and the cookie only issued) by a successful
// login, so anonymous traffic leaves no state behind.
func (m *SessionManager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := m.resolveSession(r)
		if err != nil {
			errutil.LogError(slog.Default(), "session lookup failed", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		rs := &RequestSession{
			sess:       sess,
			w:          w,
			cookieName: m.cookieName,
			ttl:        m.ttl,
		}
		next.ServeHTTP(w, r.WithContext(WithRequestSession(r.Context(), rs)))
	})
}

func (m *SessionManager) resolveSession(r *http.Request) (*account.Session, error) {
	if cookie, err := r.Cookie(m.cookieName); err == nil && cookie.Value != "" {
		sess, err := m.store.Get(r.Context(), cookie.Value)
		if err == nil {
			return sess, nil
		}
		if !errors.Is(err, account.ErrNotFound) {
			return nil, err
		}
		// Unknown or expired token: fall through to a fresh session.
	}
	return account.NewSession()
}
