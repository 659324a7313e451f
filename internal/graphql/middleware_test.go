// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quillboard Contributors

package graphql_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillboard/quillboard/internal/graphql"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRecovery(t *testing.T) {
	t.Run("panic becomes a 500", func(t *testing.T) {
		handler := graphql.Recovery(discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("resolver blew up")
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/graphql", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("normal responses pass through", func(t *testing.T) {
		handler := graphql.Recovery(discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/graphql", nil))
		assert.Equal(t, http.StatusTeapot, rec.Code)
	})
}

func TestRequestLogging(t *testing.T) {
	handler := graphql.RequestLogging(discardLogger(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/graphql", nil))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCORS(t *testing.T) {
	t.Run("sets origin headers", func(t *testing.T) {
		handler := graphql.CORS("http://localhost:3000")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/graphql", nil))

		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("answers preflight without hitting the handler", func(t *testing.T) {
		handler := graphql.CORS("http://localhost:3000")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run")
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/graphql", nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	})

	t.Run("empty origin sets no headers", func(t *testing.T) {
		handler := graphql.CORS("")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/graphql", nil))

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestMiddlewareChainOrder(t *testing.T) {
	// Recovery must wrap logging so a panic is still logged as a 500.
	handler := graphql.Recovery(discardLogger())(
		graphql.RequestLogging(discardLogger(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("inner")
		})),
	)

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/graphql", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
