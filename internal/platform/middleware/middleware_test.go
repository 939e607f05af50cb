// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/gravadora/internal/identity"
	"github.com/taibuivan/gravadora/internal/platform/ctxutil"
	"github.com/taibuivan/gravadora/internal/platform/middleware"
	"github.com/taibuivan/gravadora/internal/platform/sec"
	"github.com/taibuivan/gravadora/internal/profile"
)

type stubVerifier struct{}

func (stubVerifier) GetSession(_ context.Context, token string) (*identity.Session, error) {
	switch token {
	case "admin-token":
		return &identity.Session{ID: "s1", Identity: identity.Identity{ID: "u-admin", Email: "admin@b.com"}}, nil
	case "prod-token":
		return &identity.Session{ID: "s2", Identity: identity.Identity{ID: "u-prod", Email: "prod@b.com"}}, nil
	case "broken-profile":
		return &identity.Session{ID: "s3", Identity: identity.Identity{ID: "u-broken", Email: "x@b.com"}}, nil
	default:
		return nil, &identity.AuthError{Code: identity.CodeSessionExpired, Message: "Session expired or revoked"}
	}
}

type stubResolver struct{}

func (stubResolver) Resolve(_ context.Context, who identity.Identity) (*profile.Profile, error) {
	switch who.ID {
	case "u-admin":
		return &profile.Profile{ID: who.ID, Email: who.Email, Role: sec.RoleAdmin}, nil
	case "u-prod":
		return &profile.Profile{ID: who.ID, Email: who.Email, Role: sec.RoleProducao}, nil
	default:
		return nil, errors.New("profiles unavailable")
	}
}

func guardedRouter() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Authenticate(stubVerifier{}, stubResolver{}))

	router.Get("/public", func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetProfile(request.Context()) != nil {
			writer.Header().Set("X-Profile", ctxutil.GetProfile(request.Context()).ID)
		}
		writer.WriteHeader(http.StatusOK)
	})

	router.With(middleware.RequireAuth).Get("/me", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})

	router.With(middleware.RequireRoute("/usuarios")).Get("/usuarios", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})

	return router
}

/*
TestAuthorization checks the 401/403 split across guards.
*/
func TestAuthorization(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		header     string
		wantStatus int
	}{
		{"anonymous_public", "/public", "", http.StatusOK},
		{"anonymous_guarded", "/me", "", http.StatusUnauthorized},
		{"malformed_header", "/public", "Token abc", http.StatusUnauthorized},
		{"revoked_session", "/public", "Bearer stale", http.StatusUnauthorized},
		{"admin_me", "/me", "Bearer admin-token", http.StatusOK},
		{"admin_usuarios", "/usuarios", "Bearer admin-token", http.StatusOK},
		{"producao_usuarios", "/usuarios", "Bearer prod-token", http.StatusForbidden},
		{"resolution_failure_degrades", "/me", "Bearer broken-profile", http.StatusUnauthorized},
		{"resolution_failure_public", "/public", "Bearer broken-profile", http.StatusOK},
	}

	router := guardedRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}

type corsConfig struct{ development bool }

func (c corsConfig) IsDevelopment() bool  { return c.development }
func (c corsConfig) OriginSuffix() string { return "gravadora.app" }

/*
TestCORS allows only the configured origin suffix outside development.
*/
func TestCORS(t *testing.T) {
	tests := []struct {
		name        string
		development bool
		origin      string
		wantAllowed bool
	}{
		{"production_allowed", false, "https://painel.gravadora.app", true},
		{"production_foreign", false, "https://evil.example", false},
		{"development_any", true, "http://localhost:5173", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := middleware.CORS(corsConfig{development: tt.development})(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
				writer.WriteHeader(http.StatusOK)
			}))

			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.Header.Set("Origin", tt.origin)
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			if tt.wantAllowed {
				assert.Equal(t, tt.origin, recorder.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

/*
TestRateLimit rejects a client past its burst.
*/
func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.RateLimit(ctx)(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	}))

	var limited bool
	for range 500 {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("X-Real-IP", "10.0.0.1")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		if recorder.Code == http.StatusTooManyRequests {
			limited = true
			break
		}
	}

	assert.True(t, limited)
}

/*
TestRateLimiter_PerClient keeps one bucket per IP.
*/
func TestRateLimiter_PerClient(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, 2)
	now := time.Now()

	// 1. Burst of two, then empty
	assert.True(t, limiter.Allow("10.0.0.1", now))
	assert.True(t, limiter.Allow("10.0.0.1", now))
	assert.False(t, limiter.Allow("10.0.0.1", now))

	// 2. Another client is unaffected
	assert.True(t, limiter.Allow("10.0.0.2", now))

	// 3. Refilled after a second
	assert.True(t, limiter.Allow("10.0.0.1", now.Add(time.Second)))
}

/*
TestRequestID_AndRecovery echoes the request ID on a recovered panic.
*/
func TestRequestID_AndRecovery(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := middleware.RequestID()(middleware.StructuredLogger(logger)(middleware.PanicRecovery(logger)(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }),
	)))

	// 1. Client-supplied ID is kept
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("X-Request-ID", "req-42")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, "req-42", recorder.Header().Get("X-Request-ID"))
	assert.Contains(t, recorder.Body.String(), "INTERNAL_ERROR")

	// 2. Missing ID is generated
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Len(t, recorder.Header().Get("X-Request-ID"), 36)
}

func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "192.0.2.7:5151"
	assert.Equal(t, "192.0.2.7", middleware.RealIP(request))

	request.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", middleware.RealIP(request))

	request.Header.Set("X-Real-IP", "198.51.100.3")
	assert.Equal(t, "198.51.100.3", middleware.RealIP(request))
}
