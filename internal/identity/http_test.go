// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package identity_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/gravadora/internal/identity"
	"github.com/taibuivan/gravadora/internal/platform/apperr"
	"github.com/taibuivan/gravadora/internal/platform/constants"
)

func refreshCookie(t *testing.T, response *http.Response) *http.Cookie {
	t.Helper()
	for _, cookie := range response.Cookies() {
		if cookie.Name == constants.RefreshTokenCookieName {
			return cookie
		}
	}
	t.Fatal("refresh cookie not set")
	return nil
}

/*
TestHandler_LoginAndLogout drives the HTTP flow end to end.
*/
func TestHandler_LoginAndLogout(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "caio@gravadora.app", "segredo1", true)
	router := identity.NewHandler(h.service, slog.New(slog.NewTextHandler(io.Discard, nil))).Routes()

	// 1. Login
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"email":"caio@gravadora.app","password":"segredo1"}`)))
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data struct {
			AccessToken string            `json:"access_token"`
			User        identity.Identity `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	assert.Equal(t, "caio@gravadora.app", body.Data.User.Email)

	cookie := refreshCookie(t, recorder.Result())
	assert.True(t, cookie.HttpOnly)

	session, err := h.service.GetSession(context.Background(), body.Data.AccessToken)
	require.NoError(t, err)

	// 2. Logout redirects to the login route and revokes
	request := httptest.NewRequest(http.MethodPost, "/logout", nil)
	request.AddCookie(cookie)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, constants.LoginRoute, recorder.Header().Get("Location"))
	assert.Equal(t, -1, refreshCookie(t, recorder.Result()).MaxAge)

	_, err = h.sessions.Find(context.Background(), session.ID)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestHandler_LoginErrors maps auth failures to status codes.
*/
func TestHandler_LoginErrors(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "ok@gravadora.app", "segredo1", true)
	h.seed(t, "pendente@gravadora.app", "segredo1", false)
	router := identity.NewHandler(h.service, slog.New(slog.NewTextHandler(io.Discard, nil))).Routes()

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"bad_json", `{`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"missing_password", `{"email":"ok@gravadora.app"}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"wrong_password", `{"email":"ok@gravadora.app","password":"x"}`, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"not_confirmed", `{"email":"pendente@gravadora.app","password":"segredo1"}`, http.StatusForbidden, "EMAIL_NOT_CONFIRMED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, recorder.Code)

			var envelope struct {
				Code string `json:"code"`
			}
			require.NoError(t, json.NewDecoder(recorder.Body).Decode(&envelope))
			assert.Equal(t, tt.wantCode, envelope.Code)
		})
	}
}

/*
TestHandler_LogoutWithoutCookie still redirects.
*/
func TestHandler_LogoutWithoutCookie(t *testing.T) {
	h := newHarness(t)
	router := identity.NewHandler(h.service, slog.New(slog.NewTextHandler(io.Discard, nil))).Routes()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/logout", nil))

	assert.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, constants.LoginRoute, recorder.Header().Get("Location"))
}

/*
TestHandler_Session accepts the bearer scheme in any letter case.
*/
func TestHandler_Session(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "bia@gravadora.app", "segredo1", true)
	router := identity.NewHandler(h.service, slog.New(slog.NewTextHandler(io.Discard, nil))).Routes()

	// 1. Obtain an access token
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"email":"bia@gravadora.app","password":"segredo1"}`)))
	require.Equal(t, http.StatusOK, recorder.Code)

	var login struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&login))
	token := login.Data.AccessToken

	// 2. Header variants
	tests := []struct {
		name   string
		header string
		status int
	}{
		{"canonical", "Bearer " + token, http.StatusOK},
		{"lowercase", "bearer " + token, http.StatusOK},
		{"uppercase", "BEARER " + token, http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"other_scheme", "Basic " + token, http.StatusUnauthorized},
		{"scheme_only", "Bearer", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/session", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)

			assert.Equal(t, tt.status, recorder.Code)
		})
	}
}
