// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package identity

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/gravadora/internal/platform/apperr"
	"github.com/taibuivan/gravadora/internal/platform/constants"
	"github.com/taibuivan/gravadora/internal/platform/respond"
	"github.com/taibuivan/gravadora/internal/platform/validate"
)

// Handler implements the authentication HTTP endpoints.
//
// Profile-aware endpoints (/me) live in the API layer; this handler only deals
// in identities and tokens.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /login   : Password sign-in, sets the refresh cookie.
//   - POST /refresh : Rotates the refresh cookie and returns a new access token.
//   - POST /logout  : Revokes the session and redirects to the login route.
//   - GET  /session : Describes the session behind the bearer token.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/session", handler.session)
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)
	router.Post("/logout", handler.logout)

	return router
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        Identity  `json:"user"`
}

/*
Login authenticates with email and password.

POST /api/v1/auth/login

Response:
  - 200: sessionResponse
  - 400: VALIDATION_ERROR
  - 401: INVALID_CREDENTIALS
  - 403: EMAIL_NOT_CONFIRMED
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required("email", input.Email).
		Email("email", input.Email).
		Required("password", input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.SignInWithPassword(request.Context(), input.Email, input.Password)
	if err != nil {
		respond.Error(writer, request, ToAppError(err))
		return
	}

	setRefreshCookie(writer, session)
	respond.OK(writer, newSessionResponse(session))
}

/*
Refresh rotates the refresh cookie.

POST /api/v1/auth/refresh

Response:
  - 200: sessionResponse
  - 401: SESSION_EXPIRED
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)
	if err != nil || cookie.Value == "" {
		respond.Error(writer, request, ToAppError(errSessionExpired()))
		return
	}

	session, err := handler.service.Refresh(request.Context(), cookie.Value)
	if err != nil {
		if isSessionExpired(err) {
			clearRefreshCookie(writer)
		}
		respond.Error(writer, request, ToAppError(err))
		return
	}

	setRefreshCookie(writer, session)
	respond.OK(writer, newSessionResponse(session))
}

/*
Logout ends the session and sends the client to the login route.

POST /api/v1/auth/logout

The cookie is cleared and the redirect issued even when revocation fails or
times out; the failure is only logged.

Response:
  - 303: Location: /login
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	clearRefreshCookie(writer)

	if cookie, err := request.Cookie(constants.RefreshTokenCookieName); err == nil && cookie.Value != "" {
		ctx, cancel := context.WithTimeout(request.Context(), constants.SignOutTimeout)
		defer cancel()

		if err := handler.service.SignOutByRefreshToken(ctx, cookie.Value); err != nil {
			handler.logger.WarnContext(request.Context(), "sign_out_failed", slog.String("error", err.Error()))
		}
	}

	http.Redirect(writer, request, constants.LoginRoute, http.StatusSeeOther)
}

/*
Session reports the live session behind the bearer token.

GET /api/v1/auth/session

Response:
  - 200: sessionResponse (without the refresh cookie)
  - 401: SESSION_EXPIRED
*/
func (handler *Handler) session(writer http.ResponseWriter, request *http.Request) {
	scheme, token, found := strings.Cut(request.Header.Get("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
		respond.Error(writer, request, ToAppError(errSessionExpired()))
		return
	}

	session, err := handler.service.GetSession(request.Context(), token)
	if err != nil {
		respond.Error(writer, request, ToAppError(err))
		return
	}

	respond.OK(writer, newSessionResponse(session))
}

// # Helpers

// ToAppError maps an [*AuthError] onto the API error envelope. Other errors pass through.
func ToAppError(err error) error {
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		return err
	}

	switch authErr.Code {
	case CodeEmailNotConfirmed:
		return &apperr.AppError{Code: "EMAIL_NOT_CONFIRMED", Message: authErr.Message, HTTPStatus: http.StatusForbidden, Cause: err}
	case CodeSessionExpired:
		return &apperr.AppError{Code: "SESSION_EXPIRED", Message: authErr.Message, HTTPStatus: http.StatusUnauthorized, Cause: err}
	default:
		return &apperr.AppError{Code: "INVALID_CREDENTIALS", Message: authErr.Message, HTTPStatus: http.StatusUnauthorized, Cause: err}
	}
}

func newSessionResponse(session *Session) sessionResponse {
	return sessionResponse{
		AccessToken: session.AccessToken,
		ExpiresAt:   session.ExpiresAt,
		User:        session.Identity,
	}
}

func setRefreshCookie(writer http.ResponseWriter, session *Session) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    session.RefreshToken,
		Path:     constants.RefreshTokenCookiePath,
		Expires:  session.RefreshExpiresAt,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func clearRefreshCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    "",
		Path:     constants.RefreshTokenCookiePath,
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
