// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package users provides the HTTP delivery layer for the caller's own profile
and for user administration.

# Security

Every endpoint requires a resolved profile. The administration routes are
additionally guarded by the caller with the /usuarios route roles.
*/
package users

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/gravadora/internal/access"
	"github.com/taibuivan/gravadora/internal/identity"
	"github.com/taibuivan/gravadora/internal/platform/apperr"
	requestutil "github.com/taibuivan/gravadora/internal/platform/request"
	"github.com/taibuivan/gravadora/internal/platform/respond"
	"github.com/taibuivan/gravadora/internal/platform/sec"
	"github.com/taibuivan/gravadora/internal/profile"
	"github.com/taibuivan/gravadora/pkg/pagination"
)

// Accounts registers logins for new users and removes the ones whose profile
// could not be written.
type Accounts interface {
	CreateAccount(ctx context.Context, email, password string) (identity.Identity, error)
	DeleteAccount(ctx context.Context, id string) error
}

// rollbackTimeout bounds the account removal after a failed provisioning.
const rollbackTimeout = 5 * time.Second

// Handler implements the HTTP layer for profiles.
type Handler struct {
	accounts Accounts
	profiles *profile.Service
	logger   *slog.Logger
}

// NewHandler constructs a new users [Handler].
func NewHandler(accounts Accounts, profiles *profile.Service, logger *slog.Logger) *Handler {
	return &Handler{accounts: accounts, profiles: profiles, logger: logger}
}

// RegisterMeRoutes mounts the caller's own endpoints.
func (handler *Handler) RegisterMeRoutes(router chi.Router) {
	router.Get("/", handler.getMe)
	router.Get("/navigation", handler.getNavigation)
}

// RegisterAdminRoutes mounts user administration. Role guarding is applied by the caller.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Get("/", handler.listUsers)
	router.Post("/", handler.createUser)
	router.Get("/{id}", handler.getUser)
	router.Patch("/{id}", handler.updateUser)
}

// # Own Profile

/*
GET /api/v1/me.

Response:
  - 200: Profile: The caller's resolved profile
  - 401: ErrUnauthorized: No profile resolved
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	current, err := requestutil.RequiredProfile(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, current)
}

/*
GET /api/v1/me/navigation.

Response:
  - 200: []Route: The areas the caller may open, in display order
  - 401: ErrUnauthorized: No profile resolved
*/
func (handler *Handler) getNavigation(writer http.ResponseWriter, request *http.Request) {
	current, err := requestutil.RequiredProfile(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, access.Navigation(current))
}

// # Administration

// listUsers accepts ?role=...&q=...
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	params := request.URL.Query()

	filter := profile.Filter{
		Role:   sec.Role(params.Get("role")),
		Search: params.Get("q"),
		Limit:  paginationParams.Limit,
		Offset: paginationParams.Offset(),
	}

	profiles, total, err := handler.profiles.List(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if profiles == nil {
		profiles = []*profile.Profile{}
	}

	respond.Paginated(writer, profiles, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.profiles.Get(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

type createUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"nome"`
	Role     string `json:"role"`
}

/*
POST /api/v1/usuarios.

Creates a confirmed account and its profile with the requested role.

Response:
  - 201: Profile: The new profile
  - 400: ErrValidation: Bad email, short password or role not assignable
  - 409: ErrConflict: Email already registered
*/
func (handler *Handler) createUser(writer http.ResponseWriter, request *http.Request) {
	var input createUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Check the role before creating a login that would be left without a profile
	role, err := sec.ParseRole(input.Role)
	if err != nil || !role.IsAssignable() {
		respond.Error(writer, request, apperr.ValidationError("Role must be assignable",
			apperr.FieldError{Field: "role", Message: "must be one of admin, producao, financeiro"}))
		return
	}

	who, err := handler.accounts.CreateAccount(request.Context(), input.Email, input.Password)
	if err != nil {
		respond.Error(writer, request, identity.ToAppError(err))
		return
	}

	// A login without a profile would be auto-provisioned with the default
	// role on first sign-in, so the account must not outlive this failure.
	created, err := handler.profiles.Provision(request.Context(), who, input.Name, role)
	if err != nil {
		handler.rollbackAccount(request.Context(), who.ID)
		respond.Error(writer, request, err)
		return
	}

	handler.logger.InfoContext(request.Context(), "user_created",
		slog.String("user_id", created.ID),
		slog.String("role", string(created.Role)),
	)
	respond.Created(writer, created)
}

// rollbackAccount removes an account created moments ago. It runs detached from
// the request deadline, which may be what made provisioning fail.
func (handler *Handler) rollbackAccount(ctx context.Context, id string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), rollbackTimeout)
	defer cancel()

	if err := handler.accounts.DeleteAccount(ctx, id); err != nil {
		handler.logger.ErrorContext(ctx, "user_rollback_failed",
			slog.String("user_id", id),
			slog.Any("error", err),
		)
		return
	}
	handler.logger.WarnContext(ctx, "user_rolled_back", slog.String("user_id", id))
}

type updateUserRequest struct {
	Name   *string `json:"nome"`
	Role   *string `json:"role"`
	Avatar *string `json:"avatar_url"`
}

/*
PATCH /api/v1/usuarios/{id}.

Response:
  - 200: Profile: The updated profile
  - 400: ErrValidation: Empty name or legacy/unknown role
  - 404: ErrNotFound: No such profile
*/
func (handler *Handler) updateUser(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.profiles.Update(request.Context(), userID, profile.UpdateInput{
		Name:   input.Name,
		Role:   input.Role,
		Avatar: input.Avatar,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.logger.InfoContext(request.Context(), "user_updated",
		slog.String("user_id", updated.ID),
		slog.String("role", string(updated.Role)),
	)
	respond.OK(writer, updated)
}
