// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/gravadora/internal/access"
	"github.com/taibuivan/gravadora/internal/identity"
	"github.com/taibuivan/gravadora/internal/platform/apperr"
	"github.com/taibuivan/gravadora/internal/platform/ctxutil"
	"github.com/taibuivan/gravadora/internal/platform/respond"
	"github.com/taibuivan/gravadora/internal/platform/sec"
	"github.com/taibuivan/gravadora/internal/profile"
)

// SessionVerifier checks a bearer token against the live session store.
//
// Defining it here decouples the middleware from [identity.Service] so tests
// can inject a stub.
type SessionVerifier interface {
	GetSession(ctx context.Context, accessToken string) (*identity.Session, error)
}

// ProfileResolver maps the verified identity to its profile.
type ProfileResolver interface {
	Resolve(ctx context.Context, who identity.Identity) (*profile.Profile, error)
}

/*
Authenticate verifies the bearer token and resolves the caller's profile.

Flow:
 1. No Authorization header: the request proceeds anonymously.
 2. Malformed header, bad signature or revoked session: 401.
 3. The session is injected, then the profile is resolved (provisioned on first use).
 4. A resolution failure is logged and the request proceeds without a profile,
    so guarded routes answer 401 rather than 500.
*/
func Authenticate(verifier SessionVerifier, resolver ProfileResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// 1. Anonymous Access
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// 2. Format Validation
			scheme, token, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// 3. Session Verification
			session, err := verifier.GetSession(request.Context(), token)
			if err != nil {
				respond.Error(writer, request, identity.ToAppError(err))
				return
			}

			ctx := ctxutil.WithSession(request.Context(), session)

			// 4. Profile Resolution
			resolved, err := resolver.Resolve(ctx, session.Identity)
			if err != nil {
				ctxutil.GetLogger(ctx).ErrorContext(ctx, "profile_resolution_failed",
					slog.String("user_id", session.Identity.ID),
					slog.String("error", err.Error()),
				)
				recordPrincipal(ctx, session.Identity.ID, "")
				next.ServeHTTP(writer, request.WithContext(ctx))
				return
			}

			recordPrincipal(ctx, resolved.ID, string(resolved.Role))
			ctx = ctxutil.WithProfile(ctx, resolved)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests without a resolved profile.
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetProfile(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

/*
RequireRoles blocks requests whose profile role is not in the allowed set.

It implies [RequireAuth]: an anonymous request gets 401, a signed-in one with
the wrong role gets 403.
*/
func RequireRoles(roles ...sec.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			current := ctxutil.GetProfile(request.Context())

			// 1. Authentication Check
			if current == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// 2. Authorization Check
			if !access.HasPermission(current, roles...) {
				respond.Error(writer, request, apperr.Forbidden("Access denied"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// RequireRoute guards a back-office area with the roles of its route table entry.
func RequireRoute(path string) func(http.Handler) http.Handler {
	return RequireRoles(access.RolesFor(path)...)
}
