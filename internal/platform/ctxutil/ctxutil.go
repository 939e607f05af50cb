// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil reads and writes the per-request values set by middleware.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/gravadora/internal/identity"
	"github.com/taibuivan/gravadora/internal/platform/ctxkey"
	"github.com/taibuivan/gravadora/internal/profile"
)

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID returns "" outside a request.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger falls back to [slog.Default] so callers never nil-check.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// WithSession stores the verified session behind the bearer token.
func WithSession(ctx context.Context, session *identity.Session) context.Context {
	return context.WithValue(ctx, ctxkey.KeySession, session)
}

// GetSession returns nil for anonymous requests.
func GetSession(ctx context.Context) *identity.Session {
	session, _ := ctx.Value(ctxkey.KeySession).(*identity.Session)
	return session
}

// WithProfile stores the caller's resolved profile.
func WithProfile(ctx context.Context, current *profile.Profile) context.Context {
	return context.WithValue(ctx, ctxkey.KeyProfile, current)
}

// GetProfile returns nil when the caller is anonymous or the profile could
// not be resolved. Guards treat both the same way.
func GetProfile(ctx context.Context) *profile.Profile {
	current, _ := ctx.Value(ctxkey.KeyProfile).(*profile.Profile)
	return current
}
