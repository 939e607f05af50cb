// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/gravadora/internal/identity"
	"github.com/taibuivan/gravadora/internal/platform/ctxutil"
	"github.com/taibuivan/gravadora/internal/platform/sec"
	"github.com/taibuivan/gravadora/internal/profile"
)

/*
TestRequestScope stores and reads the request ID and logger.
*/
func TestRequestScope(t *testing.T) {
	ctx := context.Background()

	// 1. Defaults outside a request
	assert.Empty(t, ctxutil.GetRequestID(ctx))
	assert.Same(t, slog.Default(), ctxutil.GetLogger(ctx))

	// 2. Stored values win
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx = ctxutil.WithLogger(ctxutil.WithRequestID(ctx, "req-1"), logger)

	assert.Equal(t, "req-1", ctxutil.GetRequestID(ctx))
	assert.Same(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestCaller stores the session and the profile independently.
*/
func TestCaller(t *testing.T) {
	ctx := context.Background()

	// 1. Anonymous
	assert.Nil(t, ctxutil.GetSession(ctx))
	assert.Nil(t, ctxutil.GetProfile(ctx))

	// 2. Session without a profile, as after a failed resolution
	ctx = ctxutil.WithSession(ctx, &identity.Session{ID: "s1", Identity: identity.Identity{ID: "u1"}})
	assert.Equal(t, "u1", ctxutil.GetSession(ctx).Identity.ID)
	assert.Nil(t, ctxutil.GetProfile(ctx))

	// 3. Both
	ctx = ctxutil.WithProfile(ctx, &profile.Profile{ID: "u1", Role: sec.RoleFinanceiro})
	assert.Equal(t, sec.RoleFinanceiro, ctxutil.GetProfile(ctx).Role)
}
