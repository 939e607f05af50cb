// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package profile maps an authenticated identity to the application's view of a user.

A profile carries the display name and the role that drives every permission
check. Profiles are created lazily: the first time an identity is resolved and
no row exists, one is provisioned with a default name and the configured
default role.

Resolution is idempotent under concurrency. Two sessions resolving the same new
identity at once end up reading the same single row.
*/
package profile

import (
	"strings"
	"time"

	"github.com/taibuivan/gravadora/internal/platform/sec"
)

// # Domain Entities

// Profile is the application-level record of a user.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"nome"`
	Email     string    `json:"email"`
	Role      sec.Role  `json:"role"`
	Avatar    *string   `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Filter narrows the administrative profile listing.
type Filter struct {
	Role   sec.Role
	Search string
	Limit  int
	Offset int
}

// UpdateInput carries the fields an administrator may change. Nil means unchanged.
type UpdateInput struct {
	Name   *string
	Role   *string
	Avatar *string
}

// DefaultName derives a display name from an email: the part before the first '@'.
func DefaultName(email string) string {
	if local, _, found := strings.Cut(email, "@"); found && local != "" {
		return local
	}
	return email
}
