// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package identity

import (
	"context"
	"time"

	"github.com/taibuivan/gravadora/internal/platform/sec"
)

// AccountRepository defines the data access contract for credential accounts.
//
// The canonical implementation is PostgreSQL (auth.users).
type AccountRepository interface {
	// FindByEmail returns the account with the given email (case-insensitive).
	//
	// Returns [apperr.NotFound] if no account is registered with this email.
	FindByEmail(ctx context.Context, email string) (*Account, error)

	// FindByID returns the account with the given ID.
	FindByID(ctx context.Context, id string) (*Account, error)

	// Create persists a new account. A duplicate email surfaces as a conflict.
	Create(ctx context.Context, account *Account) error

	// Delete removes the account and, by cascade, its profile. Deleting a
	// missing account is not an error.
	Delete(ctx context.Context, id string) error
}

// SessionRepository stores session records with a TTL.
type SessionRepository interface {
	// Create stores the record and indexes it by refresh-token hash and user.
	Create(ctx context.Context, record *SessionRecord, ttl time.Duration) error

	// Find returns the live record for a session ID.
	//
	// Returns [apperr.NotFound] if the session expired or was revoked.
	Find(ctx context.Context, sessionID string) (*SessionRecord, error)

	// FindByRefreshHash resolves a refresh-token hash to its live record.
	FindByRefreshHash(ctx context.Context, refreshHash string) (*SessionRecord, error)

	// Delete revokes one session. Deleting a missing session is not an error.
	Delete(ctx context.Context, sessionID string) error

	// DeleteAllForUser revokes every session of a user and returns their IDs.
	DeleteAllForUser(ctx context.Context, userID string) ([]string, error)
}

// EventBus broadcasts auth-state events across processes.
type EventBus interface {
	// Publish sends the event to every subscriber.
	Publish(ctx context.Context, event Event) error

	// Subscribe delivers events until ctx is done or the returned closer is called.
	Subscribe(ctx context.Context) (<-chan Event, func() error, error)
}

// TokenProvider signs and verifies access tokens.
type TokenProvider interface {
	GenerateAccessToken(userID, email, sessionID string, timeToLive time.Duration) (string, error)
	VerifyToken(tokenString string) (*sec.AuthClaims, error)
}
