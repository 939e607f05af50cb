// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package identity implements the authentication provider behind the back-office.

It owns credential accounts (auth.users in PostgreSQL), short-lived access
tokens (RS256 JWT), session records and refresh tokens (Redis, with TTL), and
the auth-state event stream (Redis pub/sub).

The rest of the application only observes this package through a narrow
contract: sign in with a password, get the current session, sign out, and be
told when a session appears or disappears. Profiles and roles are not stored
here; see package profile.

Architecture:

  - Service: server-side provider, stateless per call.
  - Client: holds one caller's tokens in memory and fans out state changes.
  - Repositories: Postgres accounts, Redis sessions, Redis event bus.
*/
package identity

import (
	"time"
)

// # Domain Entities

// Identity is an externally authenticated principal, independent of any profile.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Account is the credential record behind an [Identity].
type Account struct {
	ID               string
	Email            string
	PasswordHash     string
	EmailConfirmedAt *time.Time
	CreatedAt        time.Time
}

// Identity returns the public half of the account.
func (a *Account) Identity() Identity {
	return Identity{ID: a.ID, Email: a.Email}
}

// Session is an established login as seen by a client.
type Session struct {
	ID               string    `json:"id"`
	Identity         Identity  `json:"user"`
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"-"`
	ExpiresAt        time.Time `json:"expires_at"`
	RefreshExpiresAt time.Time `json:"-"`
}

// SessionRecord is the server-side state of a session.
type SessionRecord struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	RefreshHash string    `json:"refresh_hash"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// # Auth-State Events

// EventType names a session transition.
type EventType string

const (
	EventSignedIn       EventType = "SIGNED_IN"
	EventSignedOut      EventType = "SIGNED_OUT"
	EventTokenRefreshed EventType = "TOKEN_REFRESHED"
)

// Event is published on every session transition.
// An empty SessionID on a sign-out means every session of the user ended.
type Event struct {
	Type      EventType `json:"type"`
	UserID    string    `json:"user_id"`
	SessionID string    `json:"session_id,omitempty"`
	At        time.Time `json:"at"`
}

// StateChange is what a [Client] listener receives.
// Session is nil when the change cleared the session.
type StateChange struct {
	Event   EventType
	Session *Session
}

// # Errors

// AuthErrorCode classifies authentication failures.
type AuthErrorCode string

const (
	CodeInvalidCredentials AuthErrorCode = "invalid_credentials"
	CodeEmailNotConfirmed  AuthErrorCode = "email_not_confirmed"
	CodeSessionExpired     AuthErrorCode = "session_expired"
)

// AuthError is returned for credential and session failures.
type AuthError struct {
	Code    AuthErrorCode
	Message string
}

func (e *AuthError) Error() string { return e.Message }

func errInvalidCredentials() *AuthError {
	return &AuthError{Code: CodeInvalidCredentials, Message: "Invalid login credentials"}
}

func errEmailNotConfirmed() *AuthError {
	return &AuthError{Code: CodeEmailNotConfirmed, Message: "Email not confirmed"}
}

func errSessionExpired() *AuthError {
	return &AuthError{Code: CodeSessionExpired, Message: "Session expired or revoked"}
}
