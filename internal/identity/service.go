// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package identity

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/gravadora/internal/platform/apperr"
	"github.com/taibuivan/gravadora/internal/platform/sec"
	"github.com/taibuivan/gravadora/pkg/uuid"
)

// Service implements the authentication provider use cases.
type Service struct {
	accounts AccountRepository
	sessions SessionRepository
	events   EventBus
	tokens   TokenProvider
	logger   *slog.Logger
	now      func() time.Time
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	accounts AccountRepository,
	sessions SessionRepository,
	events EventBus,
	tokens TokenProvider,
	logger *slog.Logger,
) *Service {
	return &Service{
		accounts: accounts,
		sessions: sessions,
		events:   events,
		tokens:   tokens,
		logger:   logger,
		now:      time.Now,
	}
}

// # Sign In

/*
SignInWithPassword validates credentials and opens a new session.

Returns:
  - *Session: Access and refresh tokens for the new session
  - error: [*AuthError] for bad credentials or an unconfirmed email
*/
func (service *Service) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {

	// 1. Lookup. Unknown email and wrong password are indistinguishable to the caller.
	account, err := service.accounts.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, errInvalidCredentials()
		}
		return nil, err
	}

	// 2. Verify password
	if !sec.CheckPasswordHash(password, account.PasswordHash) {
		return nil, errInvalidCredentials()
	}

	// 3. Confirmation gate
	if account.EmailConfirmedAt == nil {
		return nil, errEmailNotConfirmed()
	}

	// 4. Open session
	session, err := service.openSession(ctx, account.Identity())
	if err != nil {
		return nil, err
	}

	service.publish(ctx, Event{Type: EventSignedIn, UserID: account.ID, SessionID: session.ID})

	return session, nil
}

// # Session Inspection

/*
GetSession verifies an access token against the live session store.

A validly signed token whose session has been revoked is rejected.
*/
func (service *Service) GetSession(ctx context.Context, accessToken string) (*Session, error) {

	claims, err := service.tokens.VerifyToken(accessToken)
	if err != nil {
		return nil, errSessionExpired()
	}

	if _, err := service.sessions.Find(ctx, claims.ID); err != nil {
		if apperr.IsNotFound(err) {
			return nil, errSessionExpired()
		}
		return nil, err
	}

	session := &Session{
		ID:          claims.ID,
		Identity:    Identity{ID: claims.Subject, Email: claims.Email},
		AccessToken: accessToken,
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}

	return session, nil
}

// # Token Refresh

/*
Refresh rotates a refresh token: the old session is revoked and a new one opened.

Returns:
  - *Session: The replacement session
  - error: [*AuthError] with CodeSessionExpired when the token is unknown
*/
func (service *Service) Refresh(ctx context.Context, refreshToken string) (*Session, error) {

	record, err := service.sessions.FindByRefreshHash(ctx, sec.HashToken(refreshToken))
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, errSessionExpired()
		}
		return nil, err
	}

	if err := service.sessions.Delete(ctx, record.ID); err != nil {
		return nil, err
	}

	session, err := service.openSession(ctx, Identity{ID: record.UserID, Email: record.Email})
	if err != nil {
		return nil, err
	}

	service.publish(ctx, Event{Type: EventTokenRefreshed, UserID: record.UserID, SessionID: session.ID})

	return session, nil
}

// # Sign Out

// SignOut revokes one session. Unknown sessions are treated as already signed out.
func (service *Service) SignOut(ctx context.Context, sessionID string) error {

	record, err := service.sessions.Find(ctx, sessionID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil
		}
		return err
	}

	if err := service.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}

	service.publish(ctx, Event{Type: EventSignedOut, UserID: record.UserID, SessionID: sessionID})

	return nil
}

// SignOutByRefreshToken revokes the session owning a refresh token.
func (service *Service) SignOutByRefreshToken(ctx context.Context, refreshToken string) error {

	record, err := service.sessions.FindByRefreshHash(ctx, sec.HashToken(refreshToken))
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil
		}
		return err
	}

	return service.SignOut(ctx, record.ID)
}

// SignOutEverywhere revokes every session of a user.
func (service *Service) SignOutEverywhere(ctx context.Context, userID string) error {

	if _, err := service.sessions.DeleteAllForUser(ctx, userID); err != nil {
		return err
	}

	service.publish(ctx, Event{Type: EventSignedOut, UserID: userID})

	return nil
}

// # Account Administration

/*
CreateAccount registers a confirmed account. Used by the user-administration flow.

Returns:
  - Identity: The new principal
  - error: VALIDATION_ERROR for bad input, CONFLICT for a taken email
*/
func (service *Service) CreateAccount(ctx context.Context, email, password string) (Identity, error) {

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return Identity{}, apperr.ValidationError("A valid email is required",
			apperr.FieldError{Field: "email", Message: "must be a valid email address"})
	}
	if len(password) < MinPasswordLength {
		return Identity{}, apperr.ValidationError("Password is too short",
			apperr.FieldError{Field: "password", Message: fmt.Sprintf("must be at least %d characters", MinPasswordLength)})
	}

	hash, err := sec.HashPassword(password)
	if err != nil {
		return Identity{}, apperr.Internal(err)
	}

	confirmedAt := service.now()
	account := &Account{
		ID:               uuid.New(),
		Email:            email,
		PasswordHash:     hash,
		EmailConfirmedAt: &confirmedAt,
		CreatedAt:        confirmedAt,
	}

	if err := service.accounts.Create(ctx, account); err != nil {
		return Identity{}, err
	}

	return account.Identity(), nil
}

// DeleteAccount removes a login and revokes its sessions. User administration
// calls it to undo a CreateAccount whose profile could not be written.
func (service *Service) DeleteAccount(ctx context.Context, id string) error {
	if err := service.SignOutEverywhere(ctx, id); err != nil {
		return fmt.Errorf("identity_delete_account_failed: %w", err)
	}
	if err := service.accounts.Delete(ctx, id); err != nil {
		return fmt.Errorf("identity_delete_account_failed: %w", err)
	}
	return nil
}

// # Event Stream

// Subscribe exposes the auth-state event stream.
func (service *Service) Subscribe(ctx context.Context) (<-chan Event, func() error, error) {
	return service.events.Subscribe(ctx)
}

// # Internals

func (service *Service) openSession(ctx context.Context, identity Identity) (*Session, error) {

	now := service.now()
	sessionID := uuid.New()

	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	record := &SessionRecord{
		ID:          sessionID,
		UserID:      identity.ID,
		Email:       identity.Email,
		RefreshHash: sec.HashToken(refreshToken),
		CreatedAt:   now,
		ExpiresAt:   now.Add(RefreshTokenTTL),
	}
	if err := service.sessions.Create(ctx, record, RefreshTokenTTL); err != nil {
		return nil, err
	}

	accessToken, err := service.tokens.GenerateAccessToken(identity.ID, identity.Email, sessionID, AccessTokenTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &Session{
		ID:               sessionID,
		Identity:         identity,
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresAt:        now.Add(AccessTokenTTL),
		RefreshExpiresAt: record.ExpiresAt,
	}, nil
}

// publish never fails the calling operation; the session change already happened.
func (service *Service) publish(ctx context.Context, event Event) {
	event.At = service.now()
	if err := service.events.Publish(ctx, event); err != nil {
		service.logger.Warn("auth_event_publish_failed",
			slog.String("type", string(event.Type)),
			slog.String("user_id", event.UserID),
			slog.String("error", err.Error()),
		)
	}
}
