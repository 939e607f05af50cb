// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package identity

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// Client holds one caller's session in memory and reports its transitions.
//
// It is the long-lived counterpart of [Service] for processes that act on
// behalf of a single operator, such as the console. Sessions revoked elsewhere
// are picked up from the event bus once [Client.Start] has been called.
type Client struct {
	service *Service
	logger  *slog.Logger

	mu        sync.Mutex
	current   *Session
	listeners map[uint64]func(StateChange)
	nextID    uint64
	closeBus  func() error
}

// NewClient creates a client with no session.
func NewClient(service *Service, logger *slog.Logger) *Client {
	return &Client{
		service:   service,
		logger:    logger,
		listeners: make(map[uint64]func(StateChange)),
	}
}

// Start subscribes to the auth-state stream until ctx is done or Close is called.
func (client *Client) Start(ctx context.Context) error {

	events, closeBus, err := client.service.Subscribe(ctx)
	if err != nil {
		return err
	}

	client.mu.Lock()
	client.closeBus = closeBus
	client.mu.Unlock()

	go func() {
		for event := range events {
			client.handleEvent(event)
		}
	}()

	return nil
}

// Close stops the event subscription.
func (client *Client) Close() error {
	client.mu.Lock()
	closeBus := client.closeBus
	client.closeBus = nil
	client.mu.Unlock()

	if closeBus == nil {
		return nil
	}
	return closeBus()
}

/*
Session returns the current session, refreshing it when the access token is stale.

Returns (nil, nil) when nobody is signed in or the session can no longer be
renewed. Transport and storage failures are returned as errors.
*/
func (client *Client) Session(ctx context.Context) (*Session, error) {

	current := client.snapshot()
	if current == nil {
		return nil, nil
	}

	// 1. Still valid
	if _, err := client.service.GetSession(ctx, current.AccessToken); err == nil {
		return current, nil
	} else if !isSessionExpired(err) {
		return nil, err
	}

	// 2. Try rotation
	refreshed, err := client.service.Refresh(ctx, current.RefreshToken)
	if err != nil {
		if !isSessionExpired(err) {
			return nil, err
		}
		if client.replace(current, nil) {
			client.notify(StateChange{Event: EventSignedOut})
		}
		return nil, nil
	}

	if client.replace(current, refreshed) {
		client.notify(StateChange{Event: EventTokenRefreshed, Session: refreshed})
	}

	return refreshed, nil
}

// SignInWithPassword opens a session and makes it current.
func (client *Client) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {

	session, err := client.service.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}

	client.mu.Lock()
	client.current = session
	client.mu.Unlock()

	client.notify(StateChange{Event: EventSignedIn, Session: session})

	return session, nil
}

/*
SignOut forgets the session locally, then revokes it on the provider.

The local state is cleared even when the remote call fails or ctx expires.
*/
func (client *Client) SignOut(ctx context.Context) error {

	client.mu.Lock()
	current := client.current
	client.current = nil
	client.mu.Unlock()

	if current == nil {
		return nil
	}

	client.notify(StateChange{Event: EventSignedOut})

	return client.service.SignOut(ctx, current.ID)
}

// OnAuthStateChange registers fn for every transition and returns its unsubscribe function.
func (client *Client) OnAuthStateChange(fn func(StateChange)) func() {
	client.mu.Lock()
	id := client.nextID
	client.nextID++
	client.listeners[id] = fn
	client.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			client.mu.Lock()
			delete(client.listeners, id)
			client.mu.Unlock()
		})
	}
}

// # Internals

func (client *Client) handleEvent(event Event) {
	if event.Type != EventSignedOut {
		return
	}

	client.mu.Lock()
	current := client.current
	revoked := current != nil && (event.SessionID == current.ID ||
		(event.SessionID == "" && event.UserID == current.Identity.ID))
	if revoked {
		client.current = nil
	}
	client.mu.Unlock()

	if revoked {
		client.logger.Info("session_revoked_remotely", slog.String("user_id", event.UserID))
		client.notify(StateChange{Event: EventSignedOut})
	}
}

func (client *Client) snapshot() *Session {
	client.mu.Lock()
	defer client.mu.Unlock()
	return client.current
}

// replace swaps the current session only if it is still the expected one.
func (client *Client) replace(expected, next *Session) bool {
	client.mu.Lock()
	defer client.mu.Unlock()
	if client.current != expected {
		return false
	}
	client.current = next
	return true
}

// notify runs listeners outside the lock so they may call back into the client.
func (client *Client) notify(change StateChange) {
	client.mu.Lock()
	listeners := make([]func(StateChange), 0, len(client.listeners))
	for _, fn := range client.listeners {
		listeners = append(listeners, fn)
	}
	client.mu.Unlock()

	for _, fn := range listeners {
		fn(change)
	}
}

func isSessionExpired(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr) && authErr.Code == CodeSessionExpired
}
