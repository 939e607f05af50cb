// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session keeps the signed-in state of one operator.

A [Store] combines the authentication provider's session with the resolved
profile, so callers can ask "who is signed in and what may they do" without
talking to either backend. It follows the provider's state changes: a new
session triggers profile resolution, a cleared session clears the profile.

Lifecycle:

	store := session.New(provider, resolver, session.Options{Logger: logger})
	store.Init(ctx)   // restores an existing session, subscribes to changes
	defer store.Close()

	<-store.Ready()   // loading finished, CurrentProfile is meaningful
*/
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/gravadora/internal/access"
	"github.com/taibuivan/gravadora/internal/identity"
	"github.com/taibuivan/gravadora/internal/platform/constants"
	"github.com/taibuivan/gravadora/internal/platform/sec"
	"github.com/taibuivan/gravadora/internal/profile"
)

// # Contracts

// Provider is the authentication backend as seen by the store.
type Provider interface {
	Session(ctx context.Context) (*identity.Session, error)
	SignInWithPassword(ctx context.Context, email, password string) (*identity.Session, error)
	SignOut(ctx context.Context) error
	OnAuthStateChange(fn func(identity.StateChange)) (unsubscribe func())
}

// ProfileResolver maps an identity to its profile.
type ProfileResolver interface {
	Resolve(ctx context.Context, who identity.Identity) (*profile.Profile, error)
}

// Options tunes a [Store]. Zero values fall back to sensible defaults.
type Options struct {
	Logger *slog.Logger

	// SignOutTimeout bounds the remote half of Logout.
	SignOutTimeout time.Duration

	// OnRedirect is called with the login route after Logout cleared the state.
	OnRedirect func(route string)
}

// # Store

// Store holds the current identity and profile.
type Store struct {
	provider Provider
	resolver ProfileResolver
	logger   *slog.Logger
	timeout  time.Duration
	redirect func(string)

	mu          sync.Mutex
	session     *identity.Session
	profile     *profile.Profile
	loading     bool
	generation  uint64
	unsubscribe func()

	ready     chan struct{}
	readyOnce sync.Once
}

// New creates a store in the loading state.
func New(provider Provider, resolver ProfileResolver, options Options) *Store {
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	timeout := options.SignOutTimeout
	if timeout <= 0 {
		timeout = constants.SignOutTimeout
	}

	return &Store{
		provider: provider,
		resolver: resolver,
		logger:   logger,
		timeout:  timeout,
		redirect: options.OnRedirect,
		loading:  true,
		ready:    make(chan struct{}),
	}
}

/*
Init restores any existing session and starts following provider changes.

Loading ends when the initial restore finished, whatever its outcome. A
failing provider or resolver leaves the store signed out; the error is logged.
ctx also bounds the profile resolutions triggered by later changes.
*/
func (store *Store) Init(ctx context.Context) {

	// 1. Subscribe first so a change racing the restore is not lost
	unsubscribe := store.provider.OnAuthStateChange(func(change identity.StateChange) {
		store.handleChange(ctx, change)
	})

	store.mu.Lock()
	store.unsubscribe = unsubscribe
	store.mu.Unlock()

	// 2. Restore
	current, err := store.provider.Session(ctx)
	if err != nil {
		store.logger.WarnContext(ctx, "session_restore_failed", slog.String("error", err.Error()))
	}

	if current != nil {
		store.establish(ctx, current)
	}

	store.finishLoading()
}

// Close stops following provider changes.
func (store *Store) Close() {
	store.mu.Lock()
	unsubscribe := store.unsubscribe
	store.unsubscribe = nil
	store.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

/*
Login signs in with the provider and resolves the profile.

Provider failures are returned unchanged so callers can branch on
[identity.AuthError] codes. A resolution failure is logged and leaves the
store signed out, but is not returned: the credentials were valid.
*/
func (store *Store) Login(ctx context.Context, email, password string) error {

	current, err := store.provider.SignInWithPassword(ctx, email, password)
	if err != nil {
		return err
	}

	// The provider may already have announced this session
	store.handleChange(ctx, identity.StateChange{Event: identity.EventSignedIn, Session: current})

	return nil
}

/*
Logout clears the local state, then asks the provider to end the session.

The local state is gone before the remote call starts, and the remote call is
bounded by the sign-out timeout. Its failure is logged only. The returned
route is where the caller should go next.
*/
func (store *Store) Logout(ctx context.Context) string {

	// 1. Local first
	store.clear()

	if store.redirect != nil {
		store.redirect(constants.LoginRoute)
	}

	// 2. Remote, bounded
	remoteCtx, cancel := context.WithTimeout(ctx, store.timeout)
	defer cancel()

	if err := store.provider.SignOut(remoteCtx); err != nil {
		store.logger.WarnContext(ctx, "remote_sign_out_failed", slog.String("error", err.Error()))
	}

	return constants.LoginRoute
}

// # Accessors

// CurrentProfile returns a copy of the resolved profile, or nil.
func (store *Store) CurrentProfile() *profile.Profile {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.profile == nil {
		return nil
	}
	copied := *store.profile
	return &copied
}

// CurrentIdentity returns the signed-in identity, or nil.
func (store *Store) CurrentIdentity() *identity.Identity {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.session == nil {
		return nil
	}
	who := store.session.Identity
	return &who
}

// IsAuthenticated reports whether a profile is available.
func (store *Store) IsAuthenticated() bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.profile != nil
}

// Loading reports whether the initial restore is still running.
func (store *Store) Loading() bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.loading
}

// Ready is closed once loading has finished.
func (store *Store) Ready() <-chan struct{} {
	return store.ready
}

// HasPermission applies [access.HasPermission] to the current profile.
func (store *Store) HasPermission(required ...sec.Role) bool {
	return access.HasPermission(store.CurrentProfile(), required...)
}

// # Internals

func (store *Store) handleChange(ctx context.Context, change identity.StateChange) {
	if change.Session == nil {
		store.clear()
		return
	}

	// A change for the session already established needs no new resolution
	store.mu.Lock()
	known := store.session != nil && store.session.ID == change.Session.ID && store.profile != nil
	store.mu.Unlock()

	if known {
		return
	}

	store.establish(ctx, change.Session)
}

/*
establish records the session and resolves its profile.

The generation counter discards a resolution that finishes after the state
moved on, so a late result can never resurrect a cleared session.
*/
func (store *Store) establish(ctx context.Context, current *identity.Session) {

	store.mu.Lock()
	store.generation++
	generation := store.generation
	store.session = current
	store.profile = nil
	store.mu.Unlock()

	resolved, err := store.resolver.Resolve(ctx, current.Identity)
	if err != nil {
		store.logger.ErrorContext(ctx, "profile_resolution_failed",
			slog.String("user_id", current.Identity.ID),
			slog.String("error", err.Error()),
		)
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	if store.generation != generation {
		return
	}

	if err != nil {
		store.session = nil
		return
	}

	store.profile = resolved
}

func (store *Store) clear() {
	store.mu.Lock()
	store.generation++
	store.session = nil
	store.profile = nil
	store.mu.Unlock()
}

func (store *Store) finishLoading() {
	store.mu.Lock()
	store.loading = false
	store.mu.Unlock()

	store.readyOnce.Do(func() { close(store.ready) })
}
