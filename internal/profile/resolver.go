// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"context"
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/taibuivan/gravadora/internal/identity"
	"github.com/taibuivan/gravadora/internal/platform/apperr"
	"github.com/taibuivan/gravadora/internal/platform/sec"
)

// resolverCacheSize bounds the number of cached profiles.
const resolverCacheSize = 1024

// Resolver turns an identity into its profile, provisioning one on first sight.
type Resolver struct {
	repository  Repository
	defaultRole sec.Role
	cache       *expirable.LRU[string, Profile]
	logger      *slog.Logger
}

// NewResolver builds a resolver. A non-positive ttl disables caching.
func NewResolver(repository Repository, defaultRole sec.Role, ttl time.Duration, logger *slog.Logger) *Resolver {
	resolver := &Resolver{
		repository:  repository,
		defaultRole: defaultRole,
		logger:      logger,
	}

	if ttl > 0 {
		resolver.cache = expirable.NewLRU[string, Profile](resolverCacheSize, nil, ttl)
	}

	return resolver
}

/*
Resolve returns the profile for an identity.

Flow:
 1. Cached copy, if fresh.
 2. Existing row.
 3. Otherwise insert {id, local part of email, email, default role} and read
    back the stored row, which may have been written by a concurrent caller.

Storage errors are returned as-is; no partial profile is ever produced.
*/
func (resolver *Resolver) Resolve(ctx context.Context, who identity.Identity) (*Profile, error) {

	// 1. Cache
	if resolver.cache != nil {
		if cached, ok := resolver.cache.Get(who.ID); ok {
			return &cached, nil
		}
	}

	// 2. Existing profile
	profile, err := resolver.repository.FindByID(ctx, who.ID)
	if err == nil {
		resolver.remember(profile)
		return profile, nil
	}
	if !apperr.IsNotFound(err) {
		return nil, err
	}

	// 3. Provision
	profile, err = resolver.provision(ctx, who, DefaultName(who.Email), resolver.defaultRole)
	if err != nil {
		return nil, err
	}

	resolver.remember(profile)
	return profile, nil
}

// Invalidate drops a cached profile after it changed.
func (resolver *Resolver) Invalidate(id string) {
	if resolver.cache != nil {
		resolver.cache.Remove(id)
	}
}

func (resolver *Resolver) provision(ctx context.Context, who identity.Identity, name string, role sec.Role) (*Profile, error) {

	created, err := resolver.repository.Insert(ctx, &Profile{
		ID:    who.ID,
		Name:  name,
		Email: who.Email,
		Role:  role,
	})
	if err != nil {
		return nil, err
	}

	if created {
		attributes := []any{
			slog.String("user_id", who.ID),
			slog.String("role", string(role)),
		}
		if role == sec.RoleAdmin {
			resolver.logger.WarnContext(ctx, "profile_provisioned_as_admin", attributes...)
		} else {
			resolver.logger.InfoContext(ctx, "profile_provisioned", attributes...)
		}
	}

	return resolver.repository.FindByID(ctx, who.ID)
}

func (resolver *Resolver) remember(profile *Profile) {
	if resolver.cache != nil {
		resolver.cache.Add(profile.ID, *profile)
	}
}
