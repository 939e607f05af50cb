// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"context"
	"strings"

	"github.com/taibuivan/gravadora/internal/identity"
	"github.com/taibuivan/gravadora/internal/platform/apperr"
	"github.com/taibuivan/gravadora/internal/platform/sec"
)

// Service implements administrative profile use cases.
type Service struct {
	repository Repository
	resolver   *Resolver
}

// NewService constructs a new [Service].
func NewService(repository Repository, resolver *Resolver) *Service {
	return &Service{repository: repository, resolver: resolver}
}

// List returns a filtered page of profiles.
func (service *Service) List(ctx context.Context, filter Filter) ([]*Profile, int, error) {
	return service.repository.List(ctx, filter)
}

// Get returns one profile.
func (service *Service) Get(ctx context.Context, id string) (*Profile, error) {
	return service.repository.FindByID(ctx, id)
}

/*
Provision creates the profile for a freshly created account with an explicit
name and role. An existing profile is returned untouched.
*/
func (service *Service) Provision(ctx context.Context, who identity.Identity, name string, role sec.Role) (*Profile, error) {

	if !role.IsAssignable() {
		return nil, errRoleNotAssignable(role)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultName(who.Email)
	}

	return service.resolver.provision(ctx, who, name, role)
}

/*
Update applies an administrator's edit.

Legacy roles remain readable but can no longer be assigned.
*/
func (service *Service) Update(ctx context.Context, id string, input UpdateInput) (*Profile, error) {

	profile, err := service.repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperr.ValidationError("Name cannot be empty",
				apperr.FieldError{Field: "nome", Message: "must not be empty"})
		}
		profile.Name = name
	}

	if input.Role != nil {
		role, err := sec.ParseRole(*input.Role)
		if err != nil {
			return nil, apperr.ValidationError(err.Error(),
				apperr.FieldError{Field: "role", Message: "unknown role"})
		}
		if !role.IsAssignable() {
			return nil, errRoleNotAssignable(role)
		}
		profile.Role = role
	}

	if input.Avatar != nil {
		if avatar := strings.TrimSpace(*input.Avatar); avatar == "" {
			profile.Avatar = nil
		} else {
			profile.Avatar = &avatar
		}
	}

	if err := service.repository.Update(ctx, profile); err != nil {
		return nil, err
	}

	service.resolver.Invalidate(id)

	return profile, nil
}

func errRoleNotAssignable(role sec.Role) *apperr.AppError {
	return apperr.ValidationError("Role "+string(role)+" is deprecated and cannot be assigned",
		apperr.FieldError{Field: "role", Message: "must be one of " + strings.Join(sec.Strings(), ", ")})
}
