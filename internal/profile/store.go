// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import "context"

// Repository defines the data access contract for profiles.
type Repository interface {
	// FindByID returns the profile keyed by the identity ID.
	//
	// Returns [apperr.NotFound] when no profile exists yet.
	FindByID(ctx context.Context, id string) (*Profile, error)

	// Insert creates the profile unless a row with the same ID already exists.
	// It reports whether this call created the row.
	Insert(ctx context.Context, profile *Profile) (bool, error)

	// List returns one page of profiles and the total match count.
	List(ctx context.Context, filter Filter) ([]*Profile, int, error)

	// Update writes name, role and avatar. Returns [apperr.NotFound] for unknown IDs.
	Update(ctx context.Context, profile *Profile) error
}
