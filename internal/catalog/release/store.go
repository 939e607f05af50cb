// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package release

import "context"

// Repository is the persistence contract for releases.
type Repository interface {
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Release, int, error)
	Get(ctx context.Context, id string) (*Release, error)
	Create(ctx context.Context, release *Release) error
	Update(ctx context.Context, release *Release) error
	Delete(ctx context.Context, id string) error
}
