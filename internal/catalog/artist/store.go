// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist

import "context"

// Repository is the persistence contract for artists.
type Repository interface {
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Artist, int, error)
	Get(ctx context.Context, id string) (*Artist, error)
	Create(ctx context.Context, artist *Artist) error
	Update(ctx context.Context, artist *Artist) error
	Delete(ctx context.Context, id string) error
}
