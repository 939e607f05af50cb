// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package project

import "context"

// Repository is the persistence contract for projects.
type Repository interface {
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Project, int, error)
	Get(ctx context.Context, id string) (*Project, error)
	Create(ctx context.Context, project *Project) error
	Update(ctx context.Context, project *Project) error
	Delete(ctx context.Context, id string) error
}
