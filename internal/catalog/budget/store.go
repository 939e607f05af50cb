// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package budget

import "context"

// Repository is the persistence contract for budgets.
type Repository interface {
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Budget, int, error)
	Get(ctx context.Context, id string) (*Budget, error)
	Create(ctx context.Context, budget *Budget) error
	Update(ctx context.Context, budget *Budget) error
	Delete(ctx context.Context, id string) error
}
