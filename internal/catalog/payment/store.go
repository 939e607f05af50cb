// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package payment

import (
	"context"

	"github.com/taibuivan/gravadora/pkg/date"
)

// Repository is the persistence contract for payments.
type Repository interface {
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Payment, int, error)
	Get(ctx context.Context, id string) (*Payment, error)
	Create(ctx context.Context, payment *Payment) error
	Update(ctx context.Context, payment *Payment) error
	Delete(ctx context.Context, id string) error

	// SetStatus writes status and paid date only if the row still has the
	// expected status. It reports false when the row changed underneath.
	SetStatus(ctx context.Context, id string, expected, status Status, paid *date.Date) (*Payment, bool, error)
}
