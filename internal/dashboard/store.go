// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dashboard

import (
	"context"

	"github.com/taibuivan/gravadora/pkg/date"
)

// Source runs the widget queries. Each method is one independent read.
type Source interface {
	CountActiveArtists(ctx context.Context) (int, error)
	ProjectSchedules(ctx context.Context) ([]ProjectSchedule, error)
	CountPendingBudgets(ctx context.Context) (int, error)
	CountReleasesBetween(ctx context.Context, from, to date.Date) (int, error)
	ApprovedBudgets(ctx context.Context) ([]BudgetBalance, error)
	PaymentTotals(ctx context.Context, budgetID string) (PaymentTotals, error)
	RecentProjects(ctx context.Context, limit int) ([]ProjectSummary, error)
	PendingBudgets(ctx context.Context, limit int) ([]BudgetSummary, error)
	UpcomingReleases(ctx context.Context, from date.Date, limit int) ([]ReleaseSummary, error)
}
