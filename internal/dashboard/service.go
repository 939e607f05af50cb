// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/gravadora/pkg/date"
)

// DefaultFanout bounds the per-budget payment queries when no limit is configured.
const DefaultFanout = 8

// FailureRecorder counts widgets that could not be loaded.
type FailureRecorder interface {
	WidgetFailed(widget string)
}

type nopRecorder struct{}

func (nopRecorder) WidgetFailed(string) {}

type Service struct {
	source   Source
	recorder FailureRecorder
	location *time.Location
	fanout   int
	logger   *slog.Logger
	now      func() time.Time
}

// NewService builds the aggregation service. Today is computed in location.
func NewService(source Source, recorder FailureRecorder, location *time.Location, fanout int, logger *slog.Logger) *Service {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if fanout <= 0 {
		fanout = DefaultFanout
	}
	if location == nil {
		location = time.UTC
	}

	return &Service{
		source:   source,
		recorder: recorder,
		location: location,
		fanout:   fanout,
		logger:   logger,
		now:      time.Now,
	}
}

func (service *Service) today() date.Date {
	return date.Of(service.now().In(service.location))
}

/*
Dashboard builds the home screen snapshot.

Every widget is queried concurrently. A failing widget keeps its zero value
and is named in [Snapshot.Degraded]; the others are still returned. When ctx
ends before the widgets finish, no snapshot is returned.
*/
func (service *Service) Dashboard(ctx context.Context) (*Snapshot, error) {
	today := service.today()

	snapshot := &Snapshot{
		Financial:         FinancialSummary{Budgets: []BudgetBalance{}},
		RecentProjects:    []ProjectSummary{},
		PendingBudgetList: []BudgetSummary{},
		UpcomingReleases:  []ReleaseSummary{},
		Degraded:          []string{},
		Today:             today,
		GeneratedAt:       service.now(),
	}

	var (
		group errgroup.Group
		mutex sync.Mutex
	)

	// Each widget writes only its own field, and only on success.
	widget := func(name string, load func() error) {
		group.Go(func() error {
			if err := load(); err != nil && ctx.Err() == nil {
				service.logger.ErrorContext(ctx, "dashboard_widget_failed",
					slog.String("widget", name),
					slog.Any("error", err),
				)
				service.recorder.WidgetFailed(name)

				mutex.Lock()
				snapshot.Degraded = append(snapshot.Degraded, name)
				mutex.Unlock()
			}
			return nil
		})
	}

	widget(WidgetActiveArtists, func() error {
		count, err := service.source.CountActiveArtists(ctx)
		if err == nil {
			snapshot.ActiveArtists = count
		}
		return err
	})

	widget(WidgetProjects, func() error {
		schedules, err := service.source.ProjectSchedules(ctx)
		if err == nil {
			snapshot.Projects = Count(schedules, today)
		}
		return err
	})

	widget(WidgetPendingBudgets, func() error {
		count, err := service.source.CountPendingBudgets(ctx)
		if err == nil {
			snapshot.PendingBudgets = count
		}
		return err
	})

	widget(WidgetReleasesThisMonth, func() error {
		first := today.FirstOfMonth()
		next := date.New(first.Year, first.Month+1, 1)
		count, err := service.source.CountReleasesBetween(ctx, first, next)
		if err == nil {
			snapshot.ReleasesThisMonth = count
		}
		return err
	})

	widget(WidgetFinancial, func() error {
		summary, err := service.Financial(ctx)
		if err == nil {
			snapshot.Financial = *summary
		}
		return err
	})

	widget(WidgetRecentProjects, func() error {
		projects, err := service.source.RecentProjects(ctx, ListSize)
		if err != nil {
			return err
		}
		for i := range projects {
			projects[i].Late = Classify(projects[i].Phase, projects[i].DueDate, today) == ClassLate
		}
		if projects != nil {
			snapshot.RecentProjects = projects
		}
		return nil
	})

	widget(WidgetPendingBudgetList, func() error {
		budgets, err := service.source.PendingBudgets(ctx, ListSize)
		if err == nil && budgets != nil {
			snapshot.PendingBudgetList = budgets
		}
		return err
	})

	widget(WidgetUpcomingReleases, func() error {
		releases, err := service.source.UpcomingReleases(ctx, today, ListSize)
		if err == nil && releases != nil {
			snapshot.UpcomingReleases = releases
		}
		return err
	})

	_ = group.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slices.Sort(snapshot.Degraded)

	if len(snapshot.Degraded) > 0 {
		service.logger.WarnContext(ctx, "dashboard_degraded",
			slog.Any("widgets", snapshot.Degraded),
		)
	}
	return snapshot, nil
}

/*
Financial totals approved budgets and splits each one's payments by status.

Payment sums are fetched per budget with at most fanout queries in flight.
Any failed query fails the whole summary.
*/
func (service *Service) Financial(ctx context.Context) (*FinancialSummary, error) {
	budgets, err := service.source.ApprovedBudgets(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard_approved_budgets_failed: %w", err)
	}
	if budgets == nil {
		budgets = []BudgetBalance{}
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(service.fanout)

	for i := range budgets {
		group.Go(func() error {
			totals, err := service.source.PaymentTotals(groupCtx, budgets[i].BudgetID)
			if err != nil {
				return fmt.Errorf("dashboard_payment_totals_failed: %w", err)
			}
			budgets[i].Paid = totals.Paid
			budgets[i].Pending = totals.Pending
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	summary := &FinancialSummary{Budgets: budgets}
	for _, balance := range budgets {
		summary.ApprovedTotal += balance.Total
		summary.Paid += balance.Paid
		summary.Pending += balance.Pending
	}
	return summary, nil
}
