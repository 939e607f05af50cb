// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dashboard_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/gravadora/internal/catalog/project"
	"github.com/taibuivan/gravadora/internal/dashboard"
	"github.com/taibuivan/gravadora/pkg/date"
	"github.com/taibuivan/gravadora/pkg/pointer"
)

type fakeSource struct {
	artists   int
	schedules []dashboard.ProjectSchedule
	pending   int
	releases  int
	budgets   []dashboard.BudgetBalance
	totals    map[string]dashboard.PaymentTotals
	recent    []dashboard.ProjectSummary

	// fail makes the named method return an error.
	fail map[string]error

	releaseFrom, releaseTo date.Date

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func (f *fakeSource) err(ctx context.Context, method string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return f.fail[method]
}

func (f *fakeSource) CountActiveArtists(ctx context.Context) (int, error) {
	return f.artists, f.err(ctx, "CountActiveArtists")
}

func (f *fakeSource) ProjectSchedules(ctx context.Context) ([]dashboard.ProjectSchedule, error) {
	return f.schedules, f.err(ctx, "ProjectSchedules")
}

func (f *fakeSource) CountPendingBudgets(ctx context.Context) (int, error) {
	return f.pending, f.err(ctx, "CountPendingBudgets")
}

func (f *fakeSource) CountReleasesBetween(ctx context.Context, from, to date.Date) (int, error) {
	f.releaseFrom, f.releaseTo = from, to
	return f.releases, f.err(ctx, "CountReleasesBetween")
}

func (f *fakeSource) ApprovedBudgets(ctx context.Context) ([]dashboard.BudgetBalance, error) {
	if err := f.err(ctx, "ApprovedBudgets"); err != nil {
		return nil, err
	}
	return append([]dashboard.BudgetBalance(nil), f.budgets...), nil
}

func (f *fakeSource) PaymentTotals(ctx context.Context, budgetID string) (dashboard.PaymentTotals, error) {
	current := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		seen := f.maxInFlight.Load()
		if current <= seen || f.maxInFlight.CompareAndSwap(seen, current) {
			break
		}
	}
	time.Sleep(2 * time.Millisecond)

	return f.totals[budgetID], f.err(ctx, "PaymentTotals")
}

func (f *fakeSource) RecentProjects(ctx context.Context, limit int) ([]dashboard.ProjectSummary, error) {
	return f.recent, f.err(ctx, "RecentProjects")
}

func (f *fakeSource) PendingBudgets(ctx context.Context, limit int) ([]dashboard.BudgetSummary, error) {
	return nil, f.err(ctx, "PendingBudgets")
}

func (f *fakeSource) UpcomingReleases(ctx context.Context, from date.Date, limit int) ([]dashboard.ReleaseSummary, error) {
	return nil, f.err(ctx, "UpcomingReleases")
}

type recorder struct {
	mutex   sync.Mutex
	widgets []string
}

func (r *recorder) WidgetFailed(widget string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.widgets = append(r.widgets, widget)
}

func saoPaulo(t *testing.T) *time.Location {
	t.Helper()
	location, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	return location
}

func newService(t *testing.T, source dashboard.Source, failures dashboard.FailureRecorder, fanout int, now time.Time) *dashboard.Service {
	t.Helper()
	service := dashboard.NewService(source, failures, saoPaulo(t), fanout,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	service.SetClock(func() time.Time { return now })
	return service
}

/*
TestClassify covers null dates, finished phases and day granularity.
*/
func TestClassify(t *testing.T) {
	today := date.New(2026, time.May, 10)
	yesterday := today.AddDays(-1)
	longAgo := date.New(2025, time.January, 1)

	tests := []struct {
		name  string
		phase project.Phase
		due   *date.Date
		want  dashboard.Class
	}{
		{"no_due_date", project.PhaseGravacao, nil, dashboard.ClassInProgress},
		{"due_yesterday", project.PhaseMixagem, &yesterday, dashboard.ClassLate},
		{"due_today", project.PhaseMixagem, &today, dashboard.ClassInProgress},
		{"finished_past_due", project.PhaseFinalizado, &longAgo, dashboard.ClassFinished},
		{"released_no_date", project.PhaseLancado, nil, dashboard.ClassFinished},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dashboard.Classify(tt.phase, tt.due, today))
		})
	}
}

/*
TestDashboard_Aggregates fills every widget and evaluates today in the configured zone.
*/
func TestDashboard_Aggregates(t *testing.T) {
	// 01:00 UTC on the 10th is still the 9th in São Paulo
	now := time.Date(2026, time.May, 10, 1, 0, 0, 0, time.UTC)
	ninth := date.New(2026, time.May, 9)
	eighth := date.New(2026, time.May, 8)

	source := &fakeSource{
		artists: 4,
		schedules: []dashboard.ProjectSchedule{
			{Phase: project.PhaseGravacao, DueDate: &ninth},
			{Phase: project.PhaseMixagem, DueDate: &eighth},
			{Phase: project.PhasePreProducao},
			{Phase: project.PhaseLancado, DueDate: &eighth},
		},
		pending:  2,
		releases: 3,
		budgets: []dashboard.BudgetBalance{
			{BudgetID: "b1", Title: "Estúdio", Total: 1000},
			{BudgetID: "b2", Title: "Mix", Total: 500},
		},
		totals: map[string]dashboard.PaymentTotals{
			"b1": {Paid: 400, Pending: 600},
			"b2": {Pending: 250},
		},
		recent: []dashboard.ProjectSummary{
			{ID: "p1", Title: "Atrasado", Phase: project.PhaseMixagem, DueDate: &eighth},
			{ID: "p2", Title: "Em dia", Phase: project.PhaseGravacao, DueDate: &ninth},
		},
	}
	failures := &recorder{}

	snapshot, err := newService(t, source, failures, 2, now).Dashboard(context.Background())
	require.NoError(t, err)

	// 1. Counters
	assert.Equal(t, ninth, snapshot.Today)
	assert.Equal(t, 4, snapshot.ActiveArtists)
	assert.Equal(t, 2, snapshot.PendingBudgets)
	assert.Equal(t, 3, snapshot.ReleasesThisMonth)
	assert.Equal(t, dashboard.ProjectCounts{Total: 4, InProgress: 3, Finished: 1, Late: 1}, snapshot.Projects)

	// 2. Month window is [first, first of next month)
	assert.Equal(t, date.New(2026, time.May, 1), source.releaseFrom)
	assert.Equal(t, date.New(2026, time.June, 1), source.releaseTo)

	// 3. Financial summary
	assert.InDelta(t, 1500, snapshot.Financial.ApprovedTotal, 0.001)
	assert.InDelta(t, 400, snapshot.Financial.Paid, 0.001)
	assert.InDelta(t, 850, snapshot.Financial.Pending, 0.001)

	// 4. Recent projects carry the late flag
	require.Len(t, snapshot.RecentProjects, 2)
	assert.True(t, snapshot.RecentProjects[0].Late)
	assert.False(t, snapshot.RecentProjects[1].Late)

	// 5. Nothing degraded, empty lists stay non-nil
	assert.Empty(t, snapshot.Degraded)
	assert.Empty(t, failures.widgets)
	assert.NotNil(t, snapshot.PendingBudgetList)
	assert.NotNil(t, snapshot.UpcomingReleases)
}

/*
TestDashboard_FailingWidget leaves the other widgets populated and the failed one zero-valued.
*/
func TestDashboard_FailingWidget(t *testing.T) {
	source := &fakeSource{
		artists:  7,
		pending:  3,
		releases: 1,
		fail: map[string]error{
			"CountPendingBudgets": errors.New("relation does not exist"),
			"PaymentTotals":       errors.New("connection reset"),
		},
		budgets: []dashboard.BudgetBalance{{BudgetID: "b1", Total: 100}},
	}
	failures := &recorder{}

	snapshot, err := newService(t, source, failures, 0, time.Now()).Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 7, snapshot.ActiveArtists)
	assert.Equal(t, 1, snapshot.ReleasesThisMonth)
	assert.Zero(t, snapshot.PendingBudgets)
	assert.Zero(t, snapshot.Financial.ApprovedTotal)
	assert.Empty(t, snapshot.Financial.Budgets)

	assert.Equal(t, []string{dashboard.WidgetFinancial, dashboard.WidgetPendingBudgets}, snapshot.Degraded)
	assert.ElementsMatch(t, snapshot.Degraded, failures.widgets)
}

/*
TestDashboard_Cancelled returns the context error and records nothing.
*/
func TestDashboard_Cancelled(t *testing.T) {
	failures := &recorder{}
	service := newService(t, &fakeSource{}, failures, 0, time.Now())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	snapshot, err := service.Dashboard(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, snapshot)
	assert.Empty(t, failures.widgets)
}

/*
TestFinancial_FanoutLimit never runs more payment queries at once than configured.
*/
func TestFinancial_FanoutLimit(t *testing.T) {
	source := &fakeSource{totals: map[string]dashboard.PaymentTotals{}}
	for i := range 20 {
		id := fmt.Sprintf("b%d", i)
		source.budgets = append(source.budgets, dashboard.BudgetBalance{BudgetID: id, Total: 10})
		source.totals[id] = dashboard.PaymentTotals{Paid: 1, Pending: 2}
	}

	summary, err := newService(t, source, nil, 3, time.Now()).Financial(context.Background())
	require.NoError(t, err)

	assert.LessOrEqual(t, source.maxInFlight.Load(), int32(3))
	assert.Len(t, summary.Budgets, 20)
	assert.InDelta(t, 200, summary.ApprovedTotal, 0.001)
	assert.InDelta(t, 20, summary.Paid, 0.001)
	assert.InDelta(t, 40, summary.Pending, 0.001)
}

/*
TestHTTP_Financial renders the summary and maps a failed query to an error envelope.
*/
func TestHTTP_Financial(t *testing.T) {
	source := &fakeSource{budgets: []dashboard.BudgetBalance{{BudgetID: "b1", Title: "Capa", ProjectTitle: pointer.To("Disco"), Total: 80}}}
	handler := dashboard.NewHandler(newService(t, source, nil, 0, time.Now()))

	// 1. Success
	recorder := httptest.NewRecorder()
	handler.GetFinancial(recorder, httptest.NewRequest(http.MethodGet, "/financeiro", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"total_aprovado":80`)
	assert.Contains(t, recorder.Body.String(), `"projeto_titulo":"Disco"`)

	// 2. Failure
	source.fail = map[string]error{"ApprovedBudgets": errors.New("timeout")}
	recorder = httptest.NewRecorder()
	handler.GetFinancial(recorder, httptest.NewRequest(http.MethodGet, "/financeiro", nil))
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}
