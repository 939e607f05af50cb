// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dashboard

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/gravadora/internal/catalog/artist"
	"github.com/taibuivan/gravadora/internal/catalog/budget"
	"github.com/taibuivan/gravadora/internal/catalog/payment"
	"github.com/taibuivan/gravadora/internal/catalog/release"
	"github.com/taibuivan/gravadora/internal/platform/database/schema"
	"github.com/taibuivan/gravadora/internal/platform/dberr"
	"github.com/taibuivan/gravadora/pkg/date"
)

// PostgresSource implements [Source] with one query per method.
type PostgresSource struct {
	pool *pgxpool.Pool
}

func NewPostgresSource(pool *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

func (source *PostgresSource) count(ctx context.Context, action, query string, args ...any) (int, error) {
	var n int
	if err := source.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, dberr.Wrap(err, action)
	}
	return n, nil
}

func (source *PostgresSource) CountActiveArtists(ctx context.Context) (int, error) {
	t := schema.Artista
	return source.count(ctx, "count_active_artists",
		fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`, t.Table, t.Status), artist.StatusAtivo)
}

func (source *PostgresSource) ProjectSchedules(ctx context.Context) ([]ProjectSchedule, error) {
	t := schema.Projeto
	rows, err := source.pool.Query(ctx, fmt.Sprintf(`SELECT %s, %s FROM %s`, t.Fase, t.DataPrevista, t.Table))
	if err != nil {
		return nil, dberr.Wrap(err, "project_schedules")
	}

	schedules, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (ProjectSchedule, error) {
		var s ProjectSchedule
		err := row.Scan(&s.Phase, &s.DueDate)
		return s, err
	})
	return schedules, dberr.Wrap(err, "project_schedules")
}

func (source *PostgresSource) CountPendingBudgets(ctx context.Context) (int, error) {
	t := schema.Orcamento
	return source.count(ctx, "count_pending_budgets",
		fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`, t.Table, t.Status), budget.StatusPendente)
}

func (source *PostgresSource) CountReleasesBetween(ctx context.Context, from, to date.Date) (int, error) {
	t := schema.Lancamento
	return source.count(ctx, "count_releases_between",
		fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s >= $1 AND %s < $2`, t.Table, t.DataLancamento, t.DataLancamento),
		from, to)
}

func (source *PostgresSource) ApprovedBudgets(ctx context.Context) ([]BudgetBalance, error) {
	o, p := schema.Orcamento, schema.Projeto
	query := fmt.Sprintf(`
		SELECT o.%s, o.%s, pr.%s, o.%s
		FROM %s o LEFT JOIN %s pr ON pr.%s = o.%s
		WHERE o.%s = $1
		ORDER BY o.%s DESC`,
		o.ID, o.Titulo, p.Titulo, o.ValorTotal,
		o.Table, p.Table, p.ID, o.ProjetoID,
		o.Status,
		o.CreatedAt,
	)

	rows, err := source.pool.Query(ctx, query, budget.StatusAprovado)
	if err != nil {
		return nil, dberr.Wrap(err, "approved_budgets")
	}

	balances, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (BudgetBalance, error) {
		var b BudgetBalance
		err := row.Scan(&b.BudgetID, &b.Title, &b.ProjectTitle, &b.Total)
		return b, err
	})
	return balances, dberr.Wrap(err, "approved_budgets")
}

func (source *PostgresSource) PaymentTotals(ctx context.Context, budgetID string) (PaymentTotals, error) {
	t := schema.Pagamento
	query := fmt.Sprintf(`
		SELECT
			COALESCE(SUM(%s) FILTER (WHERE %s = $2), 0),
			COALESCE(SUM(%s) FILTER (WHERE %s = $3), 0)
		FROM %s
		WHERE %s = $1`,
		t.Valor, t.Status,
		t.Valor, t.Status,
		t.Table,
		t.OrcamentoID,
	)

	var totals PaymentTotals
	err := source.pool.QueryRow(ctx, query, budgetID, payment.StatusPago, payment.StatusPendente).
		Scan(&totals.Paid, &totals.Pending)
	if err != nil {
		return PaymentTotals{}, dberr.Wrap(err, "payment_totals")
	}
	return totals, nil
}

func (source *PostgresSource) RecentProjects(ctx context.Context, limit int) ([]ProjectSummary, error) {
	p, a := schema.Projeto, schema.Artista
	query := fmt.Sprintf(`
		SELECT p.%s, p.%s, a.%s, p.%s, p.%s, p.%s
		FROM %s p LEFT JOIN %s a ON a.%s = p.%s
		ORDER BY p.%s DESC
		LIMIT $1`,
		p.ID, p.Titulo, a.Nome, p.Fase, p.DataPrevista, p.UpdatedAt,
		p.Table, a.Table, a.ID, p.ArtistaID,
		p.UpdatedAt,
	)

	rows, err := source.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "recent_projects")
	}

	summaries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (ProjectSummary, error) {
		var s ProjectSummary
		err := row.Scan(&s.ID, &s.Title, &s.ArtistName, &s.Phase, &s.DueDate, &s.UpdatedAt)
		return s, err
	})
	return summaries, dberr.Wrap(err, "recent_projects")
}

func (source *PostgresSource) PendingBudgets(ctx context.Context, limit int) ([]BudgetSummary, error) {
	o, p := schema.Orcamento, schema.Projeto
	query := fmt.Sprintf(`
		SELECT o.%s, o.%s, pr.%s, o.%s, o.%s, o.%s
		FROM %s o LEFT JOIN %s pr ON pr.%s = o.%s
		WHERE o.%s = $1
		ORDER BY o.%s DESC
		LIMIT $2`,
		o.ID, o.Titulo, p.Titulo, o.ValorTotal, o.Status, o.CreatedAt,
		o.Table, p.Table, p.ID, o.ProjetoID,
		o.Status,
		o.CreatedAt,
	)

	rows, err := source.pool.Query(ctx, query, budget.StatusPendente, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "pending_budgets")
	}

	summaries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (BudgetSummary, error) {
		var s BudgetSummary
		err := row.Scan(&s.ID, &s.Title, &s.ProjectTitle, &s.Total, &s.Status, &s.CreatedAt)
		return s, err
	})
	return summaries, dberr.Wrap(err, "pending_budgets")
}

func (source *PostgresSource) UpcomingReleases(ctx context.Context, from date.Date, limit int) ([]ReleaseSummary, error) {
	l, a := schema.Lancamento, schema.Artista
	query := fmt.Sprintf(`
		SELECT l.%s, l.%s, a.%s, l.%s, l.%s
		FROM %s l LEFT JOIN %s a ON a.%s = l.%s
		WHERE l.%s >= $1 AND l.%s = $2
		ORDER BY l.%s ASC
		LIMIT $3`,
		l.ID, l.Titulo, a.Nome, l.Tipo, l.DataLancamento,
		l.Table, a.Table, a.ID, l.ArtistaID,
		l.DataLancamento, l.Status,
		l.DataLancamento,
	)

	rows, err := source.pool.Query(ctx, query, from, release.StatusAgendado, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "upcoming_releases")
	}

	summaries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (ReleaseSummary, error) {
		var s ReleaseSummary
		err := row.Scan(&s.ID, &s.Title, &s.ArtistName, &s.Type, &s.Date)
		return s, err
	})
	return summaries, dberr.Wrap(err, "upcoming_releases")
}
