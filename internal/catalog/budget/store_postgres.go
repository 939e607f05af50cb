// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package budget

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/gravadora/internal/platform/apperr"
	"github.com/taibuivan/gravadora/internal/platform/database/schema"
	"github.com/taibuivan/gravadora/internal/platform/dberr"
	"github.com/taibuivan/gravadora/internal/platform/postgres"
)

// PostgresRepository implements [Repository] on public.orcamentos.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// selectFrom reads budgets with their project's title.
var selectFrom = fmt.Sprintf(`SELECT %s, p.%s FROM %s o LEFT JOIN %s p ON p.%s = o.%s`,
	schema.Qualified("o", schema.Orcamento.Columns()), schema.Projeto.Titulo,
	schema.Orcamento.Table, schema.Projeto.Table, schema.Projeto.ID, schema.Orcamento.ProjetoID,
)

func scanBudget(row pgx.Row) (*Budget, error) {
	b := &Budget{}
	err := row.Scan(
		&b.ID, &b.ProjectID, &b.Title, &b.Total, &b.Status, &b.Notes,
		&b.CreatedBy, &b.CreatedAt, &b.UpdatedAt, &b.ProjectTitle,
	)
	return b, err
}

func (repository *PostgresRepository) List(ctx context.Context, filter Filter, limit, offset int) ([]*Budget, int, error) {
	t := schema.Orcamento

	var where postgres.Conditions
	if filter.Status != "" {
		where.Add("o."+t.Status+" = ?", filter.Status)
	}
	if filter.ProjectID != "" {
		where.Add("o."+t.ProjetoID+" = ?", filter.ProjectID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		where.Add("o."+t.Titulo+" ILIKE ?", "%"+search+"%")
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s o %s`, t.Table, where.Clause())
	if err := repository.pool.QueryRow(ctx, countQuery, where.Args()...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_budgets")
	}

	query := fmt.Sprintf(`%s %s ORDER BY o.%s DESC LIMIT %s OFFSET %s`,
		selectFrom, where.Clause(), t.CreatedAt, where.Placeholder(limit), where.Placeholder(offset))

	rows, err := repository.pool.Query(ctx, query, where.Args()...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_budgets")
	}
	defer rows.Close()

	budgets := []*Budget{}
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_budget")
		}
		budgets = append(budgets, b)
	}

	return budgets, total, dberr.Wrap(rows.Err(), "list_budgets")
}

func (repository *PostgresRepository) Get(ctx context.Context, id string) (*Budget, error) {
	query := fmt.Sprintf(`%s WHERE o.%s = $1`, selectFrom, schema.Orcamento.ID)

	b, err := scanBudget(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, apperr.NotFound("Budget")
		}
		return nil, dberr.Wrap(err, "get_budget")
	}
	return b, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, b *Budget) error {
	t := schema.Orcamento
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s, %s, %s`,
		t.Table, t.ProjetoID, t.Titulo, t.ValorTotal, t.Status, t.Observacoes, t.CreatedBy,
		t.ID, t.CreatedAt, t.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		b.ProjectID, b.Title, b.Total, b.Status, b.Notes, b.CreatedBy,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)

	return dberr.Wrap(err, "create_budget")
}

// Update leaves created_by untouched and returns it with the row.
func (repository *PostgresRepository) Update(ctx context.Context, b *Budget) error {
	t := schema.Orcamento
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = now()
		WHERE %s = $1
		RETURNING %s, %s, %s`,
		t.Table, t.ProjetoID, t.Titulo, t.ValorTotal, t.Status, t.Observacoes, t.UpdatedAt,
		t.ID,
		t.CreatedBy, t.CreatedAt, t.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		b.ID, b.ProjectID, b.Title, b.Total, b.Status, b.Notes,
	).Scan(&b.CreatedBy, &b.CreatedAt, &b.UpdatedAt)

	if dberr.IsNoRows(err) {
		return apperr.NotFound("Budget")
	}
	return dberr.Wrap(err, "update_budget")
}

func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	t := schema.Orcamento
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.ID)

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_budget")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Budget")
	}
	return nil
}
