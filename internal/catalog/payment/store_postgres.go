// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package payment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/gravadora/internal/platform/apperr"
	"github.com/taibuivan/gravadora/internal/platform/database/schema"
	"github.com/taibuivan/gravadora/internal/platform/dberr"
	"github.com/taibuivan/gravadora/internal/platform/postgres"
	"github.com/taibuivan/gravadora/pkg/date"
)

// PostgresRepository implements [Repository] on public.pagamentos.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var columns = schema.List(schema.Pagamento.Columns())

func scanPayment(row pgx.Row) (*Payment, error) {
	p := &Payment{}
	err := row.Scan(
		&p.ID, &p.BudgetID, &p.Description, &p.Amount, &p.Status,
		&p.DueDate, &p.PaidDate, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (repository *PostgresRepository) List(ctx context.Context, filter Filter, limit, offset int) ([]*Payment, int, error) {
	t := schema.Pagamento

	var where postgres.Conditions
	if filter.BudgetID != "" {
		where.Add(t.OrcamentoID+" = ?", filter.BudgetID)
	}
	if filter.Status != "" {
		where.Add(t.Status+" = ?", filter.Status)
	}
	if filter.DueBefore != nil {
		where.Add(fmt.Sprintf("%s = 'pendente' AND %s < ?", t.Status, t.DataVencimento), *filter.DueBefore)
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s %s`, t.Table, where.Clause())
	if err := repository.pool.QueryRow(ctx, countQuery, where.Args()...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_payments")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s %s ORDER BY %s ASC NULLS LAST, %s ASC LIMIT %s OFFSET %s`,
		columns, t.Table, where.Clause(), t.DataVencimento, t.CreatedAt,
		where.Placeholder(limit), where.Placeholder(offset))

	rows, err := repository.pool.Query(ctx, query, where.Args()...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_payments")
	}
	defer rows.Close()

	payments := []*Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_payment")
		}
		payments = append(payments, p)
	}

	return payments, total, dberr.Wrap(rows.Err(), "list_payments")
}

func (repository *PostgresRepository) Get(ctx context.Context, id string) (*Payment, error) {
	t := schema.Pagamento
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, columns, t.Table, t.ID)

	p, err := scanPayment(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, apperr.NotFound("Payment")
		}
		return nil, dberr.Wrap(err, "get_payment")
	}
	return p, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, p *Payment) error {
	t := schema.Pagamento
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s, %s, %s`,
		t.Table, t.OrcamentoID, t.Descricao, t.Valor, t.Status, t.DataVencimento, t.DataPagamento,
		t.ID, t.CreatedAt, t.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		p.BudgetID, p.Description, p.Amount, p.Status, p.DueDate, p.PaidDate,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	return dberr.Wrap(err, "create_payment")
}

func (repository *PostgresRepository) Update(ctx context.Context, p *Payment) error {
	t := schema.Pagamento
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = now()
		WHERE %s = $1
		RETURNING %s, %s`,
		t.Table, t.OrcamentoID, t.Descricao, t.Valor, t.Status, t.DataVencimento, t.DataPagamento, t.UpdatedAt,
		t.ID,
		t.CreatedAt, t.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		p.ID, p.BudgetID, p.Description, p.Amount, p.Status, p.DueDate, p.PaidDate,
	).Scan(&p.CreatedAt, &p.UpdatedAt)

	if dberr.IsNoRows(err) {
		return apperr.NotFound("Payment")
	}
	return dberr.Wrap(err, "update_payment")
}

func (repository *PostgresRepository) SetStatus(ctx context.Context, id string, expected, status Status, paid *date.Date) (*Payment, bool, error) {
	t := schema.Pagamento
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3, %s = $4, %s = now()
		WHERE %s = $1 AND %s = $2
		RETURNING %s`,
		t.Table, t.Status, t.DataPagamento, t.UpdatedAt,
		t.ID, t.Status,
		columns,
	)

	p, err := scanPayment(repository.pool.QueryRow(ctx, query, id, expected, status, paid))
	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, false, nil
		}
		return nil, false, dberr.Wrap(err, "toggle_payment")
	}
	return p, true, nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	t := schema.Pagamento
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.ID)

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_payment")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Payment")
	}
	return nil
}
