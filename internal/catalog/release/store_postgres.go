// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package release

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

// PostgresRepository implements [Repository] on public.lancamentos.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// selectFrom reads releases with the artist's name.
var selectFrom = fmt.Sprintf(`SELECT %s, a.%s FROM %s l LEFT JOIN %s a ON a.%s = l.%s`,
	schema.Qualified("l", schema.Lancamento.Columns()), schema.Artista.Nome,
	schema.Lancamento.Table, schema.Artista.Table, schema.Artista.ID, schema.Lancamento.ArtistaID,
)

func scanRelease(row pgx.Row) (*Release, error) {
	r := &Release{}
	err := row.Scan(
		&r.ID, &r.Title, &r.ArtistID, &r.ProjectID, &r.Type, &r.Date,
		&r.Platforms, &r.Status, &r.CreatedAt, &r.UpdatedAt, &r.ArtistName,
	)
	return r, err
}

func (repository *PostgresRepository) List(ctx context.Context, filter Filter, limit, offset int) ([]*Release, int, error) {
	t := schema.Lancamento

	var where postgres.Conditions
	if filter.Status != "" {
		where.Add("l."+t.Status+" = ?", filter.Status)
	}
	if filter.ArtistID != "" {
		where.Add("l."+t.ArtistaID+" = ?", filter.ArtistID)
	}
	if filter.From != nil {
		where.Add("l."+t.DataLancamento+" >= ?", *filter.From)
	}
	if filter.To != nil {
		where.Add("l."+t.DataLancamento+" <= ?", *filter.To)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		where.Add("l."+t.Titulo+" ILIKE ?", "%"+search+"%")
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s l %s`, t.Table, where.Clause())
	if err := repository.pool.QueryRow(ctx, countQuery, where.Args()...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_releases")
	}

	query := fmt.Sprintf(`%s %s ORDER BY l.%s ASC, l.%s ASC LIMIT %s OFFSET %s`,
		selectFrom, where.Clause(), t.DataLancamento, t.Titulo, where.Placeholder(limit), where.Placeholder(offset))

	rows, err := repository.pool.Query(ctx, query, where.Args()...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_releases")
	}
	defer rows.Close()

	releases := []*Release{}
	for rows.Next() {
		r, err := scanRelease(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_release")
		}
		releases = append(releases, r)
	}

	return releases, total, dberr.Wrap(rows.Err(), "list_releases")
}

func (repository *PostgresRepository) Get(ctx context.Context, id string) (*Release, error) {
	query := fmt.Sprintf(`%s WHERE l.%s = $1`, selectFrom, schema.Lancamento.ID)

	r, err := scanRelease(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, apperr.NotFound("Release")
		}
		return nil, dberr.Wrap(err, "get_release")
	}
	return r, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, r *Release) error {
	t := schema.Lancamento
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s, %s, %s`,
		t.Table, t.Titulo, t.ArtistaID, t.ProjetoID, t.Tipo, t.DataLancamento, t.Plataformas, t.Status,
		t.ID, t.CreatedAt, t.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		r.Title, r.ArtistID, r.ProjectID, r.Type, r.Date, r.Platforms, r.Status,
	).Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)

	return dberr.Wrap(err, "create_release")
}

func (repository *PostgresRepository) Update(ctx context.Context, r *Release) error {
	t := schema.Lancamento
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = now()
		WHERE %s = $1
		RETURNING %s, %s`,
		t.Table, t.Titulo, t.ArtistaID, t.ProjetoID, t.Tipo, t.DataLancamento, t.Plataformas, t.Status, t.UpdatedAt,
		t.ID,
		t.CreatedAt, t.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		r.ID, r.Title, r.ArtistID, r.ProjectID, r.Type, r.Date, r.Platforms, r.Status,
	).Scan(&r.CreatedAt, &r.UpdatedAt)

	if dberr.IsNoRows(err) {
		return apperr.NotFound("Release")
	}
	return dberr.Wrap(err, "update_release")
}

func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	t := schema.Lancamento
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.ID)

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_release")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Release")
	}
	return nil
}
