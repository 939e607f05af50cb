// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist

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

// PostgresRepository implements [Repository] on public.artistas.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var columns = schema.List(schema.Artista.Columns())

func scanArtist(row pgx.Row) (*Artist, error) {
	a := &Artist{}
	err := row.Scan(
		&a.ID, &a.Name, &a.StageName, &a.Genre, &a.Email, &a.Phone,
		&a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

func (repository *PostgresRepository) List(ctx context.Context, filter Filter, limit, offset int) ([]*Artist, int, error) {
	t := schema.Artista

	var where postgres.Conditions
	if filter.Status != "" {
		where.Add(t.Status+" = ?", filter.Status)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		term := "%" + search + "%"
		where.Add(fmt.Sprintf("(%s ILIKE ? OR %s ILIKE ?)", t.Nome, t.NomeArtistico), term, term)
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s %s`, t.Table, where.Clause())
	if err := repository.pool.QueryRow(ctx, countQuery, where.Args()...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_artists")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s %s ORDER BY %s ASC LIMIT %s OFFSET %s`,
		columns, t.Table, where.Clause(), t.Nome, where.Placeholder(limit), where.Placeholder(offset))

	rows, err := repository.pool.Query(ctx, query, where.Args()...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_artists")
	}
	defer rows.Close()

	artists := []*Artist{}
	for rows.Next() {
		a, err := scanArtist(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_artist")
		}
		artists = append(artists, a)
	}

	return artists, total, dberr.Wrap(rows.Err(), "list_artists")
}

func (repository *PostgresRepository) Get(ctx context.Context, id string) (*Artist, error) {
	t := schema.Artista
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, columns, t.Table, t.ID)

	a, err := scanArtist(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, apperr.NotFound("Artist")
		}
		return nil, dberr.Wrap(err, "get_artist")
	}
	return a, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, a *Artist) error {
	t := schema.Artista
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s, %s, %s`,
		t.Table, t.Nome, t.NomeArtistico, t.Genero, t.Email, t.Telefone, t.Status, t.Observacoes,
		t.ID, t.CreatedAt, t.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		a.Name, a.StageName, a.Genre, a.Email, a.Phone, a.Status, a.Notes,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)

	return dberr.Wrap(err, "create_artist")
}

func (repository *PostgresRepository) Update(ctx context.Context, a *Artist) error {
	t := schema.Artista
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = now()
		WHERE %s = $1
		RETURNING %s, %s`,
		t.Table, t.Nome, t.NomeArtistico, t.Genero, t.Email, t.Telefone, t.Status, t.Observacoes, t.UpdatedAt,
		t.ID,
		t.CreatedAt, t.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		a.ID, a.Name, a.StageName, a.Genre, a.Email, a.Phone, a.Status, a.Notes,
	).Scan(&a.CreatedAt, &a.UpdatedAt)

	if dberr.IsNoRows(err) {
		return apperr.NotFound("Artist")
	}
	return dberr.Wrap(err, "update_artist")
}

func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	t := schema.Artista
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.ID)

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_artist")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Artist")
	}
	return nil
}
