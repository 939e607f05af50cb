// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package document

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

// PostgresRepository implements [Repository] on public.documentos.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var columns = schema.List(schema.Documento.Columns())

func scanDocument(row pgx.Row) (*Document, error) {
	d := &Document{}
	err := row.Scan(
		&d.ID, &d.Title, &d.ProjectID, &d.ArtistID, &d.StorageKey,
		&d.ContentType, &d.Size, &d.UploadedBy, &d.CreatedAt,
	)
	return d, err
}

func (repository *PostgresRepository) List(ctx context.Context, filter Filter, limit, offset int) ([]*Document, int, error) {
	t := schema.Documento

	var where postgres.Conditions
	if filter.ProjectID != "" {
		where.Add(t.ProjetoID+" = ?", filter.ProjectID)
	}
	if filter.ArtistID != "" {
		where.Add(t.ArtistaID+" = ?", filter.ArtistID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		where.Add(t.Titulo+" ILIKE ?", "%"+search+"%")
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s %s`, t.Table, where.Clause())
	if err := repository.pool.QueryRow(ctx, countQuery, where.Args()...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_documents")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s %s ORDER BY %s DESC LIMIT %s OFFSET %s`,
		columns, t.Table, where.Clause(), t.CreatedAt, where.Placeholder(limit), where.Placeholder(offset))

	rows, err := repository.pool.Query(ctx, query, where.Args()...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_documents")
	}
	defer rows.Close()

	documents := []*Document{}
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_document")
		}
		documents = append(documents, d)
	}

	return documents, total, dberr.Wrap(rows.Err(), "list_documents")
}

func (repository *PostgresRepository) Get(ctx context.Context, id string) (*Document, error) {
	t := schema.Documento
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, columns, t.Table, t.ID)

	d, err := scanDocument(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, apperr.NotFound("Document")
		}
		return nil, dberr.Wrap(err, "get_document")
	}
	return d, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, d *Document) error {
	t := schema.Documento
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s, %s`,
		t.Table, t.Titulo, t.ProjetoID, t.ArtistaID, t.StorageKey, t.ContentType, t.Tamanho, t.UploadedBy,
		t.ID, t.CreatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		d.Title, d.ProjectID, d.ArtistID, d.StorageKey, d.ContentType, d.Size, d.UploadedBy,
	).Scan(&d.ID, &d.CreatedAt)

	return dberr.Wrap(err, "create_document")
}

func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	t := schema.Documento
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.ID)

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_document")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Document")
	}
	return nil
}
