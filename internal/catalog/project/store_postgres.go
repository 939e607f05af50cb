// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package project

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

// PostgresRepository implements [Repository] on public.projetos.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// selectFrom reads projects with the owning artist's name.
var selectFrom = fmt.Sprintf(`SELECT %s, a.%s FROM %s p LEFT JOIN %s a ON a.%s = p.%s`,
	schema.Qualified("p", schema.Projeto.Columns()), schema.Artista.Nome,
	schema.Projeto.Table, schema.Artista.Table, schema.Artista.ID, schema.Projeto.ArtistaID,
)

func scanProject(row pgx.Row) (*Project, error) {
	p := &Project{}
	err := row.Scan(
		&p.ID, &p.Title, &p.ArtistID, &p.Phase, &p.StartDate, &p.DueDate,
		&p.Description, &p.CreatedAt, &p.UpdatedAt, &p.ArtistName,
	)
	return p, err
}

func (repository *PostgresRepository) List(ctx context.Context, filter Filter, limit, offset int) ([]*Project, int, error) {
	t := schema.Projeto

	var where postgres.Conditions
	if len(filter.Phases) > 0 {
		phases := make([]string, len(filter.Phases))
		for i, phase := range filter.Phases {
			phases[i] = string(phase)
		}
		where.Add("p."+t.Fase+" = ANY(?)", phases)
	}
	if filter.ArtistID != "" {
		where.Add("p."+t.ArtistaID+" = ?", filter.ArtistID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		where.Add("p."+t.Titulo+" ILIKE ?", "%"+search+"%")
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s p %s`, t.Table, where.Clause())
	if err := repository.pool.QueryRow(ctx, countQuery, where.Args()...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_projects")
	}

	query := fmt.Sprintf(`%s %s ORDER BY p.%s DESC LIMIT %s OFFSET %s`,
		selectFrom, where.Clause(), t.UpdatedAt, where.Placeholder(limit), where.Placeholder(offset))

	rows, err := repository.pool.Query(ctx, query, where.Args()...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_projects")
	}
	defer rows.Close()

	projects := []*Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_project")
		}
		projects = append(projects, p)
	}

	return projects, total, dberr.Wrap(rows.Err(), "list_projects")
}

func (repository *PostgresRepository) Get(ctx context.Context, id string) (*Project, error) {
	query := fmt.Sprintf(`%s WHERE p.%s = $1`, selectFrom, schema.Projeto.ID)

	p, err := scanProject(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, apperr.NotFound("Project")
		}
		return nil, dberr.Wrap(err, "get_project")
	}
	return p, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, p *Project) error {
	t := schema.Projeto
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s, %s, %s`,
		t.Table, t.Titulo, t.ArtistaID, t.Fase, t.DataInicio, t.DataPrevista, t.Descricao,
		t.ID, t.CreatedAt, t.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		p.Title, p.ArtistID, p.Phase, p.StartDate, p.DueDate, p.Description,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	return dberr.Wrap(err, "create_project")
}

func (repository *PostgresRepository) Update(ctx context.Context, p *Project) error {
	t := schema.Projeto
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = now()
		WHERE %s = $1
		RETURNING %s, %s`,
		t.Table, t.Titulo, t.ArtistaID, t.Fase, t.DataInicio, t.DataPrevista, t.Descricao, t.UpdatedAt,
		t.ID,
		t.CreatedAt, t.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		p.ID, p.Title, p.ArtistID, p.Phase, p.StartDate, p.DueDate, p.Description,
	).Scan(&p.CreatedAt, &p.UpdatedAt)

	if dberr.IsNoRows(err) {
		return apperr.NotFound("Project")
	}
	return dberr.Wrap(err, "update_project")
}

func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	t := schema.Projeto
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.ID)

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_project")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Project")
	}
	return nil
}
