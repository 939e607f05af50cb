// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/gravadora/internal/platform/apperr"
	"github.com/taibuivan/gravadora/internal/platform/dberr"
	"github.com/taibuivan/gravadora/internal/platform/postgres"
)

// PostgresRepository implements [Repository] on the profiles table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of the Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const profileColumns = `id, nome, email, role, avatar_url, created_at, updated_at`

func scanProfile(row pgx.Row) (*Profile, error) {
	profile := &Profile{}
	err := row.Scan(
		&profile.ID,
		&profile.Name,
		&profile.Email,
		&profile.Role,
		&profile.Avatar,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	return profile, err
}

// FindByID retrieves a profile by identity ID.
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Profile, error) {
	const query = `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`

	profile, err := scanProfile(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, apperr.NotFound("Profile")
		}
		return nil, dberr.Wrap(err, "find_profile")
	}

	return profile, nil
}

/*
Insert provisions a profile row.

A concurrent insert for the same ID is absorbed by ON CONFLICT; the caller
then reads back whichever row won.
*/
func (repository *PostgresRepository) Insert(ctx context.Context, profile *Profile) (bool, error) {
	const query = `
		INSERT INTO profiles (id, nome, email, role, avatar_url)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING`

	tag, err := repository.pool.Exec(ctx, query,
		profile.ID,
		profile.Name,
		profile.Email,
		profile.Role,
		profile.Avatar,
	)
	if err != nil {
		return false, dberr.Wrap(err, "insert_profile")
	}

	return tag.RowsAffected() == 1, nil
}

// List returns a filtered page of profiles ordered by name.
func (repository *PostgresRepository) List(ctx context.Context, filter Filter) ([]*Profile, int, error) {

	var where postgres.Conditions
	if filter.Role != "" {
		where.Add("role = ?", filter.Role)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		where.Add("(nome ILIKE ? OR email ILIKE ?)", "%"+search+"%", "%"+search+"%")
	}

	var total int
	if err := repository.pool.QueryRow(ctx, `SELECT COUNT(*) FROM profiles `+where.Clause(), where.Args()...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_profiles")
	}

	query := fmt.Sprintf(`SELECT %s FROM profiles %s ORDER BY nome ASC LIMIT %s OFFSET %s`,
		profileColumns, where.Clause(), where.Placeholder(filter.Limit), where.Placeholder(filter.Offset))

	rows, err := repository.pool.Query(ctx, query, where.Args()...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_profiles")
	}
	defer rows.Close()

	var profiles []*Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_profile")
		}
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_profiles")
	}

	return profiles, total, nil
}

// Update writes the mutable fields and refreshes UpdatedAt from the database clock.
func (repository *PostgresRepository) Update(ctx context.Context, profile *Profile) error {
	const query = `
		UPDATE profiles
		SET nome = $2, role = $3, avatar_url = $4, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := repository.pool.QueryRow(ctx, query,
		profile.ID,
		profile.Name,
		profile.Role,
		profile.Avatar,
	).Scan(&profile.UpdatedAt)

	if err != nil {
		if dberr.IsNoRows(err) {
			return apperr.NotFound("Profile")
		}
		return dberr.Wrap(err, "update_profile")
	}

	return nil
}
