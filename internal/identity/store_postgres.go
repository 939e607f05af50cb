// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package identity

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/gravadora/internal/platform/apperr"
	"github.com/taibuivan/gravadora/internal/platform/dberr"
)

// # Account Repository

// PostgresAccountRepository implements [AccountRepository] on the auth.users table.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new PostgreSQL implementation of the AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

const accountColumns = `id, email, password_hash, email_confirmed_at, created_at`

/*
Create persists a new account.

Parameters:
  - ctx: context.Context
  - account: *Account (Entity to persist)

Returns:
  - error: CONFLICT when the email is already registered
*/
func (repository *PostgresAccountRepository) Create(ctx context.Context, account *Account) error {
	const query = `
		INSERT INTO auth.users (id, email, password_hash, email_confirmed_at, created_at)
		VALUES ($1, lower($2), $3, $4, $5)`

	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(ctx, query,
		account.ID,
		account.Email,
		account.PasswordHash,
		account.EmailConfirmedAt,
		account.CreatedAt,
	)

	return dberr.Wrap(err, "create_account")
}

// Delete removes an account. The profile row goes with it (ON DELETE CASCADE).
func (repository *PostgresAccountRepository) Delete(ctx context.Context, id string) error {
	_, err := repository.pool.Exec(ctx, `DELETE FROM auth.users WHERE id = $1`, id)
	return dberr.Wrap(err, "delete_account")
}

// FindByEmail retrieves an account by email, case-insensitively.
func (repository *PostgresAccountRepository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM auth.users WHERE email = lower($1)`
	return repository.findOne(ctx, query, email)
}

// FindByID retrieves an account by primary key.
func (repository *PostgresAccountRepository) FindByID(ctx context.Context, id string) (*Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM auth.users WHERE id = $1`
	return repository.findOne(ctx, query, id)
}

func (repository *PostgresAccountRepository) findOne(ctx context.Context, query string, argument string) (*Account, error) {
	account := &Account{}

	err := repository.pool.QueryRow(ctx, query, argument).Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.EmailConfirmedAt,
		&account.CreatedAt,
	)
	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, apperr.NotFound("Account")
		}
		return nil, dberr.Wrap(err, "find_account")
	}

	return account, nil
}

