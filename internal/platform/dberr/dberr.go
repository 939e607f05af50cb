// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// Constraint violations keep the database's own message: the schema is the
// only place cross-field and cross-entity rules are enforced, so its wording
// is what the user needs to see.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/gravadora/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// The action names the failed operation in the server-side cause.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Constraint violations surface the platform message
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return withCause(apperr.Conflict(pgErr.Message), err, action)
		case pgerrcode.ForeignKeyViolation:
			return withCause(apperr.Unprocessable(pgErr.Message), err, action)
		case pgerrcode.CheckViolation, pgerrcode.NotNullViolation,
			pgerrcode.InvalidTextRepresentation, pgerrcode.InvalidDatetimeFormat,
			pgerrcode.NumericValueOutOfRange:
			return withCause(apperr.ValidationError(pgErr.Message), err, action)
		}
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}

// IsNoRows reports whether err is the driver's "no rows" sentinel.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func withCause(appErr *apperr.AppError, cause error, action string) *apperr.AppError {
	appErr.Cause = fmt.Errorf("%s: %w", action, cause)
	return appErr
}
