// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration applies the schema with golang-migrate at startup.
//
// The SQL files are embedded from data/migrations. MIGRATION_PATH points the
// runner at a directory instead, for iterating on a new migration locally.
package migration

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/taibuivan/gravadora/data/migrations"
)

/*
Up applies every pending migration.

A dirty schema version stops startup: it means an earlier run died halfway
and someone has to look at the database. Cancelling ctx lets the migration
in progress finish and skips the rest.
*/
func Up(ctx context.Context, dsn, dir string, logger *slog.Logger) error {
	migrator, err := open(dsn, dir)
	if err != nil {
		return err
	}
	defer func() {
		if srcErr, dbErr := migrator.Close(); srcErr != nil || dbErr != nil {
			logger.Warn("migration_close_failed", slog.Any("source_error", srcErr), slog.Any("database_error", dbErr))
		}
	}()
	migrator.Log = slogAdapter{logger: logger}

	from, dirty, err := migrator.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		from = 0
	case err != nil:
		return fmt.Errorf("migration: reading version: %w", err)
	case dirty:
		return fmt.Errorf("migration: schema is dirty at version %d, fix it by hand before starting", from)
	}

	stop := context.AfterFunc(ctx, func() {
		select {
		case migrator.GracefulStop <- true:
		default:
		}
	})
	defer stop()

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("migration_up_to_date", slog.Uint64("version", uint64(from)))
			return nil
		}
		return fmt.Errorf("migration: applying: %w", err)
	}

	to, _, _ := migrator.Version()
	logger.Info("migration_applied", slog.Uint64("from", uint64(from)), slog.Uint64("to", uint64(to)))
	return nil
}

func open(dsn, dir string) (*migrate.Migrate, error) {
	databaseURL := pgx5URL(dsn)

	if dir != "" {
		migrator, err := migrate.New("file://"+dir, databaseURL)
		if err != nil {
			return nil, fmt.Errorf("migration: opening %s: %w", dir, err)
		}
		return migrator, nil
	}

	source, err := iofs.New(migrations.Files, ".")
	if err != nil {
		return nil, fmt.Errorf("migration: reading embedded files: %w", err)
	}
	migrator, err := migrate.NewWithSourceInstance("iofs", source, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("migration: connecting: %w", err)
	}
	return migrator, nil
}

// Embedded lists the migration files compiled into the binary.
func Embedded() ([]string, error) {
	return fs.Glob(migrations.Files, "*.sql")
}

// pgx5URL swaps the postgres scheme for the one the pgx/v5 driver registers.
func pgx5URL(dsn string) string {
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, scheme); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

type slogAdapter struct {
	logger *slog.Logger
}

func (adapter slogAdapter) Printf(format string, args ...any) {
	adapter.logger.Debug("migration_progress", slog.String("detail", strings.TrimSpace(fmt.Sprintf(format, args...))))
}

func (slogAdapter) Verbose() bool { return false }
