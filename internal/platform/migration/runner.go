// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration applies the SQL files under data/migrations with
// golang-migrate before the server accepts traffic.
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// pgx5 driver registers "pgx5" scheme for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// file source reads .sql files from disk.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Direction selects which way [Run] moves the schema.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Run migrates the schema in direction. Down reverts a single step; Up applies
// everything pending.
func Run(dsn, migrationsPath string, direction Direction, logger *slog.Logger) error {
	migrator, err := migrate.New("file://"+migrationsPath, PGX5URL(dsn))
	if err != nil {
		return fmt.Errorf("migration: failed to initialize: %w", err)
	}
	defer func() {
		if sourceError, dbError := migrator.Close(); sourceError != nil || dbError != nil {
			logger.Error("migration_close_failed",
				slog.Any("source_error", sourceError),
				slog.Any("db_error", dbError),
			)
		}
	}()

	migrator.Log = &slogAdapter{logger: logger}

	from, dirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration: failed to read version: %w", err)
	}
	if dirty {
		return fmt.Errorf("migration: schema is dirty at version %d", from)
	}

	switch direction {
	case Up:
		err = migrator.Up()
	case Down:
		err = migrator.Steps(-1)
	default:
		return fmt.Errorf("migration: unknown direction %q", direction)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("migration_no_change", slog.Uint64("version", uint64(from)))
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration: %s failed: %w", direction, err)
	}

	to, _, _ := migrator.Version()
	logger.Info("migration_applied",
		slog.String("direction", string(direction)),
		slog.Uint64("from_version", uint64(from)),
		slog.Uint64("to_version", uint64(to)),
	)

	return nil
}

// PGX5URL rewrites a postgres:// or postgresql:// URL to the pgx5:// scheme the
// golang-migrate driver registers. Other inputs are returned unchanged.
func PGX5URL(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, prefix); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// slogAdapter satisfies migrate.Logger.
type slogAdapter struct {
	logger *slog.Logger
}

func (a *slogAdapter) Printf(format string, args ...any) {
	a.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (a *slogAdapter) Verbose() bool {
	return false
}
