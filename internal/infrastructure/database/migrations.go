package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version    TEXT PRIMARY KEY,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// RunMigrations applies every pending .up.sql file in migrationsPath in name
// order. Each file runs in its own transaction and is recorded in
// schema_migrations, so reruns are no-ops. It returns the applied versions.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, migrationsPath string) ([]string, error) {
	files, err := os.ReadDir(migrationsPath)
	if err != nil {
		return nil, fmt.Errorf("reading migrations directory: %w", err)
	}

	var versions []string
	for _, f := range files {
		if !f.IsDir() && strings.HasSuffix(f.Name(), ".up.sql") {
			versions = append(versions, strings.TrimSuffix(f.Name(), ".up.sql"))
		}
	}
	sort.Strings(versions)

	if _, err := pool.Exec(ctx, createMigrationsTable); err != nil {
		return nil, fmt.Errorf("creating schema_migrations: %w", err)
	}

	var applied []string
	for _, version := range versions {
		ok, err := applyMigration(ctx, pool, migrationsPath, version)
		if err != nil {
			return applied, err
		}
		if ok {
			applied = append(applied, version)
		}
	}

	return applied, nil
}

func applyMigration(ctx context.Context, pool *pgxpool.Pool, dir, version string) (bool, error) {
	content, err := os.ReadFile(filepath.Join(dir, version+".up.sql"))
	if err != nil {
		return false, fmt.Errorf("reading migration %s: %w", version, err)
	}

	applied := false
	err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, version).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return nil
		}

		if _, err := tx.Exec(ctx, string(content)); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
			return err
		}

		applied = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("applying migration %s: %w", version, err)
	}

	return applied, nil
}
