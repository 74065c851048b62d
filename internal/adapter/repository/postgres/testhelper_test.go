package postgres_test

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/marcos-nsantos/imgpipe/internal/infrastructure/database"
)

const catalogTable = "images"

type TestDB struct {
	Pool      *pgxpool.Pool
	Container *postgres.PostgresContainer
	// Applied lists the migrations run against the fresh container.
	Applied []string
}

func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:17-alpine",
		postgres.WithDatabase("imgpipe_catalog"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connString, err := container.ConnectionString(ctx, "sslmode=disable", "application_name=imgpipe-test")
	if err != nil {
		t.Fatalf("failed to build connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}

	applied, err := database.RunMigrations(ctx, pool, getMigrationsPath())
	if err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return &TestDB{
		Pool:      pool,
		Container: container,
		Applied:   applied,
	}
}

func (db *TestDB) Cleanup(t *testing.T) {
	t.Helper()
	if db.Pool != nil {
		db.Pool.Close()
	}
	if db.Container != nil {
		if err := db.Container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}
}

// Truncate empties the catalog between subtests.
func (db *TestDB) Truncate(t *testing.T) {
	t.Helper()
	if _, err := db.Pool.Exec(context.Background(), "TRUNCATE TABLE "+catalogTable); err != nil {
		t.Fatalf("failed to truncate %s: %v", catalogTable, err)
	}
}

// CountImages counts catalog rows, optionally for one object key.
func (db *TestDB) CountImages(t *testing.T, key string) int {
	t.Helper()

	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", catalogTable)
	args := []any{}
	if key != "" {
		query += " WHERE object_key = $1"
		args = append(args, key)
	}

	var n int
	if err := db.Pool.QueryRow(context.Background(), query, args...).Scan(&n); err != nil {
		t.Fatalf("failed to count images: %v", err)
	}
	return n
}

// getMigrationsPath returns the absolute path to the migrations directory
func getMigrationsPath() string {
	_, filename, _, _ := runtime.Caller(0)
	repoDir := filepath.Dir(filename)
	return filepath.Join(repoDir, "..", "..", "..", "..", "migrations")
}
