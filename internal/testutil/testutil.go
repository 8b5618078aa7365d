// Package testutil provides Postgres fixtures for integration tests.
package testutil

import (
	"context"
	"os"
	"testing"

	"actadash/internal/db"
)

// TestDB connects to TEST_DATABASE_URL, applies the migrations and empties
// the projects table. The calling test is skipped when the variable is unset.
// The pool is closed and the table emptied again when the test ends.
func TestDB(t *testing.T) *db.DB {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := db.New(ctx, connString)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	if err := database.RunMigrations(connString); err != nil {
		database.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	truncate := func() {
		if _, err := database.Pool.Exec(ctx, "DELETE FROM projects"); err != nil {
			t.Logf("failed to clear projects: %v", err)
		}
	}
	truncate()
	t.Cleanup(func() {
		truncate()
		database.Close()
	})

	return database
}

// InsertTestProject stores a project record with the given attributes.
func InsertTestProject(t *testing.T, database *db.DB, id, pmEmail string, attributes map[string]any) {
	t.Helper()

	if err := database.UpsertProject(context.Background(), id, pmEmail, attributes); err != nil {
		t.Fatalf("failed to insert test project %s: %v", id, err)
	}
}
