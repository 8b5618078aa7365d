package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"

	"actadash/migrations"
)

// DB is the record store gateway backed by a pgx pool.
type DB struct {
	Pool *pgxpool.Pool
}

// New opens a pool on connString and verifies it with a ping. Connections
// identify themselves as actadash to the server.
func New(ctx context.Context, connString string) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("invalid database URL: %w", err)
	}
	if _, ok := poolCfg.ConnConfig.RuntimeParams["application_name"]; !ok {
		poolCfg.ConnConfig.RuntimeParams["application_name"] = "actadash"
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// RunMigrations applies the embedded schema migrations up to the latest version.
func (d *DB) RunMigrations(connString string) error {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, connString)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

// Ping checks that the database is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.Pool.Ping(ctx)
}

// Close closes the connection pool.
func (d *DB) Close() {
	d.Pool.Close()
}

// SeedDevProjects inserts sample projects for development. Skips projects that already exist.
func (d *DB) SeedDevProjects(ctx context.Context) error {
	projects := []struct {
		id         string
		pmEmail    string
		attributes string
	}{
		{"proj_001", "pm1@example.com", `{"project_name": "Downtown Redevelopment", "project_status": "Active", "last_updated": "2025-06-29T10:00:00Z", "has_acta_document": true, "acta_last_generated": "2025-06-20T09:00:00Z", "timeline": [{"hito": "Kickoff", "actividades": "Setup", "desarrollo": "Completed", "fecha": "2025-01-15"}]}`},
		{"proj_002", "pm2@example.com", `{"project_name": "Green Energy Initiative", "project_status": "Planning", "last_updated": "2025-06-28", "timeline_summary": {"milestones": 4, "completed": 1}}`},
		{"proj_003", "pm1@example.com", `{"project_name": "Harbor Bridge Retrofit", "project_status": "Completed"}`},
	}

	query := `
		INSERT INTO projects (project_id, pm_email, attributes)
		VALUES ($1, $2, $3::jsonb)
		ON CONFLICT (project_id) DO NOTHING
	`

	for _, p := range projects {
		if _, err := d.Pool.Exec(ctx, query, p.id, p.pmEmail, p.attributes); err != nil {
			return fmt.Errorf("failed to seed project %s: %w", p.id, err)
		}
	}

	return nil
}
