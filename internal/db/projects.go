package db

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"actadash/internal/enrich"
	"actadash/internal/models"
)

const projectColumns = `project_id, pm_email, attributes, budget, created_at, updated_at`

// listPageSize bounds each keyset page when enumerating the collection.
const listPageSize = 500

type rowScanner interface {
	Scan(dest ...any) error
}

// GetProject retrieves a project by its identifier.
func (d *DB) GetProject(ctx context.Context, id string) (*models.ProjectRecord, error) {
	row := d.Pool.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE project_id = $1`, id)

	rec, err := scanProject(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project %s: %w", id, err)
	}
	return &rec, nil
}

// ListProjects enumerates the whole collection ordered by identifier.
func (d *DB) ListProjects(ctx context.Context) ([]models.ProjectRecord, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE project_id > $1
		ORDER BY project_id
		LIMIT $2
	`

	projects := []models.ProjectRecord{}
	cursor := ""
	for {
		rows, err := d.Pool.Query(ctx, query, cursor, listPageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to list projects: %w", err)
		}
		page, err := collectProjects(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to list projects: %w", err)
		}

		projects = append(projects, page...)
		if len(page) < listPageSize {
			return projects, nil
		}
		cursor = page[len(page)-1].ID
	}
}

// ListProjectsByManager returns the projects whose responsible manager is email.
func (d *DB) ListProjectsByManager(ctx context.Context, email string) ([]models.ProjectRecord, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT `+projectColumns+`
		FROM projects
		WHERE pm_email = $1
		ORDER BY project_id
	`, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects for %s: %w", email, err)
	}

	projects, err := collectProjects(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects for %s: %w", email, err)
	}
	return projects, nil
}

// UpsertProject creates or replaces a project record.
func (d *DB) UpsertProject(ctx context.Context, id, pmEmail string, attributes map[string]any) error {
	if id == "" {
		return ErrInvalidProject
	}
	if attributes == nil {
		attributes = map[string]any{}
	}

	data, err := json.Marshal(attributes)
	if err != nil {
		return fmt.Errorf("failed to encode attributes: %w", err)
	}

	_, err = d.Pool.Exec(ctx, `
		INSERT INTO projects (project_id, pm_email, attributes)
		VALUES ($1, $2, $3::jsonb)
		ON CONFLICT (project_id) DO UPDATE SET
			pm_email = EXCLUDED.pm_email,
			attributes = EXCLUDED.attributes,
			updated_at = NOW()
	`, id, pmEmail, string(data))
	if err != nil {
		return fmt.Errorf("failed to upsert project %s: %w", id, err)
	}
	return nil
}

func collectProjects(rows pgx.Rows) ([]models.ProjectRecord, error) {
	defer rows.Close()

	projects := []models.ProjectRecord{}
	for rows.Next() {
		rec, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, rec)
	}
	return projects, rows.Err()
}

func scanProject(row rowScanner) (models.ProjectRecord, error) {
	var (
		id, pmEmail          string
		attributes           []byte
		budget               pgtype.Numeric
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &pmEmail, &attributes, &budget, &createdAt, &updatedAt); err != nil {
		return models.ProjectRecord{}, err
	}
	return decodeRecord(id, pmEmail, attributes, budget, createdAt)
}

// decodeRecord maps a stored row onto a ProjectRecord. Every numeric value is
// normalized here so no store-specific type leaves the gateway.
func decodeRecord(id, pmEmail string, raw []byte, budget pgtype.Numeric, createdAt time.Time) (models.ProjectRecord, error) {
	attrs := map[string]any{}
	if len(bytes.TrimSpace(raw)) > 0 {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&attrs); err != nil {
			return models.ProjectRecord{}, fmt.Errorf("failed to decode attributes of %s: %w", id, err)
		}
	}
	if budget.Valid {
		attrs["budget"] = budget
	}
	attrs = enrich.NormalizeMap(attrs)

	rec := models.ProjectRecord{
		ID:           id,
		ManagerEmail: pmEmail,
	}
	if rec.ManagerEmail == "" {
		rec.ManagerEmail = takeString(attrs, "pm_email")
	} else {
		delete(attrs, "pm_email")
	}

	rec.Name = takeString(attrs, "project_name")
	status := takeString(attrs, "project_status")
	if status == "" {
		status = takeString(attrs, "status")
	}
	rec.Status = models.NormalizeStatus(status)

	rec.CreatedDate = takeString(attrs, "created_date")
	if rec.CreatedDate == "" && !createdAt.IsZero() {
		rec.CreatedDate = createdAt.UTC().Format(time.RFC3339)
	}
	rec.LastUpdated = takeString(attrs, "last_updated")
	rec.HasActaDocument = takeBool(attrs, "has_acta_document")
	rec.ActaLastGenerated = takeString(attrs, "acta_last_generated")
	rec.NextMilestone = takeString(attrs, "next_milestone")
	rec.MilestoneDate = takeString(attrs, "milestone_date")
	rec.TimelineSummary = takeMap(attrs, "timeline_summary")
	rec.DocumentDetails = takeMap(attrs, "document_status")
	rec.ExternalData = takeMap(attrs, "external_project_data")
	rec.Timeline = takeSlice(attrs, "timeline")

	if len(attrs) > 0 {
		rec.Attributes = attrs
	}
	return rec, nil
}

func takeString(attrs map[string]any, key string) string {
	v, ok := attrs[key]
	if !ok {
		return ""
	}
	delete(attrs, key)
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

func takeBool(attrs map[string]any, key string) bool {
	v, ok := attrs[key]
	if !ok {
		return false
	}
	delete(attrs, key)
	switch x := v.(type) {
	case bool:
		return x
	case string:
		b, _ := strconv.ParseBool(x)
		return b
	case int64:
		return x != 0
	default:
		return false
	}
}

func takeMap(attrs map[string]any, key string) map[string]any {
	v, ok := attrs[key].(map[string]any)
	if !ok {
		return nil
	}
	delete(attrs, key)
	return v
}

func takeSlice(attrs map[string]any, key string) []any {
	v, ok := attrs[key].([]any)
	if !ok {
		return nil
	}
	delete(attrs, key)
	return v
}
