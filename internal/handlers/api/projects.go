package api

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"

	"actadash/internal/apperr"
	"actadash/internal/config"
	"actadash/internal/db"
	"actadash/internal/enrich"
	"actadash/internal/models"
	"actadash/internal/validation"
)

// DataSource is reported by the manager listings.
const DataSource = "postgres"

// ProjectStore is the read side of the record store gateway.
type ProjectStore interface {
	GetProject(ctx context.Context, id string) (*models.ProjectRecord, error)
	ListProjects(ctx context.Context) ([]models.ProjectRecord, error)
	ListProjectsByManager(ctx context.Context, email string) ([]models.ProjectRecord, error)
}

// ProjectsHandler serves project listings, summaries and timelines.
type ProjectsHandler struct {
	cfg      *config.Config
	store    ProjectStore
	pipeline *enrich.Pipeline
}

// NewProjectsHandler creates a new projects handler.
func NewProjectsHandler(cfg *config.Config, store ProjectStore, pipeline *enrich.Pipeline) *ProjectsHandler {
	return &ProjectsHandler{cfg: cfg, store: store, pipeline: pipeline}
}

// List returns the simplified view of every project.
func (h *ProjectsHandler) List(c fiber.Ctx) error {
	records, err := h.store.ListProjects(c.Context())
	if err != nil {
		return storeError(err, "")
	}

	items := make([]models.ProjectListItem, 0, len(records))
	for _, rec := range records {
		items = append(items, models.ProjectListItem{
			ProjectID:       rec.ID,
			ProjectName:     rec.Name,
			PMEmail:         rec.ManagerEmail,
			Status:          rec.Status,
			LastUpdated:     rec.LastUpdated,
			TimelineSummary: rec.TimelineSummary,
			DocumentDetails: rec.DocumentDetails,
		})
	}

	return jsonResponse(c, fiber.StatusOK, models.ProjectListResponse{
		Projects:  items,
		Total:     len(items),
		Count:     len(items),
		Timestamp: timestamp(time.Now()),
	})
}

// Manager lists the enriched projects of one manager, or of every manager
// when the admin segment or ?admin=true is given.
func (h *ProjectsHandler) Manager(c fiber.Ctx) error {
	segment := c.Params("email")
	opts := enrich.Options{IncludeActaStatus: queryBool(c, "include_acta_status", false)}

	resp := models.ManagerProjectsResponse{
		DataSource: DataSource,
		Table:      h.cfg.ProjectsTable,
	}

	var records []models.ProjectRecord
	var err error
	if segment == h.cfg.AdminSegment || queryBool(c, "admin", false) {
		resp.PMEmail = models.AdminPMEmail
		resp.AccessLevel = models.AccessAdmin
		records, err = h.store.ListProjects(c.Context())
	} else {
		email, decodeErr := validation.DecodeManagerEmail(segment)
		if decodeErr != nil {
			return apperr.Validation("Invalid manager email")
		}
		if ok, msg := validation.ValidateEmail(email); !ok {
			return apperr.Validation(msg)
		}
		resp.PMEmail = email
		resp.AccessLevel = models.AccessPM
		records, err = h.store.ListProjectsByManager(c.Context(), email)
	}
	if err != nil {
		return storeError(err, "")
	}

	views, summary, err := h.pipeline.EnrichAll(c.Context(), records, opts)
	if err != nil {
		return err
	}

	resp.Projects = views
	resp.TotalProjects = len(views)
	resp.Summary = summary
	if len(views) == 0 && resp.AccessLevel == models.AccessPM {
		resp.Message = "No projects found for " + resp.PMEmail
	}

	return jsonResponse(c, fiber.StatusOK, resp)
}

// Summary returns the enriched detail view of one project. Document status
// is resolved against the blob store unless ?include_acta_status=false.
func (h *ProjectsHandler) Summary(c fiber.Ctx) error {
	rec, err := h.project(c)
	if err != nil {
		return err
	}

	opts := enrich.Options{IncludeActaStatus: queryBool(c, "include_acta_status", true)}
	view, err := h.pipeline.Enrich(c.Context(), *rec, opts)
	if err != nil {
		return err
	}

	return jsonResponse(c, fiber.StatusOK, view)
}

// Timeline returns the milestones of one project ordered by date.
func (h *ProjectsHandler) Timeline(c fiber.Ctx) error {
	rec, err := h.project(c)
	if err != nil {
		return err
	}

	entries := timelineEntries(enrich.NormalizeRecord(*rec).Timeline)

	return jsonResponse(c, fiber.StatusOK, models.TimelineResponse{
		ProjectID:   rec.ID,
		Timeline:    entries,
		TotalEvents: len(entries),
		GeneratedAt: timestamp(time.Now()),
	})
}

func (h *ProjectsHandler) project(c fiber.Ctx) (*models.ProjectRecord, error) {
	id := c.Params("id")
	if ok, msg := validation.ValidateProjectID(id); !ok {
		return nil, apperr.Validation(msg)
	}

	rec, err := h.store.GetProject(c.Context(), id)
	if err != nil {
		return nil, storeError(err, id)
	}
	return rec, nil
}

// storeError classifies a record store failure.
func storeError(err error, projectID string) error {
	if errors.Is(err, db.ErrProjectNotFound) {
		return apperr.NotFound("Project not found: " + projectID)
	}
	return apperr.Upstream("Record store error", err)
}

// timelineEntries converts stored milestone maps, skipping anything that is
// not a map, and sorts them by fecha. Undated entries go last.
func timelineEntries(raw []any) []models.TimelineEntry {
	entries := make([]models.TimelineEntry, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		entries = append(entries, models.TimelineEntry{
			Hito:        stringField(m, "hito"),
			Actividades: stringField(m, "actividades"),
			Desarrollo:  stringField(m, "desarrollo"),
			Fecha:       stringField(m, "fecha"),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		ti, iok := enrich.ParseTimestamp(entries[i].Fecha)
		tj, jok := enrich.ParseTimestamp(entries[j].Fecha)
		if iok != jok {
			return iok
		}
		return iok && ti.Before(tj)
	})
	return entries
}

func stringField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func queryBool(c fiber.Ctx, key string, fallback bool) bool {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return b
}
