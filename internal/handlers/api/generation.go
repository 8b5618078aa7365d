package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v3"

	"actadash/internal/apperr"
	"actadash/internal/jobs"
	"actadash/internal/models"
	"actadash/internal/validation"
)

// Generator hands generation jobs to the external worker.
type Generator interface {
	Trigger(ctx context.Context, projectID, pmEmail string) (*jobs.Job, error)
	TriggerAll(ctx context.Context, projectIDs []string, pmEmail string) (success, failed []string)
	Status(actaID string) (*jobs.Job, error)
}

// GenerationHandler triggers document generation without waiting for it.
type GenerationHandler struct {
	store     ProjectStore
	generator Generator
	logger    *slog.Logger
}

// NewGenerationHandler creates a new generation handler. A nil generator
// makes every request report generation as unavailable.
func NewGenerationHandler(store ProjectStore, generator Generator, logger *slog.Logger) *GenerationHandler {
	return &GenerationHandler{store: store, generator: generator, logger: logger}
}

func generationUnavailable(err error) error {
	return apperr.Unavailable("generation_unavailable", "Document generation is not available", err)
}

// Extract queues generation of one project's document. The project id may
// also be given as project_id in the JSON body.
func (h *GenerationHandler) Extract(c fiber.Ctx) error {
	var body struct {
		ProjectID string `json:"project_id"`
	}
	if err := decodeBody(c, &body); err != nil {
		return err
	}

	projectID := strings.TrimSpace(body.ProjectID)
	if projectID == "" {
		projectID = c.Params("id")
	}
	if ok, msg := validation.ValidateProjectID(projectID); !ok {
		return apperr.Validation(msg)
	}

	if h.generator == nil {
		return generationUnavailable(nil)
	}

	rec, err := h.store.GetProject(c.Context(), projectID)
	if err != nil {
		return storeError(err, projectID)
	}

	job, err := h.generator.Trigger(c.Context(), rec.ID, rec.ManagerEmail)
	if err != nil {
		return generationUnavailable(err)
	}
	h.logger.Info("document generation queued", "project_id", rec.ID, "acta_id", job.ActaID)

	return jsonResponse(c, fiber.StatusOK, models.GenerationResponse{
		ActaID:                 job.ActaID,
		ProjectID:              job.ProjectID,
		Status:                 job.Status,
		Message:                "ACTA generation started",
		EstimatedCompletion:    job.EstimatedCompletion,
		DownloadAvailableAfter: timestamp(job.RequestedAt),
	})
}

// Bulk queues generation for every project of one manager.
func (h *GenerationHandler) Bulk(c fiber.Ctx) error {
	var body struct {
		PMEmail string `json:"pm_email"`
	}
	if err := decodeBody(c, &body); err != nil {
		return err
	}

	pmEmail := strings.TrimSpace(body.PMEmail)
	if pmEmail == "" {
		return apperr.MissingFields("pm_email")
	}
	if ok, msg := validation.ValidateEmail(pmEmail); !ok {
		return apperr.Validation(msg)
	}

	if h.generator == nil {
		return generationUnavailable(nil)
	}

	records, err := h.store.ListProjectsByManager(c.Context(), pmEmail)
	if err != nil {
		return storeError(err, "")
	}

	ids := make([]string, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.ID)
	}

	success, failed := h.generator.TriggerAll(c.Context(), ids, pmEmail)
	if len(failed) > 0 {
		h.logger.Warn("bulk generation partially failed", "pm_email", pmEmail, "failed", len(failed))
	}

	return jsonResponse(c, fiber.StatusOK, models.BulkGenerationResponse{
		Success: success,
		Failed:  failed,
		Total:   len(ids),
		PMEmail: pmEmail,
		Details: models.BulkGenerationStats{
			Message:           fmt.Sprintf("Queued %d of %d projects for generation", len(success), len(ids)),
			ProcessedProjects: len(success),
		},
	})
}

// Status returns the ledger entry of a generation job.
func (h *GenerationHandler) Status(c fiber.Ctx) error {
	actaID := c.Params("acta_id")
	if actaID == "" {
		return apperr.MissingFields("acta_id")
	}

	if h.generator == nil {
		return generationUnavailable(nil)
	}

	job, err := h.generator.Status(actaID)
	if errors.Is(err, jobs.ErrJobNotFound) {
		return apperr.NotFound("Generation job not found: " + actaID)
	}
	if err != nil {
		return generationUnavailable(err)
	}

	return jsonResponse(c, fiber.StatusOK, job)
}
