package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"actadash/internal/apperr"
	"actadash/internal/blob"
	"actadash/internal/metrics"
	"actadash/internal/models"
	"actadash/internal/validation"
)

// Document metadata headers promoted on HEAD requests.
const (
	HeaderDocumentStatus       = "X-Document-Status"
	HeaderDocumentSize         = "X-Document-Size"
	HeaderDocumentLastModified = "X-Document-LastModified"
	HeaderDocumentFormat       = "X-Document-Format"
)

// Document availability reported in the status field.
const (
	documentReady    = "ready"
	documentNotFound = "not_found"
)

// DocumentResolver locates generated documents and signs retrieval URLs.
type DocumentResolver interface {
	Resolve(ctx context.Context, projectID string, format blob.Format) (blob.Result, error)
	Mint(ctx context.Context, res *blob.Result) error
}

// DocumentsHandler serves document existence checks and downloads.
type DocumentsHandler struct {
	resolver DocumentResolver
	logger   *slog.Logger
}

// NewDocumentsHandler creates a new documents handler. A nil resolver makes
// every document request report the store as unavailable.
func NewDocumentsHandler(resolver DocumentResolver, logger *slog.Logger) *DocumentsHandler {
	return &DocumentsHandler{resolver: resolver, logger: logger}
}

// Validate reports whether the document of a project exists. GET returns the
// result as JSON; HEAD returns the same status with the metadata in headers.
func (h *DocumentsHandler) Validate(c fiber.Ctx) error {
	res, err := h.resolve(c)
	if err != nil {
		return err
	}

	body := models.DocumentStatusResponse{
		ProjectID: res.ProjectID,
		Format:    string(res.Format),
		Exists:    res.Exists,
		Available: res.Exists,
		Status:    documentNotFound,
		CheckedAt: timestamp(time.Now()),
	}

	status := fiber.StatusNotFound
	if res.Exists {
		status = fiber.StatusOK
		body.Status = documentReady
		body.Location = res.Location
		body.FileName = res.FileName()
		body.ContentType = res.Format.ContentType()
		body.Size = &res.Size
		body.LastModified = res.ModifiedAt

		if c.Method() != fiber.MethodHead {
			if err := h.resolver.Mint(c.Context(), &res); err != nil {
				h.logger.Warn("failed to sign document URL", "project_id", res.ProjectID, "error", err)
			} else {
				body.DownloadURL = res.RetrievalRef
				body.ExpiresIn = int(res.ExpiresIn / time.Second)
			}
		}
	}

	if c.Method() == fiber.MethodHead {
		c.Set(HeaderDocumentStatus, body.Status)
		c.Set(HeaderDocumentFormat, body.Format)
		if res.Exists {
			c.Set(HeaderDocumentSize, strconv.FormatInt(res.Size, 10))
			if res.ModifiedAt != nil {
				c.Set(HeaderDocumentLastModified, res.ModifiedAt.Format(http.TimeFormat))
			}
		}
		c.Status(status)
		return nil
	}

	return jsonResponse(c, status, body)
}

// Download redirects to a signed URL of the document, or answers 404 with a
// hint to generate it first.
func (h *DocumentsHandler) Download(c fiber.Ctx) error {
	res, err := h.resolve(c)
	if err != nil {
		return err
	}

	if !res.Exists {
		return jsonResponse(c, fiber.StatusNotFound, fiber.Map{
			"error":      "Document not found",
			"project_id": res.ProjectID,
			"format":     res.Format,
			"message":    fmt.Sprintf("No %s document has been generated for project %s", strings.ToUpper(string(res.Format)), res.ProjectID),
			"suggestion": fmt.Sprintf("Generate the document first with POST /extract-project-place/%s", res.ProjectID),
		})
	}

	if err := h.resolver.Mint(c.Context(), &res); err != nil {
		return err
	}

	return c.Redirect().Status(fiber.StatusFound).To(res.RetrievalRef)
}

func (h *DocumentsHandler) resolve(c fiber.Ctx) (blob.Result, error) {
	projectID := c.Params("id")
	if ok, msg := validation.ValidateProjectID(projectID); !ok {
		return blob.Result{}, apperr.Validation(msg)
	}

	format, err := blob.ParseFormat(c.Query("format"))
	if err != nil {
		return blob.Result{}, err
	}

	if h.resolver == nil {
		return blob.Result{}, apperr.Unavailable("document_store_unavailable", "Document store is not configured", nil)
	}

	res, err := h.resolver.Resolve(c.Context(), projectID, format)
	if err != nil {
		return blob.Result{}, err
	}
	metrics.RecordResolution(string(format), res.Exists)

	return res, nil
}
