package server

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"actadash/internal/handlers/api"
)

// Handlers groups the API handlers served by the router.
type Handlers struct {
	Health     *api.HealthHandler
	Projects   *api.ProjectsHandler
	Documents  *api.DocumentsHandler
	Generation *api.GenerationHandler
	Approval   *api.ApprovalHandler
}

type route struct {
	methods []string
	path    string
	handler fiber.Handler
}

var (
	read  = []string{fiber.MethodGet, fiber.MethodHead}
	write = []string{fiber.MethodPost}
)

// routes returns the route table in precedence order: health, projects,
// manager namespaces, document validator, summary, timeline, generation,
// download and approval.
func (s *Server) routes(h Handlers) []route {
	table := []route{
		{read, "/health", h.Health.Health},
		{read, "/readyz", h.Health.Ready},
		{read, "/metrics", adaptor.HTTPHandler(promhttp.Handler())},
		{read, "/projects", h.Projects.List},
	}

	for _, ns := range s.Cfg.PMNamespaces {
		table = append(table, route{read, "/" + ns + "/:email", h.Projects.Manager})
	}

	return append(table,
		route{read, "/document-validator/:id", h.Documents.Validate},
		route{read, "/project-summary/:id", h.Projects.Summary},
		route{read, "/timeline/:id", h.Projects.Timeline},
		route{write, "/extract-project-place/:id", h.Generation.Extract},
		route{write, "/bulk-generate-summaries", h.Generation.Bulk},
		route{read, "/generation-status/:acta_id", h.Generation.Status},
		route{read, "/download-acta/:id", h.Documents.Download},
		route{write, "/send-approval-email", h.Approval.Send},
	)
}

// RegisterRoutes registers all application routes followed by the
// catch-all that answers unmatched paths and methods with 404.
func (s *Server) RegisterRoutes(h Handlers) {
	for _, r := range s.routes(h) {
		s.App.Add(r.methods, r.path, r.handler)
	}

	s.App.Use(fiber.Handler(api.NotFound))
}
