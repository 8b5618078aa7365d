package metrics

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"

	"actadash/internal/apperr"
	"actadash/internal/models"
)

var (
	projectsDesc = prometheus.NewDesc(
		"actadash_projects",
		"Number of stored projects by status",
		[]string{"status"},
		nil,
	)

	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "actadash_http_requests_total",
			Help: "HTTP requests handled by route, method and status code",
		},
		[]string{"route", "method", "code"},
	)

	resolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "actadash_document_resolutions_total",
			Help: "Document existence checks by format and outcome",
		},
		[]string{"format", "outcome"},
	)
)

// ProjectLister enumerates the record store.
type ProjectLister interface {
	ListProjects(ctx context.Context) ([]models.ProjectRecord, error)
}

// ProjectCollector is a custom Prometheus collector that counts stored
// projects by status on each scrape.
type ProjectCollector struct {
	store   ProjectLister
	timeout time.Duration
}

// NewProjectCollector creates a collector reading from store.
func NewProjectCollector(store ProjectLister) *ProjectCollector {
	return &ProjectCollector{store: store, timeout: 5 * time.Second}
}

// Describe sends the metric descriptor to the channel.
func (c *ProjectCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- projectsDesc
}

// Collect lists the projects and emits one gauge per status.
func (c *ProjectCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	projects, err := c.store.ListProjects(ctx)
	if err != nil {
		slog.Error("failed to collect project metrics", "error", err)
		return
	}

	counts := map[string]int{}
	for _, p := range projects {
		counts[models.NormalizeStatus(p.Status)]++
	}
	for status, n := range counts {
		ch <- prometheus.MustNewConstMetric(
			projectsDesc,
			prometheus.GaugeValue,
			float64(n),
			status,
		)
	}
}

var registerOnce sync.Once

// Init registers the collectors with the default registry.
// Must be called once at startup; a nil store skips the project collector.
func Init(store ProjectLister) {
	registerOnce.Do(func() {
		prometheus.MustRegister(requestsTotal, resolutionsTotal)
		if store != nil {
			prometheus.MustRegister(NewProjectCollector(store))
		}
	})
}

// RecordResolution counts a document existence check.
func RecordResolution(format string, found bool) {
	outcome := "missing"
	if found {
		outcome = "found"
	}
	resolutionsTotal.WithLabelValues(format, outcome).Inc()
}

// Middleware counts every request by its matched route template.
func Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		err := c.Next()

		code := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			} else {
				code = apperr.StatusOf(err)
			}
		}

		route := "unmatched"
		if r := c.Route(); r != nil && r.Path != "/" && r.Path != "" {
			route = r.Path
		}
		requestsTotal.WithLabelValues(route, c.Method(), strconv.Itoa(code)).Inc()

		return err
	}
}
