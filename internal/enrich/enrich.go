// Package enrich derives the dashboard view of a project record: document
// status, staleness, priority and collection summaries.
package enrich

import (
	"context"
	"fmt"
	"strings"
	"time"

	"actadash/internal/models"
)

const (
	// DefaultStalenessDays is the age after which a project or its document is stale.
	DefaultStalenessDays = 30

	mediumPriorityDays = 14
	recentDays         = 7
)

// timestampLayouts are tried in order; a trailing "Z" is rewritten to an
// explicit offset before parsing.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// DocumentChecker reports whether a generated document exists for a project
// in any supported format.
type DocumentChecker interface {
	DocumentInfo(ctx context.Context, projectID string) (exists bool, modifiedAt *time.Time, err error)
}

// Options controls optional, I/O-bound enrichment steps.
type Options struct {
	// IncludeActaStatus resolves document existence against the blob store
	// instead of trusting the record's has_acta_document flag.
	IncludeActaStatus bool
}

// Pipeline turns raw project records into enriched views.
type Pipeline struct {
	checker   DocumentChecker
	staleDays int
	now       func() time.Time
}

// New creates a pipeline. checker may be nil when blob lookups are not
// available; IncludeActaStatus is then ignored.
func New(checker DocumentChecker, staleDays int) *Pipeline {
	if staleDays <= 0 {
		staleDays = DefaultStalenessDays
	}
	return &Pipeline{checker: checker, staleDays: staleDays, now: time.Now}
}

// WithClock replaces the time source, for tests.
func (p *Pipeline) WithClock(now func() time.Time) *Pipeline {
	p.now = now
	return p
}

// Enrich derives the enriched view of a single record.
func (p *Pipeline) Enrich(ctx context.Context, rec models.ProjectRecord, opts Options) (models.EnrichedProjectView, error) {
	rec = NormalizeRecord(rec)
	now := p.now()

	hasDocument := rec.HasActaDocument
	var generatedAt *time.Time
	if t, ok := ParseTimestamp(rec.ActaLastGenerated); ok {
		generatedAt = &t
	}

	if opts.IncludeActaStatus && p.checker != nil {
		exists, modifiedAt, err := p.checker.DocumentInfo(ctx, rec.ID)
		if err != nil {
			return models.EnrichedProjectView{}, fmt.Errorf("failed to resolve document for %s: %w", rec.ID, err)
		}
		hasDocument = exists
		if modifiedAt != nil {
			generatedAt = modifiedAt
		}
	}

	days := DaysSince(rec.LastUpdated, now)

	return models.EnrichedProjectView{
		ProjectRecord:       rec,
		HasDocument:         hasDocument,
		DocumentGeneratedAt: generatedAt,
		DocumentStatus:      DocumentStatus(hasDocument, generatedAt, now, p.staleDays),
		DaysSinceUpdate:     days,
		Priority:            priority(days, p.staleDays),
	}, nil
}

// EnrichAll enriches every record and summarizes the result.
func (p *Pipeline) EnrichAll(ctx context.Context, recs []models.ProjectRecord, opts Options) ([]models.EnrichedProjectView, models.CollectionSummary, error) {
	views := make([]models.EnrichedProjectView, 0, len(recs))
	for _, rec := range recs {
		view, err := p.Enrich(ctx, rec, opts)
		if err != nil {
			return nil, models.CollectionSummary{}, err
		}
		views = append(views, view)
	}
	return views, Summarize(views), nil
}

// Summarize counts documented, undocumented and recently updated projects.
func Summarize(views []models.EnrichedProjectView) models.CollectionSummary {
	var s models.CollectionSummary
	for _, v := range views {
		if v.HasDocument {
			s.WithDocument++
		} else {
			s.WithoutDocument++
		}
		if v.DaysSinceUpdate <= recentDays {
			s.RecentlyUpdated++
		}
	}
	return s
}

// ParseTimestamp parses an ISO-8601 timestamp. Values without an offset are
// taken as UTC.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if strings.HasSuffix(s, "Z") {
		s = strings.TrimSuffix(s, "Z") + "+00:00"
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// DaysSince returns the whole days elapsed between ts and now, clamped at
// zero, or models.DaysUnknown when ts is absent or unparsable.
func DaysSince(ts string, now time.Time) int {
	t, ok := ParseTimestamp(ts)
	if !ok {
		return models.DaysUnknown
	}
	return daysBetween(t, now)
}

func daysBetween(t, now time.Time) int {
	days := int(now.Sub(t).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// Priority is derived solely from days since the last update.
func Priority(daysSinceUpdate int) string {
	return priority(daysSinceUpdate, DefaultStalenessDays)
}

func priority(days, staleDays int) string {
	switch {
	case days > staleDays:
		return models.PriorityHigh
	case days > mediumPriorityDays:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

// DocumentStatus is missing without a document, outdated when the document is
// older than staleDays (or of unknown age) and current otherwise.
func DocumentStatus(hasDocument bool, generatedAt *time.Time, now time.Time, staleDays int) string {
	if !hasDocument {
		return models.DocumentMissing
	}
	age := models.DaysUnknown
	if generatedAt != nil {
		age = daysBetween(*generatedAt, now)
	}
	if age > staleDays {
		return models.DocumentOutdated
	}
	return models.DocumentCurrent
}
