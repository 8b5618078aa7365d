package models

import (
	"strings"
	"time"
)

// Project status constants
const (
	StatusActive    = "active"
	StatusPlanning  = "planning"
	StatusCompleted = "completed"
	StatusUnknown   = "unknown"
)

// Document status constants
const (
	DocumentCurrent  = "current"
	DocumentOutdated = "outdated"
	DocumentMissing  = "missing"
)

// Priority constants
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// DaysUnknown is reported when a timestamp is absent or cannot be parsed.
const DaysUnknown = 999

// ProjectRecord is a project as read from the record store, after numeric
// normalization.
type ProjectRecord struct {
	ID                string         `json:"project_id"`
	Name              string         `json:"project_name"`
	ManagerEmail      string         `json:"pm_email"`
	Status            string         `json:"status"`
	CreatedDate       string         `json:"created_date,omitempty"`
	LastUpdated       string         `json:"last_updated,omitempty"`
	HasActaDocument   bool           `json:"has_acta_document"`
	ActaLastGenerated string         `json:"acta_last_generated,omitempty"`
	NextMilestone     string         `json:"next_milestone,omitempty"`
	MilestoneDate     string         `json:"milestone_date,omitempty"`
	TimelineSummary   map[string]any `json:"timeline_summary,omitempty"`
	DocumentDetails   map[string]any `json:"document_details,omitempty"` // producer-supplied document status map
	ExternalData      map[string]any `json:"external_project_data,omitempty"`
	Timeline          []any          `json:"-"`
	Attributes        map[string]any `json:"attributes,omitempty"` // sparse attributes with no dedicated field
}

// NormalizeStatus maps free-form producer status values onto the known set.
func NormalizeStatus(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case StatusActive, "in_progress", "in progress":
		return StatusActive
	case StatusPlanning, "planned":
		return StatusPlanning
	case StatusCompleted, "complete", "done", "closed":
		return StatusCompleted
	default:
		return StatusUnknown
	}
}

// EnrichedProjectView is a ProjectRecord plus derived fields. Never persisted.
type EnrichedProjectView struct {
	ProjectRecord
	HasDocument         bool       `json:"has_document"`
	DocumentGeneratedAt *time.Time `json:"document_generated_at"`
	DocumentStatus      string     `json:"document_status"`
	DaysSinceUpdate     int        `json:"days_since_update"`
	Priority            string     `json:"priority"`
}

// CollectionSummary counts over a set of enriched projects.
type CollectionSummary struct {
	WithDocument    int `json:"with_document"`
	WithoutDocument int `json:"without_document"`
	RecentlyUpdated int `json:"recently_updated"`
}

// Total returns the number of projects the summary covers.
func (s CollectionSummary) Total() int {
	return s.WithDocument + s.WithoutDocument
}

// TimelineEntry is one milestone of a project timeline.
type TimelineEntry struct {
	Hito        string `json:"hito"`        // stage name
	Actividades string `json:"actividades"` // activities
	Desarrollo  string `json:"desarrollo"`  // progress note
	Fecha       string `json:"fecha"`       // date
}
