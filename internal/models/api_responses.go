package models

import "time"

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// ProjectListItem is the simplified view returned by GET /projects.
type ProjectListItem struct {
	ProjectID       string         `json:"project_id"`
	ProjectName     string         `json:"project_name"`
	PMEmail         string         `json:"pm_email"`
	Status          string         `json:"status"`
	LastUpdated     string         `json:"last_updated,omitempty"`
	TimelineSummary map[string]any `json:"timeline_summary,omitempty"`
	DocumentDetails map[string]any `json:"document_details,omitempty"`
}

// ProjectListResponse is returned by GET /projects.
type ProjectListResponse struct {
	Projects  []ProjectListItem `json:"projects"`
	Total     int               `json:"total"`
	Count     int               `json:"count"`
	Timestamp string            `json:"timestamp"`
}

// ManagerProjectsResponse is returned by the PM namespace listings.
type ManagerProjectsResponse struct {
	PMEmail       string                `json:"pm_email"`
	TotalProjects int                   `json:"total_projects"`
	Projects      []EnrichedProjectView `json:"projects"`
	Summary       CollectionSummary     `json:"summary"`
	AccessLevel   string                `json:"access_level"`
	DataSource    string                `json:"data_source"`
	Table         string                `json:"table"`
	Message       string                `json:"message,omitempty"`
}

// Access levels
const (
	AccessAdmin = "admin"
	AccessPM    = "pm"

	// AdminPMEmail is the pm_email reported for the admin listing.
	AdminPMEmail = "admin-all-access"
)

// DocumentStatusResponse is returned by GET /document-validator/{id}.
type DocumentStatusResponse struct {
	ProjectID    string     `json:"project_id"`
	Format       string     `json:"format"`
	Exists       bool       `json:"exists"`
	Available    bool       `json:"available"`
	Status       string     `json:"status"`
	Location     string     `json:"location,omitempty"`
	FileName     string     `json:"file_name,omitempty"`
	ContentType  string     `json:"content_type,omitempty"`
	Size         *int64     `json:"size,omitempty"`
	LastModified *time.Time `json:"last_modified,omitempty"`
	DownloadURL  string     `json:"download_url,omitempty"`
	ExpiresIn    int        `json:"expires_in,omitempty"`
	CheckedAt    string     `json:"checked_at"`
}

// TimelineResponse is returned by GET /timeline/{id}.
type TimelineResponse struct {
	ProjectID   string          `json:"project_id"`
	Timeline    []TimelineEntry `json:"timeline"`
	TotalEvents int             `json:"total_events"`
	GeneratedAt string          `json:"generated_at"`
}

// GenerationResponse is returned by POST /extract-project-place/{id}.
type GenerationResponse struct {
	ActaID                 string `json:"acta_id"`
	ProjectID              string `json:"project_id"`
	Status                 string `json:"status"`
	Message                string `json:"message"`
	EstimatedCompletion    string `json:"estimated_completion"`
	DownloadAvailableAfter string `json:"download_available_after"`
}

// BulkGenerationResponse is returned by POST /bulk-generate-summaries.
type BulkGenerationResponse struct {
	Success []string            `json:"success"`
	Failed  []string            `json:"failed"`
	Total   int                 `json:"total"`
	PMEmail string              `json:"pm_email"`
	Details BulkGenerationStats `json:"details"`
}

// BulkGenerationStats summarizes a bulk generation run.
type BulkGenerationStats struct {
	Message           string `json:"message"`
	ProcessedProjects int    `json:"processed_projects"`
}

// ApprovalEmailResponse is returned by POST /send-approval-email on success.
type ApprovalEmailResponse struct {
	ActaID        string `json:"acta_id"`
	ClientEmail   string `json:"client_email"`
	Status        string `json:"status"`
	CorrelationID string `json:"correlation_id"`
	Message       string `json:"message"`
	SentAt        string `json:"sent_at"`
}
