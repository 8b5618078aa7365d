// Package blob locates generated project documents in the blob store and
// mints time-limited retrieval references for them.
package blob

import (
	"context"
	"errors"
	"path"
	"strings"
	"time"

	"actadash/internal/apperr"
)

// Format is a supported document format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// Formats lists every supported format in lookup order.
var Formats = []Format{FormatPDF, FormatDOCX}

// ParseFormat validates a caller-supplied format. An empty value means pdf.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatPDF:
		return FormatPDF, nil
	case FormatDOCX:
		return FormatDOCX, nil
	default:
		return "", apperr.Validation("Invalid format. Use pdf or docx")
	}
}

// Extension returns the file extension including the leading dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}

// ErrObjectNotFound is returned by a Backend when a key does not exist.
var ErrObjectNotFound = errors.New("object not found")

// ObjectInfo describes one stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// Backend is the blob store capability the resolver relies on.
type Backend interface {
	Stat(ctx context.Context, key string) (ObjectInfo, error)
	List(ctx context.Context, prefix string, limit int) ([]ObjectInfo, error)
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// Result is the outcome of a resolution. Exists=false is a normal outcome.
type Result struct {
	ProjectID    string
	Format       Format
	Exists       bool
	Location     string
	Size         int64
	ModifiedAt   *time.Time
	RetrievalRef string
	ExpiresIn    time.Duration
}

// FileName returns the base name of the located object.
func (r Result) FileName() string {
	if r.Location == "" {
		return ""
	}
	return path.Base(r.Location)
}

func found(projectID string, format Format, info ObjectInfo) Result {
	res := Result{
		ProjectID: projectID,
		Format:    format,
		Exists:    true,
		Location:  info.Key,
		Size:      info.Size,
	}
	if !info.LastModified.IsZero() {
		modified := info.LastModified.UTC()
		res.ModifiedAt = &modified
	}
	return res
}

func missing(projectID string, format Format) Result {
	return Result{ProjectID: projectID, Format: format}
}
