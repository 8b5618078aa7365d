package blob

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// MaxPageSize bounds a prefix scan.
const MaxPageSize = 1000

// Strategy locates the document of a project in one format.
type Strategy interface {
	Resolve(ctx context.Context, projectID string, format Format) (Result, error)
}

// DirectKey checks <prefix><projectID>.<ext> for each prefix in order.
type DirectKey struct {
	backend  Backend
	prefixes []string
}

// NewDirectKey creates a direct-key strategy. With no prefixes the key is
// looked up at the bucket root.
func NewDirectKey(backend Backend, prefixes ...string) *DirectKey {
	if len(prefixes) == 0 {
		prefixes = []string{""}
	}
	return &DirectKey{backend: backend, prefixes: prefixes}
}

// Resolve implements Strategy.
func (s *DirectKey) Resolve(ctx context.Context, projectID string, format Format) (Result, error) {
	for _, prefix := range s.prefixes {
		key := prefix + projectID + format.Extension()
		info, err := s.backend.Stat(ctx, key)
		if errors.Is(err, ErrObjectNotFound) {
			continue
		}
		if err != nil {
			return Result{}, fmt.Errorf("failed to stat %s: %w", key, err)
		}
		if info.Key == "" {
			info.Key = key
		}
		return found(projectID, format, info), nil
	}
	return missing(projectID, format), nil
}

// PrefixScan lists one bounded page under a prefix and picks the first key
// that contains the project id and ends with the format extension.
type PrefixScan struct {
	backend  Backend
	prefix   string
	pageSize int
}

// NewPrefixScan creates a prefix-scan strategy. pageSize is clamped to
// (0, MaxPageSize].
func NewPrefixScan(backend Backend, prefix string, pageSize int) *PrefixScan {
	if pageSize <= 0 || pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return &PrefixScan{backend: backend, prefix: prefix, pageSize: pageSize}
}

// Resolve implements Strategy.
func (s *PrefixScan) Resolve(ctx context.Context, projectID string, format Format) (Result, error) {
	objects, err := s.backend.List(ctx, s.prefix, s.pageSize)
	if err != nil {
		return Result{}, fmt.Errorf("failed to list %s: %w", s.prefix, err)
	}
	ext := format.Extension()
	for _, obj := range objects {
		if strings.Contains(obj.Key, projectID) && strings.HasSuffix(obj.Key, ext) {
			return found(projectID, format, obj), nil
		}
	}
	return missing(projectID, format), nil
}

// Chain tries each strategy in order and returns the first hit.
type Chain []Strategy

// Resolve implements Strategy.
func (c Chain) Resolve(ctx context.Context, projectID string, format Format) (Result, error) {
	for _, s := range c {
		res, err := s.Resolve(ctx, projectID, format)
		if err != nil {
			return Result{}, err
		}
		if res.Exists {
			return res, nil
		}
	}
	return missing(projectID, format), nil
}
