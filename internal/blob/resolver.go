package blob

import (
	"context"
	"fmt"
	"time"

	"actadash/internal/apperr"
	"actadash/internal/config"
)

// Strategy names accepted in configuration.
const (
	StrategyDirect = "direct"
	StrategyScan   = "scan"
	StrategyChain  = "chain"
)

// DefaultPresignTTL is the validity of a retrieval reference.
const DefaultPresignTTL = time.Hour

// Resolver resolves documents with a configured strategy and mints retrieval
// references against the same backend.
type Resolver struct {
	strategy Strategy
	backend  Backend
	ttl      time.Duration
}

// NewResolver creates a resolver from an explicit strategy.
func NewResolver(strategy Strategy, backend Backend, ttl time.Duration) *Resolver {
	if ttl <= 0 {
		ttl = DefaultPresignTTL
	}
	return &Resolver{strategy: strategy, backend: backend, ttl: ttl}
}

// NewResolverFromConfig selects the strategy named by cfg.ResolverStrategy.
func NewResolverFromConfig(cfg *config.Config, backend Backend) (*Resolver, error) {
	direct := NewDirectKey(backend, cfg.ResolverDirectPrefixes...)
	scan := NewPrefixScan(backend, cfg.ResolverScanPrefix, cfg.ResolverPageSize)

	var strategy Strategy
	switch cfg.ResolverStrategy {
	case StrategyDirect:
		strategy = direct
	case StrategyScan:
		strategy = scan
	case StrategyChain, "":
		strategy = Chain{direct, scan}
	default:
		return nil, fmt.Errorf("unknown resolver strategy %q", cfg.ResolverStrategy)
	}

	return NewResolver(strategy, backend, cfg.PresignTTL), nil
}

// Resolve locates the document of a project. Store faults are reported as
// upstream errors; an absent document is not an error.
func (r *Resolver) Resolve(ctx context.Context, projectID string, format Format) (Result, error) {
	res, err := r.strategy.Resolve(ctx, projectID, format)
	if err != nil {
		return Result{}, apperr.Upstream("Document store error", err)
	}
	return res, nil
}

// Mint attaches a time-limited retrieval reference to a found result.
func (r *Resolver) Mint(ctx context.Context, res *Result) error {
	if !res.Exists {
		return apperr.NotFound("Document not found")
	}
	ref, err := r.backend.PresignGet(ctx, res.Location, r.ttl)
	if err != nil {
		return apperr.Upstream("Failed to sign document URL", err)
	}
	res.RetrievalRef = ref
	res.ExpiresIn = r.ttl
	return nil
}

// DocumentInfo reports whether a document exists in any supported format.
func (r *Resolver) DocumentInfo(ctx context.Context, projectID string) (bool, *time.Time, error) {
	for _, format := range Formats {
		res, err := r.Resolve(ctx, projectID, format)
		if err != nil {
			return false, nil, err
		}
		if res.Exists {
			return true, res.ModifiedAt, nil
		}
	}
	return false, nil, nil
}
