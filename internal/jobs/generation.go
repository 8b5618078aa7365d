// Package jobs hands document generation requests off to an external worker.
// It records each request in a status ledger and pushes it onto a queue; it
// never waits for the generation to complete.
package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StatusProcessing is the state of a job the worker has not yet finished.
const StatusProcessing = "processing"

// ErrJobNotFound is returned when no ledger entry exists for an acta id.
var ErrJobNotFound = errors.New("generation job not found")

// Job is a single generation request.
type Job struct {
	ActaID              string    `json:"acta_id"`
	ProjectID           string    `json:"project_id"`
	PMEmail             string    `json:"pm_email,omitempty"`
	Status              string    `json:"status"`
	EstimatedCompletion string    `json:"estimated_completion"`
	RequestedAt         time.Time `json:"requested_at"`
}

// Ledger stores job entries by key. It matches the fiber storage interface.
type Ledger interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte, exp time.Duration) error
}

// Queue accepts encoded jobs for the generation worker.
type Queue interface {
	Enqueue(ctx context.Context, payload []byte) error
}

// Dispatcher triggers generation jobs.
type Dispatcher struct {
	ledger Ledger
	queue  Queue
	eta    string
	ttl    time.Duration
	now    func() time.Time
}

// NewDispatcher creates a dispatcher writing to ledger and queue.
func NewDispatcher(ledger Ledger, queue Queue, eta string, ttl time.Duration) *Dispatcher {
	return &Dispatcher{
		ledger: ledger,
		queue:  queue,
		eta:    eta,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Trigger records and enqueues a generation job for projectID.
func (d *Dispatcher) Trigger(ctx context.Context, projectID, pmEmail string) (*Job, error) {
	job := &Job{
		ActaID:              NewActaID(projectID),
		ProjectID:           projectID,
		PMEmail:             pmEmail,
		Status:              StatusProcessing,
		EstimatedCompletion: d.eta,
		RequestedAt:         d.now().UTC(),
	}

	payload, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("failed to encode job: %w", err)
	}

	if err := d.ledger.Set(ledgerKey(job.ActaID), payload, d.ttl); err != nil {
		return nil, fmt.Errorf("failed to record job %s: %w", job.ActaID, err)
	}
	if err := d.queue.Enqueue(ctx, payload); err != nil {
		return nil, fmt.Errorf("failed to enqueue job %s: %w", job.ActaID, err)
	}

	return job, nil
}

// TriggerAll triggers one job per project and reports which ids were queued.
func (d *Dispatcher) TriggerAll(ctx context.Context, projectIDs []string, pmEmail string) (success, failed []string) {
	success = []string{}
	failed = []string{}
	for _, id := range projectIDs {
		if ctx.Err() != nil {
			failed = append(failed, id)
			continue
		}
		if _, err := d.Trigger(ctx, id, pmEmail); err != nil {
			failed = append(failed, id)
			continue
		}
		success = append(success, id)
	}
	return success, failed
}

// Status returns the ledger entry for actaID.
func (d *Dispatcher) Status(actaID string) (*Job, error) {
	data, err := d.ledger.Get(ledgerKey(actaID))
	if err != nil {
		return nil, fmt.Errorf("failed to read job %s: %w", actaID, err)
	}
	if len(data) == 0 {
		return nil, ErrJobNotFound
	}

	var job Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to decode job %s: %w", actaID, err)
	}
	return &job, nil
}

// NewActaID derives a unique document id for projectID.
func NewActaID(projectID string) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "acta_" + projectID + "_" + token[:8]
}

func ledgerKey(actaID string) string {
	return "acta:job:" + actaID
}
