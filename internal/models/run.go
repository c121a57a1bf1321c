package models

import (
	"fmt"
	"time"
)

// RunKind distinguishes migration runs from cleanup runs in the run ledger.
type RunKind string

const (
	RunKindMigration RunKind = "migration"
	RunKindCleanup   RunKind = "cleanup"
)

// RunStatus tracks the lifecycle of a recorded run.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// RunCounts aggregates the per-run outcome counters. Migration runs use
// Migrated/AlreadyExists/Failed; cleanup runs use Deleted/Failed.
type RunCounts struct {
	Total         int
	Migrated      int
	AlreadyExists int
	Failed        int
	Deleted       int
}

// Run is a persistent record of one migration or cleanup invocation.
// Implements [Model] for use with the SQLite run ledger.
type Run struct {
	id          string
	sequence    int
	kind        RunKind
	status      RunStatus
	offset      int
	counts      RunCounts
	auditPath   string
	startedAt   time.Time
	completedAt *time.Time
	createdAt   time.Time
	updatedAt   time.Time
	deletedAt   *time.Time
}

// NewRun creates a running Run for the given kind, resume offset, and audit log path.
func NewRun(kind RunKind, offset int, auditPath string) *Run {
	now := time.Now().UTC()
	return &Run{
		kind:      kind,
		status:    RunStatusRunning,
		offset:    offset,
		auditPath: auditPath,
		startedAt: now,
		createdAt: now,
		updatedAt: now,
	}
}

func (r *Run) ID() string              { return r.id }
func (r *Run) Sequence() int           { return r.sequence }
func (r *Run) Kind() RunKind           { return r.kind }
func (r *Run) Status() RunStatus       { return r.status }
func (r *Run) Offset() int             { return r.offset }
func (r *Run) Counts() RunCounts       { return r.counts }
func (r *Run) AuditPath() string       { return r.auditPath }
func (r *Run) StartedAt() time.Time    { return r.startedAt }
func (r *Run) CompletedAt() *time.Time { return r.completedAt }
func (r *Run) CreatedAt() time.Time    { return r.createdAt }
func (r *Run) UpdatedAt() time.Time    { return r.updatedAt }
func (r *Run) DeletedAt() *time.Time   { return r.deletedAt }

func (r *Run) SetID(id string)       { r.id = id }
func (r *Run) SetSequence(seq int)   { r.sequence = seq }
func (r *Run) SetCounts(c RunCounts) { r.counts = c }

// Complete marks the run finished with the given status and final counters.
func (r *Run) Complete(status RunStatus, counts RunCounts) {
	now := time.Now().UTC()
	r.status = status
	r.counts = counts
	r.completedAt = &now
	r.updatedAt = now
}

// Validate checks the run's invariants before persistence.
func (r *Run) Validate() error {
	if r.id == "" {
		return fmt.Errorf("run ID is required")
	}

	switch r.kind {
	case RunKindMigration, RunKindCleanup:
	default:
		return fmt.Errorf("invalid run kind: %s", r.kind)
	}

	switch r.status {
	case RunStatusRunning, RunStatusCompleted, RunStatusFailed:
	default:
		return fmt.Errorf("invalid run status: %s", r.status)
	}

	if r.offset < 0 {
		return fmt.Errorf("offset must be non-negative")
	}

	return nil
}

// Hydrate restores a Run from persisted columns. Used only by the repository layer.
func (r *Run) Hydrate(id string, sequence int, kind RunKind, status RunStatus, offset int, counts RunCounts, auditPath string, startedAt time.Time, completedAt *time.Time, createdAt, updatedAt time.Time, deletedAt *time.Time) {
	r.id = id
	r.sequence = sequence
	r.kind = kind
	r.status = status
	r.offset = offset
	r.counts = counts
	r.auditPath = auditPath
	r.startedAt = startedAt
	r.completedAt = completedAt
	r.createdAt = createdAt
	r.updatedAt = updatedAt
	r.deletedAt = deletedAt
}
