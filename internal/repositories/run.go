package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/umx/internal/models"
	"github.com/desertthunder/umx/internal/shared"
)

// RunRepository persists the run ledger: one row per migration or cleanup
// invocation with status, offset, and final counters.
//
// The ledger is best-effort bookkeeping for the operator. Callers treat write
// failures as loggable, never fatal.
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new RunRepository with the given database connection
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create inserts a new run into the database with generated ID and sequence
func (r *RunRepository) Create(run *models.Run) error {
	sequence, err := NextSequence(r.db, "runs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	run.SetID(id)
	run.SetSequence(sequence)

	if err := run.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO runs (
			id, sequence, kind, status, offset_index, total, migrated,
			already_exists, failed, deleted, audit_path, started_at,
			completed_at, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	counts := run.Counts()

	var auditPath any = run.AuditPath()
	if auditPath == "" {
		auditPath = nil
	}

	_, err = r.db.Exec(query,
		id,
		sequence,
		run.Kind(),
		run.Status(),
		run.Offset(),
		counts.Total,
		counts.Migrated,
		counts.AlreadyExists,
		counts.Failed,
		counts.Deleted,
		auditPath,
		run.StartedAt(),
		run.CompletedAt(),
		run.CreatedAt(),
		run.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	return nil
}

// Get retrieves a run by ID, excluding soft-deleted runs
func (r *RunRepository) Get(id string) (*models.Run, error) {
	query := `
		SELECT
			id, sequence, kind, status, offset_index, total, migrated,
			already_exists, failed, deleted, audit_path, started_at,
			completed_at, created_at, updated_at, deleted_at
		FROM runs
		WHERE id = ? AND deleted_at IS NULL
	`

	run, err := scanRun(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return run, nil
}

// Update persists the run's current status and counters
func (r *RunRepository) Update(run *models.Run) error {
	query := `
		UPDATE runs
		SET status = ?, total = ?, migrated = ?, already_exists = ?,
			failed = ?, deleted = ?, completed_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	counts := run.Counts()

	res, err := r.db.Exec(query,
		run.Status(),
		counts.Total,
		counts.Migrated,
		counts.AlreadyExists,
		counts.Failed,
		counts.Deleted,
		run.CompletedAt(),
		run.UpdatedAt(),
		run.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("run not found: %s", run.ID())
	}

	return nil
}

// Delete soft-deletes a run by setting its deleted_at timestamp
func (r *RunRepository) Delete(id string) error {
	query := `UPDATE runs SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`

	res, err := r.db.Exec(query, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("run not found: %s", id)
	}

	return nil
}

// List retrieves runs matching the given criteria, most recent first.
// Supported criteria: "kind" (models.RunKind or string), "status".
func (r *RunRepository) List(criteria map[string]any) ([]*models.Run, error) {
	query := `
		SELECT
			id, sequence, kind, status, offset_index, total, migrated,
			already_exists, failed, deleted, audit_path, started_at,
			completed_at, created_at, updated_at, deleted_at
		FROM runs
		WHERE deleted_at IS NULL
	`

	var args []any
	if kind, ok := criteria["kind"]; ok {
		query += " AND kind = ?"
		args = append(args, fmt.Sprintf("%v", kind))
	}
	if status, ok := criteria["status"]; ok {
		query += " AND status = ?"
		args = append(args, fmt.Sprintf("%v", status))
	}

	query += " ORDER BY started_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return runs, nil
}

// scanner abstracts over *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanRun hydrates one Run from a runs row.
func scanRun(s scanner) (*models.Run, error) {
	var (
		id, kind, status                          string
		sequence, offset                          int
		total, migrated, exists, failed, deleted  int
		auditPath                                 sql.NullString
		startedAt, createdAt, updatedAt           time.Time
		completedAt, deletedAt                    sql.NullTime
	)

	err := s.Scan(&id, &sequence, &kind, &status, &offset, &total, &migrated,
		&exists, &failed, &deleted, &auditPath, &startedAt, &completedAt,
		&createdAt, &updatedAt, &deletedAt)
	if err != nil {
		return nil, err
	}

	counts := models.RunCounts{
		Total:         total,
		Migrated:      migrated,
		AlreadyExists: exists,
		Failed:        failed,
		Deleted:       deleted,
	}

	var completed, softDeleted *time.Time
	if completedAt.Valid {
		completed = &completedAt.Time
	}
	if deletedAt.Valid {
		softDeleted = &deletedAt.Time
	}

	run := &models.Run{}
	run.Hydrate(id, sequence, models.RunKind(kind), models.RunStatus(status),
		offset, counts, auditPath.String, startedAt, completed, createdAt,
		updatedAt, softDeleted)

	return run, nil
}
