// package tasks implements the drivers that move user records into and out of
// the remote identity provider.
package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/umx/internal/audit"
	"github.com/desertthunder/umx/internal/models"
	"github.com/desertthunder/umx/internal/records"
	"github.com/desertthunder/umx/internal/services"
	"github.com/desertthunder/umx/internal/shared"
	"golang.org/x/time/rate"
)

// MigrationResult contains the counters for one migration run.
//
// Counters are owned by the engine for the duration of the run and read once
// at completion for the summary report.
type MigrationResult struct {
	Total         int // Records in the input, including those before the offset
	Submitted     int // Records actually processed (after offset slicing)
	Migrated      int // Successfully created remote users
	AlreadyExists int // Duplicates reported by the provider (422)
	Failed        int // Validation failures and non-retryable provider errors
	Retries       int // Rate-limit retries performed across the whole run
}

// MigrationOpts contains pacing and credential-shape settings for a run.
type MigrationOpts struct {
	Delay      time.Duration         // Fixed pacing interval applied before every submission
	RetryDelay time.Duration         // Cooldown after a rate-limit response
	Offset     int                   // Index to resume from; earlier records are untouched
	Hasher     models.PasswordHasher // Algorithm tag for pre-hashed password digests
}

// MigrationEngine drives the sequential record-by-record migration.
//
// Per record the engine paces, validates, submits, classifies the outcome,
// and retries rate-limited submissions after a cooldown. There is no
// concurrency: the provider enforces a global per-credential rate limit, so
// serialized requests with explicit pacing are the backpressure strategy.
type MigrationEngine struct {
	sink    services.Sink
	audit   *audit.Writer
	logger  *log.Logger
	limiter *rate.Limiter
	opts    MigrationOpts
}

// NewMigrationEngine creates a MigrationEngine with the provided sink, audit
// writer, and pacing options.
func NewMigrationEngine(sink services.Sink, auditLog *audit.Writer, logger *log.Logger, opts MigrationOpts) *MigrationEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	if opts.Hasher == "" {
		opts.Hasher = models.DefaultPasswordHasher
	}

	var limiter *rate.Limiter
	if opts.Delay > 0 {
		limiter = rate.NewLimiter(rate.Every(opts.Delay), 1)
		// The limiter starts with a full token; drain it so the pacing
		// interval applies to the first record as well.
		limiter.Allow()
	}

	return &MigrationEngine{
		sink:    sink,
		audit:   auditLog,
		logger:  logger,
		limiter: limiter,
		opts:    opts,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Run migrates every record at index >= Offset, strictly in order, one at a
// time. Per-record failures never abort the run; they are logged, written to
// the audit log, and counted. The only fatal conditions are a nil sink and
// context cancellation.
func (e *MigrationEngine) Run(ctx context.Context, users []models.UserRecord, progress chan<- ProgressUpdate) (*MigrationResult, error) {
	if e.sink == nil {
		return nil, fmt.Errorf("%w: sink not initialized", shared.ErrServiceUnavailable)
	}

	result := &MigrationResult{Total: len(users)}

	if e.opts.Offset >= len(users) {
		if e.opts.Offset > 0 {
			e.logger.Warn("offset beyond end of input, nothing to do", "offset", e.opts.Offset, "total", len(users))
		}
		return result, nil
	}

	for i, user := range users[e.opts.Offset:] {
		index := e.opts.Offset + i

		// Unconditional throttle, applied once per record regardless of outcome.
		if e.limiter != nil {
			if err := e.limiter.Wait(ctx); err != nil {
				return result, err
			}
		}

		result.Submitted++
		sendProgress(progress, submitUpdate(index+1, len(users), user.UserID))

		validated, err := records.Validate(user)
		if err != nil {
			e.logger.Error("record failed validation", "index", index, "userId", user.UserID, "err", err)
			e.appendAudit(audit.EntryForError(user.UserID, err))
			result.Failed++
			sendProgress(progress, skippedUpdate(index+1, len(users), user.UserID, err))
			continue
		}

		err = e.submit(ctx, validated, index, len(users), result, progress)
		switch {
		case err == nil:
			result.Migrated++
			sendProgress(progress, migratedUpdate(index+1, len(users), validated.UserID))

		case services.IsConflict(err):
			result.AlreadyExists++
			e.logger.Info("user already exists", "userId", validated.UserID)
			e.appendAudit(audit.EntryForError(validated.UserID, err))
			sendProgress(progress, duplicateUpdate(index+1, len(users), validated.UserID))

		case ctx.Err() != nil:
			return result, ctx.Err()

		default:
			result.Failed++
			e.logger.Error("failed to migrate user", "userId", validated.UserID, "err", err)
			e.appendAudit(audit.EntryForError(validated.UserID, err))
			sendProgress(progress, skippedUpdate(index+1, len(users), validated.UserID, err))
		}
	}

	sendProgress(progress, doneUpdate(fmt.Sprintf("Migrated %d of %d records", result.Migrated, result.Submitted), result))
	return result, nil
}

// submit attempts one record against the sink, retrying after the cooldown for
// as long as the provider answers with a rate-limit error. The loop is
// unbounded but every retry is counted and logged; the pacing delay is not
// re-applied on retries.
func (e *MigrationEngine) submit(ctx context.Context, user models.UserRecord, index, total int, result *MigrationResult, progress chan<- ProgressUpdate) error {
	params := services.ParamsForRecord(user, e.opts.Hasher)

	attempt := 0
	for {
		_, err := e.sink.CreateUser(ctx, params)
		if err == nil || !services.IsRateLimited(err) {
			return err
		}

		attempt++
		result.Retries++
		e.logger.Warn("rate limited, cooling down", "userId", user.UserID, "attempt", attempt, "cooldown", e.opts.RetryDelay)
		sendProgress(progress, retryUpdate(index+1, total, user.UserID, attempt))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(e.opts.RetryDelay):
		}
	}
}

// appendAudit writes an audit entry, logging instead of failing the run when
// the write itself errors.
func (e *MigrationEngine) appendAudit(entry audit.Entry) {
	if e.audit == nil {
		return
	}
	if err := e.audit.Append(entry); err != nil {
		e.logger.Error("failed to write audit entry", "userId", entry.UserID, "err", err)
	}
}
