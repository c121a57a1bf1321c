package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/umx/internal/audit"
	"github.com/desertthunder/umx/internal/models"
	"github.com/desertthunder/umx/internal/records"
	"github.com/desertthunder/umx/internal/shared"
	"github.com/desertthunder/umx/internal/tasks"
	"github.com/desertthunder/umx/internal/ui"
	"github.com/urfave/cli/v3"
)

// Migrate runs the full pipeline: guard, load, merge, and drive every record
// at or after the configured offset into Clerk.
func (r *Runner) Migrate(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Migration

	if v := cmd.Int("offset"); v >= 0 {
		cfg.Offset = v
	}
	if v := cmd.Int("delay"); v >= 0 {
		cfg.DelayMS = v
	}
	if v := cmd.Int("retry-delay"); v >= 0 {
		cfg.RetryDelayMS = v
	}
	if v := cmd.String("hasher"); v != "" {
		hasher, err := models.ParseHasher(v)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
		}
		cfg.Hasher = hasher
	}

	dryRun := cmd.Bool("dry-run")

	// Safety guard runs before any record file is touched.
	if !dryRun {
		if err := r.config.GuardMigration(); err != nil {
			return err
		}
		if r.sink == nil {
			return fmt.Errorf("%w: no API client", shared.ErrMissingCredentials)
		}
	}

	usersPath := cmd.StringArg("users")
	phonesPath := cmd.StringArg("phones")

	r.logger.Info("loading export files", "users", usersPath, "phones", phonesPath)

	users, err := records.LoadUsers(usersPath)
	if err != nil {
		return err
	}

	phones, err := records.LoadPhones(phonesPath)
	if err != nil {
		return err
	}

	merged := records.MergePhones(users, phones)

	if dryRun {
		return r.writeValidationReport(merged, false)
	}

	auditDir := cmd.String("audit-dir")
	if auditDir == "" {
		auditDir = r.config.Audit.Dir
	}

	auditLog, err := audit.NewWriter(auditDir, "migration-log", time.Now())
	if err != nil {
		return err
	}
	defer auditLog.Close()

	r.logger.Info("starting migration",
		"records", len(merged), "offset", cfg.Offset,
		"delay", cfg.Delay(), "retryDelay", cfg.RetryDelay(), "hasher", cfg.Hasher)

	engine := tasks.NewMigrationEngine(r.sink, auditLog, r.logger, tasks.MigrationOpts{
		Delay:      cfg.Delay(),
		RetryDelay: cfg.RetryDelay(),
		Offset:     cfg.Offset,
		Hasher:     cfg.Hasher,
	})

	db, repo, err := r.openLedger()
	if err != nil {
		r.logger.Warn("run ledger unavailable", "err", err)
	}
	if db != nil {
		defer db.Close()
	}

	run := models.NewRun(models.RunKindMigration, cfg.Offset, auditLog.Path())
	r.recordRunStart(repo, run)

	progressCh := make(chan tasks.ProgressUpdate, 50)

	var result *tasks.MigrationResult
	var runErr error

	if cmd.Bool("ui") {
		done := make(chan struct{})
		go func() {
			result, runErr = engine.Run(ctx, merged, progressCh)
			close(progressCh)
			close(done)
		}()

		program := tea.NewProgram(ui.NewModel("Migrating users to Clerk", progressCh))
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to render progress: %w", err)
		}
		<-done
	} else {
		go func() {
			for update := range progressCh {
				switch update.Phase {
				case tasks.Retry:
					r.writePlain("⏳ %s\n", update.Message)
				case tasks.Migrated, tasks.Duplicate, tasks.Skipped:
					r.writePlain("%s\n", update.Message)
				}
			}
		}()

		result, runErr = engine.Run(ctx, merged, progressCh)
		close(progressCh)
	}

	status := models.RunStatusCompleted
	if runErr != nil {
		status = models.RunStatusFailed
	}

	var counts models.RunCounts
	if result != nil {
		counts = models.RunCounts{
			Total:         result.Total,
			Migrated:      result.Migrated,
			AlreadyExists: result.AlreadyExists,
			Failed:        result.Failed,
		}
	}
	r.recordRunComplete(repo, run, status, counts)

	if runErr != nil {
		return runErr
	}

	// Partial failures are reported via counters and the audit log only; the
	// process still exits zero.
	r.writePlain("\n")
	r.writePlainHeader("Migration Complete!")
	r.writePlain("Total records: %d\n", result.Total)
	r.writePlain("Migrated: %d\n", result.Migrated)
	r.writePlain("Already existed: %d\n", result.AlreadyExists)
	r.writePlain("Failed: %d\n", result.Failed)
	if result.Retries > 0 {
		r.writePlain("Rate-limit retries: %d\n", result.Retries)
	}
	r.writePlain("Audit log: %s\n", auditLog.Path())

	return nil
}
