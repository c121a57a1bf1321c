package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/umx/internal/audit"
	"github.com/desertthunder/umx/internal/models"
	"github.com/desertthunder/umx/internal/shared"
	"github.com/desertthunder/umx/internal/tasks"
	"github.com/desertthunder/umx/internal/ui"
	"github.com/urfave/cli/v3"
)

// Cleanup deletes every user from a non-production instance. The production
// guard is a hard invariant; the run aborts on the first deletion error.
func (r *Runner) Cleanup(ctx context.Context, cmd *cli.Command) error {
	if err := r.config.GuardCleanup(); err != nil {
		return err
	}
	if r.sink == nil {
		return fmt.Errorf("%w: no API client", shared.ErrMissingCredentials)
	}

	if !cmd.Bool("yes") {
		r.writePlain("Delete ALL users from this instance? Type 'yes' to continue: ")
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if strings.TrimSpace(line) != "yes" {
			r.writePlain("Aborted.\n")
			return nil
		}
	}

	auditDir := cmd.String("audit-dir")
	if auditDir == "" {
		auditDir = r.config.Audit.Dir
	}

	auditLog, err := audit.NewWriter(auditDir, "cleanup-log", time.Now())
	if err != nil {
		return err
	}
	defer auditLog.Close()

	r.logger.Info("starting cleanup", "audit", auditLog.Path())

	engine := tasks.NewCleanupEngine(r.sink, auditLog, r.logger)

	db, repo, err := r.openLedger()
	if err != nil {
		r.logger.Warn("run ledger unavailable", "err", err)
	}
	if db != nil {
		defer db.Close()
	}

	run := models.NewRun(models.RunKindCleanup, 0, auditLog.Path())
	r.recordRunStart(repo, run)

	progressCh := make(chan tasks.ProgressUpdate, 50)

	var result *tasks.CleanupResult
	var runErr error

	if cmd.Bool("ui") {
		done := make(chan struct{})
		go func() {
			result, runErr = engine.Run(ctx, progressCh)
			close(progressCh)
			close(done)
		}()

		program := tea.NewProgram(ui.NewModel("Deleting users from Clerk", progressCh))
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to render progress: %w", err)
		}
		<-done
	} else {
		go func() {
			for update := range progressCh {
				r.writePlain("%s\n", update.Message)
			}
		}()

		result, runErr = engine.Run(ctx, progressCh)
		close(progressCh)
	}

	status := models.RunStatusCompleted
	if runErr != nil {
		status = models.RunStatusFailed
	}

	var counts models.RunCounts
	if result != nil {
		counts = models.RunCounts{Total: result.Listed, Deleted: result.Deleted}
	}
	r.recordRunComplete(repo, run, status, counts)

	if runErr != nil {
		return runErr
	}

	r.writePlain("\n")
	r.writePlainHeader("Cleanup Complete!")
	r.writePlain("Users found: %d\n", result.Listed)
	r.writePlain("Users deleted: %d\n", result.Deleted)
	r.writePlain("Audit log: %s\n", auditLog.Path())

	return nil
}
