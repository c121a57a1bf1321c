package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/umx/internal/models"
	"github.com/urfave/cli/v3"
)

// runView is the JSON projection of a ledger row.
type runView struct {
	ID            string     `json:"id"`
	Sequence      int        `json:"sequence"`
	Kind          string     `json:"kind"`
	Status        string     `json:"status"`
	Offset        int        `json:"offset"`
	Total         int        `json:"total"`
	Migrated      int        `json:"migrated"`
	AlreadyExists int        `json:"alreadyExists"`
	Failed        int        `json:"failed"`
	Deleted       int        `json:"deleted"`
	AuditPath     string     `json:"auditPath,omitempty"`
	StartedAt     time.Time  `json:"startedAt"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
}

// Runs lists past migration and cleanup runs from the ledger.
func (r *Runner) Runs(ctx context.Context, cmd *cli.Command) error {
	db, repo, err := r.openLedger()
	if err != nil {
		return fmt.Errorf("failed to open run ledger: %w", err)
	}
	if repo == nil {
		r.writePlain("No run ledger found. Run 'umx setup database' first.\n")
		return nil
	}
	defer db.Close()

	criteria := map[string]any{}
	if kind := cmd.String("kind"); kind != "" {
		criteria["kind"] = kind
	}

	runs, err := repo.List(criteria)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		views := make([]runView, len(runs))
		for i, run := range runs {
			views[i] = viewForRun(run)
		}
		return r.writeJSON(views, true)
	}

	if len(runs) == 0 {
		r.writePlain("No runs recorded.\n")
		return nil
	}

	r.writePlainHeader("Runs")
	for _, run := range runs {
		view := viewForRun(run)
		r.writePlain("#%d %s %s started=%s", view.Sequence, view.Kind, view.Status, view.StartedAt.Format(time.RFC3339))
		switch run.Kind() {
		case models.RunKindMigration:
			r.writePlain(" migrated=%d existing=%d failed=%d offset=%d", view.Migrated, view.AlreadyExists, view.Failed, view.Offset)
		case models.RunKindCleanup:
			r.writePlain(" deleted=%d", view.Deleted)
		}
		r.writePlain("\n")
	}

	return nil
}

func viewForRun(run *models.Run) runView {
	counts := run.Counts()
	return runView{
		ID:            run.ID(),
		Sequence:      run.Sequence(),
		Kind:          string(run.Kind()),
		Status:        string(run.Status()),
		Offset:        run.Offset(),
		Total:         counts.Total,
		Migrated:      counts.Migrated,
		AlreadyExists: counts.AlreadyExists,
		Failed:        counts.Failed,
		Deleted:       counts.Deleted,
		AuditPath:     run.AuditPath(),
		StartedAt:     run.StartedAt(),
		CompletedAt:   run.CompletedAt(),
	}
}
