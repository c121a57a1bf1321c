package repositories

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/desertthunder/umx/internal/models"
	"github.com/desertthunder/umx/internal/shared"
	_ "github.com/mattn/go-sqlite3"
)

func openLedger(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

func TestRunRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		t.Run("Assigns ID And Sequence", func(t *testing.T) {
			repo := NewRunRepository(openLedger(t))

			first := models.NewRun(models.RunKindMigration, 0, "migration-log.json")
			if err := repo.Create(first); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if first.ID() == "" {
				t.Error("expected generated ID")
			}
			if first.Sequence() != 1 {
				t.Errorf("expected sequence 1, got %d", first.Sequence())
			}

			second := models.NewRun(models.RunKindCleanup, 0, "")
			if err := repo.Create(second); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if second.Sequence() != 2 {
				t.Errorf("expected sequence 2, got %d", second.Sequence())
			}
		})

		t.Run("Rejects Invalid Kind", func(t *testing.T) {
			repo := NewRunRepository(openLedger(t))

			run := models.NewRun(models.RunKind("restore"), 0, "")
			if err := repo.Create(run); err == nil || !strings.Contains(err.Error(), "invalid run kind") {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	})

	t.Run("Get", func(t *testing.T) {
		repo := NewRunRepository(openLedger(t))

		run := models.NewRun(models.RunKindMigration, 5, "migration-log.json")
		if err := repo.Create(run); err != nil {
			t.Fatalf("failed to create run: %v", err)
		}

		got, err := repo.Get(run.ID())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if got.Kind() != models.RunKindMigration || got.Status() != models.RunStatusRunning {
			t.Errorf("unexpected run: kind=%s status=%s", got.Kind(), got.Status())
		}
		if got.Offset() != 5 || got.AuditPath() != "migration-log.json" {
			t.Errorf("unexpected run fields: offset=%d audit=%s", got.Offset(), got.AuditPath())
		}
		if got.CompletedAt() != nil {
			t.Error("expected running run to have no completion time")
		}

		t.Run("Not Found", func(t *testing.T) {
			if _, err := repo.Get("missing"); err == nil {
				t.Error("expected error for unknown run")
			}
		})
	})

	t.Run("Update", func(t *testing.T) {
		repo := NewRunRepository(openLedger(t))

		run := models.NewRun(models.RunKindMigration, 0, "")
		if err := repo.Create(run); err != nil {
			t.Fatalf("failed to create run: %v", err)
		}

		run.Complete(models.RunStatusCompleted, models.RunCounts{Total: 10, Migrated: 8, AlreadyExists: 1, Failed: 1})
		if err := repo.Update(run); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		got, err := repo.Get(run.ID())
		if err != nil {
			t.Fatalf("failed to reload run: %v", err)
		}

		if got.Status() != models.RunStatusCompleted {
			t.Errorf("expected completed status, got %s", got.Status())
		}
		if counts := got.Counts(); counts.Migrated != 8 || counts.AlreadyExists != 1 || counts.Failed != 1 {
			t.Errorf("unexpected counters: %+v", counts)
		}
		if got.CompletedAt() == nil {
			t.Error("expected completion time to be set")
		}

		t.Run("Unknown Run", func(t *testing.T) {
			ghost := models.NewRun(models.RunKindMigration, 0, "")
			ghost.SetID("ghost")
			if err := repo.Update(ghost); err == nil {
				t.Error("expected error for unknown run")
			}
		})
	})

	t.Run("Delete", func(t *testing.T) {
		repo := NewRunRepository(openLedger(t))

		run := models.NewRun(models.RunKindCleanup, 0, "")
		if err := repo.Create(run); err != nil {
			t.Fatalf("failed to create run: %v", err)
		}

		if err := repo.Delete(run.ID()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, err := repo.Get(run.ID()); err == nil {
			t.Error("expected soft-deleted run to be hidden")
		}
		if err := repo.Delete(run.ID()); err == nil {
			t.Error("expected second delete to fail")
		}
	})

	t.Run("List", func(t *testing.T) {
		repo := NewRunRepository(openLedger(t))

		migration := models.NewRun(models.RunKindMigration, 0, "")
		if err := repo.Create(migration); err != nil {
			t.Fatalf("failed to create migration run: %v", err)
		}
		migration.Complete(models.RunStatusCompleted, models.RunCounts{Total: 3, Migrated: 3})
		if err := repo.Update(migration); err != nil {
			t.Fatalf("failed to complete migration run: %v", err)
		}

		cleanup := models.NewRun(models.RunKindCleanup, 0, "")
		if err := repo.Create(cleanup); err != nil {
			t.Fatalf("failed to create cleanup run: %v", err)
		}

		t.Run("All Runs", func(t *testing.T) {
			runs, err := repo.List(nil)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(runs) != 2 {
				t.Errorf("expected 2 runs, got %d", len(runs))
			}
		})

		t.Run("By Kind", func(t *testing.T) {
			runs, err := repo.List(map[string]any{"kind": models.RunKindCleanup})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(runs) != 1 || runs[0].Kind() != models.RunKindCleanup {
				t.Errorf("expected only cleanup runs, got %d", len(runs))
			}
		})

		t.Run("By Status", func(t *testing.T) {
			runs, err := repo.List(map[string]any{"status": models.RunStatusCompleted})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(runs) != 1 || runs[0].Status() != models.RunStatusCompleted {
				t.Errorf("expected only completed runs, got %d", len(runs))
			}
		})
	})
}

func TestNextSequence(t *testing.T) {
	db := openLedger(t)

	for want := 1; want <= 3; want++ {
		got, err := NextSequence(db, "runs")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got != want {
			t.Errorf("expected sequence %d, got %d", want, got)
		}
	}

	t.Run("Unknown Entity", func(t *testing.T) {
		if _, err := NextSequence(db, "widgets"); err == nil {
			t.Error("expected error for unknown sequence entity")
		}
	})
}
