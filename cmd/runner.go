package main

import (
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/umx/internal/models"
	"github.com/desertthunder/umx/internal/repositories"
	"github.com/desertthunder/umx/internal/services"
	"github.com/desertthunder/umx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	sink       services.Sink
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Sink       services.Sink
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		sink:       opts.Sink,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		migrateCommand, cleanupCommand, recordsCommand, runsCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// openLedger opens the run-ledger database when one is configured.
// Returns (nil, nil, nil) when the ledger is disabled; callers must close db.
func (r *Runner) openLedger() (*sql.DB, *repositories.RunRepository, error) {
	path := r.config.Database.Path
	if path == "" {
		return nil, nil, nil
	}

	if _, err := os.Stat(path); err != nil {
		// No ledger until `umx setup database` has been run.
		return nil, nil, nil
	}

	db, err := shared.NewDatabase(path)
	if err != nil {
		return nil, nil, err
	}

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)
	return db, repositories.NewRunRepository(db), nil
}

// recordRunStart best-effort inserts a ledger row for a starting run.
func (r *Runner) recordRunStart(repo *repositories.RunRepository, run *models.Run) {
	if repo == nil {
		return
	}
	if err := repo.Create(run); err != nil {
		r.logger.Warn("failed to record run in ledger", "err", err)
	}
}

// recordRunComplete best-effort updates the ledger row for a finished run.
func (r *Runner) recordRunComplete(repo *repositories.RunRepository, run *models.Run, status models.RunStatus, counts models.RunCounts) {
	if repo == nil || run.ID() == "" {
		return
	}
	run.Complete(status, counts)
	if err := repo.Update(run); err != nil {
		r.logger.Warn("failed to update run in ledger", "err", err)
	}
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return err
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
