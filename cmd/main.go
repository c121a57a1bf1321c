package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/umx/internal/services"
	"github.com/desertthunder/umx/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	if err := config.ApplyEnv(); err != nil {
		logger.Fatalf("configuration error: %v", err)
	}

	var sink services.Sink
	if config.Migration.SecretKey != "" {
		sink = services.NewClerkService(config.Migration.SecretKey, "", nil)
	}

	runner := NewRunner(RunnerOpts{
		Config: config,
		Sink:   sink,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "umx",
		Usage:    "Bulk-migrate user records into Clerk, with a dev-instance cleanup utility",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
