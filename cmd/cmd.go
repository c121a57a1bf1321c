// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// migrateCommand runs the bulk migration pipeline
func migrateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Migrate user records from export files into Clerk",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name:  "users",
				Value: "users.json",
			},
			&cli.StringArg{
				Name:  "phones",
				Value: "users-phone-numbers.json",
			},
		},
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "offset",
				Usage: "Record index to resume from (skips earlier records)",
				Value: -1,
			},
			&cli.IntFlag{
				Name:  "delay",
				Usage: "Pacing delay between records in milliseconds",
				Value: -1,
			},
			&cli.IntFlag{
				Name:  "retry-delay",
				Usage: "Cooldown after a rate-limit response in milliseconds",
				Value: -1,
			},
			&cli.StringFlag{
				Name:  "hasher",
				Usage: "Password hasher tag for pre-hashed digests",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Merge and validate only; no network calls",
			},
			&cli.BoolFlag{
				Name:  "ui",
				Usage: "Render interactive progress instead of plain output",
			},
			&cli.StringFlag{
				Name:  "audit-dir",
				Usage: "Directory for the audit log file",
			},
		},
		Action: r.Migrate,
	}
}

// cleanupCommand wipes all users from a non-production instance
func cleanupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cleanup",
		Usage: "Delete every user from a non-production Clerk instance",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "yes",
				Usage: "Skip the confirmation prompt",
			},
			&cli.BoolFlag{
				Name:  "ui",
				Usage: "Render interactive progress instead of plain output",
			},
			&cli.StringFlag{
				Name:  "audit-dir",
				Usage: "Directory for the audit log file",
			},
		},
		Action: r.Cleanup,
	}
}

// recordsCommand handles offline record operations
func recordsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "records",
		Usage: "Offline record operations",
		Commands: []*cli.Command{
			{
				Name:  "validate",
				Usage: "Merge and validate export files without submitting anything",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name:  "users",
						Value: "users.json",
					},
					&cli.StringArg{
						Name:  "phones",
						Value: "users-phone-numbers.json",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output the validation report as JSON",
					},
				},
				Action: r.RecordsValidate,
			},
		},
	}
}

// runsCommand lists the run ledger
func runsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "runs",
		Usage: "List past migration and cleanup runs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "kind",
				Usage: "Filter by run kind (migration or cleanup)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Runs,
	}
}

// setupCommand handles setup operations for database and configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize the run-ledger database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}
