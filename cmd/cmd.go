// submodule cmd contains command definitions
package main

import (
	"strings"

	"github.com/desertthunder/oclettings/internal/formatter"
	"github.com/urfave/cli/v3"
)

func formatFlag() *cli.StringFlag {
	names := make([]string, len(formatter.Formats))
	for i, f := range formatter.Formats {
		names[i] = string(f)
	}
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format (" + strings.Join(names, ", ") + ")",
		Value:   string(formatter.Text),
	}
}

// setupCommand handles setup operations for the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Create the config file if missing, initialize the database and run all migrations",
				Action: r.SetupDatabase,
			},
		},
	}
}

// migrateCommand handles schema and legacy data migrations
func migrateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Schema and legacy data migrations",
		Commands: []*cli.Command{
			{
				Name:   "up",
				Usage:  "Apply all pending migrations",
				Action: r.MigrateUp,
			},
			{
				Name:   "down",
				Usage:  "Roll back the most recent migration",
				Action: r.MigrateDown,
			},
			{
				Name:  "status",
				Usage: "List migrations and whether they are applied",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.MigrateStatus,
			},
			{
				Name:  "legacy",
				Usage: "Copy the legacy oc_lettings_site tables into the new tables",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.MigrateLegacy,
			},
			{
				Name:   "rollback",
				Usage:  "Delete all copied profiles, lettings and addresses",
				Action: r.MigrateRollback,
			},
		},
	}
}

// serveCommand starts the web site
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the lettings site over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to listen on (overrides server.host)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on (overrides server.port)",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the site in the default browser",
			},
		},
		Action: r.Serve,
	}
}

// lettingsCommand handles letting lookups
func lettingsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "lettings",
		Usage: "Browse lettings",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List every letting",
				Flags:  []cli.Flag{formatFlag()},
				Action: r.LettingsList,
			},
			{
				Name:  "show",
				Usage: "Show one letting by id",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.LettingsShow,
			},
		},
	}
}

// profilesCommand handles profile lookups
func profilesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "profiles",
		Usage: "Browse profiles",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List every profile",
				Flags:  []cli.Flag{formatFlag()},
				Action: r.ProfilesList,
			},
			{
				Name:  "show",
				Usage: "Show one profile by username",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "username"},
				},
				Action: r.ProfilesShow,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for browsing lettings and profiles.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive terminal browser",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Where logs go while the TUI owns the terminal",
				Value: "./tmp/oclettings-tui.log",
			},
		},
		Action: r.TUI,
	}
}
