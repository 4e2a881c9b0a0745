package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/oclettings/internal/services"
	"github.com/desertthunder/oclettings/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	runner := NewRunner(RunnerOpts{Logger: logger})
	defer runner.Close()

	app := &cli.Command{
		Name:    "oclettings",
		Usage:   "Orange County Lettings site, legacy data migration and terminal browser",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Before:   runner.Before,
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		runner.Close()

		var notFound *services.NotFoundError
		if errors.As(err, &notFound) {
			runner.logger.Error(notFound.Error())
			os.Exit(1)
		}
		runner.logger.Fatalf("application error: %v", err)
	}
}
