package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/oclettings/internal/formatter"
	"github.com/desertthunder/oclettings/internal/shared"
	"github.com/urfave/cli/v3"
)

// ProfilesList prints every profile in the format chosen by --format.
func (r *Runner) ProfilesList(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	_, profiles, err := r.resolvers()
	if err != nil {
		return err
	}

	list, err := profiles.List(ctx)
	if err != nil {
		return err
	}

	out, err := formatter.Profiles(format, list)
	if err != nil {
		return err
	}

	_, err = r.output.Write(out)
	return err
}

// ProfilesShow prints the profile of the given username.
func (r *Runner) ProfilesShow(ctx context.Context, cmd *cli.Command) error {
	username := cmd.StringArg("username")
	if username == "" {
		return fmt.Errorf("%w: username", shared.ErrMissingArgument)
	}

	_, profiles, err := r.resolvers()
	if err != nil {
		return err
	}

	profile, err := profiles.Get(ctx, username)
	if err != nil {
		return err
	}

	r.writePlainHeader(profile.String())
	return r.writePlain("%s\n", formatter.ProfileDetail(profile))
}
