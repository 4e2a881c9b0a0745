package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/desertthunder/oclettings/internal/formatter"
	"github.com/desertthunder/oclettings/internal/shared"
	"github.com/urfave/cli/v3"
)

// LettingsList prints every letting in the format chosen by --format.
func (r *Runner) LettingsList(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	lettings, _, err := r.resolvers()
	if err != nil {
		return err
	}

	list, err := lettings.List(ctx)
	if err != nil {
		return err
	}

	out, err := formatter.Lettings(format, list)
	if err != nil {
		return err
	}

	_, err = r.output.Write(out)
	return err
}

// LettingsShow prints the letting with the given id.
func (r *Runner) LettingsShow(ctx context.Context, cmd *cli.Command) error {
	arg := cmd.StringArg("id")
	if arg == "" {
		return fmt.Errorf("%w: letting id", shared.ErrMissingArgument)
	}

	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 0 {
		return fmt.Errorf("%w: letting id %q is not a number", shared.ErrInvalidArgument, arg)
	}

	lettings, _, err := r.resolvers()
	if err != nil {
		return err
	}

	letting, err := lettings.Get(ctx, id)
	if err != nil {
		return err
	}

	r.writePlainHeader(letting.Title)
	return r.writePlain("%s\n", formatter.LettingDetail(letting))
}
