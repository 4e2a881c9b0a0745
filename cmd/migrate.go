package main

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/oclettings/internal/shared"
	"github.com/desertthunder/oclettings/internal/tasks"
	"github.com/desertthunder/oclettings/internal/ui"
	"github.com/urfave/cli/v3"
)

func (r *Runner) migrationLogger() *log.Logger {
	return shared.WithLogger(r.logger, "component", "migrator")
}

// MigrateUp applies every pending schema and data migration.
func (r *Runner) MigrateUp(ctx context.Context, cmd *cli.Command) error {
	db, err := r.Database()
	if err != nil {
		return err
	}

	if err := shared.RunMigrations(db, tasks.DataMigrations(r.migrationLogger())...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	r.writePlain("%s\n", ui.Success("✓ Migrations applied"))
	return r.MigrateStatus(ctx, cmd)
}

// MigrateDown rolls back the most recently applied migration.
func (r *Runner) MigrateDown(ctx context.Context, cmd *cli.Command) error {
	db, err := r.Database()
	if err != nil {
		return err
	}

	err = shared.RollbackMigration(db, tasks.DataMigrations(r.migrationLogger())...)
	if errors.Is(err, shared.ErrNoMigrations) {
		r.writePlain("%s\n", ui.Warning("Nothing to roll back"))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}

	r.writePlain("%s\n", ui.Success("✓ Rolled back latest migration"))
	return nil
}

// MigrateStatus prints every known migration with its applied state.
func (r *Runner) MigrateStatus(ctx context.Context, cmd *cli.Command) error {
	db, err := r.Database()
	if err != nil {
		return err
	}

	states, err := shared.MigrationStatus(db, tasks.DataMigrations(r.migrationLogger())...)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(states, true)
	}

	r.writePlainHeader("Migrations")
	for _, s := range states {
		mark := " "
		if s.Applied {
			mark = "✓"
		}
		r.writePlain("[%s] %04d %s\n", mark, s.Version, s.Name)
	}
	return nil
}

// MigrateLegacy copies the legacy oc_lettings_site tables into the new tables in one transaction and prints counts.
//
// The schema migrations are applied first; the data steps are not recorded, so run it on a database where
// "migrate up" has not copied the data already.
func (r *Runner) MigrateLegacy(ctx context.Context, cmd *cli.Command) error {
	db, err := r.Database()
	if err != nil {
		return err
	}

	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run schema migrations: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	progress := make(chan tasks.ProgressUpdate, 16)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for update := range progress {
			r.writePlain("  %-16s %s\n", update.Phase, update.Message)
		}
	}()

	r.writePlainHeader("Legacy migration")
	result, err := tasks.NewTxMigrator(tx, r.migrationLogger()).WithProgress(progress).Run(ctx)
	close(progress)
	wg.Wait()
	if err != nil {
		return fmt.Errorf("legacy migration failed: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit legacy migration: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, true)
	}

	r.writePlainln("%s", ui.Success(fmt.Sprintf("✓ Copied %d rows", result.Total())))
	r.writePlain("  Addresses: %d\n", result.Addresses)
	r.writePlain("  Lettings:  %d\n", result.Lettings)
	r.writePlain("  Profiles:  %d\n", result.Profiles)
	return nil
}

// MigrateRollback deletes every profile, letting and address copied by the legacy migration.
func (r *Runner) MigrateRollback(ctx context.Context, cmd *cli.Command) error {
	db, err := r.Database()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	m := tasks.NewTxMigrator(tx, r.migrationLogger())
	if err := m.RollbackProfiles(ctx); err != nil {
		return err
	}
	if err := m.RollbackLettings(ctx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rollback: %w", err)
	}

	r.writePlain("%s\n", ui.Warning("Removed all profiles, lettings and addresses"))
	return nil
}
