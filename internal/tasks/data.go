package tasks

import (
	"context"
	"database/sql"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/oclettings/internal/repositories"
	"github.com/desertthunder/oclettings/internal/shared"
)

// Versions of the data steps, ordered after the schema migration that creates their tables.
const (
	LettingsDataVersion = 2
	ProfilesDataVersion = 3
)

// NewTxMigrator builds a [Migrator] whose legacy source and stores all run on tx.
func NewTxMigrator(tx *sql.Tx, logger *log.Logger) *Migrator {
	return NewMigrator(
		repositories.NewLegacyRepository(tx),
		repositories.NewAddressRepository(tx),
		repositories.NewLettingRepository(tx),
		repositories.NewProfileRepository(tx),
		logger,
	)
}

// DataMigrations returns the legacy copy as versioned steps for [shared.RunMigrations].
func DataMigrations(logger *log.Logger) []shared.Migration {
	return []shared.Migration{
		{
			Version: LettingsDataVersion,
			Name:    "migrate_lettings_data",
			Forward: func(tx *sql.Tx) error {
				ctx := context.Background()
				m := NewTxMigrator(tx, logger)
				if _, err := m.MigrateAddresses(ctx); err != nil {
					return err
				}
				_, err := m.MigrateLettings(ctx)
				return err
			},
			Reverse: func(tx *sql.Tx) error {
				return NewTxMigrator(tx, logger).RollbackLettings(context.Background())
			},
		},
		{
			Version: ProfilesDataVersion,
			Name:    "migrate_profiles_data",
			Forward: func(tx *sql.Tx) error {
				_, err := NewTxMigrator(tx, logger).MigrateProfiles(context.Background())
				return err
			},
			Reverse: func(tx *sql.Tx) error {
				return NewTxMigrator(tx, logger).RollbackProfiles(context.Background())
			},
		},
	}
}
