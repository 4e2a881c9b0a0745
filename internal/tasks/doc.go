// Package tasks copies lettings and profiles out of the legacy oc_lettings_site tables with progress reporting.
//
// # Core Operations
//
// [Migrator] moves rows from a [LegacyModels] source into the new stores:
//
//  1. [Migrator.MigrateAddresses] : copies every address with its id
//  2. [Migrator.MigrateLettings] : re-resolves each letting's address by id, then copies it
//  3. [Migrator.MigrateProfiles] : copies every profile with its user id
//
// A missing legacy table is not an error; the step copies nothing.
// [Migrator.RollbackLettings] and [Migrator.RollbackProfiles] empty the new tables.
//
// # Progress Reporting
//
// Operations accept an optional channel of [ProgressUpdate].
// Updates use select with default to prevent blocking.
//
// # Versioned Steps
//
// [DataMigrations] registers the copy with the schema runner in [shared.RunMigrations],
// so it runs once inside a transaction and is skipped on later runs.
package tasks
