// Package repositories implements SQLite persistence for all domain entities.
//
// Each repository runs its statements through a [DBTX], so the same store works over a [*sql.DB] for request traffic
// and over a [*sql.Tx] inside a migration step.
//
// Key Implementations:
//   - [AddressRepository] : Address rows, deleting one cascades to its letting
//   - [LettingRepository] : Lettings joined with their owned address
//   - [UserRepository] : Externally owned accounts with username lookups
//   - [ProfileRepository] : Profiles joined with their user, looked up by username
//   - [LegacyRepository] : Read-only access to the deprecated oc_lettings_site tables
//
// Lookups that match no row return an error wrapping [shared.ErrNotFound].
// Unique and primary key violations are reported as [shared.ErrDuplicate].
package repositories
