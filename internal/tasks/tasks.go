package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/oclettings/internal/models"
	"github.com/desertthunder/oclettings/internal/shared"
)

// LegacyModels reads the deprecated tables. Each method returns [shared.ErrLegacyModelMissing]
// when its table is absent.
type LegacyModels interface {
	Addresses(ctx context.Context) ([]*models.Address, error)
	Lettings(ctx context.Context) ([]models.LegacyLetting, error)
	Profiles(ctx context.Context) ([]models.LegacyProfile, error)
}

// AddressStore is the target for copied addresses.
type AddressStore interface {
	Create(ctx context.Context, address *models.Address) error
	Get(ctx context.Context, id int64) (*models.Address, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// LettingStore is the target for copied lettings.
type LettingStore interface {
	Create(ctx context.Context, letting *models.Letting) error
	DeleteAll(ctx context.Context) (int64, error)
}

// ProfileStore is the target for copied profiles.
type ProfileStore interface {
	Create(ctx context.Context, profile *models.Profile) error
	DeleteAll(ctx context.Context) (int64, error)
}

// MigrationResult holds the number of rows copied per kind.
type MigrationResult struct {
	Addresses int
	Lettings  int
	Profiles  int
}

// Total returns the number of rows copied across all kinds.
func (r MigrationResult) Total() int {
	return r.Addresses + r.Lettings + r.Profiles
}

// Migrator copies legacy rows into the new stores, preserving ids.
type Migrator struct {
	legacy    LegacyModels
	addresses AddressStore
	lettings  LettingStore
	profiles  ProfileStore
	logger    *log.Logger
	progress  chan<- ProgressUpdate
}

// NewMigrator creates a [Migrator]. A nil logger discards output.
func NewMigrator(legacy LegacyModels, addresses AddressStore, lettings LettingStore, profiles ProfileStore, logger *log.Logger) *Migrator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Migrator{
		legacy:    legacy,
		addresses: addresses,
		lettings:  lettings,
		profiles:  profiles,
		logger:    logger,
	}
}

// WithProgress sets the channel that receives progress updates.
func (m *Migrator) WithProgress(progress chan<- ProgressUpdate) *Migrator {
	m.progress = progress
	return m
}

// sendProgress sends a progress update through the channel without blocking.
func (m *Migrator) sendProgress(update ProgressUpdate) {
	if m.progress == nil {
		return
	}
	select {
	case m.progress <- update:
	default:
	}
}

// skip reports whether err means the legacy table is absent, logging and reporting it when so.
func (m *Migrator) skip(phase Phase, err error) bool {
	if !errors.Is(err, shared.ErrLegacyModelMissing) {
		return false
	}
	m.logger.Debug("legacy model missing, nothing to copy", "phase", phase, "err", err)
	m.sendProgress(skippedUpdate(phase, err))
	return true
}

// MigrateAddresses copies every legacy address with all fields and the id unchanged.
func (m *Migrator) MigrateAddresses(ctx context.Context) (int, error) {
	rows, err := m.legacy.Addresses(ctx)
	if m.skip(CopyAddresses, err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read legacy addresses: %w", err)
	}

	m.sendProgress(startedUpdate(CopyAddresses, len(rows), "addresses"))
	for i, old := range rows {
		address := *old
		if err := m.addresses.Create(ctx, &address); err != nil {
			return i, fmt.Errorf("failed to copy address %d: %w", old.ID, err)
		}
		m.sendProgress(copiedUpdate(CopyAddresses, i+1, len(rows), &address))
	}

	m.logger.Info("copied legacy addresses", "count", len(rows))
	return len(rows), nil
}

// MigrateLettings copies every legacy letting, attaching the new address with the old address id.
//
// A letting whose address cannot be found fails with [shared.ErrDanglingReference].
func (m *Migrator) MigrateLettings(ctx context.Context) (int, error) {
	rows, err := m.legacy.Lettings(ctx)
	if m.skip(CopyLettings, err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read legacy lettings: %w", err)
	}

	m.sendProgress(startedUpdate(CopyLettings, len(rows), "lettings"))
	for i, old := range rows {
		address, err := m.addresses.Get(ctx, old.AddressID)
		if err != nil {
			return i, fmt.Errorf("%w: letting %d references address %d: %w", shared.ErrDanglingReference, old.ID, old.AddressID, err)
		}

		letting := &models.Letting{ID: old.ID, Title: old.Title, Address: address}
		if err := m.lettings.Create(ctx, letting); err != nil {
			return i, fmt.Errorf("failed to copy letting %d: %w", old.ID, err)
		}
		m.sendProgress(copiedUpdate(CopyLettings, i+1, len(rows), letting))
	}

	m.logger.Info("copied legacy lettings", "count", len(rows))
	return len(rows), nil
}

// MigrateProfiles copies every legacy profile with its user id and favorite city unchanged.
func (m *Migrator) MigrateProfiles(ctx context.Context) (int, error) {
	rows, err := m.legacy.Profiles(ctx)
	if m.skip(CopyProfiles, err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read legacy profiles: %w", err)
	}

	m.sendProgress(startedUpdate(CopyProfiles, len(rows), "profiles"))
	for i, old := range rows {
		profile := &models.Profile{ID: old.ID, User: &models.User{ID: old.UserID}, FavoriteCity: old.FavoriteCity}
		if err := m.profiles.Create(ctx, profile); err != nil {
			return i, fmt.Errorf("failed to copy profile %d: %w", old.ID, err)
		}
		m.sendProgress(ProgressUpdate{
			Phase:   CopyProfiles,
			Step:    i + 1,
			Total:   len(rows),
			Message: fmt.Sprintf("[%d/%d] profile %d (user %d)", i+1, len(rows), old.ID, old.UserID),
			Data:    profile,
		})
	}

	m.logger.Info("copied legacy profiles", "count", len(rows))
	return len(rows), nil
}

// Run copies addresses, then lettings, then profiles.
//
// The returned result holds the counts copied before any failure.
func (m *Migrator) Run(ctx context.Context) (*MigrationResult, error) {
	result := &MigrationResult{}
	var err error

	if result.Addresses, err = m.MigrateAddresses(ctx); err != nil {
		return result, err
	}
	if result.Lettings, err = m.MigrateLettings(ctx); err != nil {
		return result, err
	}
	if result.Profiles, err = m.MigrateProfiles(ctx); err != nil {
		return result, err
	}

	return result, nil
}

// RollbackLettings deletes every letting and then every address.
func (m *Migrator) RollbackLettings(ctx context.Context) error {
	n, err := m.lettings.DeleteAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear lettings: %w", err)
	}
	m.sendProgress(clearedUpdate(ClearLettings, "lettings", n))

	n, err = m.addresses.DeleteAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear addresses: %w", err)
	}
	m.sendProgress(clearedUpdate(ClearLettings, "addresses", n))

	m.logger.Warn("cleared lettings and addresses")
	return nil
}

// RollbackProfiles deletes every profile. Users are kept.
func (m *Migrator) RollbackProfiles(ctx context.Context) error {
	n, err := m.profiles.DeleteAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear profiles: %w", err)
	}
	m.sendProgress(clearedUpdate(ClearProfiles, "profiles", n))

	m.logger.Warn("cleared profiles")
	return nil
}
