package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/desertthunder/oclettings/internal/models"
	"github.com/desertthunder/oclettings/internal/shared"
)

// Tables of the deprecated single-app layout.
const (
	LegacyAddressTable = "oc_lettings_site_address"
	LegacyLettingTable = "oc_lettings_site_letting"
	LegacyProfileTable = "oc_lettings_site_profile"
)

// LegacyRepository reads rows from the deprecated oc_lettings_site tables.
//
// Each read fails with [shared.ErrLegacyModelMissing] when its table does not exist,
// which is the normal state of a fresh installation.
type LegacyRepository struct {
	db DBTX
}

// NewLegacyRepository creates a new [LegacyRepository] over db
func NewLegacyRepository(db DBTX) *LegacyRepository {
	return &LegacyRepository{db: db}
}

// Addresses returns every legacy address in id order.
func (r *LegacyRepository) Addresses(ctx context.Context) ([]*models.Address, error) {
	rows, err := r.query(ctx, LegacyAddressTable, "SELECT "+addressColumns+" FROM "+LegacyAddressTable+" ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	addresses := []*models.Address{}
	for rows.Next() {
		address, err := scanAddress(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan legacy address: %w", err)
		}
		addresses = append(addresses, address)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return addresses, nil
}

// Lettings returns every legacy letting in id order with its raw address id.
func (r *LegacyRepository) Lettings(ctx context.Context) ([]models.LegacyLetting, error) {
	rows, err := r.query(ctx, LegacyLettingTable, "SELECT id, title, address_id FROM "+LegacyLettingTable+" ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lettings := []models.LegacyLetting{}
	for rows.Next() {
		var l models.LegacyLetting
		if err := rows.Scan(&l.ID, &l.Title, &l.AddressID); err != nil {
			return nil, fmt.Errorf("failed to scan legacy letting: %w", err)
		}
		lettings = append(lettings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return lettings, nil
}

// Profiles returns every legacy profile in id order with its raw user id.
func (r *LegacyRepository) Profiles(ctx context.Context) ([]models.LegacyProfile, error) {
	rows, err := r.query(ctx, LegacyProfileTable, "SELECT id, user_id, favorite_city FROM "+LegacyProfileTable+" ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []models.LegacyProfile{}
	for rows.Next() {
		var p models.LegacyProfile
		if err := rows.Scan(&p.ID, &p.UserID, &p.FavoriteCity); err != nil {
			return nil, fmt.Errorf("failed to scan legacy profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return profiles, nil
}

func (r *LegacyRepository) query(ctx context.Context, table, query string) (*sql.Rows, error) {
	exists, err := TableExists(ctx, r.db, table)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", shared.ErrLegacyModelMissing, table)
	}

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	return rows, nil
}
