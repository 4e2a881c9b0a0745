package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/oclettings/internal/models"
	"github.com/desertthunder/oclettings/internal/shared"
)

var _ models.Repository[*models.Address, int64] = (*AddressRepository)(nil)

const addressColumns = "id, number, street, city, state, zip_code, country_iso_code"

// AddressRepository implements [models.Repository] for [models.Address] persistence.
type AddressRepository struct {
	db DBTX
}

// NewAddressRepository creates a new [AddressRepository] over db
func NewAddressRepository(db DBTX) *AddressRepository {
	return &AddressRepository{db: db}
}

// Create inserts a new address. A zero ID is allocated by SQLite and written back; a positive ID is preserved.
func (r *AddressRepository) Create(ctx context.Context, address *models.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO addresses (id, number, street, city, state, zip_code, country_iso_code)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		insertID(address.ID),
		address.Number,
		address.Street,
		address.City,
		address.State,
		address.ZipCode,
		address.CountryISOCode,
	)
	if err != nil {
		return fmt.Errorf("failed to insert address: %w", mapError(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read address id: %w", err)
	}
	address.ID = id

	return nil
}

// Get retrieves an address by ID
func (r *AddressRepository) Get(ctx context.Context, id int64) (*models.Address, error) {
	query := "SELECT " + addressColumns + " FROM addresses WHERE id = ?"

	address, err := scanAddress(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: address %d", shared.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query address: %w", err)
	}

	return address, nil
}

// List retrieves all addresses in id order
func (r *AddressRepository) List(ctx context.Context) ([]*models.Address, error) {
	query := "SELECT " + addressColumns + " FROM addresses ORDER BY id ASC"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query addresses: %w", err)
	}
	defer rows.Close()

	addresses := []*models.Address{}
	for rows.Next() {
		address, err := scanAddress(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan address: %w", err)
		}
		addresses = append(addresses, address)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return addresses, nil
}

// Delete removes an address by ID. The letting that owns it is removed by ON DELETE CASCADE.
func (r *AddressRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM addresses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete address: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: address %d", shared.ErrNotFound, id)
	}

	return nil
}

// DeleteAll removes every address, and through the cascade every letting.
func (r *AddressRepository) DeleteAll(ctx context.Context) (int64, error) {
	return deleteAll(ctx, r.db, "addresses")
}

func scanAddress(s scanner) (*models.Address, error) {
	var a models.Address
	err := s.Scan(&a.ID, &a.Number, &a.Street, &a.City, &a.State, &a.ZipCode, &a.CountryISOCode)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
