package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/oclettings/internal/models"
	"github.com/desertthunder/oclettings/internal/shared"
)

var _ models.Repository[*models.Letting, int64] = (*LettingRepository)(nil)

const lettingSelect = `
	SELECT l.id, l.title,
		a.id, a.number, a.street, a.city, a.state, a.zip_code, a.country_iso_code
	FROM lettings l
	JOIN addresses a ON a.id = l.address_id
`

// LettingRepository implements [models.Repository] for [models.Letting] persistence.
//
// Reads always join the owned address, so a returned letting carries a populated [models.Letting.Address].
type LettingRepository struct {
	db DBTX
}

// NewLettingRepository creates a new [LettingRepository] over db
func NewLettingRepository(db DBTX) *LettingRepository {
	return &LettingRepository{db: db}
}

// Create inserts a new letting referencing an already persisted address.
// A zero ID is allocated by SQLite and written back; a positive ID is preserved.
func (r *LettingRepository) Create(ctx context.Context, letting *models.Letting) error {
	if err := letting.Validate(); err != nil {
		return err
	}
	if letting.AddressID() <= 0 {
		return fmt.Errorf("%w: address must be saved first", shared.ErrValidation)
	}

	result, err := r.db.ExecContext(ctx,
		"INSERT INTO lettings (id, title, address_id) VALUES (?, ?, ?)",
		insertID(letting.ID), letting.Title, letting.AddressID(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert letting: %w", mapError(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read letting id: %w", err)
	}
	letting.ID = id

	return nil
}

// Get retrieves a letting and its address by letting ID
func (r *LettingRepository) Get(ctx context.Context, id int64) (*models.Letting, error) {
	letting, err := scanLetting(r.db.QueryRowContext(ctx, lettingSelect+" WHERE l.id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: letting %d", shared.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query letting: %w", err)
	}

	return letting, nil
}

// List retrieves all lettings with their addresses in id order
func (r *LettingRepository) List(ctx context.Context) ([]*models.Letting, error) {
	rows, err := r.db.QueryContext(ctx, lettingSelect+" ORDER BY l.id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query lettings: %w", err)
	}
	defer rows.Close()

	lettings := []*models.Letting{}
	for rows.Next() {
		letting, err := scanLetting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan letting: %w", err)
		}
		lettings = append(lettings, letting)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return lettings, nil
}

// DeleteAll removes every letting and leaves addresses in place.
func (r *LettingRepository) DeleteAll(ctx context.Context) (int64, error) {
	return deleteAll(ctx, r.db, "lettings")
}

func scanLetting(s scanner) (*models.Letting, error) {
	var (
		l models.Letting
		a models.Address
	)
	err := s.Scan(
		&l.ID, &l.Title,
		&a.ID, &a.Number, &a.Street, &a.City, &a.State, &a.ZipCode, &a.CountryISOCode,
	)
	if err != nil {
		return nil, err
	}
	l.Address = &a
	return &l, nil
}
