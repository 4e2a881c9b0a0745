package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/oclettings/internal/models"
	"github.com/desertthunder/oclettings/internal/shared"
)

var _ models.Repository[*models.Profile, string] = (*ProfileRepository)(nil)

const profileSelect = `
	SELECT p.id, p.favorite_city,
		u.id, u.username, u.email, u.first_name, u.last_name, u.date_joined
	FROM profiles p
	JOIN users u ON u.id = p.user_id
`

// ProfileRepository implements [models.Repository] for [models.Profile] persistence, keyed by username.
//
// Reads always join the owning user, so a returned profile carries a populated [models.Profile.User].
type ProfileRepository struct {
	db DBTX
}

// NewProfileRepository creates a new [ProfileRepository] over db
func NewProfileRepository(db DBTX) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create inserts a new profile for an already persisted user.
// A zero ID is allocated by SQLite and written back; a positive ID is preserved.
func (r *ProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}
	if profile.UserID() <= 0 {
		return fmt.Errorf("%w: user must be saved first", shared.ErrValidation)
	}

	result, err := r.db.ExecContext(ctx,
		"INSERT INTO profiles (id, user_id, favorite_city) VALUES (?, ?, ?)",
		insertID(profile.ID), profile.UserID(), profile.FavoriteCity,
	)
	if err != nil {
		return fmt.Errorf("failed to insert profile: %w", mapError(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read profile id: %w", err)
	}
	profile.ID = id

	return nil
}

// Get retrieves the profile of the user with the given username
func (r *ProfileRepository) Get(ctx context.Context, username string) (*models.Profile, error) {
	profile, err := scanProfile(r.db.QueryRowContext(ctx, profileSelect+" WHERE u.username = ?", username))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: profile %q", shared.ErrNotFound, username)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}
	return profile, nil
}

// List retrieves all profiles with their users in id order
func (r *ProfileRepository) List(ctx context.Context) ([]*models.Profile, error) {
	rows, err := r.db.QueryContext(ctx, profileSelect+" ORDER BY p.id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	profiles := []*models.Profile{}
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return profiles, nil
}

// DeleteAll removes every profile and leaves users in place.
func (r *ProfileRepository) DeleteAll(ctx context.Context) (int64, error) {
	return deleteAll(ctx, r.db, "profiles")
}

func scanProfile(s scanner) (*models.Profile, error) {
	var (
		p models.Profile
		u models.User
	)
	err := s.Scan(&p.ID, &p.FavoriteCity, &u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.DateJoined)
	if err != nil {
		return nil, err
	}
	p.User = &u
	return &p, nil
}
