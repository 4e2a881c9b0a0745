package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/oclettings/internal/models"
	"github.com/desertthunder/oclettings/internal/shared"
)

// LettingReader is the read side of the letting store.
type LettingReader interface {
	Get(ctx context.Context, id int64) (*models.Letting, error)
	List(ctx context.Context) ([]*models.Letting, error)
}

// ProfileReader is the read side of the profile store, keyed by username.
type ProfileReader interface {
	Get(ctx context.Context, username string) (*models.Profile, error)
	List(ctx context.Context) ([]*models.Profile, error)
}

// NotFoundError reports a detail lookup that matched no row.
type NotFoundError struct {
	Kind string // "Letting" or "Profile"
	Key  string // Lookup key as shown to users
	msg  string
}

func (e *NotFoundError) Error() string {
	return e.msg
}

// Is matches [shared.ErrNotFound].
func (e *NotFoundError) Is(target error) bool {
	return target == shared.ErrNotFound
}

func lettingNotFound(id int64) *NotFoundError {
	return &NotFoundError{
		Kind: "Letting",
		Key:  fmt.Sprint(id),
		msg:  fmt.Sprintf("Letting with ID %d does not exist", id),
	}
}

func profileNotFound(username string) *NotFoundError {
	return &NotFoundError{
		Kind: "Profile",
		Key:  username,
		msg:  fmt.Sprintf(`Profile with username "%s" does not exist`, username),
	}
}

// LettingService lists lettings and resolves one by id.
type LettingService struct {
	store LettingReader
}

// NewLettingService creates a [LettingService] over store
func NewLettingService(store LettingReader) *LettingService {
	return &LettingService{store: store}
}

// List returns every letting with its address in id order.
func (s *LettingService) List(ctx context.Context) ([]*models.Letting, error) {
	lettings, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list lettings: %w", err)
	}
	if lettings == nil {
		lettings = []*models.Letting{}
	}
	return lettings, nil
}

// Get returns the letting with the given id, or a [*NotFoundError].
func (s *LettingService) Get(ctx context.Context, id int64) (*models.Letting, error) {
	letting, err := s.store.Get(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, lettingNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get letting %d: %w", id, err)
	}
	return letting, nil
}

// ProfileService lists profiles and resolves one by username.
type ProfileService struct {
	store ProfileReader
}

// NewProfileService creates a [ProfileService] over store
func NewProfileService(store ProfileReader) *ProfileService {
	return &ProfileService{store: store}
}

// List returns every profile with its user in id order.
func (s *ProfileService) List(ctx context.Context) ([]*models.Profile, error) {
	profiles, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	if profiles == nil {
		profiles = []*models.Profile{}
	}
	return profiles, nil
}

// Get returns the profile of the named user, or a [*NotFoundError].
func (s *ProfileService) Get(ctx context.Context, username string) (*models.Profile, error) {
	profile, err := s.store.Get(ctx, username)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, profileNotFound(username)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile %q: %w", username, err)
	}
	return profile, nil
}
