package models

import (
	"fmt"

	"github.com/desertthunder/oclettings/internal/shared"
)

var _ Model = (*Profile)(nil)

// MaxFavoriteCityLength bounds [Profile.FavoriteCity].
const MaxFavoriteCityLength = 64

// Profile holds site data for a [User]. Deleting the user deletes the profile.
type Profile struct {
	ID           int64  `json:"id"`
	User         *User  `json:"user"`
	FavoriteCity string `json:"favorite_city"`
}

// NewProfile creates an unsaved [Profile] for user. favoriteCity may be empty.
func NewProfile(user *User, favoriteCity string) *Profile {
	return &Profile{User: user, FavoriteCity: favoriteCity}
}

// String returns the owning user's username.
func (p *Profile) String() string {
	if p.User == nil {
		return ""
	}
	return p.User.Username
}

// UserID returns the id of the owning user, or 0 when none is set.
func (p *Profile) UserID() int64 {
	if p.User == nil {
		return 0
	}
	return p.User.ID
}

// Validate checks that a user is attached and the favorite city bound.
func (p *Profile) Validate() error {
	if p.User == nil {
		return fmt.Errorf("%w: user is required", shared.ErrValidation)
	}
	return maxChars("favorite_city", p.FavoriteCity, MaxFavoriteCityLength)
}
