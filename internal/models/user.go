package models

import (
	"time"
)

var _ Model = (*User)(nil)

// MaxUsernameLength bounds [User.Username].
const MaxUsernameLength = 150

// User is an account owned outside the lettings site. Profiles reference it by id and are looked up by its username.
type User struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	DateJoined time.Time `json:"date_joined"`
}

// NewUser creates an unsaved [User] joined now.
func NewUser(username, email, firstName, lastName string) *User {
	return &User{
		Username:   username,
		Email:      email,
		FirstName:  firstName,
		LastName:   lastName,
		DateJoined: time.Now().UTC(),
	}
}

func (u *User) String() string {
	return u.Username
}

// Validate checks the username and name bounds.
func (u *User) Validate() error {
	checks := []error{
		required("username", u.Username),
		maxChars("username", u.Username, MaxUsernameLength),
		maxChars("first_name", u.FirstName, MaxUsernameLength),
		maxChars("last_name", u.LastName, MaxUsernameLength),
		maxChars("email", u.Email, 254),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}
