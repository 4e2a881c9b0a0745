package models

import (
	"fmt"

	"github.com/desertthunder/oclettings/internal/shared"
)

var _ Model = (*Letting)(nil)

// MaxTitleLength bounds [Letting.Title].
const MaxTitleLength = 256

// Letting is a rental listing. It exclusively owns its [Address]; deleting the address deletes the letting.
type Letting struct {
	ID      int64    `json:"id"`
	Title   string   `json:"title"`
	Address *Address `json:"address"`
}

// NewLetting creates an unsaved [Letting] owning address.
func NewLetting(title string, address *Address) *Letting {
	return &Letting{Title: title, Address: address}
}

// String returns the title.
func (l *Letting) String() string {
	return l.Title
}

// AddressID returns the id of the owned address, or 0 when none is set.
func (l *Letting) AddressID() int64 {
	if l.Address == nil {
		return 0
	}
	return l.Address.ID
}

// Validate checks the title bound and that an address is attached.
func (l *Letting) Validate() error {
	if err := maxChars("title", l.Title, MaxTitleLength); err != nil {
		return err
	}
	if l.Address == nil {
		return fmt.Errorf("%w: address is required", shared.ErrValidation)
	}
	return nil
}
