package models

import "fmt"

var _ Model = (*Address)(nil)

// Address field bounds.
const (
	MaxAddressNumber = 9999
	MaxZipCode       = 99999
	MaxStreetLength  = 64
	MaxCityLength    = 64
	StateLength      = 2
	CountryISOLength = 3
)

// Address is a physical street address. Each address is owned by at most one [Letting].
type Address struct {
	ID             int64  `json:"id"`
	Number         int    `json:"number"`
	Street         string `json:"street"`
	City           string `json:"city"`
	State          string `json:"state"`
	ZipCode        int    `json:"zip_code"`
	CountryISOCode string `json:"country_iso_code"`
}

// NewAddress creates an unsaved [Address].
func NewAddress(number int, street, city, state string, zipCode int, countryISOCode string) *Address {
	return &Address{
		Number:         number,
		Street:         street,
		City:           city,
		State:          state,
		ZipCode:        zipCode,
		CountryISOCode: countryISOCode,
	}
}

// String renders the street line, e.g. "123 Main Street".
func (a *Address) String() string {
	return fmt.Sprintf("%d %s", a.Number, a.Street)
}

// Validate checks the declared bounds of every field. Blank street and city are allowed, as in the legacy data.
func (a *Address) Validate() error {
	checks := []error{
		between("number", a.Number, 0, MaxAddressNumber),
		maxChars("street", a.Street, MaxStreetLength),
		maxChars("city", a.City, MaxCityLength),
		exactChars("state", a.State, StateLength),
		between("zip_code", a.ZipCode, 0, MaxZipCode),
		exactChars("country_iso_code", a.CountryISOCode, CountryISOLength),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}
