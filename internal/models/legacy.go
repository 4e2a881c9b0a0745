package models

// LegacyLetting is a row of the deprecated oc_lettings_site letting table.
// The address is a raw id and must be re-resolved against the new addresses table.
type LegacyLetting struct {
	ID        int64
	Title     string
	AddressID int64
}

// LegacyProfile is a row of the deprecated oc_lettings_site profile table.
type LegacyProfile struct {
	ID           int64
	UserID       int64
	FavoriteCity string
}
