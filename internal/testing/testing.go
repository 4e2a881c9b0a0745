// package testing contains shared testing utilities
package testing

import (
	"database/sql"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/desertthunder/oclettings/internal/models"
	"github.com/desertthunder/oclettings/internal/shared"
)

// NewTestDB creates an in-memory SQLite database with the schema migrations applied.
// The database is closed when the test ends.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(shared.MemoryPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

const legacySchema = `
	CREATE TABLE oc_lettings_site_address (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		number INTEGER NOT NULL,
		street TEXT NOT NULL,
		city TEXT NOT NULL,
		state TEXT NOT NULL,
		zip_code INTEGER NOT NULL,
		country_iso_code TEXT NOT NULL
	);
	CREATE TABLE oc_lettings_site_letting (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		address_id INTEGER NOT NULL UNIQUE
	);
	CREATE TABLE oc_lettings_site_profile (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL UNIQUE,
		favorite_city TEXT NOT NULL DEFAULT ''
	);
`

// CreateLegacySchema creates the deprecated oc_lettings_site tables.
func CreateLegacySchema(t *testing.T, db *sql.DB) {
	t.Helper()
	if _, err := db.Exec(legacySchema); err != nil {
		t.Fatalf("failed to create legacy schema: %v", err)
	}
}

// InsertLegacyAddress writes a row into the legacy address table, keeping a.ID.
func InsertLegacyAddress(t *testing.T, db *sql.DB, a *models.Address) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO oc_lettings_site_address (id, number, street, city, state, zip_code, country_iso_code)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Number, a.Street, a.City, a.State, a.ZipCode, a.CountryISOCode,
	)
	if err != nil {
		t.Fatalf("failed to insert legacy address %d: %v", a.ID, err)
	}
}

// InsertLegacyLetting writes a row into the legacy letting table.
func InsertLegacyLetting(t *testing.T, db *sql.DB, l models.LegacyLetting) {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO oc_lettings_site_letting (id, title, address_id) VALUES (?, ?, ?)",
		l.ID, l.Title, l.AddressID,
	)
	if err != nil {
		t.Fatalf("failed to insert legacy letting %d: %v", l.ID, err)
	}
}

// InsertLegacyProfile writes a row into the legacy profile table.
func InsertLegacyProfile(t *testing.T, db *sql.DB, p models.LegacyProfile) {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO oc_lettings_site_profile (id, user_id, favorite_city) VALUES (?, ?, ?)",
		p.ID, p.UserID, p.FavoriteCity,
	)
	if err != nil {
		t.Fatalf("failed to insert legacy profile %d: %v", p.ID, err)
	}
}

// InsertUser writes a user row with the given id and returns it.
func InsertUser(t *testing.T, db *sql.DB, id int64, username string) *models.User {
	t.Helper()
	u := &models.User{ID: id, Username: username, DateJoined: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}
	_, err := db.Exec(
		"INSERT INTO users (id, username, email, first_name, last_name, date_joined) VALUES (?, ?, ?, ?, ?, ?)",
		u.ID, u.Username, u.Email, u.FirstName, u.LastName, u.DateJoined,
	)
	if err != nil {
		t.Fatalf("failed to insert user %s: %v", username, err)
	}
	return u
}

// SampleAddress returns the unsaved address used across the test suites.
func SampleAddress() *models.Address {
	return models.NewAddress(123, "Main Street", "Springfield", "IL", 62701, "USA")
}

// InsertLetting writes an address and a letting that owns it, preserving both ids.
func InsertLetting(t *testing.T, db *sql.DB, id int64, title string, address *models.Address) *models.Letting {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO addresses (id, number, street, city, state, zip_code, country_iso_code)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		address.ID, address.Number, address.Street, address.City, address.State, address.ZipCode, address.CountryISOCode,
	)
	if err != nil {
		t.Fatalf("failed to insert address %d: %v", address.ID, err)
	}

	if _, err := db.Exec("INSERT INTO lettings (id, title, address_id) VALUES (?, ?, ?)", id, title, address.ID); err != nil {
		t.Fatalf("failed to insert letting %d: %v", id, err)
	}
	return &models.Letting{ID: id, Title: title, Address: address}
}

// InsertProfile writes a profile for an existing user.
func InsertProfile(t *testing.T, db *sql.DB, id int64, user *models.User, favoriteCity string) *models.Profile {
	t.Helper()
	_, err := db.Exec("INSERT INTO profiles (id, user_id, favorite_city) VALUES (?, ?, ?)", id, user.ID, favoriteCity)
	if err != nil {
		t.Fatalf("failed to insert profile %d: %v", id, err)
	}
	return &models.Profile{ID: id, User: user, FavoriteCity: favoriteCity}
}

// CountRows returns the number of rows in table.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return n
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
