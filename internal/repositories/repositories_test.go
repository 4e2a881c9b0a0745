package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/desertthunder/oclettings/internal/models"
	"github.com/desertthunder/oclettings/internal/shared"
	tu "github.com/desertthunder/oclettings/internal/testing"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return tu.NewTestDB(t)
}

func createLetting(t *testing.T, db *sql.DB, title string) *models.Letting {
	t.Helper()
	ctx := context.Background()

	address := tu.SampleAddress()
	if err := NewAddressRepository(db).Create(ctx, address); err != nil {
		t.Fatalf("failed to create address: %v", err)
	}

	letting := models.NewLetting(title, address)
	if err := NewLettingRepository(db).Create(ctx, letting); err != nil {
		t.Fatalf("failed to create letting: %v", err)
	}
	return letting
}

func TestAddressRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewAddressRepository(db)
		address := tu.SampleAddress()

		if err := repo.Create(ctx, address); err != nil {
			t.Fatalf("failed to create address: %v", err)
		}

		if address.ID == 0 {
			t.Error("address ID should be set after creation")
		}
	})

	t.Run("CreatePreservesID", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewAddressRepository(db)
		address := tu.SampleAddress()
		address.ID = 42

		if err := repo.Create(ctx, address); err != nil {
			t.Fatalf("failed to create address: %v", err)
		}
		if address.ID != 42 {
			t.Errorf("expected ID 42, got %d", address.ID)
		}

		retrieved, err := repo.Get(ctx, 42)
		if err != nil {
			t.Fatalf("failed to get address: %v", err)
		}
		if *retrieved != *address {
			t.Errorf("expected %+v, got %+v", address, retrieved)
		}
	})

	t.Run("List", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewAddressRepository(db)

		addresses, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("failed to list addresses: %v", err)
		}
		if addresses == nil || len(addresses) != 0 {
			t.Fatalf("expected empty non-nil list, got %v", addresses)
		}

		for _, id := range []int64{3, 1, 2} {
			a := tu.SampleAddress()
			a.ID = id
			if err := repo.Create(ctx, a); err != nil {
				t.Fatalf("failed to create address %d: %v", id, err)
			}
		}

		addresses, err = repo.List(ctx)
		if err != nil {
			t.Fatalf("failed to list addresses: %v", err)
		}
		if len(addresses) != 3 {
			t.Fatalf("expected 3 addresses, got %d", len(addresses))
		}
		for i, a := range addresses {
			if a.ID != int64(i+1) {
				t.Errorf("expected address %d at position %d, got %d", i+1, i, a.ID)
			}
		}
	})

	t.Run("DeleteCascadesToLetting", func(t *testing.T) {
		db := setupTestDB(t)
		letting := createLetting(t, db, "Joshua Tree Green Haus")

		if err := NewAddressRepository(db).Delete(ctx, letting.AddressID()); err != nil {
			t.Fatalf("failed to delete address: %v", err)
		}

		if n := tu.CountRows(t, db, "lettings"); n != 0 {
			t.Errorf("expected letting to be removed with its address, %d remain", n)
		}
	})
}

func TestLettingRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Get", func(t *testing.T) {
		db := setupTestDB(t)
		letting := createLetting(t, db, "Test Letting")

		retrieved, err := NewLettingRepository(db).Get(ctx, letting.ID)
		if err != nil {
			t.Fatalf("failed to get letting: %v", err)
		}

		if retrieved.Title != "Test Letting" {
			t.Errorf("expected title %q, got %q", "Test Letting", retrieved.Title)
		}
		if retrieved.Address == nil || retrieved.Address.City != "Springfield" {
			t.Errorf("expected address in Springfield, got %+v", retrieved.Address)
		}
	})

	t.Run("List", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewLettingRepository(db)

		lettings, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("failed to list lettings: %v", err)
		}
		if lettings == nil || len(lettings) != 0 {
			t.Fatalf("expected empty non-nil list, got %v", lettings)
		}

		createLetting(t, db, "First")
		createLetting(t, db, "Second")

		lettings, err = repo.List(ctx)
		if err != nil {
			t.Fatalf("failed to list lettings: %v", err)
		}
		if len(lettings) != 2 {
			t.Fatalf("expected 2 lettings, got %d", len(lettings))
		}
		if lettings[0].Title != "First" || lettings[1].Title != "Second" {
			t.Errorf("expected lettings in id order, got %q, %q", lettings[0].Title, lettings[1].Title)
		}
		for _, l := range lettings {
			if l.Address == nil {
				t.Errorf("letting %d has no address", l.ID)
			}
		}
	})

	t.Run("DeleteAll", func(t *testing.T) {
		db := setupTestDB(t)
		createLetting(t, db, "First")
		createLetting(t, db, "Second")

		n, err := NewLettingRepository(db).DeleteAll(ctx)
		if err != nil {
			t.Fatalf("failed to delete lettings: %v", err)
		}
		if n != 2 {
			t.Errorf("expected 2 rows removed, got %d", n)
		}
		if n := tu.CountRows(t, db, "addresses"); n != 2 {
			t.Errorf("expected addresses to survive, got %d", n)
		}
	})
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateAndGet", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepository(db)
		user := models.NewUser("testuser", "test@example.com", "Test", "User")

		if err := repo.Create(ctx, user); err != nil {
			t.Fatalf("failed to create user: %v", err)
		}

		byID, err := repo.Get(ctx, user.ID)
		if err != nil {
			t.Fatalf("failed to get user: %v", err)
		}
		if byID.Username != "testuser" || byID.Email != "test@example.com" {
			t.Errorf("unexpected user %+v", byID)
		}

		byName, err := repo.GetByUsername(ctx, "testuser")
		if err != nil {
			t.Fatalf("failed to get user by username: %v", err)
		}
		if byName.ID != user.ID {
			t.Errorf("expected ID %d, got %d", user.ID, byName.ID)
		}
	})

	t.Run("List", func(t *testing.T) {
		db := setupTestDB(t)
		tu.InsertUser(t, db, 2, "bob")
		tu.InsertUser(t, db, 1, "alice")

		users, err := NewUserRepository(db).List(ctx)
		if err != nil {
			t.Fatalf("failed to list users: %v", err)
		}
		if len(users) != 2 || users[0].Username != "alice" || users[1].Username != "bob" {
			t.Errorf("expected alice then bob, got %v", users)
		}
	})

	t.Run("DeleteCascadesToProfile", func(t *testing.T) {
		db := setupTestDB(t)
		user := tu.InsertUser(t, db, 1, "testuser")
		tu.InsertProfile(t, db, 1, user, "Paris")

		if err := NewUserRepository(db).Delete(ctx, user.ID); err != nil {
			t.Fatalf("failed to delete user: %v", err)
		}

		if n := tu.CountRows(t, db, "profiles"); n != 0 {
			t.Errorf("expected profile to be removed with its user, %d remain", n)
		}
	})
}

func TestProfileRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateAndGet", func(t *testing.T) {
		db := setupTestDB(t)
		user := tu.InsertUser(t, db, 7, "testuser")
		repo := NewProfileRepository(db)

		profile := models.NewProfile(user, "Paris")
		if err := repo.Create(ctx, profile); err != nil {
			t.Fatalf("failed to create profile: %v", err)
		}

		retrieved, err := repo.Get(ctx, "testuser")
		if err != nil {
			t.Fatalf("failed to get profile: %v", err)
		}
		if retrieved.ID != profile.ID {
			t.Errorf("expected ID %d, got %d", profile.ID, retrieved.ID)
		}
		if retrieved.FavoriteCity != "Paris" {
			t.Errorf("expected favorite city Paris, got %q", retrieved.FavoriteCity)
		}
		if retrieved.UserID() != 7 || retrieved.String() != "testuser" {
			t.Errorf("expected user 7 testuser, got %d %s", retrieved.UserID(), retrieved)
		}
	})

	t.Run("EmptyFavoriteCity", func(t *testing.T) {
		db := setupTestDB(t)
		user := tu.InsertUser(t, db, 1, "nocity")
		repo := NewProfileRepository(db)

		if err := repo.Create(ctx, models.NewProfile(user, "")); err != nil {
			t.Fatalf("failed to create profile: %v", err)
		}

		retrieved, err := repo.Get(ctx, "nocity")
		if err != nil {
			t.Fatalf("failed to get profile: %v", err)
		}
		if retrieved.FavoriteCity != "" {
			t.Errorf("expected empty favorite city, got %q", retrieved.FavoriteCity)
		}
	})

	t.Run("List", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewProfileRepository(db)

		profiles, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("failed to list profiles: %v", err)
		}
		if profiles == nil || len(profiles) != 0 {
			t.Fatalf("expected empty non-nil list, got %v", profiles)
		}

		tu.InsertProfile(t, db, 2, tu.InsertUser(t, db, 1, "second"), "Rome")
		tu.InsertProfile(t, db, 1, tu.InsertUser(t, db, 2, "first"), "Oslo")

		profiles, err = repo.List(ctx)
		if err != nil {
			t.Fatalf("failed to list profiles: %v", err)
		}
		if len(profiles) != 2 || profiles[0].String() != "first" || profiles[1].String() != "second" {
			t.Errorf("expected profiles in id order, got %v", profiles)
		}
	})

	t.Run("DeleteAllKeepsUsers", func(t *testing.T) {
		db := setupTestDB(t)
		tu.InsertProfile(t, db, 1, tu.InsertUser(t, db, 1, "testuser"), "Paris")

		n, err := NewProfileRepository(db).DeleteAll(ctx)
		if err != nil {
			t.Fatalf("failed to delete profiles: %v", err)
		}
		if n != 1 {
			t.Errorf("expected 1 row removed, got %d", n)
		}
		if n := tu.CountRows(t, db, "users"); n != 1 {
			t.Errorf("expected user to survive, got %d", n)
		}
	})
}

func TestLegacyRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("ReadsRowsInIDOrder", func(t *testing.T) {
		db := setupTestDB(t)
		tu.CreateLegacySchema(t, db)

		for _, id := range []int64{5, 2} {
			a := tu.SampleAddress()
			a.ID = id
			tu.InsertLegacyAddress(t, db, a)
		}
		tu.InsertLegacyLetting(t, db, models.LegacyLetting{ID: 9, Title: "Old", AddressID: 5})
		tu.InsertLegacyProfile(t, db, models.LegacyProfile{ID: 3, UserID: 4, FavoriteCity: "Lyon"})

		repo := NewLegacyRepository(db)

		addresses, err := repo.Addresses(ctx)
		if err != nil {
			t.Fatalf("failed to read legacy addresses: %v", err)
		}
		if len(addresses) != 2 || addresses[0].ID != 2 || addresses[1].ID != 5 {
			t.Errorf("expected addresses 2 and 5, got %v", addresses)
		}

		lettings, err := repo.Lettings(ctx)
		if err != nil {
			t.Fatalf("failed to read legacy lettings: %v", err)
		}
		want := models.LegacyLetting{ID: 9, Title: "Old", AddressID: 5}
		if len(lettings) != 1 || lettings[0] != want {
			t.Errorf("expected %+v, got %v", want, lettings)
		}

		profiles, err := repo.Profiles(ctx)
		if err != nil {
			t.Fatalf("failed to read legacy profiles: %v", err)
		}
		if len(profiles) != 1 || profiles[0].UserID != 4 || profiles[0].FavoriteCity != "Lyon" {
			t.Errorf("unexpected legacy profiles %v", profiles)
		}
	})

	t.Run("TableExists", func(t *testing.T) {
		db := setupTestDB(t)

		tests := []struct {
			table string
			want  bool
		}{
			{"lettings", true},
			{"profiles", true},
			{LegacyLettingTable, false},
		}

		for _, tt := range tests {
			t.Run(tt.table, func(t *testing.T) {
				got, err := TableExists(ctx, db, tt.table)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got != tt.want {
					t.Errorf("TableExists(%q) = %v, want %v", tt.table, got, tt.want)
				}
			})
		}
	})
}

func TestRepositoriesInTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("RollbackDiscardsWrites", func(t *testing.T) {
		db := setupTestDB(t)
		tx, err := db.Begin()
		if err != nil {
			t.Fatalf("failed to begin: %v", err)
		}
		defer tx.Rollback()

		address := tu.SampleAddress()
		if err := NewAddressRepository(tx).Create(ctx, address); err != nil {
			t.Fatalf("failed to create address in tx: %v", err)
		}
		if _, err := NewAddressRepository(tx).Get(ctx, address.ID); err != nil {
			t.Fatalf("address not visible inside tx: %v", err)
		}
		if err := tx.Rollback(); err != nil {
			t.Fatalf("failed to rollback: %v", err)
		}

		_, err = NewAddressRepository(db).Get(ctx, address.ID)
		if err == nil {
			t.Fatal("expected rolled back address to be gone")
		}
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected not found, got %v", err)
		}
	})
}
