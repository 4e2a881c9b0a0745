package main

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/oclettings/internal/models"
	"github.com/desertthunder/oclettings/internal/services"
	"github.com/desertthunder/oclettings/internal/shared"
	tu "github.com/desertthunder/oclettings/internal/testing"
	"github.com/urfave/cli/v3"
)

var noEnv = map[string]string{}

func newTestRunner(t *testing.T, db *sql.DB) (*Runner, *bytes.Buffer) {
	t.Helper()
	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Logger:  log.New(&bytes.Buffer{}),
		Output:  output,
		DB:      db,
		Environ: noEnv,
	})
	return runner, output
}

// run executes args against the full command tree. The config path points at a file that does not exist.
func run(t *testing.T, r *Runner, args ...string) error {
	t.Helper()
	app := &cli.Command{
		Name: "oclettings",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: filepath.Join(t.TempDir(), "missing.toml")},
		},
		Before:   r.Before,
		Commands: r.register(),
	}
	return app.Run(context.Background(), append([]string{"oclettings"}, args...))
}

func seedSite(t *testing.T, db *sql.DB) {
	t.Helper()
	address := tu.SampleAddress()
	address.ID = 1
	tu.InsertLetting(t, db, 1, "Test Letting", address)
	user := tu.InsertUser(t, db, 1, "testuser")
	tu.InsertProfile(t, db, 1, user, "Paris")
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			db := tu.NewTestDB(t)

			runner := NewRunner(RunnerOpts{Config: config, Logger: logger, Output: output, DB: db})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if got, _ := runner.Database(); got != db {
				t.Error("expected injected database to be used")
			}
		})

		t.Run("with nil options uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
			if runner.environ != nil {
				t.Error("expected nil environ so the process environment is read")
			}
		})

		t.Run("does not close an injected database", func(t *testing.T) {
			db := tu.NewTestDB(t)
			runner, _ := newTestRunner(t, db)

			if err := runner.Close(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err := db.Ping(); err != nil {
				t.Errorf("expected database to stay open, got %v", err)
			}
		})
	})

	t.Run("Configure", func(t *testing.T) {
		t.Run("missing file keeps defaults", func(t *testing.T) {
			runner, _ := newTestRunner(t, nil)

			if err := runner.Configure(filepath.Join(t.TempDir(), "none.toml")); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if runner.config.Server.Port != 8000 {
				t.Errorf("expected default port, got %d", runner.config.Server.Port)
			}
		})

		t.Run("loads file and applies environment", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			content := "[server]\nport = 9000\n\n[log]\nlevel = \"debug\"\n"
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatal(err)
			}

			runner, _ := newTestRunner(t, nil)
			runner.environ = map[string]string{"OCL_DEBUG": "true"}

			if err := runner.Configure(path); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if runner.config.Server.Port != 9000 {
				t.Errorf("expected port from file, got %d", runner.config.Server.Port)
			}
			if !runner.config.Server.Debug {
				t.Error("expected OCL_DEBUG to enable debug")
			}
			if runner.logger.GetLevel() != log.DebugLevel {
				t.Errorf("expected debug level, got %v", runner.logger.GetLevel())
			}
		})

		t.Run("rejects invalid config", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte("[server]\nport = 0\n"), 0644); err != nil {
				t.Fatal(err)
			}

			runner, _ := newTestRunner(t, nil)
			if err := runner.Configure(path); !errors.Is(err, shared.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})

		t.Run("log file", func(t *testing.T) {
			logPath := filepath.Join(t.TempDir(), "logs", "oclettings.log")
			runner, _ := newTestRunner(t, nil)
			runner.config.Log.File = logPath

			if err := runner.Configure(""); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			runner.logger.Info("hello")
			if !strings.Contains(tu.MustReadFile(t, logPath), "hello") {
				t.Error("expected log line in log file")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(output.String(), `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", output.String())
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			err := runner.writeJSON(make(chan int), false)
			if err == nil || !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})
}

func TestLookupCommands(t *testing.T) {
	db := tu.NewTestDB(t)
	seedSite(t, db)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"lettings list", []string{"lettings", "list"}, []string{"Test Letting"}},
		{"lettings list csv", []string{"lettings", "list", "--format", "csv"}, []string{"Test Letting", "Springfield"}},
		{"lettings show", []string{"lettings", "show", "1"}, []string{"Test Letting", "123 Main Street", "Springfield, IL 62701"}},
		{"profiles list markdown", []string{"profiles", "list", "-f", "md"}, []string{"|", "testuser", "Paris"}},
		{"profiles show", []string{"profiles", "show", "testuser"}, []string{"testuser", "Favorite city: Paris"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner, output := newTestRunner(t, db)

			if err := run(t, runner, tt.args...); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(output.String(), want) {
					t.Errorf("expected %q in output:\n%s", want, output.String())
				}
			}
		})
	}

	t.Run("errors", func(t *testing.T) {
		tests := []struct {
			name    string
			args    []string
			wantErr error
			message string
		}{
			{"missing letting", []string{"lettings", "show", "99"}, shared.ErrNotFound, "Letting with ID 99 does not exist"},
			{"missing profile", []string{"profiles", "show", "nobody"}, shared.ErrNotFound, `Profile with username "nobody" does not exist`},
			{"letting id not a number", []string{"lettings", "show", "abc"}, shared.ErrInvalidArgument, ""},
			{"letting id missing", []string{"lettings", "show"}, shared.ErrMissingArgument, ""},
			{"unknown format", []string{"lettings", "list", "--format", "xml"}, shared.ErrInvalidFlag, ""},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				runner, _ := newTestRunner(t, db)

				err := run(t, runner, tt.args...)
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if tt.message == "" {
					return
				}

				var notFound *services.NotFoundError
				if !errors.As(err, &notFound) {
					t.Fatalf("expected *services.NotFoundError, got %T", err)
				}
				if notFound.Error() != tt.message {
					t.Errorf("expected %q, got %q", tt.message, notFound.Error())
				}
			})
		}
	})
}

func TestMigrateCommands(t *testing.T) {
	seedLegacy := func(t *testing.T, db *sql.DB) {
		t.Helper()
		tu.CreateLegacySchema(t, db)
		address := tu.SampleAddress()
		address.ID = 7
		tu.InsertLegacyAddress(t, db, address)
		tu.InsertLegacyLetting(t, db, models.LegacyLetting{ID: 3, Title: "Joshua Tree Green Haus", AddressID: 7})
		tu.InsertUser(t, db, 4, "HeadlinesGazer")
		tu.InsertLegacyProfile(t, db, models.LegacyProfile{ID: 2, UserID: 4, FavoriteCity: "Buenos Aires"})
	}

	t.Run("up copies legacy data once", func(t *testing.T) {
		db := tu.NewTestDB(t)
		seedLegacy(t, db)
		runner, output := newTestRunner(t, db)

		if err := run(t, runner, "migrate", "up"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := run(t, runner, "migrate", "up"); err != nil {
			t.Fatalf("second run should be a no-op, got %v", err)
		}

		if n := tu.CountRows(t, db, "lettings"); n != 1 {
			t.Errorf("expected 1 letting, got %d", n)
		}
		if n := tu.CountRows(t, db, "profiles"); n != 1 {
			t.Errorf("expected 1 profile, got %d", n)
		}
		if !strings.Contains(output.String(), "[✓] 0003") {
			t.Errorf("expected applied data step in status:\n%s", output.String())
		}
	})

	t.Run("down reverses the latest data step", func(t *testing.T) {
		db := tu.NewTestDB(t)
		seedLegacy(t, db)
		runner, _ := newTestRunner(t, db)

		if err := run(t, runner, "migrate", "up"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := run(t, runner, "migrate", "down"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if n := tu.CountRows(t, db, "profiles"); n != 0 {
			t.Errorf("expected profiles removed, got %d", n)
		}
		if n := tu.CountRows(t, db, "lettings"); n != 1 {
			t.Errorf("expected lettings kept, got %d", n)
		}
	})

	t.Run("legacy and rollback", func(t *testing.T) {
		db := tu.NewTestDB(t)
		seedLegacy(t, db)
		runner, output := newTestRunner(t, db)

		if err := run(t, runner, "migrate", "legacy"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"Copied 3 rows", "Addresses: 1", "Lettings:  1", "Profiles:  1"} {
			if !strings.Contains(output.String(), want) {
				t.Errorf("expected %q in output:\n%s", want, output.String())
			}
		}

		runner, _ = newTestRunner(t, db)
		if err := run(t, runner, "lettings", "show", "3"); err != nil {
			t.Fatalf("expected preserved letting id, got %v", err)
		}

		if err := run(t, runner, "migrate", "rollback"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, table := range []string{"addresses", "lettings", "profiles"} {
			if n := tu.CountRows(t, db, table); n != 0 {
				t.Errorf("expected %s to be empty, got %d", table, n)
			}
		}
		if n := tu.CountRows(t, db, "oc_lettings_site_letting"); n != 1 {
			t.Errorf("expected legacy rows untouched, got %d", n)
		}
	})

	t.Run("legacy without legacy tables copies nothing", func(t *testing.T) {
		db := tu.NewTestDB(t)
		runner, output := newTestRunner(t, db)

		if err := run(t, runner, "migrate", "legacy"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "Copied 0 rows") {
			t.Errorf("expected empty copy:\n%s", output.String())
		}
	})

	t.Run("down with nothing applied", func(t *testing.T) {
		db, err := shared.NewDatabase(shared.MemoryPath)
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { db.Close() })
		runner, output := newTestRunner(t, db)

		if err := run(t, runner, "migrate", "down"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "Nothing to roll back") {
			t.Errorf("expected notice, got %q", output.String())
		}
	})

	t.Run("status json", func(t *testing.T) {
		db := tu.NewTestDB(t)
		runner, output := newTestRunner(t, db)

		if err := run(t, runner, "migrate", "status", "--json"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), `"Name": "migrate_lettings_data"`) {
			t.Errorf("expected data steps in status:\n%s", output.String())
		}
	})
}

func TestSetupDatabase(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	dbPath := filepath.Join(dir, "site.db")

	runner, output := newTestRunner(t, nil)
	runner.environ = map[string]string{"OCL_DATABASE_PATH": dbPath}
	t.Cleanup(func() { runner.Close() })

	app := &cli.Command{
		Name:     "oclettings",
		Flags:    []cli.Flag{&cli.StringFlag{Name: "config", Aliases: []string{"c"}}},
		Before:   runner.Before,
		Commands: runner.register(),
	}
	if err := app.Run(context.Background(), []string{"oclettings", "-c", configPath, "setup", "database"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tu.AssertFileExists(t, configPath)
	tu.AssertFileExists(t, dbPath)
	if !strings.Contains(output.String(), "Database ready") {
		t.Errorf("unexpected output %q", output.String())
	}

	db, err := runner.Database()
	if err != nil {
		t.Fatal(err)
	}
	states, err := shared.MigrationStatus(db)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range states {
		if !s.Applied {
			t.Errorf("expected migration %d to be applied", s.Version)
		}
	}
}
