package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/oclettings/internal/repositories"
	"github.com/desertthunder/oclettings/internal/services"
	"github.com/desertthunder/oclettings/internal/shared"
	"github.com/desertthunder/oclettings/internal/ui"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	logger  *log.Logger
	output  io.Writer
	environ map[string]string

	db     *sql.DB
	ownsDB bool
}

// RunnerOpts contains configuration options for creating a Runner.
//
// A non-nil DB is used as is and never closed by the Runner. A nil Environ reads the process environment.
type RunnerOpts struct {
	Config  *shared.Config
	Logger  *log.Logger
	Output  io.Writer
	DB      *sql.DB
	Environ map[string]string
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:  opts.Config,
		logger:  opts.Logger,
		output:  opts.Output,
		environ: opts.Environ,
		db:      opts.DB,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, migrateCommand, serveCommand, lettingsCommand, profilesCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Before loads the configuration named by the --config flag ahead of every command.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	return ctx, r.Configure(cmd.String("config"))
}

// Configure loads path when it exists, applies OCL_* environment overrides and sets up logging.
//
// A missing file keeps the current configuration.
func (r *Runner) Configure(path string) error {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			config, err := shared.LoadConfig(path)
			if err != nil {
				return err
			}
			r.config = config
		}
	}

	if err := r.config.ApplyEnv(r.environ); err != nil {
		return err
	}
	if err := r.config.Validate(); err != nil {
		return err
	}

	level, err := shared.ParseLogLevel(r.config.Log.Level)
	if err != nil {
		return err
	}

	if r.config.Log.File != "" {
		fileLogger, err := shared.NewFileLogger(r.config.Log.File)
		if err != nil {
			return err
		}
		r.SetLogger(fileLogger)
	}
	shared.SetLogLevel(r.logger, level)

	return nil
}

// SetLogger replaces the runner's logger, e.g. to keep logs off the terminal while the TUI runs.
func (r *Runner) SetLogger(logger *log.Logger) {
	if logger != nil {
		logger.SetLevel(r.logger.GetLevel())
		r.logger = logger
	}
}

// Database opens the configured database once and reuses it for the rest of the command.
func (r *Runner) Database() (*sql.DB, error) {
	if r.db != nil {
		return r.db, nil
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	r.db = db
	r.ownsDB = true
	return db, nil
}

// Close releases the database if the runner opened it.
func (r *Runner) Close() error {
	if r.db == nil || !r.ownsDB {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	r.ownsDB = false
	return err
}

// resolvers builds the letting and profile resolvers over the configured database.
func (r *Runner) resolvers() (*services.LettingService, *services.ProfileService, error) {
	db, err := r.Database()
	if err != nil {
		return nil, nil, err
	}

	lettings := services.NewLettingService(repositories.NewLettingRepository(db))
	profiles := services.NewProfileService(repositories.NewProfileRepository(db))
	return lettings, profiles, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", ui.Title(title))
	r.writePlain("═══════════════════════════════════════\n")
}
