package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Persistence errors
	ErrNotFound           = fmt.Errorf("not found")
	ErrDuplicate          = fmt.Errorf("duplicate record")
	ErrValidation         = fmt.Errorf("validation failed")
	ErrLegacyModelMissing = fmt.Errorf("legacy model not found")
	ErrDanglingReference  = fmt.Errorf("dangling reference")
	ErrNoMigrations       = fmt.Errorf("no migrations to rollback")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")

	ErrUnsupportedPlatform = fmt.Errorf("unsupported platform")
)
