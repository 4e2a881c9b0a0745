// package models defines the data model for the lettings site
package models

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/desertthunder/oclettings/internal/shared"
)

// Model defines the base interface for all persistent models.
type Model interface {
	fmt.Stringer     // String returns the display form used in listings and the admin
	Validate() error // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the data access operations common to every store.
// K is the lookup key type (numeric id or natural key).
type Repository[T Model, K comparable] interface {
	Create(ctx context.Context, model T) error // Create inserts a new model into the database
	Get(ctx context.Context, key K) (T, error) // Get retrieves a model by its key
	List(ctx context.Context) ([]T, error)     // List retrieves every model in storage order
}

// maxChars fails when value is longer than limit Unicode code points.
func maxChars(field, value string, limit int) error {
	if n := utf8.RuneCountInString(value); n > limit {
		return fmt.Errorf("%w: %s must be at most %d characters, got %d", shared.ErrValidation, field, limit, n)
	}
	return nil
}

// exactChars fails unless value is exactly size Unicode code points.
func exactChars(field, value string, size int) error {
	if n := utf8.RuneCountInString(value); n != size {
		return fmt.Errorf("%w: %s must be exactly %d characters, got %d", shared.ErrValidation, field, size, n)
	}
	return nil
}

func required(field, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s is required", shared.ErrValidation, field)
	}
	return nil
}

func between(field string, value, lo, hi int) error {
	if value < lo || value > hi {
		return fmt.Errorf("%w: %s must be between %d and %d, got %d", shared.ErrValidation, field, lo, hi, value)
	}
	return nil
}
