package core

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors - centralized error definitions
var (
	// Recoverable: reported by the workflow, which then continues
	ErrNoData            = errors.New("no data loaded yet, please read data first")
	ErrUnsupportedFormat = errors.New("unsupported file type")
	ErrReadFailure       = errors.New("error reading file")

	// Not found errors
	ErrNotFound       = errors.New("not found")
	ErrColumnNotFound = fmt.Errorf("%w: column", ErrNotFound)
	ErrRowNotFound    = fmt.Errorf("%w: row", ErrNotFound)

	// Validation errors
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidMethod   = errors.New("encoding method is not available")
	ErrColumnConflict  = errors.New("column already exists")
	ErrUnknownCategory = errors.New("unknown category")
	ErrLengthMismatch  = errors.New("column length does not match table")
	ErrDuplicateColumn = errors.New("duplicate column name")
)

// Error constructors with context
func NewColumnNotFoundError(names []string) error {
	return fmt.Errorf("%w: %s are incorrect column names", ErrColumnNotFound, quoteAll(names))
}

func NewRowNotFoundError(labels []int) error {
	return fmt.Errorf("%w: labels %v not found in index", ErrRowNotFound, labels)
}

func NewUnsupportedFormatError(ext string) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
}

func NewReadError(path string, err error) error {
	return fmt.Errorf("%w %s: %v", ErrReadFailure, path, err)
}

func NewInvalidMethodError(kind, value string) error {
	return fmt.Errorf("%w: %s %q", ErrInvalidMethod, kind, value)
}

func NewUnknownCategoryError(column, value string) error {
	return fmt.Errorf("%w %q in column %q", ErrUnknownCategory, value, column)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidMethod) ||
		errors.Is(err, ErrColumnConflict) ||
		errors.Is(err, ErrUnknownCategory)
}

// IsRecoverable reports whether the workflow should print err and keep going.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrNoData) ||
		errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrReadFailure)
}

func quoteAll(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
