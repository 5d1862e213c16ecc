package ports

import (
	"context"

	"prepkit/domain/table"
)

// TableReader loads a file into a table
type TableReader interface {
	// Read returns core.ErrUnsupportedFormat for unknown extensions and
	// core.ErrReadFailure when the file cannot be opened or parsed
	Read(ctx context.Context, path string) (*table.Table, error)
}
