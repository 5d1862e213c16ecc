package app

import (
	"context"

	"prepkit/domain/core"
	"prepkit/domain/table"
	"prepkit/internal"
	"prepkit/ports"
)

// LoaderService reads the working table from a file
type LoaderService struct {
	reader ports.TableReader
	logger *internal.Logger
}

// NewLoaderService creates a loader around a table reader
func NewLoaderService(reader ports.TableReader, logger *internal.Logger) *LoaderService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &LoaderService{reader: reader, logger: logger.With("loader")}
}

// Load reads path. On failure the returned table is nil, which later
// operations report as core.ErrNoData.
func (s *LoaderService) Load(ctx context.Context, path string) (*table.Table, error) {
	t, err := s.reader.Read(ctx, path)
	if err != nil {
		s.logger.Warn("could not load %s: %v", path, err)
		return nil, err
	}
	rows, cols := t.Dims()
	s.logger.Info("loaded %s: %d rows, %d columns", path, rows, cols)
	return t, nil
}

func requireTable(t *table.Table) error {
	if t == nil {
		return core.ErrNoData
	}
	return nil
}
