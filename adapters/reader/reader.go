package reader

import (
	"context"
	"fmt"
	"os"
	"time"

	"prepkit/domain/core"
	"prepkit/domain/table"
	"prepkit/internal"
)

// DataReader loads CSV, Excel and JSON files into a table
type DataReader struct {
	config ReaderConfig
	logger *internal.Logger
	na     map[string]bool
}

// NewDataReader creates a reader. A nil logger falls back to the default one.
func NewDataReader(config ReaderConfig, logger *internal.Logger) *DataReader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	na := make(map[string]bool, len(config.NAValues)+1)
	na[""] = true
	for _, v := range config.NAValues {
		na[v] = true
	}
	return &DataReader{config: config, logger: logger.With("reader"), na: na}
}

// Read dispatches on the file extension and returns the loaded table.
// Unknown extensions fail with core.ErrUnsupportedFormat; anything that goes
// wrong opening or parsing the file fails with core.ErrReadFailure.
func (r *DataReader) Read(ctx context.Context, path string) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fileType, err := DetectFileType(path)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("starting to read %s file: %s", fileType, path)

	if _, err := os.Stat(path); err != nil {
		return nil, core.NewReadError(path, err)
	}

	readStart := time.Now()
	var raw *rawData
	switch fileType {
	case FileTypeCSV:
		raw, err = r.readCSVData(path)
	case FileTypeExcel:
		raw, err = r.readExcelData(path)
	case FileTypeJSON:
		raw, err = r.readJSONData(path)
	default:
		return nil, core.NewUnsupportedFormatError(string(fileType))
	}
	if err != nil {
		return nil, core.NewReadError(path, err)
	}

	t, err := r.buildTable(raw)
	if err != nil {
		return nil, core.NewReadError(path, err)
	}

	r.logger.Info("%s file read in %.2fms (%d rows, %d columns)",
		fileType, float64(time.Since(readStart).Nanoseconds())/1e6, t.Nrow(), t.Ncol())
	return t, nil
}

// buildTable fixes up the header, marks missing cells, infers a type per
// column and hands the result to the table package.
func (r *DataReader) buildTable(raw *rawData) (*table.Table, error) {
	if len(raw.Header) == 0 {
		return nil, fmt.Errorf("no columns to parse from file")
	}
	header := mangleHeader(raw.Header)

	rows := make([][]string, len(raw.Rows))
	present := make([][]bool, len(raw.Rows))
	for i, row := range raw.Rows {
		if len(row) > len(header) {
			return nil, fmt.Errorf("row %d has %d fields, expected %d", i+1, len(row), len(header))
		}
		cells := make([]string, len(header))
		flags := make([]bool, len(header))
		for j := range header {
			if j >= len(row) {
				continue
			}
			cells[j] = row[j]
			if raw.Present != nil {
				flags[j] = raw.Present[i][j]
			} else {
				flags[j] = !r.na[row[j]]
			}
		}
		rows[i] = cells
		present[i] = flags
	}

	types := inferTypes(header, rows, present)
	normalizeBools(header, rows, present, types)
	return table.FromRecords(header, rows, present, types)
}
