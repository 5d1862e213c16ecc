package reader

import (
	"encoding/csv"
	"fmt"
	"os"
)

// readCSVData reads a CSV file whose first record is the header
func (r *DataReader) readCSVData(path string) (*rawData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no columns to parse from file")
	}
	r.logger.Trace("CSV parsed (%d records)", len(records))

	return &rawData{Header: records[0], Rows: records[1:]}, nil
}
