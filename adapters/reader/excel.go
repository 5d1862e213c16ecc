package reader

import (
	"fmt"
	"slices"

	"github.com/xuri/excelize/v2"
)

// readExcelData reads one worksheet: the configured sheet, or the first one.
// Cells are read raw, so numbers keep full precision and dates arrive as
// Excel serial numbers.
func (r *DataReader) readExcelData(path string) (*rawData, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	sheet := sheets[0]
	if r.config.Sheet != "" {
		if !slices.Contains(sheets, r.config.Sheet) {
			return nil, fmt.Errorf("worksheet %q not found (have %v)", r.config.Sheet, sheets)
		}
		sheet = r.config.Sheet
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no columns to parse from sheet %s", sheet)
	}
	r.logger.Trace("%s read (%d rows)", sheet, len(rows))

	// excelize trims trailing empty cells, so only the header fixes the width
	header := rows[0]
	body := rows[1:]
	for i, row := range body {
		if len(row) > len(header) {
			body[i] = row[:len(header)]
			for _, extra := range row[len(header):] {
				if extra != "" {
					return nil, fmt.Errorf("row %d has %d fields, expected %d", i+2, len(row), len(header))
				}
			}
		}
	}
	return &rawData{Header: header, Rows: body}, nil
}
