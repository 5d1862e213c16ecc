package reader

import (
	"path/filepath"
	"strings"

	"prepkit/domain/core"
)

// FileType identifies one of the supported input formats
type FileType string

const (
	FileTypeCSV   FileType = "csv"
	FileTypeExcel FileType = "excel"
	FileTypeJSON  FileType = "json"
)

var extensions = map[string]FileType{
	".csv":  FileTypeCSV,
	".xlsx": FileTypeExcel,
	".xlsm": FileTypeExcel,
	".xls":  FileTypeExcel,
	".json": FileTypeJSON,
}

// DetectFileType maps a path's extension, in any case, to a FileType
func DetectFileType(path string) (FileType, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ft, ok := extensions[ext]; ok {
		return ft, nil
	}
	if ext == "" {
		ext = "(none)"
	}
	return "", core.NewUnsupportedFormatError(ext)
}

// rawData is a header plus string rows, before missing markers and types are applied
type rawData struct {
	Header []string
	Rows   [][]string
	// Present is set by readers that know which cells are missing (JSON null);
	// nil means every cell is judged by its text.
	Present [][]bool
}
