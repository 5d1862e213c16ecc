package reader

import "prepkit/internal/config"

// ReaderConfig holds the knobs shared by every file format
type ReaderConfig struct {
	NAValues []string `json:"na_values"` // cell texts read as missing, besides the empty cell
	Sheet    string   `json:"sheet"`     // Excel sheet to read; empty means the first one
}

// DefaultReaderConfig returns the pandas-compatible missing markers and the first sheet
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{NAValues: append([]string(nil), config.DefaultNAValues...)}
}
