package reader

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/series"
)

// mangleHeader names blank headers "Unnamed: <i>" and suffixes repeats with
// ".1", ".2", ... the way pandas does.
func mangleHeader(header []string) []string {
	out := make([]string, len(header))
	used := make(map[string]bool, len(header))
	for i, h := range header {
		name := h
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if used[name] {
			base := name
			for n := 1; used[name]; n++ {
				name = fmt.Sprintf("%s.%d", base, n)
			}
		}
		used[name] = true
		out[i] = name
	}
	return out
}

// inferTypes picks a gota type per column from its present cells: int if all
// parse as integers, float if all parse as numbers, bool if all are true/false,
// string otherwise. A present "NaN" text is not a number, since numeric columns
// keep missing values only through the mask. A column with no present cells is
// float, like an empty column read by pandas.
func inferTypes(header []string, rows [][]string, present [][]bool) map[string]series.Type {
	types := make(map[string]series.Type, len(header))
	for j, name := range header {
		isInt, isFloat, isBool, seen := true, true, true, false
		for i, row := range rows {
			if !present[i][j] {
				continue
			}
			cell := row[j]
			seen = true
			if isInt {
				if _, err := strconv.ParseInt(cell, 10, 64); err != nil {
					isInt = false
				}
			}
			if isFloat {
				if f, err := strconv.ParseFloat(cell, 64); err != nil || math.IsNaN(f) {
					isFloat = false
				}
			}
			if isBool {
				lower := strings.ToLower(cell)
				if lower != "true" && lower != "false" {
					isBool = false
				}
			}
			if !isInt && !isFloat && !isBool {
				break
			}
		}

		switch {
		case !seen:
			types[name] = series.Float
		case isInt:
			types[name] = series.Int
		case isFloat:
			types[name] = series.Float
		case isBool:
			types[name] = series.Bool
		default:
			types[name] = series.String
		}
	}
	return types
}

// normalizeBools lowercases the cells of bool columns so gota parses them.
func normalizeBools(header []string, rows [][]string, present [][]bool, types map[string]series.Type) {
	for j, name := range header {
		if types[name] != series.Bool {
			continue
		}
		for i, row := range rows {
			if present[i][j] {
				row[j] = strings.ToLower(row[j])
			}
		}
	}
}
