package reader

import (
	"fmt"
	"os"
	"strconv"

	"github.com/tidwall/gjson"
)

// readJSONData accepts the two layouts pandas reads by default: an array of
// records, or an object of columns, each column an object keyed by row label
// or a plain array. Column and row order follow first appearance in the file.
func (r *DataReader) readJSONData(path string) (*rawData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open JSON file: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON")
	}

	root := gjson.ParseBytes(data)
	switch {
	case root.IsArray():
		return readRecords(root)
	case root.IsObject():
		return readColumns(root)
	}
	return nil, fmt.Errorf("expected a JSON array or object, got %s", root.Type)
}

func readRecords(root gjson.Result) (*rawData, error) {
	var header []string
	position := make(map[string]int)
	var records []map[string]gjson.Result

	var bad error
	root.ForEach(func(_, record gjson.Result) bool {
		if !record.IsObject() {
			bad = fmt.Errorf("record %d is not an object", len(records))
			return false
		}
		fields := make(map[string]gjson.Result)
		record.ForEach(func(key, value gjson.Result) bool {
			name := key.String()
			if _, ok := position[name]; !ok {
				position[name] = len(header)
				header = append(header, name)
			}
			fields[name] = value
			return true
		})
		records = append(records, fields)
		return true
	})
	if bad != nil {
		return nil, bad
	}

	raw := &rawData{Header: header}
	for _, fields := range records {
		row := make([]string, len(header))
		present := make([]bool, len(header))
		for j, name := range header {
			if value, ok := fields[name]; ok {
				row[j], present[j] = cellText(value)
			}
		}
		raw.Rows = append(raw.Rows, row)
		raw.Present = append(raw.Present, present)
	}
	return raw, nil
}

func readColumns(root gjson.Result) (*rawData, error) {
	var header []string
	var labels []string
	labelPos := make(map[string]int)
	var columns []map[string]gjson.Result

	addLabel := func(l string) {
		if _, ok := labelPos[l]; !ok {
			labelPos[l] = len(labels)
			labels = append(labels, l)
		}
	}

	var bad error
	root.ForEach(func(key, column gjson.Result) bool {
		cells := make(map[string]gjson.Result)
		switch {
		case column.IsObject():
			column.ForEach(func(label, value gjson.Result) bool {
				l := label.String()
				cells[l] = value
				addLabel(l)
				return true
			})
		case column.IsArray():
			for i, value := range column.Array() {
				l := strconv.Itoa(i)
				cells[l] = value
				addLabel(l)
			}
		default:
			bad = fmt.Errorf("column %q is neither an object nor an array", key.String())
			return false
		}
		header = append(header, key.String())
		columns = append(columns, cells)
		return true
	})
	if bad != nil {
		return nil, bad
	}

	raw := &rawData{Header: header}
	for _, label := range labels {
		row := make([]string, len(header))
		present := make([]bool, len(header))
		for j := range header {
			if value, ok := columns[j][label]; ok {
				row[j], present[j] = cellText(value)
			}
		}
		raw.Rows = append(raw.Rows, row)
		raw.Present = append(raw.Present, present)
	}
	return raw, nil
}

// cellText turns a JSON value into cell text; null is missing.
func cellText(value gjson.Result) (string, bool) {
	switch value.Type {
	case gjson.Null:
		return "", false
	case gjson.String:
		return value.Str, true
	case gjson.True:
		return "true", true
	case gjson.False:
		return "false", true
	default:
		return value.Raw, true
	}
}
