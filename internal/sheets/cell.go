package sheets

import (
	"fmt"
	"strconv"
)

// Cell provides type-safe access to Google Sheets cell values.
// The Google Sheets API returns [][]interface{}, which we cannot change.
// This type wraps interface{} so the rest of the package only sees strings.
type Cell struct {
	raw interface{}
}

// NewCell creates a Cell from a raw interface{} value from Google Sheets API
func NewCell(raw interface{}) Cell {
	return Cell{raw: raw}
}

// String returns the cell value as a string
func (c Cell) String() string {
	switch v := c.raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// toGrid converts raw API rows into string rows.
func toGrid(values [][]interface{}, majorDimension string) Grid {
	rows := make([][]string, len(values))
	for i, row := range values {
		rows[i] = make([]string, len(row))
		for j, v := range row {
			rows[i][j] = NewCell(v).String()
		}
	}

	return Grid{
		Values:         rows,
		MajorDimension: majorDimension,
	}
}

// toValues converts string rows into the [][]interface{} the API expects.
func toValues(grid Grid) [][]interface{} {
	values := make([][]interface{}, len(grid.Values))
	for i, row := range grid.Values {
		values[i] = make([]interface{}, len(row))
		for j, v := range row {
			values[i][j] = v
		}
	}

	return values
}
