package sheets

import (
	"reflect"
	"testing"
)

func TestFormatRecords(t *testing.T) {
	testCases := []struct {
		name     string
		grid     Grid
		expected []Record
	}{
		{
			name: "simple",
			grid: Grid{Values: [][]string{
				{"name", "age"},
				{"Ana", "30"},
				{"Bob", "41"},
			}},
			expected: []Record{
				{"name": "Ana", "age": "30"},
				{"name": "Bob", "age": "41"},
			},
		},
		{
			name:     "empty grid",
			grid:     Grid{},
			expected: []Record{},
		},
		{
			name: "empty rows are skipped",
			grid: Grid{Values: [][]string{
				{"name"},
				{},
				{"Ana"},
			}},
			expected: []Record{{"name": "Ana"}},
		},
		{
			name: "values without a key are dropped",
			grid: Grid{Values: [][]string{
				{"name", "", "age"},
				{"Ana", "note", "30", "extra"},
			}},
			expected: []Record{{"name": "Ana", "age": "30"}},
		},
		{
			name: "short rows only carry present cells",
			grid: Grid{Values: [][]string{
				{"name", "age"},
				{"Ana"},
			}},
			expected: []Record{{"name": "Ana"}},
		},
		{
			name: "later duplicate header wins",
			grid: Grid{Values: [][]string{
				{"id", "id"},
				{"first", "second"},
			}},
			expected: []Record{{"id": "second"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			records := FormatRecords(tc.grid)
			if !reflect.DeepEqual(records, tc.expected) {
				t.Errorf("Expected %v, got %v", tc.expected, records)
			}
		})
	}
}
