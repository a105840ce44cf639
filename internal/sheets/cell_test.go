package sheets

import (
	"reflect"
	"testing"
)

func TestCellString(t *testing.T) {
	testCases := []struct {
		name     string
		input    interface{}
		expected string
	}{
		{"nil input", nil, ""},
		{"string input", "hello", "hello"},
		{"empty string", "", ""},
		{"int input", 42, "42"},
		{"int64 input", int64(123), "123"},
		{"float64 input", 45.67, "45.67"},
		{"whole float64", float64(30), "30"},
		{"bool true", true, "true"},
		{"bool false", false, "false"},
		{"complex type", []int{1, 2, 3}, "[1 2 3]"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := NewCell(tc.input).String()
			if result != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, result)
			}
		})
	}
}

func TestGridConversion(t *testing.T) {
	raw := [][]interface{}{
		{"name", "age"},
		{"Ana", float64(30)},
		{},
		{"Bob"},
	}

	grid := toGrid(raw, DimensionRows)

	expected := [][]string{
		{"name", "age"},
		{"Ana", "30"},
		{},
		{"Bob"},
	}

	if !reflect.DeepEqual(grid.Values, expected) {
		t.Errorf("Expected %v, got %v", expected, grid.Values)
	}

	if grid.MajorDimension != DimensionRows {
		t.Errorf("Expected major dimension %s, got %s", DimensionRows, grid.MajorDimension)
	}

	values := toValues(grid)
	if len(values) != 4 || len(values[3]) != 1 || values[1][1] != "30" {
		t.Errorf("Unexpected values %v", values)
	}
}
