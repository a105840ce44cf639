package app

import (
	"fmt"
	"strings"
)

// Assignment is one key=value pair given on the command line.
type Assignment struct {
	Key   string
	Value string
}

// ParseAssignments parses "key=value,key=value". Values may be empty and may
// contain '=' but not ','.
func ParseAssignments(s string) ([]Assignment, error) {
	assignments := []Assignment{}
	if strings.TrimSpace(s) == "" {
		return assignments, nil
	}

	for _, part := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid assignment '%s', expected key=value", part)
		}

		assignments = append(assignments, Assignment{Key: key, Value: value})
	}

	return assignments, nil
}

// ParseSelector parses a single "key=value" used to select lines.
func ParseSelector(s string) (Assignment, error) {
	assignments, err := ParseAssignments(s)
	if err != nil {
		return Assignment{}, err
	}

	if len(assignments) != 1 {
		return Assignment{}, fmt.Errorf("expected a single key=value selector, got %d", len(assignments))
	}

	return assignments[0], nil
}

// RangeList collects repeated -range flags.
type RangeList []string

func (r *RangeList) String() string {
	return strings.Join(*r, ",")
}

func (r *RangeList) Set(value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("range must not be empty")
	}
	*r = append(*r, value)
	return nil
}
