package sheets

import (
	"context"
	"errors"
)

var (
	// ErrValidation is returned when a grid cannot back a Range (no header row).
	ErrValidation = errors.New("invalid grid")

	// ErrRemoteRead wraps failures fetching ranges from the spreadsheet service.
	ErrRemoteRead = errors.New("remote read failed")

	// ErrRemoteWrite wraps failures writing a range back to the spreadsheet service.
	ErrRemoteWrite = errors.New("remote write failed")
)

// Major dimensions reported by the Sheets API.
const (
	DimensionRows    = "ROWS"
	DimensionColumns = "COLUMNS"
)

// Grid is one fetched or to-be-written region: rows of string cells plus the
// orientation the service reported. Row 0 is the header row.
type Grid struct {
	Values         [][]string
	MajorDimension string
}

// SheetsAPI defines the interface for the remote spreadsheet service.
// This separates infrastructure concerns from the record model.
//
// Implementations own any retry policy; callers never retry.
type SheetsAPI interface {
	// BatchGet reads several ranges in one request. The returned grids are in
	// the same order as the requested ranges.
	BatchGet(ctx context.Context, spreadsheetID string, ranges []string) ([]Grid, error)

	// Update overwrites a range with the grid, interpreting values as if they
	// were typed by a user.
	Update(ctx context.Context, spreadsheetID, range_ string, grid Grid) error
}
