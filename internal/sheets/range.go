package sheets

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Range owns the grid fetched for one named region of a spreadsheet and
// exposes its data rows as header-keyed Lines.
//
// The grid is the only copy of the data. Lines are handles into it, so a
// value written through one Line is visible through every other accessor.
// A Range is not safe for concurrent use.
type Range struct {
	api            SheetsAPI
	spreadsheetID  string
	name           string
	majorDimension string
	values         [][]string
	keys           []string
	lines          []*Line
}

// NewRange builds a Range over grid. Row 0 of the grid is the header row and
// must not be empty. The Range takes ownership of grid.Values.
func NewRange(spreadsheetID, name string, grid Grid, api SheetsAPI) (*Range, error) {
	if len(grid.Values) == 0 || len(grid.Values[0]) == 0 {
		return nil, fmt.Errorf("%w: no header row found in range %s", ErrValidation, name)
	}

	r := &Range{
		api:            api,
		spreadsheetID:  spreadsheetID,
		name:           name,
		majorDimension: grid.MajorDimension,
		values:         grid.Values,
		keys:           grid.Values[0],
	}

	r.lines = make([]*Line, 0, len(r.values)-1)
	for row := 1; row < len(r.values); row++ {
		r.lines = append(r.lines, &Line{rng: r, row: row})
	}

	return r, nil
}

// SpreadsheetID returns the ID of the spreadsheet the range belongs to
func (r *Range) SpreadsheetID() string {
	return r.spreadsheetID
}

// Name returns the range expression, e.g. 'Sheet1!A1:D'
func (r *Range) Name() string {
	return r.name
}

// MajorDimension returns the orientation reported when the range was fetched
func (r *Range) MajorDimension() string {
	return r.majorDimension
}

// Keys returns the header row. The returned slice is shared with the Range.
func (r *Range) Keys() []string {
	return r.keys
}

// Lines returns the live list of data rows, in sheet order.
func (r *Range) Lines() []*Line {
	return r.lines
}

// NewLine appends an empty row to the grid and returns its Line.
func (r *Range) NewLine() *Line {
	r.values = append(r.values, []string{})

	line := &Line{rng: r, row: len(r.lines) + 1}
	r.lines = append(r.lines, line)

	return line
}

// Find returns the lines whose value for key equals value.
func (r *Range) Find(key, value string) []*Line {
	found := []*Line{}
	for _, line := range r.lines {
		if v, ok := line.Lookup(key); ok && v == value {
			found = append(found, line)
		}
	}

	return found
}

// Records returns one record per line, in sheet order.
func (r *Range) Records() []Record {
	records := make([]Record, 0, len(r.lines))
	for _, line := range r.lines {
		records = append(records, line.Record())
	}

	return records
}

// Grid returns a deep copy of the current grid.
func (r *Range) Grid() Grid {
	values := make([][]string, len(r.values))
	for i, row := range r.values {
		values[i] = append([]string(nil), row...)
	}

	return Grid{
		Values:         values,
		MajorDimension: r.majorDimension,
	}
}

// Save overwrites the remote range with the full current grid in a single
// update. Remote cells outside the written grid are left as they are.
func (r *Range) Save(ctx context.Context) error {
	if r.api == nil {
		return fmt.Errorf("%w: range %s has no sheets client", ErrRemoteWrite, r.name)
	}

	grid := Grid{
		Values:         r.values,
		MajorDimension: r.majorDimension,
	}

	if err := r.api.Update(ctx, r.spreadsheetID, r.name, grid); err != nil {
		return fmt.Errorf("%w: failed to save range %s: %w", ErrRemoteWrite, r.name, err)
	}

	log.Info().
		Str("spreadsheet_id", r.spreadsheetID).
		Str("range", r.name).
		Int("rows", len(r.values)).
		Msg("Spreadsheet saved successfully")

	return nil
}

// column resolves key to its position in the header, first occurrence wins.
func (r *Range) column(key string) int {
	for i, k := range r.keys {
		if k == key {
			return i
		}
	}

	return -1
}

// set writes value at (row, col), padding the row with empty cells as needed.
func (r *Range) set(row, col int, value string) {
	cells := r.values[row]
	for len(cells) <= col {
		cells = append(cells, "")
	}

	cells[col] = value
	r.values[row] = cells
}

// Line is one data row of a Range. It holds no values of its own.
type Line struct {
	rng *Range
	row int
}

// Row returns the line's 1-based position below the header row.
func (l *Line) Row() int {
	return l.row
}

// Value returns the value for key, or "" if the key is not a header or the
// row does not extend that far.
func (l *Line) Value(key string) string {
	v, _ := l.Lookup(key)
	return v
}

// Lookup returns the value for key and whether key is a header of the range.
func (l *Line) Lookup(key string) (string, bool) {
	col := l.rng.column(key)
	if col < 0 {
		return "", false
	}

	cells := l.rng.values[l.row]
	if col >= len(cells) {
		return "", true
	}

	return cells[col], true
}

// SetValue writes value for key into the owning range's grid. Unknown keys
// are ignored and the header is never extended.
func (l *Line) SetValue(key, value string) {
	col := l.rng.column(key)
	if col < 0 {
		log.Debug().
			Str("range", l.rng.name).
			Str("key", key).
			Int("row", l.row).
			Msg("Ignoring value for unknown key")
		return
	}

	l.rng.set(l.row, col, value)
}

// Values returns a copy of the line's raw cells.
func (l *Line) Values() []string {
	return append([]string(nil), l.rng.values[l.row]...)
}

// Record returns the line as a header-keyed record. Only positions present
// in the row are included.
func (l *Line) Record() Record {
	return toRecord(l.rng.keys, l.rng.values[l.row])
}
