package sheets

import "context"

// recordingAPI is a SheetsAPI that keeps every update it receives.
type recordingAPI struct {
	grids   []Grid
	updates []recordedUpdate
	err     error
}

type recordedUpdate struct {
	spreadsheetID string
	range_        string
	grid          Grid
}

func (a *recordingAPI) BatchGet(ctx context.Context, spreadsheetID string, ranges []string) ([]Grid, error) {
	return a.grids, a.err
}

func (a *recordingAPI) Update(ctx context.Context, spreadsheetID, range_ string, grid Grid) error {
	// copy, so later mutations of the range don't rewrite history
	snapshot := make([][]string, len(grid.Values))
	for i, row := range grid.Values {
		snapshot[i] = append([]string(nil), row...)
	}

	a.updates = append(a.updates, recordedUpdate{
		spreadsheetID: spreadsheetID,
		range_:        range_,
		grid:          Grid{Values: snapshot, MajorDimension: grid.MajorDimension},
	})

	return a.err
}

// newTestRange builds a Range over rows, failing the caller on error.
func newTestRange(t interface{ Fatalf(string, ...any) }, api SheetsAPI, rows ...[]string) *Range {
	r, err := NewRange("sheet-1", "People!A1:C", Grid{Values: rows, MajorDimension: DimensionRows}, api)
	if err != nil {
		t.Fatalf("NewRange failed: %v", err)
	}
	return r
}
