package mocks

import (
	"context"

	"gsheet_records/internal/sheets"
)

// MockSheetsAPI is a test double for sheets.SheetsAPI
type MockSheetsAPI struct {
	// Responses to return
	BatchGetResponse []sheets.Grid

	// Errors to return
	BatchGetError error
	UpdateError   error

	// Call tracking
	BatchGetCalls int
	UpdateCalls   int

	// Call parameters tracking
	BatchGetCalledWith struct {
		SpreadsheetID string
		Ranges        []string
	}
	UpdateCalledWith []UpdateCall
}

// UpdateCall records one Update invocation. Grid is a deep copy taken at call time.
type UpdateCall struct {
	SpreadsheetID string
	Range         string
	Grid          sheets.Grid
}

// NewMockSheetsAPI creates a new mock returning the given grids from BatchGet
func NewMockSheetsAPI(grids ...sheets.Grid) *MockSheetsAPI {
	return &MockSheetsAPI{BatchGetResponse: grids}
}

func (m *MockSheetsAPI) BatchGet(ctx context.Context, spreadsheetID string, ranges []string) ([]sheets.Grid, error) {
	m.BatchGetCalls++
	m.BatchGetCalledWith.SpreadsheetID = spreadsheetID
	m.BatchGetCalledWith.Ranges = ranges

	if m.BatchGetError != nil {
		return nil, m.BatchGetError
	}

	grids := make([]sheets.Grid, len(m.BatchGetResponse))
	for i, g := range m.BatchGetResponse {
		grids[i] = copyGrid(g)
	}
	return grids, nil
}

func (m *MockSheetsAPI) Update(ctx context.Context, spreadsheetID, range_ string, grid sheets.Grid) error {
	m.UpdateCalls++
	m.UpdateCalledWith = append(m.UpdateCalledWith, UpdateCall{
		SpreadsheetID: spreadsheetID,
		Range:         range_,
		Grid:          copyGrid(grid),
	})
	return m.UpdateError
}

// Reset clears all call tracking and responses
func (m *MockSheetsAPI) Reset() {
	m.BatchGetResponse = nil
	m.BatchGetError = nil
	m.UpdateError = nil
	m.BatchGetCalls = 0
	m.UpdateCalls = 0
	m.BatchGetCalledWith = struct {
		SpreadsheetID string
		Ranges        []string
	}{}
	m.UpdateCalledWith = nil
}

func copyGrid(g sheets.Grid) sheets.Grid {
	values := make([][]string, len(g.Values))
	for i, row := range g.Values {
		values[i] = append([]string(nil), row...)
	}
	return sheets.Grid{Values: values, MajorDimension: g.MajorDimension}
}
