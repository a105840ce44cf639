package gsheet

import (
	"encoding/json"
	"regexp"

	"gsheet_records/internal/sheets"
)

// RangeData holds the records fetched for one range.
type RangeData struct {
	Range   string
	Records []sheets.Record
}

// Data is the read-only result of GetData, in request order.
type Data []RangeData

// Get returns the records for the named range, or nil.
func (d Data) Get(name string) []sheets.Record {
	for _, rd := range d {
		if rd.Range == name {
			return rd.Records
		}
	}
	return nil
}

// MarshalJSON encodes a single range as an array of records and several
// ranges as an object keyed by range name.
func (d Data) MarshalJSON() ([]byte, error) {
	if len(d) == 1 {
		return json.Marshal(d[0].Records)
	}

	byName := make(map[string][]sheets.Record, len(d))
	for _, rd := range d {
		byName[rd.Range] = rd.Records
	}

	return json.Marshal(byName)
}

// Ranges is the read/write result of GetRanges, in request order.
type Ranges []*sheets.Range

// Get returns the named range, or nil.
func (r Ranges) Get(name string) *sheets.Range {
	for _, rng := range r {
		if rng.Name() == name {
			return rng
		}
	}
	return nil
}

// Names returns the range names in request order.
func (r Ranges) Names() []string {
	names := make([]string, 0, len(r))
	for _, rng := range r {
		names = append(names, rng.Name())
	}
	return names
}

var spreadsheetURL = regexp.MustCompile(`^https://docs.google.com/spreadsheets/d/(.*?)(?:/.*)?$`)

// SpreadsheetID extracts the spreadsheet ID from a Google Sheets URL. Anything
// that is not a spreadsheet URL is returned unchanged.
func SpreadsheetID(urlOrID string) string {
	if match := spreadsheetURL.FindStringSubmatch(urlOrID); len(match) > 1 {
		return match[1]
	}
	return urlOrID
}
