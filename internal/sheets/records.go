package sheets

// Record is one data row keyed by header.
type Record map[string]string

// FormatRecords converts a grid into header-keyed records. Row 0 supplies the
// keys and empty rows are skipped. Values at positions without a key, or with
// an empty key, are dropped. When a header repeats, the later column wins.
func FormatRecords(grid Grid) []Record {
	records := []Record{}

	var keys []string
	for i, row := range grid.Values {
		if len(row) == 0 {
			continue
		}

		if i == 0 {
			keys = row
			continue
		}

		records = append(records, toRecord(keys, row))
	}

	return records
}

func toRecord(keys, row []string) Record {
	record := Record{}
	for i, v := range row {
		if i >= len(keys) || keys[i] == "" {
			continue
		}

		record[keys[i]] = v
	}

	return record
}
