package tracker

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
)

// Record is one CSV row as an ordered header-name -> cell-value mapping.
// Immutable once parsed.
type Record map[string]string

// Table is a tokenized CSV export: the header row plus one Record per data
// row.
type Table struct {
	Headers []string
	Records []Record
}

// ReadTable parses a CSV export file into a Table. Rows whose field count
// does not match the header are skipped with a warning rather than failing
// the whole file.
func ReadTable(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV %q: %w", path, err)
	}
	defer file.Close()

	table, err := ParseTable(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV %q: %w", path, err)
	}
	return table, nil
}

// ParseTable tokenizes CSV data from a reader.
func ParseTable(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows are filtered below, not fatal

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv read: %w", err)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("csv has no header row")
	}

	headers := rows[0]
	table := &Table{
		Headers: headers,
		Records: make([]Record, 0, len(rows)-1),
	}

	for i, row := range rows[1:] {
		if len(row) != len(headers) {
			log.Warn().
				Int("line", i+2).
				Int("want", len(headers)).
				Int("got", len(row)).
				Msg("Skipping row with mismatched field count")
			continue
		}
		rec := make(Record, len(headers))
		for j, value := range row {
			rec[headers[j]] = value
		}
		table.Records = append(table.Records, rec)
	}

	return table, nil
}
