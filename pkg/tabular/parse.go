package tabular

import (
	"encoding/csv"
	"path/filepath"
	"strings"

	"github.com/adtaxonomy/taxsync/pkg/constants"
	"github.com/adtaxonomy/taxsync/pkg/errors"
)

// Parse produces a Dataset from raw upstream content. The file name's
// extension decides the format: ".tsv" is tab-separated, ".csv" is
// comma-separated, and everything else is attempted as JSON. Content that
// is neither a recognized delimited format nor valid JSON fails with a
// FormatError.
func Parse(text, name string) (*Dataset, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".tsv":
		return parseDelimited(text, name, '\t')
	case ".csv":
		return parseDelimited(text, name, ',')
	default:
		return parseJSON(text, name)
	}
}

// parseDelimited parses delimited text into a table, auto-detecting the
// header row offset first.
func parseDelimited(text, name string, comma rune) (*Dataset, error) {
	lines := strings.Split(text, "\n")
	offset := headerOffset(lines)

	reader := csv.NewReader(strings.NewReader(strings.Join(lines[offset:], "\n")))
	reader.Comma = comma
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewFormatError(name, "malformed delimited content", err)
	}
	if len(records) == 0 {
		return nil, errors.NewFormatError(name, "no header row", nil)
	}

	columns := make([]string, len(records[0]))
	for i, token := range records[0] {
		columns[i] = strings.TrimSpace(token)
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(Row, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = record[i]
			} else {
				// Short records still carry the full column set.
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}

	return NewTableDataset(&Table{Columns: columns, Rows: rows}), nil
}

// headerOffset finds the real header row within the leading lines of the
// text. Upstream taxonomy files carry preamble rows before the header; the
// header is the first line containing both "unique id" and "name"
// (case-insensitive). When no line in the scan window qualifies, line 0 is
// the header.
func headerOffset(lines []string) int {
	limit := len(lines)
	if limit > constants.HeaderScanLines {
		limit = constants.HeaderScanLines
	}
	for i := 0; i < limit; i++ {
		lower := strings.ToLower(lines[i])
		if strings.Contains(lower, "unique id") && strings.Contains(lower, "name") {
			return i
		}
	}
	return 0
}
