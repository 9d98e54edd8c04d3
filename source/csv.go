package source

import (
	"encoding/csv"
	"os"

	"github.com/cockroachdb/errors"
)

// LoadCSV reads a headerless sheet export with columns
// (category, verb, object, template). The category column is ignored.
// Three-column files without the category column are accepted as well.
func LoadCSV(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open grammar source %q", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read grammar source %q", path)
	}

	rows := make([]Row, 0, len(records))
	for i, record := range records {
		row := Row{Line: i + 1}
		switch {
		case len(record) >= 4:
			row.Verb, row.Object, row.Template = record[1], record[2], record[3]
		case len(record) == 3:
			row.Verb, row.Object, row.Template = record[0], record[1], record[2]
		default:
			// short row, keep for forward-fill bookkeeping only
		}
		rows = append(rows, row)
	}
	return rows, nil
}
