package render

import (
	"encoding/csv"
	"io"

	"github.com/tabuladb/tabula/internal/dataset"
)

// CSV writes the dataset as comma-separated records with a header row.
// Null cells become empty fields.
func CSV(w io.Writer, ds *dataset.Dataset) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(ds.Schema().Names()); err != nil {
		return err
	}

	columns := ds.Schema().Columns()
	record := make([]string, len(columns))
	for i := 0; i < ds.NumRows(); i++ {
		row := ds.Row(i)
		for j, col := range columns {
			if v := row[col.Name]; v != nil {
				record[j] = dataset.FormatValue(v)
			} else {
				record[j] = ""
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
