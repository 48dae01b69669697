package operations

import (
	"log/slog"

	"github.com/tabuladb/tabula/internal/dataset"
)

// Project returns a dataset holding only the named columns, in the
// order given. Every name must exist and may be requested once.
func Project(d *dataset.Dataset, columns []string) (*dataset.Dataset, error) {
	slog.Debug("projecting dataset", "dataset", d.Name(), "columns", columns)

	if len(columns) == 0 {
		return nil, &dataset.SchemaError{Dataset: d.Name(), Reason: "projection requires at least one column"}
	}

	kept := make([]dataset.Column, 0, len(columns))
	seen := make(map[string]bool, len(columns))
	for _, name := range columns {
		col, ok := d.Schema().Column(name)
		if !ok {
			return nil, dataset.NewColumnNotFound(d.Name(), name)
		}
		if seen[name] {
			return nil, dataset.NewDuplicateColumn(d.Name(), name)
		}
		seen[name] = true
		kept = append(kept, col)
	}

	schema, err := dataset.NewSchema(kept...)
	if err != nil {
		return nil, err
	}

	rows := make([]dataset.Row, 0, d.NumRows())
	for i := 0; i < d.NumRows(); i++ {
		src := d.Row(i)
		row := make(dataset.Row, len(columns))
		for _, name := range columns {
			row[name] = src[name]
		}
		rows = append(rows, row)
	}

	out, err := dataset.New(d.Name(), schema, rows)
	if err != nil {
		return nil, err
	}

	slog.Info("projection complete",
		"dataset", d.Name(),
		"columns", len(columns),
		"rows", out.NumRows())
	return out, nil
}
