// Package operations implements the relational operations over
// datasets: filter, join, derive and project. Every operation is pure;
// inputs are never modified and results are new datasets.
package operations

import (
	"log/slog"

	"github.com/tabuladb/tabula/internal/dataset"
)

// Filter returns the rows of d that satisfy the predicate, in their
// original order, as a new dataset with the same schema. The predicate
// is validated against d before any row is examined. A nil predicate
// keeps every row.
func Filter(d *dataset.Dataset, pred dataset.Predicate) (*dataset.Dataset, error) {
	if pred == nil {
		pred = dataset.Always()
	}
	slog.Debug("filtering dataset", "dataset", d.Name(), "predicate", pred.String())

	if err := pred.Validate(d); err != nil {
		return nil, err
	}

	rows := make([]dataset.Row, 0, d.NumRows())
	for i := 0; i < d.NumRows(); i++ {
		row := d.Row(i)
		if pred.Matches(row) {
			rows = append(rows, row)
		}
	}

	out, err := dataset.New(d.Name(), d.Schema(), rows)
	if err != nil {
		return nil, err
	}

	slog.Info("filter complete",
		"dataset", d.Name(),
		"in_rows", d.NumRows(),
		"out_rows", out.NumRows())
	return out, nil
}
