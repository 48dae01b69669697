package operations

import (
	"log/slog"

	"github.com/tabuladb/tabula/internal/dataset"
)

// Derive appends one FLOAT column computed per row by expr. Rows where
// any operand is null, or where a division hits a zero divisor, get a
// null cell. The new name may not collide with an existing column.
func Derive(d *dataset.Dataset, name string, expr dataset.NumExpr) (*dataset.Dataset, error) {
	slog.Debug("deriving column",
		"dataset", d.Name(),
		"column", name,
		"expression", expr.String())

	if name == "" {
		return nil, &dataset.SchemaError{Dataset: d.Name(), Reason: "derived column name must not be empty"}
	}
	if d.Schema().Has(name) {
		return nil, dataset.NewDuplicateColumn(d.Name(), name)
	}
	if err := expr.Validate(d); err != nil {
		return nil, err
	}

	columns := append(d.Schema().Columns(), dataset.Column{Name: name, Type: dataset.ColumnTypeFloat})
	schema, err := dataset.NewSchema(columns...)
	if err != nil {
		return nil, err
	}

	rows := make([]dataset.Row, 0, d.NumRows())
	for i := 0; i < d.NumRows(); i++ {
		row := d.Row(i).Copy()
		row[name] = expr.Eval(d.Row(i))
		rows = append(rows, row)
	}

	out, err := dataset.New(d.Name(), schema, rows)
	if err != nil {
		return nil, err
	}

	slog.Info("derive complete", "dataset", d.Name(), "column", name, "rows", out.NumRows())
	return out, nil
}
