package dataset

import (
	"encoding/json"

	"github.com/Velocidex/ordereddict"
)

// MarshalJSON renders the dataset as an ordered document: name, column
// descriptions, then rows with cells in schema order. Null cells
// serialize as JSON null.
func (d *Dataset) MarshalJSON() ([]byte, error) {
	rows := make([]*ordereddict.Dict, 0, len(d.rows))
	for _, r := range d.rows {
		rows = append(rows, rowDict(r, d.schema))
	}
	doc := ordereddict.NewDict().
		Set("name", d.name).
		Set("columns", d.schema.Columns()).
		Set("rows", rows)
	return json.Marshal(doc)
}

func rowDict(r Row, s *Schema) *ordereddict.Dict {
	out := ordereddict.NewDict()
	for _, col := range s.columns {
		out.Set(col.Name, r[col.Name])
	}
	return out
}
