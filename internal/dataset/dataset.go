// Package dataset defines the core data model: immutable, named,
// schema-typed tables of rows, the predicates that filter them and the
// numeric expressions that derive new columns from them.
package dataset

import (
	"fmt"

	"github.com/google/uuid"
)

// Column describes a single column of a dataset.
type Column struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}

// Schema is an ordered collection of uniquely named columns.
type Schema struct {
	columns []Column
	index   map[string]int
}

// NewSchema builds a schema from the given columns in order.
func NewSchema(columns ...Column) (*Schema, error) {
	s := &Schema{
		columns: make([]Column, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for _, col := range columns {
		if col.Name == "" {
			return nil, &SchemaError{Reason: "column name must not be empty"}
		}
		if _, exists := s.index[col.Name]; exists {
			return nil, NewDuplicateColumn("", col.Name)
		}
		s.index[col.Name] = len(s.columns)
		s.columns = append(s.columns, col)
	}
	return s, nil
}

// Len returns the number of columns.
func (s *Schema) Len() int {
	return len(s.columns)
}

// Columns returns the columns in schema order.
func (s *Schema) Columns() []Column {
	out := make([]Column, len(s.columns))
	copy(out, s.columns)
	return out
}

// Names returns the column names in schema order.
func (s *Schema) Names() []string {
	out := make([]string, len(s.columns))
	for i, col := range s.columns {
		out[i] = col.Name
	}
	return out
}

// Has reports whether the schema contains the named column.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Column looks up a column by name.
func (s *Schema) Column(name string) (Column, bool) {
	i, ok := s.index[name]
	if !ok {
		return Column{}, false
	}
	return s.columns[i], true
}

// Dataset is an immutable table: a name, a schema and rows. Every
// operation that changes data returns a new dataset and leaves its
// inputs untouched.
type Dataset struct {
	id     string
	name   string
	schema *Schema
	rows   []Row
}

// New builds a dataset from a schema and rows. Rows are copied and
// their values normalized; a cell that names an unknown column or
// carries a value outside its column's type is a SchemaError.
func New(name string, schema *Schema, rows []Row) (*Dataset, error) {
	if schema == nil {
		return nil, &SchemaError{Dataset: name, Reason: "dataset requires a schema"}
	}
	copied := make([]Row, 0, len(rows))
	for _, row := range rows {
		out := make(Row, len(row))
		for col, val := range row {
			c, ok := schema.Column(col)
			if !ok {
				return nil, NewColumnNotFound(name, col)
			}
			v := Normalize(val)
			if !fits(v, c.Type) {
				return nil, NewTypeMismatch(name, col, fmt.Sprintf("expected %s, got %T", c.Type, val))
			}
			out[col] = v
		}
		copied = append(copied, out)
	}
	return &Dataset{
		id:     uuid.New().String(),
		name:   name,
		schema: schema,
		rows:   copied,
	}, nil
}

// ID returns the unique identifier assigned at construction.
func (d *Dataset) ID() string {
	return d.id
}

// Name returns the dataset name.
func (d *Dataset) Name() string {
	return d.name
}

// Schema returns the dataset schema.
func (d *Dataset) Schema() *Schema {
	return d.schema
}

// NumRows returns the number of rows.
func (d *Dataset) NumRows() int {
	return len(d.rows)
}

// Row returns the i-th row. The returned map is shared with the
// dataset and must not be modified.
func (d *Dataset) Row(i int) Row {
	return d.rows[i]
}

// Rows returns the rows in order. The slice is fresh; the row maps are
// shared with the dataset and must not be modified.
func (d *Dataset) Rows() []Row {
	out := make([]Row, len(d.rows))
	copy(out, d.rows)
	return out
}

// Value returns the cell at row i, column name. Missing columns read
// as null.
func (d *Dataset) Value(i int, column string) interface{} {
	return d.rows[i][column]
}

// Renamed returns a dataset with a different name sharing this one's
// schema and rows.
func (d *Dataset) Renamed(name string) *Dataset {
	return &Dataset{
		id:     d.id,
		name:   name,
		schema: d.schema,
		rows:   d.rows,
	}
}
