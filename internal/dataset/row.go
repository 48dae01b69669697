package dataset

// Row holds one record as a mapping from column name to cell value.
// A missing key and an explicit nil both read as null.
type Row map[string]interface{}

// Copy returns a new row with the same cells.
func (r Row) Copy() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// IsNull reports whether the named cell is null.
func (r Row) IsNull(column string) bool {
	v, ok := r[column]
	return !ok || v == nil
}
