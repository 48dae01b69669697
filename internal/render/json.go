package render

import (
	"encoding/json"
	"io"

	"github.com/tabuladb/tabula/internal/dataset"
)

// JSON writes the dataset as an indented JSON document with cells in
// schema column order. Null cells serialize as JSON null.
func JSON(w io.Writer, ds *dataset.Dataset) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ds)
}
