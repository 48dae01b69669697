package executor

import "github.com/tabuladb/tabula/internal/dataset"

// Result is what a statement produces: a dataset to render, a status
// message, or both. Statements with an INTO clause store their dataset
// in the catalog and report a message instead of returning rows.
type Result struct {
	Dataset *dataset.Dataset
	Message string
}
