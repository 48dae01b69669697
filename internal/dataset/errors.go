package dataset

import (
	"fmt"
	"strings"
)

// SchemaError reports a problem with how an operation refers to a
// dataset's columns: a missing column, a type mismatch, a duplicate
// name, or a collision between join inputs.
type SchemaError struct {
	Dataset string
	Column  string
	Reason  string
}

func (e *SchemaError) Error() string {
	parts := []string{"schema violation"}
	if e.Dataset != "" {
		parts = append(parts, fmt.Sprintf("dataset=%s", e.Dataset))
	}
	if e.Column != "" {
		parts = append(parts, fmt.Sprintf("column=%s", e.Column))
	}
	if e.Reason != "" {
		parts = append(parts, fmt.Sprintf("reason=%s", e.Reason))
	}
	return strings.Join(parts, " ")
}

// NewColumnNotFound creates a schema error for a reference to a column
// the dataset does not have.
func NewColumnNotFound(ds, column string) *SchemaError {
	return &SchemaError{
		Dataset: ds,
		Column:  column,
		Reason:  "column does not exist",
	}
}

// NewDuplicateColumn creates a schema error for a column name that
// appears more than once.
func NewDuplicateColumn(ds, column string) *SchemaError {
	return &SchemaError{
		Dataset: ds,
		Column:  column,
		Reason:  "duplicate column name",
	}
}

// NewColumnCollision creates a schema error for a non-key column that
// exists in both inputs of a join.
func NewColumnCollision(ds, column string) *SchemaError {
	return &SchemaError{
		Dataset: ds,
		Column:  column,
		Reason:  "column exists in both join inputs and is not a key",
	}
}

// NewTypeMismatch creates a schema error for a value or comparison
// whose type does not fit the column.
func NewTypeMismatch(ds, column, reason string) *SchemaError {
	return &SchemaError{
		Dataset: ds,
		Column:  column,
		Reason:  reason,
	}
}

// EmptyKeyError reports a join that was given no key columns.
type EmptyKeyError struct {
	Left  string
	Right string
}

func (e *EmptyKeyError) Error() string {
	return fmt.Sprintf("join of %s and %s requires at least one key column", e.Left, e.Right)
}

// NewEmptyKey creates an empty key error for the given join inputs.
func NewEmptyKey(left, right string) *EmptyKeyError {
	return &EmptyKeyError{Left: left, Right: right}
}
