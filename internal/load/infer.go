package load

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"

	"github.com/tabuladb/tabula/internal/dataset"
)

// candidateTypes is the inference order: the first type every non-null
// cell of a column parses as wins. TEXT is the fallback and always
// parses.
var candidateTypes = []dataset.ColumnType{
	dataset.ColumnTypeInt,
	dataset.ColumnTypeFloat,
	dataset.ColumnTypeBool,
	dataset.ColumnTypeTime,
}

// buildDataset turns a header row and raw string records into a typed
// dataset. Records must be rectangular; readers pad or reject ragged
// input before calling this.
func buildDataset(name string, header []string, records [][]string, opts Options) (*dataset.Dataset, error) {
	columns := make([]dataset.Column, len(header))
	for i, colName := range header {
		colName = strings.TrimSpace(colName)
		if colName == "" {
			return nil, &dataset.SchemaError{
				Dataset: name,
				Reason:  fmt.Sprintf("header cell %d is empty", i+1),
			}
		}
		columns[i] = dataset.Column{
			Name: colName,
			Type: inferColumnType(records, i, opts),
		}
	}

	schema, err := dataset.NewSchema(columns...)
	if err != nil {
		return nil, err
	}

	rows := make([]dataset.Row, 0, len(records))
	for n, record := range records {
		row := make(dataset.Row, len(columns))
		for i, col := range columns {
			cell := strings.TrimSpace(record[i])
			if opts.isNull(cell) {
				row[col.Name] = nil
				continue
			}
			v, err := parseCell(cell, col.Type)
			if err != nil {
				return nil, fmt.Errorf("row %d, column %s: %w", n+2, col.Name, err)
			}
			row[col.Name] = v
		}
		rows = append(rows, row)
	}

	return dataset.New(name, schema, rows)
}

// inferColumnType scans column i of every record and returns the first
// candidate type all its non-null cells parse as.
func inferColumnType(records [][]string, i int, opts Options) dataset.ColumnType {
	sawValue := false
next:
	for _, t := range candidateTypes {
		for _, record := range records {
			cell := strings.TrimSpace(record[i])
			if opts.isNull(cell) {
				continue
			}
			sawValue = true
			if _, err := parseCell(cell, t); err != nil {
				continue next
			}
		}
		if sawValue {
			return t
		}
		// All cells null: nothing to infer from, any type would fit.
		return dataset.ColumnTypeText
	}
	return dataset.ColumnTypeText
}

// parseCell converts one non-null raw cell to the canonical value of
// the given type.
func parseCell(cell string, t dataset.ColumnType) (interface{}, error) {
	switch t {
	case dataset.ColumnTypeInt:
		v, err := strconv.ParseInt(cell, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", cell)
		}
		return v, nil
	case dataset.ColumnTypeFloat:
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", cell)
		}
		return v, nil
	case dataset.ColumnTypeBool:
		v, err := strconv.ParseBool(cell)
		if err != nil {
			return nil, fmt.Errorf("%q is not a boolean", cell)
		}
		return v, nil
	case dataset.ColumnTypeTime:
		v, err := dateparse.ParseAny(cell)
		if err != nil {
			return nil, fmt.Errorf("%q is not a timestamp", cell)
		}
		return v.UTC(), nil
	case dataset.ColumnTypeText:
		return cell, nil
	default:
		return nil, fmt.Errorf("unknown column type %s", t)
	}
}
