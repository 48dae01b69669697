// Package testutil builds the small field-survey datasets shared by
// tests across packages.
package testutil

import (
	"github.com/tabuladb/tabula/internal/dataset"
)

// KelpFronds returns a single kelp observation: abur, 2016, 10 fronds.
func KelpFronds() *dataset.Dataset {
	schema := mustSchema(
		dataset.Column{Name: "year", Type: dataset.ColumnTypeInt},
		dataset.Column{Name: "site", Type: dataset.ColumnTypeText},
		dataset.Column{Name: "fronds", Type: dataset.ColumnTypeInt},
	)
	return mustDataset("kelp_fronds", schema, []dataset.Row{
		{"year": 2016, "site": "abur", "fronds": 10},
	})
}

// InvertCounts returns lobster trap counts for abur in 2016 and 2017.
func InvertCounts() *dataset.Dataset {
	schema := mustSchema(
		dataset.Column{Name: "year", Type: dataset.ColumnTypeInt},
		dataset.Column{Name: "site", Type: dataset.ColumnTypeText},
		dataset.Column{Name: "count", Type: dataset.ColumnTypeInt},
	)
	return mustDataset("invert_counts", schema, []dataset.Row{
		{"year": 2016, "site": "abur", "count": 5},
		{"year": 2017, "site": "abur", "count": 7},
	})
}

// Fish returns a fish survey spanning two sites and two years, with a
// null count for one observation.
func Fish() *dataset.Dataset {
	schema := mustSchema(
		dataset.Column{Name: "year", Type: dataset.ColumnTypeInt},
		dataset.Column{Name: "site", Type: dataset.ColumnTypeText},
		dataset.Column{Name: "common_name", Type: dataset.ColumnTypeText},
		dataset.Column{Name: "total_count", Type: dataset.ColumnTypeInt},
	)
	return mustDataset("fish", schema, []dataset.Row{
		{"year": 2016, "site": "abur", "common_name": "garibaldi", "total_count": 425},
		{"year": 2016, "site": "mohk", "common_name": "garibaldi", "total_count": 321},
		{"year": 2016, "site": "abur", "common_name": "rock wrasse", "total_count": nil},
		{"year": 2017, "site": "mohk", "common_name": "senorita", "total_count": 271},
		{"year": 2017, "site": "abur", "common_name": "blacksmith", "total_count": 89},
	})
}

func mustSchema(columns ...dataset.Column) *dataset.Schema {
	schema, err := dataset.NewSchema(columns...)
	if err != nil {
		panic(err)
	}
	return schema
}

func mustDataset(name string, schema *dataset.Schema, rows []dataset.Row) *dataset.Dataset {
	ds, err := dataset.New(name, schema, rows)
	if err != nil {
		panic(err)
	}
	return ds
}
