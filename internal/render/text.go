// Package render turns datasets into textual, HTML, JSON and CSV
// output. Renderers read datasets and never modify them; nothing in
// the core imports this package.
package render

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/tabuladb/tabula/internal/dataset"
)

// Options adjusts table output.
type Options struct {
	// MaxRows truncates the printed rows when positive.
	MaxRows int

	// ShowTypes annotates each header with its column type.
	ShowTypes bool
}

// Text writes an aligned table with a caption giving the dataset name
// and row count. Null cells print as NULL.
func Text(w io.Writer, ds *dataset.Dataset, opts Options) error {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	columns := ds.Schema().Columns()
	headers := make([]string, len(columns))
	for i, col := range columns {
		if opts.ShowTypes {
			headers[i] = fmt.Sprintf("%s (%s)", col.Name, col.Type)
		} else {
			headers[i] = col.Name
		}
	}
	table.SetHeader(headers)

	limit := ds.NumRows()
	if opts.MaxRows > 0 && opts.MaxRows < limit {
		limit = opts.MaxRows
	}

	for i := 0; i < limit; i++ {
		row := ds.Row(i)
		cells := make([]string, len(columns))
		for j, col := range columns {
			cells[j] = dataset.FormatValue(row[col.Name])
		}
		table.Append(cells)
	}

	table.SetCaption(true, caption(ds, limit))
	table.Render()
	return nil
}

func caption(ds *dataset.Dataset, shown int) string {
	total := humanize.Comma(int64(ds.NumRows()))
	if shown < ds.NumRows() {
		return fmt.Sprintf("%s: showing %s of %s rows",
			ds.Name(), humanize.Comma(int64(shown)), total)
	}
	return fmt.Sprintf("%s: %s rows", ds.Name(), total)
}
