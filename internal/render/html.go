package render

import (
	"html/template"
	"io"

	"github.com/tabuladb/tabula/internal/dataset"
)

// HTMLOptions selects the styling of an HTML table.
type HTMLOptions struct {
	// Striped alternates row backgrounds.
	Striped bool

	// Hover highlights the row under the pointer.
	Hover bool
}

var htmlTmpl = template.Must(template.New("table").Parse(`<div class="tabula">
<style>
.tabula table { border-collapse: collapse; font-family: sans-serif; }
.tabula caption { text-align: left; padding: 4px 0; font-weight: bold; }
.tabula th, .tabula td { border: 1px solid #ccc; padding: 4px 8px; text-align: left; }
.tabula th { background: #e8e8e8; }
{{- if .Striped}}
.tabula tbody tr:nth-child(even) { background: #f5f5f5; }
{{- end}}
{{- if .Hover}}
.tabula tbody tr:hover { background: #fff3cd; }
{{- end}}
</style>
<table>
<caption>{{.Caption}}</caption>
<thead>
<tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr>
</thead>
<tbody>
{{- range .Rows}}
<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
</tbody>
</table>
</div>
`))

type htmlTable struct {
	Caption string
	Striped bool
	Hover   bool
	Headers []string
	Rows    [][]string
}

// HTML writes a styled, self-contained HTML table. Null cells render
// empty; all cell content is escaped by the template engine.
func HTML(w io.Writer, ds *dataset.Dataset, opts HTMLOptions) error {
	columns := ds.Schema().Columns()

	data := htmlTable{
		Caption: caption(ds, ds.NumRows()),
		Striped: opts.Striped,
		Hover:   opts.Hover,
		Headers: ds.Schema().Names(),
		Rows:    make([][]string, 0, ds.NumRows()),
	}

	for i := 0; i < ds.NumRows(); i++ {
		row := ds.Row(i)
		cells := make([]string, len(columns))
		for j, col := range columns {
			if v := row[col.Name]; v != nil {
				cells[j] = dataset.FormatValue(v)
			}
		}
		data.Rows = append(data.Rows, cells)
	}

	return htmlTmpl.Execute(w, data)
}
