// Package executor runs parsed statements against the catalog.
package executor

import (
	"fmt"
	"path/filepath"

	"github.com/tabuladb/tabula/internal/catalog"
	"github.com/tabuladb/tabula/internal/dataset"
	"github.com/tabuladb/tabula/internal/load"
	"github.com/tabuladb/tabula/internal/operations"
	"github.com/tabuladb/tabula/internal/parser/ast"
	"github.com/tabuladb/tabula/internal/render"
)

// Executor dispatches statements to the catalog, the loaders and the
// relational operations.
type Executor struct {
	registry *catalog.Registry
	dataDir  string
}

// New creates an executor over the registry. Relative LOAD paths
// resolve against dataDir.
func New(registry *catalog.Registry, dataDir string) *Executor {
	return &Executor{registry: registry, dataDir: dataDir}
}

// Execute runs one parsed statement.
func (ex *Executor) Execute(stmt ast.Statement) (*Result, error) {
	switch s := stmt.(type) {
	case *ast.LoadStatement:
		return ex.executeLoad(s)
	case *ast.ListStatement:
		return ex.executeList()
	case *ast.SchemaStatement:
		return ex.executeSchema(s)
	case *ast.ShowStatement:
		return ex.executeShow(s)
	case *ast.FilterStatement:
		return ex.executeFilter(s)
	case *ast.JoinStatement:
		return ex.executeJoin(s)
	case *ast.DeriveStatement:
		return ex.executeDerive(s)
	case *ast.SelectStatement:
		return ex.executeSelect(s)
	case *ast.SaveStatement:
		return ex.executeSave(s)
	case *ast.DropStatement:
		return ex.executeDrop(s)
	default:
		return nil, fmt.Errorf("unsupported statement type: %T", stmt)
	}
}

func (ex *Executor) executeLoad(s *ast.LoadStatement) (*Result, error) {
	path := s.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(ex.dataDir, path)
	}

	ds, err := load.File(s.Name, path, load.Options{Sheet: s.Sheet})
	if err != nil {
		return nil, err
	}
	if err := ex.registry.Register(s.Name, ds); err != nil {
		return nil, err
	}

	return &Result{
		Message: fmt.Sprintf("loaded %s: %d rows, %d columns", s.Name, ds.NumRows(), ds.Schema().Len()),
	}, nil
}

func (ex *Executor) executeList() (*Result, error) {
	schema, err := dataset.NewSchema(
		dataset.Column{Name: "name", Type: dataset.ColumnTypeText},
		dataset.Column{Name: "rows", Type: dataset.ColumnTypeInt},
		dataset.Column{Name: "columns", Type: dataset.ColumnTypeInt},
	)
	if err != nil {
		return nil, err
	}

	names := ex.registry.List()
	rows := make([]dataset.Row, 0, len(names))
	for _, name := range names {
		ds, err := ex.registry.Get(name)
		if err != nil {
			continue
		}
		rows = append(rows, dataset.Row{
			"name":    name,
			"rows":    int64(ds.NumRows()),
			"columns": int64(ds.Schema().Len()),
		})
	}

	out, err := dataset.New("datasets", schema, rows)
	if err != nil {
		return nil, err
	}
	return &Result{Dataset: out}, nil
}

func (ex *Executor) executeSchema(s *ast.SchemaStatement) (*Result, error) {
	ds, err := ex.registry.Get(s.Name)
	if err != nil {
		return nil, err
	}

	schema, err := dataset.NewSchema(
		dataset.Column{Name: "column", Type: dataset.ColumnTypeText},
		dataset.Column{Name: "type", Type: dataset.ColumnTypeText},
	)
	if err != nil {
		return nil, err
	}

	columns := ds.Schema().Columns()
	rows := make([]dataset.Row, 0, len(columns))
	for _, col := range columns {
		rows = append(rows, dataset.Row{"column": col.Name, "type": string(col.Type)})
	}

	out, err := dataset.New(s.Name+"_schema", schema, rows)
	if err != nil {
		return nil, err
	}
	return &Result{Dataset: out}, nil
}

func (ex *Executor) executeShow(s *ast.ShowStatement) (*Result, error) {
	ds, err := ex.registry.Get(s.Name)
	if err != nil {
		return nil, err
	}

	if s.Limit < 0 || s.Limit >= ds.NumRows() {
		return &Result{Dataset: ds}, nil
	}

	rows := make([]dataset.Row, 0, s.Limit)
	for i := 0; i < s.Limit; i++ {
		rows = append(rows, ds.Row(i))
	}
	head, err := dataset.New(ds.Name(), ds.Schema(), rows)
	if err != nil {
		return nil, err
	}
	return &Result{
		Dataset: head,
		Message: fmt.Sprintf("showing first %d of %d rows", s.Limit, ds.NumRows()),
	}, nil
}

func (ex *Executor) executeFilter(s *ast.FilterStatement) (*Result, error) {
	ds, err := ex.registry.Get(s.Name)
	if err != nil {
		return nil, err
	}

	pred, err := CompilePredicate(s.Where)
	if err != nil {
		return nil, err
	}

	out, err := operations.Filter(ds, pred)
	if err != nil {
		return nil, err
	}
	return ex.finish(out, s.Into)
}

func (ex *Executor) executeJoin(s *ast.JoinStatement) (*Result, error) {
	left, err := ex.registry.Get(s.Left)
	if err != nil {
		return nil, err
	}
	right, err := ex.registry.Get(s.Right)
	if err != nil {
		return nil, err
	}

	mode := operations.JoinInner
	if s.Mode != "" {
		mode, err = operations.ParseJoinMode(s.Mode)
		if err != nil {
			return nil, err
		}
	}

	out, err := operations.Join(left, right, s.Keys, mode)
	if err != nil {
		return nil, err
	}
	return ex.finish(out, s.Into)
}

func (ex *Executor) executeDerive(s *ast.DeriveStatement) (*Result, error) {
	ds, err := ex.registry.Get(s.Name)
	if err != nil {
		return nil, err
	}

	expr, err := CompileNumExpr(s.Expr)
	if err != nil {
		return nil, err
	}

	out, err := operations.Derive(ds, s.Column, expr)
	if err != nil {
		return nil, err
	}
	return ex.finish(out, s.Into)
}

func (ex *Executor) executeSelect(s *ast.SelectStatement) (*Result, error) {
	ds, err := ex.registry.Get(s.Name)
	if err != nil {
		return nil, err
	}

	out, err := operations.Project(ds, s.Columns)
	if err != nil {
		return nil, err
	}
	return ex.finish(out, s.Into)
}

func (ex *Executor) executeSave(s *ast.SaveStatement) (*Result, error) {
	ds, err := ex.registry.Get(s.Name)
	if err != nil {
		return nil, err
	}
	path := s.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(ex.dataDir, path)
	}
	if err := render.Save(ds, path); err != nil {
		return nil, err
	}
	return &Result{
		Message: fmt.Sprintf("saved %s to %s (%d rows)", s.Name, s.Path, ds.NumRows()),
	}, nil
}

func (ex *Executor) executeDrop(s *ast.DropStatement) (*Result, error) {
	if err := ex.registry.Drop(s.Name); err != nil {
		return nil, err
	}
	return &Result{Message: fmt.Sprintf("dropped %s", s.Name)}, nil
}

// finish registers the result under the INTO name when one was given,
// otherwise hands the dataset back for rendering.
func (ex *Executor) finish(out *dataset.Dataset, into string) (*Result, error) {
	if into == "" {
		return &Result{Dataset: out}, nil
	}
	if err := ex.registry.Register(into, out); err != nil {
		return nil, err
	}
	return &Result{
		Message: fmt.Sprintf("stored %s: %d rows, %d columns", into, out.NumRows(), out.Schema().Len()),
	}, nil
}
