// Package repl drives the engine interactively and from script files.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tabuladb/tabula/internal/engine"
	"github.com/tabuladb/tabula/internal/executor"
	"github.com/tabuladb/tabula/internal/render"
)

const helpText = `Statements:
  LOAD <name> FROM '<path>' [SHEET '<sheet>']
  LIST
  SCHEMA <dataset>
  SHOW <dataset> [LIMIT n]
  FILTER <dataset> WHERE <predicate> [INTO <name>]
  JOIN <left> WITH <right> ON col[, col...] [MODE inner|left|right|full] [INTO <name>]
  DERIVE <dataset> SET <column> = <expression> [INTO <name>]
  SELECT col[, col...] FROM <dataset> [INTO <name>]
  SAVE <dataset> TO '<path>'
  DROP <dataset>

Predicates: ==  !=  <  <=  >  >=  IN (...)  ~ 'substr'  !~ 'substr'  AND  OR
Type 'exit' or '\q' to quit.`

// Start runs the interactive loop on stdin/stdout.
func Start(eng *engine.Engine, opts render.Options) {
	fmt.Println("Welcome to tabula")
	fmt.Println("Type 'help' for the statement forms, 'exit' or '\\q' to quit.")
	Run(os.Stdin, os.Stdout, eng, opts)
}

// Run reads statements from in until EOF or an exit command, executing
// each and printing results to out. Errors are printed and the loop
// continues.
func Run(in io.Reader, out io.Writer, eng *engine.Engine, opts render.Options) {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			continue
		}
		if line == "exit" || line == "\\q" {
			return
		}
		if line == "help" {
			fmt.Fprintln(out, helpText)
			continue
		}

		result, err := eng.Execute(line)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}
		if err := PrintResult(out, result, opts); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	}
}

// Script executes statements from in, one per line, printing results to
// out. Blank lines and lines starting with '#' are skipped. Unlike the
// interactive loop the first failing statement aborts the run.
func Script(in io.Reader, out io.Writer, eng *engine.Engine, opts render.Options) error {
	scanner := bufio.NewScanner(in)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		result, err := eng.Execute(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		if err := PrintResult(out, result, opts); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	return scanner.Err()
}

// PrintResult writes a statement result: the message when one was
// produced, the dataset as a text table otherwise.
func PrintResult(w io.Writer, res *executor.Result, opts render.Options) error {
	if res.Message != "" {
		fmt.Fprintln(w, res.Message)
	}
	if res.Dataset != nil {
		return render.Text(w, res.Dataset, opts)
	}
	return nil
}
