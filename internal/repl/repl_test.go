package repl_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabuladb/tabula/internal/catalog"
	"github.com/tabuladb/tabula/internal/engine"
	"github.com/tabuladb/tabula/internal/render"
	"github.com/tabuladb/tabula/internal/repl"
	"github.com/tabuladb/tabula/internal/testutil"
)

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	registry := catalog.NewRegistry()
	require.NoError(t, registry.Register("fish", testutil.Fish()))
	require.NoError(t, registry.Register("kelp", testutil.KelpFronds()))
	return engine.New(registry, t.TempDir())
}

func TestRunExecutesStatements(t *testing.T) {
	eng := newTestEngine(t)
	in := strings.NewReader("SHOW kelp\nexit\n")
	var out bytes.Buffer

	repl.Run(in, &out, eng, render.Options{})

	assert.Contains(t, out.String(), "fronds")
	assert.Contains(t, out.String(), "abur")
	assert.Contains(t, out.String(), "kelp: 1 rows")
}

func TestRunRecoversFromErrors(t *testing.T) {
	eng := newTestEngine(t)
	in := strings.NewReader("SHOW nothere\nSHOW kelp\n\\q\n")
	var out bytes.Buffer

	repl.Run(in, &out, eng, render.Options{})

	assert.Contains(t, out.String(), "Error:")
	assert.Contains(t, out.String(), "nothere")
	// The loop keeps going after an error.
	assert.Contains(t, out.String(), "abur")
}

func TestRunHelpAndBlankLines(t *testing.T) {
	eng := newTestEngine(t)
	in := strings.NewReader("\n   \nhelp\nexit\n")
	var out bytes.Buffer

	repl.Run(in, &out, eng, render.Options{})

	assert.Contains(t, out.String(), "FILTER <dataset> WHERE")
	assert.NotContains(t, out.String(), "Error:")
}

func TestRunStopsAtEOF(t *testing.T) {
	eng := newTestEngine(t)
	in := strings.NewReader("LIST\n")
	var out bytes.Buffer

	repl.Run(in, &out, eng, render.Options{})

	assert.Contains(t, out.String(), "fish")
}

func TestScriptRunsAllLines(t *testing.T) {
	eng := newTestEngine(t)
	script := strings.Join([]string{
		"# keep the abur observations around",
		"FILTER fish WHERE site == 'abur' INTO abur_fish",
		"",
		"SHOW abur_fish LIMIT 1",
	}, "\n")
	var out bytes.Buffer

	err := repl.Script(strings.NewReader(script), &out, eng, render.Options{})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "stored abur_fish")
	assert.Contains(t, out.String(), "garibaldi")

	_, err = eng.Registry().Get("abur_fish")
	assert.NoError(t, err)
}

func TestScriptAbortsWithLineNumber(t *testing.T) {
	eng := newTestEngine(t)
	script := "LIST\nSHOW nothere\nLIST\n"
	var out bytes.Buffer

	err := repl.Script(strings.NewReader(script), &out, eng, render.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}
