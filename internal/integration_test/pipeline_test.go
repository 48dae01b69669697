package integration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabuladb/tabula/internal/catalog"
	"github.com/tabuladb/tabula/internal/engine"
	"github.com/tabuladb/tabula/internal/executor"
)

const kelpCSV = `year,site,fronds
2015,abur,12
2016,abur,10
2016,mohk,14
2017,abur,0
2017,golb,8
`

const trapsCSV = `year,site,count
2016,abur,5
2016,mohk,3
2017,abur,7
2018,napl,9
`

// newSurveyEngine writes the survey files into a fresh data directory
// and returns an engine rooted there.
func newSurveyEngine(t *testing.T) (*engine.Engine, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kelp_fronds.csv"), []byte(kelpCSV), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "invert_counts.csv"), []byte(trapsCSV), 0o644))

	eng := engine.New(catalog.NewRegistry(), dir)
	return eng, dir
}

func mustExecute(t *testing.T, eng *engine.Engine, stmt string) *executor.Result {
	t.Helper()
	res, err := eng.Execute(stmt)
	require.NoError(t, err, "statement: %s", stmt)
	return res
}

func TestLoadJoinDeriveSaveRoundTrip(t *testing.T) {
	eng, dir := newSurveyEngine(t)

	mustExecute(t, eng, `LOAD kelp FROM 'kelp_fronds.csv'`)
	mustExecute(t, eng, `LOAD traps FROM 'invert_counts.csv'`)

	list := mustExecute(t, eng, `LIST`)
	require.Equal(t, 2, list.Dataset.NumRows())

	mustExecute(t, eng, `JOIN kelp WITH traps ON year, site INTO joined`)
	joined, err := eng.Registry().Get("joined")
	require.NoError(t, err)
	require.Equal(t, 3, joined.NumRows())
	assert.Equal(t, []string{"year", "site", "fronds", "count"}, joined.Schema().Names())

	// count per frond: 5/10, 3/14, and 7/0 which nulls out.
	mustExecute(t, eng, `DERIVE joined SET per_frond = count / fronds INTO rates`)
	rates, err := eng.Registry().Get("rates")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, rates.Value(0, "per_frond").(float64), 1e-9)
	assert.InDelta(t, 3.0/14.0, rates.Value(1, "per_frond").(float64), 1e-9)
	assert.Nil(t, rates.Value(2, "per_frond"))

	mustExecute(t, eng, `SELECT year, site, per_frond FROM rates INTO summary`)
	mustExecute(t, eng, `SAVE summary TO 'summary.csv'`)

	// The saved file loads back with the null intact.
	mustExecute(t, eng, `LOAD reloaded FROM 'summary.csv'`)
	reloaded, err := eng.Registry().Get("reloaded")
	require.NoError(t, err)

	require.Equal(t, 3, reloaded.NumRows())
	assert.Equal(t, []string{"year", "site", "per_frond"}, reloaded.Schema().Names())
	assert.InDelta(t, 0.5, reloaded.Value(0, "per_frond").(float64), 1e-9)
	assert.Nil(t, reloaded.Value(2, "per_frond"))

	data, err := os.ReadFile(filepath.Join(dir, "summary.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "2017,abur,\n")
}

func TestJoinModeRowCountsThroughStatements(t *testing.T) {
	eng, _ := newSurveyEngine(t)

	mustExecute(t, eng, `LOAD kelp FROM 'kelp_fronds.csv'`)
	mustExecute(t, eng, `LOAD traps FROM 'invert_counts.csv'`)

	inner := mustExecute(t, eng, `JOIN kelp WITH traps ON year, site MODE inner`)
	left := mustExecute(t, eng, `JOIN kelp WITH traps ON year, site MODE left`)
	full := mustExecute(t, eng, `JOIN kelp WITH traps ON year, site MODE full`)

	assert.Equal(t, 3, inner.Dataset.NumRows())
	assert.Equal(t, 5, left.Dataset.NumRows())
	assert.Equal(t, 6, full.Dataset.NumRows())

	// Unmatched left rows sit in left order; the unmatched right row
	// comes last in a full join.
	assert.Equal(t, int64(2015), left.Dataset.Value(0, "year"))
	assert.Nil(t, left.Dataset.Value(0, "count"))
	assert.Equal(t, "napl", full.Dataset.Value(5, "site"))
	assert.Nil(t, full.Dataset.Value(5, "fronds"))
}

func TestFilterStatementsCompose(t *testing.T) {
	eng, _ := newSurveyEngine(t)

	mustExecute(t, eng, `LOAD kelp FROM 'kelp_fronds.csv'`)

	mustExecute(t, eng, `FILTER kelp WHERE fronds > 9 INTO once`)
	mustExecute(t, eng, `FILTER once WHERE fronds > 9 INTO twice`)

	once, err := eng.Registry().Get("once")
	require.NoError(t, err)
	twice, err := eng.Registry().Get("twice")
	require.NoError(t, err)

	require.Equal(t, 3, once.NumRows())
	assert.Equal(t, once.Rows(), twice.Rows())

	// The source is untouched by both filters.
	kelp, err := eng.Registry().Get("kelp")
	require.NoError(t, err)
	assert.Equal(t, 5, kelp.NumRows())
}

func TestMembershipAndBoundThroughStatements(t *testing.T) {
	eng, _ := newSurveyEngine(t)

	mustExecute(t, eng, `LOAD traps FROM 'invert_counts.csv'`)

	res := mustExecute(t, eng, `FILTER traps WHERE site IN ('abur', 'mohk') AND count >= 5`)
	require.Equal(t, 2, res.Dataset.NumRows())
	assert.Equal(t, int64(2016), res.Dataset.Value(0, "year"))
	assert.Equal(t, int64(2017), res.Dataset.Value(1, "year"))
}

func TestSchemaAndDropLifecycle(t *testing.T) {
	eng, _ := newSurveyEngine(t)

	mustExecute(t, eng, `LOAD kelp FROM 'kelp_fronds.csv'`)

	schema := mustExecute(t, eng, `SCHEMA kelp`)
	require.Equal(t, 3, schema.Dataset.NumRows())
	assert.Equal(t, "fronds", schema.Dataset.Value(2, "column"))
	assert.Equal(t, "INT", schema.Dataset.Value(2, "type"))

	mustExecute(t, eng, `DROP kelp`)
	_, err := eng.Execute(`SHOW kelp`)
	require.Error(t, err)

	list := mustExecute(t, eng, `LIST`)
	assert.Equal(t, 0, list.Dataset.NumRows())
}
