package operations_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabuladb/tabula/internal/dataset"
	"github.com/tabuladb/tabula/internal/operations"
	"github.com/tabuladb/tabula/internal/testutil"
)

func TestFilterKeepsMatchingRowsInOrder(t *testing.T) {
	fish := testutil.Fish()

	out, err := operations.Filter(fish, dataset.Eq("site", "abur"))
	require.NoError(t, err)

	require.Equal(t, 3, out.NumRows())
	assert.Equal(t, "garibaldi", out.Value(0, "common_name"))
	assert.Equal(t, "rock wrasse", out.Value(1, "common_name"))
	assert.Equal(t, "blacksmith", out.Value(2, "common_name"))
	assert.Equal(t, fish.Schema().Names(), out.Schema().Names())
}

func TestFilterLeavesInputUntouched(t *testing.T) {
	fish := testutil.Fish()
	before := fish.NumRows()

	_, err := operations.Filter(fish, dataset.Gt("total_count", 300))
	require.NoError(t, err)

	assert.Equal(t, before, fish.NumRows())
	assert.Equal(t, "garibaldi", fish.Value(0, "common_name"))
}

func TestFilterIsIdempotent(t *testing.T) {
	fish := testutil.Fish()
	pred := dataset.And(dataset.Eq("year", 2016), dataset.Gt("total_count", 100))

	once, err := operations.Filter(fish, pred)
	require.NoError(t, err)
	twice, err := operations.Filter(once, pred)
	require.NoError(t, err)

	assert.Equal(t, once.Rows(), twice.Rows())
}

func TestFilterAlwaysIsIdentity(t *testing.T) {
	fish := testutil.Fish()

	out, err := operations.Filter(fish, dataset.Always())
	require.NoError(t, err)

	assert.Equal(t, fish.Rows(), out.Rows())
	assert.Equal(t, fish.Schema().Names(), out.Schema().Names())
}

func TestFilterNilPredicateKeepsEveryRow(t *testing.T) {
	fish := testutil.Fish()

	out, err := operations.Filter(fish, nil)
	require.NoError(t, err)

	assert.Equal(t, fish.Rows(), out.Rows())
	assert.Equal(t, fish.Schema().Names(), out.Schema().Names())
}

func TestFilterMembershipWithBound(t *testing.T) {
	fish := testutil.Fish()

	pred := dataset.And(
		dataset.In("site", "abur", "mohk"),
		dataset.Ge("total_count", 271),
	)
	out, err := operations.Filter(fish, pred)
	require.NoError(t, err)

	require.Equal(t, 3, out.NumRows())
	for i := 0; i < out.NumRows(); i++ {
		site := out.Value(i, "site").(string)
		assert.Contains(t, []string{"abur", "mohk"}, site)
		count := out.Value(i, "total_count").(int64)
		assert.GreaterOrEqual(t, count, int64(271))
	}
}

func TestFilterExcludesNullUnderBothPolarities(t *testing.T) {
	fish := testutil.Fish()

	matched, err := operations.Filter(fish, dataset.Eq("total_count", 425))
	require.NoError(t, err)
	unmatched, err := operations.Filter(fish, dataset.Ne("total_count", 425))
	require.NoError(t, err)

	// The rock wrasse row has a null count and appears in neither.
	assert.Equal(t, 1, matched.NumRows())
	assert.Equal(t, 3, unmatched.NumRows())
	assert.Equal(t, fish.NumRows()-1, matched.NumRows()+unmatched.NumRows())
}

func TestFilterRejectsInvalidPredicate(t *testing.T) {
	fish := testutil.Fish()

	_, err := operations.Filter(fish, dataset.Eq("depth", 10))
	require.Error(t, err)

	var schemaErr *dataset.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "fish", schemaErr.Dataset)
	assert.Equal(t, "depth", schemaErr.Column)
}

func TestFilterEmptyResultKeepsSchema(t *testing.T) {
	fish := testutil.Fish()

	out, err := operations.Filter(fish, dataset.Eq("site", "napl"))
	require.NoError(t, err)

	assert.Equal(t, 0, out.NumRows())
	assert.Equal(t, fish.Schema().Names(), out.Schema().Names())
}
