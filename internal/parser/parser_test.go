package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabuladb/tabula/internal/parser/ast"
	"github.com/tabuladb/tabula/internal/parser/lexer"
)

func parse(t *testing.T, input string) ast.Statement {
	t.Helper()
	tokens, err := lexer.Tokenize(input)
	require.NoError(t, err, "lexer error")
	stmt, err := New(tokens).Parse()
	require.NoError(t, err, "parse error")
	return stmt
}

func parseErr(t *testing.T, input string) error {
	t.Helper()
	tokens, err := lexer.Tokenize(input)
	require.NoError(t, err, "lexer error")
	_, err = New(tokens).Parse()
	require.Error(t, err)
	return err
}

func TestParseLoad(t *testing.T) {
	stmt := parse(t, `LOAD kelp FROM 'data/kelp_fronds.csv';`)

	load, ok := stmt.(*ast.LoadStatement)
	require.True(t, ok, "expected LoadStatement, got %T", stmt)
	assert.Equal(t, "kelp", load.Name)
	assert.Equal(t, "data/kelp_fronds.csv", load.Path)
	assert.Empty(t, load.Sheet)
}

func TestParseLoadWithSheet(t *testing.T) {
	stmt := parse(t, `load inverts from "invert_counts.xlsx" sheet 'abur'`)

	load := stmt.(*ast.LoadStatement)
	assert.Equal(t, "inverts", load.Name)
	assert.Equal(t, "invert_counts.xlsx", load.Path)
	assert.Equal(t, "abur", load.Sheet)
}

func TestParseList(t *testing.T) {
	stmt := parse(t, "LIST")
	_, ok := stmt.(*ast.ListStatement)
	assert.True(t, ok, "expected ListStatement, got %T", stmt)
}

func TestParseSchema(t *testing.T) {
	stmt := parse(t, "SCHEMA fish")
	schema := stmt.(*ast.SchemaStatement)
	assert.Equal(t, "fish", schema.Name)
}

func TestParseShow(t *testing.T) {
	show := parse(t, "SHOW fish").(*ast.ShowStatement)
	assert.Equal(t, "fish", show.Name)
	assert.Equal(t, -1, show.Limit)

	limited := parse(t, "SHOW fish LIMIT 5").(*ast.ShowStatement)
	assert.Equal(t, 5, limited.Limit)
}

func TestParseFilter(t *testing.T) {
	stmt := parse(t, `FILTER fish WHERE total_count <= 10 INTO rare`)

	filter, ok := stmt.(*ast.FilterStatement)
	require.True(t, ok, "expected FilterStatement, got %T", stmt)
	assert.Equal(t, "fish", filter.Name)
	assert.Equal(t, "rare", filter.Into)

	cmp, ok := filter.Where.(*ast.BinaryExpression)
	require.True(t, ok, "expected BinaryExpression, got %T", filter.Where)
	assert.Equal(t, "<=", cmp.Operator)
	assert.Equal(t, "total_count", cmp.Left.(*ast.Identifier).Value)
	assert.Equal(t, int64(10), cmp.Right.(*ast.Literal).Value)
}

func TestParseJoin(t *testing.T) {
	stmt := parse(t, `JOIN kelp WITH traps ON year, site MODE full INTO joined`)

	join, ok := stmt.(*ast.JoinStatement)
	require.True(t, ok, "expected JoinStatement, got %T", stmt)
	assert.Equal(t, "kelp", join.Left)
	assert.Equal(t, "traps", join.Right)
	assert.Equal(t, []string{"year", "site"}, join.Keys)
	assert.Equal(t, "full", join.Mode)
	assert.Equal(t, "joined", join.Into)
}

func TestParseJoinDefaults(t *testing.T) {
	join := parse(t, `JOIN kelp WITH traps ON site`).(*ast.JoinStatement)
	assert.Equal(t, []string{"site"}, join.Keys)
	assert.Empty(t, join.Mode)
	assert.Empty(t, join.Into)
}

func TestParseDerive(t *testing.T) {
	stmt := parse(t, `DERIVE joined SET ratio = count / fronds INTO rates`)

	derive, ok := stmt.(*ast.DeriveStatement)
	require.True(t, ok, "expected DeriveStatement, got %T", stmt)
	assert.Equal(t, "joined", derive.Name)
	assert.Equal(t, "ratio", derive.Column)
	assert.Equal(t, "rates", derive.Into)

	div, ok := derive.Expr.(*ast.BinaryExpression)
	require.True(t, ok, "expected BinaryExpression, got %T", derive.Expr)
	assert.Equal(t, "/", div.Operator)
}

func TestParseSelect(t *testing.T) {
	stmt := parse(t, `SELECT year, site, fronds FROM kelp INTO slim`)

	sel, ok := stmt.(*ast.SelectStatement)
	require.True(t, ok, "expected SelectStatement, got %T", stmt)
	assert.Equal(t, []string{"year", "site", "fronds"}, sel.Columns)
	assert.Equal(t, "kelp", sel.Name)
	assert.Equal(t, "slim", sel.Into)
}

func TestParseSave(t *testing.T) {
	stmt := parse(t, `SAVE joined TO 'out/joined.csv'`)

	save, ok := stmt.(*ast.SaveStatement)
	require.True(t, ok, "expected SaveStatement, got %T", stmt)
	assert.Equal(t, "joined", save.Name)
	assert.Equal(t, "out/joined.csv", save.Path)
}

func TestParseDrop(t *testing.T) {
	drop := parse(t, "DROP kelp").(*ast.DropStatement)
	assert.Equal(t, "kelp", drop.Name)
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"missing FROM":        `LOAD kelp 'x.csv'`,
		"unquoted path":       `LOAD kelp FROM kelpfile`,
		"missing WHERE":       `FILTER fish total_count > 3`,
		"missing WITH":        `JOIN kelp traps ON site`,
		"missing ON":          `JOIN kelp WITH traps MODE left`,
		"empty key list":      `JOIN kelp WITH traps ON`,
		"missing SET":         `DERIVE kelp ratio = a / b`,
		"missing assignment":  `DERIVE kelp SET ratio a / b`,
		"trailing garbage":    `LIST LIST`,
		"bare keyword":        `WHERE`,
		"unclosed IN list":    `FILTER fish WHERE site IN ('abur', 'mohk'`,
		"comparison to ident": `FILTER fish WHERE site == abur`,
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			parseErr(t, input)
		})
	}
}
