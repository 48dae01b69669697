package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextToken(t *testing.T) {
	input := `FILTER fish WHERE total_count <= 10 && common_name ~ 'wrasse'
JOIN kelp WITH traps ON year, site MODE full INTO joined;`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{FILTER, "FILTER"},
		{IDENTIFIER, "fish"},
		{WHERE, "WHERE"},
		{IDENTIFIER, "total_count"},
		{LTE, "<="},
		{NUMBER, "10"},
		{AND_AND, "&&"},
		{IDENTIFIER, "common_name"},
		{TILDE, "~"},
		{STRING, "wrasse"},
		{JOIN, "JOIN"},
		{IDENTIFIER, "kelp"},
		{WITH, "WITH"},
		{IDENTIFIER, "traps"},
		{ON, "ON"},
		{IDENTIFIER, "year"},
		{COMMA, ","},
		{IDENTIFIER, "site"},
		{MODE, "MODE"},
		{IDENTIFIER, "full"},
		{INTO, "INTO"},
		{IDENTIFIER, "joined"},
		{SEMICOLON, ";"},
		{EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		assert.Equal(t, tt.expectedType, tok.Type, "token %d type", i)
		assert.Equal(t, tt.expectedLiteral, tok.Literal, "token %d literal", i)
	}
}

func TestOperators(t *testing.T) {
	input := `== != < <= > >= ~ !~ && || + - * / = ( ) ,`

	want := []TokenType{
		EQ, NEQ, LT, LTE, GT, GTE, TILDE, NOT_TILDE,
		AND_AND, OR_OR, PLUS, MINUS, STAR, SLASH,
		ASSIGN, PAREN_OPEN, PAREN_CLOSE, COMMA, EOF,
	}

	l := New(input)
	for i, wt := range want {
		tok := l.NextToken()
		assert.Equal(t, wt, tok.Type, "token %d", i)
	}
}

func TestKeywordsAreCaseInsensitive(t *testing.T) {
	for _, word := range []string{"load", "Load", "LOAD", "lOaD"} {
		assert.Equal(t, LOAD, LookupIdent(word), word)
	}
	assert.Equal(t, IDENTIFIER, LookupIdent("loader"))
	assert.Equal(t, IDENTIFIER, LookupIdent("kelp_fronds"))
}

func TestStringQuoting(t *testing.T) {
	tokens, err := Tokenize(`LOAD kelp FROM "data/kelp.csv" SHEET 'fronds 2016'`)
	require.NoError(t, err)

	require.Len(t, tokens, 6)
	assert.Equal(t, STRING, tokens[3].Type)
	assert.Equal(t, "data/kelp.csv", tokens[3].Literal)
	assert.Equal(t, STRING, tokens[5].Type)
	assert.Equal(t, "fronds 2016", tokens[5].Literal)
}

func TestNumbers(t *testing.T) {
	tokens, err := Tokenize("10 1.25 0.5")
	require.NoError(t, err)

	require.Len(t, tokens, 3)
	for i, want := range []string{"10", "1.25", "0.5"} {
		assert.Equal(t, NUMBER, tokens[i].Type)
		assert.Equal(t, want, tokens[i].Literal)
	}
}

func TestTokenizeRejectsIllegalInput(t *testing.T) {
	_, err := Tokenize("FILTER fish WHERE count @ 3")
	require.Error(t, err)

	// A bare ! or & is not an operator.
	_, err = Tokenize("a ! b")
	require.Error(t, err)
	_, err = Tokenize("a & b")
	require.Error(t, err)
}

func TestLineAndColumnTracking(t *testing.T) {
	tokens, err := Tokenize("LIST\nSCHEMA fish")
	require.NoError(t, err)

	require.Len(t, tokens, 3)
	assert.Equal(t, 1, tokens[0].Line)
	assert.Equal(t, 2, tokens[1].Line)
	assert.Equal(t, 2, tokens[2].Line)
}
