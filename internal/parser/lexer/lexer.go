// Package lexer tokenizes tabula statements.
package lexer

import (
	"fmt"
	"strings"
)

type TokenType int

const (
	// Special
	ILLEGAL TokenType = iota
	EOF

	// Literals
	IDENTIFIER // dataset_name, column_name
	STRING     // 'value' or "value"
	NUMBER     // 123, 1.23

	// Keywords
	LOAD
	FROM
	SHEET
	LIST
	SCHEMA
	SHOW
	LIMIT
	FILTER
	WHERE
	INTO
	JOIN
	WITH
	ON
	MODE
	DERIVE
	SET
	SELECT
	SAVE
	TO
	DROP
	AND
	OR
	IN
	TRUE
	FALSE

	// Operators & Punctuation
	COMMA       // ,
	PAREN_OPEN  // (
	PAREN_CLOSE // )
	SEMICOLON   // ;
	ASSIGN      // =
	EQ          // ==
	NEQ         // !=
	LT          // <
	LTE         // <=
	GT          // >
	GTE         // >=
	TILDE       // ~
	NOT_TILDE   // !~
	AND_AND     // &&
	OR_OR       // ||
	PLUS        // +
	MINUS       // -
	STAR        // *
	SLASH       // /
)

var keywords = map[string]TokenType{
	"LOAD":   LOAD,
	"FROM":   FROM,
	"SHEET":  SHEET,
	"LIST":   LIST,
	"SCHEMA": SCHEMA,
	"SHOW":   SHOW,
	"LIMIT":  LIMIT,
	"FILTER": FILTER,
	"WHERE":  WHERE,
	"INTO":   INTO,
	"JOIN":   JOIN,
	"WITH":   WITH,
	"ON":     ON,
	"MODE":   MODE,
	"DERIVE": DERIVE,
	"SET":    SET,
	"SELECT": SELECT,
	"SAVE":   SAVE,
	"TO":     TO,
	"DROP":   DROP,
	"AND":    AND,
	"OR":     OR,
	"IN":     IN,
	"TRUE":   TRUE,
	"FALSE":  FALSE,
}

type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

func (t Token) String() string {
	return fmt.Sprintf("Token(%d, %q)", t.Type, t.Literal)
}

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int
	column       int
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition += 1
	l.column++
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) NextToken() Token {
	var tok Token

	l.skipWhitespace()

	tok.Line = l.line
	tok.Column = l.column

	switch l.ch {
	case ',':
		tok = newToken(COMMA, l.ch, l.line, l.column)
	case '(':
		tok = newToken(PAREN_OPEN, l.ch, l.line, l.column)
	case ')':
		tok = newToken(PAREN_CLOSE, l.ch, l.line, l.column)
	case ';':
		tok = newToken(SEMICOLON, l.ch, l.line, l.column)
	case '+':
		tok = newToken(PLUS, l.ch, l.line, l.column)
	case '-':
		tok = newToken(MINUS, l.ch, l.line, l.column)
	case '*':
		tok = newToken(STAR, l.ch, l.line, l.column)
	case '/':
		tok = newToken(SLASH, l.ch, l.line, l.column)
	case '~':
		tok = newToken(TILDE, l.ch, l.line, l.column)
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: EQ, Literal: "==", Line: tok.Line, Column: tok.Column}
		} else {
			tok = newToken(ASSIGN, l.ch, l.line, l.column)
		}
	case '!':
		switch l.peekChar() {
		case '=':
			l.readChar()
			tok = Token{Type: NEQ, Literal: "!=", Line: tok.Line, Column: tok.Column}
		case '~':
			l.readChar()
			tok = Token{Type: NOT_TILDE, Literal: "!~", Line: tok.Line, Column: tok.Column}
		default:
			tok = newToken(ILLEGAL, l.ch, l.line, l.column)
		}
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: LTE, Literal: "<=", Line: tok.Line, Column: tok.Column}
		} else {
			tok = newToken(LT, l.ch, l.line, l.column)
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: GTE, Literal: ">=", Line: tok.Line, Column: tok.Column}
		} else {
			tok = newToken(GT, l.ch, l.line, l.column)
		}
	case '&':
		if l.peekChar() == '&' {
			l.readChar()
			tok = Token{Type: AND_AND, Literal: "&&", Line: tok.Line, Column: tok.Column}
		} else {
			tok = newToken(ILLEGAL, l.ch, l.line, l.column)
		}
	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			tok = Token{Type: OR_OR, Literal: "||", Line: tok.Line, Column: tok.Column}
		} else {
			tok = newToken(ILLEGAL, l.ch, l.line, l.column)
		}
	case '\'', '"':
		tok.Type = STRING
		tok.Literal = l.readString(l.ch)
		return tok
	case 0:
		tok.Literal = ""
		tok.Type = EOF
	default:
		if isLetter(l.ch) {
			tok.Literal = l.readIdentifier()
			tok.Type = LookupIdent(tok.Literal)
			return tok
		} else if isDigit(l.ch) {
			tok.Type = NUMBER
			tok.Literal = l.readNumber()
			return tok
		} else {
			tok = newToken(ILLEGAL, l.ch, l.line, l.column)
		}
	}

	l.readChar()
	return tok
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		if l.ch == '\n' {
			l.line++
			l.column = 0
		}
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	return l.input[position:l.position]
}

func (l *Lexer) readNumber() string {
	position := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	// Support simple floats
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.input[position:l.position]
}

func (l *Lexer) readString(quote byte) string {
	position := l.position + 1
	for {
		l.readChar()
		if l.ch == quote || l.ch == 0 {
			break
		}
	}
	lit := l.input[position:l.position]

	// Consume the closing quote
	if l.ch == quote {
		l.readChar()
	}

	return lit
}

func newToken(tokenType TokenType, ch byte, line, col int) Token {
	return Token{Type: tokenType, Literal: string(ch), Line: line, Column: col}
}

func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[strings.ToUpper(ident)]; ok {
		return tok
	}
	return IDENTIFIER
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// Tokenize lexes the whole input at once.
func Tokenize(input string) ([]Token, error) {
	l := New(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		if tok.Type == EOF {
			break
		}
		if tok.Type == ILLEGAL {
			return nil, fmt.Errorf("illegal token at line %d, col %d: %s", tok.Line, tok.Column, tok.Literal)
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}
