// Package parser turns token streams into tabula statements.
package parser

import (
	"fmt"
	"strconv"

	"github.com/tabuladb/tabula/internal/parser/ast"
	"github.com/tabuladb/tabula/internal/parser/lexer"
)

type Parser struct {
	tokens  []lexer.Token
	curPos  int
	curTok  lexer.Token
	peekTok lexer.Token
}

func New(tokens []lexer.Token) *Parser {
	p := &Parser{tokens: tokens, curPos: 0}
	// Read two tokens to set curTok and peekTok
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	if p.curPos < len(p.tokens) {
		p.peekTok = p.tokens[p.curPos]
		p.curPos++
	} else {
		p.peekTok = lexer.Token{Type: lexer.EOF}
	}
}

// Parse consumes exactly one statement and requires the input to end
// after it, save for an optional semicolon.
func (p *Parser) Parse() (ast.Statement, error) {
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	if p.curTok.Type == lexer.SEMICOLON {
		p.nextToken()
	}
	if p.curTok.Type != lexer.EOF {
		return nil, fmt.Errorf("unexpected input after statement: %s", p.curTok.Literal)
	}
	return stmt, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.curTok.Type {
	case lexer.LOAD:
		return p.parseLoad()
	case lexer.LIST:
		p.nextToken()
		return &ast.ListStatement{}, nil
	case lexer.SCHEMA:
		return p.parseSchema()
	case lexer.SHOW:
		return p.parseShow()
	case lexer.FILTER:
		return p.parseFilter()
	case lexer.JOIN:
		return p.parseJoin()
	case lexer.DERIVE:
		return p.parseDerive()
	case lexer.SELECT:
		return p.parseSelect()
	case lexer.SAVE:
		return p.parseSave()
	case lexer.DROP:
		return p.parseDrop()
	default:
		return nil, fmt.Errorf("unexpected token %q, expected a statement keyword", p.curTok.Literal)
	}
}

// LOAD name FROM 'path' [SHEET 'sheet']
func (p *Parser) parseLoad() (*ast.LoadStatement, error) {
	stmt := &ast.LoadStatement{}
	p.nextToken()

	name, err := p.expectIdentifier("dataset name")
	if err != nil {
		return nil, err
	}
	stmt.Name = name

	if p.curTok.Type != lexer.FROM {
		return nil, fmt.Errorf("expected FROM, got %s", p.curTok.Literal)
	}
	p.nextToken()

	path, err := p.expectString("file path")
	if err != nil {
		return nil, err
	}
	stmt.Path = path

	if p.curTok.Type == lexer.SHEET {
		p.nextToken()
		sheet, err := p.expectString("sheet name")
		if err != nil {
			return nil, err
		}
		stmt.Sheet = sheet
	}
	return stmt, nil
}

// SCHEMA name
func (p *Parser) parseSchema() (*ast.SchemaStatement, error) {
	p.nextToken()
	name, err := p.expectIdentifier("dataset name")
	if err != nil {
		return nil, err
	}
	return &ast.SchemaStatement{Name: name}, nil
}

// SHOW name [LIMIT n]
func (p *Parser) parseShow() (*ast.ShowStatement, error) {
	stmt := &ast.ShowStatement{Limit: -1}
	p.nextToken()

	name, err := p.expectIdentifier("dataset name")
	if err != nil {
		return nil, err
	}
	stmt.Name = name

	if p.curTok.Type == lexer.LIMIT {
		p.nextToken()
		if p.curTok.Type != lexer.NUMBER {
			return nil, fmt.Errorf("expected row limit, got %s", p.curTok.Literal)
		}
		n, err := strconv.Atoi(p.curTok.Literal)
		if err != nil {
			return nil, fmt.Errorf("invalid row limit: %s", p.curTok.Literal)
		}
		stmt.Limit = n
		p.nextToken()
	}
	return stmt, nil
}

// FILTER name WHERE predicate [INTO name]
func (p *Parser) parseFilter() (*ast.FilterStatement, error) {
	stmt := &ast.FilterStatement{}
	p.nextToken()

	name, err := p.expectIdentifier("dataset name")
	if err != nil {
		return nil, err
	}
	stmt.Name = name

	if p.curTok.Type != lexer.WHERE {
		return nil, fmt.Errorf("expected WHERE, got %s", p.curTok.Literal)
	}
	p.nextToken()

	where, err := p.parsePredicate()
	if err != nil {
		return nil, err
	}
	stmt.Where = where

	into, err := p.parseInto()
	if err != nil {
		return nil, err
	}
	stmt.Into = into
	return stmt, nil
}

// JOIN left WITH right ON key[, key...] [MODE word] [INTO name]
func (p *Parser) parseJoin() (*ast.JoinStatement, error) {
	stmt := &ast.JoinStatement{}
	p.nextToken()

	left, err := p.expectIdentifier("left dataset name")
	if err != nil {
		return nil, err
	}
	stmt.Left = left

	if p.curTok.Type != lexer.WITH {
		return nil, fmt.Errorf("expected WITH, got %s", p.curTok.Literal)
	}
	p.nextToken()

	right, err := p.expectIdentifier("right dataset name")
	if err != nil {
		return nil, err
	}
	stmt.Right = right

	if p.curTok.Type != lexer.ON {
		return nil, fmt.Errorf("expected ON, got %s", p.curTok.Literal)
	}
	p.nextToken()

	keys, err := p.parseIdentifierList("key column")
	if err != nil {
		return nil, err
	}
	stmt.Keys = keys

	if p.curTok.Type == lexer.MODE {
		p.nextToken()
		mode, err := p.expectIdentifier("join mode")
		if err != nil {
			return nil, err
		}
		stmt.Mode = mode
	}

	into, err := p.parseInto()
	if err != nil {
		return nil, err
	}
	stmt.Into = into
	return stmt, nil
}

// DERIVE name SET column = expr [INTO name]
func (p *Parser) parseDerive() (*ast.DeriveStatement, error) {
	stmt := &ast.DeriveStatement{}
	p.nextToken()

	name, err := p.expectIdentifier("dataset name")
	if err != nil {
		return nil, err
	}
	stmt.Name = name

	if p.curTok.Type != lexer.SET {
		return nil, fmt.Errorf("expected SET, got %s", p.curTok.Literal)
	}
	p.nextToken()

	column, err := p.expectIdentifier("derived column name")
	if err != nil {
		return nil, err
	}
	stmt.Column = column

	if p.curTok.Type != lexer.ASSIGN {
		return nil, fmt.Errorf("expected =, got %s", p.curTok.Literal)
	}
	p.nextToken()

	expr, err := p.parseArithmetic()
	if err != nil {
		return nil, err
	}
	stmt.Expr = expr

	into, err := p.parseInto()
	if err != nil {
		return nil, err
	}
	stmt.Into = into
	return stmt, nil
}

// SELECT col[, col...] FROM name [INTO name]
func (p *Parser) parseSelect() (*ast.SelectStatement, error) {
	stmt := &ast.SelectStatement{}
	p.nextToken()

	columns, err := p.parseIdentifierList("column name")
	if err != nil {
		return nil, err
	}
	stmt.Columns = columns

	if p.curTok.Type != lexer.FROM {
		return nil, fmt.Errorf("expected FROM, got %s", p.curTok.Literal)
	}
	p.nextToken()

	name, err := p.expectIdentifier("dataset name")
	if err != nil {
		return nil, err
	}
	stmt.Name = name

	into, err := p.parseInto()
	if err != nil {
		return nil, err
	}
	stmt.Into = into
	return stmt, nil
}

// SAVE name TO 'path'
func (p *Parser) parseSave() (*ast.SaveStatement, error) {
	stmt := &ast.SaveStatement{}
	p.nextToken()

	name, err := p.expectIdentifier("dataset name")
	if err != nil {
		return nil, err
	}
	stmt.Name = name

	if p.curTok.Type != lexer.TO {
		return nil, fmt.Errorf("expected TO, got %s", p.curTok.Literal)
	}
	p.nextToken()

	path, err := p.expectString("file path")
	if err != nil {
		return nil, err
	}
	stmt.Path = path
	return stmt, nil
}

// DROP name
func (p *Parser) parseDrop() (*ast.DropStatement, error) {
	p.nextToken()
	name, err := p.expectIdentifier("dataset name")
	if err != nil {
		return nil, err
	}
	return &ast.DropStatement{Name: name}, nil
}

// parseInto consumes an optional INTO clause.
func (p *Parser) parseInto() (string, error) {
	if p.curTok.Type != lexer.INTO {
		return "", nil
	}
	p.nextToken()
	return p.expectIdentifier("result dataset name")
}

func (p *Parser) parseIdentifierList(what string) ([]string, error) {
	first, err := p.expectIdentifier(what)
	if err != nil {
		return nil, err
	}
	list := []string{first}
	for p.curTok.Type == lexer.COMMA {
		p.nextToken()
		next, err := p.expectIdentifier(what)
		if err != nil {
			return nil, err
		}
		list = append(list, next)
	}
	return list, nil
}

func (p *Parser) expectIdentifier(what string) (string, error) {
	if p.curTok.Type != lexer.IDENTIFIER {
		return "", fmt.Errorf("expected %s, got %s", what, p.curTok.Literal)
	}
	val := p.curTok.Literal
	p.nextToken()
	return val, nil
}

func (p *Parser) expectString(what string) (string, error) {
	if p.curTok.Type != lexer.STRING {
		return "", fmt.Errorf("expected quoted %s, got %s", what, p.curTok.Literal)
	}
	val := p.curTok.Literal
	p.nextToken()
	return val, nil
}

// --- Predicate expressions ---
//
// Precedence, low to high: OR, AND, comparison atoms. AND/OR are
// left-associative; the keyword and symbol spellings are equivalent.

func (p *Parser) parsePredicate() (ast.Expression, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (ast.Expression, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.curTok.Type == lexer.OR || p.curTok.Type == lexer.OR_OR {
		p.nextToken()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.LogicalExpression{Left: left, Operator: "OR", Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Expression, error) {
	left, err := p.parsePredicateAtom()
	if err != nil {
		return nil, err
	}
	for p.curTok.Type == lexer.AND || p.curTok.Type == lexer.AND_AND {
		p.nextToken()
		right, err := p.parsePredicateAtom()
		if err != nil {
			return nil, err
		}
		left = &ast.LogicalExpression{Left: left, Operator: "AND", Right: right}
	}
	return left, nil
}

func (p *Parser) parsePredicateAtom() (ast.Expression, error) {
	if p.curTok.Type == lexer.PAREN_OPEN {
		p.nextToken()
		expr, err := p.parsePredicate()
		if err != nil {
			return nil, err
		}
		if p.curTok.Type != lexer.PAREN_CLOSE {
			return nil, fmt.Errorf("expected ), got %s", p.curTok.Literal)
		}
		p.nextToken()
		return expr, nil
	}

	column, err := p.expectIdentifier("column name")
	if err != nil {
		return nil, err
	}
	ident := &ast.Identifier{Value: column}

	switch p.curTok.Type {
	case lexer.IN:
		p.nextToken()
		return p.parseInValues(ident)

	case lexer.TILDE, lexer.NOT_TILDE:
		negate := p.curTok.Type == lexer.NOT_TILDE
		p.nextToken()
		pattern, err := p.expectString("pattern")
		if err != nil {
			return nil, err
		}
		return &ast.MatchExpression{Column: ident, Pattern: pattern, Negate: negate}, nil

	case lexer.EQ, lexer.NEQ, lexer.LT, lexer.LTE, lexer.GT, lexer.GTE:
		op := p.curTok.Literal
		p.nextToken()
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpression{Left: ident, Operator: op, Right: lit}, nil

	default:
		return nil, fmt.Errorf("expected a comparison after %s, got %s", column, p.curTok.Literal)
	}
}

func (p *Parser) parseInValues(column *ast.Identifier) (ast.Expression, error) {
	if p.curTok.Type != lexer.PAREN_OPEN {
		return nil, fmt.Errorf("expected ( after IN, got %s", p.curTok.Literal)
	}
	p.nextToken()

	var values []*ast.Literal
	for {
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		values = append(values, lit)
		if p.curTok.Type != lexer.COMMA {
			break
		}
		p.nextToken()
	}

	if p.curTok.Type != lexer.PAREN_CLOSE {
		return nil, fmt.Errorf("expected ), got %s", p.curTok.Literal)
	}
	p.nextToken()
	return &ast.InExpression{Column: column, Values: values}, nil
}

func (p *Parser) parseLiteral() (*ast.Literal, error) {
	negative := false
	if p.curTok.Type == lexer.MINUS {
		negative = true
		p.nextToken()
	}

	switch p.curTok.Type {
	case lexer.STRING:
		if negative {
			return nil, fmt.Errorf("cannot negate string literal %q", p.curTok.Literal)
		}
		val := p.curTok.Literal
		p.nextToken()
		return &ast.Literal{Value: val, Kind: ast.KindString}, nil

	case lexer.NUMBER:
		lit, err := numberLiteral(p.curTok.Literal, negative)
		if err != nil {
			return nil, err
		}
		p.nextToken()
		return lit, nil

	case lexer.TRUE, lexer.FALSE:
		if negative {
			return nil, fmt.Errorf("cannot negate boolean literal")
		}
		val := p.curTok.Type == lexer.TRUE
		p.nextToken()
		return &ast.Literal{Value: val, Kind: ast.KindBool}, nil

	default:
		return nil, fmt.Errorf("expected a literal, got %s", p.curTok.Literal)
	}
}

func numberLiteral(text string, negative bool) (*ast.Literal, error) {
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		if negative {
			i = -i
		}
		return &ast.Literal{Value: i, Kind: ast.KindInt}, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number: %s", text)
	}
	if negative {
		f = -f
	}
	return &ast.Literal{Value: f, Kind: ast.KindFloat}, nil
}

// --- Arithmetic expressions ---
//
// Precedence, low to high: + -, * /, unary minus, atoms.

func (p *Parser) parseArithmetic() (ast.Expression, error) {
	return p.parseAdditive()
}

func (p *Parser) parseAdditive() (ast.Expression, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.curTok.Type == lexer.PLUS || p.curTok.Type == lexer.MINUS {
		op := p.curTok.Literal
		p.nextToken()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Left: left, Operator: op, Right: right}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.curTok.Type == lexer.STAR || p.curTok.Type == lexer.SLASH {
		op := p.curTok.Literal
		p.nextToken()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Left: left, Operator: op, Right: right}
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	if p.curTok.Type == lexer.MINUS {
		p.nextToken()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpression{Operator: "-", Operand: operand}, nil
	}
	return p.parseArithmeticAtom()
}

func (p *Parser) parseArithmeticAtom() (ast.Expression, error) {
	switch p.curTok.Type {
	case lexer.PAREN_OPEN:
		p.nextToken()
		expr, err := p.parseArithmetic()
		if err != nil {
			return nil, err
		}
		if p.curTok.Type != lexer.PAREN_CLOSE {
			return nil, fmt.Errorf("expected ), got %s", p.curTok.Literal)
		}
		p.nextToken()
		return expr, nil

	case lexer.IDENTIFIER:
		ident := &ast.Identifier{Value: p.curTok.Literal}
		p.nextToken()
		return ident, nil

	case lexer.NUMBER:
		lit, err := numberLiteral(p.curTok.Literal, false)
		if err != nil {
			return nil, err
		}
		p.nextToken()
		return lit, nil

	default:
		return nil, fmt.Errorf("unexpected token in expression: %s", p.curTok.Literal)
	}
}
