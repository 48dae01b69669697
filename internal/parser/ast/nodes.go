// Package ast defines the syntax tree for tabula statements and the
// predicate and arithmetic expressions inside them.
package ast

import (
	"bytes"
	"fmt"
	"strings"
)

// Node is the base interface for all AST nodes
type Node interface {
	TokenLiteral() string
	String() string
}

// Statement represents one standalone tabula statement
type Statement interface {
	Node
	statementNode()
}

// Expression represents a value or operation
type Expression interface {
	Node
	expressionNode()
}

// Identifier represents a dataset or column name
type Identifier struct {
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Value }
func (i *Identifier) String() string       { return i.Value }

// LiteralKind discriminates literal values.
type LiteralKind int

const (
	KindString LiteralKind = iota
	KindInt
	KindFloat
	KindBool
)

// Literal represents a fixed value (string, number, bool)
type Literal struct {
	Value interface{}
	Kind  LiteralKind
}

func (l *Literal) expressionNode()      {}
func (l *Literal) TokenLiteral() string { return l.String() }
func (l *Literal) String() string {
	if l.Kind == KindString {
		return fmt.Sprintf("%q", l.Value)
	}
	return fmt.Sprintf("%v", l.Value)
}

// BinaryExpression: Left Operator Right, for comparisons (==, !=, <,
// <=, >, >=) and arithmetic (+, -, *, /)
type BinaryExpression struct {
	Left     Expression
	Operator string
	Right    Expression
}

func (e *BinaryExpression) expressionNode()      {}
func (e *BinaryExpression) TokenLiteral() string { return e.Operator }
func (e *BinaryExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left.String(), e.Operator, e.Right.String())
}

// LogicalExpression: Left AND/OR Right
type LogicalExpression struct {
	Left     Expression
	Operator string
	Right    Expression
}

func (e *LogicalExpression) expressionNode()      {}
func (e *LogicalExpression) TokenLiteral() string { return e.Operator }
func (e *LogicalExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left.String(), e.Operator, e.Right.String())
}

// UnaryExpression: Operator Operand (arithmetic negation)
type UnaryExpression struct {
	Operator string
	Operand  Expression
}

func (e *UnaryExpression) expressionNode()      {}
func (e *UnaryExpression) TokenLiteral() string { return e.Operator }
func (e *UnaryExpression) String() string {
	return fmt.Sprintf("(%s%s)", e.Operator, e.Operand.String())
}

// InExpression: column IN (lit, lit, ...)
type InExpression struct {
	Column *Identifier
	Values []*Literal
}

func (e *InExpression) expressionNode()      {}
func (e *InExpression) TokenLiteral() string { return "IN" }
func (e *InExpression) String() string {
	parts := make([]string, len(e.Values))
	for i, v := range e.Values {
		parts[i] = v.String()
	}
	return fmt.Sprintf("%s IN (%s)", e.Column.String(), strings.Join(parts, ", "))
}

// MatchExpression: column ~ 'substr' or column !~ 'substr'
type MatchExpression struct {
	Column  *Identifier
	Pattern string
	Negate  bool
}

func (e *MatchExpression) expressionNode()      {}
func (e *MatchExpression) TokenLiteral() string { return "~" }
func (e *MatchExpression) String() string {
	op := "~"
	if e.Negate {
		op = "!~"
	}
	return fmt.Sprintf("%s %s %q", e.Column.String(), op, e.Pattern)
}

// LoadStatement: LOAD name FROM 'path' [SHEET 'sheet']
type LoadStatement struct {
	Name  string
	Path  string
	Sheet string
}

func (s *LoadStatement) statementNode()       {}
func (s *LoadStatement) TokenLiteral() string { return "LOAD" }
func (s *LoadStatement) String() string {
	var out bytes.Buffer
	fmt.Fprintf(&out, "LOAD %s FROM %q", s.Name, s.Path)
	if s.Sheet != "" {
		fmt.Fprintf(&out, " SHEET %q", s.Sheet)
	}
	return out.String()
}

// ListStatement: LIST
type ListStatement struct{}

func (s *ListStatement) statementNode()       {}
func (s *ListStatement) TokenLiteral() string { return "LIST" }
func (s *ListStatement) String() string       { return "LIST" }

// SchemaStatement: SCHEMA name
type SchemaStatement struct {
	Name string
}

func (s *SchemaStatement) statementNode()       {}
func (s *SchemaStatement) TokenLiteral() string { return "SCHEMA" }
func (s *SchemaStatement) String() string       { return "SCHEMA " + s.Name }

// ShowStatement: SHOW name [LIMIT n]
type ShowStatement struct {
	Name  string
	Limit int // -1 means no limit
}

func (s *ShowStatement) statementNode()       {}
func (s *ShowStatement) TokenLiteral() string { return "SHOW" }
func (s *ShowStatement) String() string {
	if s.Limit >= 0 {
		return fmt.Sprintf("SHOW %s LIMIT %d", s.Name, s.Limit)
	}
	return "SHOW " + s.Name
}

// FilterStatement: FILTER name WHERE expr [INTO name]
type FilterStatement struct {
	Name  string
	Where Expression
	Into  string
}

func (s *FilterStatement) statementNode()       {}
func (s *FilterStatement) TokenLiteral() string { return "FILTER" }
func (s *FilterStatement) String() string {
	var out bytes.Buffer
	fmt.Fprintf(&out, "FILTER %s WHERE %s", s.Name, s.Where.String())
	if s.Into != "" {
		fmt.Fprintf(&out, " INTO %s", s.Into)
	}
	return out.String()
}

// JoinStatement: JOIN left WITH right ON key[, key] [MODE word] [INTO name]
type JoinStatement struct {
	Left  string
	Right string
	Keys  []string
	Mode  string
	Into  string
}

func (s *JoinStatement) statementNode()       {}
func (s *JoinStatement) TokenLiteral() string { return "JOIN" }
func (s *JoinStatement) String() string {
	var out bytes.Buffer
	fmt.Fprintf(&out, "JOIN %s WITH %s ON %s", s.Left, s.Right, strings.Join(s.Keys, ", "))
	if s.Mode != "" {
		fmt.Fprintf(&out, " MODE %s", s.Mode)
	}
	if s.Into != "" {
		fmt.Fprintf(&out, " INTO %s", s.Into)
	}
	return out.String()
}

// DeriveStatement: DERIVE name SET column = expr [INTO name]
type DeriveStatement struct {
	Name   string
	Column string
	Expr   Expression
	Into   string
}

func (s *DeriveStatement) statementNode()       {}
func (s *DeriveStatement) TokenLiteral() string { return "DERIVE" }
func (s *DeriveStatement) String() string {
	var out bytes.Buffer
	fmt.Fprintf(&out, "DERIVE %s SET %s = %s", s.Name, s.Column, s.Expr.String())
	if s.Into != "" {
		fmt.Fprintf(&out, " INTO %s", s.Into)
	}
	return out.String()
}

// SelectStatement: SELECT col[, col] FROM name [INTO name]
type SelectStatement struct {
	Columns []string
	Name    string
	Into    string
}

func (s *SelectStatement) statementNode()       {}
func (s *SelectStatement) TokenLiteral() string { return "SELECT" }
func (s *SelectStatement) String() string {
	var out bytes.Buffer
	fmt.Fprintf(&out, "SELECT %s FROM %s", strings.Join(s.Columns, ", "), s.Name)
	if s.Into != "" {
		fmt.Fprintf(&out, " INTO %s", s.Into)
	}
	return out.String()
}

// SaveStatement: SAVE name TO 'path'
type SaveStatement struct {
	Name string
	Path string
}

func (s *SaveStatement) statementNode()       {}
func (s *SaveStatement) TokenLiteral() string { return "SAVE" }
func (s *SaveStatement) String() string {
	return fmt.Sprintf("SAVE %s TO %q", s.Name, s.Path)
}

// DropStatement: DROP name
type DropStatement struct {
	Name string
}

func (s *DropStatement) statementNode()       {}
func (s *DropStatement) TokenLiteral() string { return "DROP" }
func (s *DropStatement) String() string       { return "DROP " + s.Name }
