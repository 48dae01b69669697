package dataset

import (
	"fmt"
	"strings"
)

// Predicate decides per row whether it belongs in a filter result.
// Predicates are built from the combinators in this file and validated
// against a dataset before any row is examined. A null cell never
// matches an atomic predicate, under either polarity.
type Predicate interface {
	fmt.Stringer

	// Columns returns the column names the predicate reads.
	Columns() []string

	// Validate checks the predicate against the dataset's schema.
	Validate(d *Dataset) error

	// Matches reports whether the row satisfies the predicate.
	Matches(r Row) bool
}

type cmpOp int

const (
	opEq cmpOp = iota
	opNe
	opLt
	opLe
	opGt
	opGe
)

func (o cmpOp) String() string {
	switch o {
	case opEq:
		return "=="
	case opNe:
		return "!="
	case opLt:
		return "<"
	case opLe:
		return "<="
	case opGt:
		return ">"
	case opGe:
		return ">="
	default:
		return "?"
	}
}

func (o cmpOp) ordered() bool {
	return o != opEq && o != opNe
}

// comparison matches rows whose cell relates to a literal under one of
// ==, !=, <, <=, >, >=.
type comparison struct {
	column string
	op     cmpOp
	value  interface{}
}

// Eq matches rows whose cell equals the value.
func Eq(column string, value interface{}) Predicate {
	return &comparison{column: column, op: opEq, value: Normalize(value)}
}

// Ne matches rows whose cell is non-null and differs from the value.
func Ne(column string, value interface{}) Predicate {
	return &comparison{column: column, op: opNe, value: Normalize(value)}
}

// Lt matches rows whose cell is strictly below the value.
func Lt(column string, value interface{}) Predicate {
	return &comparison{column: column, op: opLt, value: Normalize(value)}
}

// Le matches rows whose cell is at most the value.
func Le(column string, value interface{}) Predicate {
	return &comparison{column: column, op: opLe, value: Normalize(value)}
}

// Gt matches rows whose cell is strictly above the value.
func Gt(column string, value interface{}) Predicate {
	return &comparison{column: column, op: opGt, value: Normalize(value)}
}

// Ge matches rows whose cell is at least the value.
func Ge(column string, value interface{}) Predicate {
	return &comparison{column: column, op: opGe, value: Normalize(value)}
}

func (p *comparison) String() string {
	return fmt.Sprintf("%s %s %s", p.column, p.op, formatLiteral(p.value))
}

func (p *comparison) Columns() []string {
	return []string{p.column}
}

func (p *comparison) Validate(d *Dataset) error {
	col, ok := d.Schema().Column(p.column)
	if !ok {
		return NewColumnNotFound(d.Name(), p.column)
	}
	if p.value == nil {
		return NewTypeMismatch(d.Name(), p.column, "cannot compare against null")
	}
	lit, ok := typeOf(p.value)
	if !ok {
		return NewTypeMismatch(d.Name(), p.column, fmt.Sprintf("unsupported literal type %T", p.value))
	}
	if !comparableWith(col.Type, lit) {
		return NewTypeMismatch(d.Name(), p.column,
			fmt.Sprintf("cannot compare %s column with %s literal", col.Type, lit))
	}
	if p.op.ordered() && !col.Type.Orderable() {
		return NewTypeMismatch(d.Name(), p.column,
			fmt.Sprintf("%s columns do not support ordered comparison", col.Type))
	}
	return nil
}

func (p *comparison) Matches(r Row) bool {
	v := r[p.column]
	if v == nil {
		return false
	}
	switch p.op {
	case opEq:
		return equalValues(v, p.value)
	case opNe:
		return !equalValues(v, p.value)
	default:
		c, ok := compareValues(v, p.value)
		if !ok {
			return false
		}
		switch p.op {
		case opLt:
			return c < 0
		case opLe:
			return c <= 0
		case opGt:
			return c > 0
		case opGe:
			return c >= 0
		}
	}
	return false
}

// membership matches rows whose cell equals any value of a literal
// set. The empty set matches nothing.
type membership struct {
	column string
	values []interface{}
}

// In matches rows whose cell is one of the given values.
func In(column string, values ...interface{}) Predicate {
	canonical := make([]interface{}, len(values))
	for i, v := range values {
		canonical[i] = Normalize(v)
	}
	return &membership{column: column, values: canonical}
}

func (p *membership) String() string {
	parts := make([]string, len(p.values))
	for i, v := range p.values {
		parts[i] = formatLiteral(v)
	}
	return fmt.Sprintf("%s IN (%s)", p.column, strings.Join(parts, ", "))
}

func (p *membership) Columns() []string {
	return []string{p.column}
}

func (p *membership) Validate(d *Dataset) error {
	col, ok := d.Schema().Column(p.column)
	if !ok {
		return NewColumnNotFound(d.Name(), p.column)
	}
	for _, v := range p.values {
		if v == nil {
			return NewTypeMismatch(d.Name(), p.column, "membership set must not contain null")
		}
		lit, ok := typeOf(v)
		if !ok {
			return NewTypeMismatch(d.Name(), p.column, fmt.Sprintf("unsupported literal type %T", v))
		}
		if !comparableWith(col.Type, lit) {
			return NewTypeMismatch(d.Name(), p.column,
				fmt.Sprintf("cannot compare %s column with %s literal", col.Type, lit))
		}
	}
	return nil
}

func (p *membership) Matches(r Row) bool {
	v := r[p.column]
	if v == nil {
		return false
	}
	for _, candidate := range p.values {
		if equalValues(v, candidate) {
			return true
		}
	}
	return false
}

// match matches TEXT cells on substring containment. The negated form
// is its own atomic predicate, so null cells fail both polarities.
type match struct {
	column string
	substr string
	negate bool
}

// Contains matches rows whose text cell contains the substring.
func Contains(column, substr string) Predicate {
	return &match{column: column, substr: substr}
}

// NotContains matches rows whose text cell is non-null and does not
// contain the substring.
func NotContains(column, substr string) Predicate {
	return &match{column: column, substr: substr, negate: true}
}

func (p *match) String() string {
	op := "~"
	if p.negate {
		op = "!~"
	}
	return fmt.Sprintf("%s %s %q", p.column, op, p.substr)
}

func (p *match) Columns() []string {
	return []string{p.column}
}

func (p *match) Validate(d *Dataset) error {
	col, ok := d.Schema().Column(p.column)
	if !ok {
		return NewColumnNotFound(d.Name(), p.column)
	}
	if col.Type != ColumnTypeText {
		return NewTypeMismatch(d.Name(), p.column,
			fmt.Sprintf("substring match requires a %s column, got %s", ColumnTypeText, col.Type))
	}
	return nil
}

func (p *match) Matches(r Row) bool {
	v, ok := r[p.column].(string)
	if !ok {
		return false
	}
	if p.negate {
		return !strings.Contains(v, p.substr)
	}
	return strings.Contains(v, p.substr)
}

// logical combines predicates with AND or OR. Operands are evaluated
// in order.
type logical struct {
	op    string
	preds []Predicate
}

// And matches rows that satisfy every given predicate.
func And(first Predicate, rest ...Predicate) Predicate {
	return &logical{op: "AND", preds: append([]Predicate{first}, rest...)}
}

// Or matches rows that satisfy at least one given predicate.
func Or(first Predicate, rest ...Predicate) Predicate {
	return &logical{op: "OR", preds: append([]Predicate{first}, rest...)}
}

func (p *logical) String() string {
	parts := make([]string, len(p.preds))
	for i, sub := range p.preds {
		parts[i] = fmt.Sprintf("(%s)", sub)
	}
	return strings.Join(parts, " "+p.op+" ")
}

func (p *logical) Columns() []string {
	var out []string
	seen := make(map[string]bool)
	for _, sub := range p.preds {
		for _, col := range sub.Columns() {
			if !seen[col] {
				seen[col] = true
				out = append(out, col)
			}
		}
	}
	return out
}

func (p *logical) Validate(d *Dataset) error {
	for _, sub := range p.preds {
		if err := sub.Validate(d); err != nil {
			return err
		}
	}
	return nil
}

func (p *logical) Matches(r Row) bool {
	if p.op == "AND" {
		for _, sub := range p.preds {
			if !sub.Matches(r) {
				return false
			}
		}
		return true
	}
	for _, sub := range p.preds {
		if sub.Matches(r) {
			return true
		}
	}
	return false
}

// always matches every row.
type always struct{}

// Always returns the identity predicate.
func Always() Predicate {
	return always{}
}

func (always) String() string          { return "TRUE" }
func (always) Columns() []string       { return nil }
func (always) Validate(*Dataset) error { return nil }
func (always) Matches(Row) bool        { return true }

func formatLiteral(v interface{}) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return FormatValue(v)
}
