package dataset

import (
	"fmt"
	"strconv"
)

// NumExpr computes one numeric value per row, for deriving columns.
// Evaluation yields a float64 or nil: any null operand makes the
// result null, as does division by zero.
type NumExpr interface {
	fmt.Stringer

	// Columns returns the column names the expression reads.
	Columns() []string

	// Validate checks that every referenced column exists and is
	// numeric.
	Validate(d *Dataset) error

	// Eval computes the expression for one row.
	Eval(r Row) interface{}
}

// colExpr reads a numeric column.
type colExpr struct {
	name string
}

// Col references a numeric column by name.
func Col(name string) NumExpr {
	return &colExpr{name: name}
}

func (e *colExpr) String() string {
	return e.name
}

func (e *colExpr) Columns() []string {
	return []string{e.name}
}

func (e *colExpr) Validate(d *Dataset) error {
	col, ok := d.Schema().Column(e.name)
	if !ok {
		return NewColumnNotFound(d.Name(), e.name)
	}
	if !col.Type.Numeric() {
		return NewTypeMismatch(d.Name(), e.name,
			fmt.Sprintf("arithmetic requires a numeric column, got %s", col.Type))
	}
	return nil
}

func (e *colExpr) Eval(r Row) interface{} {
	switch v := r[e.name].(type) {
	case int64:
		return float64(v)
	case float64:
		return v
	default:
		return nil
	}
}

// litExpr is a numeric constant.
type litExpr struct {
	value float64
}

// Num is a numeric constant expression.
func Num(value float64) NumExpr {
	return &litExpr{value: value}
}

func (e *litExpr) String() string {
	return strconv.FormatFloat(e.value, 'g', -1, 64)
}

func (e *litExpr) Columns() []string {
	return nil
}

func (e *litExpr) Validate(*Dataset) error {
	return nil
}

func (e *litExpr) Eval(Row) interface{} {
	return e.value
}

type arithOp byte

const (
	opAdd arithOp = '+'
	opSub arithOp = '-'
	opMul arithOp = '*'
	opDiv arithOp = '/'
)

// binExpr applies an arithmetic operator to two sub-expressions.
type binExpr struct {
	op    arithOp
	left  NumExpr
	right NumExpr
}

// Add is the sum of two expressions.
func Add(left, right NumExpr) NumExpr {
	return &binExpr{op: opAdd, left: left, right: right}
}

// Sub is the difference of two expressions.
func Sub(left, right NumExpr) NumExpr {
	return &binExpr{op: opSub, left: left, right: right}
}

// Mul is the product of two expressions.
func Mul(left, right NumExpr) NumExpr {
	return &binExpr{op: opMul, left: left, right: right}
}

// Div is the quotient of two expressions. A zero divisor yields null
// for that row.
func Div(left, right NumExpr) NumExpr {
	return &binExpr{op: opDiv, left: left, right: right}
}

func (e *binExpr) String() string {
	return fmt.Sprintf("(%s %c %s)", e.left, e.op, e.right)
}

func (e *binExpr) Columns() []string {
	var out []string
	seen := make(map[string]bool)
	for _, sub := range []NumExpr{e.left, e.right} {
		for _, col := range sub.Columns() {
			if !seen[col] {
				seen[col] = true
				out = append(out, col)
			}
		}
	}
	return out
}

func (e *binExpr) Validate(d *Dataset) error {
	if err := e.left.Validate(d); err != nil {
		return err
	}
	return e.right.Validate(d)
}

func (e *binExpr) Eval(r Row) interface{} {
	lv, ok := e.left.Eval(r).(float64)
	if !ok {
		return nil
	}
	rv, ok := e.right.Eval(r).(float64)
	if !ok {
		return nil
	}
	switch e.op {
	case opAdd:
		return lv + rv
	case opSub:
		return lv - rv
	case opMul:
		return lv * rv
	case opDiv:
		if rv == 0 {
			return nil
		}
		return lv / rv
	default:
		return nil
	}
}
