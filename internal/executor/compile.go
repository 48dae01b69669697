package executor

import (
	"fmt"

	"github.com/tabuladb/tabula/internal/dataset"
	"github.com/tabuladb/tabula/internal/parser/ast"
)

// CompilePredicate turns a parsed WHERE expression into a dataset
// predicate. Column existence and type compatibility are checked later,
// when the predicate is validated against a concrete dataset.
func CompilePredicate(expr ast.Expression) (dataset.Predicate, error) {
	switch e := expr.(type) {
	case *ast.LogicalExpression:
		left, err := CompilePredicate(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := CompilePredicate(e.Right)
		if err != nil {
			return nil, err
		}
		if e.Operator == "AND" {
			return dataset.And(left, right), nil
		}
		return dataset.Or(left, right), nil

	case *ast.BinaryExpression:
		return compileComparison(e)

	case *ast.InExpression:
		values := make([]interface{}, len(e.Values))
		for i, lit := range e.Values {
			values[i] = lit.Value
		}
		return dataset.In(e.Column.Value, values...), nil

	case *ast.MatchExpression:
		if e.Negate {
			return dataset.NotContains(e.Column.Value, e.Pattern), nil
		}
		return dataset.Contains(e.Column.Value, e.Pattern), nil

	default:
		return nil, fmt.Errorf("unsupported expression in WHERE clause: %T", expr)
	}
}

func compileComparison(e *ast.BinaryExpression) (dataset.Predicate, error) {
	ident, ok := e.Left.(*ast.Identifier)
	if !ok {
		return nil, fmt.Errorf("left side of %s must be a column name", e.Operator)
	}
	lit, ok := e.Right.(*ast.Literal)
	if !ok {
		return nil, fmt.Errorf("right side of %s must be a literal", e.Operator)
	}

	column := ident.Value
	switch e.Operator {
	case "==":
		return dataset.Eq(column, lit.Value), nil
	case "!=":
		return dataset.Ne(column, lit.Value), nil
	case "<":
		return dataset.Lt(column, lit.Value), nil
	case "<=":
		return dataset.Le(column, lit.Value), nil
	case ">":
		return dataset.Gt(column, lit.Value), nil
	case ">=":
		return dataset.Ge(column, lit.Value), nil
	default:
		return nil, fmt.Errorf("unsupported comparison operator: %s", e.Operator)
	}
}

// CompileNumExpr turns a parsed arithmetic expression into a numeric
// expression for DERIVE.
func CompileNumExpr(expr ast.Expression) (dataset.NumExpr, error) {
	switch e := expr.(type) {
	case *ast.Identifier:
		return dataset.Col(e.Value), nil

	case *ast.Literal:
		switch e.Kind {
		case ast.KindInt:
			return dataset.Num(float64(e.Value.(int64))), nil
		case ast.KindFloat:
			return dataset.Num(e.Value.(float64)), nil
		default:
			return nil, fmt.Errorf("arithmetic requires a numeric literal, got %s", e)
		}

	case *ast.UnaryExpression:
		operand, err := CompileNumExpr(e.Operand)
		if err != nil {
			return nil, err
		}
		return dataset.Sub(dataset.Num(0), operand), nil

	case *ast.BinaryExpression:
		left, err := CompileNumExpr(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := CompileNumExpr(e.Right)
		if err != nil {
			return nil, err
		}
		switch e.Operator {
		case "+":
			return dataset.Add(left, right), nil
		case "-":
			return dataset.Sub(left, right), nil
		case "*":
			return dataset.Mul(left, right), nil
		case "/":
			return dataset.Div(left, right), nil
		default:
			return nil, fmt.Errorf("unsupported arithmetic operator: %s", e.Operator)
		}

	default:
		return nil, fmt.Errorf("unsupported expression in arithmetic: %T", expr)
	}
}
