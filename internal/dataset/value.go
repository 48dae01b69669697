package dataset

import (
	"fmt"
	"strconv"
	"time"
)

// ColumnType identifies the scalar type of every non-null value in a
// column.
type ColumnType string

const (
	ColumnTypeInt   ColumnType = "INT"
	ColumnTypeFloat ColumnType = "FLOAT"
	ColumnTypeText  ColumnType = "TEXT"
	ColumnTypeBool  ColumnType = "BOOL"
	ColumnTypeTime  ColumnType = "TIME"
)

// Numeric reports whether the type participates in arithmetic.
func (t ColumnType) Numeric() bool {
	return t == ColumnTypeInt || t == ColumnTypeFloat
}

// Orderable reports whether values of the type support <, <=, > and >=.
func (t ColumnType) Orderable() bool {
	switch t {
	case ColumnTypeInt, ColumnTypeFloat, ColumnTypeText, ColumnTypeTime:
		return true
	default:
		return false
	}
}

// Normalize converts a cell value to its canonical in-memory form:
// int64 for integers, float64 for floats, UTC time.Time for times.
// Strings, bools and nil pass through.
func Normalize(value interface{}) interface{} {
	switch v := value.(type) {
	case int:
		return int64(v)
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case uint:
		return int64(v)
	case uint8:
		return int64(v)
	case uint16:
		return int64(v)
	case uint32:
		return int64(v)
	case float32:
		return float64(v)
	case time.Time:
		return v.UTC()
	default:
		return value
	}
}

// typeOf maps a canonical value to its column type.
func typeOf(value interface{}) (ColumnType, bool) {
	switch value.(type) {
	case int64:
		return ColumnTypeInt, true
	case float64:
		return ColumnTypeFloat, true
	case string:
		return ColumnTypeText, true
	case bool:
		return ColumnTypeBool, true
	case time.Time:
		return ColumnTypeTime, true
	default:
		return "", false
	}
}

// fits reports whether a canonical value may be stored in a column of
// the given type. Null fits every column.
func fits(value interface{}, t ColumnType) bool {
	if value == nil {
		return true
	}
	vt, ok := typeOf(value)
	return ok && vt == t
}

// comparableWith reports whether a literal of type lit can be compared
// against a column of type col. The two numeric types compare freely;
// everything else requires an exact match.
func comparableWith(col, lit ColumnType) bool {
	if col.Numeric() && lit.Numeric() {
		return true
	}
	return col == lit
}

// equalValues reports equality of two non-null canonical values.
// Integers and floats compare numerically across types.
func equalValues(a, b interface{}) bool {
	switch av := a.(type) {
	case int64:
		switch bv := b.(type) {
		case int64:
			return av == bv
		case float64:
			return float64(av) == bv
		}
	case float64:
		switch bv := b.(type) {
		case int64:
			return av == float64(bv)
		case float64:
			return av == bv
		}
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case time.Time:
		bv, ok := b.(time.Time)
		return ok && av.Equal(bv)
	}
	return false
}

// compareValues orders two non-null canonical values. It returns
// -1, 0 or 1 and false when the pair is not orderable.
func compareValues(a, b interface{}) (int, bool) {
	switch av := a.(type) {
	case int64:
		switch bv := b.(type) {
		case int64:
			return compareInt64(av, bv), true
		case float64:
			return compareFloat64(float64(av), bv), true
		}
	case float64:
		switch bv := b.(type) {
		case int64:
			return compareFloat64(av, float64(bv)), true
		case float64:
			return compareFloat64(av, bv), true
		}
	case string:
		if bv, ok := b.(string); ok {
			switch {
			case av < bv:
				return -1, true
			case av > bv:
				return 1, true
			default:
				return 0, true
			}
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			switch {
			case av.Before(bv):
				return -1, true
			case av.After(bv):
				return 1, true
			default:
				return 0, true
			}
		}
	}
	return 0, false
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// FormatValue renders a cell for display. Null renders as NULL.
func FormatValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "NULL"
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", v)
	}
}
