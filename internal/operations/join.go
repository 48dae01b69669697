package operations

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tabuladb/tabula/internal/dataset"
)

// JoinMode selects which unmatched rows a join keeps.
type JoinMode int

const (
	// JoinInner keeps matched row pairs only.
	JoinInner JoinMode = iota
	// JoinLeft keeps every left row, null-padding unmatched ones.
	JoinLeft
	// JoinRight keeps every right row; it is a left join with the
	// inputs swapped, including output column order.
	JoinRight
	// JoinFull keeps every row from both sides.
	JoinFull
)

func (m JoinMode) String() string {
	switch m {
	case JoinInner:
		return "INNER"
	case JoinLeft:
		return "LEFT"
	case JoinRight:
		return "RIGHT"
	case JoinFull:
		return "FULL"
	default:
		return "UNKNOWN"
	}
}

// ParseJoinMode maps a mode word from the statement language to a
// JoinMode.
func ParseJoinMode(s string) (JoinMode, error) {
	switch strings.ToUpper(s) {
	case "INNER":
		return JoinInner, nil
	case "LEFT":
		return JoinLeft, nil
	case "RIGHT":
		return JoinRight, nil
	case "FULL":
		return JoinFull, nil
	default:
		return 0, fmt.Errorf("unknown join mode: %s", s)
	}
}

// Join matches rows of left and right whose key columns are all equal
// and returns the combined dataset. Key columns must exist on both
// sides with identical types and appear once in the result, at their
// position in the driving side's schema. Non-key columns may not be
// shared between the inputs. Matched pairs emit one row per pair, in
// left-row order then right-row order; a null in any key cell never
// matches. Unmatched right rows kept by a full join are appended after
// all left-driven rows, in right order.
func Join(left, right *dataset.Dataset, keys []string, mode JoinMode) (*dataset.Dataset, error) {
	slog.Debug("joining datasets",
		"mode", mode.String(),
		"left", left.Name(),
		"right", right.Name(),
		"keys", keys)

	if len(keys) == 0 {
		return nil, dataset.NewEmptyKey(left.Name(), right.Name())
	}
	if mode == JoinRight {
		return executeJoin(right, left, keys, JoinLeft)
	}
	return executeJoin(left, right, keys, mode)
}

// joinPlan carries the validated shape of one join: the output schema
// and the column groups rows are assembled from.
type joinPlan struct {
	keys       []string
	leftNames  []string
	rightExtra []string
	schema     *dataset.Schema
}

func executeJoin(left, right *dataset.Dataset, keys []string, mode JoinMode) (*dataset.Dataset, error) {
	plan, err := planJoin(left, right, keys)
	if err != nil {
		return nil, err
	}

	index := buildJoinIndex(right, keys)
	matched := make(map[int]bool)

	rows := make([]dataset.Row, 0, left.NumRows())
	for i := 0; i < left.NumRows(); i++ {
		lrow := left.Row(i)
		var positions []int
		if key, ok := joinKey(lrow, keys); ok {
			positions = index[key]
		}
		if len(positions) == 0 {
			if mode == JoinLeft || mode == JoinFull {
				rows = append(rows, plan.combine(lrow, nil))
			}
			continue
		}
		for _, ri := range positions {
			matched[ri] = true
			rows = append(rows, plan.combine(lrow, right.Row(ri)))
		}
	}

	if mode == JoinFull {
		for ri := 0; ri < right.NumRows(); ri++ {
			if !matched[ri] {
				rows = append(rows, plan.combine(nil, right.Row(ri)))
			}
		}
	}

	name := fmt.Sprintf("%s_%s", left.Name(), right.Name())
	out, err := dataset.New(name, plan.schema, rows)
	if err != nil {
		return nil, err
	}

	slog.Info("join complete",
		"mode", mode.String(),
		"left", left.Name(),
		"right", right.Name(),
		"left_rows", left.NumRows(),
		"right_rows", right.NumRows(),
		"out_rows", out.NumRows())
	return out, nil
}

// planJoin validates the key columns and the non-key namespaces and
// lays out the output schema: the left columns in left order, then the
// right non-key columns in right order.
func planJoin(left, right *dataset.Dataset, keys []string) (*joinPlan, error) {
	isKey := make(map[string]bool, len(keys))
	for _, k := range keys {
		if isKey[k] {
			return nil, dataset.NewDuplicateColumn(left.Name(), k)
		}
		isKey[k] = true

		lcol, ok := left.Schema().Column(k)
		if !ok {
			return nil, dataset.NewColumnNotFound(left.Name(), k)
		}
		rcol, ok := right.Schema().Column(k)
		if !ok {
			return nil, dataset.NewColumnNotFound(right.Name(), k)
		}
		if lcol.Type != rcol.Type {
			return nil, dataset.NewTypeMismatch(left.Name(), k,
				fmt.Sprintf("join key types differ: %s vs %s", lcol.Type, rcol.Type))
		}
	}

	plan := &joinPlan{keys: keys, leftNames: left.Schema().Names()}

	columns := left.Schema().Columns()
	for _, col := range right.Schema().Columns() {
		if isKey[col.Name] {
			continue
		}
		if left.Schema().Has(col.Name) {
			return nil, dataset.NewColumnCollision(right.Name(), col.Name)
		}
		plan.rightExtra = append(plan.rightExtra, col.Name)
		columns = append(columns, col)
	}

	schema, err := dataset.NewSchema(columns...)
	if err != nil {
		return nil, err
	}
	plan.schema = schema
	return plan, nil
}

// buildJoinIndex maps each composite key of d to the positions of the
// rows carrying it, in row order. Rows with a null key cell are left
// out; they can never match.
func buildJoinIndex(d *dataset.Dataset, keys []string) map[string][]int {
	index := make(map[string][]int, d.NumRows())
	for i := 0; i < d.NumRows(); i++ {
		if key, ok := joinKey(d.Row(i), keys); ok {
			index[key] = append(index[key], i)
		}
	}
	return index
}

// joinKey encodes a row's key cells into one hashable string. Each
// cell is tagged with its type and quoted where needed, so composite
// values cannot collide across columns. ok is false when any key cell
// is null.
func joinKey(r dataset.Row, keys []string) (string, bool) {
	var sb strings.Builder
	for _, k := range keys {
		v := r[k]
		if v == nil {
			return "", false
		}
		switch tv := v.(type) {
		case string:
			fmt.Fprintf(&sb, "s%q|", tv)
		case int64:
			fmt.Fprintf(&sb, "i%d|", tv)
		case float64:
			// -0 and 0 compare equal and must share a bucket.
			if tv == 0 {
				tv = 0
			}
			fmt.Fprintf(&sb, "f%g|", tv)
		case bool:
			fmt.Fprintf(&sb, "b%t|", tv)
		case time.Time:
			fmt.Fprintf(&sb, "t%d|", tv.UnixNano())
		default:
			return "", false
		}
	}
	return sb.String(), true
}

// combine assembles one output row. A nil lrow means an unmatched
// right row: the key cells come from the right side and the remaining
// left columns are null. A nil rrow null-pads the right extras.
func (p *joinPlan) combine(lrow, rrow dataset.Row) dataset.Row {
	out := make(dataset.Row, len(p.leftNames)+len(p.rightExtra))
	for _, name := range p.leftNames {
		if lrow != nil {
			out[name] = lrow[name]
		} else {
			out[name] = nil
		}
	}
	if lrow == nil {
		for _, k := range p.keys {
			out[k] = rrow[k]
		}
	}
	for _, name := range p.rightExtra {
		if rrow != nil {
			out[name] = rrow[name]
		} else {
			out[name] = nil
		}
	}
	return out
}
