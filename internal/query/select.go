// Package query holds the row selection and mutation algorithms. They
// operate on plain tables; callers are responsible for handing in a
// table they are allowed to touch (the store's critical sections or a
// private copy).
package query

import (
	"github.com/rowdb/rowdb/internal/db"
	"github.com/rowdb/rowdb/pkg"
)

// Condition restricts an operation to rows whose value at the named
// column projects to exactly this string. A Null cell has no projection
// and therefore never matches.
type Condition struct {
	Column string `json:"column"`
	Value  string `json:"value"`
}

func (c *Condition) matches(row db.Row, idx int) bool {
	if idx >= len(row.Values) {
		// the row predates this column; reads as Null
		return false
	}
	s, ok := row.Values[idx].AsString()
	return ok && s == c.Value
}

// Select returns the condition-matching rows in insertion order,
// projected onto the requested columns. A nil column list means every
// column in table order. An unknown column name, in the projection or
// the condition, fails with a column-not-found error.
func Select(t *db.Table, columns []string, condition *Condition) ([]db.Row, error) {
	rows := t.Rows
	if condition != nil {
		idx, ok := t.ColumnIndex(condition.Column)
		if !ok {
			return nil, db.ErrColumnNotFound(condition.Column)
		}
		rows = pkg.Filter(rows, func(row db.Row) bool {
			return condition.matches(row, idx)
		})
	}

	if columns == nil {
		out := make([]db.Row, len(rows))
		for i, row := range rows {
			out[i] = db.NewRow(append([]db.Value{}, row.Values...)...)
		}
		return out, nil
	}

	// projection order is the requested order, not table order
	indexes := make([]int, len(columns))
	for i, name := range columns {
		idx, ok := t.ColumnIndex(name)
		if !ok {
			return nil, db.ErrColumnNotFound(name)
		}
		indexes[i] = idx
	}

	out := make([]db.Row, len(rows))
	for i, row := range rows {
		projected := db.NewRow()
		for _, idx := range indexes {
			if idx < len(row.Values) {
				projected.AddValue(row.Values[idx])
			} else {
				projected.AddValue(db.NullValue())
			}
		}
		out[i] = projected
	}
	return out, nil
}
