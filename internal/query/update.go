package query

import (
	"github.com/rowdb/rowdb/internal/db"
)

// ColumnUpdate names a column and the text to write into it. Update
// payloads are untyped: the written value is always a String value,
// whatever the column held before.
type ColumnUpdate struct {
	Column string `json:"column"`
	Value  string `json:"value"`
}

// Update rebuilds the table with every condition-matching row rewritten
// at each update column. A nil condition matches every row. All update
// columns are resolved before anything is touched, so an unknown name
// fails without a partial write. Returns the rebuilt table and the rows
// that were rewritten.
func Update(t *db.Table, condition *Condition, updates []ColumnUpdate) (*db.Table, []db.Row, error) {
	indexes := make([]int, len(updates))
	for i, u := range updates {
		idx, ok := t.ColumnIndex(u.Column)
		if !ok {
			return nil, nil, db.ErrColumnNotFound(u.Column)
		}
		indexes[i] = idx
	}

	cond_idx := -1
	if condition != nil {
		idx, ok := t.ColumnIndex(condition.Column)
		if !ok {
			return nil, nil, db.ErrColumnNotFound(condition.Column)
		}
		cond_idx = idx
	}

	rebuilt := t.Clone()
	updated := []db.Row{}
	for i, row := range rebuilt.Rows {
		if condition != nil && !condition.matches(row, cond_idx) {
			continue
		}

		for j, idx := range indexes {
			// rows older than the column read as Null up to here
			for len(row.Values) <= idx {
				row.AddValue(db.NullValue())
			}
			row.Values[idx] = db.StrValue(updates[j].Value)
		}
		rebuilt.Rows[i] = row
		updated = append(updated, row)
	}

	return rebuilt, updated, nil
}
