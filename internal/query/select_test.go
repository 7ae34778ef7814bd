package query_test

import (
	"testing"

	"github.com/rowdb/rowdb/internal/db"
	. "github.com/rowdb/rowdb/internal/query"
	"gotest.tools/assert"
)

func newPeopleTable() *db.Table {
	table := db.NewTable("people")
	table.AddColumn(db.Column{Key: "id", PrimaryKey: true, NonNull: true, Unique: true})
	table.AddColumn(db.Column{Key: "name"})
	table.AddColumn(db.Column{Key: "age"})
	table.AddRow(db.NewRow(db.IntValue(1), db.StrValue("alice"), db.IntValue(30)))
	table.AddRow(db.NewRow(db.IntValue(2), db.StrValue("bob"), db.NullValue()))
	table.AddRow(db.NewRow(db.IntValue(3), db.StrValue("alice"), db.IntValue(25)))
	return table
}

func rowStrings(rows []db.Row) [][]*string {
	out := make([][]*string, len(rows))
	for i, row := range rows {
		out[i] = row.Strings()
	}
	return out
}

func TestSelect(t *testing.T) {
	t.Run("star keeps table order and insertion order", func(t *testing.T) {
		rows, err := Select(newPeopleTable(), nil, nil)
		assert.NilError(t, err)
		assert.Equal(t, len(rows), 3)
		assert.Equal(t, *rows[0].Strings()[0], "1")
		assert.Equal(t, *rows[1].Strings()[0], "2")
		assert.Equal(t, *rows[2].Strings()[0], "3")
		assert.Equal(t, len(rows[0].Values), 3)
	})

	t.Run("projection follows requested order", func(t *testing.T) {
		rows, err := Select(newPeopleTable(), []string{"name", "id"}, nil)
		assert.NilError(t, err)

		first := rowStrings(rows)[0]
		assert.Equal(t, len(first), 2)
		assert.Equal(t, *first[0], "alice")
		assert.Equal(t, *first[1], "1")
	})

	t.Run("condition matches on string projection", func(t *testing.T) {
		rows, err := Select(newPeopleTable(), []string{"id"}, &Condition{Column: "name", Value: "alice"})
		assert.NilError(t, err)
		assert.Equal(t, len(rows), 2)
		assert.Equal(t, *rows[0].Strings()[0], "1")
		assert.Equal(t, *rows[1].Strings()[0], "3")
	})

	t.Run("condition on an int column compares its projection", func(t *testing.T) {
		rows, err := Select(newPeopleTable(), nil, &Condition{Column: "id", Value: "2"})
		assert.NilError(t, err)
		assert.Equal(t, len(rows), 1)
	})

	t.Run("null never matches", func(t *testing.T) {
		rows, err := Select(newPeopleTable(), nil, &Condition{Column: "age", Value: ""})
		assert.NilError(t, err)
		assert.Equal(t, len(rows), 0)
	})

	t.Run("unknown projection column", func(t *testing.T) {
		_, err := Select(newPeopleTable(), []string{"missing"}, nil)
		assert.ErrorContains(t, err, `column "missing" not found`)
	})

	t.Run("unknown condition column", func(t *testing.T) {
		_, err := Select(newPeopleTable(), nil, &Condition{Column: "missing", Value: "x"})
		assert.ErrorContains(t, err, `column "missing" not found`)
	})

	t.Run("rows older than a column read as null", func(t *testing.T) {
		table := newPeopleTable()
		table.AddColumn(db.Column{Key: "email"})

		rows, err := Select(table, []string{"email"}, nil)
		assert.NilError(t, err)
		assert.Equal(t, rows[0].Values[0], db.NullValue())

		// and the new column matches nothing yet
		rows, err = Select(table, nil, &Condition{Column: "email", Value: "x"})
		assert.NilError(t, err)
		assert.Equal(t, len(rows), 0)
	})

	t.Run("empty table", func(t *testing.T) {
		rows, err := Select(db.NewTable("empty"), nil, nil)
		assert.NilError(t, err)
		assert.Equal(t, len(rows), 0)
	})
}
